package common

import "fmt"

// HexToRGB splits a 0xRRGGBB value into its channels.
func HexToRGB(hex uint32) (r, g, b uint8) {
	return uint8(hex >> 16 & 0xFF), uint8(hex >> 8 & 0xFF), uint8(hex & 0xFF)
}

func RGBToHex(r, g, b uint8) uint32 {
	return uint32(r)<<16 | uint32(g)<<8 | uint32(b)
}

// HexToString formats a colour as #rrggbb.
func HexToString(hex uint32) string {
	r, g, b := HexToRGB(hex)
	return fmt.Sprintf("#%02x%02x%02x", r, g, b)
}
