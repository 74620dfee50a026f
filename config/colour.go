package config

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"golang.org/x/image/colornames"
	"gopkg.in/yaml.v3"

	"github.com/milk9111/scaffold/common"
)

// Colour is a 0xRRGGBB value read from YAML as "#rrggbb", "0xrrggbb", an
// integer, or an SVG colour name such as "lightblue".
type Colour uint32

func (c *Colour) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("colour must be a scalar")
	}
	parsed, err := ParseColour(value.Value)
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

func (c Colour) MarshalYAML() (any, error) {
	return common.HexToString(uint32(c)), nil
}

// RGBA returns the colour as an opaque color.RGBA.
func (c Colour) RGBA() color.RGBA {
	r, g, b := common.HexToRGB(uint32(c))
	return color.RGBA{R: r, G: g, B: b, A: 0xff}
}

// ParseColour parses a hex string, integer or colour name.
func ParseColour(s string) (Colour, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("empty colour")
	}
	if named, ok := colornames.Map[strings.ToLower(s)]; ok {
		return Colour(common.RGBToHex(named.R, named.G, named.B)), nil
	}

	hex := strings.TrimPrefix(s, "#")
	hex = strings.TrimPrefix(strings.ToLower(hex), "0x")
	if len(hex) == 6 && hex != s {
		v, err := strconv.ParseUint(hex, 16, 32)
		if err != nil {
			return 0, fmt.Errorf("invalid colour %q: %w", s, err)
		}
		return Colour(v), nil
	}

	v, err := strconv.ParseUint(s, 10, 32)
	if err != nil || v > 0xFFFFFF {
		return 0, fmt.Errorf("invalid colour %q", s)
	}
	return Colour(v), nil
}
