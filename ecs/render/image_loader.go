package render

import (
	"bytes"
	"fmt"
	"image"
	_ "image/png"
)

// Decoder turns raw asset bytes into a texture.
type Decoder func(name string, data []byte) (Texture, error)

// ImageDecoder returns a Decoder that decodes with the registered image
// formats and hands the result to upload, which builds the host texture.
func ImageDecoder(upload func(image.Image) Texture) Decoder {
	return func(name string, data []byte) (Texture, error) {
		if len(data) == 0 {
			return nil, fmt.Errorf("render: decode %s: empty data", name)
		}
		img, _, err := image.Decode(bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("render: decode %s: %w", name, err)
		}
		return upload(img), nil
	}
}
