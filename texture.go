package main

import (
	"image"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/milk9111/scaffold/ecs/render"
)

// ebitenTexture backs render.Texture with a GPU image.
type ebitenTexture struct {
	img *ebiten.Image
}

func (t ebitenTexture) Bounds() image.Rectangle {
	return t.img.Bounds()
}

func (t ebitenTexture) Sub(r image.Rectangle) render.Texture {
	sub, ok := t.img.SubImage(r).(*ebiten.Image)
	if !ok {
		return t
	}
	return ebitenTexture{img: sub}
}

// decodeTexture uploads decoded images for the asset manager.
var decodeTexture = render.ImageDecoder(func(img image.Image) render.Texture {
	return ebitenTexture{img: ebiten.NewImageFromImage(img)}
})
