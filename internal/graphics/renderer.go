package graphics

import (
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// Surface is the drawing target used by the engine's render passes.
type Surface interface {
	// DrawScaledImage draws img stretched to fill dst.
	DrawScaledImage(img image.Image, dst image.Rectangle)
	DrawFilledRect(r image.Rectangle, c color.Color)
	DrawCircle(cx, cy, r float32, c color.Color)
	Fill(c color.Color)
}

// Canvas draws onto an ebiten image.
//
// Images passed to DrawScaledImage are uploaded as textures that live until
// Release is called, normally before the next frame is rendered.
type Canvas struct {
	screen   *ebiten.Image
	textures []*ebiten.Image
}

// NewCanvas creates a new canvas over screen
func NewCanvas(screen *ebiten.Image) *Canvas {
	return &Canvas{screen: screen}
}

// DrawScaledImage uploads img and draws it into dst.
func (c *Canvas) DrawScaledImage(img image.Image, dst image.Rectangle) {
	if img == nil || dst.Empty() {
		return
	}

	texture, ok := img.(*ebiten.Image)
	if !ok {
		texture = ebiten.NewImageFromImage(img)
		c.textures = append(c.textures, texture)
	}

	b := texture.Bounds()
	if b.Empty() {
		return
	}

	opts := &ebiten.DrawImageOptions{}
	opts.GeoM.Scale(float64(dst.Dx())/float64(b.Dx()), float64(dst.Dy())/float64(b.Dy()))
	opts.GeoM.Translate(float64(dst.Min.X), float64(dst.Min.Y))
	opts.Filter = ebiten.FilterLinear
	c.screen.DrawImage(texture, opts)
}

// DrawFilledRect fills r with a solid colour, blending by its alpha.
func (c *Canvas) DrawFilledRect(r image.Rectangle, clr color.Color) {
	vector.DrawFilledRect(c.screen, float32(r.Min.X), float32(r.Min.Y), float32(r.Dx()), float32(r.Dy()), clr, false)
}

// DrawCircle fills a circle.
func (c *Canvas) DrawCircle(cx, cy, r float32, clr color.Color) {
	vector.DrawFilledCircle(c.screen, cx, cy, r, clr, true)
}

// Fill clears the whole screen.
func (c *Canvas) Fill(clr color.Color) {
	c.screen.Fill(clr)
}

// Release frees the textures uploaded since the last Release.
func (c *Canvas) Release() {
	for _, t := range c.textures {
		t.Deallocate()
	}
	c.textures = c.textures[:0]
}
