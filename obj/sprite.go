package obj

import (
	"image"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/beppu/common"
)

// Sprite is a positioned, sized region of an image.
type Sprite struct {
	Position common.Vec
	Width    float64
	Height   float64
	Image    *ebiten.Image
	// Source is the region of Image to draw, scaled to Width x Height.
	Source common.Rect
}

// NewSprite returns a sprite covering all of img at its natural size.
func NewSprite(img *ebiten.Image) *Sprite {
	s := &Sprite{Image: img}
	if img != nil {
		b := img.Bounds()
		s.Width = float64(b.Dx())
		s.Height = float64(b.Dy())
		s.Source = common.Rect{X: float64(b.Min.X), Y: float64(b.Min.Y), Width: s.Width, Height: s.Height}
	}
	return s
}

// Hitbox is the sprite's current rectangle.
func (s *Sprite) Hitbox() common.Rect {
	if s == nil {
		return common.Rect{}
	}
	return common.Rect{X: s.Position.X, Y: s.Position.Y, Width: s.Width, Height: s.Height}
}

// Draw composites the source region at Position+offset.
func (s *Sprite) Draw(screen *ebiten.Image, offset common.Vec) {
	if s == nil || s.Image == nil || screen == nil {
		return
	}
	if s.Source.Width <= 0 || s.Source.Height <= 0 || s.Width <= 0 || s.Height <= 0 {
		return
	}

	img := s.Image
	rect := image.Rect(
		int(s.Source.X),
		int(s.Source.Y),
		int(s.Source.X+s.Source.Width),
		int(s.Source.Y+s.Source.Height),
	)
	if sub, ok := s.Image.SubImage(rect).(*ebiten.Image); ok {
		img = sub
	}

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(s.Width/s.Source.Width, s.Height/s.Source.Height)
	op.GeoM.Translate(s.Position.X+offset.X, s.Position.Y+offset.Y)
	op.Filter = ebiten.FilterNearest
	screen.DrawImage(img, op)
}
