package ui

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// debug font cell size used by ebitenutil.DebugPrintAt
const (
	glyphWidth  = 6
	glyphHeight = 16
)

// inside reports whether (mx, my) lies in the rectangle at (x, y) of size w*h.
func inside(mx, my, x, y, w, h float64) bool {
	return mx >= x && mx <= x+w && my >= y && my <= y+h
}

// Button is a clickable UI button
type Button struct {
	Label    string
	X, Y     float64
	Width    float64
	Height   float64
	Disabled bool
	clicked  bool   // Track if already clicked this frame
	OnClick  func() // Callback function

	// Styling
	BGColor       color.RGBA
	HoverColor    color.RGBA
	DisabledColor color.RGBA
	TextColor     color.RGBA
}

// NewButton creates a new button instance
func NewButton(x, y, width, height float64, label string, onClick func()) *Button {
	return &Button{
		Label:         label,
		X:             x,
		Y:             y,
		Width:         width,
		Height:        height,
		OnClick:       onClick,
		BGColor:       color.RGBA{R: 80, G: 120, B: 180, A: 255},
		HoverColor:    color.RGBA{R: 100, G: 150, B: 220, A: 255},
		DisabledColor: color.RGBA{R: 70, G: 70, B: 75, A: 255},
		TextColor:     color.RGBA{R: 255, G: 255, B: 255, A: 255},
	}
}

// Update checks for mouse interaction
func (b *Button) Update() {
	mx, my := ebiten.CursorPosition()
	b.press(float64(mx), float64(my), ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft))
}

// press fires OnClick once per press that starts or stays over the button.
func (b *Button) press(mx, my float64, down bool) {
	if b.Disabled {
		b.clicked = down
		return
	}
	if down && inside(mx, my, b.X, b.Y, b.Width, b.Height) {
		if !b.clicked && b.OnClick != nil {
			b.OnClick()
			b.clicked = true
		}
		return
	}
	b.clicked = false
}

// Draw renders the button
func (b *Button) Draw(screen *ebiten.Image) {
	mx, my := ebiten.CursorPosition()

	bgColor := b.BGColor
	switch {
	case b.Disabled:
		bgColor = b.DisabledColor
	case inside(float64(mx), float64(my), b.X, b.Y, b.Width, b.Height):
		bgColor = b.HoverColor
	}

	vector.FillRect(screen,
		float32(b.X), float32(b.Y),
		float32(b.Width), float32(b.Height),
		bgColor, true)

	vector.StrokeRect(screen,
		float32(b.X), float32(b.Y),
		float32(b.Width), float32(b.Height),
		2, color.RGBA{R: 200, G: 200, B: 200, A: 255}, true)

	// centre the label, the debug font is fixed width
	tx := b.X + (b.Width-float64(len(b.Label)*glyphWidth))/2
	ty := b.Y + (b.Height-glyphHeight)/2
	ebitenutil.DebugPrintAt(screen, b.Label, int(tx), int(ty))
}
