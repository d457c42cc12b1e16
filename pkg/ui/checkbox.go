package ui

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

var (
	boxColor      = color.RGBA{R: 200, G: 200, B: 200, A: 255}
	boxHoverColor = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	boxOffColor   = color.RGBA{R: 90, G: 90, B: 95, A: 255}
	tickColor     = color.RGBA{R: 100, G: 200, B: 100, A: 255}
)

// Checkbox toggles a boolean setting. A disabled checkbox keeps its value and ignores presses.
type Checkbox struct {
	Label    string
	Value    bool
	X, Y     float64
	Size     float64
	Disabled bool
	OnChange func(bool)
	clicked  bool
}

func NewCheckbox(x, y float64, label string, value bool) *Checkbox {
	return &Checkbox{Label: label, Value: value, X: x, Y: y, Size: 16}
}

func (c *Checkbox) Update() {
	mx, my := ebiten.CursorPosition()
	c.press(float64(mx), float64(my), ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft))
}

// press toggles on the first frame of a press over the box.
func (c *Checkbox) press(mx, my float64, down bool) {
	if c.Disabled {
		// a press held while disabled must not toggle once enabled
		c.clicked = down
		return
	}
	if !down || !c.over(mx, my) {
		c.clicked = false
		return
	}
	if c.clicked {
		return
	}
	c.clicked = true
	c.Value = !c.Value
	if c.OnChange != nil {
		c.OnChange(c.Value)
	}
}

func (c *Checkbox) over(mx, my float64) bool {
	return inside(mx, my, c.X, c.Y, c.Size, c.Size)
}

// Draw renders the box and, when set, a tick mark inside it.
func (c *Checkbox) Draw(screen *ebiten.Image) {
	mx, my := ebiten.CursorPosition()
	frame, tick := boxColor, tickColor
	switch {
	case c.Disabled:
		frame, tick = boxOffColor, boxOffColor
	case c.over(float64(mx), float64(my)):
		frame = boxHoverColor
	}

	x, y, s := float32(c.X), float32(c.Y), float32(c.Size)
	vector.StrokeRect(screen, x, y, s, s, 2, frame, true)
	if !c.Value {
		return
	}
	vector.StrokeLine(screen, x+s*0.2, y+s*0.55, x+s*0.42, y+s*0.78, 2.5, tick, true)
	vector.StrokeLine(screen, x+s*0.42, y+s*0.78, x+s*0.8, y+s*0.25, 2.5, tick, true)
}
