package ui

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

const (
	titleHeight   = 30.0
	sectionHeight = 25.0
	labelHeight   = 15.0
)

// UIWidget is an interface for all UI widgets
type UIWidget interface {
	Update()
	Draw(screen *ebiten.Image)
	GetHeight() float64
	moveTo(y float64)
}

// SliderWrapper wraps Slider to implement UIWidget
type SliderWrapper struct {
	*Slider
	Format string // printf verb for the value next to the label
}

func (s *SliderWrapper) GetHeight() float64 { return s.H + 25 }
func (s *SliderWrapper) moveTo(y float64)   { s.Y = y }

// CheckboxWrapper wraps Checkbox to implement UIWidget
type CheckboxWrapper struct {
	*Checkbox
}

func (c *CheckboxWrapper) GetHeight() float64 { return c.Size + 20 }
func (c *CheckboxWrapper) moveTo(y float64)   { c.Y = y }

// ButtonWrapper wraps Button to implement UIWidget
type ButtonWrapper struct {
	*Button
}

func (b *ButtonWrapper) GetHeight() float64 { return b.Height + 10 }
func (b *ButtonWrapper) moveTo(y float64)   { b.Y = y - labelHeight }

// UIPanel manages a collection of UI widgets in a scrollable panel
type UIPanel struct {
	Title         string
	X, Y          float64 // Panel position
	Width, Height float64 // Panel dimensions
	Hidden        bool
	Widgets       []UIWidget
	Labels        []string // Labels for widgets
	ScrollOffset  float64  // Current scroll position

	// Styling
	BGColor     color.RGBA
	BorderColor color.RGBA
	TextColor   color.RGBA

	sections []PanelSection
}

// PanelSection is a titled group of consecutive widgets
type PanelSection struct {
	Title      string
	StartIndex int // Widget index where this section starts
	EndIndex   int // Widget index where this section ends (exclusive)
}

// NewUIPanel creates a new UI panel
func NewUIPanel(x, y, width, height float64) *UIPanel {
	return &UIPanel{
		Title:       "Controls",
		X:           x,
		Y:           y,
		Width:       width,
		Height:      height,
		BGColor:     color.RGBA{R: 40, G: 40, B: 45, A: 230},
		BorderColor: color.RGBA{R: 100, G: 100, B: 110, A: 255},
		TextColor:   color.RGBA{R: 220, G: 220, B: 220, A: 255},
	}
}

// AddSection adds a section header
func (p *UIPanel) AddSection(title string) {
	p.sections = append(p.sections, PanelSection{
		Title:      title,
		StartIndex: len(p.Widgets),
		EndIndex:   len(p.Widgets),
	})
}

// EndSection closes the current section
func (p *UIPanel) EndSection() {
	if len(p.sections) > 0 {
		p.sections[len(p.sections)-1].EndIndex = len(p.Widgets)
	}
}

// AddSlider adds a slider widget to the panel
func (p *UIPanel) AddSlider(label string, min, max, value float64) *Slider {
	yOffset := p.calculateNextYOffset()
	slider := NewSlider(p.X+10, p.Y+yOffset+20, p.Width-20, label, min, max, value)
	p.add(&SliderWrapper{Slider: slider, Format: "%.2f"}, label)
	return slider
}

// AddCheckbox adds a checkbox widget to the panel
func (p *UIPanel) AddCheckbox(label string, value bool) *Checkbox {
	yOffset := p.calculateNextYOffset()
	checkbox := NewCheckbox(p.X+10, p.Y+yOffset+20, label, value)
	p.add(&CheckboxWrapper{checkbox}, label)
	return checkbox
}

// AddButton adds a full width button; buttons carry their own label.
func (p *UIPanel) AddButton(label string, onClick func()) *Button {
	yOffset := p.calculateNextYOffset()
	button := NewButton(p.X+10, p.Y+yOffset+20, p.Width-20, 22, label, onClick)
	p.add(&ButtonWrapper{button}, "")
	return button
}

func (p *UIPanel) add(w UIWidget, label string) {
	p.Widgets = append(p.Widgets, w)
	p.Labels = append(p.Labels, label)
	if n := len(p.sections); n > 0 {
		p.sections[n-1].EndIndex = len(p.Widgets)
	}
}

// calculateNextYOffset calculates the Y offset for the next widget
func (p *UIPanel) calculateNextYOffset() float64 {
	offset := float64(len(p.sections)) * sectionHeight
	for _, widget := range p.Widgets {
		offset += widget.GetHeight()
	}
	return offset
}

// Contains reports whether a screen point is over the visible panel.
func (p *UIPanel) Contains(x, y float64) bool {
	return !p.Hidden && inside(x, y, p.X, p.Y, p.Width, p.Height)
}

// Update handles input for all widgets
func (p *UIPanel) Update() {
	if p.Hidden {
		return
	}
	mx, my := ebiten.CursorPosition()
	if _, dy := ebiten.Wheel(); dy != 0 && p.Contains(float64(mx), float64(my)) {
		p.scroll(dy)
	}
	for _, widget := range p.Widgets {
		widget.Update()
	}
}

func (p *UIPanel) scroll(dy float64) {
	p.ScrollOffset -= dy * 20
	maxScroll := max(p.calculateTotalHeight()-p.Height+40, 0)
	p.ScrollOffset = max(0, min(p.ScrollOffset, maxScroll))
}

// layout positions every widget for the current scroll offset and calls visit for the
// headers and widgets that fall inside the panel.
func (p *UIPanel) layout(header func(title string, y float64), widget func(i int, y float64)) {
	currentY := p.Y + titleHeight - p.ScrollOffset
	visible := func(y, slack float64) bool { return y >= p.Y-slack && y <= p.Y+p.Height }

	for _, section := range p.sections {
		if visible(currentY, sectionHeight) {
			header(section.Title, currentY)
		}
		currentY += sectionHeight

		for i := section.StartIndex; i < section.EndIndex && i < len(p.Widgets); i++ {
			w := p.Widgets[i]
			w.moveTo(currentY + labelHeight)
			if visible(currentY, titleHeight) {
				widget(i, currentY)
			}
			currentY += w.GetHeight()
		}
	}
}

// Draw renders the panel and all widgets
func (p *UIPanel) Draw(screen *ebiten.Image) {
	if p.Hidden {
		return
	}
	vector.FillRect(screen,
		float32(p.X), float32(p.Y),
		float32(p.Width), float32(p.Height),
		p.BGColor, true)
	vector.StrokeRect(screen,
		float32(p.X), float32(p.Y),
		float32(p.Width), float32(p.Height),
		2, p.BorderColor, true)

	ebitenutil.DebugPrintAt(screen, p.Title, int(p.X+10), int(p.Y+5))

	p.layout(
		func(title string, y float64) {
			vector.FillRect(screen,
				float32(p.X+5), float32(y),
				float32(p.Width-10), 20,
				color.RGBA{R: 60, G: 60, B: 70, A: 255}, true)
			ebitenutil.DebugPrintAt(screen, title, int(p.X+10), int(y+5))
		},
		func(i int, y float64) {
			if label := p.widgetLabel(i); label != "" {
				ebitenutil.DebugPrintAt(screen, label, int(p.X+10), int(y))
			}
			p.Widgets[i].Draw(screen)
		},
	)
}

func (p *UIPanel) widgetLabel(i int) string {
	label := p.Labels[i]
	if sw, ok := p.Widgets[i].(*SliderWrapper); ok && sw.Format != "" {
		return label + ": " + fmt.Sprintf(sw.Format, sw.Value)
	}
	return label
}

// calculateTotalHeight calculates the total content height
func (p *UIPanel) calculateTotalHeight() float64 {
	return titleHeight + p.calculateNextYOffset()
}
