package terminal

import (
	"github.com/gdamore/tcell/v2"

	"github.com/lao-tseu-is-alive/go-arena-simulation/pkg/geometry"
	"github.com/lao-tseu-is-alive/go-arena-simulation/pkg/simulation"
)

// hudRows are reserved at the top of the terminal.
const hudRows = 1

var (
	resourceStyles = []tcell.Style{
		tcell.StyleDefault.Foreground(tcell.ColorHotPink),
		tcell.StyleDefault.Foreground(tcell.ColorDodgerBlue),
		tcell.StyleDefault.Foreground(tcell.ColorGold),
		tcell.StyleDefault.Foreground(tcell.ColorMediumAquamarine),
		tcell.StyleDefault.Foreground(tcell.ColorMediumPurple),
	}
	competitorStyles = []tcell.Style{
		tcell.StyleDefault.Foreground(tcell.ColorOrange),
		tcell.StyleDefault.Foreground(tcell.ColorPurple),
		tcell.StyleDefault.Foreground(tcell.ColorSteelBlue),
		tcell.StyleDefault.Foreground(tcell.ColorIndianRed),
		tcell.StyleDefault.Foreground(tcell.ColorYellow),
	}
	playerStyle   = tcell.StyleDefault.Foreground(tcell.ColorLime)
	headStyle     = tcell.StyleDefault.Foreground(tcell.ColorWhite).Bold(true)
	huntStyle     = tcell.StyleDefault.Foreground(tcell.ColorRed).Bold(true)
	hudStyle      = tcell.StyleDefault.Foreground(tcell.ColorBlack).Background(tcell.ColorLightGray)
	messageStyle  = tcell.StyleDefault.Foreground(tcell.ColorYellow).Bold(true)
	gameOverStyle = tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(tcell.ColorDarkRed).Bold(true)
)

// viewport maps the camera's view onto a grid of terminal cells below the HUD.
type viewport struct {
	cols, rows int
	world      geometry.Torus
	camera     simulation.Camera
}

// cell returns the terminal cell holding world position p, false when it is off screen.
func (v viewport) cell(p geometry.Vector2D) (int, int, bool) {
	rows := v.rows - hudRows
	if v.cols <= 0 || rows <= 0 {
		return 0, 0, false
	}
	s := v.camera.Project(v.world, p)
	if s.X < 0 || s.Y < 0 || s.X >= v.camera.ViewWidth || s.Y >= v.camera.ViewHeight {
		return 0, 0, false
	}
	col := int(s.X / v.camera.ViewWidth * float64(v.cols))
	row := int(s.Y/v.camera.ViewHeight*float64(rows)) + hudRows
	return col, row, true
}

// canvas is the subset of tcell.Screen the renderer draws on.
type canvas interface {
	SetContent(x, y int, primary rune, combining []rune, style tcell.Style)
}

func put(c canvas, v viewport, p geometry.Vector2D, r rune, style tcell.Style) {
	if x, y, ok := v.cell(p); ok {
		c.SetContent(x, y, r, nil, style)
	}
}

func text(c canvas, x, y int, s string, style tcell.Style) {
	for i, r := range []rune(s) {
		c.SetContent(x+i, y, r, nil, style)
	}
}

// drawFrame paints the arena, later layers overwrite earlier ones in the same cell.
func drawFrame(c canvas, v viewport, f *simulation.Frame) {
	for _, r := range f.Resources {
		put(c, v, r.Pos, '·', resourceStyles[int(r.Tag)%len(resourceStyles)])
	}
	for i := range f.Competitors {
		comp := &f.Competitors[i]
		style := competitorStyles[int(comp.Tag)%len(competitorStyles)]
		for j := len(comp.Segments) - 1; j > 0; j-- {
			put(c, v, comp.Segments[j], 'o', style)
		}
		head := style.Bold(true)
		if comp.Hunting {
			head = huntStyle
		}
		put(c, v, comp.Head(), '@', head)
	}
	p := &f.Player
	for j := len(p.Segments) - 1; j > 0; j-- {
		put(c, v, p.Segments[j], 'O', playerStyle)
	}
	if len(p.Segments) > 0 {
		r := '@'
		if p.Boosting {
			r = '*'
		}
		put(c, v, p.Head(), r, headStyle)
	}
}
