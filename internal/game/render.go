package game

import (
	"fmt"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/lao-tseu-is-alive/go-arena-simulation/pkg/geometry"
	"github.com/lao-tseu-is-alive/go-arena-simulation/pkg/simulation"
)

// gridSpacing is the world distance between background grid lines.
const gridSpacing = 100.0

var (
	backgroundColor = color.RGBA{R: 12, G: 14, B: 24, A: 255}
	gridColor       = color.RGBA{R: 30, G: 34, B: 52, A: 255}
	playerColor     = color.RGBA{R: 80, G: 230, B: 120, A: 255}
	playerHeadColor = color.RGBA{R: 170, G: 255, B: 190, A: 255}
	boostGlowColor  = color.RGBA{R: 255, G: 230, B: 120, A: 160}
	huntColor       = color.RGBA{R: 255, G: 80, B: 80, A: 200}

	resourcePalette = []color.RGBA{
		{R: 255, G: 99, B: 132, A: 255},
		{R: 54, G: 162, B: 235, A: 255},
		{R: 255, G: 206, B: 86, A: 255},
		{R: 75, G: 192, B: 192, A: 255},
		{R: 153, G: 102, B: 255, A: 255},
	}
	competitorPalette = []color.RGBA{
		{R: 230, G: 126, B: 34, A: 255},
		{R: 155, G: 89, B: 182, A: 255},
		{R: 52, G: 152, B: 219, A: 255},
		{R: 231, G: 76, B: 60, A: 255},
		{R: 241, G: 196, B: 15, A: 255},
	}
)

// gridLines returns the screen offsets of the lines inside a view starting at world
// coordinate origin and spanning span world units.
func gridLines(origin, span, spacing, zoom float64) []float64 {
	var out []float64
	for w := math.Ceil(origin/spacing) * spacing; w < origin+span; w += spacing {
		out = append(out, (w-origin)*zoom)
	}
	return out
}

func shade(c color.RGBA, f float64) color.RGBA {
	ch := func(v uint8) uint8 { return uint8(math.Min(255, float64(v)*f)) }
	return color.RGBA{R: ch(c.R), G: ch(c.G), B: ch(c.B), A: c.A}
}

// renderer draws one frame in view coordinates.
type renderer struct {
	screen *ebiten.Image
	frame  *simulation.Frame
}

func (r renderer) project(p geometry.Vector2D) (float32, float32) {
	s := r.frame.Camera.Project(r.frame.World, p)
	return float32(s.X), float32(s.Y)
}

func (r renderer) visible(p geometry.Vector2D, radius float64) bool {
	return r.frame.Camera.Visible(r.frame.World, p, radius)
}

func (r renderer) background(showGrid bool) {
	r.screen.Fill(backgroundColor)
	if !showGrid {
		return
	}
	cam := r.frame.Camera
	w, h := float32(cam.ViewWidth), float32(cam.ViewHeight)
	for _, x := range gridLines(cam.Pos.X, cam.ViewWidth/cam.Zoom, gridSpacing, cam.Zoom) {
		vector.StrokeLine(r.screen, float32(x), 0, float32(x), h, 1, gridColor, false)
	}
	for _, y := range gridLines(cam.Pos.Y, cam.ViewHeight/cam.Zoom, gridSpacing, cam.Zoom) {
		vector.StrokeLine(r.screen, 0, float32(y), w, float32(y), 1, gridColor, false)
	}
}

func (r renderer) resources() {
	zoom := float32(r.frame.Camera.Zoom)
	for _, res := range r.frame.Resources {
		if !r.visible(res.Pos, res.Radius) {
			continue
		}
		x, y := r.project(res.Pos)
		clr := resourcePalette[int(res.Tag)%len(resourcePalette)]
		vector.FillCircle(r.screen, x, y, float32(res.Radius)*zoom, clr, true)
	}
}

// chain draws tail first so the head ends on top.
func (r renderer) chain(b *simulation.Body, body, head color.RGBA) {
	zoom := float32(r.frame.Camera.Zoom)
	radius := float32(b.Radius) * zoom
	n := len(b.Segments)
	for i := n - 1; i >= 0; i-- {
		seg := b.Segments[i]
		if !r.visible(seg, b.Radius) {
			continue
		}
		x, y := r.project(seg)
		clr := body
		if i == 0 {
			clr = head
		} else if i%2 == 1 {
			clr = shade(body, 0.85)
		}
		vector.FillCircle(r.screen, x, y, radius, clr, true)
	}
}

func (r renderer) glow(b *simulation.Body, clr color.RGBA) {
	if len(b.Segments) == 0 || !r.visible(b.Head(), b.Radius*1.6) {
		return
	}
	x, y := r.project(b.Head())
	vector.StrokeCircle(r.screen, x, y, float32(b.Radius*1.5*r.frame.Camera.Zoom), 2, clr, true)
}

func (r renderer) competitors() {
	for i := range r.frame.Competitors {
		c := &r.frame.Competitors[i]
		clr := competitorPalette[int(c.Tag)%len(competitorPalette)]
		r.chain(&c.Body, clr, shade(clr, 1.2))
		if c.IsBoosting {
			r.glow(&c.Body, boostGlowColor)
		} else if c.Hunting {
			r.glow(&c.Body, huntColor)
		}
	}
}

func (r renderer) player() {
	p := &r.frame.Player
	if len(p.Segments) == 0 {
		return
	}
	r.chain(&p.Body, playerColor, playerHeadColor)
	if p.Boosting {
		r.glow(&p.Body, boostGlowColor)
	}
}

func (r renderer) particles(ps *Particles) {
	zoom := float32(r.frame.Camera.Zoom)
	for i := range ps.items {
		p := &ps.items[i]
		if !r.visible(p.pos, p.size) {
			continue
		}
		x, y := r.project(p.pos)
		clr := p.color
		clr.A = uint8(float64(clr.A) * p.alpha())
		vector.FillCircle(r.screen, x, y, float32(p.size)*zoom, clr, true)
	}
}

func (r renderer) hud(cfg *simulation.Config, tokens int) {
	p := &r.frame.Player
	ebitenutil.DebugPrintAt(r.screen,
		fmt.Sprintf("Score: %d  Lives: %d  Length: %d  Tokens: %d", p.Score, p.Lives, len(p.Segments), tokens),
		10, 10)

	// boost energy bar with the sprint reserve underneath
	const barW, barH = 160.0, 8.0
	x, y := float32(10), float32(r.frame.Camera.ViewHeight-30)
	energy := p.BoostEnergy / cfg.Boost.EnergyMax
	reserve := 0.0
	if cfg.Boost.ReserveSeconds > 0 {
		reserve = math.Min(1, p.BoostReserve/cfg.Boost.ReserveSeconds)
	}
	vector.FillRect(r.screen, x, y, barW, barH, color.RGBA{R: 50, G: 50, B: 60, A: 255}, true)
	vector.FillRect(r.screen, x, y, float32(barW*energy), barH, color.RGBA{R: 255, G: 210, B: 70, A: 255}, true)
	vector.FillRect(r.screen, x, y+barH+2, float32(barW*reserve), 3, color.RGBA{R: 120, G: 220, B: 255, A: 255}, true)
	vector.StrokeRect(r.screen, x, y, barW, barH, 1, color.RGBA{R: 200, G: 200, B: 200, A: 255}, true)
	ebitenutil.DebugPrintAt(r.screen, "BOOST", int(x)+barW+8, int(y)-4)
}

func (r renderer) messages(lines []string) {
	cam := r.frame.Camera
	y := int(cam.ViewHeight/3) - len(lines)*8
	for _, line := range lines {
		x := int(cam.ViewWidth/2) - len(line)*3
		ebitenutil.DebugPrintAt(r.screen, line, x, y)
		y += 18
	}
}

func (r renderer) gameOver() {
	cam := r.frame.Camera
	vector.FillRect(r.screen, 0, 0, float32(cam.ViewWidth), float32(cam.ViewHeight), color.RGBA{A: 150}, false)
	msg := fmt.Sprintf("GAME OVER\nScore: %d", r.frame.Player.Score)
	ebitenutil.DebugPrintAt(r.screen, msg, int(cam.ViewWidth/2)-30, int(cam.ViewHeight/2)-60)
}
