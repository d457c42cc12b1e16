package game

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/lao-tseu-is-alive/go-arena-simulation/pkg/geometry"
	"github.com/lao-tseu-is-alive/go-arena-simulation/pkg/simulation"
)

// cursorDeadZone is the screen distance around the head where the mouse stops steering.
const cursorDeadZone = 6

// keyboardSteer turns WASD/arrow state into a direction; opposite keys cancel out.
func keyboardSteer(up, down, left, right bool) geometry.Vector2D {
	var v geometry.Vector2D
	if up {
		v.Y--
	}
	if down {
		v.Y++
	}
	if left {
		v.X--
	}
	if right {
		v.X++
	}
	return v
}

// mouseSteer points from the head's screen position to the cursor.
func mouseSteer(cursor, head geometry.Vector2D) geometry.Vector2D {
	d := cursor.Sub(head)
	if d.LenSqr() < cursorDeadZone*cursorDeadZone {
		return geometry.Vector2D{}
	}
	return d
}

// sampleInput reads the devices once for this tick.
func (g *Game) sampleInput() simulation.Input {
	in := simulation.Input{
		Exit: inpututil.IsKeyJustPressed(ebiten.KeyEscape),
	}
	mx, my := ebiten.CursorPosition()
	cursor := geometry.Vector2D{X: float64(mx), Y: float64(my)}
	overPanel := g.panel.Contains(cursor.X, cursor.Y)

	if g.widgetKeyboard.Value {
		in.Steer = keyboardSteer(
			ebiten.IsKeyPressed(ebiten.KeyW) || ebiten.IsKeyPressed(ebiten.KeyArrowUp),
			ebiten.IsKeyPressed(ebiten.KeyS) || ebiten.IsKeyPressed(ebiten.KeyArrowDown),
			ebiten.IsKeyPressed(ebiten.KeyA) || ebiten.IsKeyPressed(ebiten.KeyArrowLeft),
			ebiten.IsKeyPressed(ebiten.KeyD) || ebiten.IsKeyPressed(ebiten.KeyArrowRight),
		)
	} else if !overPanel && len(g.lastFrame.Player.Segments) > 0 {
		head := g.lastFrame.Camera.Project(g.lastFrame.World, g.lastFrame.Player.Head())
		in.Steer = mouseSteer(cursor, head)
	}

	in.Boost = ebiten.IsKeyPressed(ebiten.KeySpace) ||
		(!overPanel && ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft))
	return in
}
