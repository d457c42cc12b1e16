package ui

import (
	"math"
	"testing"
)

func TestButton_press(t *testing.T) {
	clicks := 0
	b := NewButton(10, 10, 100, 20, "Continue", func() { clicks++ })

	b.press(50, 20, true)
	b.press(50, 20, true) // held
	if clicks != 1 {
		t.Fatalf("a held press must click once, got %d", clicks)
	}
	b.press(50, 20, false)
	b.press(50, 20, true)
	if clicks != 2 {
		t.Errorf("expected a second click after release, got %d", clicks)
	}

	t.Run("outside", func(t *testing.T) {
		b.press(0, 0, false)
		b.press(200, 20, true)
		if clicks != 2 {
			t.Errorf("press outside the button clicked it")
		}
	})

	t.Run("disabled", func(t *testing.T) {
		b.press(0, 0, false)
		b.Disabled = true
		b.press(50, 20, true)
		if clicks != 2 {
			t.Errorf("disabled button clicked")
		}
		// a press held while the button re-enables must not fire
		b.Disabled = false
		b.press(50, 20, true)
		if clicks != 2 {
			t.Errorf("held press fired on re-enable")
		}
	})
}

func TestCheckbox_press(t *testing.T) {
	var changes []bool
	c := NewCheckbox(0, 0, "Keyboard steering", false)
	c.OnChange = func(v bool) { changes = append(changes, v) }

	c.press(8, 8, true)
	c.press(8, 8, true)
	c.press(8, 8, false)
	c.press(8, 8, true)
	if c.Value || len(changes) != 2 || !changes[0] || changes[1] {
		t.Errorf("value %v, changes %v", c.Value, changes)
	}

	t.Run("disabled", func(t *testing.T) {
		c.press(8, 8, false)
		c.Disabled = true
		c.press(8, 8, true)
		if c.Value || len(changes) != 2 {
			t.Fatalf("disabled checkbox toggled: value %v", c.Value)
		}
		c.Disabled = false
		c.press(8, 8, true)
		if c.Value {
			t.Error("a press held since before enabling must not toggle")
		}
		c.press(8, 8, false)
		c.press(8, 8, true)
		if !c.Value || len(changes) != 3 {
			t.Errorf("value %v, changes %v", c.Value, changes)
		}
	})

	t.Run("outside the box", func(t *testing.T) {
		c.press(8, 8, false)
		c.press(30, 8, true)
		if !c.Value {
			t.Error("a press beside the box toggled it")
		}
	})
}

func TestSlider(t *testing.T) {
	tests := []struct {
		name string
		step float64
		x    float64
		want float64
	}{
		{"left edge", 0, 100, 0},
		{"middle", 0, 150, 0.5},
		{"snapped to step", 0.25, 162, 0.5},
		{"right edge", 0.25, 200, 1},
		{"beyond the track clamps", 0, 260, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewSlider(100, 0, 100, "Volume", 0, 1, 0.3)
			s.Step = tt.step
			s.setFromX(tt.x)
			if math.Abs(s.Value-tt.want) > 1e-9 {
				t.Errorf("value = %v, want %v", s.Value, tt.want)
			}
		})
	}

	t.Run("callback only on change", func(t *testing.T) {
		calls := 0
		s := NewSlider(0, 0, 10, "x", 0, 10, 5)
		s.OnChange = func(float64) { calls++ }
		s.setFromX(5)
		s.setFromX(8)
		if calls != 1 {
			t.Errorf("expected one change callback, got %d", calls)
		}
	})

	t.Run("initial value clamped", func(t *testing.T) {
		if s := NewSlider(0, 0, 10, "x", 0, 1, 4); s.Value != 1 || s.Ratio() != 1 {
			t.Errorf("value %v ratio %v", s.Value, s.Ratio())
		}
	})
}

func TestUIPanel_layout(t *testing.T) {
	p := NewUIPanel(10, 10, 200, 120)
	p.AddSection("Controls")
	cb := p.AddCheckbox("Keyboard steering", false)
	vol := p.AddSlider("Volume", 0, 1, 0.5)
	p.EndSection()
	p.AddSection("Game")
	btn := p.AddButton("Restart", nil)
	p.EndSection()

	var headers []string
	var drawn []int
	p.layout(
		func(title string, _ float64) { headers = append(headers, title) },
		func(i int, _ float64) { drawn = append(drawn, i) },
	)
	if len(headers) != 2 {
		t.Errorf("headers = %v", headers)
	}
	if !(cb.Y < vol.Y && vol.Y < btn.Y) {
		t.Errorf("widgets out of order: checkbox %v slider %v button %v", cb.Y, vol.Y, btn.Y)
	}
	if len(drawn) == 0 || drawn[0] != 0 {
		t.Errorf("expected the first widget to be visible, drawn %v", drawn)
	}

	t.Run("scroll is clamped", func(t *testing.T) {
		p.scroll(-1000)
		want := p.calculateTotalHeight() - p.Height + 40
		if math.Abs(p.ScrollOffset-want) > 1e-9 {
			t.Errorf("scroll = %v, want %v", p.ScrollOffset, want)
		}
		p.scroll(1000)
		if p.ScrollOffset != 0 {
			t.Errorf("scroll = %v, want 0", p.ScrollOffset)
		}
	})

	t.Run("contains", func(t *testing.T) {
		if !p.Contains(20, 20) || p.Contains(300, 20) {
			t.Error("Contains disagrees with the panel bounds")
		}
		p.Hidden = true
		if p.Contains(20, 20) {
			t.Error("hidden panel must not capture the cursor")
		}
	})
}
