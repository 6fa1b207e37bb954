package levels

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/vovakirdan/ball-breaker/internal/config"
	"github.com/vovakirdan/ball-breaker/internal/core"
	"github.com/vovakirdan/ball-breaker/internal/game"
	"github.com/vovakirdan/ball-breaker/internal/physics"
)

func TestDefaultCatalog(t *testing.T) {
	c, err := Default()
	if err != nil {
		t.Fatalf("Default: %v", err)
	}
	if c.Count() != 8 {
		t.Fatalf("levels = %d, want 8", c.Count())
	}

	wantBudgets := []time.Duration{20, 35, 50, 65, 80, 90, 100, 100}
	for i, l := range c.Levels() {
		if want := wantBudgets[i] * time.Second; l.TimeBudget != want {
			t.Errorf("level %d budget = %v, want %v", i, l.TimeBudget, want)
		}
	}
}

func TestDefaultCatalogPlayable(t *testing.T) {
	c, err := Default()
	if err != nil {
		t.Fatalf("Default: %v", err)
	}

	// No level may start with a ball touching the player, on the field the
	// default config builds.
	cfg := config.Default()
	w, h := float64(cfg.Display.Width), float64(cfg.Height())
	player := game.NewPlayer(w, h, cfg.Player.Width, cfg.Player.Height, cfg.Player.Speed).Rect()
	tables := physics.NewTables(w, h)
	for i := range c.Count() {
		lvl, err := c.Level(i, w, h)
		if err != nil {
			t.Fatalf("Level(%d): %v", i, err)
		}
		for j, b := range lvl.Balls {
			side := tables.Sides[b.Size]
			r := core.NewRect(b.X, b.Y, side, side)
			if r.Intersects(player) {
				t.Errorf("level %d ball %d starts on the player", i, j)
			}
			if b.X < 0 || b.X > w {
				t.Errorf("level %d ball %d x = %v outside the field", i, j, b.X)
			}
		}
	}
}

func TestLevelResolvesFractions(t *testing.T) {
	c, err := NewCatalog([]Level{{
		Name:       "one",
		TimeBudget: time.Second,
		Balls: []Ball{
			{X: 0.5, Y: 0.2, Size: 1, Color: core.ColorRed, Direction: game.DirectionLeft, VY: -100},
			{X: 1, Y: 0.1, Size: 2, Color: core.ColorBlue},
		},
	}})
	if err != nil {
		t.Fatalf("NewCatalog: %v", err)
	}

	lvl, err := c.Level(0, 1780, 950)
	if err != nil {
		t.Fatalf("Level: %v", err)
	}
	first := lvl.Balls[0]
	if first.X != 890 || first.Y != 190 {
		t.Errorf("position = (%v, %v), want (890, 190)", first.X, first.Y)
	}
	if first.VY != -200 {
		t.Errorf("vy = %v, want -200 (scaled by field size)", first.VY)
	}
	if first.Direction != game.DirectionLeft || first.Color != core.ColorRed {
		t.Errorf("ball = %+v", first)
	}

	// A ball at the right edge is pulled back inside the field.
	second := lvl.Balls[1]
	if second.X >= 1780 {
		t.Errorf("x = %v, want inside the field", second.X)
	}
}

func TestLevelIndexOutOfRange(t *testing.T) {
	c, err := Default()
	if err != nil {
		t.Fatalf("Default: %v", err)
	}
	if _, err := c.Level(c.Count(), 890, 475); err == nil {
		t.Error("expected error for out-of-range index")
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		data string
		want error
	}{
		{"empty", "levels: []", ErrNoLevels},
		{"unknown color", `
levels:
  - name: a
    time_ms: 1000
    balls: [{x: 0.1, y: 0.1, size: 1, color: teal}]
`, ErrUnknownColor},
		{"bad size", `
levels:
  - name: a
    time_ms: 1000
    balls: [{x: 0.1, y: 0.1, size: 5, color: red}]
`, ErrInvalidLevel},
		{"no balls", `
levels:
  - name: a
    time_ms: 1000
`, ErrInvalidLevel},
		{"no time", `
levels:
  - name: a
    balls: [{x: 0.1, y: 0.1, size: 1, color: red}]
`, ErrInvalidLevel},
		{"outside field", `
levels:
  - name: a
    time_ms: 1000
    balls: [{x: 1.5, y: 0.1, size: 1, color: red}]
`, ErrInvalidLevel},
		{"bad direction", `
levels:
  - name: a
    time_ms: 1000
    balls: [{x: 0.1, y: 0.1, size: 1, color: red, direction: up}]
`, ErrInvalidLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.data), ".yaml")
			if !errors.Is(err, tt.want) {
				t.Errorf("err = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestParseTOML(t *testing.T) {
	data := `
[[levels]]
name = "toml"
time_ms = 5000

[[levels.balls]]
x = 0.25
y = 0.5
size = 3
color = "green"
direction = "right"
`
	c, err := Parse([]byte(data), ".toml")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	l := c.Levels()[0]
	if l.Name != "toml" || l.TimeBudget != 5*time.Second {
		t.Errorf("level = %+v", l)
	}
	if len(l.Balls) != 1 || l.Balls[0].Color != core.ColorGreen || l.Balls[0].Direction != game.DirectionRight {
		t.Errorf("balls = %+v", l.Balls)
	}
}

func TestParseDefaultsName(t *testing.T) {
	data := `
levels:
  - time_ms: 1000
    balls: [{x: 0.1, y: 0.1, size: 0, color: pink}]
`
	c, err := Parse([]byte(data), ".yml")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if got := c.Levels()[0].Name; got != "Level 1" {
		t.Errorf("name = %q, want %q", got, "Level 1")
	}
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "custom.yaml")
	data := `
levels:
  - name: custom
    time_ms: 3000
    balls: [{x: 0.1, y: 0.1, size: 2, color: orange}]
`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	c, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if c.Count() != 1 || c.Levels()[0].Name != "custom" {
		t.Errorf("catalog = %+v", c.Levels())
	}

	if _, err := Load(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}

	def, err := Load("")
	if err != nil || def.Count() != 8 {
		t.Errorf("Load(\"\") = %v, %v; want the default catalog", def, err)
	}
}

func TestCatalogDrivesGame(t *testing.T) {
	c, err := Default()
	if err != nil {
		t.Fatalf("Default: %v", err)
	}
	var _ game.LevelSource = c

	for _, mode := range []string{"endless", "campaign"} {
		t.Run(mode, func(t *testing.T) {
			g, err := newGame(c, mode)
			if err != nil {
				t.Fatalf("game.New: %v", err)
			}
			if len(g.Balls()) != len(c.Levels()[0].Balls) {
				t.Errorf("balls = %d, want %d", len(g.Balls()), len(c.Levels()[0].Balls))
			}
		})
	}
}

func newGame(c *Catalog, mode string) (*game.Game, error) {
	cfg := config.Default()
	cfg.Gameplay.Mode = mode
	return game.New(game.Options{Config: cfg, Levels: c})
}
