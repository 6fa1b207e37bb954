// Package levels provides the Ball Breaker level catalog.
// This package depends on game but game does not depend on levels.
package levels

import (
	_ "embed"
	"errors"
	"fmt"
	"time"

	"github.com/vovakirdan/ball-breaker/internal/core"
	"github.com/vovakirdan/ball-breaker/internal/game"
	"github.com/vovakirdan/ball-breaker/internal/physics"
)

//go:embed catalog/default.yaml
var defaultCatalog []byte

var (
	// ErrNoLevels is returned for a catalog without levels.
	ErrNoLevels = errors.New("levels: catalog has no levels")
	// ErrUnknownColor is returned for a ball color outside the palette.
	ErrUnknownColor = errors.New("levels: unknown ball color")
	// ErrInvalidLevel is returned for a level that cannot be played.
	ErrInvalidLevel = errors.New("levels: invalid level")
)

// Ball places one ball in a level. Positions are fractions of the field.
type Ball struct {
	X, Y      float64
	Size      int
	Color     core.Color
	Direction game.Direction
	VY        float64 // Reference pixels per second
}

// Level is one entry of the catalog.
type Level struct {
	Name       string
	TimeBudget time.Duration
	Balls      []Ball
}

// Validate checks that the level can be played.
func (l Level) Validate() error {
	if l.TimeBudget <= 0 {
		return fmt.Errorf("%w: %q time budget must be positive", ErrInvalidLevel, l.Name)
	}
	if len(l.Balls) == 0 {
		return fmt.Errorf("%w: %q has no balls", ErrInvalidLevel, l.Name)
	}
	for i, b := range l.Balls {
		if !physics.ValidSize(b.Size) {
			return fmt.Errorf("%w: %q ball %d size %d out of range", ErrInvalidLevel, l.Name, i, b.Size)
		}
		if b.X < 0 || b.X > 1 || b.Y < 0 || b.Y > 1 {
			return fmt.Errorf("%w: %q ball %d position (%v, %v) outside the field", ErrInvalidLevel, l.Name, i, b.X, b.Y)
		}
	}
	return nil
}

// Catalog is an ordered list of levels. It implements game.LevelSource.
type Catalog struct {
	levels []Level
}

// NewCatalog validates levels and returns a catalog of them.
func NewCatalog(levels []Level) (*Catalog, error) {
	if len(levels) == 0 {
		return nil, ErrNoLevels
	}
	for _, l := range levels {
		if err := l.Validate(); err != nil {
			return nil, err
		}
	}
	return &Catalog{levels: levels}, nil
}

// Default returns the embedded catalog.
func Default() (*Catalog, error) {
	return Parse(defaultCatalog, ".yaml")
}

// Count returns the number of levels.
func (c *Catalog) Count() int {
	return len(c.levels)
}

// Levels returns a copy of the catalog entries.
func (c *Catalog) Levels() []Level {
	out := make([]Level, len(c.levels))
	copy(out, c.levels)
	return out
}

// Level resolves the level at index for a field of the given size. Balls are
// kept inside the field horizontally.
func (c *Catalog) Level(index int, fieldW, fieldH float64) (game.Level, error) {
	if index < 0 || index >= len(c.levels) {
		return game.Level{}, fmt.Errorf("levels: index %d out of range [0, %d)", index, len(c.levels))
	}
	l := c.levels[index]
	tables := physics.NewTables(fieldW, fieldH)

	specs := make([]game.BallSpec, len(l.Balls))
	for i, b := range l.Balls {
		side := tables.Sides[b.Size]
		specs[i] = game.BallSpec{
			X:         core.ClampF(b.X*fieldW, 0, fieldW-side),
			Y:         b.Y * fieldH,
			VY:        b.VY * tables.Resize,
			Direction: b.Direction,
			Size:      b.Size,
			Color:     b.Color,
		}
	}

	return game.Level{
		Name:       l.Name,
		TimeBudget: l.TimeBudget,
		Balls:      specs,
	}, nil
}
