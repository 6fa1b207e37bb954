package game

import (
	"fmt"

	"github.com/vovakirdan/ball-breaker/internal/config"
	"github.com/vovakirdan/ball-breaker/internal/core"
)

// Precision selects how ball overlap is tested.
type Precision int

const (
	// PrecisionShape treats a ball as the circle inscribed in its box.
	PrecisionShape Precision = iota
	// PrecisionBox uses the ball's bounding box.
	PrecisionBox
)

// String returns the config name of the precision.
func (p Precision) String() string {
	if p == PrecisionBox {
		return config.CollisionBox
	}
	return config.CollisionShape
}

// ParsePrecision maps a config value to a Precision.
func ParsePrecision(name string) (Precision, error) {
	switch name {
	case config.CollisionShape, "":
		return PrecisionShape, nil
	case config.CollisionBox:
		return PrecisionBox, nil
	default:
		return PrecisionShape, fmt.Errorf("game: unknown collision precision %q", name)
	}
}

// Collider holds the collision rules of an episode.
type Collider struct {
	Precision Precision
	Band      float64 // Vertical pre-check band for player hits
	FieldW    float64
}

// PlayerHit reports whether b touches the player. The ball must be within the
// band above the player before the overlap test runs.
func (c Collider) PlayerHit(p *Player, b *Ball) bool {
	if b.Y()+c.Band <= p.Y {
		return false
	}
	return overlaps(p.Rect(), b, c.Precision)
}

// LaserHit reports whether the laser touches b.
func (c Collider) LaserHit(l *Laser, b *Ball) bool {
	return l.Hits(b, c.Precision)
}

// OnPlatform reports whether b overlaps the floor.
func (c Collider) OnPlatform(pl Platform, b *Ball) bool {
	return pl.Rect.Intersects(b.Rect())
}

// OutOfBounds reports whether b crossed a side of the field.
func (c Collider) OutOfBounds(b *Ball) bool {
	return b.X() < 0 || b.X() > c.FieldW-b.Side()
}

func overlaps(r core.Rect, b *Ball, p Precision) bool {
	box := b.Rect()
	if p == PrecisionBox {
		return r.Intersects(box)
	}
	cx, cy := box.Center()
	return r.IntersectsCircle(cx, cy, b.Side()/2)
}
