package game

import "github.com/vovakirdan/ball-breaker/internal/core"

// Laser is the vertical projectile. It grows upward from the floor until it
// reaches the ceiling or hits a ball.
type Laser struct {
	CenterX float64
	Top     float64
	Bottom  float64
	Width   float64
	Speed   float64 // Pixels per second
}

// NewLaser creates a laser at centerX whose top edge starts at top.
func NewLaser(centerX, top, bottom, width, speed float64) *Laser {
	return &Laser{
		CenterX: centerX,
		Top:     top,
		Bottom:  bottom,
		Width:   width,
		Speed:   speed,
	}
}

// Advance raises the top edge over dt seconds.
func (l *Laser) Advance(dt float64) {
	l.Top -= l.Speed * dt
}

// ReachedCeiling reports whether the top edge left the field.
func (l *Laser) ReachedCeiling() bool {
	return l.Top <= 0
}

// Rect returns the laser's bounding box.
func (l *Laser) Rect() core.Rect {
	top := max(l.Top, 0)
	return core.NewRect(l.CenterX-l.Width/2, top, l.Width, l.Bottom-top)
}

// Hits reports whether the laser touches b.
func (l *Laser) Hits(b *Ball, p Precision) bool {
	return overlaps(l.Rect(), b, p)
}

// FirstHit returns the index of the first ball the laser touches, or -1.
func (l *Laser) FirstHit(balls []*Ball, p Precision) int {
	for i, b := range balls {
		if l.Hits(b, p) {
			return i
		}
	}
	return -1
}
