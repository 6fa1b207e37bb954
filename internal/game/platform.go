package game

import "github.com/vovakirdan/ball-breaker/internal/core"

// Platform is the floor balls bounce on.
type Platform struct {
	Rect core.Rect
}

// NewPlatform creates a floor of the given thickness spanning the field width
// with its top edge at floorY.
func NewPlatform(fieldW, floorY, thickness float64) Platform {
	return Platform{Rect: core.NewRect(0, floorY, fieldW, thickness)}
}
