package game

import (
	"github.com/vovakirdan/ball-breaker/internal/core"
)

// Player is the shooter standing on the platform.
type Player struct {
	X, Y   float64 // Top-left position
	W, H   float64
	Speed  float64 // Pixels per second
	vx     float64
	fieldW float64
}

// NewPlayer creates a player centred on a field of width fieldW, standing on
// the floor at floorY.
func NewPlayer(fieldW, floorY, w, h, speed float64) *Player {
	return &Player{
		X:      (fieldW - w) / 2,
		Y:      floorY - h,
		W:      w,
		H:      h,
		Speed:  speed,
		fieldW: fieldW,
	}
}

// Left starts moving left.
func (p *Player) Left() { p.vx = -p.Speed }

// Right starts moving right.
func (p *Player) Right() { p.vx = p.Speed }

// Stop halts horizontal movement.
func (p *Player) Stop() { p.vx = 0 }

// Velocity returns the current horizontal velocity.
func (p *Player) Velocity() float64 { return p.vx }

// Update moves the player over dt seconds and keeps it inside the field.
func (p *Player) Update(dt float64) {
	p.X = core.ClampF(p.X+p.vx*dt, 0, p.fieldW-p.W)
}

// BadMove reports whether a movement action pushes against a field edge.
func (p *Player) BadMove(a core.Action) bool {
	switch a {
	case core.ActionMoveLeft:
		return p.X <= 0
	case core.ActionMoveRight:
		return p.X >= p.fieldW-p.W
	default:
		return false
	}
}

// Rect returns the player's bounding box.
func (p *Player) Rect() core.Rect {
	return core.NewRect(p.X, p.Y, p.W, p.H)
}

// CenterX returns the horizontal centre.
func (p *Player) CenterX() float64 {
	return p.X + p.W/2
}
