// Package game implements the Ball Breaker simulation: ball entities, the
// collision resolver, the reward model, and the per-frame episode loop.
// It contains no terminal or agent code; frontends drive it through Step.
package game

import (
	"math"

	"github.com/vovakirdan/ball-breaker/internal/core"
	"github.com/vovakirdan/ball-breaker/internal/grid"
	"github.com/vovakirdan/ball-breaker/internal/physics"
)

// ChildOffset is the horizontal distance between a popped ball and each child.
const ChildOffset = 10

// Direction is the initial horizontal heading of a ball.
type Direction int

const (
	DirectionNone Direction = iota
	DirectionLeft
	DirectionRight
)

// String returns the direction name used in level files.
func (d Direction) String() string {
	switch d {
	case DirectionLeft:
		return "left"
	case DirectionRight:
		return "right"
	default:
		return "none"
	}
}

// BallSpec describes a ball to create. When Direction is set it overrides VX
// with the drift speed toward that side.
type BallSpec struct {
	X, Y      float64 // Top-left position in pixels
	VX, VY    float64 // Initial velocity
	AX        float64 // Initial horizontal acceleration
	Direction Direction
	Size      int
	Color     core.Color
}

// Ball is one bouncing body. It owns its motion state and keeps its footprint
// in the occupancy grid in sync with its position.
type Ball struct {
	motion    physics.Motion
	size      int
	color     core.Color
	side      float64
	tables    *physics.Tables
	occ       *grid.Occupancy
	footprint grid.Region
}

// NewBall creates a ball and marks its footprint in occ. Sizes outside the
// size table are clamped into it. occ may be nil for balls that are not
// tracked by a grid.
func NewBall(spec BallSpec, tables *physics.Tables, occ *grid.Occupancy) *Ball {
	size := core.Clamp(spec.Size, 0, physics.SizeCount-1)

	vx := spec.VX
	switch spec.Direction {
	case DirectionLeft:
		vx = -tables.XSpeed
	case DirectionRight:
		vx = tables.XSpeed
	}

	b := &Ball{
		motion: physics.Motion{
			X:  spec.X,
			Y:  spec.Y,
			VX: vx,
			VY: spec.VY,
			AX: spec.AX,
			AY: tables.YAcc[size],
		},
		size:   size,
		color:  spec.Color,
		side:   tables.Sides[size],
		tables: tables,
		occ:    occ,
	}
	b.mark()
	return b
}

// X returns the left edge.
func (b *Ball) X() float64 { return b.motion.X }

// Y returns the top edge.
func (b *Ball) Y() float64 { return b.motion.Y }

// VX returns the horizontal velocity.
func (b *Ball) VX() float64 { return b.motion.VX }

// VY returns the vertical velocity.
func (b *Ball) VY() float64 { return b.motion.VY }

// Motion returns a copy of the kinematic state.
func (b *Ball) Motion() physics.Motion { return b.motion }

// Size returns the size class.
func (b *Ball) Size() int { return b.size }

// Color returns the color tag.
func (b *Ball) Color() core.Color { return b.color }

// Side returns the side length of the bounding box.
func (b *Ball) Side() float64 { return b.side }

// Rect returns the bounding box.
func (b *Ball) Rect() core.Rect {
	return core.NewRect(b.motion.X, b.motion.Y, b.side, b.side)
}

// Footprint returns the grid region the ball currently marks.
func (b *Ball) Footprint() grid.Region { return b.footprint }

// Advance integrates the ball over dt seconds and moves its footprint.
// It returns true when the ball crossed above the field (a ceiling pop); the
// footprint is then cleared and the ball must leave play.
func (b *Ball) Advance(dt float64) (ceilingPop bool) {
	b.unmark()
	b.motion = physics.Integrate(b.motion, dt)

	if b.motion.Y < 0 {
		return true
	}

	// Post-split acceleration decays into the steady drift speed.
	if b.motion.AX != 0 && math.Abs(b.motion.VX) >= b.tables.XSpeed {
		b.motion.VX = math.Copysign(b.tables.XSpeed, b.motion.VX)
		b.motion.AX = 0
	}

	b.mark()
	return false
}

// BounceHorizontal sends the ball back toward the centre of the field.
func (b *Ball) BounceHorizontal() {
	b.motion.VX = b.tables.SideBounceSpeed(b.motion.X)
}

// BounceVertical launches the ball upward with its size's bounce speed.
func (b *Ball) BounceVertical() {
	b.motion.VY = b.tables.LaunchSpeed[b.size]
}

// Pop clears the ball's footprint and returns its two children, or nil for
// the smallest size. Children are one size smaller, start ChildOffset pixels
// to each side heading left and right, and launch faster the closer the
// parent was to the peak of its arc.
func (b *Ball) Pop() []*Ball {
	b.unmark()
	if b.size == 0 {
		return nil
	}

	vertex := physics.TimeFromVertex(b.motion.VY, b.motion.AY)
	vy := b.tables.PopLaunchSpeed(vertex)

	left := BallSpec{
		X:         b.motion.X - ChildOffset,
		Y:         b.motion.Y,
		VY:        vy,
		Direction: DirectionLeft,
		Size:      b.size - 1,
		Color:     b.color,
	}
	right := left
	right.X = b.motion.X + ChildOffset
	right.Direction = DirectionRight

	return []*Ball{
		NewBall(left, b.tables, b.occ),
		NewBall(right, b.tables, b.occ),
	}
}

// Features returns the normalized bounding box [left, right, top, bottom].
func (b *Ball) Features() [4]float64 {
	w, h := b.tables.Width, b.tables.Height
	return [4]float64{
		b.motion.X / w,
		(b.motion.X + b.side) / w,
		b.motion.Y / h,
		(b.motion.Y + b.side) / h,
	}
}

func (b *Ball) mark() {
	if b.occ == nil {
		return
	}
	b.footprint = b.occ.RegionFor(b.Rect())
	b.occ.Mark(b.footprint, grid.ChannelBall)
}

func (b *Ball) unmark() {
	if b.occ == nil || b.footprint.Empty() {
		return
	}
	b.occ.Clear(b.footprint, grid.ChannelBall)
	b.footprint = grid.Region{}
}
