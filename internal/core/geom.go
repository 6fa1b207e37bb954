// Package core provides fundamental types and utilities shared by the game,
// the environment wrapper, and the terminal frontend. It has no external
// dependencies so the simulation stays pure and testable.
package core

import "math"

// Rect is an axis-aligned bounding box in play-field coordinates.
// Coordinates are continuous; the origin is the top-left corner of the field.
type Rect struct {
	X, Y float64 // Top-left corner position
	W, H float64 // Width and height
}

// NewRect creates a new rectangle with the given position and dimensions.
func NewRect(x, y, w, h float64) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// Right returns the x-coordinate of the right edge.
func (r Rect) Right() float64 {
	return r.X + r.W
}

// Bottom returns the y-coordinate of the bottom edge.
func (r Rect) Bottom() float64 {
	return r.Y + r.H
}

// Intersects returns true if this rectangle overlaps with another.
// Rectangles that only share an edge do not overlap.
func (r Rect) Intersects(other Rect) bool {
	if r.X >= other.Right() || other.X >= r.Right() {
		return false
	}
	if r.Y >= other.Bottom() || other.Y >= r.Bottom() {
		return false
	}
	return true
}

// Center returns the center point of the rectangle.
func (r Rect) Center() (float64, float64) {
	return r.X + r.W/2, r.Y + r.H/2
}

// IntersectsCircle reports whether the circle centred at (cx, cy) with
// radius radius overlaps the rectangle.
func (r Rect) IntersectsCircle(cx, cy, radius float64) bool {
	nx := ClampF(cx, r.X, r.Right())
	ny := ClampF(cy, r.Y, r.Bottom())
	dx := cx - nx
	dy := cy - ny
	return dx*dx+dy*dy < radius*radius
}

// Clamp restricts a value to be within [min, max].
func Clamp(val, min, max int) int {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}

// ClampF restricts a float64 value to be within [min, max].
func ClampF(val, min, max float64) float64 {
	return math.Max(min, math.Min(max, val))
}

// Round rounds half away from zero and converts to int.
func Round(v float64) int {
	return int(math.Round(v))
}
