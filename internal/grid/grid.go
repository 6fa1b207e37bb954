// Package grid implements the occupancy grid: a coarse index of which
// play-field cells currently hold a ball, the player, or the laser.
//
// The grid is a derived, non-owning footprint. Entities clear their old
// region before they move and mark the new one afterwards, so the grid never
// holds two positions for the same entity.
package grid

import (
	"github.com/vovakirdan/ball-breaker/internal/core"
)

// Channel identifies what kind of entity occupies a cell.
type Channel int

const (
	ChannelPlayer Channel = iota
	ChannelBall
	ChannelLaser
)

// ChannelCount is the number of occupancy channels.
const ChannelCount = 3

// Coord is a cell coordinate.
type Coord struct {
	X, Y int
}

// Region is a half-open block of cells: [X, X+W) × [Y, Y+H).
type Region struct {
	X, Y int
	W, H int
}

// Area returns the number of cells in the region.
func (r Region) Area() int {
	if r.W <= 0 || r.H <= 0 {
		return 0
	}
	return r.W * r.H
}

// Empty reports whether the region covers no cells.
func (r Region) Empty() bool {
	return r.Area() == 0
}

// Occupancy is the occupancy grid. Cells keep one counter per channel and are
// stored in row-major order: index = (y*Cols + x)*ChannelCount + channel.
// A cell is flagged on a channel while its counter is positive, so two
// overlapping balls never erase each other's marks.
type Occupancy struct {
	Cols, Rows     int
	RatioX, RatioY float64 // Field pixels per cell
	counts         []uint16
}

// New creates an empty grid of cols × rows cells covering a field of the
// given pixel size.
func New(cols, rows int, fieldW, fieldH float64) *Occupancy {
	return &Occupancy{
		Cols:   cols,
		Rows:   rows,
		RatioX: fieldW / float64(cols),
		RatioY: fieldH / float64(rows),
		counts: make([]uint16, cols*rows*ChannelCount),
	}
}

// RegionFor converts a pixel rectangle into cells by dividing by the cell
// ratios and rounding each of position and size.
func (g *Occupancy) RegionFor(r core.Rect) Region {
	return Region{
		X: core.Round(r.X / g.RatioX),
		Y: core.Round(r.Y / g.RatioY),
		W: core.Round(r.W / g.RatioX),
		H: core.Round(r.H / g.RatioY),
	}
}

// Clip restricts a region to the grid bounds.
func (g *Occupancy) Clip(r Region) Region {
	x0 := core.Clamp(r.X, 0, g.Cols)
	y0 := core.Clamp(r.Y, 0, g.Rows)
	x1 := core.Clamp(r.X+r.W, 0, g.Cols)
	y1 := core.Clamp(r.Y+r.H, 0, g.Rows)
	if x1 < x0 {
		x1 = x0
	}
	if y1 < y0 {
		y1 = y0
	}
	return Region{X: x0, Y: y0, W: x1 - x0, H: y1 - y0}
}

// InBounds returns true if the coordinate is within the grid boundaries.
func (g *Occupancy) InBounds(c Coord) bool {
	return c.X >= 0 && c.X < g.Cols && c.Y >= 0 && c.Y < g.Rows
}

// index converts a coordinate and channel to a flat array index.
func (g *Occupancy) index(x, y int, ch Channel) int {
	return (y*g.Cols+x)*ChannelCount + int(ch)
}

// Mark flags every in-bounds cell of the region on the channel.
func (g *Occupancy) Mark(r Region, ch Channel) {
	r = g.Clip(r)
	for y := r.Y; y < r.Y+r.H; y++ {
		for x := r.X; x < r.X+r.W; x++ {
			g.counts[g.index(x, y, ch)]++
		}
	}
}

// Clear removes one mark from every in-bounds cell of the region. Counters
// never go below zero.
func (g *Occupancy) Clear(r Region, ch Channel) {
	r = g.Clip(r)
	for y := r.Y; y < r.Y+r.H; y++ {
		for x := r.X; x < r.X+r.W; x++ {
			i := g.index(x, y, ch)
			if g.counts[i] > 0 {
				g.counts[i]--
			}
		}
	}
}

// Flagged reports whether the cell is occupied on the channel.
// Out-of-bounds cells are never flagged.
func (g *Occupancy) Flagged(c Coord, ch Channel) bool {
	if !g.InBounds(c) {
		return false
	}
	return g.counts[g.index(c.X, c.Y, ch)] > 0
}

// FlaggedCount returns the number of cells flagged on the channel.
func (g *Occupancy) FlaggedCount(ch Channel) int {
	count := 0
	for i := int(ch); i < len(g.counts); i += ChannelCount {
		if g.counts[i] > 0 {
			count++
		}
	}
	return count
}

// Free reports whether no ball occupies any in-bounds cell of the region.
func (g *Occupancy) Free(r Region) bool {
	r = g.Clip(r)
	for y := r.Y; y < r.Y+r.H; y++ {
		for x := r.X; x < r.X+r.W; x++ {
			if g.counts[g.index(x, y, ChannelBall)] > 0 {
				return false
			}
		}
	}
	return true
}

// ColumnFree reports whether column x is free of balls between rows y0
// (inclusive) and y1 (exclusive).
func (g *Occupancy) ColumnFree(x, y0, y1 int) bool {
	return g.Free(Region{X: x, Y: y0, W: 1, H: y1 - y0})
}

// Reset clears every cell on every channel.
func (g *Occupancy) Reset() {
	clear(g.counts)
}

// Clone returns a deep copy of the grid.
func (g *Occupancy) Clone() *Occupancy {
	counts := make([]uint16, len(g.counts))
	copy(counts, g.counts)
	clone := *g
	clone.counts = counts
	return &clone
}
