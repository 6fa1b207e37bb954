package env

import (
	"fmt"

	"github.com/vovakirdan/ball-breaker/internal/config"
	"github.com/vovakirdan/ball-breaker/internal/game"
	"github.com/vovakirdan/ball-breaker/internal/grid"
)

// Encoding selects the observation layout.
type Encoding string

const (
	// EncodingGrid is a rows x cols x 3 occupancy tensor with channels
	// player, ball, laser.
	EncodingGrid Encoding = config.ObservationGrid
	// EncodingFeatures is a fixed-length vector: player centre x, shooting
	// flag, then four normalized box edges per ball.
	EncodingFeatures Encoding = config.ObservationFeatures
)

// ParseEncoding maps a config value to an Encoding.
func ParseEncoding(name string) (Encoding, error) {
	switch Encoding(name) {
	case EncodingGrid, "":
		return EncodingGrid, nil
	case EncodingFeatures:
		return EncodingFeatures, nil
	default:
		return EncodingGrid, fmt.Errorf("env: unknown observation %q", name)
	}
}

// Observation is a flat float32 vector laid out according to its Shape.
type Observation struct {
	Shape []int
	Data  []float32
}

// At returns the grid value at row y, column x, channel ch. It is only
// meaningful for the grid encoding.
func (o Observation) At(y, x int, ch grid.Channel) float32 {
	cols := o.Shape[1]
	return o.Data[(y*cols+x)*grid.ChannelCount+int(ch)]
}

// encoder builds observations from the game state.
type encoder struct {
	encoding Encoding
	features int
	overlay  *grid.Occupancy // Player and laser channels
}

func newEncoder(enc Encoding, features int, g *game.Game) *encoder {
	occ := g.Grid()
	tables := g.Tables()
	return &encoder{
		encoding: enc,
		features: features,
		overlay:  grid.New(occ.Cols, occ.Rows, tables.Width, tables.Height),
	}
}

func (e *encoder) shape(g *game.Game) []int {
	if e.encoding == EncodingFeatures {
		return []int{e.features}
	}
	occ := g.Grid()
	return []int{occ.Rows, occ.Cols, grid.ChannelCount}
}

func (e *encoder) encode(g *game.Game) Observation {
	if e.encoding == EncodingFeatures {
		return e.encodeFeatures(g)
	}
	return e.encodeGrid(g)
}

func (e *encoder) encodeGrid(g *game.Game) Observation {
	occ := g.Grid()
	e.overlay.Reset()
	e.overlay.Mark(e.overlay.RegionFor(g.Player().Rect()), grid.ChannelPlayer)
	if l := g.Laser(); l != nil {
		// The beam is narrower than a cell; keep it one column wide.
		r := e.overlay.RegionFor(l.Rect())
		r.W = max(r.W, 1)
		e.overlay.Mark(r, grid.ChannelLaser)
	}

	data := make([]float32, occ.Rows*occ.Cols*grid.ChannelCount)
	for y := range occ.Rows {
		for x := range occ.Cols {
			c := grid.Coord{X: x, Y: y}
			base := (y*occ.Cols + x) * grid.ChannelCount
			if e.overlay.Flagged(c, grid.ChannelPlayer) {
				data[base+int(grid.ChannelPlayer)] = 1
			}
			if occ.Flagged(c, grid.ChannelBall) {
				data[base+int(grid.ChannelBall)] = 1
			}
			if e.overlay.Flagged(c, grid.ChannelLaser) {
				data[base+int(grid.ChannelLaser)] = 1
			}
		}
	}
	return Observation{Shape: e.shape(g), Data: data}
}

func (e *encoder) encodeFeatures(g *game.Game) Observation {
	data := make([]float32, e.features)
	vals := make([]float64, 0, 2+4*len(g.Balls()))

	vals = append(vals, g.Player().CenterX()/g.Tables().Width)
	if g.Shooting() {
		vals = append(vals, 1)
	} else {
		vals = append(vals, 0)
	}
	for _, b := range g.Balls() {
		f := b.Features()
		vals = append(vals, f[:]...)
	}

	// Zero padded, extra balls dropped.
	for i := 0; i < len(data) && i < len(vals); i++ {
		data[i] = float32(vals[i])
	}
	return Observation{Shape: e.shape(g), Data: data}
}
