package agent

import (
	"math"

	"github.com/vovakirdan/ball-breaker/internal/core"
	"github.com/vovakirdan/ball-breaker/internal/env"
	"github.com/vovakirdan/ball-breaker/internal/game"
	"github.com/vovakirdan/ball-breaker/internal/grid"
)

// DodgeID is the registry ID of the dodge policy.
const DodgeID = "dodge"

// Dodge is a scripted policy driven by the occupancy grid. It steps aside
// when a ball enters the band above the player, fires when a ball is in the
// player's column, and otherwise walks toward the nearest ball.
type Dodge struct {
	// DangerRows is the height of the watched band above the player, in cells.
	DangerRows int
}

// NewDodge returns a dodge policy with the default band.
func NewDodge() *Dodge {
	return &Dodge{DangerRows: 6}
}

// Name returns the policy ID.
func (d *Dodge) Name() string { return DodgeID }

// Act chooses an action from the grid and the snapshot.
func (d *Dodge) Act(f env.Frame) core.Action {
	occ, s := f.Grid, f.Snapshot
	if occ == nil {
		return core.ActionNone
	}
	pr := occ.Clip(occ.RegionFor(s.Player))

	band := grid.Region{X: pr.X - 1, Y: pr.Y - d.DangerRows, W: pr.W + 2, H: d.DangerRows + pr.H}
	if !occ.Free(band) {
		left := freeRun(occ, pr.X-1, -1, band)
		right := freeRun(occ, pr.X+pr.W, 1, band)
		if left > right {
			return core.ActionMoveLeft
		}
		return core.ActionMoveRight
	}

	cx, _ := s.Player.Center()
	col := int(cx / occ.RatioX)
	if !s.Shooting && !occ.ColumnFree(col, 0, pr.Y) {
		return core.ActionFire
	}

	target, ok := nearestBallX(s.Balls, cx)
	if !ok || math.Abs(target-cx) < s.Player.W/2 {
		return core.ActionNone
	}
	if target < cx {
		return core.ActionMoveLeft
	}
	return core.ActionMoveRight
}

// freeRun counts ball-free columns of band starting at x and stepping by dir.
func freeRun(occ *grid.Occupancy, x, dir int, band grid.Region) int {
	n := 0
	for ; x >= 0 && x < occ.Cols; x += dir {
		if !occ.ColumnFree(x, band.Y, band.Y+band.H) {
			break
		}
		n++
	}
	return n
}

func nearestBallX(balls []game.BallView, x float64) (float64, bool) {
	best, found := 0.0, false
	for _, b := range balls {
		bx, _ := b.Rect().Center()
		if !found || math.Abs(bx-x) < math.Abs(best-x) {
			best, found = bx, true
		}
	}
	return best, found
}
