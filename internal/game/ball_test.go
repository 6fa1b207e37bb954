package game

import (
	"math"
	"testing"

	"github.com/vovakirdan/ball-breaker/internal/core"
	"github.com/vovakirdan/ball-breaker/internal/grid"
	"github.com/vovakirdan/ball-breaker/internal/physics"
)

const epsilon = 1e-9

func newTestField() (*physics.Tables, *grid.Occupancy) {
	tables := physics.NewTables(890, 475)
	return &tables, grid.New(84, 42, 890, 475)
}

func TestNewBallMarksFootprint(t *testing.T) {
	tables, occ := newTestField()
	b := NewBall(BallSpec{X: 100, Y: 100, Size: 1, Color: core.ColorRed}, tables, occ)

	want := occ.Clip(occ.RegionFor(b.Rect())).Area()
	if want == 0 {
		t.Fatal("expected a non-empty footprint")
	}
	if got := occ.FlaggedCount(grid.ChannelBall); got != want {
		t.Errorf("flagged cells = %d, want %d", got, want)
	}
	if b.Side() != tables.Sides[1] {
		t.Errorf("side = %v, want %v", b.Side(), tables.Sides[1])
	}
}

func TestNewBallDirection(t *testing.T) {
	tables, _ := newTestField()

	tests := []struct {
		dir  Direction
		vx   float64
		want float64
	}{
		{DirectionLeft, 0, -tables.XSpeed},
		{DirectionRight, 0, tables.XSpeed},
		{DirectionNone, 12, 12},
	}

	for _, tt := range tests {
		t.Run(tt.dir.String(), func(t *testing.T) {
			b := NewBall(BallSpec{Direction: tt.dir, VX: tt.vx, Y: 50, Size: 2}, tables, nil)
			if b.VX() != tt.want {
				t.Errorf("vx = %v, want %v", b.VX(), tt.want)
			}
		})
	}
}

func TestNewBallClampsSize(t *testing.T) {
	tables, _ := newTestField()
	b := NewBall(BallSpec{Y: 50, Size: 9}, tables, nil)
	if b.Size() != physics.SizeCount-1 {
		t.Errorf("size = %d, want %d", b.Size(), physics.SizeCount-1)
	}
}

func TestAdvanceMovesFootprint(t *testing.T) {
	tables, occ := newTestField()
	b := NewBall(BallSpec{X: 100, Y: 100, VX: 300, Size: 2}, tables, occ)
	before := b.Footprint()

	for range 30 {
		if b.Advance(1.0 / 60) {
			t.Fatal("unexpected ceiling pop")
		}
	}

	after := b.Footprint()
	if after == before {
		t.Fatal("footprint did not move")
	}
	want := occ.Clip(after).Area()
	if got := occ.FlaggedCount(grid.ChannelBall); got != want {
		t.Errorf("flagged cells = %d, want %d (stale marks left behind)", got, want)
	}
}

func TestAdvanceCeilingPop(t *testing.T) {
	tables, occ := newTestField()
	b := NewBall(BallSpec{X: 100, Y: 5, VY: -1000, Size: 3}, tables, occ)

	if !b.Advance(1.0 / 60) {
		t.Fatal("expected ceiling pop")
	}
	if got := occ.FlaggedCount(grid.ChannelBall); got != 0 {
		t.Errorf("flagged cells after ceiling pop = %d, want 0", got)
	}
}

func TestAdvanceAccelerationStopsAtDriftSpeed(t *testing.T) {
	tables, _ := newTestField()
	b := NewBall(BallSpec{X: 400, Y: 100, VX: 0, AX: 1000, Size: 2}, tables, nil)

	for range 60 {
		b.Advance(1.0 / 60)
	}

	m := b.Motion()
	if m.AX != 0 {
		t.Errorf("ax = %v, want 0", m.AX)
	}
	if m.VX != tables.XSpeed {
		t.Errorf("vx = %v, want %v", m.VX, tables.XSpeed)
	}
}

func TestBounceVertical(t *testing.T) {
	tables, _ := newTestField()
	tests := []struct {
		name string
		vy   float64
	}{
		{"at rest", 0},
		{"falling", 250},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := NewBall(BallSpec{X: 100, Y: 400, VY: tt.vy, Size: 2}, tables, nil)

			b.BounceVertical()
			launch := tables.LaunchSpeed[2]
			if b.VY() != launch {
				t.Fatalf("vy = %v, want %v", b.VY(), launch)
			}

			const dt = 1.0 / 60
			b.Advance(dt)
			ay := tables.YAcc[2]
			if want := launch + ay*dt; math.Abs(b.VY()-want) > epsilon {
				t.Errorf("vy after advance = %v, want %v", b.VY(), want)
			}
			if want := 400 + launch*dt + 0.5*ay*dt*dt; math.Abs(b.Y()-want) > epsilon {
				t.Errorf("y after advance = %v, want %v", b.Y(), want)
			}
		})
	}
}

func TestBounceHorizontal(t *testing.T) {
	tables, _ := newTestField()

	right := NewBall(BallSpec{X: 880, Y: 100, VX: 50, Size: 0}, tables, nil)
	right.BounceHorizontal()
	if right.VX() != -tables.XSpeed {
		t.Errorf("right side vx = %v, want %v", right.VX(), -tables.XSpeed)
	}

	left := NewBall(BallSpec{X: -2, Y: 100, VX: -50, Size: 0}, tables, nil)
	left.BounceHorizontal()
	if left.VX() != tables.XSpeed {
		t.Errorf("left side vx = %v, want %v", left.VX(), tables.XSpeed)
	}
}

func TestPopChildren(t *testing.T) {
	tables, occ := newTestField()
	parent := NewBall(BallSpec{X: 400, Y: 200, VY: -100, Size: 2, Color: core.ColorBlue}, tables, occ)

	children := parent.Pop()
	if len(children) != 2 {
		t.Fatalf("children = %d, want 2", len(children))
	}

	wantVY := tables.PopLaunchSpeed(100 / tables.YAcc[2])
	wantX := []float64{400 - ChildOffset, 400 + ChildOffset}
	wantVX := []float64{-tables.XSpeed, tables.XSpeed}

	for i, c := range children {
		if c.Size() != 1 {
			t.Errorf("child %d size = %d, want 1", i, c.Size())
		}
		if c.X() != wantX[i] {
			t.Errorf("child %d x = %v, want %v", i, c.X(), wantX[i])
		}
		if c.Y() != 200 {
			t.Errorf("child %d y = %v, want 200", i, c.Y())
		}
		if c.VX() != wantVX[i] {
			t.Errorf("child %d vx = %v, want %v", i, c.VX(), wantVX[i])
		}
		if math.Abs(c.VY()-wantVY) > epsilon {
			t.Errorf("child %d vy = %v, want %v", i, c.VY(), wantVY)
		}
		if c.Motion().AX != 0 {
			t.Errorf("child %d ax = %v, want 0", i, c.Motion().AX)
		}
		if c.Color() != core.ColorBlue {
			t.Errorf("child %d color = %v, want blue", i, c.Color())
		}
	}

	// Only the children remain in the grid.
	merged := grid.New(84, 42, 890, 475)
	for _, c := range children {
		merged.Mark(c.Footprint(), grid.ChannelBall)
	}
	if got, want := occ.FlaggedCount(grid.ChannelBall), merged.FlaggedCount(grid.ChannelBall); got != want {
		t.Errorf("flagged cells = %d, want %d", got, want)
	}
}

func TestPopAtVertexUsesCap(t *testing.T) {
	tables, _ := newTestField()
	parent := NewBall(BallSpec{X: 400, Y: 200, VY: 0, Size: 3}, tables, nil)

	children := parent.Pop()
	want := -300 * tables.Resize
	for i, c := range children {
		if c.VY() != want {
			t.Errorf("child %d vy = %v, want %v", i, c.VY(), want)
		}
	}
}

func TestPopSmallestSize(t *testing.T) {
	tables, occ := newTestField()
	b := NewBall(BallSpec{X: 300, Y: 200, Size: 0}, tables, occ)

	if children := b.Pop(); children != nil {
		t.Errorf("size 0 pop returned %d children, want none", len(children))
	}
	if got := occ.FlaggedCount(grid.ChannelBall); got != 0 {
		t.Errorf("flagged cells = %d, want 0", got)
	}
}

func TestFeatures(t *testing.T) {
	tables, _ := newTestField()
	b := NewBall(BallSpec{X: 89, Y: 47.5, Size: 0}, tables, nil)

	f := b.Features()
	want := [4]float64{0.1, (89 + tables.Sides[0]) / 890, 0.1, (47.5 + tables.Sides[0]) / 475}
	for i := range f {
		if math.Abs(f[i]-want[i]) > epsilon {
			t.Errorf("feature %d = %v, want %v", i, f[i], want[i])
		}
	}
}
