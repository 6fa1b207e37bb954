package tui

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/ball-breaker/internal/core"
	"github.com/vovakirdan/ball-breaker/internal/game"
)

// colorStyles maps core.Color to lipgloss styles.
var colorStyles = map[core.Color]lipgloss.Style{
	core.ColorDefault: lipgloss.NewStyle(),
	core.ColorRed:     lipgloss.NewStyle().Foreground(lipgloss.Color("9")),
	core.ColorGreen:   lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
	core.ColorYellow:  lipgloss.NewStyle().Foreground(lipgloss.Color("11")),
	core.ColorBlue:    lipgloss.NewStyle().Foreground(lipgloss.Color("12")),
	core.ColorPurple:  lipgloss.NewStyle().Foreground(lipgloss.Color("135")),
	core.ColorOrange:  lipgloss.NewStyle().Foreground(lipgloss.Color("208")),
	core.ColorPink:    lipgloss.NewStyle().Foreground(lipgloss.Color("211")),
	core.ColorWhite:   lipgloss.NewStyle().Foreground(lipgloss.Color("15")),
	core.ColorGray:    lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
}

// Glyphs used by DrawSnapshot.
const (
	glyphBall     = 'O'
	glyphPlayer   = '#'
	glyphHead     = '^'
	glyphLaser    = '|'
	glyphPlatform = '='
	glyphTimer    = '━'
)

// hudRows is the number of rows above the play field.
const hudRows = 1

// footerRows is the number of rows below the play field.
const footerRows = 1

// RenderScreen converts a Screen buffer to a styled string for display.
// Groups adjacent cells with the same color to minimize ANSI escape sequences.
func RenderScreen(s *core.Screen) string {
	var sb strings.Builder
	// Pre-allocate with extra space for ANSI codes
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	for y := range s.Height() {
		if y > 0 {
			sb.WriteRune('\n')
		}

		// Group consecutive cells with the same color for efficiency
		x := 0
		for x < s.Width() {
			startColor := s.GetCell(x, y).Color

			var run strings.Builder
			for x < s.Width() {
				cell := s.GetCell(x, y)
				if cell.Color != startColor {
					break
				}
				run.WriteRune(cell.Rune)
				x++
			}

			style, ok := colorStyles[startColor]
			if !ok {
				style = colorStyles[core.ColorDefault]
			}
			sb.WriteString(style.Render(run.String()))
		}
	}
	return sb.String()
}

// viewport maps play-field pixels onto screen cells.
type viewport struct {
	cols, rows int     // Play-field cells
	sx, sy     float64 // Cells per pixel
}

func newViewport(snap game.Snapshot, screenW, screenH int) viewport {
	rows := max(screenH-hudRows-footerRows, 1)
	v := viewport{cols: max(screenW, 1), rows: rows}
	if snap.Width > 0 {
		v.sx = float64(v.cols) / snap.Width
	}
	if snap.Height > 0 {
		v.sy = float64(v.rows) / snap.Height
	}
	return v
}

// cells returns the inclusive cell span covered by r, always at least one cell.
func (v viewport) cells(r core.Rect) (x0, y0, x1, y1 int) {
	x0 = int(math.Floor(r.X * v.sx))
	y0 = int(math.Floor(r.Y*v.sy)) + hudRows
	x1 = max(int(math.Ceil(r.Right()*v.sx))-1, x0)
	y1 = max(int(math.Ceil(r.Bottom()*v.sy))-1+hudRows, y0)
	return x0, y0, x1, y1
}

// DrawSnapshot renders the episode state into s. The top row carries the
// HUD, the bottom row the level timer bar.
func DrawSnapshot(s *core.Screen, snap game.Snapshot) {
	s.Clear()
	v := newViewport(snap, s.Width(), s.Height())

	x0, y0, x1, _ := v.cells(snap.Platform)
	s.FillRect(x0, y0, x1+1, y0+1, glyphPlatform, core.ColorGray)

	if snap.Shooting {
		lx, ly0, _, ly1 := v.cells(snap.Laser)
		for y := ly0; y <= ly1; y++ {
			s.SetColored(lx, y, glyphLaser, core.ColorYellow)
		}
	}

	for _, b := range snap.Balls {
		drawBall(s, v, b)
	}

	px0, py0, px1, py1 := v.cells(snap.Player)
	s.FillRect(px0, py0, px1+1, py1+1, glyphPlayer, core.ColorWhite)
	s.SetColored((px0+px1)/2, py0, glyphHead, core.ColorWhite)

	s.DrawText(0, 0, hudLine(snap))
	barLen := core.Round(snap.TimeFraction() * float64(s.Width()))
	s.DrawHLine(0, s.Height()-1, barLen, glyphTimer, core.ColorRed)
}

// drawBall fills the cells whose centre lies inside the ball's circle. Balls
// smaller than a cell still get the cell under their centre.
func drawBall(s *core.Screen, v viewport, b game.BallView) {
	x0, y0, x1, y1 := v.cells(b.Rect())
	cx, cy := b.X+b.Side/2, b.Y+b.Side/2
	r := b.Side / 2
	drawn := false
	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			px := (float64(x) + 0.5) / v.sx
			py := (float64(y-hudRows) + 0.5) / v.sy
			dx, dy := px-cx, py-cy
			if dx*dx+dy*dy <= r*r {
				s.SetColored(x, y, glyphBall, b.Color)
				drawn = true
			}
		}
	}
	if !drawn {
		s.SetColored(int(cx*v.sx), int(cy*v.sy)+hudRows, glyphBall, b.Color)
	}
}

func hudLine(snap game.Snapshot) string {
	name := snap.LevelName
	if name == "" {
		name = fmt.Sprintf("Level %d", snap.Level+1)
	}
	return fmt.Sprintf(" %s (%d/%d)  Score: %d  Reward: %.1f  Balls: %d",
		name, snap.Level+1, snap.LevelCount, snap.Score, snap.TotalReward, len(snap.Balls))
}
