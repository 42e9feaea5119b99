package tui

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/flapsim/internal/core"
	"github.com/vovakirdan/flapsim/internal/flappy"
)

// colorStyles maps core.Color to lipgloss styles.
var colorStyles = map[core.Color]lipgloss.Style{
	core.ColorDefault:     lipgloss.NewStyle(),
	core.ColorPlayer:      lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true),
	core.ColorDeadPlayer:  lipgloss.NewStyle().Foreground(lipgloss.Color("9")),
	core.ColorObstacle:    lipgloss.NewStyle().Foreground(lipgloss.Color("2")),
	core.ColorOscillating: lipgloss.NewStyle().Foreground(lipgloss.Color("13")),
	core.ColorGrass:       lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
	core.ColorLava:        lipgloss.NewStyle().Foreground(lipgloss.Color("208")),
	core.ColorSpikes:      lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
	core.ColorHUD:         lipgloss.NewStyle().Foreground(lipgloss.Color("15")).Bold(true),
	core.ColorAlert:       lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
	core.ColorDim:         lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
}

// RenderScreen converts a Screen buffer to a styled string for display.
// Groups adjacent cells with the same color to minimize ANSI escape sequences.
func RenderScreen(s *core.Screen) string {
	var sb strings.Builder
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	for y := range s.Height() {
		if y > 0 {
			sb.WriteRune('\n')
		}

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

// Viewport maps the virtual canvas onto a grid of terminal cells.
type Viewport struct {
	Cols, Rows       int
	CanvasW, CanvasH float64
}

// NewViewport creates a viewport for a terminal of cols x rows.
func NewViewport(cols, rows int, canvasW, canvasH float64) Viewport {
	return Viewport{Cols: cols, Rows: rows, CanvasW: canvasW, CanvasH: canvasH}
}

func (v Viewport) sx() float64 { return float64(v.Cols) / v.CanvasW }
func (v Viewport) sy() float64 { return float64(v.Rows) / v.CanvasH }

// ToCell returns the cell containing world point (x, y).
func (v Viewport) ToCell(x, y float64) (int, int) {
	return int(math.Floor(x * v.sx())), int(math.Floor(y * v.sy()))
}

// ToWorld returns the world position of the center of cell (col, row).
func (v Viewport) ToWorld(col, row int) core.Point {
	return core.Point{
		X: (float64(col) + 0.5) / v.sx(),
		Y: (float64(row) + 0.5) / v.sy(),
	}
}

// CellRect returns the cells covered by a world box. Non-empty boxes cover
// at least one cell.
func (v Viewport) CellRect(b core.Box) core.Rect {
	x0, y0 := v.ToCell(b.X, b.Y)
	x1 := int(math.Ceil(b.Right() * v.sx()))
	y1 := int(math.Ceil(b.Bottom() * v.sy()))
	if b.W > 0 && x1 <= x0 {
		x1 = x0 + 1
	}
	if b.H > 0 && y1 <= y0 {
		y1 = y0 + 1
	}
	return core.NewRect(x0, y0, x1-x0, y1-y0)
}

// hazardStyle returns the floor pattern and color for a tier hazard.
func hazardStyle(hazard string) ([]rune, core.Color) {
	switch hazard {
	case "lava":
		return []rune("~≈~~≈"), core.ColorLava
	case "spikes":
		return []rune("^▲^"), core.ColorSpikes
	default:
		return []rune(`"'.,'`), core.ColorGrass
	}
}

// DrawFrame draws a frame snapshot into dst, scaled to fill it.
func DrawFrame(dst *core.Screen, f flappy.Frame) {
	vp := NewViewport(dst.Width(), dst.Height(), f.Canvas.Width, f.Canvas.Height)

	drawFloor(dst, vp, f)

	for _, o := range f.Obstacles {
		c := core.ColorObstacle
		if o.Oscillating {
			c = core.ColorOscillating
		}
		dst.DrawRect(vp.CellRect(core.NewBox(o.X, o.Y, o.Width, o.Height)), '█', c)
	}

	drawPlayer(dst, vp, f.Player)
	drawHUD(dst, f)

	if f.GameOver {
		drawGameOver(dst, vp, f)
	}
}

func drawFloor(dst *core.Screen, vp Viewport, f flappy.Frame) {
	pattern, c := hazardStyle(f.Tier.Hazard)
	_, top := vp.ToCell(0, f.Canvas.Height-f.Canvas.FloorHeight)

	divisor := uint64(max(f.Tier.ScrollDivisor, 1))
	offset := int(f.Tick / divisor)
	for y := top; y < dst.Height(); y++ {
		for x := 0; x < dst.Width(); x++ {
			dst.SetColored(x, y, pattern[(x+offset+y)%len(pattern)], c)
		}
	}
}

func drawPlayer(dst *core.Screen, vp Viewport, p flappy.PlayerPose) {
	r := vp.CellRect(core.NewBox(p.X, p.Y, p.Width, p.Height))

	glyph := '>'
	switch {
	case p.Angle < -5:
		glyph = '/'
	case p.Angle > 45:
		glyph = 'v'
	case p.Angle > 15:
		glyph = '\\'
	}
	c := core.ColorPlayer
	if !p.Alive {
		glyph, c = 'x', core.ColorDeadPlayer
	}
	dst.DrawRect(r, glyph, c)
}

func drawHUD(dst *core.Screen, f flappy.Frame) {
	hud := fmt.Sprintf(" Score %s  Best %s  Level %d %s ",
		formatScore(f.Score), formatScore(f.Best), f.Level, f.Tier.Name)
	dst.DrawTextColored(0, 0, hud, core.ColorHUD)

	if f.Paused {
		text := "PAUSED - press P to resume"
		dst.DrawTextColored((dst.Width()-len(text))/2, dst.Height()/2, text, core.ColorHUD)
	}
}

func drawGameOver(dst *core.Screen, vp Viewport, f flappy.Frame) {
	_, row := vp.ToCell(0, f.RestartButton.Y)
	text := "GAME OVER"
	dst.DrawTextColored((dst.Width()-len(text))/2, row-2, text, core.ColorAlert)

	button := vp.CellRect(f.RestartButton)
	if button.W < 11 {
		button.X -= (11 - button.W) / 2
		button.W = 11
	}
	if button.H < 3 {
		button.H = 3
	}
	dst.DrawRect(button, ' ', core.ColorDefault)
	dst.DrawBox(button)
	label := "RESTART"
	dst.DrawTextColored(button.X+(button.W-len(label))/2, button.Y+button.H/2, label, core.ColorHUD)
}

// formatScore prints half points only when present.
func formatScore(s float64) string {
	if s == math.Trunc(s) {
		return fmt.Sprintf("%.0f", s)
	}
	return fmt.Sprintf("%.1f", s)
}
