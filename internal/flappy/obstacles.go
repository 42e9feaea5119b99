package flappy

import (
	"math"
	"math/rand"

	"github.com/vovakirdan/flapsim/internal/config"
	"github.com/vovakirdan/flapsim/internal/core"
)

// Role tags which half of a pair an obstacle is.
type Role int

const (
	RoleTop Role = iota
	RoleBottom
)

// String returns the role name.
func (r Role) String() string {
	if r == RoleTop {
		return "top"
	}
	return "bottom"
}

// Obstacle is one half of a pair. It carries data only; all behavior is in
// functions keyed on Role.
type Obstacle struct {
	Role      Role
	SpawnX    float64
	X, Y      float64
	Width     float64
	Height    float64
	Completed bool // Scored already

	Oscillating bool
	Dir         float64 // +1 moving down, -1 moving up
	GapTop      float64 // Frozen gap bounds, shared with the partner
	GapBottom   float64
}

// Box returns the obstacle's collision box.
func (o Obstacle) Box() core.Box {
	return core.NewBox(o.X, o.Y, o.Width, o.Height)
}

// Edge returns the y of the edge facing the gap.
func (o Obstacle) Edge() float64 {
	if o.Role == RoleTop {
		return o.Y + o.Height
	}
	return o.Y
}

// setEdge moves the gap-facing edge while the far edge stays anchored to
// the ceiling (top) or the floor line (bottom).
func (o *Obstacle) setEdge(edge float64) {
	if o.Role == RoleTop {
		o.Height = edge - o.Y
		return
	}
	bottom := o.Y + o.Height
	o.Y = edge
	o.Height = bottom - edge
}

// oscillate moves the gap-facing edge by step, reflecting at the gap bounds.
func (o *Obstacle) oscillate(step float64) {
	if !o.Oscillating || step == 0 {
		return
	}
	next := o.Edge() + o.Dir*step
	switch {
	case next >= o.GapBottom:
		next = o.GapBottom
		o.Dir = -1
	case next <= o.GapTop:
		next = o.GapTop
		o.Dir = 1
	}
	o.setEdge(next)
}

// Pair is a top and bottom obstacle created and retired together.
// TopHeight, Gap and BottomHeight are frozen at spawn:
// TopHeight + Gap + BottomHeight + floor height == canvas height.
type Pair struct {
	Top          Obstacle
	Bottom       Obstacle
	TopHeight    float64
	Gap          float64
	BottomHeight float64
}

// GeneratorConfig holds the geometry the generator needs.
type GeneratorConfig struct {
	CanvasHeight    float64
	FloorHeight     float64
	PlayerHeight    float64
	MinGapFactor    float64
	MaxGapBonus     float64
	Width           float64
	ScrollStep      float64
	LeftBound       float64
	RetireMargin    float64
	OscillationStep float64
}

// NewGeneratorConfig extracts generator settings from the game config.
func NewGeneratorConfig(cfg config.FlappyConfig) GeneratorConfig {
	return GeneratorConfig{
		CanvasHeight:    cfg.Canvas.Height,
		FloorHeight:     cfg.Canvas.FloorHeight,
		PlayerHeight:    cfg.Player.Height,
		MinGapFactor:    cfg.Obstacles.MinGapFactor,
		MaxGapBonus:     cfg.Obstacles.MaxGapBonus,
		Width:           cfg.Obstacles.Width,
		ScrollStep:      cfg.Obstacles.ScrollStep,
		LeftBound:       0,
		RetireMargin:    cfg.Obstacles.Margin(),
		OscillationStep: cfg.Obstacles.OscillationStep,
	}
}

// MinGap returns the smallest gap a pair may have.
func (gc GeneratorConfig) MinGap() float64 {
	return gc.MinGapFactor * gc.PlayerHeight
}

// MaxTopHeight returns the upper bound of the top height draw.
func (gc GeneratorConfig) MaxTopHeight() float64 {
	return gc.CanvasHeight - (gc.MinGap() + gc.FloorHeight)
}

// Generator handles spawning, movement, oscillation and retirement of pairs.
type Generator struct {
	cfg         GeneratorConfig
	pairs       []Pair // Oldest first
	rng         *rand.Rand
	oscillating bool // New pairs start oscillating
}

// NewGenerator creates a generator with the given RNG seed.
func NewGenerator(cfg GeneratorConfig, seed int64) *Generator {
	return &Generator{
		cfg:   cfg,
		pairs: make([]Pair, 0, 8),
		rng:   rand.New(rand.NewSource(seed)),
	}
}

// SpawnPair appends a pair with randomized geometry at x.
func (g *Generator) SpawnPair(x float64) Pair {
	// Draws are rounded to whole units so the frozen heights sum exactly.
	topHeight := math.Round(g.rng.Float64() * g.cfg.MaxTopHeight())
	gap := g.cfg.MinGap() + math.Round(g.rng.Float64()*g.cfg.MaxGapBonus)
	return g.spawn(x, topHeight, gap)
}

// spawn appends a pair with the given draws, clipping the gap so the bottom
// height is never negative.
func (g *Generator) spawn(x, topHeight, gap float64) Pair {
	if limit := g.cfg.CanvasHeight - g.cfg.FloorHeight; topHeight+gap > limit {
		gap = limit - topHeight
	}
	bottomHeight := g.cfg.CanvasHeight - (topHeight + gap + g.cfg.FloorHeight)

	top := Obstacle{
		Role:      RoleTop,
		SpawnX:    x,
		X:         x,
		Y:         0,
		Width:     g.cfg.Width,
		Height:    topHeight,
		Dir:       1,
		GapTop:    topHeight,
		GapBottom: topHeight + gap,
	}
	bottom := top
	bottom.Role = RoleBottom
	bottom.Y = topHeight + gap
	bottom.Height = bottomHeight
	bottom.Dir = -1

	top.Oscillating = g.oscillating
	bottom.Oscillating = g.oscillating

	p := Pair{
		Top:          top,
		Bottom:       bottom,
		TopHeight:    topHeight,
		Gap:          gap,
		BottomHeight: bottomHeight,
	}
	g.pairs = append(g.pairs, p)
	return p
}

// Advance scrolls every obstacle left by one step.
func (g *Generator) Advance() {
	for i := range g.pairs {
		g.pairs[i].Top.X -= g.cfg.ScrollStep
		g.pairs[i].Bottom.X -= g.cfg.ScrollStep
	}
}

// Oscillate moves every oscillating obstacle one step.
// The two edges of a pair start moving toward each other and cross, so the
// pair is fully closed for half of each cycle. Each edge stays within the
// gap drawn at spawn.
func (g *Generator) Oscillate() {
	for i := range g.pairs {
		g.pairs[i].Top.oscillate(g.cfg.OscillationStep)
		g.pairs[i].Bottom.oscillate(g.cfg.OscillationStep)
	}
}

// SetOscillating flags every live and future obstacle as oscillating.
func (g *Generator) SetOscillating(on bool) {
	if g.oscillating == on {
		return
	}
	g.oscillating = on
	for i := range g.pairs {
		g.pairs[i].Top.Oscillating = on
		g.pairs[i].Bottom.Oscillating = on
	}
}

// Offscreen reports whether an obstacle has fully left the screen.
func (g *Generator) Offscreen(o Obstacle) bool {
	return o.X < g.cfg.LeftBound-g.cfg.RetireMargin
}

// Retire drops pairs from the front while both members are off-screen.
// Returns the number of pairs removed.
func (g *Generator) Retire() int {
	n := 0
	for n < len(g.pairs) && g.Offscreen(g.pairs[n].Top) && g.Offscreen(g.pairs[n].Bottom) {
		n++
	}
	if n > 0 {
		g.pairs = append(g.pairs[:0], g.pairs[n:]...)
	}
	return n
}

// Pairs returns the live pairs, oldest first.
func (g *Generator) Pairs() []Pair {
	return g.pairs
}

// Obstacles returns the live obstacles in pair order: top, bottom, top, ...
func (g *Generator) Obstacles() []Obstacle {
	out := make([]Obstacle, 0, 2*len(g.pairs))
	for _, p := range g.pairs {
		out = append(out, p.Top, p.Bottom)
	}
	return out
}
