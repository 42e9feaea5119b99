// Package config provides YAML-based simulation configuration loading and
// validation for the simulator.
package config

import (
	"errors"
	"fmt"
	"sort"
	"time"
)

// ErrInvalidConfig is wrapped by every validation failure.
var ErrInvalidConfig = errors.New("config: invalid configuration")

// FlappyConfig contains all configuration for a simulation session.
// It is fixed once a session is set up.
type FlappyConfig struct {
	Canvas        CanvasConfig            `yaml:"canvas"`
	Player        PlayerConfig            `yaml:"player"`
	Physics       PhysicsConfig           `yaml:"physics"`
	Profile       string                  `yaml:"profile"` // Default speed profile
	Profiles      map[string]SpeedProfile `yaml:"profiles"`
	Obstacles     ObstacleConfig          `yaml:"obstacles"`
	Levels        LevelConfig             `yaml:"levels"`
	Pausing       bool                    `yaml:"pausing"`
	MaxCatchUp    int                     `yaml:"max_catch_up"` // Max ticks run per host callback
	RestartButton ButtonConfig            `yaml:"restart_button"`
}

// CanvasConfig is the virtual world the simulation runs in.
type CanvasConfig struct {
	Width       float64 `yaml:"width"`
	Height      float64 `yaml:"height"`
	FloorHeight float64 `yaml:"floor_height"`
}

// PlayerConfig defines the player entity's fixed bounds.
type PlayerConfig struct {
	X      float64 `yaml:"x"` // 0 = horizontally centered
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// PhysicsConfig holds the integration constants shared by all speed profiles.
type PhysicsConfig struct {
	Gravity          float64 `yaml:"gravity"`
	Decay            float64 `yaml:"decay"`
	PositionScale    float64 `yaml:"position_scale"`
	FlapClampScale   float64 `yaml:"flap_clamp_scale"`
	RotationStep     float64 `yaml:"rotation_step"` // Degrees per tick while falling
	MaxAngle         float64 `yaml:"max_angle"`     // Degrees
	HitboxCorrection float64 `yaml:"hitbox_correction"`
}

// SpeedProfile is one selectable {tick rate, flap impulse, flap angle} set.
type SpeedProfile struct {
	TickRate         int     `yaml:"tick_rate"` // Ticks per second; the tick delta is 1/TickRate
	FlapAcceleration float64 `yaml:"flap_acceleration"`
	FlapAngle        float64 `yaml:"flap_angle"` // Degrees
}

// TickInterval returns the wall-clock time between ticks.
func (p SpeedProfile) TickInterval() time.Duration {
	return time.Second / time.Duration(p.TickRate)
}

// TickDelta returns the integration step in seconds.
func (p SpeedProfile) TickDelta() float64 {
	return 1.0 / float64(p.TickRate)
}

// ObstacleConfig defines obstacle generation parameters.
type ObstacleConfig struct {
	Width           float64   `yaml:"width"`
	Spacing         int       `yaml:"spacing"` // Ticks between spawns
	SpawnX          float64   `yaml:"spawn_x"`
	PreseedX        []float64 `yaml:"preseed_x"`
	MinGapFactor    float64   `yaml:"min_gap_factor"` // Multiplied by player height
	MaxGapBonus     float64   `yaml:"max_gap_bonus"`
	ScrollStep      float64   `yaml:"scroll_step"`
	RetireMargin    *float64  `yaml:"retire_margin"` // nil = obstacle width
	OscillationStep float64   `yaml:"oscillation_step"`
}

// Margin returns the retirement margin left of the screen.
func (o ObstacleConfig) Margin() float64 {
	if o.RetireMargin == nil {
		return o.Width
	}
	return *o.RetireMargin
}

// LevelConfig defines level progression.
type LevelConfig struct {
	ScoreStep float64 `yaml:"score_step"` // Score per tier
	Tiers     []Tier  `yaml:"tiers"`
}

// Tier holds per-level constants. Levels past the last tier reuse it.
type Tier struct {
	Name          string `yaml:"name"`
	Hazard        string `yaml:"hazard"`
	LethalFloor   bool   `yaml:"lethal_floor"`
	Oscillates    bool   `yaml:"oscillates"`
	ScrollDivisor int    `yaml:"scroll_divisor"` // Background scroll: frame / divisor
}

// ButtonConfig is a clickable region in world units.
type ButtonConfig struct {
	X      float64 `yaml:"x"`
	Y      float64 `yaml:"y"`
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// SpeedProfile returns the named profile, or the default one when name is empty.
func (c FlappyConfig) SpeedProfile(name string) (SpeedProfile, error) {
	if name == "" {
		name = c.Profile
	}
	p, ok := c.Profiles[name]
	if !ok {
		return SpeedProfile{}, fmt.Errorf("config: unknown speed profile %q", name)
	}
	return p, nil
}

// ProfileNames returns the configured profile names, sorted.
func (c FlappyConfig) ProfileNames() []string {
	names := make([]string, 0, len(c.Profiles))
	for name := range c.Profiles {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// PlayerX returns the player's fixed horizontal position.
func (c FlappyConfig) PlayerX() float64 {
	if c.Player.X != 0 {
		return c.Player.X
	}
	return (c.Canvas.Width - c.Player.Width) / 2
}

// MinGap returns the smallest gap a pair may be spawned with.
func (c FlappyConfig) MinGap() float64 {
	return c.Obstacles.MinGapFactor * c.Player.Height
}

// MaxTopHeight returns the largest top obstacle height the generator may draw.
func (c FlappyConfig) MaxTopHeight() float64 {
	return c.Canvas.Height - (c.MinGap() + c.Canvas.FloorHeight)
}

// Validate rejects configurations that would produce degenerate geometry.
func (c FlappyConfig) Validate() error {
	if c.Canvas.Width <= 0 || c.Canvas.Height <= 0 {
		return fmt.Errorf("%w: canvas must have positive size", ErrInvalidConfig)
	}
	if c.Canvas.FloorHeight < 0 {
		return fmt.Errorf("%w: floor_height must not be negative", ErrInvalidConfig)
	}
	if c.Player.Width <= 0 || c.Player.Height <= 0 {
		return fmt.Errorf("%w: player must have positive size", ErrInvalidConfig)
	}
	if c.Player.Width+c.Physics.HitboxCorrection <= 0 {
		return fmt.Errorf("%w: hitbox_correction removes the whole player width", ErrInvalidConfig)
	}
	if c.Obstacles.MinGapFactor <= 0 || c.Obstacles.MaxGapBonus < 0 {
		return fmt.Errorf("%w: gap factor must be positive and bonus non-negative", ErrInvalidConfig)
	}
	if c.MaxTopHeight() <= 0 {
		return fmt.Errorf("%w: min_gap_factor*player.height (%.1f) + floor_height (%.1f) must be below canvas height (%.1f)",
			ErrInvalidConfig, c.MinGap(), c.Canvas.FloorHeight, c.Canvas.Height)
	}
	if c.Obstacles.Width <= 0 {
		return fmt.Errorf("%w: obstacle width must be positive", ErrInvalidConfig)
	}
	if c.Obstacles.Spacing <= 0 {
		return fmt.Errorf("%w: obstacle spacing must be positive", ErrInvalidConfig)
	}
	if c.Obstacles.ScrollStep <= 0 {
		return fmt.Errorf("%w: scroll_step must be positive", ErrInvalidConfig)
	}
	if c.Obstacles.OscillationStep < 0 {
		return fmt.Errorf("%w: oscillation_step must not be negative", ErrInvalidConfig)
	}
	if c.Obstacles.Margin() < 0 {
		return fmt.Errorf("%w: retire_margin must not be negative", ErrInvalidConfig)
	}
	if len(c.Obstacles.PreseedX) < 2 {
		return fmt.Errorf("%w: at least two preseed positions are required", ErrInvalidConfig)
	}
	if len(c.Profiles) == 0 {
		return fmt.Errorf("%w: no speed profiles", ErrInvalidConfig)
	}
	for name, p := range c.Profiles {
		if p.TickRate <= 0 {
			return fmt.Errorf("%w: profile %q: tick_rate must be positive", ErrInvalidConfig, name)
		}
		if p.FlapAcceleration >= 0 {
			return fmt.Errorf("%w: profile %q: flap_acceleration must be negative (upward)", ErrInvalidConfig, name)
		}
	}
	if _, ok := c.Profiles[c.Profile]; !ok {
		return fmt.Errorf("%w: default profile %q is not defined", ErrInvalidConfig, c.Profile)
	}
	if c.Levels.ScoreStep <= 0 {
		return fmt.Errorf("%w: levels.score_step must be positive", ErrInvalidConfig)
	}
	if len(c.Levels.Tiers) == 0 {
		return fmt.Errorf("%w: at least one level tier is required", ErrInvalidConfig)
	}
	for i, t := range c.Levels.Tiers {
		if t.ScrollDivisor <= 0 {
			return fmt.Errorf("%w: tier %d: scroll_divisor must be positive", ErrInvalidConfig, i)
		}
	}
	if c.MaxCatchUp <= 0 {
		return fmt.Errorf("%w: max_catch_up must be positive", ErrInvalidConfig)
	}
	return nil
}
