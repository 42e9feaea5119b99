package config

import (
	_ "embed"
)

//go:embed defaults/flappy.yaml
var defaultFlappyYAML []byte

// DefaultFlappyConfig returns the default configuration.
// It mirrors defaults/flappy.yaml and is used when the embedded file cannot be parsed.
func DefaultFlappyConfig() FlappyConfig {
	return FlappyConfig{
		Canvas: CanvasConfig{
			Width:       800,
			Height:      600,
			FloorHeight: 60,
		},
		Player: PlayerConfig{
			X:      0,
			Width:  51,
			Height: 36,
		},
		Physics: PhysicsConfig{
			Gravity:          9.81,
			Decay:            0.75,
			PositionScale:    100,
			FlapClampScale:   1.25,
			RotationStep:     1,
			MaxAngle:         90,
			HitboxCorrection: -4,
		},
		Profile: "classic",
		Profiles: map[string]SpeedProfile{
			"classic": {TickRate: 120, FlapAcceleration: -24, FlapAngle: -20},
			"turbo":   {TickRate: 200, FlapAcceleration: -30, FlapAngle: -30},
		},
		Obstacles: ObstacleConfig{
			Width:           20,
			Spacing:         250,
			SpawnX:          1000,
			PreseedX:        []float64{750, 1000},
			MinGapFactor:    3,
			MaxGapBonus:     200,
			ScrollStep:      1,
			OscillationStep: 0.5,
		},
		Levels: LevelConfig{
			ScoreStep: 10,
			Tiers: []Tier{
				{Name: "meadow", Hazard: "grass", LethalFloor: false, Oscillates: false, ScrollDivisor: 4},
				{Name: "volcano", Hazard: "lava", LethalFloor: true, Oscillates: false, ScrollDivisor: 3},
				{Name: "fortress", Hazard: "spikes", LethalFloor: true, Oscillates: true, ScrollDivisor: 2},
			},
		},
		Pausing:    true,
		MaxCatchUp: 8,
		RestartButton: ButtonConfig{
			X:      325,
			Y:      330,
			Width:  150,
			Height: 50,
		},
	}
}

// DefaultYAML returns the embedded default configuration file.
func DefaultYAML() []byte {
	return defaultFlappyYAML
}
