package core

// RuntimeConfig contains host-side settings passed to a session at startup.
// The simulation itself runs on a fixed virtual canvas from the game config;
// these values only size the terminal view and seed the RNG.
type RuntimeConfig struct {
	ScreenW  int   // Screen width in characters
	ScreenH  int   // Screen height in characters
	TickRate int   // Redraws per second (0 = 60); simulation speed comes from the profile
	Seed     int64 // RNG seed for deterministic gameplay
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
		Seed:     0, // 0 means use current time in platform layer
	}
}
