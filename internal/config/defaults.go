package config

import (
	_ "embed"
)

//go:embed defaults/ballbreaker.yaml
var defaultYAML []byte

// Default returns the hardcoded default configuration.
func Default() Config {
	return Config{
		Display: DisplayConfig{
			Width: ReferenceWidth,
			FPS:   60,
		},
		Grid: GridConfig{
			Cols: 84,
			Rows: 42,
		},
		Player: PlayerConfig{
			Width:  40,
			Height: 60,
			Speed:  300,
		},
		Laser: LaserConfig{
			Width: 4,
			Speed: 600,
		},
		Gameplay: GameplayConfig{
			EnableTimeout:  true,
			Collision:      CollisionShape,
			Mode:           ModeEndless,
			ProximityBand:  100,
			PlatformHeight: 27,
		},
		Rewards: RewardsConfig{
			TimeElapsed:   -0.01,
			InvalidMove:   -1,
			GameOver:      -1,
			PopBall:       1,
			HitCeiling:    -1,
			CeilingPop:    -1,
			TimeOut:       0,
			LevelComplete: 0,
		},
		Env: EnvConfig{
			Observation: ObservationGrid,
			Features:    80,
		},
	}
}

// DefaultYAML returns the embedded default configuration file.
func DefaultYAML() []byte {
	return defaultYAML
}
