// Package config provides YAML/TOML-based configuration loading and
// validation for the game, the agent environment, and the frontends.
package config

import (
	"errors"
	"fmt"
)

// ErrInvalid is wrapped by every configuration error. Configuration errors
// are fatal and surface before any episode begins.
var ErrInvalid = errors.New("config: invalid configuration")

// Collision precision policies.
const (
	CollisionShape = "shape" // Ball treated as the circle inscribed in its box
	CollisionBox   = "box"   // Bounding-box overlap only
)

// Level progression modes.
const (
	ModeEndless  = "endless"  // Levels wrap around forever
	ModeCampaign = "campaign" // Completing the last level ends the episode
)

// Observation encodings.
const (
	ObservationGrid     = "grid"
	ObservationFeatures = "features"
)

// ReferenceWidth is the display width the pixel-valued settings were tuned for.
const ReferenceWidth = 890

// heightRatio converts display width to play-field height.
const heightRatio = 0.5337

// Config contains all configuration for Ball Breaker.
type Config struct {
	Display  DisplayConfig  `yaml:"display" toml:"display"`
	Grid     GridConfig     `yaml:"grid" toml:"grid"`
	Player   PlayerConfig   `yaml:"player" toml:"player"`
	Laser    LaserConfig    `yaml:"laser" toml:"laser"`
	Gameplay GameplayConfig `yaml:"gameplay" toml:"gameplay"`
	Rewards  RewardsConfig  `yaml:"rewards" toml:"rewards"`
	Env      EnvConfig      `yaml:"env" toml:"env"`
}

// DisplayConfig defines the play-field size and the frame rate.
type DisplayConfig struct {
	Width int     `yaml:"width" toml:"width"` // Play-field width in pixels
	FPS   float64 `yaml:"fps" toml:"fps"`
}

// GridConfig defines the occupancy grid resolution.
type GridConfig struct {
	Cols int `yaml:"cols" toml:"cols"`
	Rows int `yaml:"rows" toml:"rows"`
}

// PlayerConfig defines player dimensions in reference pixels.
type PlayerConfig struct {
	Width  float64 `yaml:"width" toml:"width"`
	Height float64 `yaml:"height" toml:"height"`
	Speed  float64 `yaml:"speed" toml:"speed"` // Pixels per second
}

// LaserConfig defines the projectile in reference pixels.
type LaserConfig struct {
	Width float64 `yaml:"width" toml:"width"`
	Speed float64 `yaml:"speed" toml:"speed"` // Pixels per second
}

// GameplayConfig defines rules that differ between setups.
type GameplayConfig struct {
	EnableTimeout  bool    `yaml:"enable_timeout" toml:"enable_timeout"`
	Collision      string  `yaml:"collision" toml:"collision"`
	Mode           string  `yaml:"mode" toml:"mode"`
	ProximityBand  float64 `yaml:"proximity_band" toml:"proximity_band"`   // Player-hit pre-check band
	PlatformHeight float64 `yaml:"platform_height" toml:"platform_height"` // Floor thickness
}

// RewardsConfig maps outcome events to reward deltas.
type RewardsConfig struct {
	TimeElapsed   float64 `yaml:"time_elapsed" toml:"time_elapsed"`
	InvalidMove   float64 `yaml:"invalid_move" toml:"invalid_move"`
	GameOver      float64 `yaml:"game_over" toml:"game_over"`
	PopBall       float64 `yaml:"pop_ball" toml:"pop_ball"`
	HitCeiling    float64 `yaml:"hit_ceiling" toml:"hit_ceiling"`
	CeilingPop    float64 `yaml:"ceiling_pop" toml:"ceiling_pop"`
	TimeOut       float64 `yaml:"time_out" toml:"time_out"`
	LevelComplete float64 `yaml:"level_complete" toml:"level_complete"`
}

// EnvConfig defines the agent-facing observation.
type EnvConfig struct {
	Observation string `yaml:"observation" toml:"observation"`
	Features    int    `yaml:"features" toml:"features"` // Feature vector length
}

// Height returns the play-field height derived from the width.
func (c Config) Height() int {
	return int(float64(c.Display.Width) * heightRatio)
}

// TimeStep returns the fixed simulation timestep in seconds.
func (c Config) TimeStep() float64 {
	return 1 / c.Display.FPS
}

// Resize returns the scale factor from reference pixels to field pixels.
func (c Config) Resize() float64 {
	return float64(c.Display.Width) / ReferenceWidth
}

// Validate checks the configuration and returns an error wrapping ErrInvalid.
func (c Config) Validate() error {
	var errs []error
	if c.Display.FPS <= 0 {
		errs = append(errs, fmt.Errorf("display.fps must be positive, got %v", c.Display.FPS))
	}
	if c.Display.Width < 100 {
		errs = append(errs, fmt.Errorf("display.width must be at least 100, got %d", c.Display.Width))
	}
	if c.Grid.Cols <= 0 || c.Grid.Rows <= 0 {
		errs = append(errs, fmt.Errorf("grid dimensions must be positive, got %dx%d", c.Grid.Cols, c.Grid.Rows))
	}
	if c.Player.Width <= 0 || c.Player.Height <= 0 || c.Player.Speed <= 0 {
		errs = append(errs, errors.New("player width, height and speed must be positive"))
	}
	if c.Laser.Width <= 0 || c.Laser.Speed <= 0 {
		errs = append(errs, errors.New("laser width and speed must be positive"))
	}
	switch c.Gameplay.Collision {
	case CollisionShape, CollisionBox:
	default:
		errs = append(errs, fmt.Errorf("gameplay.collision must be %q or %q, got %q", CollisionShape, CollisionBox, c.Gameplay.Collision))
	}
	switch c.Gameplay.Mode {
	case ModeEndless, ModeCampaign:
	default:
		errs = append(errs, fmt.Errorf("gameplay.mode must be %q or %q, got %q", ModeEndless, ModeCampaign, c.Gameplay.Mode))
	}
	if c.Gameplay.PlatformHeight <= 0 {
		errs = append(errs, errors.New("gameplay.platform_height must be positive"))
	}
	switch c.Env.Observation {
	case ObservationGrid, ObservationFeatures:
	default:
		errs = append(errs, fmt.Errorf("env.observation must be %q or %q, got %q", ObservationGrid, ObservationFeatures, c.Env.Observation))
	}
	if c.Env.Features < 2 {
		errs = append(errs, fmt.Errorf("env.features must be at least 2, got %d", c.Env.Features))
	}

	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", ErrInvalid, errors.Join(errs...))
	}
	return nil
}
