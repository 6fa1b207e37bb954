package levels

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/ball-breaker/internal/core"
	"github.com/vovakirdan/ball-breaker/internal/game"
)

// fileCatalog is the on-disk structure of a catalog file.
type fileCatalog struct {
	Levels []fileLevel `yaml:"levels" toml:"levels"`
}

type fileLevel struct {
	Name   string     `yaml:"name" toml:"name"`
	TimeMS int        `yaml:"time_ms" toml:"time_ms"`
	Balls  []fileBall `yaml:"balls" toml:"balls"`
}

type fileBall struct {
	X         float64 `yaml:"x" toml:"x"`
	Y         float64 `yaml:"y" toml:"y"`
	Size      int     `yaml:"size" toml:"size"`
	Color     string  `yaml:"color" toml:"color"`
	Direction string  `yaml:"direction,omitempty" toml:"direction"`
	VY        float64 `yaml:"vy,omitempty" toml:"vy"`
}

// Load returns the catalog at path, or the embedded catalog when path is empty.
func Load(path string) (*Catalog, error) {
	if path == "" {
		return Default()
	}
	return LoadFile(path)
}

// LoadFile loads a catalog file. The format is chosen by extension.
func LoadFile(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("levels: reading file %s: %w", path, err)
	}
	c, err := Parse(data, filepath.Ext(path))
	if err != nil {
		return nil, fmt.Errorf("levels: parsing file %s: %w", path, err)
	}
	return c, nil
}

// Parse decodes a catalog. ext selects TOML for ".toml"; anything else is
// read as YAML.
func Parse(data []byte, ext string) (*Catalog, error) {
	var fc fileCatalog
	switch strings.ToLower(ext) {
	case ".toml":
		if err := toml.Unmarshal(data, &fc); err != nil {
			return nil, fmt.Errorf("levels: toml unmarshal: %w", err)
		}
	default:
		if err := yaml.Unmarshal(data, &fc); err != nil {
			return nil, fmt.Errorf("levels: yaml unmarshal: %w", err)
		}
	}

	out := make([]Level, 0, len(fc.Levels))
	for i, fl := range fc.Levels {
		lvl, err := fl.toLevel(i)
		if err != nil {
			return nil, err
		}
		out = append(out, lvl)
	}
	return NewCatalog(out)
}

func (fl fileLevel) toLevel(index int) (Level, error) {
	name := fl.Name
	if name == "" {
		name = fmt.Sprintf("Level %d", index+1)
	}

	balls := make([]Ball, len(fl.Balls))
	for i, fb := range fl.Balls {
		color, ok := core.ParseBallColor(fb.Color)
		if !ok {
			return Level{}, fmt.Errorf("%w: %q in level %q", ErrUnknownColor, fb.Color, name)
		}
		dir, err := parseDirection(fb.Direction)
		if err != nil {
			return Level{}, fmt.Errorf("%w: level %q ball %d: %w", ErrInvalidLevel, name, i, err)
		}
		balls[i] = Ball{
			X:         fb.X,
			Y:         fb.Y,
			Size:      fb.Size,
			Color:     color,
			Direction: dir,
			VY:        fb.VY,
		}
	}

	return Level{
		Name:       name,
		TimeBudget: time.Duration(fl.TimeMS) * time.Millisecond,
		Balls:      balls,
	}, nil
}

func parseDirection(s string) (game.Direction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "none":
		return game.DirectionNone, nil
	case "left":
		return game.DirectionLeft, nil
	case "right":
		return game.DirectionRight, nil
	default:
		return game.DirectionNone, fmt.Errorf("unknown direction %q", s)
	}
}
