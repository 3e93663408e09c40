// pkg/config/config.go
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"go.uber.org/multierr"
)

// Setting keys understood by Lookup.
const (
	KeyGlobalScale         = "global_scale"
	KeyResolution          = "resolution"
	KeyFramesBetweenChange = "frames_between_change"
	KeyTicksPerSecond      = "ticks_per_second"
	KeyStarDensity         = "star_density"
	KeyDataDir             = "data_dir"
	KeyDevMode             = "dev_mode"
	KeyAudio               = "audio"
)

// Settings is the read-only configuration the game core queries by key.
type Settings struct {
	Title               string         `json:"title"`
	GlobalScale         float64        `json:"globalScale"`
	Resolution          [2]int         `json:"resolution"`
	Fullscreen          bool           `json:"fullscreen"`
	FramesBetweenChange int            `json:"framesBetweenChange"`
	TicksPerSecond      int            `json:"ticksPerSecond"`
	StarDensity         float64        `json:"starDensity"`
	DataDir             string         `json:"dataDir"`
	DevMode             bool           `json:"devMode"`
	Audio               bool           `json:"audio"`
	Resources           ResourceConfig `json:"resources"`
	Extra               map[string]any `json:"extra,omitempty"`
}

// ResourceConfig bounds background work such as the prototype watcher.
type ResourceConfig struct {
	MaxGoroutines   int           `json:"maxGoroutines"`
	ShutdownTimeout time.Duration `json:"shutdownTimeout"`
}

// LoadConfig loads settings from a JSON file. Fields missing from the file
// keep their DefaultConfig values.
func LoadConfig(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	settings := DefaultConfig()
	if err := json.Unmarshal(data, settings); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return settings, nil
}

// SaveConfig saves settings to a file
func SaveConfig(settings *Settings, path string) error {
	data, err := json.MarshalIndent(settings, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// DefaultConfig returns the default settings
func DefaultConfig() *Settings {
	return &Settings{
		Title:               "Spaceman",
		GlobalScale:         1.0,
		Resolution:          [2]int{1024, 768},
		FramesBetweenChange: 5,
		TicksPerSecond:      60,
		StarDensity:         1.0,
		Audio:               true,
		Resources: ResourceConfig{
			MaxGoroutines:   8,
			ShutdownTimeout: 5 * time.Second,
		},
	}
}

// ApplyEnvironment overrides settings from SPACEMAN_* environment variables.
func (s *Settings) ApplyEnvironment() error {
	return s.applyEnv(os.LookupEnv)
}

func (s *Settings) applyEnv(lookup func(string) (string, bool)) error {
	var errs error

	if v, ok := lookup("SPACEMAN_GLOBAL_SCALE"); ok {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			errs = multierr.Append(errs, fmt.Errorf("SPACEMAN_GLOBAL_SCALE: %w", err))
		} else {
			s.GlobalScale = f
		}
	}
	if v, ok := lookup("SPACEMAN_RESOLUTION"); ok {
		res, err := ParseResolution(v)
		if err != nil {
			errs = multierr.Append(errs, fmt.Errorf("SPACEMAN_RESOLUTION: %w", err))
		} else {
			s.Resolution = res
		}
	}
	if v, ok := lookup("SPACEMAN_TPS"); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			errs = multierr.Append(errs, fmt.Errorf("SPACEMAN_TPS: %w", err))
		} else {
			s.TicksPerSecond = n
		}
	}
	if v, ok := lookup("SPACEMAN_DEV_MODE"); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			errs = multierr.Append(errs, fmt.Errorf("SPACEMAN_DEV_MODE: %w", err))
		} else {
			s.DevMode = b
		}
	}
	if v, ok := lookup("SPACEMAN_DATA_DIR"); ok {
		s.DataDir = v
	}

	return errs
}

// ParseResolution parses "WIDTHxHEIGHT".
func ParseResolution(v string) ([2]int, error) {
	w, h, ok := strings.Cut(strings.ToLower(v), "x")
	if !ok {
		return [2]int{}, fmt.Errorf("resolution %q is not WIDTHxHEIGHT", v)
	}
	width, err := strconv.Atoi(strings.TrimSpace(w))
	if err != nil {
		return [2]int{}, fmt.Errorf("resolution width: %w", err)
	}
	height, err := strconv.Atoi(strings.TrimSpace(h))
	if err != nil {
		return [2]int{}, fmt.Errorf("resolution height: %w", err)
	}
	return [2]int{width, height}, nil
}

// Validate reports every out-of-range setting.
func (s *Settings) Validate() error {
	var errs error
	if s.GlobalScale <= 0 {
		errs = multierr.Append(errs, fmt.Errorf("globalScale must be positive, got %v", s.GlobalScale))
	}
	if s.Resolution[0] <= 0 || s.Resolution[1] <= 0 {
		errs = multierr.Append(errs, fmt.Errorf("resolution must be positive, got %dx%d", s.Resolution[0], s.Resolution[1]))
	}
	if s.FramesBetweenChange <= 0 {
		errs = multierr.Append(errs, fmt.Errorf("framesBetweenChange must be positive, got %d", s.FramesBetweenChange))
	}
	if s.TicksPerSecond <= 0 {
		errs = multierr.Append(errs, fmt.Errorf("ticksPerSecond must be positive, got %d", s.TicksPerSecond))
	}
	if s.StarDensity < 0 {
		errs = multierr.Append(errs, fmt.Errorf("starDensity cannot be negative, got %v", s.StarDensity))
	}
	return errs
}

// Lookup returns the value stored under key. Unknown keys fall through to
// Extra.
func (s *Settings) Lookup(key string) (any, bool) {
	switch key {
	case KeyGlobalScale:
		return s.GlobalScale, true
	case KeyResolution:
		return s.Resolution, true
	case KeyFramesBetweenChange:
		return s.FramesBetweenChange, true
	case KeyTicksPerSecond:
		return s.TicksPerSecond, true
	case KeyStarDensity:
		return s.StarDensity, true
	case KeyDataDir:
		return s.DataDir, true
	case KeyDevMode:
		return s.DevMode, true
	case KeyAudio:
		return s.Audio, true
	}
	v, ok := s.Extra[key]
	return v, ok
}

// Set stores an arbitrary key in Extra. Known keys are not settable here.
func (s *Settings) Set(key string, value any) {
	if s.Extra == nil {
		s.Extra = make(map[string]any)
	}
	s.Extra[key] = value
}

// Float returns key as a float64, or def when absent or not numeric.
func (s *Settings) Float(key string, def float64) float64 {
	v, ok := s.Lookup(key)
	if !ok {
		return def
	}
	switch n := v.(type) {
	case float64:
		return n
	case float32:
		return float64(n)
	case int:
		return float64(n)
	}
	return def
}

// Int returns key as an int, or def when absent or not numeric.
func (s *Settings) Int(key string, def int) int {
	v, ok := s.Lookup(key)
	if !ok {
		return def
	}
	switch n := v.(type) {
	case int:
		return n
	case float64:
		return int(n)
	}
	return def
}

// Bool returns key as a bool, or def.
func (s *Settings) Bool(key string, def bool) bool {
	if v, ok := s.Lookup(key); ok {
		if b, ok := v.(bool); ok {
			return b
		}
	}
	return def
}

// Width returns the horizontal resolution.
func (s *Settings) Width() int { return s.Resolution[0] }

// Height returns the vertical resolution.
func (s *Settings) Height() int { return s.Resolution[1] }
