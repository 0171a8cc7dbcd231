package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"
)

const (
	DefaultSceneDuration     = 60 * time.Second
	DefaultMaxDt             = 100 * time.Millisecond
	DefaultFadeDuration      = 2 * time.Second
	DefaultTransitionTimeout = 3 * time.Second
	DefaultResizeDebounce    = 150 * time.Millisecond
	DefaultOverlayDuration   = 3 * time.Second
	DefaultFPS               = 60
	DefaultLogFile           = "nocturne.log"
	DefaultLogLevel          = "info"
	DefaultTopic             = "nocturne"
	DefaultClientID          = "nocturne"

	maxFPS = 240
)

// ErrInvalid wraps every validation failure.
var ErrInvalid = errors.New("config: invalid")

type Config struct {
	SceneDuration     time.Duration `yaml:"scene_duration"`
	MaxDt             time.Duration `yaml:"max_dt"`
	FadeDuration      time.Duration `yaml:"fade_duration"`
	TransitionTimeout time.Duration `yaml:"transition_timeout"`
	ResizeDebounce    time.Duration `yaml:"resize_debounce"`
	OverlayDuration   time.Duration `yaml:"overlay_duration"`
	FPS               int           `yaml:"fps"`
	Scenes            []string      `yaml:"scenes,omitempty"`
	Playlist          string        `yaml:"playlist,omitempty"`
	Seed              int64         `yaml:"seed"`
	Fullscreen        bool          `yaml:"fullscreen"`
	LogFile           string        `yaml:"log_file"`
	LogLevel          string        `yaml:"log_level"`
	MQTT              MQTTConfig    `yaml:"mqtt"`
}

// MQTTConfig enables the remote bridge when Broker is set.
type MQTTConfig struct {
	Broker   string `yaml:"broker,omitempty"`
	ClientID string `yaml:"client_id"`
	Topic    string `yaml:"topic"`
}

func DefaultConfig() *Config {
	return &Config{
		SceneDuration:     DefaultSceneDuration,
		MaxDt:             DefaultMaxDt,
		FadeDuration:      DefaultFadeDuration,
		TransitionTimeout: DefaultTransitionTimeout,
		ResizeDebounce:    DefaultResizeDebounce,
		OverlayDuration:   DefaultOverlayDuration,
		FPS:               DefaultFPS,
		LogFile:           DefaultLogFile,
		LogLevel:          DefaultLogLevel,
		MQTT: MQTTConfig{
			ClientID: DefaultClientID,
			Topic:    DefaultTopic,
		},
	}
}

// Load reads a YAML file over the defaults and validates the result.
func Load(path string) (*Config, error) {
	return LoadOver(path, DefaultConfig())
}

// LoadOver reads a YAML file over a copy of base. Keys the file leaves out
// keep base's values; base itself is not modified.
func LoadOver(path string, base *Config) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := *base
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (c *Config) Validate() error {
	positive := []struct {
		key string
		val time.Duration
	}{
		{"scene_duration", c.SceneDuration},
		{"fade_duration", c.FadeDuration},
		{"max_dt", c.MaxDt},
		{"transition_timeout", c.TransitionTimeout},
		{"overlay_duration", c.OverlayDuration},
	}
	for _, p := range positive {
		if p.val <= 0 {
			return fmt.Errorf("%w: %s must be positive, got %v", ErrInvalid, p.key, p.val)
		}
	}
	if c.ResizeDebounce < 0 {
		return fmt.Errorf("%w: resize_debounce must not be negative, got %v", ErrInvalid, c.ResizeDebounce)
	}
	if c.FPS < 1 || c.FPS > maxFPS {
		return fmt.Errorf("%w: fps must be within 1..%d, got %d", ErrInvalid, maxFPS, c.FPS)
	}
	if c.Playlist != "" {
		if _, ok := Playlists[c.Playlist]; !ok {
			return fmt.Errorf("%w: unknown playlist %q", ErrInvalid, c.Playlist)
		}
	}
	if c.LogLevel != "" {
		if _, err := zerolog.ParseLevel(c.LogLevel); err != nil {
			return fmt.Errorf("%w: log_level: %v", ErrInvalid, err)
		}
	}
	return nil
}

// SceneNames resolves the scenes to rotate through. An explicit list wins
// over the playlist; nil means every scene.
func (c *Config) SceneNames() []string {
	if len(c.Scenes) > 0 {
		return c.Scenes
	}
	if c.Playlist != "" {
		return Playlists[c.Playlist]
	}
	return nil
}

// RemoteEnabled reports whether the MQTT bridge should be started.
func (c *Config) RemoteEnabled() bool {
	return c.MQTT.Broker != ""
}
