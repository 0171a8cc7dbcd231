package config

import (
	"sort"
	"time"
)

// Playlists name curated scene rotations. A nil list means every scene.
var Playlists = map[string][]string{
	"calm":   {"starfield", "fireflies", "ocean-waves", "lantern-festival"},
	"night":  {"starfield", "neon-city", "aurora-borealis", "rain-on-window", "lantern-festival"},
	"motion": {"pendulum-wave", "fireflies", "lantern-festival", "rain-on-window"},
	"all":    nil,
}

// Presets pair a playlist with pacing that suits it.
var Presets = map[string]*Config{
	"calm":   preset("calm", 90*time.Second, 3*time.Second),
	"night":  preset("night", 60*time.Second, DefaultFadeDuration),
	"motion": preset("motion", 30*time.Second, time.Second),
	"all":    preset("all", DefaultSceneDuration, DefaultFadeDuration),
}

func preset(playlist string, scene, fade time.Duration) *Config {
	cfg := DefaultConfig()
	cfg.Playlist = playlist
	cfg.SceneDuration = scene
	cfg.FadeDuration = fade
	return cfg
}

// GetPreset returns a copy of the named preset, or nil.
func GetPreset(name string) *Config {
	cfg, ok := Presets[name]
	if !ok {
		return nil
	}
	cp := *cfg
	return &cp
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
