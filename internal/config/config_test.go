package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.SceneDuration != 60*time.Second {
		t.Errorf("expected 60s scenes, got %v", cfg.SceneDuration)
	}
	if cfg.MaxDt != 100*time.Millisecond {
		t.Errorf("expected 100ms max dt, got %v", cfg.MaxDt)
	}
	if cfg.TransitionTimeout != 3*time.Second {
		t.Errorf("expected 3s timeout, got %v", cfg.TransitionTimeout)
	}
	if cfg.RemoteEnabled() {
		t.Error("remote should be off by default")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults should validate: %v", err)
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nocturne.yaml")
	data := `
scene_duration: 45s
fade_duration: 1500ms
fps: 30
scenes: [starfield, ocean-waves]
mqtt:
  broker: tcp://10.0.0.2:1883
`
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.SceneDuration != 45*time.Second {
		t.Errorf("expected 45s, got %v", cfg.SceneDuration)
	}
	if cfg.FadeDuration != 1500*time.Millisecond {
		t.Errorf("expected 1.5s, got %v", cfg.FadeDuration)
	}
	if cfg.FPS != 30 {
		t.Errorf("expected fps 30, got %d", cfg.FPS)
	}
	if cfg.MaxDt != DefaultMaxDt {
		t.Errorf("expected default max dt to survive, got %v", cfg.MaxDt)
	}
	if !cfg.RemoteEnabled() || cfg.MQTT.Topic != DefaultTopic {
		t.Errorf("unexpected mqtt config %+v", cfg.MQTT)
	}
	if got := cfg.SceneNames(); len(got) != 2 || got[1] != "ocean-waves" {
		t.Errorf("unexpected scenes %v", got)
	}
}

func TestLoadInvalid(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(path, []byte("fps: 0\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); !errors.Is(err, ErrInvalid) {
		t.Errorf("expected ErrInvalid, got %v", err)
	}
	if _, err := Load(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestLoadOver(t *testing.T) {
	path := filepath.Join(t.TempDir(), "partial.yaml")
	if err := os.WriteFile(path, []byte("fps: 24\n"), 0644); err != nil {
		t.Fatal(err)
	}

	base := GetPreset("calm")
	cfg, err := LoadOver(path, base)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.FPS != 24 {
		t.Errorf("expected fps 24 from file, got %d", cfg.FPS)
	}
	if cfg.SceneDuration != 90*time.Second || cfg.Playlist != "calm" {
		t.Errorf("expected preset values to survive, got %v %q", cfg.SceneDuration, cfg.Playlist)
	}
	if base.FPS != DefaultFPS {
		t.Errorf("base was modified: fps %d", base.FPS)
	}
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.yaml")
	cfg := GetPreset("calm")
	if err := Save(path, cfg); err != nil {
		t.Fatal(err)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if got.SceneDuration != 90*time.Second || got.Playlist != "calm" {
		t.Errorf("round trip lost values: %+v", got)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero scene duration", func(c *Config) { c.SceneDuration = 0 }},
		{"negative max dt", func(c *Config) { c.MaxDt = -time.Millisecond }},
		{"zero timeout", func(c *Config) { c.TransitionTimeout = 0 }},
		{"zero overlay", func(c *Config) { c.OverlayDuration = 0 }},
		{"negative fade", func(c *Config) { c.FadeDuration = -time.Second }},
		{"zero fade", func(c *Config) { c.FadeDuration = 0 }},
		{"negative debounce", func(c *Config) { c.ResizeDebounce = -time.Second }},
		{"fps too high", func(c *Config) { c.FPS = 1000 }},
		{"unknown playlist", func(c *Config) { c.Playlist = "loud" }},
		{"bad log level", func(c *Config) { c.LogLevel = "chatty" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			if err := cfg.Validate(); !errors.Is(err, ErrInvalid) {
				t.Errorf("expected ErrInvalid, got %v", err)
			}
		})
	}
}

func TestGetPreset(t *testing.T) {
	cfg := GetPreset("motion")
	if cfg == nil {
		t.Fatal("expected preset, got nil")
	}
	if cfg.SceneDuration != 30*time.Second {
		t.Errorf("expected 30s, got %v", cfg.SceneDuration)
	}
	cfg.SceneDuration = time.Hour
	if GetPreset("motion").SceneDuration != 30*time.Second {
		t.Error("GetPreset must return a copy")
	}
	if GetPreset("nonexistent") != nil {
		t.Error("expected nil for nonexistent preset")
	}
}

func TestListPresets(t *testing.T) {
	got := ListPresets()
	want := []string{"all", "calm", "motion", "night"}
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("expected %v, got %v", want, got)
		}
	}
}

func TestSceneNames(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.SceneNames() != nil {
		t.Error("expected nil (all scenes) by default")
	}
	cfg.Playlist = "night"
	if got := cfg.SceneNames(); len(got) != 5 || got[1] != "neon-city" {
		t.Errorf("unexpected playlist scenes %v", got)
	}
	cfg.Scenes = []string{"fireflies"}
	if got := cfg.SceneNames(); len(got) != 1 {
		t.Errorf("explicit scenes should win, got %v", got)
	}
}

func TestPresetsValidate(t *testing.T) {
	for _, name := range ListPresets() {
		if err := GetPreset(name).Validate(); err != nil {
			t.Errorf("preset %s: %v", name, err)
		}
	}
}
