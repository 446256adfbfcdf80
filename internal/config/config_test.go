package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefaultIsValid(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
}

func TestParseOverlaysDefaults(t *testing.T) {
	cfg, err := Parse([]byte("tick_rate: 60\nperception: sensor\nperception_interval: 500ms\nred_faction: orcs\n"))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.TickRate != 60 {
		t.Errorf("tick_rate = %d, want 60", cfg.TickRate)
	}
	if cfg.Perception != PerceptionSensor {
		t.Errorf("perception = %q", cfg.Perception)
	}
	if cfg.RedFaction != "orcs" || cfg.BlueFaction != "" {
		t.Errorf("factions = %q/%q, want orcs and catalog order", cfg.RedFaction, cfg.BlueFaction)
	}
	if cfg.PerceptionInterval != 500*time.Millisecond {
		t.Errorf("perception_interval = %v", cfg.PerceptionInterval)
	}
	if cfg.SSHAddr != ":2222" || cfg.GridSize != 32 {
		t.Errorf("unset fields lost their defaults: %+v", cfg)
	}
}

func TestParseRejectsInvalid(t *testing.T) {
	cases := []struct {
		name string
		yaml string
	}{
		{"zero tick rate", "tick_rate: 0\n"},
		{"unknown perception", "perception: telepathy\n"},
		{"negative threshold", "arrival_threshold: -1\n"},
		{"zero grid", "grid_size: 0\n"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := Parse([]byte(tc.yaml)); !errors.Is(err, ErrInvalid) {
				t.Errorf("err = %v, want ErrInvalid", err)
			}
		})
	}
}

func TestLoad(t *testing.T) {
	cfg, err := Load("")
	if err != nil || cfg != Default() {
		t.Fatalf("Load(\"\") = %+v, %v", cfg, err)
	}

	path := filepath.Join(t.TempDir(), "castle-fight.yaml")
	if err := os.WriteFile(path, []byte("ssh_addr: \":2323\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err = Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.SSHAddr != ":2323" {
		t.Errorf("ssh_addr = %q", cfg.SSHAddr)
	}

	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("missing file loaded without error")
	}
}

func TestTickDuration(t *testing.T) {
	cfg := Default()
	if got := cfg.TickDuration(); got != time.Second/30 {
		t.Errorf("tick duration = %v", got)
	}
}
