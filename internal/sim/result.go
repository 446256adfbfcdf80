package sim

import (
	"castle-fight/internal/component"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// Result summarises a finished match for the results log.
type Result struct {
	MatchID   string            `json:"match_id"`
	Level     string            `json:"level"`
	Winner    string            `json:"winner"`
	Factions  map[string]string `json:"factions"`
	Players   map[string]string `json:"players,omitempty"`
	Ticks     uint64            `json:"ticks"`
	Elapsed   float64           `json:"elapsed_seconds"`
	StartedAt time.Time         `json:"started_at"`
	EndedAt   time.Time         `json:"ended_at"`
}

// Result captures the match outcome. players maps team names to display
// names and may be nil.
func (m *Match) Result(players map[component.Team]string) Result {
	r := Result{
		MatchID:   m.ID.String(),
		Level:     m.Level.Name,
		Winner:    m.winner.String(),
		Factions:  make(map[string]string, len(m.Factions)),
		Ticks:     m.tick,
		Elapsed:   m.elapsed,
		StartedAt: m.startedAt,
		EndedAt:   time.Now(),
	}
	for team, fac := range m.Factions {
		r.Factions[team.String()] = fac.ID
	}
	if len(players) > 0 {
		r.Players = make(map[string]string, len(players))
		for team, name := range players {
			r.Players[team.String()] = name
		}
	}
	return r
}

// SaveResult appends r as one JSON line to matches.jsonl in dir.
func SaveResult(dir string, r Result) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("save result: %w", err)
	}
	f, err := os.OpenFile(filepath.Join(dir, "matches.jsonl"), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("save result: %w", err)
	}
	defer f.Close()

	data, err := json.Marshal(r)
	if err != nil {
		return fmt.Errorf("save result: %w", err)
	}
	data = append(data, '\n')
	if _, err := f.Write(data); err != nil {
		return fmt.Errorf("save result: %w", err)
	}
	return nil
}

// ResultDir returns where match results are stored:
// $XDG_DATA_HOME/castle-fight, defaulting to ~/.local/share/castle-fight.
func ResultDir() (string, error) {
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		dataHome = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dataHome, "castle-fight"), nil
}
