// Package level describes a battlefield: castle placements and the waypoint
// graph units walk along. Levels are read-only once loaded.
package level

import (
	"bytes"
	"castle-fight/internal/component"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"gopkg.in/yaml.v3"
)

var (
	// ErrUnknownWaypoint is returned when a waypoint's next names a missing id.
	ErrUnknownWaypoint = errors.New("unknown waypoint")
	// ErrDuplicateWaypoint is returned when two waypoints share an id.
	ErrDuplicateWaypoint = errors.New("duplicate waypoint")
	// ErrUnknownTeam is returned for a team name that does not exist.
	ErrUnknownTeam = errors.New("unknown team")
)

// Castle places one team's castle.
type Castle struct {
	Team   component.Team
	X, Y   float64
	Health int
}

// Waypoint is one node of a path. Next is empty at the end of a path.
type Waypoint struct {
	ID    string
	Team  component.Team
	X, Y  float64
	Next  string
	Start bool
}

// Level is a validated battlefield description.
type Level struct {
	Name          string
	Width, Height float64
	Castles       []Castle
	Waypoints     []Waypoint
}

type rawCastle struct {
	Team   string  `json:"team" yaml:"team"`
	X      float64 `json:"x" yaml:"x"`
	Y      float64 `json:"y" yaml:"y"`
	Health int     `json:"health" yaml:"health"`
}

type rawWaypoint struct {
	ID    string  `json:"id" yaml:"id"`
	Team  string  `json:"team" yaml:"team"`
	X     float64 `json:"x" yaml:"x"`
	Y     float64 `json:"y" yaml:"y"`
	Next  string  `json:"next,omitempty" yaml:"next,omitempty"`
	Start bool    `json:"start,omitempty" yaml:"start,omitempty"`
}

type rawLevel struct {
	Name      string        `json:"name" yaml:"name"`
	Width     float64       `json:"width" yaml:"width"`
	Height    float64       `json:"height" yaml:"height"`
	Castles   []rawCastle   `json:"castles" yaml:"castles"`
	Waypoints []rawWaypoint `json:"waypoints" yaml:"waypoints"`
}

func parseTeam(s string) (component.Team, error) {
	t, err := component.ParseTeam(s)
	if err != nil {
		return t, fmt.Errorf("%w: %q", ErrUnknownTeam, s)
	}
	return t, nil
}

func (r rawLevel) validate() (*Level, error) {
	lvl := &Level{Name: r.Name, Width: r.Width, Height: r.Height}
	for i, c := range r.Castles {
		team, err := parseTeam(c.Team)
		if err != nil {
			return nil, fmt.Errorf("castle %d: %w", i, err)
		}
		lvl.Castles = append(lvl.Castles, Castle{Team: team, X: c.X, Y: c.Y, Health: c.Health})
	}
	ids := make(map[string]bool, len(r.Waypoints))
	for _, wp := range r.Waypoints {
		if wp.ID == "" {
			return nil, fmt.Errorf("waypoint at (%g,%g): %w: empty id", wp.X, wp.Y, ErrUnknownWaypoint)
		}
		if ids[wp.ID] {
			return nil, fmt.Errorf("waypoint %q: %w", wp.ID, ErrDuplicateWaypoint)
		}
		ids[wp.ID] = true
	}
	for _, wp := range r.Waypoints {
		team, err := parseTeam(wp.Team)
		if err != nil {
			return nil, fmt.Errorf("waypoint %q: %w", wp.ID, err)
		}
		if wp.Next != "" && !ids[wp.Next] {
			return nil, fmt.Errorf("waypoint %q next %q: %w", wp.ID, wp.Next, ErrUnknownWaypoint)
		}
		lvl.Waypoints = append(lvl.Waypoints, Waypoint{
			ID: wp.ID, Team: team, X: wp.X, Y: wp.Y, Next: wp.Next, Start: wp.Start,
		})
	}
	return lvl, nil
}

// Parse decodes a level. YAML is used when yamlFormat is true, JSON otherwise.
func Parse(data []byte, yamlFormat bool) (*Level, error) {
	var r rawLevel
	if yamlFormat {
		if err := yaml.Unmarshal(data, &r); err != nil {
			return nil, fmt.Errorf("parse level: %w", err)
		}
	} else {
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&r); err != nil {
			return nil, fmt.Errorf("parse level: %w", err)
		}
	}
	return r.validate()
}

// Load reads a level file from fsys; the format follows the extension.
func Load(fsys fs.FS, name string) (*Level, error) {
	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		return nil, fmt.Errorf("load level: %w", err)
	}
	isYAML := strings.HasSuffix(name, ".yaml") || strings.HasSuffix(name, ".yml")
	lvl, err := Parse(data, isYAML)
	if err != nil {
		return nil, fmt.Errorf("load level %s: %w", name, err)
	}
	return lvl, nil
}

// Teams returns the teams that own a castle, in level order.
func (l *Level) Teams() []component.Team {
	var out []component.Team
	seen := map[component.Team]bool{}
	for _, c := range l.Castles {
		if !seen[c.Team] {
			seen[c.Team] = true
			out = append(out, c.Team)
		}
	}
	return out
}
