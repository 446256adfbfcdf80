package assets

import "embed"

// Data holds the built-in faction files and levels.
//
//go:embed factions levels
var Data embed.FS

const (
	// FactionsDir is the directory inside Data holding *.faction.* files.
	FactionsDir = "factions"
	// DefaultLevel is the level used when none is configured.
	DefaultLevel = "levels/map-0.json"
)
