package component

import "castle-fight/internal/ecs"

const (
	CName  ecs.ComponentType = 24
	CLabel ecs.ComponentType = 25
)

// Name is a human-readable description used in logs and the HUD.
type Name struct {
	Value string
}

func (Name) Type() ecs.ComponentType { return CName }

// Label is a text decoration drawn under its parent entity. Labels are child
// entities and die with their parent.
type Label struct {
	Text string
	Team Team
}

func (Label) Type() ecs.ComponentType { return CLabel }
