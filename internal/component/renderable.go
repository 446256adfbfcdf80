package component

import "castle-fight/internal/ecs"

const CRenderable ecs.ComponentType = 3

// Renderable carries presentation hints. The simulation never reads it.
type Renderable struct {
	Glyph       string
	RenderOrder int
}

func (Renderable) Type() ecs.ComponentType { return CRenderable }
