package arena

import (
	"castle-fight/internal/component"
	"castle-fight/internal/render"
	"castle-fight/internal/sim"
	"castle-fight/internal/vec"
	"sync"

	"github.com/gdamore/tcell/v2"
	"github.com/google/uuid"
)

// Session holds all per-player state for one connection.
type Session struct {
	ID     uuid.UUID
	Name   string
	Screen tcell.Screen

	Renderer *render.Renderer

	// Set under Server.mu when the session is seated in a game.
	Team component.Team
	game *Game

	// UI state, owned by the session goroutine.
	view   render.View
	cursor vec.Vec2

	// Commands for the tick goroutine, applied in order at the next tick.
	inputMu sync.Mutex
	inputs  []sim.Input

	// RenderCh is signalled after every tick; Seated fires once when the
	// session joins a game.
	RenderCh chan struct{}
	Seated   chan struct{}
}

// NewSession allocates a Session for a newly connected player.
func NewSession(name string, screen tcell.Screen) *Session {
	return &Session{
		ID:       uuid.New(),
		Name:     name,
		Screen:   screen,
		Renderer: render.NewRenderer(screen),
		RenderCh: make(chan struct{}, 1),
		Seated:   make(chan struct{}),
	}
}

// Queue adds a command for the next tick.
func (s *Session) Queue(in sim.Input) {
	s.inputMu.Lock()
	s.inputs = append(s.inputs, in)
	s.inputMu.Unlock()
}

// TakeInputs returns and clears the queued commands.
func (s *Session) TakeInputs() []sim.Input {
	s.inputMu.Lock()
	in := s.inputs
	s.inputs = nil
	s.inputMu.Unlock()
	return in
}

func (s *Session) signalRender() {
	select {
	case s.RenderCh <- struct{}{}:
	default:
	}
}
