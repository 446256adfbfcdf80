package arena

import (
	"castle-fight/internal/component"

	"github.com/gdamore/tcell/v2"
)

// pollEvents forwards screen events until the screen is finalised.
func pollEvents(screen tcell.Screen) <-chan tcell.Event {
	eventCh := make(chan tcell.Event, 32)
	go func() {
		for {
			ev := screen.PollEvent()
			if ev == nil {
				close(eventCh)
				return
			}
			eventCh <- ev
		}
	}()
	return eventCh
}

// Play drives one connected session: lobby, match, result screen. It blocks
// until the player leaves and always releases the player's seat.
func (s *Server) Play(sess *Session) {
	defer s.Leave(sess)
	eventCh := pollEvents(sess.Screen)

	started, err := s.Join(sess)
	if err != nil {
		s.log.Error("join", "session", sess.ID, "error", err)
		return
	}
	if !started && !s.waitForOpponent(sess, eventCh) {
		return
	}
	s.RunLoop(sess, eventCh)
}

// waitForOpponent shows the lobby until sess is seated. It returns false if
// the player quits or disconnects first.
func (s *Server) waitForOpponent(sess *Session, eventCh <-chan tcell.Event) bool {
	showWaiting(sess.Screen)
	for {
		select {
		case <-sess.Seated:
			return true
		case ev, ok := <-eventCh:
			if !ok {
				return false
			}
			switch ev := ev.(type) {
			case *tcell.EventResize:
				sess.Screen.Sync()
				showWaiting(sess.Screen)
			case *tcell.EventKey:
				switch a, _ := keyToAction(ev); a {
				case ActionBot:
					if err := s.StartBotMatch(sess); err != nil {
						s.log.Error("bot match", "session", sess.ID, "error", err)
						return false
					}
				case ActionQuit, ActionCancel:
					return false
				}
			}
		}
	}
}

// RunLoop is the per-session goroutine of a seated player. It reads input,
// renders when the ticker signals, and returns when the player quits, the
// match ends, or the connection drops.
func (s *Server) RunLoop(sess *Session, eventCh <-chan tcell.Event) {
	g := sess.game
	var buildings []string
	for _, b := range g.Match.Factions[sess.Team].Buildings {
		buildings = append(buildings, b.ID)
	}
	s.render(sess)

	for {
		select {
		case ev, ok := <-eventCh:
			if !ok {
				return
			}
			switch ev := ev.(type) {
			case *tcell.EventResize:
				sess.Screen.Sync()
				s.render(sess)
			case *tcell.EventKey:
				a, pick := keyToAction(ev)
				switch a {
				case ActionQuit:
					return
				case ActionHelp:
					if !waitKey(sess.Screen, eventCh, drawHelp) {
						return
					}
				default:
					sess.handleAction(a, pick, buildings, s.cfg.GridSize)
				}
				s.render(sess)
			}

		case <-sess.RenderCh:
			s.render(sess)

		case <-g.done:
			s.render(sess)
			waitKey(sess.Screen, eventCh, func(scr tcell.Screen) { drawGameOver(scr, s.banner(sess)) })
			return
		}
	}
}

// waitKey redraws with draw until any key is pressed. It returns false on
// disconnect.
func waitKey(screen tcell.Screen, eventCh <-chan tcell.Event, draw func(tcell.Screen)) bool {
	for {
		draw(screen)
		ev, ok := <-eventCh
		if !ok {
			return false
		}
		switch ev.(type) {
		case *tcell.EventResize:
			screen.Sync()
		case *tcell.EventKey:
			return true
		}
	}
}

// render draws sess's view of its match. The world is read under s.mu; the
// SSH write in Show happens after the lock is released.
func (s *Server) render(sess *Session) {
	s.mu.Lock()
	sess.Renderer.DrawFrame(sess.game.Match, sess.view)
	s.mu.Unlock()
	sess.Screen.Show()
}

func (s *Server) banner(sess *Session) string {
	s.mu.Lock()
	winner := sess.game.Match.Winner()
	s.mu.Unlock()
	switch winner {
	case sess.Team:
		return "🏆 Victory! 🏆"
	case component.TeamGaia:
		return "Draw"
	default:
		return "💀 Defeat 💀"
	}
}

// PlayBot drives a local session straight into a match against the bot.
func (s *Server) PlayBot(sess *Session) error {
	defer s.Leave(sess)
	eventCh := pollEvents(sess.Screen)
	if err := s.StartBotMatch(sess); err != nil {
		return err
	}
	s.RunLoop(sess, eventCh)
	return nil
}
