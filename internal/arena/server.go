// Package arena hosts Castle Fight matches for SSH players. Players queue in a
// lobby and are paired two at a time, RED against BLUE; a waiting player may
// instead start a match against a bot. Each match has a ticker goroutine that
// advances the simulation at the configured tick rate; every session renders
// in its own goroutine when signalled.
package arena

import (
	"castle-fight/internal/blueprint"
	"castle-fight/internal/component"
	"castle-fight/internal/config"
	"castle-fight/internal/level"
	"castle-fight/internal/sim"
	"errors"
	"fmt"
	"log/slog"
	"maps"
	"sync"
	"time"

	"github.com/google/uuid"
)

var (
	// ErrNoFactions is returned when the catalog cannot supply two factions.
	ErrNoFactions = errors.New("catalog has no factions")
	// ErrUnknownFaction is returned when the config names a faction the
	// catalog does not hold.
	ErrUnknownFaction = errors.New("unknown faction")
	// ErrNoSeat is returned when a session's team has no faction in the match.
	ErrNoSeat = errors.New("no seat for team")
)

// Game is one running match and its seated players.
type Game struct {
	Match    *sim.Match
	Sessions []*Session
	done     chan struct{}
	once     sync.Once
}

// Done is closed when the match is over.
func (g *Game) Done() <-chan struct{} { return g.done }

// Server pairs sessions into matches.
type Server struct {
	mu         sync.Mutex
	cfg        config.Config
	level      *level.Level
	log        *slog.Logger
	resultsDir string
	waiting    *Session
	games      map[uuid.UUID]*Game
	teams      map[component.Team]*blueprint.Faction
}

// NewServer creates a Server. resultsDir may be empty to skip the results log.
func NewServer(cfg config.Config, lvl *level.Level, catalog *blueprint.Catalog, logger *slog.Logger, resultsDir string) (*Server, error) {
	if len(catalog.Factions()) == 0 {
		return nil, ErrNoFactions
	}
	if logger == nil {
		logger = slog.Default()
	}
	teams, err := pickFactions(catalog, cfg.RedFaction, cfg.BlueFaction)
	if err != nil {
		return nil, err
	}
	return &Server{
		cfg:        cfg,
		level:      lvl,
		log:        logger,
		resultsDir: resultsDir,
		games:      make(map[uuid.UUID]*Game),
		teams:      teams,
	}, nil
}

// pickFactions assigns factions to teams. An empty id takes the catalog's
// factions in id order, reusing the first one when the catalog holds a single
// faction.
func pickFactions(catalog *blueprint.Catalog, red, blue string) (map[component.Team]*blueprint.Faction, error) {
	all := catalog.Factions()
	teams := map[component.Team]*blueprint.Faction{
		component.TeamRed:  all[0],
		component.TeamBlue: all[1%len(all)],
	}
	for team, id := range map[component.Team]string{component.TeamRed: red, component.TeamBlue: blue} {
		if id == "" {
			continue
		}
		f, ok := catalog.Faction(id)
		if !ok {
			return nil, fmt.Errorf("%s faction %q: %w", team, id, ErrUnknownFaction)
		}
		teams[team] = f
	}
	return teams, nil
}

// Join seats sess. The first player waits as RED; the next one is paired
// with them as BLUE and the match starts. It reports whether a match started.
func (s *Server) Join(sess *Session) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.waiting == nil {
		s.waiting = sess
		sess.Team = component.TeamRed
		s.log.Info("player waiting", "session", sess.ID, "name", sess.Name)
		return false, nil
	}
	red := s.waiting
	s.waiting = nil
	sess.Team = component.TeamBlue
	if _, err := s.startLocked(red, sess); err != nil {
		// RED keeps waiting for the next opponent.
		s.waiting = red
		sess.Team = component.TeamGaia
		return false, err
	}
	return true, nil
}

// StartBotMatch takes sess out of the lobby and starts a match against a bot
// playing the opposing team. A session that never joined the lobby plays RED.
func (s *Server) StartBotMatch(sess *Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if sess.game != nil {
		return nil
	}
	unseated := sess.Team == component.TeamGaia
	if unseated {
		sess.Team = component.TeamRed
	}
	if _, err := s.startLocked(sess); err != nil {
		if unseated {
			sess.Team = component.TeamGaia
		}
		return err
	}
	if s.waiting == sess {
		s.waiting = nil
	}
	return nil
}

// startLocked creates a match for players and starts its ticker. Teams not
// taken by a player are played by bots. Caller must hold s.mu.
func (s *Server) startLocked(players ...*Session) (*Game, error) {
	for _, p := range players {
		if s.teams[p.Team] == nil {
			return nil, fmt.Errorf("start match: %s: %w %s", p.Name, ErrNoSeat, p.Team)
		}
	}
	m, err := sim.NewMatch(s.level, maps.Clone(s.teams), s.cfg, s.log)
	if err != nil {
		return nil, fmt.Errorf("start match: %w", err)
	}
	g := &Game{Match: m, Sessions: players, done: make(chan struct{})}

	seated := map[component.Team]bool{}
	for _, p := range players {
		seated[p.Team] = true
	}
	for _, team := range s.level.Teams() {
		if !seated[team] {
			m.AddBot(team, s.cfg.BotBuildInterval)
		}
	}
	for _, p := range players {
		p.game = g
		p.view = viewFor(p)
		p.cursor = m.Cursor(p.Team)
		close(p.Seated)
		s.log.Info("player seated", "match", m.ID, "session", p.ID, "name", p.Name, "team", p.Team, "faction", m.Factions[p.Team].ID)
	}
	s.games[m.ID] = g
	go s.run(g)
	return g, nil
}

// run ticks g until it finishes.
func (s *Server) run(g *Game) {
	ticker := time.NewTicker(s.cfg.TickDuration())
	defer ticker.Stop()
	for {
		select {
		case <-g.done:
			return
		case <-ticker.C:
			s.tick(g, s.cfg.TickSeconds())
		}
	}
}

// tick applies queued input and advances g by dt.
func (s *Server) tick(g *Game, dt float64) {
	s.mu.Lock()
	for _, sess := range g.Sessions {
		for _, in := range sess.TakeInputs() {
			in.Team = sess.Team
			if err := g.Match.Apply(in); err != nil {
				s.log.Debug("input rejected", "session", sess.ID, "kind", in.Kind, "error", err)
			}
		}
	}
	rep := g.Match.Tick(dt)
	if rep.Finished {
		s.finishLocked(g)
	}
	s.mu.Unlock()

	// Sessions render on their own goroutines and write to SSH outside s.mu.
	for _, sess := range g.Sessions {
		sess.signalRender()
	}
}

// Leave removes sess from the lobby or forfeits its match.
func (s *Server) Leave(sess *Session) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.waiting == sess {
		s.waiting = nil
	}
	g := sess.game
	if g == nil {
		s.log.Info("player left lobby", "session", sess.ID)
		return
	}
	if !g.Match.Finished() {
		g.Match.Forfeit(sess.Team)
	}
	s.finishLocked(g)
}

// finishLocked records the result of g once and releases its players.
// Caller must hold s.mu.
func (s *Server) finishLocked(g *Game) {
	g.once.Do(func() {
		players := make(map[component.Team]string, len(g.Sessions))
		for _, p := range g.Sessions {
			players[p.Team] = p.Name
		}
		result := g.Match.Result(players)
		s.log.Info("match finished", "match", result.MatchID, "winner", result.Winner, "ticks", result.Ticks)
		if s.resultsDir != "" {
			if err := sim.SaveResult(s.resultsDir, result); err != nil {
				s.log.Warn("results log", "error", err)
			}
		}
		delete(s.games, g.Match.ID)
		close(g.done)
	})
}

// Games returns the number of running matches.
func (s *Server) Games() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.games)
}

// Waiting reports whether a player is waiting for an opponent.
func (s *Server) Waiting() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.waiting != nil
}
