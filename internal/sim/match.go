// Package sim runs a Castle Fight match: one world, one level, two factions and
// the fixed per-tick system order.
package sim

import (
	"castle-fight/internal/blueprint"
	"castle-fight/internal/component"
	"castle-fight/internal/config"
	"castle-fight/internal/ecs"
	"castle-fight/internal/factory"
	"castle-fight/internal/level"
	"castle-fight/internal/spatial"
	"castle-fight/internal/system"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/looplab/fsm"
)

// ErrNoFaction is returned when a level team has no faction assigned.
var ErrNoFaction = errors.New("no faction for team")

// Match states.
const (
	StateRunning  = "running"
	StatePaused   = "paused"
	StateFinished = "finished"
)

const (
	eventPause  = "pause"
	eventResume = "resume"
	eventFinish = "finish"
)

// maxMessages bounds the message log kept for the HUD.
const maxMessages = 8

// Report is what one tick did.
type Report struct {
	Tick      uint64
	Perceived bool
	Targets   []system.TargetChange
	Hits      []system.Hit
	Deaths    []system.Death
	Spawns    []system.Spawn
	Winner    component.Team
	Finished  bool
}

// Match owns a world and advances it tick by tick. It is not safe for
// concurrent use; callers serialise Tick, Apply and reads.
type Match struct {
	ID       uuid.UUID
	World    *ecs.World
	Level    *level.Level
	Factions map[component.Team]*blueprint.Faction

	cfg        config.Config
	log        *slog.Logger
	starts     *level.StartMap
	index      *spatial.Index
	perception system.Perception
	state      *fsm.FSM
	bots       []*Bot
	cursors    map[component.Team]cursor

	tick        uint64
	elapsed     float64
	sinceSensed float64
	sensed      bool
	winner      component.Team
	startedAt   time.Time
	messages    []string
}

// NewMatch builds lvl into a fresh world. Every team owning a castle in lvl
// needs an entry in factions.
func NewMatch(lvl *level.Level, factions map[component.Team]*blueprint.Faction, cfg config.Config, logger *slog.Logger) (*Match, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	for _, team := range lvl.Teams() {
		if factions[team] == nil {
			return nil, fmt.Errorf("%w %s", ErrNoFaction, team)
		}
	}
	if logger == nil {
		logger = slog.Default()
	}

	m := &Match{
		ID:        uuid.New(),
		World:     ecs.NewWorld(),
		Level:     lvl,
		Factions:  factions,
		cfg:       cfg,
		index:     spatial.NewIndex(spatial.DefaultCellSize),
		cursors:   make(map[component.Team]cursor),
		startedAt: time.Now(),
	}
	m.log = logger.With("match", m.ID.String())
	switch cfg.Perception {
	case config.PerceptionSensor:
		m.perception = system.NewSensorPerception()
	default:
		m.perception = system.RadiusPerception{}
	}
	m.state = fsm.NewFSM(
		StateRunning,
		fsm.Events{
			{Name: eventPause, Src: []string{StateRunning}, Dst: StatePaused},
			{Name: eventResume, Src: []string{StatePaused}, Dst: StateRunning},
			{Name: eventFinish, Src: []string{StateRunning, StatePaused}, Dst: StateFinished},
		},
		fsm.Callbacks{
			"enter_state": func(_ context.Context, e *fsm.Event) {
				m.log.Info("match state", "from", e.Src, "to", e.Dst, "tick", m.tick)
			},
		},
	)

	m.starts = factory.BuildLevel(m.World, lvl)
	for _, team := range lvl.Teams() {
		if m.starts.Len(team) == 0 {
			m.log.Warn("team has no start waypoint; its units will not march", "team", team)
		}
	}
	m.log.Info("match created", "level", lvl.Name, "teams", len(lvl.Teams()), "perception", cfg.Perception)
	return m, nil
}

// State returns the lifecycle state.
func (m *Match) State() string { return m.state.Current() }

// Running reports whether ticks advance the world.
func (m *Match) Running() bool { return m.state.Is(StateRunning) }

// Finished reports whether the match is over.
func (m *Match) Finished() bool { return m.state.Is(StateFinished) }

// Winner is the team that won a finished match, or TeamGaia for a draw or an
// unfinished match.
func (m *Match) Winner() component.Team { return m.winner }

// TickCount returns the number of ticks simulated so far.
func (m *Match) TickCount() uint64 { return m.tick }

// Elapsed returns simulated seconds.
func (m *Match) Elapsed() float64 { return m.elapsed }

// Config returns the settings the match runs with.
func (m *Match) Config() config.Config { return m.cfg }

// Messages returns the most recent HUD messages, oldest first.
func (m *Match) Messages() []string { return m.messages }

func (m *Match) note(format string, args ...any) {
	m.messages = append(m.messages, fmt.Sprintf(format, args...))
	if len(m.messages) > maxMessages {
		m.messages = m.messages[len(m.messages)-maxMessages:]
	}
}

// Pause stops the simulation. It is a no-op unless running.
func (m *Match) Pause() { m.fire(eventPause) }

// Resume restarts a paused simulation.
func (m *Match) Resume() { m.fire(eventResume) }

// TogglePause flips between running and paused.
func (m *Match) TogglePause() {
	if m.Running() {
		m.Pause()
	} else {
		m.Resume()
	}
}

func (m *Match) fire(event string) {
	if !m.state.Can(event) {
		return
	}
	if err := m.state.Event(context.Background(), event); err != nil {
		m.log.Debug("match transition", "event", event, "error", err)
	}
}

// Tick advances the world by dt seconds, running the systems in their fixed
// order. A paused or finished match does nothing.
func (m *Match) Tick(dt float64) Report {
	if !m.Running() {
		return Report{Tick: m.tick, Finished: m.Finished(), Winner: m.winner}
	}
	m.tick++
	m.elapsed += dt
	rep := Report{Tick: m.tick}

	for _, b := range m.bots {
		b.step(m, dt)
	}

	w := m.World
	if !m.sensed || m.sinceSensed >= m.cfg.PerceptionInterval.Seconds() {
		m.index.Rebuild(w)
		m.perception.Perceive(w, m.index)
		m.sinceSensed = 0
		m.sensed = true
		rep.Perceived = true
	}
	m.sinceSensed += dt

	rep.Targets = system.ResolveTargets(w, m.cfg.EnforceAttackRange)
	for _, c := range rep.Targets {
		if c.Acquired {
			m.log.Debug("target acquired", "attacker", c.Attacker, "target", c.Target)
		} else {
			m.log.Debug("target lost", "attacker", c.Attacker, "target", c.Target)
		}
	}

	system.SyncAttackMoveTarget(w)
	system.SyncWaypointMoveTarget(w, m.cfg.ArrivalThreshold)
	system.MoveTowardsTarget(w, m.cfg.EnforceAttackRange)
	system.MoveTowardsPoint(w, dt)

	rep.Hits = system.ResolveAttacks(w, dt, m.cfg.EnforceAttackRange)

	rep.Deaths = system.CheckDeaths(w)
	castleLost := false
	for _, d := range rep.Deaths {
		m.log.Info("entity died", "entity", d.ID, "team", d.Team, "name", d.Name)
		if d.Castle {
			castleLost = true
			m.note("%s castle destroyed", d.Team)
		}
	}

	var errs []error
	rep.Spawns, errs = system.RunSpawners(w, dt, m.starts)
	for _, s := range rep.Spawns {
		m.log.Debug("unit spawned", "unit", s.Unit, "kind", s.UnitID, "team", s.Team, "building", s.Building)
	}
	for _, err := range errs {
		m.log.Warn("spawn failed", "error", err)
	}

	system.ValidateGhosts(w, m.bounds())

	if castleLost {
		m.checkVictory()
	}
	rep.Finished = m.Finished()
	rep.Winner = m.winner
	return rep
}

// checkVictory finishes the match once at most one team still has a castle.
func (m *Match) checkVictory() {
	standing := map[component.Team]bool{}
	for _, id := range m.World.Query(component.CTagCastle, component.CTeam) {
		standing[m.World.Get(id, component.CTeam).(component.Team)] = true
	}
	if len(standing) > 1 {
		return
	}
	m.winner = component.TeamGaia
	for team := range standing {
		m.winner = team
	}
	if m.winner == component.TeamGaia {
		m.note("Draw")
	} else {
		m.note("%s wins", m.winner)
	}
	m.log.Info("match over", "winner", m.winner, "ticks", m.tick, "elapsed", m.elapsed)
	m.fire(eventFinish)
}

// Forfeit ends the match in favour of team's opponent.
func (m *Match) Forfeit(team component.Team) {
	if m.Finished() {
		return
	}
	m.winner = team.Opponent()
	m.note("%s forfeits", team)
	m.log.Info("match forfeited", "team", team, "winner", m.winner)
	m.fire(eventFinish)
}

func (m *Match) bounds() system.Bounds {
	return system.Bounds{Width: m.Level.Width, Height: m.Level.Height}
}

// CastleHealth returns the summed current and max health of team's castles.
func (m *Match) CastleHealth(team component.Team) (cur, total int) {
	for _, id := range m.World.Query(component.CTagCastle, component.CTeam, component.CHealth) {
		if m.World.Get(id, component.CTeam).(component.Team) != team {
			continue
		}
		h := m.World.Get(id, component.CHealth).(component.Health)
		cur += h.Current
		total += h.Max
	}
	return cur, total
}

// Close ends the match and removes every in-game entity from the world.
func (m *Match) Close() {
	m.fire(eventFinish)
	n := 0
	for _, id := range m.World.Query(component.CTagInGame) {
		if m.World.Alive(id) {
			n += m.World.DestroyRecursive(id)
		}
	}
	m.log.Debug("match closed", "destroyed", n)
}
