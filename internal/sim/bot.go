package sim

import (
	"castle-fight/internal/component"
	"castle-fight/internal/system"
	"castle-fight/internal/vec"
	"errors"
	"time"
)

// Bot builds for a team on a fixed interval, cycling through its faction's
// buildings and placing each on the first free grid spot around its castle.
// It drives the match through Apply like a player.
type Bot struct {
	Team     component.Team
	Interval float64

	timeLeft float64
	next     int
}

// AddBot lets a bot play team. A non-positive interval uses the configured
// bot build interval.
func (m *Match) AddBot(team component.Team, interval time.Duration) *Bot {
	if interval <= 0 {
		interval = m.cfg.BotBuildInterval
	}
	b := &Bot{Team: team, Interval: interval.Seconds(), timeLeft: interval.Seconds()}
	m.bots = append(m.bots, b)
	m.log.Info("bot joined", "team", team, "interval", interval)
	return b
}

func (b *Bot) step(m *Match, dt float64) {
	b.timeLeft -= dt
	if b.timeLeft > 0 {
		return
	}
	b.timeLeft = b.Interval

	fac := m.Factions[b.Team]
	if fac == nil || len(fac.Buildings) == 0 {
		return
	}
	building := fac.Buildings[b.next%len(fac.Buildings)]
	b.next++

	home := m.home(b.Team)
	if _, ok := m.Ghost(b.Team); ok {
		m.Apply(Input{Team: b.Team, Kind: InputCancel}) //nolint:errcheck
	}
	for _, spot := range buildSpots(home, m.cfg.GridSize) {
		m.Apply(Input{Team: b.Team, Kind: InputCursor, Cursor: spot}) //nolint:errcheck
		if _, ok := m.Ghost(b.Team); !ok {
			if err := m.Apply(Input{Team: b.Team, Kind: InputSelect, Building: building.ID}); err != nil {
				m.log.Warn("bot select failed", "team", b.Team, "error", err)
				return
			}
		}
		err := m.Apply(Input{Team: b.Team, Kind: InputConfirm})
		if err == nil {
			return
		}
		if !errors.Is(err, system.ErrInvalidPlacement) {
			m.log.Warn("bot placement failed", "team", b.Team, "error", err)
			break
		}
	}
	m.Apply(Input{Team: b.Team, Kind: InputCancel}) //nolint:errcheck
}

// buildSpots lists candidate building centres in rings around home, nearest
// ring first.
func buildSpots(home vec.Vec2, grid float64) []vec.Vec2 {
	step := grid * 3
	var out []vec.Vec2
	for ring := 1; ring <= 4; ring++ {
		for dx := -ring; dx <= ring; dx++ {
			for dy := -ring; dy <= ring; dy++ {
				if max(abs(dx), abs(dy)) != ring {
					continue
				}
				out = append(out, home.Add(vec.New(float64(dx)*step, float64(dy)*step)))
			}
		}
	}
	return out
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
