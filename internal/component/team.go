package component

import (
	"castle-fight/internal/ecs"
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"
)

const (
	CTeam            ecs.ComponentType = 4
	CTeamAssociation ecs.ComponentType = 5
)

// Team identifies a side. Team equality is the only friend/foe test.
type Team uint8

const (
	TeamGaia Team = iota // neutral
	TeamRed
	TeamBlue
)

// Teams lists the playable teams in a stable order.
var Teams = []Team{TeamRed, TeamBlue}

func (Team) Type() ecs.ComponentType { return CTeam }

func (t Team) String() string {
	switch t {
	case TeamRed:
		return "RED"
	case TeamBlue:
		return "BLUE"
	default:
		return "GAIA"
	}
}

// Color is the team's presentation color.
func (t Team) Color() tcell.Color {
	switch t {
	case TeamRed:
		return tcell.ColorRed
	case TeamBlue:
		return tcell.ColorBlue
	default:
		return tcell.ColorGray
	}
}

// Opponent returns the other playable team. Gaia has no opponent.
func (t Team) Opponent() Team {
	switch t {
	case TeamRed:
		return TeamBlue
	case TeamBlue:
		return TeamRed
	default:
		return TeamGaia
	}
}

// ParseTeam accepts GAIA, RED or BLUE in any case.
func ParseTeam(s string) (Team, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "GAIA":
		return TeamGaia, nil
	case "RED":
		return TeamRed, nil
	case "BLUE":
		return TeamBlue, nil
	}
	return TeamGaia, fmt.Errorf("team %q does not exist", s)
}

// TeamAssociation ties an entity to a team without making it a team member.
// Waypoints use it so that they are never perceived or targeted.
type TeamAssociation struct {
	Team Team
}

func (TeamAssociation) Type() ecs.ComponentType { return CTeamAssociation }
