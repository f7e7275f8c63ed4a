package model

import (
	"fmt"
	"strings"
)

type NFLTeam struct {
	abbr   string
	loc    string
	mascot string
	nick   []string // Any other names that are used for the team, e.g. Philly for PHI
}

// String returns the canonical name of the team, e.g. "Seattle Seahawks". This is the only form of a team
// name that is ever stored with a pick or a matchup.
func (t *NFLTeam) String() string {
	return fmt.Sprintf("%s %s", t.loc, t.mascot)
}

func (t *NFLTeam) Abbr() string {
	return t.abbr
}

var (
	// NFC
	TEAM_ARI *NFLTeam = &NFLTeam{abbr: "ARI", loc: "Arizona", mascot: "Cardinals", nick: []string{"Cards"}}
	TEAM_ATL *NFLTeam = &NFLTeam{abbr: "ATL", loc: "Atlanta", mascot: "Falcons"}
	TEAM_CAR *NFLTeam = &NFLTeam{abbr: "CAR", loc: "Carolina", mascot: "Panthers"}
	TEAM_CHI *NFLTeam = &NFLTeam{abbr: "CHI", loc: "Chicago", mascot: "Bears"}
	TEAM_DAL *NFLTeam = &NFLTeam{abbr: "DAL", loc: "Dallas", mascot: "Cowboys"}
	TEAM_DET *NFLTeam = &NFLTeam{abbr: "DET", loc: "Detroit", mascot: "Lions"}
	TEAM_GB  *NFLTeam = &NFLTeam{abbr: "GB", loc: "Green Bay", mascot: "Packers", nick: []string{"GBP"}}
	TEAM_LAR *NFLTeam = &NFLTeam{abbr: "LAR", loc: "Los Angeles", mascot: "Rams"}
	TEAM_MIN *NFLTeam = &NFLTeam{abbr: "MIN", loc: "Minnesota", mascot: "Vikings"}
	TEAM_NO  *NFLTeam = &NFLTeam{abbr: "NO", loc: "New Orleans", mascot: "Saints", nick: []string{"NOS"}}
	TEAM_NYG *NFLTeam = &NFLTeam{abbr: "NYG", loc: "New York", mascot: "Giants"}
	TEAM_PHI *NFLTeam = &NFLTeam{abbr: "PHI", loc: "Philadelphia", mascot: "Eagles", nick: []string{"Philly"}}
	TEAM_SF  *NFLTeam = &NFLTeam{abbr: "SF", loc: "San Francisco", mascot: "49ers", nick: []string{"SFO", "Niners", "9ers"}}
	TEAM_SEA *NFLTeam = &NFLTeam{abbr: "SEA", loc: "Seattle", mascot: "Seahawks", nick: []string{"Hawks"}}
	TEAM_TB  *NFLTeam = &NFLTeam{abbr: "TB", loc: "Tampa Bay", mascot: "Buccaneers", nick: []string{"TBB", "Bucs"}}
	TEAM_WAS *NFLTeam = &NFLTeam{abbr: "WAS", loc: "Washington", mascot: "Commanders", nick: []string{"WSH"}}

	// AFC
	TEAM_BAL *NFLTeam = &NFLTeam{abbr: "BAL", loc: "Baltimore", mascot: "Ravens"}
	TEAM_BUF *NFLTeam = &NFLTeam{abbr: "BUF", loc: "Buffalo", mascot: "Bills"}
	TEAM_CIN *NFLTeam = &NFLTeam{abbr: "CIN", loc: "Cincinnati", mascot: "Bengals"}
	TEAM_CLE *NFLTeam = &NFLTeam{abbr: "CLE", loc: "Cleveland", mascot: "Browns"}
	TEAM_DEN *NFLTeam = &NFLTeam{abbr: "DEN", loc: "Denver", mascot: "Broncos"}
	TEAM_HOU *NFLTeam = &NFLTeam{abbr: "HOU", loc: "Houston", mascot: "Texans"}
	TEAM_IND *NFLTeam = &NFLTeam{abbr: "IND", loc: "Indianapolis", mascot: "Colts", nick: []string{"Indy"}}
	TEAM_JAX *NFLTeam = &NFLTeam{abbr: "JAX", loc: "Jacksonville", mascot: "Jaguars", nick: []string{"JAC", "Jags"}}
	TEAM_KC  *NFLTeam = &NFLTeam{abbr: "KC", loc: "Kansas City", mascot: "Chiefs", nick: []string{"KCC"}}
	TEAM_LV  *NFLTeam = &NFLTeam{abbr: "LV", loc: "Las Vegas", mascot: "Raiders", nick: []string{"LVR"}}
	TEAM_LAC *NFLTeam = &NFLTeam{abbr: "LAC", loc: "Los Angeles", mascot: "Chargers"}
	TEAM_MIA *NFLTeam = &NFLTeam{abbr: "MIA", loc: "Miami", mascot: "Dolphins"}
	TEAM_NE  *NFLTeam = &NFLTeam{abbr: "NE", loc: "New England", mascot: "Patriots", nick: []string{"NEP", "Pats"}}
	TEAM_NYJ *NFLTeam = &NFLTeam{abbr: "NYJ", loc: "New York", mascot: "Jets"}
	TEAM_PIT *NFLTeam = &NFLTeam{abbr: "PIT", loc: "Pittsburgh", mascot: "Steelers", nick: []string{"Pitt"}}
	TEAM_TEN *NFLTeam = &NFLTeam{abbr: "TEN", loc: "Tennessee", mascot: "Titans"}

	allTeams = []*NFLTeam{
		// NFC
		TEAM_ARI, TEAM_ATL, TEAM_CAR, TEAM_CHI, TEAM_DAL, TEAM_DET, TEAM_GB, TEAM_LAR,
		TEAM_MIN, TEAM_NO, TEAM_NYG, TEAM_PHI, TEAM_SF, TEAM_SEA, TEAM_TB, TEAM_WAS,
		// AFC
		TEAM_BAL, TEAM_BUF, TEAM_CIN, TEAM_CLE, TEAM_DEN, TEAM_HOU, TEAM_IND, TEAM_JAX,
		TEAM_KC, TEAM_LV, TEAM_LAC, TEAM_MIA, TEAM_NE, TEAM_NYJ, TEAM_PIT, TEAM_TEN,
	}

	teamMap map[string]*NFLTeam = buildTeamMap()
)

// ParseTeam looks up a team by its canonical name, abbreviation, location, mascot or nickname.
// Lookups are case insensitive. Locations that are shared by two teams (New York, Los Angeles) are
// not accepted on their own. Returns nil if the name is unknown.
func ParseTeam(name string) *NFLTeam {
	return teamMap[strings.ToLower(strings.TrimSpace(name))]
}

// IsCanonical reports whether name is exactly one of the canonical team names.
func IsCanonical(name string) bool {
	t := ParseTeam(name)
	return t != nil && t.String() == name
}

// NormalizeTeamName maps a team name from a schedule provider onto the canonical vocabulary.
// An exact canonical name or known alias wins. Otherwise the name is matched by containment
// against the canonical names, and only accepted when exactly one team matches. When no
// team matches, the input is returned unchanged along with false so the caller can report it.
func NormalizeTeamName(name string) (string, bool) {
	if t := ParseTeam(name); t != nil {
		return t.String(), true
	}

	n := strings.ToLower(strings.TrimSpace(name))
	if n == "" {
		return name, false
	}

	var match *NFLTeam
	for _, t := range allTeams {
		c := strings.ToLower(t.String())
		if strings.Contains(c, n) || strings.Contains(n, c) {
			if match != nil {
				// Ambiguous, e.g. "New York"
				return name, false
			}
			match = t
		}
	}

	if match == nil {
		return name, false
	}
	return match.String(), true
}

func buildTeamMap() map[string]*NFLTeam {
	locCount := make(map[string]int)
	for _, t := range allTeams {
		locCount[strings.ToLower(t.loc)]++
	}

	teamMap := make(map[string]*NFLTeam)
	for _, t := range allTeams {
		teamMap[strings.ToLower(t.String())] = t
		teamMap[strings.ToLower(t.abbr)] = t
		teamMap[strings.ToLower(t.mascot)] = t

		if locCount[strings.ToLower(t.loc)] == 1 {
			teamMap[strings.ToLower(t.loc)] = t
		}

		for _, n := range t.nick {
			teamMap[strings.ToLower(n)] = t
		}
	}
	return teamMap
}
