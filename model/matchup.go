package model

import "time"

type Matchup struct {
	ID       int64
	GuildID  string
	Season   int
	Week     int
	HomeTeam string
	AwayTeam string
	Kickoff  time.Time // Zero if the kickoff time is not known
}

// Started returns true if the kickoff time is known and is at or before now.
func (m *Matchup) Started(now time.Time) bool {
	return !m.Kickoff.IsZero() && !now.Before(m.Kickoff)
}

// Game is a single game as reported by the schedule provider. Team names are as reported by the
// provider and have not been normalized.
type Game struct {
	Home      string
	Away      string
	Kickoff   time.Time
	Completed bool
	Winner    string // Empty unless the game is completed and was not a tie
}

// KickoffsByTeam maps every canonical team playing in matchups to its kickoff. Teams whose kickoff
// is unknown are left out.
func KickoffsByTeam(matchups []Matchup) map[string]time.Time {
	result := make(map[string]time.Time, len(matchups)*2)
	for _, m := range matchups {
		if m.Kickoff.IsZero() {
			continue
		}
		for _, team := range []string{m.HomeTeam, m.AwayTeam} {
			if _, found := result[team]; !found && IsCanonical(team) {
				result[team] = m.Kickoff
			}
		}
	}
	return result
}
