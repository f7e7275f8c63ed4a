package model

import "time"

type PickResult string

const (
	ResultPending PickResult = "pending"
	ResultWin     PickResult = "win"
	ResultLoss    PickResult = "loss"
)

func ParsePickResult(s string) PickResult {
	switch PickResult(s) {
	case ResultWin:
		return ResultWin
	case ResultLoss:
		return ResultLoss
	default:
		return ResultPending
	}
}

// Player is a member of a guild's survivor pool.
type Player struct {
	GuildID string
	UserID  string
	Alive   bool
	Joined  time.Time
}

type Pick struct {
	GuildID string
	UserID  string
	Week    int
	Team    string
	MadeAt  time.Time
	Result  PickResult
}

type Standings struct {
	Alive      []Player
	Eliminated []Player
}

// Resolution is the outcome of resolving a single week for a guild.
type Resolution struct {
	GuildID    string
	Week       int
	Winners    []Pick
	Losers     []Pick
	Eliminated []string // user ids that went from alive to eliminated, including missed picks
	NoPick     []string // alive user ids without a pick for the week
}

// PanelConfig records where the weekly panel is posted for a guild. The row for week 0 holds the
// configured channel, rows for other weeks record that the panel for that week was posted.
type PanelConfig struct {
	GuildID   string
	Season    int
	Week      int
	ChannelID string
	PostedAt  time.Time
}
