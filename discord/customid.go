package discord

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/moosarra/nfl-survivor-bot/model"
)

const idPrefix = "survivor"

// Component actions, encoded in the custom id of buttons and select menus as
// survivor:<action>[:<week>].
const (
	actionJoin      = "join"
	actionPick      = "pick"
	actionStandings = "standings"
	actionWeekPicks = "weekpicks"
	actionHistory   = "history"
	actionSelect    = "select"
)

// Actions that need the week in their custom id.
var weekActions = map[string]bool{
	actionPick:      true,
	actionWeekPicks: true,
	actionSelect:    true,
}

var knownActions = map[string]bool{
	actionJoin:      true,
	actionPick:      true,
	actionStandings: true,
	actionWeekPicks: true,
	actionHistory:   true,
	actionSelect:    true,
}

type customID struct {
	action string
	week   int // Zero for actions that aren't tied to a week
}

func (c customID) String() string {
	if c.week > 0 {
		return fmt.Sprintf("%s:%s:%d", idPrefix, c.action, c.week)
	}
	return fmt.Sprintf("%s:%s", idPrefix, c.action)
}

func parseCustomID(id string) (customID, error) {
	parts := strings.Split(id, ":")
	if len(parts) < 2 || parts[0] != idPrefix {
		return customID{}, fmt.Errorf("not a survivor component: %q", id)
	}

	action := parts[1]
	if !knownActions[action] {
		return customID{}, fmt.Errorf("unknown action %q", action)
	}

	if !weekActions[action] {
		if len(parts) != 2 {
			return customID{}, fmt.Errorf("unexpected arguments for %s: %q", action, id)
		}
		return customID{action: action}, nil
	}

	if len(parts) != 3 {
		return customID{}, fmt.Errorf("%s requires a week: %q", action, id)
	}
	week, err := strconv.Atoi(parts[2])
	if err != nil || !model.ValidWeek(week) {
		return customID{}, fmt.Errorf("invalid week in %q", id)
	}
	return customID{action: action, week: week}, nil
}
