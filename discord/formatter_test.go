package discord

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/moosarra/nfl-survivor-bot/controller"
	"github.com/moosarra/nfl-survivor-bot/db"
	"github.com/moosarra/nfl-survivor-bot/model"
)

func TestErrorMessage(t *testing.T) {
	tests := map[string]struct {
		err  error
		want string
	}{
		"unauthorized":  {err: controller.ErrUnauthorized, want: "Admins only"},
		"capped":        {err: fmt.Errorf("join: %w", controller.ErrCapacityExceeded), want: "League is capped."},
		"invalid team":  {err: controller.ErrInvalidTeam, want: "That team isn't available to you this week."},
		"no picks":      {err: controller.ErrNoPicksYet, want: "No picks yet."},
		"hidden":        {err: controller.ErrPicksHidden, want: "Picks are hidden until every game of the week has kicked off."},
		"no panel":      {err: db.ErrPanelNotConfigured, want: "No panel channel is set, use /setpanel first."},
		"anything else": {err: errors.New("connection refused"), want: "Something went wrong, please try again later."},
		"no matchups":   {err: controller.ErrNoMatchupsLoaded, want: "No games are loaded for that week yet, try again later."},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			if got := errorMessage(tc.err); got != tc.want {
				t.Errorf("expected %q, got %q", tc.want, got)
			}
		})
	}
}

func TestPanelMessage(t *testing.T) {
	matchups := []model.Matchup{
		{HomeTeam: "Kansas City Chiefs", AwayTeam: "Buffalo Bills", Kickoff: time.Date(2025, time.September, 7, 17, 0, 0, 0, time.UTC)},
		{HomeTeam: "Cleveland Browns", AwayTeam: "Cincinnati Bengals"},
	}

	msg := panelMessage(2, matchups)
	if msg.Content != "NFL Survivor - Week 2" {
		t.Errorf("unexpected title %q", msg.Content)
	}

	if len(msg.Embeds) != 1 {
		t.Fatalf("expected 1 embed, got %d", len(msg.Embeds))
	}
	want := "Buffalo Bills @ Kansas City Chiefs - Sun 01:00 PM ET\nCincinnati Bengals @ Cleveland Browns"
	if msg.Embeds[0].Description != want {
		t.Errorf("unexpected schedule:\n%s", msg.Embeds[0].Description)
	}

	row, ok := msg.Components[0].(discordgo.ActionsRow)
	if !ok {
		t.Fatalf("expected an actions row, got %T", msg.Components[0])
	}
	ids := make([]string, 0, len(row.Components))
	for _, c := range row.Components {
		ids = append(ids, c.(discordgo.Button).CustomID)
	}
	wantIDs := []string{"survivor:join", "survivor:pick:2", "survivor:standings", "survivor:weekpicks:2", "survivor:history"}
	if fmt.Sprint(ids) != fmt.Sprint(wantIDs) {
		t.Errorf("expected buttons %v, got %v", wantIDs, ids)
	}
}

func TestPanelMessage_noMatchups(t *testing.T) {
	msg := panelMessage(1, nil)
	if msg.Embeds != nil {
		t.Errorf("expected no schedule embed, got %v", msg.Embeds)
	}
	if len(msg.Components) != 1 {
		t.Errorf("expected the buttons to be posted")
	}
}

func TestPickMenu(t *testing.T) {
	kickoffs := map[string]time.Time{
		"Kansas City Chiefs": time.Date(2025, time.September, 7, 17, 0, 0, 0, time.UTC),
	}

	components := pickMenu(1, []string{"Kansas City Chiefs", "Buffalo Bills"}, kickoffs)
	menu := components[0].(discordgo.ActionsRow).Components[0].(discordgo.SelectMenu)

	if menu.CustomID != "survivor:select:1" {
		t.Errorf("unexpected custom id %s", menu.CustomID)
	}
	if len(menu.Options) != 2 {
		t.Fatalf("expected 2 options, got %d", len(menu.Options))
	}
	if menu.Options[0].Label != "Kansas City Chiefs (Sun 01:00 PM ET)" || menu.Options[0].Value != "Kansas City Chiefs" {
		t.Errorf("unexpected option %+v", menu.Options[0])
	}
	if menu.Options[1].Label != "Buffalo Bills" {
		t.Errorf("unexpected option %+v", menu.Options[1])
	}
	if menu.Options[0].Description != "KC" || menu.Options[1].Description != "BUF" {
		t.Errorf("expected abbreviations as descriptions, got %q and %q", menu.Options[0].Description, menu.Options[1].Description)
	}
}

func TestPickMenu_capped(t *testing.T) {
	teams := make([]string, 0, 30)
	for i := 0; i < 30; i++ {
		teams = append(teams, fmt.Sprintf("Team %d", i))
	}

	menu := pickMenu(1, teams, nil)[0].(discordgo.ActionsRow).Components[0].(discordgo.SelectMenu)
	if len(menu.Options) != maxSelectOptions {
		t.Errorf("expected %d options, got %d", maxSelectOptions, len(menu.Options))
	}
}

func TestStandingsMessage(t *testing.T) {
	tests := map[string]struct {
		standings *model.Standings
		want      string
	}{
		"empty": {
			standings: &model.Standings{},
			want:      "**Alive:** (none)\n**Out:** (none)",
		},
		"some out": {
			standings: &model.Standings{
				Alive:      []model.Player{{UserID: "1"}, {UserID: "2"}},
				Eliminated: []model.Player{{UserID: "3"}},
			},
			want: "**Alive:** <@1>, <@2>\n**Out:** <@3>",
		},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			if got := standingsMessage(tc.standings); got != tc.want {
				t.Errorf("expected %q, got %q", tc.want, got)
			}
		})
	}
}

func TestWeekPicksAndHistoryMessages(t *testing.T) {
	picks := []model.Pick{
		{UserID: "1", Week: 1, Team: "Buffalo Bills", Result: model.ResultWin},
		{UserID: "1", Week: 2, Team: "Detroit Lions", Result: model.ResultPending},
	}

	if got := weekPicksMessage(picks); got != "<@1> → Buffalo Bills\n<@1> → Detroit Lions" {
		t.Errorf("unexpected week picks %q", got)
	}
	if got := historyMessage(picks); got != "W1: Buffalo Bills (win)\nW2: Detroit Lions (pending)" {
		t.Errorf("unexpected history %q", got)
	}
}

func TestRecapEmbed(t *testing.T) {
	res := &model.Resolution{
		Week:    3,
		Winners: []model.Pick{{UserID: "1", Team: "Detroit Lions"}},
		Losers:  []model.Pick{{UserID: "2", Team: "Denver Broncos"}},
		NoPick:  []string{"3"},
	}

	embed := recapEmbed(res)
	if embed.Title != "Week 3 results" {
		t.Errorf("unexpected title %q", embed.Title)
	}

	want := map[string]string{
		"Survived": "<@1> (Detroit Lions)",
		"Lost":     "<@2> (Denver Broncos)",
		"No pick":  "<@3>",
	}
	if len(embed.Fields) != len(want) {
		t.Fatalf("expected %d fields, got %d", len(want), len(embed.Fields))
	}
	for _, f := range embed.Fields {
		if want[f.Name] != f.Value {
			t.Errorf("field %s: expected %q, got %q", f.Name, want[f.Name], f.Value)
		}
	}

	res.NoPick = nil
	if n := len(recapEmbed(res).Fields); n != 2 {
		t.Errorf("expected the no pick field to be left out, got %d fields", n)
	}
}
