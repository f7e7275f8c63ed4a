package db

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"
	"testing"
	"time"

	"github.com/moosarra/nfl-survivor-bot/model"
)

func TestJoinPlayer(t *testing.T) {
	ctx := context.Background()
	guild := newGuildID()

	added, err := testDB.JoinPlayer(ctx, guild, "u1", 2)
	assertFatalf(t, err == nil, "error joining: %v", err)
	assertTrue(t, "first join added", added)

	added, err = testDB.JoinPlayer(ctx, guild, "u1", 2)
	assertFatalf(t, err == nil, "error joining again: %v", err)
	assertTrue(t, "second join is a no-op", !added)

	_, err = testDB.JoinPlayer(ctx, guild, "u2", 2)
	assertFatalf(t, err == nil, "error joining u2: %v", err)

	_, err = testDB.JoinPlayer(ctx, guild, "u3", 2)
	if !errors.Is(err, ErrRosterFull) {
		t.Errorf("expected ErrRosterFull, got: %v", err)
	}

	// Already on a full roster is still fine
	added, err = testDB.JoinPlayer(ctx, guild, "u2", 2)
	assertFatalf(t, err == nil, "error re-joining u2: %v", err)
	assertTrue(t, "re-join on full roster is a no-op", !added)

	players, err := testDB.ListPlayers(ctx, guild)
	assertFatalf(t, err == nil, "error listing players: %v", err)
	assertEquals(t, "player count", 2, len(players))

	p, err := testDB.GetPlayer(ctx, guild, "u1")
	assertFatalf(t, err == nil, "error getting player: %v", err)
	assertTrue(t, "new player is alive", p.Alive)
	assertTrue(t, "joined is set", !p.Joined.IsZero())
}

func TestJoinPlayer_concurrent(t *testing.T) {
	ctx := context.Background()
	guild := newGuildID()
	const max = 5

	var wg sync.WaitGroup
	var mu sync.Mutex
	full := 0
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := testDB.JoinPlayer(ctx, guild, fmt.Sprintf("u%d", i), max)
			if errors.Is(err, ErrRosterFull) {
				mu.Lock()
				full++
				mu.Unlock()
			} else if err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		}(i)
	}
	wg.Wait()

	players, err := testDB.ListPlayers(ctx, guild)
	assertFatalf(t, err == nil, "error listing players: %v", err)
	assertEquals(t, "player count", max, len(players))
	assertEquals(t, "rejected joins", 10-max, full)
}

func TestGetPlayer_notFound(t *testing.T) {
	_, err := testDB.GetPlayer(context.Background(), newGuildID(), "nobody")
	if !errors.Is(err, ErrPlayerNotFound) {
		t.Errorf("expected ErrPlayerNotFound, got: %v", err)
	}
}

func TestSetPlayerAliveAndRevive(t *testing.T) {
	ctx := context.Background()
	guild := newGuildID()

	err := testDB.SetPlayerAlive(ctx, guild, "u1", false)
	if !errors.Is(err, ErrPlayerNotFound) {
		t.Errorf("expected ErrPlayerNotFound, got: %v", err)
	}

	_, err = testDB.JoinPlayer(ctx, guild, "u1", 0)
	assertFatalf(t, err == nil, "error joining: %v", err)

	err = testDB.SetPlayerAlive(ctx, guild, "u1", false)
	assertFatalf(t, err == nil, "error eliminating: %v", err)

	p, _ := testDB.GetPlayer(ctx, guild, "u1")
	assertTrue(t, "eliminated", !p.Alive)

	err = testDB.RevivePlayer(ctx, guild, "u1")
	assertFatalf(t, err == nil, "error reviving: %v", err)
	p, _ = testDB.GetPlayer(ctx, guild, "u1")
	assertTrue(t, "revived", p.Alive)

	// Revive adds unknown players
	err = testDB.RevivePlayer(ctx, guild, "u2")
	assertFatalf(t, err == nil, "error reviving unknown player: %v", err)
	p, err = testDB.GetPlayer(ctx, guild, "u2")
	assertFatalf(t, err == nil, "error getting revived player: %v", err)
	assertTrue(t, "revived new player", p.Alive)
}

func TestSavePick(t *testing.T) {
	ctx := context.Background()
	guild := newGuildID()
	madeAt := time.Date(2025, time.September, 5, 12, 0, 0, 0, time.UTC)

	pick := &model.Pick{GuildID: guild, UserID: "u1", Week: 1, Team: "Kansas City Chiefs", MadeAt: madeAt}
	err := testDB.SavePick(ctx, pick, 12)
	assertFatalf(t, err == nil, "error saving pick: %v", err)
	assertEquals(t, "result", model.ResultPending, pick.Result)

	// Picking auto-joins the player
	p, err := testDB.GetPlayer(ctx, guild, "u1")
	assertFatalf(t, err == nil, "player should exist after picking: %v", err)
	assertTrue(t, "alive", p.Alive)

	// Replacing the week's pick frees up the old team
	pick = &model.Pick{GuildID: guild, UserID: "u1", Week: 1, Team: "Buffalo Bills", MadeAt: madeAt.Add(time.Hour)}
	err = testDB.SavePick(ctx, pick, 12)
	assertFatalf(t, err == nil, "error replacing pick: %v", err)

	picks, err := testDB.GetWeekPicks(ctx, guild, 1)
	assertFatalf(t, err == nil, "error getting week picks: %v", err)
	assertFatalf(t, len(picks) == 1, "expected 1 pick, got %d", len(picks))
	assertEquals(t, "team", "Buffalo Bills", picks[0].Team)
	assertTrue(t, "made at", picks[0].MadeAt.Equal(madeAt.Add(time.Hour)))

	pick = &model.Pick{GuildID: guild, UserID: "u1", Week: 2, Team: "Kansas City Chiefs", MadeAt: madeAt}
	err = testDB.SavePick(ctx, pick, 12)
	assertFatalf(t, err == nil, "freed team should be available: %v", err)

	pick = &model.Pick{GuildID: guild, UserID: "u1", Week: 3, Team: "Buffalo Bills", MadeAt: madeAt}
	err = testDB.SavePick(ctx, pick, 12)
	if !errors.Is(err, ErrTeamAlreadyUsed) {
		t.Errorf("expected ErrTeamAlreadyUsed, got: %v", err)
	}

	// Re-saving the same team for the same week is allowed
	pick = &model.Pick{GuildID: guild, UserID: "u1", Week: 2, Team: "Kansas City Chiefs", MadeAt: madeAt}
	err = testDB.SavePick(ctx, pick, 12)
	assertFatalf(t, err == nil, "error re-saving same pick: %v", err)

	used, err := testDB.GetUsedTeams(ctx, guild, "u1", 0)
	assertFatalf(t, err == nil, "error getting used teams: %v", err)
	slices.Sort(used)
	assertTrue(t, "used teams", slices.Equal([]string{"Buffalo Bills", "Kansas City Chiefs"}, used))

	// The week being picked doesn't count against the user
	used, err = testDB.GetUsedTeams(ctx, guild, "u1", 2)
	assertFatalf(t, err == nil, "error getting used teams: %v", err)
	assertTrue(t, "used teams except week 2", slices.Equal([]string{"Buffalo Bills"}, used))

	history, err := testDB.GetUserPicks(ctx, guild, "u1")
	assertFatalf(t, err == nil, "error getting user picks: %v", err)
	assertFatalf(t, len(history) == 2, "expected 2 picks, got %d", len(history))
	assertEquals(t, "week 1", 1, history[0].Week)
	assertEquals(t, "week 2", 2, history[1].Week)
}

func TestSavePick_rosterFull(t *testing.T) {
	ctx := context.Background()
	guild := newGuildID()

	for _, u := range []string{"u1", "u2"} {
		_, err := testDB.JoinPlayer(ctx, guild, u, 2)
		assertFatalf(t, err == nil, "error joining %s: %v", u, err)
	}

	err := testDB.SavePick(ctx, &model.Pick{GuildID: guild, UserID: "u3", Week: 1, Team: "Chicago Bears"}, 2)
	if !errors.Is(err, ErrRosterFull) {
		t.Errorf("expected ErrRosterFull, got: %v", err)
	}

	picks, _ := testDB.GetWeekPicks(ctx, guild, 1)
	assertEquals(t, "no pick saved", 0, len(picks))

	// Existing players can still pick
	err = testDB.SavePick(ctx, &model.Pick{GuildID: guild, UserID: "u2", Week: 1, Team: "Chicago Bears"}, 2)
	assertFatalf(t, err == nil, "error saving pick: %v", err)
}

func TestSavePick_guildsAreSeparate(t *testing.T) {
	ctx := context.Background()
	g1 := newGuildID()
	g2 := newGuildID()

	err := testDB.SavePick(ctx, &model.Pick{GuildID: g1, UserID: "u1", Week: 1, Team: "Detroit Lions"}, 12)
	assertFatalf(t, err == nil, "error saving pick in g1: %v", err)

	err = testDB.SavePick(ctx, &model.Pick{GuildID: g2, UserID: "u1", Week: 2, Team: "Detroit Lions"}, 12)
	assertFatalf(t, err == nil, "team used in another guild should be allowed: %v", err)

	picks, _ := testDB.GetWeekPicks(ctx, g2, 1)
	assertEquals(t, "g2 week 1 picks", 0, len(picks))

	guilds, err := testDB.ListGuilds(ctx)
	assertFatalf(t, err == nil, "error listing guilds: %v", err)
	assertTrue(t, "g1 listed", slices.Contains(guilds, g1))
	assertTrue(t, "g2 listed", slices.Contains(guilds, g2))
}

func TestApplyResults(t *testing.T) {
	ctx := context.Background()
	guild := newGuildID()

	for u, team := range map[string]string{"u1": "Kansas City Chiefs", "u2": "Philadelphia Eagles"} {
		err := testDB.SavePick(ctx, &model.Pick{GuildID: guild, UserID: u, Week: 2, Team: team}, 12)
		assertFatalf(t, err == nil, "error saving pick: %v", err)
	}
	_, err := testDB.JoinPlayer(ctx, guild, "u3", 12)
	assertFatalf(t, err == nil, "error joining u3: %v", err)

	results := map[string]model.PickResult{"u1": model.ResultWin, "u2": model.ResultLoss}
	err = testDB.ApplyResults(ctx, guild, 2025, 2, results, []string{"u2", "u3"})
	assertFatalf(t, err == nil, "error applying results: %v", err)

	picks, _ := testDB.GetWeekPicks(ctx, guild, 2)
	for _, p := range picks {
		assertEquals(t, p.UserID+" result", results[p.UserID], p.Result)
	}

	for u, alive := range map[string]bool{"u1": true, "u2": false, "u3": false} {
		p, err := testDB.GetPlayer(ctx, guild, u)
		assertFatalf(t, err == nil, "error getting %s: %v", u, err)
		assertEquals(t, u+" alive", alive, p.Alive)
	}

	// A second resolution of the same week is refused and doesn't undo a revive
	err = testDB.RevivePlayer(ctx, guild, "u3")
	assertFatalf(t, err == nil, "error reviving u3: %v", err)
	err = testDB.ApplyResults(ctx, guild, 2025, 2, results, []string{"u2", "u3"})
	assertTrue(t, "ErrWeekResolved", errors.Is(err, ErrWeekResolved))

	p, err := testDB.GetPlayer(ctx, guild, "u3")
	assertFatalf(t, err == nil, "error getting u3: %v", err)
	assertEquals(t, "u3 alive after replay", true, p.Alive)

	// Other seasons are separate
	err = testDB.ApplyResults(ctx, guild, 2026, 2, map[string]model.PickResult{}, nil)
	assertFatalf(t, err == nil, "error applying results for another season: %v", err)
}
