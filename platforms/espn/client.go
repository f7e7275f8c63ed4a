package espn

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/moosarra/nfl-survivor-bot/model"
	"github.com/moosarra/nfl-survivor-bot/platforms/espn/internal"
	"github.com/rs/zerolog/log"
)

const (
	ESPNURL = "https://site.api.espn.com"

	scoreboardPath = "/apis/v2/sports/football/nfl/scoreboard?dates=%s"
	dateFormat     = "20060102"

	requestTimeout = 20 * time.Second
)

// ESPN reports kickoffs without seconds, e.g. 2025-09-07T17:00Z
var kickoffLayouts = []string{"2006-01-02T15:04Z07:00", time.RFC3339}

// ErrFetchFailed is wrapped by every error returned from the client. The provider is best-effort,
// callers are expected to skip the data point and try again later.
var ErrFetchFailed = errors.New("schedule fetch failed")

type Client interface {
	// Scoreboard returns the games on the scoreboard for a single calendar date.
	Scoreboard(ctx context.Context, date time.Time) ([]model.Game, error)
}

type client struct {
	url        string
	httpClient *http.Client
}

func New() (Client, error) {
	c := &client{
		url: ESPNURL,
		httpClient: &http.Client{
			Timeout: requestTimeout,
		},
	}
	return c, nil
}

func NewForTest(url string) Client {
	return &client{
		url: url,
		httpClient: &http.Client{
			Timeout: 2 * time.Second,
		},
	}
}

func (c *client) Scoreboard(ctx context.Context, date time.Time) ([]model.Game, error) {
	var sb internal.Scoreboard
	if err := c.espnRequest(ctx, &sb, scoreboardPath, date.Format(dateFormat)); err != nil {
		return nil, err
	}

	games := make([]model.Game, 0, len(sb.Events))
	for _, ev := range sb.Events {
		g, ok := toGame(&ev)
		if !ok {
			log.Debug().Str("event", ev.ID).Msg("skipping scoreboard event without two competitors")
			continue
		}
		games = append(games, *g)
	}
	return games, nil
}

func (c *client) espnRequest(ctx context.Context, res any, path string, args ...any) error {
	p := fmt.Sprintf(path, args...)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fmt.Sprintf("%s%s", c.url, p), nil)
	if err != nil {
		return fmt.Errorf("%w: error creating espn http request: %w", ErrFetchFailed, err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: error sending espn http request: %w", ErrFetchFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: unexpected status code from espn: %d", ErrFetchFailed, resp.StatusCode)
	}

	err = json.NewDecoder(resp.Body).Decode(res)
	if err != nil {
		return fmt.Errorf("%w: error parsing response from espn: %w", ErrFetchFailed, err)
	}

	return nil
}

func toGame(ev *internal.Event) (*model.Game, bool) {
	if len(ev.Competitions) == 0 {
		return nil, false
	}
	comp := ev.Competitions[0]
	if len(comp.Competitors) != 2 {
		return nil, false
	}

	g := &model.Game{}
	for _, c := range comp.Competitors {
		switch c.HomeAway {
		case "home":
			g.Home = c.Team.DisplayName
		case "away":
			g.Away = c.Team.DisplayName
		}
	}
	if g.Home == "" || g.Away == "" {
		return nil, false
	}

	kickoff := comp.Date
	if kickoff == "" {
		kickoff = ev.Date
	}
	g.Kickoff = parseKickoff(kickoff)

	if comp.Status != nil && comp.Status.Type.Completed {
		g.Completed = true
		for _, c := range comp.Competitors {
			if c.Winner {
				g.Winner = c.Team.DisplayName
			}
		}
	}

	return g, true
}

// parseKickoff returns the zero time if the kickoff can't be parsed, which is treated as an unknown kickoff.
func parseKickoff(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	for _, layout := range kickoffLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC()
		}
	}
	log.Warn().Str("kickoff", s).Msg("unable to parse kickoff time from espn")
	return time.Time{}
}
