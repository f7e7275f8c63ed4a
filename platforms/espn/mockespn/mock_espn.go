package mockespn

import (
	"context"
	"time"

	"github.com/moosarra/nfl-survivor-bot/model"
	"github.com/stretchr/testify/mock"
)

type Client struct {
	mock.Mock
}

func (c *Client) Scoreboard(ctx context.Context, date time.Time) ([]model.Game, error) {
	args := c.Called(ctx, date)

	var res []model.Game
	if args.Get(0) != nil {
		res = args.Get(0).([]model.Game)
	}

	return res, args.Error(1)
}
