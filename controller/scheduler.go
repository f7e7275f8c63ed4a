package controller

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/moosarra/nfl-survivor-bot/model"
	"github.com/rs/zerolog/log"
)

// Job is work the scheduler fires when Due reports true. lastRun is the zero time if the job has
// never run in this process.
type Job struct {
	Name string
	Due  func(now, lastRun time.Time) bool
	Run  func(ctx context.Context, now time.Time) error
}

func (c *controller) RunDueJobs(ctx context.Context, a Announcer, now time.Time) []string {
	ran := make([]string, 0, 3)
	for _, j := range c.jobs(a) {
		if !c.claim(j, now) {
			continue
		}

		runID := uuid.NewString()
		logger := log.With().Str("job", j.Name).Str("run", runID).Logger()
		logger.Info().Time("now", now).Msg("job starting")

		if err := j.Run(ctx, now); err != nil {
			logger.Error().Err(err).Msg("job failed")
		} else {
			logger.Info().Msg("job finished")
		}
		ran = append(ran, j.Name)
	}
	return ran
}

// claim records now as the job's last run if it's due, so that each due window fires once even if
// ticks overlap.
func (c *controller) claim(j Job, now time.Time) bool {
	c.jobsMu.Lock()
	defer c.jobsMu.Unlock()

	if !j.Due(now, c.lastRun[j.Name]) {
		return false
	}
	c.lastRun[j.Name] = now
	return true
}

func (c *controller) RunScheduledJobs(frequency time.Duration, a Announcer, shutdown chan bool, wg *sync.WaitGroup) {
	ticker := c.clock.Ticker(frequency)
	defer ticker.Stop()
	defer wg.Done()

	for {
		select {
		case <-shutdown:
			return
		case <-ticker.C:
			func() {
				ctx, cancel := context.WithTimeout(context.Background(), frequency)
				defer cancel()

				c.RunDueJobs(ctx, a, c.clock.Now())
			}()
		}
	}
}

// every is due when the job hasn't run yet or at least d has passed since it did.
func every(d time.Duration) func(now, lastRun time.Time) bool {
	return func(now, lastRun time.Time) bool {
		return lastRun.IsZero() || now.Sub(lastRun) >= d
	}
}

// weeklyAt is due during the given hour of the given weekday, Eastern time, once per window.
func weeklyAt(day time.Weekday, hour int) func(now, lastRun time.Time) bool {
	return func(now, lastRun time.Time) bool {
		n := now.In(model.Eastern)
		if n.Weekday() != day || n.Hour() != hour {
			return false
		}
		if lastRun.IsZero() {
			return true
		}
		l := lastRun.In(model.Eastern)
		ny, nm, nd := n.Date()
		ly, lm, ld := l.Date()
		return ny != ly || nm != lm || nd != ld || l.Hour() != hour
	}
}
