package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/itbasis/go-clock"
	"github.com/moosarra/nfl-survivor-bot/config"
	"github.com/moosarra/nfl-survivor-bot/controller"
	"github.com/moosarra/nfl-survivor-bot/db"
	"github.com/moosarra/nfl-survivor-bot/discord"
	"github.com/moosarra/nfl-survivor-bot/platforms/espn"
	"github.com/moosarra/nfl-survivor-bot/web"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("error loading config")
	}
	zerolog.SetGlobalLevel(cfg.LogLevel)

	clock := clock.New()
	db, err := db.New(context.Background(), cfg.ConnString, clock)
	if err != nil {
		log.Fatal().Err(err).Msg("cannot connect to DB")
	}

	espnClient, err := espn.New()
	if err != nil {
		log.Fatal().Err(err).Msg("error creating espn client")
	}

	ctrl, err := controller.New(clock, espnClient, db, controller.Config{
		Season:                cfg.Season,
		MaxPlayers:            cfg.MaxPlayers,
		EliminateMissingPicks: cfg.EliminateMissingPicks,
		HidePicksUntilKickoff: cfg.HidePicksUntilKickoff,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("error creating a new controller")
	}

	bot, err := discord.New(cfg.DiscordToken, ctrl, clock)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating discord bot")
	}
	if err := bot.Open(); err != nil {
		log.Fatal().Err(err).Msg("error connecting to discord")
	}

	shutdown := make(chan bool)
	wg := &sync.WaitGroup{}

	// Setup a handler to catch ctrl-c signals and properly shutdown everything.
	intChannel := make(chan os.Signal, 2)
	signal.Notify(intChannel, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-intChannel
		close(shutdown)

		if err := waitTimeout(wg, 10*time.Second); err != nil {
			log.Error().Msg("timed out waiting for proper shutdown")
			os.Exit(255)
		}
	}()

	// Refresh schedules, post the weekly panels and resolve finished weeks
	wg.Add(1)
	go ctrl.RunScheduledJobs(cfg.SchedulerTick, bot, shutdown, wg)

	if cfg.Port > 0 {
		server, err := web.NewServer(cfg.Port, ctrl, clock)
		if err != nil {
			log.Fatal().Err(err).Msg("error creating new web server")
		}

		wg.Add(1)
		go server.ListenAndServe(shutdown, wg)
	}

	// Wait for everything to stop.
	wg.Wait()
	if err := bot.Close(); err != nil {
		log.Error().Err(err).Msg("error closing discord session")
	}
	log.Info().Msg("bot shutdown")
}

func waitTimeout(wg *sync.WaitGroup, timeout time.Duration) error {
	c := make(chan any)
	go func() {
		defer close(c)
		wg.Wait()
	}()

	select {
	case <-c:
		return nil // completed normally
	case <-time.After(timeout):
		return errors.New("timed out waiting")
	}
}
