package discord

import (
	"context"
	"fmt"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/itbasis/go-clock"
	"github.com/moosarra/nfl-survivor-bot/controller"
	"github.com/moosarra/nfl-survivor-bot/model"
	"github.com/rs/zerolog/log"
)

// Time allowed for the work behind a single interaction.
const interactionTimeout = 30 * time.Second

// sender is the part of the discord session the bot writes through.
type sender interface {
	respond(i *discordgo.Interaction, r *discordgo.InteractionResponse) error
	send(channelID string, m *discordgo.MessageSend) error
}

type sessionSender struct {
	s *discordgo.Session
}

func (s sessionSender) respond(i *discordgo.Interaction, r *discordgo.InteractionResponse) error {
	return s.s.InteractionRespond(i, r)
}

func (s sessionSender) send(channelID string, m *discordgo.MessageSend) error {
	_, err := s.s.ChannelMessageSendComplex(channelID, m)
	return err
}

// Bot is the discord front end of the survivor pool. It also posts the scheduled panels and recaps.
type Bot struct {
	session *discordgo.Session
	out     sender
	ctrl    controller.C
	clock   clock.Clock
}

func New(token string, ctrl controller.C, clock clock.Clock) (*Bot, error) {
	session, err := discordgo.New("Bot " + token)
	if err != nil {
		return nil, fmt.Errorf("could not create discord session: %w", err)
	}

	b := newBot(sessionSender{s: session}, ctrl, clock)
	b.session = session
	session.AddHandler(b.onReady)
	session.AddHandler(b.onInteraction)
	return b, nil
}

func newBot(out sender, ctrl controller.C, clock clock.Clock) *Bot {
	return &Bot{
		out:   out,
		ctrl:  ctrl,
		clock: clock,
	}
}

func (b *Bot) Open() error {
	return b.session.Open()
}

func (b *Bot) Close() error {
	return b.session.Close()
}

func (b *Bot) onReady(s *discordgo.Session, r *discordgo.Ready) {
	log.Info().Str("user", r.User.Username).Int("guilds", len(r.Guilds)).Msg("connected to discord")

	if _, err := s.ApplicationCommandBulkOverwrite(r.User.ID, "", commands); err != nil {
		log.Error().Err(err).Msg("error registering commands")
	}
}

func (b *Bot) onInteraction(s *discordgo.Session, i *discordgo.InteractionCreate) {
	b.handle(i.Interaction)
}

func (b *Bot) handle(i *discordgo.Interaction) {
	if i.GuildID == "" || i.Member == nil || i.Member.User == nil {
		b.reply(i, "The survivor pool only works in a server.", true)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), interactionTimeout)
	defer cancel()

	switch i.Type {
	case discordgo.InteractionApplicationCommand:
		b.handleCommand(ctx, i)
	case discordgo.InteractionMessageComponent:
		b.handleComponent(ctx, i)
	}
}

func (b *Bot) handleCommand(ctx context.Context, i *discordgo.Interaction) {
	data := i.ApplicationCommandData()
	logger := log.With().Str("guild", i.GuildID).Str("user", i.Member.User.ID).Str("command", data.Name).Logger()

	if !isCommissioner(i.Member) {
		logger.Info().Msg("rejected commissioner command")
		b.fail(i, controller.ErrUnauthorized)
		return
	}

	switch data.Name {
	case cmdSetPanel:
		channelID := optionString(data.Options, "channel")
		if err := b.ctrl.SetPanelChannel(ctx, i.GuildID, channelID); err != nil {
			logger.Error().Err(err).Msg("error setting panel channel")
			b.fail(i, err)
			return
		}
		b.reply(i, fmt.Sprintf("Panel channel set to <#%s>", channelID), false)

	case cmdPanel:
		week := optionInt(data.Options, "week")
		if week == 0 {
			week = b.ctrl.CurrentWeek(b.clock.Now())
		}
		if !model.ValidWeek(week) {
			b.reply(i, fmt.Sprintf("Week must be between %d and %d.", model.FirstWeek, model.LastWeek), true)
			return
		}
		matchups := b.weekMatchups(ctx, i.GuildID, week)
		msg := panelMessage(week, matchups)
		b.respond(i, &discordgo.InteractionResponseData{
			Content:    msg.Content,
			Embeds:     msg.Embeds,
			Components: msg.Components,
		})

	case cmdAdmin:
		if len(data.Options) == 0 {
			return
		}
		sub := data.Options[0]
		userID := optionString(sub.Options, "user")
		switch sub.Name {
		case subcmdEliminate:
			if err := b.ctrl.AdminEliminate(ctx, i.GuildID, userID); err != nil {
				logger.Error().Err(err).Msg("error eliminating player")
				b.fail(i, err)
				return
			}
			b.reply(i, fmt.Sprintf("❌ Eliminated %s", mention(userID)), false)
		case subcmdRevive:
			if err := b.ctrl.AdminRevive(ctx, i.GuildID, userID); err != nil {
				logger.Error().Err(err).Msg("error reviving player")
				b.fail(i, err)
				return
			}
			b.reply(i, fmt.Sprintf("🟢 Revived %s", mention(userID)), false)
		}
	}
}

func (b *Bot) handleComponent(ctx context.Context, i *discordgo.Interaction) {
	data := i.MessageComponentData()
	guildID, userID := i.GuildID, i.Member.User.ID
	logger := log.With().Str("guild", guildID).Str("user", userID).Str("component", data.CustomID).Logger()

	id, err := parseCustomID(data.CustomID)
	if err != nil {
		logger.Warn().Err(err).Msg("unknown component")
		return
	}

	now := b.clock.Now()
	switch id.action {
	case actionJoin:
		if err := b.ctrl.Join(ctx, guildID, userID); err != nil {
			b.fail(i, err)
			return
		}
		b.reply(i, "You're in! Make your pick when you're ready.", true)

	case actionPick:
		teams, err := b.ctrl.AvailableTeams(ctx, guildID, b.ctrl.Season(), id.week, userID, now)
		if err != nil {
			b.fail(i, err)
			return
		}
		if len(teams) == 0 {
			b.reply(i, "No valid teams left.", true)
			return
		}
		kickoffs := model.KickoffsByTeam(b.weekMatchups(ctx, guildID, id.week))
		b.respond(i, &discordgo.InteractionResponseData{
			Content:    "Choose your team:",
			Components: pickMenu(id.week, teams, kickoffs),
			Flags:      discordgo.MessageFlagsEphemeral,
		})

	case actionSelect:
		if len(data.Values) == 0 {
			return
		}
		pick, err := b.ctrl.SubmitPick(ctx, guildID, userID, id.week, data.Values[0], now)
		if err != nil {
			b.fail(i, err)
			return
		}
		b.reply(i, fmt.Sprintf("✅ Pick saved: %s", pick.Team), true)

	case actionStandings:
		s, err := b.ctrl.Standings(ctx, guildID)
		if err != nil {
			b.fail(i, err)
			return
		}
		b.reply(i, standingsMessage(s), true)

	case actionWeekPicks:
		picks, err := b.ctrl.WeekPicks(ctx, guildID, b.ctrl.Season(), id.week, now)
		if err != nil {
			b.fail(i, err)
			return
		}
		b.reply(i, weekPicksMessage(picks), true)

	case actionHistory:
		picks, err := b.ctrl.UserHistory(ctx, guildID, userID)
		if err != nil {
			b.fail(i, err)
			return
		}
		b.reply(i, historyMessage(picks), true)
	}
}

// weekMatchups loads the week for display. A week that can't be loaded is shown without its games.
func (b *Bot) weekMatchups(ctx context.Context, guildID string, week int) []model.Matchup {
	matchups, err := b.ctrl.WeekTeams(ctx, guildID, b.ctrl.Season(), week)
	if err != nil {
		log.Warn().Err(err).Str("guild", guildID).Int("week", week).Msg("error loading week")
		return nil
	}
	return matchups
}

func (b *Bot) fail(i *discordgo.Interaction, err error) {
	b.reply(i, errorMessage(err), true)
}

func (b *Bot) reply(i *discordgo.Interaction, content string, ephemeral bool) {
	data := &discordgo.InteractionResponseData{Content: content}
	if ephemeral {
		data.Flags = discordgo.MessageFlagsEphemeral
	}
	b.respond(i, data)
}

func (b *Bot) respond(i *discordgo.Interaction, data *discordgo.InteractionResponseData) {
	err := b.out.respond(i, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: data,
	})
	if err != nil {
		log.Error().Err(err).Str("guild", i.GuildID).Msg("error responding to interaction")
	}
}

// PostPanel posts the weekly panel to the channel.
func (b *Bot) PostPanel(ctx context.Context, guildID, channelID string, week int) error {
	matchups := b.weekMatchups(ctx, guildID, week)
	if err := b.out.send(channelID, panelMessage(week, matchups)); err != nil {
		return fmt.Errorf("error posting panel to %s: %w", channelID, err)
	}
	log.Info().Str("guild", guildID).Int("week", week).Msg("posted weekly panel")
	return nil
}

// PostRecap posts the results of a resolved week to the channel.
func (b *Bot) PostRecap(ctx context.Context, guildID, channelID string, res *model.Resolution) error {
	msg := &discordgo.MessageSend{Embeds: []*discordgo.MessageEmbed{recapEmbed(res)}}
	if err := b.out.send(channelID, msg); err != nil {
		return fmt.Errorf("error posting recap to %s: %w", channelID, err)
	}
	log.Info().Str("guild", guildID).Int("week", res.Week).Msg("posted weekly recap")
	return nil
}

var _ controller.Announcer = (*Bot)(nil)
