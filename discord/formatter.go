package discord

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/moosarra/nfl-survivor-bot/controller"
	"github.com/moosarra/nfl-survivor-bot/db"
	"github.com/moosarra/nfl-survivor-bot/model"
)

// Discord's limit on select menu options
const maxSelectOptions = 25

// Green for the survivor panel
const color int = 0x2e8b57

func errorMessage(err error) string {
	switch {
	case errors.Is(err, controller.ErrUnauthorized):
		return "Admins only"
	case errors.Is(err, controller.ErrCapacityExceeded):
		return "League is capped."
	case errors.Is(err, controller.ErrInvalidTeam):
		return "That team isn't available to you this week."
	case errors.Is(err, controller.ErrNoPicksYet):
		return "No picks yet."
	case errors.Is(err, controller.ErrNoMatchupsLoaded):
		return "No games are loaded for that week yet, try again later."
	case errors.Is(err, controller.ErrPicksHidden):
		return "Picks are hidden until every game of the week has kicked off."
	case errors.Is(err, db.ErrPanelNotConfigured):
		return "No panel channel is set, use /setpanel first."
	default:
		return "Something went wrong, please try again later."
	}
}

func panelMessage(week int, matchups []model.Matchup) *discordgo.MessageSend {
	return &discordgo.MessageSend{
		Content:    panelTitle(week),
		Embeds:     scheduleEmbeds(week, matchups),
		Components: panelComponents(week),
	}
}

func panelTitle(week int) string {
	return fmt.Sprintf("NFL Survivor - Week %d", week)
}

func scheduleEmbeds(week int, matchups []model.Matchup) []*discordgo.MessageEmbed {
	if len(matchups) == 0 {
		return nil
	}

	lines := make([]string, 0, len(matchups))
	for _, m := range matchups {
		line := fmt.Sprintf("%s @ %s", m.AwayTeam, m.HomeTeam)
		if !m.Kickoff.IsZero() {
			line += fmt.Sprintf(" - %s", kickoffTime(m.Kickoff))
		}
		lines = append(lines, line)
	}

	return []*discordgo.MessageEmbed{{
		Title:       fmt.Sprintf("Week %d games", week),
		Description: strings.Join(lines, "\n"),
		Color:       color,
	}}
}

func panelComponents(week int) []discordgo.MessageComponent {
	return []discordgo.MessageComponent{
		discordgo.ActionsRow{
			Components: []discordgo.MessageComponent{
				discordgo.Button{Label: "Join League", Style: discordgo.SuccessButton, CustomID: customID{action: actionJoin}.String()},
				discordgo.Button{Label: "Make My Pick", Style: discordgo.PrimaryButton, CustomID: customID{action: actionPick, week: week}.String()},
				discordgo.Button{Label: "Standings", Style: discordgo.SecondaryButton, CustomID: customID{action: actionStandings}.String()},
				discordgo.Button{Label: "This Week's Picks", Style: discordgo.SecondaryButton, CustomID: customID{action: actionWeekPicks, week: week}.String()},
				discordgo.Button{Label: "My Past Picks", Style: discordgo.SecondaryButton, CustomID: customID{action: actionHistory}.String()},
			},
		},
	}
}

// pickMenu builds the select menu for the available teams. Only the first 25 teams are offered.
func pickMenu(week int, teams []string, kickoffs map[string]time.Time) []discordgo.MessageComponent {
	if len(teams) > maxSelectOptions {
		teams = teams[:maxSelectOptions]
	}

	options := make([]discordgo.SelectMenuOption, 0, len(teams))
	for _, t := range teams {
		opt := discordgo.SelectMenuOption{
			Label: kickoffLabel(t, kickoffs),
			Value: t,
		}
		if team := model.ParseTeam(t); team != nil {
			opt.Description = team.Abbr()
		}
		options = append(options, opt)
	}

	return []discordgo.MessageComponent{
		discordgo.ActionsRow{
			Components: []discordgo.MessageComponent{
				discordgo.SelectMenu{
					MenuType:    discordgo.StringSelectMenu,
					CustomID:    customID{action: actionSelect, week: week}.String(),
					Placeholder: "Select team",
					Options:     options,
				},
			},
		},
	}
}

func kickoffLabel(team string, kickoffs map[string]time.Time) string {
	k, found := kickoffs[team]
	if !found {
		return team
	}
	return fmt.Sprintf("%s (%s)", team, kickoffTime(k))
}

// kickoffTime formats a kickoff in Eastern time, e.g. "Sun 01:00 PM ET".
func kickoffTime(t time.Time) string {
	return t.In(model.Eastern).Format("Mon 03:04 PM") + " ET"
}

func mention(userID string) string {
	return fmt.Sprintf("<@%s>", userID)
}

func standingsMessage(s *model.Standings) string {
	alive := make([]string, 0, len(s.Alive))
	for _, p := range s.Alive {
		alive = append(alive, mention(p.UserID))
	}
	out := make([]string, 0, len(s.Eliminated))
	for _, p := range s.Eliminated {
		out = append(out, mention(p.UserID))
	}
	return fmt.Sprintf("**Alive:** %s\n**Out:** %s", joinOrNone(alive), joinOrNone(out))
}

func weekPicksMessage(picks []model.Pick) string {
	lines := make([]string, 0, len(picks))
	for _, p := range picks {
		lines = append(lines, fmt.Sprintf("%s → %s", mention(p.UserID), p.Team))
	}
	return strings.Join(lines, "\n")
}

func historyMessage(picks []model.Pick) string {
	lines := make([]string, 0, len(picks))
	for _, p := range picks {
		lines = append(lines, fmt.Sprintf("W%d: %s (%s)", p.Week, p.Team, p.Result))
	}
	return strings.Join(lines, "\n")
}

func recapEmbed(res *model.Resolution) *discordgo.MessageEmbed {
	embed := &discordgo.MessageEmbed{
		Title: fmt.Sprintf("Week %d results", res.Week),
		Color: color,
	}

	survived := make([]string, 0, len(res.Winners))
	for _, p := range res.Winners {
		survived = append(survived, fmt.Sprintf("%s (%s)", mention(p.UserID), p.Team))
	}
	lost := make([]string, 0, len(res.Losers))
	for _, p := range res.Losers {
		lost = append(lost, fmt.Sprintf("%s (%s)", mention(p.UserID), p.Team))
	}
	noPick := make([]string, 0, len(res.NoPick))
	for _, u := range res.NoPick {
		noPick = append(noPick, mention(u))
	}

	embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{Name: "Survived", Value: joinOrNone(survived)})
	embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{Name: "Lost", Value: joinOrNone(lost)})
	if len(noPick) > 0 {
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{Name: "No pick", Value: joinOrNone(noPick)})
	}
	return embed
}

func joinOrNone(s []string) string {
	if len(s) == 0 {
		return "(none)"
	}
	return strings.Join(s, ", ")
}
