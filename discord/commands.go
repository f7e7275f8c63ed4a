package discord

import "github.com/bwmarrin/discordgo"

const (
	cmdSetPanel     = "setpanel"
	cmdPanel        = "panel"
	cmdAdmin        = "admin"
	subcmdEliminate = "eliminate"
	subcmdRevive    = "revive"
)

// Manage Server, named PermissionManageServer or PermissionManageGuild depending on the discordgo version.
const permissionManageGuild int64 = 1 << 5

var commands = []*discordgo.ApplicationCommand{
	{
		Name:        cmdSetPanel,
		Description: "Admin: set the channel the weekly Survivor panel is posted to",
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:         discordgo.ApplicationCommandOptionChannel,
				Name:         "channel",
				Description:  "Channel for the weekly panel",
				ChannelTypes: []discordgo.ChannelType{discordgo.ChannelTypeGuildText},
				Required:     true,
			},
		},
	},
	{
		Name:        cmdPanel,
		Description: "Admin: post this week's Survivor panel now",
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionInteger,
				Name:        "week",
				Description: "Week to post, defaults to the current week",
			},
		},
	},
	{
		Name:        cmdAdmin,
		Description: "Commissioner tools",
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        subcmdEliminate,
				Description: "Eliminate a user immediately",
				Options: []*discordgo.ApplicationCommandOption{
					{Type: discordgo.ApplicationCommandOptionUser, Name: "user", Description: "User to eliminate", Required: true},
				},
			},
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        subcmdRevive,
				Description: "Revive a user",
				Options: []*discordgo.ApplicationCommandOption{
					{Type: discordgo.ApplicationCommandOptionUser, Name: "user", Description: "User to revive", Required: true},
				},
			},
		},
	},
}

func isCommissioner(m *discordgo.Member) bool {
	if m == nil {
		return false
	}
	return m.Permissions&(permissionManageGuild|discordgo.PermissionAdministrator) != 0
}

// optionString returns the raw value of a string, channel or user option, or "" if it isn't set.
func optionString(opts []*discordgo.ApplicationCommandInteractionDataOption, name string) string {
	for _, o := range opts {
		if o.Name == name {
			if v, ok := o.Value.(string); ok {
				return v
			}
		}
	}
	return ""
}

// optionInt returns the value of an integer option, or 0 if it isn't set.
func optionInt(opts []*discordgo.ApplicationCommandInteractionDataOption, name string) int {
	for _, o := range opts {
		if o.Name == name {
			switch v := o.Value.(type) {
			case float64:
				return int(v)
			case int64:
				return int(v)
			case int:
				return v
			}
		}
	}
	return 0
}
