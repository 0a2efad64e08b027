package discord

import "github.com/bwmarrin/discordgo"

const (
	cmdReportSuccess = "report-success"
	cmdReportFailure = "report-failure"
	cmdMyStats       = "my-stats"
	cmdLookupUser    = "lookup-user"
	cmdAllUsersStats = "all-users-stats"
	cmdLeaderboard   = "leaderboard"
	cmdListEvents    = "list-events"
	cmdEventDetail   = "event-detail"
	cmdDeleteLast    = "delete-last"
	cmdHelp          = "help"
	cmdCelebrate     = "celebrate"
)

const (
	optEvent   = "event"
	optTickets = "tickets"
	optDate    = "date"
	optNote    = "note"
	optMember  = "member"
	optSort    = "sort"
)

func commandDefinitions() []*discordgo.ApplicationCommand {
	minTickets := float64(1)

	eventOption := func(required bool) *discordgo.ApplicationCommandOption {
		return &discordgo.ApplicationCommandOption{
			Type:         discordgo.ApplicationCommandOptionString,
			Name:         optEvent,
			Description:  "Event name",
			Required:     required,
			Autocomplete: true,
		}
	}
	dateOption := &discordgo.ApplicationCommandOption{
		Type:        discordgo.ApplicationCommandOptionString,
		Name:        optDate,
		Description: "Event date (e.g. 2025-12-25)",
	}
	noteOption := &discordgo.ApplicationCommandOption{
		Type:        discordgo.ApplicationCommandOptionString,
		Name:        optNote,
		Description: "Optional note",
	}

	return []*discordgo.ApplicationCommand{
		{
			Name:        cmdReportSuccess,
			Description: "Record a successful ticket grab",
			Options: []*discordgo.ApplicationCommandOption{
				eventOption(true),
				{
					Type:        discordgo.ApplicationCommandOptionInteger,
					Name:        optTickets,
					Description: "Number of tickets secured",
					Required:    true,
					MinValue:    &minTickets,
					MaxValue:    100,
				},
				dateOption,
				noteOption,
			},
		},
		{
			Name:        cmdReportFailure,
			Description: "Record a failed ticket grab",
			Options: []*discordgo.ApplicationCommandOption{
				eventOption(true),
				dateOption,
				noteOption,
			},
		},
		{
			Name:        cmdMyStats,
			Description: "Show your ticket-grab statistics",
		},
		{
			Name:        cmdLookupUser,
			Description: "Show another member's statistics",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionUser,
					Name:        optMember,
					Description: "Member to look up",
					Required:    true,
				},
			},
		},
		{
			Name:        cmdAllUsersStats,
			Description: "Show everyone's statistics",
		},
		{
			Name:        cmdLeaderboard,
			Description: "Show the ticket-grab leaderboard",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        optSort,
					Description: "Sort order",
					Choices: []*discordgo.ApplicationCommandOptionChoice{
						{Name: "Success rate", Value: "rate"},
						{Name: "Total tickets", Value: "tickets"},
						{Name: "Success count", Value: "success"},
					},
				},
			},
		},
		{
			Name:        cmdListEvents,
			Description: "List all recorded events",
		},
		{
			Name:        cmdEventDetail,
			Description: "Show detailed statistics for one event",
			Options: []*discordgo.ApplicationCommandOption{
				eventOption(true),
			},
		},
		{
			Name:        cmdDeleteLast,
			Description: "Delete your most recent record",
		},
		{
			Name:        cmdHelp,
			Description: "Show usage instructions",
		},
		{
			Name:        cmdCelebrate,
			Description: "🎉 Celebrate a successful grab with the victory image",
		},
	}
}
