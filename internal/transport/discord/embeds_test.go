package discord

import (
	"strings"
	"testing"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/grabticket/bot/internal/application/tracker"
	"github.com/grabticket/bot/internal/domain"
	"github.com/grabticket/bot/internal/stats"
)

func TestRecentLines(t *testing.T) {
	records := []domain.Record{
		{EventName: "E1", Result: domain.ResultSuccess, TicketCount: 2},
		{EventName: "E2", Result: domain.ResultFailure},
		{EventName: "E3", Result: domain.ResultSuccess, TicketCount: 1},
		{EventName: "E4", Result: domain.ResultFailure},
		{EventName: "E5", Result: domain.ResultSuccess, TicketCount: 4},
		{EventName: "E6", Result: domain.ResultFailure},
	}

	lines := strings.Split(recentLines(records), "\n")
	require.Len(t, lines, 5, "only the last five records are shown")
	assert.Equal(t, "❌ E6", lines[0], "most recent first")
	assert.Equal(t, "✅ E5 (4)", lines[1])
	assert.Equal(t, "❌ E2", lines[4], "oldest shown record is E2")
}

func TestBreakdownLines(t *testing.T) {
	out := breakdownLines([]stats.EventTally{
		{EventName: "E1", Success: 1, Fail: 1, Tickets: 2},
		{EventName: "E2", Success: 0, Fail: 0, Tickets: 0},
	})
	assert.Contains(t, out, "**E1**: 50% (1/2) | 🎟️ 2")
	assert.Contains(t, out, "**E2**: 0% (0/0)")
}

func TestClip(t *testing.T) {
	long := strings.Repeat("x", 2000)
	assert.Len(t, clip(long, fieldValueLimit), fieldValueLimit)
	assert.Equal(t, "short", clip("short", fieldValueLimit))
}

func TestReportEmbed(t *testing.T) {
	id := tracker.Identity{UserID: "u1", UserName: "Alice"}

	t.Run("success_report_shows_ticket_fields", func(t *testing.T) {
		res := &tracker.ReportResult{
			Record: domain.Record{EventName: "E1", Result: domain.ResultSuccess, TicketCount: 2, Note: "row 3"},
			User:   &stats.UserReport{Success: 1, Total: 1, Rate: 100, TotalTickets: 2},
			Event:  &stats.EventReport{Success: 1, Total: 1, Rate: 100, TotalTickets: 2, Participants: 1},
		}
		embed := reportEmbed(res, id, "")
		assert.Equal(t, "🎉 Tickets secured!", embed.Title)
		assert.Equal(t, colorSuccess, embed.Color)

		names := fieldNames(embed)
		assert.Contains(t, names, "🎟️ Personal tickets")
		assert.Contains(t, names, "📝 Note")
	})

	t.Run("failure_report_has_no_ticket_fields", func(t *testing.T) {
		res := &tracker.ReportResult{
			Record: domain.Record{EventName: "E1", Result: domain.ResultFailure},
			User:   &stats.UserReport{Fail: 1, Total: 1},
			Event:  &stats.EventReport{Fail: 1, Total: 1, Participants: 1},
		}
		embed := reportEmbed(res, id, "")
		assert.Equal(t, colorFailure, embed.Color)
		assert.NotContains(t, fieldNames(embed), "🎟️ Personal tickets")
	})
}

func TestLeaderboardEmbed(t *testing.T) {
	var ranked []stats.UserTotals
	for i := 0; i < 12; i++ {
		ranked = append(ranked, stats.UserTotals{Name: "user", Success: 1, Total: 1, Rate: 100})
	}
	embed := leaderboardEmbed(ranked, stats.ByTickets)

	assert.Contains(t, embed.Title, "total tickets")
	assert.Equal(t, "12 participants", embed.Footer.Text)
	assert.Equal(t, 10, strings.Count(embed.Description, "**user**"), "top ten only")
	assert.True(t, strings.HasPrefix(embed.Description, "🥇"))
}

func TestEventListEmbed(t *testing.T) {
	var summaries []tracker.EventSummary
	for i := 0; i < 30; i++ {
		summaries = append(summaries, tracker.EventSummary{
			Name:   "E",
			Report: &stats.EventReport{Success: 1, Total: 1, Rate: 100, Participants: 1},
		})
	}
	embed := eventListEmbed(summaries)
	assert.Len(t, embed.Fields, 25, "discord caps embeds at 25 fields")
	assert.Equal(t, "30 events", embed.Footer.Text)
}

func TestDeletedEmbed(t *testing.T) {
	success := deletedEmbed(domain.DeletedRecord{EventName: "E1", Result: domain.ResultSuccess, TicketCount: 3})
	assert.Contains(t, success.Description, "✅ success (3 tickets)")
	assert.Contains(t, success.Description, "E1")

	failure := deletedEmbed(domain.DeletedRecord{EventName: "E2", Result: domain.ResultFailure})
	assert.Contains(t, failure.Description, "❌ failure")
}

func TestUserStatsEmbed(t *testing.T) {
	report := &stats.UserReport{
		Success: 2, Fail: 1, Total: 3, Rate: 66.7, TotalTickets: 5,
		Breakdown: []stats.EventTally{{EventName: "E1", Success: 2, Fail: 1, Tickets: 5}},
		Records:   []domain.Record{{EventName: "E1", Result: domain.ResultSuccess, TicketCount: 5}},
	}

	full := userStatsEmbed("Alice", "", report, true)
	assert.Contains(t, fieldNames(full), "🎯 Per event")
	assert.Contains(t, fieldNames(full), "📝 Last 5")

	brief := userStatsEmbed("Alice", "", report, false)
	assert.NotContains(t, fieldNames(brief), "🎯 Per event")
}

func fieldNames(embed *discordgo.MessageEmbed) []string {
	names := make([]string, 0, len(embed.Fields))
	for _, f := range embed.Fields {
		names = append(names, f.Name)
	}
	return names
}
