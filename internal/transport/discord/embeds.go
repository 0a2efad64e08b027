package discord

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/grabticket/bot/internal/application/tracker"
	"github.com/grabticket/bot/internal/domain"
	"github.com/grabticket/bot/internal/stats"
)

const (
	colorSuccess = 0x00ff00
	colorFailure = 0xff0000
	colorInfo    = 0x0099ff
	colorGold    = 0xffd700
	colorPurple  = 0x9b59b6
	colorOrange  = 0xffa500
)

// fieldValueLimit is Discord's cap on one embed field value.
const fieldValueLimit = 1024

func clip(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}

func pct(rate float64) string {
	return fmt.Sprintf("%.1f%%", rate)
}

func reportEmbed(res *tracker.ReportResult, id tracker.Identity, avatar string) *discordgo.MessageEmbed {
	rec := res.Record

	var embed *discordgo.MessageEmbed
	if rec.Result == domain.ResultSuccess {
		embed = &discordgo.MessageEmbed{
			Title: "🎉 Tickets secured!",
			Color: colorSuccess,
			Fields: []*discordgo.MessageEmbedField{
				{Name: "🎫 Event", Value: rec.EventName, Inline: true},
				{Name: "🎟️ Tickets", Value: fmt.Sprintf("%d", rec.TicketCount), Inline: true},
				{Name: "👤 Reported by", Value: id.UserName, Inline: true},
			},
		}
	} else {
		embed = &discordgo.MessageEmbed{
			Title: "😢 Missed out",
			Color: colorFailure,
			Fields: []*discordgo.MessageEmbedField{
				{Name: "🎫 Event", Value: rec.EventName, Inline: true},
				{Name: "👤 Reported by", Value: id.UserName, Inline: true},
			},
		}
	}

	if rec.EventDate != "" {
		embed.Fields = append(embed.Fields,
			&discordgo.MessageEmbedField{Name: "📅 Event date", Value: rec.EventDate, Inline: true})
	}

	if res.User != nil && res.Event != nil {
		embed.Fields = append(embed.Fields,
			&discordgo.MessageEmbedField{
				Name:   "📊 Personal rate",
				Value:  fmt.Sprintf("%s (%d/%d)", pct(res.User.Rate), res.User.Success, res.User.Total),
				Inline: true,
			},
			&discordgo.MessageEmbedField{
				Name:   "📈 Event rate",
				Value:  fmt.Sprintf("%s (%d/%d)", pct(res.Event.Rate), res.Event.Success, res.Event.Total),
				Inline: true,
			})
		if rec.Result == domain.ResultSuccess {
			embed.Fields = append(embed.Fields,
				&discordgo.MessageEmbedField{
					Name:   "🎟️ Personal tickets",
					Value:  fmt.Sprintf("%d", res.User.TotalTickets),
					Inline: true,
				},
				&discordgo.MessageEmbedField{
					Name:   "🎫 Event tickets",
					Value:  fmt.Sprintf("%d", res.Event.TotalTickets),
					Inline: true,
				})
		}
	}

	if rec.Note != "" {
		embed.Fields = append(embed.Fields,
			&discordgo.MessageEmbedField{Name: "📝 Note", Value: rec.Note})
	}

	embed.Thumbnail = &discordgo.MessageEmbedThumbnail{URL: avatar}
	embed.Footer = &discordgo.MessageEmbedFooter{Text: "📊 Synced to Google Sheets"}
	embed.Timestamp = time.Now().Format(time.RFC3339)
	return embed
}

func userStatsEmbed(name, avatar string, report *stats.UserReport, includeActivity bool) *discordgo.MessageEmbed {
	embed := &discordgo.MessageEmbed{
		Title:     fmt.Sprintf("📊 Ticket stats for %s", name),
		Color:     colorInfo,
		Thumbnail: &discordgo.MessageEmbedThumbnail{URL: avatar},
		Fields: []*discordgo.MessageEmbedField{
			{Name: "✅ Success", Value: fmt.Sprintf("%d", report.Success), Inline: true},
			{Name: "❌ Failure", Value: fmt.Sprintf("%d", report.Fail), Inline: true},
			{Name: "📈 Rate", Value: pct(report.Rate), Inline: true},
			{Name: "🎫 Attempts", Value: fmt.Sprintf("%d", report.Total), Inline: true},
			{Name: "🎟️ Tickets", Value: fmt.Sprintf("%d", report.TotalTickets), Inline: true},
		},
	}

	if !includeActivity {
		return embed
	}

	if breakdown := breakdownLines(report.Breakdown); breakdown != "" {
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:  "🎯 Per event",
			Value: clip(breakdown, fieldValueLimit),
		})
	}
	if recent := recentLines(report.Records); recent != "" {
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:  "📝 Last 5",
			Value: clip(recent, fieldValueLimit),
		})
	}
	return embed
}

func breakdownLines(breakdown []stats.EventTally) string {
	var b strings.Builder
	for _, t := range breakdown {
		total := t.Success + t.Fail
		rate := 0.0
		if total > 0 {
			rate = float64(t.Success) / float64(total) * 100
		}
		fmt.Fprintf(&b, "**%s**: %.0f%% (%d/%d) | 🎟️ %d\n", t.EventName, rate, t.Success, total, t.Tickets)
	}
	return strings.TrimRight(b.String(), "\n")
}

// recentLines renders the last five records, most recent first.
func recentLines(records []domain.Record) string {
	var lines []string
	for i := len(records) - 1; i >= 0 && len(lines) < 5; i-- {
		rec := records[i]
		if rec.Result == domain.ResultSuccess {
			lines = append(lines, fmt.Sprintf("✅ %s (%d)", rec.EventName, rec.TicketCount))
		} else {
			lines = append(lines, fmt.Sprintf("❌ %s", rec.EventName))
		}
	}
	return strings.Join(lines, "\n")
}

func allUsersEmbed(users []stats.UserTotals, overall stats.OverallTotals) *discordgo.MessageEmbed {
	// All-users view is sorted by rate, best first.
	ranked := make([]stats.UserTotals, len(users))
	copy(ranked, users)
	sort.SliceStable(ranked, func(i, j int) bool { return ranked[i].Rate > ranked[j].Rate })

	lines := make([]string, 0, len(ranked))
	for _, u := range ranked {
		lines = append(lines, fmt.Sprintf("**%s**: %s (✅%d ❌%d) | 🎟️ %d",
			u.Name, pct(u.Rate), u.Success, u.Fail, u.Tickets))
	}

	return &discordgo.MessageEmbed{
		Title:     "📊 Everyone's ticket stats",
		Color:     colorInfo,
		Timestamp: time.Now().Format(time.RFC3339),
		Fields: []*discordgo.MessageEmbedField{
			{
				Name: "📈 Overall",
				Value: fmt.Sprintf("Rate: **%s**\n✅ %d | ❌ %d | total %d\n🎟️ Tickets: **%d**",
					pct(overall.Rate), overall.Success, overall.Fail, overall.Total, overall.Tickets),
			},
			{
				Name:  fmt.Sprintf("👥 Members (%d)", len(users)),
				Value: clip(strings.Join(lines, "\n"), fieldValueLimit),
			},
		},
	}
}

var sortTitles = map[stats.SortKey]string{
	stats.ByRate:    "success rate",
	stats.ByTickets: "total tickets",
	stats.BySuccess: "success count",
}

var medals = []string{"🥇", "🥈", "🥉", "4️⃣", "5️⃣", "6️⃣", "7️⃣", "8️⃣", "9️⃣", "🔟"}

func leaderboardEmbed(ranked []stats.UserTotals, key stats.SortKey) *discordgo.MessageEmbed {
	var lines []string
	for i, u := range ranked {
		if i >= len(medals) {
			break
		}
		lines = append(lines, fmt.Sprintf("%s **%s**\n　　Rate: %s | ✅ %d ❌ %d | 🎟️ %d",
			medals[i], u.Name, pct(u.Rate), u.Success, u.Fail, u.Tickets))
	}

	description := strings.Join(lines, "\n")
	if description == "" {
		description = "No data yet"
	}

	return &discordgo.MessageEmbed{
		Title:       fmt.Sprintf("🏆 Ticket leaderboard (by %s)", sortTitles[key]),
		Color:       colorGold,
		Description: description,
		Footer:      &discordgo.MessageEmbedFooter{Text: fmt.Sprintf("%d participants", len(ranked))},
		Timestamp:   time.Now().Format(time.RFC3339),
	}
}

func eventListEmbed(summaries []tracker.EventSummary) *discordgo.MessageEmbed {
	embed := &discordgo.MessageEmbed{
		Title:     "📋 Events",
		Color:     colorPurple,
		Footer:    &discordgo.MessageEmbedFooter{Text: fmt.Sprintf("%d events", len(summaries))},
		Timestamp: time.Now().Format(time.RFC3339),
	}

	// Discord caps an embed at 25 fields.
	for i, s := range summaries {
		if i == 25 {
			break
		}
		r := s.Report
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name: "🎫 " + s.Name,
			Value: fmt.Sprintf("Rate: %s\n✅ %d | ❌ %d\n🎟️ %d | 👥 %d",
				pct(r.Rate), r.Success, r.Fail, r.TotalTickets, r.Participants),
			Inline: true,
		})
	}
	return embed
}

func eventDetailEmbed(detail *tracker.EventDetail) *discordgo.MessageEmbed {
	r := detail.Report
	embed := &discordgo.MessageEmbed{
		Title:     "🎫 " + detail.Name,
		Color:     colorPurple,
		Timestamp: time.Now().Format(time.RFC3339),
		Fields: []*discordgo.MessageEmbedField{
			{Name: "✅ Success", Value: fmt.Sprintf("%d", r.Success), Inline: true},
			{Name: "❌ Failure", Value: fmt.Sprintf("%d", r.Fail), Inline: true},
			{Name: "📈 Rate", Value: pct(r.Rate), Inline: true},
			{Name: "🎟️ Tickets", Value: fmt.Sprintf("%d", r.TotalTickets), Inline: true},
		},
	}

	if len(detail.Participants) > 0 {
		var lines []string
		for _, p := range detail.Participants {
			lines = append(lines, fmt.Sprintf("**%s**: %.0f%% (✅%d ❌%d) | 🎟️ %d",
				p.Name, p.Rate, p.Success, p.Fail, p.Tickets))
		}
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:  fmt.Sprintf("👥 Participants (%d)", len(detail.Participants)),
			Value: clip(strings.Join(lines, "\n"), fieldValueLimit),
		})
	}
	return embed
}

func deletedEmbed(deleted domain.DeletedRecord) *discordgo.MessageEmbed {
	summary := "❌ failure"
	if deleted.Result == domain.ResultSuccess {
		summary = fmt.Sprintf("✅ success (%d tickets)", deleted.TicketCount)
	}
	return &discordgo.MessageEmbed{
		Title:       "🗑️ Record deleted",
		Description: fmt.Sprintf("Removed: %s - %s", summary, deleted.EventName),
		Color:       colorOrange,
	}
}

func helpEmbed() *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Title: "🎫 GrabTicket Bot - how to use",
		Color: colorInfo,
		Fields: []*discordgo.MessageEmbedField{
			{
				Name:  "📝 Recording",
				Value: "`/report-success <event> <tickets> [date] [note]` - record a win\n`/report-failure <event> [date] [note]` - record a miss\n`/delete-last` - delete your most recent record",
			},
			{
				Name:  "📊 Statistics",
				Value: "`/my-stats` - your stats\n`/lookup-user <@member>` - someone else's stats\n`/all-users-stats` - everyone\n`/leaderboard [sort]` - rankings",
			},
			{
				Name:  "🎫 Events",
				Value: "`/list-events` - all events\n`/event-detail <event>` - one event in depth",
			},
			{
				Name:  "🎊 Fun",
				Value: "`/celebrate` - victory image",
			},
			{
				Name:  "💡 Tips",
				Value: "• Every record syncs to Google Sheets\n• Event names autocomplete from past records",
			},
		},
	}
}
