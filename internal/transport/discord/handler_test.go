package discord

import (
	"testing"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"
)

func TestOptionHelpers(t *testing.T) {
	opts := optionMap([]*discordgo.ApplicationCommandInteractionDataOption{
		{Name: optEvent, Type: discordgo.ApplicationCommandOptionString, Value: "Summer Fest"},
		{Name: optTickets, Type: discordgo.ApplicationCommandOptionInteger, Value: float64(3)},
	})

	assert.Equal(t, "Summer Fest", stringOption(opts, optEvent))
	assert.Equal(t, int64(3), intOption(opts, optTickets))
	assert.Equal(t, "", stringOption(opts, optNote), "missing option reads as empty")
	assert.Equal(t, int64(0), intOption(opts, "missing"))
}

func TestFocusedValue(t *testing.T) {
	options := []*discordgo.ApplicationCommandInteractionDataOption{
		{Name: optDate, Type: discordgo.ApplicationCommandOptionString, Value: "2025"},
		{Name: optEvent, Type: discordgo.ApplicationCommandOptionString, Value: "Sum", Focused: true},
	}
	assert.Equal(t, "Sum", focusedValue(options))
	assert.Equal(t, "", focusedValue(nil))
}

func TestDisplayName(t *testing.T) {
	user := &discordgo.User{Username: "alice01", GlobalName: "Alice"}

	t.Run("nickname_wins", func(t *testing.T) {
		member := &discordgo.Member{User: user, Nick: "Ticket Queen"}
		assert.Equal(t, "Ticket Queen", displayName(user, member))
	})

	t.Run("global_name_over_account_name", func(t *testing.T) {
		assert.Equal(t, "Alice", displayName(user, nil))
	})

	t.Run("falls_back_to_username", func(t *testing.T) {
		plain := &discordgo.User{Username: "alice01"}
		assert.Equal(t, "alice01", displayName(plain, &discordgo.Member{User: plain}))
	})
}

func TestIdentityOf(t *testing.T) {
	user := &discordgo.User{ID: "u1", Username: "alice01", GlobalName: "Alice"}

	t.Run("guild_interaction_uses_member", func(t *testing.T) {
		i := &discordgo.InteractionCreate{Interaction: &discordgo.Interaction{
			Member: &discordgo.Member{User: user, Nick: "Queen"},
		}}
		id := identityOf(i)
		assert.Equal(t, "u1", id.UserID)
		assert.Equal(t, "Queen", id.UserName)
	})

	t.Run("dm_interaction_uses_user", func(t *testing.T) {
		i := &discordgo.InteractionCreate{Interaction: &discordgo.Interaction{User: user}}
		id := identityOf(i)
		assert.Equal(t, "u1", id.UserID)
		assert.Equal(t, "Alice", id.UserName)
	})
}
