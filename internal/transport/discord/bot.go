// Package discord is the chat-facing transport: slash-command registration,
// interaction dispatch and embed formatting. All statistics come from the
// tracker service; nothing here touches the store directly.
package discord

import (
	"fmt"
	"time"

	"github.com/bwmarrin/discordgo"
	zlog "github.com/rs/zerolog/log"

	"github.com/grabticket/bot/internal/application/tracker"
)

// commandTimeout bounds one interaction's store round trips. Discord gives
// a deferred interaction 15 minutes, but nobody wants to wait that long.
const commandTimeout = 15 * time.Second

type Bot struct {
	session   *discordgo.Session
	svc       *tracker.Service
	imagePath string
}

func New(token string, svc *tracker.Service, imagePath string) (*Bot, error) {
	session, err := discordgo.New("Bot " + token)
	if err != nil {
		return nil, fmt.Errorf("discord session init: %w", err)
	}
	session.Identify.Intents = discordgo.IntentsGuilds | discordgo.IntentsGuildMessages | discordgo.IntentMessageContent

	b := &Bot{session: session, svc: svc, imagePath: imagePath}
	session.AddHandler(b.onReady)
	session.AddHandler(b.onInteraction)
	return b, nil
}

// Start opens the gateway connection and registers the global slash
// commands, replacing whatever set was registered before.
func (b *Bot) Start() error {
	if err := b.session.Open(); err != nil {
		return fmt.Errorf("discord gateway open: %w", err)
	}

	_, err := b.session.ApplicationCommandBulkOverwrite(b.session.State.User.ID, "", commandDefinitions())
	if err != nil {
		return fmt.Errorf("slash command registration: %w", err)
	}
	zlog.Info().Int("commands", len(commandDefinitions())).Msg("slash commands registered")
	return nil
}

func (b *Bot) Close() error {
	return b.session.Close()
}

func (b *Bot) onReady(s *discordgo.Session, r *discordgo.Ready) {
	zlog.Info().Str("bot_user", r.User.Username).Msg("discord gateway ready")
}
