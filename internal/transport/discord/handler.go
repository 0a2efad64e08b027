package discord

import (
	"context"
	"os"
	"strings"

	"github.com/bwmarrin/discordgo"
	zlog "github.com/rs/zerolog/log"

	"github.com/grabticket/bot/internal/application/tracker"
	"github.com/grabticket/bot/internal/domain"
)

const (
	msgRetryLater   = "❌ Something went wrong, please try again later"
	msgWriteFailed  = "❌ Could not save the record, please try again later"
	msgNoOwnRecords = "📊 You have no records yet! Use `/report-success` or `/report-failure` to start"
	msgNoRecords    = "📊 No records yet!"
	msgNoEvents     = "📋 No events recorded yet!"
)

// onInteraction is the outermost dispatch boundary: whatever a handler does,
// the interaction gets a response and the process stays up.
func (b *Bot) onInteraction(s *discordgo.Session, i *discordgo.InteractionCreate) {
	defer func() {
		if r := recover(); r != nil {
			zlog.Error().Interface("panic", r).Msg("interaction handler panicked")
			b.replyError(s, i, msgRetryLater)
		}
	}()

	switch i.Type {
	case discordgo.InteractionApplicationCommandAutocomplete:
		b.handleAutocomplete(s, i)
	case discordgo.InteractionApplicationCommand:
		b.handleCommand(s, i)
	}
}

func (b *Bot) handleCommand(s *discordgo.Session, i *discordgo.InteractionCreate) {
	ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
	defer cancel()

	data := i.ApplicationCommandData()
	var err error

	switch data.Name {
	case cmdReportSuccess:
		err = b.reportSuccess(ctx, s, i)
	case cmdReportFailure:
		err = b.reportFailure(ctx, s, i)
	case cmdMyStats:
		err = b.myStats(ctx, s, i)
	case cmdLookupUser:
		err = b.lookupUser(ctx, s, i)
	case cmdAllUsersStats:
		err = b.allUsersStats(ctx, s, i)
	case cmdLeaderboard:
		err = b.leaderboard(ctx, s, i)
	case cmdListEvents:
		err = b.listEvents(ctx, s, i)
	case cmdEventDetail:
		err = b.eventDetail(ctx, s, i)
	case cmdDeleteLast:
		err = b.deleteLast(ctx, s, i)
	case cmdHelp:
		err = b.help(s, i)
	case cmdCelebrate:
		err = b.celebrate(s, i)
	default:
		zlog.Warn().Str("command", data.Name).Msg("unknown command")
		return
	}

	if err != nil {
		zlog.Error().Err(err).Str("command", data.Name).Msg("command failed")
		b.replyError(s, i, msgRetryLater)
	}
}

func (b *Bot) handleAutocomplete(s *discordgo.Session, i *discordgo.InteractionCreate) {
	ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
	defer cancel()

	focused := strings.ToLower(focusedValue(i.ApplicationCommandData().Options))

	var choices []*discordgo.ApplicationCommandOptionChoice
	for _, name := range b.svc.EventNames(ctx) {
		if focused != "" && !strings.Contains(strings.ToLower(name), focused) {
			continue
		}
		choices = append(choices, &discordgo.ApplicationCommandOptionChoice{Name: name, Value: name})
		if len(choices) == 25 {
			break
		}
	}

	err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionApplicationCommandAutocompleteResult,
		Data: &discordgo.InteractionResponseData{Choices: choices},
	})
	if err != nil {
		zlog.Warn().Err(err).Msg("autocomplete response failed")
	}
}

// --- command handlers ---

func (b *Bot) reportSuccess(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate) error {
	if err := b.deferReply(s, i, false); err != nil {
		return err
	}

	id := identityOf(i)
	opts := optionMap(i.ApplicationCommandData().Options)

	res, err := b.svc.ReportSuccess(ctx, id,
		stringOption(opts, optEvent),
		int(intOption(opts, optTickets)),
		stringOption(opts, optDate),
		stringOption(opts, optNote),
	)
	if err != nil {
		return b.editText(s, i, msgWriteFailed)
	}

	return b.editEmbed(s, i, reportEmbed(res, id, avatarURL(i)))
}

func (b *Bot) reportFailure(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate) error {
	if err := b.deferReply(s, i, false); err != nil {
		return err
	}

	id := identityOf(i)
	opts := optionMap(i.ApplicationCommandData().Options)

	res, err := b.svc.ReportFailure(ctx, id,
		stringOption(opts, optEvent),
		stringOption(opts, optDate),
		stringOption(opts, optNote),
	)
	if err != nil {
		return b.editText(s, i, msgWriteFailed)
	}

	return b.editEmbed(s, i, reportEmbed(res, id, avatarURL(i)))
}

func (b *Bot) myStats(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate) error {
	if err := b.deferReply(s, i, false); err != nil {
		return err
	}

	id := identityOf(i)
	report, err := b.svc.UserStats(ctx, id.UserID)
	if domain.HasCode(err, domain.CodeNotFound) {
		return b.editText(s, i, msgNoOwnRecords)
	}
	if err != nil {
		return err
	}

	return b.editEmbed(s, i, userStatsEmbed(id.UserName, avatarURL(i), report, true))
}

func (b *Bot) lookupUser(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate) error {
	if err := b.deferReply(s, i, false); err != nil {
		return err
	}

	opts := optionMap(i.ApplicationCommandData().Options)
	member := userOption(opts, optMember, s)
	if member == nil {
		return b.editText(s, i, msgRetryLater)
	}
	name := displayName(member, nil)

	report, err := b.svc.UserStats(ctx, member.ID)
	if domain.HasCode(err, domain.CodeNotFound) {
		return b.editText(s, i, "📊 "+name+" has no records yet!")
	}
	if err != nil {
		return err
	}

	return b.editEmbed(s, i, userStatsEmbed(name, member.AvatarURL(""), report, false))
}

func (b *Bot) allUsersStats(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate) error {
	if err := b.deferReply(s, i, false); err != nil {
		return err
	}

	users, overall, err := b.svc.AllUserStats(ctx)
	if domain.HasCode(err, domain.CodeNotFound) {
		return b.editText(s, i, msgNoRecords)
	}
	if err != nil {
		return err
	}

	return b.editEmbed(s, i, allUsersEmbed(users, overall))
}

func (b *Bot) leaderboard(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate) error {
	if err := b.deferReply(s, i, false); err != nil {
		return err
	}

	opts := optionMap(i.ApplicationCommandData().Options)
	ranked, key, err := b.svc.Leaderboard(ctx, stringOption(opts, optSort))
	if domain.HasCode(err, domain.CodeNotFound) {
		return b.editText(s, i, msgNoRecords)
	}
	if err != nil {
		return err
	}

	return b.editEmbed(s, i, leaderboardEmbed(ranked, key))
}

func (b *Bot) listEvents(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate) error {
	if err := b.deferReply(s, i, false); err != nil {
		return err
	}

	summaries, err := b.svc.Events(ctx)
	if domain.HasCode(err, domain.CodeNotFound) {
		return b.editText(s, i, msgNoEvents)
	}
	if err != nil {
		return err
	}

	return b.editEmbed(s, i, eventListEmbed(summaries))
}

func (b *Bot) eventDetail(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate) error {
	if err := b.deferReply(s, i, false); err != nil {
		return err
	}

	opts := optionMap(i.ApplicationCommandData().Options)
	eventName := stringOption(opts, optEvent)

	detail, err := b.svc.EventDetail(ctx, eventName)
	if domain.HasCode(err, domain.CodeNotFound) {
		return b.editText(s, i, "❌ Unknown event: "+eventName)
	}
	if err != nil {
		return err
	}

	return b.editEmbed(s, i, eventDetailEmbed(detail))
}

func (b *Bot) deleteLast(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate) error {
	if err := b.deferReply(s, i, true); err != nil {
		return err
	}

	deleted, err := b.svc.DeleteLast(ctx, identityOf(i))
	if domain.HasCode(err, domain.CodeNotFound) {
		return b.editText(s, i, "❌ You have no records to delete!")
	}
	if err != nil {
		return b.editText(s, i, msgRetryLater)
	}

	return b.editEmbed(s, i, deletedEmbed(deleted))
}

func (b *Bot) help(s *discordgo.Session, i *discordgo.InteractionCreate) error {
	return s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Embeds: []*discordgo.MessageEmbed{helpEmbed()},
		},
	})
}

func (b *Bot) celebrate(s *discordgo.Session, i *discordgo.InteractionCreate) error {
	f, err := os.Open(b.imagePath)
	if err != nil {
		return s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
			Type: discordgo.InteractionResponseChannelMessageWithSource,
			Data: &discordgo.InteractionResponseData{
				Content: "❌ Celebration image not found!",
				Flags:   discordgo.MessageFlagsEphemeral,
			},
		})
	}
	defer f.Close()

	return s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Files: []*discordgo.File{{Name: "celebrate.jpg", Reader: f}},
		},
	})
}

// --- reply plumbing ---

func (b *Bot) deferReply(s *discordgo.Session, i *discordgo.InteractionCreate, ephemeral bool) error {
	data := &discordgo.InteractionResponseData{}
	if ephemeral {
		data.Flags = discordgo.MessageFlagsEphemeral
	}
	return s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseDeferredChannelMessageWithSource,
		Data: data,
	})
}

func (b *Bot) editText(s *discordgo.Session, i *discordgo.InteractionCreate, msg string) error {
	_, err := s.InteractionResponseEdit(i.Interaction, &discordgo.WebhookEdit{Content: &msg})
	return err
}

func (b *Bot) editEmbed(s *discordgo.Session, i *discordgo.InteractionCreate, embed *discordgo.MessageEmbed) error {
	embeds := []*discordgo.MessageEmbed{embed}
	_, err := s.InteractionResponseEdit(i.Interaction, &discordgo.WebhookEdit{Embeds: &embeds})
	return err
}

// replyError answers on whichever path is still open for this interaction.
func (b *Bot) replyError(s *discordgo.Session, i *discordgo.InteractionCreate, msg string) {
	err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content: msg,
			Flags:   discordgo.MessageFlagsEphemeral,
		},
	})
	if err == nil {
		return
	}
	if _, err := s.FollowupMessageCreate(i.Interaction, true, &discordgo.WebhookParams{
		Content: msg,
		Flags:   discordgo.MessageFlagsEphemeral,
	}); err != nil {
		zlog.Warn().Err(err).Msg("error reply failed")
	}
}

// --- option and identity helpers ---

type optMapT map[string]*discordgo.ApplicationCommandInteractionDataOption

func optionMap(options []*discordgo.ApplicationCommandInteractionDataOption) optMapT {
	m := make(optMapT, len(options))
	for _, o := range options {
		m[o.Name] = o
	}
	return m
}

func stringOption(m optMapT, name string) string {
	if o, ok := m[name]; ok {
		return o.StringValue()
	}
	return ""
}

func intOption(m optMapT, name string) int64 {
	if o, ok := m[name]; ok {
		return o.IntValue()
	}
	return 0
}

func userOption(m optMapT, name string, s *discordgo.Session) *discordgo.User {
	if o, ok := m[name]; ok {
		return o.UserValue(s)
	}
	return nil
}

func focusedValue(options []*discordgo.ApplicationCommandInteractionDataOption) string {
	for _, o := range options {
		if o.Focused {
			return o.StringValue()
		}
	}
	return ""
}

func identityOf(i *discordgo.InteractionCreate) tracker.Identity {
	user := interactionUser(i)
	if user == nil {
		return tracker.Identity{}
	}
	return tracker.Identity{
		UserID:   user.ID,
		UserName: displayName(user, i.Member),
	}
}

func interactionUser(i *discordgo.InteractionCreate) *discordgo.User {
	if i.Member != nil {
		return i.Member.User
	}
	return i.User
}

// displayName prefers the server nickname, then the global display name,
// then the account name.
func displayName(user *discordgo.User, member *discordgo.Member) string {
	if member != nil && member.Nick != "" {
		return member.Nick
	}
	if user.GlobalName != "" {
		return user.GlobalName
	}
	return user.Username
}

func avatarURL(i *discordgo.InteractionCreate) string {
	if user := interactionUser(i); user != nil {
		return user.AvatarURL("")
	}
	return ""
}
