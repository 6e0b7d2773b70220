package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"sotorbot/internal/core/domain"
	"sotorbot/internal/core/port"
)

// SubscriptionGate decides whether a user may talk to the bot.
type SubscriptionGate interface {
	// IsSubscribed reports channel membership without side effects.
	IsSubscribed(ctx context.Context, userID int64) bool
	// Require checks the sender of a message and, when the check fails,
	// replies with the join prompt. Returns true when the message may be
	// handled.
	Require(ctx context.Context, message *domain.Message) bool
}

// ChannelGate requires membership in a single channel. An empty channel
// ID disables the gate entirely.
type ChannelGate struct {
	checker         port.MembershipChecker
	sender          port.TextSender
	channelID       string
	channelUsername string
}

func NewChannelGate(checker port.MembershipChecker, sender port.TextSender, channelID string, channelUsername string) *ChannelGate {
	return &ChannelGate{
		checker:         checker,
		sender:          sender,
		channelID:       channelID,
		channelUsername: channelUsername,
	}
}

func (g *ChannelGate) IsSubscribed(ctx context.Context, userID int64) bool {
	if g.channelID == "" {
		return true
	}

	member, err := g.checker.IsChannelMember(ctx, g.channelID, userID)
	if err != nil {
		log.Ctx(ctx).Warn().Err(err).Int64("userId", userID).Msg("membership lookup failed, treating as not subscribed")
		return false
	}

	return member
}

func (g *ChannelGate) Require(ctx context.Context, message *domain.Message) bool {
	if g.IsSubscribed(ctx, message.UserID) {
		return true
	}

	log.Ctx(ctx).Info().Int64("chatId", message.ChatID).Int64("userId", message.UserID).Msg("rejecting message from unsubscribed user")

	if _, err := g.sender.SendKeyboardReply(ctx, message, domain.MsgSubscriptionRequired, g.JoinKeyboard()); err != nil {
		log.Ctx(ctx).Error().Err(err).Msg("failed to send join prompt")
	}

	return false
}

// JoinKeyboard links to the channel and offers a re-check button.
func (g *ChannelGate) JoinKeyboard() domain.Keyboard {
	return domain.Keyboard{
		{{Text: domain.BtnSubscribe, URL: fmt.Sprintf("https://t.me/%s", g.channelUsername)}},
		{{Text: domain.BtnVerify, CallbackData: "check_subscription"}},
	}
}
