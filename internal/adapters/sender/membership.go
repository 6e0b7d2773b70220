package sender

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/rs/zerolog/log"
)

// IsChannelMember reports whether the user currently belongs to the
// channel. Restricted, left and banned statuses do not count.
func (s *Telegram) IsChannelMember(ctx context.Context, channelID string, userID int64) (bool, error) {
	member, err := s.bot.GetChatMember(ctx, &bot.GetChatMemberParams{
		ChatID: channelID,
		UserID: userID,
	})
	if err != nil {
		return false, fmt.Errorf("looking up channel member: %w", err)
	}

	switch member.Type {
	case models.ChatMemberTypeOwner, models.ChatMemberTypeAdministrator, models.ChatMemberTypeMember:
		return true, nil
	default:
		return false, nil
	}
}

// RegisterWebhook points the bot's webhook at url and arms the secret
// token checked on every inbound request.
func (s *Telegram) RegisterWebhook(ctx context.Context, url string, secret string) error {
	ok, err := s.bot.SetWebhook(ctx, &bot.SetWebhookParams{
		URL:         url,
		SecretToken: secret,
	})
	if err != nil {
		return fmt.Errorf("registering webhook: %w", err)
	}
	if !ok {
		return errors.New("webhook registration not confirmed")
	}

	log.Ctx(ctx).Info().Str("url", url).Msg("registered webhook")

	return nil
}
