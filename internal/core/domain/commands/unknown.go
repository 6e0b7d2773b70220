package commands

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"sotorbot/internal/core/domain"
	"sotorbot/internal/core/port"
)

// UnknownHandler is the fallback for commands no handler claims.
type UnknownHandler struct {
	textSender port.TextSender
	command    string
}

func NewUnknownHandler(textSender port.TextSender) *UnknownHandler {
	return &UnknownHandler{
		textSender: textSender,
		command:    "/unknown",
	}
}

func (h *UnknownHandler) GetCommand() string {
	return h.command
}

func (h *UnknownHandler) Respond(ctx context.Context, timeout time.Duration, message *domain.Message) error {
	l := log.With().Int("messageId", message.ID).Int64("chatId", message.ChatID).
		Str("text", message.Text).Logger()
	l.Info().Msg("unknown command")

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	_, err := h.textSender.SendMessageReply(ctx, message, domain.MsgUnknownCommand)
	return err
}
