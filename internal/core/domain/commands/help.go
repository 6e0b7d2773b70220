package commands

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"sotorbot/internal/core/domain"
	"sotorbot/internal/core/port"
)

type HelpHandler struct {
	textSender port.TextSender
	links      Links
	command    string
}

func NewHelpHandler(textSender port.TextSender, links Links) *HelpHandler {
	return &HelpHandler{
		textSender: textSender,
		links:      links,
		command:    "/help",
	}
}

func (h *HelpHandler) GetCommand() string {
	return h.command
}

func (h *HelpHandler) Respond(ctx context.Context, timeout time.Duration, message *domain.Message) error {
	l := log.With().Int("messageId", message.ID).Int64("chatId", message.ChatID).
		Str("command", h.command).Logger()
	l.Info().Msg("handling request")

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	if _, err := h.textSender.SendKeyboardReply(ctx, message, domain.MsgMainMenu, MainMenu(h.links)); err != nil {
		l.Error().Err(err).Msg("failed to send help message")
		return err
	}

	return nil
}
