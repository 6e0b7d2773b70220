package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"sotorbot/internal/core/domain"
	"sotorbot/internal/core/port"
)

type StartHandler struct {
	textSender port.TextSender
	links      Links
	command    string
}

func NewStartHandler(textSender port.TextSender, links Links) *StartHandler {
	return &StartHandler{
		textSender: textSender,
		links:      links,
		command:    "/start",
	}
}

func (h *StartHandler) GetCommand() string {
	return h.command
}

// Respond greets the user by first name and offers the main menu.
func (h *StartHandler) Respond(ctx context.Context, timeout time.Duration, message *domain.Message) error {
	l := log.With().Int("messageId", message.ID).Int64("chatId", message.ChatID).
		Str("command", h.command).Logger()
	l.Info().Msg("handling request")

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	text := fmt.Sprintf(domain.MsgWelcome, message.FirstName)

	if _, err := h.textSender.SendKeyboardReply(ctx, message, text, MainMenu(h.links)); err != nil {
		l.Error().Err(err).Msg("failed to send welcome message")
		return err
	}

	return nil
}
