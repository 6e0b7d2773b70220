package commands

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"sotorbot/internal/core/domain"
	"sotorbot/internal/core/port"
)

// RadioHandler serves the /radio command with the web app button for the
// live stream page.
type RadioHandler struct {
	textSender port.TextSender
	links      Links
	command    string
}

func NewRadioHandler(textSender port.TextSender, links Links) *RadioHandler {
	return &RadioHandler{
		textSender: textSender,
		links:      links,
		command:    "/radio",
	}
}

func (h *RadioHandler) GetCommand() string {
	return h.command
}

func (h *RadioHandler) Respond(ctx context.Context, timeout time.Duration, message *domain.Message) error {
	l := log.With().Int("messageId", message.ID).Int64("chatId", message.ChatID).
		Str("command", h.command).Logger()
	l.Info().Msg("handling request")

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	url := h.links.RadioURL()
	if url == "" {
		_, err := h.textSender.SendMessageReply(ctx, message, domain.MsgRadioOffline)
		return err
	}

	keyboard := domain.Keyboard{{{Text: domain.BtnOpenRadio, WebAppURL: url}}}

	if _, err := h.textSender.SendKeyboardReply(ctx, message, domain.MsgRadioInvite, keyboard); err != nil {
		l.Error().Err(err).Msg("failed to send radio invite")
		return err
	}

	return nil
}
