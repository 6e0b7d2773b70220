package commands

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/rs/zerolog/log"

	"sotorbot/internal/core/domain"
	"sotorbot/internal/core/port"
)

const (
	minSearchRunes = 3
	// searchChunkLimit leaves headroom for the result header on every
	// chunk.
	searchChunkLimit = 3500
)

// SearchHandler runs free text through the AI backend and replies with
// the findings. Free text reaches the backend unchanged; a leading
// /search command is stripped first.
type SearchHandler struct {
	generator  port.TextGenerator
	textSender port.TextSender
	editor     port.CallbackSender
	command    string
}

// NewSearchHandler wires the search flow. A nil generator means no AI
// backend is configured; queries then get a polite unavailable notice.
func NewSearchHandler(generator port.TextGenerator, textSender port.TextSender, editor port.CallbackSender) *SearchHandler {
	return &SearchHandler{
		generator:  generator,
		textSender: textSender,
		editor:     editor,
		command:    "/search",
	}
}

func (h *SearchHandler) GetCommand() string {
	return h.command
}

func (h *SearchHandler) Respond(ctx context.Context, timeout time.Duration, message *domain.Message) error {
	l := log.With().Int("messageId", message.ID).Int64("chatId", message.ChatID).
		Str("command", h.command).Logger()
	l.Info().Msg("handling request")

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	if h.generator == nil {
		_, err := h.textSender.SendMessageReply(ctx, message, domain.MsgSearchUnavailable)
		return err
	}

	query := message.Text
	if domain.ParseCommand(query) == h.command {
		query = domain.ParseCommandArgs(query)
	}

	query = strings.TrimSpace(query)
	if utf8.RuneCountInString(query) < minSearchRunes {
		_, err := h.textSender.SendMessageReply(ctx, message, domain.MsgSearchTooShort)
		return err
	}

	progressID, err := h.textSender.SendMessageReply(ctx, message, domain.MsgSearching)
	if err != nil {
		l.Error().Err(err).Msg("failed to send progress message")
		return err
	}

	go h.textSender.SendChatAction(ctx, message.ChatID, domain.Typing)

	answer, err := h.generator.GenerateFromPrompt(ctx, []domain.Prompt{{Prompt: query, Author: domain.User}})
	if err != nil {
		l.Error().Err(err).Msg("search backend failed")
		return h.editor.EditMessage(ctx, message.ChatID, progressID, domain.MsgSearchFailed, nil)
	}

	keyboard := domain.Keyboard{
		{{Text: domain.BtnNewSearch, CallbackData: "search_quran"}},
		homeRow(),
	}

	parts := domain.SplitMessage(answer, searchChunkLimit)
	for i, part := range parts {
		text := fmt.Sprintf(domain.MsgSearchResults, query, part)
		last := i == len(parts)-1

		switch {
		case i == 0 && last:
			return h.editor.EditMessage(ctx, message.ChatID, progressID, text, keyboard)
		case i == 0:
			err = h.editor.EditMessage(ctx, message.ChatID, progressID, text, nil)
		case last:
			_, err = h.textSender.SendKeyboardReply(ctx, message, text, keyboard)
		default:
			_, err = h.textSender.SendMessageReply(ctx, message, text)
		}

		if err != nil {
			l.Error().Err(err).Int("part", i).Msg("failed to deliver search results")
			return err
		}
	}

	return nil
}

// SearchIntroHandler reacts to the search menu button with usage
// examples. The next free text message runs the search.
type SearchIntroHandler struct {
	editor port.CallbackSender
	prefix string
}

func NewSearchIntroHandler(editor port.CallbackSender) *SearchIntroHandler {
	return &SearchIntroHandler{
		editor: editor,
		prefix: "search_quran",
	}
}

func (h *SearchIntroHandler) GetPrefix() string {
	return h.prefix
}

func (h *SearchIntroHandler) Respond(ctx context.Context, timeout time.Duration, callback *domain.Callback) error {
	l := log.With().Str("callback", callback.Data).Int64("chatId", callback.ChatID).Logger()
	l.Info().Msg("handling callback")

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	_ = h.editor.AnswerCallback(ctx, callback.ID, "", false)

	return h.editor.EditMessage(ctx, callback.ChatID, callback.MessageID, domain.MsgSearchIntro, domain.Keyboard{homeRow()})
}
