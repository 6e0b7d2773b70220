package commands

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"sotorbot/internal/core/domain"
	"sotorbot/internal/core/port"
)

func surahCardText(surah domain.Surah) string {
	return fmt.Sprintf(domain.MsgSurahCard,
		surah.Name, surah.EnglishName, surah.Number, surah.VerseCount, surah.Revelation)
}

func surahCardKeyboard(number int) domain.Keyboard {
	prev := max(number-1, 1)
	next := min(number+1, domain.SurahCount)

	return domain.Keyboard{
		{{Text: domain.BtnRead, CallbackData: fmt.Sprintf("read_surah_%d", number)}},
		{{Text: domain.BtnListen, CallbackData: fmt.Sprintf("audio_surah_%d", number)}},
		{
			{Text: domain.BtnPrev, CallbackData: fmt.Sprintf("surah_%d", prev)},
			{Text: domain.BtnNext, CallbackData: fmt.Sprintf("surah_%d", next)},
		},
		homeRow(),
	}
}

// SurahHandler serves the /surah command. Without an argument it explains
// the usage, with a number it sends the surah card.
type SurahHandler struct {
	library    port.QuranLibrary
	textSender port.TextSender
	command    string
}

func NewSurahHandler(library port.QuranLibrary, textSender port.TextSender) *SurahHandler {
	return &SurahHandler{
		library:    library,
		textSender: textSender,
		command:    "/surah",
	}
}

func (h *SurahHandler) GetCommand() string {
	return h.command
}

func (h *SurahHandler) Respond(ctx context.Context, timeout time.Duration, message *domain.Message) error {
	l := log.With().Int("messageId", message.ID).Int64("chatId", message.ChatID).
		Str("command", h.command).Logger()
	l.Info().Msg("handling request")

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	args := domain.ParseCommandArgs(message.Text)
	if args == "" {
		_, err := h.textSender.SendMessageReply(ctx, message, domain.MsgSurahPrompt)
		return err
	}

	number, err := strconv.Atoi(strings.TrimSpace(args))
	if err != nil || number < 1 || number > domain.SurahCount {
		_, err := h.textSender.SendMessageReply(ctx, message, domain.MsgBadNumber)
		return err
	}

	surah, _, err := h.library.Surah(ctx, number)
	if err != nil {
		l.Error().Err(err).Int("surah", number).Msg("failed to load surah")
		_, err := h.textSender.SendMessageReply(ctx, message, domain.MsgSurahLoadFailed)
		return err
	}

	if _, err := h.textSender.SendKeyboardReply(ctx, message, surahCardText(surah), surahCardKeyboard(number)); err != nil {
		l.Error().Err(err).Msg("failed to send surah card")
		return err
	}

	return nil
}

// SurahCardHandler redraws the pressed message as a surah card. Data has
// the form surah_{n}.
type SurahCardHandler struct {
	library port.QuranLibrary
	editor  port.CallbackSender
	prefix  string
}

func NewSurahCardHandler(library port.QuranLibrary, editor port.CallbackSender) *SurahCardHandler {
	return &SurahCardHandler{
		library: library,
		editor:  editor,
		prefix:  "surah_",
	}
}

func (h *SurahCardHandler) GetPrefix() string {
	return h.prefix
}

func (h *SurahCardHandler) Respond(ctx context.Context, timeout time.Duration, callback *domain.Callback) error {
	l := log.With().Str("callback", callback.Data).Int64("chatId", callback.ChatID).Logger()
	l.Info().Msg("handling callback")

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	_ = h.editor.AnswerCallback(ctx, callback.ID, "", false)

	number, err := strconv.Atoi(strings.TrimPrefix(callback.Data, h.prefix))
	if err != nil || number < 1 || number > domain.SurahCount {
		return fmt.Errorf("bad surah callback %q", callback.Data)
	}

	surah, _, err := h.library.Surah(ctx, number)
	if err != nil {
		l.Error().Err(err).Int("surah", number).Msg("failed to load surah")
		return h.editor.EditMessage(ctx, callback.ChatID, callback.MessageID, domain.MsgSurahLoadFailed, domain.Keyboard{homeRow()})
	}

	return h.editor.EditMessage(ctx, callback.ChatID, callback.MessageID, surahCardText(surah), surahCardKeyboard(number))
}
