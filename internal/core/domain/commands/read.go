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

// readChunkLimit bounds one reading screen in bytes. A single oversized
// ayah still goes out alone, everything else stays under the platform
// message cap with room for the heading and the continuation marker.
const readChunkLimit = 3500

// ReadSurahHandler renders surah text in place, one screen at a time.
// Data has the form read_surah_{n} for the first screen and
// continue_surah_{n}_{v} to resume after ayah v.
type ReadSurahHandler struct {
	library port.QuranLibrary
	editor  port.CallbackSender
	prefix  string
}

func NewReadSurahHandler(library port.QuranLibrary, editor port.CallbackSender, prefix string) *ReadSurahHandler {
	return &ReadSurahHandler{
		library: library,
		editor:  editor,
		prefix:  prefix,
	}
}

func (h *ReadSurahHandler) GetPrefix() string {
	return h.prefix
}

func (h *ReadSurahHandler) Respond(ctx context.Context, timeout time.Duration, callback *domain.Callback) error {
	l := log.With().Str("callback", callback.Data).Int64("chatId", callback.ChatID).Logger()
	l.Info().Msg("handling callback")

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	_ = h.editor.AnswerCallback(ctx, callback.ID, "", false)

	number, afterVerse, err := parseReadTarget(strings.TrimPrefix(callback.Data, h.prefix))
	if err != nil {
		return fmt.Errorf("bad reading callback %q: %w", callback.Data, err)
	}

	surah, verses, err := h.library.Surah(ctx, number)
	if err != nil {
		l.Error().Err(err).Int("surah", number).Msg("failed to load surah")
		return h.editor.EditMessage(ctx, callback.ChatID, callback.MessageID, domain.MsgSurahLoadFailed, domain.Keyboard{homeRow()})
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(domain.MsgSurahHeading, surah.Name, surah.EnglishName))

	if afterVerse == 0 && domain.HasBasmalaHeading(number) {
		sb.WriteString(domain.Basmala + "\n\n")
	}

	lastSent := afterVerse
	for _, verse := range verses {
		if verse.Number <= afterVerse {
			continue
		}

		formatted := domain.FormatVerse(verse) + "\n\n"

		if lastSent > afterVerse && sb.Len()+len(formatted) > readChunkLimit {
			keyboard := domain.Keyboard{
				{
					{Text: domain.BtnBackToSurah, CallbackData: fmt.Sprintf("surah_%d", number)},
					{Text: domain.BtnContinue, CallbackData: fmt.Sprintf("continue_surah_%d_%d", number, lastSent)},
				},
				homeRow(),
			}

			return h.editor.EditMessage(ctx, callback.ChatID, callback.MessageID, sb.String()+domain.MsgToBeContinued, keyboard)
		}

		sb.WriteString(formatted)
		lastSent = verse.Number
	}

	return h.editor.EditMessage(ctx, callback.ChatID, callback.MessageID, sb.String(), surahCardKeyboard(number))
}

// parseReadTarget splits "{n}" or "{n}_{v}" into surah number and the
// ayah already shown.
func parseReadTarget(rest string) (number, afterVerse int, err error) {
	numberPart, versePart, hasVerse := strings.Cut(rest, "_")

	number, err = strconv.Atoi(numberPart)
	if err != nil {
		return 0, 0, err
	}
	if number < 1 || number > domain.SurahCount {
		return 0, 0, fmt.Errorf("surah %d out of range", number)
	}

	if hasVerse {
		afterVerse, err = strconv.Atoi(versePart)
		if err != nil {
			return 0, 0, err
		}
	}

	return number, afterVerse, nil
}
