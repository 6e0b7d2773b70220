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

// renderMushafPage lays the page's ayahs out as running text. A surah
// marker and, where due, the basmala are inserted when a new surah
// begins on the page.
func renderMushafPage(number int, verses []domain.Verse) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(domain.MsgPageHeading, number, domain.PageCount))

	currentSurah := 0
	for _, verse := range verses {
		if verse.SurahNumber != currentSurah {
			if currentSurah != 0 {
				sb.WriteString("\n\n")
			}
			currentSurah = verse.SurahNumber
			sb.WriteString(fmt.Sprintf(domain.MsgPageSurahMark, verse.SurahName))

			if verse.Number == 1 && domain.HasBasmalaHeading(verse.SurahNumber) {
				sb.WriteString(domain.Basmala + "\n\n")
			}
		} else {
			sb.WriteString(" ")
		}

		sb.WriteString(domain.FormatVerse(verse))
	}

	return sb.String()
}

func mushafPageKeyboard(number int) domain.Keyboard {
	var nav []domain.Button
	if number > 1 {
		nav = append(nav, domain.Button{Text: domain.BtnPrev, CallbackData: fmt.Sprintf("mushaf_page_%d", number-1)})
	}
	if number < domain.PageCount {
		nav = append(nav, domain.Button{Text: domain.BtnNext, CallbackData: fmt.Sprintf("mushaf_page_%d", number+1)})
	}

	keyboard := domain.Keyboard{}
	if len(nav) > 0 {
		keyboard = append(keyboard, nav)
	}

	return append(keyboard, homeRow())
}

// PageHandler serves the /page command with a mushaf page by number.
type PageHandler struct {
	library    port.QuranLibrary
	textSender port.TextSender
	command    string
}

func NewPageHandler(library port.QuranLibrary, textSender port.TextSender) *PageHandler {
	return &PageHandler{
		library:    library,
		textSender: textSender,
		command:    "/page",
	}
}

func (h *PageHandler) GetCommand() string {
	return h.command
}

func (h *PageHandler) Respond(ctx context.Context, timeout time.Duration, message *domain.Message) error {
	l := log.With().Int("messageId", message.ID).Int64("chatId", message.ChatID).
		Str("command", h.command).Logger()
	l.Info().Msg("handling request")

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	args := domain.ParseCommandArgs(message.Text)
	if args == "" {
		_, err := h.textSender.SendMessageReply(ctx, message, domain.MsgPagePrompt)
		return err
	}

	number, err := strconv.Atoi(strings.TrimSpace(args))
	if err != nil || number < 1 || number > domain.PageCount {
		_, err := h.textSender.SendMessageReply(ctx, message, domain.MsgBadNumber)
		return err
	}

	verses, err := h.library.Page(ctx, number)
	if err != nil {
		l.Error().Err(err).Int("page", number).Msg("failed to load mushaf page")
		_, err := h.textSender.SendMessageReply(ctx, message, domain.MsgPageLoadFailed)
		return err
	}

	if _, err := h.textSender.SendKeyboardReply(ctx, message, renderMushafPage(number, verses), mushafPageKeyboard(number)); err != nil {
		l.Error().Err(err).Msg("failed to send mushaf page")
		return err
	}

	return nil
}

// PageNavHandler turns the pressed message into the neighbouring mushaf
// page. Data has the form mushaf_page_{n}.
type PageNavHandler struct {
	library port.QuranLibrary
	editor  port.CallbackSender
	prefix  string
}

func NewPageNavHandler(library port.QuranLibrary, editor port.CallbackSender) *PageNavHandler {
	return &PageNavHandler{
		library: library,
		editor:  editor,
		prefix:  "mushaf_page_",
	}
}

func (h *PageNavHandler) GetPrefix() string {
	return h.prefix
}

func (h *PageNavHandler) Respond(ctx context.Context, timeout time.Duration, callback *domain.Callback) error {
	l := log.With().Str("callback", callback.Data).Int64("chatId", callback.ChatID).Logger()
	l.Info().Msg("handling callback")

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	_ = h.editor.AnswerCallback(ctx, callback.ID, "", false)

	number, err := strconv.Atoi(strings.TrimPrefix(callback.Data, h.prefix))
	if err != nil || number < 1 || number > domain.PageCount {
		return fmt.Errorf("bad mushaf page callback %q", callback.Data)
	}

	verses, err := h.library.Page(ctx, number)
	if err != nil {
		l.Error().Err(err).Int("page", number).Msg("failed to load mushaf page")
		return h.editor.EditMessage(ctx, callback.ChatID, callback.MessageID, domain.MsgPageLoadFailed, domain.Keyboard{homeRow()})
	}

	return h.editor.EditMessage(ctx, callback.ChatID, callback.MessageID, renderMushafPage(number, verses), mushafPageKeyboard(number))
}
