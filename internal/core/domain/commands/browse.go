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

const surahsPerPage = 10

// listWindow clamps the requested list page and returns the slice bounds
// for it along with the page count.
func listWindow(total, page int) (clamped, start, end, pages int) {
	pages = (total + surahsPerPage - 1) / surahsPerPage

	if page < 0 {
		page = 0
	}
	if pages > 0 && page >= pages {
		page = pages - 1
	}

	start = page * surahsPerPage
	end = min(start+surahsPerPage, total)

	return page, start, end, pages
}

// BrowseHandler pages through the surah index. It answers both the
// browse_quran_text entry button and the quran_page_{n} navigation.
type BrowseHandler struct {
	library port.QuranLibrary
	editor  port.CallbackSender
	prefix  string
}

func NewBrowseHandler(library port.QuranLibrary, editor port.CallbackSender, prefix string) *BrowseHandler {
	return &BrowseHandler{
		library: library,
		editor:  editor,
		prefix:  prefix,
	}
}

func (h *BrowseHandler) GetPrefix() string {
	return h.prefix
}

func (h *BrowseHandler) Respond(ctx context.Context, timeout time.Duration, callback *domain.Callback) error {
	l := log.With().Str("callback", callback.Data).Int64("chatId", callback.ChatID).Logger()
	l.Info().Msg("handling callback")

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	_ = h.editor.AnswerCallback(ctx, callback.ID, "", false)

	page := 0
	if rest, ok := strings.CutPrefix(callback.Data, "quran_page_"); ok {
		parsed, err := strconv.Atoi(rest)
		if err != nil {
			return fmt.Errorf("bad list page %q: %w", callback.Data, err)
		}
		page = parsed
	}

	surahs, err := h.library.Surahs(ctx)
	if err != nil {
		l.Error().Err(err).Msg("failed to load surah index")
		return h.editor.EditMessage(ctx, callback.ChatID, callback.MessageID, domain.MsgSurahListFailed, domain.Keyboard{homeRow()})
	}

	page, start, end, pages := listWindow(len(surahs), page)

	keyboard := make(domain.Keyboard, 0, surahsPerPage+2)
	for _, surah := range surahs[start:end] {
		keyboard = append(keyboard, []domain.Button{{
			Text:         fmt.Sprintf("%d. %s (%d آية)", surah.Number, surah.Name, surah.VerseCount),
			CallbackData: fmt.Sprintf("surah_%d", surah.Number),
		}})
	}

	var nav []domain.Button
	if page > 0 {
		nav = append(nav, domain.Button{Text: domain.BtnPrevPage, CallbackData: fmt.Sprintf("quran_page_%d", page-1)})
	}
	if page < pages-1 {
		nav = append(nav, domain.Button{Text: domain.BtnNextPage, CallbackData: fmt.Sprintf("quran_page_%d", page+1)})
	}
	if len(nav) > 0 {
		keyboard = append(keyboard, nav)
	}

	keyboard = append(keyboard, homeRow())

	text := fmt.Sprintf(domain.MsgSurahList, page+1, pages, start+1, end)

	return h.editor.EditMessage(ctx, callback.ChatID, callback.MessageID, text, keyboard)
}
