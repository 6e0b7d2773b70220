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

// recitersFor narrows the reciter list to those covering the surah.
func recitersFor(reciters []domain.Reciter, surahNumber int) []domain.Reciter {
	var covered []domain.Reciter
	for _, reciter := range reciters {
		if reciter.HasSurah(surahNumber) {
			covered = append(covered, reciter)
		}
	}

	return covered
}

// reciterKeyboard lists one page of reciters for the surah, each button
// starting a playback.
func reciterKeyboard(reciters []domain.Reciter, surahNumber, page int) domain.Keyboard {
	page, start, end, pages := listWindow(len(reciters), page)

	keyboard := make(domain.Keyboard, 0, surahsPerPage+2)
	for _, reciter := range reciters[start:end] {
		keyboard = append(keyboard, []domain.Button{{
			Text:         "🎧 " + reciter.Name,
			CallbackData: fmt.Sprintf("play_audio_%d_%d", reciter.ID, surahNumber),
		}})
	}

	var nav []domain.Button
	if page > 0 {
		nav = append(nav, domain.Button{Text: domain.BtnPrev, CallbackData: fmt.Sprintf("reciters_page_%d_%d", surahNumber, page-1)})
	}
	if page < pages-1 {
		nav = append(nav, domain.Button{Text: domain.BtnNext, CallbackData: fmt.Sprintf("reciters_page_%d_%d", surahNumber, page+1)})
	}
	if len(nav) > 0 {
		keyboard = append(keyboard, nav)
	}

	return append(keyboard, homeRow())
}

// surahTitle resolves a surah's Arabic name, falling back to the bare
// number when the index is unavailable.
func surahTitle(ctx context.Context, library port.QuranLibrary, number int) string {
	surahs, err := library.Surahs(ctx)
	if err == nil {
		for _, surah := range surahs {
			if surah.Number == number {
				return surah.Name
			}
		}
	}

	return strconv.Itoa(number)
}

// AudioMenuHandler pages through the surah list of the recitation
// library. It answers both the audio_menu entry button and the
// audio_page_{n} navigation.
type AudioMenuHandler struct {
	library port.QuranLibrary
	editor  port.CallbackSender
	prefix  string
}

func NewAudioMenuHandler(library port.QuranLibrary, editor port.CallbackSender, prefix string) *AudioMenuHandler {
	return &AudioMenuHandler{
		library: library,
		editor:  editor,
		prefix:  prefix,
	}
}

func (h *AudioMenuHandler) GetPrefix() string {
	return h.prefix
}

func (h *AudioMenuHandler) Respond(ctx context.Context, timeout time.Duration, callback *domain.Callback) error {
	l := log.With().Str("callback", callback.Data).Int64("chatId", callback.ChatID).Logger()
	l.Info().Msg("handling callback")

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	_ = h.editor.AnswerCallback(ctx, callback.ID, "", false)

	page := 0
	if rest, ok := strings.CutPrefix(callback.Data, "audio_page_"); ok {
		parsed, err := strconv.Atoi(rest)
		if err != nil {
			return fmt.Errorf("bad audio page %q: %w", callback.Data, err)
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
			Text:         fmt.Sprintf("%d. %s", surah.Number, surah.Name),
			CallbackData: fmt.Sprintf("audio_surah_%d", surah.Number),
		}})
	}

	var nav []domain.Button
	if page > 0 {
		nav = append(nav, domain.Button{Text: domain.BtnPrev, CallbackData: fmt.Sprintf("audio_page_%d", page-1)})
	}
	if page < pages-1 {
		nav = append(nav, domain.Button{Text: domain.BtnNext, CallbackData: fmt.Sprintf("audio_page_%d", page+1)})
	}
	if len(nav) > 0 {
		keyboard = append(keyboard, nav)
	}

	keyboard = append(keyboard, homeRow())

	return h.editor.EditMessage(ctx, callback.ChatID, callback.MessageID, domain.MsgAudioLibrary, keyboard)
}

// RecitersHandler offers the reciters available for one surah. It is
// registered for audio_surah_{n}, reciters_{n} and
// reciters_page_{n}_{p}.
type RecitersHandler struct {
	library port.QuranLibrary
	editor  port.CallbackSender
	prefix  string
}

func NewRecitersHandler(library port.QuranLibrary, editor port.CallbackSender, prefix string) *RecitersHandler {
	return &RecitersHandler{
		library: library,
		editor:  editor,
		prefix:  prefix,
	}
}

func (h *RecitersHandler) GetPrefix() string {
	return h.prefix
}

func (h *RecitersHandler) Respond(ctx context.Context, timeout time.Duration, callback *domain.Callback) error {
	l := log.With().Str("callback", callback.Data).Int64("chatId", callback.ChatID).Logger()
	l.Info().Msg("handling callback")

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	_ = h.editor.AnswerCallback(ctx, callback.ID, "", false)

	surahNumber, page, err := parseRecitersTarget(callback.Data)
	if err != nil {
		return fmt.Errorf("bad reciters callback %q: %w", callback.Data, err)
	}

	reciters, err := h.library.Reciters(ctx)
	if err != nil {
		l.Error().Err(err).Msg("failed to load reciters")
		return h.editor.EditMessage(ctx, callback.ChatID, callback.MessageID, domain.MsgAudioNoReciters, domain.Keyboard{homeRow()})
	}

	covered := recitersFor(reciters, surahNumber)
	if len(covered) == 0 {
		return h.editor.EditMessage(ctx, callback.ChatID, callback.MessageID, domain.MsgAudioNoReciters, domain.Keyboard{homeRow()})
	}

	text := fmt.Sprintf(domain.MsgAudioPick, surahTitle(ctx, h.library, surahNumber))

	return h.editor.EditMessage(ctx, callback.ChatID, callback.MessageID, text, reciterKeyboard(covered, surahNumber, page))
}

func parseRecitersTarget(data string) (surahNumber, page int, err error) {
	if rest, ok := strings.CutPrefix(data, "reciters_page_"); ok {
		surahPart, pagePart, found := strings.Cut(rest, "_")
		if !found {
			return 0, 0, fmt.Errorf("missing page in %q", data)
		}

		surahNumber, err = strconv.Atoi(surahPart)
		if err != nil {
			return 0, 0, err
		}

		page, err = strconv.Atoi(pagePart)
		if err != nil {
			return 0, 0, err
		}

		return checkSurahRange(surahNumber, page)
	}

	rest := strings.TrimPrefix(data, "audio_surah_")
	rest = strings.TrimPrefix(rest, "reciters_")

	surahNumber, err = strconv.Atoi(rest)
	if err != nil {
		return 0, 0, err
	}

	return checkSurahRange(surahNumber, 0)
}

func checkSurahRange(surahNumber, page int) (int, int, error) {
	if surahNumber < 1 || surahNumber > domain.SurahCount {
		return 0, 0, fmt.Errorf("surah %d out of range", surahNumber)
	}

	return surahNumber, page, nil
}

// PlayAudioHandler fetches the recitation and sends it as an audio
// attachment. Data has the form play_audio_{reciter}_{surah}.
type PlayAudioHandler struct {
	library     port.QuranLibrary
	editor      port.CallbackSender
	textSender  port.TextSender
	audioSender port.AudioSender
	prefix      string
}

func NewPlayAudioHandler(library port.QuranLibrary, editor port.CallbackSender, textSender port.TextSender, audioSender port.AudioSender) *PlayAudioHandler {
	return &PlayAudioHandler{
		library:     library,
		editor:      editor,
		textSender:  textSender,
		audioSender: audioSender,
		prefix:      "play_audio_",
	}
}

func (h *PlayAudioHandler) GetPrefix() string {
	return h.prefix
}

func (h *PlayAudioHandler) Respond(ctx context.Context, timeout time.Duration, callback *domain.Callback) error {
	l := log.With().Str("callback", callback.Data).Int64("chatId", callback.ChatID).Logger()
	l.Info().Msg("handling callback")

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	_ = h.editor.AnswerCallback(ctx, callback.ID, "", false)

	reciterPart, surahPart, found := strings.Cut(strings.TrimPrefix(callback.Data, h.prefix), "_")
	if !found {
		return fmt.Errorf("bad playback callback %q", callback.Data)
	}

	reciterID, err := strconv.Atoi(reciterPart)
	if err != nil {
		return fmt.Errorf("bad playback callback %q: %w", callback.Data, err)
	}
	surahNumber, err := strconv.Atoi(surahPart)
	if err != nil || surahNumber < 1 || surahNumber > domain.SurahCount {
		return fmt.Errorf("bad playback callback %q", callback.Data)
	}

	backRow := []domain.Button{{Text: domain.BtnBackAudio, CallbackData: fmt.Sprintf("reciters_%d", surahNumber)}}

	_ = h.editor.EditMessage(ctx, callback.ChatID, callback.MessageID, domain.MsgAudioLoading, nil)

	audio, err := h.library.SurahAudio(ctx, reciterID, surahNumber)
	if err != nil {
		l.Error().Err(err).Int("reciter", reciterID).Int("surah", surahNumber).Msg("failed to resolve recitation")
		return h.editor.EditMessage(ctx, callback.ChatID, callback.MessageID, domain.MsgAudioMissing, domain.Keyboard{backRow, homeRow()})
	}

	go h.textSender.SendChatAction(ctx, callback.ChatID, domain.SendingAudio)

	target := &domain.Message{ID: callback.MessageID, ChatID: callback.ChatID}
	if err := h.audioSender.SendAudioReply(ctx, target, audio); err != nil {
		l.Warn().Err(err).Str("url", audio.URL).Msg("direct audio send failed, offering the link")

		fallback := fmt.Sprintf(domain.MsgAudioFallback, audio.URL)
		return h.editor.EditMessage(ctx, callback.ChatID, callback.MessageID, fallback, domain.Keyboard{backRow, homeRow()})
	}

	moreRow := []domain.Button{{Text: domain.BtnMoreAudio, CallbackData: fmt.Sprintf("reciters_%d", surahNumber)}}

	return h.editor.EditMessage(ctx, callback.ChatID, callback.MessageID, fmt.Sprintf(domain.MsgAudioSent, audio.Performer), domain.Keyboard{moreRow, homeRow()})
}

// AudioHandler serves the /audio command, jumping straight to the
// reciter choice for one surah.
type AudioHandler struct {
	library    port.QuranLibrary
	textSender port.TextSender
	command    string
}

func NewAudioHandler(library port.QuranLibrary, textSender port.TextSender) *AudioHandler {
	return &AudioHandler{
		library:    library,
		textSender: textSender,
		command:    "/audio",
	}
}

func (h *AudioHandler) GetCommand() string {
	return h.command
}

func (h *AudioHandler) Respond(ctx context.Context, timeout time.Duration, message *domain.Message) error {
	l := log.With().Int("messageId", message.ID).Int64("chatId", message.ChatID).
		Str("command", h.command).Logger()
	l.Info().Msg("handling request")

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	args := domain.ParseCommandArgs(message.Text)
	if args == "" {
		_, err := h.textSender.SendMessageReply(ctx, message, domain.MsgAudioPrompt)
		return err
	}

	number, err := strconv.Atoi(strings.TrimSpace(args))
	if err != nil || number < 1 || number > domain.SurahCount {
		_, err := h.textSender.SendMessageReply(ctx, message, domain.MsgBadNumber)
		return err
	}

	reciters, err := h.library.Reciters(ctx)
	if err != nil {
		l.Error().Err(err).Msg("failed to load reciters")
		_, err := h.textSender.SendMessageReply(ctx, message, domain.MsgAudioNoReciters)
		return err
	}

	covered := recitersFor(reciters, number)
	if len(covered) == 0 {
		_, err := h.textSender.SendMessageReply(ctx, message, domain.MsgAudioNoReciters)
		return err
	}

	text := fmt.Sprintf(domain.MsgAudioPick, surahTitle(ctx, h.library, number))

	if _, err := h.textSender.SendKeyboardReply(ctx, message, text, reciterKeyboard(covered, number, 0)); err != nil {
		l.Error().Err(err).Msg("failed to send reciter choice")
		return err
	}

	return nil
}
