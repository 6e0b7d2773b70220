package commands

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"sotorbot/internal/core/domain"
	"sotorbot/internal/core/port"
)

// Links carries the public URLs the menus point at. ExternalURL is the
// base this bot is reachable under; the radio web app lives beneath it.
type Links struct {
	ChannelUsername   string
	DeveloperUsername string
	ExternalURL       string
}

func (l Links) RadioURL() string {
	if l.ExternalURL == "" {
		return ""
	}

	return l.ExternalURL + "/radio"
}

func (l Links) ChannelURL() string {
	return "https://t.me/" + l.ChannelUsername
}

func (l Links) DeveloperURL() string {
	return "https://t.me/" + l.DeveloperUsername
}

// MainMenu builds the top level keyboard shared by the start command and
// the main_menu callback. Rows without a configured target are left out.
func MainMenu(links Links) domain.Keyboard {
	keyboard := domain.Keyboard{
		{{Text: domain.BtnBrowseText, CallbackData: "browse_quran_text"}},
	}

	if url := links.RadioURL(); url != "" {
		keyboard = append(keyboard, []domain.Button{{Text: domain.BtnRadio, WebAppURL: url}})
	}

	keyboard = append(keyboard,
		[]domain.Button{{Text: domain.BtnSearch, CallbackData: "search_quran"}},
		[]domain.Button{{Text: domain.BtnAudioLib, CallbackData: "audio_menu"}},
	)

	if links.DeveloperUsername != "" {
		keyboard = append(keyboard, []domain.Button{{Text: domain.BtnDeveloper, URL: links.DeveloperURL()}})
	}

	return keyboard
}

func homeRow() []domain.Button {
	return []domain.Button{{Text: domain.BtnHome, CallbackData: "main_menu"}}
}

type MenuHandler struct {
	editor port.CallbackSender
	links  Links
	prefix string
}

func NewMenuHandler(editor port.CallbackSender, links Links) *MenuHandler {
	return &MenuHandler{
		editor: editor,
		links:  links,
		prefix: "main_menu",
	}
}

func (h *MenuHandler) GetPrefix() string {
	return h.prefix
}

// Respond replaces the pressed message with the main menu.
func (h *MenuHandler) Respond(ctx context.Context, timeout time.Duration, callback *domain.Callback) error {
	l := log.With().Str("callback", callback.Data).Int64("chatId", callback.ChatID).Logger()
	l.Info().Msg("handling callback")

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	_ = h.editor.AnswerCallback(ctx, callback.ID, "", false)

	return h.editor.EditMessage(ctx, callback.ChatID, callback.MessageID, domain.MsgMainMenu, MainMenu(h.links))
}
