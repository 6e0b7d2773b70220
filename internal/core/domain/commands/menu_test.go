package commands

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sotorbot/internal/core/domain"
)

type MockEditor struct {
	answerErr error
	editErr   error

	AnsweredIDs []string
	ChatID      int64
	MessageID   int
	Text        string
	Texts       []string
	Keyboard    domain.Keyboard
}

func (m *MockEditor) AnswerCallback(_ context.Context, callbackID, _ string, _ bool) error {
	m.AnsweredIDs = append(m.AnsweredIDs, callbackID)
	return m.answerErr
}

func (m *MockEditor) EditMessage(_ context.Context, chatID int64, messageID int, text string, keyboard domain.Keyboard) error {
	m.ChatID = chatID
	m.MessageID = messageID
	m.Text = text
	m.Texts = append(m.Texts, text)
	m.Keyboard = keyboard

	return m.editErr
}

func testLinks() Links {
	return Links{
		ChannelUsername:   "quran_channel",
		DeveloperUsername: "dev_account",
		ExternalURL:       "https://bot.example.com",
	}
}

func buttonTexts(keyboard domain.Keyboard) []string {
	var texts []string
	for _, row := range keyboard {
		for _, button := range row {
			texts = append(texts, button.Text)
		}
	}

	return texts
}

func findButton(t *testing.T, keyboard domain.Keyboard, text string) domain.Button {
	t.Helper()

	for _, row := range keyboard {
		for _, button := range row {
			if button.Text == text {
				return button
			}
		}
	}

	t.Fatalf("button %q not on keyboard", text)
	return domain.Button{}
}

func TestMainMenuCarriesEveryService(t *testing.T) {
	keyboard := MainMenu(testLinks())

	texts := buttonTexts(keyboard)
	assert.Contains(t, texts, domain.BtnBrowseText)
	assert.Contains(t, texts, domain.BtnRadio)
	assert.Contains(t, texts, domain.BtnSearch)
	assert.Contains(t, texts, domain.BtnAudioLib)
	assert.Contains(t, texts, domain.BtnDeveloper)

	radio := findButton(t, keyboard, domain.BtnRadio)
	assert.Equal(t, "https://bot.example.com/radio", radio.WebAppURL)

	developer := findButton(t, keyboard, domain.BtnDeveloper)
	assert.Equal(t, "https://t.me/dev_account", developer.URL)
}

func TestMainMenuSkipsUnconfiguredRows(t *testing.T) {
	keyboard := MainMenu(Links{ChannelUsername: "quran_channel"})

	texts := buttonTexts(keyboard)
	assert.NotContains(t, texts, domain.BtnRadio)
	assert.NotContains(t, texts, domain.BtnDeveloper)
	assert.Contains(t, texts, domain.BtnBrowseText)
	assert.Contains(t, texts, domain.BtnSearch)
}

func TestMenuHandlerRedrawsMainMenu(t *testing.T) {
	me := &MockEditor{}
	handler := NewMenuHandler(me, testLinks())

	assert.Equal(t, "main_menu", handler.GetPrefix())

	err := handler.Respond(context.Background(), time.Minute, &domain.Callback{
		ID: "cb1", Data: "main_menu", ChatID: 5, MessageID: 99})

	require.NoError(t, err)
	assert.Equal(t, []string{"cb1"}, me.AnsweredIDs)
	assert.Equal(t, int64(5), me.ChatID)
	assert.Equal(t, 99, me.MessageID)
	assert.Equal(t, domain.MsgMainMenu, me.Text)
	assert.Contains(t, buttonTexts(me.Keyboard), domain.BtnBrowseText)
}
