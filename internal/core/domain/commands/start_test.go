package commands

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sotorbot/internal/core/domain"
)

type MockTextSender struct {
	err    error
	sendID int

	Message  string
	Messages []string
	Keyboard domain.Keyboard
}

func (m *MockTextSender) SendMessageReply(_ context.Context, _ *domain.Message, text string) (int, error) {
	m.Message = text
	m.Messages = append(m.Messages, text)

	return m.sendID, m.err
}

func (m *MockTextSender) SendKeyboardReply(_ context.Context, _ *domain.Message, text string, keyboard domain.Keyboard) (int, error) {
	m.Message = text
	m.Messages = append(m.Messages, text)
	m.Keyboard = keyboard

	return m.sendID, m.err
}

func (m *MockTextSender) SendChatAction(_ context.Context, _ int64, _ domain.Action) {}

func (m *MockTextSender) NotifyAndReturnError(_ context.Context, err error, _ *domain.Message) error {
	return err
}

func TestStartHandlerGreetsByName(t *testing.T) {
	ms := &MockTextSender{}
	handler := NewStartHandler(ms, testLinks())

	assert.Equal(t, "/start", handler.GetCommand())

	err := handler.Respond(context.Background(), time.Minute, &domain.Message{
		ChatID: 1, ID: 1, FirstName: "أحمد", Text: "/start"})

	require.NoError(t, err)
	assert.Contains(t, ms.Message, "أحمد")
	assert.Contains(t, buttonTexts(ms.Keyboard), domain.BtnBrowseText)
}

func TestStartHandlerSendError(t *testing.T) {
	ms := &MockTextSender{err: errors.New("mock error")}
	handler := NewStartHandler(ms, testLinks())

	err := handler.Respond(context.Background(), time.Minute, &domain.Message{
		ChatID: 1, ID: 1, FirstName: "أحمد", Text: "/start"})

	require.Error(t, err)
}

func TestHelpHandlerShowsMenu(t *testing.T) {
	ms := &MockTextSender{}
	handler := NewHelpHandler(ms, testLinks())

	assert.Equal(t, "/help", handler.GetCommand())

	err := handler.Respond(context.Background(), time.Minute, &domain.Message{
		ChatID: 1, ID: 1, Text: "/help"})

	require.NoError(t, err)
	assert.Equal(t, domain.MsgMainMenu, ms.Message)
	assert.Contains(t, buttonTexts(ms.Keyboard), domain.BtnAudioLib)
}

func TestUnknownHandlerPointsAtStart(t *testing.T) {
	ms := &MockTextSender{}
	handler := NewUnknownHandler(ms)

	err := handler.Respond(context.Background(), time.Minute, &domain.Message{
		ChatID: 1, ID: 1, Text: "/frobnicate"})

	require.NoError(t, err)
	assert.Equal(t, domain.MsgUnknownCommand, ms.Message)
}
