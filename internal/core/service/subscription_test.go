package service

import (
	"context"
	"errors"
	"testing"

	"sotorbot/internal/core/domain"

	"github.com/stretchr/testify/assert"
)

type mockTextSender struct {
	sendCalled    bool
	sendReplies   []string
	sendError     error
	keyboards     []domain.Keyboard
	keyboardTexts []string
	keyboardError error
}

func (m *mockTextSender) SendChatAction(_ context.Context, _ int64, _ domain.Action) {
	panic("implement me")
}

func (m *mockTextSender) NotifyAndReturnError(_ context.Context, _ error, _ *domain.Message) error {
	panic("implement me")
}

func (m *mockTextSender) SendMessageReply(_ context.Context, _ *domain.Message, text string) (int, error) {
	m.sendCalled = true
	m.sendReplies = append(m.sendReplies, text)
	if m.sendError != nil {
		return 0, m.sendError
	}
	return 1, nil
}

func (m *mockTextSender) SendKeyboardReply(_ context.Context, _ *domain.Message, text string, keyboard domain.Keyboard) (int, error) {
	m.sendCalled = true
	m.keyboardTexts = append(m.keyboardTexts, text)
	m.keyboards = append(m.keyboards, keyboard)
	return 1, m.keyboardError
}

type mockMembershipChecker struct {
	member    bool
	err       error
	channelID string
	userID    int64
}

func (m *mockMembershipChecker) IsChannelMember(_ context.Context, channelID string, userID int64) (bool, error) {
	m.channelID = channelID
	m.userID = userID
	return m.member, m.err
}

func TestChannelGateRequire(t *testing.T) {
	tests := []struct {
		name       string
		channelID  string
		member     bool
		checkErr   error
		want       bool
		expectSend bool
	}{
		{
			name:      "empty channel disables gate",
			channelID: "",
			want:      true,
		},
		{
			name:      "subscribed user passes",
			channelID: "@quran_channel",
			member:    true,
			want:      true,
		},
		{
			name:       "unsubscribed user gets join prompt",
			channelID:  "@quran_channel",
			member:     false,
			want:       false,
			expectSend: true,
		},
		{
			name:       "lookup error treated as not subscribed",
			channelID:  "@quran_channel",
			checkErr:   errors.New("chat not found"),
			want:       false,
			expectSend: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			checker := &mockMembershipChecker{member: tt.member, err: tt.checkErr}
			sender := &mockTextSender{}
			gate := NewChannelGate(checker, sender, tt.channelID, "quran_channel")

			msg := &domain.Message{ID: 1, ChatID: 55, UserID: 77}
			got := gate.Require(context.Background(), msg)

			assert.Equal(t, tt.want, got)
			if tt.expectSend {
				assert.True(t, sender.sendCalled)
				assert.Equal(t, domain.MsgSubscriptionRequired, sender.keyboardTexts[0])
				assert.NotEmpty(t, sender.keyboards[0])
			} else {
				assert.False(t, sender.sendCalled)
			}
		})
	}
}

func TestChannelGatePassesLookupArguments(t *testing.T) {
	checker := &mockMembershipChecker{member: true}
	gate := NewChannelGate(checker, &mockTextSender{}, "@quran_channel", "quran_channel")

	assert.True(t, gate.IsSubscribed(context.Background(), 901))
	assert.Equal(t, "@quran_channel", checker.channelID)
	assert.Equal(t, int64(901), checker.userID)
}

func TestChannelGateJoinKeyboard(t *testing.T) {
	gate := NewChannelGate(&mockMembershipChecker{}, &mockTextSender{}, "@quran_channel", "quran_channel")

	kb := gate.JoinKeyboard()

	assert.Len(t, kb, 2)
	assert.Equal(t, "https://t.me/quran_channel", kb[0][0].URL)
	assert.Equal(t, "check_subscription", kb[1][0].CallbackData)
}

func TestChannelGateRequireSurvivesSendFailure(t *testing.T) {
	checker := &mockMembershipChecker{member: false}
	sender := &mockTextSender{keyboardError: errors.New("send failed")}
	gate := NewChannelGate(checker, sender, "@quran_channel", "quran_channel")

	got := gate.Require(context.Background(), &domain.Message{ID: 1, ChatID: 55, UserID: 77})

	assert.False(t, got)
}
