package port

import (
	"context"

	"sotorbot/internal/core/domain"
)

type TextSender interface {
	// SendMessageReply sends a reply to the given message and returns the sent message ID.
	// Long texts are split into multiple messages; the last sent ID is returned.
	SendMessageReply(ctx context.Context, message *domain.Message, text string) (int, error)
	// SendKeyboardReply sends a reply carrying an inline keyboard.
	SendKeyboardReply(ctx context.Context, message *domain.Message, text string, keyboard domain.Keyboard) (int, error)
	// SendChatAction repeats a chat action (typing, uploading) until the context ends.
	SendChatAction(ctx context.Context, chatID int64, action domain.Action)
	// NotifyAndReturnError sends an error notification based on the provided message context and returns the error.
	NotifyAndReturnError(ctx context.Context, err error, message *domain.Message) error
}

type AudioSender interface {
	// SendAudioReply sends an audio attachment by URL in response to the provided message.
	SendAudioReply(ctx context.Context, message *domain.Message, audio domain.Audio) error
}

type CallbackSender interface {
	// AnswerCallback acknowledges a pressed inline button, optionally with a toast or alert.
	AnswerCallback(ctx context.Context, callbackID string, text string, showAlert bool) error
	// EditMessage replaces the text and keyboard of a previously sent message.
	EditMessage(ctx context.Context, chatID int64, messageID int, text string, keyboard domain.Keyboard) error
}

type Broadcaster interface {
	// Broadcast sends a message to the configured channel and returns the sent message ID.
	Broadcast(ctx context.Context, text string) (int, error)
}

type MembershipChecker interface {
	// IsChannelMember reports whether the user belongs to the given channel.
	IsChannelMember(ctx context.Context, channelID string, userID int64) (bool, error)
}
