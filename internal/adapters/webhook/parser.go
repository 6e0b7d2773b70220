package webhook

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-telegram/bot/models"

	"sotorbot/internal/core/domain"
)

// MalformedPayloadError reports a request body that cannot be a
// Telegram update.
type MalformedPayloadError struct {
	Reason string
}

func (e *MalformedPayloadError) Error() string {
	return fmt.Sprintf("malformed update payload: %s", e.Reason)
}

// ParseUpdate converts a raw webhook body into a domain update.
// Supported kinds fill exactly one of Message or Callback. Valid but
// unsupported kinds, edits, channel posts and media without text
// included, return an update with neither set so the caller can ack
// and move on.
func ParseUpdate(body []byte) (*domain.Update, error) {
	var raw models.Update
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, &MalformedPayloadError{Reason: "invalid JSON"}
	}

	if raw.ID == 0 {
		return nil, &MalformedPayloadError{Reason: "missing update id"}
	}

	update := &domain.Update{ID: raw.ID}

	if msg := raw.Message; msg != nil && msg.From != nil && msg.Text != "" {
		update.Message = &domain.Message{
			ID:        msg.ID,
			ChatID:    msg.Chat.ID,
			UserID:    msg.From.ID,
			Username:  msg.From.Username,
			FirstName: msg.From.FirstName,
			Text:      msg.Text,
			Date:      time.Unix(int64(msg.Date), 0),
		}
		return update, nil
	}

	if cb := raw.CallbackQuery; cb != nil && cb.Data != "" && cb.Message.Message != nil {
		update.Callback = &domain.Callback{
			ID:        cb.ID,
			Data:      cb.Data,
			UserID:    cb.From.ID,
			ChatID:    cb.Message.Message.Chat.ID,
			MessageID: cb.Message.Message.ID,
			FirstName: cb.From.FirstName,
		}
		return update, nil
	}

	return update, nil
}
