package commands

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"sotorbot/internal/core/domain"
	"sotorbot/internal/core/port"
)

// SubscriptionChecker reports whether a user may use the bot.
type SubscriptionChecker interface {
	IsSubscribed(ctx context.Context, userID int64) bool
}

// SubscriptionHandler rechecks channel membership when the user presses
// the verify button.
type SubscriptionHandler struct {
	checker SubscriptionChecker
	editor  port.CallbackSender
	links   Links
	prefix  string
}

func NewSubscriptionHandler(checker SubscriptionChecker, editor port.CallbackSender, links Links) *SubscriptionHandler {
	return &SubscriptionHandler{
		checker: checker,
		editor:  editor,
		links:   links,
		prefix:  "check_subscription",
	}
}

func (h *SubscriptionHandler) GetPrefix() string {
	return h.prefix
}

func (h *SubscriptionHandler) Respond(ctx context.Context, timeout time.Duration, callback *domain.Callback) error {
	l := log.With().Str("callback", callback.Data).Int64("userId", callback.UserID).Logger()
	l.Info().Msg("handling callback")

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	_ = h.editor.AnswerCallback(ctx, callback.ID, "", false)

	if h.checker.IsSubscribed(ctx, callback.UserID) {
		l.Info().Msg("subscription verified")
		return h.editor.EditMessage(ctx, callback.ChatID, callback.MessageID, domain.MsgSubscriptionVerified, MainMenu(h.links))
	}

	keyboard := domain.Keyboard{
		{{Text: domain.BtnSubscribe, URL: h.links.ChannelURL()}},
		{{Text: domain.BtnVerifyAgain, CallbackData: "check_subscription"}},
	}

	// Pressing verify twice without subscribing edits to identical
	// content, which the platform rejects. Not a failure worth surfacing.
	if err := h.editor.EditMessage(ctx, callback.ChatID, callback.MessageID, domain.MsgSubscriptionMissing, keyboard); err != nil {
		l.Debug().Err(err).Msg("subscription prompt unchanged")
	}

	return nil
}
