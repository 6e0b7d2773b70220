package sender

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"sotorbot/internal/core/domain"
	"sotorbot/internal/metrics"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/rs/zerolog/log"
)

const (
	// TelegramMessageLimit keeps chunks under the platform's 4096
	// character cap with headroom for verse markers.
	TelegramMessageLimit = 4000

	ChatActionRepeatSeconds = 5

	maxSendAttempts    = 3
	initialSendBackoff = 2 * time.Second
	maxSendBackoff     = 10 * time.Second
)

// TelegramBot is the slice of the bot API the sender needs.
type TelegramBot interface {
	SendMessage(ctx context.Context, params *bot.SendMessageParams) (*models.Message, error)
	SendAudio(ctx context.Context, params *bot.SendAudioParams) (*models.Message, error)
	SendChatAction(ctx context.Context, params *bot.SendChatActionParams) (bool, error)
	EditMessageText(ctx context.Context, params *bot.EditMessageTextParams) (*models.Message, error)
	AnswerCallbackQuery(ctx context.Context, params *bot.AnswerCallbackQueryParams) (bool, error)
	GetChatMember(ctx context.Context, params *bot.GetChatMemberParams) (*models.ChatMember, error)
	SetWebhook(ctx context.Context, params *bot.SetWebhookParams) (bool, error)
}

// Telegram delivers outbound messages. Transient delivery failures are
// retried with backoff, a rate limit response pauses every send until
// the platform's retry interval has passed.
type Telegram struct {
	bot       TelegramBot
	channelID string
	metrics   *metrics.Metrics

	mutex       sync.Mutex
	pausedUntil time.Time
}

func NewTelegram(b TelegramBot, channelID string, m *metrics.Metrics) *Telegram {
	return &Telegram{bot: b, channelID: channelID, metrics: m}
}

// SendMessageReply splits long text into chunks and replies with each
// in order. Returns the ID of the last delivered message.
func (s *Telegram) SendMessageReply(ctx context.Context, message *domain.Message, text string) (int, error) {
	chunks := domain.SplitMessage(text, TelegramMessageLimit)

	var lastID int
	for _, chunk := range chunks {
		var sent *models.Message
		err := s.withRetry(ctx, "send message", func(ctx context.Context) error {
			var sendErr error
			sent, sendErr = s.bot.SendMessage(ctx, &bot.SendMessageParams{
				ChatID: message.ChatID,
				Text:   chunk,
				ReplyParameters: &models.ReplyParameters{
					MessageID: message.ID,
					ChatID:    message.ChatID,
				},
			})
			return sendErr
		})
		if err != nil {
			return 0, err
		}

		lastID = sent.ID
		s.metrics.MessagesSentTotal.Inc()
	}

	return lastID, nil
}

// SendKeyboardReply sends a message with an inline keyboard attached
// and returns the sent message ID.
func (s *Telegram) SendKeyboardReply(ctx context.Context, message *domain.Message, text string, keyboard domain.Keyboard) (int, error) {
	var sent *models.Message
	err := s.withRetry(ctx, "send keyboard", func(ctx context.Context) error {
		var sendErr error
		sent, sendErr = s.bot.SendMessage(ctx, &bot.SendMessageParams{
			ChatID:      message.ChatID,
			Text:        text,
			ReplyMarkup: inlineKeyboard(keyboard),
		})
		return sendErr
	})
	if err != nil {
		return 0, err
	}

	s.metrics.MessagesSentTotal.Inc()

	return sent.ID, nil
}

// SendAudioReply replies with a streamable audio file.
func (s *Telegram) SendAudioReply(ctx context.Context, message *domain.Message, audio domain.Audio) error {
	err := s.withRetry(ctx, "send audio", func(ctx context.Context) error {
		_, sendErr := s.bot.SendAudio(ctx, &bot.SendAudioParams{
			ChatID:    message.ChatID,
			Audio:     &models.InputFileString{Data: audio.URL},
			Title:     audio.Title,
			Performer: audio.Performer,
			ReplyParameters: &models.ReplyParameters{
				MessageID: message.ID,
				ChatID:    message.ChatID,
			},
		})
		return sendErr
	})
	if err != nil {
		return err
	}

	s.metrics.MessagesSentTotal.Inc()

	return nil
}

// AnswerCallback closes a callback query. Not retried, the query
// expires before a backoff would complete.
func (s *Telegram) AnswerCallback(ctx context.Context, callbackID string, text string, showAlert bool) error {
	_, err := s.bot.AnswerCallbackQuery(ctx, &bot.AnswerCallbackQueryParams{
		CallbackQueryID: callbackID,
		Text:            text,
		ShowAlert:       showAlert,
	})

	return err
}

// EditMessage replaces the text and keyboard of a previously sent
// message in place.
func (s *Telegram) EditMessage(ctx context.Context, chatID int64, messageID int, text string, keyboard domain.Keyboard) error {
	params := &bot.EditMessageTextParams{
		ChatID:    chatID,
		MessageID: messageID,
		Text:      text,
	}
	if keyboard != nil {
		params.ReplyMarkup = inlineKeyboard(keyboard)
	}

	return s.withRetry(ctx, "edit message", func(ctx context.Context) error {
		_, editErr := s.bot.EditMessageText(ctx, params)
		return editErr
	})
}

// Broadcast posts to the configured channel and returns the message ID.
func (s *Telegram) Broadcast(ctx context.Context, text string) (int, error) {
	if s.channelID == "" {
		return 0, fmt.Errorf("%w: no channel configured", domain.ErrDeliveryFailed)
	}

	var sent *models.Message
	err := s.withRetry(ctx, "broadcast", func(ctx context.Context) error {
		var sendErr error
		sent, sendErr = s.bot.SendMessage(ctx, &bot.SendMessageParams{
			ChatID: s.channelID,
			Text:   text,
		})
		return sendErr
	})
	if err != nil {
		return 0, err
	}

	s.metrics.MessagesSentTotal.Inc()

	return sent.ID, nil
}

// NotifyAndReturnError reports the failure to the chat and hands the
// original error back so callers can return it unchanged.
func (s *Telegram) NotifyAndReturnError(ctx context.Context, err error, message *domain.Message) error {
	log.Ctx(ctx).Error().Err(err).Int64("chatId", message.ChatID).Msg("notifying chat about error")

	if _, sendErr := s.SendMessageReply(ctx, message, domain.MsgHandlerFailed); sendErr != nil {
		return errors.Join(err, sendErr)
	}

	return err
}

// SendChatAction repeats the action until the context is cancelled.
// Telegram drops an action indicator after a few seconds, handlers run
// this in a goroutine for the duration of their work.
func (s *Telegram) SendChatAction(ctx context.Context, chatID int64, action domain.Action) {
	log.Ctx(ctx).Debug().Int64("chatId", chatID).Msg("starting action routine")
	for {
		select {
		case <-ctx.Done():
			log.Ctx(ctx).Debug().Int64("chatId", chatID).Msg("done, stopping action routine")
			return
		default:
		}

		_, err := s.bot.SendChatAction(ctx, &bot.SendChatActionParams{
			ChatID: chatID,
			Action: models.ChatAction(action),
		})
		if err != nil {
			log.Ctx(ctx).Err(err).Msg("error sending chat action")
			return
		}

		time.Sleep(ChatActionRepeatSeconds * time.Second)
	}
}

// withRetry runs one send call with bounded retries. Rate limit
// responses pause all sends on this sender until the interval the
// platform asked for has passed.
func (s *Telegram) withRetry(ctx context.Context, description string, call func(context.Context) error) error {
	backoff := initialSendBackoff

	var lastErr error
	for attempt := 1; attempt <= maxSendAttempts; attempt++ {
		if err := s.waitForPause(ctx); err != nil {
			return err
		}

		err := call(ctx)
		if err == nil {
			if attempt > 1 {
				log.Ctx(ctx).Info().Str("call", description).Int("attempt", attempt).Msg("delivered after retry")
			}
			return nil
		}

		var tooMany *bot.TooManyRequestsError
		if errors.As(err, &tooMany) {
			retryAfter := time.Duration(tooMany.RetryAfter) * time.Second
			s.pause(retryAfter)
			s.metrics.SendRetriesTotal.Inc()
			log.Ctx(ctx).Warn().Str("call", description).Dur("retryAfter", retryAfter).Msg("rate limited, pausing sends")
			lastErr = err
			continue
		}

		if isPermanentSendError(err) {
			return fmt.Errorf("%s: %w", description, err)
		}

		lastErr = err
		if attempt < maxSendAttempts {
			s.metrics.SendRetriesTotal.Inc()
			log.Ctx(ctx).Warn().Err(err).Str("call", description).Int("attempt", attempt).Dur("backoff", backoff).Msg("delivery failed, retrying")

			select {
			case <-time.After(backoff):
			case <-ctx.Done():
				return ctx.Err()
			}

			backoff = min(backoff*2, maxSendBackoff)
		}
	}

	return fmt.Errorf("%w: %s: %w", domain.ErrDeliveryFailed, description, lastErr)
}

func (s *Telegram) waitForPause(ctx context.Context) error {
	s.mutex.Lock()
	wait := time.Until(s.pausedUntil)
	s.mutex.Unlock()

	if wait <= 0 {
		return nil
	}

	log.Ctx(ctx).Debug().Dur("wait", wait).Msg("sender paused, waiting")

	select {
	case <-time.After(wait):
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *Telegram) pause(d time.Duration) {
	if d <= 0 {
		d = time.Second
	}

	s.mutex.Lock()
	defer s.mutex.Unlock()

	if until := time.Now().Add(d); until.After(s.pausedUntil) {
		s.pausedUntil = until
	}
}

// isPermanentSendError reports whether retrying cannot help.
func isPermanentSendError(err error) bool {
	return errors.Is(err, bot.ErrorBadRequest) ||
		errors.Is(err, bot.ErrorUnauthorized) ||
		errors.Is(err, bot.ErrorForbidden) ||
		errors.Is(err, bot.ErrorNotFound)
}

func inlineKeyboard(keyboard domain.Keyboard) *models.InlineKeyboardMarkup {
	rows := make([][]models.InlineKeyboardButton, 0, len(keyboard))
	for _, row := range keyboard {
		buttons := make([]models.InlineKeyboardButton, 0, len(row))
		for _, b := range row {
			button := models.InlineKeyboardButton{
				Text:         b.Text,
				URL:          b.URL,
				CallbackData: b.CallbackData,
			}
			if b.WebAppURL != "" {
				button.WebApp = &models.WebAppInfo{URL: b.WebAppURL}
			}
			buttons = append(buttons, button)
		}
		rows = append(rows, buttons)
	}

	return &models.InlineKeyboardMarkup{InlineKeyboard: rows}
}
