package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"sotorbot/internal/core/domain"
	"sotorbot/internal/core/port"
	"sotorbot/internal/metrics"
)

// Outcome labels what happened to one update.
type Outcome string

const (
	OutcomeDispatched   Outcome = "dispatched"
	OutcomeDuplicate    Outcome = "duplicate"
	OutcomeIgnored      Outcome = "ignored"
	OutcomeUnsubscribed Outcome = "unsubscribed"
	OutcomeFailed       Outcome = "failed"
)

const (
	DefaultMaxInFlight    = 32
	DefaultHandlerTimeout = 90 * time.Second
)

// Dispatcher routes parsed updates to command, text and callback
// handlers. Handler errors and panics are contained here, a failure
// never propagates past Dispatch.
type Dispatcher struct {
	commands  *domain.CommandRegistry
	callbacks *domain.CallbackRegistry
	freeText  domain.CommandResponder
	fallback  domain.CommandResponder
	gate      SubscriptionGate
	sender    port.TextSender
	answerer  port.CallbackSender
	metrics   *metrics.Metrics
	dedup     *Deduper
	timeout   time.Duration
	sem       chan struct{}
}

type DispatcherConfig struct {
	Commands  *domain.CommandRegistry
	Callbacks *domain.CallbackRegistry
	// FreeText handles plain messages that carry no command prefix.
	FreeText domain.CommandResponder
	// Fallback handles command messages no handler is registered for.
	Fallback    domain.CommandResponder
	Gate        SubscriptionGate
	Sender      port.TextSender
	Answerer    port.CallbackSender
	Metrics     *metrics.Metrics
	Timeout     time.Duration
	MaxInFlight int
}

func NewDispatcher(cfg DispatcherConfig) *Dispatcher {
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultHandlerTimeout
	}
	if cfg.MaxInFlight <= 0 {
		cfg.MaxInFlight = DefaultMaxInFlight
	}

	return &Dispatcher{
		commands:  cfg.Commands,
		callbacks: cfg.Callbacks,
		freeText:  cfg.FreeText,
		fallback:  cfg.Fallback,
		gate:      cfg.Gate,
		sender:    cfg.Sender,
		answerer:  cfg.Answerer,
		metrics:   cfg.Metrics,
		dedup:     NewDeduper(DedupCapacity),
		timeout:   cfg.Timeout,
		sem:       make(chan struct{}, cfg.MaxInFlight),
	}
}

// Dispatch routes a single update to its handler and reports the
// outcome. Safe to call from many goroutines.
func (d *Dispatcher) Dispatch(ctx context.Context, update *domain.Update) Outcome {
	outcome := d.dispatch(ctx, update)
	d.metrics.DispatchesTotal.WithLabelValues(string(outcome)).Inc()

	return outcome
}

func (d *Dispatcher) dispatch(ctx context.Context, update *domain.Update) Outcome {
	l := log.Ctx(ctx).With().Int64("updateId", update.ID).Logger()
	ctx = l.WithContext(ctx)

	if update.Message == nil && update.Callback == nil {
		l.Debug().Msg("ignoring update without message or callback")
		return OutcomeIgnored
	}

	if !d.dedup.FirstSeen(update.ID) {
		l.Debug().Msg("skipping already processed update")
		return OutcomeDuplicate
	}

	select {
	case d.sem <- struct{}{}:
	case <-ctx.Done():
		l.Warn().Msg("dispatch cancelled while waiting for handler slot")
		return OutcomeFailed
	}
	defer func() { <-d.sem }()

	if update.Callback != nil {
		return d.dispatchCallback(ctx, update.Callback)
	}

	return d.dispatchMessage(ctx, update.Message)
}

func (d *Dispatcher) dispatchMessage(ctx context.Context, message *domain.Message) Outcome {
	l := log.Ctx(ctx)

	if !d.gate.Require(ctx, message) {
		return OutcomeUnsubscribed
	}

	handler := d.freeText
	if command := domain.ParseCommand(message.Text); command != "" {
		registered, err := d.commands.Get(command)
		if err != nil {
			l.Debug().Str("command", command).Msg("no handler registered, using fallback")
			registered = d.fallback
		}
		handler = registered
	}

	l.Info().Str("handler", handler.GetCommand()).Int64("chatId", message.ChatID).Msg("dispatching message")

	err := d.respondSafely(func() error {
		return handler.Respond(ctx, d.timeout, message)
	})
	if err != nil {
		l.Error().Err(err).Str("handler", handler.GetCommand()).Msg("handler failed")
		d.metrics.HandlerErrorsTotal.WithLabelValues(handler.GetCommand()).Inc()

		if _, sendErr := d.sender.SendMessageReply(ctx, message, domain.MsgHandlerFailed); sendErr != nil {
			l.Error().Err(sendErr).Msg("failed to send error reply")
		}

		return OutcomeFailed
	}

	return OutcomeDispatched
}

func (d *Dispatcher) dispatchCallback(ctx context.Context, callback *domain.Callback) Outcome {
	l := log.Ctx(ctx)

	handler, err := d.callbacks.Match(callback.Data)
	if err != nil {
		l.Info().Str("data", callback.Data).Msg("no callback handler, answering with notice")

		if answerErr := d.answerer.AnswerCallback(ctx, callback.ID, domain.MsgFeatureInProgress, true); answerErr != nil {
			l.Error().Err(answerErr).Msg("failed to answer callback")
			return OutcomeFailed
		}

		return OutcomeDispatched
	}

	l.Info().Str("handler", handler.GetPrefix()).Int64("chatId", callback.ChatID).Msg("dispatching callback")

	err = d.respondSafely(func() error {
		return handler.Respond(ctx, d.timeout, callback)
	})
	if err != nil {
		l.Error().Err(err).Str("handler", handler.GetPrefix()).Msg("callback handler failed")
		d.metrics.HandlerErrorsTotal.WithLabelValues(handler.GetPrefix()).Inc()

		if answerErr := d.answerer.AnswerCallback(ctx, callback.ID, domain.MsgHandlerFailed, true); answerErr != nil {
			l.Error().Err(answerErr).Msg("failed to answer callback after handler error")
		}

		return OutcomeFailed
	}

	return OutcomeDispatched
}

// respondSafely converts a handler panic into an error so one broken
// handler cannot take the receiver loop down.
func (d *Dispatcher) respondSafely(respond func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("handler panicked: %v", r)
		}
	}()

	return respond()
}
