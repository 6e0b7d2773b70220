package domain

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
)

type CallbackResponder interface {
	Respond(ctx context.Context, timeout time.Duration, callback *Callback) error
	GetPrefix() string
}

// CallbackRegistry routes inline button callback data to handlers by
// prefix. Data like "surah_12" matches the handler registered for
// "surah_"; the longest registered prefix wins, so "reciters_page_"
// takes precedence over "reciters_".
type CallbackRegistry struct {
	handlers map[string]CallbackResponder
}

func (c *CallbackRegistry) Register(handler CallbackResponder) {
	if c.handlers == nil {
		c.handlers = make(map[string]CallbackResponder)
	}

	log.Info().Str("prefix", handler.GetPrefix()).Msg("adding callback handler to registry")
	c.handlers[handler.GetPrefix()] = handler
}

func (c *CallbackRegistry) Match(data string) (CallbackResponder, error) {
	var best CallbackResponder
	bestLen := -1

	for prefix, handler := range c.handlers {
		if strings.HasPrefix(data, prefix) && len(prefix) > bestLen {
			best = handler
			bestLen = len(prefix)
		}
	}

	if best == nil {
		return nil, ErrCallbackNotFound
	}

	return best, nil
}
