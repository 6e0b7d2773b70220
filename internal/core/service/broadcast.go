package service

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"

	"sotorbot/internal/core/domain"
	"sotorbot/internal/core/port"
	"sotorbot/internal/metrics"
)

// VerseBroadcaster posts a random verse to the channel on a cron
// schedule.
type VerseBroadcaster struct {
	library  port.QuranLibrary
	sender   port.Broadcaster
	metrics  *metrics.Metrics
	schedule cron.Schedule
}

func NewVerseBroadcaster(library port.QuranLibrary, sender port.Broadcaster, m *metrics.Metrics, spec string) (*VerseBroadcaster, error) {
	parser := cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow)

	schedule, err := parser.Parse(spec)
	if err != nil {
		return nil, fmt.Errorf("invalid broadcast schedule %q: %w", spec, err)
	}

	return &VerseBroadcaster{
		library:  library,
		sender:   sender,
		metrics:  m,
		schedule: schedule,
	}, nil
}

// Start runs the broadcast loop in the background until the context is
// cancelled.
func (b *VerseBroadcaster) Start(ctx context.Context) {
	go func() {
		for {
			next := b.schedule.Next(time.Now())
			log.Ctx(ctx).Debug().Time("next", next).Msg("scheduled next verse broadcast")

			select {
			case <-time.After(time.Until(next)):
				if err := b.BroadcastVerse(ctx); err != nil {
					log.Ctx(ctx).Error().Err(err).Msg("daily verse broadcast failed")
				}
			case <-ctx.Done():
				log.Ctx(ctx).Debug().Msg("stopping verse broadcast loop")
				return
			}
		}
	}()
}

// BroadcastVerse picks a random verse and posts it to the channel.
func (b *VerseBroadcaster) BroadcastVerse(ctx context.Context) error {
	verse, err := b.library.RandomVerse(ctx)
	if err != nil {
		return fmt.Errorf("fetching daily verse: %w", err)
	}

	text := fmt.Sprintf(domain.MsgDailyVerse, verse.Text, verse.SurahName, verse.Number)

	messageID, err := b.sender.Broadcast(ctx, text)
	if err != nil {
		return fmt.Errorf("broadcasting daily verse: %w", err)
	}

	b.metrics.BroadcastsTotal.Inc()
	log.Ctx(ctx).Info().
		Int("messageId", messageID).
		Int("surah", verse.SurahNumber).
		Int("ayah", verse.Number).
		Msg("broadcast daily verse")

	return nil
}
