package webhook

import (
	"context"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"
)

const keepAliveInterval = 10 * time.Minute

// KeepAlive pings the public URL on an interval so free tier hosts do
// not idle the service out. Runs in the background until the context
// is cancelled.
func KeepAlive(ctx context.Context, externalURL string) {
	go func() {
		client := &http.Client{Timeout: 30 * time.Second}
		ticker := time.NewTicker(keepAliveInterval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				selfPing(ctx, client, externalURL+"/ping")
			case <-ctx.Done():
				return
			}
		}
	}()
}

func selfPing(ctx context.Context, client *http.Client, url string) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return
	}

	res, err := client.Do(req)
	if err != nil {
		log.Ctx(ctx).Debug().Err(err).Msg("keepalive ping failed")
		return
	}
	res.Body.Close()
}
