package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sotorbot/internal/adapters/generator"
	"sotorbot/internal/adapters/quran"
	"sotorbot/internal/adapters/sender"
	"sotorbot/internal/adapters/webhook"
	"sotorbot/internal/config"
	"sotorbot/internal/core/domain"
	"sotorbot/internal/core/domain/commands"
	"sotorbot/internal/core/port"
	"sotorbot/internal/core/service"
	"sotorbot/internal/metrics"
	"syscall"

	"github.com/go-telegram/bot"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const openRouterModel = "google/gemini-2.0-flash-001"

func main() {
	log.Info().Msg("starting sotorbot...")

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("could not load config")
	}

	var logLevel zerolog.Level

	switch cfg.LogLevel {
	case "debug":
		logLevel = zerolog.DebugLevel
	case "warn":
		logLevel = zerolog.WarnLevel
	case "error":
		logLevel = zerolog.ErrorLevel
	default:
		logLevel = zerolog.InfoLevel
	}

	zerolog.SetGlobalLevel(logLevel)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	ctx = log.Logger.WithContext(ctx)

	b, err := bot.New(cfg.BotToken)
	if err != nil {
		log.Panic().Err(err).Msg("failed initializing telegram bot")
	}

	m := metrics.NewMetrics()
	s := sender.NewTelegram(b, cfg.ChannelID, m)
	library := quran.NewClient(quran.DefaultQuranAPIBaseURL, quran.DefaultMP3QuranBaseURL, m)

	var textGenerator port.TextGenerator

	if cfg.AIEnabled() {
		switch cfg.AIProvider {
		case config.ProviderOpenRouter:
			textGenerator = generator.NewOpenRouter(cfg.OpenRouterAPIKey, openRouterModel,
				domain.SearchSystemPrompt, cfg.AITimeout, m)
		default:
			textGenerator = generator.NewGemini(generator.DefaultGeminiBaseURL, cfg.GeminiAPIKey,
				cfg.GeminiModel, domain.SearchSystemPrompt, cfg.AITimeout, m)
		}
	} else {
		log.Warn().Msg("no AI provider key configured, search is disabled")
	}

	links := commands.Links{
		ChannelUsername:   cfg.ChannelUsername,
		DeveloperUsername: cfg.DeveloperUsername,
		ExternalURL:       cfg.ExternalURL,
	}

	gate := service.NewChannelGate(s, s, cfg.ChannelID, cfg.ChannelUsername)
	searchHandler := commands.NewSearchHandler(textGenerator, s, s)

	commandRegistry := &domain.CommandRegistry{}
	commandRegistry.Register(commands.NewStartHandler(s, links))
	commandRegistry.Register(commands.NewHelpHandler(s, links))
	commandRegistry.Register(commands.NewSurahHandler(library, s))
	commandRegistry.Register(commands.NewPageHandler(library, s))
	commandRegistry.Register(commands.NewAudioHandler(library, s))
	commandRegistry.Register(commands.NewRadioHandler(s, links))
	commandRegistry.Register(searchHandler)

	callbackRegistry := &domain.CallbackRegistry{}
	callbackRegistry.Register(commands.NewMenuHandler(s, links))
	callbackRegistry.Register(commands.NewBrowseHandler(library, s, "browse_quran_text"))
	callbackRegistry.Register(commands.NewBrowseHandler(library, s, "quran_page_"))
	callbackRegistry.Register(commands.NewSurahCardHandler(library, s))
	callbackRegistry.Register(commands.NewReadSurahHandler(library, s, "read_surah_"))
	callbackRegistry.Register(commands.NewReadSurahHandler(library, s, "continue_surah_"))
	callbackRegistry.Register(commands.NewPageNavHandler(library, s))
	callbackRegistry.Register(commands.NewAudioMenuHandler(library, s, "audio_menu"))
	callbackRegistry.Register(commands.NewAudioMenuHandler(library, s, "audio_page_"))
	callbackRegistry.Register(commands.NewRecitersHandler(library, s, "audio_surah_"))
	callbackRegistry.Register(commands.NewRecitersHandler(library, s, "reciters_"))
	callbackRegistry.Register(commands.NewRecitersHandler(library, s, "reciters_page_"))
	callbackRegistry.Register(commands.NewPlayAudioHandler(library, s, s, s))
	callbackRegistry.Register(commands.NewSearchIntroHandler(s))
	callbackRegistry.Register(commands.NewSubscriptionHandler(gate, s, links))

	dispatcher := service.NewDispatcher(service.DispatcherConfig{
		Commands:  commandRegistry,
		Callbacks: callbackRegistry,
		FreeText:  searchHandler,
		Fallback:  commands.NewUnknownHandler(s),
		Gate:      gate,
		Sender:    s,
		Answerer:  s,
		Metrics:   m,
		Timeout:   cfg.HandlerTimeout,
	})

	if cfg.ExternalURL != "" {
		err = s.RegisterWebhook(ctx, cfg.WebhookURL(), cfg.WebhookSecret)
		if err != nil {
			log.Panic().Err(err).Msg("failed registering telegram webhook")
		}

		webhook.KeepAlive(ctx, cfg.ExternalURL)
	} else {
		log.Warn().Msg("no external URL configured, skipping webhook registration")
	}

	if cfg.SubscriptionGated() {
		broadcaster, err := service.NewVerseBroadcaster(library, s, m, cfg.BroadcastCron)
		if err != nil {
			log.Panic().Err(err).Msg("failed initializing verse broadcaster")
		}

		broadcaster.Start(ctx)
	}

	srv := webhook.NewServer(webhook.ServerConfig{
		Addr:       fmt.Sprintf(":%d", cfg.Port),
		Secret:     cfg.WebhookSecret,
		Dispatcher: dispatcher,
		Metrics:    m,
	})

	if err := srv.Run(ctx); err != nil {
		log.Fatal().Err(err).Msg("webhook server failed")
	}
}
