package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"
	_ "time/tzdata"

	natsio "github.com/nats-io/nats.go"

	"restock-srv/config"
	"restock-srv/config/postgre"
	alertNATS "restock-srv/internal/alert/delivery/nats"
	alertRepo "restock-srv/internal/alert/repository/postgre"
	alertUC "restock-srv/internal/alert/usecase"
	"restock-srv/internal/dispatch"
	"restock-srv/internal/dispatch/channel"
	dispatchUC "restock-srv/internal/dispatch/usecase"
	"restock-srv/internal/httpserver"
	"restock-srv/internal/model"
	"restock-srv/internal/plan"
	"restock-srv/internal/quiethours"
	"restock-srv/internal/scheduler"
	userRepo "restock-srv/internal/user/repository/postgre"
	webhookRepo "restock-srv/internal/webhook/repository/postgre"
	webhookUC "restock-srv/internal/webhook/usecase"
	"restock-srv/pkg/discord"
	"restock-srv/pkg/encrypter"
	"restock-srv/pkg/log"
	"restock-srv/pkg/redis"
)

const shutdownTimeout = 15 * time.Second

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Failed to load config: ", err)
		os.Exit(1)
	}

	// Initialize logger
	logger := log.Init(log.ZapConfig{
		Level:        cfg.Logger.Level,
		Mode:         cfg.Logger.Mode,
		Encoding:     cfg.Logger.Encoding,
		ColorEnabled: cfg.Logger.ColorEnabled,
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger); err != nil {
		logger.Errorf(context.Background(), "restock-srv stopped: %v", err)
		os.Exit(1)
	}
	logger.Info(context.Background(), "restock-srv stopped")
}

func run(ctx context.Context, cfg *config.Config, logger log.Logger) error {
	// Initialize encrypter
	enc, err := encrypter.New(cfg.Encrypter.Key)
	if err != nil {
		return fmt.Errorf("encrypter: %w", err)
	}

	// Initialize PostgreSQL
	db, err := postgre.Connect(ctx, cfg.Postgres)
	if err != nil {
		return err
	}
	defer func() {
		if err := postgre.Disconnect(); err != nil {
			logger.Errorf(context.Background(), "Failed to close PostgreSQL: %v", err)
		}
	}()
	logger.Infof(ctx, "PostgreSQL connected successfully to %s:%d/%s", cfg.Postgres.Host, cfg.Postgres.Port, cfg.Postgres.DBName)

	// Initialize Redis (optional)
	var redisClient redis.IRedis
	if cfg.Redis.Host != "" {
		redisClient, err = redis.New(redis.RedisConfig{
			Host:     cfg.Redis.Host,
			Port:     cfg.Redis.Port,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			return err
		}
		defer redisClient.Close()
		logger.Infof(ctx, "Redis connected successfully to %s:%d", cfg.Redis.Host, cfg.Redis.Port)
	} else {
		logger.Warn(ctx, "REDIS_HOST not set: web push disabled, key locks are process-local")
	}

	// Initialize Discord ops reporting (optional)
	var discordClient discord.IDiscord
	if cfg.Discord.WebhookID != "" {
		discordClient, err = discord.New(logger, cfg.Discord.WebhookID, cfg.Discord.WebhookToken, discord.DefaultConfig())
		if err != nil {
			return fmt.Errorf("discord: %w", err)
		}
		defer discordClient.Close()
	}

	// Repositories
	alerts := alertRepo.New(logger, db)
	users := userRepo.New(logger, db)
	subscriptions := webhookRepo.New(logger, db, enc)

	// Webhook queue
	webhooks := webhookUC.New(logger, subscriptions, webhookUC.Options{
		DefaultPolicy: model.RetryPolicy{
			MaxRetries:        cfg.Webhook.MaxRetries,
			BaseDelay:         cfg.Webhook.BaseDelay,
			BackoffMultiplier: cfg.Webhook.BackoffMultiplier,
		},
		Timeout:      cfg.Webhook.Timeout,
		PollInterval: cfg.Webhook.PollInterval,
		SendRate:     cfg.Webhook.SendRate,
		SendBurst:    cfg.Webhook.SendBurst,
		Production:   cfg.IsProduction(),
	})
	// The consumer outlives the signal so deliveries queued during HTTP shutdown still go out;
	// webhooks.Shutdown below stops it.
	webhooks.Start(context.Background())

	// Delivery dispatcher. No email or SMS provider is wired in this service; the dispatcher
	// warns about them at startup.
	channels := []dispatch.Channel{
		channel.NewWebPush(redisClient),
		channel.NewEmail(nil),
		channel.NewSMS(nil),
		channel.NewDiscord(logger, cfg.Dispatch.ChannelTimeout),
		channel.NewWebhook(webhooks),
	}
	dispatcher := dispatchUC.New(logger, alerts, dispatchUC.Options{ChannelTimeout: cfg.Dispatch.ChannelTimeout}, channels...)

	// Alert coordinator
	quiet := quiethours.New()
	coordinator := alertUC.New(logger, alertUC.Deps{
		Repo:     alerts,
		UserRepo: users,
		Plan: plan.New(plan.Options{
			WeightFree:      cfg.Plan.WeightFree,
			WeightPro:       cfg.Plan.WeightPro,
			WeightPremium:   cfg.Plan.WeightPremium,
			PremiumMarkers:  cfg.Plan.PremiumMarkers,
			ProMarkers:      cfg.Plan.ProMarkers,
			PremiumPriceIDs: cfg.Plan.PremiumPriceIDs,
			ProPriceIDs:     cfg.Plan.ProPriceIDs,
		}),
		QuietHours: quiet,
		Dispatcher: dispatcher,
		Redis:      redisClient,
	}, alertUC.Options{
		DedupWindow:     cfg.Alert.DedupWindow,
		RateLimit:       cfg.Alert.RateLimitPerHour,
		RateLimitWindow: cfg.Alert.RateLimitWindow,
		SweepBatch:      cfg.Alert.SweepBatch,
		LockTTL:         cfg.Alert.LockTTL,
	})

	// Due-alert sweep
	sweeper, err := scheduler.New(logger, coordinator, scheduler.Options{Spec: cfg.Alert.SweepSpec})
	if err != nil {
		return err
	}
	if err := sweeper.Start(); err != nil {
		return err
	}

	// NATS ingestion (optional)
	var consumer alertNATS.Consumer
	if cfg.NATS.URL != "" {
		nc, err := connectNATS(ctx, cfg.NATS.URL, logger)
		if err != nil {
			return err
		}
		defer nc.Close()

		consumer = alertNATS.New(logger, nc, coordinator, alertNATS.Options{
			Subject: cfg.NATS.Subject,
			Queue:   cfg.NATS.Queue,
		})
		if err := consumer.Start(); err != nil {
			return err
		}
	}

	// HTTP server
	srv, err := httpserver.New(logger, httpserver.Config{
		Host:        cfg.HTTPServer.Host,
		Port:        cfg.HTTPServer.Port,
		Mode:        cfg.HTTPServer.Mode,
		InternalKey: cfg.InternalKey,
		AlertUC:     coordinator,
		WebhookUC:   webhooks,
		QuietHours:  quiet,
		DB:          db,
		Redis:       redisClient,
		Discord:     discordClient,
	})
	if err != nil {
		return err
	}
	runErr := srv.Run(ctx)

	// Graceful shutdown: stop intake first, then drain background work.
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if consumer != nil {
		if err := consumer.Shutdown(shutdownCtx); err != nil {
			logger.Errorf(shutdownCtx, "NATS consumer shutdown error: %v", err)
		}
	}
	if err := sweeper.Stop(shutdownCtx); err != nil {
		logger.Errorf(shutdownCtx, "Scheduler shutdown error: %v", err)
	}
	if err := webhooks.Shutdown(shutdownCtx); err != nil {
		logger.Errorf(shutdownCtx, "Webhook queue shutdown error: %v", err)
	}
	return runErr
}

func connectNATS(ctx context.Context, url string, logger log.Logger) (*natsio.Conn, error) {
	nc, err := natsio.Connect(url,
		natsio.Name("restock-srv"),
		natsio.ReconnectWait(2*time.Second),
		natsio.MaxReconnects(-1),
		natsio.DisconnectErrHandler(func(_ *natsio.Conn, err error) {
			if err != nil {
				logger.Warnf(context.Background(), "NATS disconnected: %v", err)
			}
		}),
		natsio.ReconnectHandler(func(c *natsio.Conn) {
			logger.Infof(context.Background(), "NATS reconnected to %s", c.ConnectedUrl())
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}
	logger.Infof(ctx, "NATS connected successfully to %s", nc.ConnectedUrl())
	return nc, nil
}
