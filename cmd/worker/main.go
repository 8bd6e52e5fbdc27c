package main

import (
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/ThreeDotsLabs/watermill/message"

	"github.com/ghuser/orderdesk/pkg/app"
	"github.com/ghuser/orderdesk/pkg/cache"
	"github.com/ghuser/orderdesk/pkg/config"
	"github.com/ghuser/orderdesk/pkg/database"
	"github.com/ghuser/orderdesk/pkg/events"
	"github.com/ghuser/orderdesk/pkg/logger"
	"github.com/ghuser/orderdesk/pkg/telemetry"
	"github.com/ghuser/orderdesk/pkg/workflows"
	orderevents "github.com/ghuser/orderdesk/services/order/domain/events"
	httpgw "github.com/ghuser/orderdesk/services/order/infrastructure/gateways"
	"github.com/ghuser/orderdesk/services/order/infrastructure/persistence/postgres"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	if err := config.ValidateForProduction(cfg); err != nil {
		slog.Error("production config validation failed", "error", err)
		os.Exit(1)
	}

	log := logger.New(cfg)

	ctx := context.Background()

	otelShutdown, _, err := telemetry.Setup(ctx, cfg)
	if err != nil {
		log.Error("failed to setup otel", "error", err)
		os.Exit(1)
	}
	defer otelShutdown(ctx) //nolint:errcheck

	if err := telemetry.SetupSentry(cfg); err != nil {
		log.Warn("failed to setup sentry, continuing without crash reporting", "error", err)
	}
	defer telemetry.SentryFlush()

	pool, err := database.NewPool(ctx, cfg.DatabaseURL, log)
	if err != nil {
		log.Error("failed to connect to database", "error", err)
		os.Exit(1) //nolint:gocritic
	}
	defer pool.Close()
	log.Info("database pool connected")

	eventBus, err := events.NewEventBus(cfg, log)
	if err != nil {
		log.Error("failed to setup event bus", "error", err)
		os.Exit(1) //nolint:gocritic
	}
	defer eventBus.Close() //nolint:errcheck

	redisClient, err := cache.NewRedisClient(cfg)
	if err != nil {
		log.Error("failed to connect to redis", "error", err)
		os.Exit(1) //nolint:gocritic
	}
	defer redisClient.Close() //nolint:errcheck
	log.Info("redis connected")

	appConfig := &app.Application{
		Cfg:      cfg,
		Db:       pool,
		Logger:   log,
		EventBus: eventBus,
		Redis:    redisClient,
	}

	// Payment watchdog runs only when a Temporal cluster is configured;
	// without one, unpaid orders rely on staff canceling them manually.
	if cfg.TemporalHostPort != "" {
		temporalClient, err := workflows.NewTemporalClient(ctx, cfg.TemporalHostPort, cfg.TemporalNamespace, log)
		if err != nil {
			log.Error("failed to connect to temporal", "error", err)
			os.Exit(1) //nolint:gocritic
		}
		defer temporalClient.Close()
		appConfig.TemporalClient = temporalClient

		httpClient := httpgw.NewClient(cfg.GatewayTimeout)
		w := workflows.NewWorker(temporalClient, &workflows.Activities{
			Repo:     postgres.NewOrderRepository(pool, eventBus),
			Payments: httpgw.NewPaymentGateway(cfg.PaymentServiceURL, httpClient),
		})
		if err := w.Start(); err != nil {
			log.Error("failed to start temporal worker", "error", err)
			os.Exit(1) //nolint:gocritic
		}
		defer w.Stop()
		log.Info("temporal worker started", "task_queue", workflows.TaskQueue)
	}

	if err := registerSubscribers(ctx, appConfig); err != nil {
		log.Error("failed to register subscribers", "error", err)
		os.Exit(1) //nolint:gocritic
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down worker...")
	// EventBus.Close() (via defer) waits up to 30s for in-flight handlers.
	log.Info("worker stopped")
}

// registerSubscribers wires all domain event handlers.
// Add new topics here as more services publish events.
func registerSubscribers(ctx context.Context, a *app.Application) error {
	topics := map[string]func(context.Context, *message.Message) error{
		orderevents.TopicOrderCreated:       handleOrderCreated(a),
		orderevents.TopicOrderStatusChanged: handleOrderStatusChanged(a),
	}

	for topic, handler := range topics {
		errCh, err := a.EventBus.Subscribe(ctx, topic, handler)
		if err != nil {
			return err
		}

		// Drain subscriber errors in background so the channel never blocks.
		go func(topic string) {
			for err := range errCh {
				a.Logger.ErrorContext(ctx, "subscriber error", "topic", topic, "error", err)
			}
		}(topic)
	}

	a.Logger.Info("event subscribers registered",
		"topics", []string{orderevents.TopicOrderCreated, orderevents.TopicOrderStatusChanged})
	return nil
}

// handleOrderCreated returns a handler for order.created events. Handlers
// must be idempotent since the EventBus retries up to 3 times on failure.
// New orders are announced for the kitchen dashboard feed, and a payment
// watchdog is started when Temporal is configured.
func handleOrderCreated(a *app.Application) func(context.Context, *message.Message) error {
	return func(ctx context.Context, msg *message.Message) error {
		var evt orderevents.OrderCreatedEvent
		if err := json.Unmarshal(msg.Payload, &evt); err != nil {
			return err
		}

		a.Logger.InfoContext(ctx, "order received",
			"order_id", evt.OrderID,
			"amount", evt.Amount,
			"items", evt.ItemCount,
		)

		if a.TemporalClient != nil {
			// Duplicate starts are safe: the workflow id embeds the order id.
			if err := a.TemporalClient.StartPaymentWatchdog(ctx, evt.OrderID); err != nil {
				return err
			}
		}
		return nil
	}
}

// handleOrderStatusChanged returns a handler for order.status_changed events.
// Drops the order's cache entry so reads never serve a stale status, then
// announces the change.
func handleOrderStatusChanged(a *app.Application) func(context.Context, *message.Message) error {
	orderCache := cache.NewOrderCache(a.Redis)
	return func(ctx context.Context, msg *message.Message) error {
		var evt orderevents.OrderStatusChangedEvent
		if err := json.Unmarshal(msg.Payload, &evt); err != nil {
			return err
		}

		if err := orderCache.Delete(ctx, evt.OrderID); err != nil {
			// Invalidation is best-effort; the entry expires on its own TTL.
			a.Logger.WarnContext(ctx, "cache invalidation failed for order.status_changed",
				"order_id", evt.OrderID, "error", err)
		}

		a.Logger.InfoContext(ctx, "order status changed",
			"order_id", evt.OrderID,
			"from", evt.FromStatus,
			"to", evt.ToStatus,
		)
		return nil
	}
}
