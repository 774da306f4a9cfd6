package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"nomadstay/internal/app/commands"
	availabilityapp "nomadstay/internal/app/handlers/availability"
	bookingapp "nomadstay/internal/app/handlers/booking"
	listingapp "nomadstay/internal/app/handlers/listings"
	"nomadstay/internal/app/middleware"
	appoutbox "nomadstay/internal/app/outbox"
	"nomadstay/internal/app/queries"
	"nomadstay/internal/app/uow"
	"nomadstay/internal/infra/broker/kafka"
	"nomadstay/internal/infra/config"
	mongodb "nomadstay/internal/infra/db/mongo"
	ginserver "nomadstay/internal/infra/http/gin"
	"nomadstay/internal/infra/obs"
	infraoutbox "nomadstay/internal/infra/outbox"
	"nomadstay/internal/infra/storage/memory"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("configuration load failed", "error", err)
		os.Exit(1)
	}
	logger := obs.NewLogger(cfg.Env)

	app, err := buildApplication(ctx, cfg, logger)
	if err != nil {
		logger.Error("application build failed", "error", err)
		os.Exit(1)
	}

	server := ginserver.NewServer(cfg, obs.Middleware{Logger: logger}, obs.HealthHandlers{
		Ready: app.ready,
	}, app.handlers)

	if app.worker != nil {
		go func() {
			if err := app.worker.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
				logger.Error("outbox worker stopped", "error", err)
			}
		}()
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("http shutdown failed", "error", err)
		}
	}()

	logger.Info("HTTP server starting", "addr", cfg.HTTPAddr, "storage", cfg.StorageMode)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("http server failed", "error", err)
		os.Exit(1)
	}
	if app.close != nil {
		closeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := app.close(closeCtx); err != nil {
			logger.Error("resource close failed", "error", err)
		}
		cancel()
	}
	logger.Info("HTTP server stopped")
}

type application struct {
	handlers ginserver.Handlers
	worker   *infraoutbox.Worker
	ready    func() error
	close    func(context.Context) error
}

func buildApplication(ctx context.Context, cfg config.Config, logger *slog.Logger) (application, error) {
	var (
		factory uow.Factory
		box     appoutbox.Outbox
		idStore middleware.IdempotencyStore
		app     application
	)
	app.ready = func() error { return nil }

	switch cfg.StorageMode {
	case "mongo":
		client, err := mongodb.New(cfg.MongoURI, cfg.MongoDB)
		if err != nil {
			return application{}, err
		}
		listingsRepo := mongodb.NewListingRepository(client.DB)
		factory = mongodb.Factory{
			DB:               client.DB,
			ListingsRepo:     listingsRepo,
			AvailabilityRepo: mongodb.NewAvailabilityRepository(client.DB),
			BookingRepo:      mongodb.NewBookingRepository(client.DB, listingsRepo),
		}
		store := infraoutbox.NewStore(client.DB)
		box = store
		idStore, err = mongodb.NewIdempotencyStore(ctx, client.DB, cfg.IdempotencyTTL)
		if err != nil {
			return application{}, err
		}
		producer, err := kafka.NewProducer(cfg.KafkaBrokers, nil)
		if err != nil {
			return application{}, err
		}
		app.worker = &infraoutbox.Worker{
			Store:       store,
			Producer:    producer,
			Interval:    cfg.OutboxPollInterval,
			TopicPrefix: cfg.KafkaTopicPrefix,
			Backoff:     cfg.RetryBackoff,
		}
		app.ready = func() error {
			pingCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			return client.Ping(pingCtx)
		}
		app.close = func(ctx context.Context) error {
			err := producer.Close()
			if dbErr := client.Close(ctx); dbErr != nil {
				err = errors.Join(err, dbErr)
			}
			return err
		}
	default:
		store := memory.NewStore()
		factory = memory.NewFactory(store)
		box = memory.NewOutbox(nil)
		idStore = memory.NewIdempotencyStore(cfg.IdempotencyTTL)
		logger.Info("running on in-memory storage; data will not survive restarts")
		if path := os.Getenv("LISTINGS_FIXTURES"); path != "" {
			if err := loadListingFixtures(ctx, factory, path, logger); err != nil {
				logger.Warn("listing fixtures load failed", "error", err, "path", path)
			}
		}
	}

	commandBus := commands.NewInMemoryBus()
	commands.RegisterHandler(commandBus, bookingapp.RequestBookingKey,
		bookingapp.NewRequestBookingHandler(box, cfg.ServiceFeePercent))
	commands.RegisterHandler(commandBus, bookingapp.HostCancelKey, bookingapp.NewHostCancelHandler(box))
	commands.RegisterHandler(commandBus, availabilityapp.ReplaceKey, availabilityapp.NewReplaceHandler(box))
	commands.RegisterHandler(commandBus, availabilityapp.ClearKey, availabilityapp.NewClearHandler(box))

	queryBus := queries.NewInMemoryBus()
	queries.RegisterHandler(queryBus, listingapp.GetListingKey, listingapp.NewGetListingHandler(factory))
	queries.RegisterHandler(queryBus, availabilityapp.ListKey, availabilityapp.NewListHandler(factory))
	queries.RegisterHandler(queryBus, bookingapp.HostBookingsKey, bookingapp.NewHostBookingsHandler(factory))
	queries.RegisterHandler(queryBus, bookingapp.GuestBookingsKey, bookingapp.NewGuestBookingsHandler(factory))

	wrappedCommands := middleware.ChainCommands(commandBus,
		middleware.Idempotency(idStore),
		middleware.Transaction(factory, nil),
		middleware.OutboxFlush(box),
	)
	wrappedQueries := middleware.ChainQueries(queryBus)

	app.handlers = ginserver.Handlers{
		Booking:      ginserver.BookingHandler{Commands: wrappedCommands, Queries: wrappedQueries},
		Availability: ginserver.AvailabilityHandler{Commands: wrappedCommands, Queries: wrappedQueries},
		Listing:      ginserver.ListingHandler{Queries: wrappedQueries},
		HostBooking:  ginserver.HostBookingHandler{Queries: wrappedQueries},
	}
	return app, nil
}
