package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"log/slog"

	"github.com/ana-yet/soulmate-server-side-code/internal/audit"
	"github.com/ana-yet/soulmate-server-side-code/internal/biodata"
	"github.com/ana-yet/soulmate-server-side-code/internal/contact"
	"github.com/ana-yet/soulmate-server-side-code/internal/dashboard"
	"github.com/ana-yet/soulmate-server-side-code/internal/favourite"
	"github.com/ana-yet/soulmate-server-side-code/internal/identity"
	"github.com/ana-yet/soulmate-server-side-code/internal/payment"
	"github.com/ana-yet/soulmate-server-side-code/internal/platform/config"
	"github.com/ana-yet/soulmate-server-side-code/internal/platform/database"
	"github.com/ana-yet/soulmate-server-side-code/internal/platform/httpserver"
	"github.com/ana-yet/soulmate-server-side-code/internal/platform/logger"
	"github.com/ana-yet/soulmate-server-side-code/internal/platform/metrics"
	"github.com/ana-yet/soulmate-server-side-code/internal/platform/redis"
	"github.com/ana-yet/soulmate-server-side-code/internal/story"
	httptransport "github.com/ana-yet/soulmate-server-side-code/internal/transport/http"
	"github.com/ana-yet/soulmate-server-side-code/internal/user"
)

// tokenVerifier adapts the identity verifier to the middleware's contract.
type tokenVerifier struct {
	verifier identity.Verifier
}

func (t tokenVerifier) Verify(ctx context.Context, token string) (string, error) {
	p, err := t.verifier.Verify(ctx, token)
	if err != nil {
		return "", err
	}
	return p.Email, nil
}

// main wires dependencies and owns the server lifecycle. Business logic
// lives in the internal service packages.
func main() {
	log := logger.New()

	cfg, err := config.FromEnv()
	if err != nil {
		log.Error("load config", "error", err)
		os.Exit(1)
	}

	if err := run(cfg, log); err != nil {
		log.Error("server exited", "error", err)
		os.Exit(1)
	}
}

func run(cfg config.Config, log *slog.Logger) error {
	m := metrics.New()

	// Stores: PostgreSQL when a DSN is configured, in-memory otherwise.
	var (
		userStore      user.Store
		biodataStore   biodata.Store
		contactStore   contact.Store
		favouriteStore favourite.Store
		storyStore     story.Store
	)
	if cfg.Database.DSN != "" {
		db, err := database.Open(cfg.Database.DSN)
		if err != nil {
			return err
		}
		defer db.Close()
		userStore = user.NewPostgresStore(db)
		biodataStore = biodata.NewPostgresStore(db)
		contactStore = contact.NewPostgresStore(db)
		favouriteStore = favourite.NewPostgresStore(db)
		storyStore = story.NewPostgresStore(db)
		log.Info("using postgres stores")
	} else {
		userStore = user.NewInMemoryStore()
		biodataStore = biodata.NewInMemoryStore()
		contactStore = contact.NewInMemoryStore()
		favouriteStore = favourite.NewInMemoryStore()
		storyStore = story.NewInMemoryStore()
		log.Warn("no database configured, using in-memory stores")
	}

	// Audit trail: Kafka when brokers are configured, in-memory otherwise.
	var auditor audit.Publisher
	if len(cfg.Kafka.Brokers) > 0 {
		kafkaPublisher, err := audit.NewKafkaPublisher(cfg.Kafka.Brokers, cfg.Kafka.AuditTopic, log)
		if err != nil {
			return err
		}
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := kafkaPublisher.Close(ctx); err != nil {
				log.Error("close audit publisher", "error", err)
			}
		}()
		auditor = kafkaPublisher
		log.Info("audit events to kafka", "topic", cfg.Kafka.AuditTopic)
	} else {
		auditor = audit.NewMemoryPublisher()
		log.Warn("no kafka configured, audit events stay in memory")
	}

	// Counters cache: optional, keyed off the Redis URL.
	var counterCache dashboard.CounterCache
	redisClient, err := redis.New(cfg.Redis)
	if err != nil {
		return err
	}
	if redisClient != nil {
		defer redisClient.Close()
		counterCache = dashboard.NewRedisCounterCache(redisClient, 5*time.Minute, log)
		log.Info("counters cached in redis")
	}

	// Payment gateway: Stripe when a key is configured, mock otherwise.
	var intents payment.IntentCreator
	if cfg.Payment.StripeKey != "" {
		intents = payment.NewStripeClient(cfg.Payment.StripeKey, cfg.Payment.Currency)
	} else {
		intents = payment.MockIntentCreator{Currency: cfg.Payment.Currency}
		log.Warn("no payment gateway key configured, issuing mock intents")
	}

	userService := user.NewService(userStore, auditor, m)
	biodataService := biodata.NewService(biodataStore, userStore, auditor, m)
	contactService := contact.NewService(contactStore, biodataStore, auditor, m, cfg.Contact.RequestPrice)
	favouriteService := favourite.NewService(favouriteStore, biodataStore)
	storyService := story.NewService(storyStore, auditor)
	dashboardService := dashboard.NewService(userStore, biodataStore, contactStore, favouriteStore, storyStore, counterCache)

	verifier := identity.NewJWTVerifier(cfg.JWT.SigningKey, cfg.JWT.Issuer, cfg.JWT.Audience)

	router := httptransport.NewRouter(
		httptransport.Handlers{
			Users:      httptransport.NewUserHandler(userService, log),
			Biodata:    httptransport.NewBiodataHandler(biodataService, log),
			Contacts:   httptransport.NewContactHandler(contactService, log),
			Favourites: httptransport.NewFavouriteHandler(favouriteService, log),
			Stories:    httptransport.NewStoryHandler(storyService, log),
			Dashboard:  httptransport.NewDashboardHandler(dashboardService, log),
			Payments:   httptransport.NewPaymentHandler(intents, log),
		},
		tokenVerifier{verifier: verifier},
		userService,
		log,
		m,
	)

	srv := httpserver.New(cfg.Addr, router)

	errCh := make(chan error, 1)
	go func() {
		log.Info("server listening", "addr", cfg.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-quit:
		log.Info("shutting down", "signal", sig.String())
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(ctx)
}
