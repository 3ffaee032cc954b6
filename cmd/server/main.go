package main

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"padelmania/internal/cache"
	"padelmania/internal/cart"
	"padelmania/internal/catalog"
	"padelmania/internal/chatbot"
	"padelmania/internal/config"
	"padelmania/internal/database"
	"padelmania/internal/describe"
	"padelmania/internal/handlers"
	"padelmania/internal/logger"
	"padelmania/internal/middleware"
	"padelmania/internal/recommend"
	"padelmania/internal/routes"
	"padelmania/internal/search"
	"padelmania/internal/services"
)

const shutdownTimeout = 10 * time.Second

var (
	cfg *config.Config
	log *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:           "server",
	Short:         "Padelmania storefront backend",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		if cfg, err = config.Load(); err != nil {
			return fmt.Errorf("config: %w", err)
		}
		if log, err = logger.New(cfg.LogLevel, cfg.AppEnv); err != nil {
			return err
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if log != nil {
			_ = log.Sync()
		}
	},
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()
		return serve(ctx)
	},
}

func main() {
	rootCmd.AddCommand(serveCmd, catalogCmd)
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, "❌", err)
		os.Exit(1)
	}
}

func serve(ctx context.Context) error {
	cat, err := catalog.Load(cfg.CatalogPath)
	if err != nil {
		log.Error("❌ catalog not loaded, serving an empty shop", zap.Error(err))
	} else {
		log.Info("✅ catalog loaded", zap.Int("products", cat.Len()), zap.String("path", cfg.CatalogPath))
	}

	conns, err := database.Connect(ctx, cfg, log)
	if err != nil {
		return fmt.Errorf("connect: %w", err)
	}
	defer conns.Close()

	deps, limiter, err := buildDeps(ctx, cat, conns)
	if err != nil {
		return err
	}

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	routes.RegisterRoutes(r, handlers.New(deps), routes.Options{
		AllowedOrigins: cfg.AllowedOrigins,
		Sessions:       middleware.NewCookieStore(cfg.SessionSecret, cfg.IsProduction()),
		Limiter:        limiter,
		ChatRateLimit:  cfg.ChatRateLimit,
		Log:            log,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("🚀 Padelmania server listening", zap.String("port", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("🛑 shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func buildDeps(ctx context.Context, cat *catalog.Catalog, conns *database.Connections) (handlers.Deps, middleware.RateCounter, error) {
	deps := handlers.Deps{
		Catalog:     cat,
		Pricing:     handlers.Pricing{Installments: cfg.Installments, FreeShippingThreshold: cfg.FreeShippingThreshold},
		ReadyChecks: conns.ReadyChecks(),
		Log:         log,
	}

	var limiter middleware.RateCounter
	if conns.Redis != nil {
		storage := cache.NewCartStorage(conns.Redis)
		deps.Carts = storage
		deps.Notifier = storage
		deps.Subscriber = storage
		limiter = cache.NewRateCounter(conns.Redis, "ratelimit")
	} else {
		deps.Carts = cart.NewMemoryStorage()
		limiter = cache.NewMemoryRateCounter()
	}

	if conns.Elastic != nil {
		index := search.NewIndex(conns.Elastic, cfg.ElasticIndex, log)
		if err := index.IndexCatalog(ctx, cat.Products()); err != nil {
			log.Warn("⚠️  catalog not indexed, using in-memory search", zap.Error(err))
		} else {
			deps.Index = index
		}
	}

	policy, _ := recommend.ParsePolicy(cfg.RecommendPolicy)
	samplerOpts := []recommend.Option{recommend.WithPolicy(policy)}
	if cfg.RandomSeed != 0 {
		samplerOpts = append(samplerOpts, recommend.WithRand(rand.New(rand.NewSource(cfg.RandomSeed))))
	}
	deps.Sampler = recommend.New(samplerOpts...)

	describer, err := describe.New()
	if err != nil {
		return handlers.Deps{}, nil, fmt.Errorf("description templates: %w", err)
	}
	deps.Describer = describer

	deps.Chats = chatbot.NewSessions(chatbot.New(cat, deps.Sampler), chatbot.DefaultMaxMessages)
	deps.Images = services.NewImageResolver(conns.MinIO, cfg.MinIOBucket, cfg.ImageBaseURL, log)
	deps.WhatsApp = services.NewWhatsApp(cfg.WhatsAppNumber, cfg.Installments, cfg.FreeShippingThreshold)

	if cfg.SMTPEnabled() {
		deps.Mailer = services.NewSMTPMailer(services.SMTPConfig{
			Host:     cfg.SMTPHost,
			Port:     cfg.SMTPPort,
			Username: cfg.SMTPUsername,
			Password: cfg.SMTPPassword,
			From:     cfg.ContactFrom,
			To:       cfg.ContactTo,
		}, log)
	} else {
		log.Warn("⚠️  SMTP_HOST not set, contact messages are only logged")
		deps.Mailer = services.NewLogMailer(log)
	}

	return deps, limiter, nil
}
