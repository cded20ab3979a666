package main

import (
	"context"
	"os/signal"
	"syscall"

	"participium/config"
	"participium/internal/imagestore"
	"participium/internal/lifecycle"
	"participium/internal/metrics"
	"participium/internal/repository"
	"participium/internal/transport/http/middleware"
	handlers_fiber "participium/internal/transport/http/server/handlers-fiber"
	"participium/internal/usecase"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, log, err := bootstrap()
			if err != nil {
				return err
			}
			defer func() { _ = log.Sync() }()
			return serve(cmd.Context(), cfg, log)
		},
	}
}

func serve(parent context.Context, cfg *config.Config, log *zap.SugaredLogger) error {
	if parent == nil {
		parent = context.Background()
	}
	ctx, stop := signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	repo, err := repository.New(ctx, cfg.Repository.Backend, log, cfg)
	if err != nil {
		log.Errorw("repository initialization error", "error", err)
		return err
	}
	if err := repo.OnStart(ctx); err != nil {
		log.Errorw("repository start error", "error", err)
		return err
	}
	defer func() {
		_ = repo.OnStop(context.Background())
	}()

	images, closeImages, err := newImageStore(ctx, cfg, log)
	if err != nil {
		log.Errorw("image store initialization error", "error", err)
		return err
	}
	defer closeImages()

	router := lifecycle.NewRouter(lifecycle.MergeOffices(cfg.Offices))
	uc := usecase.New(log, ctx, repo, router, images, metrics.Default(), cfg.HTTP.RequestTimeout)

	serv := fiber.New(fiber.Config{
		ReadTimeout:  cfg.HTTP.RequestTimeout,
		WriteTimeout: cfg.HTTP.RequestTimeout,
		BodyLimit:    cfg.HTTP.BodyLimit,
	})
	serv.Use(recover.New())
	serv.Use(requestid.New())
	serv.Use(middleware.RequestLogger(log))

	serv.Get("/healthz", func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})
	serv.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	h := handlers_fiber.NewHandler(log, uc, cfg.Images.MaxBytes)
	h.Register(serv, middleware.Auth(log, cfg.Auth.JWTSecret, cfg.Auth.Issuer))

	go func() {
		if err := serv.Listen(cfg.ServerAddr()); err != nil {
			log.Errorw("failed to start server", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := serv.ShutdownWithContext(shutdownCtx); err != nil {
		log.Warnw("server shutdown timeout", "timeout", cfg.Server.ShutdownTimeout, "error", err)
	}
	return nil
}

// newImageStore builds the disk store, fronted by redis when enabled.
func newImageStore(ctx context.Context, cfg *config.Config, log *zap.SugaredLogger) (imagestore.Store, func(), error) {
	fs, err := imagestore.NewFS(log, cfg.Images.Dir, cfg.Images.MaxBytes)
	if err != nil {
		return nil, nil, err
	}
	if !cfg.Redis.Enabled {
		return fs, func() {}, nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		log.Warnw("redis unreachable, photo cache degraded", "addr", cfg.Redis.Addr, "error", err)
	}
	return imagestore.NewCached(log, fs, client, cfg.Redis.TTL), func() { _ = client.Close() }, nil
}
