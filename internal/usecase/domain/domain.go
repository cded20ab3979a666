// Package domain contains application services orchestrating the report lifecycle.
package domain

import (
	"context"
	"time"

	"participium/internal/imagestore"
	"participium/internal/lifecycle"
	"participium/internal/metrics"
	"participium/internal/repository"

	"go.uber.org/zap"
)

// Usecase struct implements all usecase interfaces.
type Usecase struct {
	ctx     context.Context
	log     *zap.SugaredLogger
	repo    repository.Repository
	router  *lifecycle.Router
	images  imagestore.Store
	metrics *metrics.Recorder
	timeout time.Duration
}

// New constructs a new usecase layer with its dependencies.
func New(
	log *zap.SugaredLogger,
	ctx context.Context,
	repo repository.Repository,
	router *lifecycle.Router,
	images imagestore.Store,
	rec *metrics.Recorder,
	timeout time.Duration,
) *Usecase {
	return &Usecase{
		ctx:     ctx,
		log:     log.Named("usecase"),
		repo:    repo,
		router:  router,
		images:  images,
		metrics: rec,
		timeout: timeout,
	}
}

// withTimeout bounds a single usecase call. A non-positive timeout only adds cancellation.
func withTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, timeout)
}
