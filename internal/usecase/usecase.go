package usecase

import (
	"context"
	"time"

	"participium/internal/imagestore"
	"participium/internal/lifecycle"
	"participium/internal/metrics"
	"participium/internal/repository"
	"participium/internal/usecase/domain"

	"go.uber.org/zap"
)

// InterfaceUsecase aggregates all usecase interfaces.
type InterfaceUsecase interface {
	ReportUsecaseInterface
	LifecycleUsecaseInterface
	CommentUsecaseInterface
	StaffUsecaseInterface
	PhotoUsecaseInterface
	StatsUsecaseInterface
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
) InterfaceUsecase {
	return domain.New(log, ctx, repo, router, images, rec, timeout)
}
