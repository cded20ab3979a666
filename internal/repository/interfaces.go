// Package repository contains repository interfaces for persistence layers.
package repository

import (
	"context"

	"participium/internal/entities"
)

// LifecycleInterface describes storage startup/shutdown hooks.
type LifecycleInterface interface {
	OnStart(_ context.Context) error
	OnStop(_ context.Context) error
}

// ReportInterface exposes report operations.
type ReportInterface interface {
	CreateReport(ctx context.Context, r entities.Report) (*entities.Report, error)
	GetReport(ctx context.Context, id int64) (*entities.Report, error)
	ListReports(ctx context.Context, filter entities.ReportFilter) ([]entities.Report, error)
	// UpdateReport applies patch only if the stored status still equals expected.
	// It returns entities.ErrNotFound for unknown ids and an InvalidTransition
	// error carrying the current status when the condition fails.
	UpdateReport(ctx context.Context, id int64, expected entities.ReportStatus, patch entities.ReportPatch) (*entities.Report, error)
}

// StaffInterface exposes officer and maintainer operations.
type StaffInterface interface {
	CreateOfficer(ctx context.Context, o entities.Officer) (*entities.Officer, error)
	CreateMaintainer(ctx context.Context, m entities.ExternalMaintainer) (*entities.ExternalMaintainer, error)
	// ListOfficersByOffice returns officers of office with their live workload.
	ListOfficersByOffice(ctx context.Context, office string) ([]entities.Officer, error)
	// ListMaintainersByCategory returns maintainers of category with their live workload.
	ListMaintainersByCategory(ctx context.Context, category entities.Category) ([]entities.ExternalMaintainer, error)
}

// CommentInterface exposes comment operations.
type CommentInterface interface {
	CreateComment(ctx context.Context, c entities.Comment) (*entities.Comment, error)
	ListComments(ctx context.Context, reportID int64) ([]entities.Comment, error)
}

// StatsInterface exposes aggregated statistics operations.
type StatsInterface interface {
	WorkloadStats(ctx context.Context) (entities.WorkloadStats, error)
}
