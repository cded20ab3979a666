package usecase

import (
	"context"

	"participium/internal/entities"
	"participium/internal/imagestore"
)

// ReportUsecaseInterface abstracts report submission and queries.
type ReportUsecaseInterface interface {
	CreateReport(ctx context.Context, submitterID int64, p entities.NewReport) (*entities.Report, error)
	GetReport(ctx context.Context, id int64) (*entities.Report, error)
	ListReports(ctx context.Context, filter entities.ReportFilter) ([]entities.Report, error)
	OfficerQueue(ctx context.Context, officerID int64) ([]entities.Report, error)
	MaintainerQueue(ctx context.Context, maintainerID int64) ([]entities.Report, error)
}

// LifecycleUsecaseInterface abstracts the status transition entry points.
type LifecycleUsecaseInterface interface {
	ApproveReport(ctx context.Context, reportID int64) (*entities.Report, error)
	RejectReport(ctx context.Context, reportID int64, reason string) (*entities.Report, error)
	AdvanceMaintainerStatus(ctx context.Context, reportID, maintainerID int64, target string) (*entities.Report, error)
	DelegateToMaintainer(ctx context.Context, reportID int64) (*entities.Report, error)
}

// CommentUsecaseInterface abstracts internal comment operations.
type CommentUsecaseInterface interface {
	PostComment(ctx context.Context, reportID int64, actor entities.Actor, content string) (*entities.Comment, error)
	ListComments(ctx context.Context, reportID int64, actor entities.Actor) ([]entities.Comment, error)
}

// StaffUsecaseInterface abstracts staff provisioning.
type StaffUsecaseInterface interface {
	CreateOfficer(ctx context.Context, o entities.Officer) (*entities.Officer, error)
	CreateMaintainer(ctx context.Context, m entities.ExternalMaintainer) (*entities.ExternalMaintainer, error)
}

// PhotoUsecaseInterface abstracts photo storage.
type PhotoUsecaseInterface interface {
	UploadPhoto(ctx context.Context, data []byte, contentType string) (string, error)
	Photo(ctx context.Context, key string) (imagestore.Image, error)
}

// StatsUsecaseInterface abstracts statistics operations.
type StatsUsecaseInterface interface {
	WorkloadStats(ctx context.Context) (entities.WorkloadStats, error)
}
