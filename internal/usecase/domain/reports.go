package domain

import (
	"context"
	"fmt"

	"participium/internal/entities"
	"participium/internal/lifecycle"
)

const (
	defaultListLimit = 50
	maxListLimit     = 200
)

// CreateReport validates a citizen submission and stores it pending approval.
// Photo keys reference earlier uploads and stay in the image store when the
// report cannot be stored.
func (u *Usecase) CreateReport(ctx context.Context, submitterID int64, p entities.NewReport) (*entities.Report, error) {
	ctx, cancel := withTimeout(ctx, u.timeout)
	defer cancel()

	if err := lifecycle.ValidateNewReport(p); err != nil {
		return nil, err
	}
	report := lifecycle.BuildReport(p, submitterID)

	created, err := u.repo.CreateReport(ctx, report)
	if err != nil {
		u.log.Errorw("failed to create report", "submitter_id", submitterID, "err", err)
		return nil, err
	}
	u.log.Infow("report create", "report_id", created.ID, "category", created.Category)
	return created, nil
}

// GetReport returns a report by id.
func (u *Usecase) GetReport(ctx context.Context, id int64) (*entities.Report, error) {
	ctx, cancel := withTimeout(ctx, u.timeout)
	defer cancel()

	if id <= 0 {
		return nil, fmt.Errorf("%w: report id must be positive", entities.ErrInvalidArgument)
	}
	return u.repo.GetReport(ctx, id)
}

// ListReports returns reports matching filter, newest first.
func (u *Usecase) ListReports(ctx context.Context, filter entities.ReportFilter) ([]entities.Report, error) {
	ctx, cancel := withTimeout(ctx, u.timeout)
	defer cancel()

	if filter.Offset < 0 {
		return nil, fmt.Errorf("%w: offset must not be negative", entities.ErrInvalidArgument)
	}
	switch {
	case filter.Limit <= 0:
		filter.Limit = defaultListLimit
	case filter.Limit > maxListLimit:
		filter.Limit = maxListLimit
	}
	return u.repo.ListReports(ctx, filter)
}

// OfficerQueue returns the reports assigned to officerID.
func (u *Usecase) OfficerQueue(ctx context.Context, officerID int64) ([]entities.Report, error) {
	return u.ListReports(ctx, entities.ReportFilter{OfficerID: &officerID})
}

// MaintainerQueue returns the reports delegated to maintainerID.
func (u *Usecase) MaintainerQueue(ctx context.Context, maintainerID int64) ([]entities.Report, error) {
	return u.ListReports(ctx, entities.ReportFilter{MaintainerID: &maintainerID})
}
