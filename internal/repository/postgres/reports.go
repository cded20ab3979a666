package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"participium/internal/entities"

	"github.com/jackc/pgx/v5"
)

const (
	reportColumns = `id, title, description, category, latitude, longitude, anonymous, submitter_id, status,
COALESCE(rejection_reason, ''), COALESCE(assigned_office, ''), assigned_officer_id, external_maintainer_id, created_at, updated_at`

	insertReportQuery = `INSERT INTO reports(title, description, category, latitude, longitude, anonymous, submitter_id, status)
VALUES ($1,$2,$3,$4,$5,$6,$7,'PENDING_APPROVAL') RETURNING id`
	insertPhotoQuery                 = `INSERT INTO report_photos(report_id, position, photo_key) VALUES ($1,$2,$3)`
	selectReportQuery                = `SELECT ` + reportColumns + ` FROM reports WHERE id=$1`
	selectReportStatusForUpdateQuery = `SELECT status, external_maintainer_id FROM reports WHERE id=$1 FOR UPDATE`
	selectPhotosQuery                = `SELECT report_id, photo_key FROM report_photos WHERE report_id = ANY($1) ORDER BY report_id, position`
	updateReportQuery                = `
UPDATE reports
SET status = COALESCE($3, status),
    rejection_reason = COALESCE($4, rejection_reason),
    assigned_office = COALESCE($5, assigned_office),
    assigned_officer_id = COALESCE($6, assigned_officer_id),
    external_maintainer_id = COALESCE($7, external_maintainer_id),
    updated_at = NOW()
WHERE id=$1 AND status=$2`
)

type rowScanner interface {
	Scan(dest ...any) error
}

type querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// CreateReport inserts a pending report with its photo keys.
func (p *Postgres) CreateReport(ctx context.Context, r entities.Report) (*entities.Report, error) {
	tx, err := p.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var id int64
	if err := tx.QueryRow(ctx, insertReportQuery,
		r.Title, r.Description, string(r.Category), r.Latitude, r.Longitude, r.Anonymous, r.SubmitterID,
	).Scan(&id); err != nil {
		p.log.Errorw("failed to insert report", "error", err, "submitter_id", r.SubmitterID)
		return nil, fmt.Errorf("insert report: %w", err)
	}

	for i, key := range r.Photos {
		if _, err := tx.Exec(ctx, insertPhotoQuery, id, i+1, key); err != nil {
			p.log.Errorw("failed to insert photo", "error", err, "report_id", id)
			return nil, fmt.Errorf("insert photo: %w", err)
		}
	}

	created, err := p.getReport(ctx, tx, id)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	p.log.Infow("report created", "report_id", id, "category", r.Category)
	return created, nil
}

// GetReport fetches a report with its photos.
func (p *Postgres) GetReport(ctx context.Context, id int64) (*entities.Report, error) {
	return p.getReport(ctx, p.db, id)
}

// ListReports returns reports matching filter, newest first.
func (p *Postgres) ListReports(ctx context.Context, filter entities.ReportFilter) ([]entities.Report, error) {
	where := make([]string, 0, 5)
	args := make([]any, 0, 7)
	add := func(cond string, v any) {
		args = append(args, v)
		where = append(where, fmt.Sprintf(cond, len(args)))
	}
	if filter.Status != nil {
		add("status = $%d", string(*filter.Status))
	}
	if filter.Category != nil {
		add("category = $%d", string(*filter.Category))
	}
	if filter.OfficerID != nil {
		add("assigned_officer_id = $%d", *filter.OfficerID)
	}
	if filter.MaintainerID != nil {
		add("external_maintainer_id = $%d", *filter.MaintainerID)
	}
	if filter.SubmitterID != nil {
		add("submitter_id = $%d", *filter.SubmitterID)
	}

	query := `SELECT ` + reportColumns + ` FROM reports`
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY created_at DESC, id DESC"
	if filter.Limit > 0 {
		args = append(args, filter.Limit)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
	}
	if filter.Offset > 0 {
		args = append(args, filter.Offset)
		query += fmt.Sprintf(" OFFSET $%d", len(args))
	}

	rows, err := p.db.Query(ctx, query, args...)
	if err != nil {
		p.log.Errorw("failed to list reports", "error", err)
		return nil, fmt.Errorf("list reports: %w", err)
	}
	defer rows.Close()

	reports := make([]entities.Report, 0)
	for rows.Next() {
		r, err := scanReport(rows)
		if err != nil {
			return nil, fmt.Errorf("scan report: %w", err)
		}
		reports = append(reports, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate reports: %w", err)
	}

	if err := p.attachPhotos(ctx, p.db, reports); err != nil {
		return nil, err
	}
	return reports, nil
}

// UpdateReport applies patch under a row lock, only if status still equals expected
// and, when patch.RequireMaintainerID is set, the external maintainer is unchanged.
func (p *Postgres) UpdateReport(ctx context.Context, id int64, expected entities.ReportStatus, patch entities.ReportPatch) (*entities.Report, error) {
	tx, err := p.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var stored string
	var maintainerID *int64
	if err := tx.QueryRow(ctx, selectReportStatusForUpdateQuery, id).Scan(&stored, &maintainerID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, entities.ErrNotFound
		}
		p.log.Errorw("failed to lock report", "error", err, "report_id", id)
		return nil, fmt.Errorf("lock report: %w", err)
	}
	current := entities.ReportStatus(stored)
	if err := patch.Conflict(expected, current, maintainerID); err != nil {
		p.log.Warnw("report changed concurrently", "report_id", id, "expected", expected, "current", current, "err", err)
		return nil, err
	}

	tag, err := tx.Exec(ctx, updateReportQuery, id, string(expected),
		statusArg(patch.Status), patch.RejectionReason, patch.AssignedOffice, patch.AssignedOfficerID, patch.ExternalMaintainerID)
	if err != nil {
		p.log.Errorw("failed to update report", "error", err, "report_id", id)
		return nil, fmt.Errorf("update report: %w", err)
	}
	if tag.RowsAffected() != 1 {
		return nil, entities.InvalidTransition(current)
	}

	updated, err := p.getReport(ctx, tx, id)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	p.log.Infow("report updated", "report_id", id, "from", expected, "to", updated.Status)
	return updated, nil
}

func (p *Postgres) getReport(ctx context.Context, q querier, id int64) (*entities.Report, error) {
	r, err := scanReport(q.QueryRow(ctx, selectReportQuery, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, entities.ErrNotFound
		}
		p.log.Errorw("failed to select report", "error", err, "report_id", id)
		return nil, fmt.Errorf("get report: %w", err)
	}
	reports := []entities.Report{r}
	if err := p.attachPhotos(ctx, q, reports); err != nil {
		return nil, err
	}
	return &reports[0], nil
}

func (p *Postgres) attachPhotos(ctx context.Context, q querier, reports []entities.Report) error {
	if len(reports) == 0 {
		return nil
	}
	ids := make([]int64, 0, len(reports))
	index := make(map[int64]int, len(reports))
	for i, r := range reports {
		ids = append(ids, r.ID)
		index[r.ID] = i
		reports[i].Photos = make([]string, 0, entities.MaxPhotos)
	}

	rows, err := q.Query(ctx, selectPhotosQuery, ids)
	if err != nil {
		p.log.Errorw("failed to select photos", "error", err)
		return fmt.Errorf("select photos: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var reportID int64
		var key string
		if err := rows.Scan(&reportID, &key); err != nil {
			return fmt.Errorf("scan photo: %w", err)
		}
		if i, ok := index[reportID]; ok {
			reports[i].Photos = append(reports[i].Photos, key)
		}
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterate photos: %w", err)
	}
	return nil
}

func scanReport(row rowScanner) (entities.Report, error) {
	var r entities.Report
	var category, status string
	err := row.Scan(&r.ID, &r.Title, &r.Description, &category, &r.Latitude, &r.Longitude, &r.Anonymous,
		&r.SubmitterID, &status, &r.RejectionReason, &r.AssignedOffice, &r.AssignedOfficerID,
		&r.ExternalMaintainerID, &r.CreatedAt, &r.UpdatedAt)
	r.Category = entities.Category(category)
	r.Status = entities.ReportStatus(status)
	return r, err
}

func statusArg(s *entities.ReportStatus) *string {
	if s == nil {
		return nil
	}
	v := string(*s)
	return &v
}
