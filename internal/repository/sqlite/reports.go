package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"participium/internal/entities"
)

const (
	reportColumns = `id, title, description, category, latitude, longitude, anonymous, submitter_id, status,
COALESCE(rejection_reason, ''), COALESCE(assigned_office, ''), assigned_officer_id, external_maintainer_id, created_at, updated_at`

	insertReportQuery = `INSERT INTO reports(title, description, category, latitude, longitude, anonymous, submitter_id, status)
VALUES (?,?,?,?,?,?,?,'PENDING_APPROVAL')`
	insertPhotoQuery        = `INSERT INTO report_photos(report_id, position, photo_key) VALUES (?,?,?)`
	selectReportQuery       = `SELECT ` + reportColumns + ` FROM reports WHERE id=?`
	selectReportStatusQuery = `SELECT status, external_maintainer_id FROM reports WHERE id=?`
	updateReportQuery       = `
UPDATE reports
SET status = COALESCE(?, status),
    rejection_reason = COALESCE(?, rejection_reason),
    assigned_office = COALESCE(?, assigned_office),
    assigned_officer_id = COALESCE(?, assigned_officer_id),
    external_maintainer_id = COALESCE(?, external_maintainer_id),
    updated_at = strftime('%Y-%m-%dT%H:%M:%fZ', 'now')
WHERE id=? AND status=? AND (? IS NULL OR external_maintainer_id = ?)`
)

type rowScanner interface {
	Scan(dest ...any) error
}

type querier interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// CreateReport inserts a pending report with its photo keys.
func (s *SQLite) CreateReport(ctx context.Context, r entities.Report) (*entities.Report, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback() }()

	res, err := tx.ExecContext(ctx, insertReportQuery,
		r.Title, r.Description, string(r.Category), r.Latitude, r.Longitude, r.Anonymous, r.SubmitterID)
	if err != nil {
		s.log.Errorw("failed to insert report", "error", err, "submitter_id", r.SubmitterID)
		return nil, fmt.Errorf("insert report: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("report id: %w", err)
	}

	for i, key := range r.Photos {
		if _, err := tx.ExecContext(ctx, insertPhotoQuery, id, i+1, key); err != nil {
			s.log.Errorw("failed to insert photo", "error", err, "report_id", id)
			return nil, fmt.Errorf("insert photo: %w", err)
		}
	}

	created, err := s.getReport(ctx, tx, id)
	if err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}

	s.log.Infow("report created", "report_id", id, "category", r.Category)
	return created, nil
}

// GetReport fetches a report with its photos.
func (s *SQLite) GetReport(ctx context.Context, id int64) (*entities.Report, error) {
	return s.getReport(ctx, s.db, id)
}

// ListReports returns reports matching filter, newest first.
func (s *SQLite) ListReports(ctx context.Context, filter entities.ReportFilter) ([]entities.Report, error) {
	where := make([]string, 0, 5)
	args := make([]any, 0, 7)
	if filter.Status != nil {
		where, args = append(where, "status = ?"), append(args, string(*filter.Status))
	}
	if filter.Category != nil {
		where, args = append(where, "category = ?"), append(args, string(*filter.Category))
	}
	if filter.OfficerID != nil {
		where, args = append(where, "assigned_officer_id = ?"), append(args, *filter.OfficerID)
	}
	if filter.MaintainerID != nil {
		where, args = append(where, "external_maintainer_id = ?"), append(args, *filter.MaintainerID)
	}
	if filter.SubmitterID != nil {
		where, args = append(where, "submitter_id = ?"), append(args, *filter.SubmitterID)
	}

	query := `SELECT ` + reportColumns + ` FROM reports`
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY created_at DESC, id DESC"
	if filter.Limit > 0 || filter.Offset > 0 {
		limit := filter.Limit
		if limit <= 0 {
			limit = -1
		}
		query += " LIMIT ? OFFSET ?"
		args = append(args, limit, filter.Offset)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		s.log.Errorw("failed to list reports", "error", err)
		return nil, fmt.Errorf("list reports: %w", err)
	}
	reports := make([]entities.Report, 0)
	for rows.Next() {
		r, err := scanReport(rows)
		if err != nil {
			_ = rows.Close()
			return nil, fmt.Errorf("scan report: %w", err)
		}
		reports = append(reports, r)
	}
	if err := rows.Err(); err != nil {
		_ = rows.Close()
		return nil, fmt.Errorf("iterate reports: %w", err)
	}
	// The single pooled connection must be released before loading photos.
	_ = rows.Close()

	if err := s.attachPhotos(ctx, s.db, reports); err != nil {
		return nil, err
	}
	return reports, nil
}

// UpdateReport applies patch with a conditional UPDATE guarded by expected status
// and, when patch.RequireMaintainerID is set, by the stored external maintainer.
func (s *SQLite) UpdateReport(ctx context.Context, id int64, expected entities.ReportStatus, patch entities.ReportPatch) (*entities.Report, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback() }()

	res, err := tx.ExecContext(ctx, updateReportQuery,
		statusArg(patch.Status), patch.RejectionReason, patch.AssignedOffice, patch.AssignedOfficerID,
		patch.ExternalMaintainerID, id, string(expected), patch.RequireMaintainerID, patch.RequireMaintainerID)
	if err != nil {
		s.log.Errorw("failed to update report", "error", err, "report_id", id)
		return nil, fmt.Errorf("update report: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("update report rows: %w", err)
	}
	if n == 0 {
		var current string
		var maintainerID *int64
		if err := tx.QueryRowContext(ctx, selectReportStatusQuery, id).Scan(&current, &maintainerID); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return nil, entities.ErrNotFound
			}
			return nil, fmt.Errorf("report status: %w", err)
		}
		err := patch.Conflict(expected, entities.ReportStatus(current), maintainerID)
		if err == nil {
			err = entities.InvalidTransition(entities.ReportStatus(current))
		}
		s.log.Warnw("report changed concurrently", "report_id", id, "expected", expected, "current", current, "err", err)
		return nil, err
	}

	updated, err := s.getReport(ctx, tx, id)
	if err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}

	s.log.Infow("report updated", "report_id", id, "from", expected, "to", updated.Status)
	return updated, nil
}

func (s *SQLite) getReport(ctx context.Context, q querier, id int64) (*entities.Report, error) {
	r, err := scanReport(q.QueryRowContext(ctx, selectReportQuery, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, entities.ErrNotFound
		}
		s.log.Errorw("failed to select report", "error", err, "report_id", id)
		return nil, fmt.Errorf("get report: %w", err)
	}
	reports := []entities.Report{r}
	if err := s.attachPhotos(ctx, q, reports); err != nil {
		return nil, err
	}
	return &reports[0], nil
}

func (s *SQLite) attachPhotos(ctx context.Context, q querier, reports []entities.Report) error {
	if len(reports) == 0 {
		return nil
	}
	args := make([]any, 0, len(reports))
	index := make(map[int64]int, len(reports))
	for i, r := range reports {
		args = append(args, r.ID)
		index[r.ID] = i
		reports[i].Photos = make([]string, 0, entities.MaxPhotos)
	}
	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(args)), ",")
	query := `SELECT report_id, photo_key FROM report_photos WHERE report_id IN (` + placeholders + `) ORDER BY report_id, position`

	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		s.log.Errorw("failed to select photos", "error", err)
		return fmt.Errorf("select photos: %w", err)
	}
	defer func() { _ = rows.Close() }()
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
	var category, status, createdAt, updatedAt string
	if err := row.Scan(&r.ID, &r.Title, &r.Description, &category, &r.Latitude, &r.Longitude, &r.Anonymous,
		&r.SubmitterID, &status, &r.RejectionReason, &r.AssignedOffice, &r.AssignedOfficerID,
		&r.ExternalMaintainerID, &createdAt, &updatedAt); err != nil {
		return r, err
	}
	r.Category = entities.Category(category)
	r.Status = entities.ReportStatus(status)
	var err error
	if r.CreatedAt, err = parseTime(createdAt); err != nil {
		return r, err
	}
	if r.UpdatedAt, err = parseTime(updatedAt); err != nil {
		return r, err
	}
	return r, nil
}

func statusArg(st *entities.ReportStatus) *string {
	if st == nil {
		return nil
	}
	v := string(*st)
	return &v
}
