package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"participium/internal/entities"
)

const (
	insertCommentQuery = `
INSERT INTO comments(report_id, content, municipality_user_id, external_maintainer_id)
SELECT ?,?,?,?
WHERE EXISTS (
    SELECT 1 FROM reports
    WHERE id = ? AND status <> 'RESOLVED' AND (? IS NULL OR external_maintainer_id = ?)
)
RETURNING id, created_at`
	listCommentsQuery = `
SELECT id, report_id, content, municipality_user_id, external_maintainer_id, created_at
FROM comments
WHERE report_id = ?
ORDER BY created_at, id`
)

// CreateComment stores a comment, splitting the author into its two nullable columns.
// The insert only happens while the report is not resolved and, for a maintainer
// author, still delegated to that maintainer.
func (s *SQLite) CreateComment(ctx context.Context, c entities.Comment) (*entities.Comment, error) {
	maintainerID := c.Author.ExternalMaintainerID()
	var createdAt string
	err := s.db.QueryRowContext(ctx, insertCommentQuery,
		c.ReportID, c.Content, c.Author.MunicipalityUserID(), maintainerID,
		c.ReportID, maintainerID, maintainerID,
	).Scan(&c.ID, &createdAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, s.commentRefused(ctx, c.ReportID)
		}
		s.log.Errorw("failed to insert comment", "error", err, "report_id", c.ReportID)
		return nil, fmt.Errorf("insert comment: %w", err)
	}
	if c.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, err
	}

	s.log.Infow("comment created", "comment_id", c.ID, "report_id", c.ReportID, "author_type", c.Author.Type)
	return &c, nil
}

func (s *SQLite) commentRefused(ctx context.Context, reportID int64) error {
	var status string
	var maintainerID *int64
	if err := s.db.QueryRowContext(ctx, selectReportStatusQuery, reportID).Scan(&status, &maintainerID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return entities.ErrNotFound
		}
		return fmt.Errorf("report status: %w", err)
	}
	s.log.Warnw("comment refused", "report_id", reportID, "status", status)
	if entities.ReportStatus(status) == entities.StatusResolved {
		return entities.ErrReportResolved
	}
	return entities.ErrNotAssigned
}

// ListComments returns comments of a report in creation order.
func (s *SQLite) ListComments(ctx context.Context, reportID int64) ([]entities.Comment, error) {
	rows, err := s.db.QueryContext(ctx, listCommentsQuery, reportID)
	if err != nil {
		return nil, fmt.Errorf("list comments: %w", err)
	}
	defer func() { _ = rows.Close() }()

	comments := make([]entities.Comment, 0)
	for rows.Next() {
		var c entities.Comment
		var municipalityUserID, maintainerID *int64
		var createdAt string
		if err := rows.Scan(&c.ID, &c.ReportID, &c.Content, &municipalityUserID, &maintainerID, &createdAt); err != nil {
			return nil, fmt.Errorf("scan comment: %w", err)
		}
		if c.CreatedAt, err = parseTime(createdAt); err != nil {
			return nil, err
		}
		c.Author = entities.AuthorFromColumns(municipalityUserID, maintainerID)
		comments = append(comments, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate comments: %w", err)
	}
	return comments, nil
}
