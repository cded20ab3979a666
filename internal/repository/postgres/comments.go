package postgres

import (
	"context"
	"errors"
	"fmt"

	"participium/internal/entities"

	"github.com/jackc/pgx/v5"
)

const (
	insertCommentQuery = `
INSERT INTO comments(report_id, content, municipality_user_id, external_maintainer_id)
SELECT $1::bigint, $2::text, $3::bigint, $4::bigint
WHERE EXISTS (
    SELECT 1 FROM reports
    WHERE id = $1 AND status <> 'RESOLVED' AND ($4::bigint IS NULL OR external_maintainer_id = $4)
    FOR SHARE
)
RETURNING id, created_at`
	listCommentsQuery = `
SELECT id, report_id, content, municipality_user_id, external_maintainer_id, created_at
FROM comments
WHERE report_id = $1
ORDER BY created_at, id`
	selectCommentGateQuery = `SELECT status FROM reports WHERE id=$1`
)

// CreateComment stores a comment, splitting the author into its two nullable columns.
// The report row is share-locked so a concurrent resolution or re-delegation
// either waits for the insert or makes it find no row.
func (p *Postgres) CreateComment(ctx context.Context, c entities.Comment) (*entities.Comment, error) {
	err := p.db.QueryRow(ctx, insertCommentQuery,
		c.ReportID, c.Content, c.Author.MunicipalityUserID(), c.Author.ExternalMaintainerID(),
	).Scan(&c.ID, &c.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, p.commentRefused(ctx, c.ReportID)
		}
		p.log.Errorw("failed to insert comment", "error", err, "report_id", c.ReportID)
		return nil, fmt.Errorf("insert comment: %w", err)
	}

	p.log.Infow("comment created", "comment_id", c.ID, "report_id", c.ReportID, "author_type", c.Author.Type)
	return &c, nil
}

func (p *Postgres) commentRefused(ctx context.Context, reportID int64) error {
	var status string
	if err := p.db.QueryRow(ctx, selectCommentGateQuery, reportID).Scan(&status); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return entities.ErrNotFound
		}
		return fmt.Errorf("report status: %w", err)
	}
	p.log.Warnw("comment refused", "report_id", reportID, "status", status)
	if entities.ReportStatus(status) == entities.StatusResolved {
		return entities.ErrReportResolved
	}
	return entities.ErrNotAssigned
}

// ListComments returns comments of a report in creation order.
func (p *Postgres) ListComments(ctx context.Context, reportID int64) ([]entities.Comment, error) {
	rows, err := p.db.Query(ctx, listCommentsQuery, reportID)
	if err != nil {
		return nil, fmt.Errorf("list comments: %w", err)
	}
	defer rows.Close()

	comments := make([]entities.Comment, 0)
	for rows.Next() {
		var c entities.Comment
		var municipalityUserID, maintainerID *int64
		if err := rows.Scan(&c.ID, &c.ReportID, &c.Content, &municipalityUserID, &maintainerID, &c.CreatedAt); err != nil {
			p.log.Errorw("failed to scan comment", "error", err, "report_id", reportID)
			return nil, fmt.Errorf("scan comment: %w", err)
		}
		c.Author = entities.AuthorFromColumns(municipalityUserID, maintainerID)
		comments = append(comments, c)
	}

	if err := rows.Err(); err != nil {
		p.log.Errorw("failed to iterate comments", "error", err, "report_id", reportID)
		return nil, fmt.Errorf("iterate comments: %w", err)
	}

	return comments, nil
}
