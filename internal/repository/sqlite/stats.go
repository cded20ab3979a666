package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"participium/internal/entities"
)

const (
	statsByOfficerQuery = `
SELECT o.id, o.office, COUNT(r.id)
FROM officers o
LEFT JOIN reports r ON r.assigned_officer_id = o.id AND r.status IN ('ASSIGNED', 'IN_PROGRESS', 'SUSPENDED')
GROUP BY o.id, o.office
ORDER BY o.id`
	statsByMaintainerQuery = `
SELECT m.id, m.category, COUNT(r.id)
FROM external_maintainers m
LEFT JOIN reports r ON r.external_maintainer_id = m.id AND r.status <> 'RESOLVED'
GROUP BY m.id, m.category
ORDER BY m.id`
	statsByStatusQuery   = `SELECT status, COUNT(*) FROM reports GROUP BY status ORDER BY status`
	statsByCategoryQuery = `SELECT category, COUNT(*) FROM reports GROUP BY category ORDER BY category`
)

// WorkloadStats returns active report counts per officer, maintainer, status and category.
func (s *SQLite) WorkloadStats(ctx context.Context) (entities.WorkloadStats, error) {
	res := entities.WorkloadStats{
		ByOfficer:    make([]entities.OfficerStat, 0),
		ByMaintainer: make([]entities.MaintainerStat, 0),
		ByStatus:     make([]entities.StatusStat, 0),
		ByCategory:   make([]entities.CategoryStat, 0),
	}

	err := s.collect(ctx, statsByOfficerQuery, func(rows *sql.Rows) error {
		var st entities.OfficerStat
		if err := rows.Scan(&st.OfficerID, &st.Office, &st.ActiveCnt); err != nil {
			return err
		}
		res.ByOfficer = append(res.ByOfficer, st)
		return nil
	})
	if err != nil {
		return res, fmt.Errorf("stats by officer: %w", err)
	}

	err = s.collect(ctx, statsByMaintainerQuery, func(rows *sql.Rows) error {
		var st entities.MaintainerStat
		var category string
		if err := rows.Scan(&st.MaintainerID, &category, &st.ActiveCnt); err != nil {
			return err
		}
		st.Category = entities.Category(category)
		res.ByMaintainer = append(res.ByMaintainer, st)
		return nil
	})
	if err != nil {
		return res, fmt.Errorf("stats by maintainer: %w", err)
	}

	err = s.collect(ctx, statsByStatusQuery, func(rows *sql.Rows) error {
		var st entities.StatusStat
		var status string
		if err := rows.Scan(&status, &st.ReportCount); err != nil {
			return err
		}
		st.Status = entities.ReportStatus(status)
		res.ByStatus = append(res.ByStatus, st)
		return nil
	})
	if err != nil {
		return res, fmt.Errorf("stats by status: %w", err)
	}

	err = s.collect(ctx, statsByCategoryQuery, func(rows *sql.Rows) error {
		var st entities.CategoryStat
		var category string
		if err := rows.Scan(&category, &st.ReportCount); err != nil {
			return err
		}
		st.Category = entities.Category(category)
		res.ByCategory = append(res.ByCategory, st)
		return nil
	})
	if err != nil {
		return res, fmt.Errorf("stats by category: %w", err)
	}

	return res, nil
}

func (s *SQLite) collect(ctx context.Context, query string, scan func(*sql.Rows) error) error {
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return err
	}
	defer func() { _ = rows.Close() }()
	for rows.Next() {
		if err := scan(rows); err != nil {
			return err
		}
	}
	return rows.Err()
}
