package postgres

import (
	"context"
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
func (p *Postgres) WorkloadStats(ctx context.Context) (entities.WorkloadStats, error) {
	res := entities.WorkloadStats{
		ByOfficer:    make([]entities.OfficerStat, 0),
		ByMaintainer: make([]entities.MaintainerStat, 0),
		ByStatus:     make([]entities.StatusStat, 0),
		ByCategory:   make([]entities.CategoryStat, 0),
	}

	rows, err := p.db.Query(ctx, statsByOfficerQuery)
	if err != nil {
		return res, fmt.Errorf("stats by officer: %w", err)
	}
	for rows.Next() {
		var s entities.OfficerStat
		if err := rows.Scan(&s.OfficerID, &s.Office, &s.ActiveCnt); err != nil {
			rows.Close()
			return res, fmt.Errorf("scan officer stat: %w", err)
		}
		res.ByOfficer = append(res.ByOfficer, s)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return res, fmt.Errorf("iterate officer stat: %w", err)
	}

	rows, err = p.db.Query(ctx, statsByMaintainerQuery)
	if err != nil {
		return res, fmt.Errorf("stats by maintainer: %w", err)
	}
	for rows.Next() {
		var s entities.MaintainerStat
		var category string
		if err := rows.Scan(&s.MaintainerID, &category, &s.ActiveCnt); err != nil {
			rows.Close()
			return res, fmt.Errorf("scan maintainer stat: %w", err)
		}
		s.Category = entities.Category(category)
		res.ByMaintainer = append(res.ByMaintainer, s)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return res, fmt.Errorf("iterate maintainer stat: %w", err)
	}

	rows, err = p.db.Query(ctx, statsByStatusQuery)
	if err != nil {
		return res, fmt.Errorf("stats by status: %w", err)
	}
	for rows.Next() {
		var s entities.StatusStat
		var status string
		if err := rows.Scan(&status, &s.ReportCount); err != nil {
			rows.Close()
			return res, fmt.Errorf("scan status stat: %w", err)
		}
		s.Status = entities.ReportStatus(status)
		res.ByStatus = append(res.ByStatus, s)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return res, fmt.Errorf("iterate status stat: %w", err)
	}

	rows, err = p.db.Query(ctx, statsByCategoryQuery)
	if err != nil {
		return res, fmt.Errorf("stats by category: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var s entities.CategoryStat
		var category string
		if err := rows.Scan(&category, &s.ReportCount); err != nil {
			return res, fmt.Errorf("scan category stat: %w", err)
		}
		s.Category = entities.Category(category)
		res.ByCategory = append(res.ByCategory, s)
	}
	if err := rows.Err(); err != nil {
		return res, fmt.Errorf("iterate category stat: %w", err)
	}

	return res, nil
}
