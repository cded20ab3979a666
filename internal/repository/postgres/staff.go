package postgres

import (
	"context"
	"errors"
	"fmt"

	"participium/internal/entities"

	"github.com/jackc/pgx/v5/pgconn"
)

const (
	insertOfficerQuery    = `INSERT INTO officers(username, office) VALUES ($1,$2) RETURNING id`
	insertMaintainerQuery = `INSERT INTO external_maintainers(username, company, category) VALUES ($1,$2,$3) RETURNING id`
	officersByOfficeQuery = `
SELECT o.id, o.username, o.office, COUNT(r.id)
FROM officers o
LEFT JOIN reports r
    ON r.assigned_officer_id = o.id AND r.status IN ('ASSIGNED', 'IN_PROGRESS', 'SUSPENDED')
WHERE o.office = $1
GROUP BY o.id, o.username, o.office
ORDER BY o.id`
	maintainersByCategoryQuery = `
SELECT m.id, m.username, m.company, m.category, COUNT(r.id)
FROM external_maintainers m
LEFT JOIN reports r
    ON r.external_maintainer_id = m.id AND r.status <> 'RESOLVED'
WHERE m.category = $1
GROUP BY m.id, m.username, m.company, m.category
ORDER BY m.id`
)

// CreateOfficer inserts a municipal officer.
func (p *Postgres) CreateOfficer(ctx context.Context, o entities.Officer) (*entities.Officer, error) {
	if err := p.db.QueryRow(ctx, insertOfficerQuery, o.Username, o.Office).Scan(&o.ID); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, entities.ErrStaffExists
		}
		p.log.Errorw("failed to insert officer", "error", err, "username", o.Username)
		return nil, fmt.Errorf("insert officer: %w", err)
	}
	o.Workload = 0
	p.log.Infow("officer created", "officer_id", o.ID, "office", o.Office)
	return &o, nil
}

// CreateMaintainer inserts an external maintainer.
func (p *Postgres) CreateMaintainer(ctx context.Context, m entities.ExternalMaintainer) (*entities.ExternalMaintainer, error) {
	if err := p.db.QueryRow(ctx, insertMaintainerQuery, m.Username, m.Company, string(m.Category)).Scan(&m.ID); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, entities.ErrStaffExists
		}
		p.log.Errorw("failed to insert maintainer", "error", err, "username", m.Username)
		return nil, fmt.Errorf("insert maintainer: %w", err)
	}
	m.Workload = 0
	p.log.Infow("maintainer created", "maintainer_id", m.ID, "category", m.Category)
	return &m, nil
}

// ListOfficersByOffice returns officers of office with their active report counts.
func (p *Postgres) ListOfficersByOffice(ctx context.Context, office string) ([]entities.Officer, error) {
	rows, err := p.db.Query(ctx, officersByOfficeQuery, office)
	if err != nil {
		p.log.Errorw("failed to select officers", "error", err, "office", office)
		return nil, fmt.Errorf("select officers: %w", err)
	}
	defer rows.Close()

	officers := make([]entities.Officer, 0)
	for rows.Next() {
		var o entities.Officer
		if err := rows.Scan(&o.ID, &o.Username, &o.Office, &o.Workload); err != nil {
			return nil, fmt.Errorf("scan officer: %w", err)
		}
		officers = append(officers, o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate officers: %w", err)
	}
	return officers, nil
}

// ListMaintainersByCategory returns maintainers of category with their unresolved report counts.
func (p *Postgres) ListMaintainersByCategory(ctx context.Context, category entities.Category) ([]entities.ExternalMaintainer, error) {
	rows, err := p.db.Query(ctx, maintainersByCategoryQuery, string(category))
	if err != nil {
		p.log.Errorw("failed to select maintainers", "error", err, "category", category)
		return nil, fmt.Errorf("select maintainers: %w", err)
	}
	defer rows.Close()

	maintainers := make([]entities.ExternalMaintainer, 0)
	for rows.Next() {
		var m entities.ExternalMaintainer
		var cat string
		if err := rows.Scan(&m.ID, &m.Username, &m.Company, &cat, &m.Workload); err != nil {
			return nil, fmt.Errorf("scan maintainer: %w", err)
		}
		m.Category = entities.Category(cat)
		maintainers = append(maintainers, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate maintainers: %w", err)
	}
	return maintainers, nil
}
