package domain

import (
	"context"
	"fmt"
	"strings"

	"participium/internal/entities"
)

// CreateOfficer provisions a municipal officer. An empty office falls back to
// the default office.
func (u *Usecase) CreateOfficer(ctx context.Context, o entities.Officer) (*entities.Officer, error) {
	ctx, cancel := withTimeout(ctx, u.timeout)
	defer cancel()

	o.Username = strings.TrimSpace(o.Username)
	o.Office = strings.TrimSpace(o.Office)
	if o.Username == "" {
		return nil, fmt.Errorf("%w: username is required", entities.ErrInvalidArgument)
	}
	if o.Office == "" {
		o.Office = u.router.Office(entities.CategoryOther)
	}
	res, err := u.repo.CreateOfficer(ctx, o)
	if err != nil {
		return nil, err
	}
	u.log.Infow("officer create", "officer_id", res.ID, "office", res.Office)
	return res, nil
}

// CreateMaintainer provisions an external maintainer for one category.
func (u *Usecase) CreateMaintainer(ctx context.Context, m entities.ExternalMaintainer) (*entities.ExternalMaintainer, error) {
	ctx, cancel := withTimeout(ctx, u.timeout)
	defer cancel()

	m.Username = strings.TrimSpace(m.Username)
	m.Company = strings.TrimSpace(m.Company)
	if m.Username == "" || m.Company == "" {
		return nil, fmt.Errorf("%w: username and company are required", entities.ErrInvalidArgument)
	}
	if !m.Category.Valid() {
		return nil, entities.InvalidCategory(entities.Categories())
	}
	res, err := u.repo.CreateMaintainer(ctx, m)
	if err != nil {
		return nil, err
	}
	u.log.Infow("maintainer create", "maintainer_id", res.ID, "category", res.Category)
	return res, nil
}
