package domain

import (
	"context"

	"participium/internal/entities"
)

// WorkloadStats returns active report counts per officer, maintainer, status and category.
func (u *Usecase) WorkloadStats(ctx context.Context) (entities.WorkloadStats, error) {
	ctx, cancel := withTimeout(ctx, u.timeout)
	defer cancel()
	return u.repo.WorkloadStats(ctx)
}
