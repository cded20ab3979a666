package domain

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"participium/internal/entities"
	"participium/internal/lifecycle"
)

const (
	assignOfficer    = "officer"
	assignMaintainer = "maintainer"
)

// ApproveReport assigns a pending report to the least loaded officer of its office.
// The officer pool is read fresh on every call and the write only lands if the
// report is still pending.
func (u *Usecase) ApproveReport(ctx context.Context, reportID int64) (*entities.Report, error) {
	ctx, cancel := withTimeout(ctx, u.timeout)
	defer cancel()

	report, err := u.repo.GetReport(ctx, reportID)
	if err != nil {
		return nil, err
	}
	office := u.router.Office(report.Category)

	var officers []entities.Officer
	if report.Status == entities.StatusPendingApproval {
		officers, err = u.repo.ListOfficersByOffice(ctx, office)
		if err != nil {
			return nil, fmt.Errorf("list officers: %w", err)
		}
	}

	approval, err := lifecycle.PlanApproval(*report, office, officers)
	if err != nil {
		u.recordTransition(report.Status, entities.StatusAssigned, err)
		if errors.Is(err, entities.ErrNoOfficerAvailable) {
			u.metrics.Assignment(assignOfficer, err)
		}
		return nil, err
	}

	updated, err := u.repo.UpdateReport(ctx, reportID, entities.StatusPendingApproval, approval.Patch)
	u.recordTransition(entities.StatusPendingApproval, entities.StatusAssigned, err)
	u.metrics.Assignment(assignOfficer, err)
	if err != nil {
		return nil, err
	}
	u.log.Infow("report approve", "report_id", reportID, "office", approval.Office, "officer_id", approval.OfficerID)
	return updated, nil
}

// RejectReport closes a pending report with a reason.
func (u *Usecase) RejectReport(ctx context.Context, reportID int64, reason string) (*entities.Report, error) {
	ctx, cancel := withTimeout(ctx, u.timeout)
	defer cancel()

	report, err := u.repo.GetReport(ctx, reportID)
	if err != nil {
		return nil, err
	}
	patch, err := lifecycle.PlanRejection(*report, reason)
	if err != nil {
		u.recordTransition(report.Status, entities.StatusRejected, err)
		return nil, err
	}

	updated, err := u.repo.UpdateReport(ctx, reportID, entities.StatusPendingApproval, patch)
	u.recordTransition(entities.StatusPendingApproval, entities.StatusRejected, err)
	if err != nil {
		return nil, err
	}
	u.log.Infow("report reject", "report_id", reportID)
	return updated, nil
}

// AdvanceMaintainerStatus moves a delegated report along the maintainer part of
// the state machine.
func (u *Usecase) AdvanceMaintainerStatus(ctx context.Context, reportID, maintainerID int64, target string) (*entities.Report, error) {
	ctx, cancel := withTimeout(ctx, u.timeout)
	defer cancel()

	report, err := u.repo.GetReport(ctx, reportID)
	if err != nil {
		return nil, err
	}
	patch, err := lifecycle.PlanMaintainerAdvance(*report, maintainerID, target)
	if err != nil {
		to, ok := entities.ParseReportStatus(strings.TrimSpace(target))
		if !ok {
			to = "UNKNOWN"
		}
		u.recordTransition(report.Status, to, err)
		return nil, err
	}

	updated, err := u.repo.UpdateReport(ctx, reportID, report.Status, patch)
	u.recordTransition(report.Status, *patch.Status, err)
	if err != nil {
		return nil, err
	}
	u.log.Infow("report status", "report_id", reportID, "maintainer_id", maintainerID,
		"from", report.Status, "to", updated.Status)
	return updated, nil
}

// DelegateToMaintainer hands an assigned report to the least loaded external
// maintainer of its category, replacing any previous delegation.
func (u *Usecase) DelegateToMaintainer(ctx context.Context, reportID int64) (*entities.Report, error) {
	ctx, cancel := withTimeout(ctx, u.timeout)
	defer cancel()

	report, err := u.repo.GetReport(ctx, reportID)
	if err != nil {
		return nil, err
	}

	var maintainers []entities.ExternalMaintainer
	if report.Status.Active() {
		maintainers, err = u.repo.ListMaintainersByCategory(ctx, u.router.MaintainerCategory(report.Category))
		if err != nil {
			return nil, fmt.Errorf("list maintainers: %w", err)
		}
	}

	delegation, err := lifecycle.PlanDelegation(*report, maintainers)
	if err != nil {
		u.metrics.Assignment(assignMaintainer, err)
		return nil, err
	}

	updated, err := u.repo.UpdateReport(ctx, reportID, report.Status, delegation.Patch)
	u.metrics.Assignment(assignMaintainer, err)
	if err != nil {
		return nil, err
	}
	u.log.Infow("report delegate", "report_id", reportID, "maintainer_id", delegation.MaintainerID)
	return updated, nil
}

func (u *Usecase) recordTransition(from, to entities.ReportStatus, err error) {
	u.metrics.Transition(string(from), string(to), err)
}
