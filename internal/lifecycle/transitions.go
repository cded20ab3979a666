package lifecycle

import (
	"strings"

	"participium/internal/entities"
)

// maintainerTransitions lists the targets an external maintainer may move a report to.
var maintainerTransitions = map[entities.ReportStatus][]entities.ReportStatus{
	entities.StatusAssigned:   {entities.StatusInProgress},
	entities.StatusInProgress: {entities.StatusSuspended, entities.StatusResolved},
	entities.StatusSuspended:  {entities.StatusInProgress},
}

// ensureMaintainerTransition validates from -> to against the maintainer table.
func ensureMaintainerTransition(from, to entities.ReportStatus) error {
	for _, allowed := range maintainerTransitions[from] {
		if allowed == to {
			return nil
		}
	}
	return entities.InvalidTransition(from)
}

// ensurePending is the precondition of municipal approval and rejection.
func ensurePending(r entities.Report) error {
	if r.Status != entities.StatusPendingApproval {
		return entities.InvalidTransition(r.Status)
	}
	return nil
}

// Approval is the outcome of a successful approval decision.
type Approval struct {
	Office    string
	OfficerID int64
	Patch     entities.ReportPatch
}

// PlanApproval decides the assignment for a pending report given the officers
// of its office. office must be the router's answer for r.Category.
func PlanApproval(r entities.Report, office string, officers []entities.Officer) (Approval, error) {
	if err := ensurePending(r); err != nil {
		return Approval{}, err
	}
	id, ok := SelectLeastLoaded(OfficerCandidates(officers))
	if !ok {
		return Approval{}, entities.NoOfficerAvailable(office)
	}
	status := entities.StatusAssigned
	return Approval{
		Office:    office,
		OfficerID: id,
		Patch: entities.ReportPatch{
			Status:            &status,
			AssignedOffice:    &office,
			AssignedOfficerID: &id,
		},
	}, nil
}

// PlanRejection validates a rejection of r and returns the patch to apply.
func PlanRejection(r entities.Report, reason string) (entities.ReportPatch, error) {
	if err := ensurePending(r); err != nil {
		return entities.ReportPatch{}, err
	}
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return entities.ReportPatch{}, entities.ErrRejectionReasonRequired
	}
	status := entities.StatusRejected
	return entities.ReportPatch{Status: &status, RejectionReason: &reason}, nil
}

// PlanMaintainerAdvance validates a work progress update by maintainerID.
// Authorization is checked before the target is parsed, and the target is
// parsed before the transition table is consulted. The patch keeps the
// maintainer as a write guard so a concurrent re-delegation wins.
func PlanMaintainerAdvance(r entities.Report, maintainerID int64, target string) (entities.ReportPatch, error) {
	if r.ExternalMaintainerID == nil || *r.ExternalMaintainerID != maintainerID {
		return entities.ReportPatch{}, entities.ErrNotAuthorized
	}
	to, ok := entities.ParseReportStatus(strings.TrimSpace(target))
	if !ok {
		return entities.ReportPatch{}, entities.ErrInvalidStatus
	}
	if err := ensureMaintainerTransition(r.Status, to); err != nil {
		return entities.ReportPatch{}, err
	}
	return entities.ReportPatch{Status: &to, RequireMaintainerID: &maintainerID}, nil
}

// Delegation is the outcome of a successful delegation decision.
type Delegation struct {
	MaintainerID int64
	Patch        entities.ReportPatch
}

// PlanDelegation picks the least loaded maintainer of r's category. The report
// must be assigned and not yet resolved. An existing delegation is overwritten.
func PlanDelegation(r entities.Report, maintainers []entities.ExternalMaintainer) (Delegation, error) {
	if !r.Status.Active() {
		return Delegation{}, entities.InvalidTransition(r.Status)
	}
	id, ok := SelectLeastLoaded(MaintainerCandidates(maintainers))
	if !ok {
		return Delegation{}, entities.NoMaintainersAvailable(r.Category)
	}
	return Delegation{
		MaintainerID: id,
		Patch:        entities.ReportPatch{ExternalMaintainerID: &id},
	}, nil
}
