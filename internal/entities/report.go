// Package entities contains core business entities.
package entities

import "time"

// ReportStatus enumerates report lifecycle states.
type ReportStatus string

const (
	// StatusPendingApproval is the initial state of every new report.
	StatusPendingApproval ReportStatus = "PENDING_APPROVAL"
	// StatusAssigned marks a report approved and routed to an officer.
	StatusAssigned ReportStatus = "ASSIGNED"
	// StatusInProgress marks a report being worked on.
	StatusInProgress ReportStatus = "IN_PROGRESS"
	// StatusSuspended marks work paused by the maintainer.
	StatusSuspended ReportStatus = "SUSPENDED"
	// StatusResolved is terminal.
	StatusResolved ReportStatus = "RESOLVED"
	// StatusRejected is terminal.
	StatusRejected ReportStatus = "REJECTED"
)

// ParseReportStatus returns the status for its wire value.
func ParseReportStatus(s string) (ReportStatus, bool) {
	switch st := ReportStatus(s); st {
	case StatusPendingApproval, StatusAssigned, StatusInProgress, StatusSuspended, StatusResolved, StatusRejected:
		return st, true
	default:
		return "", false
	}
}

// Active reports whether the status counts towards an officer's workload.
func (s ReportStatus) Active() bool {
	return s == StatusAssigned || s == StatusInProgress || s == StatusSuspended
}

// Category is a report category from the fixed enumeration.
type Category string

const (
	CategoryWaterSupply            Category = "water_supply"
	CategoryArchitecturalBarriers  Category = "architectural_barriers"
	CategorySewerSystem            Category = "sewer_system"
	CategoryPublicLighting         Category = "public_lighting"
	CategoryWaste                  Category = "waste"
	CategoryRoadSignsTrafficLights Category = "road_signs_traffic_lights"
	CategoryRoadsUrbanFurnishings  Category = "roads_urban_furnishings"
	CategoryPublicGreenAreas       Category = "public_green_areas_playgrounds"
	CategoryOther                  Category = "other"
)

// Categories returns every valid category in declaration order.
func Categories() []Category {
	return []Category{
		CategoryWaterSupply,
		CategoryArchitecturalBarriers,
		CategorySewerSystem,
		CategoryPublicLighting,
		CategoryWaste,
		CategoryRoadSignsTrafficLights,
		CategoryRoadsUrbanFurnishings,
		CategoryPublicGreenAreas,
		CategoryOther,
	}
}

// Valid reports whether c belongs to the enumeration.
func (c Category) Valid() bool {
	for _, v := range Categories() {
		if v == c {
			return true
		}
	}
	return false
}

const (
	// MinPhotos is the minimum number of photos on a report.
	MinPhotos = 1
	// MaxPhotos is the maximum number of photos on a report.
	MaxPhotos = 3
)

// Report is a citizen-submitted infrastructure issue.
type Report struct {
	ID                   int64
	Title                string
	Description          string
	Category             Category
	Latitude             float64
	Longitude            float64
	Anonymous            bool
	SubmitterID          int64
	Photos               []string
	Status               ReportStatus
	RejectionReason      string
	AssignedOffice       string
	AssignedOfficerID    *int64
	ExternalMaintainerID *int64
	CreatedAt            time.Time
	UpdatedAt            time.Time
}

// NewReport is the inbound payload of a report creation request.
// Optional fields are pointers so that "missing" can be told apart from zero.
type NewReport struct {
	Title       string
	Description string
	Category    string
	Latitude    *float64
	Longitude   *float64
	Anonymous   bool
	Photos      []string
	// Status is ignored; new reports always start in StatusPendingApproval.
	Status string
}

// ReportPatch lists the lifecycle fields a conditional update may change.
// Nil fields are left untouched.
type ReportPatch struct {
	Status               *ReportStatus
	RejectionReason      *string
	AssignedOffice       *string
	AssignedOfficerID    *int64
	ExternalMaintainerID *int64

	// RequireMaintainerID is a guard, not a change: when set, the update only
	// applies while the stored external maintainer still equals it.
	RequireMaintainerID *int64
}

// Conflict reports why the patch may not apply to a report currently in
// status with maintainerID. A failed maintainer guard wins over a status
// mismatch. It returns nil when both conditions hold.
func (p ReportPatch) Conflict(expected, status ReportStatus, maintainerID *int64) error {
	if p.RequireMaintainerID != nil && (maintainerID == nil || *maintainerID != *p.RequireMaintainerID) {
		return ErrNotAuthorized
	}
	if status != expected {
		return InvalidTransition(status)
	}
	return nil
}

// ReportFilter narrows report listings.
type ReportFilter struct {
	Status       *ReportStatus
	Category     *Category
	OfficerID    *int64
	MaintainerID *int64
	SubmitterID  *int64
	Limit        int
	Offset       int
}
