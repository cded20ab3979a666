// Package entities contains core business entities.
package entities

// WorkloadStats aggregates active report counts by officer, maintainer and status.
type WorkloadStats struct {
	ByOfficer    []OfficerStat    `json:"by_officer"`
	ByMaintainer []MaintainerStat `json:"by_maintainer"`
	ByStatus     []StatusStat     `json:"by_status"`
	ByCategory   []CategoryStat   `json:"by_category"`
}

// OfficerStat contains the active report count of an officer.
type OfficerStat struct {
	OfficerID int64  `json:"officer_id"`
	Office    string `json:"office"`
	ActiveCnt int64  `json:"active_cnt"`
}

// MaintainerStat contains the unresolved delegated report count of a maintainer.
type MaintainerStat struct {
	MaintainerID int64    `json:"maintainer_id"`
	Category     Category `json:"category"`
	ActiveCnt    int64    `json:"active_cnt"`
}

// StatusStat describes report counts grouped by status.
type StatusStat struct {
	Status      ReportStatus `json:"status"`
	ReportCount int64        `json:"report_count"`
}

// CategoryStat describes report counts grouped by category.
type CategoryStat struct {
	Category    Category `json:"category"`
	ReportCount int64    `json:"report_count"`
}
