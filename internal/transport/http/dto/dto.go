// Package dto holds the JSON shapes of the HTTP API.
//
// Validation tags only check wire shape (ranges, lengths). Business rules such
// as required titles or valid status names are left to the lifecycle engine so
// that its error ordering is preserved.
package dto

import "time"

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Error ErrorBody `json:"error"`
}

// ErrorBody describes one failure. Optional fields are set only for the kinds they belong to.
type ErrorBody struct {
	Code            string   `json:"code"`
	Message         string   `json:"message"`
	CurrentStatus   string   `json:"current_status,omitempty"`
	Office          string   `json:"office,omitempty"`
	Category        string   `json:"category,omitempty"`
	ValidCategories []string `json:"valid_categories,omitempty"`
}

// CreateReportRequest is a citizen report submission.
type CreateReportRequest struct {
	Title       string   `json:"title" validate:"max=200"`
	Description string   `json:"description" validate:"max=5000"`
	Category    string   `json:"category" validate:"max=64"`
	Latitude    *float64 `json:"latitude" validate:"omitempty,gte=-90,lte=90"`
	Longitude   *float64 `json:"longitude" validate:"omitempty,gte=-180,lte=180"`
	Anonymous   bool     `json:"anonymous"`
	Photos      []string `json:"photos" validate:"omitempty,dive,max=128"`
	Status      string   `json:"status,omitempty"`
}

// RejectRequest carries the rejection reason.
type RejectRequest struct {
	Reason string `json:"reason" validate:"max=2000"`
}

// StatusRequest carries the maintainer's target status.
type StatusRequest struct {
	Status string `json:"status" validate:"max=32"`
}

// CommentRequest is an internal comment submission.
type CommentRequest struct {
	Content string `json:"content" validate:"max=4000"`
}

// CreateOfficerRequest provisions a municipal officer.
type CreateOfficerRequest struct {
	Username string `json:"username" validate:"required,max=64"`
	Office   string `json:"office" validate:"max=128"`
}

// CreateMaintainerRequest provisions an external maintainer.
type CreateMaintainerRequest struct {
	Username string `json:"username" validate:"required,max=64"`
	Company  string `json:"company" validate:"required,max=128"`
	Category string `json:"category" validate:"required,max=64"`
}

// Report is the public view of a report.
type Report struct {
	ID                   int64     `json:"id"`
	Title                string    `json:"title"`
	Description          string    `json:"description"`
	Category             string    `json:"category"`
	Latitude             float64   `json:"latitude"`
	Longitude            float64   `json:"longitude"`
	Anonymous            bool      `json:"anonymous"`
	SubmitterID          *int64    `json:"submitter_id,omitempty"`
	Photos               []string  `json:"photos"`
	Status               string    `json:"status"`
	RejectionReason      string    `json:"rejection_reason,omitempty"`
	AssignedOffice       string    `json:"assigned_office,omitempty"`
	AssignedOfficerID    *int64    `json:"assigned_officer_id,omitempty"`
	ExternalMaintainerID *int64    `json:"external_maintainer_id,omitempty"`
	CreatedAt            time.Time `json:"created_at"`
	UpdatedAt            time.Time `json:"updated_at"`
}

// ReportList wraps a page of reports.
type ReportList struct {
	Reports []Report `json:"reports"`
}

// Comment is the view of an internal comment.
type Comment struct {
	ID                   int64     `json:"id"`
	ReportID             int64     `json:"report_id"`
	Content              string    `json:"content"`
	AuthorType           string    `json:"author_type"`
	MunicipalityUserID   *int64    `json:"municipality_user_id,omitempty"`
	ExternalMaintainerID *int64    `json:"external_maintainer_id,omitempty"`
	CreatedAt            time.Time `json:"created_at"`
}

// CommentList wraps the comments of a report.
type CommentList struct {
	Comments []Comment `json:"comments"`
}

// Officer is the view of a municipal officer.
type Officer struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Office   string `json:"office"`
}

// Maintainer is the view of an external maintainer.
type Maintainer struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Company  string `json:"company"`
	Category string `json:"category"`
}

// Photo is returned after an upload.
type Photo struct {
	Key string `json:"key"`
}
