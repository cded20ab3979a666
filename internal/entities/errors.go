// Package entities contains core business entities and errors.
package entities

import (
	"errors"
	"fmt"
	"strings"
)

// ErrorKind identifies a failure of the report lifecycle engine.
type ErrorKind string

const (
	KindTitleRequired       ErrorKind = "TITLE_REQUIRED"
	KindDescriptionRequired ErrorKind = "DESCRIPTION_REQUIRED"
	KindCategoryRequired    ErrorKind = "CATEGORY_REQUIRED"
	KindInvalidCategory     ErrorKind = "INVALID_CATEGORY"
	KindCoordinatesRequired ErrorKind = "COORDINATES_REQUIRED"
	KindPhotosRequired      ErrorKind = "PHOTOS_REQUIRED"
	KindTooManyPhotos       ErrorKind = "TOO_MANY_PHOTOS"

	KindInvalidTransition       ErrorKind = "INVALID_TRANSITION"
	KindInvalidStatus           ErrorKind = "INVALID_STATUS"
	KindRejectionReasonRequired ErrorKind = "REJECTION_REASON_REQUIRED"
	KindNoOfficerAvailable      ErrorKind = "NO_OFFICER_AVAILABLE"
	KindNoMaintainersAvailable  ErrorKind = "NO_MAINTAINERS_AVAILABLE"
	KindNotAuthorized           ErrorKind = "NOT_AUTHORIZED"
	KindNotFound                ErrorKind = "NOT_FOUND"

	KindReportResolved    ErrorKind = "REPORT_RESOLVED"
	KindRoleNotPermitted  ErrorKind = "ROLE_NOT_PERMITTED"
	KindNotAssigned       ErrorKind = "NOT_ASSIGNED"
	KindInvalidAuthorType ErrorKind = "INVALID_AUTHOR_TYPE"
)

// Error is the closed error type returned by the lifecycle engine.
// Only the fields relevant to Kind are populated.
type Error struct {
	Kind            ErrorKind
	Status          ReportStatus
	Office          string
	Category        Category
	ValidCategories []Category
}

func (e *Error) Error() string {
	switch e.Kind {
	case KindTitleRequired:
		return "title is required"
	case KindDescriptionRequired:
		return "description is required"
	case KindCategoryRequired:
		return "category is required"
	case KindInvalidCategory:
		if len(e.ValidCategories) == 0 {
			return "invalid category"
		}
		valid := make([]string, 0, len(e.ValidCategories))
		for _, c := range e.ValidCategories {
			valid = append(valid, string(c))
		}
		return "invalid category, valid values: " + strings.Join(valid, ", ")
	case KindCoordinatesRequired:
		return "latitude and longitude are required"
	case KindPhotosRequired:
		return "at least one photo is required"
	case KindTooManyPhotos:
		return fmt.Sprintf("at most %d photos are allowed", MaxPhotos)
	case KindInvalidTransition:
		if e.Status == "" {
			return "invalid status transition"
		}
		return fmt.Sprintf("invalid status transition from %s", e.Status)
	case KindInvalidStatus:
		return "unrecognized target status"
	case KindRejectionReasonRequired:
		return "rejection reason is required"
	case KindNoOfficerAvailable:
		return fmt.Sprintf("no officer available for office %q", e.Office)
	case KindNoMaintainersAvailable:
		return fmt.Sprintf("no external maintainers available for category %q", e.Category)
	case KindNotAuthorized:
		return "maintainer is not assigned to this report"
	case KindNotFound:
		return "report not found"
	case KindReportResolved:
		return "report is resolved"
	case KindRoleNotPermitted:
		return "role is not permitted to access comments"
	case KindNotAssigned:
		return "maintainer is not assigned to this report"
	case KindInvalidAuthorType:
		return "invalid author type"
	default:
		return strings.ToLower(string(e.Kind))
	}
}

// Is matches any *Error of the same kind, so the sentinels below work with errors.Is
// regardless of payload.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Kind == e.Kind
}

var (
	ErrTitleRequired       = &Error{Kind: KindTitleRequired}
	ErrDescriptionRequired = &Error{Kind: KindDescriptionRequired}
	ErrCategoryRequired    = &Error{Kind: KindCategoryRequired}
	ErrInvalidCategory     = &Error{Kind: KindInvalidCategory}
	ErrCoordinatesRequired = &Error{Kind: KindCoordinatesRequired}
	ErrPhotosRequired      = &Error{Kind: KindPhotosRequired}
	ErrTooManyPhotos       = &Error{Kind: KindTooManyPhotos}

	ErrInvalidTransition       = &Error{Kind: KindInvalidTransition}
	ErrInvalidStatus           = &Error{Kind: KindInvalidStatus}
	ErrRejectionReasonRequired = &Error{Kind: KindRejectionReasonRequired}
	ErrNoOfficerAvailable      = &Error{Kind: KindNoOfficerAvailable}
	ErrNoMaintainersAvailable  = &Error{Kind: KindNoMaintainersAvailable}
	ErrNotAuthorized           = &Error{Kind: KindNotAuthorized}
	ErrNotFound                = &Error{Kind: KindNotFound}

	ErrReportResolved    = &Error{Kind: KindReportResolved}
	ErrRoleNotPermitted  = &Error{Kind: KindRoleNotPermitted}
	ErrNotAssigned       = &Error{Kind: KindNotAssigned}
	ErrInvalidAuthorType = &Error{Kind: KindInvalidAuthorType}
)

var (
	// ErrInvalidArgument signals failed input validation outside the engine taxonomy.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrStaffExists signals a duplicate officer or maintainer account.
	ErrStaffExists = errors.New("staff member exists")
	// ErrImageNotFound is returned by image stores for unknown keys.
	ErrImageNotFound = errors.New("image not found")
)

// InvalidTransition reports a rejected status change from current.
func InvalidTransition(current ReportStatus) error {
	return &Error{Kind: KindInvalidTransition, Status: current}
}

// InvalidCategory reports an unknown category along with the accepted values.
func InvalidCategory(valid []Category) error {
	return &Error{Kind: KindInvalidCategory, ValidCategories: valid}
}

// NoOfficerAvailable reports an empty officer pool for office.
func NoOfficerAvailable(office string) error {
	return &Error{Kind: KindNoOfficerAvailable, Office: office}
}

// NoMaintainersAvailable reports an empty maintainer pool for category.
func NoMaintainersAvailable(category Category) error {
	return &Error{Kind: KindNoMaintainersAvailable, Category: category}
}

// AsError unwraps err into the engine error type.
func AsError(err error) (*Error, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}
