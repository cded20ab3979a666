// Package lifecycle holds the pure decision logic of the report lifecycle:
// new report validation, category routing, least-loaded selection, the status
// transition table and the comment authorization gate. Nothing here touches storage.
package lifecycle

import (
	"strings"

	"participium/internal/entities"
)

// ValidateNewReport checks a creation payload. The first failing rule wins.
func ValidateNewReport(p entities.NewReport) error {
	if strings.TrimSpace(p.Title) == "" {
		return entities.ErrTitleRequired
	}
	if strings.TrimSpace(p.Description) == "" {
		return entities.ErrDescriptionRequired
	}
	category := strings.TrimSpace(p.Category)
	if category == "" {
		return entities.ErrCategoryRequired
	}
	if !entities.Category(category).Valid() {
		return entities.InvalidCategory(entities.Categories())
	}
	if p.Latitude == nil || p.Longitude == nil {
		return entities.ErrCoordinatesRequired
	}
	if len(p.Photos) < entities.MinPhotos {
		return entities.ErrPhotosRequired
	}
	if len(p.Photos) > entities.MaxPhotos {
		return entities.ErrTooManyPhotos
	}
	return nil
}

// BuildReport turns a validated payload into the report to persist.
// The inbound status is discarded: every report starts pending approval.
func BuildReport(p entities.NewReport, submitterID int64) entities.Report {
	photos := make([]string, len(p.Photos))
	copy(photos, p.Photos)
	return entities.Report{
		Title:       strings.TrimSpace(p.Title),
		Description: strings.TrimSpace(p.Description),
		Category:    entities.Category(strings.TrimSpace(p.Category)),
		Latitude:    *p.Latitude,
		Longitude:   *p.Longitude,
		Anonymous:   p.Anonymous,
		SubmitterID: submitterID,
		Photos:      photos,
		Status:      entities.StatusPendingApproval,
	}
}
