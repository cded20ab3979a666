// Package mapper converts between domain models and transport DTOs.
package mapper

import (
	"participium/internal/entities"
	"participium/internal/transport/http/dto"
)

// FromCreateReport builds the creation payload from the transport DTO.
func FromCreateReport(src dto.CreateReportRequest) entities.NewReport {
	return entities.NewReport{
		Title:       src.Title,
		Description: src.Description,
		Category:    src.Category,
		Latitude:    src.Latitude,
		Longitude:   src.Longitude,
		Anonymous:   src.Anonymous,
		Photos:      src.Photos,
		Status:      src.Status,
	}
}

// ToReport maps a report to its transport model. The submitter of an
// anonymous report is only revealed when showSubmitter is set.
func ToReport(r entities.Report, showSubmitter bool) dto.Report {
	out := dto.Report{
		ID:                   r.ID,
		Title:                r.Title,
		Description:          r.Description,
		Category:             string(r.Category),
		Latitude:             r.Latitude,
		Longitude:            r.Longitude,
		Anonymous:            r.Anonymous,
		Photos:               r.Photos,
		Status:               string(r.Status),
		RejectionReason:      r.RejectionReason,
		AssignedOffice:       r.AssignedOffice,
		AssignedOfficerID:    r.AssignedOfficerID,
		ExternalMaintainerID: r.ExternalMaintainerID,
		CreatedAt:            r.CreatedAt,
		UpdatedAt:            r.UpdatedAt,
	}
	if out.Photos == nil {
		out.Photos = []string{}
	}
	if !r.Anonymous || showSubmitter {
		id := r.SubmitterID
		out.SubmitterID = &id
	}
	return out
}

// ToReports maps a list of reports. showSubmitter is evaluated per report.
func ToReports(reports []entities.Report, showSubmitter func(entities.Report) bool) dto.ReportList {
	out := make([]dto.Report, 0, len(reports))
	for _, r := range reports {
		out = append(out, ToReport(r, showSubmitter(r)))
	}
	return dto.ReportList{Reports: out}
}

// ToComment maps a comment to its transport model.
func ToComment(c entities.Comment) dto.Comment {
	return dto.Comment{
		ID:                   c.ID,
		ReportID:             c.ReportID,
		Content:              c.Content,
		AuthorType:           string(c.Author.Type),
		MunicipalityUserID:   c.Author.MunicipalityUserID(),
		ExternalMaintainerID: c.Author.ExternalMaintainerID(),
		CreatedAt:            c.CreatedAt,
	}
}

// ToComments maps a list of comments.
func ToComments(comments []entities.Comment) dto.CommentList {
	out := make([]dto.Comment, 0, len(comments))
	for _, c := range comments {
		out = append(out, ToComment(c))
	}
	return dto.CommentList{Comments: out}
}

// ToOfficer maps an officer to its transport model.
func ToOfficer(o entities.Officer) dto.Officer {
	return dto.Officer{ID: o.ID, Username: o.Username, Office: o.Office}
}

// ToMaintainer maps a maintainer to its transport model.
func ToMaintainer(m entities.ExternalMaintainer) dto.Maintainer {
	return dto.Maintainer{ID: m.ID, Username: m.Username, Company: m.Company, Category: string(m.Category)}
}

// FromCreateMaintainer builds a maintainer from the transport DTO.
func FromCreateMaintainer(src dto.CreateMaintainerRequest) entities.ExternalMaintainer {
	return entities.ExternalMaintainer{
		Username: src.Username,
		Company:  src.Company,
		Category: entities.Category(src.Category),
	}
}
