// Package entities contains core business entities.
package entities

import "time"

// ActorType is the role an authenticated caller acts under.
type ActorType string

const (
	ActorCitizen            ActorType = "CITIZEN"
	ActorMunicipality       ActorType = "MUNICIPALITY"
	ActorExternalMaintainer ActorType = "EXTERNAL_MAINTAINER"
	ActorAdmin              ActorType = "ADMIN"
)

// Actor identifies the caller of an engine operation.
type Actor struct {
	Type ActorType
	ID   int64
}

// CommentAuthor is the author of a comment: exactly one of a municipality
// user or an external maintainer.
type CommentAuthor struct {
	Type ActorType
	ID   int64
}

// MunicipalityUserID returns the author id when written by municipal staff.
func (a CommentAuthor) MunicipalityUserID() *int64 {
	if a.Type != ActorMunicipality {
		return nil
	}
	id := a.ID
	return &id
}

// ExternalMaintainerID returns the author id when written by a maintainer.
func (a CommentAuthor) ExternalMaintainerID() *int64 {
	if a.Type != ActorExternalMaintainer {
		return nil
	}
	id := a.ID
	return &id
}

// AuthorFromColumns rebuilds the author from the two nullable storage columns.
func AuthorFromColumns(municipalityUserID, externalMaintainerID *int64) CommentAuthor {
	switch {
	case municipalityUserID != nil:
		return CommentAuthor{Type: ActorMunicipality, ID: *municipalityUserID}
	case externalMaintainerID != nil:
		return CommentAuthor{Type: ActorExternalMaintainer, ID: *externalMaintainerID}
	default:
		return CommentAuthor{}
	}
}

// Comment is an internal note attached to a report.
type Comment struct {
	ID        int64
	ReportID  int64
	Content   string
	Author    CommentAuthor
	CreatedAt time.Time
}
