package lifecycle

import "participium/internal/entities"

// CanWriteComment decides whether actor may post an internal comment on r.
// Resolved reports are closed to new comments for everyone.
func CanWriteComment(r entities.Report, actor entities.Actor) error {
	if r.Status == entities.StatusResolved {
		return entities.ErrReportResolved
	}
	return checkCommentActor(r, actor)
}

// CanReadComment decides whether actor may read the internal comments of r.
// Unlike writing, reading stays open after resolution.
func CanReadComment(r entities.Report, actor entities.Actor) error {
	return checkCommentActor(r, actor)
}

func checkCommentActor(r entities.Report, actor entities.Actor) error {
	switch actor.Type {
	case entities.ActorCitizen:
		return entities.ErrRoleNotPermitted
	case entities.ActorMunicipality:
		return nil
	case entities.ActorExternalMaintainer:
		if r.ExternalMaintainerID == nil || *r.ExternalMaintainerID != actor.ID {
			return entities.ErrNotAssigned
		}
		return nil
	default:
		return entities.ErrInvalidAuthorType
	}
}

// CommentAuthorFor converts an allowed actor into the comment author union.
func CommentAuthorFor(actor entities.Actor) (entities.CommentAuthor, error) {
	switch actor.Type {
	case entities.ActorMunicipality, entities.ActorExternalMaintainer:
		return entities.CommentAuthor{Type: actor.Type, ID: actor.ID}, nil
	default:
		return entities.CommentAuthor{}, entities.ErrInvalidAuthorType
	}
}
