package domain

import (
	"context"
	"fmt"
	"strings"

	"participium/internal/entities"
	"participium/internal/lifecycle"
)

// PostComment adds an internal note to a report on behalf of actor.
func (u *Usecase) PostComment(ctx context.Context, reportID int64, actor entities.Actor, content string) (*entities.Comment, error) {
	ctx, cancel := withTimeout(ctx, u.timeout)
	defer cancel()

	report, err := u.repo.GetReport(ctx, reportID)
	if err != nil {
		return nil, err
	}
	if err := lifecycle.CanWriteComment(*report, actor); err != nil {
		u.metrics.Comment(string(actor.Type), err)
		return nil, err
	}
	author, err := lifecycle.CommentAuthorFor(actor)
	if err != nil {
		u.metrics.Comment(string(actor.Type), err)
		return nil, err
	}
	content = strings.TrimSpace(content)
	if content == "" {
		err := fmt.Errorf("%w: content is required", entities.ErrInvalidArgument)
		u.metrics.Comment(string(actor.Type), err)
		return nil, err
	}

	comment, err := u.repo.CreateComment(ctx, entities.Comment{
		ReportID: reportID,
		Content:  content,
		Author:   author,
	})
	u.metrics.Comment(string(actor.Type), err)
	if err != nil {
		u.log.Errorw("failed to create comment", "report_id", reportID, "err", err)
		return nil, err
	}
	u.log.Infow("comment create", "report_id", reportID, "comment_id", comment.ID, "actor", actor.Type)
	return comment, nil
}

// ListComments returns the internal notes of a report if actor may read them.
func (u *Usecase) ListComments(ctx context.Context, reportID int64, actor entities.Actor) ([]entities.Comment, error) {
	ctx, cancel := withTimeout(ctx, u.timeout)
	defer cancel()

	report, err := u.repo.GetReport(ctx, reportID)
	if err != nil {
		return nil, err
	}
	if err := lifecycle.CanReadComment(*report, actor); err != nil {
		return nil, err
	}
	return u.repo.ListComments(ctx, reportID)
}
