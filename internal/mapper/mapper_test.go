package mapper

import (
	"testing"

	"participium/internal/entities"

	"github.com/stretchr/testify/require"
)

func TestToReportHidesAnonymousSubmitter(t *testing.T) {
	r := entities.Report{ID: 1, SubmitterID: 42, Anonymous: true, Status: entities.StatusPendingApproval}

	require.Nil(t, ToReport(r, false).SubmitterID)
	require.Equal(t, int64(42), *ToReport(r, true).SubmitterID)

	r.Anonymous = false
	require.Equal(t, int64(42), *ToReport(r, false).SubmitterID)
	require.Equal(t, []string{}, ToReport(r, false).Photos)
}

func TestToCommentSetsExactlyOneAuthor(t *testing.T) {
	c := ToComment(entities.Comment{
		ID:     1,
		Author: entities.CommentAuthor{Type: entities.ActorExternalMaintainer, ID: 5},
	})

	require.Equal(t, "EXTERNAL_MAINTAINER", c.AuthorType)
	require.Nil(t, c.MunicipalityUserID)
	require.Equal(t, int64(5), *c.ExternalMaintainerID)
}
