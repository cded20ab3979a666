package domain

import (
	"context"
	"errors"
	"testing"
	"time"

	"participium/internal/entities"
	"participium/internal/imagestore"
	"participium/internal/lifecycle"
	"participium/internal/metrics"
	"participium/internal/repository"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type repoMock struct{ mock.Mock }

var _ repository.Repository = (*repoMock)(nil)

func (m *repoMock) OnStart(_ context.Context) error { return nil }
func (m *repoMock) OnStop(_ context.Context) error  { return nil }

func (m *repoMock) CreateReport(ctx context.Context, r entities.Report) (*entities.Report, error) {
	args := m.Called(ctx, r)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Report), args.Error(1)
}

func (m *repoMock) GetReport(ctx context.Context, id int64) (*entities.Report, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Report), args.Error(1)
}

func (m *repoMock) ListReports(ctx context.Context, filter entities.ReportFilter) ([]entities.Report, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entities.Report), args.Error(1)
}

func (m *repoMock) UpdateReport(ctx context.Context, id int64, expected entities.ReportStatus, patch entities.ReportPatch) (*entities.Report, error) {
	args := m.Called(ctx, id, expected, patch)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Report), args.Error(1)
}

func (m *repoMock) CreateOfficer(ctx context.Context, o entities.Officer) (*entities.Officer, error) {
	args := m.Called(ctx, o)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Officer), args.Error(1)
}

func (m *repoMock) CreateMaintainer(ctx context.Context, em entities.ExternalMaintainer) (*entities.ExternalMaintainer, error) {
	args := m.Called(ctx, em)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.ExternalMaintainer), args.Error(1)
}

func (m *repoMock) ListOfficersByOffice(ctx context.Context, office string) ([]entities.Officer, error) {
	args := m.Called(ctx, office)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entities.Officer), args.Error(1)
}

func (m *repoMock) ListMaintainersByCategory(ctx context.Context, category entities.Category) ([]entities.ExternalMaintainer, error) {
	args := m.Called(ctx, category)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entities.ExternalMaintainer), args.Error(1)
}

func (m *repoMock) CreateComment(ctx context.Context, c entities.Comment) (*entities.Comment, error) {
	args := m.Called(ctx, c)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Comment), args.Error(1)
}

func (m *repoMock) ListComments(ctx context.Context, reportID int64) ([]entities.Comment, error) {
	args := m.Called(ctx, reportID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entities.Comment), args.Error(1)
}

func (m *repoMock) WorkloadStats(ctx context.Context) (entities.WorkloadStats, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return entities.WorkloadStats{}, args.Error(1)
	}
	return args.Get(0).(entities.WorkloadStats), args.Error(1)
}

type imagesMock struct{ mock.Mock }

var _ imagestore.Store = (*imagesMock)(nil)

func (m *imagesMock) Put(ctx context.Context, data []byte, contentType string) (string, error) {
	args := m.Called(ctx, data, contentType)
	return args.String(0), args.Error(1)
}

func (m *imagesMock) Get(ctx context.Context, key string) (imagestore.Image, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return imagestore.Image{}, args.Error(1)
	}
	return args.Get(0).(imagestore.Image), args.Error(1)
}

func (m *imagesMock) Delete(ctx context.Context, key string) error {
	return m.Called(ctx, key).Error(0)
}

func newTestUsecase(repo *repoMock, images *imagesMock) *Usecase {
	return New(
		zap.NewNop().Sugar(),
		context.Background(),
		repo,
		lifecycle.NewRouter(nil),
		images,
		metrics.NewRecorder(prometheus.NewRegistry()),
		time.Second,
	)
}

func ptr[T any](v T) *T { return &v }

func wasteReport(status entities.ReportStatus) *entities.Report {
	return &entities.Report{
		ID:       10,
		Title:    "Overflowing bin",
		Category: entities.CategoryWaste,
		Status:   status,
		Photos:   []string{"a.jpg"},
	}
}

const wasteOffice = "sanitation and waste management officer"

func TestUsecase_CreateReportValidation(t *testing.T) {
	repo := &repoMock{}
	uc := newTestUsecase(repo, &imagesMock{})

	_, err := uc.CreateReport(context.Background(), 1, entities.NewReport{Description: "x"})
	require.ErrorIs(t, err, entities.ErrTitleRequired)
	repo.AssertNotCalled(t, "CreateReport", mock.Anything, mock.Anything)
}

func TestUsecase_CreateReportForcesPending(t *testing.T) {
	repo := &repoMock{}
	uc := newTestUsecase(repo, &imagesMock{})

	repo.On("CreateReport", mock.Anything, mock.MatchedBy(func(r entities.Report) bool {
		return r.Status == entities.StatusPendingApproval && r.SubmitterID == 42
	})).Return(&entities.Report{ID: 1, Status: entities.StatusPendingApproval}, nil)

	r, err := uc.CreateReport(context.Background(), 42, entities.NewReport{
		Title: "Broken lamp", Description: "Dark street", Category: "public_lighting",
		Latitude: ptr(45.0), Longitude: ptr(7.6), Photos: []string{"p.jpg"}, Status: "RESOLVED",
	})
	require.NoError(t, err)
	require.Equal(t, entities.StatusPendingApproval, r.Status)
	repo.AssertExpectations(t)
}

func TestUsecase_CreateReportFailureKeepsReferencedPhotos(t *testing.T) {
	ctx := context.Background()
	repo := &repoMock{}
	store, err := imagestore.NewFS(zap.NewNop().Sugar(), t.TempDir(), 0)
	require.NoError(t, err)
	uc := New(zap.NewNop().Sugar(), ctx, repo, lifecycle.NewRouter(nil), store,
		metrics.NewRecorder(prometheus.NewRegistry()), time.Second)

	// key already attached to a stored report
	shared, err := store.Put(ctx, []byte("jpeg"), "image/jpeg")
	require.NoError(t, err)

	repo.On("CreateReport", mock.Anything, mock.Anything).Return(nil, errors.New("insert failed"))

	_, err = uc.CreateReport(ctx, 2, entities.NewReport{
		Title: "t", Description: "d", Category: "waste",
		Latitude: ptr(1.0), Longitude: ptr(2.0), Photos: []string{shared},
	})
	require.Error(t, err)

	img, err := store.Get(ctx, shared)
	require.NoError(t, err)
	require.Equal(t, []byte("jpeg"), img.Data)
}

func TestUsecase_CreateReportFailureDeletesNothing(t *testing.T) {
	repo := &repoMock{}
	images := &imagesMock{}
	uc := newTestUsecase(repo, images)

	repo.On("CreateReport", mock.Anything, mock.Anything).Return(nil, errors.New("db down"))

	_, err := uc.CreateReport(context.Background(), 1, entities.NewReport{
		Title: "t", Description: "d", Category: "waste",
		Latitude: ptr(1.0), Longitude: ptr(2.0), Photos: []string{"a.jpg", "b.png"},
	})
	require.Error(t, err)
	images.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestUsecase_ListReportsClampsLimit(t *testing.T) {
	repo := &repoMock{}
	uc := newTestUsecase(repo, &imagesMock{})

	repo.On("ListReports", mock.Anything, entities.ReportFilter{Limit: defaultListLimit}).Return([]entities.Report{}, nil).Once()
	repo.On("ListReports", mock.Anything, entities.ReportFilter{Limit: maxListLimit}).Return([]entities.Report{}, nil).Once()

	_, err := uc.ListReports(context.Background(), entities.ReportFilter{})
	require.NoError(t, err)
	_, err = uc.ListReports(context.Background(), entities.ReportFilter{Limit: 10000})
	require.NoError(t, err)
	_, err = uc.ListReports(context.Background(), entities.ReportFilter{Offset: -1})
	require.ErrorIs(t, err, entities.ErrInvalidArgument)
	repo.AssertExpectations(t)
}

func TestUsecase_ApproveReportPicksLeastLoadedLowestID(t *testing.T) {
	repo := &repoMock{}
	uc := newTestUsecase(repo, &imagesMock{})

	repo.On("GetReport", mock.Anything, int64(10)).Return(wasteReport(entities.StatusPendingApproval), nil)
	repo.On("ListOfficersByOffice", mock.Anything, wasteOffice).Return([]entities.Officer{
		{ID: 3, Workload: 1}, {ID: 5, Workload: 0}, {ID: 2, Workload: 0},
	}, nil)
	repo.On("UpdateReport", mock.Anything, int64(10), entities.StatusPendingApproval,
		mock.MatchedBy(func(p entities.ReportPatch) bool {
			return *p.Status == entities.StatusAssigned && *p.AssignedOfficerID == 2 && *p.AssignedOffice == wasteOffice
		})).Return(&entities.Report{ID: 10, Status: entities.StatusAssigned, AssignedOfficerID: ptr(int64(2))}, nil)

	r, err := uc.ApproveReport(context.Background(), 10)
	require.NoError(t, err)
	require.Equal(t, int64(2), *r.AssignedOfficerID)
	repo.AssertExpectations(t)
}

func TestUsecase_ApproveReportTwiceFails(t *testing.T) {
	repo := &repoMock{}
	uc := newTestUsecase(repo, &imagesMock{})

	repo.On("GetReport", mock.Anything, int64(10)).Return(wasteReport(entities.StatusAssigned), nil)

	_, err := uc.ApproveReport(context.Background(), 10)
	require.ErrorIs(t, err, entities.ErrInvalidTransition)
	e, ok := entities.AsError(err)
	require.True(t, ok)
	require.Equal(t, entities.StatusAssigned, e.Status)
	repo.AssertNotCalled(t, "ListOfficersByOffice", mock.Anything, mock.Anything)
	repo.AssertNotCalled(t, "UpdateReport", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestUsecase_ApproveReportLosesRace(t *testing.T) {
	repo := &repoMock{}
	uc := newTestUsecase(repo, &imagesMock{})

	repo.On("GetReport", mock.Anything, int64(10)).Return(wasteReport(entities.StatusPendingApproval), nil)
	repo.On("ListOfficersByOffice", mock.Anything, wasteOffice).Return([]entities.Officer{{ID: 1}}, nil)
	repo.On("UpdateReport", mock.Anything, int64(10), entities.StatusPendingApproval, mock.Anything).
		Return(nil, entities.InvalidTransition(entities.StatusAssigned))

	_, err := uc.ApproveReport(context.Background(), 10)
	require.ErrorIs(t, err, entities.ErrInvalidTransition)
}

func TestUsecase_ApproveReportNoOfficer(t *testing.T) {
	repo := &repoMock{}
	uc := newTestUsecase(repo, &imagesMock{})

	repo.On("GetReport", mock.Anything, int64(10)).Return(wasteReport(entities.StatusPendingApproval), nil)
	repo.On("ListOfficersByOffice", mock.Anything, wasteOffice).Return([]entities.Officer{}, nil)

	_, err := uc.ApproveReport(context.Background(), 10)
	require.ErrorIs(t, err, entities.ErrNoOfficerAvailable)
	e, _ := entities.AsError(err)
	require.Equal(t, wasteOffice, e.Office)
}

func TestUsecase_ApproveReportNotFound(t *testing.T) {
	repo := &repoMock{}
	uc := newTestUsecase(repo, &imagesMock{})

	repo.On("GetReport", mock.Anything, int64(99)).Return(nil, entities.ErrNotFound)

	_, err := uc.ApproveReport(context.Background(), 99)
	require.ErrorIs(t, err, entities.ErrNotFound)
}

func TestUsecase_RejectReport(t *testing.T) {
	t.Run("reason required", func(t *testing.T) {
		repo := &repoMock{}
		uc := newTestUsecase(repo, &imagesMock{})
		repo.On("GetReport", mock.Anything, int64(10)).Return(wasteReport(entities.StatusPendingApproval), nil)

		_, err := uc.RejectReport(context.Background(), 10, "   ")
		require.ErrorIs(t, err, entities.ErrRejectionReasonRequired)
		repo.AssertNotCalled(t, "UpdateReport", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("rejects pending", func(t *testing.T) {
		repo := &repoMock{}
		uc := newTestUsecase(repo, &imagesMock{})
		repo.On("GetReport", mock.Anything, int64(10)).Return(wasteReport(entities.StatusPendingApproval), nil)
		repo.On("UpdateReport", mock.Anything, int64(10), entities.StatusPendingApproval,
			mock.MatchedBy(func(p entities.ReportPatch) bool {
				return *p.Status == entities.StatusRejected && *p.RejectionReason == "duplicate"
			})).Return(&entities.Report{ID: 10, Status: entities.StatusRejected}, nil)

		r, err := uc.RejectReport(context.Background(), 10, " duplicate ")
		require.NoError(t, err)
		require.Equal(t, entities.StatusRejected, r.Status)
	})
}

func TestUsecase_AdvanceMaintainerStatus(t *testing.T) {
	delegated := func(status entities.ReportStatus) *entities.Report {
		r := wasteReport(status)
		r.ExternalMaintainerID = ptr(int64(3))
		return r
	}

	t.Run("stranger is not authorized even with a bogus target", func(t *testing.T) {
		repo := &repoMock{}
		uc := newTestUsecase(repo, &imagesMock{})
		repo.On("GetReport", mock.Anything, int64(10)).Return(delegated(entities.StatusInProgress), nil)

		_, err := uc.AdvanceMaintainerStatus(context.Background(), 10, 7, "NOT_A_STATUS")
		require.ErrorIs(t, err, entities.ErrNotAuthorized)
	})

	t.Run("in progress to resolved", func(t *testing.T) {
		repo := &repoMock{}
		uc := newTestUsecase(repo, &imagesMock{})
		repo.On("GetReport", mock.Anything, int64(10)).Return(delegated(entities.StatusInProgress), nil)
		repo.On("UpdateReport", mock.Anything, int64(10), entities.StatusInProgress,
			entities.ReportPatch{Status: ptr(entities.StatusResolved), RequireMaintainerID: ptr(int64(3))}).
			Return(delegated(entities.StatusResolved), nil)

		r, err := uc.AdvanceMaintainerStatus(context.Background(), 10, 3, "RESOLVED")
		require.NoError(t, err)
		require.Equal(t, entities.StatusResolved, r.Status)
	})

	t.Run("assigned straight to resolved", func(t *testing.T) {
		repo := &repoMock{}
		uc := newTestUsecase(repo, &imagesMock{})
		repo.On("GetReport", mock.Anything, int64(10)).Return(delegated(entities.StatusAssigned), nil)

		_, err := uc.AdvanceMaintainerStatus(context.Background(), 10, 3, "RESOLVED")
		require.ErrorIs(t, err, entities.ErrInvalidTransition)
	})

	t.Run("unknown target", func(t *testing.T) {
		repo := &repoMock{}
		uc := newTestUsecase(repo, &imagesMock{})
		repo.On("GetReport", mock.Anything, int64(10)).Return(delegated(entities.StatusAssigned), nil)

		_, err := uc.AdvanceMaintainerStatus(context.Background(), 10, 3, "DONE")
		require.ErrorIs(t, err, entities.ErrInvalidStatus)
	})
}

func TestUsecase_DelegateToMaintainer(t *testing.T) {
	t.Run("least loaded wins and overwrites", func(t *testing.T) {
		repo := &repoMock{}
		uc := newTestUsecase(repo, &imagesMock{})
		r := wasteReport(entities.StatusInProgress)
		r.ExternalMaintainerID = ptr(int64(9))
		repo.On("GetReport", mock.Anything, int64(10)).Return(r, nil)
		repo.On("ListMaintainersByCategory", mock.Anything, entities.CategoryWaste).Return([]entities.ExternalMaintainer{
			{ID: 9, Workload: 4}, {ID: 4, Workload: 1}, {ID: 6, Workload: 1},
		}, nil)
		repo.On("UpdateReport", mock.Anything, int64(10), entities.StatusInProgress,
			entities.ReportPatch{ExternalMaintainerID: ptr(int64(4))}).
			Return(&entities.Report{ID: 10, ExternalMaintainerID: ptr(int64(4))}, nil)

		out, err := uc.DelegateToMaintainer(context.Background(), 10)
		require.NoError(t, err)
		require.Equal(t, int64(4), *out.ExternalMaintainerID)
	})

	t.Run("empty pool", func(t *testing.T) {
		repo := &repoMock{}
		uc := newTestUsecase(repo, &imagesMock{})
		repo.On("GetReport", mock.Anything, int64(10)).Return(wasteReport(entities.StatusAssigned), nil)
		repo.On("ListMaintainersByCategory", mock.Anything, entities.CategoryWaste).Return([]entities.ExternalMaintainer{}, nil)

		_, err := uc.DelegateToMaintainer(context.Background(), 10)
		require.ErrorIs(t, err, entities.ErrNoMaintainersAvailable)
		e, _ := entities.AsError(err)
		require.Equal(t, entities.CategoryWaste, e.Category)
	})

	t.Run("pending report", func(t *testing.T) {
		repo := &repoMock{}
		uc := newTestUsecase(repo, &imagesMock{})
		repo.On("GetReport", mock.Anything, int64(10)).Return(wasteReport(entities.StatusPendingApproval), nil)

		_, err := uc.DelegateToMaintainer(context.Background(), 10)
		require.ErrorIs(t, err, entities.ErrInvalidTransition)
		repo.AssertNotCalled(t, "ListMaintainersByCategory", mock.Anything, mock.Anything)
	})
}

func TestUsecase_PostComment(t *testing.T) {
	officer := entities.Actor{Type: entities.ActorMunicipality, ID: 11}

	t.Run("resolved report is closed", func(t *testing.T) {
		repo := &repoMock{}
		uc := newTestUsecase(repo, &imagesMock{})
		repo.On("GetReport", mock.Anything, int64(10)).Return(wasteReport(entities.StatusResolved), nil)

		_, err := uc.PostComment(context.Background(), 10, officer, "note")
		require.ErrorIs(t, err, entities.ErrReportResolved)
	})

	t.Run("municipality author", func(t *testing.T) {
		repo := &repoMock{}
		uc := newTestUsecase(repo, &imagesMock{})
		repo.On("GetReport", mock.Anything, int64(10)).Return(wasteReport(entities.StatusAssigned), nil)
		repo.On("CreateComment", mock.Anything, mock.MatchedBy(func(c entities.Comment) bool {
			return c.Content == "note" && c.Author.Type == entities.ActorMunicipality && c.Author.ID == 11
		})).Return(&entities.Comment{ID: 1, ReportID: 10, Content: "note",
			Author: entities.CommentAuthor{Type: entities.ActorMunicipality, ID: 11}}, nil)

		c, err := uc.PostComment(context.Background(), 10, officer, " note ")
		require.NoError(t, err)
		require.Equal(t, int64(11), *c.Author.MunicipalityUserID())
		require.Nil(t, c.Author.ExternalMaintainerID())
	})

	t.Run("other maintainer", func(t *testing.T) {
		repo := &repoMock{}
		uc := newTestUsecase(repo, &imagesMock{})
		r := wasteReport(entities.StatusInProgress)
		r.ExternalMaintainerID = ptr(int64(3))
		repo.On("GetReport", mock.Anything, int64(10)).Return(r, nil)

		_, err := uc.PostComment(context.Background(), 10, entities.Actor{Type: entities.ActorExternalMaintainer, ID: 8}, "hi")
		require.ErrorIs(t, err, entities.ErrNotAssigned)
	})

	t.Run("empty content", func(t *testing.T) {
		repo := &repoMock{}
		uc := newTestUsecase(repo, &imagesMock{})
		repo.On("GetReport", mock.Anything, int64(10)).Return(wasteReport(entities.StatusAssigned), nil)

		_, err := uc.PostComment(context.Background(), 10, officer, "  ")
		require.ErrorIs(t, err, entities.ErrInvalidArgument)
		repo.AssertNotCalled(t, "CreateComment", mock.Anything, mock.Anything)
	})
}

func TestUsecase_ListComments(t *testing.T) {
	t.Run("citizen denied", func(t *testing.T) {
		repo := &repoMock{}
		uc := newTestUsecase(repo, &imagesMock{})
		repo.On("GetReport", mock.Anything, int64(10)).Return(wasteReport(entities.StatusAssigned), nil)

		_, err := uc.ListComments(context.Background(), 10, entities.Actor{Type: entities.ActorCitizen, ID: 1})
		require.ErrorIs(t, err, entities.ErrRoleNotPermitted)
	})

	t.Run("idempotent read on resolved report", func(t *testing.T) {
		repo := &repoMock{}
		uc := newTestUsecase(repo, &imagesMock{})
		comments := []entities.Comment{{ID: 1, ReportID: 10, Content: "a"}, {ID: 2, ReportID: 10, Content: "b"}}
		repo.On("GetReport", mock.Anything, int64(10)).Return(wasteReport(entities.StatusResolved), nil)
		repo.On("ListComments", mock.Anything, int64(10)).Return(comments, nil)

		actor := entities.Actor{Type: entities.ActorMunicipality, ID: 11}
		first, err := uc.ListComments(context.Background(), 10, actor)
		require.NoError(t, err)
		second, err := uc.ListComments(context.Background(), 10, actor)
		require.NoError(t, err)
		require.Equal(t, first, second)
	})
}

func TestUsecase_CreateStaffValidation(t *testing.T) {
	repo := &repoMock{}
	uc := newTestUsecase(repo, &imagesMock{})

	_, err := uc.CreateOfficer(context.Background(), entities.Officer{})
	require.ErrorIs(t, err, entities.ErrInvalidArgument)

	_, err = uc.CreateMaintainer(context.Background(), entities.ExternalMaintainer{Username: "m", Company: "c", Category: "lava"})
	require.ErrorIs(t, err, entities.ErrInvalidCategory)

	repo.On("CreateOfficer", mock.Anything, entities.Officer{Username: "dora", Office: lifecycle.DefaultOffice}).
		Return(&entities.Officer{ID: 1, Username: "dora", Office: lifecycle.DefaultOffice}, nil)
	o, err := uc.CreateOfficer(context.Background(), entities.Officer{Username: " dora "})
	require.NoError(t, err)
	require.Equal(t, lifecycle.DefaultOffice, o.Office)
}

func TestUsecase_PhotoKeyRequired(t *testing.T) {
	uc := newTestUsecase(&repoMock{}, &imagesMock{})

	_, err := uc.Photo(context.Background(), "")
	require.ErrorIs(t, err, entities.ErrInvalidArgument)
}
