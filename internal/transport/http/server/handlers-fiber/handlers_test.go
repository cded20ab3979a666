package handlers_fiber

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"participium/internal/entities"
	"participium/internal/transport/http/dto"
	"participium/internal/transport/http/middleware"
	"participium/internal/usecase"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const testSecret = "handler-secret"

// ucMock implements the usecase methods exercised here; the embedded
// interface panics on anything else.
type ucMock struct {
	mock.Mock
	usecase.InterfaceUsecase
}

func (m *ucMock) CreateReport(ctx context.Context, submitterID int64, p entities.NewReport) (*entities.Report, error) {
	args := m.Called(ctx, submitterID, p)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Report), args.Error(1)
}

func (m *ucMock) GetReport(ctx context.Context, id int64) (*entities.Report, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Report), args.Error(1)
}

func (m *ucMock) AdvanceMaintainerStatus(ctx context.Context, reportID, maintainerID int64, target string) (*entities.Report, error) {
	args := m.Called(ctx, reportID, maintainerID, target)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Report), args.Error(1)
}

func (m *ucMock) PostComment(ctx context.Context, reportID int64, actor entities.Actor, content string) (*entities.Comment, error) {
	args := m.Called(ctx, reportID, actor, content)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Comment), args.Error(1)
}

func newTestApp(uc usecase.InterfaceUsecase) *fiber.App {
	log := zap.NewNop().Sugar()
	app := fiber.New()
	NewHandler(log, uc, 1024).Register(app, middleware.Auth(log, testSecret, ""))
	return app
}

func token(t *testing.T, id int64, role entities.ActorType) string {
	t.Helper()
	tok, err := middleware.IssueToken(testSecret, "", id, role, time.Hour)
	require.NoError(t, err)
	return tok
}

func call(t *testing.T, app *fiber.App, method, path, tok, body string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if tok != "" {
		req.Header.Set("Authorization", "Bearer "+tok)
	}
	resp, err := app.Test(req)
	require.NoError(t, err)
	t.Cleanup(func() { _ = resp.Body.Close() })
	return resp
}

func TestCreateReportUsesCaller(t *testing.T) {
	uc := &ucMock{}
	app := newTestApp(uc)

	uc.On("CreateReport", mock.Anything, int64(5), mock.MatchedBy(func(p entities.NewReport) bool {
		return p.Title == "Lamp" && p.Status == "RESOLVED" && len(p.Photos) == 1
	})).Return(&entities.Report{ID: 1, SubmitterID: 5, Status: entities.StatusPendingApproval}, nil)

	resp := call(t, app, http.MethodPost, "/api/reports", token(t, 5, entities.ActorCitizen),
		`{"title":"Lamp","description":"d","category":"public_lighting","latitude":45,"longitude":7,"photos":["a.jpg"],"status":"RESOLVED"}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var out dto.Report
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	require.Equal(t, "PENDING_APPROVAL", out.Status)
	uc.AssertExpectations(t)
}

func TestCreateReportShapeValidation(t *testing.T) {
	uc := &ucMock{}
	app := newTestApp(uc)

	resp := call(t, app, http.MethodPost, "/api/reports", token(t, 5, entities.ActorCitizen),
		`{"title":"Lamp","latitude":123}`)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	uc.AssertNotCalled(t, "CreateReport", mock.Anything, mock.Anything, mock.Anything)
}

func TestRoleGuards(t *testing.T) {
	app := newTestApp(&ucMock{})

	resp := call(t, app, http.MethodPost, "/api/reports/1/approve", token(t, 5, entities.ActorCitizen), "")
	require.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp = call(t, app, http.MethodPost, "/api/reports", token(t, 5, entities.ActorMunicipality), "{}")
	require.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp = call(t, app, http.MethodGet, "/api/reports/1", "", "")
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestGetReportHidesAnonymousSubmitter(t *testing.T) {
	uc := &ucMock{}
	app := newTestApp(uc)
	uc.On("GetReport", mock.Anything, int64(3)).
		Return(&entities.Report{ID: 3, SubmitterID: 5, Anonymous: true, Status: entities.StatusAssigned}, nil)

	decode := func(resp *http.Response) dto.Report {
		var out dto.Report
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
		return out
	}

	other := decode(call(t, app, http.MethodGet, "/api/reports/3", token(t, 6, entities.ActorCitizen), ""))
	require.Nil(t, other.SubmitterID)

	self := decode(call(t, app, http.MethodGet, "/api/reports/3", token(t, 5, entities.ActorCitizen), ""))
	require.Equal(t, int64(5), *self.SubmitterID)

	staff := decode(call(t, app, http.MethodGet, "/api/reports/3", token(t, 9, entities.ActorMunicipality), ""))
	require.Equal(t, int64(5), *staff.SubmitterID)
}

func TestAdvanceStatusUsesCallerID(t *testing.T) {
	uc := &ucMock{}
	app := newTestApp(uc)
	uc.On("AdvanceMaintainerStatus", mock.Anything, int64(4), int64(7), "RESOLVED").
		Return(nil, entities.ErrNotAuthorized)

	resp := call(t, app, http.MethodPost, "/api/reports/4/status", token(t, 7, entities.ActorExternalMaintainer), `{"status":"RESOLVED"}`)
	require.Equal(t, http.StatusForbidden, resp.StatusCode)

	var body dto.ErrorResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	require.Equal(t, "NOT_AUTHORIZED", body.Error.Code)
	uc.AssertExpectations(t)
}

func TestPostCommentGateDecides(t *testing.T) {
	uc := &ucMock{}
	app := newTestApp(uc)
	citizen := entities.Actor{Type: entities.ActorCitizen, ID: 5}
	uc.On("PostComment", mock.Anything, int64(2), citizen, "hello").Return(nil, entities.ErrRoleNotPermitted)

	resp := call(t, app, http.MethodPost, "/api/reports/2/comments", token(t, 5, entities.ActorCitizen), `{"content":"hello"}`)
	require.Equal(t, http.StatusForbidden, resp.StatusCode)
	uc.AssertExpectations(t)
}

func TestBadReportID(t *testing.T) {
	app := newTestApp(&ucMock{})

	resp := call(t, app, http.MethodGet, "/api/reports/abc", token(t, 1, entities.ActorMunicipality), "")
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
}
