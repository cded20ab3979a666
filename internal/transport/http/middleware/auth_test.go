package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"participium/internal/entities"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const testSecret = "test-secret"

func newAuthApp() *fiber.App {
	app := fiber.New()
	app.Use(Auth(zap.NewNop().Sugar(), testSecret, "participium"))
	app.Get("/any", func(c *fiber.Ctx) error {
		p, _ := PrincipalFrom(c)
		return c.JSON(fiber.Map{"id": p.UserID, "role": p.Role})
	})
	app.Get("/staff", RequireRoles(entities.ActorMunicipality), func(c *fiber.Ctx) error {
		return c.SendStatus(http.StatusNoContent)
	})
	return app
}

func TestAuth(t *testing.T) {
	citizen, err := IssueToken(testSecret, "participium", 5, entities.ActorCitizen, time.Hour)
	require.NoError(t, err)
	officer, err := IssueToken(testSecret, "participium", 6, entities.ActorMunicipality, time.Hour)
	require.NoError(t, err)
	expired, err := IssueToken(testSecret, "participium", 6, entities.ActorMunicipality, -time.Minute)
	require.NoError(t, err)
	forged, err := IssueToken("other-secret", "participium", 6, entities.ActorMunicipality, time.Hour)
	require.NoError(t, err)
	foreign, err := IssueToken(testSecret, "elsewhere", 6, entities.ActorMunicipality, time.Hour)
	require.NoError(t, err)

	tests := []struct {
		name   string
		path   string
		token  string
		status int
	}{
		{name: "no token", path: "/any", status: http.StatusUnauthorized},
		{name: "valid", path: "/any", token: citizen, status: http.StatusOK},
		{name: "expired", path: "/any", token: expired, status: http.StatusUnauthorized},
		{name: "wrong secret", path: "/any", token: forged, status: http.StatusUnauthorized},
		{name: "wrong issuer", path: "/any", token: foreign, status: http.StatusUnauthorized},
		{name: "role denied", path: "/staff", token: citizen, status: http.StatusForbidden},
		{name: "role allowed", path: "/staff", token: officer, status: http.StatusNoContent},
	}

	app := newAuthApp()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			if tt.token != "" {
				req.Header.Set("Authorization", "Bearer "+tt.token)
			}
			resp, err := app.Test(req)
			require.NoError(t, err)
			defer resp.Body.Close()
			require.Equal(t, tt.status, resp.StatusCode)
		})
	}
}

func TestParseTokenRejectsUnknownRole(t *testing.T) {
	tok, err := IssueToken(testSecret, "", 1, entities.ActorType("ROOT"), time.Hour)
	require.NoError(t, err)

	_, err = ParseToken(tok, testSecret, "")
	require.Error(t, err)

	tok, err = IssueToken(testSecret, "", 1, entities.ActorExternalMaintainer, time.Hour)
	require.NoError(t, err)
	p, err := ParseToken(tok, testSecret, "")
	require.NoError(t, err)
	require.Equal(t, entities.Actor{Type: entities.ActorExternalMaintainer, ID: 1}, p.Actor())
}
