package http_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apphttp "github.com/jhoicas/brewery-api/internal/interfaces/http"
	pkgjwt "github.com/jhoicas/brewery-api/pkg/jwt"
)

const (
	testJWTSecret = "test-secret-key-for-unit-tests"
	testUserID    = "00000000-0000-0000-0000-000000000001"
	testIssuer    = "brewery-api-test"
	testExpMin    = 60
)

func bearer(t *testing.T, role string) string {
	t.Helper()
	tok, err := pkgjwt.Generate(testJWTSecret, testUserID, role, testIssuer, testExpMin)
	require.NoError(t, err)
	return "Bearer " + tok
}

func meApp() *fiber.App {
	app := fiber.New()
	app.Get("/me", apphttp.AuthMiddleware(testJWTSecret), func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"user_id": apphttp.GetUserID(c),
			"role":    apphttp.GetRole(c),
		})
	})
	return app
}

func TestAuthMiddleware_SetsLocals(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", bearer(t, "brewer"))
	resp, err := meApp().Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, testUserID, body["user_id"])
	assert.Equal(t, "brewer", body["role"])
}

func TestAuthMiddleware_Rejects(t *testing.T) {
	expired, err := pkgjwt.Generate(testJWTSecret, testUserID, "brewer", testIssuer, -1)
	require.NoError(t, err)
	foreign, err := pkgjwt.Generate("another-secret", testUserID, "brewer", testIssuer, testExpMin)
	require.NoError(t, err)

	cases := []struct {
		name   string
		header string
		code   string
	}{
		{"no header", "", "MISSING_TOKEN"},
		{"wrong scheme", "Basic abc", "INVALID_TOKEN"},
		{"empty token", "Bearer ", "MISSING_TOKEN"},
		{"bare scheme", "Bearer", "MISSING_TOKEN"},
		{"padded empty token", "  Bearer   ", "MISSING_TOKEN"},
		{"garbage", "Bearer not.a.token", "INVALID_TOKEN"},
		{"expired", "Bearer " + expired, "INVALID_TOKEN"},
		{"wrong secret", "Bearer " + foreign, "INVALID_TOKEN"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/me", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			resp, err := meApp().Test(req, -1)
			require.NoError(t, err)
			defer resp.Body.Close()

			assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
			body, _ := io.ReadAll(resp.Body)
			assert.Contains(t, string(body), tc.code)
		})
	}
}
