package middleware

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/fadilmartias/project-review/internal/auth"
)

func newApp(t *testing.T) (*fiber.App, *auth.TokenManager, *auth.MemoryRevocationStore) {
	t.Helper()
	tokens, err := auth.NewTokenManager("test-secret", time.Hour, "")
	require.NoError(t, err)
	revocations := auth.NewMemoryRevocationStore()

	app := fiber.New()
	app.Use(Authenticate(tokens, revocations, "pr_token", zap.NewNop()))
	app.Get("/whoami", func(c *fiber.Ctx) error {
		id, ok := RequestContext(c).UserID()
		if !ok {
			return c.SendString("anonymous")
		}
		return c.SendString(id.String())
	})
	app.Get("/private", RequireAuth(), func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusNoContent)
	})
	return app, tokens, revocations
}

func body(t *testing.T, app *fiber.App, req *http.Request) (int, string) {
	t.Helper()
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, string(data)
}

func TestAuthenticate_Anonymous(t *testing.T) {
	app, _, _ := newApp(t)

	_, got := body(t, app, httptest.NewRequest(http.MethodGet, "/whoami", nil))
	assert.Equal(t, "anonymous", got)

	status, _ := body(t, app, httptest.NewRequest(http.MethodGet, "/private", nil))
	assert.Equal(t, fiber.StatusUnauthorized, status)
}

func TestAuthenticate_BearerAndCookie(t *testing.T) {
	app, tokens, _ := newApp(t)
	userID := uuid.New()
	token, _, err := tokens.Issue(userID, "ada@example.com")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	_, got := body(t, app, req)
	assert.Equal(t, userID.String(), got)

	req = httptest.NewRequest(http.MethodGet, "/private", nil)
	req.AddCookie(&http.Cookie{Name: "pr_token", Value: token})
	status, _ := body(t, app, req)
	assert.Equal(t, fiber.StatusNoContent, status)
}

func TestAuthenticate_RevokedAndInvalid(t *testing.T) {
	app, tokens, revocations := newApp(t)
	token, id, err := tokens.Issue(uuid.New(), "ada@example.com")
	require.NoError(t, err)
	require.NoError(t, revocations.Revoke(context.Background(), id.TokenID, id.ExpiresAt))

	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	_, got := body(t, app, req)
	assert.Equal(t, "anonymous", got)

	req = httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set("Authorization", "Bearer not-a-jwt")
	_, got = body(t, app, req)
	assert.Equal(t, "anonymous", got)
}

func TestRateLimiter(t *testing.T) {
	app := fiber.New()
	app.Get("/", RateLimiter(1, time.Minute), func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusOK) })

	first, err := app.Test(httptest.NewRequest(http.MethodGet, "/", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, first.StatusCode)

	second, err := app.Test(httptest.NewRequest(http.MethodGet, "/", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusTooManyRequests, second.StatusCode)
}
