package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/fadilmartias/project-review/internal/auth"
	"github.com/fadilmartias/project-review/internal/util"
)

const requestContextKey = "request_context"

type TokenParser interface {
	Parse(token string) (auth.Identity, error)
}

// Authenticate resolves the caller from a bearer token or the auth cookie.
// Missing, invalid or revoked tokens leave the request anonymous; routes
// that need a user add RequireAuth.
func Authenticate(tokens TokenParser, revocations auth.RevocationStore, cookieName string, log *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		rc := auth.Anonymous()
		if raw := tokenFrom(c, cookieName); raw != "" {
			if id, err := tokens.Parse(raw); err == nil {
				revoked, err := revocations.IsRevoked(c.UserContext(), id.TokenID)
				switch {
				case err != nil:
					log.Warn("revocation lookup failed", zap.Error(err))
				case !revoked:
					rc = auth.For(id)
				}
			}
		}
		c.Locals(requestContextKey, rc)
		return c.Next()
	}
}

// RequireAuth rejects anonymous requests with 401.
func RequireAuth() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !RequestContext(c).Authenticated() {
			return util.ErrorResponse(c, util.ErrorResponseFormat{
				Code:    fiber.StatusUnauthorized,
				Message: "authentication required",
			})
		}
		return c.Next()
	}
}

// RequestContext returns the caller stored by Authenticate, or an anonymous
// context when the middleware did not run.
func RequestContext(c *fiber.Ctx) auth.RequestContext {
	if rc, ok := c.Locals(requestContextKey).(auth.RequestContext); ok {
		return rc
	}
	return auth.Anonymous()
}

func tokenFrom(c *fiber.Ctx, cookieName string) string {
	if h := c.Get(fiber.HeaderAuthorization); h != "" {
		if token, ok := strings.CutPrefix(h, "Bearer "); ok {
			return strings.TrimSpace(token)
		}
	}
	if cookieName != "" {
		return c.Cookies(cookieName)
	}
	return ""
}
