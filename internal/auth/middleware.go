package auth

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
)

const (
	CtxUserIDKey = "uid"
	CtxEmailKey  = "email"
	CtxNameKey   = "name"
)

type Middleware struct {
	tokens *TokenService
}

func NewMiddleware(tokens *TokenService) *Middleware {
	return &Middleware{tokens: tokens}
}

// RequireAuth rejects requests without a valid bearer token.
func (m *Middleware) RequireAuth() fiber.Handler {
	return func(c *fiber.Ctx) error {
		token, ok := bearerTokenFromHeader(c.Get(fiber.HeaderAuthorization))
		if !ok {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Unauthorized",
			})
		}

		claims, err := m.tokens.ValidateToken(token)
		if err != nil {
			msg := "Invalid token"
			if errors.Is(err, ErrTokenExpired) {
				msg = "Token expired"
			}
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error":   msg,
				"details": err.Error(),
			})
		}

		setUser(c, claims)
		return c.Next()
	}
}

// OptionalAuth attaches the user when a valid token is present and
// otherwise lets the request through anonymously.
func (m *Middleware) OptionalAuth() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if token, ok := bearerTokenFromHeader(c.Get(fiber.HeaderAuthorization)); ok {
			if claims, err := m.tokens.ValidateToken(token); err == nil {
				setUser(c, claims)
			}
		}
		return c.Next()
	}
}

// UserID returns the authenticated user's id, or "" for anonymous requests.
func UserID(c *fiber.Ctx) string {
	uid, _ := c.Locals(CtxUserIDKey).(string)
	return uid
}

func setUser(c *fiber.Ctx, claims *Claims) {
	c.Locals(CtxUserIDKey, claims.UID)
	c.Locals(CtxEmailKey, claims.Email)
	c.Locals(CtxNameKey, claims.Name)
}

func bearerTokenFromHeader(authHeader string) (string, bool) {
	authHeader = strings.TrimSpace(authHeader)
	if authHeader == "" {
		return "", false
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}

	token := strings.TrimSpace(parts[1])
	if token == "" {
		return "", false
	}

	return token, true
}
