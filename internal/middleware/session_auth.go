package middleware

import (
	"strings"

	"quizwhiz/internal/service"

	"github.com/gofiber/fiber/v2"
)

const (
	AuthorizationHeader = "Authorization"
	BearerSchema        = "Bearer "
	SessionIDKey        = "sessionID" // Key for storing the session ID in fiber.Ctx locals
)

// SessionGuard protects per-session routes. The bearer token issued at quiz
// start must name the same session as the route, so one session's token
// cannot touch another session.
func SessionGuard(tokens service.SessionTokenService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get(AuthorizationHeader)
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(ErrorResponse{
				Code:    "MISSING_AUTH_HEADER",
				Message: "Authorization header is missing",
				Status:  fiber.StatusUnauthorized,
			})
		}

		if !strings.HasPrefix(authHeader, BearerSchema) {
			return c.Status(fiber.StatusUnauthorized).JSON(ErrorResponse{
				Code:    "INVALID_AUTH_SCHEME",
				Message: "Authorization scheme is not Bearer",
				Status:  fiber.StatusUnauthorized,
			})
		}

		tokenString := strings.TrimPrefix(authHeader, BearerSchema)
		if tokenString == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(ErrorResponse{
				Code:    "EMPTY_TOKEN",
				Message: "Token is empty",
				Status:  fiber.StatusUnauthorized,
			})
		}

		sessionID, err := tokens.Validate(tokenString)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(ErrorResponse{
				Code:    "INVALID_TOKEN",
				Message: "Session token is invalid or expired",
				Status:  fiber.StatusUnauthorized,
			})
		}

		if routeID := c.Params("id"); routeID != "" && routeID != sessionID {
			return c.Status(fiber.StatusForbidden).JSON(ErrorResponse{
				Code:    "SESSION_MISMATCH",
				Message: "Token does not belong to this session",
				Status:  fiber.StatusForbidden,
			})
		}

		c.Locals(SessionIDKey, sessionID)

		return c.Next()
	}
}
