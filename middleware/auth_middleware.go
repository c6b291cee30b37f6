package middleware

import (
	"errors"

	config "github.com/quizdesk/quiz_platform/configs"
	"github.com/gofiber/fiber/v2"
	jwtware "github.com/gofiber/jwt/v3"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"github.com/quizdesk/quiz_platform/models"
)

// Identity is the authenticated caller, extracted once from the JWT at
// the boundary and passed explicitly into core calls. Role is always one
// of models.RoleTeacher or models.RoleStudent.
type Identity struct {
	UserID uuid.UUID
	Role   string
}

var ErrInvalidIdentity = errors.New("invalid or incomplete identity claims")

func Protected() fiber.Handler {
	return jwtware.New(jwtware.Config{
		SigningKey:   []byte(config.Config("JWT_SECRET")),
		ErrorHandler: jwtError,
	})
}

func jwtError(c *fiber.Ctx, err error) error {
	if err.Error() == "Missing or malformed JWT" {
		return c.Status(fiber.StatusBadRequest).
			JSON(fiber.Map{"status": "error", "message": "Missing or malformed JWT", "data": nil})
	}
	return c.Status(fiber.StatusUnauthorized).
		JSON(fiber.Map{"status": "error", "message": "Invalid or expired JWT", "data": nil})
}

// CurrentIdentity validates the claims left by Protected() and returns a
// typed identity. Tokens with an unknown role or a malformed user ID are
// rejected rather than passed through.
func CurrentIdentity(c *fiber.Ctx) (Identity, error) {
	token, ok := c.Locals("user").(*jwt.Token)
	if !ok {
		return Identity{}, ErrInvalidIdentity
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return Identity{}, ErrInvalidIdentity
	}

	rawID, _ := claims["user_id"].(string)
	userID, err := uuid.Parse(rawID)
	if err != nil {
		return Identity{}, ErrInvalidIdentity
	}

	role, _ := claims["role"].(string)
	if role != models.RoleTeacher && role != models.RoleStudent {
		return Identity{}, ErrInvalidIdentity
	}

	return Identity{UserID: userID, Role: role}, nil
}

func TeacherRequired() fiber.Handler {
	return requireRole(models.RoleTeacher, "Forbidden: Teacher access required")
}

func StudentRequired() fiber.Handler {
	return requireRole(models.RoleStudent, "Forbidden: Student access required")
}

func requireRole(role, message string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ident, err := CurrentIdentity(c)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Unauthorized",
			})
		}
		if ident.Role != role {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"error": message,
			})
		}
		return c.Next()
	}
}
