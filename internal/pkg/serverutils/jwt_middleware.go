package serverutils

import (
	"os"

	"liveshop-chat-be/internal/entity"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const callerLocalsKey = "caller"

// Caller is the resolved identity of a request: issued by the platform's auth
// subsystem, verified here from the JWT it signed.
type Caller struct {
	UserId      uuid.UUID
	DisplayName string
	Role        string
}

// ParseCaller verifies the token and extracts user_id, display_name and role
// claims. Unknown roles are rejected rather than defaulted.
func ParseCaller(tokenStr string) (*Caller, error) {
	token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fiber.ErrUnauthorized
		}
		return []byte(os.Getenv("JWT_SECRET")), nil
	})
	if err != nil || !token.Valid {
		return nil, NewUnauthorizedError("invalid token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, NewUnauthorizedError("invalid token claims")
	}

	userIdStr, ok := claims["user_id"].(string)
	if !ok {
		return nil, NewUnauthorizedError("token missing user_id")
	}
	userId, err := uuid.Parse(userIdStr)
	if err != nil {
		return nil, NewUnauthorizedError("invalid user id in token")
	}

	displayName, _ := claims["display_name"].(string)
	if displayName == "" {
		return nil, NewUnauthorizedError("token missing display_name")
	}

	role, _ := claims["role"].(string)
	if !entity.IsValidRole(role) {
		return nil, NewUnauthorizedError("unknown role in token")
	}

	return &Caller{UserId: userId, DisplayName: displayName, Role: role}, nil
}

func JwtMiddleware(ctx *fiber.Ctx) error {
	authHeader := ctx.Get("Authorization")
	if len(authHeader) < 7 || authHeader[:7] != "Bearer " {
		return NewUnauthorizedError("missing token")
	}

	caller, err := ParseCaller(authHeader[7:])
	if err != nil {
		return err
	}

	ctx.Locals(callerLocalsKey, caller)
	return ctx.Next()
}

func CallerFromCtx(ctx *fiber.Ctx) (*Caller, error) {
	caller, ok := ctx.Locals(callerLocalsKey).(*Caller)
	if !ok || caller == nil {
		return nil, NewUnauthorizedError("unauthenticated")
	}
	return caller, nil
}
