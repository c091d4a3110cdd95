package auth

import (
	"time"

	"github.com/gofiber/fiber/v2"
	jwtware "github.com/gofiber/jwt/v2"
	"github.com/golang-jwt/jwt/v4"
)

// Claims is the identity carried by every bearer token: the user id, its
// role, and the vendor id for vendor accounts.
type Claims struct {
	UserID   string
	Role     string
	VendorID string
}

// CreateToken signs a token carrying {id, role, vendorId}, valid for one day.
func CreateToken(secret, userID, role, vendorID string) (string, error) {
	claims := jwt.MapClaims{
		"id":   userID,
		"role": role,
		"exp":  time.Now().Add(24 * time.Hour).Unix(),
	}
	if vendorID != "" {
		claims["vendorId"] = vendorID
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// Protected returns the JWT middleware verifying bearer tokens against secret.
// The parsed token ends up in c.Locals("user").
func Protected(secret string) fiber.Handler {
	return jwtware.New(jwtware.Config{
		SigningKey: []byte(secret),
	})
}

// RequireRoles rejects requests whose token role is not one of roles.
func RequireRoles(roles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		claims, err := FromCtx(c)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"success": false, "message": "unauthorized"})
		}
		for _, role := range roles {
			if claims.Role == role {
				return c.Next()
			}
		}
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"success": false, "message": "not authorized"})
	}
}

// FromCtx extracts the claims from the JWT token stored in c.Locals("user")
// by the Protected middleware.
func FromCtx(c *fiber.Ctx) (Claims, error) {
	u := c.Locals("user")
	if u == nil {
		return Claims{}, fiber.ErrUnauthorized
	}
	tok, ok := u.(*jwt.Token)
	if !ok {
		return Claims{}, fiber.ErrUnauthorized
	}
	mc, ok := tok.Claims.(jwt.MapClaims)
	if !ok {
		return Claims{}, fiber.ErrUnauthorized
	}

	id, _ := mc["id"].(string)
	if id == "" {
		return Claims{}, fiber.ErrUnauthorized
	}
	role, _ := mc["role"].(string)
	vendorID, _ := mc["vendorId"].(string)

	return Claims{UserID: id, Role: role, VendorID: vendorID}, nil
}
