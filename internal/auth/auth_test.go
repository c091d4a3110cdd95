package auth

import (
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
)

const testSecret = "test-secret"

func setupApp() *fiber.App {
	app := fiber.New()
	app.Get("/me", Protected(testSecret), func(c *fiber.Ctx) error {
		claims, err := FromCtx(c)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).SendString("no claims")
		}
		return c.JSON(claims)
	})
	app.Get("/admin", Protected(testSecret), RequireRoles("admin"), func(c *fiber.Ctx) error {
		return c.SendString("ok")
	})
	return app
}

func request(t *testing.T, app *fiber.App, path, token string) int {
	t.Helper()
	req := httptest.NewRequest("GET", path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	res, err := app.Test(req, -1)
	if err != nil {
		t.Fatal(err)
	}
	return res.StatusCode
}

func TestProtected_RejectsMissingToken(t *testing.T) {
	app := setupApp()
	if code := request(t, app, "/me", ""); code == 200 {
		t.Fatalf("expected rejection without token, got %d", code)
	}
}

func TestProtected_AcceptsValidToken(t *testing.T) {
	app := setupApp()
	token, err := CreateToken(testSecret, "user123", "user", "")
	if err != nil {
		t.Fatal(err)
	}
	if code := request(t, app, "/me", token); code != 200 {
		t.Fatalf("expected 200 got %d", code)
	}
}

func TestProtected_RejectsWrongSecret(t *testing.T) {
	app := setupApp()
	token, err := CreateToken("other-secret", "user123", "user", "")
	if err != nil {
		t.Fatal(err)
	}
	if code := request(t, app, "/me", token); code == 200 {
		t.Fatalf("expected rejection with wrong secret, got %d", code)
	}
}

func TestRequireRoles(t *testing.T) {
	app := setupApp()

	adminToken, err := CreateToken(testSecret, "admin1", "admin", "")
	if err != nil {
		t.Fatal(err)
	}
	if code := request(t, app, "/admin", adminToken); code != 200 {
		t.Fatalf("admin expected 200 got %d", code)
	}

	userToken, err := CreateToken(testSecret, "user1", "user", "")
	if err != nil {
		t.Fatal(err)
	}
	if code := request(t, app, "/admin", userToken); code != fiber.StatusForbidden {
		t.Fatalf("user expected 403 got %d", code)
	}
}

func TestCreateToken_CarriesVendorID(t *testing.T) {
	app := fiber.New()
	app.Get("/claims", Protected(testSecret), func(c *fiber.Ctx) error {
		claims, err := FromCtx(c)
		if err != nil {
			return err
		}
		if claims.UserID != "v-user" || claims.Role != "vendor" || claims.VendorID != "vendor42" {
			return c.Status(fiber.StatusExpectationFailed).SendString("bad claims")
		}
		return c.SendString("ok")
	})

	token, err := CreateToken(testSecret, "v-user", "vendor", "vendor42")
	if err != nil {
		t.Fatal(err)
	}
	if code := request(t, app, "/claims", token); code != 200 {
		t.Fatalf("expected 200 got %d", code)
	}
}
