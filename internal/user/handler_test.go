package user

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
)

const testSecret = "unit-test-secret"

func setupApp(t *testing.T) *fiber.App {
	t.Helper()
	app := fiber.New()
	NewHandler(NewService(NewInMemoryRepository(nil)), testSecret).RegisterRoutes(app)
	return app
}

func jsonRequest(t *testing.T, target string, payload any, token string) *http.Request {
	t.Helper()
	body, err := json.Marshal(payload)
	if err != nil {
		t.Fatal(err)
	}
	req := httptest.NewRequest(http.MethodPost, target, bytes.NewReader(body))
	req.Header.Set("Content-Type", fiber.MIMEApplicationJSON)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return req
}

func decodeBody(t *testing.T, res *http.Response) map[string]any {
	t.Helper()
	defer res.Body.Close()
	body := map[string]any{}
	if err := json.NewDecoder(res.Body).Decode(&body); err != nil {
		t.Fatal(err)
	}
	return body
}

func TestRegisterEndpoint(t *testing.T) {
	app := setupApp(t)

	res, err := app.Test(jsonRequest(t, "/api/user/register",
		map[string]string{"name": "Meera", "email": "meera@example.com", "password": "s3cret"}, ""))
	if err != nil {
		t.Fatal(err)
	}
	if res.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200, got %d", res.StatusCode)
	}
	body := decodeBody(t, res)
	if token, _ := body["token"].(string); token == "" {
		t.Error("registration should issue a token")
	}
	u, ok := body["user"].(map[string]any)
	if !ok {
		t.Fatalf("missing user in response: %v", body)
	}
	if _, leaked := u["password"]; leaked {
		t.Error("password hash must not be returned")
	}

	// a second registration with the same email conflicts
	res, err = app.Test(jsonRequest(t, "/api/user/register",
		map[string]string{"name": "Meera", "email": "meera@example.com", "password": "s3cret"}, ""))
	if err != nil {
		t.Fatal(err)
	}
	if res.StatusCode != fiber.StatusConflict {
		t.Fatalf("expected 409 for duplicate email, got %d", res.StatusCode)
	}
}

func TestRegisterEndpoint_MissingFields(t *testing.T) {
	app := setupApp(t)

	res, err := app.Test(jsonRequest(t, "/api/user/register",
		map[string]string{"email": "meera@example.com"}, ""))
	if err != nil {
		t.Fatal(err)
	}
	if res.StatusCode != fiber.StatusBadRequest {
		t.Fatalf("expected 400, got %d", res.StatusCode)
	}
}

func TestLoginEndpoint(t *testing.T) {
	app := setupApp(t)

	res, err := app.Test(jsonRequest(t, "/api/user/register",
		map[string]string{"name": "Meera", "email": "meera@example.com", "password": "s3cret"}, ""))
	if err != nil {
		t.Fatal(err)
	}
	if res.StatusCode != fiber.StatusOK {
		t.Fatalf("registration failed with %d", res.StatusCode)
	}

	res, err = app.Test(jsonRequest(t, "/api/user/login",
		map[string]string{"email": "Meera@Example.com", "password": "s3cret"}, ""))
	if err != nil {
		t.Fatal(err)
	}
	if res.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200 for correct credentials, got %d", res.StatusCode)
	}

	res, err = app.Test(jsonRequest(t, "/api/user/login",
		map[string]string{"email": "meera@example.com", "password": "wrong"}, ""))
	if err != nil {
		t.Fatal(err)
	}
	if res.StatusCode != fiber.StatusUnauthorized {
		t.Fatalf("expected 401 for bad password, got %d", res.StatusCode)
	}
}

func TestProfileEndpoint(t *testing.T) {
	app := setupApp(t)

	res, err := app.Test(jsonRequest(t, "/api/user/register",
		map[string]string{"name": "Meera", "email": "meera@example.com", "password": "s3cret"}, ""))
	if err != nil {
		t.Fatal(err)
	}
	body := decodeBody(t, res)
	token := body["token"].(string)

	req := httptest.NewRequest(http.MethodGet, "/api/user/profile", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	res, err = app.Test(req)
	if err != nil {
		t.Fatal(err)
	}
	if res.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200, got %d", res.StatusCode)
	}
	body = decodeBody(t, res)
	u, ok := body["user"].(map[string]any)
	if !ok || u["email"] != "meera@example.com" {
		t.Fatalf("unexpected profile payload: %v", body)
	}

	// no token, no profile
	res, err = app.Test(httptest.NewRequest(http.MethodGet, "/api/user/profile", nil))
	if err != nil {
		t.Fatal(err)
	}
	if res.StatusCode == fiber.StatusOK {
		t.Fatal("expected rejection without token")
	}
}
