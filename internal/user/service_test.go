package user

import (
	"context"
	"strings"
	"testing"
)

func TestRegister_HashesPasswordAndDefaultsRole(t *testing.T) {
	svc := NewService(NewInMemoryRepository(nil))

	created, err := svc.Register(context.Background(), User{
		Name:     "Amina",
		Email:    "amina@example.com",
		Password: "plaintext",
	})
	if err != nil {
		t.Fatal(err)
	}
	if created.Password == "plaintext" {
		t.Error("password was stored in plaintext")
	}
	if !strings.HasPrefix(created.Password, "$2") {
		t.Errorf("expected bcrypt hash, got %q", created.Password)
	}
	if created.Role != RoleUser {
		t.Errorf("expected default role %q, got %q", RoleUser, created.Role)
	}
	if created.CartData == nil {
		t.Error("expected an initialized cartData map")
	}
}

func TestRegister_RejectsDuplicateEmail(t *testing.T) {
	svc := NewService(NewInMemoryRepository(nil))
	ctx := context.Background()

	if _, err := svc.Register(ctx, User{Name: "A", Email: "dup@example.com", Password: "pw"}); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.Register(ctx, User{Name: "B", Email: "dup@example.com", Password: "pw"}); err != ErrEmailExists {
		t.Fatalf("expected ErrEmailExists, got %v", err)
	}
}

func TestRegister_RequiresFields(t *testing.T) {
	svc := NewService(NewInMemoryRepository(nil))
	if _, err := svc.Register(context.Background(), User{Email: "x@example.com"}); err != ErrMissingFields {
		t.Fatalf("expected ErrMissingFields, got %v", err)
	}
}

func TestAuthenticate(t *testing.T) {
	svc := NewService(NewInMemoryRepository(nil))
	ctx := context.Background()

	if _, err := svc.Register(ctx, User{Name: "A", Email: "a@example.com", Password: "secret"}); err != nil {
		t.Fatal(err)
	}

	if _, err := svc.Authenticate(ctx, "a@example.com", "secret"); err != nil {
		t.Fatalf("expected successful login, got %v", err)
	}
	if _, err := svc.Authenticate(ctx, "a@example.com", "wrong"); err != ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if _, err := svc.Authenticate(ctx, "nobody@example.com", "secret"); err != ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials for unknown email, got %v", err)
	}
}
