package cart

import (
	"context"
	"testing"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/amanaorganics/organic-store-backend/internal/user"
)

func seedUser() (user.Repository, string) {
	u := user.User{ID: primitive.NewObjectID(), Name: "A", Email: "a@example.com"}
	return user.NewInMemoryRepository([]user.User{u}), u.ID.Hex()
}

func TestAdd_IncrementsQuantity(t *testing.T) {
	repo, userID := seedUser()
	svc := NewService(repo)
	ctx := context.Background()

	if _, err := svc.Add(ctx, userID, "item1", "250g"); err != nil {
		t.Fatal(err)
	}
	cart, err := svc.Add(ctx, userID, "item1", "250g")
	if err != nil {
		t.Fatal(err)
	}
	if cart["item1"]["250g"] != 2 {
		t.Fatalf("expected quantity 2, got %d", cart["item1"]["250g"])
	}
}

func TestAdd_RequiresItemAndSize(t *testing.T) {
	repo, userID := seedUser()
	svc := NewService(repo)

	if _, err := svc.Add(context.Background(), userID, "", "250g"); err != ErrMissingFields {
		t.Fatalf("expected ErrMissingFields, got %v", err)
	}
}

func TestUpdate_SetsAndRemovesEntries(t *testing.T) {
	repo, userID := seedUser()
	svc := NewService(repo)
	ctx := context.Background()

	cart, err := svc.Update(ctx, userID, "item1", "500g", 3)
	if err != nil {
		t.Fatal(err)
	}
	if cart["item1"]["500g"] != 3 {
		t.Fatalf("expected quantity 3, got %d", cart["item1"]["500g"])
	}

	cart, err = svc.Update(ctx, userID, "item1", "500g", 0)
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := cart["item1"]; ok {
		t.Fatal("expected item removed when quantity drops to zero")
	}
}

func TestGet_UnknownUser(t *testing.T) {
	svc := NewService(user.NewInMemoryRepository(nil))
	if _, err := svc.Get(context.Background(), primitive.NewObjectID().Hex()); err != user.ErrNotFound {
		t.Fatalf("expected user.ErrNotFound, got %v", err)
	}
}
