package order

import (
	"context"
	"errors"
	"sort"
	"sync"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

var ErrNotFound = errors.New("order not found")

type Repository interface {
	Create(ctx context.Context, o Order) (Order, error)
	GetByID(ctx context.Context, id string) (Order, error)
	// ListAll returns every order, newest first.
	ListAll(ctx context.Context) ([]Order, error)
	// ListByUser returns a user's orders, newest first. An empty slice is
	// not an error.
	ListByUser(ctx context.Context, userID string) ([]Order, error)
	// ListGuest matches guest orders by exact contact info, newest first.
	ListGuest(ctx context.Context, email, phone string) ([]Order, error)
	GetByAddressEmail(ctx context.Context, email string) (Order, error)
	SetPayment(ctx context.Context, id string, paid bool) error
	// Update replaces the stored document. Concurrent updates are
	// last-write-wins, matching the per-document atomicity model.
	Update(ctx context.Context, o Order) (Order, error)
}

// InMemoryRepository is used for tests and local scenarios.
type InMemoryRepository struct {
	mu     sync.RWMutex
	orders []Order
}

func NewInMemoryRepository(seed []Order) *InMemoryRepository {
	r := &InMemoryRepository{orders: make([]Order, 0, len(seed))}
	for _, o := range seed {
		if o.ID.IsZero() {
			o.ID = primitive.NewObjectID()
		}
		r.orders = append(r.orders, o)
	}
	return r
}

func (r *InMemoryRepository) Create(_ context.Context, o Order) (Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if o.ID.IsZero() {
		o.ID = primitive.NewObjectID()
	}
	r.orders = append(r.orders, o)
	return o, nil
}

func (r *InMemoryRepository) GetByID(_ context.Context, id string) (Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, o := range r.orders {
		if o.ID.Hex() == id {
			return o, nil
		}
	}
	return Order{}, ErrNotFound
}

func (r *InMemoryRepository) ListAll(_ context.Context) ([]Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Order, len(r.orders))
	copy(out, r.orders)
	sortByDateDesc(out)
	return out, nil
}

func (r *InMemoryRepository) ListByUser(_ context.Context, userID string) ([]Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := []Order{}
	for _, o := range r.orders {
		if o.UserID == userID {
			out = append(out, o)
		}
	}
	sortByDateDesc(out)
	return out, nil
}

func (r *InMemoryRepository) ListGuest(_ context.Context, email, phone string) ([]Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := []Order{}
	for _, o := range r.orders {
		if o.OrderType == TypeGuest && o.GuestInfo != nil &&
			o.GuestInfo.Email == email && o.GuestInfo.Phone == phone {
			out = append(out, o)
		}
	}
	sortByDateDesc(out)
	return out, nil
}

func (r *InMemoryRepository) GetByAddressEmail(_ context.Context, email string) (Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, o := range r.orders {
		if addr, ok := o.Address["email"].(string); ok && addr == email {
			return o, nil
		}
	}
	return Order{}, ErrNotFound
}

func (r *InMemoryRepository) SetPayment(_ context.Context, id string, paid bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, o := range r.orders {
		if o.ID.Hex() == id {
			o.Payment = paid
			r.orders[i] = o
			return nil
		}
	}
	return ErrNotFound
}

func (r *InMemoryRepository) Update(_ context.Context, o Order) (Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.orders {
		if r.orders[i].ID == o.ID {
			r.orders[i] = o
			return o, nil
		}
	}
	return Order{}, ErrNotFound
}

func sortByDateDesc(orders []Order) {
	sort.SliceStable(orders, func(i, j int) bool {
		return orders[i].Date.After(orders[j].Date)
	})
}
