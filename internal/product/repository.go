package product

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

var (
	ErrNotFound   = errors.New("product not found")
	ErrSlugExists = errors.New("a product with this slug already exists")
)

type Repository interface {
	Create(ctx context.Context, p Product) (Product, error)
	GetBySlug(ctx context.Context, slug string) (Product, error)
	GetByID(ctx context.Context, id string) (Product, error)
	List(ctx context.Context, q ListQuery) ([]Product, error)
	Update(ctx context.Context, p Product) (Product, error)
	Delete(ctx context.Context, id string) error
	Categories(ctx context.Context) ([]string, error)
	Bestsellers(ctx context.Context, limit int) ([]Product, error)
}

// InMemoryRepository is a simple in-memory implementation useful for tests
// and seeding local data.
type InMemoryRepository struct {
	mu      sync.RWMutex
	storage []Product
}

func NewInMemoryRepository(seed []Product) *InMemoryRepository {
	r := &InMemoryRepository{storage: make([]Product, 0, len(seed))}
	for _, p := range seed {
		if p.ID.IsZero() {
			p.ID = primitive.NewObjectID()
		}
		r.storage = append(r.storage, p)
	}
	return r
}

func (r *InMemoryRepository) Create(_ context.Context, p Product) (Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.storage {
		if existing.Slug == p.Slug {
			return Product{}, ErrSlugExists
		}
	}
	if p.ID.IsZero() {
		p.ID = primitive.NewObjectID()
	}
	r.storage = append(r.storage, p)
	return p, nil
}

func (r *InMemoryRepository) GetBySlug(_ context.Context, slug string) (Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, p := range r.storage {
		if p.Slug == slug {
			return p, nil
		}
	}
	return Product{}, ErrNotFound
}

func (r *InMemoryRepository) GetByID(_ context.Context, id string) (Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, p := range r.storage {
		if p.ID.Hex() == id {
			return p, nil
		}
	}
	return Product{}, ErrNotFound
}

func (r *InMemoryRepository) List(_ context.Context, q ListQuery) ([]Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Product, 0, len(r.storage))
	search := strings.ToLower(q.Search)
	for _, p := range r.storage {
		if q.Category != "" && p.Category != q.Category {
			continue
		}
		if search != "" && !matchesSearch(p, search) {
			continue
		}
		out = append(out, p)
	}

	sort.SliceStable(out, func(i, j int) bool {
		switch q.Sort {
		case SortPriceLow:
			return out[i].Price < out[j].Price
		case SortPriceHigh:
			return out[i].Price > out[j].Price
		default:
			return out[i].Date.After(out[j].Date)
		}
	})
	return out, nil
}

func matchesSearch(p Product, search string) bool {
	return strings.Contains(strings.ToLower(p.Name), search) ||
		strings.Contains(strings.ToLower(p.Description), search) ||
		strings.Contains(strings.ToLower(p.Category), search)
}

func (r *InMemoryRepository) Update(_ context.Context, p Product) (Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.storage {
		if r.storage[i].ID == p.ID {
			r.storage[i] = p
			return p, nil
		}
	}
	return Product{}, ErrNotFound
}

func (r *InMemoryRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.storage {
		if r.storage[i].ID.Hex() == id {
			r.storage = append(r.storage[:i], r.storage[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}

func (r *InMemoryRepository) Categories(_ context.Context) ([]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	seen := map[string]struct{}{}
	out := []string{}
	for _, p := range r.storage {
		if _, ok := seen[p.Category]; ok {
			continue
		}
		seen[p.Category] = struct{}{}
		out = append(out, p.Category)
	}
	sort.Strings(out)
	return out, nil
}

func (r *InMemoryRepository) Bestsellers(_ context.Context, limit int) ([]Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := []Product{}
	for _, p := range r.storage {
		if p.Bestseller {
			out = append(out, p)
			if len(out) == limit {
				break
			}
		}
	}
	return out, nil
}
