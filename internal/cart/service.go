package cart

import (
	"context"
	"errors"

	"github.com/amanaorganics/organic-store-backend/internal/user"
)

var ErrMissingFields = errors.New("item id and size are required")

// Service manipulates the cartData map stored on the user document.
type Service struct {
	users user.Repository
}

func NewService(users user.Repository) *Service {
	return &Service{users: users}
}

func (s *Service) Get(ctx context.Context, userID string) (user.CartData, error) {
	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if u.CartData == nil {
		return user.CartData{}, nil
	}
	return u.CartData, nil
}

// Add increments the quantity of an item/size entry by one.
func (s *Service) Add(ctx context.Context, userID, itemID, size string) (user.CartData, error) {
	if itemID == "" || size == "" {
		return nil, ErrMissingFields
	}

	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	cart := u.CartData
	if cart == nil {
		cart = user.CartData{}
	}
	if cart[itemID] == nil {
		cart[itemID] = map[string]int{}
	}
	cart[itemID][size]++

	if err := s.users.UpdateCart(ctx, userID, cart); err != nil {
		return nil, err
	}
	return cart, nil
}

// Update sets the quantity of an item/size entry. Zero or negative removes it.
func (s *Service) Update(ctx context.Context, userID, itemID, size string, quantity int) (user.CartData, error) {
	if itemID == "" || size == "" {
		return nil, ErrMissingFields
	}

	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	cart := u.CartData
	if cart == nil {
		cart = user.CartData{}
	}

	if quantity <= 0 {
		if sizes, ok := cart[itemID]; ok {
			delete(sizes, size)
			if len(sizes) == 0 {
				delete(cart, itemID)
			}
		}
	} else {
		if cart[itemID] == nil {
			cart[itemID] = map[string]int{}
		}
		cart[itemID][size] = quantity
	}

	if err := s.users.UpdateCart(ctx, userID, cart); err != nil {
		return nil, err
	}
	return cart, nil
}
