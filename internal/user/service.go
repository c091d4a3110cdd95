package user

import (
	"context"
	"errors"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

var ErrMissingFields = errors.New("name, email and password are required")

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) GetByID(ctx context.Context, id string) (User, error) {
	return s.repo.GetByID(ctx, id)
}

// Register creates an account with the default user role.
func (s *Service) Register(ctx context.Context, u User) (User, error) {
	if u.Name == "" || u.Email == "" || u.Password == "" {
		return User{}, ErrMissingFields
	}
	u.Email = strings.ToLower(strings.TrimSpace(u.Email))

	if _, err := s.repo.GetByEmail(ctx, u.Email); err == nil {
		return User{}, ErrEmailExists
	} else if err != ErrNotFound {
		return User{}, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(u.Password), bcrypt.DefaultCost)
	if err != nil {
		return User{}, err
	}
	u.Password = string(hashed)

	if u.Role == "" {
		u.Role = RoleUser
	}
	if u.CartData == nil {
		u.CartData = CartData{}
	}

	return s.repo.Create(ctx, u)
}

func (s *Service) Authenticate(ctx context.Context, email, password string) (User, error) {
	u, err := s.repo.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		return User{}, ErrInvalidCredentials
	}

	if bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password)) != nil {
		return User{}, ErrInvalidCredentials
	}

	return u, nil
}
