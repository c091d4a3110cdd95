package product

import (
	"context"
	"errors"
	"io"
	"time"

	"github.com/gosimple/slug"

	"github.com/amanaorganics/organic-store-backend/internal/media"
)

const (
	// MaxImages is the number of image slots on the add/update forms.
	MaxImages = 4

	bestsellerLimit = 8
)

var (
	ErrMissingFields   = errors.New("name, description, and category are required")
	ErrInvalidCategory = errors.New("invalid category")
	ErrTooManyImages   = errors.New("at most 4 images are allowed")
)

type Service struct {
	repo     Repository
	uploader media.Uploader
}

func NewService(repo Repository, uploader media.Uploader) *Service {
	return &Service{repo: repo, uploader: uploader}
}

// Input is the typed add-product payload. Prices, stock and flags are parsed
// by the handler; malformed values are rejected there rather than coerced.
type Input struct {
	Name        string
	Description string
	Category    string
	SubCategory string
	Price       float64
	Stock       int
	Bestseller  bool
	Organic     bool
	Sizes       []string
}

// Add uploads the images in order, derives the slug from the name and
// persists the product.
func (s *Service) Add(ctx context.Context, in Input, images []io.Reader) (Product, error) {
	if in.Name == "" || in.Description == "" || in.Category == "" {
		return Product{}, ErrMissingFields
	}
	if !validCategory(in.Category) {
		return Product{}, ErrInvalidCategory
	}
	if len(images) > MaxImages {
		return Product{}, ErrTooManyImages
	}

	urls, err := s.uploadAll(ctx, images)
	if err != nil {
		return Product{}, err
	}

	sizes := in.Sizes
	if sizes == nil {
		sizes = []string{}
	}

	return s.repo.Create(ctx, Product{
		Name:        in.Name,
		Slug:        slug.Make(in.Name),
		Description: in.Description,
		Category:    in.Category,
		SubCategory: in.SubCategory,
		Price:       in.Price,
		Stock:       in.Stock,
		Bestseller:  in.Bestseller,
		Organic:     in.Organic,
		Sizes:       sizes,
		Image:       urls,
		Date:        time.Now().UTC(),
	})
}

// Update is a partial update: nil fields keep their current value. When any
// new images are supplied they replace the whole image list, and the slug is
// re-derived if the name changes.
type Update struct {
	Name        *string
	Description *string
	Category    *string
	SubCategory *string
	Price       *float64
	Stock       *int
	Bestseller  *bool
	Organic     *bool
	Sizes       []string
}

func (s *Service) Update(ctx context.Context, id string, up Update, images []io.Reader) (Product, error) {
	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return Product{}, err
	}
	if len(images) > MaxImages {
		return Product{}, ErrTooManyImages
	}

	if up.Name != nil && *up.Name != existing.Name {
		existing.Name = *up.Name
		existing.Slug = slug.Make(*up.Name)
	}
	if up.Description != nil {
		existing.Description = *up.Description
	}
	if up.Category != nil {
		if !validCategory(*up.Category) {
			return Product{}, ErrInvalidCategory
		}
		existing.Category = *up.Category
	}
	if up.SubCategory != nil {
		existing.SubCategory = *up.SubCategory
	}
	if up.Price != nil {
		existing.Price = *up.Price
	}
	if up.Stock != nil {
		existing.Stock = *up.Stock
	}
	if up.Bestseller != nil {
		existing.Bestseller = *up.Bestseller
	}
	if up.Organic != nil {
		existing.Organic = *up.Organic
	}
	if up.Sizes != nil {
		existing.Sizes = up.Sizes
	}

	if len(images) > 0 {
		urls, err := s.uploadAll(ctx, images)
		if err != nil {
			return Product{}, err
		}
		existing.Image = urls
	}

	return s.repo.Update(ctx, existing)
}

func (s *Service) uploadAll(ctx context.Context, images []io.Reader) ([]string, error) {
	urls := make([]string, 0, len(images))
	for _, img := range images {
		url, err := s.uploader.Upload(ctx, img)
		if err != nil {
			return nil, err
		}
		urls = append(urls, url)
	}
	return urls, nil
}

func (s *Service) GetBySlug(ctx context.Context, slugValue string) (Product, error) {
	return s.repo.GetBySlug(ctx, slugValue)
}

func (s *Service) GetByID(ctx context.Context, id string) (Product, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) List(ctx context.Context, q ListQuery) ([]Product, error) {
	return s.repo.List(ctx, q)
}

func (s *Service) Remove(ctx context.Context, id string) error {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

func (s *Service) Categories(ctx context.Context) ([]string, error) {
	return s.repo.Categories(ctx)
}

func (s *Service) Bestsellers(ctx context.Context) ([]Product, error) {
	return s.repo.Bestsellers(ctx, bestsellerLimit)
}
