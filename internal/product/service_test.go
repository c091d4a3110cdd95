package product

import (
	"context"
	"fmt"
	"io"
	"strings"
	"testing"
	"time"
)

type fakeUploader struct {
	uploads int
}

func (u *fakeUploader) Upload(_ context.Context, _ io.Reader) (string, error) {
	u.uploads++
	return fmt.Sprintf("https://cdn.example.com/img-%d.png", u.uploads), nil
}

func newTestService(seed []Product) (*Service, *fakeUploader) {
	up := &fakeUploader{}
	return NewService(NewInMemoryRepository(seed), up), up
}

func TestAdd_DerivesSlug(t *testing.T) {
	svc, _ := newTestService(nil)

	created, err := svc.Add(context.Background(), Input{
		Name:        "Lavender Oil",
		Description: "Calming essential oil",
		Category:    "Essential Oils",
		Price:       12.5,
	}, nil)
	if err != nil {
		t.Fatal(err)
	}
	if created.Slug != "lavender-oil" {
		t.Errorf("expected slug %q, got %q", "lavender-oil", created.Slug)
	}
	if created.Price != 12.5 {
		t.Errorf("expected price 12.5, got %v", created.Price)
	}
	if created.Image == nil || len(created.Image) != 0 {
		t.Errorf("expected empty image list, got %v", created.Image)
	}
}

func TestAdd_UploadsImagesInOrder(t *testing.T) {
	svc, up := newTestService(nil)

	images := []io.Reader{strings.NewReader("a"), strings.NewReader("b")}
	created, err := svc.Add(context.Background(), Input{
		Name:        "Tulsi Tea",
		Description: "Organic tulsi tea",
		Category:    "Organic Food",
	}, images)
	if err != nil {
		t.Fatal(err)
	}
	if up.uploads != 2 {
		t.Fatalf("expected 2 uploads, got %d", up.uploads)
	}
	want := []string{"https://cdn.example.com/img-1.png", "https://cdn.example.com/img-2.png"}
	for i, url := range want {
		if created.Image[i] != url {
			t.Errorf("image[%d] = %q, want %q", i, created.Image[i], url)
		}
	}
}

func TestAdd_RejectsMissingFields(t *testing.T) {
	svc, _ := newTestService(nil)
	_, err := svc.Add(context.Background(), Input{Name: "X", Category: "Organic Food"}, nil)
	if err != ErrMissingFields {
		t.Fatalf("expected ErrMissingFields, got %v", err)
	}
}

func TestAdd_RejectsUnknownCategory(t *testing.T) {
	svc, _ := newTestService(nil)
	_, err := svc.Add(context.Background(), Input{
		Name:        "X",
		Description: "d",
		Category:    "Electronics",
	}, nil)
	if err != ErrInvalidCategory {
		t.Fatalf("expected ErrInvalidCategory, got %v", err)
	}
}

func TestAdd_RejectsDuplicateSlug(t *testing.T) {
	svc, _ := newTestService(nil)
	ctx := context.Background()
	in := Input{Name: "Neem Soap", Description: "d", Category: "Natural Skincare"}

	if _, err := svc.Add(ctx, in, nil); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.Add(ctx, in, nil); err != ErrSlugExists {
		t.Fatalf("expected ErrSlugExists, got %v", err)
	}
}

func TestUpdate_RenameRederivesSlug(t *testing.T) {
	svc, _ := newTestService(nil)
	ctx := context.Background()

	created, err := svc.Add(ctx, Input{Name: "Old Name", Description: "d", Category: "Home & Garden"}, nil)
	if err != nil {
		t.Fatal(err)
	}

	name := "Rose Water Spray"
	updated, err := svc.Update(ctx, created.ID.Hex(), Update{Name: &name}, nil)
	if err != nil {
		t.Fatal(err)
	}
	if updated.Slug != "rose-water-spray" {
		t.Errorf("expected re-derived slug, got %q", updated.Slug)
	}
	if updated.Description != "d" {
		t.Errorf("untouched field changed: %q", updated.Description)
	}
}

func TestUpdate_NewImagesReplaceList(t *testing.T) {
	svc, _ := newTestService(nil)
	ctx := context.Background()

	created, err := svc.Add(ctx, Input{Name: "Herbal Mix", Description: "d", Category: "Herbs & Spices"},
		[]io.Reader{strings.NewReader("a"), strings.NewReader("b")})
	if err != nil {
		t.Fatal(err)
	}
	if len(created.Image) != 2 {
		t.Fatalf("expected 2 images, got %d", len(created.Image))
	}

	updated, err := svc.Update(ctx, created.ID.Hex(), Update{}, []io.Reader{strings.NewReader("c")})
	if err != nil {
		t.Fatal(err)
	}
	if len(updated.Image) != 1 {
		t.Fatalf("expected image list replaced wholesale, got %d entries", len(updated.Image))
	}
}

func TestUpdate_UnknownID(t *testing.T) {
	svc, _ := newTestService(nil)
	if _, err := svc.Update(context.Background(), "missing", Update{}, nil); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func seedCatalog() []Product {
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	return []Product{
		{Name: "Lavender Oil", Slug: "lavender-oil", Description: "calming oil", Category: "Essential Oils", Price: 12.5, Date: base.Add(2 * time.Hour)},
		{Name: "Tea Tree Oil", Slug: "tea-tree-oil", Description: "antiseptic", Category: "Essential Oils", Price: 8, Date: base.Add(time.Hour), Bestseller: true},
		{Name: "Turmeric Powder", Slug: "turmeric-powder", Description: "golden spice", Category: "Herbs & Spices", Price: 4, Date: base},
	}
}

func TestList_FiltersByCategory(t *testing.T) {
	svc, _ := newTestService(seedCatalog())
	out, err := svc.List(context.Background(), ListQuery{Category: "Essential Oils"})
	if err != nil {
		t.Fatal(err)
	}
	if len(out) != 2 {
		t.Fatalf("expected 2 products, got %d", len(out))
	}
}

func TestList_SearchIsCaseInsensitive(t *testing.T) {
	svc, _ := newTestService(seedCatalog())
	out, err := svc.List(context.Background(), ListQuery{Search: "OIL"})
	if err != nil {
		t.Fatal(err)
	}
	if len(out) != 2 {
		t.Fatalf("expected 2 matches, got %d", len(out))
	}
}

func TestList_SortsByPrice(t *testing.T) {
	svc, _ := newTestService(seedCatalog())

	out, err := svc.List(context.Background(), ListQuery{Sort: SortPriceLow})
	if err != nil {
		t.Fatal(err)
	}
	if out[0].Price != 4 {
		t.Errorf("price-low: expected cheapest first, got %v", out[0].Price)
	}

	out, err = svc.List(context.Background(), ListQuery{Sort: SortPriceHigh})
	if err != nil {
		t.Fatal(err)
	}
	if out[0].Price != 12.5 {
		t.Errorf("price-high: expected most expensive first, got %v", out[0].Price)
	}
}

func TestList_DefaultSortIsNewestFirst(t *testing.T) {
	svc, _ := newTestService(seedCatalog())
	out, err := svc.List(context.Background(), ListQuery{})
	if err != nil {
		t.Fatal(err)
	}
	if out[0].Slug != "lavender-oil" {
		t.Errorf("expected newest product first, got %q", out[0].Slug)
	}
}

func TestBestsellers(t *testing.T) {
	svc, _ := newTestService(seedCatalog())
	out, err := svc.Bestsellers(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(out) != 1 || out[0].Slug != "tea-tree-oil" {
		t.Fatalf("unexpected bestsellers: %v", out)
	}
}

func TestRemove(t *testing.T) {
	seed := seedCatalog()
	svc, _ := newTestService(seed)
	ctx := context.Background()

	list, _ := svc.List(ctx, ListQuery{})
	if err := svc.Remove(ctx, list[0].ID.Hex()); err != nil {
		t.Fatal(err)
	}
	if err := svc.Remove(ctx, list[0].ID.Hex()); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound on second delete, got %v", err)
	}
}
