package product

import (
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/amanaorganics/organic-store-backend/internal/auth"
	"github.com/amanaorganics/organic-store-backend/internal/user"
	"github.com/amanaorganics/organic-store-backend/internal/web"
)

// imageFields are the multipart keys for the up-to-four product images.
var imageFields = [MaxImages]string{"image1", "image2", "image3", "image4"}

type Handler struct {
	service *Service
	secret  string
}

func NewHandler(service *Service, jwtSecret string) *Handler {
	return &Handler{service: service, secret: jwtSecret}
}

func (h *Handler) RegisterRoutes(app *fiber.App) {
	grp := app.Group("/api/product")

	grp.Get("/list", h.list)
	grp.Get("/categories", h.categories)
	grp.Get("/bestsellers", h.bestsellers)
	grp.Post("/single", h.single)

	adminOnly := []fiber.Handler{auth.Protected(h.secret), auth.RequireRoles(user.RoleAdmin)}
	grp.Post("/add", append(adminOnly, h.add)...)
	grp.Post("/remove", append(adminOnly, h.remove)...)
	grp.Put("/update/:productId", append(adminOnly, h.update)...)

	// registered last to avoid shadowing the specific GET endpoints
	grp.Get("/:slug", h.bySlug)
}

func (h *Handler) list(c *fiber.Ctx) error {
	q := ListQuery{
		Category: c.Query("category"),
		Search:   c.Query("search"),
		Sort:     c.Query("sort"),
	}

	products, err := h.service.List(c.Context(), q)
	if err != nil {
		return web.Error(c, err)
	}
	if len(products) == 0 {
		// historical contract: an empty result set is reported as not-found
		return web.Fail(c, fiber.StatusNotFound, "No products found")
	}
	return web.Success(c, fiber.Map{"products": products})
}

func (h *Handler) categories(c *fiber.Ctx) error {
	categories, err := h.service.Categories(c.Context())
	if err != nil {
		return web.Error(c, err)
	}
	return web.Success(c, fiber.Map{"categories": categories})
}

func (h *Handler) bestsellers(c *fiber.Ctx) error {
	bestsellers, err := h.service.Bestsellers(c.Context())
	if err != nil {
		return web.Error(c, err)
	}
	return web.Success(c, fiber.Map{"bestsellers": bestsellers})
}

func (h *Handler) bySlug(c *fiber.Ctx) error {
	p, err := h.service.GetBySlug(c.Context(), c.Params("slug"))
	if err != nil {
		switch err {
		case ErrNotFound:
			return web.Fail(c, fiber.StatusNotFound, err.Error())
		default:
			return web.Error(c, err)
		}
	}
	return web.Success(c, fiber.Map{"product": p})
}

type singleRequest struct {
	ProductID string `json:"productId"`
}

func (h *Handler) single(c *fiber.Ctx) error {
	payload := new(singleRequest)
	if err := c.BodyParser(payload); err != nil {
		return web.Fail(c, fiber.StatusBadRequest, err.Error())
	}

	p, err := h.service.GetByID(c.Context(), payload.ProductID)
	if err != nil {
		switch err {
		case ErrNotFound:
			return web.Fail(c, fiber.StatusNotFound, err.Error())
		default:
			return web.Error(c, err)
		}
	}
	return web.Success(c, fiber.Map{"product": p})
}

func (h *Handler) add(c *fiber.Ctx) error {
	in, err := parseInput(c)
	if err != nil {
		return web.Fail(c, fiber.StatusBadRequest, err.Error())
	}

	images, closeAll, err := formImages(c)
	if err != nil {
		return web.Fail(c, fiber.StatusBadRequest, err.Error())
	}
	defer closeAll()

	created, err := h.service.Add(c.Context(), in, images)
	if err != nil {
		switch err {
		case ErrMissingFields, ErrInvalidCategory, ErrTooManyImages:
			return web.Fail(c, fiber.StatusBadRequest, err.Error())
		case ErrSlugExists:
			return web.Fail(c, fiber.StatusConflict, err.Error())
		default:
			return web.Error(c, err)
		}
	}

	return web.Success(c, fiber.Map{"message": "Product Added Successfully", "product": created})
}

type removeRequest struct {
	ID string `json:"id"`
}

func (h *Handler) remove(c *fiber.Ctx) error {
	payload := new(removeRequest)
	if err := c.BodyParser(payload); err != nil {
		return web.Fail(c, fiber.StatusBadRequest, err.Error())
	}

	if err := h.service.Remove(c.Context(), payload.ID); err != nil {
		switch err {
		case ErrNotFound:
			return web.Fail(c, fiber.StatusNotFound, err.Error())
		default:
			return web.Error(c, err)
		}
	}
	return web.Success(c, fiber.Map{"message": "Product removed successfully"})
}

func (h *Handler) update(c *fiber.Ctx) error {
	up, err := parseUpdate(c)
	if err != nil {
		return web.Fail(c, fiber.StatusBadRequest, err.Error())
	}

	images, closeAll, err := formImages(c)
	if err != nil {
		return web.Fail(c, fiber.StatusBadRequest, err.Error())
	}
	defer closeAll()

	updated, err := h.service.Update(c.Context(), c.Params("productId"), up, images)
	if err != nil {
		switch err {
		case ErrNotFound:
			return web.Fail(c, fiber.StatusNotFound, err.Error())
		case ErrInvalidCategory, ErrTooManyImages:
			return web.Fail(c, fiber.StatusBadRequest, err.Error())
		case ErrSlugExists:
			return web.Fail(c, fiber.StatusConflict, err.Error())
		default:
			return web.Error(c, err)
		}
	}

	return web.Success(c, fiber.Map{"message": "Product updated successfully", "product": updated})
}

// parseInput builds the typed add payload from the multipart form. Malformed
// numeric or boolean values are rejected, not coerced to defaults.
func parseInput(c *fiber.Ctx) (Input, error) {
	price, err := parseFloatField("price", c.FormValue("price"), 0)
	if err != nil {
		return Input{}, err
	}
	stock, err := parseIntField("stock", c.FormValue("stock"), 0)
	if err != nil {
		return Input{}, err
	}
	bestseller, err := parseBoolField("bestseller", c.FormValue("bestseller"), false)
	if err != nil {
		return Input{}, err
	}
	organic, err := parseBoolField("organic", c.FormValue("organic"), true)
	if err != nil {
		return Input{}, err
	}
	sizes, err := parseSizesField(c.FormValue("sizes"))
	if err != nil {
		return Input{}, err
	}

	return Input{
		Name:        c.FormValue("name"),
		Description: c.FormValue("description"),
		Category:    c.FormValue("category"),
		SubCategory: c.FormValue("subCategory"),
		Price:       price,
		Stock:       stock,
		Bestseller:  bestseller,
		Organic:     organic,
		Sizes:       sizes,
	}, nil
}

// parseUpdate reads only the fields present on the form, so untouched fields
// keep their stored values.
func parseUpdate(c *fiber.Ctx) (Update, error) {
	form, err := c.MultipartForm()
	if err != nil {
		return Update{}, fmt.Errorf("multipart form expected: %w", err)
	}

	up := Update{}
	get := func(key string) (string, bool) {
		vals, ok := form.Value[key]
		if !ok || len(vals) == 0 {
			return "", false
		}
		return vals[0], true
	}

	if v, ok := get("name"); ok {
		up.Name = &v
	}
	if v, ok := get("description"); ok {
		up.Description = &v
	}
	if v, ok := get("category"); ok {
		up.Category = &v
	}
	if v, ok := get("subCategory"); ok {
		up.SubCategory = &v
	}
	if v, ok := get("price"); ok {
		price, err := parseFloatField("price", v, 0)
		if err != nil {
			return Update{}, err
		}
		up.Price = &price
	}
	if v, ok := get("stock"); ok {
		stock, err := parseIntField("stock", v, 0)
		if err != nil {
			return Update{}, err
		}
		up.Stock = &stock
	}
	if v, ok := get("bestseller"); ok {
		bestseller, err := parseBoolField("bestseller", v, false)
		if err != nil {
			return Update{}, err
		}
		up.Bestseller = &bestseller
	}
	if v, ok := get("organic"); ok {
		organic, err := parseBoolField("organic", v, true)
		if err != nil {
			return Update{}, err
		}
		up.Organic = &organic
	}
	if v, ok := get("sizes"); ok {
		sizes, err := parseSizesField(v)
		if err != nil {
			return Update{}, err
		}
		up.Sizes = sizes
	}

	return up, nil
}

func parseFloatField(name, value string, def float64) (float64, error) {
	if value == "" {
		return def, nil
	}
	f, err := strconv.ParseFloat(value, 64)
	if err != nil || f < 0 {
		return 0, fmt.Errorf("invalid %s value %q", name, value)
	}
	return f, nil
}

func parseIntField(name, value string, def int) (int, error) {
	if value == "" {
		return def, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("invalid %s value %q", name, value)
	}
	return n, nil
}

func parseBoolField(name, value string, def bool) (bool, error) {
	switch value {
	case "":
		return def, nil
	case "true":
		return true, nil
	case "false":
		return false, nil
	}
	return false, fmt.Errorf("invalid %s value %q", name, value)
}

func parseSizesField(value string) ([]string, error) {
	if value == "" {
		return nil, nil
	}
	var sizes []string
	if err := json.Unmarshal([]byte(value), &sizes); err != nil {
		return nil, fmt.Errorf("invalid sizes value %q", value)
	}
	return sizes, nil
}

// formImages opens image1..image4 in slot order. Missing slots are skipped.
func formImages(c *fiber.Ctx) ([]io.Reader, func(), error) {
	files := []multipart.File{}
	closeAll := func() {
		for _, f := range files {
			f.Close()
		}
	}

	readers := []io.Reader{}
	for _, field := range imageFields {
		header, err := c.FormFile(field)
		if err != nil || header == nil {
			continue
		}
		f, err := header.Open()
		if err != nil {
			closeAll()
			return nil, func() {}, fmt.Errorf("could not read %s: %w", field, err)
		}
		files = append(files, f)
		readers = append(readers, f)
	}
	return readers, closeAll, nil
}
