package cart

import (
	"github.com/gofiber/fiber/v2"

	"github.com/amanaorganics/organic-store-backend/internal/auth"
	"github.com/amanaorganics/organic-store-backend/internal/user"
	"github.com/amanaorganics/organic-store-backend/internal/web"
)

// Handler delegates cart operations to the cart service.
// This keeps cart-specific HTTP routing isolated.
type Handler struct {
	service *Service
	secret  string
}

func NewHandler(service *Service, jwtSecret string) *Handler {
	return &Handler{service: service, secret: jwtSecret}
}

func (h *Handler) RegisterRoutes(app *fiber.App) {
	grp := app.Group("/api/cart", auth.Protected(h.secret))
	grp.Post("/get", h.getCart)
	grp.Post("/add", h.addToCart)
	grp.Post("/update", h.updateCart)
}

type cartRequest struct {
	ItemID   string `json:"itemId"`
	Size     string `json:"size"`
	Quantity int    `json:"quantity"`
}

func (h *Handler) getCart(c *fiber.Ctx) error {
	claims, err := auth.FromCtx(c)
	if err != nil {
		return web.Fail(c, fiber.StatusUnauthorized, "unauthorized")
	}

	cart, err := h.service.Get(c.Context(), claims.UserID)
	if err != nil {
		switch err {
		case user.ErrNotFound:
			return web.Fail(c, fiber.StatusNotFound, err.Error())
		default:
			return web.Error(c, err)
		}
	}

	return web.Success(c, fiber.Map{"cartData": cart})
}

func (h *Handler) addToCart(c *fiber.Ctx) error {
	payload := new(cartRequest)
	if err := c.BodyParser(payload); err != nil {
		return web.Fail(c, fiber.StatusBadRequest, err.Error())
	}

	claims, err := auth.FromCtx(c)
	if err != nil {
		return web.Fail(c, fiber.StatusUnauthorized, "unauthorized")
	}

	cart, err := h.service.Add(c.Context(), claims.UserID, payload.ItemID, payload.Size)
	if err != nil {
		switch err {
		case ErrMissingFields:
			return web.Fail(c, fiber.StatusBadRequest, err.Error())
		case user.ErrNotFound:
			return web.Fail(c, fiber.StatusNotFound, err.Error())
		default:
			return web.Error(c, err)
		}
	}

	return web.Success(c, fiber.Map{"message": "Added To Cart", "cartData": cart})
}

func (h *Handler) updateCart(c *fiber.Ctx) error {
	payload := new(cartRequest)
	if err := c.BodyParser(payload); err != nil {
		return web.Fail(c, fiber.StatusBadRequest, err.Error())
	}

	claims, err := auth.FromCtx(c)
	if err != nil {
		return web.Fail(c, fiber.StatusUnauthorized, "unauthorized")
	}

	cart, err := h.service.Update(c.Context(), claims.UserID, payload.ItemID, payload.Size, payload.Quantity)
	if err != nil {
		switch err {
		case ErrMissingFields:
			return web.Fail(c, fiber.StatusBadRequest, err.Error())
		case user.ErrNotFound:
			return web.Fail(c, fiber.StatusNotFound, err.Error())
		default:
			return web.Error(c, err)
		}
	}

	return web.Success(c, fiber.Map{"message": "Cart Updated", "cartData": cart})
}
