package user

import (
	"github.com/gofiber/fiber/v2"

	"github.com/amanaorganics/organic-store-backend/internal/auth"
	"github.com/amanaorganics/organic-store-backend/internal/web"
)

type Handler struct {
	service *Service
	secret  string
}

func NewHandler(service *Service, jwtSecret string) *Handler {
	return &Handler{service: service, secret: jwtSecret}
}

func (h *Handler) RegisterRoutes(app *fiber.App) {
	grp := app.Group("/api/user")
	grp.Post("/register", h.register)
	grp.Post("/login", h.login)
	grp.Get("/profile", auth.Protected(h.secret), h.profile)
}

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *Handler) register(c *fiber.Ctx) error {
	payload := new(registerRequest)
	if err := c.BodyParser(payload); err != nil {
		return web.Fail(c, fiber.StatusBadRequest, err.Error())
	}

	created, err := h.service.Register(c.Context(), User{
		Name:     payload.Name,
		Email:    payload.Email,
		Password: payload.Password,
	})
	switch err {
	case nil:
	case ErrMissingFields:
		return web.Fail(c, fiber.StatusBadRequest, err.Error())
	case ErrEmailExists:
		return web.Fail(c, fiber.StatusConflict, err.Error())
	default:
		return web.Error(c, err)
	}

	token, err := auth.CreateToken(h.secret, created.ID.Hex(), created.Role, created.VendorID)
	if err != nil {
		return web.Error(c, err)
	}

	return web.Success(c, fiber.Map{"user": sanitizeUser(created), "token": token})
}

func (h *Handler) login(c *fiber.Ctx) error {
	payload := new(loginRequest)
	if err := c.BodyParser(payload); err != nil {
		return web.Fail(c, fiber.StatusBadRequest, err.Error())
	}

	u, err := h.service.Authenticate(c.Context(), payload.Email, payload.Password)
	if err != nil {
		return web.Fail(c, fiber.StatusUnauthorized, ErrInvalidCredentials.Error())
	}

	token, err := auth.CreateToken(h.secret, u.ID.Hex(), u.Role, u.VendorID)
	if err != nil {
		return web.Error(c, err)
	}

	return web.Success(c, fiber.Map{"user": sanitizeUser(u), "token": token})
}

func (h *Handler) profile(c *fiber.Ctx) error {
	claims, err := auth.FromCtx(c)
	if err != nil {
		return web.Fail(c, fiber.StatusUnauthorized, "unauthorized")
	}

	u, err := h.service.GetByID(c.Context(), claims.UserID)
	if err != nil {
		return web.Fail(c, fiber.StatusNotFound, ErrNotFound.Error())
	}

	return web.Success(c, fiber.Map{"user": sanitizeUser(u)})
}
