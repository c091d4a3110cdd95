package order

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/amanaorganics/organic-store-backend/internal/auth"
	"github.com/amanaorganics/organic-store-backend/internal/user"
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
	grp := app.Group("/api/order")

	// public: guests place, verify, and look up their orders
	grp.Post("/place", h.place)
	grp.Post("/razorpay", h.placeRazorpay)
	grp.Post("/verifyRazorpay", h.verifyRazorpay)
	grp.Post("/guest-orders", h.guestOrders)
	grp.Get("/track", h.track)
	grp.Get("/tracking/:orderId", h.getTracking)

	authed := auth.Protected(h.secret)
	grp.Post("/userorders", authed, h.userOrders)

	adminOnly := auth.RequireRoles(user.RoleAdmin)
	grp.Post("/list", authed, adminOnly, h.allOrders)
	grp.Post("/status", authed, adminOnly, h.updateStatus)

	grp.Put("/tracking/:orderId", authed, auth.RequireRoles(user.RoleAdmin, user.RoleVendor), h.updateTracking)
	grp.Put("/vendor/:orderId", authed, auth.RequireRoles(user.RoleVendor), h.vendorAcceptance)
}

type placeRequest struct {
	UserID    string                 `json:"userId"`
	GuestInfo *GuestInfo             `json:"guestInfo"`
	Items     []Item                 `json:"items"`
	Amount    float64                `json:"amount"`
	Address   map[string]interface{} `json:"address"`
}

func (r placeRequest) toInput() PlaceInput {
	return PlaceInput{
		UserID:    r.UserID,
		GuestInfo: r.GuestInfo,
		Items:     r.Items,
		Amount:    r.Amount,
		Address:   r.Address,
	}
}

func (h *Handler) place(c *fiber.Ctx) error {
	payload := new(placeRequest)
	if err := c.BodyParser(payload); err != nil {
		return web.Fail(c, fiber.StatusBadRequest, err.Error())
	}

	created, err := h.service.Place(c.Context(), payload.toInput())
	if err != nil {
		return h.placeError(c, err)
	}

	return web.Success(c, fiber.Map{"message": "Order Placed Successfully", "orderId": created.ID.Hex()})
}

func (h *Handler) placeRazorpay(c *fiber.Ctx) error {
	payload := new(placeRequest)
	if err := c.BodyParser(payload); err != nil {
		return web.Fail(c, fiber.StatusBadRequest, err.Error())
	}

	_, gatewayOrder, err := h.service.PlaceRazorpay(c.Context(), payload.toInput())
	if err != nil {
		return h.placeError(c, err)
	}

	return web.Success(c, fiber.Map{"order": gatewayOrder})
}

func (h *Handler) placeError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, ErrMissingFields),
		errors.Is(err, ErrGuestInfoRequired),
		errors.Is(err, ErrGuestInfoIncomplete):
		return web.Fail(c, fiber.StatusBadRequest, err.Error())
	case errors.Is(err, ErrGateway):
		return web.Fail(c, fiber.StatusBadGateway, err.Error())
	default:
		return web.Error(c, err)
	}
}

type verifyRequest struct {
	UserID          string `json:"userId"`
	RazorpayOrderID string `json:"razorpay_order_id"`
}

func (h *Handler) verifyRazorpay(c *fiber.Ctx) error {
	payload := new(verifyRequest)
	if err := c.BodyParser(payload); err != nil {
		return web.Fail(c, fiber.StatusBadRequest, err.Error())
	}

	paid, err := h.service.VerifyPayment(c.Context(), payload.UserID, payload.RazorpayOrderID)
	if err != nil {
		switch {
		case errors.Is(err, ErrGateway):
			return web.Fail(c, fiber.StatusBadGateway, err.Error())
		case errors.Is(err, ErrNotFound):
			return web.Fail(c, fiber.StatusNotFound, err.Error())
		default:
			return web.Error(c, err)
		}
	}
	if !paid {
		return web.Fail(c, fiber.StatusOK, "Payment Failed")
	}
	return web.Success(c, fiber.Map{"message": "Payment Successful"})
}

type guestOrdersRequest struct {
	Email string `json:"email"`
	Phone string `json:"phone"`
}

func (h *Handler) guestOrders(c *fiber.Ctx) error {
	payload := new(guestOrdersRequest)
	if err := c.BodyParser(payload); err != nil {
		return web.Fail(c, fiber.StatusBadRequest, err.Error())
	}
	if payload.Email == "" || payload.Phone == "" {
		return web.Fail(c, fiber.StatusBadRequest, "Email and phone are required to find guest orders")
	}

	orders, err := h.service.GuestOrders(c.Context(), payload.Email, payload.Phone)
	if err != nil {
		return web.Error(c, err)
	}
	return web.Success(c, fiber.Map{"orders": orders})
}

func (h *Handler) track(c *fiber.Ctx) error {
	o, err := h.service.Track(c.Context(), c.Query("orderId"), c.Query("email"))
	if err != nil {
		switch err {
		case ErrNotFound:
			return web.Fail(c, fiber.StatusNotFound, err.Error())
		default:
			return web.Error(c, err)
		}
	}
	return web.Success(c, fiber.Map{"order": o})
}

func (h *Handler) getTracking(c *fiber.Ctx) error {
	tracking, err := h.service.GetTracking(c.Context(), c.Params("orderId"))
	if err != nil {
		switch err {
		case ErrNotFound:
			return web.Fail(c, fiber.StatusNotFound, err.Error())
		default:
			return web.Error(c, err)
		}
	}
	return web.Success(c, fiber.Map{"tracking": tracking})
}

func (h *Handler) userOrders(c *fiber.Ctx) error {
	claims, err := auth.FromCtx(c)
	if err != nil {
		return web.Fail(c, fiber.StatusUnauthorized, "unauthorized")
	}

	// zero orders is a success with an empty list, not an error
	orders, err := h.service.ListUser(c.Context(), claims.UserID)
	if err != nil {
		return web.Error(c, err)
	}
	return web.Success(c, fiber.Map{"orders": orders})
}

func (h *Handler) allOrders(c *fiber.Ctx) error {
	orders, err := h.service.ListAll(c.Context())
	if err != nil {
		return web.Error(c, err)
	}
	return web.Success(c, fiber.Map{"orders": orders})
}

type statusRequest struct {
	OrderID string `json:"orderId"`
	Status  string `json:"status"`
}

func (h *Handler) updateStatus(c *fiber.Ctx) error {
	payload := new(statusRequest)
	if err := c.BodyParser(payload); err != nil {
		return web.Fail(c, fiber.StatusBadRequest, err.Error())
	}

	o, err := h.service.UpdateStatus(c.Context(), payload.OrderID, payload.Status)
	if err != nil {
		switch err {
		case ErrInvalidStatus:
			return web.Fail(c, fiber.StatusBadRequest, err.Error())
		case ErrNotFound:
			return web.Fail(c, fiber.StatusNotFound, err.Error())
		default:
			return web.Error(c, err)
		}
	}
	return web.Success(c, fiber.Map{"message": "Status Updated", "order": o})
}

type trackingRequest struct {
	Status            string `json:"status"`
	Comment           string `json:"comment"`
	EstimatedDelivery string `json:"estimatedDelivery"`
}

func (h *Handler) updateTracking(c *fiber.Ctx) error {
	payload := new(trackingRequest)
	if err := c.BodyParser(payload); err != nil {
		return web.Fail(c, fiber.StatusBadRequest, err.Error())
	}
	if payload.Status == "" {
		return web.Fail(c, fiber.StatusBadRequest, "status is required")
	}

	var estimated *time.Time
	if payload.EstimatedDelivery != "" {
		t, err := parseDeliveryDate(payload.EstimatedDelivery)
		if err != nil {
			return web.Fail(c, fiber.StatusBadRequest, "invalid estimatedDelivery date")
		}
		estimated = &t
	}

	o, err := h.service.UpdateTracking(c.Context(), c.Params("orderId"), payload.Status, payload.Comment, estimated)
	if err != nil {
		switch err {
		case ErrNotFound:
			return web.Fail(c, fiber.StatusNotFound, err.Error())
		default:
			return web.Error(c, err)
		}
	}
	return web.Success(c, fiber.Map{"message": "Tracking updated successfully", "order": o})
}

func parseDeliveryDate(value string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", value)
}

type vendorRequest struct {
	Status string `json:"status"`
}

func (h *Handler) vendorAcceptance(c *fiber.Ctx) error {
	payload := new(vendorRequest)
	if err := c.BodyParser(payload); err != nil {
		return web.Fail(c, fiber.StatusBadRequest, err.Error())
	}

	claims, err := auth.FromCtx(c)
	if err != nil || claims.VendorID == "" {
		return web.Fail(c, fiber.StatusUnauthorized, "unauthorized")
	}

	o, err := h.service.UpdateVendorAcceptance(c.Context(), c.Params("orderId"), claims.VendorID, payload.Status)
	if err != nil {
		switch err {
		case ErrInvalidStatus, ErrNotAccepted:
			return web.Fail(c, fiber.StatusBadRequest, err.Error())
		case ErrVendorMismatch:
			return web.Fail(c, fiber.StatusForbidden, err.Error())
		case ErrNotFound:
			return web.Fail(c, fiber.StatusNotFound, err.Error())
		default:
			return web.Error(c, err)
		}
	}
	return web.Success(c, fiber.Map{"message": "Vendor acceptance updated", "order": o})
}
