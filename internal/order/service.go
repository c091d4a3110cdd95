package order

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math"
	"strings"
	"time"

	"github.com/amanaorganics/organic-store-backend/internal/payment"
	"github.com/amanaorganics/organic-store-backend/internal/user"
)

const currency = "INR"

var (
	ErrMissingFields       = errors.New("items, amount, and address are required")
	ErrGuestInfoRequired   = errors.New("guest information is required for guest orders")
	ErrGuestInfoIncomplete = errors.New("name, email, and phone are required for guest orders")
	ErrInvalidStatus       = errors.New("invalid status value")
	ErrNotAccepted         = errors.New("order must be accepted before it can be shipped")
	ErrVendorMismatch      = errors.New("you don't have any items in this order")
	ErrGateway             = errors.New("payment gateway error")
)

// Service implements the order lifecycle: placement (guest or user), payment
// verification, tracking, and vendor acceptance.
type Service struct {
	repo    Repository
	users   user.Repository
	gateway payment.Gateway
}

func NewService(repo Repository, users user.Repository, gateway payment.Gateway) *Service {
	return &Service{repo: repo, users: users, gateway: gateway}
}

// PlaceInput is a checkout request. UserID empty means a guest order, in
// which case GuestInfo must be fully populated.
type PlaceInput struct {
	UserID    string
	GuestInfo *GuestInfo
	Items     []Item
	Amount    float64
	Address   map[string]interface{}
}

func validatePlace(in PlaceInput) error {
	if len(in.Items) == 0 || in.Amount <= 0 || len(in.Address) == 0 {
		return ErrMissingFields
	}
	if in.UserID == "" {
		if in.GuestInfo == nil {
			return ErrGuestInfoRequired
		}
		if in.GuestInfo.Name == "" || in.GuestInfo.Email == "" || in.GuestInfo.Phone == "" {
			return ErrGuestInfoIncomplete
		}
	}
	return nil
}

func newOrder(in PlaceInput, method string) Order {
	now := time.Now().UTC()
	orderType := TypeUser
	guestInfo := in.GuestInfo
	if in.UserID == "" {
		orderType = TypeGuest
	} else {
		guestInfo = nil
	}

	return Order{
		UserID:        in.UserID,
		GuestInfo:     guestInfo,
		Items:         in.Items,
		Amount:        in.Amount,
		Address:       in.Address,
		Status:        StatusPlaced,
		PaymentMethod: method,
		Payment:       false,
		Date:          now,
		OrderType:     orderType,
		Tracking: Tracking{
			Status: string(StatusPlaced),
			Updates: []TrackingUpdate{{
				Status:    string(StatusPlaced),
				Timestamp: now,
				Comment:   "Order received",
			}},
		},
		VendorAcceptance: []VendorDecision{},
	}
}

// Place persists a cash-on-delivery order. The user's cart is cleared only
// for authenticated orders; guest orders never touch a user document.
func (s *Service) Place(ctx context.Context, in PlaceInput) (Order, error) {
	if err := validatePlace(in); err != nil {
		return Order{}, err
	}

	created, err := s.repo.Create(ctx, newOrder(in, MethodCOD))
	if err != nil {
		return Order{}, err
	}

	s.clearCart(ctx, in.UserID)
	return created, nil
}

// PlaceRazorpay persists an unpaid order and registers a payment order with
// the gateway, keyed by the local order id as receipt.
func (s *Service) PlaceRazorpay(ctx context.Context, in PlaceInput) (Order, payment.Order, error) {
	if err := validatePlace(in); err != nil {
		return Order{}, payment.Order{}, err
	}

	created, err := s.repo.Create(ctx, newOrder(in, MethodRazorpay))
	if err != nil {
		return Order{}, payment.Order{}, err
	}

	// gateway amounts are in the currency's smallest unit
	paise := int64(math.Round(in.Amount * 100))
	gw, err := s.gateway.CreateOrder(paise, currency, created.ID.Hex())
	if err != nil {
		return Order{}, payment.Order{}, fmt.Errorf("%w: %v", ErrGateway, err)
	}

	return created, gw, nil
}

// VerifyPayment fetches the gateway order and, only if the gateway reports
// it paid, marks the matching local order. The gateway fetch is the sole
// source of payment truth.
func (s *Service) VerifyPayment(ctx context.Context, userID, gatewayOrderID string) (bool, error) {
	gw, err := s.gateway.FetchOrder(gatewayOrderID)
	if err != nil {
		return false, fmt.Errorf("%w: %v", ErrGateway, err)
	}

	if gw.Status != "paid" {
		return false, nil
	}

	if err := s.repo.SetPayment(ctx, gw.Receipt, true); err != nil {
		return false, err
	}

	s.clearCart(ctx, userID)
	return true, nil
}

// clearCart empties an authenticated user's cart. Failure is logged, not
// fatal: the order is already persisted and the writes are not transactional.
func (s *Service) clearCart(ctx context.Context, userID string) {
	if userID == "" {
		return
	}
	if err := s.users.ClearCart(ctx, userID); err != nil {
		log.Printf("warning: could not clear cart for user %s: %v", userID, err)
	}
}

func (s *Service) ListAll(ctx context.Context) ([]Order, error) {
	return s.repo.ListAll(ctx)
}

func (s *Service) ListUser(ctx context.Context, userID string) ([]Order, error) {
	return s.repo.ListByUser(ctx, userID)
}

func (s *Service) GuestOrders(ctx context.Context, email, phone string) ([]Order, error) {
	return s.repo.ListGuest(ctx, email, phone)
}

// UpdateStatus sets an order's status from the admin panel. The value must
// parse into the admin-assignable set; both status and tracking.status are
// written together with a log entry.
func (s *Service) UpdateStatus(ctx context.Context, orderID, status string) (Order, error) {
	st, err := ParseStatus(status)
	if err != nil || !adminAssignable[st] {
		return Order{}, ErrInvalidStatus
	}

	o, err := s.repo.GetByID(ctx, orderID)
	if err != nil {
		return Order{}, err
	}

	o.setStatus(st, fmt.Sprintf("Order status updated to %s", st))
	return s.repo.Update(ctx, o)
}

// UpdateTracking records a delivery update. The status here is free-form
// carrier text and is deliberately not checked against the lifecycle; only
// the tracking sub-structure is touched.
func (s *Service) UpdateTracking(ctx context.Context, orderID, status, comment string, estimatedDelivery *time.Time) (Order, error) {
	o, err := s.repo.GetByID(ctx, orderID)
	if err != nil {
		return Order{}, err
	}

	o.Tracking.Status = status
	if estimatedDelivery != nil {
		o.Tracking.EstimatedDelivery = estimatedDelivery
	}
	o.Tracking.Updates = append(o.Tracking.Updates, TrackingUpdate{
		Status:    status,
		Timestamp: time.Now().UTC(),
		Comment:   comment,
	})

	return s.repo.Update(ctx, o)
}

func (s *Service) GetTracking(ctx context.Context, orderID string) (Tracking, error) {
	o, err := s.repo.GetByID(ctx, orderID)
	if err != nil {
		return Tracking{}, err
	}
	return o.Tracking, nil
}

// UpdateVendorAcceptance records a vendor's decision for their portion of
// the order. The order is loaded before the transition is validated;
// shipping requires a prior accepted status, and the caller's vendor id must
// match one of the order's items.
func (s *Service) UpdateVendorAcceptance(ctx context.Context, orderID, vendorID, status string) (Order, error) {
	st, err := ParseStatus(status)
	if err != nil || !vendorAssignable[st] {
		return Order{}, ErrInvalidStatus
	}

	o, err := s.repo.GetByID(ctx, orderID)
	if err != nil {
		return Order{}, err
	}

	if st == StatusShipped && !CanTransition(o.Status, StatusShipped) {
		return Order{}, ErrNotAccepted
	}
	if !o.hasVendor(vendorID) {
		return Order{}, ErrVendorMismatch
	}

	now := time.Now().UTC()
	updated := false
	for i := range o.VendorAcceptance {
		if o.VendorAcceptance[i].VendorID == vendorID {
			o.VendorAcceptance[i].Status = st
			o.VendorAcceptance[i].Timestamp = now
			updated = true
			break
		}
	}
	if !updated {
		o.VendorAcceptance = append(o.VendorAcceptance, VendorDecision{
			VendorID:  vendorID,
			Status:    st,
			Timestamp: now,
		})
	}

	// the vendor decision is mirrored into the order's own status
	o.setStatus(st, fmt.Sprintf("Vendor has %s the order", strings.ToLower(string(st))))
	return s.repo.Update(ctx, o)
}

// Track is the public lookup: by order id first, then by address email.
func (s *Service) Track(ctx context.Context, orderID, email string) (Order, error) {
	if orderID != "" {
		return s.repo.GetByID(ctx, orderID)
	}
	if email != "" {
		return s.repo.GetByAddressEmail(ctx, email)
	}
	return Order{}, ErrNotFound
}
