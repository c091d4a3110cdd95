package order

import (
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Status is the closed set of order lifecycle states. Stored values are the
// canonical display forms; ParseStatus accepts any casing.
type Status string

const (
	StatusPlaced     Status = "Order Placed"
	StatusProcessing Status = "Processing"
	StatusAccepted   Status = "Accepted"
	StatusRejected   Status = "Rejected"
	StatusShipped    Status = "Shipped"
	StatusCompleted  Status = "Completed"
	StatusCancelled  Status = "Cancelled"
)

var statusByName = map[string]Status{
	"order placed": StatusPlaced,
	"processing":   StatusProcessing,
	"accepted":     StatusAccepted,
	"rejected":     StatusRejected,
	"shipped":      StatusShipped,
	"completed":    StatusCompleted,
	"cancelled":    StatusCancelled,
}

// ParseStatus maps a case-insensitive status string onto its canonical value.
func ParseStatus(s string) (Status, error) {
	st, ok := statusByName[strings.ToLower(strings.TrimSpace(s))]
	if !ok {
		return "", fmt.Errorf("invalid status value %q", s)
	}
	return st, nil
}

// adminAssignable is the set the admin status endpoint accepts.
var adminAssignable = map[Status]bool{
	StatusPlaced:     true,
	StatusProcessing: true,
	StatusShipped:    true,
	StatusCompleted:  true,
	StatusCancelled:  true,
}

// vendorAssignable is the set a vendor may record for their portion.
var vendorAssignable = map[Status]bool{
	StatusAccepted: true,
	StatusRejected: true,
	StatusShipped:  true,
}

// transitions encodes the order lifecycle. Shipping is only reachable once
// the order has been accepted.
var transitions = map[Status][]Status{
	StatusPlaced:     {StatusProcessing, StatusAccepted, StatusRejected, StatusCancelled},
	StatusProcessing: {StatusAccepted, StatusRejected, StatusCancelled},
	StatusAccepted:   {StatusShipped, StatusCancelled},
	StatusShipped:    {StatusCompleted, StatusCancelled},
}

// CanTransition reports whether the lifecycle allows moving from one status
// to another.
func CanTransition(from, to Status) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// Order types derived from userId presence.
const (
	TypeGuest = "guest"
	TypeUser  = "user"
)

// Payment methods.
const (
	MethodCOD      = "COD"
	MethodRazorpay = "Razorpay"
)

// GuestInfo identifies a guest order in place of a user account.
type GuestInfo struct {
	Name  string `bson:"name" json:"name"`
	Email string `bson:"email" json:"email"`
	Phone string `bson:"phone" json:"phone"`
}

// Item is a snapshot of a product line at checkout time. Vendor is the id of
// the vendor fulfilling this line on multi-vendor orders.
type Item struct {
	ProductID string   `bson:"productId" json:"productId"`
	Name      string   `bson:"name" json:"name"`
	Price     float64  `bson:"price" json:"price"`
	Quantity  int      `bson:"quantity" json:"quantity"`
	Image     []string `bson:"image" json:"image"`
	Slug      string   `bson:"slug,omitempty" json:"slug,omitempty"`
	Vendor    string   `bson:"vendor,omitempty" json:"vendor,omitempty"`
}

// TrackingUpdate is an appended, timestamped log entry describing a change
// in delivery status.
type TrackingUpdate struct {
	Status    string    `bson:"status" json:"status"`
	Timestamp time.Time `bson:"timestamp" json:"timestamp"`
	Comment   string    `bson:"comment,omitempty" json:"comment,omitempty"`
}

// Tracking holds the delivery state. Its status is free-form text because
// carriers report states that are not order statuses.
type Tracking struct {
	Status            string           `bson:"status" json:"status"`
	Updates           []TrackingUpdate `bson:"updates" json:"updates"`
	EstimatedDelivery *time.Time       `bson:"estimatedDelivery,omitempty" json:"estimatedDelivery,omitempty"`
}

// VendorDecision records whether a vendor agreed to fulfill their portion of
// a multi-vendor order.
type VendorDecision struct {
	VendorID  string    `bson:"vendorId" json:"vendorId"`
	Status    Status    `bson:"status" json:"status"`
	Timestamp time.Time `bson:"timestamp" json:"timestamp"`
}

// Order maps to the `orders` collection. An empty UserID means a guest
// order; OrderType always mirrors that.
type Order struct {
	ID               primitive.ObjectID     `bson:"_id,omitempty" json:"id"`
	UserID           string                 `bson:"userId,omitempty" json:"userId,omitempty"`
	GuestInfo        *GuestInfo             `bson:"guestInfo,omitempty" json:"guestInfo,omitempty"`
	Items            []Item                 `bson:"items" json:"items"`
	Amount           float64                `bson:"amount" json:"amount"`
	Address          map[string]interface{} `bson:"address" json:"address"`
	Status           Status                 `bson:"status" json:"status"`
	PaymentMethod    string                 `bson:"paymentMethod" json:"paymentMethod"`
	Payment          bool                   `bson:"payment" json:"payment"`
	Date             time.Time              `bson:"date" json:"date"`
	Tracking         Tracking               `bson:"tracking" json:"tracking"`
	OrderType        string                 `bson:"orderType" json:"orderType"`
	VendorAcceptance []VendorDecision       `bson:"vendorAcceptance" json:"vendorAcceptance"`
}

// setStatus writes the status, mirrors it into tracking, and appends a log
// entry, keeping the two fields consistent.
func (o *Order) setStatus(st Status, comment string) {
	o.Status = st
	o.Tracking.Status = string(st)
	o.Tracking.Updates = append(o.Tracking.Updates, TrackingUpdate{
		Status:    string(st),
		Timestamp: time.Now().UTC(),
		Comment:   comment,
	})
}

func (o *Order) hasVendor(vendorID string) bool {
	for _, item := range o.Items {
		if item.Vendor == vendorID {
			return true
		}
	}
	return false
}
