package payment

import (
	razorpay "github.com/razorpay/razorpay-go"
)

// Order is the gateway's view of a payment order. Receipt carries the local
// order id the payment was created for; Status is "paid" once captured.
type Order struct {
	ID       string `json:"id"`
	Status   string `json:"status"`
	Receipt  string `json:"receipt"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
}

// Gateway creates payment orders and reports their status. Payment truth
// comes only from FetchOrder, never from client-supplied flags.
type Gateway interface {
	CreateOrder(amount int64, currency, receipt string) (Order, error)
	FetchOrder(id string) (Order, error)
}

// Razorpay implements Gateway on top of the Razorpay API.
type Razorpay struct {
	client *razorpay.Client
}

func NewRazorpay(keyID, keySecret string) *Razorpay {
	return &Razorpay{client: razorpay.NewClient(keyID, keySecret)}
}

// CreateOrder registers a payment order with Razorpay. Amount is in the
// currency's smallest unit (paise for INR).
func (g *Razorpay) CreateOrder(amount int64, currency, receipt string) (Order, error) {
	body, err := g.client.Order.Create(map[string]interface{}{
		"amount":   amount,
		"currency": currency,
		"receipt":  receipt,
	}, nil)
	if err != nil {
		return Order{}, err
	}
	return orderFromBody(body), nil
}

func (g *Razorpay) FetchOrder(id string) (Order, error) {
	body, err := g.client.Order.Fetch(id, nil, nil)
	if err != nil {
		return Order{}, err
	}
	return orderFromBody(body), nil
}

func orderFromBody(body map[string]interface{}) Order {
	return Order{
		ID:       str(body["id"]),
		Status:   str(body["status"]),
		Receipt:  str(body["receipt"]),
		Amount:   num(body["amount"]),
		Currency: str(body["currency"]),
	}
}

func str(v interface{}) string {
	s, _ := v.(string)
	return s
}

func num(v interface{}) int64 {
	// the Razorpay client decodes JSON numbers as float64
	f, _ := v.(float64)
	return int64(f)
}
