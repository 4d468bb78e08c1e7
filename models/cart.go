package models

import "time"

// CartItem represents a single line in a session's cart: one product and
// how many of it. A cart holds at most one CartItem per product id.
type CartItem struct {
	Product  Product   `json:"product"`
	Quantity int       `json:"quantity"`
	AddedAt  time.Time `json:"addedAt"`
}

// OrderTotals are derived amounts, recomputed from line items on demand.
type OrderTotals struct {
	Subtotal   int `json:"subtotal"`
	Shipping   int `json:"shipping"`
	VAT        int `json:"vat"`
	GrandTotal int `json:"grandTotal"`
}

// BillingDetails holds the checkout form fields. Only presence is validated.
type BillingDetails struct {
	Name          string `json:"name"`
	Email         string `json:"email"`
	Phone         string `json:"phone"`
	Address       string `json:"address"`
	ZIP           string `json:"zip"`
	City          string `json:"city"`
	Country       string `json:"country"`
	PaymentMethod string `json:"paymentMethod"` // "emoney" or "cash"
	EMoneyNumber  string `json:"emoneyNumber,omitempty"`
	EMoneyPin     string `json:"emoneyPin,omitempty"`
}

// Order is a checkout snapshot: the line items and totals captured at
// submission time. Orders live only in session memory, never in a store.
type Order struct {
	OrderID   string         `json:"orderId"`
	SessionID string         `json:"-"`
	Billing   BillingDetails `json:"billing"`
	Items     []CartItem     `json:"items"`
	Totals    OrderTotals    `json:"totals"`
	Status    string         `json:"status"` // "confirming" or "confirmed"
	CreatedAt time.Time      `json:"createdAt"`
}

// Notice is a secondary, non-blocking message surfaced to the session,
// e.g. the outcome of a confirmation email send.
type Notice struct {
	Kind    string    `json:"kind"` // "email_sent", "email_failed"
	Title   string    `json:"title"`
	Message string    `json:"message"`
	At      time.Time `json:"at"`
}

// OrderEvent is the payload published on the order-events channel after a
// checkout completes.
type OrderEvent struct {
	OrderID    string    `json:"orderId"`
	GrandTotal int       `json:"grandTotal"`
	ItemCount  int       `json:"itemCount"`
	Categories []string  `json:"categories"`
	At         time.Time `json:"at"`
}
