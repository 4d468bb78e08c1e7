package checkout

import (
	"errors"
	"fmt"
	"log"
	"math"
	"sync"
	"time"

	"auris/cart"
	"auris/models"

	"github.com/google/uuid"
)

var (
	ErrEmptyCart     = errors.New("cart is empty")
	ErrOrderNotFound = errors.New("order not found")
)

// MissingFieldError names the first required checkout field found blank.
type MissingFieldError struct {
	Field string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("missing required field: %s", e.Field)
}

// Notifier sends the order confirmation email. Exactly one attempt per
// order; the error is reported back but never blocks completion.
type Notifier interface {
	SendOrderConfirmation(name, email string, grandTotal int) error
}

// Noticer surfaces secondary, non-blocking notices to a session.
type Noticer interface {
	PushNotice(sessionID string, n models.Notice)
}

// Flow runs the two-state checkout: Submit moves a session from editing to
// confirming by snapshotting its cart into a pending order; Confirm makes
// the pending order terminal. Orders live only in memory.
type Flow struct {
	mu        sync.Mutex
	pending   map[string]*models.Order // order id -> confirming order
	confirmed map[string]models.Order  // session id -> last confirmed order

	sessions *cart.Sessions
	notifier Notifier
	notices  Noticer
	emit     func(models.OrderEvent)

	shipping int
	vatRate  float64
}

func NewFlow(sessions *cart.Sessions, notifier Notifier, notices Noticer, emit func(models.OrderEvent), shipping int, vatRate float64) *Flow {
	f := &Flow{
		pending:   make(map[string]*models.Order),
		confirmed: make(map[string]models.Order),
		sessions:  sessions,
		notifier:  notifier,
		notices:   notices,
		emit:      emit,
		shipping:  shipping,
		vatRate:   vatRate,
	}
	// retained orders live exactly as long as their session does
	sessions.OnEvict(func(sid string) {
		f.mu.Lock()
		delete(f.confirmed, sid)
		f.mu.Unlock()
	})
	return f
}

// Totals derives shipping, VAT, and the grand total from a subtotal.
// VAT is rounded to the nearest whole currency unit.
func (f *Flow) Totals(subtotal int) models.OrderTotals {
	vat := int(math.Round(float64(subtotal) * f.vatRate))
	return models.OrderTotals{
		Subtotal:   subtotal,
		Shipping:   f.shipping,
		VAT:        vat,
		GrandTotal: subtotal + f.shipping + vat,
	}
}

// Summary recomputes totals from the session's live cart, for the summary
// panel beside the form.
func (f *Flow) Summary(sessionID string) (cart.Snapshot, models.OrderTotals) {
	snap := f.sessions.Get(sessionID).Snapshot()
	return snap, f.Totals(snap.Total)
}

// Submit validates field presence, snapshots the cart and its totals into
// a pending order, and returns it. The totals shown in the confirmation
// dialog come from this snapshot, not from the live cart, so a mutation
// between submit and confirm cannot change what the order charges.
func (f *Flow) Submit(sessionID string, billing models.BillingDetails) (models.Order, error) {
	if err := validate(billing); err != nil {
		return models.Order{}, err
	}

	store := f.sessions.Get(sessionID)
	items := store.Items()
	if len(items) == 0 {
		return models.Order{}, ErrEmptyCart
	}

	order := models.Order{
		OrderID:   uuid.New().String(),
		SessionID: sessionID,
		Billing:   billing,
		Items:     items,
		Totals:    f.Totals(store.GetCartTotal()),
		Status:    "confirming",
		CreatedAt: time.Now(),
	}

	f.mu.Lock()
	f.pending[order.OrderID] = &order
	f.mu.Unlock()

	return order, nil
}

// Confirm completes a pending order. In order: the confirmation email is
// initiated, the cart is cleared, the dialog's pending order is retired.
// Only the initiation of the email is ordered before the clear; completion
// never gates the rest, and a failed send surfaces as a notice only.
// Only the session that submitted the order can confirm it; anyone else
// gets not-found, same as the receipt download.
func (f *Flow) Confirm(sessionID, orderID string) (models.Order, error) {
	f.mu.Lock()
	order, ok := f.pending[orderID]
	if !ok || order.SessionID != sessionID {
		f.mu.Unlock()
		return models.Order{}, ErrOrderNotFound
	}
	delete(f.pending, orderID)
	order.Status = "confirmed"
	f.confirmed[order.SessionID] = *order
	f.mu.Unlock()

	f.sendEmail(*order)
	f.sessions.Get(order.SessionID).ClearCart()

	if f.emit != nil {
		f.emit(orderEvent(*order))
	}
	return *order, nil
}

// Cancel dismisses a pending order without completing it; the cart is
// left untouched. Ownership is checked the same way Confirm checks it.
func (f *Flow) Cancel(sessionID, orderID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if o, ok := f.pending[orderID]; !ok || o.SessionID != sessionID {
		return ErrOrderNotFound
	}
	delete(f.pending, orderID)
	return nil
}

// Order returns a pending or last-confirmed order for the session, e.g.
// for a receipt download.
func (f *Flow) Order(sessionID, orderID string) (models.Order, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if o, ok := f.pending[orderID]; ok && o.SessionID == sessionID {
		return *o, true
	}
	if o, ok := f.confirmed[sessionID]; ok && o.OrderID == orderID {
		return o, true
	}
	return models.Order{}, false
}

// sendEmail starts the single confirmation attempt. The flow never waits
// on it; the outcome only feeds the session's notices and the log.
func (f *Flow) sendEmail(order models.Order) {
	go func() {
		err := f.notifier.SendOrderConfirmation(order.Billing.Name, order.Billing.Email, order.Totals.GrandTotal)
		if err != nil {
			log.Printf("confirmation email failed for order %s: %v", order.OrderID, err)
			f.notices.PushNotice(order.SessionID, models.Notice{
				Kind:    "email_failed",
				Title:   "Order confirmed (email failed)",
				Message: "Your order was placed, but the email could not be sent.",
				At:      time.Now(),
			})
			return
		}
		f.notices.PushNotice(order.SessionID, models.Notice{
			Kind:    "email_sent",
			Title:   "Order confirmed!",
			Message: "A confirmation email has been sent to your inbox.",
			At:      time.Now(),
		})
	}()
}

func validate(b models.BillingDetails) error {
	required := []struct {
		name  string
		value string
	}{
		{"name", b.Name},
		{"email", b.Email},
		{"phone", b.Phone},
		{"address", b.Address},
		{"zip", b.ZIP},
		{"city", b.City},
		{"country", b.Country},
		{"paymentMethod", b.PaymentMethod},
	}
	for _, field := range required {
		if field.value == "" {
			return &MissingFieldError{Field: field.name}
		}
	}
	if b.PaymentMethod != "emoney" && b.PaymentMethod != "cash" {
		return &MissingFieldError{Field: "paymentMethod"}
	}
	if b.PaymentMethod == "emoney" {
		if b.EMoneyNumber == "" {
			return &MissingFieldError{Field: "emoneyNumber"}
		}
		if b.EMoneyPin == "" {
			return &MissingFieldError{Field: "emoneyPin"}
		}
	}
	return nil
}

func orderEvent(order models.Order) models.OrderEvent {
	seen := map[string]bool{}
	categories := []string{}
	itemCount := 0
	for _, it := range order.Items {
		itemCount += it.Quantity
		c := string(it.Product.Category)
		if !seen[c] {
			seen[c] = true
			categories = append(categories, c)
		}
	}
	return models.OrderEvent{
		OrderID:    order.OrderID,
		GrandTotal: order.Totals.GrandTotal,
		ItemCount:  itemCount,
		Categories: categories,
		At:         time.Now(),
	}
}
