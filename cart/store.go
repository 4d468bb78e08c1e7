package cart

import (
	"sync"
	"time"

	"auris/models"
)

// Snapshot is the read view handed to listeners after every mutation.
type Snapshot struct {
	Items []models.CartItem `json:"items"`
	Total int               `json:"total"`
	Count int               `json:"count"`
}

// Listener receives the cart snapshot after each mutation.
type Listener func(Snapshot)

// Store is the single source of truth for one session's cart. Line items
// keep insertion order and there is at most one item per product id.
// All mutations notify subscribed listeners before returning.
type Store struct {
	mu        sync.Mutex
	items     []models.CartItem
	listeners map[int]Listener
	nextID    int
}

func NewStore() *Store {
	return &Store{listeners: make(map[int]Listener)}
}

// Subscribe registers a listener and returns its unsubscribe function.
func (s *Store) Subscribe(fn Listener) func() {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.listeners[id] = fn
	s.mu.Unlock()
	return func() {
		s.mu.Lock()
		delete(s.listeners, id)
		s.mu.Unlock()
	}
}

// AddToCart increments the quantity if an item for the product exists, or
// appends a new line item. Quantities below 1 are the caller's mistake and
// are ignored.
func (s *Store) AddToCart(product models.Product, quantity int) {
	if quantity < 1 {
		return
	}
	s.mu.Lock()
	found := false
	for i := range s.items {
		if s.items[i].Product.ID == product.ID {
			s.items[i].Quantity += quantity
			found = true
			break
		}
	}
	if !found {
		s.items = append(s.items, models.CartItem{
			Product:  product,
			Quantity: quantity,
			AddedAt:  time.Now(),
		})
	}
	s.notifyLocked()
}

// UpdateQuantity sets the matching item's quantity. Zero or negative
// removes the item entirely; an unknown product id is a no-op.
func (s *Store) UpdateQuantity(productID string, quantity int) {
	s.mu.Lock()
	for i := range s.items {
		if s.items[i].Product.ID != productID {
			continue
		}
		if quantity <= 0 {
			s.items = append(s.items[:i], s.items[i+1:]...)
		} else {
			s.items[i].Quantity = quantity
		}
		s.notifyLocked()
		return
	}
	s.mu.Unlock()
}

// RemoveFromCart removes the matching item if present, no-op otherwise.
func (s *Store) RemoveFromCart(productID string) {
	s.UpdateQuantity(productID, 0)
}

// ClearCart empties the cart unconditionally.
func (s *Store) ClearCart() {
	s.mu.Lock()
	s.items = nil
	s.notifyLocked()
}

// Items returns a copy of the current line items in insertion order.
func (s *Store) Items() []models.CartItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.copyItemsLocked()
}

// GetCartTotal returns the subtotal: sum of price x quantity.
func (s *Store) GetCartTotal() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return subtotal(s.items)
}

// GetCartCount returns the sum of quantities across all line items.
func (s *Store) GetCartCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return count(s.items)
}

// Snapshot returns items and derived totals as one consistent view.
func (s *Store) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

// Restore replaces the cart contents wholesale, e.g. from a saved session
// snapshot. Listeners are not notified.
func (s *Store) Restore(items []models.CartItem) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = make([]models.CartItem, len(items))
	copy(s.items, items)
}

// notifyLocked releases the lock and invokes every listener with a
// consistent snapshot. Must be called with the lock held.
func (s *Store) notifyLocked() {
	snap := s.snapshotLocked()
	fns := make([]Listener, 0, len(s.listeners))
	for _, fn := range s.listeners {
		fns = append(fns, fn)
	}
	s.mu.Unlock()
	for _, fn := range fns {
		fn(snap)
	}
}

func (s *Store) snapshotLocked() Snapshot {
	return Snapshot{
		Items: s.copyItemsLocked(),
		Total: subtotal(s.items),
		Count: count(s.items),
	}
}

func (s *Store) copyItemsLocked() []models.CartItem {
	out := make([]models.CartItem, len(s.items))
	copy(out, s.items)
	return out
}

func subtotal(items []models.CartItem) int {
	total := 0
	for _, it := range items {
		total += it.Product.Price * it.Quantity
	}
	return total
}

func count(items []models.CartItem) int {
	n := 0
	for _, it := range items {
		n += it.Quantity
	}
	return n
}
