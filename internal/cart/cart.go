// Package cart is the single source of truth for the in-progress shopping
// cart. Every mutation is written through to durable storage before it
// returns, so a reload reproduces the cart exactly.
package cart

import (
	"encoding/json"
	"errors"
	"log"
	"sync"

	"github.com/shopspring/decimal"

	"glimmer/internal/domain"
)

// StorageKey is the single namespaced slot the cart persists under.
const StorageKey = "glimmer-cart"

type Store struct {
	mu      sync.Mutex
	lines   []domain.CartLine
	storage Storage
	key     string

	// openSignal, when set, is invoked after an add so the UI can open
	// the cart panel. Presentation hint only.
	openSignal func()
}

type Option func(*Store)

// WithOpenSignal registers the callback fired after AddItem.
func WithOpenSignal(fn func()) Option {
	return func(s *Store) { s.openSignal = fn }
}

// WithKey overrides the storage key (tests, multi-profile setups).
func WithKey(key string) Option {
	return func(s *Store) { s.key = key }
}

// New builds a cart backed by storage and loads any persisted lines.
// A nil storage is a wiring bug and fails immediately rather than
// degrading into a no-op cart.
func New(storage Storage, opts ...Option) (*Store, error) {
	if storage == nil {
		return nil, errors.New("cart: storage is required")
	}
	s := &Store{storage: storage, key: StorageKey}
	for _, o := range opts {
		o(s)
	}

	data, ok, err := s.storage.Load(s.key)
	if err != nil {
		return nil, err
	}
	if ok {
		var lines []domain.CartLine
		if err := json.Unmarshal(data, &lines); err != nil {
			// Corrupt persisted state: start empty rather than fail.
			log.Printf("[cart] discarding unparseable persisted cart: %v", err)
		} else {
			s.lines = lines
		}
	}
	return s, nil
}

func (s *Store) persistLocked() {
	b, err := json.Marshal(s.lines)
	if err != nil {
		log.Printf("[cart] marshal: %v", err)
		return
	}
	if err := s.storage.Save(s.key, b); err != nil {
		log.Printf("[cart] save: %v", err)
	}
}

// AddItem merges into an existing (product, size, color) line or appends a
// new one. Quantities below 1 are clamped to 1.
func (s *Store) AddItem(p domain.Product, qty int, size, color string) {
	if qty < 1 {
		qty = 1
	}
	s.mu.Lock()
	for i := range s.lines {
		if s.lines[i].SameKey(p.ID, size, color) {
			s.lines[i].Quantity += qty
			s.persistLocked()
			s.mu.Unlock()
			s.signalOpen()
			return
		}
	}
	s.lines = append(s.lines, domain.CartLine{Product: p, Quantity: qty, Size: size, Color: color})
	s.persistLocked()
	s.mu.Unlock()
	s.signalOpen()
}

func (s *Store) signalOpen() {
	if s.openSignal != nil {
		s.openSignal()
	}
}

// RemoveItem deletes every line matching the key. Absent lines are a no-op.
func (s *Store) RemoveItem(productID int, size, color string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	kept := s.lines[:0]
	for _, l := range s.lines {
		if !l.SameKey(productID, size, color) {
			kept = append(kept, l)
		}
	}
	s.lines = kept
	s.persistLocked()
}

// UpdateQuantity sets a line's quantity, clamped to a minimum of 1.
// Dropping to zero is not removal; RemoveItem is the explicit path.
func (s *Store) UpdateQuantity(productID, qty int, size, color string) {
	if qty < 1 {
		qty = 1
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.lines {
		if s.lines[i].SameKey(productID, size, color) {
			s.lines[i].Quantity = qty
		}
	}
	s.persistLocked()
}

// Clear empties the cart, called after a successful checkout.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lines = nil
	s.persistLocked()
}

// Lines returns a copy of the cart contents in insertion order.
func (s *Store) Lines() []domain.CartLine {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.CartLine, len(s.lines))
	copy(out, s.lines)
	return out
}

// TotalItems is the sum of all line quantities.
func (s *Store) TotalItems() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, l := range s.lines {
		n += l.Quantity
	}
	return n
}

// TotalPrice is the exact sum of line subtotals.
func (s *Store) TotalPrice() decimal.Decimal {
	s.mu.Lock()
	defer s.mu.Unlock()
	total := decimal.Zero
	for _, l := range s.lines {
		total = total.Add(l.Subtotal())
	}
	return total
}
