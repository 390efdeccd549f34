// Package checkout sequences payment authorization and order recording
// for the in-progress cart. It is a short-lived state machine: one
// orchestrator per checkout attempt.
package checkout

import (
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"glimmer/internal/cart"
	"glimmer/internal/domain"
	"glimmer/internal/repos"
)

type State string

const (
	StateLoading              State = "loading"
	StateEmptyCart            State = "empty_cart"
	StateAwaitingPaymentSetup State = "awaiting_payment_setup"
	StateReadyForPayment      State = "ready_for_payment"
	StateProcessing           State = "processing"
	StateSucceeded            State = "succeeded"
	StateFailed               State = "failed"
)

// PaymentSetup obtains an authorization handle sized to the cart total.
// *payments.Gateway satisfies it.
type PaymentSetup interface {
	CreateAuthorization(amount decimal.Decimal) (clientSecret string, err error)
}

// PaymentConfirmer completes a payment against its client secret. In the
// browser this is the processor's hosted payment UI; here it is whatever
// the caller wires in. Confirm blocks until the processor answers.
type PaymentConfirmer interface {
	Confirm(clientSecret string) error
}

// ConfirmFunc adapts a function to PaymentConfirmer.
type ConfirmFunc func(clientSecret string) error

func (f ConfirmFunc) Confirm(clientSecret string) error { return f(clientSecret) }

// Submission is the order payload handed to the recorder after a
// confirmed payment. Item prices are the at-add snapshots from the cart.
type Submission struct {
	UserID          int
	Total           decimal.Decimal
	StripeSessionID string
	Items           []domain.OrderItem
}

// OrderRecorder persists a completed checkout. Recording is best effort
// and not transactionally tied to the payment.
type OrderRecorder interface {
	RecordOrder(sub Submission) error
}

// StoreRecorder records straight into the repository, the in-process
// counterpart of POSTing /api/orders.
type StoreRecorder struct {
	Store repos.Store
}

func (r StoreRecorder) RecordOrder(sub Submission) error {
	// The order row must exist before its items.
	o, err := r.Store.CreateOrder(domain.Order{
		UserID:          sub.UserID,
		Total:           sub.Total,
		Status:          domain.OrderStatusPending,
		StripeSessionID: sub.StripeSessionID,
		CreatedAt:       time.Now().UTC().Format(time.RFC3339),
	})
	if err != nil {
		return err
	}
	for _, it := range sub.Items {
		it.OrderID = o.ID
		if _, err := r.Store.AddOrderItem(it); err != nil {
			return err
		}
	}
	return nil
}

type Orchestrator struct {
	mu        sync.Mutex
	cart      *cart.Store
	setup     PaymentSetup
	confirmer PaymentConfirmer
	orders    OrderRecorder
	navigate  func(path string)
	userID    int

	state        State
	failure      string
	clientSecret string
	amount       decimal.Decimal
}

type Option func(*Orchestrator)

// WithNavigate sets the redirect callback fired after a successful payment.
func WithNavigate(fn func(path string)) Option {
	return func(o *Orchestrator) { o.navigate = fn }
}

// WithUserID attributes the recorded order to a known user.
func WithUserID(id int) Option {
	return func(o *Orchestrator) { o.userID = id }
}

// New wires an orchestrator. Missing collaborators are wiring bugs and
// fail immediately.
func New(c *cart.Store, setup PaymentSetup, confirmer PaymentConfirmer, orders OrderRecorder, opts ...Option) (*Orchestrator, error) {
	if c == nil {
		return nil, errors.New("checkout: cart is required")
	}
	if setup == nil {
		return nil, errors.New("checkout: payment setup is required")
	}
	if confirmer == nil {
		return nil, errors.New("checkout: payment confirmer is required")
	}
	if orders == nil {
		return nil, errors.New("checkout: order recorder is required")
	}
	o := &Orchestrator{cart: c, setup: setup, confirmer: confirmer, orders: orders, state: StateLoading}
	for _, opt := range opts {
		opt(o)
	}
	return o, nil
}

// Begin enters checkout: an empty cart terminates in EmptyCart, otherwise
// the cart total is captured and an authorization handle requested. The
// cart is treated as immutable for the rest of the attempt; the handle's
// amount is the total at this moment.
func (o *Orchestrator) Begin() error {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.state != StateLoading {
		return fmt.Errorf("checkout: begin from state %q", o.state)
	}
	if o.cart.TotalItems() == 0 {
		o.state = StateEmptyCart
		return nil
	}
	o.amount = o.cart.TotalPrice()
	o.state = StateAwaitingPaymentSetup

	secret, err := o.setup.CreateAuthorization(o.amount)
	if err != nil {
		o.state = StateFailed
		o.failure = err.Error()
		log.Printf("[checkout] payment setup failed: %v", err)
		return err
	}
	o.clientSecret = secret
	o.state = StateReadyForPayment
	return nil
}

// Submit confirms the payment. On processor failure the cart is kept and
// the attempt stays resubmittable; on success the cart is cleared, the
// user navigated away, and the order recorded best-effort.
func (o *Orchestrator) Submit() error {
	o.mu.Lock()
	resubmit := o.state == StateFailed && o.clientSecret != ""
	if o.state != StateReadyForPayment && !resubmit {
		state := o.state
		o.mu.Unlock()
		return fmt.Errorf("checkout: submit from state %q", state)
	}
	o.state = StateProcessing
	secret := o.clientSecret
	o.mu.Unlock()

	// Suspends until the processor replies.
	err := o.confirmer.Confirm(secret)

	o.mu.Lock()
	defer o.mu.Unlock()
	if err != nil {
		o.state = StateFailed
		o.failure = err.Error()
		return err
	}

	sub := Submission{
		UserID:          o.userID,
		Total:           o.amount,
		StripeSessionID: secret,
		Items:           itemsFromLines(o.cart.Lines()),
	}

	o.cart.Clear()
	if o.navigate != nil {
		o.navigate("/")
	}
	o.state = StateSucceeded
	o.failure = ""

	// Not sequenced with the payment: a recording failure leaves a paid
	// cart with no order row, surfaced in logs only.
	if rerr := o.orders.RecordOrder(sub); rerr != nil {
		log.Printf("[checkout] order recording failed: %v", rerr)
	}
	return nil
}

func itemsFromLines(lines []domain.CartLine) []domain.OrderItem {
	items := make([]domain.OrderItem, 0, len(lines))
	for _, l := range lines {
		items = append(items, domain.OrderItem{
			ProductID: l.Product.ID,
			Quantity:  l.Quantity,
			Price:     l.Product.Price,
			Size:      l.Size,
			Color:     l.Color,
		})
	}
	return items
}

func (o *Orchestrator) State() State {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.state
}

// Failure is the user-facing message for the Failed state.
func (o *Orchestrator) Failure() string {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.failure
}

func (o *Orchestrator) ClientSecret() string {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.clientSecret
}

// Amount is the authorized total captured when checkout was entered.
func (o *Orchestrator) Amount() decimal.Decimal {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.amount
}
