package checkout_test

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"glimmer/internal/cart"
	"glimmer/internal/checkout"
	"glimmer/internal/domain"
	"glimmer/internal/repos"
)

type fakeSetup struct {
	gotAmount decimal.Decimal
	secret    string
	err       error
	calls     int
}

func (f *fakeSetup) CreateAuthorization(amount decimal.Decimal) (string, error) {
	f.calls++
	f.gotAmount = amount
	return f.secret, f.err
}

func product(id int, price string) domain.Product {
	return domain.Product{ID: id, Title: "Lighter", Price: decimal.RequireFromString(price)}
}

func newCart(t *testing.T) *cart.Store {
	t.Helper()
	c, err := cart.New(cart.NewMemStorage())
	require.NoError(t, err)
	return c
}

func confirmOK(string) error { return nil }

func TestNewRequiresCollaborators(t *testing.T) {
	c := newCart(t)
	setup := &fakeSetup{secret: "cs"}
	rec := checkout.StoreRecorder{Store: repos.NewMemStore()}

	_, err := checkout.New(nil, setup, checkout.ConfirmFunc(confirmOK), rec)
	require.Error(t, err)
	_, err = checkout.New(c, nil, checkout.ConfirmFunc(confirmOK), rec)
	require.Error(t, err)
	_, err = checkout.New(c, setup, nil, rec)
	require.Error(t, err)
	_, err = checkout.New(c, setup, checkout.ConfirmFunc(confirmOK), nil)
	require.Error(t, err)
}

func TestBeginWithEmptyCart(t *testing.T) {
	setup := &fakeSetup{secret: "cs"}
	o, err := checkout.New(newCart(t), setup, checkout.ConfirmFunc(confirmOK), checkout.StoreRecorder{Store: repos.NewMemStore()})
	require.NoError(t, err)

	require.NoError(t, o.Begin())
	require.Equal(t, checkout.StateEmptyCart, o.State())
	require.Zero(t, setup.calls, "no authorization for an empty cart")
}

func TestBeginCapturesTotalAndSecret(t *testing.T) {
	c := newCart(t)
	c.AddItem(product(1, "39.99"), 3, "", "")
	setup := &fakeSetup{secret: "cs_ready"}

	o, err := checkout.New(c, setup, checkout.ConfirmFunc(confirmOK), checkout.StoreRecorder{Store: repos.NewMemStore()})
	require.NoError(t, err)
	require.NoError(t, o.Begin())

	require.Equal(t, checkout.StateReadyForPayment, o.State())
	require.Equal(t, "cs_ready", o.ClientSecret())
	require.True(t, setup.gotAmount.Equal(decimal.RequireFromString("119.97")),
		"authorization amount must equal the cart total at entry, got %s", setup.gotAmount)
}

func TestBeginSetupFailure(t *testing.T) {
	c := newCart(t)
	c.AddItem(product(1, "10.00"), 1, "", "")
	setup := &fakeSetup{err: errors.New("processor down")}

	o, err := checkout.New(c, setup, checkout.ConfirmFunc(confirmOK), checkout.StoreRecorder{Store: repos.NewMemStore()})
	require.NoError(t, err)

	require.Error(t, o.Begin())
	require.Equal(t, checkout.StateFailed, o.State())
	require.Contains(t, o.Failure(), "processor down")
	require.Equal(t, 1, c.TotalItems(), "cart untouched on setup failure")
}

func TestSubmitSuccessClearsCartAndRecordsOrder(t *testing.T) {
	store := repos.NewMemStore()
	c := newCart(t)
	c.AddItem(product(1, "10.00"), 2, "One Size", "rainbow")

	var navigatedTo string
	o, err := checkout.New(c,
		&fakeSetup{secret: "cs_ok"},
		checkout.ConfirmFunc(confirmOK),
		checkout.StoreRecorder{Store: store},
		checkout.WithNavigate(func(path string) { navigatedTo = path }),
	)
	require.NoError(t, err)
	require.NoError(t, o.Begin())
	require.NoError(t, o.Submit())

	require.Equal(t, checkout.StateSucceeded, o.State())
	require.Equal(t, 0, c.TotalItems(), "cart cleared after successful payment")
	require.Equal(t, "/", navigatedTo)

	order, err := store.GetOrder(1)
	require.NoError(t, err)
	require.True(t, order.Total.Equal(decimal.RequireFromString("20.00")), "got %s", order.Total)
	require.Equal(t, domain.OrderStatusPending, order.Status)
	require.Equal(t, "cs_ok", order.StripeSessionID)
	require.NotEmpty(t, order.CreatedAt)

	items, err := store.GetOrderItems(order.ID)
	require.NoError(t, err)
	require.Len(t, items, 1)
	require.Equal(t, 1, items[0].ProductID)
	require.Equal(t, 2, items[0].Quantity)
	require.True(t, items[0].Price.Equal(decimal.RequireFromString("10.00")))
	require.Equal(t, "One Size", items[0].Size)
	require.Equal(t, "rainbow", items[0].Color)
}

func TestSubmitFailureKeepsCartAndAllowsResubmit(t *testing.T) {
	store := repos.NewMemStore()
	c := newCart(t)
	c.AddItem(product(1, "10.00"), 2, "", "")

	declined := true
	confirm := checkout.ConfirmFunc(func(string) error {
		if declined {
			return errors.New("card declined")
		}
		return nil
	})

	o, err := checkout.New(c, &fakeSetup{secret: "cs_retry"}, confirm, checkout.StoreRecorder{Store: store})
	require.NoError(t, err)
	require.NoError(t, o.Begin())

	require.Error(t, o.Submit())
	require.Equal(t, checkout.StateFailed, o.State())
	require.Contains(t, o.Failure(), "card declined")
	require.Equal(t, 2, c.TotalItems(), "cart kept on payment failure")
	_, err = store.GetOrder(1)
	require.ErrorIs(t, err, repos.ErrNotFound, "no order for a failed payment")

	// User-initiated retry from the same attempt.
	declined = false
	require.NoError(t, o.Submit())
	require.Equal(t, checkout.StateSucceeded, o.State())
	require.Equal(t, 0, c.TotalItems())
}

func TestSubmitFromWrongState(t *testing.T) {
	c := newCart(t)
	c.AddItem(product(1, "10.00"), 1, "", "")
	o, err := checkout.New(c, &fakeSetup{secret: "cs"}, checkout.ConfirmFunc(confirmOK), checkout.StoreRecorder{Store: repos.NewMemStore()})
	require.NoError(t, err)

	require.Error(t, o.Submit(), "submit before begin")
}

func TestRecorderFailureDoesNotFailCheckout(t *testing.T) {
	c := newCart(t)
	c.AddItem(product(1, "10.00"), 1, "", "")

	o, err := checkout.New(c, &fakeSetup{secret: "cs"}, checkout.ConfirmFunc(confirmOK),
		recorderFunc(func(checkout.Submission) error { return errors.New("store offline") }))
	require.NoError(t, err)
	require.NoError(t, o.Begin())

	// Best effort: the payment outcome wins, recording failures are logged.
	require.NoError(t, o.Submit())
	require.Equal(t, checkout.StateSucceeded, o.State())
	require.Equal(t, 0, c.TotalItems())
}

type recorderFunc func(checkout.Submission) error

func (f recorderFunc) RecordOrder(sub checkout.Submission) error { return f(sub) }

// Full pass through the storefront flow: browse, add, authorize, confirm,
// record, read back.
func TestCheckoutEndToEnd(t *testing.T) {
	store := repos.NewMemStore()
	p, err := store.CreateProduct(domain.Product{Title: "Lighter", Price: decimal.RequireFromString("10.00")})
	require.NoError(t, err)

	c := newCart(t)
	c.AddItem(p, 2, "", "")

	setup := &fakeSetup{secret: "cs_e2e"}
	o, err := checkout.New(c, setup, checkout.ConfirmFunc(confirmOK), checkout.StoreRecorder{Store: store})
	require.NoError(t, err)

	require.NoError(t, o.Begin())
	require.True(t, setup.gotAmount.Equal(decimal.RequireFromString("20.00")))
	require.NoError(t, o.Submit())

	require.Equal(t, 0, c.TotalItems())
	order, err := store.GetOrder(1)
	require.NoError(t, err)
	require.True(t, order.Total.Equal(decimal.RequireFromString("20.00")))

	items, err := store.GetOrderItems(order.ID)
	require.NoError(t, err)
	require.Len(t, items, 1)
	require.Equal(t, p.ID, items[0].ProductID)
	require.Equal(t, 2, items[0].Quantity)
	require.True(t, items[0].Price.Equal(decimal.RequireFromString("10.00")))
}
