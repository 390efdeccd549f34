package cart_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"glimmer/internal/cart"
	"glimmer/internal/domain"
)

func product(id int, price string) domain.Product {
	return domain.Product{
		ID:       id,
		Title:    "Test Lighter",
		Price:    decimal.RequireFromString(price),
		Category: "Accessories",
	}
}

func newCart(t *testing.T) *cart.Store {
	t.Helper()
	s, err := cart.New(cart.NewMemStorage())
	require.NoError(t, err)
	return s
}

func TestNewRequiresStorage(t *testing.T) {
	_, err := cart.New(nil)
	require.Error(t, err)
}

func TestAddItemMergesByKey(t *testing.T) {
	s := newCart(t)
	p := product(1, "39.99")

	s.AddItem(p, 1, "One Size", "rainbow")
	s.AddItem(p, 2, "One Size", "rainbow")
	s.AddItem(p, 3, "One Size", "rainbow")

	lines := s.Lines()
	require.Len(t, lines, 1)
	require.Equal(t, 6, lines[0].Quantity)
}

func TestAddItemVariantsAreDistinctLines(t *testing.T) {
	s := newCart(t)
	p := product(1, "39.99")

	s.AddItem(p, 1, "One Size", "rainbow")
	s.AddItem(p, 1, "One Size", "green")
	s.AddItem(p, 1, "", "rainbow")

	require.Len(t, s.Lines(), 3)
	require.Equal(t, 3, s.TotalItems())
}

func TestAddItemClampsQuantity(t *testing.T) {
	s := newCart(t)
	s.AddItem(product(1, "10.00"), 0, "", "")
	s.AddItem(product(2, "10.00"), -4, "", "")

	for _, l := range s.Lines() {
		require.Equal(t, 1, l.Quantity)
	}
}

func TestUpdateQuantityClampsToOne(t *testing.T) {
	s := newCart(t)
	s.AddItem(product(1, "10.00"), 3, "", "")

	s.UpdateQuantity(1, 0, "", "")
	require.Len(t, s.Lines(), 1, "clamp must never remove the line")
	require.Equal(t, 1, s.Lines()[0].Quantity)

	s.UpdateQuantity(1, -5, "", "")
	require.Equal(t, 1, s.Lines()[0].Quantity)

	s.UpdateQuantity(1, 7, "", "")
	require.Equal(t, 7, s.Lines()[0].Quantity)
}

func TestRemoveItemIsNoOpWhenAbsent(t *testing.T) {
	s := newCart(t)
	s.AddItem(product(1, "10.00"), 2, "", "")

	s.RemoveItem(99, "", "")
	require.Equal(t, 2, s.TotalItems())

	s.RemoveItem(1, "", "")
	require.Equal(t, 0, s.TotalItems())
}

func TestTotalPriceExact(t *testing.T) {
	s := newCart(t)
	s.AddItem(product(1, "39.99"), 3, "", "")

	require.True(t, s.TotalPrice().Equal(decimal.RequireFromString("119.97")),
		"got %s", s.TotalPrice())

	s.AddItem(product(2, "44.99"), 2, "", "")
	require.True(t, s.TotalPrice().Equal(decimal.RequireFromString("209.95")),
		"got %s", s.TotalPrice())
	require.Equal(t, 5, s.TotalItems())
}

func TestPersistReloadRoundTrip(t *testing.T) {
	storage := cart.FileStorage{Dir: t.TempDir()}

	s, err := cart.New(storage)
	require.NoError(t, err)
	s.AddItem(product(1, "39.99"), 2, "One Size", "rainbow")
	s.AddItem(product(2, "44.99"), 1, "", "green")

	// Simulated reload: a fresh store over the same storage.
	reloaded, err := cart.New(storage)
	require.NoError(t, err)
	require.Equal(t, s.Lines(), reloaded.Lines())
	require.Equal(t, 3, reloaded.TotalItems())
	require.True(t, reloaded.TotalPrice().Equal(s.TotalPrice()))
}

func TestMalformedPersistedCartDiscarded(t *testing.T) {
	storage := cart.NewMemStorage()
	require.NoError(t, storage.Save(cart.StorageKey, []byte("{definitely not json")))

	s, err := cart.New(storage)
	require.NoError(t, err)
	require.Equal(t, 0, s.TotalItems())

	// The store stays usable and persists over the bad payload.
	s.AddItem(product(1, "10.00"), 1, "", "")
	reloaded, err := cart.New(storage)
	require.NoError(t, err)
	require.Equal(t, 1, reloaded.TotalItems())
}

func TestOpenSignalFiresOnAdd(t *testing.T) {
	opened := 0
	s, err := cart.New(cart.NewMemStorage(), cart.WithOpenSignal(func() { opened++ }))
	require.NoError(t, err)

	s.AddItem(product(1, "10.00"), 1, "", "")
	s.AddItem(product(1, "10.00"), 1, "", "")
	require.Equal(t, 2, opened)

	s.RemoveItem(1, "", "")
	require.Equal(t, 2, opened, "remove must not open the panel")
}

func TestClearEmptiesAndPersists(t *testing.T) {
	storage := cart.NewMemStorage()
	s, err := cart.New(storage)
	require.NoError(t, err)
	s.AddItem(product(1, "10.00"), 4, "", "")

	s.Clear()
	require.Equal(t, 0, s.TotalItems())

	reloaded, err := cart.New(storage)
	require.NoError(t, err)
	require.Equal(t, 0, reloaded.TotalItems())
}
