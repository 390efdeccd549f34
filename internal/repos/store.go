package repos

import (
	"errors"

	"glimmer/internal/domain"
)

// ErrNotFound is returned for lookups of products or orders that do not
// exist in the store.
var ErrNotFound = errors.New("not found")

// Store is the server-side repository for products, orders, and order line
// items. Identifiers are assigned by the store, monotonically from 1, and
// are only stable for the lifetime of the backing storage.
//
// AddOrderItem does not verify that the referenced order exists; creating
// the order first is the caller's contract.
type Store interface {
	ListProducts() ([]domain.Product, error)
	GetProduct(id int) (domain.Product, error)
	CreateProduct(p domain.Product) (domain.Product, error)

	CreateOrder(o domain.Order) (domain.Order, error)
	GetOrder(id int) (domain.Order, error)
	GetOrderItems(orderID int) ([]domain.OrderItem, error)
	AddOrderItem(it domain.OrderItem) (domain.OrderItem, error)
	UpdateOrderStatus(id int, status string) (domain.Order, error)
}

// Open picks a backend from the DSN: empty means the in-process memory
// store, anything else is handed to sqlite (":memory:" included).
func Open(dsn string) (Store, error) {
	if dsn == "" {
		return NewMemStore(), nil
	}
	return OpenSQL(dsn)
}
