package domain

import "github.com/shopspring/decimal"

func init() {
	// Prices travel as plain JSON numbers on the API surface.
	decimal.MarshalJSONWithoutQuotes = true
}

type Product struct {
	ID          int             `json:"id" db:"id"`
	Title       string          `json:"title" db:"title"`
	Description string          `json:"description" db:"description"`
	Price       decimal.Decimal `json:"price" db:"price"`
	Image       string          `json:"image" db:"image"`
	Category    string          `json:"category" db:"category"`
	IsNew       bool            `json:"isNew" db:"is_new"`
	Sizes       []string        `json:"sizes,omitempty"`
	Colors      []string        `json:"colors,omitempty"`
	Stock       int             `json:"stock" db:"stock"`
}

// CartLine is one (product, size, color) combination with a quantity.
// The embedded product snapshot keeps the line renderable and priceable
// without a catalog lookup after a reload.
type CartLine struct {
	Product  Product `json:"product"`
	Quantity int     `json:"quantity"`
	Size     string  `json:"size,omitempty"`
	Color    string  `json:"color,omitempty"`
}

// SameKey reports whether another line addresses the same cart entry.
func (l CartLine) SameKey(productID int, size, color string) bool {
	return l.Product.ID == productID && l.Size == size && l.Color == color
}

// Subtotal is unit price times quantity, exact.
func (l CartLine) Subtotal() decimal.Decimal {
	return l.Product.Price.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

const (
	OrderStatusPending   = "pending"
	OrderStatusPaid      = "paid"
	OrderStatusShipped   = "shipped"
	OrderStatusCancelled = "cancelled"
)

type Order struct {
	ID              int             `json:"id" db:"id"`
	UserID          int             `json:"userId,omitempty" db:"user_id"`
	Total           decimal.Decimal `json:"total" db:"total"`
	Status          string          `json:"status" db:"status"`
	StripeSessionID string          `json:"stripeSessionId,omitempty" db:"stripe_session_id"`
	CreatedAt       string          `json:"createdAt" db:"created_at"`
}

// OrderItem captures the unit price at order time; later catalog price
// changes never rewrite history.
type OrderItem struct {
	ID        int             `json:"id" db:"id"`
	OrderID   int             `json:"orderId" db:"order_id"`
	ProductID int             `json:"productId" db:"product_id"`
	Quantity  int             `json:"quantity" db:"quantity"`
	Price     decimal.Decimal `json:"price" db:"price"`
	Size      string          `json:"size,omitempty" db:"size"`
	Color     string          `json:"color,omitempty" db:"color"`
}
