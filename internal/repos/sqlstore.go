package repos

import (
	"database/sql"
	"encoding/json"
	"errors"

	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
	_ "modernc.org/sqlite"

	"glimmer/internal/domain"
)

// SQLStore is the sqlite-backed Store. It carries the same contract as
// MemStore; row ids come from AUTOINCREMENT so they stay monotonic even
// after deletes.
type SQLStore struct {
	db *sqlx.DB
}

func OpenSQL(dsn string) (*SQLStore, error) {
	db, err := sqlx.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	if dsn == ":memory:" {
		// Each pooled connection would otherwise get its own empty database.
		db.SetMaxOpenConns(1)
	}
	if err = db.Ping(); err != nil {
		return nil, err
	}
	if err := ensureSchema(db); err != nil {
		return nil, err
	}
	return &SQLStore{db: db}, nil
}

func ensureSchema(db *sqlx.DB) error {
	schema := `
CREATE TABLE IF NOT EXISTS products(
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  title TEXT NOT NULL,
  description TEXT NOT NULL DEFAULT '',
  price NUMERIC NOT NULL CHECK (price >= 0),
  image TEXT NOT NULL DEFAULT '',
  category TEXT NOT NULL DEFAULT '',
  is_new INTEGER NOT NULL DEFAULT 0,
  sizes_json TEXT NOT NULL DEFAULT '[]',
  colors_json TEXT NOT NULL DEFAULT '[]',
  stock INTEGER NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS orders(
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  user_id INTEGER NOT NULL DEFAULT 0,
  total NUMERIC NOT NULL,
  status TEXT NOT NULL DEFAULT 'pending',
  stripe_session_id TEXT NOT NULL DEFAULT '',
  created_at TEXT NOT NULL DEFAULT ''
);
CREATE INDEX IF NOT EXISTS idx_orders_created_at ON orders(created_at);

CREATE TABLE IF NOT EXISTS order_items(
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  order_id INTEGER NOT NULL,
  product_id INTEGER NOT NULL,
  quantity INTEGER NOT NULL,
  price NUMERIC NOT NULL,
  size TEXT NOT NULL DEFAULT '',
  color TEXT NOT NULL DEFAULT ''
);
CREATE INDEX IF NOT EXISTS idx_order_items_order ON order_items(order_id);
`
	_, err := db.Exec(schema)
	return err
}

type productRow struct {
	ID          int             `db:"id"`
	Title       string          `db:"title"`
	Description string          `db:"description"`
	Price       decimal.Decimal `db:"price"`
	Image       string          `db:"image"`
	Category    string          `db:"category"`
	IsNew       bool            `db:"is_new"`
	SizesJSON   string          `db:"sizes_json"`
	ColorsJSON  string          `db:"colors_json"`
	Stock       int             `db:"stock"`
}

func (r productRow) toDomain() domain.Product {
	p := domain.Product{
		ID:          r.ID,
		Title:       r.Title,
		Description: r.Description,
		Price:       r.Price,
		Image:       r.Image,
		Category:    r.Category,
		IsNew:       r.IsNew,
		Stock:       r.Stock,
	}
	_ = json.Unmarshal([]byte(r.SizesJSON), &p.Sizes)
	_ = json.Unmarshal([]byte(r.ColorsJSON), &p.Colors)
	return p
}

func marshalList(ss []string) string {
	if len(ss) == 0 {
		return "[]"
	}
	b, _ := json.Marshal(ss)
	return string(b)
}

func (s *SQLStore) ListProducts() ([]domain.Product, error) {
	var rows []productRow
	if err := s.db.Select(&rows, `
	  SELECT id, title, description, price, image, category, is_new, sizes_json, colors_json, stock
	  FROM products
	`); err != nil {
		return nil, err
	}
	out := make([]domain.Product, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.toDomain())
	}
	return out, nil
}

func (s *SQLStore) GetProduct(id int) (domain.Product, error) {
	var r productRow
	err := s.db.Get(&r, `
	  SELECT id, title, description, price, image, category, is_new, sizes_json, colors_json, stock
	  FROM products WHERE id = ?
	`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Product{}, ErrNotFound
	}
	if err != nil {
		return domain.Product{}, err
	}
	return r.toDomain(), nil
}

func (s *SQLStore) CreateProduct(p domain.Product) (domain.Product, error) {
	res, err := s.db.Exec(`
	  INSERT INTO products(title, description, price, image, category, is_new, sizes_json, colors_json, stock)
	  VALUES(?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, p.Title, p.Description, p.Price, p.Image, p.Category, p.IsNew,
		marshalList(p.Sizes), marshalList(p.Colors), p.Stock)
	if err != nil {
		return domain.Product{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return domain.Product{}, err
	}
	p.ID = int(id)
	return p, nil
}

func (s *SQLStore) CreateOrder(o domain.Order) (domain.Order, error) {
	res, err := s.db.Exec(`
	  INSERT INTO orders(user_id, total, status, stripe_session_id, created_at)
	  VALUES(?, ?, ?, ?, ?)
	`, o.UserID, o.Total, o.Status, o.StripeSessionID, o.CreatedAt)
	if err != nil {
		return domain.Order{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return domain.Order{}, err
	}
	o.ID = int(id)
	return o, nil
}

func (s *SQLStore) GetOrder(id int) (domain.Order, error) {
	var o domain.Order
	err := s.db.Get(&o, `
	  SELECT id, user_id, total, status, stripe_session_id, created_at
	  FROM orders WHERE id = ?
	`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Order{}, ErrNotFound
	}
	return o, err
}

func (s *SQLStore) GetOrderItems(orderID int) ([]domain.OrderItem, error) {
	var out []domain.OrderItem
	err := s.db.Select(&out, `
	  SELECT id, order_id, product_id, quantity, price, size, color
	  FROM order_items WHERE order_id = ?
	`, orderID)
	return out, err
}

func (s *SQLStore) AddOrderItem(it domain.OrderItem) (domain.OrderItem, error) {
	res, err := s.db.Exec(`
	  INSERT INTO order_items(order_id, product_id, quantity, price, size, color)
	  VALUES(?, ?, ?, ?, ?, ?)
	`, it.OrderID, it.ProductID, it.Quantity, it.Price, it.Size, it.Color)
	if err != nil {
		return domain.OrderItem{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return domain.OrderItem{}, err
	}
	it.ID = int(id)
	return it, nil
}

func (s *SQLStore) UpdateOrderStatus(id int, status string) (domain.Order, error) {
	res, err := s.db.Exec(`UPDATE orders SET status = ? WHERE id = ?`, status, id)
	if err != nil {
		return domain.Order{}, err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return domain.Order{}, ErrNotFound
	}
	return s.GetOrder(id)
}
