package repos

import (
	"sync"

	"glimmer/internal/domain"
)

// MemStore keeps everything in process memory. Counters and maps are
// guarded by one mutex; request handlers run concurrently.
type MemStore struct {
	mu         sync.Mutex
	products   map[int]domain.Product
	orders     map[int]domain.Order
	orderItems map[int]domain.OrderItem

	productID   int
	orderID     int
	orderItemID int
}

func NewMemStore() *MemStore {
	return &MemStore{
		products:   make(map[int]domain.Product),
		orders:     make(map[int]domain.Order),
		orderItems: make(map[int]domain.OrderItem),
	}
}

func (s *MemStore) ListProducts() ([]domain.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.Product, 0, len(s.products))
	for _, p := range s.products {
		out = append(out, p)
	}
	return out, nil
}

func (s *MemStore) GetProduct(id int) (domain.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.products[id]
	if !ok {
		return domain.Product{}, ErrNotFound
	}
	return p, nil
}

func (s *MemStore) CreateProduct(p domain.Product) (domain.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.productID++
	p.ID = s.productID
	s.products[p.ID] = p
	return p, nil
}

func (s *MemStore) CreateOrder(o domain.Order) (domain.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.orderID++
	o.ID = s.orderID
	s.orders[o.ID] = o
	return o, nil
}

func (s *MemStore) GetOrder(id int) (domain.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	o, ok := s.orders[id]
	if !ok {
		return domain.Order{}, ErrNotFound
	}
	return o, nil
}

func (s *MemStore) GetOrderItems(orderID int) ([]domain.OrderItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []domain.OrderItem
	for _, it := range s.orderItems {
		if it.OrderID == orderID {
			out = append(out, it)
		}
	}
	return out, nil
}

func (s *MemStore) AddOrderItem(it domain.OrderItem) (domain.OrderItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.orderItemID++
	it.ID = s.orderItemID
	s.orderItems[it.ID] = it
	return it, nil
}

func (s *MemStore) UpdateOrderStatus(id int, status string) (domain.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	o, ok := s.orders[id]
	if !ok {
		return domain.Order{}, ErrNotFound
	}
	o.Status = status
	s.orders[id] = o
	return o, nil
}
