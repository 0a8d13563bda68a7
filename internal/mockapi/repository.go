package mockapi

import (
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"shop_client/internal/domain"
)

// adminUser is a back-office account as the mock server stores it.
type adminUser struct {
	Username     string
	PasswordHash string
	Profile      domain.UserProfile
}

// Repository keeps every resource in memory behind one lock.
type Repository struct {
	mu         sync.RWMutex
	users      map[string]adminUser // by username
	products   map[string]domain.Product
	categories map[string]domain.Category
	orders     map[string]domain.Order
	uploads    map[string][]byte
	orderSeq   int
}

func NewRepository() *Repository {
	return &Repository{
		users:      make(map[string]adminUser),
		products:   make(map[string]domain.Product),
		categories: make(map[string]domain.Category),
		orders:     make(map[string]domain.Order),
		uploads:    make(map[string][]byte),
	}
}

func (r *Repository) AddUser(u adminUser) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.users[strings.ToLower(u.Username)] = u
}

func (r *Repository) UserByUsername(username string) (adminUser, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	u, ok := r.users[strings.ToLower(strings.TrimSpace(username))]
	if !ok {
		return adminUser{}, fmt.Errorf("user '%s' %w", username, ErrNotFound)
	}
	return u, nil
}

func (r *Repository) UserByID(id string) (adminUser, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, u := range r.users {
		if u.Profile.ID == id {
			return u, nil
		}
	}
	return adminUser{}, fmt.Errorf("user %s %w", id, ErrNotFound)
}

// --- Products ---

type productFilter struct {
	Search     string
	Status     string
	CategoryID string
}

func (r *Repository) ListProducts(f productFilter, page, limit int) ([]domain.Product, domain.Pagination) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	search := strings.ToLower(f.Search)
	matched := make([]domain.Product, 0, len(r.products))
	for _, p := range r.products {
		if search != "" && !strings.Contains(strings.ToLower(p.Name), search) && !strings.Contains(strings.ToLower(p.SKU), search) {
			continue
		}
		if f.Status != "" && p.Status != f.Status {
			continue
		}
		if f.CategoryID != "" && p.CategoryID != f.CategoryID {
			continue
		}
		matched = append(matched, p)
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].CreatedAt.Before(matched[j].CreatedAt) })
	return paginate(matched, page, limit)
}

func (r *Repository) GetProduct(id string) (domain.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.products[id]
	if !ok {
		return domain.Product{}, fmt.Errorf("product %s %w", id, ErrNotFound)
	}
	return p, nil
}

func (r *Repository) SaveProduct(p domain.Product) (domain.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, existing := range r.products {
		if id != p.ID && p.Slug != "" && existing.Slug == p.Slug {
			return domain.Product{}, fmt.Errorf("product with slug '%s' %w", p.Slug, ErrConflict)
		}
	}
	now := time.Now().UTC()
	if p.ID == "" {
		p.ID = uuid.NewString()
		p.CreatedAt = now
	}
	p.UpdatedAt = now
	r.products[p.ID] = p
	return p, nil
}

func (r *Repository) DeleteProduct(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.products[id]; !ok {
		return fmt.Errorf("product %s %w", id, ErrNotFound)
	}
	delete(r.products, id)
	return nil
}

// --- Categories ---

func (r *Repository) ListCategories(page, limit int) ([]domain.Category, domain.Pagination) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	all := make([]domain.Category, 0, len(r.categories))
	for _, c := range r.categories {
		all = append(all, c)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].Position < all[j].Position })
	return paginate(all, page, limit)
}

func (r *Repository) GetCategory(id string) (domain.Category, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.categories[id]
	if !ok {
		return domain.Category{}, fmt.Errorf("category %s %w", id, ErrNotFound)
	}
	return c, nil
}

func (r *Repository) SaveCategory(c domain.Category) (domain.Category, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, existing := range r.categories {
		if id != c.ID && existing.Slug == c.Slug {
			return domain.Category{}, fmt.Errorf("category with slug '%s' %w", c.Slug, ErrConflict)
		}
	}
	if c.ID == "" {
		c.ID = uuid.NewString()
		c.Position = len(r.categories)
	}
	r.categories[c.ID] = c
	return c, nil
}

func (r *Repository) DeleteCategory(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.categories[id]; !ok {
		return fmt.Errorf("category %s %w", id, ErrNotFound)
	}
	for _, p := range r.products {
		if p.CategoryID == id {
			return fmt.Errorf("%w: category %s still has products", ErrConflict, id)
		}
	}
	delete(r.categories, id)
	return nil
}

// ReorderCategories assigns positions in the given order. Every existing
// category must be listed exactly once.
func (r *Repository) ReorderCategories(ids []string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(ids) != len(r.categories) {
		return fmt.Errorf("%w: expected %d ids, got %d", ErrInvalid, len(r.categories), len(ids))
	}
	seen := make(map[string]bool, len(ids))
	for _, id := range ids {
		if _, ok := r.categories[id]; !ok || seen[id] {
			return fmt.Errorf("%w: unknown or repeated category id %s", ErrInvalid, id)
		}
		seen[id] = true
	}
	for pos, id := range ids {
		c := r.categories[id]
		c.Position = pos
		r.categories[id] = c
	}
	return nil
}

// --- Orders ---

func (r *Repository) ListOrders(status string, page, limit int) ([]domain.Order, domain.Pagination) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	matched := make([]domain.Order, 0, len(r.orders))
	for _, o := range r.orders {
		if status == "" || string(o.Status) == status {
			matched = append(matched, o)
		}
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].CreatedAt.After(matched[j].CreatedAt) })
	return paginate(matched, page, limit)
}

func (r *Repository) GetOrder(id string) (domain.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	o, ok := r.orders[id]
	if !ok {
		return domain.Order{}, fmt.Errorf("order %s %w", id, ErrNotFound)
	}
	return o, nil
}

// PlaceOrder prices the items from the catalogue, checks and reserves stock
// and stores the order, all under one lock.
func (r *Repository) PlaceOrder(o domain.Order) (domain.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	requested := make(map[string]int)
	for i, item := range o.Items {
		p, ok := r.products[item.ProductID]
		if !ok {
			return domain.Order{}, fmt.Errorf("%w: item %d: product %s does not exist", ErrInvalid, i, item.ProductID)
		}
		requested[item.ProductID] += item.Quantity
		if p.Stock < requested[item.ProductID] {
			return domain.Order{}, fmt.Errorf("%w: insufficient stock for product %s (requested total: %d, available: %d)",
				ErrInvalid, p.ID, requested[item.ProductID], p.Stock)
		}
		price := p.Price
		if p.SalePrice != nil {
			price = *p.SalePrice
		}
		o.Items[i].Name = p.Name
		o.Items[i].Price = price
		o.Subtotal += price * float64(item.Quantity)
	}

	for id, qty := range requested {
		p := r.products[id]
		p.Stock -= qty
		r.products[id] = p
	}

	now := time.Now().UTC()
	r.orderSeq++
	o.ID = uuid.NewString()
	o.Code = fmt.Sprintf("ORD-%06d", r.orderSeq)
	o.Status = domain.OrderStatusPending
	o.Total = o.Subtotal - o.Discount
	o.CreatedAt = now
	o.UpdatedAt = now
	r.orders[o.ID] = o
	return o, nil
}

// SetOrderStatus moves an order to status. Cancelling returns its items to
// stock.
func (r *Repository) SetOrderStatus(id string, status domain.OrderStatus) (domain.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	o, ok := r.orders[id]
	if !ok {
		return domain.Order{}, fmt.Errorf("order %s %w", id, ErrNotFound)
	}
	if o.Status == domain.OrderStatusCompleted && status == domain.OrderStatusCancelled {
		return domain.Order{}, fmt.Errorf("%w: cannot cancel a completed order", ErrInvalid)
	}
	if o.Status == domain.OrderStatusCancelled && status != domain.OrderStatusCancelled {
		return domain.Order{}, fmt.Errorf("%w: cannot change status of a cancelled order", ErrInvalid)
	}

	if status == domain.OrderStatusCancelled && o.Status != domain.OrderStatusCancelled {
		for _, item := range o.Items {
			if p, ok := r.products[item.ProductID]; ok {
				p.Stock += item.Quantity
				r.products[item.ProductID] = p
			}
		}
	}
	o.Status = status
	o.UpdatedAt = time.Now().UTC()
	r.orders[id] = o
	return o, nil
}

func (r *Repository) DeleteOrder(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.orders[id]; !ok {
		return fmt.Errorf("order %s %w", id, ErrNotFound)
	}
	delete(r.orders, id)
	return nil
}

// --- Uploads ---

func (r *Repository) SaveUpload(name string, data []byte) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.uploads[name] = data
}

func (r *Repository) Upload(name string) ([]byte, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	data, ok := r.uploads[name]
	return data, ok
}

const (
	defaultPageLimit = 10
	maxPageLimit     = 100
)

func paginate[T any](items []T, page, limit int) ([]T, domain.Pagination) {
	if page <= 0 {
		page = 1
	}
	if limit <= 0 {
		limit = defaultPageLimit
	}
	if limit > maxPageLimit {
		limit = maxPageLimit
	}
	total := len(items)
	meta := domain.Pagination{Page: page, Limit: limit, Total: total, TotalPages: (total + limit - 1) / limit}

	start := (page - 1) * limit
	if start >= total {
		return []T{}, meta
	}
	end := start + limit
	if end > total {
		end = total
	}
	return items[start:end], meta
}
