package service

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/Indrajitpadhiyar/Bagify/internal/domain"
	pkgdto "github.com/Indrajitpadhiyar/Bagify/pkg/dto"
	"github.com/Indrajitpadhiyar/Bagify/pkg/errs"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// fakeStore is an in-memory stand-in for every repository. HandleTrx runs
// transactions one at a time and restores a snapshot when fn fails.
type fakeStore struct {
	trxMu sync.Mutex
	mu    sync.Mutex

	products map[primitive.ObjectID]domain.Product
	orders   map[primitive.ObjectID]domain.Order
	users    map[primitive.ObjectID]domain.User
	events   []domain.OrderEvent

	// failStatusUpdate simulates a concurrent writer winning the status CAS.
	failStatusUpdate bool
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		products: map[primitive.ObjectID]domain.Product{},
		orders:   map[primitive.ObjectID]domain.Order{},
		users:    map[primitive.ObjectID]domain.User{},
	}
}

type fakeSnapshot struct {
	products map[primitive.ObjectID]domain.Product
	orders   map[primitive.ObjectID]domain.Order
	users    map[primitive.ObjectID]domain.User
	events   []domain.OrderEvent
}

func (f *fakeStore) snapshot() fakeSnapshot {
	f.mu.Lock()
	defer f.mu.Unlock()

	snap := fakeSnapshot{
		products: make(map[primitive.ObjectID]domain.Product, len(f.products)),
		orders:   make(map[primitive.ObjectID]domain.Order, len(f.orders)),
		users:    make(map[primitive.ObjectID]domain.User, len(f.users)),
		events:   append([]domain.OrderEvent(nil), f.events...),
	}
	for k, v := range f.products {
		snap.products[k] = v
	}
	for k, v := range f.orders {
		snap.orders[k] = v
	}
	for k, v := range f.users {
		snap.users[k] = v
	}
	return snap
}

func (f *fakeStore) restore(snap fakeSnapshot) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.products = snap.products
	f.orders = snap.orders
	f.users = snap.users
	f.events = snap.events
}

func (f *fakeStore) HandleTrx(ctx context.Context, fn func(ctx context.Context) error) error {
	f.trxMu.Lock()
	defer f.trxMu.Unlock()

	snap := f.snapshot()
	if err := fn(ctx); err != nil {
		f.restore(snap)
		return err
	}
	return nil
}

// seeding helpers

func (f *fakeStore) seedProduct(name string, price float64, stock int) domain.Product {
	f.mu.Lock()
	defer f.mu.Unlock()

	p := domain.Product{
		ID:        primitive.NewObjectID(),
		Name:      name,
		Price:     price,
		Category:  "Bags",
		Stock:     stock,
		Images:    []domain.Image{{PublicID: "p/" + name, URL: "https://img.example/" + name + ".png"}},
		CreatedAt: time.Now().UTC(),
	}
	f.products[p.ID] = p
	return p
}

func (f *fakeStore) seedUser(name string, role string) domain.User {
	f.mu.Lock()
	defer f.mu.Unlock()

	u := domain.User{
		ID:        primitive.NewObjectID(),
		Name:      name,
		Email:     strings.ToLower(name) + "@bagify.test",
		Role:      role,
		CreatedAt: time.Now().UTC(),
	}
	f.users[u.ID] = u
	return u
}

func (f *fakeStore) stockOf(id primitive.ObjectID) int {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.products[id].Stock
}

func (f *fakeStore) order(id primitive.ObjectID) domain.Order {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.orders[id]
}

func (f *fakeStore) orderCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()

	return len(f.orders)
}

func (f *fakeStore) allEvents() []domain.OrderEvent {
	f.mu.Lock()
	defer f.mu.Unlock()

	return append([]domain.OrderEvent(nil), f.events...)
}

func (f *fakeStore) deleteProduct(id primitive.ObjectID) {
	f.mu.Lock()
	defer f.mu.Unlock()

	delete(f.products, id)
}

// ProductRepository

func (f *fakeStore) AddProduct(ctx context.Context, data domain.Product) (primitive.ObjectID, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	data.ID = primitive.NewObjectID()
	f.products[data.ID] = data
	return data.ID, nil
}

func matchesFilter(p domain.Product, param pkgdto.Filter) bool {
	if param.Keyword != "" && !strings.Contains(strings.ToLower(p.Name), strings.ToLower(param.Keyword)) {
		return false
	}
	if param.Category != "" && p.Category != param.Category {
		return false
	}
	if param.MinPrice != nil && p.Price < *param.MinPrice {
		return false
	}
	if param.MaxPrice != nil && p.Price > *param.MaxPrice {
		return false
	}
	if param.MinRating != nil && p.Ratings < *param.MinRating {
		return false
	}
	return true
}

func (f *fakeStore) filteredProducts(param pkgdto.Filter) []domain.Product {
	data := []domain.Product{}
	for _, p := range f.products {
		if matchesFilter(p, param) {
			data = append(data, p)
		}
	}
	sort.Slice(data, func(i, j int) bool { return data[i].CreatedAt.After(data[j].CreatedAt) })
	return data
}

func (f *fakeStore) GetProducts(ctx context.Context, param pkgdto.Filter) ([]domain.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	data := f.filteredProducts(param)
	if param.Limit != 0 && param.Page != 0 {
		start := (param.Page - 1) * param.Limit
		if start > len(data) {
			start = len(data)
		}
		end := start + param.Limit
		if end > len(data) {
			end = len(data)
		}
		data = data[start:end]
	}
	return data, nil
}

func (f *fakeStore) CountProducts(ctx context.Context, param pkgdto.Filter) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	return int64(len(f.filteredProducts(param))), nil
}

func (f *fakeStore) GetAllProducts(ctx context.Context) ([]domain.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.filteredProducts(pkgdto.Filter{}), nil
}

func (f *fakeStore) GetProductByID(ctx context.Context, id primitive.ObjectID) (domain.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	p, ok := f.products[id]
	if !ok {
		return domain.Product{}, errs.ErrProductNotFound
	}
	p.Reviews = append([]domain.Review(nil), p.Reviews...)
	return p, nil
}

func (f *fakeStore) GetProductsByIDs(ctx context.Context, ids []primitive.ObjectID) ([]domain.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	data := []domain.Product{}
	for _, id := range ids {
		if p, ok := f.products[id]; ok {
			data = append(data, p)
		}
	}
	return data, nil
}

func (f *fakeStore) UpdateProduct(ctx context.Context, data domain.Product) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if _, ok := f.products[data.ID]; !ok {
		return errs.ErrProductNotFound
	}
	f.products[data.ID] = data
	return nil
}

func (f *fakeStore) UpdateProductReviews(ctx context.Context, data domain.Product) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	p, ok := f.products[data.ID]
	if !ok {
		return errs.ErrProductNotFound
	}
	p.Reviews = data.Reviews
	p.Ratings = data.Ratings
	p.NumOfReviews = data.NumOfReviews
	f.products[data.ID] = p
	return nil
}

func (f *fakeStore) DeleteProduct(ctx context.Context, id primitive.ObjectID) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if _, ok := f.products[id]; !ok {
		return errs.ErrProductNotFound
	}
	delete(f.products, id)
	return nil
}

func (f *fakeStore) DecrementStock(ctx context.Context, id primitive.ObjectID, quantity int) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	p, ok := f.products[id]
	if !ok || p.Stock < quantity {
		return false, nil
	}
	p.Stock -= quantity
	f.products[id] = p
	return true, nil
}

func (f *fakeStore) IncrementStock(ctx context.Context, id primitive.ObjectID, quantity int) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	p, ok := f.products[id]
	if !ok {
		return false, nil
	}
	p.Stock += quantity
	f.products[id] = p
	return true, nil
}

// OrderRepository

func (f *fakeStore) AddOrder(ctx context.Context, data domain.Order) (primitive.ObjectID, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	data.ID = primitive.NewObjectID()
	f.orders[data.ID] = data
	return data.ID, nil
}

func (f *fakeStore) GetOrderByID(ctx context.Context, id primitive.ObjectID) (domain.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	o, ok := f.orders[id]
	if !ok {
		return domain.Order{}, errs.ErrOrderNotFound
	}
	o.Timeline = append([]domain.TimelineEntry(nil), o.Timeline...)
	return o, nil
}

func (f *fakeStore) listOrders(keep func(domain.Order) bool) []domain.Order {
	data := []domain.Order{}
	for _, o := range f.orders {
		if keep(o) {
			data = append(data, o)
		}
	}
	sort.Slice(data, func(i, j int) bool { return data[i].CreatedAt.After(data[j].CreatedAt) })
	return data
}

func (f *fakeStore) GetOrdersByUser(ctx context.Context, userID primitive.ObjectID) ([]domain.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.listOrders(func(o domain.Order) bool { return o.User == userID }), nil
}

func (f *fakeStore) GetOrders(ctx context.Context) ([]domain.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.listOrders(func(domain.Order) bool { return true }), nil
}

func (f *fakeStore) UpdateOrderStatus(ctx context.Context, change domain.OrderStatusChange) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	o, ok := f.orders[change.OrderID]
	if !ok || o.OrderStatus != change.From || f.failStatusUpdate {
		return errs.ErrConflict
	}
	o.Timeline = append(append([]domain.TimelineEntry(nil), o.Timeline...), change.Entry)
	o.OrderStatus = change.To
	if change.DeliveredAt != nil {
		o.DeliveredAt = change.DeliveredAt
	}
	if change.CancelledAt != nil {
		o.CancelledAt = change.CancelledAt
	}
	f.orders[change.OrderID] = o
	return nil
}

func (f *fakeStore) DeleteOrder(ctx context.Context, id primitive.ObjectID) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if _, ok := f.orders[id]; !ok {
		return errs.ErrOrderNotFound
	}
	delete(f.orders, id)
	return nil
}

// UserRepository

func (f *fakeStore) AddUser(ctx context.Context, data domain.User) (primitive.ObjectID, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, u := range f.users {
		if u.Email == data.Email {
			return primitive.NilObjectID, errs.ErrEmailAlreadyUsed
		}
	}
	data.ID = primitive.NewObjectID()
	f.users[data.ID] = data
	return data.ID, nil
}

func (f *fakeStore) GetUserByID(ctx context.Context, id primitive.ObjectID) (domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	u, ok := f.users[id]
	if !ok {
		return domain.User{}, errs.ErrUserNotFound
	}
	return u, nil
}

func (f *fakeStore) GetUserByEmail(ctx context.Context, email string) (domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return domain.User{}, errs.ErrUserNotFound
}

func (f *fakeStore) GetUsers(ctx context.Context) ([]domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	data := []domain.User{}
	for _, u := range f.users {
		data = append(data, u)
	}
	return data, nil
}

func (f *fakeStore) GetUsersByIDs(ctx context.Context, ids []primitive.ObjectID) ([]domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	data := []domain.User{}
	for _, id := range ids {
		if u, ok := f.users[id]; ok {
			data = append(data, u)
		}
	}
	return data, nil
}

func (f *fakeStore) updateUser(id primitive.ObjectID, fn func(u *domain.User)) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	u, ok := f.users[id]
	if !ok {
		return errs.ErrUserNotFound
	}
	fn(&u)
	f.users[id] = u
	return nil
}

func (f *fakeStore) UpdateProfile(ctx context.Context, data domain.User) error {
	return f.updateUser(data.ID, func(u *domain.User) {
		u.Name = data.Name
		u.Email = data.Email
		u.Avatar = data.Avatar
		if data.ShippingInfo != nil {
			u.ShippingInfo = data.ShippingInfo
		}
	})
}

func (f *fakeStore) UpdatePassword(ctx context.Context, id primitive.ObjectID, hashedPassword string) error {
	return f.updateUser(id, func(u *domain.User) {
		u.Password = hashedPassword
		u.ResetPasswordToken = ""
		u.ResetPasswordExpire = nil
	})
}

func (f *fakeStore) UpdateRole(ctx context.Context, id primitive.ObjectID, role string) error {
	return f.updateUser(id, func(u *domain.User) { u.Role = role })
}

func (f *fakeStore) DeleteUser(ctx context.Context, id primitive.ObjectID) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if _, ok := f.users[id]; !ok {
		return errs.ErrUserNotFound
	}
	delete(f.users, id)
	return nil
}

func (f *fakeStore) SetResetToken(ctx context.Context, id primitive.ObjectID, tokenHash string, expire time.Time) error {
	return f.updateUser(id, func(u *domain.User) {
		u.ResetPasswordToken = tokenHash
		u.ResetPasswordExpire = &expire
	})
}

func (f *fakeStore) GetUserByResetToken(ctx context.Context, tokenHash string, now time.Time) (domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, u := range f.users {
		if u.ResetPasswordToken == tokenHash && u.ResetPasswordExpire != nil && u.ResetPasswordExpire.After(now) {
			return u, nil
		}
	}
	return domain.User{}, errs.ErrExpiredToken
}

func (f *fakeStore) ClearExpiredResetTokens(ctx context.Context, now time.Time) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var count int64
	for id, u := range f.users {
		if u.ResetPasswordExpire != nil && !u.ResetPasswordExpire.After(now) {
			u.ResetPasswordToken = ""
			u.ResetPasswordExpire = nil
			f.users[id] = u
			count++
		}
	}
	return count, nil
}

func (f *fakeStore) AddToCart(ctx context.Context, userID, productID primitive.ObjectID) error {
	return f.updateUser(userID, func(u *domain.User) {
		if !u.HasInCart(productID) {
			u.Cart = append(append([]domain.CartItem(nil), u.Cart...), domain.CartItem{ProductID: productID})
		}
	})
}

func (f *fakeStore) RemoveFromCart(ctx context.Context, userID, productID primitive.ObjectID) error {
	return f.updateUser(userID, func(u *domain.User) {
		kept := []domain.CartItem{}
		for _, item := range u.Cart {
			if item.ProductID != productID {
				kept = append(kept, item)
			}
		}
		u.Cart = kept
	})
}

func (f *fakeStore) AddToWishlist(ctx context.Context, userID, productID primitive.ObjectID) error {
	return f.updateUser(userID, func(u *domain.User) {
		if !u.HasInWishlist(productID) {
			u.Wishlist = append(append([]primitive.ObjectID(nil), u.Wishlist...), productID)
		}
	})
}

func (f *fakeStore) RemoveFromWishlist(ctx context.Context, userID, productID primitive.ObjectID) error {
	return f.updateUser(userID, func(u *domain.User) {
		kept := []primitive.ObjectID{}
		for _, id := range u.Wishlist {
			if id != productID {
				kept = append(kept, id)
			}
		}
		u.Wishlist = kept
	})
}

// EventRepository

func (f *fakeStore) AddEvent(ctx context.Context, data domain.OrderEvent) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	data.ID = primitive.NewObjectID()
	f.events = append(f.events, data)
	return nil
}

func (f *fakeStore) GetPendingEvents(ctx context.Context, limit int64) ([]domain.OrderEvent, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	data := []domain.OrderEvent{}
	for _, e := range f.events {
		if !e.Delivered {
			data = append(data, e)
		}
		if int64(len(data)) == limit {
			break
		}
	}
	return data, nil
}

func (f *fakeStore) updateEvent(id primitive.ObjectID, fn func(e *domain.OrderEvent)) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	for i := range f.events {
		if f.events[i].ID == id {
			fn(&f.events[i])
			return nil
		}
	}
	return errors.New("event not found")
}

func (f *fakeStore) MarkEventDelivered(ctx context.Context, id primitive.ObjectID, at time.Time) error {
	return f.updateEvent(id, func(e *domain.OrderEvent) {
		e.Delivered = true
		e.DeliveredAt = &at
	})
}

func (f *fakeStore) IncrementEventAttempts(ctx context.Context, id primitive.ObjectID) error {
	return f.updateEvent(id, func(e *domain.OrderEvent) { e.Attempts++ })
}

func (f *fakeStore) DeleteDeliveredEventsBefore(ctx context.Context, before time.Time) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	kept := []domain.OrderEvent{}
	var count int64
	for _, e := range f.events {
		if e.Delivered && e.DeliveredAt != nil && e.DeliveredAt.Before(before) {
			count++
			continue
		}
		kept = append(kept, e)
	}
	f.events = kept
	return count, nil
}

// countingTrigger records relay triggers.
type countingTrigger struct {
	mu    sync.Mutex
	count int
}

func (t *countingTrigger) Trigger() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.count++
}

func (t *countingTrigger) Count() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.count
}

// recordingEmitter records hub calls.
type emitted struct {
	Room  string
	Event string
	Data  string
}

type recordingEmitter struct {
	mu    sync.Mutex
	calls []emitted
}

func (e *recordingEmitter) Broadcast(event string, data interface{}) error {
	return e.record("", event, data)
}

func (e *recordingEmitter) EmitToRoom(room, event string, data interface{}) error {
	return e.record(room, event, data)
}

func (e *recordingEmitter) record(room, event string, data interface{}) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	var payload string
	switch v := data.(type) {
	case []byte:
		payload = string(v)
	case interface{ MarshalJSON() ([]byte, error) }:
		b, _ := v.MarshalJSON()
		payload = string(b)
	}
	e.calls = append(e.calls, emitted{Room: room, Event: event, Data: payload})
	return nil
}

func (e *recordingEmitter) Calls() []emitted {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]emitted(nil), e.calls...)
}
