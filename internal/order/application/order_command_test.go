package application

import (
	"context"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	cart "github.com/wyfcoding/eshop/internal/cart/domain"
	catalog "github.com/wyfcoding/eshop/internal/catalog/domain"
	"github.com/wyfcoding/eshop/internal/order/domain"
	"github.com/wyfcoding/eshop/pkg/errs"
)

type fakeOrderRepo struct {
	saved  *domain.Order
	orders map[uint]*domain.Order
}

func newFakeOrderRepo() *fakeOrderRepo {
	return &fakeOrderRepo{orders: map[uint]*domain.Order{}}
}

func (f *fakeOrderRepo) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func (f *fakeOrderRepo) Save(_ context.Context, order *domain.Order) error {
	if order.ID == 0 {
		order.ID = uint(len(f.orders) + 1)
	}
	f.saved = order
	f.orders[order.ID] = order
	return nil
}

func (f *fakeOrderRepo) GetByID(_ context.Context, id uint) (*domain.Order, error) {
	return f.orders[id], nil
}

func (f *fakeOrderRepo) ListByUser(_ context.Context, userID uint) ([]*domain.Order, error) {
	var out []*domain.Order
	for _, o := range f.orders {
		if o.UserID == userID {
			out = append(out, o)
		}
	}
	return out, nil
}

func (f *fakeOrderRepo) UpdateStatus(_ context.Context, id uint, status domain.OrderStatus) error {
	if o, ok := f.orders[id]; ok {
		o.Status = status
	}
	return nil
}

type fakeCartStore struct {
	cart    *cart.Cart
	deleted bool
}

func (f *fakeCartStore) GetByUserID(_ context.Context, userID uint) (*cart.Cart, error) {
	if f.cart == nil || f.cart.UserID != userID {
		return nil, nil
	}
	return f.cart, nil
}

func (f *fakeCartStore) Delete(_ context.Context, _ *cart.Cart) error {
	f.deleted = true
	f.cart = nil
	return nil
}

type fakeProductStore struct {
	products  map[uint]*catalog.Product
	saveCalls int
}

func (f *fakeProductStore) GetForUpdate(_ context.Context, id uint) (*catalog.Product, error) {
	return f.products[id], nil
}

func (f *fakeProductStore) Save(_ context.Context, product *catalog.Product) error {
	f.saveCalls++
	f.products[product.ID] = product
	return nil
}

type fakePublisher struct {
	topics []string
	keys   []string
	events []any
	err    error
}

func (f *fakePublisher) Publish(_ context.Context, topic string, key string, event any) error {
	f.topics = append(f.topics, topic)
	f.keys = append(f.keys, key)
	f.events = append(f.events, event)
	return f.err
}

func (f *fakePublisher) PublishInTx(_ context.Context, _ any, topic string, key string, event any) error {
	f.topics = append(f.topics, topic)
	f.keys = append(f.keys, key)
	f.events = append(f.events, event)
	return f.err
}

func intPtr(n int) *int { return &n }

func catalogProduct(id uint, name, price string, stock *int, active bool) *catalog.Product {
	p := &catalog.Product{
		Name:   name,
		Price:  decimal.RequireFromString(price),
		Stock:  stock,
		Active: active,
	}
	p.ID = id
	return p
}

func cartWith(userID uint, items ...cart.CartItem) *cart.Cart {
	c := &cart.Cart{UserID: userID, Items: items}
	c.ID = 1
	return c
}

func cartItem(productID uint, quantity int) cart.CartItem {
	return cart.CartItem{CartID: 1, ProductID: productID, Quantity: quantity}
}

func checkoutFixture(c *cart.Cart, products map[uint]*catalog.Product) (*OrderCommandService, *fakeOrderRepo, *fakeCartStore, *fakeProductStore, *fakePublisher) {
	orders := newFakeOrderRepo()
	carts := &fakeCartStore{cart: c}
	store := &fakeProductStore{products: products}
	publisher := &fakePublisher{}
	svc := NewOrderCommandService(orders, carts, store, publisher)
	return svc, orders, carts, store, publisher
}

func TestCreateOrder_ChecksOutCart(t *testing.T) {
	svc, orders, carts, store, publisher := checkoutFixture(
		cartWith(1, cartItem(10, 3)),
		map[uint]*catalog.Product{
			10: catalogProduct(10, "Olive oil", "10.99", intPtr(100), true),
		},
	)

	order, err := svc.CreateOrder(context.Background(), CreateOrderCommand{
		UserID:          1,
		Email:           "jane@example.com",
		ShippingAddress: "12 Main St",
		Phone:           "555-0100",
	})

	require.NoError(t, err)
	assert.Equal(t, domain.OrderStatusPending, order.Status)
	assert.True(t, order.TotalPrice.Equal(decimal.RequireFromString("32.97")), "total was %s", order.TotalPrice)
	assert.True(t, strings.HasPrefix(order.OrderNumber, "ORD-"))

	require.Len(t, order.Items, 1)
	item := order.Items[0]
	assert.Equal(t, uint(10), item.ProductID)
	assert.Equal(t, "Olive oil", item.ProductName)
	assert.Equal(t, 3, item.Quantity)
	assert.True(t, item.UnitPrice.Equal(decimal.RequireFromString("10.99")))
	assert.True(t, item.TotalPrice.Equal(decimal.RequireFromString("32.97")))

	assert.Equal(t, 97, *store.products[10].Stock)
	assert.True(t, carts.deleted, "checkout must destroy the cart")
	require.NotNil(t, orders.saved)
	require.Len(t, publisher.topics, 1)
	assert.Equal(t, domain.OrderCreatedEventType, publisher.topics[0])
	assert.Equal(t, order.OrderNumber, publisher.keys[0])

	event, ok := publisher.events[0].(domain.OrderCreatedEvent)
	require.True(t, ok)
	assert.Equal(t, "jane@example.com", event.Email)
	assert.Equal(t, uint(1), event.UserID)
}

func TestCreateOrder_SumsMultipleLines(t *testing.T) {
	svc, _, _, store, _ := checkoutFixture(
		cartWith(1, cartItem(10, 2), cartItem(11, 1)),
		map[uint]*catalog.Product{
			10: catalogProduct(10, "Milk", "1.99", intPtr(100), true),
			11: catalogProduct(11, "Bread", "2.49", intPtr(50), true),
		},
	)

	order, err := svc.CreateOrder(context.Background(), CreateOrderCommand{
		UserID:          1,
		ShippingAddress: "12 Main St",
		Phone:           "555-0100",
	})

	require.NoError(t, err)
	require.Len(t, order.Items, 2)
	assert.True(t, order.TotalPrice.Equal(decimal.RequireFromString("6.47")))
	assert.Equal(t, 98, *store.products[10].Stock)
	assert.Equal(t, 49, *store.products[11].Stock)
}

func TestCreateOrder_NoCart(t *testing.T) {
	svc, _, _, _, _ := checkoutFixture(nil, nil)

	_, err := svc.CreateOrder(context.Background(), CreateOrderCommand{
		UserID:          1,
		ShippingAddress: "12 Main St",
		Phone:           "555-0100",
	})

	require.Error(t, err)
	assert.True(t, errs.HasCode(err, errs.CodeCartIsEmpty))
}

func TestCreateOrder_EmptyCart(t *testing.T) {
	svc, _, _, _, _ := checkoutFixture(cartWith(1), nil)

	_, err := svc.CreateOrder(context.Background(), CreateOrderCommand{
		UserID:          1,
		ShippingAddress: "12 Main St",
		Phone:           "555-0100",
	})

	require.Error(t, err)
	assert.True(t, errs.HasCode(err, errs.CodeEmptyCartOrder))
}

func TestCreateOrder_InsufficientStockAbortsCheckout(t *testing.T) {
	svc, orders, carts, _, publisher := checkoutFixture(
		cartWith(1, cartItem(10, 1), cartItem(11, 5)),
		map[uint]*catalog.Product{
			10: catalogProduct(10, "Milk", "1.99", intPtr(100), true),
			11: catalogProduct(11, "Salmon", "12.99", intPtr(2), true),
		},
	)

	_, err := svc.CreateOrder(context.Background(), CreateOrderCommand{
		UserID:          1,
		ShippingAddress: "12 Main St",
		Phone:           "555-0100",
	})

	require.Error(t, err)
	assert.True(t, errs.HasCode(err, errs.CodeInsufficientStockForProduct))
	assert.Contains(t, err.Error(), "Salmon")
	assert.Nil(t, orders.saved)
	assert.False(t, carts.deleted)
	assert.Empty(t, publisher.topics)
}

func TestCreateOrder_InactiveProductAbortsCheckout(t *testing.T) {
	svc, orders, _, _, _ := checkoutFixture(
		cartWith(1, cartItem(10, 1)),
		map[uint]*catalog.Product{
			10: catalogProduct(10, "Roast chicken", "8.99", intPtr(20), false),
		},
	)

	_, err := svc.CreateOrder(context.Background(), CreateOrderCommand{
		UserID:          1,
		ShippingAddress: "12 Main St",
		Phone:           "555-0100",
	})

	require.Error(t, err)
	assert.True(t, errs.HasCode(err, errs.CodeProductNoLongerAvailable))
	assert.Contains(t, err.Error(), "Roast chicken")
	assert.Nil(t, orders.saved)
}

func TestCreateOrder_MissingProductAbortsCheckout(t *testing.T) {
	svc, _, _, _, _ := checkoutFixture(
		cartWith(1, cartItem(99, 1)),
		map[uint]*catalog.Product{},
	)

	_, err := svc.CreateOrder(context.Background(), CreateOrderCommand{
		UserID:          1,
		ShippingAddress: "12 Main St",
		Phone:           "555-0100",
	})

	require.Error(t, err)
	assert.True(t, errs.HasCode(err, errs.CodeProductNotFound))
}

func TestCreateOrder_BillingDefaultsToShipping(t *testing.T) {
	svc, _, _, _, _ := checkoutFixture(
		cartWith(1, cartItem(10, 1)),
		map[uint]*catalog.Product{
			10: catalogProduct(10, "Milk", "1.99", intPtr(100), true),
		},
	)

	order, err := svc.CreateOrder(context.Background(), CreateOrderCommand{
		UserID:          1,
		ShippingAddress: "12 Main St",
		Phone:           "555-0100",
	})

	require.NoError(t, err)
	assert.Equal(t, "12 Main St", order.BillingAddress)
}

func TestCreateOrder_UnlimitedStockNotDecremented(t *testing.T) {
	svc, _, _, store, _ := checkoutFixture(
		cartWith(1, cartItem(10, 50)),
		map[uint]*catalog.Product{
			10: catalogProduct(10, "Gift card", "25.00", nil, true),
		},
	)

	order, err := svc.CreateOrder(context.Background(), CreateOrderCommand{
		UserID:          1,
		ShippingAddress: "12 Main St",
		Phone:           "555-0100",
	})

	require.NoError(t, err)
	assert.Equal(t, 0, store.saveCalls)
	assert.Nil(t, store.products[10].Stock)
	assert.True(t, order.TotalPrice.Equal(decimal.RequireFromString("1250.00")))
}

func TestUpdateOrderStatus(t *testing.T) {
	svc, orders, _, _, publisher := checkoutFixture(
		cartWith(1, cartItem(10, 1)),
		map[uint]*catalog.Product{
			10: catalogProduct(10, "Milk", "1.99", intPtr(100), true),
		},
	)
	created, err := svc.CreateOrder(context.Background(), CreateOrderCommand{
		UserID:          1,
		Email:           "jane@example.com",
		ShippingAddress: "12 Main St",
		Phone:           "555-0100",
	})
	require.NoError(t, err)

	updated, err := svc.UpdateOrderStatus(context.Background(), created.ID, domain.OrderStatusShipped)

	require.NoError(t, err)
	assert.Equal(t, domain.OrderStatusShipped, updated.Status)
	assert.Equal(t, domain.OrderStatusShipped, orders.orders[created.ID].Status)
	assert.Equal(t, domain.OrderStatusChangedEventType, publisher.topics[len(publisher.topics)-1])

	event, ok := publisher.events[len(publisher.events)-1].(domain.OrderStatusChangedEvent)
	require.True(t, ok)
	assert.Equal(t, "jane@example.com", event.Email)
	assert.Equal(t, domain.OrderStatusPending, event.OldStatus)
	assert.Equal(t, domain.OrderStatusShipped, event.NewStatus)
}

func TestUpdateOrderStatus_UnknownOrder(t *testing.T) {
	svc, _, _, _, _ := checkoutFixture(nil, nil)

	_, err := svc.UpdateOrderStatus(context.Background(), 404, domain.OrderStatusShipped)

	require.Error(t, err)
	assert.True(t, errs.HasCode(err, errs.CodeOrderNotFound))
}
