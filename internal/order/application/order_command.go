package application

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	cart "github.com/wyfcoding/eshop/internal/cart/domain"
	catalog "github.com/wyfcoding/eshop/internal/catalog/domain"
	"github.com/wyfcoding/eshop/internal/order/domain"
	"github.com/wyfcoding/eshop/pkg/errs"
	"github.com/wyfcoding/pkg/contextx"
	"github.com/wyfcoding/pkg/idgen"
	"github.com/wyfcoding/pkg/logging"
)

// CartStore is the slice of the cart module checkout consumes.
type CartStore interface {
	GetByUserID(ctx context.Context, userID uint) (*cart.Cart, error)
	Delete(ctx context.Context, c *cart.Cart) error
}

// ProductStore is the slice of the catalog module checkout consumes. Reads
// go through GetForUpdate so stock checks hold until commit.
type ProductStore interface {
	GetForUpdate(ctx context.Context, id uint) (*catalog.Product, error)
	Save(ctx context.Context, product *catalog.Product) error
}

type CreateOrderCommand struct {
	UserID          uint
	Email           string
	ShippingAddress string
	BillingAddress  string
	Phone           string
}

type OrderCommandService struct {
	orders    domain.OrderRepository
	carts     CartStore
	products  ProductStore
	publisher domain.EventPublisher
}

func NewOrderCommandService(
	orders domain.OrderRepository,
	carts CartStore,
	products ProductStore,
	publisher domain.EventPublisher,
) *OrderCommandService {
	return &OrderCommandService{
		orders:    orders,
		carts:     carts,
		products:  products,
		publisher: publisher,
	}
}

// CreateOrder converts the user's cart into an order in one transaction:
// every line is re-validated against the catalog under row locks, unit
// prices are snapshotted, stock is decremented and the cart is destroyed.
// Any failure rolls the whole checkout back.
func (s *OrderCommandService) CreateOrder(ctx context.Context, cmd CreateOrderCommand) (*domain.Order, error) {
	billing := cmd.BillingAddress
	if billing == "" {
		billing = cmd.ShippingAddress
	}

	var order *domain.Order
	err := s.orders.WithTx(ctx, func(txCtx context.Context) error {
		c, err := s.carts.GetByUserID(txCtx, cmd.UserID)
		if err != nil {
			return err
		}
		if c == nil {
			return errs.NotFound(errs.CodeCartIsEmpty, "Cart is empty")
		}
		if c.IsEmpty() {
			return errs.Business(errs.CodeEmptyCartOrder, "Cannot create order with empty cart")
		}

		order = &domain.Order{
			OrderNumber:     fmt.Sprintf("ORD-%d", idgen.GenID()),
			UserID:          cmd.UserID,
			Status:          domain.OrderStatusPending,
			TotalPrice:      decimal.Zero,
			ShippingAddress: cmd.ShippingAddress,
			BillingAddress:  billing,
			Phone:           cmd.Phone,
			Email:           cmd.Email,
		}

		for i := range c.Items {
			item := &c.Items[i]
			product, err := s.products.GetForUpdate(txCtx, item.ProductID)
			if err != nil {
				return err
			}
			if product == nil {
				return errs.NotFound(errs.CodeProductNotFound, "Product not found with id: %d", item.ProductID)
			}
			if !product.Active {
				return errs.Business(errs.CodeProductNoLongerAvailable, "Product %s is no longer available", product.Name)
			}
			if !product.HasStock(item.Quantity) {
				return errs.Business(errs.CodeInsufficientStockForProduct, "Insufficient stock for product %s", product.Name)
			}

			line := product.Price.Mul(decimal.NewFromInt(int64(item.Quantity)))
			order.Items = append(order.Items, domain.OrderItem{
				ProductID:   product.ID,
				ProductName: product.Name,
				Quantity:    item.Quantity,
				UnitPrice:   product.Price,
				TotalPrice:  line,
			})
			order.TotalPrice = order.TotalPrice.Add(line)

			if product.Stock != nil {
				product.DecrementStock(item.Quantity)
				if err := s.products.Save(txCtx, product); err != nil {
					return err
				}
			}
		}

		if err := s.orders.Save(txCtx, order); err != nil {
			return err
		}
		if err := s.carts.Delete(txCtx, c); err != nil {
			return err
		}

		event := domain.OrderCreatedEvent{
			OrderID:     order.ID,
			OrderNumber: order.OrderNumber,
			UserID:      order.UserID,
			Email:       order.Email,
			TotalPrice:  order.TotalPrice,
			CreatedAt:   time.Now(),
		}
		for _, it := range order.Items {
			event.Items = append(event.Items, domain.OrderCreatedEventItem{
				ProductID: it.ProductID,
				Quantity:  it.Quantity,
			})
		}
		return s.publisher.PublishInTx(txCtx, contextx.GetTx(txCtx), domain.OrderCreatedEventType, order.OrderNumber, event)
	})
	if err != nil {
		return nil, err
	}

	logging.Info(ctx, "order created",
		"order_number", order.OrderNumber,
		"user_id", order.UserID,
		"total_price", order.TotalPrice.String(),
		"items", len(order.Items))
	return order, nil
}

// UpdateOrderStatus sets the order's fulfillment status. Any known status
// may follow any other.
func (s *OrderCommandService) UpdateOrderStatus(ctx context.Context, orderID uint, status domain.OrderStatus) (*domain.Order, error) {
	var order *domain.Order
	err := s.orders.WithTx(ctx, func(txCtx context.Context) error {
		var err error
		order, err = s.orders.GetByID(txCtx, orderID)
		if err != nil {
			return err
		}
		if order == nil {
			return errs.NotFound(errs.CodeOrderNotFound, "Order not found with id: %d", orderID)
		}

		old := order.Status
		if err := s.orders.UpdateStatus(txCtx, orderID, status); err != nil {
			return err
		}
		order.Status = status

		event := domain.OrderStatusChangedEvent{
			OrderID:     order.ID,
			OrderNumber: order.OrderNumber,
			UserID:      order.UserID,
			Email:       order.Email,
			OldStatus:   old,
			NewStatus:   status,
			ChangedAt:   time.Now(),
		}
		return s.publisher.PublishInTx(txCtx, contextx.GetTx(txCtx), domain.OrderStatusChangedEventType, order.OrderNumber, event)
	})
	if err != nil {
		return nil, err
	}

	logging.Info(ctx, "order status updated",
		"order_id", order.ID,
		"status", string(order.Status))
	return order, nil
}
