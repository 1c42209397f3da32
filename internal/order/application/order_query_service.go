package application

import (
	"context"

	"github.com/wyfcoding/eshop/internal/order/domain"
	"github.com/wyfcoding/eshop/pkg/errs"
)

type OrderQueryService struct {
	orders domain.OrderRepository
}

func NewOrderQueryService(orders domain.OrderRepository) *OrderQueryService {
	return &OrderQueryService{orders: orders}
}

// GetUserOrders returns the user's order history, newest first.
func (s *OrderQueryService) GetUserOrders(ctx context.Context, userID uint) ([]*domain.Order, error) {
	return s.orders.ListByUser(ctx, userID)
}

// GetOrder loads a single order. Non-admin callers may only read their own
// orders.
func (s *OrderQueryService) GetOrder(ctx context.Context, orderID, userID uint, admin bool) (*domain.Order, error) {
	order, err := s.orders.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, errs.NotFound(errs.CodeOrderNotFound, "Order not found with id: %d", orderID)
	}
	if !admin && order.UserID != userID {
		return nil, errs.Business(errs.CodeOrderDoesNotBelongToUser, "Order does not belong to user")
	}
	return order, nil
}
