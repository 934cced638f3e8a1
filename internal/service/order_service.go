package service

import (
	"context"
	"fmt"

	"cryzo-api/internal/broker"
	"cryzo-api/internal/models"
	"cryzo-api/internal/store"
	"cryzo-api/internal/util"

	"go.uber.org/zap"
)

const orderListLimit = 50

// OrderService persists order records. There is no order lifecycle beyond
// the single creation write.
type OrderService struct {
	store     *store.Store
	publisher *broker.EventPublisher
	logger    *zap.Logger
}

// NewOrderService creates a new order service
func NewOrderService(st *store.Store, publisher *broker.EventPublisher) *OrderService {
	return &OrderService{
		store:     st,
		publisher: publisher,
		logger:    util.GetLogger(),
	}
}

// Create validates and persists an order, then publishes OrderCreated.
func (s *OrderService) Create(ctx context.Context, order *models.Order) error {
	ctx, span := util.StartSpan(ctx, "OrderService.Create")
	defer span.End()

	if len(order.Items) == 0 {
		return fmt.Errorf("%w: order needs at least one item", ErrValidation)
	}
	if order.Status == "" {
		order.Status = models.OrderStatusPending
	}

	if order.TotalAmount == 0 {
		for _, item := range order.Items {
			order.TotalAmount += item.Price * float64(item.Quantity)
		}
	}

	if err := s.store.CreateOrder(ctx, order); err != nil {
		return fmt.Errorf("failed to create order: %w", err)
	}

	util.OrdersCreatedTotal.Inc()
	s.logger.Info("Order created",
		zap.String("order_id", order.ID.Hex()),
		zap.Float64("total", order.TotalAmount))

	if s.publisher != nil {
		if err := s.publisher.PublishOrderCreated(ctx, order); err != nil {
			s.logger.Error("Failed to publish OrderCreated event", zap.Error(err))
		}
	}

	return nil
}

// List returns the most recent orders.
func (s *OrderService) List(ctx context.Context) ([]models.Order, error) {
	return s.store.ListOrders(ctx, orderListLimit)
}
