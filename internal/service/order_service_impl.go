package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/Indrajitpadhiyar/Bagify/internal/domain"
	"github.com/Indrajitpadhiyar/Bagify/internal/dto"
	"github.com/Indrajitpadhiyar/Bagify/internal/metrics"
	"github.com/Indrajitpadhiyar/Bagify/internal/repository"
	"github.com/Indrajitpadhiyar/Bagify/pkg/errs"
	"github.com/Indrajitpadhiyar/Bagify/pkg/utils"
	"github.com/oklog/ulid/v2"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type OrderServiceImpl struct {
	trx         repository.TransactionManager
	orderRepo   repository.OrderRepository
	productRepo repository.ProductRepository
	userRepo    repository.UserRepository
	eventRepo   repository.EventRepository
	events      EventTrigger
}

func CreateOrderService(trx repository.TransactionManager, orderRepo repository.OrderRepository, productRepo repository.ProductRepository,
	userRepo repository.UserRepository, eventRepo repository.EventRepository, events EventTrigger) OrderService {
	return &OrderServiceImpl{
		trx:         trx,
		orderRepo:   orderRepo,
		productRepo: productRepo,
		userRepo:    userRepo,
		eventRepo:   eventRepo,
		events:      events,
	}
}

// PlaceOrder reserves stock for every line and records the order in a single
// transaction, so a failing line leaves every product untouched.
func (s *OrderServiceImpl) PlaceOrder(ctx context.Context, user domain.User, data dto.OrderRequest) (order domain.Order, err error) {
	if len(data.OrderItems) == 0 {
		return order, errs.ErrEmptyOrder
	}

	productIDs := make([]primitive.ObjectID, len(data.OrderItems))
	for i, item := range data.OrderItems {
		if item.Quantity < 1 {
			return order, fmt.Errorf("%w: quantity must be at least 1", errs.ErrClient)
		}

		productIDs[i], err = utils.ParseObjectID(item.Product, errs.ErrProductNotFound)
		if err != nil {
			return order, err
		}
	}

	err = s.trx.HandleTrx(ctx, func(ctx context.Context) error {
		items := make([]domain.OrderItem, 0, len(data.OrderItems))
		itemsPrice := decimal.Zero

		for i, item := range data.OrderItems {
			product, err := s.productRepo.GetProductByID(ctx, productIDs[i])
			if err != nil {
				if errors.Is(err, errs.ErrProductNotFound) {
					return fmt.Errorf("%w: %s", errs.ErrProductNotFound, item.Product)
				}
				return err
			}

			reserved, err := s.productRepo.DecrementStock(ctx, product.ID, item.Quantity)
			if err != nil {
				return err
			}
			if !reserved {
				metrics.StockReservationFailures.Inc()
				return fmt.Errorf("%w: %s", errs.ErrInsufficientStock, product.Name)
			}

			items = append(items, domain.OrderItem{
				Product:  product.ID,
				Name:     product.Name,
				Price:    product.Price,
				Quantity: item.Quantity,
				Image:    product.FirstImageURL(),
			})
			itemsPrice = itemsPrice.Add(lineTotal(product.Price, item.Quantity))
		}

		totals := calculateTotals(itemsPrice, data.TaxPrice, data.ShippingPrice)
		now := time.Now().UTC()

		order = domain.Order{
			ShippingInfo:  data.ShippingInfo,
			OrderItems:    items,
			User:          user.ID,
			PaymentInfo:   data.PaymentInfo,
			PaidAt:        now,
			ItemsPrice:    totals.ItemsPrice,
			TaxPrice:      totals.TaxPrice,
			ShippingPrice: totals.ShippingPrice,
			TotalPrice:    totals.TotalPrice,
			OrderStatus:   domain.OrderStatusProcessing,
			Timeline: []domain.TimelineEntry{{
				Status:    domain.OrderStatusProcessing,
				Message:   "Order placed successfully",
				Timestamp: now,
			}},
			CreatedAt: now,
		}

		orderID, err := s.orderRepo.AddOrder(ctx, order)
		if err != nil {
			return err
		}
		order.ID = orderID

		return s.addEvent(ctx, domain.EventNewOrder, order.ID, "", dto.NewOrderNotificationFrom(order))
	})
	if err != nil {
		return domain.Order{}, err
	}

	metrics.OrdersPlaced.Inc()
	log.Ctx(ctx).Info().Str("component", "PlaceOrder").Str("order_id", order.ID.Hex()).
		Str("user_id", user.ID.Hex()).Float64("total_price", order.TotalPrice).Msg("order placed")
	s.events.Trigger()

	return order, nil
}

func (s *OrderServiceImpl) UpdateOrderStatus(ctx context.Context, id string, data dto.OrderStatusRequest) (order domain.Order, err error) {
	orderID, err := utils.ParseObjectID(id, errs.ErrOrderNotFound)
	if err != nil {
		return
	}

	target, err := domain.ParseOrderStatus(data.Status)
	if err != nil {
		return
	}

	var from domain.OrderStatus
	err = s.trx.HandleTrx(ctx, func(ctx context.Context) error {
		current, err := s.orderRepo.GetOrderByID(ctx, orderID)
		if err != nil {
			return err
		}

		if current.OrderStatus == domain.OrderStatusDelivered {
			return errs.ErrOrderAlreadyDelivered
		}

		if !current.OrderStatus.CanTransition(target) {
			return fmt.Errorf("%w: %s to %s", errs.ErrInvalidStatusTransition, current.OrderStatus, target)
		}

		from = current.OrderStatus
		order, err = s.transition(ctx, current, target, fmt.Sprintf("Order status updated to %s", target))
		return err
	})
	if err != nil {
		return domain.Order{}, err
	}

	s.afterTransition(ctx, order, from)

	return order, nil
}

func (s *OrderServiceImpl) CancelOrder(ctx context.Context, user domain.User, id string) (order domain.Order, err error) {
	orderID, err := utils.ParseObjectID(id, errs.ErrOrderNotFound)
	if err != nil {
		return
	}

	var from domain.OrderStatus
	err = s.trx.HandleTrx(ctx, func(ctx context.Context) error {
		current, err := s.orderRepo.GetOrderByID(ctx, orderID)
		if err != nil {
			return err
		}

		if current.User != user.ID {
			return errs.ErrNotOrderOwner
		}

		switch current.OrderStatus {
		case domain.OrderStatusDelivered:
			return errs.ErrCancelDelivered
		case domain.OrderStatusCancelled:
			return errs.ErrOrderAlreadyCancelled
		}

		from = current.OrderStatus
		order, err = s.transition(ctx, current, domain.OrderStatusCancelled, "Order cancelled by user")
		return err
	})
	if err != nil {
		return domain.Order{}, err
	}

	s.afterTransition(ctx, order, from)

	return order, nil
}

// transition applies a validated status change inside the caller's
// transaction. Entering Cancelled restores the reserved stock.
func (s *OrderServiceImpl) transition(ctx context.Context, order domain.Order, to domain.OrderStatus, message string) (domain.Order, error) {
	now := time.Now().UTC()
	change := domain.OrderStatusChange{
		OrderID: order.ID,
		From:    order.OrderStatus,
		To:      to,
		Entry: domain.TimelineEntry{
			Status:    to,
			Message:   message,
			Timestamp: now,
		},
	}

	switch to {
	case domain.OrderStatusDelivered:
		change.DeliveredAt = &now
	case domain.OrderStatusCancelled:
		change.CancelledAt = &now
		if err := s.restoreStock(ctx, order); err != nil {
			return order, err
		}
	}

	if err := s.orderRepo.UpdateOrderStatus(ctx, change); err != nil {
		return order, err
	}

	order.Apply(change)

	payload := dto.OrderStatusUpdate{Status: order.OrderStatus, Timeline: order.Timeline}
	if err := s.addEvent(ctx, domain.EventOrderStatusUpdate, order.ID, order.ID.Hex(), payload); err != nil {
		return order, err
	}

	return order, nil
}

// restoreStock puts every line quantity back. Products deleted since the
// order was placed are skipped so that cancellation is never blocked.
func (s *OrderServiceImpl) restoreStock(ctx context.Context, order domain.Order) error {
	for _, item := range order.OrderItems {
		restored, err := s.productRepo.IncrementStock(ctx, item.Product, item.Quantity)
		if err != nil {
			return err
		}

		if !restored {
			log.Ctx(ctx).Warn().Str("component", "restoreStock").Str("order_id", order.ID.Hex()).
				Str("product_id", item.Product.Hex()).Msg("product not found, skipping stock restore")
		}
	}

	return nil
}

func (s *OrderServiceImpl) afterTransition(ctx context.Context, order domain.Order, from domain.OrderStatus) {
	metrics.OrderStatusTransitions.WithLabelValues(string(from), string(order.OrderStatus)).Inc()
	log.Ctx(ctx).Info().Str("component", "OrderStatusTransition").Str("order_id", order.ID.Hex()).
		Str("from", string(from)).Str("to", string(order.OrderStatus)).Msg("order status updated")
	s.events.Trigger()
}

func (s *OrderServiceImpl) addEvent(ctx context.Context, eventType string, orderID primitive.ObjectID, room string, payload interface{}) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	return s.eventRepo.AddEvent(ctx, domain.OrderEvent{
		EventID:   ulid.Make().String(),
		EventType: eventType,
		OrderID:   orderID,
		Room:      room,
		Payload:   data,
		CreatedAt: time.Now().UTC(),
	})
}

func (s *OrderServiceImpl) GetOrder(ctx context.Context, user domain.User, id string) (order dto.OrderResponse, err error) {
	orderID, err := utils.ParseObjectID(id, errs.ErrOrderNotFound)
	if err != nil {
		return
	}

	found, err := s.orderRepo.GetOrderByID(ctx, orderID)
	if err != nil {
		return
	}

	if found.User != user.ID && !user.IsAdmin() {
		return order, errs.ErrForbidden
	}

	populated, err := s.populateUsers(ctx, []domain.Order{found}, user.IsAdmin())
	if err != nil {
		return
	}

	return populated[0], nil
}

func (s *OrderServiceImpl) GetMyOrders(ctx context.Context, user domain.User) (data []domain.Order, err error) {
	return s.orderRepo.GetOrdersByUser(ctx, user.ID)
}

func (s *OrderServiceImpl) GetAllOrders(ctx context.Context) (resp dto.AdminOrdersResponse, err error) {
	orders, err := s.orderRepo.GetOrders(ctx)
	if err != nil {
		return
	}

	amounts := make([]float64, len(orders))
	for i, order := range orders {
		amounts[i] = order.TotalPrice
	}

	resp.Orders, err = s.populateUsers(ctx, orders, true)
	if err != nil {
		return
	}

	resp.TotalAmount = sumTotals(amounts)
	resp.TotalOrders = len(orders)

	return resp, nil
}

func (s *OrderServiceImpl) populateUsers(ctx context.Context, orders []domain.Order, withAllowedStatuses bool) ([]dto.OrderResponse, error) {
	ids := make([]primitive.ObjectID, 0, len(orders))
	seen := make(map[primitive.ObjectID]struct{}, len(orders))
	for _, order := range orders {
		if _, ok := seen[order.User]; !ok {
			seen[order.User] = struct{}{}
			ids = append(ids, order.User)
		}
	}

	users, err := s.userRepo.GetUsersByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	summaries := make(map[primitive.ObjectID]*dto.UserSummary, len(users))
	for _, u := range users {
		summaries[u.ID] = &dto.UserSummary{ID: u.ID.Hex(), Name: u.Name, Email: u.Email}
	}

	resp := make([]dto.OrderResponse, len(orders))
	for i, order := range orders {
		resp[i] = dto.OrderResponse{Order: order, User: summaries[order.User]}
		if withAllowedStatuses {
			resp[i].AllowedStatuses = order.OrderStatus.NextStatuses()
		}
	}

	return resp, nil
}

func (s *OrderServiceImpl) DeleteOrder(ctx context.Context, id string) (err error) {
	orderID, err := utils.ParseObjectID(id, errs.ErrOrderNotFound)
	if err != nil {
		return
	}

	return s.orderRepo.DeleteOrder(ctx, orderID)
}
