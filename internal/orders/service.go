package orders

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"shopapi/internal/pagination"
)

// Service is the order engine: it validates carts against live stock,
// deducts stock and persists orders inside one transaction.
type Service struct {
	store    Store
	events   EventPublisher
	producer string
	log      *logrus.Logger
}

// NewService wires the engine. events may be nil when no broker is
// configured; producer names this service in published envelopes.
func NewService(store Store, events EventPublisher, producer string, log *logrus.Logger) *Service {
	return &Service{store: store, events: events, producer: producer, log: log}
}

// Create turns a non-empty cart into a persisted order. Cart lines are
// processed in input order; each one locks its product, checks stock and
// deducts immediately, so a repeated product can legitimately exhaust stock
// on its second line. Any failure rolls the whole transaction back: either
// every deduction and the order are committed together, or nothing is.
func (s *Service) Create(ctx context.Context, cart []CartItem) (Order, error) {
	if len(cart) == 0 {
		return Order{}, ErrEmptyCart
	}
	for _, line := range cart {
		if line.Quantity < 1 {
			return Order{}, fmt.Errorf("%w: product %s", ErrInvalidQuantity, line.ProductID)
		}
	}

	var order Order
	err := s.store.InTx(ctx, func(tx Tx) error {
		items := make([]OrderItem, 0, len(cart))
		var total float64
		for _, line := range cart {
			p, err := tx.ProductForUpdate(ctx, line.ProductID)
			if err != nil {
				return err
			}
			if p.Stock < line.Quantity {
				return InsufficientStockError{
					ProductID: p.ID,
					Requested: line.Quantity,
					Available: p.Stock,
				}
			}
			if err := tx.DeductStock(ctx, p.ID, line.Quantity); err != nil {
				return err
			}
			items = append(items, OrderItem{
				ProductID:   p.ID,
				ProductName: p.Name,
				Quantity:    line.Quantity,
				Price:       p.Price,
			})
			total += p.Price * float64(line.Quantity)
		}
		order = Order{
			ID:        uuid.NewString(),
			Items:     items,
			Total:     roundCents(total),
			Status:    StatusPending,
			CreatedAt: time.Now().UTC(),
		}
		return tx.InsertOrder(ctx, order)
	})
	if err != nil {
		s.log.Warnf("order rejected: %v", err)
		return Order{}, err
	}

	s.log.Infof("order created: id=%s lines=%d total=%.2f", order.ID, len(order.Items), order.Total)
	s.publishCreated(order)
	return order, nil
}

func (s *Service) Get(ctx context.Context, id string) (Order, error) {
	return s.store.GetOrder(ctx, id)
}

func (s *Service) List(ctx context.Context) ([]Order, error) {
	return s.store.ListOrders(ctx)
}

// ListPage returns one page of orders, newest first. A page past the end
// yields an empty item slice while still reporting the true totals.
func (s *Service) ListPage(ctx context.Context, page, limit int) (pagination.Page[Order], error) {
	page, limit = pagination.Clamp(page, limit)
	total, err := s.store.CountOrders(ctx)
	if err != nil {
		return pagination.Page[Order]{}, err
	}
	offset, pages := pagination.Paginate(total, page, limit)

	items := make([]Order, 0)
	if page <= pages {
		items, err = s.store.ListOrdersPage(ctx, offset, limit)
		if err != nil {
			return pagination.Page[Order]{}, err
		}
	}
	return pagination.Page[Order]{
		Items: items,
		Total: total,
		Page:  page,
		Limit: limit,
		Pages: pages,
	}, nil
}

func (s *Service) publishCreated(o Order) {
	if s.events == nil {
		return
	}
	payload, err := json.Marshal(OrderCreatedPayload{
		OrderID: o.ID,
		Items:   o.Items,
		Total:   o.Total,
		Status:  o.Status,
	})
	if err != nil {
		s.log.Errorf("marshal %s payload: %v", EventOrderCreated, err)
		return
	}
	value, err := json.Marshal(Envelope{
		EventID:    uuid.NewString(),
		EventType:  EventOrderCreated,
		OccurredAt: time.Now().UTC(),
		Producer:   s.producer,
		Payload:    payload,
	})
	if err != nil {
		s.log.Errorf("marshal %s envelope: %v", EventOrderCreated, err)
		return
	}
	s.events.Publish([]byte(o.ID), value)
}

// roundCents rounds half-up to two decimal places.
func roundCents(v float64) float64 {
	return math.Round(v*100) / 100
}
