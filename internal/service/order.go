package service

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"math"
	"strings"

	"restoapi/internal/model"
	"restoapi/internal/repository"
	"restoapi/internal/statemachine"
)

type CheckoutInput struct {
	Discount     float64
	RestaurantID string
	TableNumber  string
	CustomerName string
}

type OrderListQuery struct {
	Status model.OrderStatus
	Query  string
	Page   int
	Limit  int
}

type OrderListResult struct {
	Items      []model.Order `json:"items"`
	Pagination Pagination    `json:"pagination"`
}

type OrderService interface {
	// CreateFromCart turns the caller's cart into an order and empties the cart.
	CreateFromCart(ctx context.Context, caller *Caller, in CheckoutInput) (*model.Order, error)
	Mine(ctx context.Context, caller *Caller) ([]model.Order, error)
	// GetOwned hides orders of other users behind ErrOrderNotFound.
	GetOwned(ctx context.Context, caller *Caller, id string) (*model.Order, error)
	Get(ctx context.Context, id string) (*model.Order, error)
	List(ctx context.Context, q OrderListQuery) (*OrderListResult, error)
	UpdateStatus(ctx context.Context, id string, to model.OrderStatus) (*model.Order, error)
}

type orderService struct {
	tx          repository.Transactor
	orders      repository.OrderRepository
	carts       repository.CartRepository
	restaurants repository.RestaurantRepository
	log         *slog.Logger
}

func NewOrderService(tx repository.Transactor, orders repository.OrderRepository, carts repository.CartRepository, restaurants repository.RestaurantRepository, log *slog.Logger) OrderService {
	return &orderService{tx: tx, orders: orders, carts: carts, restaurants: restaurants, log: log}
}

func (s *orderService) CreateFromCart(ctx context.Context, caller *Caller, in CheckoutInput) (*model.Order, error) {
	var out *model.Order
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		cart, err := s.carts.GetOrCreate(ctx, caller.UserID)
		if err != nil {
			return err
		}
		if len(cart.Items) == 0 {
			return ErrCartEmpty
		}

		o := &model.Order{
			UserID:       caller.UserID,
			Items:        make([]model.OrderItem, 0, len(cart.Items)),
			Subtotal:     cart.Subtotal(),
			Discount:     in.Discount,
			Status:       model.OrderPending,
			CustomerName: strings.TrimSpace(in.CustomerName),
			TableNumber:  strings.TrimSpace(in.TableNumber),
		}
		for _, it := range cart.Items {
			o.Items = append(o.Items, model.OrderItem{
				MenuItemID: it.MenuItemID,
				Name:       it.Name,
				Price:      it.Price,
				Quantity:   it.Quantity,
				Notes:      it.Notes,
				Total:      it.Price * float64(it.Quantity),
			})
		}
		o.Total = math.Max(0, o.Subtotal-o.Discount+o.Tax)

		if in.RestaurantID != "" {
			if _, err := findRestaurant(ctx, s.restaurants, in.RestaurantID); err != nil {
				return err
			}
			id := in.RestaurantID
			o.RestaurantID = &id
		}

		out, err = s.orders.Create(ctx, o)
		if err != nil {
			return err
		}
		_, err = s.carts.SaveItems(ctx, cart.ID, []model.CartItem{})
		return err
	})
	if err != nil {
		return nil, err
	}

	s.log.InfoContext(ctx, "order_created", "order_id", out.ID, "user_id", out.UserID, "total", out.Total)
	return out, nil
}

func (s *orderService) Mine(ctx context.Context, caller *Caller) ([]model.Order, error) {
	return s.orders.ListByUser(ctx, caller.UserID)
}

func (s *orderService) GetOwned(ctx context.Context, caller *Caller, id string) (*model.Order, error) {
	o, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if caller == nil || o.UserID != caller.UserID {
		return nil, ErrOrderNotFound
	}
	return o, nil
}

func (s *orderService) Get(ctx context.Context, id string) (*model.Order, error) {
	if id == "" {
		return nil, ErrIDRequired
	}
	return findOrder(ctx, s.orders, id)
}

func findOrder(ctx context.Context, repo repository.OrderRepository, id string) (*model.Order, error) {
	o, err := repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}
	return o, nil
}

func (s *orderService) List(ctx context.Context, q OrderListQuery) (*OrderListResult, error) {
	page, limit, offset := pageQuery(q.Page, q.Limit, 20)
	res, err := s.orders.List(ctx, repository.OrderFilter{
		Status: q.Status,
		Query:  strings.TrimSpace(q.Query),
	}, repository.PageQuery{Limit: limit, Offset: offset})
	if err != nil {
		return nil, err
	}
	return &OrderListResult{
		Items:      res.Items,
		Pagination: Pagination{Page: page, Limit: limit, Total: res.Total},
	}, nil
}

func (s *orderService) UpdateStatus(ctx context.Context, id string, to model.OrderStatus) (*model.Order, error) {
	o, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := statemachine.CanTransitionOrder(o.Status, to, statemachine.ActorStaff); err != nil {
		return nil, err
	}

	updated, err := s.orders.UpdateStatus(ctx, id, o.Status, to)
	if err != nil {
		if errors.Is(err, repository.ErrConflict) {
			return nil, ErrStatusChanged
		}
		return nil, err
	}
	s.log.InfoContext(ctx, "order_status_changed", "order_id", id, "from", o.Status, "to", to)
	return updated, nil
}
