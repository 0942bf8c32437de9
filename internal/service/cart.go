package service

import (
	"context"
	"slices"
	"strings"

	"restoapi/internal/model"
	"restoapi/internal/repository"
)

type AddCartItemInput struct {
	MenuItemID string
	Quantity   int
	Notes      string
}

// CartService edits the caller's single cart.
type CartService interface {
	// Get returns the cart, creating an empty one on first use.
	Get(ctx context.Context, userID string) (*model.Cart, error)
	// AddItem merges quantities when the item is already in the cart.
	AddItem(ctx context.Context, userID string, in AddCartItemInput) (*model.Cart, error)
	UpdateItem(ctx context.Context, userID, menuItemID string, quantity int, notes *string) (*model.Cart, error)
	RemoveItem(ctx context.Context, userID, menuItemID string) (*model.Cart, error)
	Clear(ctx context.Context, userID string) (*model.Cart, error)
}

type cartService struct {
	carts repository.CartRepository
	menu  repository.MenuRepository
}

func NewCartService(carts repository.CartRepository, menu repository.MenuRepository) CartService {
	return &cartService{carts: carts, menu: menu}
}

func (s *cartService) Get(ctx context.Context, userID string) (*model.Cart, error) {
	return s.carts.GetOrCreate(ctx, userID)
}

func (s *cartService) AddItem(ctx context.Context, userID string, in AddCartItemInput) (*model.Cart, error) {
	item, err := findMenuItem(ctx, s.menu, in.MenuItemID)
	if err != nil {
		return nil, err
	}
	if !item.IsAvailable {
		return nil, ErrMenuItemNotFound
	}

	cart, err := s.carts.GetOrCreate(ctx, userID)
	if err != nil {
		return nil, err
	}

	items := slices.Clone(cart.Items)
	notes := strings.TrimSpace(in.Notes)
	if i := indexOfItem(items, item.ID); i >= 0 {
		items[i].Name = item.Name
		items[i].Price = item.Price
		items[i].Quantity += in.Quantity
		if notes != "" {
			items[i].Notes = notes
		}
	} else {
		items = append(items, model.CartItem{
			MenuItemID: item.ID,
			Name:       item.Name,
			Price:      item.Price,
			Quantity:   in.Quantity,
			Notes:      notes,
		})
	}
	return s.carts.SaveItems(ctx, cart.ID, items)
}

func (s *cartService) UpdateItem(ctx context.Context, userID, menuItemID string, quantity int, notes *string) (*model.Cart, error) {
	cart, err := s.carts.GetOrCreate(ctx, userID)
	if err != nil {
		return nil, err
	}
	items := slices.Clone(cart.Items)
	i := indexOfItem(items, menuItemID)
	if i < 0 {
		return nil, ErrCartItemNotFound
	}
	items[i].Quantity = quantity
	if notes != nil {
		items[i].Notes = strings.TrimSpace(*notes)
	}
	return s.carts.SaveItems(ctx, cart.ID, items)
}

func (s *cartService) RemoveItem(ctx context.Context, userID, menuItemID string) (*model.Cart, error) {
	cart, err := s.carts.GetOrCreate(ctx, userID)
	if err != nil {
		return nil, err
	}
	i := indexOfItem(cart.Items, menuItemID)
	if i < 0 {
		return nil, ErrCartItemNotFound
	}
	return s.carts.SaveItems(ctx, cart.ID, slices.Delete(slices.Clone(cart.Items), i, i+1))
}

func (s *cartService) Clear(ctx context.Context, userID string) (*model.Cart, error) {
	cart, err := s.carts.GetOrCreate(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.carts.SaveItems(ctx, cart.ID, []model.CartItem{})
}

func indexOfItem(items []model.CartItem, menuItemID string) int {
	return slices.IndexFunc(items, func(it model.CartItem) bool { return it.MenuItemID == menuItemID })
}
