package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	apperrors "github.com/ishitasahu1112-gif/PrettyYou-Website/common/errors"
	"github.com/ishitasahu1112-gif/PrettyYou-Website/models"
	"github.com/ishitasahu1112-gif/PrettyYou-Website/repository"
)

// CartService manages per-customer carts against the durable Redis cache.
// Every mutation is flushed before returning; a rejected mutation leaves the
// stored cart untouched.
type CartService struct {
	carts  repository.CartRepository
	logger *zap.Logger
}

func NewCartService(carts repository.CartRepository, logger *zap.Logger) *CartService {
	return &CartService{
		carts:  carts,
		logger: logger,
	}
}

// GetCart returns the user's cart, or an empty one if none is stored.
func (s *CartService) GetCart(ctx context.Context, userID string) (*models.Cart, error) {
	cart, err := s.carts.GetCart(ctx, userID)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrPersistence, err)
	}
	if cart == nil {
		cart = &models.Cart{UserID: userID, Items: []models.CartLine{}}
	}
	return cart, nil
}

// AddItem puts qty units of product into the cart, merging into an existing
// line. The product's stock, when defined, is a hard ceiling on the
// post-increment quantity; a violation rejects the call without touching
// the cart.
func (s *CartService) AddItem(ctx context.Context, userID string, product *models.Product, qty int) (*models.Cart, error) {
	if qty < 1 {
		qty = 1
	}

	cart, err := s.GetCart(ctx, userID)
	if err != nil {
		return nil, err
	}

	next := qty
	if i := cart.Line(product.ID); i >= 0 {
		next = cart.Items[i].Quantity + qty
	}

	if product.Stock != nil && next > *product.Stock {
		if *product.Stock <= 0 {
			return nil, apperrors.Wrap(apperrors.ErrOutOfStock,
				fmt.Errorf("product %s is out of stock", product.ID))
		}
		return nil, apperrors.Wrap(apperrors.ErrOutOfStock,
			fmt.Errorf("only %d of product %s available", *product.Stock, product.ID))
	}

	if i := cart.Line(product.ID); i >= 0 {
		cart.Items[i].Quantity = next
		cart.Items[i].Stock = product.Stock
	} else {
		cart.Items = append(cart.Items, models.CartLine{
			ProductID: product.ID,
			Name:      product.Name,
			Price:     product.Price,
			Category:  product.Category,
			Image:     product.Image,
			Stock:     product.Stock,
			Quantity:  qty,
		})
	}

	if err := s.carts.SaveCart(ctx, cart); err != nil {
		return nil, apperrors.Wrap(apperrors.ErrPersistence, err)
	}
	return cart, nil
}

// RemoveItem drops the line for productID. Removing an absent line is a
// successful no-op.
func (s *CartService) RemoveItem(ctx context.Context, userID, productID string) (*models.Cart, error) {
	cart, err := s.GetCart(ctx, userID)
	if err != nil {
		return nil, err
	}

	i := cart.Line(productID)
	if i < 0 {
		return cart, nil
	}
	cart.Items = append(cart.Items[:i], cart.Items[i+1:]...)

	if err := s.carts.SaveCart(ctx, cart); err != nil {
		return nil, apperrors.Wrap(apperrors.ErrPersistence, err)
	}
	return cart, nil
}

// SetQuantity replaces the quantity of an existing line. qty below one
// removes the line. maxStock is a caller-supplied ceiling checked here; the
// ceiling captured at add time stays authoritative and is re-validated at
// checkout.
func (s *CartService) SetQuantity(ctx context.Context, userID, productID string, qty int, maxStock *int) (*models.Cart, error) {
	if qty < 1 {
		return s.RemoveItem(ctx, userID, productID)
	}

	if maxStock != nil && qty > *maxStock {
		return nil, apperrors.Wrap(apperrors.ErrOutOfStock,
			fmt.Errorf("only %d of product %s available", *maxStock, productID))
	}

	cart, err := s.GetCart(ctx, userID)
	if err != nil {
		return nil, err
	}

	i := cart.Line(productID)
	if i < 0 {
		return cart, nil
	}
	cart.Items[i].Quantity = qty

	if err := s.carts.SaveCart(ctx, cart); err != nil {
		return nil, apperrors.Wrap(apperrors.ErrPersistence, err)
	}
	return cart, nil
}

// Clear deletes the stored cart.
func (s *CartService) Clear(ctx context.Context, userID string) error {
	if err := s.carts.DeleteCart(ctx, userID); err != nil {
		return apperrors.Wrap(apperrors.ErrPersistence, err)
	}
	return nil
}
