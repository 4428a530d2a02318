package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	apperrors "github.com/ishitasahu1112-gif/PrettyYou-Website/common/errors"
	"github.com/ishitasahu1112-gif/PrettyYou-Website/models"
	"github.com/ishitasahu1112-gif/PrettyYou-Website/repository"
)

// SubmitOrderRequest carries the checkout form. ReceiptImage is the
// client-side downscaled, encoded payment proof; it is mandatory because
// the store has no pay-now path, only "upload proof, await review".
type SubmitOrderRequest struct {
	CustomerEmail   string                 `json:"customer_email" binding:"required,email"`
	CustomerName    string                 `json:"customer_name"`
	ShippingAddress models.ShippingAddress `json:"shipping_address" binding:"required"`
	ReceiptImage    string                 `json:"receipt_image" binding:"required"`
}

// DecisionResult reports a committed admin decision. Degraded is set when
// the in-app notification or the email webhook failed after the status
// write; the decision itself stands regardless.
type DecisionResult struct {
	Order    *models.Order `json:"order"`
	Degraded bool          `json:"-"`
	Warning  string        `json:"warning,omitempty"`
}

// DecisionNotifier fans a committed decision out to the customer.
type DecisionNotifier interface {
	NotifyDecision(ctx context.Context, order *models.Order) (degraded bool, warning string)
}

// OrderService is the order lifecycle engine: it owns the Pending Approval
// -> Approved | Rejected state machine and the side effects around it.
type OrderService struct {
	orders   repository.OrderRepository
	products repository.ProductRepository
	carts    repository.CartRepository
	notifier DecisionNotifier
	logger   *zap.Logger
}

func NewOrderService(
	orders repository.OrderRepository,
	products repository.ProductRepository,
	carts repository.CartRepository,
	notifier DecisionNotifier,
	logger *zap.Logger,
) *OrderService {
	return &OrderService{
		orders:   orders,
		products: products,
		carts:    carts,
		notifier: notifier,
		logger:   logger,
	}
}

// SubmitOrder creates a Pending Approval order from the user's cart.
//
// Stock is re-validated against the live catalog, not the cart snapshot,
// which narrows but does not close the race between add-to-cart and
// checkout. The check is advisory: no reservation is taken, so two
// concurrent checkouts against the same low-stock product may both pass.
// Stock is also never decremented on approval; that mirrors the store's
// existing behavior of treating stock as a purchase ceiling, not a counter.
//
// On any failure no order record is created and the cart stays intact; the
// cart is cleared exactly once, only after the order write succeeds.
func (s *OrderService) SubmitOrder(ctx context.Context, userID string, req *SubmitOrderRequest) (*models.Order, error) {
	if err := validateSubmit(userID, req); err != nil {
		return nil, err
	}

	cart, err := s.carts.GetCart(ctx, userID)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrPersistence, err)
	}
	if cart == nil || len(cart.Items) == 0 {
		return nil, apperrors.Wrap(apperrors.ErrValidation, errors.New("cart is empty"))
	}

	for _, line := range cart.Items {
		product, err := s.products.FindByID(ctx, line.ProductID)
		if err != nil {
			if errors.Is(err, mongo.ErrNoDocuments) {
				return nil, apperrors.Wrap(apperrors.ErrOutOfStock,
					fmt.Errorf("product %s is no longer available", line.ProductID))
			}
			return nil, apperrors.Wrap(apperrors.ErrPersistence, err)
		}
		if !product.InStock(line.Quantity) {
			return nil, apperrors.Wrap(apperrors.ErrOutOfStock,
				fmt.Errorf("only %d of %s available", *product.Stock, product.Name))
		}
	}

	// Items and total come from the cart's add-time snapshot; catalog price
	// edits after this point never touch the placed order.
	items := make([]models.OrderItem, 0, len(cart.Items))
	for _, line := range cart.Items {
		items = append(items, models.OrderItem{
			ProductID: line.ProductID,
			Name:      line.Name,
			Price:     line.Price,
			Quantity:  line.Quantity,
			Category:  line.Category,
			Image:     line.Image,
		})
	}

	order := &models.Order{
		ID:              uuid.NewString(),
		UserID:          userID,
		CustomerEmail:   req.CustomerEmail,
		CustomerName:    req.CustomerName,
		ShippingAddress: req.ShippingAddress,
		Items:           items,
		TotalAmount:     cart.Total(),
		ReceiptImage:    req.ReceiptImage,
		Status:          models.StatusPendingApproval,
	}

	if err := s.orders.Create(ctx, order); err != nil {
		return nil, apperrors.Wrap(apperrors.ErrPersistence, err)
	}

	if err := s.carts.DeleteCart(ctx, userID); err != nil {
		// The order exists; a stale cart is recoverable, so log and move on.
		s.logger.Warn("order created but cart clear failed",
			zap.String("order_id", order.ID),
			zap.String("user_id", userID),
			zap.Error(err),
		)
	}

	s.logger.Info("order submitted",
		zap.String("order_id", order.ID),
		zap.String("user_id", userID),
		zap.Float64("total_amount", order.TotalAmount),
	)
	return order, nil
}

// DecideOrder moves a Pending Approval order to Approved or Rejected and
// fans the decision out. The status write is a conditional update, so of
// two concurrent deciders exactly one wins; the loser and any later call
// get InvalidTransition. Fan-out failure never rolls the decision back.
func (s *OrderService) DecideOrder(ctx context.Context, orderID, decision, adminComment string) (*DecisionResult, error) {
	if orderID == "" {
		return nil, apperrors.Wrap(apperrors.ErrValidation, errors.New("order id is required"))
	}
	if !models.IsDecision(decision) {
		return nil, apperrors.Wrap(apperrors.ErrValidation,
			fmt.Errorf("decision must be %q or %q", models.StatusApproved, models.StatusRejected))
	}

	order, err := s.orders.DecideIfPending(ctx, orderID, decision, strings.TrimSpace(adminComment))
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, s.classifyDecideMiss(ctx, orderID)
		}
		return nil, apperrors.Wrap(apperrors.ErrPersistence, err)
	}

	s.logger.Info("order decided",
		zap.String("order_id", order.ID),
		zap.String("status", order.Status),
	)

	degraded, warning := s.notifier.NotifyDecision(ctx, order)
	return &DecisionResult{
		Order:    order,
		Degraded: degraded,
		Warning:  warning,
	}, nil
}

// classifyDecideMiss distinguishes a missing order from one that is already
// terminal after the conditional update matched nothing.
func (s *OrderService) classifyDecideMiss(ctx context.Context, orderID string) error {
	order, err := s.orders.FindByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return apperrors.Wrap(apperrors.ErrNotFound, fmt.Errorf("order %s not found", orderID))
		}
		return apperrors.Wrap(apperrors.ErrPersistence, err)
	}
	return apperrors.Wrap(apperrors.ErrInvalidTransition,
		fmt.Errorf("order %s is already %s", orderID, order.Status))
}

// GetUserOrders returns the user's orders, newest first.
func (s *OrderService) GetUserOrders(ctx context.Context, userID string) ([]models.Order, error) {
	orders, err := s.orders.FindByUserID(ctx, userID)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrPersistence, err)
	}
	return orders, nil
}

// GetOrderByID returns one order scoped to its owner.
func (s *OrderService) GetOrderByID(ctx context.Context, userID, orderID string) (*models.Order, error) {
	order, err := s.orders.FindByIDAndUserID(ctx, orderID, userID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperrors.Wrap(apperrors.ErrNotFound, fmt.Errorf("order %s not found", orderID))
		}
		return nil, apperrors.Wrap(apperrors.ErrPersistence, err)
	}
	return order, nil
}

// GetAllOrders returns every order, newest first. Admin only.
func (s *OrderService) GetAllOrders(ctx context.Context) ([]models.Order, error) {
	orders, err := s.orders.FindAll(ctx)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrPersistence, err)
	}
	return orders, nil
}

func validateSubmit(userID string, req *SubmitOrderRequest) error {
	switch {
	case userID == "":
		return apperrors.Wrap(apperrors.ErrValidation, errors.New("user id is required"))
	case req == nil:
		return apperrors.Wrap(apperrors.ErrValidation, errors.New("request body is required"))
	case strings.TrimSpace(req.CustomerEmail) == "":
		return apperrors.Wrap(apperrors.ErrValidation, errors.New("customer email is required"))
	case strings.TrimSpace(req.ReceiptImage) == "":
		return apperrors.Wrap(apperrors.ErrValidation, errors.New("payment receipt is required"))
	case strings.TrimSpace(req.ShippingAddress.Street) == "":
		return apperrors.Wrap(apperrors.ErrValidation, errors.New("shipping street is required"))
	case strings.TrimSpace(req.ShippingAddress.City) == "":
		return apperrors.Wrap(apperrors.ErrValidation, errors.New("shipping city is required"))
	}
	return nil
}
