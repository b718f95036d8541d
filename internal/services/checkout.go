package services

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/example/visualhealth/internal/models"
	"github.com/example/visualhealth/internal/store"
)

// ErrFeeNotConfigured is returned when a checkout names a wilaya with no
// configured delivery fee. Nothing is persisted in that case.
var ErrFeeNotConfigured = errors.New("no delivery fee configured for this wilaya")

// CheckoutService turns a validated cart into a persisted order.
type CheckoutService struct {
	store store.Store
}

// NewCheckoutService constructs a CheckoutService.
func NewCheckoutService(s store.Store) *CheckoutService {
	return &CheckoutService{store: s}
}

// CheckoutInput is a validated checkout request. Items are client-supplied
// snapshots and are NOT re-checked against live catalogue records.
type CheckoutInput struct {
	UserID  string
	Items   []models.OrderItem
	Address models.Address
	Wilaya  string
}

// CheckoutResult reports the persisted order and its computed amounts.
type CheckoutResult struct {
	OrderID     string
	Total       float64
	DeliveryFee float64
}

// Checkout computes subtotal and total server-side, resolves the delivery
// fee by wilaya (case-insensitive exact match) and persists the order with
// its item and address snapshots. Fee resolution failure prevents any
// persistence.
func (s *CheckoutService) Checkout(ctx context.Context, in CheckoutInput) (*CheckoutResult, error) {
	var subtotal float64
	for _, item := range in.Items {
		subtotal += item.Price * float64(item.Quantity)
	}

	var fee models.DeliveryFee
	err := s.store.FindOne(ctx, store.ColDeliveryFees, bson.M{"wilaya": store.ExactInsensitive(in.Wilaya)}, &fee)
	if errors.Is(err, store.ErrNotFound) {
		return nil, ErrFeeNotConfigured
	}
	if err != nil {
		return nil, err
	}

	total := subtotal + fee.Fee
	now := time.Now().UTC()

	order := models.Order{
		UserID:      in.UserID,
		Items:       in.Items,
		Address:     in.Address,
		Wilaya:      in.Wilaya,
		Subtotal:    subtotal,
		DeliveryFee: fee.Fee,
		Total:       total,
		Status:      models.StatusEnPreparation,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	id, err := s.store.InsertOne(ctx, store.ColOrders, order)
	if err != nil {
		return nil, err
	}

	return &CheckoutResult{OrderID: id, Total: total, DeliveryFee: fee.Fee}, nil
}
