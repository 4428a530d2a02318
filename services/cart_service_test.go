package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	apperrors "github.com/ishitasahu1112-gif/PrettyYou-Website/common/errors"
	"github.com/ishitasahu1112-gif/PrettyYou-Website/models"
)

// ---- in-memory cart store ----

type memCartStore struct {
	carts      map[string]*models.Cart
	saveErr    error
	deletes    int
	deleteErr  error
	saveCalled int
}

func newMemCartStore() *memCartStore {
	return &memCartStore{carts: map[string]*models.Cart{}}
}

func (m *memCartStore) GetCart(_ context.Context, userID string) (*models.Cart, error) {
	cart, ok := m.carts[userID]
	if !ok {
		return nil, nil
	}
	// Hand back a copy, like a real store would after JSON round-tripping.
	clone := *cart
	clone.Items = append([]models.CartLine(nil), cart.Items...)
	return &clone, nil
}

func (m *memCartStore) SaveCart(_ context.Context, cart *models.Cart) error {
	m.saveCalled++
	if m.saveErr != nil {
		return m.saveErr
	}
	clone := *cart
	clone.Items = append([]models.CartLine(nil), cart.Items...)
	m.carts[cart.UserID] = &clone
	return nil
}

func (m *memCartStore) DeleteCart(_ context.Context, userID string) error {
	m.deletes++
	if m.deleteErr != nil {
		return m.deleteErr
	}
	delete(m.carts, userID)
	return nil
}

func intPtr(n int) *int { return &n }

func newCartService(store *memCartStore) *CartService {
	return NewCartService(store, zap.NewNop())
}

// ---- tests ----

func TestAddItem_NewLineCapturesSnapshot(t *testing.T) {
	store := newMemCartStore()
	svc := newCartService(store)

	product := &models.Product{ID: "p1", Name: "Gold Ring", Price: 120, Category: "Rings", Stock: intPtr(5)}
	cart, err := svc.AddItem(context.Background(), "u1", product, 2)

	require.NoError(t, err)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, "Gold Ring", cart.Items[0].Name)
	assert.Equal(t, 120.0, cart.Items[0].Price)
	assert.Equal(t, 2, cart.Items[0].Quantity)
	require.NotNil(t, cart.Items[0].Stock)
	assert.Equal(t, 5, *cart.Items[0].Stock)

	// Mutation was flushed before returning.
	stored, _ := store.GetCart(context.Background(), "u1")
	require.NotNil(t, stored)
	assert.Equal(t, 2, stored.Items[0].Quantity)
}

func TestAddItem_MergesExistingLine(t *testing.T) {
	store := newMemCartStore()
	svc := newCartService(store)
	product := &models.Product{ID: "p1", Price: 10, Stock: intPtr(5)}

	_, err := svc.AddItem(context.Background(), "u1", product, 1)
	require.NoError(t, err)
	cart, err := svc.AddItem(context.Background(), "u1", product, 2)
	require.NoError(t, err)

	require.Len(t, cart.Items, 1)
	assert.Equal(t, 3, cart.Items[0].Quantity)
}

func TestAddItem_StockCeiling(t *testing.T) {
	// Scenario: stock 2, three sequential adds; the third must fail and the
	// cart must still hold quantity 2.
	store := newMemCartStore()
	svc := newCartService(store)
	product := &models.Product{ID: "p1", Price: 50, Stock: intPtr(2)}

	_, err := svc.AddItem(context.Background(), "u1", product, 1)
	require.NoError(t, err)
	_, err = svc.AddItem(context.Background(), "u1", product, 1)
	require.NoError(t, err)

	_, err = svc.AddItem(context.Background(), "u1", product, 1)
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrOutOfStock))

	stored, _ := store.GetCart(context.Background(), "u1")
	require.Len(t, stored.Items, 1)
	assert.Equal(t, 2, stored.Items[0].Quantity)
}

func TestAddItem_ZeroStockAlwaysFails(t *testing.T) {
	store := newMemCartStore()
	svc := newCartService(store)
	product := &models.Product{ID: "p1", Stock: intPtr(0)}

	_, err := svc.AddItem(context.Background(), "u1", product, 1)
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrOutOfStock))

	// Cart unchanged: nothing was ever stored.
	stored, _ := store.GetCart(context.Background(), "u1")
	assert.Nil(t, stored)
	assert.Equal(t, 0, store.saveCalled)
}

func TestAddItem_UnlimitedLegacyProduct(t *testing.T) {
	store := newMemCartStore()
	svc := newCartService(store)
	product := &models.Product{ID: "legacy", Price: 15}

	cart, err := svc.AddItem(context.Background(), "u1", product, 40)
	require.NoError(t, err)
	assert.Equal(t, 40, cart.Items[0].Quantity)
	assert.Nil(t, cart.Items[0].Stock)
}

func TestRemoveItem_Idempotent(t *testing.T) {
	store := newMemCartStore()
	svc := newCartService(store)
	product := &models.Product{ID: "p1", Price: 10}

	_, err := svc.AddItem(context.Background(), "u1", product, 1)
	require.NoError(t, err)

	cart, err := svc.RemoveItem(context.Background(), "u1", "p1")
	require.NoError(t, err)
	assert.Empty(t, cart.Items)

	// Removing again, and removing something never added, are both no-ops.
	cart, err = svc.RemoveItem(context.Background(), "u1", "p1")
	require.NoError(t, err)
	assert.Empty(t, cart.Items)

	_, err = svc.RemoveItem(context.Background(), "u1", "never-added")
	assert.NoError(t, err)
}

func TestSetQuantity(t *testing.T) {
	store := newMemCartStore()
	svc := newCartService(store)
	product := &models.Product{ID: "p1", Price: 10, Stock: intPtr(10)}
	_, err := svc.AddItem(context.Background(), "u1", product, 1)
	require.NoError(t, err)

	cart, err := svc.SetQuantity(context.Background(), "u1", "p1", 4, nil)
	require.NoError(t, err)
	assert.Equal(t, 4, cart.Items[0].Quantity)

	// Caller-supplied ceiling rejects without touching the cart.
	_, err = svc.SetQuantity(context.Background(), "u1", "p1", 9, intPtr(5))
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrOutOfStock))
	stored, _ := store.GetCart(context.Background(), "u1")
	assert.Equal(t, 4, stored.Items[0].Quantity)

	// Quantity below one removes the line.
	cart, err = svc.SetQuantity(context.Background(), "u1", "p1", 0, nil)
	require.NoError(t, err)
	assert.Empty(t, cart.Items)
}

func TestCartTotalsRecomputed(t *testing.T) {
	store := newMemCartStore()
	svc := newCartService(store)

	_, err := svc.AddItem(context.Background(), "u1", &models.Product{ID: "p1", Price: 120}, 1)
	require.NoError(t, err)
	cart, err := svc.AddItem(context.Background(), "u1", &models.Product{ID: "p2", Price: 30}, 2)
	require.NoError(t, err)

	assert.Equal(t, 180.0, cart.Total())
	assert.Equal(t, 3, cart.Count())

	cart, err = svc.RemoveItem(context.Background(), "u1", "p2")
	require.NoError(t, err)
	assert.Equal(t, 120.0, cart.Total())
	assert.Equal(t, 1, cart.Count())
}

func TestAddItem_SaveFailureIsPersistenceError(t *testing.T) {
	store := newMemCartStore()
	store.saveErr = errors.New("redis down")
	svc := newCartService(store)

	_, err := svc.AddItem(context.Background(), "u1", &models.Product{ID: "p1", Price: 1}, 1)
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrPersistence))
}
