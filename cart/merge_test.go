package cart_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/Edu-213/Arkos-Market/cart"
	"github.com/Edu-213/Arkos-Market/models"
)

func newProduct(limit int) models.Product {
	return models.Product{ID: primitive.NewObjectID(), MaxPurchasedLimit: limit}
}

func lookup(products ...models.Product) map[string]models.Product {
	m := make(map[string]models.Product, len(products))
	for _, p := range products {
		m[p.ID.Hex()] = p
	}
	return m
}

func TestClamp(t *testing.T) {
	assert.Equal(t, 1, cart.Clamp(0, 5))
	assert.Equal(t, 1, cart.Clamp(-3, 5))
	assert.Equal(t, 3, cart.Clamp(3, 5))
	assert.Equal(t, 5, cart.Clamp(8, 5))
	assert.Equal(t, 8, cart.Clamp(8, 0), "limit below 1 means uncapped")
}

func TestMerge_IntoEmptyCart(t *testing.T) {
	p1 := newProduct(5)
	p2 := newProduct(5)

	items, results := cart.Merge(nil, []cart.LocalItem{
		{ProductID: p1.ID.Hex(), Quantity: 2},
		{ProductID: p2.ID.Hex(), Quantity: 1},
	}, lookup(p1, p2))

	require.Len(t, items, 2)
	assert.Equal(t, p1.ID, items[0].ProductID)
	assert.Equal(t, 2, items[0].Quantity)
	assert.Equal(t, p2.ID, items[1].ProductID)
	assert.Equal(t, 1, items[1].Quantity)

	require.Len(t, results, 2)
	assert.Equal(t, cart.StatusAdded, results[0].Status)
	assert.Equal(t, cart.StatusAdded, results[1].Status)
}

func TestMerge_DuplicateEntriesAreSummedThenClamped(t *testing.T) {
	p := newProduct(3)

	items, results := cart.Merge(nil, []cart.LocalItem{
		{ProductID: p.ID.Hex(), Quantity: 2},
		{ProductID: p.ID.Hex(), Quantity: 2},
	}, lookup(p))

	require.Len(t, items, 1)
	assert.Equal(t, 3, items[0].Quantity)

	require.Len(t, results, 1)
	assert.Equal(t, cart.StatusCapped, results[0].Status)
	assert.Equal(t, 3, results[0].Quantity)
}

func TestMerge_SameListTwiceNeverExceedsCap(t *testing.T) {
	p := newProduct(3)
	incoming := []cart.LocalItem{{ProductID: p.ID.Hex(), Quantity: 2}}
	products := lookup(p)

	items, _ := cart.Merge(nil, incoming, products)
	require.Len(t, items, 1)
	assert.Equal(t, 2, items[0].Quantity)

	items, results := cart.Merge(items, incoming, products)
	require.Len(t, items, 1)
	assert.Equal(t, 3, items[0].Quantity, "clamped from 4")
	assert.Equal(t, cart.StatusCapped, results[0].Status)
}

func TestMerge_ExistingLineGrowsWithinCap(t *testing.T) {
	p := newProduct(10)
	existing := []models.CartItem{{ProductID: p.ID, Quantity: 1}}

	items, results := cart.Merge(existing, []cart.LocalItem{{ProductID: p.ID.Hex(), Quantity: 2}}, lookup(p))

	require.Len(t, items, 1)
	assert.Equal(t, 3, items[0].Quantity)
	assert.Equal(t, cart.StatusMerged, results[0].Status)
}

func TestMerge_ExistingQuantityAboveCapIsPinned(t *testing.T) {
	// The cap was lowered after the line was written: pin it, never add
	p := newProduct(3)
	existing := []models.CartItem{{ProductID: p.ID, Quantity: 7}}

	items, results := cart.Merge(existing, []cart.LocalItem{{ProductID: p.ID.Hex(), Quantity: 2}}, lookup(p))

	require.Len(t, items, 1)
	assert.Equal(t, 3, items[0].Quantity)
	assert.Equal(t, cart.StatusCapped, results[0].Status)
}

func TestMerge_UnknownProductIsSkippedAndReported(t *testing.T) {
	p := newProduct(5)
	ghost := primitive.NewObjectID().Hex()

	items, results := cart.Merge(nil, []cart.LocalItem{
		{ProductID: ghost, Quantity: 2},
		{ProductID: p.ID.Hex(), Quantity: 1},
	}, lookup(p))

	require.Len(t, items, 1)
	assert.Equal(t, p.ID, items[0].ProductID)

	require.Len(t, results, 2)
	assert.Equal(t, cart.StatusSkipped, results[0].Status)
	assert.Equal(t, ghost, results[0].ProductID)
	assert.Equal(t, "product not found", results[0].Reason)
	assert.Equal(t, cart.StatusAdded, results[1].Status)
}

func TestMerge_InsertIsClampedToCap(t *testing.T) {
	p := newProduct(2)

	items, results := cart.Merge(nil, []cart.LocalItem{{ProductID: p.ID.Hex(), Quantity: 9}}, lookup(p))

	require.Len(t, items, 1)
	assert.Equal(t, 2, items[0].Quantity)
	assert.Equal(t, cart.StatusCapped, results[0].Status)
}

func TestMerge_DoesNotMutateExistingSlice(t *testing.T) {
	p := newProduct(5)
	existing := []models.CartItem{{ProductID: p.ID, Quantity: 1}}

	_, _ = cart.Merge(existing, []cart.LocalItem{{ProductID: p.ID.Hex(), Quantity: 2}}, lookup(p))

	assert.Equal(t, 1, existing[0].Quantity)
}

func TestMerge_EmptyIncomingLeavesCartUnchanged(t *testing.T) {
	p := newProduct(5)
	existing := []models.CartItem{{ProductID: p.ID, Quantity: 2}}

	items, results := cart.Merge(existing, nil, lookup(p))

	assert.Equal(t, existing, items)
	assert.Empty(t, results)
}
