// Package cart holds the reconciliation logic between the anonymous,
// client-local cart and the cart persisted for a logged-in user.
package cart

import "github.com/Edu-213/Arkos-Market/models"

// LocalItem is exactly the shape the browser keeps in local storage:
// a JSON array of {productId, quantity}.
type LocalItem struct {
	ProductID string `json:"productId" validate:"required"`
	Quantity  int    `json:"quantity" validate:"required,min=1"`
}

type MergeStatus string

const (
	StatusAdded   MergeStatus = "added"
	StatusMerged  MergeStatus = "merged"
	StatusCapped  MergeStatus = "capped"
	StatusSkipped MergeStatus = "skipped"
)

// MergeResult reports what happened to one incoming item, so skipped
// entries are visible to the caller instead of silently dropped.
type MergeResult struct {
	ProductID string      `json:"productId"`
	Status    MergeStatus `json:"status"`
	Quantity  int         `json:"quantity,omitempty"`
	Reason    string      `json:"reason,omitempty"`
}

// Clamp keeps a quantity within [1, limit]. A limit below 1 means the
// product carries no purchase cap.
func Clamp(quantity, limit int) int {
	if quantity < 1 {
		return 1
	}
	if limit >= 1 && quantity > limit {
		return limit
	}
	return quantity
}

// Merge folds the incoming local items into the existing cart lines.
// Incoming duplicates are collapsed by summing before anything else, every
// resulting quantity is clamped to the product's purchase cap, and an
// existing line already above the cap is pinned to it rather than grown.
// Items whose product is not in the lookup map are skipped and reported.
func Merge(existing []models.CartItem, incoming []LocalItem, products map[string]models.Product) ([]models.CartItem, []MergeResult) {
	items := make([]models.CartItem, len(existing))
	copy(items, existing)

	results := make([]MergeResult, 0, len(incoming))

	for _, item := range dedupe(incoming) {
		if item.Quantity < 1 {
			results = append(results, MergeResult{ProductID: item.ProductID, Status: StatusSkipped, Reason: "invalid quantity"})
			continue
		}

		product, ok := products[item.ProductID]
		if !ok {
			results = append(results, MergeResult{ProductID: item.ProductID, Status: StatusSkipped, Reason: "product not found"})
			continue
		}
		limit := product.MaxPurchasedLimit

		index := -1
		for i := range items {
			if items[i].ProductID.Hex() == item.ProductID {
				index = i
				break
			}
		}

		if index >= 0 {
			current := items[index].Quantity
			merged := current
			capped := false
			if limit >= 1 && current > limit {
				// Cap lowered after the line was written: pin, don't add
				merged = limit
				capped = true
			} else {
				wanted := current + item.Quantity
				merged = Clamp(wanted, limit)
				capped = merged < wanted
			}
			items[index].Quantity = merged

			status := StatusMerged
			if capped {
				status = StatusCapped
			}
			results = append(results, MergeResult{ProductID: item.ProductID, Status: status, Quantity: merged})
			continue
		}

		quantity := Clamp(item.Quantity, limit)
		items = append(items, models.CartItem{ProductID: product.ID, Quantity: quantity})

		status := StatusAdded
		if quantity < item.Quantity {
			status = StatusCapped
		}
		results = append(results, MergeResult{ProductID: item.ProductID, Status: status, Quantity: quantity})
	}

	return items, results
}

// dedupe collapses repeated productIds by summing their quantities,
// keeping first-seen order.
func dedupe(incoming []LocalItem) []LocalItem {
	byID := make(map[string]int, len(incoming))
	order := make([]LocalItem, 0, len(incoming))

	for _, item := range incoming {
		if i, seen := byID[item.ProductID]; seen {
			order[i].Quantity += item.Quantity
			continue
		}
		byID[item.ProductID] = len(order)
		order = append(order, item)
	}

	return order
}
