package responses

import (
	"github.com/Edu-213/Arkos-Market/models"
	"github.com/Edu-213/Arkos-Market/pricing"
)

// ProductView is a product with its hierarchy references populated and the
// derived prices attached. The populated fields shadow the raw ObjectID
// references of the embedded Product in the JSON output.
type ProductView struct {
	models.Product
	Department  *models.Department  `json:"department,omitempty"`
	Category    *models.Category    `json:"category,omitempty"`
	Subcategory *models.Subcategory `json:"subcategory,omitempty"`
	Pricing     pricing.Quote       `json:"pricing"`
}

// NewProductView populates one product from prefetched hierarchy maps and
// computes its price quote.
func NewProductView(p models.Product, departments map[string]*models.Department, categories map[string]*models.Category, subcategories map[string]*models.Subcategory) ProductView {
	view := ProductView{Product: p}
	view.Department = departments[p.Department.Hex()]
	view.Category = categories[p.Category.Hex()]
	view.Subcategory = subcategories[p.Subcategory.Hex()]
	view.Pricing = pricing.QuoteFor(p, view.Category, view.Subcategory)
	return view
}

// CartItemView is a cart line with full product detail, the shape the
// client renders directly.
type CartItemView struct {
	Product  ProductView `json:"product"`
	Quantity int         `json:"quantity"`
}

type CartView struct {
	Items []CartItemView `json:"items"`
}
