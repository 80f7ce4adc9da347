// Package pricing derives the displayed prices of a product from its list
// price and the discount chain (category, subcategory, PIX). Prices are
// computed on demand from immutable inputs, never stored.
package pricing

import (
	"github.com/shopspring/decimal"

	"github.com/Edu-213/Arkos-Market/models"
)

// Quote carries every derived price of a single product, rounded to cents.
type Quote struct {
	ListPrice         float64 `json:"listPrice"`
	FinalPrice        float64 `json:"finalPrice"`
	PixPrice          float64 `json:"pixPrice"`
	FinalPriceWithPix float64 `json:"finalPriceWithPix"`
	InstallmentValue  float64 `json:"installmentValue,omitempty"`
	MaxInstallments   int     `json:"maxInstallments,omitempty"`
}

var hundred = decimal.NewFromInt(100)

// applyDiscount takes a percentage off a price. Discounts stack
// sequentially: each one is a fraction of the already-discounted price.
func applyDiscount(price decimal.Decimal, percent float64) decimal.Decimal {
	factor := decimal.NewFromInt(1).Sub(decimal.NewFromFloat(percent).Div(hundred))
	return price.Mul(factor)
}

// Compute derives the price chain. Discount percentages are expected in
// [0,100]; out-of-range values are the caller's responsibility to reject
// (request validation does this before anything reaches here).
func Compute(price, categoryDiscount, subcategoryDiscount, pixDiscount float64, maxInstallments int) Quote {
	list := decimal.NewFromFloat(price)

	final := applyDiscount(list, categoryDiscount)
	final = applyDiscount(final, subcategoryDiscount)

	pix := applyDiscount(list, pixDiscount)
	finalWithPix := applyDiscount(final, pixDiscount)

	quote := Quote{
		ListPrice:         round2(list),
		FinalPrice:        round2(final),
		PixPrice:          round2(pix),
		FinalPriceWithPix: round2(finalWithPix),
	}

	if maxInstallments > 0 {
		quote.MaxInstallments = maxInstallments
		quote.InstallmentValue = round2(final.Div(decimal.NewFromInt(int64(maxInstallments))))
	}

	return quote
}

// QuoteFor builds the quote of a product given its (possibly missing)
// category and subcategory records.
func QuoteFor(p models.Product, category *models.Category, subcategory *models.Subcategory) Quote {
	var categoryDiscount, subcategoryDiscount float64
	if category != nil {
		categoryDiscount = category.Discount
	}
	if subcategory != nil {
		subcategoryDiscount = subcategory.Discount
	}
	return Compute(p.Price, categoryDiscount, subcategoryDiscount, p.PixDiscount, p.MaxInstallments)
}

func round2(d decimal.Decimal) float64 {
	f, _ := d.Round(2).Float64()
	return f
}
