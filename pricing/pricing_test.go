package pricing_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Edu-213/Arkos-Market/models"
	"github.com/Edu-213/Arkos-Market/pricing"
)

func TestCompute_CategoryAndPixDiscounts(t *testing.T) {
	quote := pricing.Compute(100, 10, 0, 5, 0)

	assert.Equal(t, 100.0, quote.ListPrice)
	assert.Equal(t, 90.0, quote.FinalPrice)
	assert.Equal(t, 95.0, quote.PixPrice)
	assert.Equal(t, 85.5, quote.FinalPriceWithPix)
}

func TestCompute_SequentialStacking(t *testing.T) {
	// 200 * 0.9 * 0.8 = 144, not 200 * (1 - 0.30) = 140
	quote := pricing.Compute(200, 10, 20, 0, 0)

	assert.Equal(t, 144.0, quote.FinalPrice)
	assert.Equal(t, 144.0, quote.FinalPriceWithPix)
}

func TestCompute_NoDiscounts(t *testing.T) {
	quote := pricing.Compute(59.9, 0, 0, 0, 0)

	assert.Equal(t, 59.9, quote.FinalPrice)
	assert.Equal(t, 59.9, quote.PixPrice)
	assert.Equal(t, 59.9, quote.FinalPriceWithPix)
}

func TestCompute_Installments(t *testing.T) {
	quote := pricing.Compute(100, 10, 0, 0, 3)

	assert.Equal(t, 3, quote.MaxInstallments)
	assert.Equal(t, 30.0, quote.InstallmentValue)
}

func TestCompute_InstallmentsOmittedWhenZero(t *testing.T) {
	quote := pricing.Compute(100, 0, 0, 0, 0)

	assert.Zero(t, quote.MaxInstallments)
	assert.Zero(t, quote.InstallmentValue)
}

func TestCompute_NeverIncreasesPrice(t *testing.T) {
	discounts := []float64{0, 5, 10, 25, 50, 99, 100}

	for _, cat := range discounts {
		for _, sub := range discounts {
			for _, pix := range discounts {
				quote := pricing.Compute(150, cat, sub, pix, 0)

				assert.LessOrEqual(t, quote.FinalPrice, quote.ListPrice)
				assert.LessOrEqual(t, quote.FinalPriceWithPix, quote.FinalPrice)
				assert.LessOrEqual(t, quote.PixPrice, quote.ListPrice)
				assert.GreaterOrEqual(t, quote.FinalPriceWithPix, 0.0)
			}
		}
	}
}

func TestCompute_FullDiscountReachesZero(t *testing.T) {
	quote := pricing.Compute(80, 100, 0, 0, 0)

	assert.Equal(t, 0.0, quote.FinalPrice)
	assert.Equal(t, 0.0, quote.FinalPriceWithPix)
}

func TestQuoteFor_MissingCategoryAndSubcategory(t *testing.T) {
	product := models.Product{Price: 100, PixDiscount: 5, MaxInstallments: 2}

	quote := pricing.QuoteFor(product, nil, nil)

	assert.Equal(t, 100.0, quote.FinalPrice)
	assert.Equal(t, 95.0, quote.FinalPriceWithPix)
	assert.Equal(t, 50.0, quote.InstallmentValue)
}

func TestQuoteFor_UsesCategoryAndSubcategoryDiscounts(t *testing.T) {
	product := models.Product{Price: 100, PixDiscount: 5}
	category := &models.Category{Name: "Eletrônicos", Discount: 10}
	subcategory := &models.Subcategory{Name: "Fones", Discount: 0}

	quote := pricing.QuoteFor(product, category, subcategory)

	assert.Equal(t, 90.0, quote.FinalPrice)
	assert.Equal(t, 85.5, quote.FinalPriceWithPix)
}
