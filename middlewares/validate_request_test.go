package middlewares_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Edu-213/Arkos-Market/middlewares"
)

type addItemRequest struct {
	ProductID string `validate:"required"`
	Quantity  int    `validate:"required,min=1"`
}

func TestValidateStruct_Passes(t *testing.T) {
	errs := middlewares.ValidateStruct(addItemRequest{ProductID: "abc", Quantity: 2})

	assert.Nil(t, errs)
}

func TestValidateStruct_ReportsFailingFields(t *testing.T) {
	errs := middlewares.ValidateStruct(addItemRequest{Quantity: 0})

	require.Len(t, errs, 2)
	assert.Equal(t, "ProductID", errs[0].Field)
	assert.Equal(t, "required", errs[0].Tag)
	assert.Equal(t, "Quantity", errs[1].Field)
}

func TestValidateStruct_RejectsQuantityBelowOne(t *testing.T) {
	errs := middlewares.ValidateStruct(addItemRequest{ProductID: "abc", Quantity: -1})

	require.Len(t, errs, 1)
	assert.Equal(t, "Quantity", errs[0].Field)
	assert.Equal(t, "min", errs[0].Tag)
	assert.Equal(t, "1", errs[0].Param)
}
