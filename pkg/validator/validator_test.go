package validator

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type addItemRequest struct {
	ProductID string `validate:"required,min=1"`
	Size      string `validate:"max=5"`
	Quantity  int    `validate:"gte=0,lte=99"`
}

func TestValidatePasses(t *testing.T) {
	req := addItemRequest{ProductID: "abc", Size: "M", Quantity: 2}
	assert.NoError(t, Validate(req))
}

func TestValidateReportsMissingField(t *testing.T) {
	err := Validate(addItemRequest{Quantity: 1})
	require.Error(t, err)

	var fieldErrs *FieldErrors
	require.True(t, errors.As(err, &fieldErrs))
	assert.Equal(t, "is required", fieldErrs.Fields()["ProductID"])
}

func TestValidateReportsRangeFailures(t *testing.T) {
	err := Validate(addItemRequest{ProductID: "abc", Size: "XXXXXXXX", Quantity: 150})
	require.Error(t, err)

	var fieldErrs *FieldErrors
	require.True(t, errors.As(err, &fieldErrs))

	fields := fieldErrs.Fields()
	assert.Equal(t, "must have at most 5 characters", fields["Size"])
	assert.Equal(t, "must be at most 99", fields["Quantity"])
	assert.NotContains(t, fields, "ProductID")
}

func TestValidateNonStructIsNotFieldErrors(t *testing.T) {
	err := Validate("not a struct")
	require.Error(t, err)

	var fieldErrs *FieldErrors
	assert.False(t, errors.As(err, &fieldErrs))
}
