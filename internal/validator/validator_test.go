package validator

import (
	"testing"

	ierr "github.com/flexprice/pricing/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sampleRequest struct {
	Currency string `validate:"required,len=3"`
	Quantity int64  `validate:"gte=0"`
}

func TestValidateRequest(t *testing.T) {
	require.NoError(t, ValidateRequest(sampleRequest{Currency: "USD", Quantity: 1}))

	err := ValidateRequest(sampleRequest{Currency: "US", Quantity: -1})
	require.Error(t, err)
	assert.True(t, ierr.IsValidation(err))
	assert.Equal(t, "Request validation failed", ierr.DisplayMessage(err))
}
