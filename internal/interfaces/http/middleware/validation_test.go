package middleware

import (
	"testing"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testValidator(t *testing.T) *validator.Validate {
	t.Helper()
	SetupValidator()
	v, ok := binding.Validator.Engine().(*validator.Validate)
	require.True(t, ok)
	return v
}

func TestPaymentMethodValidation(t *testing.T) {
	v := testValidator(t)

	type payload struct {
		Method string `binding:"payment_method"`
	}

	assert.NoError(t, v.Struct(payload{Method: "cash"}))
	assert.NoError(t, v.Struct(payload{Method: "credit"}))
	assert.Error(t, v.Struct(payload{Method: "barter"}))
	assert.Error(t, v.Struct(payload{Method: ""}))
}

func TestProductUIDValidation(t *testing.T) {
	v := testValidator(t)

	type payload struct {
		UID string `binding:"product_uid"`
	}

	assert.NoError(t, v.Struct(payload{UID: "234567890123"}))
	assert.Error(t, v.Struct(payload{UID: "134567890123"}), "leading digit below 2")
	assert.Error(t, v.Struct(payload{UID: "23456789012"}), "too short")
	assert.Error(t, v.Struct(payload{UID: "23456789012a"}), "non-digit")
}
