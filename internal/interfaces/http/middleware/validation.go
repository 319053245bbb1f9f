package middleware

import (
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/retailbook/backend/internal/domain/shared"
)

// SetupValidator installs the custom binding tags the request DTOs use.
// Call once at startup, before the engine serves requests.
func SetupValidator() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}

	_ = v.RegisterValidation("payment_method", func(fl validator.FieldLevel) bool {
		return shared.PaymentMethod(fl.Field().String()).IsValid()
	})

	// Product UIDs are 12 digits with a nonzero leading digit.
	_ = v.RegisterValidation("product_uid", func(fl validator.FieldLevel) bool {
		uid := fl.Field().String()
		if len(uid) != 12 {
			return false
		}
		if uid[0] < '2' || uid[0] > '9' {
			return false
		}
		for i := 1; i < len(uid); i++ {
			if uid[i] < '0' || uid[i] > '9' {
				return false
			}
		}
		return true
	})
}
