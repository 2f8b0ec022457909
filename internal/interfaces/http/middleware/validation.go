package middleware

import (
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/wms/backend/internal/domain/warehouse"
)

// SetupValidator registers custom binding tags. The "location" tag checks a
// string against the warehouse location grammar.
func SetupValidator() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}
	_ = v.RegisterValidation("location", func(fl validator.FieldLevel) bool {
		return warehouse.IsValidLocationCode(fl.Field().String())
	})
}
