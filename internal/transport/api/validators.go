package api

import (
	"fmt"

	"github.com/gin-gonic/gin/binding"
	"github.com/shopspring/decimal"

	"github.com/go-playground/validator/v10"
)

// validateDecimalPositive тег decimal_positive: значение decimal.Decimal
// строго больше нуля. Стандартный gt с decimal не работает, поле - структура.
func validateDecimalPositive(fl validator.FieldLevel) bool {
	value, ok := fl.Field().Interface().(decimal.Decimal)
	if !ok {
		return false
	}
	return value.IsPositive()
}

func registerValidators() error {
	v, _ := binding.Validator.Engine().(*validator.Validate)
	if err := v.RegisterValidation("decimal_positive", validateDecimalPositive); err != nil {
		return fmt.Errorf("validator registration: %s", err.Error())
	}
	return nil
}
