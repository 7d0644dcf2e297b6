package handlers

import (
	"reflect"
	"sync"

	"github.com/SscSPs/coop_savings_app/internal/core/domain"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

var registerValidatorsOnce sync.Once

// registerValidators teaches gin's validator about money amounts and account types.
func registerValidators() {
	registerValidatorsOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		// Compare decimals as numbers so tags like gt=0 work on amounts.
		v.RegisterCustomTypeFunc(func(field reflect.Value) any {
			if d, ok := field.Interface().(decimal.Decimal); ok {
				f, _ := d.Float64()
				return f
			}
			return nil
		}, decimal.Decimal{})
		_ = v.RegisterValidation("coop_account_type", func(fl validator.FieldLevel) bool {
			_, err := domain.ParseAccountType(fl.Field().String(), "")
			return err == nil
		})
	})
}
