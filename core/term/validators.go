package term

import (
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"

	"github.com/arisha-glich/class-gecko-backend/core"
)

var (
	billingTypeTag  = "billing_type"
	billingTypeText = "{0} must be one of: Upfront, Monthly, Every two weeks, Weekly, Custom"
)

// InitValidators registers the billing option tags.
func InitValidators(validate *validator.Validate, translator ut.Translator) {
	_ = validate.RegisterValidation(billingTypeTag, billingTypeValidation)
	core.RegisterCustomTranslation(validate, translator, billingTypeTag, billingTypeText)
}

func billingTypeValidation(fl validator.FieldLevel) bool {
	for _, typ := range BillingTypes {
		if fl.Field().String() == typ {
			return true
		}
	}
	return false
}
