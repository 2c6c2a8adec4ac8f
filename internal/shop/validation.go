package shop

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"github.com/shop24/shop24/internal/shared"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// ValidateStruct runs the struct's validate tags and reports the first
// failure as a *shared.ValidationError attributed to entity.
func ValidateStruct(entity string, value any) error {
	err := validate.Struct(value)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		fe := fieldErrs[0]
		return shared.NewValidationError(entity, fe.Field(), reason(fe))
	}
	return fmt.Errorf("shop: validate %s: %w", entity, err)
}

func reason(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "max":
		return "must be at most " + fe.Param() + " characters"
	case "min":
		return "must contain at least " + fe.Param()
	case "gt":
		return "must be greater than " + fe.Param()
	case "gte":
		return "must be at least " + fe.Param()
	case "lte":
		return "must be at most " + fe.Param()
	default:
		return "failed " + fe.Tag() + " check"
	}
}

// MoneyLimit is the exclusive upper bound of a money amount, matching the
// NUMERIC(12,2) columns.
var MoneyLimit = decimal.New(1, 10)

// ValidateMoney rejects negative amounts, amounts of MoneyLimit or more and
// amounts with more than two decimal places.
func ValidateMoney(entity, field string, amount decimal.Decimal) error {
	if amount.IsNegative() {
		return shared.NewValidationError(entity, field, "must not be negative")
	}
	if amount.GreaterThanOrEqual(MoneyLimit) {
		return shared.NewValidationError(entity, field, "must be less than "+MoneyLimit.String())
	}
	if !amount.Equal(amount.Round(2)) {
		return shared.NewValidationError(entity, field, "must have at most 2 decimal places")
	}
	return nil
}

// Validate checks required fields.
func (c Category) Validate() error {
	return ValidateStruct(EntityCategory, c)
}

// Validate checks required fields and the email format.
func (c Customer) Validate() error {
	return ValidateStruct(EntityCustomer, c)
}

// Validate checks required fields and money amounts. The margin floor is the
// pricing policy's concern and is applied before the product reaches a store.
func (p Product) Validate() error {
	if err := ValidateStruct(EntityProduct, p); err != nil {
		return err
	}
	if err := ValidateMoney(EntityProduct, "cost", p.Cost); err != nil {
		return err
	}
	return ValidateMoney(EntityProduct, "price", p.Price)
}

// Validate checks the customer reference and the shipment priority.
func (o Order) Validate() error {
	return ValidateStruct(EntityOrder, o)
}

// Validate checks references and that the quantity is positive.
func (l OrderLine) Validate() error {
	return ValidateStruct(EntityOrderLine, l)
}
