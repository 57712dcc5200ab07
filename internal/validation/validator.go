// Package validation configures the request validator and its custom rules
// for expense, income and budget payloads.
package validation

import (
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/11Jagan/Expense-Tracker/internal/models"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// Validator wraps the go-playground validator with custom rules and error formatting
type Validator struct {
	validate *validator.Validate
}

// GetValidate returns the underlying validator.Validate instance
func (v *Validator) GetValidate() *validator.Validate {
	return v.validate
}

// Struct validates a request struct
func (v *Validator) Struct(s interface{}) error {
	return v.validate.Struct(s)
}

var (
	instance *Validator
	once     sync.Once
)

// GetValidator returns the shared validator instance
func GetValidator() *Validator {
	once.Do(func() {
		instance = NewValidator()
	})
	return instance
}

// NewValidator creates a new validator instance with custom rules and configuration
func NewValidator() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())

	// amounts are validated as numbers
	v.RegisterCustomTypeFunc(decimalValue, decimal.Decimal{})

	_ = v.RegisterValidation("expense_category", validateExpenseCategory)
	_ = v.RegisterValidation("income_source", validateIncomeSource)
	_ = v.RegisterValidation("recurring_frequency", validateRecurringFrequency)
	_ = v.RegisterValidation("non_negative_amount", validateNonNegativeAmount)
	_ = v.RegisterValidation("money", validateMoney)

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "" {
			name = fld.Tag.Get("query")
		}
		if name == "-" {
			return ""
		}
		return name
	})

	return &Validator{validate: v}
}

func decimalValue(field reflect.Value) interface{} {
	if d, ok := field.Interface().(decimal.Decimal); ok {
		return d.InexactFloat64()
	}
	return nil
}

func validateExpenseCategory(fl validator.FieldLevel) bool {
	return models.IsValidExpenseCategory(fl.Field().String())
}

func validateIncomeSource(fl validator.FieldLevel) bool {
	return models.IsValidIncomeSource(fl.Field().String())
}

func validateRecurringFrequency(fl validator.FieldLevel) bool {
	return models.IsValidFrequency(fl.Field().String())
}

func validateNonNegativeAmount(fl validator.FieldLevel) bool {
	switch fl.Field().Kind() {
	case reflect.Float32, reflect.Float64:
		return fl.Field().Float() >= 0
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return fl.Field().Int() >= 0
	default:
		return false
	}
}

// validateMoney accepts at most two decimal places and values that fit
// decimal(15,2)
func validateMoney(fl validator.FieldLevel) bool {
	if fl.Field().Kind() != reflect.Float64 {
		return false
	}
	d := decimal.NewFromFloat(fl.Field().Float())
	return d.Exponent() >= -2 && d.Abs().LessThan(decimal.New(1, 13))
}

// FieldErrors converts validator errors to a map of JSON field name to a
// readable message
func FieldErrors(errs validator.ValidationErrors) map[string]string {
	fields := make(map[string]string, len(errs))
	for _, fe := range errs {
		fields[fe.Field()] = FormatFieldError(fe)
	}
	return fields
}

// FormatFieldError converts a validator.FieldError to a human-readable message
func FormatFieldError(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "required_with":
		return fmt.Sprintf("is required when %s is set", fe.Param())
	case "email":
		return "must be a valid email address"
	case "min":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("must be at least %s characters long", fe.Param())
		}
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "max":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("must be at most %s characters long", fe.Param())
		}
		return fmt.Sprintf("must be at most %s", fe.Param())
	case "gte":
		return fmt.Sprintf("must be greater than or equal to %s", fe.Param())
	case "lte":
		return fmt.Sprintf("must be less than or equal to %s", fe.Param())
	case "oneof":
		return fmt.Sprintf("must be one of: %s", fe.Param())
	case "datetime":
		if fe.Param() == "2006-01-02" {
			return "must use the YYYY-MM-DD format"
		}
		return fmt.Sprintf("must match the layout %s", fe.Param())
	case "uuid", "uuid4":
		return "must be a valid UUID"
	case "expense_category":
		return "must be a known expense category"
	case "income_source":
		return "must be one of: " + strings.Join(models.AllIncomeSources(), ", ")
	case "recurring_frequency":
		return "must be one of: " + strings.Join(models.AllFrequencies(), ", ")
	case "non_negative_amount":
		return "must be zero or greater"
	case "money":
		return "must have at most 2 decimal places"
	default:
		return fmt.Sprintf("failed validation for '%s'", fe.Tag())
	}
}
