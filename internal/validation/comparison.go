package validation

import (
	"math"
	"strings"

	"github.com/ndewijer/RemitWise-Backend/internal/api/request"
)

func ValidateComparisonRequest(req request.ComparisonRequest) error {
	errors := make(map[string]string)

	if math.IsNaN(req.Amount) || math.IsInf(req.Amount, 0) || req.Amount <= 0 {
		errors["amount"] = "amount must be greater than zero"
	}

	from := strings.TrimSpace(req.FromCurrency)
	to := strings.TrimSpace(req.ToCurrency)

	if from == "" {
		errors["fromCurrency"] = "fromCurrency is required"
	} else if err := ValidateCurrency(from); err != nil {
		errors["fromCurrency"] = "fromCurrency must be a 3-letter currency code"
	}

	if to == "" {
		errors["toCurrency"] = "toCurrency is required"
	} else if err := ValidateCurrency(to); err != nil {
		errors["toCurrency"] = "toCurrency must be a 3-letter currency code"
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}
	return nil
}
