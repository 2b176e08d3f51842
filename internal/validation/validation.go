package validation

import (
	"fmt"

	"github.com/ndewijer/RemitWise-Backend/internal/apperrors"
)

// ValidateCurrency checks that code looks like an ISO-4217 code: three ASCII letters.
// Whether the currency actually exists is left to the model.
func ValidateCurrency(code string) error {
	if len(code) != 3 {
		return fmt.Errorf("%w: %q", apperrors.ErrInvalidCurrency, code)
	}
	for _, r := range code {
		if (r < 'A' || r > 'Z') && (r < 'a' || r > 'z') {
			return fmt.Errorf("%w: %q", apperrors.ErrInvalidCurrency, code)
		}
	}
	return nil
}
