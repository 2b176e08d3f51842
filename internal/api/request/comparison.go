package request

// ComparisonRequest represents the request body for a transfer comparison
type ComparisonRequest struct {
	Amount       float64 `json:"amount"`
	FromCurrency string  `json:"fromCurrency"`
	ToCurrency   string  `json:"toCurrency"`
}
