package gemini

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Response is what the comparison pipeline needs from one model call:
// the concatenated text of the first candidate and the grounding citations
// attached to it.
type Response struct {
	Text      string
	Citations []Citation
}

// Citation is a single grounding chunk. URI is empty when the chunk carried
// no web source.
type Citation struct {
	URI   string
	Title string
}

// rawComparison mirrors the JSON object the model is asked to return.
// Pointer fields distinguish "missing" from zero values during validation.
// Platforms are kept raw so that one bad entry can be dropped without
// rejecting the whole comparison.
type rawComparison struct {
	MarketRate *looseFloat        `json:"marketRate"`
	Timestamp  *looseString       `json:"timestamp"`
	Analysis   *looseString       `json:"analysis"`
	Platforms  *[]json.RawMessage `json:"platforms"`
}

type rawPlatform struct {
	Name               looseString   `json:"name"`
	Rate               *looseFloat   `json:"rate"`
	TransferFee        *looseFloat   `json:"transferFee"`
	TotalReceiveAmount *looseFloat   `json:"totalReceiveAmount"`
	Currency           looseString   `json:"currency"`
	EstimatedDelivery  looseString   `json:"estimatedDelivery"`
	Pros               []looseString `json:"pros"`
	ReferralBonus      *looseString  `json:"referralBonus"`
	IsBestValue        looseBool     `json:"isBestValue"`
	IsFastest          looseBool     `json:"isFastest"`
}

// looseFloat accepts a JSON number or a numeric string such as "1,234.50".
// NaN and infinities are rejected.
type looseFloat float64

func (f *looseFloat) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		return fmt.Errorf("number is null")
	}

	var n float64
	if err := json.Unmarshal(data, &n); err == nil {
		*f = looseFloat(n)
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("expected number, got %s", data)
	}
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", "")
	n, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(n) || math.IsInf(n, 0) {
		return fmt.Errorf("expected finite number, got %q", s)
	}
	*f = looseFloat(n)
	return nil
}

// looseBool accepts true/false as JSON booleans or strings; anything else is false.
type looseBool bool

func (b *looseBool) UnmarshalJSON(data []byte) error {
	var v bool
	if err := json.Unmarshal(data, &v); err == nil {
		*b = looseBool(v)
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*b = looseBool(strings.EqualFold(strings.TrimSpace(s), "true"))
		return nil
	}
	*b = false
	return nil
}

// looseString accepts a JSON string, number or boolean and keeps its text form.
type looseString string

func (s *looseString) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err == nil {
		*s = looseString(str)
		return nil
	}
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*s = ""
		return nil
	}
	if len(data) > 0 && (data[0] == '{' || data[0] == '[') {
		return fmt.Errorf("expected string, got %s", data)
	}
	*s = looseString(data)
	return nil
}
