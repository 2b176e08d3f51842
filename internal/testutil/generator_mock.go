package testutil

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/ndewijer/RemitWise-Backend/internal/gemini"
)

// SampleComparisonJSON is a well-formed model answer for EUR → USD.
const SampleComparisonJSON = `{
  "marketRate": 1.0842,
  "timestamp": "2026-10-19 09:30",
  "analysis": "The euro is stable against the dollar. Wise gives the most dollars for this transfer.",
  "platforms": [
    {"name": "Wise (formerly TransferWise)", "rate": 1.0838, "transferFee": 4.12, "totalReceiveAmount": 1079.33, "currency": "USD", "estimatedDelivery": "In minutes", "pros": ["Mid-market rate", "Low fee"], "referralBonus": "Fee-free first transfer", "isBestValue": true, "isFastest": true},
    {"name": "Remitly", "rate": 1.0702, "transferFee": 2.99, "totalReceiveAmount": 1067.00, "currency": "USD", "estimatedDelivery": "1 day", "pros": ["Promotional rate"], "referralBonus": "None", "isBestValue": false, "isFastest": false},
    {"name": "XYZ Transfers", "rate": 1.0500, "transferFee": 0, "totalReceiveAmount": 1050.00, "currency": "USD", "estimatedDelivery": "3 days", "pros": [], "referralBonus": "None", "isBestValue": false, "isFastest": false}
  ]
}`

// MockGenerator is a mock implementation of gemini.Generator for testing.
// It returns predefined responses instead of calling the API.
type MockGenerator struct {
	mu sync.Mutex

	// Responses are returned in order, one per call; the last one repeats.
	Responses []gemini.Response
	// Errors are returned in order alongside Responses; nil entries mean success.
	Errors []error
	// Block makes Generate wait for ctx to be done before returning its error.
	Block bool
	// Release, when set, is waited on (or ctx) before returning a response.
	Release chan struct{}

	calls   int
	prompts []string
}

// NewMockGenerator creates a mock returning SampleComparisonJSON with two citations.
func NewMockGenerator() *MockGenerator {
	return &MockGenerator{
		Responses: []gemini.Response{{
			Text: SampleComparisonJSON,
			Citations: []gemini.Citation{
				{URI: "https://wise.com/gb/currency-converter/eur-to-usd-rate"},
				{URI: "https://www.xe.com/currencyconverter/"},
				{URI: "https://wise.com/gb/currency-converter/eur-to-usd-rate"},
			},
		}},
	}
}

// WithText configures the mock to return text with no citations.
func (m *MockGenerator) WithText(text string) *MockGenerator {
	m.Responses = []gemini.Response{{Text: text}}
	return m
}

// WithErrors configures the errors returned by successive calls.
func (m *MockGenerator) WithErrors(errs ...error) *MockGenerator {
	m.Errors = errs
	return m
}

// Generate implements gemini.Generator.
func (m *MockGenerator) Generate(ctx context.Context, prompt string) (gemini.Response, error) {
	m.mu.Lock()
	i := m.calls
	m.calls++
	m.prompts = append(m.prompts, prompt)
	block := m.Block
	release := m.Release
	var err error
	if i < len(m.Errors) {
		err = m.Errors[i]
	}
	var resp gemini.Response
	if len(m.Responses) > 0 {
		if i < len(m.Responses) {
			resp = m.Responses[i]
		} else {
			resp = m.Responses[len(m.Responses)-1]
		}
	}
	m.mu.Unlock()

	if block {
		<-ctx.Done()
		return gemini.Response{}, ctx.Err()
	}
	if release != nil {
		select {
		case <-release:
		case <-ctx.Done():
			return gemini.Response{}, ctx.Err()
		}
	}
	if err != nil {
		return gemini.Response{}, err
	}
	return resp, nil
}

// Calls returns how many times Generate was called.
func (m *MockGenerator) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

// LastPrompt returns the prompt of the most recent call.
func (m *MockGenerator) LastPrompt() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.prompts) == 0 {
		return ""
	}
	return m.prompts[len(m.prompts)-1]
}

// WaitForCalls blocks until Generate has been called at least n times,
// failing the test after two seconds.
func (m *MockGenerator) WaitForCalls(t *testing.T, n int) {
	t.Helper()

	deadline := time.Now().Add(2 * time.Second)
	for m.Calls() < n {
		if time.Now().After(deadline) {
			t.Fatalf("Timed out waiting for %d generator calls, got %d", n, m.Calls())
		}
		time.Sleep(time.Millisecond)
	}
}
