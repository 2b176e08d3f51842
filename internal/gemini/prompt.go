package gemini

import (
	"fmt"
	"strconv"
	"strings"
)

// SupportedPlatforms are the transfer platforms the model is asked to compare.
var SupportedPlatforms = []string{
	"Wise",
	"Remitly",
	"Western Union",
	"Revolut",
	"MoneyGram",
}

// PlatformNames returns SupportedPlatforms followed by any extra names that are
// not already present (compared case-insensitively).
func PlatformNames(extra []string) []string {
	names := make([]string, 0, len(SupportedPlatforms)+len(extra))
	seen := make(map[string]struct{}, cap(names))
	for _, name := range append(append([]string{}, SupportedPlatforms...), extra...) {
		name = strings.TrimSpace(name)
		key := strings.ToLower(name)
		if name == "" {
			continue
		}
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		names = append(names, name)
	}
	return names
}

// BuildComparisonPrompt builds the instruction sent to the model for one corridor.
func BuildComparisonPrompt(amount float64, fromCurrency, toCurrency string, platforms []string) string {
	amountText := strconv.FormatFloat(amount, 'f', -1, 64)
	supported := strings.Join(platforms, ", ")

	return fmt.Sprintf(`You are a financial expert and currency exchange aggregator.
The user wants to send %[1]s %[2]s to %[3]s.

Task:
1. Search for the current mid-market exchange rate for %[2]s to %[3]s.
2. Analyze and compare the following specific money transfer platforms for this corridor: %[4]s.
3. If a platform listed above is NOT available for %[2]s to %[3]s, do not include it in the JSON.
4. Identify which platform offers the best value, fastest delivery, and if there are any active referral bonuses.

Output Requirement:
Return ONLY a valid JSON object representing the data. Do not include markdown formatting around the JSON.

JSON Structure:
{
  "marketRate": number,
  "timestamp": "YYYY-MM-DD HH:MM string",
  "analysis": "A brief 2-sentence analysis of the market and recommendation.",
  "platforms": [
    {
      "name": "Platform Name",
      "rate": number (the exchange rate they offer),
      "transferFee": number (estimated fee in source currency),
      "totalReceiveAmount": number (how much recipient gets),
      "currency": "%[3]s",
      "estimatedDelivery": "e.g., 'In minutes' or '2 days'",
      "pros": ["Low fee", "Fast"],
      "referralBonus": "Any text about sign-up bonus or 'None'",
      "isBestValue": boolean,
      "isFastest": boolean
    }
  ]
}
`, amountText, fromCurrency, toCurrency, supported)
}
