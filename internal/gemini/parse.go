package gemini

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/ndewijer/RemitWise-Backend/internal/apperrors"
	"github.com/ndewijer/RemitWise-Backend/internal/model"
)

// TimestampLayout is the format the model is asked to use for the comparison timestamp.
const TimestampLayout = "2006-01-02 15:04"

// StripCodeFence removes Markdown code fences the model sometimes wraps around
// its JSON despite being told not to. A leading ```json or ``` and a trailing
// ``` are removed; surrounding whitespace is trimmed.
func StripCodeFence(text string) string {
	cleaned := strings.TrimSpace(text)
	if strings.HasPrefix(cleaned, "```json") {
		cleaned = cleaned[len("```json"):]
	} else if strings.HasPrefix(cleaned, "```") {
		cleaned = cleaned[len("```"):]
	}
	cleaned = strings.TrimSpace(cleaned)
	cleaned = strings.TrimSuffix(cleaned, "```")
	return strings.TrimSpace(cleaned)
}

// GroundingURLs returns the distinct non-empty citation URIs in first-seen order.
// It never returns nil.
func GroundingURLs(citations []Citation) []string {
	seen := make(map[string]struct{}, len(citations))
	urls := []string{}
	for _, c := range citations {
		if c.URI == "" {
			continue
		}
		if _, ok := seen[c.URI]; ok {
			continue
		}
		seen[c.URI] = struct{}{}
		urls = append(urls, c.URI)
	}
	return urls
}

// DroppedPlatform records a platform entry that failed validation and was left out.
type DroppedPlatform struct {
	Index  int
	Name   string
	Reason string
}

// ParseComparison converts cleaned model text into a normalized comparison.
//
// The checks, in order:
//   - text must be valid JSON, otherwise ErrMalformedResponse
//   - it must be an object with marketRate > 0 and a platforms array,
//     otherwise ErrInvalidComparison
//   - each platform needs a name, rate > 0, transferFee >= 0 and
//     totalReceiveAmount >= 0; entries failing this are dropped and reported
//
// Missing optional fields are filled in: currency defaults to toCurrency,
// referralBonus to "None", pros to an empty list and timestamp to now.
// GroundingURLs is left empty for the caller to attach.
func ParseComparison(text, toCurrency string, now time.Time) (model.ComparisonResult, []DroppedPlatform, error) {
	if !json.Valid([]byte(text)) {
		var probe any
		err := json.Unmarshal([]byte(text), &probe)
		return model.ComparisonResult{}, nil, fmt.Errorf("%w: %v", apperrors.ErrMalformedResponse, err)
	}

	var raw rawComparison
	if err := json.Unmarshal([]byte(text), &raw); err != nil {
		return model.ComparisonResult{}, nil, fmt.Errorf("%w: %v", apperrors.ErrInvalidComparison, err)
	}

	if raw.MarketRate == nil {
		return model.ComparisonResult{}, nil, fmt.Errorf("%w: marketRate is required", apperrors.ErrInvalidComparison)
	}
	if *raw.MarketRate <= 0 {
		return model.ComparisonResult{}, nil, fmt.Errorf("%w: marketRate must be greater than zero", apperrors.ErrInvalidComparison)
	}
	if raw.Platforms == nil {
		return model.ComparisonResult{}, nil, fmt.Errorf("%w: platforms is required", apperrors.ErrInvalidComparison)
	}

	result := model.ComparisonResult{
		MarketRate:    float64(*raw.MarketRate),
		Timestamp:     now.UTC().Format(TimestampLayout),
		Platforms:     []model.ExchangePlatform{},
		GroundingURLs: []string{},
	}
	if raw.Timestamp != nil && strings.TrimSpace(string(*raw.Timestamp)) != "" {
		result.Timestamp = strings.TrimSpace(string(*raw.Timestamp))
	}
	if raw.Analysis != nil {
		result.Analysis = strings.TrimSpace(string(*raw.Analysis))
	}

	var dropped []DroppedPlatform
	for i, entry := range *raw.Platforms {
		platform, reason := parsePlatform(entry, toCurrency)
		if reason != "" {
			dropped = append(dropped, DroppedPlatform{Index: i, Name: platform.Name, Reason: reason})
			continue
		}
		result.Platforms = append(result.Platforms, platform)
	}

	return result, dropped, nil
}

// parsePlatform validates one platform entry. A non-empty reason means the
// entry must be dropped.
func parsePlatform(entry json.RawMessage, toCurrency string) (model.ExchangePlatform, string) {
	var p rawPlatform
	if err := json.Unmarshal(entry, &p); err != nil {
		return model.ExchangePlatform{}, err.Error()
	}

	platform := model.ExchangePlatform{
		Name:              strings.TrimSpace(string(p.Name)),
		Currency:          strings.ToUpper(strings.TrimSpace(string(p.Currency))),
		EstimatedDelivery: strings.TrimSpace(string(p.EstimatedDelivery)),
		Pros:              make([]string, 0, len(p.Pros)),
		ReferralBonus:     model.NoReferralBonus,
		IsBestValue:       bool(p.IsBestValue),
		IsFastest:         bool(p.IsFastest),
	}

	switch {
	case platform.Name == "":
		return platform, "name is required"
	case p.Rate == nil || *p.Rate <= 0:
		return platform, "rate must be greater than zero"
	case p.TransferFee == nil || *p.TransferFee < 0:
		return platform, "transferFee must be zero or more"
	case p.TotalReceiveAmount == nil || *p.TotalReceiveAmount < 0:
		return platform, "totalReceiveAmount must be zero or more"
	}

	platform.Rate = float64(*p.Rate)
	platform.TransferFee = float64(*p.TransferFee)
	platform.TotalReceiveAmount = float64(*p.TotalReceiveAmount)

	if platform.Currency == "" {
		platform.Currency = strings.ToUpper(toCurrency)
	}
	if p.ReferralBonus != nil && strings.TrimSpace(string(*p.ReferralBonus)) != "" {
		platform.ReferralBonus = strings.TrimSpace(string(*p.ReferralBonus))
	}
	for _, pro := range p.Pros {
		if s := strings.TrimSpace(string(pro)); s != "" {
			platform.Pros = append(platform.Pros, s)
		}
	}

	return platform, ""
}
