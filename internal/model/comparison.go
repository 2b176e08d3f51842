package model

// ExchangePlatform is one transfer platform as compared by the model.
// It only lives for the duration of a single comparison request.
//
// Link and TrackingURL are filled in by the service after matching the
// platform name against the stored affiliate links; both are empty when no
// active link matches.
type ExchangePlatform struct {
	Name               string   `json:"name"`
	Rate               float64  `json:"rate"`
	TransferFee        float64  `json:"transferFee"`
	TotalReceiveAmount float64  `json:"totalReceiveAmount"`
	Currency           string   `json:"currency"`
	EstimatedDelivery  string   `json:"estimatedDelivery"`
	Pros               []string `json:"pros"`
	ReferralBonus      string   `json:"referralBonus"`
	IsBestValue        bool     `json:"isBestValue"`
	IsFastest          bool     `json:"isFastest"`
	Link               string   `json:"link,omitempty"`
	TrackingURL        string   `json:"trackingUrl,omitempty"`
}

// ComparisonResult is the normalized outcome of one comparison request.
// GroundingURLs holds each citation URI at most once.
type ComparisonResult struct {
	MarketRate    float64            `json:"marketRate"`
	Timestamp     string             `json:"timestamp"`
	Analysis      string             `json:"analysis"`
	Platforms     []ExchangePlatform `json:"platforms"`
	GroundingURLs []string           `json:"groundingUrls"`
}

// NoReferralBonus is the marker used when a platform has no sign-up bonus.
const NoReferralBonus = "None"
