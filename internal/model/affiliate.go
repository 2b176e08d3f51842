package model

// AffiliateLink is a stored referral URL for a transfer platform.
// PlatformName is the keyword matched against platform names returned by the model.
type AffiliateLink struct {
	ID           string `json:"id"`
	PlatformName string `json:"platformName"`
	URL          string `json:"url"`
	Active       bool   `json:"active"`
}

// DefaultAffiliateLinks is the set seeded on first access to an empty store.
func DefaultAffiliateLinks() []AffiliateLink {
	return []AffiliateLink{
		{ID: "1", PlatformName: "Wise", URL: "https://wise.com", Active: true},
		{ID: "2", PlatformName: "Remitly", URL: "https://remitly.com", Active: true},
		{ID: "3", PlatformName: "Western Union", URL: "https://westernunion.com", Active: true},
		{ID: "4", PlatformName: "Revolut", URL: "https://revolut.com", Active: true},
		{ID: "5", PlatformName: "MoneyGram", URL: "https://moneygram.com", Active: true},
	}
}
