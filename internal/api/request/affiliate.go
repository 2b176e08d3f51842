package request

// SaveAffiliateLinkRequest represents the request body for creating or updating an affiliate link.
// Active defaults to true when omitted.
type SaveAffiliateLinkRequest struct {
	ID           string `json:"id"`
	PlatformName string `json:"platformName"`
	URL          string `json:"url"`
	Active       *bool  `json:"active,omitempty"`
}
