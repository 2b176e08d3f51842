package request

// TrackClickRequest represents the request body for recording a click
type TrackClickRequest struct {
	PlatformName string `json:"platformName"`
}
