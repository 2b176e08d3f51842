package validation

import (
	"strings"

	"github.com/ndewijer/RemitWise-Backend/internal/api/request"
)

// ValidateSaveAffiliateLink checks an affiliate link upsert.
// The URL is only required to be present; its format is not checked.
func ValidateSaveAffiliateLink(req request.SaveAffiliateLinkRequest) error {
	errors := make(map[string]string)

	if strings.TrimSpace(req.PlatformName) == "" {
		errors["platformName"] = "platformName is required"
	} else if len(req.PlatformName) > 100 {
		errors["platformName"] = "platformName must be 100 characters or less"
	}

	if strings.TrimSpace(req.URL) == "" {
		errors["url"] = "url is required"
	}

	if len(req.ID) > 64 {
		errors["id"] = "id must be 64 characters or less"
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}
	return nil
}

func ValidateTrackClick(req request.TrackClickRequest) error {
	if strings.TrimSpace(req.PlatformName) == "" {
		return &Error{Fields: map[string]string{"platformName": "platformName is required"}}
	}
	return nil
}
