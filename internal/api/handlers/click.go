package handlers

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/ndewijer/RemitWise-Backend/internal/api/request"
	"github.com/ndewijer/RemitWise-Backend/internal/api/response"
	"github.com/ndewijer/RemitWise-Backend/internal/apperrors"
	"github.com/ndewijer/RemitWise-Backend/internal/service"
	"github.com/ndewijer/RemitWise-Backend/internal/tracking"
	"github.com/ndewijer/RemitWise-Backend/internal/validation"
)

// ClickHandler handles HTTP requests for click tracking.
type ClickHandler struct {
	clickService *service.ClickService
	signer       *tracking.Signer
	logger       *zap.Logger
}

// NewClickHandler creates a new ClickHandler.
func NewClickHandler(clickService *service.ClickService, signer *tracking.Signer, logger *zap.Logger) *ClickHandler {
	return &ClickHandler{
		clickService: clickService,
		signer:       signer,
		logger:       logger,
	}
}

// TrackClick handles POST requests recording a click on a platform.
//
// Endpoint: POST /api/click
// Request Body: TrackClickRequest (platformName)
// Response: 204 No Content
// Error: 400 Bad Request if validation fails or request body is invalid
// Error: 500 Internal Server Error if the click could not be stored
func (h *ClickHandler) TrackClick(w http.ResponseWriter, r *http.Request) {
	req, err := parseJSON[request.TrackClickRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateTrackClick(req); err != nil {
		response.RespondError(w, http.StatusBadRequest, "validation failed", validationDetails(err))
		return
	}

	if err := h.clickService.TrackClick(r.Context(), strings.TrimSpace(req.PlatformName)); err != nil {
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToTrackClick.Error(), err.Error())
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Redirect handles GET requests for a click-through token: the click is
// recorded and the caller is redirected to the affiliate URL carried by the token.
// A failure to record the click is logged; the user is still redirected.
//
// Endpoint: GET /api/click/{token}
// Response: 302 Found with Location set to the affiliate URL
// Error: 400 Bad Request if the token is tampered with or expired, or its URL
// is not an absolute http(s) URL
func (h *ClickHandler) Redirect(w http.ResponseWriter, r *http.Request) {
	target, err := h.signer.Verify(chi.URLParam(r, "token"))
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, apperrors.ErrInvalidToken.Error(), "")
		return
	}

	if !isAbsoluteHTTPURL(target.URL) {
		h.logger.Warn("refusing click-through to non-absolute URL",
			zap.String("platform", target.PlatformName),
			zap.String("url", target.URL),
		)
		response.RespondError(w, http.StatusBadRequest, apperrors.ErrInvalidRedirectURL.Error(), "")
		return
	}

	if err := h.clickService.TrackClick(r.Context(), target.PlatformName); err != nil {
		h.logger.Error("failed to track click-through",
			zap.String("platform", target.PlatformName),
			zap.Error(err),
		)
	}

	http.Redirect(w, r, target.URL, http.StatusFound)
}

func isAbsoluteHTTPURL(raw string) bool {
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}
