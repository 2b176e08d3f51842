package handlers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/ndewijer/RemitWise-Backend/internal/api/request"
	"github.com/ndewijer/RemitWise-Backend/internal/api/response"
	"github.com/ndewijer/RemitWise-Backend/internal/apperrors"
	"github.com/ndewijer/RemitWise-Backend/internal/model"
	"github.com/ndewijer/RemitWise-Backend/internal/service"
	"github.com/ndewijer/RemitWise-Backend/internal/validation"
)

// AffiliateHandler handles HTTP requests for affiliate link endpoints.
// It serves as the HTTP layer adapter, parsing requests and delegating
// business logic to the affiliateService.
type AffiliateHandler struct {
	affiliateService *service.AffiliateService
}

// NewAffiliateHandler creates a new AffiliateHandler with the provided service dependency.
func NewAffiliateHandler(affiliateService *service.AffiliateService) *AffiliateHandler {
	return &AffiliateHandler{
		affiliateService: affiliateService,
	}
}

// MatchResponse is the result of matching an AI platform name against stored links.
type MatchResponse struct {
	URL     string `json:"url"`
	Matched bool   `json:"matched"`
}

// AffiliateLinks handles GET requests to retrieve all affiliate links.
// The default links are seeded on first access.
//
// Endpoint: GET /api/affiliate-link
// Response: 200 OK with array of AffiliateLink
// Error: 500 Internal Server Error if retrieval fails
func (h *AffiliateHandler) AffiliateLinks(w http.ResponseWriter, r *http.Request) {
	links, err := h.affiliateService.GetAffiliateLinks(r.Context())
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToRetrieveLinks.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, links)
}

// CreateAffiliateLink handles POST requests to create or replace an affiliate link.
// A body id that matches an existing link replaces it; an empty id creates a new link.
//
// Endpoint: POST /api/affiliate-link
// Request Body: SaveAffiliateLinkRequest (platformName, url, optional id and active)
// Response: 200 OK with the saved AffiliateLink
// Error: 400 Bad Request if validation fails or request body is invalid
// Error: 500 Internal Server Error if saving fails
func (h *AffiliateHandler) CreateAffiliateLink(w http.ResponseWriter, r *http.Request) {
	req, err := parseJSON[request.SaveAffiliateLinkRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	h.save(w, r, req)
}

// UpdateAffiliateLink handles PUT requests to upsert the affiliate link with the path id.
// The path id takes precedence over any id in the body.
//
// Endpoint: PUT /api/affiliate-link/{id}
// Request Body: SaveAffiliateLinkRequest
// Response: 200 OK with the saved AffiliateLink
// Error: 400 Bad Request if validation fails or request body is invalid
// Error: 500 Internal Server Error if saving fails
func (h *AffiliateHandler) UpdateAffiliateLink(w http.ResponseWriter, r *http.Request) {
	req, err := parseJSON[request.SaveAffiliateLinkRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	req.ID = chi.URLParam(r, "id")
	if req.ID == "" {
		response.RespondError(w, http.StatusBadRequest, "link id is required", "")
		return
	}

	h.save(w, r, req)
}

func (h *AffiliateHandler) save(w http.ResponseWriter, r *http.Request, req request.SaveAffiliateLinkRequest) {
	if err := validation.ValidateSaveAffiliateLink(req); err != nil {
		response.RespondError(w, http.StatusBadRequest, "validation failed", validationDetails(err))
		return
	}

	active := true
	if req.Active != nil {
		active = *req.Active
	}

	link, err := h.affiliateService.SaveAffiliateLink(r.Context(), model.AffiliateLink{
		ID:           req.ID,
		PlatformName: strings.TrimSpace(req.PlatformName),
		URL:          strings.TrimSpace(req.URL),
		Active:       active,
	})
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToSaveLink.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, link)
}

// MatchAffiliateLink handles GET requests to find the affiliate URL for an AI platform name.
// No match is not an error; the response has matched=false and an empty url.
//
// Endpoint: GET /api/affiliate-link/match?name={platformName}
// Response: 200 OK with MatchResponse
// Error: 400 Bad Request if name is missing
// Error: 500 Internal Server Error if retrieval fails
func (h *AffiliateHandler) MatchAffiliateLink(w http.ResponseWriter, r *http.Request) {
	name := r.URL.Query().Get("name")
	if strings.TrimSpace(name) == "" {
		response.RespondError(w, http.StatusBadRequest, "name is required", "")
		return
	}

	url, ok, err := h.affiliateService.FindAffiliateLink(r.Context(), name)
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToRetrieveLinks.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, MatchResponse{URL: url, Matched: ok})
}
