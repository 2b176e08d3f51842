package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/ndewijer/RemitWise-Backend/internal/api/middleware"
	"github.com/ndewijer/RemitWise-Backend/internal/api/request"
	"github.com/ndewijer/RemitWise-Backend/internal/api/response"
	"github.com/ndewijer/RemitWise-Backend/internal/apperrors"
	"github.com/ndewijer/RemitWise-Backend/internal/service"
	"github.com/ndewijer/RemitWise-Backend/internal/validation"
)

// statusClientClosedRequest is reported when the caller went away before the
// comparison finished. Nothing is written to the connection.
const statusClientClosedRequest = 499

// ComparisonHandler handles HTTP requests for transfer comparisons.
type ComparisonHandler struct {
	comparisonService *service.ComparisonService
}

// NewComparisonHandler creates a new ComparisonHandler with the provided service dependency.
func NewComparisonHandler(comparisonService *service.ComparisonService) *ComparisonHandler {
	return &ComparisonHandler{
		comparisonService: comparisonService,
	}
}

// Compare handles POST requests for a transfer comparison.
// The client id resolved by middleware.ClientID scopes superseding: a newer
// request from the same client cancels this one.
//
// Endpoint: POST /api/comparison
// Request Body: ComparisonRequest (amount, fromCurrency, toCurrency)
// Response: 200 OK with ComparisonResult
// Error: 400 Bad Request if validation fails or request body is invalid
// Error: 409 Conflict if a newer request from the same client superseded this one
// Error: 502 Bad Gateway if the AI model failed or returned unusable data
// Error: 504 Gateway Timeout if the AI model did not answer in time
func (h *ComparisonHandler) Compare(w http.ResponseWriter, r *http.Request) {
	req, err := parseJSON[request.ComparisonRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateComparisonRequest(req); err != nil {
		response.RespondError(w, http.StatusBadRequest, "validation failed", validationDetails(err))
		return
	}

	clientID := middleware.ClientIDFromContext(r.Context())
	result, err := h.comparisonService.FetchForClient(r.Context(), clientID, req.Amount, req.FromCurrency, req.ToCurrency)
	if err != nil {
		status, details := comparisonErrorStatus(err)
		if status == statusClientClosedRequest {
			w.WriteHeader(status)
			return
		}
		response.RespondError(w, status, apperrors.ErrFailedToGetComparison.Error(), details)
		return
	}

	response.RespondJSON(w, http.StatusOK, result)
}

// comparisonErrorStatus maps a pipeline error to a status code and a short
// classification. Raw model output and upstream error text are never exposed.
func comparisonErrorStatus(err error) (int, string) {
	switch {
	case errors.Is(err, apperrors.ErrSuperseded):
		return http.StatusConflict, apperrors.ErrSuperseded.Error()
	case errors.Is(err, context.Canceled):
		return statusClientClosedRequest, context.Canceled.Error()
	case errors.Is(err, apperrors.ErrTimeout):
		return http.StatusGatewayTimeout, apperrors.ErrTimeout.Error()
	case errors.Is(err, apperrors.ErrEmptyResponse):
		return http.StatusBadGateway, apperrors.ErrEmptyResponse.Error()
	case errors.Is(err, apperrors.ErrMalformedResponse):
		return http.StatusBadGateway, apperrors.ErrMalformedResponse.Error()
	case errors.Is(err, apperrors.ErrInvalidComparison):
		return http.StatusBadGateway, apperrors.ErrInvalidComparison.Error()
	case errors.Is(err, apperrors.ErrTransport):
		return http.StatusBadGateway, apperrors.ErrTransport.Error()
	default:
		return http.StatusInternalServerError, "internal error"
	}
}
