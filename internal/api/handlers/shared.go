package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/ndewijer/RemitWise-Backend/internal/validation"
)

// maxBodyBytes bounds request bodies; every request type here is a few small fields.
const maxBodyBytes = 1 << 20

// parseJSON decodes the request body into T.
// An empty body and trailing data after the JSON value are both rejected.
func parseJSON[T any](r *http.Request) (T, error) {
	var req T
	if r.Body == nil {
		return req, errors.New("request body is required")
	}

	dec := json.NewDecoder(http.MaxBytesReader(nil, r.Body, maxBodyBytes))
	if err := dec.Decode(&req); err != nil {
		return req, fmt.Errorf("failed to decode request body: %w", err)
	}
	if dec.More() {
		return req, errors.New("request body must contain a single JSON object")
	}
	return req, nil
}

// validationDetails returns per-field messages for a validation.Error,
// or the plain error text otherwise.
func validationDetails(err error) any {
	var vErr *validation.Error
	if errors.As(err, &vErr) {
		return vErr.Fields
	}
	return err.Error()
}
