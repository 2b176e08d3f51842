// Package middleware provides HTTP middleware for request logging, CORS and client identification.
package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/ndewijer/RemitWise-Backend/internal/api/response"
)

// ClientIDHeader is the request header a browser tab uses to identify itself.
const ClientIDHeader = "X-Client-ID"

const maxClientIDLength = 128

type clientIDKey struct{}

// ClientID resolves the caller's client id and stores it in the request context.
// Without the X-Client-ID header the id is empty and the request is never
// superseded. Returns 400 if the header is too long.
//
// Example usage in router:
//
//	r.With(middleware.ClientID).Post("/comparison", handler.Compare)
func ClientID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := strings.TrimSpace(r.Header.Get(ClientIDHeader))

		if len(id) > maxClientIDLength {
			response.RespondError(w, http.StatusBadRequest, "invalid client id", "X-Client-ID must be 128 characters or less")
			return
		}

		ctx := context.WithValue(r.Context(), clientIDKey{}, id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// ClientIDFromContext returns the client id stored by ClientID, or "" if none.
func ClientIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(clientIDKey{}).(string)
	return id
}
