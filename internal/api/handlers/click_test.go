package handlers

import (
	"database/sql"
	"net/http"
	"net/http/httptest"
	"testing"

	"go.uber.org/zap"

	"github.com/ndewijer/RemitWise-Backend/internal/repository"
	"github.com/ndewijer/RemitWise-Backend/internal/testutil"
	"github.com/ndewijer/RemitWise-Backend/internal/tracking"
)

func TestClickHandler_TrackClick(t *testing.T) {
	setupHandler := func(t *testing.T) (*ClickHandler, *sql.DB) {
		t.Helper()
		db := testutil.SetupTestDB(t)
		cs := testutil.NewTestClickService(t, db)
		return NewClickHandler(cs, testutil.NewTestSigner(t), zap.NewNop()), db
	}

	t.Run("records a click", func(t *testing.T) {
		handler, db := setupHandler(t)

		req := testutil.NewJSONRequest(t, http.MethodPost, "/api/click", map[string]string{"platformName": "Wise"})
		w := httptest.NewRecorder()

		handler.TrackClick(w, req)

		if w.Code != http.StatusNoContent {
			t.Fatalf("Expected 204, got %d: %s", w.Code, w.Body.String())
		}

		stats, err := testutil.NewTestClickService(t, db).GetStats(req.Context())
		if err != nil {
			t.Fatalf("Failed to load stats: %v", err)
		}
		if stats.TotalClicks != 1 || stats.ByPlatform["Wise"] != 1 {
			t.Errorf("Expected one Wise click, got %+v", stats)
		}
	})

	t.Run("returns 400 when platform name is missing", func(t *testing.T) {
		handler, _ := setupHandler(t)

		req := testutil.NewJSONRequest(t, http.MethodPost, "/api/click", map[string]string{})
		w := httptest.NewRecorder()

		handler.TrackClick(w, req)

		if w.Code != http.StatusBadRequest {
			t.Errorf("Expected 400, got %d", w.Code)
		}
	})

	t.Run("returns 500 when the click log is corrupt", func(t *testing.T) {
		handler, db := setupHandler(t)
		testutil.PutRawRecord(t, db, testutil.TestNamespace, repository.ClickStatsKey, `{"oops":true}`)

		req := testutil.NewJSONRequest(t, http.MethodPost, "/api/click", map[string]string{"platformName": "Wise"})
		w := httptest.NewRecorder()

		handler.TrackClick(w, req)

		if w.Code != http.StatusInternalServerError {
			t.Errorf("Expected 500, got %d", w.Code)
		}
	})
}

func TestClickHandler_Redirect(t *testing.T) {
	setupHandler := func(t *testing.T) (*ClickHandler, *tracking.Signer, *sql.DB) {
		t.Helper()
		db := testutil.SetupTestDB(t)
		cs := testutil.NewTestClickService(t, db)
		signer := testutil.NewTestSigner(t)
		return NewClickHandler(cs, signer, zap.NewNop()), signer, db
	}

	t.Run("redirects and records the click", func(t *testing.T) {
		handler, signer, db := setupHandler(t)

		token, err := signer.Issue(tracking.Target{PlatformName: "Remitly", URL: "https://remitly.com/ref/42"})
		if err != nil {
			t.Fatalf("Failed to issue token: %v", err)
		}

		req := testutil.NewRequestWithURLParams(http.MethodGet, "/api/click/"+token, map[string]string{"token": token})
		w := httptest.NewRecorder()

		handler.Redirect(w, req)

		if w.Code != http.StatusFound {
			t.Fatalf("Expected 302, got %d", w.Code)
		}
		if loc := w.Header().Get("Location"); loc != "https://remitly.com/ref/42" {
			t.Errorf("Expected redirect to affiliate URL, got %q", loc)
		}

		stats, err := testutil.NewTestClickService(t, db).GetStats(req.Context())
		if err != nil {
			t.Fatalf("Failed to load stats: %v", err)
		}
		if stats.ByPlatform["Remitly"] != 1 {
			t.Errorf("Expected one Remitly click, got %+v", stats.ByPlatform)
		}
	})

	t.Run("still redirects when the click cannot be stored", func(t *testing.T) {
		handler, signer, db := setupHandler(t)
		testutil.PutRawRecord(t, db, testutil.TestNamespace, repository.ClickStatsKey, "garbage")

		token, err := signer.Issue(tracking.Target{PlatformName: "Wise", URL: "https://wise.com"})
		if err != nil {
			t.Fatalf("Failed to issue token: %v", err)
		}

		req := testutil.NewRequestWithURLParams(http.MethodGet, "/api/click/"+token, map[string]string{"token": token})
		w := httptest.NewRecorder()

		handler.Redirect(w, req)

		if w.Code != http.StatusFound {
			t.Errorf("Expected 302, got %d", w.Code)
		}
	})

	t.Run("returns 400 for a tampered token", func(t *testing.T) {
		handler, _, _ := setupHandler(t)

		req := testutil.NewRequestWithURLParams(http.MethodGet, "/api/click/abc", map[string]string{"token": "abc"})
		w := httptest.NewRecorder()

		handler.Redirect(w, req)

		if w.Code != http.StatusBadRequest {
			t.Errorf("Expected 400, got %d", w.Code)
		}
		if w.Header().Get("Location") != "" {
			t.Error("Expected no redirect for an invalid token")
		}
	})

	t.Run("returns 400 for a URL that is not absolute http(s)", func(t *testing.T) {
		for _, target := range []string{"wise.com", "/internal", "javascript:alert(1)", "ftp://wise.com"} {
			handler, signer, db := setupHandler(t)

			token, err := signer.Issue(tracking.Target{PlatformName: "Wise", URL: target})
			if err != nil {
				t.Fatalf("Failed to issue token: %v", err)
			}

			req := testutil.NewRequestWithURLParams(http.MethodGet, "/api/click/"+token, map[string]string{"token": token})
			w := httptest.NewRecorder()

			handler.Redirect(w, req)

			if w.Code != http.StatusBadRequest {
				t.Errorf("Expected 400 for %q, got %d", target, w.Code)
			}
			if w.Header().Get("Location") != "" {
				t.Errorf("Expected no redirect for %q", target)
			}

			stats, err := testutil.NewTestClickService(t, db).GetStats(req.Context())
			if err != nil {
				t.Fatalf("Failed to load stats: %v", err)
			}
			if stats.TotalClicks != 0 {
				t.Errorf("Expected no click recorded for %q, got %d", target, stats.TotalClicks)
			}
		}
	})

	t.Run("rejects a token from another key", func(t *testing.T) {
		handler, _, _ := setupHandler(t)

		token, err := testutil.NewTestSigner(t).Issue(tracking.Target{PlatformName: "Evil", URL: "https://evil.example"})
		if err != nil {
			t.Fatalf("Failed to issue token: %v", err)
		}

		req := testutil.NewRequestWithURLParams(http.MethodGet, "/api/click/"+token, map[string]string{"token": token})
		w := httptest.NewRecorder()

		handler.Redirect(w, req)

		if w.Code != http.StatusBadRequest {
			t.Errorf("Expected 400, got %d", w.Code)
		}
	})
}
