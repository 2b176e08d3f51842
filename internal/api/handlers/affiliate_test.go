package handlers

import (
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ndewijer/RemitWise-Backend/internal/model"
	"github.com/ndewijer/RemitWise-Backend/internal/repository"
	"github.com/ndewijer/RemitWise-Backend/internal/testutil"
)

func TestAffiliateHandler_AffiliateLinks(t *testing.T) {
	setupHandler := func(t *testing.T) (*AffiliateHandler, *sql.DB) {
		t.Helper()
		db := testutil.SetupTestDB(t)
		as := testutil.NewTestAffiliateService(t, db)
		return NewAffiliateHandler(as), db
	}

	t.Run("seeds default links on first read", func(t *testing.T) {
		handler, db := setupHandler(t)

		req := httptest.NewRequest(http.MethodGet, "/api/affiliate-link", nil)
		w := httptest.NewRecorder()

		handler.AffiliateLinks(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
		}

		var links []model.AffiliateLink
		//nolint:errcheck // Test assertion - decode failure would cause test to fail anyway
		json.NewDecoder(w.Body).Decode(&links)

		if len(links) != 5 {
			t.Fatalf("Expected 5 default links, got %d", len(links))
		}
		if links[0].PlatformName != "Wise" || links[4].PlatformName != "MoneyGram" {
			t.Errorf("Unexpected default order: %+v", links)
		}
		if testutil.RawRecord(t, db, testutil.TestNamespace, repository.AffiliateLinksKey) == "" {
			t.Error("Expected defaults to be persisted")
		}
	})

	t.Run("returns stored links without reseeding", func(t *testing.T) {
		handler, db := setupHandler(t)
		testutil.SetAffiliateLinks(t, db)

		req := httptest.NewRequest(http.MethodGet, "/api/affiliate-link", nil)
		w := httptest.NewRecorder()

		handler.AffiliateLinks(w, req)

		var links []model.AffiliateLink
		//nolint:errcheck // Test assertion - decode failure would cause test to fail anyway
		json.NewDecoder(w.Body).Decode(&links)

		if links == nil || len(links) != 0 {
			t.Errorf("Expected empty array, got %v", links)
		}
	})

	t.Run("returns 500 for a corrupt record", func(t *testing.T) {
		handler, db := setupHandler(t)
		testutil.PutRawRecord(t, db, testutil.TestNamespace, repository.AffiliateLinksKey, "{not json")

		req := httptest.NewRequest(http.MethodGet, "/api/affiliate-link", nil)
		w := httptest.NewRecorder()

		handler.AffiliateLinks(w, req)

		if w.Code != http.StatusInternalServerError {
			t.Errorf("Expected 500, got %d", w.Code)
		}
	})
}

func TestAffiliateHandler_SaveAffiliateLink(t *testing.T) {
	setupHandler := func(t *testing.T) (*AffiliateHandler, *sql.DB) {
		t.Helper()
		db := testutil.SetupTestDB(t)
		as := testutil.NewTestAffiliateService(t, db)
		return NewAffiliateHandler(as), db
	}

	t.Run("creates a new link with generated id", func(t *testing.T) {
		handler, _ := setupHandler(t)

		body := map[string]any{"platformName": "Xoom", "url": "https://xoom.com/ref"}
		req := testutil.NewJSONRequest(t, http.MethodPost, "/api/affiliate-link", body)
		w := httptest.NewRecorder()

		handler.CreateAffiliateLink(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
		}

		var link model.AffiliateLink
		//nolint:errcheck // Test assertion - decode failure would cause test to fail anyway
		json.NewDecoder(w.Body).Decode(&link)

		if link.ID == "" {
			t.Error("Expected generated id")
		}
		if !link.Active {
			t.Error("Expected link to default to active")
		}

		listReq := httptest.NewRequest(http.MethodGet, "/api/affiliate-link", nil)
		lw := httptest.NewRecorder()
		handler.AffiliateLinks(lw, listReq)

		var links []model.AffiliateLink
		//nolint:errcheck // Test assertion - decode failure would cause test to fail anyway
		json.NewDecoder(lw.Body).Decode(&links)

		if len(links) != 6 || links[5].PlatformName != "Xoom" {
			t.Errorf("Expected Xoom appended after 5 defaults, got %+v", links)
		}
	})

	t.Run("updates an existing link by path id", func(t *testing.T) {
		handler, _ := setupHandler(t)

		body := map[string]any{"id": "ignored", "platformName": "Wise", "url": "https://wise.com/invite/abc", "active": false}
		req := testutil.NewJSONRequest(t, http.MethodPut, "/api/affiliate-link/1", body)
		req = testutil.WithURLParams(req, map[string]string{"id": "1"})
		w := httptest.NewRecorder()

		handler.UpdateAffiliateLink(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
		}

		listReq := httptest.NewRequest(http.MethodGet, "/api/affiliate-link", nil)
		lw := httptest.NewRecorder()
		handler.AffiliateLinks(lw, listReq)

		var links []model.AffiliateLink
		//nolint:errcheck // Test assertion - decode failure would cause test to fail anyway
		json.NewDecoder(lw.Body).Decode(&links)

		if len(links) != 5 {
			t.Fatalf("Expected 5 links after in-place update, got %d", len(links))
		}
		if links[0].URL != "https://wise.com/invite/abc" || links[0].Active {
			t.Errorf("Expected first link replaced, got %+v", links[0])
		}
	})

	t.Run("returns 400 when platform name is missing", func(t *testing.T) {
		handler, _ := setupHandler(t)

		body := map[string]any{"url": "https://example.com"}
		req := testutil.NewJSONRequest(t, http.MethodPost, "/api/affiliate-link", body)
		w := httptest.NewRecorder()

		handler.CreateAffiliateLink(w, req)

		if w.Code != http.StatusBadRequest {
			t.Errorf("Expected 400, got %d", w.Code)
		}
	})

	t.Run("returns 400 for invalid JSON", func(t *testing.T) {
		handler, _ := setupHandler(t)

		req := testutil.NewJSONRequest(t, http.MethodPut, "/api/affiliate-link/1", "not json")
		req = testutil.WithURLParams(req, map[string]string{"id": "1"})
		w := httptest.NewRecorder()

		handler.UpdateAffiliateLink(w, req)

		if w.Code != http.StatusBadRequest {
			t.Errorf("Expected 400, got %d", w.Code)
		}
	})
}

func TestAffiliateHandler_MatchAffiliateLink(t *testing.T) {
	setupHandler := func(t *testing.T) (*AffiliateHandler, *sql.DB) {
		t.Helper()
		db := testutil.SetupTestDB(t)
		as := testutil.NewTestAffiliateService(t, db)
		return NewAffiliateHandler(as), db
	}

	tests := []struct {
		name    string
		query   string
		wantURL string
		matched bool
	}{
		{"matches case-insensitive substring", "Wise (formerly TransferWise)", "https://wise.com", true},
		{"matches multi-word name", "western union money transfer", "https://westernunion.com", true},
		{"no match", "XYZ Transfers", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler, _ := setupHandler(t)

			req := testutil.NewRequestWithQueryParams(http.MethodGet, "/api/affiliate-link/match", map[string]string{"name": tt.query})
			w := httptest.NewRecorder()

			handler.MatchAffiliateLink(w, req)

			if w.Code != http.StatusOK {
				t.Fatalf("Expected 200, got %d", w.Code)
			}

			var resp MatchResponse
			//nolint:errcheck // Test assertion - decode failure would cause test to fail anyway
			json.NewDecoder(w.Body).Decode(&resp)

			if resp.URL != tt.wantURL || resp.Matched != tt.matched {
				t.Errorf("Expected (%q, %v), got (%q, %v)", tt.wantURL, tt.matched, resp.URL, resp.Matched)
			}
		})
	}

	t.Run("skips inactive links", func(t *testing.T) {
		handler, db := setupHandler(t)
		testutil.NewAffiliateLink().WithPlatformName("Wise").Inactive().Build(t, db)

		req := testutil.NewRequestWithQueryParams(http.MethodGet, "/api/affiliate-link/match", map[string]string{"name": "Wise"})
		w := httptest.NewRecorder()

		handler.MatchAffiliateLink(w, req)

		var resp MatchResponse
		//nolint:errcheck // Test assertion - decode failure would cause test to fail anyway
		json.NewDecoder(w.Body).Decode(&resp)

		if resp.Matched {
			t.Errorf("Expected no match for inactive link, got %+v", resp)
		}
	})

	t.Run("returns 400 when name is missing", func(t *testing.T) {
		handler, _ := setupHandler(t)

		req := httptest.NewRequest(http.MethodGet, "/api/affiliate-link/match", nil)
		w := httptest.NewRecorder()

		handler.MatchAffiliateLink(w, req)

		if w.Code != http.StatusBadRequest {
			t.Errorf("Expected 400, got %d", w.Code)
		}
	})
}
