package testutil

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/ndewijer/RemitWise-Backend/internal/model"
	"github.com/ndewijer/RemitWise-Backend/internal/repository"
)

// AffiliateLinkBuilder provides a fluent interface for creating test affiliate links.
//
// Example usage:
//
//	// Simple creation with defaults
//	link := testutil.NewAffiliateLink().Build(t, db)
//
//	// Customized link
//	link := testutil.NewAffiliateLink().
//	    WithPlatformName("Wise").
//	    WithURL("https://wise.com/invite/u/test").
//	    Inactive().
//	    Build(t, db)
type AffiliateLinkBuilder struct {
	ID           string
	PlatformName string
	URL          string
	Active       bool
}

// NewAffiliateLink creates an AffiliateLinkBuilder with sensible defaults.
func NewAffiliateLink() *AffiliateLinkBuilder {
	id := MakeID()
	return &AffiliateLinkBuilder{
		ID:           id,
		PlatformName: "Platform " + id[:8],
		URL:          "https://example.com/ref/" + id[:8],
		Active:       true,
	}
}

// WithID sets a custom ID.
func (b *AffiliateLinkBuilder) WithID(id string) *AffiliateLinkBuilder {
	b.ID = id
	return b
}

// WithPlatformName sets the matched platform keyword.
func (b *AffiliateLinkBuilder) WithPlatformName(name string) *AffiliateLinkBuilder {
	b.PlatformName = name
	return b
}

// WithURL sets the referral URL.
func (b *AffiliateLinkBuilder) WithURL(url string) *AffiliateLinkBuilder {
	b.URL = url
	return b
}

// Inactive marks the link as inactive.
func (b *AffiliateLinkBuilder) Inactive() *AffiliateLinkBuilder {
	b.Active = false
	return b
}

// Model returns the link without storing it.
func (b *AffiliateLinkBuilder) Model() model.AffiliateLink {
	return model.AffiliateLink{
		ID:           b.ID,
		PlatformName: b.PlatformName,
		URL:          b.URL,
		Active:       b.Active,
	}
}

// Build appends the link to the stored list in TestNamespace and returns it.
// The stored list is created empty (without defaults) if it does not exist yet.
func (b *AffiliateLinkBuilder) Build(t *testing.T, db *sql.DB) model.AffiliateLink {
	t.Helper()

	ctx := context.Background()
	repo := repository.NewAffiliateRepository(NewTestRecordRepository(t, db))

	links, _, err := repo.GetAffiliateLinks(ctx)
	if err != nil {
		t.Fatalf("Failed to load affiliate links: %v", err)
	}
	link := b.Model()
	links = append(links, link)
	if err := repo.PutAffiliateLinks(ctx, links); err != nil {
		t.Fatalf("Failed to create test affiliate link: %v", err)
	}
	return link
}

// SetAffiliateLinks replaces the stored list in TestNamespace.
func SetAffiliateLinks(t *testing.T, db *sql.DB, links ...model.AffiliateLink) {
	t.Helper()

	repo := repository.NewAffiliateRepository(NewTestRecordRepository(t, db))
	if links == nil {
		links = []model.AffiliateLink{}
	}
	if err := repo.PutAffiliateLinks(context.Background(), links); err != nil {
		t.Fatalf("Failed to set affiliate links: %v", err)
	}
}

// CreateClicks appends one click per platform name, timestamps one second apart
// starting at 2026-01-01 UTC.
func CreateClicks(t *testing.T, db *sql.DB, platformNames ...string) []model.ClickStat {
	t.Helper()

	ctx := context.Background()
	repo := repository.NewClickRepository(NewTestRecordRepository(t, db))
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	stats := make([]model.ClickStat, len(platformNames))
	for i, name := range platformNames {
		stats[i] = model.ClickStat{
			PlatformName: name,
			Timestamp:    start.Add(time.Duration(i) * time.Second).UnixMilli(),
		}
		if err := repo.AppendClickStat(ctx, stats[i]); err != nil {
			t.Fatalf("Failed to create test click: %v", err)
		}
	}
	return stats
}
