package testutil

import (
	"database/sql"
	"testing"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/ndewijer/RemitWise-Backend/internal/gemini"
	"github.com/ndewijer/RemitWise-Backend/internal/repository"
	"github.com/ndewijer/RemitWise-Backend/internal/service"
	"github.com/ndewijer/RemitWise-Backend/internal/tracking"
)

// TestModel is the model name reported by NewTestSystemService.
const TestModel = "gemini-2.5-flash"

// NewTestSystemService creates a SystemService for testing.
func NewTestSystemService(t *testing.T, db *sql.DB) *service.SystemService {
	t.Helper()
	return service.NewSystemService(db, TestModel, map[string]bool{
		"tracking_urls": true,
		"click_digest":  false,
	})
}

// NewTestRecordRepository returns a record repository in TestNamespace.
func NewTestRecordRepository(t *testing.T, db *sql.DB) *repository.RecordRepository {
	t.Helper()
	return repository.NewRecordRepository(db, TestNamespace)
}

func NewTestAffiliateService(t *testing.T, db *sql.DB) *service.AffiliateService {
	t.Helper()

	affiliateRepo := repository.NewAffiliateRepository(NewTestRecordRepository(t, db))

	return service.NewAffiliateService(
		db,
		affiliateRepo,
	)
}

func NewTestClickService(t *testing.T, db *sql.DB) *service.ClickService {
	t.Helper()

	clickRepo := repository.NewClickRepository(NewTestRecordRepository(t, db))

	return service.NewClickService(
		db,
		clickRepo,
		zap.NewNop(),
	)
}

func NewTestAdminService(t *testing.T, db *sql.DB) *service.AdminService {
	t.Helper()

	return service.NewAdminService(
		NewTestAffiliateService(t, db),
		NewTestClickService(t, db),
		20,
		0.15,
	)
}

// NewTestSigner returns a tracking signer with a random key.
func NewTestSigner(t *testing.T) *tracking.Signer {
	t.Helper()

	signer, _, err := tracking.NewSigner("", time.Hour)
	if err != nil {
		t.Fatalf("Failed to create tracking signer: %v", err)
	}
	return signer
}

// NewTestComparisonService creates a ComparisonService backed by generator
// with short timeouts and a 1ms retry delay.
func NewTestComparisonService(t *testing.T, db *sql.DB, generator gemini.Generator, signer *tracking.Signer) *service.ComparisonService {
	t.Helper()

	return service.NewComparisonService(
		generator,
		NewTestAffiliateService(t, db),
		signer,
		zap.NewNop(),
		service.ComparisonOptions{
			Timeout:    2 * time.Second,
			MaxRetries: 1,
			RetryDelay: time.Millisecond,
		},
	)
}

// MakeID generates a new UUID string for testing.
func MakeID() string {
	return uuid.New().String()
}
