package repository_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/ndewijer/RemitWise-Backend/internal/apperrors"
	"github.com/ndewijer/RemitWise-Backend/internal/model"
	"github.com/ndewijer/RemitWise-Backend/internal/repository"
	"github.com/ndewijer/RemitWise-Backend/internal/testutil"
)

func TestRecordRepository(t *testing.T) {
	t.Run("missing key is not an error", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		repo := testutil.NewTestRecordRepository(t, db)

		value, ok, err := repo.Get(context.Background(), "nothing_here")
		if err != nil {
			t.Fatalf("Get() returned unexpected error: %v", err)
		}
		if ok || value != "" {
			t.Errorf("Expected no record, got (%q, %v)", value, ok)
		}
	})

	t.Run("last write wins", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		repo := testutil.NewTestRecordRepository(t, db)
		ctx := context.Background()

		for _, v := range []string{"[1]", "[2]"} {
			if err := repo.Put(ctx, "numbers", v); err != nil {
				t.Fatalf("Put() returned unexpected error: %v", err)
			}
		}

		value, ok, err := repo.Get(ctx, "numbers")
		if err != nil || !ok {
			t.Fatalf("Get() = (%q, %v, %v)", value, ok, err)
		}
		if value != "[2]" {
			t.Errorf("Expected last value, got %q", value)
		}
		if n := testutil.CountRecords(t, db, testutil.TestNamespace); n != 1 {
			t.Errorf("Expected 1 record, got %d", n)
		}
	})

	t.Run("keys are scoped by namespace", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		ctx := context.Background()
		a := repository.NewRecordRepository(db, "a")
		b := repository.NewRecordRepository(db, "b")

		if err := a.Put(ctx, repository.ClickStatsKey, "[]"); err != nil {
			t.Fatalf("Put() returned unexpected error: %v", err)
		}

		if _, ok, err := b.Get(ctx, repository.ClickStatsKey); err != nil || ok {
			t.Errorf("Expected namespace b to be empty, got ok=%v err=%v", ok, err)
		}
		if a.Namespace() != "a" {
			t.Errorf("Expected namespace 'a', got %q", a.Namespace())
		}
	})

	t.Run("rolled back writes are discarded", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		repo := testutil.NewTestRecordRepository(t, db)
		ctx := context.Background()

		tx, err := db.BeginTx(ctx, nil)
		if err != nil {
			t.Fatalf("BeginTx() returned unexpected error: %v", err)
		}
		if err := repo.WithTx(tx).Put(ctx, "draft", "[]"); err != nil {
			t.Fatalf("Put() returned unexpected error: %v", err)
		}
		if err := tx.Rollback(); err != nil {
			t.Fatalf("Rollback() returned unexpected error: %v", err)
		}

		if _, ok, _ := repo.Get(ctx, "draft"); ok {
			t.Error("Expected rolled back record to be absent")
		}
	})
}

func TestAffiliateRepository(t *testing.T) {
	t.Run("reports whether the list was ever stored", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		repo := repository.NewAffiliateRepository(testutil.NewTestRecordRepository(t, db))
		ctx := context.Background()

		links, ok, err := repo.GetAffiliateLinks(ctx)
		if err != nil {
			t.Fatalf("GetAffiliateLinks() returned unexpected error: %v", err)
		}
		if ok || len(links) != 0 || links == nil {
			t.Errorf("Expected empty non-nil list and ok=false, got (%v, %v)", links, ok)
		}

		if err := repo.PutAffiliateLinks(ctx, []model.AffiliateLink{}); err != nil {
			t.Fatalf("PutAffiliateLinks() returned unexpected error: %v", err)
		}
		if _, ok, _ := repo.GetAffiliateLinks(ctx); !ok {
			t.Error("Expected ok=true after storing an empty list")
		}
	})

	t.Run("stores the documented JSON field names", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		repo := repository.NewAffiliateRepository(testutil.NewTestRecordRepository(t, db))
		links := []model.AffiliateLink{{ID: "1", PlatformName: "Wise", URL: "https://wise.com", Active: true}}

		if err := repo.PutAffiliateLinks(context.Background(), links); err != nil {
			t.Fatalf("PutAffiliateLinks() returned unexpected error: %v", err)
		}

		raw := testutil.RawRecord(t, db, testutil.TestNamespace, repository.AffiliateLinksKey)
		want := `[{"id":"1","platformName":"Wise","url":"https://wise.com","active":true}]`
		if raw != want {
			t.Errorf("Expected %s, got %s", want, raw)
		}

		got, _, err := repo.GetAffiliateLinks(context.Background())
		if err != nil {
			t.Fatalf("GetAffiliateLinks() returned unexpected error: %v", err)
		}
		if diff := cmp.Diff(links, got); diff != "" {
			t.Errorf("Links mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("corrupt value returns ErrCorruptRecord", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		repo := repository.NewAffiliateRepository(testutil.NewTestRecordRepository(t, db))
		testutil.PutRawRecord(t, db, testutil.TestNamespace, repository.AffiliateLinksKey, `{"id":"1"}`)

		_, ok, err := repo.GetAffiliateLinks(context.Background())
		if !errors.Is(err, apperrors.ErrCorruptRecord) {
			t.Errorf("Expected ErrCorruptRecord, got %v", err)
		}
		if !ok {
			t.Error("Expected ok=true for an existing but corrupt record")
		}
	})
}

func TestClickRepository(t *testing.T) {
	t.Run("append keeps history order", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		repo := repository.NewClickRepository(testutil.NewTestRecordRepository(t, db))
		ctx := context.Background()

		want := []model.ClickStat{
			{PlatformName: "Wise", Timestamp: 1700000000000},
			{PlatformName: "Remitly", Timestamp: 1700000001000},
		}
		for _, stat := range want {
			if err := repo.AppendClickStat(ctx, stat); err != nil {
				t.Fatalf("AppendClickStat() returned unexpected error: %v", err)
			}
		}

		got, err := repo.GetClickStats(ctx)
		if err != nil {
			t.Fatalf("GetClickStats() returned unexpected error: %v", err)
		}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("History mismatch (-want +got):\n%s", diff)
		}

		raw := testutil.RawRecord(t, db, testutil.TestNamespace, repository.ClickStatsKey)
		if raw != `[{"platformName":"Wise","timestamp":1700000000000},{"platformName":"Remitly","timestamp":1700000001000}]` {
			t.Errorf("Unexpected stored value: %s", raw)
		}
	})

	t.Run("null value reads as an empty log", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		repo := repository.NewClickRepository(testutil.NewTestRecordRepository(t, db))
		testutil.PutRawRecord(t, db, testutil.TestNamespace, repository.ClickStatsKey, "null")

		got, err := repo.GetClickStats(context.Background())
		if err != nil {
			t.Fatalf("GetClickStats() returned unexpected error: %v", err)
		}
		if got == nil || len(got) != 0 {
			t.Errorf("Expected empty non-nil history, got %v", got)
		}
	})
}
