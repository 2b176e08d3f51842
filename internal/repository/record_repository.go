package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/ndewijer/RemitWise-Backend/internal/apperrors"
)

// Record keys used by the application. Values are stored as JSON arrays.
const (
	AffiliateLinksKey = "affiliate_links"
	ClickStatsKey     = "click_stats"
)

// RecordRepository is a namespaced key/value store backed by the record table.
// Writes are last-write-wins; there is no versioning.
type RecordRepository struct {
	db        *sql.DB
	tx        *sql.Tx
	namespace string
}

// NewRecordRepository creates a RecordRepository scoped to namespace.
func NewRecordRepository(db *sql.DB, namespace string) *RecordRepository {
	return &RecordRepository{db: db, namespace: namespace}
}

// WithTx returns a copy of the repository that runs its queries inside tx.
func (r *RecordRepository) WithTx(tx *sql.Tx) *RecordRepository {
	return &RecordRepository{
		db:        r.db,
		tx:        tx,
		namespace: r.namespace,
	}
}

// Namespace returns the key prefix this repository is scoped to.
func (r *RecordRepository) Namespace() string {
	return r.namespace
}

func (r *RecordRepository) getQuerier() interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
} {
	if r.tx != nil {
		return r.tx
	}
	return r.db
}

// Get returns the raw value stored under key.
// The boolean is false when no record exists; that is not an error.
func (r *RecordRepository) Get(ctx context.Context, key string) (string, bool, error) {
	query := `SELECT value FROM record WHERE namespace = ? AND key = ?`

	var value string
	err := r.getQuerier().QueryRowContext(ctx, query, r.namespace, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to query record table: %w", err)
	}
	return value, true, nil
}

// Put stores value under key, replacing any previous value.
func (r *RecordRepository) Put(ctx context.Context, key, value string) error {
	query := `
		INSERT INTO record (namespace, key, value, updated_at)
		VALUES (?, ?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(namespace, key) DO UPDATE SET
			value = excluded.value,
			updated_at = excluded.updated_at
	`

	if _, err := r.getQuerier().ExecContext(ctx, query, r.namespace, key, value); err != nil {
		return fmt.Errorf("failed to write record %s: %w", key, err)
	}
	return nil
}

// getJSON decodes the record under key into dst.
// Returns false when the record does not exist.
func (r *RecordRepository) getJSON(ctx context.Context, key string, dst any) (bool, error) {
	raw, ok, err := r.Get(ctx, key)
	if err != nil || !ok {
		return false, err
	}
	if err := json.Unmarshal([]byte(raw), dst); err != nil {
		return true, fmt.Errorf("%w: %s: %v", apperrors.ErrCorruptRecord, key, err)
	}
	return true, nil
}

// putJSON encodes value and stores it under key.
func (r *RecordRepository) putJSON(ctx context.Context, key string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to encode record %s: %w", key, err)
	}
	return r.Put(ctx, key, string(data))
}
