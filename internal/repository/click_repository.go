package repository

import (
	"context"
	"database/sql"

	"github.com/ndewijer/RemitWise-Backend/internal/model"
)

// ClickRepository reads and appends to the click log record.
type ClickRepository struct {
	records *RecordRepository
}

// NewClickRepository creates a new ClickRepository on top of the record store.
func NewClickRepository(records *RecordRepository) *ClickRepository {
	return &ClickRepository{records: records}
}

// WithTx returns a copy of the repository bound to tx.
func (r *ClickRepository) WithTx(tx *sql.Tx) *ClickRepository {
	return &ClickRepository{records: r.records.WithTx(tx)}
}

// GetClickStats returns the full click history, oldest first.
// A missing record is treated as an empty log.
func (r *ClickRepository) GetClickStats(ctx context.Context) ([]model.ClickStat, error) {
	stats := []model.ClickStat{}
	if _, err := r.records.getJSON(ctx, ClickStatsKey, &stats); err != nil {
		return nil, err
	}
	if stats == nil {
		stats = []model.ClickStat{}
	}
	return stats, nil
}

// AppendClickStat adds stat to the end of the log.
// Callers should run it inside a transaction so concurrent appends are not lost.
func (r *ClickRepository) AppendClickStat(ctx context.Context, stat model.ClickStat) error {
	stats, err := r.GetClickStats(ctx)
	if err != nil {
		return err
	}
	stats = append(stats, stat)
	return r.records.putJSON(ctx, ClickStatsKey, stats)
}
