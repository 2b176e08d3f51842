package repository

import (
	"context"
	"database/sql"

	"github.com/ndewijer/RemitWise-Backend/internal/model"
)

// AffiliateRepository reads and writes the affiliate link list record.
type AffiliateRepository struct {
	records *RecordRepository
}

// NewAffiliateRepository creates a new AffiliateRepository on top of the record store.
func NewAffiliateRepository(records *RecordRepository) *AffiliateRepository {
	return &AffiliateRepository{records: records}
}

// WithTx returns a copy of the repository bound to tx.
func (r *AffiliateRepository) WithTx(tx *sql.Tx) *AffiliateRepository {
	return &AffiliateRepository{records: r.records.WithTx(tx)}
}

// GetAffiliateLinks returns the stored links in insertion order.
// The boolean is false when nothing has been stored yet.
func (r *AffiliateRepository) GetAffiliateLinks(ctx context.Context) ([]model.AffiliateLink, bool, error) {
	links := []model.AffiliateLink{}
	ok, err := r.records.getJSON(ctx, AffiliateLinksKey, &links)
	if err != nil {
		return nil, ok, err
	}
	if links == nil {
		links = []model.AffiliateLink{}
	}
	return links, ok, nil
}

// PutAffiliateLinks replaces the stored list.
func (r *AffiliateRepository) PutAffiliateLinks(ctx context.Context, links []model.AffiliateLink) error {
	return r.records.putJSON(ctx, AffiliateLinksKey, links)
}
