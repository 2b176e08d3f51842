package service

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/ndewijer/RemitWise-Backend/internal/model"
	"github.com/ndewijer/RemitWise-Backend/internal/repository"
)

// AffiliateService manages affiliate links and matches them to platform names.
type AffiliateService struct {
	db            *sql.DB
	affiliateRepo *repository.AffiliateRepository
}

// NewAffiliateService creates a new AffiliateService with the provided repository dependencies.
func NewAffiliateService(
	db *sql.DB,
	affiliateRepo *repository.AffiliateRepository,
) *AffiliateService {
	return &AffiliateService{
		db:            db,
		affiliateRepo: affiliateRepo,
	}
}

// GetAffiliateLinks returns all stored links in insertion order.
// On first access, when nothing has been stored yet, the default links are
// persisted and returned.
func (s *AffiliateService) GetAffiliateLinks(ctx context.Context) ([]model.AffiliateLink, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	links, err := s.loadOrSeed(ctx, s.affiliateRepo.WithTx(tx))
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return links, nil
}

// SaveAffiliateLink upserts link by ID: an existing record with the same ID is
// replaced in place, otherwise the link is appended. An empty ID gets a new UUID.
// URL format and duplicate platform names are not checked.
func (s *AffiliateService) SaveAffiliateLink(ctx context.Context, link model.AffiliateLink) (model.AffiliateLink, error) {
	if link.ID == "" {
		link.ID = uuid.New().String()
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return model.AffiliateLink{}, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	repo := s.affiliateRepo.WithTx(tx)
	links, err := s.loadOrSeed(ctx, repo)
	if err != nil {
		return model.AffiliateLink{}, err
	}

	replaced := false
	for i := range links {
		if links[i].ID == link.ID {
			links[i] = link
			replaced = true
			break
		}
	}
	if !replaced {
		links = append(links, link)
	}

	if err := repo.PutAffiliateLinks(ctx, links); err != nil {
		return model.AffiliateLink{}, fmt.Errorf("failed to save affiliate link: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return model.AffiliateLink{}, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return link, nil
}

// FindAffiliateLink returns the URL of the first active link whose platform
// name is contained in aiPlatformName. No match is not an error.
func (s *AffiliateService) FindAffiliateLink(ctx context.Context, aiPlatformName string) (string, bool, error) {
	links, err := s.GetAffiliateLinks(ctx)
	if err != nil {
		return "", false, err
	}
	link, ok := MatchAffiliateLink(links, aiPlatformName)
	if !ok {
		return "", false, nil
	}
	return link.URL, true, nil
}

func (s *AffiliateService) loadOrSeed(ctx context.Context, repo *repository.AffiliateRepository) ([]model.AffiliateLink, error) {
	links, ok, err := repo.GetAffiliateLinks(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load affiliate links: %w", err)
	}
	if ok {
		return links, nil
	}

	links = model.DefaultAffiliateLinks()
	if err := repo.PutAffiliateLinks(ctx, links); err != nil {
		return nil, fmt.Errorf("failed to seed affiliate links: %w", err)
	}
	return links, nil
}

// MatchAffiliateLink returns the first active link, in slice order, whose
// lower-cased PlatformName is a substring of the lower-cased aiPlatformName.
//
// When several stored names are contained in the AI name (e.g. "Wise" and
// "Wi") the earliest one wins.
func MatchAffiliateLink(links []model.AffiliateLink, aiPlatformName string) (model.AffiliateLink, bool) {
	name := strings.ToLower(aiPlatformName)
	for _, link := range links {
		if link.Active && strings.Contains(name, strings.ToLower(link.PlatformName)) {
			return link, true
		}
	}
	return model.AffiliateLink{}, false
}
