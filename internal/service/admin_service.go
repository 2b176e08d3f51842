package service

import (
	"context"
	"math"

	"golang.org/x/sync/errgroup"

	"github.com/ndewijer/RemitWise-Backend/internal/model"
)

// AdminService assembles the admin dashboard.
type AdminService struct {
	affiliateService *AffiliateService
	clickService     *ClickService
	cpaRate          float64
	conversionRate   float64
}

// NewAdminService creates a new AdminService.
// cpaRate and conversionRate only feed the mock earnings estimate.
func NewAdminService(
	affiliateService *AffiliateService,
	clickService *ClickService,
	cpaRate float64,
	conversionRate float64,
) *AdminService {
	return &AdminService{
		affiliateService: affiliateService,
		clickService:     clickService,
		cpaRate:          cpaRate,
		conversionRate:   conversionRate,
	}
}

// Dashboard loads links and click statistics and derives the summary figures.
func (s *AdminService) Dashboard(ctx context.Context) (model.Dashboard, error) {
	var (
		links []model.AffiliateLink
		stats model.ClickStats
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		links, err = s.affiliateService.GetAffiliateLinks(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		stats, err = s.clickService.GetStats(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return model.Dashboard{}, err
	}

	linkClicks := make(map[string]int, len(links))
	for _, link := range links {
		linkClicks[link.ID] = stats.ByPlatform[link.PlatformName]
	}

	return model.Dashboard{
		Links:             links,
		Stats:             stats,
		LinkClicks:        linkClicks,
		TopPlatform:       TopPlatform(stats.ByPlatform),
		EstimatedEarnings: EstimateEarnings(stats.TotalClicks, s.conversionRate, s.cpaRate),
		CPARate:           s.cpaRate,
		ConversionRate:    s.conversionRate,
	}, nil
}

// EstimateEarnings is the mock figure shown on the dashboard:
// whole conversions (clicks x conversion rate, rounded down) times the CPA.
func EstimateEarnings(totalClicks int, conversionRate, cpaRate float64) float64 {
	return math.Floor(float64(totalClicks)*conversionRate) * cpaRate
}
