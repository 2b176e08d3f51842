package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sethvargo/go-retry"
	"go.uber.org/zap"

	"github.com/ndewijer/RemitWise-Backend/internal/apperrors"
	"github.com/ndewijer/RemitWise-Backend/internal/gemini"
	"github.com/ndewijer/RemitWise-Backend/internal/model"
	"github.com/ndewijer/RemitWise-Backend/internal/tracking"
)

// ComparisonOptions tunes the model call made by ComparisonService.
type ComparisonOptions struct {
	// Timeout bounds each individual model call.
	Timeout time.Duration
	// MaxRetries is the number of extra attempts after a transport failure or timeout.
	MaxRetries int
	RetryDelay time.Duration
	// Platforms are the names listed in the prompt. Defaults to gemini.SupportedPlatforms.
	Platforms []string
	// PublicURL prefixes click-through links; empty yields relative links.
	PublicURL string
}

// ComparisonService turns a transfer corridor into a ranked platform comparison.
type ComparisonService struct {
	generator        gemini.Generator
	affiliateService *AffiliateService
	signer           *tracking.Signer
	logger           *zap.Logger
	opts             ComparisonOptions
	inflight         *inflightTracker
	now              func() time.Time
}

// NewComparisonService creates a new ComparisonService.
// signer may be nil, in which case results carry affiliate links but no tracking URLs.
func NewComparisonService(
	generator gemini.Generator,
	affiliateService *AffiliateService,
	signer *tracking.Signer,
	logger *zap.Logger,
	opts ComparisonOptions,
) *ComparisonService {
	if opts.Timeout <= 0 {
		opts.Timeout = 30 * time.Second
	}
	if opts.MaxRetries < 0 {
		opts.MaxRetries = 0
	}
	if opts.RetryDelay <= 0 {
		opts.RetryDelay = 500 * time.Millisecond
	}
	if len(opts.Platforms) == 0 {
		opts.Platforms = gemini.PlatformNames(nil)
	}

	return &ComparisonService{
		generator:        generator,
		affiliateService: affiliateService,
		signer:           signer,
		logger:           logger,
		opts:             opts,
		inflight:         newInflightTracker(),
		now:              time.Now,
	}
}

// FetchComparisonData asks the model for a comparison of the configured
// platforms on the fromCurrency → toCurrency corridor and returns the
// validated result with its grounding URLs attached.
//
// Errors:
//   - apperrors.ErrTransport / ErrTimeout when the model call fails after retries
//   - apperrors.ErrEmptyResponse when the model returned no text
//   - apperrors.ErrMalformedResponse when the text is not JSON
//   - apperrors.ErrInvalidComparison when the JSON lacks required fields
func (s *ComparisonService) FetchComparisonData(ctx context.Context, amount float64, fromCurrency, toCurrency string) (model.ComparisonResult, error) {
	fromCurrency = strings.ToUpper(strings.TrimSpace(fromCurrency))
	toCurrency = strings.ToUpper(strings.TrimSpace(toCurrency))

	prompt := gemini.BuildComparisonPrompt(amount, fromCurrency, toCurrency, s.opts.Platforms)

	resp, err := s.generate(ctx, prompt)
	if err != nil {
		return model.ComparisonResult{}, err
	}

	if strings.TrimSpace(resp.Text) == "" {
		return model.ComparisonResult{}, apperrors.ErrEmptyResponse
	}

	groundingURLs := gemini.GroundingURLs(resp.Citations)

	result, dropped, err := gemini.ParseComparison(gemini.StripCodeFence(resp.Text), toCurrency, s.now())
	if err != nil {
		s.logger.Error("failed to parse comparison data",
			zap.Error(err),
			zap.String("raw_text", resp.Text),
			zap.String("from", fromCurrency),
			zap.String("to", toCurrency),
		)
		return model.ComparisonResult{}, err
	}
	for _, d := range dropped {
		s.logger.Warn("dropped invalid platform from comparison",
			zap.Int("index", d.Index),
			zap.String("name", d.Name),
			zap.String("reason", d.Reason),
		)
	}

	result.GroundingURLs = groundingURLs
	return result, nil
}

// FetchForClient runs FetchComparisonData on behalf of clientID and enriches
// the result with affiliate links. A newer request from the same client
// supersedes this one: it is cancelled and returns apperrors.ErrSuperseded,
// even if the model already answered. An empty clientID disables this.
func (s *ComparisonService) FetchForClient(ctx context.Context, clientID string, amount float64, fromCurrency, toCurrency string) (model.ComparisonResult, error) {
	if clientID != "" {
		var done func()
		ctx, done = s.inflight.begin(ctx, clientID)
		defer done()
	}

	result, err := s.FetchComparisonData(ctx, amount, fromCurrency, toCurrency)
	if errors.Is(context.Cause(ctx), apperrors.ErrSuperseded) {
		s.logger.Debug("comparison superseded", zap.String("client_id", clientID))
		return model.ComparisonResult{}, apperrors.ErrSuperseded
	}
	if err != nil {
		return model.ComparisonResult{}, err
	}

	return s.Enrich(ctx, result)
}

// Enrich fills Link and TrackingURL on every platform that matches an active
// affiliate link. Unmatched platforms are left without a link.
func (s *ComparisonService) Enrich(ctx context.Context, result model.ComparisonResult) (model.ComparisonResult, error) {
	links, err := s.affiliateService.GetAffiliateLinks(ctx)
	if err != nil {
		return model.ComparisonResult{}, fmt.Errorf("failed to load affiliate links: %w", err)
	}

	platforms := make([]model.ExchangePlatform, len(result.Platforms))
	for i, p := range result.Platforms {
		if link, ok := MatchAffiliateLink(links, p.Name); ok {
			p.Link = link.URL
			if s.signer != nil {
				token, err := s.signer.Issue(tracking.Target{PlatformName: p.Name, URL: link.URL})
				if err != nil {
					return model.ComparisonResult{}, err
				}
				p.TrackingURL = s.opts.PublicURL + "/api/click/" + token
			}
		}
		platforms[i] = p
	}
	result.Platforms = platforms
	return result, nil
}

// generate calls the model with a per-attempt timeout, retrying transport
// failures and timeouts up to MaxRetries times.
func (s *ComparisonService) generate(ctx context.Context, prompt string) (gemini.Response, error) {
	var resp gemini.Response
	attempt := 0

	backoff := retry.WithMaxRetries(uint64(s.opts.MaxRetries), retry.NewConstant(s.opts.RetryDelay))
	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		attempt++
		attemptCtx, cancel := context.WithTimeout(ctx, s.opts.Timeout)
		defer cancel()

		r, err := s.generator.Generate(attemptCtx, prompt)
		if err == nil {
			resp = r
			return nil
		}

		if ctx.Err() != nil {
			return context.Cause(ctx)
		}
		if errors.Is(attemptCtx.Err(), context.DeadlineExceeded) {
			s.logger.Warn("AI model request timed out", zap.Int("attempt", attempt), zap.Duration("timeout", s.opts.Timeout))
			return retry.RetryableError(fmt.Errorf("%w after %s", apperrors.ErrTimeout, s.opts.Timeout))
		}
		s.logger.Warn("AI model request failed", zap.Int("attempt", attempt), zap.Error(err))
		return retry.RetryableError(fmt.Errorf("%w: %w", apperrors.ErrTransport, err))
	})
	if err != nil {
		if ctx.Err() != nil {
			return gemini.Response{}, context.Cause(ctx)
		}
		s.logger.Error("AI model request gave up", zap.Int("attempts", attempt), zap.Error(err))
		return gemini.Response{}, err
	}
	return resp, nil
}
