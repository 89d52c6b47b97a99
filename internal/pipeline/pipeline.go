// Package pipeline runs one analysis end to end: validate the URL, resolve the
// company, fetch postings and sentiment, score, store and announce.
package pipeline

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"truthrecruit-engine/internal/analyzer"
	"truthrecruit-engine/internal/apperr"
	"truthrecruit-engine/internal/config"
	"truthrecruit-engine/internal/domain"
	"truthrecruit-engine/internal/events"
	"truthrecruit-engine/internal/provider"
	"truthrecruit-engine/internal/rank"
	"truthrecruit-engine/internal/store"
	"truthrecruit-engine/internal/validation"
)

const (
	MsgCompanyFailed   = "Failed to fetch company data"
	MsgJobsFailed      = "Failed to fetch job postings"
	MsgSentimentFailed = "Failed to fetch sentiment data"
	MsgInvalidEmail    = "Please enter a valid email address"
)

type Runner struct {
	Providers provider.Set
	Store     store.Store
	Publisher events.Publisher
	// Config returns the live configuration; each run reads it once.
	Config func() config.Config
	Now    rank.Clock
	Logger *zap.Logger
}

type Request struct {
	RequestID   string
	LinkedInURL string
	UserEmail   string
}

type CompletedEvent struct {
	CompanyID               string  `json:"companyId"`
	CompanyName             string  `json:"companyName"`
	HiringAuthenticityScore int     `json:"hiringAuthenticityScore"`
	GhostJobProbability     int     `json:"ghostJobProbability"`
	OverallScore            float64 `json:"overallScore"`
}

type FailedEvent struct {
	LinkedInURL string      `json:"linkedinUrl"`
	Kind        apperr.Kind `json:"kind"`
	Error       string      `json:"error"`
}

func (r *Runner) now() time.Time {
	if r.Now != nil {
		return r.Now()
	}
	return time.Now()
}

func (r *Runner) logger() *zap.Logger {
	if r.Logger != nil {
		return r.Logger
	}
	return zap.NewNop()
}

// Analyze returns an *apperr.Error for every failure so callers can map it to
// a status and a public message.
func (r *Runner) Analyze(ctx context.Context, req Request) (domain.CompanyAnalysis, error) {
	a, err := r.run(ctx, req)
	if err != nil {
		r.publish(ctx, events.MakeEvent(req.RequestID, events.TypeAnalysisFailed, 1, FailedEvent{
			LinkedInURL: req.LinkedInURL,
			Kind:        apperr.KindOf(err),
			Error:       apperr.PublicMessage(err),
		}))
		return domain.CompanyAnalysis{}, err
	}

	r.publish(ctx, events.MakeEvent(req.RequestID, events.TypeAnalysisCompleted, 1, CompletedEvent{
		CompanyID:               a.CompanyID,
		CompanyName:             a.Company.Name,
		HiringAuthenticityScore: a.HiringAuthenticityScore,
		GhostJobProbability:     a.GhostJobProbability,
		OverallScore:            a.OverallScore,
	}))
	return a, nil
}

func (r *Runner) run(ctx context.Context, req Request) (domain.CompanyAnalysis, error) {
	url := req.LinkedInURL
	if v := validation.LinkedInURL(url); !v.Valid {
		return domain.CompanyAnalysis{}, apperr.Validation(v.Error)
	}
	if email := strings.TrimSpace(req.UserEmail); email != "" && !validation.IsValidEmail(email) {
		return domain.CompanyAnalysis{}, apperr.Validation(MsgInvalidEmail)
	}

	cfg := r.Config()
	timeout := cfg.Providers.Timeout

	company, err := withTimeout(ctx, timeout, func(ctx context.Context) (domain.Company, error) {
		return r.Providers.Company.LookupCompany(ctx, url)
	})
	if err != nil {
		return domain.CompanyAnalysis{}, upstream(err, MsgCompanyFailed)
	}

	name := company.Name
	if name == "" {
		name = "unknown"
	}

	var (
		jobs      []domain.JobPosting
		sentiment domain.SentimentAnalysis
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		jobs, err = withTimeout(gctx, timeout, func(ctx context.Context) ([]domain.JobPosting, error) {
			return r.Providers.Jobs.LookupJobs(ctx, name)
		})
		if err != nil {
			return upstream(err, MsgJobsFailed)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		sentiment, err = withTimeout(gctx, timeout, func(ctx context.Context) (domain.SentimentAnalysis, error) {
			return r.Providers.Sentiment.LookupSentiment(ctx, name)
		})
		if err != nil {
			return upstream(err, MsgSentimentFailed)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return domain.CompanyAnalysis{}, err
	}

	an := analyzer.New(cfg.Scoring.AuthenticityWeights, cfg.Scoring.OverallWeights, r.now)
	analysis, err := an.Analyze(ctx, company, jobs, sentiment)
	if err != nil {
		return domain.CompanyAnalysis{}, apperr.Internal("analyze company", err)
	}

	if r.Store != nil {
		if err := r.Store.Save(ctx, analysis); err != nil {
			r.logger().Warn("failed to store report",
				zap.String("request_id", req.RequestID),
				zap.String("company_id", analysis.CompanyID),
				zap.Error(err))
		}
	}
	return analysis, nil
}

func (r *Runner) publish(ctx context.Context, e events.Event) {
	if r.Publisher == nil {
		return
	}
	if err := r.Publisher.Publish(ctx, e); err != nil {
		r.logger().Warn("failed to publish event",
			zap.String("type", e.Type),
			zap.String("request_id", e.RequestID),
			zap.Error(err))
	}
}

func withTimeout[T any](ctx context.Context, d time.Duration, fn func(context.Context) (T, error)) (T, error) {
	if d > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, d)
		defer cancel()
	}
	return fn(ctx)
}

// upstream keeps a provider's own upstream message and wraps anything else
// under fallback.
func upstream(err error, fallback string) error {
	var ae *apperr.Error
	if errors.As(err, &ae) && ae.Kind == apperr.KindUpstream {
		return ae
	}
	return apperr.Upstream(fallback, err)
}
