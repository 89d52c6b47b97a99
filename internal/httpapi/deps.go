package httpapi

import (
	"context"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"truthrecruit-engine/internal/config"
	"truthrecruit-engine/internal/domain"
	"truthrecruit-engine/internal/events"
	"truthrecruit-engine/internal/pipeline"
	"truthrecruit-engine/internal/store"
)

// Analyzer is satisfied by *pipeline.Runner.
type Analyzer interface {
	Analyze(ctx context.Context, req pipeline.Request) (domain.CompanyAnalysis, error)
}

type Deps struct {
	Analyzer Analyzer
	Store    store.Store
	Hub      *events.Hub
	Logger   *zap.Logger

	// Atomic store of config.Config
	CfgVal *atomic.Value

	// Config persistence
	UserCfgPath string
	LoadCfg     func() (config.Config, error)

	Version string
	Now     func() time.Time
}
