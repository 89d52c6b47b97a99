package config

import (
	"fmt"
	"math"
	"strings"

	"go.uber.org/zap/zapcore"
)

type Validation struct {
	Errors   []string `json:"errors"`
	Warnings []string `json:"warnings"`
}

func (v *Validation) addErr(format string, args ...any) {
	v.Errors = append(v.Errors, fmt.Sprintf(format, args...))
}
func (v *Validation) addWarn(format string, args ...any) {
	v.Warnings = append(v.Warnings, fmt.Sprintf(format, args...))
}
func (v Validation) OK() bool { return len(v.Errors) == 0 }

const weightTolerance = 1e-6

// NormalizeAndValidate returns a normalized copy of cfg and what is wrong with it.
func NormalizeAndValidate(cfg Config) (Config, Validation) {
	var out = cfg
	var res Validation

	out.App.Addr = strings.TrimSpace(out.App.Addr)
	out.Logging.Level = strings.ToLower(strings.TrimSpace(out.Logging.Level))
	out.Store.Backend = strings.ToLower(strings.TrimSpace(out.Store.Backend))
	out.Store.SQLitePath = strings.TrimSpace(out.Store.SQLitePath)
	out.Store.RedisURL = strings.TrimSpace(out.Store.RedisURL)
	out.Events.NATSURL = strings.TrimSpace(out.Events.NATSURL)

	if out.App.Addr == "" {
		res.addErr("app.addr is required")
	}

	if out.Logging.Level == "" {
		out.Logging.Level = "info"
	}
	if _, err := zapcore.ParseLevel(out.Logging.Level); err != nil {
		res.addErr("logging.level %q is not a valid level", out.Logging.Level)
	}

	// providers
	if out.Providers.Timeout <= 0 {
		res.addErr("providers.timeout must be > 0")
	}
	if out.Providers.RatePerSec <= 0 {
		res.addErr("providers.rate_per_sec must be > 0")
	}
	if out.Providers.Burst <= 0 {
		res.addErr("providers.burst must be > 0")
	}

	// scoring weights
	checkWeights := func(name string, sum float64, parts ...float64) {
		for _, p := range parts {
			if p < 0 {
				res.addErr("%s cannot contain negative weights", name)
				break
			}
		}
		if math.Abs(sum-1.0) > weightTolerance {
			res.addErr("%s must sum to 1.0 (got %.4f)", name, sum)
		}
	}
	aw := out.Scoring.AuthenticityWeights
	checkWeights("scoring.authenticity_weights", aw.Sum(),
		aw.HiringVelocity, aw.ResponseRate, aw.PostingDuration, aw.JobQuality, aw.CompanyMaturity)
	ow := out.Scoring.OverallWeights
	checkWeights("scoring.overall_weights", ow.Sum(),
		ow.HiringVelocity, ow.ResponseRate, ow.JobPostingDuration, ow.EmployeeSatisfaction, ow.CompanyStability)

	// store
	switch out.Store.Backend {
	case StoreSQLite:
		if out.Store.SQLitePath == "" {
			res.addErr("store.sqlite_path is required when store.backend=sqlite")
		}
	case StoreRedis:
		if out.Store.RedisURL == "" {
			res.addErr("store.redis_url is required when store.backend=redis")
		}
	case StoreNone:
		res.addWarn("store.backend is none; reports cannot be fetched after the analyze response.")
	default:
		res.addErr("store.backend must be one of sqlite, redis, none (got %q)", out.Store.Backend)
	}
	if out.Store.Backend != StoreNone {
		if out.Store.TTL <= 0 {
			res.addErr("store.ttl must be > 0")
		}
		if out.Store.Backend == StoreSQLite && out.Store.PurgeInterval <= 0 {
			res.addErr("store.purge_interval must be > 0")
		} else if out.Store.PurgeInterval > out.Store.TTL {
			res.addWarn("store.purge_interval (%s) is longer than store.ttl (%s); expired rows linger.", out.Store.PurgeInterval, out.Store.TTL)
		}
	}

	// events
	if out.Events.NATSEnabled && out.Events.NATSURL == "" {
		res.addErr("events.nats_url is required when events.nats_enabled=true")
	}

	return out, res
}
