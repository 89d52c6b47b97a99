package httpapi

import (
	"net/http"
	"time"

	"go.uber.org/zap"
)

// NewMux returns the raw mux so main() can still attach /shutdown (needs srv+token).
func NewMux(d Deps) *http.ServeMux {
	if d.Logger == nil {
		d.Logger = zap.NewNop()
	}
	if d.Now == nil {
		d.Now = time.Now
	}
	mux := http.NewServeMux()

	// Analysis
	ah := AnalyzeHandler{Analyzer: d.Analyzer, Logger: d.Logger.Named("analyze"), Now: d.Now}
	mux.HandleFunc("/api/analyze", methodMux(map[string]http.HandlerFunc{
		http.MethodPost: ah.Analyze,
	}))

	// Reports
	rh := ReportsHandler{Store: d.Store, Logger: d.Logger.Named("reports")}
	mux.HandleFunc("/api/reports/", methodMux(map[string]http.HandlerFunc{
		http.MethodGet:    rh.GetByPath, // expects /api/reports/{id}
		http.MethodDelete: rh.DeleteByPath,
	}))
	mux.Handle("/api/reports/purge", LocalOnly(methodMux(map[string]http.HandlerFunc{
		http.MethodPost: rh.Purge,
	})))

	// Health
	hh := HealthHandler{Version: d.Version, Now: d.Now}
	mux.HandleFunc("/api/health", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: hh.Health,
	}))

	// Config
	ch := ConfigHandler{
		CfgVal:      d.CfgVal,
		UserCfgPath: d.UserCfgPath,
		LoadCfg:     d.LoadCfg,
	}
	mux.HandleFunc("/config", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: ch.Get,
		http.MethodPut: ch.Put,
	}))
	mux.HandleFunc("/config/path", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: ch.Path,
	}))
	mux.HandleFunc("/config/validate", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: ch.Validate,
	}))

	// Secrets (use cfgVal, NOT a snapshot cfg)
	sh := SecretsHandler{CfgVal: d.CfgVal}
	mux.Handle("/api/secrets/redis", LocalOnly(methodMux(map[string]http.HandlerFunc{
		http.MethodPost:   sh.SetRedisPassword,
		http.MethodDelete: sh.DeleteRedisPassword,
	})))

	// SSE events
	eh := EventsHandler{Hub: d.Hub}
	mux.HandleFunc("/events", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: eh.ServeSSE,
	}))

	return mux
}

// Handler wraps h in the standard middleware chain.
func Handler(h http.Handler, logger *zap.Logger) http.Handler {
	return Chain(h,
		RequestID,
		AccessLog(logger),
		Recover(logger),
		Cors,
	)
}
