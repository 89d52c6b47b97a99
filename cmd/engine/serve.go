package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"
	"time"

	"go.uber.org/zap"

	"truthrecruit-engine/internal/config"
	"truthrecruit-engine/internal/events"
	"truthrecruit-engine/internal/httpapi"
	"truthrecruit-engine/internal/pipeline"
	"truthrecruit-engine/internal/scheduler"
)

const shutdownTokenEnv = "TRUTHRECRUIT_SHUTDOWN_TOKEN"

type ServeCmd struct {
	Addr string `help:"Listen address (overrides app.addr)."`
}

func (c *ServeCmd) Run(ctx *Context) error {
	cfg := ctx.Config
	if c.Addr != "" {
		cfg.App.Addr = c.Addr
	}
	if err := config.Validate(cfg); err != nil {
		return err
	}
	cfg, _ = config.NormalizeAndValidate(cfg)
	logger := ctx.Logger

	sigCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Load config and keep it reloadable
	var cfgVal atomic.Value
	cfgVal.Store(cfg)
	loadCfg := func() (config.Config, error) {
		c, err := config.Load(ctx.CfgPath)
		if err != nil {
			return c, err
		}
		c, _ = config.NormalizeAndValidate(c)
		return c, nil
	}

	st, err := openStore(sigCtx, cfg, ctx.DataDir, logger.Named("store"))
	if err != nil {
		return err
	}
	defer st.Close()

	hub := events.NewHub()
	pub, closePub, err := openPublisher(cfg, hub, logger.Named("events"))
	if err != nil {
		return err
	}
	defer closePub()

	runner := &pipeline.Runner{
		Providers: newProviders(cfg),
		Store:     st,
		Publisher: pub,
		Config:    func() config.Config { return cfgVal.Load().(config.Config) },
		Logger:    logger.Named("pipeline"),
	}

	if cfg.Store.Backend == config.StoreSQLite {
		go scheduler.Every(sigCtx, logger.Named("scheduler"), cfg.Store.PurgeInterval, "purge-reports", func(ctx context.Context) error {
			n, err := st.PurgeExpired(ctx)
			if err == nil && n > 0 {
				logger.Info("purged expired reports", zap.Int64("count", n))
			}
			return err
		})
	}

	mux := httpapi.NewMux(httpapi.Deps{
		Analyzer:    runner,
		Store:       st,
		Hub:         hub,
		Logger:      logger,
		CfgVal:      &cfgVal,
		UserCfgPath: ctx.CfgPath,
		LoadCfg:     loadCfg,
		Version:     ctx.Version,
	})

	srv := &http.Server{
		Handler:           httpapi.Handler(mux, logger.Named("http")),
		ReadHeaderTimeout: 5 * time.Second,
	}

	// A desktop shell that spawned the engine stops it through /shutdown.
	if token := os.Getenv(shutdownTokenEnv); token != "" {
		mux.Handle("/shutdown", shutdownHandler(token, srv))
	}

	ln, err := net.Listen("tcp", cfg.App.Addr)
	if err != nil {
		return err
	}
	logger.Info("engine listening",
		zap.String("addr", "http://"+ln.Addr().String()),
		zap.String("config", ctx.CfgPath),
		zap.String("store", cfg.Store.Backend),
		zap.String("version", ctx.Version))

	go func() {
		<-sigCtx.Done()
		shutCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutCtx)
	}()

	if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	logger.Info("engine stopped")
	return nil
}
