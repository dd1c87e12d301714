// cmd/web/main.go
//
// Docsite – HTTP entry point.
//
// Request life-cycle
// ------------------
//
//  1. Load env vars (jail-wide file → .env fallback).
//
//  2. Load config (conf/global.yaml + DOCSITE_ overrides).
//
//  3. Start daily rotating logger (tees to console when running in a TTY).
//
//  4. Load the cascade-layer sheet once (embedded, or assets.layers_file).
//
//  5. Expose Prometheus /metrics endpoint.
//
//  6. Page chain, outermost first:
//
//     • Recover           – panics → 500 (hint shown in dev)
//     • ForceHTTPS        – 308 to HTTPS when http.force_https is set
//     • Security          – default security headers
//     • layers.Inject     – <style>@layer …</style> after <head>
//     • route.Guard       – fresh, unset route slot per request
//     • page.Router       – docs pages populate route data, then render
//
// Large comment blocks are framed by blank “//” lines; inline comments use
// a single “//”.
package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/yanizio/docsite/internal/assets"
	"github.com/yanizio/docsite/internal/config"
	"github.com/yanizio/docsite/internal/layers"
	"github.com/yanizio/docsite/internal/logger"
	"github.com/yanizio/docsite/internal/middleware"
	"github.com/yanizio/docsite/internal/page"
	"github.com/yanizio/docsite/internal/route"
	"github.com/yanizio/docsite/internal/server"
)

const serverEnvPath = "/usr/local/etc/docsite/global.env"

// loadEnv prefers the jail-wide env file; on dev it falls back to .env.
func loadEnv() {
	if _, err := os.Stat(serverEnvPath); err == nil {
		_ = godotenv.Load(serverEnvPath)
		return
	}
	_ = godotenv.Load()
}

func init() { loadEnv() }

func main() {
	//
	// ── 1.  Config ──────────────────────────────────────────────────────
	//
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	//
	// ── 2.  Logger ──────────────────────────────────────────────────────
	//
	logOut, err := logger.New(cfg.Paths.Root, logger.RunningInTTY(), cfg.Site.Dev)
	if err != nil {
		log.Fatalf("start logger: %v", err)
	}
	defer func() { _ = logOut.Sync() }()

	//
	// ── 3.  Cascade-layer sheet (load once) ─────────────────────────────
	//
	if p := cfg.Assets.LayersFile; p != "" {
		err = layers.Init(os.DirFS(filepath.Dir(p)), filepath.Base(p))
	} else {
		err = layers.Init(assets.FS, assets.LayersCSS)
	}
	if err != nil {
		logOut.Fatalw("load layer sheet", "err", err)
	}
	logOut.Infow("layer sheet loaded", "css", layers.Get().CSS())

	//
	// ── 4.  Root router ─────────────────────────────────────────────────
	//
	r := chi.NewRouter()
	r.Use(chimw.RealIP)
	r.Use(middleware.Recover(cfg.Site.Dev))
	r.Use(func(next http.Handler) http.Handler {
		return middleware.ForceHTTPS(cfg.HTTP.ForceHTTPS, next)
	})

	r.Handle("/metrics", promhttp.Handler())

	r.Group(func(pages chi.Router) {
		pages.Use(middleware.Security)
		pages.Use(layers.Inject(layers.Get()))
		pages.Use(route.Guard)
		pages.Mount("/", page.Router(cfg.Site))
	})

	//
	// ── 5.  Serve until SIGINT/SIGTERM ─────────────────────────────────
	//
	srv := server.New(cfg.HTTP.ListenAddr, r)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		logOut.Infow("listening", "addr", cfg.HTTP.ListenAddr, "site", cfg.Site.Title)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logOut.Fatalw("http server", "err", err)
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		zap.S().Errorw("http shutdown", "err", err)
	}
	logOut.Info("server stopped")
}
