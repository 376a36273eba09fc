package main

import (
	"context"
	"net/http"
	"os"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"
	"golang.org/x/crypto/acme/autocert"

	"github.com/padraicbc/classicsapi/config"
	"github.com/padraicbc/classicsapi/db"
	"github.com/padraicbc/classicsapi/handlers"
	applog "github.com/padraicbc/classicsapi/logger"
	mw "github.com/padraicbc/classicsapi/middleware"
	"github.com/padraicbc/classicsapi/scrape"
	"github.com/padraicbc/classicsapi/store"
	"github.com/padraicbc/classicsapi/syncer"
)

func main() {
	cfg := config.Load()
	logger, err := applog.New(cfg.Debug)
	if err != nil {
		panic(err)
	}
	defer func() { _ = logger.Sync() }()
	zap.ReplaceGlobals(logger)

	bdb := db.Setup(cfg)
	defer bdb.Close()

	if err := db.CreateTables(context.Background(), bdb); err != nil {
		logger.Fatal("create tables failed", zap.Error(err))
	}

	scraper := scrape.New(cfg.UserAgent, logger)
	orchestrator := syncer.New(store.New(bdb), scraper, cfg.ThrottleDelay, logger)
	h := handlers.New(bdb, orchestrator, cfg)

	e := echo.New()
	e.Use(echomw.RequestLoggerWithConfig(echomw.RequestLoggerConfig{
		LogMethod: true,
		LogURI:    true,
		LogStatus: true,
		LogError:  true,
		LogValuesFunc: func(c echo.Context, v echomw.RequestLoggerValues) error {
			fields := []zap.Field{
				zap.Int("status", v.Status),
				zap.String("method", v.Method),
				zap.String("uri", v.URI),
			}
			if v.Error != nil {
				fields = append(fields, zap.Error(v.Error))
			}
			switch {
			case v.Status >= 500:
				logger.Error("http request", fields...)
			case v.Status >= 400:
				logger.Warn("http request", fields...)
			default:
				logger.Info("http request", fields...)
			}
			return nil
		},
	}))
	e.Use(echomw.Recover())
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions},
		AllowHeaders:     []string{"*", "Authorization"},
		AllowCredentials: true,
	}))

	// Public
	e.POST("/cx/signin", h.Signin)

	// Protected – require valid JWT in Authorization header
	cx := e.Group("/cx", mw.JWT(cfg.JWTKey()))
	cx.GET("/races", h.Races)
	cx.POST("/races/seed", h.SeedRaces)
	cx.POST("/races/sync", h.SyncRaces)
	cx.GET("/races/:slug/startlist", h.Startlist)
	cx.DELETE("/races/:slug", h.DeleteRace)
	cx.GET("/riders", h.Riders)
	cx.GET("/riders/count", h.RiderCount)
	cx.GET("/riders/:id/prices", h.RiderPrices)
	cx.GET("/prices", h.Prices)
	cx.POST("/prices/seed", h.SeedPrices)

	if cfg.Debug {
		logger.Info("starting server", zap.String("mode", "debug"), zap.String("addr", cfg.Port))
		if err := e.Start(cfg.Port); err != nil {
			logger.Fatal("server exited", zap.Error(err))
		}
		return
	}

	autoTLS := &autocert.Manager{
		Prompt:     autocert.AcceptTOS,
		Cache:      autocert.DirCache(".cache"),
		HostPolicy: autocert.HostWhitelist(cfg.TLSDomains...),
	}

	s := &http.Server{
		Addr:      ":443",
		Handler:   e,
		TLSConfig: autoTLS.TLSConfig(),
		// A sync pass holds the request open for the whole run: one throttle
		// interval per race plus the fetches themselves.
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 10 * time.Minute,
		IdleTimeout:  15 * time.Second,
	}

	if err := s.ListenAndServeTLS("", ""); err != http.ErrServerClosed {
		logger.Error("tls server exited", zap.Error(err))
		os.Exit(1)
	}
}
