package main

import (
	"net/http"
	"os"

	"wiki-resolver-go/internal/app"
	"wiki-resolver-go/internal/config"
	"wiki-resolver-go/internal/logger"
	"wiki-resolver-go/internal/server"
)

func main() {
	cfg, err := config.Load(os.Getenv("CONFIG_PATH"))
	if err != nil {
		logger.New().WithError(err).Fatal("failed to load config")
	}

	a, err := app.Build(cfg)
	if err != nil {
		logger.New().WithError(err).Fatal("failed to start")
	}
	defer a.Close()

	log := a.Log
	log.WithField("service", "wiki-resolver-go").
		WithField("wiki_language", cfg.Wikipedia.Language).
		Info("starting service")

	srv := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      server.New(a.Processor, a.Resolver, log).Routes(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}
	log.WithField("addr", cfg.Server.Addr).Info("listening")
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.WithError(err).Error("server terminated")
	}
}
