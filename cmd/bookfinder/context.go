package main

import (
	"net/http"
	"strings"

	"bookfinder/internal/book"
	"bookfinder/internal/config"
	"bookfinder/internal/details"
	"bookfinder/internal/platform/googlebooks"
	"bookfinder/internal/platform/httpjson"
	"bookfinder/internal/platform/logging"
	"bookfinder/internal/platform/openlibrary"

	"go.uber.org/zap"
)

type commandContext struct {
	configFlag   *string
	logLevelFlag *string

	cfg     config.Config
	logger  *zap.Logger
	search  *book.Service
	details *details.Service
}

func newCommandContext(configFlag, logLevelFlag *string) *commandContext {
	return &commandContext{configFlag: configFlag, logLevelFlag: logLevelFlag}
}

// ensure loads configuration and wires the services once per invocation.
func (c *commandContext) ensure() error {
	if c.logger != nil {
		return nil
	}

	cfg, err := config.Load(*c.configFlag)
	if err != nil {
		return err
	}
	if lvl := strings.TrimSpace(*c.logLevelFlag); lvl != "" {
		cfg.Log.Level = strings.ToLower(lvl)
		if err := cfg.Validate(); err != nil {
			return err
		}
	}

	logger, err := logging.New(cfg.Log.Level)
	if err != nil {
		return err
	}

	getter := httpjson.NewGetter(
		&http.Client{Timeout: cfg.HTTP.Timeout},
		cfg.HTTP.UserAgent,
		cfg.HTTP.RequestsPerSecond,
	)
	ol := openlibrary.NewClient(getter, cfg.OpenLibrary.BaseURL)
	gb := googlebooks.NewClient(getter, cfg.GoogleBooks.BaseURL, cfg.GoogleBooks.APIKey)

	c.cfg = cfg
	c.logger = logger
	c.search = book.NewService(ol, logger.Named("search"))
	c.details = details.NewService(gb, ol, logger.Named("details"))
	return nil
}

func (c *commandContext) close() {
	if c.logger != nil {
		_ = c.logger.Sync()
	}
}
