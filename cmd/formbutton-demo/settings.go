package main

import (
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"

	"github.com/goliatone/go-formbutton/internal/config"
	"github.com/goliatone/go-formbutton/internal/logging"
)

// loadSettings reads the config file and applies flag and environment
// overrides on top of it.
func loadSettings(ctx *cli.Context) (config.Config, *logrus.Logger, error) {
	cfg, err := config.Load(ctx.String("config"))
	if err != nil {
		return config.Config{}, nil, err
	}

	overrides := []struct {
		flag string
		dst  *string
	}{
		{flag: "log-level", dst: &cfg.Log.Level},
		{flag: "log-format", dst: &cfg.Log.Format},
		{flag: "base-path", dst: &cfg.Site.BasePath},
		{flag: "submit-field", dst: &cfg.Buttons.SubmitField},
		{flag: "addr", dst: &cfg.Server.Addr},
		{flag: "templates-dir", dst: &cfg.Templates.Dir},
		{flag: "header", dst: &cfg.Site.Header},
	}
	for _, o := range overrides {
		if ctx.IsSet(o.flag) {
			*o.dst = ctx.String(o.flag)
		}
	}
	if err := cfg.Validate(); err != nil {
		return config.Config{}, nil, err
	}

	logger, err := logging.New(cfg.Log.Level, cfg.Log.Format, ctx.App.ErrWriter)
	if err != nil {
		return config.Config{}, nil, err
	}
	return cfg, logger, nil
}
