package main

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/goliatone/go-formbutton/internal/demo"
	"github.com/goliatone/go-formbutton/pkg/admin"
	"github.com/goliatone/go-formbutton/pkg/button"
	"github.com/goliatone/go-formbutton/pkg/forms"
	"github.com/goliatone/go-formbutton/pkg/terminal"
)

func submitCommand() *cli.Command {
	return &cli.Command{
		Name:      "submit",
		Usage:     "fill a demo button form in the terminal and post it to a running server",
		ArgsUsage: "<button>",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "server",
				Usage:   "base URL of the running demo",
				Value:   "http://localhost:8080",
				EnvVars: []string{"FORMBUTTON_SERVER"},
			},
			&cli.StringSliceFlag{
				Name:  "selected",
				Usage: "article ids sent as the change-list selection",
			},
			&cli.DurationFlag{
				Name:  "timeout",
				Usage: "request timeout",
				Value: 30 * time.Second,
			},
		},
		Action: submitAction,
	}
}

func submitAction(ctx *cli.Context) error {
	name := strings.TrimSpace(ctx.Args().First())
	if name == "" {
		return cli.Exit("submit: missing button name", 2)
	}
	cfg, logger, err := loadSettings(ctx)
	if err != nil {
		return err
	}

	articles, err := demo.NewArticles(nil, logger)
	if err != nil {
		return err
	}
	buttons, err := articles.Buttons(button.WithLogger(logger))
	if err != nil {
		return err
	}
	var target *button.Button
	var names []string
	for _, b := range buttons {
		names = append(names, b.Name())
		if b.Name() == name {
			target = b
		}
	}
	if target == nil {
		return cli.Exit(fmt.Sprintf("submit: unknown button %q (one of %s)", name, strings.Join(names, ", ")), 2)
	}

	var def forms.Definition
	if target.HasForm() {
		def, _ = articles.Form(name)
	}
	values, err := terminal.Collect(ctx.Context, terminal.NewSurveyDriver(), def,
		terminal.WithSubmitField(cfg.Buttons.SubmitField),
		terminal.WithSelected(ctx.StringSlice("selected")...),
	)
	if err != nil {
		return err
	}

	site := admin.NewSite(admin.WithBasePath(cfg.Site.BasePath))
	action := strings.TrimRight(ctx.String("server"), "/") + site.AdminURL(demo.AdminName) + "actions/" + name + "/"
	logger.WithField("url", action).Debug("submitting")

	resp, err := terminal.Submit(ctx.Context, &http.Client{Timeout: ctx.Duration("timeout")}, action, values)
	if err != nil {
		return err
	}
	switch {
	case resp.StatusCode == http.StatusOK && strings.Contains(resp.Body, "errornote"):
		return cli.Exit("submit: the server rejected the form, run again with valid values", 1)
	case resp.Succeeded():
		fmt.Fprintf(ctx.App.Writer, "%s: %d %s\n", target.Title(), resp.StatusCode, resp.Location)
		return nil
	default:
		return cli.Exit(fmt.Sprintf("submit: server answered %d", resp.StatusCode), 1)
	}
}
