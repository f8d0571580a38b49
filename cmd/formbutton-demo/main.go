package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"
)

func main() {
	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:  "formbutton-demo",
		Usage: "serve a demo admin with form buttons, or fill one from the terminal",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "YAML configuration file",
				EnvVars: []string{"FORMBUTTON_CONFIG"},
			},
			&cli.StringFlag{
				Name:    "log-level",
				Usage:   "trace, debug, info, warn or error",
				EnvVars: []string{"FORMBUTTON_LOG_LEVEL"},
			},
			&cli.StringFlag{
				Name:    "log-format",
				Usage:   "text or json",
				EnvVars: []string{"FORMBUTTON_LOG_FORMAT"},
			},
			&cli.StringFlag{
				Name:    "base-path",
				Usage:   "prefix of the admin routes",
				EnvVars: []string{"FORMBUTTON_BASE_PATH"},
			},
			&cli.StringFlag{
				Name:    "submit-field",
				Usage:   "POST field marking a form submission",
				EnvVars: []string{"FORMBUTTON_SUBMIT_FIELD"},
			},
		},
		Commands: []*cli.Command{
			serveCommand(),
			submitCommand(),
		},
	}
}
