// Package config loads the demo server configuration from YAML.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-formbutton/pkg/admin"
	"github.com/goliatone/go-formbutton/pkg/button"
)

type Config struct {
	Server    Server    `yaml:"server"`
	Site      Site      `yaml:"site"`
	Buttons   Buttons   `yaml:"buttons"`
	Templates Templates `yaml:"templates"`
	Log       Log       `yaml:"log"`
}

type Server struct {
	Addr            string        `yaml:"addr"`
	ReadTimeout     time.Duration `yaml:"read_timeout"`
	WriteTimeout    time.Duration `yaml:"write_timeout"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
}

type Site struct {
	BasePath string `yaml:"base_path"`
	Header   string `yaml:"header"`
	Title    string `yaml:"title"`
	Theme    Theme  `yaml:"theme"`
}

type Theme struct {
	Name      string            `yaml:"name"`
	Variant   string            `yaml:"variant"`
	AssetBase string            `yaml:"asset_base"`
	CSSVars   map[string]string `yaml:"css_vars"`
	Tokens    map[string]string `yaml:"tokens"`
}

type Buttons struct {
	SubmitField string `yaml:"submit_field"`
	MaxMemory   int64  `yaml:"max_memory"`
}

type Templates struct {
	// Dir overlays templates on disk on top of the embedded ones.
	Dir string `yaml:"dir"`
}

type Log struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		Server: Server{
			Addr:            ":8080",
			ReadTimeout:     15 * time.Second,
			WriteTimeout:    30 * time.Second,
			ShutdownTimeout: 10 * time.Second,
		},
		Site: Site{
			BasePath: admin.DefaultBasePath,
			Header:   admin.DefaultHeader,
			Title:    admin.DefaultTitle,
		},
		Buttons: Buttons{
			SubmitField: button.DefaultSubmitField,
			MaxMemory:   button.DefaultMaxMemory,
		},
		Log: Log{
			Level:  "info",
			Format: "text",
		},
	}
}

// Load reads path over Default. An empty path returns the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	path = strings.TrimSpace(path)
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("config: %s: %w", path, err)
	}
	return cfg, nil
}

// Validate reports every invalid setting at once.
func (c Config) Validate() error {
	var errs []error
	if strings.TrimSpace(c.Server.Addr) == "" {
		errs = append(errs, errors.New("server.addr is required"))
	}
	if c.Server.ShutdownTimeout < 0 {
		errs = append(errs, errors.New("server.shutdown_timeout must not be negative"))
	}
	if base := strings.TrimSpace(c.Site.BasePath); base != "" && !strings.HasPrefix(base, "/") {
		errs = append(errs, fmt.Errorf("site.base_path %q must start with /", base))
	}
	if c.Buttons.MaxMemory < 0 {
		errs = append(errs, errors.New("buttons.max_memory must not be negative"))
	}
	if c.Buttons.SubmitField != "" && strings.ContainsAny(c.Buttons.SubmitField, " \t&=") {
		errs = append(errs, fmt.Errorf("buttons.submit_field %q is not a valid field name", c.Buttons.SubmitField))
	}
	switch strings.ToLower(c.Log.Format) {
	case "", "text", "json":
	default:
		errs = append(errs, fmt.Errorf("log.format %q must be text or json", c.Log.Format))
	}
	return errors.Join(errs...)
}
