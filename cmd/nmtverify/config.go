package main

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/urfave/cli/v2"
	"golang.org/x/xerrors"
	"gopkg.in/yaml.v3"

	"github.com/celestiaorg/nmtproof/namespace"
)

const (
	formatJSON  = "json"
	formatProto = "proto"

	defaultNamespaceSize = 8
	defaultFormat        = formatJSON
	defaultLogLevel      = "info"
)

// config holds the settings shared by all commands. Values from the config
// file are overwritten by flags and environment variables.
type config struct {
	NamespaceSize int    `yaml:"namespace_size"`
	Format        string `yaml:"format"`
	LogLevel      string `yaml:"log_level"`
}

// withDefaults returns a copy of the config with any missing fields set to
// their default values.
func (c config) withDefaults() config {
	cpy := c
	if cpy.NamespaceSize == 0 {
		cpy.NamespaceSize = defaultNamespaceSize
	}
	if cpy.Format == "" {
		cpy.Format = defaultFormat
	}
	if cpy.LogLevel == "" {
		cpy.LogLevel = defaultLogLevel
	}
	return cpy
}

func (c config) validate() error {
	if c.NamespaceSize < 0 || c.NamespaceSize > namespace.IDMaxSize {
		return xerrors.Errorf("namespace size must be in [0, %d], got %d", namespace.IDMaxSize, c.NamespaceSize)
	}
	switch c.Format {
	case formatJSON, formatProto:
	default:
		return xerrors.Errorf("unknown proof format %q, expected %q or %q", c.Format, formatJSON, formatProto)
	}
	if _, err := zerolog.ParseLevel(c.LogLevel); err != nil {
		return xerrors.Errorf("invalid log level: %w", err)
	}
	return nil
}

func (c config) namespaceSize() namespace.IDSize {
	return namespace.IDSize(c.NamespaceSize)
}

// loadConfig reads the optional config file and applies the global flags on
// top of it.
func loadConfig(c *cli.Context) (config, error) {
	cfg := config{}

	if path := c.String("config"); path != "" {
		buf, err := os.ReadFile(path)
		if err != nil {
			return cfg, xerrors.Errorf("failed to read config file: %v", err)
		}
		err = yaml.Unmarshal(buf, &cfg)
		if err != nil {
			return cfg, xerrors.Errorf("failed to unmarshal config: %v", err)
		}
	}

	if c.IsSet("namespace-size") {
		cfg.NamespaceSize = c.Int("namespace-size")
	}
	if c.IsSet("format") {
		cfg.Format = c.String("format")
	}
	if c.IsSet("log-level") {
		cfg.LogLevel = c.String("log-level")
	}

	cfg = cfg.withDefaults()
	return cfg, cfg.validate()
}
