package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/joeshaw/envdecode"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/Neumenon/attrs/attr"
)

// Config holds the CLI settings. Values come from the environment; flags
// given on the command line take precedence.
type Config struct {
	// LogLevel is a zap level name. ENV: ATTR_LOG_LEVEL
	LogLevel zapcore.Level `env:"ATTR_LOG_LEVEL,default=info"`
	// Registry is the path of a YAML registry file. ENV: ATTR_REGISTRY
	Registry string `env:"ATTR_REGISTRY"`
	// Output is one of text, json or yaml. ENV: ATTR_OUTPUT
	Output string `env:"ATTR_OUTPUT,default=text"`
}

// loadConfig reads Config from the environment.
func loadConfig() (Config, error) {
	var cfg Config
	if err := envdecode.Decode(&cfg); err != nil && !errors.Is(err, envdecode.ErrNoTargetFieldsAreSet) {
		return Config{}, fmt.Errorf("read environment: %w", err)
	}
	return cfg, nil
}

func (c Config) validate() error {
	switch c.Output {
	case outputText, outputJSON, outputYAML:
		return nil
	}
	return fmt.Errorf("unknown output format %q (want text, json or yaml)", c.Output)
}

func newLogger(cfg Config, verbose bool) (*zap.Logger, error) {
	config := zap.NewProductionConfig()
	config.Level = zap.NewAtomicLevelAt(cfg.LogLevel)
	if verbose {
		config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	logger, err := config.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	return logger, nil
}

// loadRegistry returns the default registry extended with the declarations
// of path. An empty path leaves the default registry as is.
func loadRegistry(path string, logger *zap.Logger) (*attr.Registry, error) {
	reg := attr.NewRegistry()
	reg.Merge(attr.DefaultRegistry())
	if path == "" {
		return reg, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open registry: %w", err)
	}
	defer f.Close()
	if err := reg.Load(f); err != nil {
		return nil, err
	}
	logger.Debug("registry loaded",
		zap.String("path", path),
		zap.Strings("enums", reg.EnumTypes()),
		zap.Strings("types", reg.TypeNames()))
	return reg, nil
}
