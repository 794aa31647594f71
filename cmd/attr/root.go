package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Neumenon/attrs/attr"
)

// app carries the state shared by all commands of one invocation.
type app struct {
	// flags
	verbose      bool
	output       string
	registryPath string

	cfg      Config
	logger   *zap.Logger
	registry *attr.Registry

	// ownLogger is set when the logger was built by setup and must be synced.
	ownLogger bool
}

func newRootCmd() *cobra.Command {
	return (&app{}).rootCommand()
}

func (a *app) rootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   "attr",
		Short: "Typed attribute values",
		Long: `attr infers, converts and prints typed attribute values.

Every value carries one variant of a closed catalog (INTEGER, REAL, DATE,
POINT2D, URL, ...). Text is parsed by trying the variants in catalog order;
conversions follow the catalog's assignability table.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.ownLogger {
				_ = a.logger.Sync()
			}
		},
	}

	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "Enable debug logging")
	root.PersistentFlags().StringVarP(&a.output, "output", "o", "", "Output format: text, json or yaml (env ATTR_OUTPUT)")
	root.PersistentFlags().StringVarP(&a.registryPath, "registry", "r", "", "YAML registry of enumerations and type names (env ATTR_REGISTRY)")

	root.AddCommand(
		a.parseCommand(),
		a.castCommand(),
		a.listCommand(),
		a.variantsCommand(),
		a.schemaCommand(),
		versionCommand(),
	)
	return root
}

// setup resolves the configuration and builds the logger and registry.
func (a *app) setup(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if a.output != "" {
		cfg.Output = a.output
	}
	if a.registryPath != "" {
		cfg.Registry = a.registryPath
	}
	if err := cfg.validate(); err != nil {
		return err
	}
	a.cfg = cfg

	if a.logger == nil {
		a.logger, err = newLogger(cfg, a.verbose)
		if err != nil {
			return err
		}
		a.ownLogger = true
	}

	a.registry, err = loadRegistry(cfg.Registry, a.logger)
	if err != nil {
		return err
	}
	a.logger.Debug("configured",
		zap.String("command", cmd.Name()),
		zap.String("output", cfg.Output),
		zap.String("registry", cfg.Registry))
	return nil
}
