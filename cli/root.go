// Package cli implements the ticker-search command line.
package cli

import (
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"ticker-search/catalog"
	"ticker-search/config"
	"ticker-search/loader"
	"ticker-search/logger"
)

type app struct {
	envFile     string
	catalogPath string
	cfg         *config.Config
}

// NewRootCmd builds the command tree.
func NewRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "ticker-search",
		Short: "Ticker search and autocomplete",
		Long: `Ticker search and autocomplete over an in-memory instrument catalog.

Commands:
    serve       HTTP API (/search, /api/instrument, /api/market-pulse, /metrics)
    query       rank instruments for one query
    tui         interactive autocomplete with market pulse lookups
    catalog     validate or export catalog files
`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.init()
		},
	}

	root.PersistentFlags().StringVar(&a.envFile, "env-file", "", "env file to load (default is .env)")
	root.PersistentFlags().StringVar(&a.catalogPath, "catalog", "", "catalog file (.yaml or .csv); overrides CATALOG_PATH")

	root.AddCommand(
		newServeCmd(a),
		newQueryCmd(a),
		newTUICmd(a),
		newCatalogCmd(a),
	)
	return root
}

// Execute runs the root command.
func Execute() error {
	return NewRootCmd().Execute()
}

func (a *app) init() error {
	var files []string
	if a.envFile != "" {
		files = append(files, a.envFile)
	}
	cfg, err := config.Load(files...)
	if err != nil {
		return err
	}
	if a.catalogPath != "" {
		cfg.Catalog.Path = a.catalogPath
	}
	a.cfg = cfg

	return logger.Init(a.loggerConfig())
}

func (a *app) loggerConfig() logger.Config {
	return logger.Config{
		Level:         a.cfg.Logging.Level,
		Format:        a.cfg.Logging.Format,
		FilePath:      a.cfg.Logging.FilePath,
		RotationSize:  a.cfg.Logging.RotationSize,
		RetentionDays: a.cfg.Logging.RetentionDays,
		ServiceName:   "ticker-search",
	}
}

// loadCatalog returns the configured catalog, or the builtin one.
func (a *app) loadCatalog() (*catalog.Catalog, error) {
	if a.cfg.Catalog.Path == "" {
		return loader.Builtin()
	}
	cat, err := loader.LoadCatalog(a.cfg.Catalog.Path)
	if err != nil {
		return nil, err
	}
	log.Info().Str("path", a.cfg.Catalog.Path).Int("instruments", cat.Len()).Msg("Catalog loaded")
	return cat, nil
}
