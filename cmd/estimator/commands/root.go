// Package commands implements the estimator command line.
package commands

import (
	"database/sql"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	"Estimator/internal/auth"
	"Estimator/internal/calc/microgreens"
	"Estimator/internal/calc/report"
	"Estimator/internal/calc/tools"
	"Estimator/internal/config"
	"Estimator/internal/logger"
	"Estimator/internal/repo"
)

// app is the state shared by the subcommands once the root pre-run loaded
// the configuration.
type app struct {
	cfg     *config.Config
	catalog microgreens.Catalog
	sources map[string]report.Source
	db      *sql.DB

	configPath  string
	catalogPath string
	jsonLog     bool
	pdfPath     string
	project     string
	author      string
}

// Execute runs the command line. The database and the logger are released
// afterwards, also when a command fails.
func Execute() error {
	a := &app{}
	return a.execute(a.rootCmd())
}

func NewRootCmd() *cobra.Command { return (&app{}).rootCmd() }

func (a *app) execute(root *cobra.Command) error {
	defer a.close()
	return root.Execute()
}

func (a *app) rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "estimator",
		Short: "Engineering estimates for flight, energy and container farming",
		Long: `Estimator computes physical and financial estimates with unit checked
quantities: standard atmosphere, hydrogen storage, quad-copter flight,
solar panel area and microgreens container farms.

Every report prints as text; --pdf also writes it to a PDF file.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup()
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&a.configPath, "config", "", "config file (default ./estimator.toml)")
	flags.StringVar(&a.catalogPath, "catalog", "", "plant catalog CSV, overrides catalog.path")
	flags.BoolVar(&a.jsonLog, "json-log", false, "log as JSON")
	flags.StringVar(&a.pdfPath, "pdf", "", "also write the report as PDF to this file")
	flags.StringVar(&a.project, "project", "", "project name printed on the PDF")
	flags.StringVar(&a.author, "author", "", "author printed on the PDF")

	for _, rc := range reportCommands {
		root.AddCommand(a.reportCmd(rc))
	}
	root.AddCommand(a.allCmd(), a.catalogCmd())
	return root
}

func (a *app) setup() error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	if err := logger.Initialize(a.jsonLog || cfg.Log.JSON, cfg.Log.Level); err != nil {
		return err
	}
	a.cfg = cfg

	switch {
	case a.catalogPath != "":
		a.catalog = microgreens.FileCatalog{Path: a.catalogPath}
	case cfg.Database.URL != "":
		if a.db, err = auth.InitDB(cfg.Database.URL); err != nil {
			return err
		}
		a.catalog = repo.NewPostgresCatalogDB(a.db)
	default:
		a.catalog = microgreens.FileCatalog{Path: cfg.Catalog.Path}
	}
	a.sources = tools.Sources(tools.Microgreens(cfg.Microgreens, a.catalog))
	return nil
}

func (a *app) close() {
	if a.db != nil {
		if err := a.db.Close(); err != nil {
			logger.Logger.Warnw("closing database", "error", err)
		}
		a.db = nil
	}
	logger.Sync()
}

// database opens the configured database for commands that need one.
func (a *app) database() (*sql.DB, error) {
	if a.db != nil {
		return a.db, nil
	}
	if a.cfg.Database.URL == "" {
		return nil, errors.WithHint(errors.Wrap(config.ErrMissingSetting, "database.url"),
			"set ESTIMATOR_DATABASE_URL or database.url in the config file")
	}
	db, err := auth.InitDB(a.cfg.Database.URL)
	if err != nil {
		return nil, err
	}
	a.db = db
	return db, nil
}
