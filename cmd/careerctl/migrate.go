package main

import (
	"errors"
	"fmt"

	"dhruvtara/internal/database/migration"
	"dhruvtara/internal/database/sqldb"
	"dhruvtara/migrations"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newMigrateCmd(root *rootOptions) *cobra.Command {
	var (
		dir    string
		dryRun bool
	)

	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending SQL migrations",
		Long:  "Apply pending SQL migrations. The schema files built into the binary are used unless --dir or MIGRATIONS_DIR points elsewhere.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, lg, err := root.setup()
			if err != nil {
				return err
			}
			defer func() { _ = lg.Sync() }()

			if !cfg.Database.Enabled() {
				return errors.New("database is not configured: set DB_HOST, DB_NAME and DB_USER")
			}
			if dir == "" {
				dir = cfg.Database.MigrationsDir
			}

			db, err := sqldb.Open(cmd.Context(), cfg.Database)
			if err != nil {
				return fmt.Errorf("connect database: %w", err)
			}
			defer db.Close()

			runner := migration.Runner{Dir: dir, FS: migrations.FS, Logger: lg}
			if dryRun {
				pending, err := runner.Pending(cmd.Context(), db.SQLDB())
				if err != nil {
					return err
				}
				for _, m := range pending {
					fmt.Fprintf(cmd.OutOrStdout(), "V%d\t%s\n", m.Version, m.Filename)
				}
				lg.Info("pending migrations", zap.Int("count", len(pending)))
				return nil
			}

			applied, err := runner.Run(cmd.Context(), db.SQLDB())
			if err != nil {
				return err
			}
			lg.Info("migrations complete", zap.Int("applied", len(applied)))
			return nil
		},
	}

	cmd.Flags().StringVar(&dir, "dir", "", "read migrations from this directory instead of the built-in set")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "list pending migrations without applying them")
	return cmd
}
