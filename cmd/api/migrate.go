package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/PedrohFolster/inkspiration/internal/config"
	dbpkg "github.com/PedrohFolster/inkspiration/internal/db"
	"github.com/PedrohFolster/inkspiration/internal/logger"
)

func newMigrateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database schema",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}

			log, err := logger.New(cfg)
			if err != nil {
				return err
			}
			defer func() { _ = log.Sync() }()

			db, err := dbpkg.NewDB(cfg)
			if err != nil {
				return err
			}

			if err := dbpkg.Migrate(db); err != nil {
				log.Error("migrate.failed", zap.Error(err))
				return err
			}
			return nil
		},
	}
}
