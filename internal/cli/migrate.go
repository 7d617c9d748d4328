package cli

import (
	"context"
	"database/sql"
	"errors"

	"github.com/spf13/cobra"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"
	"github.com/uptrace/bun/migrate"
	"go.uber.org/zap"

	"quiz-timer-service/internal/config"
	"quiz-timer-service/internal/infra/memory"
	"quiz-timer-service/internal/infra/postgres"
	pgmigrations "quiz-timer-service/internal/infra/postgres/migrations"
)

var errNoPostgres = errors.New("postgres url not configured")

// newMigrateCmd applies database migrations and optionally seeds the question bank.
func newMigrateCmd(opts *rootOptions) *cobra.Command {
	var seed bool
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Run database migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.loadConfig()
			if err != nil {
				return err
			}
			logger, err := newLogger(cfg)
			if err != nil {
				return err
			}
			defer func() { _ = logger.Sync() }()
			return runMigrations(cmd.Context(), cfg, logger, seed)
		},
	}
	cmd.Flags().BoolVar(&seed, "seed", false, "upsert the built-in questions after migrating")
	return cmd
}

func runMigrations(ctx context.Context, cfg config.Config, logger *zap.SugaredLogger, seed bool) error {
	if cfg.Postgres.URL == "" {
		return errNoPostgres
	}

	sqldb := sql.OpenDB(pgdriver.NewConnector(pgdriver.WithDSN(cfg.Postgres.URL)))
	db := bun.NewDB(sqldb, pgdialect.New())
	defer db.Close()

	migrator := migrate.NewMigrator(db, pgmigrations.Migrations)
	if err := migrator.Init(ctx); err != nil {
		return err
	}
	group, err := migrator.Migrate(ctx)
	if err != nil {
		return err
	}
	if group.IsZero() {
		logger.Infow("no new migrations")
	} else {
		logger.Infow("migrations applied", "group", group.String())
	}

	if !seed {
		return nil
	}
	n, err := postgres.SeedQuestions(ctx, db, memory.SeedQuestions())
	if err != nil {
		return err
	}
	logger.Infow("questions seeded", "count", n)
	return nil
}
