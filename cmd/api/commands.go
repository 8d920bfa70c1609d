package main

import (
	"context"
	"errors"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"storeadmin/internal/cache"
	"storeadmin/internal/database"
	"storeadmin/internal/database/migration"
	"storeadmin/internal/logger"
	"storeadmin/internal/mail"
	"storeadmin/internal/repository/postgres"
	"storeadmin/internal/scheduler"
	"storeadmin/internal/seed"
)

func runMigrate(ctx context.Context) error {
	cfg, log := bootstrap()
	defer func() { _ = logger.Sync() }()

	db, err := database.NewPostgres(cfg.Database, log)
	if err != nil {
		return fail(log, "failed to connect to database", err)
	}
	defer db.Close()

	if err := migration.EnsureMigrated(ctx, db, log, cfg.Database.Host); err != nil {
		return fail(log, "failed to migrate database", err)
	}
	return nil
}

func seedCmd() *cobra.Command {
	var file string
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Load users, products and promotions from a YAML catalog",
		RunE: func(cmd *cobra.Command, args []string) error {
			if file == "" {
				return errors.New("--file is required")
			}
			return runSeed(cmd.Context(), file)
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", "path to the catalog YAML")
	return cmd
}

func runSeed(ctx context.Context, file string) error {
	cfg, log := bootstrap()
	defer func() { _ = logger.Sync() }()

	catalog, err := seed.LoadFile(file)
	if err != nil {
		return fail(log, "failed to read catalog", err)
	}

	db, err := database.NewPostgres(cfg.Database, log)
	if err != nil {
		return fail(log, "failed to connect to database", err)
	}
	defer db.Close()

	if err := migration.EnsureMigrated(ctx, db, log, cfg.Database.Host); err != nil {
		return fail(log, "failed to migrate database", err)
	}

	// Seeding creates catalog rows only; images, mail and shared caches are not involved.
	svc := newServices(cfg, db, nil, cache.NewMemory(cfg.Cache.Prefix, cfg.Cache.DefaultMemTTL), nil, mail.New(cfg.SMTP, log))

	res, err := seed.NewSeeder(postgres.NewUserPostgres(db), svc.products, svc.promotions, log.Named("seed")).Apply(ctx, catalog)
	if err != nil {
		return fail(log, "seed failed", err)
	}
	log.Info("seed finished", zap.Int("created", res.Created), zap.Int("skipped", res.Skipped))
	return nil
}

func runJobCmd() *cobra.Command {
	return &cobra.Command{
		Use:       "run-job <name>",
		Short:     "Run one maintenance job immediately and exit",
		Long:      "Jobs: " + strings.Join(scheduler.JobNames, ", ") + ".",
		Args:      cobra.ExactArgs(1),
		ValidArgs: scheduler.JobNames,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runJob(cmd.Context(), args[0])
		},
	}
}

func runJob(ctx context.Context, name string) error {
	cfg, log := bootstrap()
	defer func() { _ = logger.Sync() }()

	db, err := database.NewPostgres(cfg.Database, log)
	if err != nil {
		return fail(log, "failed to connect to database", err)
	}
	defer db.Close()

	if err := migration.EnsureMigrated(ctx, db, log, cfg.Database.Host); err != nil {
		return fail(log, "failed to migrate database", err)
	}

	cacheClient, err := cache.New(cfg.Redis, cfg.Cache, log)
	if err != nil {
		return fail(log, "failed to initialize cache", err)
	}
	defer cacheClient.Close()

	svc := newServices(cfg, db, nil, cacheClient, nil, mail.New(cfg.SMTP, log))
	sched, err := scheduler.New(log.Named("scheduler"),
		scheduler.Jobs(cfg.Scheduler, svc.organizations, svc.memberships, svc.promotions)...)
	if err != nil {
		return fail(log, "failed to configure scheduler", err)
	}
	if _, err := sched.RunNow(ctx, name); err != nil {
		return fail(log, "job failed", err)
	}
	return nil
}
