// Command migrate applies the SQL files under migrations/ with Atlas.
// The atlas binary must be on PATH.
package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"os"
	"time"

	"boardinghouse/internal/handler/middleware"
	"boardinghouse/internal/pkg/config"

	"ariga.io/atlas-go-sdk/atlasexec"
	"github.com/joho/godotenv"
)

func main() {
	dir := flag.String("dir", "migrations", "directory holding the migration files and atlas.sum")
	dryRun := flag.Bool("dry-run", false, "print pending migrations without applying them")
	flag.Parse()

	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		slog.Warn("failed to read .env", "error", err)
	}

	var dbCfg config.DBConfig
	if err := config.LoadInto(&dbCfg); err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	var logCfg config.LogConfig
	if err := config.LoadInto(&logCfg); err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	middleware.NewLogger(logCfg)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	if err := migrate(ctx, *dir, dbCfg.BuildDSN(), *dryRun); err != nil {
		slog.Error("migration failed", "error", err)
		os.Exit(1)
	}
}

func migrate(ctx context.Context, dir, url string, dryRun bool) error {
	workdir, err := atlasexec.NewWorkingDir(
		atlasexec.WithMigrations(os.DirFS(dir)),
	)
	if err != nil {
		return err
	}
	defer workdir.Close()

	client, err := atlasexec.NewClient(workdir.Path(), "atlas")
	if err != nil {
		return err
	}

	res, err := client.MigrateApply(ctx, &atlasexec.MigrateApplyParams{
		URL:    url,
		DryRun: dryRun,
	})
	if err != nil {
		return err
	}

	for _, f := range res.Applied {
		slog.Info("migration applied", "file", f.Name, "version", f.Version)
	}
	slog.Info("database is up to date",
		"current", res.Current,
		"target", res.Target,
		"applied", len(res.Applied),
		"dry_run", dryRun)
	return nil
}
