package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/arshsnaz/zidio-job-platform-sub000/internal/config"
	"github.com/arshsnaz/zidio-job-platform-sub000/internal/database/migration"
	dbpostgres "github.com/arshsnaz/zidio-job-platform-sub000/internal/database/postgres"
	"github.com/arshsnaz/zidio-job-platform-sub000/internal/database/seeder"
	"github.com/arshsnaz/zidio-job-platform-sub000/internal/pkg/logger"

	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	dir := flag.String("dir", cfg.App.MigrationsDir, "migrations directory")
	status := flag.Bool("status", false, "print migration status and exit")
	seed := flag.Bool("seed", false, "run the sample data seeders after migrating")
	timeout := flag.Duration("timeout", 2*time.Minute, "overall timeout")
	flag.Parse()

	lg := logger.New(cfg.Log.Level, cfg.Log.Format)
	defer func() { _ = lg.Sync() }()

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	db, err := dbpostgres.Connect(ctx, cfg.Database, lg)
	if err != nil {
		lg.Fatal("database connection failed", zap.Error(err))
	}
	defer func() { _ = db.Close() }()

	runner := migration.Runner{Dir: *dir, Log: lg}

	if *status {
		st, err := runner.Status(ctx, db.SQLDB())
		if err != nil {
			lg.Fatal("migration status failed", zap.Error(err))
		}
		for _, s := range st {
			state := "pending"
			if s.Applied {
				state = "applied"
			}
			fmt.Fprintf(os.Stdout, "%-8s V%d__%s\n", state, s.Version, s.Name)
		}
		return
	}

	applied, err := runner.Run(ctx, db.SQLDB())
	if err != nil {
		lg.Fatal("migration failed", zap.Error(err))
	}
	lg.Info("migrations applied", zap.Int("count", len(applied)))

	if !*seed {
		return
	}

	admin := seeder.Account{
		Name:     cfg.Seed.AdminName,
		Email:    cfg.Seed.AdminEmail,
		Password: cfg.Seed.AdminPassword,
	}
	r := seeder.Runner{Seeders: seeder.Defaults(admin, cfg.Seed.SamplePassword)}
	if err := r.Run(ctx, db); err != nil {
		lg.Fatal("seeding failed", zap.Error(err))
	}
	lg.Info("seed data loaded")
}
