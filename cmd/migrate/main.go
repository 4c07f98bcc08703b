package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/Varun5711/bookmarkd/internal/config"
	"github.com/Varun5711/bookmarkd/internal/database"
	"github.com/Varun5711/bookmarkd/internal/logger"
)

const usage = "usage: migrate up|down|status|version"

func main() {
	log := logger.New("migrate")
	defer log.Sync()

	if len(os.Args) != 2 {
		fmt.Fprintln(os.Stderr, usage)
		os.Exit(2)
	}
	command := os.Args[1]

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load config: %v", err)
	}
	if cfg.Database.Driver != config.DriverPostgres {
		log.Fatal("Migrations need DB_DRIVER=postgres, got %q", cfg.Database.Driver)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	dbManager, err := database.NewDBManager(ctx, database.Config{
		PrimaryDSN:      cfg.Database.PrimaryDSN,
		MaxConns:        2,
		MinConns:        1,
		MaxConnLifetime: cfg.Database.MaxConnLifetime,
		MaxConnIdleTime: cfg.Database.MaxConnIdleTime,
	})
	if err != nil {
		log.Fatal("Failed to connect to database: %v", err)
	}
	defer dbManager.Close()

	if err := run(ctx, dbManager, command, log); err != nil {
		log.Error("%s: %v", command, err)
		dbManager.Close()
		os.Exit(1)
	}
}

func run(ctx context.Context, db *database.DBManager, command string, log *logger.Logger) error {
	switch command {
	case "up":
		if err := db.Migrate(ctx); err != nil {
			return err
		}
	case "down":
		sqlDB := db.OpenSQL()
		defer sqlDB.Close()
		if err := database.MigrateDown(ctx, sqlDB); err != nil {
			return err
		}
	case "status":
		sqlDB := db.OpenSQL()
		defer sqlDB.Close()
		return database.MigrationStatus(ctx, sqlDB)
	case "version":
	default:
		return fmt.Errorf("unknown command %q (%s)", command, usage)
	}

	sqlDB := db.OpenSQL()
	defer sqlDB.Close()
	version, err := database.MigrationVersion(ctx, sqlDB)
	if err != nil {
		return err
	}
	log.Info("Schema at version %d", version)
	return nil
}
