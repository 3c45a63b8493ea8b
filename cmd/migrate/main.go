package main

import (
	"context"
	"flag"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/corehr/employee-api/internal/infrastructure/config"
	"github.com/corehr/employee-api/internal/infrastructure/db/postgres"
	"github.com/corehr/employee-api/pkg/logger"
)

func main() {
	flag.Usage = func() {
		fmt.Fprintln(flag.CommandLine.Output(), "usage: migrate [up|down|drop|version]")
		flag.PrintDefaults()
	}
	flag.Parse()

	action := "up"
	if flag.NArg() > 0 {
		action = flag.Arg(0)
	}

	cfg, err := config.Load(context.Background())
	if err != nil {
		bootLog := logger.Get()
		bootLog.Fatal().Err(err).Msg("failed to load config")
	}
	log := logger.Init(logger.Options{Level: cfg.LogLevel, Pretty: true, Service: "migrate"})

	if err := runMigration(action, cfg.Database.URL, log); err != nil {
		log.Fatal().Err(err).Str("action", action).Msg("migration failed")
	}
	log.Info().Str("action", action).Msg("migration completed")
}

func runMigration(action, databaseURL string, log zerolog.Logger) (err error) {
	m, err := postgres.NewMigrator(databaseURL)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := m.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()

	switch action {
	case "up":
		return m.Up()
	case "down":
		return m.Down()
	case "drop":
		return m.Drop()
	case "version":
		version, dirty, ok, err := m.Version()
		if err != nil {
			return err
		}
		if !ok {
			log.Info().Msg("no migration applied")
			return nil
		}
		log.Info().Uint("version", version).Bool("dirty", dirty).Msg("current schema version")
		return nil
	default:
		return fmt.Errorf("unsupported action %q", action)
	}
}
