package main

import (
	"context"
	"os"

	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/rs/zerolog"

	"merchops/adapters/excel"
	"merchops/adapters/fixture"
	"merchops/adapters/jsonfile"
	"merchops/adapters/postgres"
	"merchops/internal/config"
	"merchops/internal/logging"
	"merchops/ports"
	"merchops/ui"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fallback := zerolog.New(os.Stderr)
		fallback.Fatal().Err(err).Msg("configuration failed")
	}
	logger := logging.New(cfg.Logging)

	source, cleanup, err := buildSource(cfg, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("data source setup failed")
	}
	defer cleanup()

	server := ui.NewServer(source, logger, cfg.Server.GinMode)
	if err := server.Initialize(context.Background()); err != nil {
		logger.Fatal().Err(err).Msg("initial snapshot load failed")
	}
	if err := server.Run(cfg.Server.Port); err != nil {
		logger.Fatal().Err(err).Msg("server stopped")
	}
}

// buildSource wires the configured snapshot source. The cleanup closes any
// backing connection and is safe to call unconditionally.
func buildSource(cfg *config.Config, logger zerolog.Logger) (ports.SnapshotSource, func(), error) {
	noop := func() {}
	switch cfg.Data.Source {
	case config.SourceFixture:
		logger.Warn().Msg("using generated fixture data; set DATA_SOURCE for real data")
		return fixture.New(), noop, nil
	case config.SourceJSON:
		return jsonfile.New(cfg.Data.JSONDir), noop, nil
	case config.SourceExcel:
		return excel.New(cfg.Data.ExcelFile), noop, nil
	case config.SourcePostgres:
		db, err := sqlx.Connect("postgres", cfg.Data.DatabaseURL)
		if err != nil {
			return nil, noop, err
		}
		return postgres.NewSnapshotRepository(db), func() { _ = db.Close() }, nil
	default:
		// config.Load validates the source; unreachable in practice.
		return fixture.New(), noop, nil
	}
}
