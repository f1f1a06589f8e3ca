// Command report runs the analytics engine once against the configured data
// source and writes a markdown briefing, optionally with an xlsx workbook of
// the actionable tables.
package main

import (
	"context"
	"flag"
	"os"

	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/rs/zerolog"

	"merchops/adapters/excel"
	"merchops/adapters/fixture"
	"merchops/adapters/jsonfile"
	"merchops/adapters/postgres"
	"merchops/domain/sales"
	"merchops/internal/analysis/categoryops"
	"merchops/internal/config"
	"merchops/internal/logging"
	"merchops/internal/report"
	"merchops/ports"
)

func main() {
	var (
		outPath  = flag.String("out", "-", "markdown output path, - for stdout")
		xlsxPath = flag.String("xlsx", "", "optional xlsx output path")

		year        = flag.String("year", "", "season year filter")
		season      = flag.String("season", "", "season filter (Q1-Q4)")
		category    = flag.String("category", "", "category filter")
		channelType = flag.String("channel-type", "", "channel type filter")
		priceBand   = flag.String("price-band", "", "price band filter")
		lifecycle   = flag.String("lifecycle", "", "lifecycle filter")

		compareMode = flag.String("compare", "none", "compare mode: none|plan|yoy|mom")
		stMode      = flag.String("st-mode", "cumulative", "sell-through mode: cumulative|effective")
		level       = flag.String("level", "l1", "category level: l1|l2")
	)
	flag.Parse()

	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fallback := zerolog.New(os.Stderr)
		fallback.Fatal().Err(err).Msg("configuration failed")
	}
	logger := logging.New(cfg.Logging)

	source, cleanup, err := buildSource(cfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("data source setup failed")
	}
	defer cleanup()

	ctx := context.Background()
	snap, err := source.Load(ctx)
	if err != nil {
		logger.Fatal().Err(err).Msg("snapshot load failed")
	}
	logger.Info().
		Str("snapshot_id", string(snap.ID)).
		Int("facts", len(snap.Facts)).
		Msg("snapshot loaded")

	filters := sales.Filters{
		SeasonYear:  *year,
		Season:      *season,
		CategoryID:  *category,
		ChannelType: *channelType,
		PriceBand:   *priceBand,
		Lifecycle:   *lifecycle,
	}.Normalize()
	opts := categoryops.DefaultOptions()
	opts.CompareMode = categoryops.CompareMode(*compareMode)
	opts.SellThroughMode = categoryops.SellThroughMode(*stMode)
	opts.CategoryLevel = categoryops.CategoryLevel(*level)

	res := categoryops.Run(snap, filters, opts)

	md := report.Markdown(res, filters)
	if *outPath == "-" {
		os.Stdout.WriteString(md)
	} else {
		if err := os.WriteFile(*outPath, []byte(md), 0o644); err != nil {
			logger.Fatal().Err(err).Msg("write markdown failed")
		}
		logger.Info().Str("path", *outPath).Msg("markdown briefing written")
	}

	if *xlsxPath != "" {
		f, err := report.Workbook(res)
		if err != nil {
			logger.Fatal().Err(err).Msg("workbook build failed")
		}
		if err := f.SaveAs(*xlsxPath); err != nil {
			logger.Fatal().Err(err).Msg("workbook save failed")
		}
		logger.Info().Str("path", *xlsxPath).Msg("workbook written")
	}
}

func buildSource(cfg *config.Config) (ports.SnapshotSource, func(), error) {
	noop := func() {}
	switch cfg.Data.Source {
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
		return fixture.New(), noop, nil
	}
}
