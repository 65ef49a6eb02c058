// Command acefit inspects a fitting dataset before any coefficients are
// produced: it loads the configurations, resolves observable keys and
// per-group weights, and prints the observation counts that the assembled
// linear system would contain.
package main

import (
	"flag"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/aceforge/acefit/dataset"
	"github.com/aceforge/acefit/metrics"
	"github.com/aceforge/acefit/report"
)

func main() {
	var (
		configPath  = flag.String("config", "acefit.yaml", "path to the fit configuration file")
		showWeights = flag.Bool("weights", false, "print the resolved per-group weight summary")
	)
	flag.Parse()

	cfg, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "acefit: %v\n", err)
		os.Exit(1)
	}

	logger, err := newLogger(cfg.Logging.Level)
	if err != nil {
		fmt.Fprintf(os.Stderr, "acefit: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("loading dataset",
		zap.String("config", *configPath),
		zap.String("dataset", cfg.Dataset),
	)

	configs, err := dataset.Load(cfg.Dataset)
	if err != nil {
		logger.Fatal("load dataset", zap.Error(err))
	}
	logger.Info("dataset loaded", zap.Int("configurations", len(configs)))

	opts := cfg.recordOptions()
	records := make([]*dataset.Record, 0, len(configs))
	for i, c := range configs {
		rec, err := dataset.NewRecord(c, opts...)
		if err != nil {
			logger.Fatal("build record",
				zap.Int("index", i),
				zap.Error(err),
			)
		}
		records = append(records, rec)
	}

	assessment := metrics.Assess(records)
	fmt.Print(report.Dataset(assessment))

	if *showWeights {
		fmt.Println()
		fmt.Print(weightSummary(records))
	}
}

// newLogger builds a console zap logger at the requested level.
// An empty level means info.
func newLogger(level string) (*zap.Logger, error) {
	lvl := zapcore.InfoLevel
	if level != "" {
		if err := lvl.Set(level); err != nil {
			return nil, fmt.Errorf("log level %q: %w", level, err)
		}
	}
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	cfg.Encoding = "console"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	return cfg.Build()
}

// weightSummary renders the weights resolved for each group present in the
// record set, in first-seen order.
func weightSummary(records []*dataset.Record) string {
	var order []string
	seen := map[string]dataset.Weights{}
	for _, rec := range records {
		g := rec.Group()
		if _, ok := seen[g]; !ok {
			seen[g] = rec.Weights()
			order = append(order, g)
		}
	}

	var b strings.Builder
	tw := tabwriter.NewWriter(&b, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "group\tw_E\tw_F\tw_V")
	for _, g := range order {
		wt := seen[g]
		fmt.Fprintf(tw, "%s\t%g\t%g\t%g\n", g, wt.E, wt.F, wt.V)
	}
	tw.Flush()

	return b.String()
}
