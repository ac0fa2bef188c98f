package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"admision/internal/config"
	"admision/internal/lookup"
	"admision/internal/pipeline"
	"admision/internal/storage"
)

func main() {
	cfg, err := config.Load()
	must(err)

	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.SlogLevel()}))
	slog.SetDefault(logger)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	tables, err := lookup.Load(cfg.LookupPath)
	must(err)
	svc := pipeline.NewService(cfg, tables, logger)

	cmd := os.Args[1]
	switch cmd {
	case "transform":
		res, err := svc.Transform()
		must(err)
		must(pipeline.ExportCleanToXLSX(res.Records, cfg.OutputPath))
		printTransform(res, cfg.OutputPath)
	case "run":
		res, err := svc.Transform()
		must(err)
		must(pipeline.ExportCleanToXLSX(res.Records, cfg.OutputPath))
		printTransform(res, cfg.OutputPath)
		publish(ctx, cfg, logger, res)
	case "publish":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		input := fs.String("input", cfg.OutputPath, "cleaned xlsx path")
		_ = fs.Parse(os.Args[2:])
		if strings.TrimSpace(*input) == "" {
			must(fmt.Errorf("--input is required"))
		}
		res, err := svc.FromExport(*input)
		must(err)
		fmt.Printf("read %d records from %s\n", len(res.Records), *input)
		publish(ctx, cfg, logger, res)
	default:
		usage()
		os.Exit(1)
	}
}

func publish(ctx context.Context, cfg config.Config, logger *slog.Logger, res pipeline.RunResult) {
	db, err := storage.Open(ctx, cfg, logger.With("trace", res.TraceID))
	must(err)
	defer db.Close()

	summary, err := db.Publish(ctx, res.Star)
	must(err)
	for _, t := range storage.Tables() {
		fmt.Printf("  %-16s %d\n", t.Name, summary.Rows[t.Name])
	}
	fmt.Printf("publish done driver=%s database=%s elapsed=%s\n", cfg.SinkDriver, cfg.SinkDatabase, summary.Duration.Round(time.Millisecond))
}

func printTransform(res pipeline.RunResult, output string) {
	fmt.Printf("transform done files=%d read=%d kept=%d dropped=%d facts=%d output=%s\n",
		len(res.Files), res.Stats.Read, res.Stats.Kept, res.Stats.Dropped, len(res.Star.Facts), output)
	for _, m := range res.Misses {
		fmt.Printf("  unmapped %s: %q (%d rows)\n", m.Family, m.Value, m.Count)
	}
}

func usage() {
	fmt.Println("usage: admision <command>")
	fmt.Println("commands:")
	fmt.Println("  transform                 ingest extracts, normalize and write OUTPUT_PATH")
	fmt.Println("  run                       transform, then publish the star schema to the sink")
	fmt.Println("  publish [--input=...xlsx] publish a previously exported dataset")
}

func must(err error) {
	if err == nil {
		return
	}
	fmt.Fprintf(os.Stderr, "error: %v\n", err)
	os.Exit(1)
}
