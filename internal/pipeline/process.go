package pipeline

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"admision/internal"
	"admision/internal/config"
	"admision/internal/lookup"
)

type Service struct {
	cfg    config.Config
	tables lookup.Tables
	logger *slog.Logger
}

func NewService(cfg config.Config, tables lookup.Tables, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{cfg: cfg, tables: tables, logger: logger}
}

type RunResult struct {
	TraceID  string
	Files    []string
	Stats    NormalizeStats
	Misses   []lookup.Miss
	Records  []internal.CleanRecord
	Star     internal.StarSchema
	Duration time.Duration
}

// Transform discovers the configured extracts and turns them into the cleaned
// dataset and its star schema.
func (s *Service) Transform() (RunResult, error) {
	start := time.Now()
	res := RunResult{TraceID: traceID()}
	log := s.logger.With("trace", res.TraceID)

	policy, err := lookup.ParsePolicy(s.cfg.UnmappedPolicy)
	if err != nil {
		return RunResult{}, err
	}

	res.Files, err = Discover(s.cfg.InputPattern, s.cfg.Years())
	if err != nil {
		return RunResult{}, err
	}
	if len(res.Files) == 0 {
		log.Warn("no input files matched", "pattern", s.cfg.InputPattern, "from", s.cfg.YearFrom, "to", s.cfg.YearTo)
	}
	log.Info("ingesting extracts", "files", len(res.Files))

	raw, err := LoadFiles(res.Files)
	if err != nil {
		return RunResult{}, fmt.Errorf("ingestion: %w", err)
	}

	normalizer := NewNormalizer(s.tables, lookup.NewResolver(policy, log))
	res.Records, res.Stats = normalizer.Normalize(raw)
	res.Misses = normalizer.Misses()
	log.Info("records normalized", "read", res.Stats.Read, "kept", res.Stats.Kept, "dropped", res.Stats.Dropped, "unmapped", len(res.Misses))

	res.Star = BuildStar(res.Records)
	logStar(log, res.Star)

	res.Duration = time.Since(start)
	return res, nil
}

// FromExport rebuilds the star schema from a previously exported dataset.
func (s *Service) FromExport(path string) (RunResult, error) {
	start := time.Now()
	res := RunResult{TraceID: traceID(), Files: []string{path}}
	log := s.logger.With("trace", res.TraceID)

	records, err := ReadCleanXLSX(path)
	if err != nil {
		return RunResult{}, fmt.Errorf("read export: %w", err)
	}
	res.Records = records
	res.Stats = NormalizeStats{Read: len(records), Kept: len(records)}
	res.Star = BuildStar(records)
	logStar(log, res.Star)

	res.Duration = time.Since(start)
	return res, nil
}

func logStar(log *slog.Logger, star internal.StarSchema) {
	log.Info("star schema built",
		"applicants", len(star.Applicants.Rows),
		"areas", star.Area.Len(),
		"periods", star.Period.Len(),
		"modalities", star.Modality.Len(),
		"faculties", star.Faculty.Len(),
		"careers", star.Career.Len(),
		"conditions", star.Condition.Len(),
		"scales", star.Scale.Len(),
		"years", len(star.Calendar.Years),
		"facts", len(star.Facts),
	)
}

func traceID() string {
	return uuid.New().String()
}
