package dataset

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/rongwang/nyayadrishti/internal/metrics"
)

// FileLoader returns a Loader that reads the two CSV files, cleans them and
// merges hearings with cases
func FileLoader(casesPath, hearingsPath string, chunkSize int, logger *zap.Logger) Loader {
	return func(ctx context.Context) (*Datasets, error) {
		start := time.Now()
		ds, err := loadFiles(ctx, casesPath, hearingsPath, chunkSize, logger)
		elapsed := time.Since(start)
		if err != nil {
			metrics.RecordDatasetLoad(false, elapsed.Seconds(), nil)
			logger.Error("dataset load failed", zap.Error(err))
			return nil, err
		}
		metrics.RecordDatasetLoad(true, elapsed.Seconds(), map[string]int{
			"cases":    ds.Cases.Len(),
			"hearings": ds.Hearings.Len(),
			"merged":   ds.Merged.Len(),
		})
		logger.Info("dataset loaded",
			zap.Int("cases", ds.Cases.Len()),
			zap.Int("hearings", ds.Hearings.Len()),
			zap.Int("merged", ds.Merged.Len()),
			zap.Duration("elapsed", elapsed),
		)
		return ds, nil
	}
}

func loadFiles(ctx context.Context, casesPath, hearingsPath string, chunkSize int, logger *zap.Logger) (*Datasets, error) {
	rawCases, err := ReadCSVFile(casesPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load cases: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	rawHearings, err := ReadCSVFile(hearingsPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load hearings: %w", err)
	}
	return Build(ctx, rawCases, rawHearings, chunkSize, logger)
}

// Build cleans raw tables and merges them. Inputs are left untouched.
func Build(ctx context.Context, rawCases, rawHearings *Table, chunkSize int, logger *zap.Logger) (*Datasets, error) {
	cases := CleanCases(rawCases)
	if dropped := rawCases.Len() - cases.Len(); dropped > 0 {
		logger.Info("dropped duplicate cases", zap.Int("rows", dropped))
	}

	hearings := CleanHearings(rawHearings)
	// Only the first hearing per case survives cleaning
	if dropped := rawHearings.Len() - hearings.Len(); dropped > 0 {
		logger.Warn("dropped hearings sharing a case identifier", zap.Int("rows", dropped))
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	merged, err := Merge(cases, hearings, chunkSize)
	if err != nil {
		return nil, fmt.Errorf("failed to merge datasets: %w", err)
	}
	return &Datasets{
		Cases:    cases,
		Hearings: hearings,
		Merged:   merged,
		LoadedAt: time.Now(),
	}, nil
}
