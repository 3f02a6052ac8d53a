package main

import (
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/rongwang/nyayadrishti/internal/analytics"
	"github.com/rongwang/nyayadrishti/internal/dataset"
)

var statsYears []int

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Print dataset statistics",
	Long: `Load and merge the configured CSV files and print the analytics summary.

Shows case totals, aging, mean disposal time per filing year, the stage funnel
and the busiest judges.`,
	RunE: runStats,
}

func init() {
	statsCmd.Flags().IntSliceVar(&statsYears, "year", nil, "restrict to these filing years")
	rootCmd.AddCommand(statsCmd)
}

func runStats(cmd *cobra.Command, args []string) error {
	cfg, logger, err := setup()
	if err != nil {
		return err
	}
	defer func() {
		_ = logger.Sync()
	}()

	load := dataset.FileLoader(cfg.Data.CasesPath, cfg.Data.HearingsPath, cfg.Data.ChunkSize, logger)
	ds, err := load(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to load datasets: %w", err)
	}
	s := analytics.Summarize(ds, analytics.Filter{Years: statsYears})

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, "Dataset Statistics")
	fmt.Fprintln(out, "==================")
	fmt.Fprintln(out)
	fmt.Fprintf(out, "Cases:             %s\n", humanize.Comma(int64(ds.Cases.Len())))
	fmt.Fprintf(out, "Hearings:          %s\n", humanize.Comma(int64(ds.Hearings.Len())))
	fmt.Fprintf(out, "Merged rows:       %s\n", humanize.Comma(int64(ds.Merged.Len())))
	fmt.Fprintln(out)
	fmt.Fprintf(out, "Selected cases:    %s\n", humanize.Comma(int64(s.TotalCases)))
	fmt.Fprintf(out, "Over one year:     %s\n", humanize.Comma(int64(s.OlderThanYear)))

	if len(s.DisposalTrend) > 0 {
		fmt.Fprintln(out)
		fmt.Fprintln(out, "Mean disposal days by filing year:")
		for _, ym := range s.DisposalTrend {
			fmt.Fprintf(out, "  %d  %8.1f  (%s cases)\n", ym.Year, ym.Mean, humanize.Comma(int64(ym.Cases)))
		}
	}

	printCounts := func(title string, counts []analytics.Count, limit int) {
		if len(counts) == 0 {
			return
		}
		fmt.Fprintln(out)
		fmt.Fprintln(out, title)
		for i, c := range counts {
			if i == limit {
				fmt.Fprintf(out, "  ... %d more\n", len(counts)-limit)
				break
			}
			fmt.Fprintf(out, "  %-40s %s\n", strings.TrimSpace(c.Label), humanize.Comma(int64(c.Count)))
		}
	}
	printCounts("Stage funnel:", s.StageFunnel, 15)
	printCounts("Judge workload:", s.JudgeWorkload, 10)
	return nil
}
