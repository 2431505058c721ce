package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/studiowebux/resters/internal/analytics"
	"github.com/studiowebux/resters/internal/executor"
)

// StatsOptions contains options for printing per-endpoint stats
type StatsOptions struct {
	Analytics    *analytics.Manager
	OutputFormat string
	Stdout       io.Writer
}

// ListStats prints aggregated fetch stats, most recently called endpoint first
func ListStats(opts StatsOptions) error {
	if opts.Stdout == nil {
		opts.Stdout = os.Stdout
	}

	stats, err := opts.Analytics.PerEndpoint()
	if err != nil {
		return err
	}
	if stats == nil {
		stats = []analytics.Stats{}
	}

	switch opts.OutputFormat {
	case "json":
		enc := json.NewEncoder(opts.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(stats)

	case "yaml":
		data, err := yaml.Marshal(stats)
		if err != nil {
			return err
		}
		_, err = opts.Stdout.Write(data)
		return err

	case "text", "":
		if len(stats) == 0 {
			fmt.Fprintln(opts.Stdout, "No history")
			return nil
		}
		for _, s := range stats {
			fmt.Fprintf(opts.Stdout, "%-4s  %s\n", s.Method, s.URL)
			fmt.Fprintf(opts.Stdout, "      calls %d  ok %.0f%%  http errors %d  transport errors %d\n",
				s.TotalCalls, s.SuccessRate(), s.HTTPErrorCount, s.TransportErrors)
			fmt.Fprintf(opts.Stdout, "      avg %s  min %s  max %s  received %s\n",
				executor.FormatDuration(time.Duration(s.AvgDurationMs*float64(time.Millisecond))),
				executor.FormatDuration(time.Duration(s.MinDurationMs)*time.Millisecond),
				executor.FormatDuration(time.Duration(s.MaxDurationMs)*time.Millisecond),
				executor.FormatSize(int(s.TotalRespSize)))
			if codes := formatStatusCodes(s.StatusCodes); codes != "" {
				fmt.Fprintf(opts.Stdout, "      status %s\n", codes)
			}
		}
		return nil

	default:
		return fmt.Errorf("unknown output format %q (expected text, json or yaml)", opts.OutputFormat)
	}
}

// formatStatusCodes renders "200x3 404x1" in ascending code order
func formatStatusCodes(codes map[int]int) string {
	keys := make([]int, 0, len(codes))
	for code := range codes {
		keys = append(keys, code)
	}
	sort.Ints(keys)

	parts := make([]string, 0, len(keys))
	for _, code := range keys {
		parts = append(parts, fmt.Sprintf("%dx%d", code, codes[code]))
	}
	return strings.Join(parts, " ")
}
