package main

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"

	"github.com/montanaflynn/stats"
)

type CaseSummary struct {
	Label    string
	Attempts int
	Mean     float64
	Min      float64
	Max      float64
	Stddev   float64
}

// Summarize groups per-attempt results by case label, preserving the
// order in which labels first appear.
func Summarize(results []CaseResult) []CaseSummary {
	order := make([]string, 0)
	grouped := make(map[string][]float64)
	for _, result := range results {
		if _, ok := grouped[result.Label]; !ok {
			order = append(order, result.Label)
		}
		grouped[result.Label] = append(grouped[result.Label], result.TotalTime)
	}
	summaries := make([]CaseSummary, 0, len(order))
	for _, label := range order {
		data := stats.Float64Data(grouped[label])
		mean, _ := stats.Mean(data)
		min, _ := stats.Min(data)
		max, _ := stats.Max(data)
		stddev := 0.0
		if len(data) > 1 {
			stddev, _ = stats.StandardDeviationSample(data)
		}
		summaries = append(summaries, CaseSummary{
			Label:    label,
			Attempts: len(grouped[label]),
			Mean:     mean,
			Min:      min,
			Max:      max,
			Stddev:   stddev,
		})
	}
	return summaries
}

// WriteSuiteReport writes the per-suite CSV named after the suite.
// The suite name is validated as shell safe, so it can key the path
// directly.
func WriteSuiteReport(dir string, suite string, summaries []CaseSummary) (string, error) {
	path := filepath.Join(dir, fmt.Sprintf("%v.csv", suite))
	file, err := os.Create(path)
	if err != nil {
		return "", err
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	header := []string{"label", "attempts", "mean_seconds", "min_seconds", "max_seconds", "stddev_seconds"}
	if err := writer.Write(header); err != nil {
		return "", err
	}
	for _, summary := range summaries {
		row := []string{
			summary.Label,
			fmt.Sprintf("%v", summary.Attempts),
			fmt.Sprintf("%.3f", summary.Mean),
			fmt.Sprintf("%.3f", summary.Min),
			fmt.Sprintf("%.3f", summary.Max),
			fmt.Sprintf("%.3f", summary.Stddev),
		}
		if err := writer.Write(row); err != nil {
			return "", err
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return "", err
	}
	return path, nil
}
