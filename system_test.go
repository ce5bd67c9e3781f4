package main

import (
	"context"
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSystemRun(t *testing.T) {
	dir := t.TempDir()
	registry, err := NewRegistry([]Suite{
		{
			Name:      "Local_Echo",
			Placement: PlacementLocal,
			Cases: []Case{
				{Label: "slow-client", Command: "echo slow", Enabled: true},
				{Label: "fast-client", Command: "echo fast", Enabled: true},
				{Label: "legacy-client", Command: "echo legacy", Enabled: false},
			},
		},
		{
			Name:      "Cluster_Echo",
			Placement: PlacementCluster,
			Cases: []Case{
				{Label: "impala", Command: "echo cluster", Enabled: true},
			},
		},
	})
	require.Nil(t, err)

	config := Config{Placement: PlacementLocal, Attempts: 2, ReportDir: dir}
	system := NewSystem(config, registry)
	require.Nil(t, system.Run(context.Background()))

	// Cluster suites are skipped on a local run, not reported.
	_, err = os.Stat(filepath.Join(dir, "Cluster_Echo.csv"))
	require.True(t, os.IsNotExist(err))

	file, err := os.Open(filepath.Join(dir, "Local_Echo.csv"))
	require.Nil(t, err)
	defer file.Close()

	rows, err := csv.NewReader(file).ReadAll()
	require.Nil(t, err)
	require.Len(t, rows, 3)
	require.Equal(t, "slow-client", rows[1][0])
	require.Equal(t, "2", rows[1][1])
	require.Equal(t, "fast-client", rows[2][0])
}

func TestSystemRunCancelled(t *testing.T) {
	registry, err := NewRegistry([]Suite{
		{
			Name:      "Local_Echo",
			Placement: PlacementLocal,
			Cases:     []Case{{Label: "impala", Command: "echo 1", Enabled: true}},
		},
	})
	require.Nil(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	system := NewSystem(Config{Placement: PlacementLocal, Attempts: 1, ReportDir: t.TempDir()}, registry)
	require.ErrorIs(t, system.Run(ctx), context.Canceled)
}

func TestOrderResultsByCases(t *testing.T) {
	suite := Suite{
		Name:      "Local_Echo",
		Placement: PlacementLocal,
		Cases: []Case{
			{Label: "impala", Command: "echo 1", Enabled: true},
			{Label: "native-client", Command: "echo 2", Enabled: true},
			{Label: "legacy-client", Command: "echo 3", Enabled: false},
		},
	}
	// Stored rows come back label-sorted and may include cases that
	// were measured before a case was disabled.
	stored := []CaseResult{
		{Suite: "Local_Echo", Label: "legacy-client", TotalTime: 9.0, Attempts: 1},
		{Suite: "Local_Echo", Label: "native-client", TotalTime: 2.0, Attempts: 1},
		{Suite: "Local_Echo", Label: "native-client", TotalTime: 2.5, Attempts: 1},
		{Suite: "Local_Echo", Label: "impala", TotalTime: 1.0, Attempts: 1},
	}
	ordered := orderResultsByCases(suite, stored)
	labels := make([]string, 0)
	for _, result := range ordered {
		labels = append(labels, result.Label)
	}
	require.Equal(t, []string{"impala", "native-client", "native-client"}, labels)

	summaries := Summarize(ordered)
	require.Len(t, summaries, 2)
	require.Equal(t, "impala", summaries[0].Label)
	require.Equal(t, "native-client", summaries[1].Label)
	require.Equal(t, 2, summaries[1].Attempts)
}
