package main

import (
	"context"
	"fmt"
	"os/exec"
	"runtime"
	"strings"
	"time"
)

type Benchmark struct {
	Warmup      int
	Attempts    int
	ClearCaches bool
}

func clearCaches() error {
	switch runtime.GOOS {
	case "linux":
		if err := exec.Command("sync").Run(); err != nil {
			return err
		}
		if err := exec.Command("sh", "-c", "echo 3 | sudo tee /proc/sys/vm/drop_caches").Run(); err != nil {
			return err
		}
		return nil
	case "darwin":
		if err := exec.Command("sync").Run(); err != nil {
			return err
		}
		if err := exec.Command("purge").Run(); err != nil {
			return err
		}
		return nil
	}
	return fmt.Errorf("unable to clear caches for platform '%v'", runtime.GOOS)
}

func (b *Benchmark) clearCachesIfNeeded() error {
	if !b.ClearCaches {
		return nil
	}
	Logger.Info("clear caches")
	return clearCaches()
}

func (b *Benchmark) runShell(ctx context.Context, command string) ([]string, error) {
	cmd := exec.CommandContext(ctx, "bash", "-c", command)
	output, err := cmd.CombinedOutput()
	if err != nil {
		return nil, fmt.Errorf("err=%w, out=%v", err, string(output))
	}
	return strings.Split(string(output), "\n"), nil
}

func (b *Benchmark) WarmupCmd(ctx context.Context, command string) error {
	for i := 0; i < b.Warmup; i++ {
		Logger.Infof("running warmup #%v/%v cmd %v", i+1, b.Warmup, command)
		_, err := b.runShell(ctx, command)
		if err != nil {
			return fmt.Errorf("warmup #%v failed: %w", i, err)
		}
	}
	return nil
}

// RunCmd executes the command Attempts times and records wall-clock
// seconds per attempt. Output lines of the last attempt are returned
// for logging.
func (b *Benchmark) RunCmd(ctx context.Context, command string) ([]CaseResult, []string, error) {
	var lines []string
	var results []CaseResult
	for i := 0; i < b.Attempts; i++ {
		err := b.clearCachesIfNeeded()
		if err != nil {
			return nil, nil, err
		}

		Logger.Infof("running workload #%v/%v cmd %v", i+1, b.Attempts, command)

		start := time.Now()
		lines, err = b.runShell(ctx, command)
		elapsed := time.Since(start)

		if err != nil {
			return nil, nil, fmt.Errorf("run #%v failed: %w", i, err)
		}

		results = append(results, CaseResult{
			TotalTime: elapsed.Seconds(),
			Attempts:  1,
		})
	}
	return results, lines, nil
}
