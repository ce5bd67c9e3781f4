package main

import (
	"context"
	"database/sql"
	"fmt"
	"runtime"

	"github.com/shirou/gopsutil/cpu"
	"github.com/shirou/gopsutil/host"
	"github.com/shirou/gopsutil/mem"
)

// System sequences one benchmark run: suites in declaration order,
// active cases in declaration order, results to the database (when
// configured) and a CSV report per suite.
type System struct {
	config    Config
	registry  *Registry
	storage   *Storage
	benchmark Benchmark
}

type SysInfo struct {
	Arch     string
	Hostname string
	Platform string
	CPUCount int
	CPUFreq  float64
	RAM      float64
}

func HostStat() SysInfo {
	hostStat, _ := host.Info()
	cpuStat, _ := cpu.Info()
	vmStat, _ := mem.VirtualMemory()
	totalFreq := 0.0
	for _, cpu := range cpuStat {
		totalFreq += cpu.Mhz
	}
	info := SysInfo{
		Arch:     runtime.GOARCH,
		Hostname: hostStat.Hostname,
		Platform: hostStat.Platform,
		CPUCount: len(cpuStat),
		CPUFreq:  totalFreq / float64(max(len(cpuStat), 1)) * 1000,
		RAM:      float64(vmStat.Total) / 1024 / 1024 / 1024,
	}
	return info
}

func NewSystem(config Config, registry *Registry) *System {
	system := &System{
		config:   config,
		registry: registry,
		benchmark: Benchmark{
			Warmup:      config.Warmup,
			Attempts:    config.Attempts,
			ClearCaches: config.ClearCaches,
		},
	}
	if config.ResultsDbUrl != "" {
		system.storage = &Storage{Url: config.ResultsDbUrl}
	}
	return system
}

func (s *System) Run(ctx context.Context) error {
	Logger.Infof("start benchmark, placement %v", s.config.Placement)

	info := HostStat()
	Logger.Infof("host stat: %+v", info)

	var db *sql.DB
	if s.storage != nil {
		var err error
		db, err = s.storage.Connect()
		if err != nil {
			return fmt.Errorf("unable to connect to the results db: %w", err)
		}
		defer db.Close()

		err = s.storage.InitResultsDb(db, map[string]any{
			"placement": s.config.Placement,
			"arch":      info.Arch,
			"hostname":  info.Hostname,
			"platform":  info.Platform,
			"ram":       info.RAM,
			"cpu":       info.CPUCount,
			"freq":      info.CPUFreq,
		})
		if err != nil {
			return fmt.Errorf("unable to initialize results db: %w", err)
		}
	}

	for _, suite := range s.registry.Suites() {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if suite.Placement != s.config.Placement {
			Logger.Infof("skip suite %v: placement %v does not match run placement %v",
				suite.Name, suite.Placement, s.config.Placement)
			continue
		}
		if err := s.RunSuite(ctx, db, suite); err != nil {
			return fmt.Errorf("failed to run suite %v: %w", suite.Name, err)
		}
	}
	return nil
}

// orderResultsByCases arranges per-attempt results in case declaration
// order, which is what the report layout follows. Results for labels
// no longer present in the suite's active cases are dropped.
func orderResultsByCases(suite Suite, results []CaseResult) []CaseResult {
	grouped := make(map[string][]CaseResult)
	for _, result := range results {
		grouped[result.Label] = append(grouped[result.Label], result)
	}
	ordered := make([]CaseResult, 0, len(results))
	for _, c := range suite.ActiveCases() {
		ordered = append(ordered, grouped[c.Label]...)
	}
	return ordered
}

func (s *System) RunSuite(ctx context.Context, db *sql.DB, suite Suite) error {
	Logger.Infof("running suite %v", suite.Name)

	written := make(map[string]bool)
	if db != nil {
		var err error
		written, err = s.storage.WrittenCases(db, suite.Name)
		if err != nil {
			return fmt.Errorf("failed to fetch written cases: %w", err)
		}
	}

	results := make([]CaseResult, 0)
	for _, c := range suite.ActiveCases() {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if written[c.Label] {
			Logger.Infof("skip case %v/%v: measurements already stored", suite.Name, c.Label)
			continue
		}
		Logger.Infof("running case %v/%v", suite.Name, c.Label)

		err := s.benchmark.WarmupCmd(ctx, c.Command)
		if err != nil {
			return fmt.Errorf("failed to warmup case %v: %w", c.Label, err)
		}
		local, lines, err := s.benchmark.RunCmd(ctx, c.Command)
		if err != nil {
			return fmt.Errorf("failed to run case %v: %w", c.Label, err)
		}
		Logger.Debugf("case %v/%v produced %v output lines", suite.Name, c.Label, len(lines))

		for i := range local {
			local[i].Suite = suite.Name
			local[i].Label = c.Label
		}
		if db != nil {
			if err := s.storage.UpdateResultsDb(db, local); err != nil {
				return fmt.Errorf("failed to store results for case %v: %w", c.Label, err)
			}
		}
		results = append(results, local...)
	}

	if db != nil {
		// Summarize from the database, not the in-memory results: a
		// resumed run must report every measured case of the suite,
		// not only the freshly executed ones.
		stored, err := s.storage.SuiteResults(db, suite.Name)
		if err != nil {
			return fmt.Errorf("failed to fetch stored results: %w", err)
		}
		results = orderResultsByCases(suite, stored)
	}
	if len(results) == 0 {
		Logger.Infof("suite %v: nothing to report", suite.Name)
		return nil
	}
	path, err := WriteSuiteReport(s.config.ReportDir, suite.Name, Summarize(results))
	if err != nil {
		return fmt.Errorf("failed to write suite report: %w", err)
	}
	Logger.Infof("wrote suite report %v", path)
	return nil
}
