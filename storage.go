package main

import (
	"context"
	"database/sql"
	"fmt"
	"slices"
	"strings"
	"time"

	_ "github.com/tursodatabase/libsql-client-go/libsql"
)

// Storage keeps benchmark measurements in a libsql database so runs
// from different hosts land in one place and interrupted runs can
// resume.
type Storage struct {
	Url string
}

type CaseResult struct {
	Suite     string
	Label     string
	TotalTime float64
	Attempts  int
}

func (s *Storage) Connect() (*sql.DB, error) {
	return sql.Open("libsql", s.Url)
}

func (s *Storage) InitResultsDb(db *sql.DB, meta map[string]any) error {
	_, err := db.Exec("CREATE TABLE IF NOT EXISTS parameters (name TEXT PRIMARY KEY, value)")
	if err != nil {
		return err
	}
	parameters := make([]any, 0)
	parameters = append(parameters, "time", time.Now().Format("2006-01-02 15:04:05"))
	for key, value := range meta {
		parameters = append(parameters, key, fmt.Sprintf("%v", value))
	}
	placeholders := strings.Join(slices.Repeat([]string{"(?, ?)"}, len(parameters)/2), ", ")
	_, err = db.Exec(
		fmt.Sprintf("INSERT INTO parameters VALUES %v ON CONFLICT DO NOTHING", placeholders),
		parameters...,
	)
	if err != nil {
		return err
	}
	_, err = db.Exec(`CREATE TABLE IF NOT EXISTS measurements (
		suite TEXT,
		label TEXT,
        measurement TEXT,
        attempt INTEGER,
        value REAL,
		PRIMARY KEY (suite, label, measurement, attempt)
    )`)
	if err != nil {
		return err
	}
	Logger.Infof("initialized database for benchmark results with meta %v", meta)
	return nil
}

// WrittenCases reports which case labels of a suite already have
// measurements, so a resumed run skips them.
func (s *Storage) WrittenCases(db *sql.DB, suite string) (map[string]bool, error) {
	rows, err := db.Query("SELECT label FROM measurements WHERE suite = ?", suite)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	results := make(map[string]bool)
	for rows.Next() {
		var label string
		if err := rows.Scan(&label); err != nil {
			return nil, err
		}
		results[label] = true
	}
	return results, rows.Err()
}

// SuiteResults returns every stored per-attempt measurement of a
// suite, including rows written by earlier interrupted runs.
func (s *Storage) SuiteResults(db *sql.DB, suite string) ([]CaseResult, error) {
	rows, err := db.Query(
		"SELECT label, value FROM measurements WHERE suite = ? AND measurement = 'total_time' ORDER BY label, attempt",
		suite,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	results := make([]CaseResult, 0)
	for rows.Next() {
		result := CaseResult{Suite: suite, Attempts: 1}
		if err := rows.Scan(&result.Label, &result.TotalTime); err != nil {
			return nil, err
		}
		results = append(results, result)
	}
	return results, rows.Err()
}

func (s *Storage) UpdateResultsDb(db *sql.DB, results []CaseResult) error {
	tx, err := db.BeginTx(context.Background(), nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()
	for i, result := range results {
		_, err = tx.Exec(
			"INSERT INTO measurements VALUES (?, ?, ?, ?, ?)",
			result.Suite,
			result.Label,
			"total_time",
			i,
			result.TotalTime,
		)
		if err != nil {
			return err
		}
	}
	return tx.Commit()
}
