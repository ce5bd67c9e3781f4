package main

import (
	"fmt"
	"strings"
)

type Placement string

const (
	PlacementLocal   Placement = "local"
	PlacementCluster Placement = "cluster"
)

func ParsePlacement(value string) (Placement, error) {
	switch Placement(value) {
	case PlacementLocal, PlacementCluster:
		return Placement(value), nil
	}
	return "", fmt.Errorf("unknown placement '%v' (expected local or cluster)", value)
}

// Case is one client invocation within a suite. Command is a complete
// shell string, ready to hand to `bash -c`. Disabled cases stay in the
// table so the exclusion is visible, but are never executed.
type Case struct {
	Label   string
	Command string
	Enabled bool
}

// Suite names key downstream report file paths, so they must not
// contain characters that need shell escaping.
type Suite struct {
	Name      string
	Placement Placement
	Cases     []Case
}

func (s *Suite) ActiveCases() []Case {
	active := make([]Case, 0, len(s.Cases))
	for _, c := range s.Cases {
		if c.Enabled {
			active = append(active, c)
		}
	}
	return active
}

// Registry holds the ordered suite catalog. Order is significant for
// report layout, not for execution correctness.
type Registry struct {
	suites []Suite
}

func NewRegistry(suites []Suite) (*Registry, error) {
	registry := &Registry{suites: suites}
	if err := registry.validate(); err != nil {
		return nil, err
	}
	return registry, nil
}

func (r *Registry) Suites() []Suite { return r.suites }

func shellSafeName(name string) bool {
	for _, c := range name {
		switch {
		case c >= 'a' && c <= 'z':
		case c >= 'A' && c <= 'Z':
		case c >= '0' && c <= '9':
		case c == '_' || c == '-' || c == '.':
		default:
			return false
		}
	}
	return true
}

func (r *Registry) validate() error {
	seen := make(map[string]bool, len(r.suites))
	for _, suite := range r.suites {
		if suite.Name == "" {
			return fmt.Errorf("suite with empty name")
		}
		if !shellSafeName(suite.Name) {
			return fmt.Errorf("suite name '%v' contains characters that need shell escaping", suite.Name)
		}
		if seen[suite.Name] {
			return fmt.Errorf("duplicate suite name '%v'", suite.Name)
		}
		seen[suite.Name] = true
		if _, err := ParsePlacement(string(suite.Placement)); err != nil {
			return fmt.Errorf("suite %v: %w", suite.Name, err)
		}
		if len(suite.Cases) == 0 {
			return fmt.Errorf("suite %v has no cases", suite.Name)
		}
		for i, c := range suite.Cases {
			if c.Label == "" {
				return fmt.Errorf("suite %v: case #%v has empty label", suite.Name, i)
			}
			if strings.TrimSpace(c.Command) == "" {
				return fmt.Errorf("suite %v: case %v has empty command", suite.Name, c.Label)
			}
		}
	}
	return nil
}
