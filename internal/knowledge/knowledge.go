// Package knowledge holds the construction sequencing table shared by the
// prompt builder and anything that needs to reason about trade ordering.
package knowledge

import (
	_ "embed"
	"fmt"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed sequencing.yaml
var sequencingYAML []byte

// Phase is one step of the canonical construction order.
type Phase struct {
	Name   string   `yaml:"name"`
	Trades []string `yaml:"trades"`
}

// Table is the versioned sequencing knowledge.
type Table struct {
	Version         string   `yaml:"version"`
	Phases          []Phase  `yaml:"phases"`
	TradeCategories []string `yaml:"trade_categories"`
}

var (
	defaultOnce  sync.Once
	defaultTable Table
)

// Default returns the embedded table. It panics if the embedded file is
// invalid, which a test catches at build time.
func Default() Table {
	defaultOnce.Do(func() {
		t, err := Parse(sequencingYAML)
		if err != nil {
			panic(fmt.Sprintf("knowledge: embedded sequencing table: %v", err))
		}
		defaultTable = t
	})
	return defaultTable
}

// Parse decodes and validates a sequencing table.
func Parse(data []byte) (Table, error) {
	var t Table
	if err := yaml.Unmarshal(data, &t); err != nil {
		return Table{}, fmt.Errorf("decoding sequencing table: %w", err)
	}
	if err := t.Validate(); err != nil {
		return Table{}, err
	}
	return t, nil
}

// Validate checks that every phase trade is a known category and that no
// trade appears in two phases.
func (t Table) Validate() error {
	if t.Version == "" {
		return fmt.Errorf("sequencing table: version is required")
	}
	if len(t.Phases) == 0 {
		return fmt.Errorf("sequencing table: at least one phase is required")
	}
	known := make(map[string]bool, len(t.TradeCategories))
	for _, c := range t.TradeCategories {
		known[c] = true
	}
	seen := make(map[string]string)
	for _, p := range t.Phases {
		for _, trade := range p.Trades {
			if !known[trade] {
				return fmt.Errorf("sequencing table: phase %q lists unknown trade %q", p.Name, trade)
			}
			if prev, dup := seen[trade]; dup {
				return fmt.Errorf("sequencing table: trade %q in both %q and %q", trade, prev, p.Name)
			}
			seen[trade] = p.Name
		}
	}
	return nil
}

// PhaseIndex returns the position of the phase that owns trade, or -1.
// Matching ignores case and surrounding spaces.
func (t Table) PhaseIndex(trade string) int {
	trade = strings.ToLower(strings.TrimSpace(trade))
	for i, p := range t.Phases {
		for _, tr := range p.Trades {
			if tr == trade {
				return i
			}
		}
	}
	return -1
}

// Precedes reports whether trade a belongs to a strictly earlier phase than b.
// Unknown trades never precede anything.
func (t Table) Precedes(a, b string) bool {
	ia, ib := t.PhaseIndex(a), t.PhaseIndex(b)
	return ia >= 0 && ib >= 0 && ia < ib
}
