package importer

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// ImportSchema is the top-level structure of a project file.
type ImportSchema struct {
	Project ProjectImport `json:"project" yaml:"project"`
	Phases  []PhaseImport `json:"phases" yaml:"phases"`
	Lots    []LotImport   `json:"lots" yaml:"lots"`
	Tasks   []TaskImport  `json:"tasks" yaml:"tasks"`
}

type ProjectImport struct {
	Name    string   `json:"name" yaml:"name"`
	Type    *string  `json:"type,omitempty" yaml:"type,omitempty"`
	Status  *string  `json:"status,omitempty" yaml:"status,omitempty"`
	Address string   `json:"address,omitempty" yaml:"address,omitempty"`
	City    string   `json:"city,omitempty" yaml:"city,omitempty"`
	Budget  *float64 `json:"budget,omitempty" yaml:"budget,omitempty"`
}

type PhaseImport struct {
	Ref   string `json:"ref" yaml:"ref"`
	Name  string `json:"name" yaml:"name"`
	Order int    `json:"order" yaml:"order"`
}

// LotImport is an intervention. Dates are YYYY-MM-DD.
type LotImport struct {
	Ref             string   `json:"ref" yaml:"ref"`
	PhaseRef        string   `json:"phase_ref" yaml:"phase_ref"`
	Name            string   `json:"name" yaml:"name"`
	TradeType       *string  `json:"trade_type,omitempty" yaml:"trade_type,omitempty"`
	Status          string   `json:"status,omitempty" yaml:"status,omitempty"`
	StartDate       *string  `json:"start_date,omitempty" yaml:"start_date,omitempty"`
	EndDate         *string  `json:"end_date,omitempty" yaml:"end_date,omitempty"`
	Progress        int      `json:"progress,omitempty" yaml:"progress,omitempty"`
	Company         *string  `json:"company,omitempty" yaml:"company,omitempty"`
	EstimatedBudget *float64 `json:"estimated_budget,omitempty" yaml:"estimated_budget,omitempty"`
	ActualBudget    *float64 `json:"actual_budget,omitempty" yaml:"actual_budget,omitempty"`
	Order           int      `json:"order" yaml:"order"`
}

// TaskImport is a task. Without lot_ref it is stored as a flat project task.
type TaskImport struct {
	LotRef      string  `json:"lot_ref,omitempty" yaml:"lot_ref,omitempty"`
	Title       string  `json:"title" yaml:"title"`
	Status      string  `json:"status,omitempty" yaml:"status,omitempty"`
	StartDate   *string `json:"start_date,omitempty" yaml:"start_date,omitempty"`
	DueDate     *string `json:"due_date,omitempty" yaml:"due_date,omitempty"`
	CompletedAt *string `json:"completed_at,omitempty" yaml:"completed_at,omitempty"`
	Order       int     `json:"order" yaml:"order"`
}

//go:embed demo.yaml
var demoYAML []byte

// Demo returns the bundled demonstration project.
func Demo() (*ImportSchema, error) {
	return Parse(demoYAML, "yaml")
}

// LoadImportSchema reads a project file. Files ending in .json are decoded
// as JSON, everything else as YAML.
func LoadImportSchema(path string) (*ImportSchema, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	format := "yaml"
	if strings.EqualFold(filepath.Ext(path), ".json") {
		format = "json"
	}
	return Parse(data, format)
}

// Parse decodes data in the given format ("json" or "yaml").
func Parse(data []byte, format string) (*ImportSchema, error) {
	var schema ImportSchema
	switch format {
	case "json":
		if err := json.Unmarshal(data, &schema); err != nil {
			return nil, fmt.Errorf("parsing import file: %w", err)
		}
	case "yaml":
		if err := yaml.Unmarshal(data, &schema); err != nil {
			return nil, fmt.Errorf("parsing import file: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported import format %q", format)
	}
	return &schema, nil
}
