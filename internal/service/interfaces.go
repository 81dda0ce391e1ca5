package service

import (
	"context"

	"github.com/alexanderramin/chantier/internal/domain"
	"github.com/alexanderramin/chantier/internal/importer"
)

// ImportResult summarizes a completed import.
type ImportResult struct {
	Project     *domain.Project
	PhaseCount  int
	LotCount    int
	TaskCount   int
	LegacyCount int
}

type ImportService interface {
	ImportProject(ctx context.Context, filePath string) (*ImportResult, error)
	ImportProjectFromSchema(ctx context.Context, schema *importer.ImportSchema) (*ImportResult, error)
	// SeedDemo imports the bundled demonstration project.
	SeedDemo(ctx context.Context) (*ImportResult, error)
}
