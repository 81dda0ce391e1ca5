package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/alexanderramin/chantier/internal/db"
	"github.com/alexanderramin/chantier/internal/importer"
	"github.com/alexanderramin/chantier/internal/knowledge"
	"github.com/alexanderramin/chantier/internal/repository"
)

type importService struct {
	uow    db.UnitOfWork
	table  knowledge.Table
	now    func() time.Time
	logger *zap.Logger
}

// NewImportService creates an ImportService that writes each project in a
// single transaction. A nil logger discards output.
func NewImportService(uow db.UnitOfWork, table knowledge.Table, logger *zap.Logger) ImportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &importService{
		uow:    uow,
		table:  table,
		now:    time.Now,
		logger: logger,
	}
}

func (s *importService) ImportProject(ctx context.Context, filePath string) (*ImportResult, error) {
	schema, err := importer.LoadImportSchema(filePath)
	if err != nil {
		return nil, fmt.Errorf("loading import file: %w", err)
	}
	return s.importSchema(ctx, schema)
}

func (s *importService) ImportProjectFromSchema(ctx context.Context, schema *importer.ImportSchema) (*ImportResult, error) {
	return s.importSchema(ctx, schema)
}

func (s *importService) SeedDemo(ctx context.Context) (*ImportResult, error) {
	schema, err := importer.Demo()
	if err != nil {
		return nil, fmt.Errorf("loading demo project: %w", err)
	}
	return s.importSchema(ctx, schema)
}

func (s *importService) importSchema(ctx context.Context, schema *importer.ImportSchema) (*ImportResult, error) {
	if errs := importer.ValidateImportSchema(schema, s.table); len(errs) > 0 {
		return nil, formatValidationErrors(errs)
	}

	g := importer.Convert(schema, s.now())

	err := s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		projects := repository.NewSQLiteProjectRepo(tx)
		phases := repository.NewSQLitePhaseRepo(tx)
		lots := repository.NewSQLiteLotRepo(tx)
		tasks := repository.NewSQLiteTaskRepo(tx)

		if err := projects.Create(ctx, g.Project); err != nil {
			return fmt.Errorf("creating project: %w", err)
		}
		for _, ph := range g.Phases {
			if err := phases.Create(ctx, ph); err != nil {
				return fmt.Errorf("creating phase %q: %w", ph.Name, err)
			}
		}
		for _, l := range g.Lots {
			if err := lots.Create(ctx, l); err != nil {
				return fmt.Errorf("creating lot %q: %w", l.Name, err)
			}
		}
		for _, t := range g.LotTasks {
			if err := tasks.CreateLotTask(ctx, t); err != nil {
				return fmt.Errorf("creating task %q: %w", t.Title, err)
			}
		}
		for _, t := range g.ProjectTasks {
			if err := tasks.CreateProjectTask(ctx, t); err != nil {
				return fmt.Errorf("creating project task %q: %w", t.Title, err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	res := &ImportResult{
		Project:     g.Project,
		PhaseCount:  len(g.Phases),
		LotCount:    len(g.Lots),
		TaskCount:   len(g.LotTasks),
		LegacyCount: len(g.ProjectTasks),
	}
	s.logger.Info("project imported",
		zap.String("project_id", res.Project.ID),
		zap.Int("phases", res.PhaseCount),
		zap.Int("lots", res.LotCount),
		zap.Int("tasks", res.TaskCount+res.LegacyCount),
	)
	return res, nil
}

func formatValidationErrors(errs []error) error {
	var b strings.Builder
	fmt.Fprintf(&b, "import validation failed (%d errors):", len(errs))
	for _, e := range errs {
		b.WriteString("\n  - ")
		b.WriteString(e.Error())
	}
	return fmt.Errorf("%s", b.String())
}
