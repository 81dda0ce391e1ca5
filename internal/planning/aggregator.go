package planning

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/alexanderramin/chantier/internal/domain"
	"github.com/alexanderramin/chantier/internal/repository"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// ErrFetchFailed marks an upstream query failure or timeout. It is
// retryable, unlike a missing project.
var ErrFetchFailed = errors.New("planning fetch failed")

// ProjectSource loads a project. A missing project is reported as
// repository.ErrNotFound or (nil, nil).
type ProjectSource interface {
	GetByID(ctx context.Context, id string) (*domain.Project, error)
}

// PhaseSource lists the phases of a project.
type PhaseSource interface {
	ListByProject(ctx context.Context, projectID string) ([]*domain.Phase, error)
}

// LotSource lists the lots of a set of phases.
type LotSource interface {
	ListByPhases(ctx context.Context, phaseIDs []string) ([]*domain.Lot, error)
}

// TaskSource lists lot tasks and the legacy tasks attached to the project itself.
type TaskSource interface {
	ListByLots(ctx context.Context, lotIDs []string) ([]*domain.Task, error)
	ListLegacyByProject(ctx context.Context, projectID string) ([]*domain.Task, error)
}

// Aggregator reads a project hierarchy from the store and builds its
// planning context. It never writes.
type Aggregator struct {
	projects ProjectSource
	phases   PhaseSource
	lots     LotSource
	tasks    TaskSource

	fetchTimeout time.Duration
	now          func() time.Time
	log          *zap.Logger
}

// Option configures an Aggregator.
type Option func(*Aggregator)

// WithFetchTimeout bounds each store query. Non-positive values are ignored.
func WithFetchTimeout(d time.Duration) Option {
	return func(a *Aggregator) {
		if d > 0 {
			a.fetchTimeout = d
		}
	}
}

// WithClock sets the time source used for lateness and GeneratedAt.
func WithClock(now func() time.Time) Option {
	return func(a *Aggregator) {
		if now != nil {
			a.now = now
		}
	}
}

// WithLogger sets the logger for fetch failures. Nil keeps the no-op logger.
func WithLogger(l *zap.Logger) Option {
	return func(a *Aggregator) {
		if l != nil {
			a.log = l
		}
	}
}

// NewAggregator creates an Aggregator over the given sources.
func NewAggregator(
	projects ProjectSource,
	phases PhaseSource,
	lots LotSource,
	tasks TaskSource,
	opts ...Option,
) *Aggregator {
	a := &Aggregator{
		projects:     projects,
		phases:       phases,
		lots:         lots,
		tasks:        tasks,
		fetchTimeout: DefaultConfig().FetchTimeout,
		now:          func() time.Time { return time.Now().UTC() },
		log:          zap.NewNop(),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Build returns the planning context of projectID. A missing project yields
// (nil, nil). Any query failure yields (nil, err) wrapping ErrFetchFailed;
// a partially fetched hierarchy is never returned.
func (a *Aggregator) Build(ctx context.Context, projectID string) (*ProjectPlanningContext, error) {
	project, err := fetch(ctx, a.fetchTimeout, "project", func(ctx context.Context) (*domain.Project, error) {
		return a.projects.GetByID(ctx, projectID)
	})
	if errors.Is(err, repository.ErrNotFound) || (err == nil && project == nil) {
		a.log.Debug("project not found", zap.String("project_id", projectID))
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	h := Hierarchy{Project: *project}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		legacy, err := fetch(gctx, a.fetchTimeout, "legacy tasks", func(ctx context.Context) ([]*domain.Task, error) {
			return a.tasks.ListLegacyByProject(ctx, projectID)
		})
		h.LegacyTasks = legacy
		return err
	})
	g.Go(func() error {
		return a.fetchTree(gctx, projectID, &h)
	})
	if err := g.Wait(); err != nil {
		a.log.Warn("planning context fetch failed",
			zap.String("project_id", projectID), zap.Error(err))
		return nil, err
	}

	a.checkReservedID(projectID, h.Lots)

	c := BuildContext(h, a.now())
	a.log.Debug("planning context built",
		zap.String("project_id", projectID),
		zap.Int("phases", len(h.Phases)),
		zap.Int("interventions", c.Stats.TotalInterventions),
		zap.Int("tasks", c.Stats.TotalTasks),
		zap.Int("late", c.Stats.TasksLate))
	return &c, nil
}

// fetchTree walks phases, then lots, then lot tasks. Each level waits for
// its parent ids; an empty level ends the walk.
func (a *Aggregator) fetchTree(ctx context.Context, projectID string, h *Hierarchy) error {
	phases, err := fetch(ctx, a.fetchTimeout, "phases", func(ctx context.Context) ([]*domain.Phase, error) {
		return a.phases.ListByProject(ctx, projectID)
	})
	if err != nil || len(phases) == 0 {
		return err
	}
	h.Phases = phases

	lots, err := fetch(ctx, a.fetchTimeout, "lots", func(ctx context.Context) ([]*domain.Lot, error) {
		return a.lots.ListByPhases(ctx, ids(phases, func(p *domain.Phase) string { return p.ID }))
	})
	if err != nil || len(lots) == 0 {
		return err
	}
	h.Lots = lots

	tasks, err := fetch(ctx, a.fetchTimeout, "lot tasks", func(ctx context.Context) ([]*domain.Task, error) {
		return a.tasks.ListByLots(ctx, ids(lots, func(l *domain.Lot) string { return l.ID }))
	})
	if err != nil {
		return err
	}
	h.LotTasks = tasks
	return nil
}

func (a *Aggregator) checkReservedID(projectID string, lots []*domain.Lot) {
	for _, l := range lots {
		if l.ID == LegacyLotID {
			a.log.Warn("lot uses the reserved synthetic id",
				zap.String("project_id", projectID), zap.String("lot_id", l.ID))
		}
	}
}

// fetch runs one store call under its own timeout. A source that ignores
// its context is abandoned once the deadline passes; its late result is
// dropped.
func fetch[T any](ctx context.Context, timeout time.Duration, what string, fn func(context.Context) (T, error)) (T, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	var zero T
	if err := ctx.Err(); err != nil {
		return zero, fmt.Errorf("%w: %s: %w", ErrFetchFailed, what, err)
	}

	type result struct {
		v   T
		err error
	}
	done := make(chan result, 1)
	go func() {
		v, err := fn(ctx)
		done <- result{v, err}
	}()

	select {
	case r := <-done:
		if r.err != nil {
			return zero, fmt.Errorf("%w: %s: %w", ErrFetchFailed, what, r.err)
		}
		return r.v, nil
	case <-ctx.Done():
		return zero, fmt.Errorf("%w: %s: %w", ErrFetchFailed, what, ctx.Err())
	}
}

func ids[T any](items []T, id func(T) string) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = id(it)
	}
	return out
}
