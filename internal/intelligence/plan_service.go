package intelligence

import (
	"context"
	"errors"
	"fmt"

	"github.com/alexanderramin/chantier/internal/llm"
	"github.com/alexanderramin/chantier/internal/planning"
)

var (
	// ErrNoContext means the project does not exist; retrying will not help.
	ErrNoContext = errors.New("no planning context available")

	// ErrLLMDisabled means no reasoning engine is configured.
	ErrLLMDisabled = errors.New("llm is disabled; set CHANTIER_LLM_ENABLED=true")
)

// ContextBuilder assembles planning contexts; *planning.Aggregator
// satisfies it.
type ContextBuilder interface {
	Build(ctx context.Context, projectID string) (*planning.ProjectPlanningContext, error)
}

// PlanResult is one planning round trip.
type PlanResult struct {
	Context  *planning.ProjectPlanningContext
	Prompt   string
	Raw      string
	Proposal PlanProposal
}

// PlanService prepares planning prompts and, when an engine is
// configured, asks it for a proposal.
type PlanService interface {
	Prompt(ctx context.Context, projectID, weekLabel string) (string, error)
	Propose(ctx context.Context, projectID, weekLabel string) (*PlanResult, error)
}

type planService struct {
	contexts ContextBuilder
	client   llm.LLMClient
	prompts  *PromptBuilder
	limits   planning.Limits
}

// NewPlanService creates a PlanService. client may be nil, in which case
// only Prompt is usable.
func NewPlanService(contexts ContextBuilder, client llm.LLMClient, prompts *PromptBuilder, limits planning.Limits) PlanService {
	if prompts == nil {
		prompts = DefaultPromptBuilder()
	}
	return &planService{
		contexts: contexts,
		client:   client,
		prompts:  prompts,
		limits:   limits,
	}
}

func (s *planService) Prompt(ctx context.Context, projectID, weekLabel string) (string, error) {
	_, prompt, err := s.prepare(ctx, projectID, weekLabel)
	return prompt, err
}

func (s *planService) prepare(ctx context.Context, projectID, weekLabel string) (*planning.ProjectPlanningContext, string, error) {
	c, err := s.contexts.Build(ctx, projectID)
	if err != nil {
		return nil, "", fmt.Errorf("building planning context: %w", err)
	}
	if c == nil {
		return nil, "", fmt.Errorf("project %s: %w", projectID, ErrNoContext)
	}
	return c, s.prompts.Full(planning.Serialize(*c, s.limits), weekLabel), nil
}

func (s *planService) Propose(ctx context.Context, projectID, weekLabel string) (*PlanResult, error) {
	if s.client == nil {
		return nil, ErrLLMDisabled
	}
	c, prompt, err := s.prepare(ctx, projectID, weekLabel)
	if err != nil {
		return nil, err
	}

	resp, err := s.client.Generate(ctx, llm.GenerateRequest{
		Task:         llm.TaskPlan,
		SystemPrompt: prompt,
		UserPrompt:   planUserPrompt(weekLabel),
		JSON:         true,
	})
	if err != nil {
		return nil, fmt.Errorf("llm planning failed: %w", err)
	}

	proposal, err := llm.ExtractJSON[PlanProposal](resp.Text, s.prompts.ValidatePlan)
	if err != nil {
		return nil, err
	}
	proposal.Warnings = append(proposal.Warnings, s.prompts.SequencingWarnings(proposal)...)
	return &PlanResult{
		Context:  c,
		Prompt:   prompt,
		Raw:      resp.Text,
		Proposal: proposal,
	}, nil
}

func planUserPrompt(weekLabel string) string {
	if weekLabel == "" {
		return "Propose le planning du chantier."
	}
	return "Propose le planning du chantier pour " + weekLabel + "."
}
