package intelligence

import (
	"context"
	"fmt"

	"github.com/alexanderramin/chantier/internal/llm"
	"github.com/alexanderramin/chantier/internal/planning"
)

// AssistReply is the assistant's answer to one message.
type AssistReply struct {
	Intent Intent
	Text   string
	// Plan is set when a planning answer parsed against the contract.
	Plan *PlanProposal
}

// AssistService answers free-text messages about a project, switching to
// the planning prompt when the message asks for it.
type AssistService interface {
	Reply(ctx context.Context, projectID, message string) (*AssistReply, error)
}

type assistService struct {
	contexts   ContextBuilder
	client     llm.LLMClient
	classifier Classifier
	prompts    *PromptBuilder
	limits     planning.Limits
}

// NewAssistService creates an AssistService. A nil classifier uses the
// default keyword classifier.
func NewAssistService(
	contexts ContextBuilder,
	client llm.LLMClient,
	classifier Classifier,
	prompts *PromptBuilder,
	limits planning.Limits,
) AssistService {
	if classifier == nil {
		classifier = DefaultClassifier()
	}
	if prompts == nil {
		prompts = DefaultPromptBuilder()
	}
	return &assistService{
		contexts:   contexts,
		client:     client,
		classifier: classifier,
		prompts:    prompts,
		limits:     limits,
	}
}

func (s *assistService) Reply(ctx context.Context, projectID, message string) (*AssistReply, error) {
	if s.client == nil {
		return nil, ErrLLMDisabled
	}
	intent := s.classifier.Classify(message)

	req := llm.GenerateRequest{
		Task:         llm.TaskAssist,
		SystemPrompt: assistantSystemPrompt,
		UserPrompt:   message,
	}

	if intent.Kind != IntentGeneral {
		c, err := s.contexts.Build(ctx, projectID)
		if err != nil {
			return nil, fmt.Errorf("building planning context: %w", err)
		}
		if c == nil {
			return nil, fmt.Errorf("project %s: %w", projectID, ErrNoContext)
		}
		snapshot := planning.Serialize(*c, s.limits)

		switch intent.Kind {
		case IntentPlanning:
			req.Task = llm.TaskPlan
			req.SystemPrompt = s.prompts.Full(snapshot, "")
			req.JSON = true
		case IntentPlanningHint:
			req.SystemPrompt = assistantSystemPrompt + "\n\n" + s.prompts.Light(snapshot)
		}
	}

	resp, err := s.client.Generate(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("llm reply failed: %w", err)
	}

	reply := &AssistReply{Intent: intent, Text: resp.Text}
	if intent.Kind == IntentPlanning {
		if plan, err := llm.ExtractJSON[PlanProposal](resp.Text, s.prompts.ValidatePlan); err == nil {
			plan.Warnings = append(plan.Warnings, s.prompts.SequencingWarnings(plan)...)
			reply.Plan = &plan
		}
	}
	return reply, nil
}
