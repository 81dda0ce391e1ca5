package intelligence

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexanderramin/chantier/internal/llm"
	"github.com/alexanderramin/chantier/internal/planning"
)

var fixedNow = time.Date(2026, 10, 15, 12, 0, 0, 0, time.UTC)

// mockLLMClient records requests and returns a canned response.
type mockLLMClient struct {
	mu       sync.Mutex
	response string
	err      error
	requests []llm.GenerateRequest
}

func (m *mockLLMClient) Generate(_ context.Context, req llm.GenerateRequest) (*llm.GenerateResponse, error) {
	m.mu.Lock()
	m.requests = append(m.requests, req)
	m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	return &llm.GenerateResponse{Text: m.response, Model: "test"}, nil
}

func (m *mockLLMClient) Available(_ context.Context) bool { return true }

func (m *mockLLMClient) last(t *testing.T) llm.GenerateRequest {
	t.Helper()
	m.mu.Lock()
	defer m.mu.Unlock()
	require.NotEmpty(t, m.requests)
	return m.requests[len(m.requests)-1]
}

type stubContexts struct {
	ctx   *planning.ProjectPlanningContext
	err   error
	calls int
}

func (s *stubContexts) Build(_ context.Context, _ string) (*planning.ProjectPlanningContext, error) {
	s.calls++
	return s.ctx, s.err
}

func sampleContext() *planning.ProjectPlanningContext {
	c := planning.BuildContext(planning.Hierarchy{}, fixedNow)
	c.Project.ID = "p1"
	c.Project.Name = "Maison Dupont"
	return &c
}

const validPlanJSON = `{
  "summary": "Projet vide, proposition complète.",
  "existing_interventions": [],
  "suggested_interventions": [{"name": "Démolition", "trade_type": "demolition", "justification": "préparation",
    "suggested_tasks": [{"title": "Dépose cloisons", "start_date": "2026-10-19", "end_date": "2026-10-20"},
                        {"title": "Évacuation gravats", "start_date": "2026-10-21", "end_date": "2026-10-21"}]}],
  "warnings": [],
  "next_week_priorities": ["Lancer la démolition"]
}`

const outOfOrderPlanJSON = `{
  "summary": "Finitions lancées trop tôt.",
  "existing_interventions": [],
  "suggested_interventions": [
    {"name": "Démolition", "trade_type": "demolition", "justification": "préparation",
     "suggested_tasks": [{"title": "Dépose cloisons", "start_date": "2026-10-26", "end_date": "2026-10-27"},
                         {"title": "Évacuation gravats", "start_date": "2026-10-28", "end_date": "2026-10-28"}]},
    {"name": "Peinture", "trade_type": "peinture", "justification": "finitions",
     "suggested_tasks": [{"title": "Sous-couche", "start_date": "2026-10-19", "end_date": "2026-10-20"},
                         {"title": "Finition", "start_date": "2026-10-21", "end_date": "2026-10-22"}]}],
  "warnings": ["Cave humide"],
  "next_week_priorities": ["Revoir l'ordre"]
}`

func TestPlanService_Prompt(t *testing.T) {
	svc := NewPlanService(&stubContexts{ctx: sampleContext()}, nil, nil, planning.DefaultLimits())

	out, err := svc.Prompt(context.Background(), "p1", "S43")
	require.NoError(t, err)
	assert.Contains(t, out, "Maison Dupont")
	assert.Contains(t, out, planning.NoInterventionMarker)
	assert.Contains(t, out, "pour S43")
}

func TestPlanService_PromptNoContext(t *testing.T) {
	svc := NewPlanService(&stubContexts{}, nil, nil, planning.DefaultLimits())

	_, err := svc.Prompt(context.Background(), "missing", "")
	assert.ErrorIs(t, err, ErrNoContext)
}

func TestPlanService_PromptPropagatesFetchFailure(t *testing.T) {
	svc := NewPlanService(&stubContexts{err: planning.ErrFetchFailed}, nil, nil, planning.DefaultLimits())

	_, err := svc.Prompt(context.Background(), "p1", "")
	assert.ErrorIs(t, err, planning.ErrFetchFailed)
}

func TestPlanService_ProposeWithoutClient(t *testing.T) {
	contexts := &stubContexts{ctx: sampleContext()}
	svc := NewPlanService(contexts, nil, nil, planning.DefaultLimits())

	_, err := svc.Propose(context.Background(), "p1", "")
	assert.ErrorIs(t, err, ErrLLMDisabled)
	assert.Zero(t, contexts.calls)
}

func TestPlanService_Propose(t *testing.T) {
	client := &mockLLMClient{response: validPlanJSON}
	svc := NewPlanService(&stubContexts{ctx: sampleContext()}, client, nil, planning.DefaultLimits())

	res, err := svc.Propose(context.Background(), "p1", "S43")
	require.NoError(t, err)
	assert.Equal(t, 2, res.Proposal.SuggestionCount())
	assert.Equal(t, validPlanJSON, res.Raw)

	req := client.last(t)
	assert.Equal(t, llm.TaskPlan, req.Task)
	assert.True(t, req.JSON)
	assert.Equal(t, res.Prompt, req.SystemPrompt)
	assert.Contains(t, req.UserPrompt, "S43")
}

func TestPlanService_ProposeInvalidOutput(t *testing.T) {
	client := &mockLLMClient{response: "je ne sais pas"}
	svc := NewPlanService(&stubContexts{ctx: sampleContext()}, client, nil, planning.DefaultLimits())

	_, err := svc.Propose(context.Background(), "p1", "")
	assert.ErrorIs(t, err, llm.ErrInvalidOutput)
}

func TestPlanService_ProposeRejectsUnknownTrade(t *testing.T) {
	client := &mockLLMClient{response: strings.Replace(validPlanJSON, `"demolition"`, `"toiture"`, 1)}
	svc := NewPlanService(&stubContexts{ctx: sampleContext()}, client, nil, planning.DefaultLimits())

	_, err := svc.Propose(context.Background(), "p1", "")
	require.ErrorIs(t, err, llm.ErrInvalidOutput)
	assert.Contains(t, err.Error(), `unknown trade_type "toiture"`)
}

func TestPlanService_ProposeAddsSequencingWarnings(t *testing.T) {
	client := &mockLLMClient{response: outOfOrderPlanJSON}
	svc := NewPlanService(&stubContexts{ctx: sampleContext()}, client, nil, planning.DefaultLimits())

	res, err := svc.Propose(context.Background(), "p1", "")
	require.NoError(t, err)
	require.Len(t, res.Proposal.Warnings, 2)
	assert.Equal(t, "Cave humide", res.Proposal.Warnings[0])
	assert.Contains(t, res.Proposal.Warnings[1], "Peinture (peinture) débute le 2026-10-19")
}

func TestPlanService_ProposeLLMError(t *testing.T) {
	client := &mockLLMClient{err: llm.ErrTimeout}
	svc := NewPlanService(&stubContexts{ctx: sampleContext()}, client, nil, planning.DefaultLimits())

	_, err := svc.Propose(context.Background(), "p1", "")
	assert.ErrorIs(t, err, llm.ErrTimeout)
}

func TestAssistService_GeneralSkipsContext(t *testing.T) {
	client := &mockLLMClient{response: "Un DTU est un document technique unifié."}
	contexts := &stubContexts{ctx: sampleContext()}
	svc := NewAssistService(contexts, client, nil, nil, planning.DefaultLimits())

	reply, err := svc.Reply(context.Background(), "p1", "C'est quoi un DTU ?")
	require.NoError(t, err)
	assert.Equal(t, IntentGeneral, reply.Intent.Kind)
	assert.Nil(t, reply.Plan)
	assert.Zero(t, contexts.calls)

	req := client.last(t)
	assert.Equal(t, llm.TaskAssist, req.Task)
	assert.Equal(t, assistantSystemPrompt, req.SystemPrompt)
	assert.False(t, req.JSON)
}

func TestAssistService_HintAppendsLightContext(t *testing.T) {
	client := &mockLLMClient{response: "Le chantier n'a pas encore démarré."}
	svc := NewAssistService(&stubContexts{ctx: sampleContext()}, client, nil, nil, planning.DefaultLimits())

	reply, err := svc.Reply(context.Background(), "p1", "Où en est le chantier ?")
	require.NoError(t, err)
	assert.Equal(t, IntentPlanningHint, reply.Intent.Kind)

	req := client.last(t)
	assert.Equal(t, llm.TaskAssist, req.Task)
	assert.Contains(t, req.SystemPrompt, assistantSystemPrompt)
	assert.Contains(t, req.SystemPrompt, "CONTEXTE DU CHANTIER")
	assert.NotContains(t, req.SystemPrompt, "FORMAT DE SORTIE")
}

func TestAssistService_PlanningUsesFullPrompt(t *testing.T) {
	client := &mockLLMClient{response: validPlanJSON}
	svc := NewAssistService(&stubContexts{ctx: sampleContext()}, client, nil, nil, planning.DefaultLimits())

	reply, err := svc.Reply(context.Background(), "p1", "Peux-tu me faire le planning de la semaine ?")
	require.NoError(t, err)
	assert.Equal(t, IntentPlanning, reply.Intent.Kind)
	require.NotNil(t, reply.Plan)
	assert.Equal(t, "Démolition", reply.Plan.SuggestedInterventions[0].Name)

	req := client.last(t)
	assert.Equal(t, llm.TaskPlan, req.Task)
	assert.True(t, req.JSON)
	assert.Contains(t, req.SystemPrompt, "DONNÉES DU PROJET")
	assert.Equal(t, "Peux-tu me faire le planning de la semaine ?", req.UserPrompt)
}

func TestAssistService_PlanningUnparsedKeepsText(t *testing.T) {
	client := &mockLLMClient{response: "Commencez par la démolition."}
	svc := NewAssistService(&stubContexts{ctx: sampleContext()}, client, nil, nil, planning.DefaultLimits())

	reply, err := svc.Reply(context.Background(), "p1", "organiser les travaux")
	require.NoError(t, err)
	assert.Nil(t, reply.Plan)
	assert.Equal(t, "Commencez par la démolition.", reply.Text)
}

func TestAssistService_PlanningNoContext(t *testing.T) {
	client := &mockLLMClient{response: "x"}
	svc := NewAssistService(&stubContexts{}, client, nil, nil, planning.DefaultLimits())

	_, err := svc.Reply(context.Background(), "missing", "planning svp")
	assert.ErrorIs(t, err, ErrNoContext)
	assert.Empty(t, client.requests)
}

func TestAssistService_LLMError(t *testing.T) {
	client := &mockLLMClient{err: errors.New("boom")}
	svc := NewAssistService(&stubContexts{ctx: sampleContext()}, client, nil, nil, planning.DefaultLimits())

	_, err := svc.Reply(context.Background(), "p1", "bonjour")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "llm reply failed")
}
