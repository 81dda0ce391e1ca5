package llm

import (
	"os"
	"strconv"
)

// TaskType identifies the kind of LLM call being made.
type TaskType string

const (
	TaskPlan   TaskType = "plan"
	TaskAssist TaskType = "assist"
)

// TaskConfig holds per-task generation parameters.
type TaskConfig struct {
	Temperature float64
	MaxTokens   int
	TimeoutMs   int // overrides global if > 0
}

// LLMConfig holds all configuration for the reasoning engine client.
type LLMConfig struct {
	Enabled    bool
	LogCalls   bool
	Endpoint   string
	Model      string
	TimeoutMs  int
	MaxRetries int
	Tasks      map[TaskType]TaskConfig
}

// DefaultConfig returns an LLMConfig with the LLM disabled.
func DefaultConfig() LLMConfig {
	return LLMConfig{
		Endpoint:   "http://localhost:11434",
		Model:      "llama3.1",
		TimeoutMs:  20000,
		MaxRetries: 1,
		Tasks: map[TaskType]TaskConfig{
			TaskPlan:   {Temperature: 0.4, MaxTokens: 4096, TimeoutMs: 60000},
			TaskAssist: {Temperature: 0.5, MaxTokens: 1536, TimeoutMs: 20000},
		},
	}
}

// LoadConfig reads LLM configuration from CHANTIER_LLM_* environment
// variables, falling back to defaults for unset or invalid values.
func LoadConfig() LLMConfig {
	cfg := DefaultConfig()

	if v := os.Getenv("CHANTIER_LLM_ENABLED"); v != "" {
		cfg.Enabled, _ = strconv.ParseBool(v)
	}
	if v := os.Getenv("CHANTIER_LLM_LOG_CALLS"); v != "" {
		cfg.LogCalls, _ = strconv.ParseBool(v)
	}
	if v := os.Getenv("CHANTIER_LLM_ENDPOINT"); v != "" {
		cfg.Endpoint = v
	}
	if v := os.Getenv("CHANTIER_LLM_MODEL"); v != "" {
		cfg.Model = v
	}
	if v := os.Getenv("CHANTIER_LLM_TIMEOUT_MS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.TimeoutMs = n
		}
	}
	if v := os.Getenv("CHANTIER_LLM_MAX_RETRIES"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			cfg.MaxRetries = n
		}
	}

	applyTaskTimeoutEnv(&cfg, TaskPlan, "CHANTIER_LLM_PLAN_TIMEOUT_MS")
	applyTaskTimeoutEnv(&cfg, TaskAssist, "CHANTIER_LLM_ASSIST_TIMEOUT_MS")

	return cfg
}

// TaskTimeout returns the effective timeout in milliseconds for a task.
func (c LLMConfig) TaskTimeout(task TaskType) int {
	if tc, ok := c.Tasks[task]; ok && tc.TimeoutMs > 0 {
		return tc.TimeoutMs
	}
	return c.TimeoutMs
}

func applyTaskTimeoutEnv(cfg *LLMConfig, task TaskType, envName string) {
	v := os.Getenv(envName)
	if v == "" {
		return
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return
	}
	tc := cfg.Tasks[task]
	tc.TimeoutMs = n
	cfg.Tasks[task] = tc
}
