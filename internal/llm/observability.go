package llm

import "go.uber.org/zap"

// CallEvent records metadata about a single engine invocation.
type CallEvent struct {
	Task        TaskType
	Model       string
	LatencyMs   int64
	PromptBytes int
	Success     bool
	ErrorCode   string
}

// Observer receives events about engine calls for logging and metrics.
type Observer interface {
	OnCallComplete(event CallEvent)
}

// LogObserver writes call events to a zap logger.
type LogObserver struct {
	log *zap.Logger
}

// NewLogObserver creates an Observer that logs events to l.
func NewLogObserver(l *zap.Logger) *LogObserver {
	if l == nil {
		l = zap.NewNop()
	}
	return &LogObserver{log: l}
}

func (o *LogObserver) OnCallComplete(e CallEvent) {
	fields := []zap.Field{
		zap.String("task", string(e.Task)),
		zap.String("model", e.Model),
		zap.Int64("latency_ms", e.LatencyMs),
		zap.Int("prompt_bytes", e.PromptBytes),
	}
	if e.Success {
		o.log.Info("llm_call", fields...)
		return
	}
	o.log.Warn("llm_call", append(fields, zap.String("error_code", e.ErrorCode))...)
}

// NoopObserver discards all events.
type NoopObserver struct{}

func (NoopObserver) OnCallComplete(CallEvent) {}
