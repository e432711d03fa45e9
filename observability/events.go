package observability

import (
	"log/slog"

	"liquidstake/core/events"
	"liquidstake/core/types"
)

// LogEmitter forwards engine events to structured logs. It satisfies
// events.Emitter and is the default sink wired by the daemon.
type LogEmitter struct {
	logger *slog.Logger
}

// NewLogEmitter creates an emitter writing to the provided logger.
func NewLogEmitter(logger *slog.Logger) *LogEmitter {
	if logger == nil {
		logger = slog.Default()
	}
	return &LogEmitter{logger: logger}
}

type payloadEvent interface {
	Event() *types.Event
}

// Emit implements events.Emitter.
func (e *LogEmitter) Emit(event events.Event) {
	if event == nil {
		return
	}
	args := []any{"event", event.EventType()}
	if payload, ok := event.(payloadEvent); ok {
		if evt := payload.Event(); evt != nil {
			for key, value := range evt.Attributes {
				args = append(args, key, value)
			}
		}
	}
	e.logger.Info("pool event", args...)
}
