// Package tools exposes the transit dataset to the conversation model as a
// fixed set of callable tools.
package tools

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/sysdevrun/transitchat/pkg/llm"
)

// Handler is one callable tool. Execute returns the payload to serialize back
// to the model; an error becomes an {"error": ...} payload, never a crash.
type Handler interface {
	Name() string
	Definition() llm.Tool
	Execute(ctx context.Context, input json.RawMessage) (any, error)
}

type Registry struct {
	handlers map[string]Handler
	order    []string
}

func NewRegistry(handlers ...Handler) *Registry {
	registry := &Registry{handlers: map[string]Handler{}}

	for _, handler := range handlers {
		registry.handlers[handler.Name()] = handler
		registry.order = append(registry.order, handler.Name())
	}

	return registry
}

// Definitions returns the fixed tool schema handed to the model on every call.
func (r *Registry) Definitions() []llm.Tool {
	definitions := make([]llm.Tool, 0, len(r.order))

	for _, name := range r.order {
		definitions = append(definitions, r.handlers[name].Definition())
	}

	return definitions
}

type errorPayload struct {
	Error string `json:"error"`
}

// Dispatch executes one tool call and always returns a JSON text payload.
// Unknown tool names and execution failures are reported inside the payload
// so the model can see the problem and adapt.
func (r *Registry) Dispatch(ctx context.Context, name string, input json.RawMessage) string {
	handler, exists := r.handlers[name]
	if !exists {
		log.Warn().Str("tool", name).Msg("Model requested unknown tool")
		return marshalPayload(errorPayload{Error: fmt.Sprintf("unknown tool %q", name)})
	}

	result, err := handler.Execute(ctx, input)
	if err != nil {
		log.Warn().Err(err).Str("tool", name).Msg("Tool execution failed")
		return marshalPayload(errorPayload{Error: err.Error()})
	}

	return marshalPayload(result)
}

func marshalPayload(payload any) string {
	encoded, err := json.Marshal(payload)
	if err != nil {
		return fmt.Sprintf(`{"error":"failed to serialize tool result: %s"}`, err)
	}

	return string(encoded)
}
