// Package assistant drives the bounded tool-call conversation between the
// chat model and the transit data tools.
package assistant

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/sysdevrun/transitchat/pkg/llm"
	"github.com/sysdevrun/transitchat/pkg/tools"
)

// ErrTooManyIterations is the only hard failure of an exchange: the model
// kept requesting tools past the round ceiling.
var ErrTooManyIterations = errors.New("exchange exceeded the tool-call round ceiling")

const defaultMaxIterations = 10

type ModelService interface {
	CreateMessage(ctx context.Context, request llm.Request) (*llm.Response, error)
}

type TokenUsage struct {
	InputTokens  int `json:"inputTokens"`
	OutputTokens int `json:"outputTokens"`
}

// Exchange is the state of one conversation: the ordered turn history plus
// running token totals. Rounds return an updated copy rather than mutating
// shared state, so a caller always holds a consistent snapshot.
type Exchange struct {
	ID      string        `json:"id"`
	History []llm.Message `json:"history"`
	Usage   TokenUsage    `json:"usage"`
}

func NewExchange() Exchange {
	return Exchange{ID: uuid.NewString()}
}

type Assistant struct {
	Model  ModelService
	Tools  *tools.Registry
	Events EventSink

	SystemPrompt  string
	MaxIterations int
}

func New(model ModelService, registry *tools.Registry, events EventSink, systemPrompt string) *Assistant {
	if events == nil {
		events = NoopSink{}
	}

	return &Assistant{
		Model:         model,
		Tools:         registry,
		Events:        events,
		SystemPrompt:  systemPrompt,
		MaxIterations: defaultMaxIterations,
	}
}

// RunExchange appends the user message and runs model rounds until the model
// answers in plain text or the iteration ceiling is hit. Tool calls within a
// round are executed strictly in the order requested, each answered by
// exactly one correlated tool result, and all results of a round are handed
// back as a single user turn. Tool failures never abort the loop; they are
// reported to the model inside the tool result. The returned Exchange is
// valid for a follow-up question even when an error is returned.
func (a *Assistant) RunExchange(ctx context.Context, exchange Exchange, userText string) (Exchange, string, error) {
	maxIterations := a.MaxIterations
	if maxIterations <= 0 {
		maxIterations = defaultMaxIterations
	}

	exchange.History = append(exchange.History, llm.UserMessage(llm.TextBlock(userText)))

	definitions := a.Tools.Definitions()

	for round := 1; round <= maxIterations; round++ {
		modelStart := time.Now()

		response, err := a.Model.CreateMessage(ctx, llm.Request{
			System:   a.SystemPrompt,
			Messages: exchange.History,
			Tools:    definitions,
		})
		if err != nil {
			a.Events.Publish(Event{ExchangeID: exchange.ID, Round: round, Type: EventModelFailed, Detail: err.Error()})
			return exchange, "", err
		}

		// A reply landing after cancellation belongs to an exchange the
		// caller has abandoned; drop it instead of appending.
		if ctx.Err() != nil {
			return exchange, "", ctx.Err()
		}

		exchange.Usage.InputTokens += response.Usage.InputTokens
		exchange.Usage.OutputTokens += response.Usage.OutputTokens

		a.Events.Publish(Event{
			ExchangeID:   exchange.ID,
			Round:        round,
			Type:         EventModelResponse,
			StopReason:   response.StopReason,
			DurationMS:   time.Since(modelStart).Milliseconds(),
			InputTokens:  response.Usage.InputTokens,
			OutputTokens: response.Usage.OutputTokens,
		})

		toolUses := response.ToolUses()

		if len(toolUses) == 0 {
			finalText := response.Text()
			exchange.History = append(exchange.History, llm.Message{Role: llm.RoleAssistant, Content: response.Content})

			log.Info().
				Str("exchange", exchange.ID).
				Int("rounds", round).
				Int("input_tokens", exchange.Usage.InputTokens).
				Int("output_tokens", exchange.Usage.OutputTokens).
				Msg("Exchange complete")

			return exchange, finalText, nil
		}

		exchange.History = append(exchange.History, llm.Message{Role: llm.RoleAssistant, Content: response.Content})

		results := make([]llm.ContentBlock, 0, len(toolUses))

		for _, toolUse := range toolUses {
			a.Events.Publish(Event{ExchangeID: exchange.ID, Round: round, Type: EventToolDispatch, Tool: toolUse.Name})

			dispatchStart := time.Now()
			payload := a.Tools.Dispatch(ctx, toolUse.Name, toolUse.Input)

			if ctx.Err() != nil {
				return exchange, "", ctx.Err()
			}

			a.Events.Publish(Event{
				ExchangeID:   exchange.ID,
				Round:        round,
				Type:         EventToolResult,
				Tool:         toolUse.Name,
				DurationMS:   time.Since(dispatchStart).Milliseconds(),
				PayloadBytes: len(payload),
			})

			results = append(results, llm.ToolResultBlock(toolUse.ID, payload))
		}

		exchange.History = append(exchange.History, llm.UserMessage(results...))
	}

	a.Events.Publish(Event{ExchangeID: exchange.ID, Round: maxIterations, Type: EventExchangeFailed, Detail: ErrTooManyIterations.Error()})

	log.Warn().
		Str("exchange", exchange.ID).
		Int("rounds", maxIterations).
		Msg("Exchange aborted, model never stopped requesting tools")

	return exchange, "", ErrTooManyIterations
}
