package assistant

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/sysdevrun/transitchat/pkg/llm"
	"github.com/sysdevrun/transitchat/pkg/tools"
)

// scriptedModel replays canned responses in order; the last response repeats
// forever once the script runs out.
type scriptedModel struct {
	script   []llm.Response
	requests []llm.Request
	err      error
}

func (m *scriptedModel) CreateMessage(ctx context.Context, request llm.Request) (*llm.Response, error) {
	m.requests = append(m.requests, request)

	if m.err != nil {
		return nil, m.err
	}

	index := len(m.requests) - 1
	if index >= len(m.script) {
		index = len(m.script) - 1
	}

	response := m.script[index]
	return &response, nil
}

type echoTool struct {
	calls []string
}

func (t *echoTool) Name() string { return "echo" }

func (t *echoTool) Definition() llm.Tool {
	return llm.Tool{Name: t.Name(), InputSchema: llm.Schema{Type: "object"}}
}

func (t *echoTool) Execute(ctx context.Context, input json.RawMessage) (any, error) {
	t.calls = append(t.calls, string(input))
	return map[string]string{"echo": string(input)}, nil
}

func textResponse(text string) llm.Response {
	return llm.Response{
		Content:    []llm.ContentBlock{llm.TextBlock(text)},
		StopReason: "end_turn",
		Usage:      llm.Usage{InputTokens: 10, OutputTokens: 5},
	}
}

func toolUseResponse(blocks ...llm.ContentBlock) llm.Response {
	return llm.Response{
		Content:    blocks,
		StopReason: "tool_use",
		Usage:      llm.Usage{InputTokens: 10, OutputTokens: 5},
	}
}

func toolUse(id string, name string, input string) llm.ContentBlock {
	return llm.ContentBlock{Type: llm.BlockTypeToolUse, ID: id, Name: name, Input: json.RawMessage(input)}
}

func newTestAssistant(model ModelService, handlers ...tools.Handler) *Assistant {
	return New(model, tools.NewRegistry(handlers...), NoopSink{}, "be helpful")
}

func TestRunExchangePlainAnswer(t *testing.T) {
	model := &scriptedModel{script: []llm.Response{textResponse("The next tram leaves at 09:10.")}}
	a := newTestAssistant(model)

	exchange, answer, err := a.RunExchange(context.Background(), NewExchange(), "when is the next tram?")
	require.NoError(t, err)

	assert.Equal(t, "The next tram leaves at 09:10.", answer)

	// user question + assistant answer
	require.Len(t, exchange.History, 2)
	assert.Equal(t, llm.RoleUser, exchange.History[0].Role)
	assert.Equal(t, llm.RoleAssistant, exchange.History[1].Role)

	assert.Equal(t, 10, exchange.Usage.InputTokens)
	assert.Equal(t, 5, exchange.Usage.OutputTokens)
}

func TestRunExchangeToolRoundTrip(t *testing.T) {
	model := &scriptedModel{script: []llm.Response{
		toolUseResponse(
			toolUse("call_1", "echo", `{"a":1}`),
			toolUse("call_2", "echo", `{"b":2}`),
		),
		textResponse("done"),
	}}
	echo := &echoTool{}
	a := newTestAssistant(model, echo)

	exchange, answer, err := a.RunExchange(context.Background(), NewExchange(), "question")
	require.NoError(t, err)
	assert.Equal(t, "done", answer)

	// Tools executed in the order the model asked for them
	assert.Equal(t, []string{`{"a":1}`, `{"b":2}`}, echo.calls)

	// user, assistant(tool_use), user(tool_result), assistant(text)
	require.Len(t, exchange.History, 4)

	resultsTurn := exchange.History[2]
	assert.Equal(t, llm.RoleUser, resultsTurn.Role)
	require.Len(t, resultsTurn.Content, 2)

	// One correlated result per tool use, same order
	assert.Equal(t, llm.BlockTypeToolResult, resultsTurn.Content[0].Type)
	assert.Equal(t, "call_1", resultsTurn.Content[0].ToolUseID)
	assert.Equal(t, "call_2", resultsTurn.Content[1].ToolUseID)

	// Usage accumulated over both rounds
	assert.Equal(t, 20, exchange.Usage.InputTokens)
	assert.Equal(t, 10, exchange.Usage.OutputTokens)
}

func TestRunExchangeUnknownToolIsRecoverable(t *testing.T) {
	model := &scriptedModel{script: []llm.Response{
		toolUseResponse(toolUse("call_1", "notATool", `{}`)),
		textResponse("sorry, let me try differently"),
	}}
	a := newTestAssistant(model, &echoTool{})

	exchange, answer, err := a.RunExchange(context.Background(), NewExchange(), "question")
	require.NoError(t, err)
	assert.Equal(t, "sorry, let me try differently", answer)

	resultsTurn := exchange.History[2]
	require.Len(t, resultsTurn.Content, 1)
	assert.Contains(t, resultsTurn.Content[0].Content, "unknown tool")
	assert.Contains(t, resultsTurn.Content[0].Content, "notATool")
}

func TestRunExchangeIterationCeiling(t *testing.T) {
	// The model never stops asking for tools
	model := &scriptedModel{script: []llm.Response{
		toolUseResponse(toolUse("call_1", "echo", `{}`)),
	}}
	a := newTestAssistant(model, &echoTool{})

	exchange, answer, err := a.RunExchange(context.Background(), NewExchange(), "question")

	assert.ErrorIs(t, err, ErrTooManyIterations)
	assert.Empty(t, answer)
	assert.Len(t, model.requests, 10)

	// user + 10 * (assistant tool_use + user tool_result)
	assert.Len(t, exchange.History, 21)
}

func TestRunExchangeModelFailure(t *testing.T) {
	modelErr := errors.New("upstream unavailable")
	model := &scriptedModel{err: modelErr}
	a := newTestAssistant(model)

	exchange, _, err := a.RunExchange(context.Background(), NewExchange(), "question")

	assert.ErrorIs(t, err, modelErr)
	// The user turn stays so the exchange can be retried
	assert.Len(t, exchange.History, 1)
}

func TestRunExchangeCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	model := &scriptedModel{script: []llm.Response{textResponse("late answer")}}
	a := newTestAssistant(model)

	cancel()

	_, answer, err := a.RunExchange(ctx, NewExchange(), "question")

	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, answer)
}

func TestRunExchangeFollowUpKeepsHistory(t *testing.T) {
	model := &scriptedModel{script: []llm.Response{
		textResponse("first answer"),
		textResponse("second answer"),
	}}
	a := newTestAssistant(model)

	exchange, _, err := a.RunExchange(context.Background(), NewExchange(), "first question")
	require.NoError(t, err)

	exchange, answer, err := a.RunExchange(context.Background(), exchange, "second question")
	require.NoError(t, err)

	assert.Equal(t, "second answer", answer)
	assert.Len(t, exchange.History, 4)

	// The second request carried the full prior conversation
	require.Len(t, model.requests, 2)
	assert.Len(t, model.requests[1].Messages, 3)
}

func TestSpeakableText(t *testing.T) {
	input := "# Your journey\n\nTake the **42** from *Central Station* to `Harbour Quay`.\nIt __leaves__ at _09:10_."
	expected := "Your journey\n\nTake the 42 from Central Station to Harbour Quay.\nIt leaves at 09:10."

	assert.Equal(t, expected, SpeakableText(input))
}

func TestSpeakableTextPlain(t *testing.T) {
	assert.Equal(t, "No markup here.", SpeakableText("No markup here."))
	assert.Equal(t, "", SpeakableText("   "))
}
