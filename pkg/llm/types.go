// Package llm is a minimal typed client for a chat completion service with
// tool use, speaking the messages/content-blocks wire format.
package llm

import "encoding/json"

const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

const (
	BlockTypeText       = "text"
	BlockTypeToolUse    = "tool_use"
	BlockTypeToolResult = "tool_result"
)

// ContentBlock is one typed element of a conversation turn. Exactly one of
// the type specific field groups is populated, selected by Type.
type ContentBlock struct {
	Type string `json:"type"`

	// text
	Text string `json:"text,omitempty"`

	// tool_use
	ID    string          `json:"id,omitempty"`
	Name  string          `json:"name,omitempty"`
	Input json.RawMessage `json:"input,omitempty"`

	// tool_result
	ToolUseID string `json:"tool_use_id,omitempty"`
	Content   string `json:"content,omitempty"`
}

func TextBlock(text string) ContentBlock {
	return ContentBlock{Type: BlockTypeText, Text: text}
}

func ToolResultBlock(toolUseID string, content string) ContentBlock {
	return ContentBlock{Type: BlockTypeToolResult, ToolUseID: toolUseID, Content: content}
}

type Message struct {
	Role    string         `json:"role"`
	Content []ContentBlock `json:"content"`
}

func UserMessage(blocks ...ContentBlock) Message {
	return Message{Role: RoleUser, Content: blocks}
}

// Tool declares one callable function to the model. Description doubles as
// usage guidance, including any sequencing hints.
type Tool struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	InputSchema Schema `json:"input_schema"`
}

// Schema is a JSON-schema-shaped parameter declaration.
type Schema struct {
	Type        string            `json:"type,omitempty"`
	Description string            `json:"description,omitempty"`
	Properties  map[string]Schema `json:"properties,omitempty"`
	Required    []string          `json:"required,omitempty"`
	Items       *Schema           `json:"items,omitempty"`
	AnyOf       []Schema          `json:"anyOf,omitempty"`
	Enum        []string          `json:"enum,omitempty"`
}

// StringOrStringList declares a parameter accepting either a single string or
// an array of strings, for batch lookups.
func StringOrStringList(description string) Schema {
	return Schema{
		Description: description,
		AnyOf: []Schema{
			{Type: "string"},
			{Type: "array", Items: &Schema{Type: "string"}},
		},
	}
}

type Request struct {
	Model     string    `json:"model"`
	MaxTokens int       `json:"max_tokens"`
	System    string    `json:"system,omitempty"`
	Messages  []Message `json:"messages"`
	Tools     []Tool    `json:"tools,omitempty"`
}

type Usage struct {
	InputTokens  int `json:"input_tokens"`
	OutputTokens int `json:"output_tokens"`
}

type Response struct {
	ID         string         `json:"id"`
	Content    []ContentBlock `json:"content"`
	StopReason string         `json:"stop_reason"`
	Usage      Usage          `json:"usage"`
}

// ToolUses returns the tool_use blocks of the response, in order.
func (r *Response) ToolUses() []ContentBlock {
	var uses []ContentBlock

	for _, block := range r.Content {
		if block.Type == BlockTypeToolUse {
			uses = append(uses, block)
		}
	}

	return uses
}

// Text concatenates the text blocks of the response.
func (r *Response) Text() string {
	text := ""

	for _, block := range r.Content {
		if block.Type == BlockTypeText {
			if text != "" {
				text += "\n"
			}
			text += block.Text
		}
	}

	return text
}
