package tools

import "github.com/sysdevrun/transitchat/pkg/llm"

type llmTool = llm.Tool
type schema = llm.Schema

func stringOrList(description string) schema {
	return llm.StringOrStringList(description)
}

func llmToolDefinition(name string, description string, properties map[string]schema, required []string) llmTool {
	return llmTool{
		Name:        name,
		Description: description,
		InputSchema: schema{
			Type:       "object",
			Properties: properties,
			Required:   required,
		},
	}
}
