package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/rs/zerolog/log"
	"github.com/sysdevrun/transitchat/pkg/util"
)

const defaultBaseURL = "https://api.anthropic.com"
const defaultModel = "claude-3-5-haiku-latest"
const defaultMaxTokens = 1024
const apiVersion = "2023-06-01"

type Client struct {
	httpClient *http.Client

	baseURL string
	apiKey  string

	Model     string
	MaxTokens int
}

// NewClientFromEnv builds a client from TRANSITCHAT_LLM_* variables. The API
// key is the only required one.
func NewClientFromEnv() (*Client, error) {
	env := util.GetEnvironmentVariables()

	apiKey := env["TRANSITCHAT_LLM_API_KEY"]
	if apiKey == "" {
		return nil, errors.New("TRANSITCHAT_LLM_API_KEY is not set")
	}

	baseURL := defaultBaseURL
	if env["TRANSITCHAT_LLM_BASE_URL"] != "" {
		baseURL = env["TRANSITCHAT_LLM_BASE_URL"]
	}

	model := defaultModel
	if env["TRANSITCHAT_LLM_MODEL"] != "" {
		model = env["TRANSITCHAT_LLM_MODEL"]
	}

	return &Client{
		httpClient: &http.Client{Timeout: 120 * time.Second},
		baseURL:    baseURL,
		apiKey:     apiKey,
		Model:      model,
		MaxTokens:  defaultMaxTokens,
	}, nil
}

// CreateMessage performs one model call. Rate limiting and server errors are
// retried with exponential backoff; anything else fails immediately.
func (c *Client) CreateMessage(ctx context.Context, request Request) (*Response, error) {
	if request.Model == "" {
		request.Model = c.Model
	}
	if request.MaxTokens == 0 {
		request.MaxTokens = c.MaxTokens
	}

	body, err := json.Marshal(request)
	if err != nil {
		return nil, err
	}

	operation := func() (*Response, error) {
		return c.postMessages(ctx, body)
	}

	response, err := backoff.RetryWithData(operation,
		backoff.WithContext(backoff.WithMaxRetries(backoff.NewExponentialBackOff(), 3), ctx))
	if err != nil {
		return nil, err
	}

	log.Debug().
		Str("model", request.Model).
		Str("stop_reason", response.StopReason).
		Int("input_tokens", response.Usage.InputTokens).
		Int("output_tokens", response.Usage.OutputTokens).
		Msg("Model call complete")

	return response, nil
}

func (c *Client) postMessages(ctx context.Context, body []byte) (*Response, error) {
	httpRequest, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/messages", bytes.NewReader(body))
	if err != nil {
		return nil, backoff.Permanent(err)
	}

	httpRequest.Header.Set("Content-Type", "application/json")
	httpRequest.Header.Set("X-Api-Key", c.apiKey)
	httpRequest.Header.Set("Anthropic-Version", apiVersion)

	httpResponse, err := c.httpClient.Do(httpRequest)
	if err != nil {
		return nil, err
	}
	defer httpResponse.Body.Close()

	responseBody, err := io.ReadAll(httpResponse.Body)
	if err != nil {
		return nil, err
	}

	if httpResponse.StatusCode != http.StatusOK {
		err := fmt.Errorf("model service returned %d: %s", httpResponse.StatusCode, util.TrimString(string(responseBody), 512))

		// 429 and 5xx are worth retrying, the rest are ours to fix
		if httpResponse.StatusCode == http.StatusTooManyRequests || httpResponse.StatusCode >= 500 {
			return nil, err
		}

		return nil, backoff.Permanent(err)
	}

	var response Response
	if err := json.Unmarshal(responseBody, &response); err != nil {
		return nil, backoff.Permanent(err)
	}

	return &response, nil
}
