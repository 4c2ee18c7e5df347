package llmclient

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	openai "github.com/sashabaranov/go-openai"
	"github.com/sashabaranov/go-openai/jsonschema"

	"haiku-server/internal/domain/generation"
	"haiku-server/internal/infrastructure/metrics"
	"haiku-server/internal/infrastructure/observability"
)

// Config carries provider defaults; zero fields in a request fall back here.
type Config struct {
	APIKey     string
	BaseURL    string
	ChatModel  string
	ImageModel string
	ImageSize  string
	ImageStyle string
	ImageCount int
}

// Client is the single point of contact with the OpenAI-compatible provider.
// Every call, success or failure, writes exactly one audit row through the
// LogStore before returning.
type Client struct {
	api  *openai.Client
	cfg  Config
	logs generation.LogStore
	log  zerolog.Logger
}

// NewClient constructs the provider client.
func NewClient(cfg Config, logs generation.LogStore, log zerolog.Logger) *Client {
	apiCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		apiCfg.BaseURL = cfg.BaseURL
	}
	return &Client{
		api:  openai.NewClientWithConfig(apiCfg),
		cfg:  cfg,
		logs: logs,
		log:  log.With().Str("component", "llm-client").Logger(),
	}
}

// Complete performs one chat completion. When req.Schema is set the provider
// is asked for a strict JSON-schema response and the answer is validated and
// parsed into req.Schema.Target; a validation failure is a generation
// failure. No partial result is ever returned.
func (c *Client) Complete(ctx context.Context, req generation.ChatRequest) (*generation.ChatResult, error) {
	if req.ChainID == "" {
		req.ChainID = generation.NewChainID()
	}
	model := req.Model
	if model == "" {
		model = c.cfg.ChatModel
	}

	ctx, span := observability.StartGenerationSpan(ctx, req.ChainID, req.Name, model)
	defer span.End()
	start := time.Now()

	messages := make([]openai.ChatCompletionMessage, 0, len(req.Messages))
	for _, m := range req.Messages {
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    string(m.Role),
			Content: m.Content,
		})
	}

	chatReq := openai.ChatCompletionRequest{
		Model:       model,
		Messages:    messages,
		Temperature: 0.1,
	}

	var schemaDef *jsonschema.Definition
	if req.Schema != nil {
		def, err := jsonschema.GenerateSchemaForType(req.Schema.Target)
		if err != nil {
			return nil, fmt.Errorf("generate response schema: %w", err)
		}
		schemaDef = def
		chatReq.ResponseFormat = &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONSchema,
			JSONSchema: &openai.ChatCompletionResponseFormatJSONSchema{
				Name:   req.Schema.Name,
				Schema: def,
				Strict: true,
			},
		}
	}

	completion, err := c.api.CreateChatCompletion(ctx, chatReq)
	if err != nil {
		c.recordCall(ctx, req.ChainID, req.Name, model, messages, errResponse(err), err.Error(), false)
		metrics.GenerationCallsTotal.WithLabelValues("chat", "error").Inc()
		observability.RecordError(span, err)
		return nil, fmt.Errorf("chat completion: %w", err)
	}

	answer := ""
	if len(completion.Choices) > 0 {
		answer = completion.Choices[0].Message.Content
	}

	if schemaDef != nil {
		if err := jsonschema.VerifySchemaAndUnmarshal(*schemaDef, []byte(answer), req.Schema.Target); err != nil {
			parseErr := fmt.Errorf("parse structured answer: %w", err)
			c.recordCall(ctx, req.ChainID, req.Name, model, messages, marshalLenient(completion), parseErr.Error(), false)
			metrics.GenerationCallsTotal.WithLabelValues("chat", "error").Inc()
			observability.RecordError(span, parseErr)
			return nil, parseErr
		}
	}

	c.recordCall(ctx, req.ChainID, req.Name, model, messages, marshalLenient(completion), answer, true)
	metrics.GenerationCallsTotal.WithLabelValues("chat", "ok").Inc()
	metrics.GenerationDuration.WithLabelValues("chat").Observe(time.Since(start).Seconds())

	return &generation.ChatResult{ChainID: req.ChainID, Answer: answer}, nil
}

// GenerateImages performs one image generation call and returns the decoded
// binary payloads. Raw image bytes are elided from the audit row.
func (c *Client) GenerateImages(ctx context.Context, req generation.ImageRequest) ([][]byte, error) {
	if req.ChainID == "" {
		req.ChainID = generation.NewChainID()
	}
	model := req.Model
	if model == "" {
		model = c.cfg.ImageModel
	}
	size := req.Size
	if size == "" {
		size = c.cfg.ImageSize
	}
	style := req.Style
	if style == "" {
		style = c.cfg.ImageStyle
	}
	count := req.Count
	if count <= 0 {
		count = c.cfg.ImageCount
	}

	ctx, span := observability.StartGenerationSpan(ctx, req.ChainID, req.Name, model)
	defer span.End()
	start := time.Now()

	promptLog := []openai.ChatCompletionMessage{{Role: string(generation.RoleUser), Content: req.Prompt}}

	resp, err := c.api.CreateImage(ctx, openai.ImageRequest{
		Prompt:         req.Prompt,
		Model:          model,
		N:              count,
		Size:           size,
		Style:          style,
		ResponseFormat: openai.CreateImageResponseFormatB64JSON,
	})
	if err != nil {
		c.recordCall(ctx, req.ChainID, req.Name, model, promptLog, errResponse(err), err.Error(), false)
		metrics.GenerationCallsTotal.WithLabelValues("image", "error").Inc()
		observability.RecordError(span, err)
		return nil, fmt.Errorf("image generation: %w", err)
	}

	images := make([][]byte, 0, len(resp.Data))
	for _, d := range resp.Data {
		raw, decodeErr := base64.StdEncoding.DecodeString(d.B64JSON)
		if decodeErr != nil {
			c.recordCall(ctx, req.ChainID, req.Name, model, promptLog, errResponse(decodeErr), decodeErr.Error(), false)
			metrics.GenerationCallsTotal.WithLabelValues("image", "error").Inc()
			observability.RecordError(span, decodeErr)
			return nil, fmt.Errorf("decode image payload: %w", decodeErr)
		}
		images = append(images, raw)
	}

	// The b64 payloads are large; keep only a summary in the audit row.
	summary, _ := json.Marshal(map[string]any{"images": len(images), "size": size, "style": style})
	c.recordCall(ctx, req.ChainID, req.Name, model, promptLog, summary, fmt.Sprintf("generated %d image(s)", len(images)), true)
	metrics.GenerationCallsTotal.WithLabelValues("image", "ok").Inc()
	metrics.GenerationDuration.WithLabelValues("image").Observe(time.Since(start).Seconds())

	return images, nil
}

// recordCall writes the audit row. A failed write is demoted to a warning so
// a logging fault never masks the generation outcome.
func (c *Client) recordCall(ctx context.Context, chainID, name, model string, messages []openai.ChatCompletionMessage, response json.RawMessage, answer string, success bool) {
	msgJSON, err := json.Marshal(messages)
	if err != nil {
		msgJSON = []byte(`[]`)
	}

	entry := &generation.Log{
		ChainID:  chainID,
		Name:     name,
		Model:    model,
		Messages: msgJSON,
		Response: response,
		Answer:   answer,
		Success:  success,
	}
	if err := c.logs.Record(ctx, entry); err != nil {
		c.log.Warn().Err(err).Str("chain_id", chainID).Str("name", name).Msg("failed to record generation log")
	}
}

func errResponse(err error) json.RawMessage {
	raw, marshalErr := json.Marshal(map[string]string{"error": err.Error()})
	if marshalErr != nil {
		return json.RawMessage(`{}`)
	}
	return raw
}

func marshalLenient(v any) json.RawMessage {
	raw, err := json.Marshal(v)
	if err != nil {
		return json.RawMessage(fmt.Sprintf("%q", fmt.Sprintf("%v", v)))
	}
	return raw
}
