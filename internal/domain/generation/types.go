package generation

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Role tags one message turn in a chat request.
type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message is one role-tagged turn sent to the provider.
type Message struct {
	Role    Role
	Content string
}

// Schema requests a structured, schema-validated answer. Target must be a
// pointer to the struct the answer is parsed into; its JSON shape drives the
// schema sent to the provider.
type Schema struct {
	Name   string
	Target any
}

// ChatRequest describes one text-generation call.
type ChatRequest struct {
	// ChainID groups related calls for audit; generated when empty.
	ChainID string
	// Name labels the call in the audit log, e.g. "haiku-generate".
	Name     string
	Model    string
	Messages []Message
	Schema   *Schema
}

// ChatResult is the successful outcome of a chat call. When a schema was
// given, Answer holds the canonical JSON of the parsed object and the
// request's Schema.Target has been populated.
type ChatResult struct {
	ChainID string
	Answer  string
}

// ImageRequest describes one image-generation call. Zero values for Model,
// Size, Style and Count fall back to the provider's configured defaults.
type ImageRequest struct {
	ChainID string
	Name    string
	Prompt  string
	Model   string
	Size    string
	Style   string
	Count   int
}

// Provider is the single point of contact with the generation backend.
type Provider interface {
	Complete(ctx context.Context, req ChatRequest) (*ChatResult, error)
	GenerateImages(ctx context.Context, req ImageRequest) ([][]byte, error)
}

// Log is one audit row for a provider call, success or failure.
type Log struct {
	ID        string
	ChainID   string
	Name      string
	Model     string
	Messages  json.RawMessage
	Response  json.RawMessage
	Answer    string
	Success   bool
	CreatedAt time.Time
}

// LogStore persists audit rows. Implementations must treat rows as
// append-only.
type LogStore interface {
	Record(ctx context.Context, entry *Log) error
}

// NewChainID returns a fresh correlation id.
func NewChainID() string {
	return uuid.New().String()
}
