package config_test

import (
	"testing"

	"haiku-server/internal/config"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.ServiceName != "haiku-api" {
		t.Errorf("expected default service name, got %q", cfg.ServiceName)
	}
	if cfg.Addr() != ":8080" {
		t.Errorf("expected default addr :8080, got %q", cfg.Addr())
	}
	if cfg.ImageModel != "dall-e-3" || cfg.ImageSize != "1024x1024" || cfg.ImageStyle != "natural" {
		t.Errorf("image defaults wrong: %s %s %s", cfg.ImageModel, cfg.ImageSize, cfg.ImageStyle)
	}
	if cfg.PromptVariantCount != 3 {
		t.Errorf("expected 3 prompt variants, got %d", cfg.PromptVariantCount)
	}
}

func TestLoad_ChatModelFollowsEnvironment(t *testing.T) {
	t.Setenv("ENVIRONMENT", "production")
	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.ChatModel != "gpt-4o-2024-08-06" {
		t.Errorf("production should pick the full model, got %q", cfg.ChatModel)
	}

	t.Setenv("ENVIRONMENT", "development")
	cfg, err = config.Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.ChatModel != "gpt-4o-mini" {
		t.Errorf("non-production should pick the mini model, got %q", cfg.ChatModel)
	}
}

func TestLoad_ExplicitChatModelWins(t *testing.T) {
	t.Setenv("ENVIRONMENT", "production")
	t.Setenv("CHAT_MODEL", "gpt-4.1")
	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.ChatModel != "gpt-4.1" {
		t.Errorf("explicit model must not be overridden, got %q", cfg.ChatModel)
	}
}
