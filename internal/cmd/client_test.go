package cmd

import (
	"testing"

	"github.com/cordialhq/cordial/internal/config"
)

func TestResolveToken(t *testing.T) {
	t.Run("FromConfig", func(t *testing.T) {
		cfg := &config.Config{Token: " Bot abc123 "}
		token, err := resolveToken(cfg)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if token != "Bot abc123" {
			t.Fatalf("expected trimmed config token, got %q", token)
		}
	})

	t.Run("FromEnv", func(t *testing.T) {
		t.Setenv("CORDIAL_TOKEN", "env-token")
		t.Setenv("DISCORD_TOKEN", "")
		token, err := resolveToken(&config.Config{})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if token != "env-token" {
			t.Fatalf("expected env token, got %q", token)
		}
	})

	t.Run("DiscordEnvFallback", func(t *testing.T) {
		t.Setenv("CORDIAL_TOKEN", "")
		t.Setenv("DISCORD_TOKEN", "discord-token")
		token, err := resolveToken(&config.Config{})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if token != "discord-token" {
			t.Fatalf("expected fallback token, got %q", token)
		}
	})

	t.Run("Missing", func(t *testing.T) {
		t.Setenv("CORDIAL_TOKEN", "")
		t.Setenv("DISCORD_TOKEN", "")
		if _, err := resolveToken(&config.Config{}); err == nil {
			t.Fatal("expected error when no token is configured")
		}
	})
}
