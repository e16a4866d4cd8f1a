package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"strings"

	"github.com/cordialhq/cordial/discord"
	"github.com/cordialhq/cordial/internal/config"
	"github.com/cordialhq/cordial/internal/observability"
	"github.com/cordialhq/cordial/internal/store"
	"github.com/cordialhq/cordial/rest"
)

// resolveToken returns the bot token from config or environment.
func resolveToken(cfg *config.Config) (string, error) {
	if token := strings.TrimSpace(cfg.Token); token != "" {
		return token, nil
	}
	for _, key := range []string{"CORDIAL_TOKEN", "DISCORD_TOKEN"} {
		if token := strings.TrimSpace(os.Getenv(key)); token != "" {
			return token, nil
		}
	}
	return "", errors.New("no token configured: set token in the config file or export CORDIAL_TOKEN")
}

// clientOptions assembles rest options from config, wiring the
// recording store when --record is set. The returned cleanup closes
// the store and must always be called.
func clientOptions(ctx context.Context) (rest.Options, func(), error) {
	cfg, err := loadConfig()
	if err != nil {
		return rest.Options{}, nil, err
	}

	opts := rest.Options{
		BaseURL:  cfg.Rest.BaseURL,
		RetryCap: cfg.Rest.RetryCap,
		Logger:   observability.CLILogger,
	}
	if cfg.Rest.Timeout > 0 {
		opts.HTTPClient = &http.Client{Timeout: cfg.Rest.Timeout}
	}
	if cfg.ApplicationID != "" {
		flake, err := discord.ParseSnowflake(cfg.ApplicationID)
		if err != nil {
			return rest.Options{}, nil, fmt.Errorf("invalid application_id: %w", err)
		}
		opts.ApplicationID = discord.ApplicationID(flake)
	}

	cleanup := func() {}
	if record {
		db, err := openStore(ctx)
		if err != nil {
			return rest.Options{}, nil, err
		}
		opts.Recorder = store.NewRecorder(db, observability.CLILogger)
		cleanup = func() { _ = db.Close() }
	}
	return opts, cleanup, nil
}

// newRestClient builds an authenticated API client from config.
func newRestClient(ctx context.Context) (*rest.Client, func(), error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, nil, err
	}
	token, err := resolveToken(cfg)
	if err != nil {
		return nil, nil, err
	}

	opts, cleanup, err := clientOptions(ctx)
	if err != nil {
		return nil, nil, err
	}
	opts.Token = token
	return rest.New(opts), cleanup, nil
}

// newAnonymousClient builds a client without credentials, enough for
// the webhook-token endpoints.
func newAnonymousClient(ctx context.Context) (*rest.Client, func(), error) {
	opts, cleanup, err := clientOptions(ctx)
	if err != nil {
		return nil, nil, err
	}
	return rest.New(opts), cleanup, nil
}

// ensureApplicationID seeds the client's application id from the API
// when the config does not carry one. Command endpoints need it.
func ensureApplicationID(ctx context.Context, client *rest.Client, cfg *config.Config) error {
	if cfg.ApplicationID != "" {
		return nil
	}
	app, err := client.CurrentApplication(ctx)
	if err != nil {
		return fmt.Errorf("resolve application id: %w", err)
	}
	client.SetApplicationID(app.ID)
	return nil
}

// parseSnowflakeArg parses a positional id argument with a descriptive
// error naming the argument.
func parseSnowflakeArg(name, raw string) (discord.Snowflake, error) {
	flake, err := discord.ParseSnowflake(strings.TrimSpace(raw))
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", name, raw, err)
	}
	return flake, nil
}
