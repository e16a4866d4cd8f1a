package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"strconv"
	"time"

	"github.com/fulmenhq/gofulmen/signals"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/cordialhq/cordial/discord"
	"github.com/cordialhq/cordial/interactions"
	"github.com/cordialhq/cordial/internal/observability"
	"github.com/cordialhq/cordial/internal/store"
)

var (
	serveHost string
	servePort int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the interaction callback endpoint",
	Long: `Start the HTTP endpoint the platform posts interaction callbacks to.
Callbacks are verified against the configured public key; pings are
answered automatically and everything else gets an ephemeral
acknowledgement. With --record, interactions are archived to the local
store.

Signal Handling:
  • Ctrl+C (SIGINT) or SIGTERM: Graceful shutdown
  • Ctrl+C twice within 2s: Force quit
  • SIGHUP: Config reload`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if cfg.PublicKey == "" {
			return errors.New("public_key is required to verify interaction callbacks")
		}

		log := observability.NewStructuredLogger(cfg.Logging.Level, cfg.Logging.Format)

		srv, err := interactions.New(interactions.Options{
			PublicKey: cfg.PublicKey,
			Path:      cfg.Serve.Path,
			Logger:    log.Named("interactions"),
		})
		if err != nil {
			return err
		}

		var db *store.Store
		if record {
			db, err = openStore(cmd.Context())
			if err != nil {
				return err
			}
		}

		srv.Fallback(func(ctx context.Context, interaction *discord.Interaction) (*discord.InteractionResponse, error) {
			name := ""
			if interaction.Data != nil {
				name = interaction.Data.Name
			}
			log.Info("Interaction received",
				zap.String("id", interaction.ID.String()),
				zap.Int("type", int(interaction.Type)),
				zap.String("command", name))

			if db != nil {
				payload, err := json.Marshal(interaction)
				if err == nil {
					entry := store.EventEntry{
						Type:      "INTERACTION_CREATE",
						GuildID:   idOrEmpty(interaction.GuildID.IsZero(), interaction.GuildID.String()),
						ChannelID: idOrEmpty(interaction.ChannelID.IsZero(), interaction.ChannelID.String()),
						Payload:   payload,
					}
					if err := db.InsertEvent(ctx, entry); err != nil {
						log.Warn("Failed to record interaction", zap.Error(err))
					}
				}
			}

			return interactions.EphemeralMessage("Acknowledged."), nil
		})

		addr := net.JoinHostPort(cfg.Serve.Host, strconv.Itoa(cfg.Serve.Port))

		shutdownTimeout := cfg.Serve.ShutdownTimeout
		if shutdownTimeout == 0 {
			shutdownTimeout = 10 * time.Second
		}

		// Register graceful shutdown handlers (LIFO order - last registered, first executed)
		// Handler 1: Flush logger (executed last)
		signals.OnShutdown(func(ctx context.Context) error {
			log.Info("Flushing logger...")
			if err := log.Sync(); err != nil {
				// Sync errors are often benign (stdout/stderr already closed)
				log.Warn("Logger sync returned error (may be benign)", zap.Error(err))
			}
			return nil
		})

		// Handler 2: Close the recording store after the server drains
		if db != nil {
			signals.OnShutdown(func(ctx context.Context) error {
				log.Info("Closing store...")
				return db.Close()
			})
		}

		// Handler 3: Shutdown HTTP server (executed first)
		signals.OnShutdown(func(ctx context.Context) error {
			log.Info("Shutting down HTTP server...")
			shutdownCtx, cancel := context.WithTimeout(ctx, shutdownTimeout)
			defer cancel()

			if err := srv.Shutdown(shutdownCtx); err != nil {
				return fmt.Errorf("server shutdown failed: %w", err)
			}

			log.Info("HTTP server stopped gracefully")
			return nil
		})

		// Register config reload handler (SIGHUP)
		signals.OnReload(func(ctx context.Context) error {
			log.Info("Received SIGHUP: attempting config reload")

			if err := viper.ReadInConfig(); err != nil {
				if _, ok := err.(viper.ConfigFileNotFoundError); ok {
					log.Info("No config file found - using defaults and environment variables")
					return nil
				}
				log.Error("Failed to reload config file",
					zap.String("file", viper.ConfigFileUsed()),
					zap.Error(err))
				return err
			}

			log.Info("Configuration reloaded successfully",
				zap.String("file", viper.ConfigFileUsed()))
			return nil
		})

		// Enable double-tap force quit (Ctrl+C within 2 seconds)
		if err := signals.EnableDoubleTap(signals.DoubleTapConfig{
			Window:  2 * time.Second,
			Message: "Press Ctrl+C again within 2 seconds to force quit",
		}); err != nil {
			log.Warn("Failed to enable double-tap force quit", zap.Error(err))
		}

		// Start server in background goroutine. Start returns nil once
		// Shutdown drains it, so a clean signal exit lands here too.
		errChan := make(chan error, 1)
		go func() {
			log.Info("Starting interaction server...",
				zap.String("addr", addr),
				zap.String("path", cfg.Serve.Path),
				zap.String("version", versionInfo.Version))
			errChan <- srv.Start(addr)
		}()

		// Start signal listener in background
		go func() {
			if err := signals.Listen(cmd.Context()); err != nil {
				log.Error("Signal handler error", zap.Error(err))
				errChan <- err
			}
		}()

		return <-errChan
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVar(&serveHost, "host", "localhost", "server host")
	serveCmd.Flags().IntVarP(&servePort, "port", "p", 8080, "server port")

	_ = viper.BindPFlag("serve.host", serveCmd.Flags().Lookup("host"))
	_ = viper.BindPFlag("serve.port", serveCmd.Flags().Lookup("port"))
}
