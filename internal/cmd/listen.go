package cmd

import (
	"context"
	"encoding/json"
	"time"

	"github.com/fulmenhq/gofulmen/signals"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/cordialhq/cordial/gateway"
	"github.com/cordialhq/cordial/internal/observability"
	"github.com/cordialhq/cordial/internal/store"
)

var listenIntents []string

var listenCmd = &cobra.Command{
	Use:   "listen",
	Short: "Stream gateway events to the terminal",
	Long: `Connect to the gateway and log dispatched events until interrupted.
With --record, events are also archived to the local store for the
events command.

Signal Handling:
  • Ctrl+C (SIGINT) or SIGTERM: Graceful shutdown
  • Ctrl+C twice within 2s: Force quit`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		token, err := resolveToken(cfg)
		if err != nil {
			return err
		}

		if len(listenIntents) > 0 {
			cfg.Gateway.Intents = listenIntents
		}
		intents, err := cfg.Gateway.IntentBits()
		if err != nil {
			return err
		}

		log := observability.NewStructuredLogger(cfg.Logging.Level, cfg.Logging.Format)
		defer log.Sync() // nolint:errcheck // stderr sync errors are benign

		var db *store.Store
		if record {
			db, err = openStore(cmd.Context())
			if err != nil {
				return err
			}
			defer db.Close() // nolint:errcheck // best-effort cleanup
		}

		sess, err := gateway.New(gateway.Options{
			Token:           token,
			Intents:         intents,
			URL:             cfg.Gateway.URL,
			Logger:          log.Named("gateway"),
			EventBufferSize: cfg.Gateway.EventBufferSize,
		})
		if err != nil {
			return err
		}

		if err := sess.Open(cmd.Context()); err != nil {
			return err
		}

		// Graceful shutdown: closing the session unblocks the event loop
		// below through Done.
		signals.OnShutdown(func(ctx context.Context) error {
			log.Info("Closing gateway session...")
			return sess.Close()
		})

		if err := signals.EnableDoubleTap(signals.DoubleTapConfig{
			Window:  2 * time.Second,
			Message: "Press Ctrl+C again within 2 seconds to force quit",
		}); err != nil {
			log.Warn("Failed to enable double-tap force quit", zap.Error(err))
		}

		go func() {
			if err := signals.Listen(cmd.Context()); err != nil {
				log.Error("Signal handler error", zap.Error(err))
			}
		}()

		for {
			select {
			case ev := <-sess.Events():
				logEvent(log, ev)
				if db != nil {
					recordEvent(cmd.Context(), db, log, ev)
				}
			case <-sess.Done():
				return sess.Err()
			}
		}
	},
}

// logEvent writes one line per dispatch, with richer fields for the
// event families people usually tail.
func logEvent(log *zap.Logger, ev gateway.Event) {
	switch e := ev.(type) {
	case *gateway.ReadyEvent:
		log.Info("Connected",
			zap.String("user", e.User.Username),
			zap.String("session_id", e.SessionID),
			zap.Int("guilds", len(e.Guilds)))
	case *gateway.ResumedEvent:
		log.Info("Resumed")
	case *gateway.MessageCreateEvent:
		log.Info("Message",
			zap.String("author", e.Author.Username),
			zap.String("channel_id", e.ChannelID.String()),
			zap.String("content", e.Content))
	case *gateway.MessageDeleteEvent:
		log.Info("Message deleted",
			zap.String("message_id", e.ID.String()),
			zap.String("channel_id", e.ChannelID.String()))
	case *gateway.GuildCreateEvent:
		log.Info("Guild available",
			zap.String("guild_id", e.ID.String()),
			zap.String("name", e.Name))
	case *gateway.GuildDeleteEvent:
		log.Info("Guild gone",
			zap.String("guild_id", e.ID.String()),
			zap.Bool("unavailable", e.Unavailable))
	case *gateway.InteractionCreateEvent:
		log.Info("Interaction",
			zap.String("id", e.ID.String()),
			zap.Int("type", int(e.Type)))
	default:
		log.Info("Event", zap.String("type", ev.EventType()))
	}
}

// recordEvent archives a dispatch into the event ledger.
func recordEvent(ctx context.Context, db *store.Store, log *zap.Logger, ev gateway.Event) {
	entry := store.EventEntry{Type: ev.EventType()}

	if raw, ok := ev.(*gateway.RawEvent); ok {
		entry.Payload = raw.Data
	} else {
		payload, err := json.Marshal(ev)
		if err != nil {
			log.Warn("Failed to encode event", zap.String("type", ev.EventType()), zap.Error(err))
			return
		}
		entry.Payload = payload
	}

	entry.GuildID, entry.ChannelID = eventScope(ev)

	if err := db.InsertEvent(ctx, entry); err != nil {
		log.Warn("Failed to record event", zap.String("type", ev.EventType()), zap.Error(err))
	}
}

// eventScope pulls the guild and channel ids off the event families
// that carry them.
func eventScope(ev gateway.Event) (guildID, channelID string) {
	switch e := ev.(type) {
	case *gateway.MessageCreateEvent:
		return idOrEmpty(e.GuildID.IsZero(), e.GuildID.String()), e.ChannelID.String()
	case *gateway.MessageUpdateEvent:
		return idOrEmpty(e.GuildID.IsZero(), e.GuildID.String()), e.ChannelID.String()
	case *gateway.MessageDeleteEvent:
		return idOrEmpty(e.GuildID.IsZero(), e.GuildID.String()), e.ChannelID.String()
	case *gateway.GuildCreateEvent:
		return e.ID.String(), ""
	case *gateway.GuildDeleteEvent:
		return e.ID.String(), ""
	case *gateway.InteractionCreateEvent:
		return idOrEmpty(e.GuildID.IsZero(), e.GuildID.String()), idOrEmpty(e.ChannelID.IsZero(), e.ChannelID.String())
	default:
		return "", ""
	}
}

func idOrEmpty(zero bool, id string) string {
	if zero {
		return ""
	}
	return id
}

func init() {
	rootCmd.AddCommand(listenCmd)
	listenCmd.Flags().StringSliceVar(&listenIntents, "intents", nil, "Gateway intents to subscribe to, overriding config")
}
