package store

import (
	"context"

	"go.uber.org/zap"

	"github.com/cordialhq/cordial/rest"
)

// Recorder adapts the store to the rest.Recorder interface. Write
// failures are logged, never propagated into the request path.
type Recorder struct {
	store *Store
	log   *zap.Logger
}

// NewRecorder wraps a store for use as a REST exchange recorder.
func NewRecorder(s *Store, log *zap.Logger) *Recorder {
	if log == nil {
		log = zap.NewNop()
	}
	return &Recorder{store: s, log: log}
}

// RecordExchange implements rest.Recorder.
func (r *Recorder) RecordExchange(ctx context.Context, ex rest.Exchange) {
	if err := r.store.InsertExchange(ctx, ex); err != nil {
		r.log.Warn("Failed to record exchange",
			zap.String("route", ex.Route),
			zap.Error(err))
	}
}
