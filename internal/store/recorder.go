package store

import (
	"context"

	"go.uber.org/zap"
)

// Recorder appends game events on a best-effort basis: failures are logged
// and swallowed so analytics never interrupt play.
type Recorder struct {
	repo   EventRepo
	logger *zap.Logger
}

// NewRecorder wraps repo. A nil repo records nothing.
func NewRecorder(repo EventRepo, logger *zap.Logger) *Recorder {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Recorder{repo: repo, logger: logger}
}

// Record appends data, logging any error.
func (r *Recorder) Record(ctx context.Context, data GameEventData) {
	if r == nil || r.repo == nil {
		return
	}
	if err := r.repo.AppendGameEvent(ctx, data); err != nil {
		r.logger.Warn("record game event failed",
			zap.String("session_id", data.SessionID),
			zap.String("kind", data.Kind),
			zap.Error(err))
		return
	}
	r.logger.Debug("recorded game event",
		zap.String("session_id", data.SessionID),
		zap.String("kind", data.Kind),
		zap.String("outcome", data.Outcome))
}
