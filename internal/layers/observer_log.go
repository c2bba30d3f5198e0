package layers

import (
	"go.uber.org/zap"

	"furnedit/internal/docdiff"
)

// LogObserver writes one structured log entry per mutation, including the
// merge patch it produced.
type LogObserver struct {
	log *zap.Logger
}

// NewLogObserver returns an observer logging to log. A nil logger is a no-op logger.
func NewLogObserver(log *zap.Logger) *LogObserver {
	if log == nil {
		log = zap.NewNop()
	}
	return &LogObserver{log: log.Named("layers")}
}

// OnMutation implements Observer.
func (o *LogObserver) OnMutation(m Mutation) {
	fields := []zap.Field{
		zap.String("op", string(m.Op)),
		zap.Int("viz", m.VizIndex),
	}
	if m.LayerID != "" {
		fields = append(fields, zap.String("layer", m.LayerID))
	}
	if m.Field != "" {
		fields = append(fields, zap.String("field", m.Field), zap.String("value", m.Value))
	}
	changes, err := docdiff.Diff(m.Previous, m.Document)
	if err != nil {
		o.log.Warn("diff failed", append(fields, zap.Error(err))...)
		return
	}
	fields = append(fields, zap.String("patch", docdiff.Summary(changes, 0)))
	o.log.Info("document updated", fields...)
}
