package playback

import "go.uber.org/zap"

// LogSink is a MediaSink and PresentationSink that only logs the calls it
// receives. Headless runs use it as their presentation.
type LogSink struct {
	log *zap.Logger
}

// NewLogSink creates a sink logging at info level.
func NewLogSink(log *zap.Logger) *LogSink {
	if log == nil {
		log = zap.NewNop()
	}
	return &LogSink{log: log}
}

func (s *LogSink) SetSource(url string) {
	if url == "" {
		s.log.Info("source cleared")
		return
	}
	s.log.Info("source set", zap.String("url", url))
}

func (s *LogSink) Play() {
	s.log.Info("play")
}

func (s *LogSink) SetLabel(text string) {
	s.log.Info("now playing", zap.String("label", text))
}

func (s *LogSink) SetActive(active bool) {
	s.log.Debug("surface", zap.Bool("active", active))
}
