package navigation

import "go.uber.org/zap"

type zapLogger struct {
	s *zap.SugaredLogger
}

// NewZapLogger adapts a zap sugared logger to Logger.
func NewZapLogger(s *zap.SugaredLogger) Logger {
	if s == nil {
		s = zap.NewNop().Sugar()
	}
	return &zapLogger{s: s}
}

func (z *zapLogger) Debug(format string, args ...any) { z.s.Debugf(format, args...) }
func (z *zapLogger) Info(format string, args ...any)  { z.s.Infof(format, args...) }
func (z *zapLogger) Warn(format string, args ...any)  { z.s.Warnf(format, args...) }
func (z *zapLogger) Error(format string, args ...any) { z.s.Errorf(format, args...) }
