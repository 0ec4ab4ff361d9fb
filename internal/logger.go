package internal

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type Logger interface {
	Info(args ...interface{})
	Infof(format string, args ...interface{})
	Warn(args ...interface{})
	Warnf(format string, args ...interface{})
	Error(args ...interface{})
	Errorf(format string, args ...interface{})
	Debug(args ...interface{})
	Debugf(format string, args ...interface{})
	Fatal(args ...interface{})
	Fatalf(format string, args ...interface{})
}

type ZapLogger struct {
	s *zap.SugaredLogger
}

// NewLogger builds a zap-backed Logger. Production config for the production
// env, development config otherwise; level falls back to info if unparseable.
func NewLogger(env, level string) (*ZapLogger, error) {
	cfg := zap.NewDevelopmentConfig()
	if env == "production" {
		cfg = zap.NewProductionConfig()
	}
	if lvl, err := zapcore.ParseLevel(level); err == nil {
		cfg.Level = zap.NewAtomicLevelAt(lvl)
	}
	l, err := cfg.Build()
	if err != nil {
		return nil, err
	}
	return &ZapLogger{s: l.Sugar()}, nil
}

func NewZapLogger(s *zap.SugaredLogger) *ZapLogger {
	return &ZapLogger{s: s}
}

func (l *ZapLogger) Info(args ...interface{})                  { l.s.Info(args...) }
func (l *ZapLogger) Infof(format string, args ...interface{})  { l.s.Infof(format, args...) }
func (l *ZapLogger) Warn(args ...interface{})                  { l.s.Warn(args...) }
func (l *ZapLogger) Warnf(format string, args ...interface{})  { l.s.Warnf(format, args...) }
func (l *ZapLogger) Error(args ...interface{})                 { l.s.Error(args...) }
func (l *ZapLogger) Errorf(format string, args ...interface{}) { l.s.Errorf(format, args...) }
func (l *ZapLogger) Debug(args ...interface{})                 { l.s.Debug(args...) }
func (l *ZapLogger) Debugf(format string, args ...interface{}) { l.s.Debugf(format, args...) }
func (l *ZapLogger) Fatal(args ...interface{})                 { l.s.Fatal(args...) }
func (l *ZapLogger) Fatalf(format string, args ...interface{}) { l.s.Fatalf(format, args...) }
