package logger

import (
	"log"
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type Logger struct {
	sugar   *zap.SugaredLogger
	service string
}

func New(service string) *Logger {
	return NewWithCore(service, newCore())
}

// NewWithCore builds a logger on top of an existing zap core. Tests use it
// with an observer core.
func NewWithCore(service string, core zapcore.Core) *Logger {
	base := zap.New(core)
	if service != "" {
		base = base.Named(service)
	}
	return &Logger{
		sugar:   base.Sugar(),
		service: service,
	}
}

func newCore() zapcore.Core {
	level := parseLevel(os.Getenv("LOG_LEVEL"))

	encCfg := zap.NewProductionEncoderConfig()
	encCfg.TimeKey = "time"
	encCfg.NameKey = "service"

	var encoder zapcore.Encoder
	if strings.EqualFold(os.Getenv("LOG_FORMAT"), "json") {
		encCfg.EncodeTime = zapcore.ISO8601TimeEncoder
		encoder = zapcore.NewJSONEncoder(encCfg)
	} else {
		encCfg.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05")
		encCfg.EncodeLevel = zapcore.CapitalLevelEncoder
		if os.Getenv("LOG_COLORS") != "false" {
			encCfg.EncodeLevel = zapcore.CapitalColorLevelEncoder
		}
		encCfg.EncodeName = func(name string, enc zapcore.PrimitiveArrayEncoder) {
			enc.AppendString("[" + name + "]")
		}
		encoder = zapcore.NewConsoleEncoder(encCfg)
	}

	return zapcore.NewCore(encoder, zapcore.Lock(os.Stdout), level)
}

func parseLevel(s string) zapcore.Level {
	switch strings.ToUpper(s) {
	case "DEBUG":
		return zapcore.DebugLevel
	case "WARN":
		return zapcore.WarnLevel
	case "ERROR":
		return zapcore.ErrorLevel
	case "FATAL":
		return zapcore.FatalLevel
	default:
		return zapcore.InfoLevel
	}
}

func (l *Logger) Service() string {
	return l.service
}

// With returns a child logger carrying the given key/value pairs on every entry.
func (l *Logger) With(keysAndValues ...interface{}) *Logger {
	return &Logger{
		sugar:   l.sugar.With(keysAndValues...),
		service: l.service,
	}
}

func (l *Logger) Debug(format string, args ...interface{}) {
	l.sugar.Debugf(format, args...)
}

func (l *Logger) Info(format string, args ...interface{}) {
	l.sugar.Infof(format, args...)
}

func (l *Logger) Warn(format string, args ...interface{}) {
	l.sugar.Warnf(format, args...)
}

func (l *Logger) Error(format string, args ...interface{}) {
	l.sugar.Errorf(format, args...)
}

func (l *Logger) Fatal(format string, args ...interface{}) {
	l.sugar.Fatalf(format, args...)
}

func (l *Logger) Sync() error {
	return l.sugar.Sync()
}

// SetStdLog redirects standard log package to use this logger
func (l *Logger) SetStdLog() func() {
	return zap.RedirectStdLog(l.sugar.Desugar())
}

// StdLogger returns a *log.Logger that writes at error level, for http.Server.ErrorLog.
func (l *Logger) StdLogger() *log.Logger {
	std, err := zap.NewStdLogAt(l.sugar.Desugar(), zapcore.ErrorLevel)
	if err != nil {
		return zap.NewStdLog(l.sugar.Desugar())
	}
	return std
}
