package cmd

import (
	"github.com/jensneuse/abstractlogger"
	"go.uber.org/zap"
)

// newLogger builds a zap development logger. sync flushes buffered entries.
func newLogger(debug bool) (logger abstractlogger.Logger, sync func(), err error) {
	config := zap.NewDevelopmentConfig()
	level := abstractlogger.DebugLevel
	if !debug {
		config.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
		level = abstractlogger.WarnLevel
	}

	zapLogger, err := config.Build()
	if err != nil {
		return nil, nil, err
	}
	return abstractlogger.NewZapLogger(zapLogger, level), func() { _ = zapLogger.Sync() }, nil
}
