// Package applog provides the severity-tagged logger used by output-file operations
package applog

import "github.com/wb-go/wbf/zlog"

// StdLogger wraps zlog-logger and tags every entry with the component name
type StdLogger struct {
	logger zlog.Zerolog
}

// New builds StdLogger on top of the given zerolog-logger
func New(base zlog.Zerolog, component string) *StdLogger {
	return &StdLogger{
		logger: base.With().Str("component", component).Logger(),
	}
}

// NewDefault - то же самое поверх глобального zlog.Logger
func NewDefault(component string) *StdLogger {
	return New(zlog.Logger, component)
}

func (l *StdLogger) StdInfo(msg string) {
	l.logger.Info().Msg(msg)
}

func (l *StdLogger) StdWarn(msg string) {
	l.logger.Warn().Msg(msg)
}

func (l *StdLogger) StdError(msg string) {
	l.logger.Error().Msg(msg)
}
