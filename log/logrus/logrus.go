package logrus

import (
	"github.com/sirupsen/logrus"

	"github.com/unkn0wn-root/ouch"
)

var _ ouch.Logger = LogrusLogger{}

type LogrusLogger struct{ E *logrus.Entry }

// New tags every entry with component=ouch.
func New(l *logrus.Logger) LogrusLogger {
	return LogrusLogger{E: l.WithField("component", "ouch")}
}

func (l LogrusLogger) Debug(msg string, f ouch.Fields) { l.with(f).Debug(msg) }
func (l LogrusLogger) Info(msg string, f ouch.Fields)  { l.with(f).Info(msg) }
func (l LogrusLogger) Warn(msg string, f ouch.Fields)  { l.with(f).Warn(msg) }
func (l LogrusLogger) Error(msg string, f ouch.Fields) { l.with(f).Error(msg) }

func (l LogrusLogger) with(f ouch.Fields) *logrus.Entry {
	if len(f) == 0 {
		return l.E
	}
	return l.E.WithFields(logrus.Fields(f))
}
