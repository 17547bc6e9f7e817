package zap

import (
	"sort"

	"go.uber.org/zap"

	"github.com/unkn0wn-root/ouch"
)

var _ ouch.Logger = ZapLogger{}

type ZapLogger struct{ L *zap.Logger }

// New names the logger "ouch" so journal events are easy to filter.
func New(l *zap.Logger) ZapLogger { return ZapLogger{L: l.Named("ouch")} }

func (z ZapLogger) Debug(msg string, f ouch.Fields) { z.L.Debug(msg, zf(f)...) }
func (z ZapLogger) Info(msg string, f ouch.Fields)  { z.L.Info(msg, zf(f)...) }
func (z ZapLogger) Warn(msg string, f ouch.Fields)  { z.L.Warn(msg, zf(f)...) }
func (z ZapLogger) Error(msg string, f ouch.Fields) { z.L.Error(msg, zf(f)...) }

// zf emits fields in key order; errors keep zap's error encoding.
func zf(f ouch.Fields) []zap.Field {
	if len(f) == 0 {
		return nil
	}
	keys := make([]string, 0, len(f))
	for k := range f {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := make([]zap.Field, 0, len(f))
	for _, k := range keys {
		if err, ok := f[k].(error); ok {
			out = append(out, zap.NamedError(k, err))
			continue
		}
		out = append(out, zap.Any(k, f[k]))
	}
	return out
}
