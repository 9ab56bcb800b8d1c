package reflow

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"
)

// Warning is a non-fatal problem met while converting a page.
type Warning struct {
	Message string
	Fields  logrus.Fields
}

// String renders the warning as "message (key=value, ...)" with sorted keys
func (w Warning) String() string {
	if len(w.Fields) == 0 {
		return w.Message
	}
	keys := make([]string, 0, len(w.Fields))
	for k := range w.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = fmt.Sprintf("%s=%v", k, w.Fields[k])
	}
	return w.Message + " (" + strings.Join(parts, ", ") + ")"
}

// FormatWarnings joins warnings into a single line
func FormatWarnings(warnings []Warning) string {
	parts := make([]string, len(warnings))
	for i, w := range warnings {
		parts[i] = w.String()
	}
	return strings.Join(parts, "; ")
}

// warningHook forwards every entry to the caller's logger and keeps the
// warnings and errors for the page that produced them.
type warningHook struct {
	mu       sync.Mutex
	next     logrus.FieldLogger
	warnings []Warning
}

func (h *warningHook) Levels() []logrus.Level {
	return logrus.AllLevels
}

func (h *warningHook) Fire(entry *logrus.Entry) error {
	fields := make(logrus.Fields, len(entry.Data))
	for k, v := range entry.Data {
		fields[k] = v
	}

	out := h.next.WithFields(fields)
	switch entry.Level {
	case logrus.PanicLevel, logrus.FatalLevel, logrus.ErrorLevel:
		out.Error(entry.Message)
	case logrus.WarnLevel:
		out.Warn(entry.Message)
	case logrus.InfoLevel:
		out.Info(entry.Message)
	default:
		out.Debug(entry.Message)
	}

	if entry.Level <= logrus.WarnLevel {
		h.mu.Lock()
		h.warnings = append(h.warnings, Warning{Message: entry.Message, Fields: fields})
		h.mu.Unlock()
	}
	return nil
}

func (h *warningHook) collected() []Warning {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]Warning(nil), h.warnings...)
}

// newCapturingLogger returns a logger whose output goes only to next,
// while warnings are also recorded by the returned hook.
func newCapturingLogger(next logrus.FieldLogger) (*logrus.Logger, *warningHook) {
	hook := &warningHook{next: next}
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	logger.SetLevel(logrus.DebugLevel)
	logger.AddHook(hook)
	return logger, hook
}
