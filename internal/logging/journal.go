package logging

import (
	"fmt"
	"strings"

	"github.com/coreos/go-systemd/v22/journal"
	"github.com/sirupsen/logrus"
)

// journalSend is stubbed in tests
var journalSend = journal.Send

// JournalHook forwards log entries to systemd-journald
type JournalHook struct {
	identifier string
}

// NewJournalHook creates a hook tagging entries with SYSLOG_IDENTIFIER=nanostats
func NewJournalHook() *JournalHook {
	return &JournalHook{identifier: "nanostats"}
}

// Levels returns the levels forwarded to the journal
func (h *JournalHook) Levels() []logrus.Level {
	return logrus.AllLevels
}

// Fire sends one entry. Fields become upper-cased journal variables.
func (h *JournalHook) Fire(entry *logrus.Entry) error {
	vars := map[string]string{
		"SYSLOG_IDENTIFIER": h.identifier,
	}
	for key, value := range entry.Data {
		vars[journalField(key)] = fmt.Sprint(value)
	}
	return journalSend(entry.Message, priorityFor(entry.Level), vars)
}

// priorityFor maps logrus levels onto syslog priorities
func priorityFor(level logrus.Level) journal.Priority {
	switch level {
	case logrus.PanicLevel:
		return journal.PriEmerg
	case logrus.FatalLevel:
		return journal.PriCrit
	case logrus.ErrorLevel:
		return journal.PriErr
	case logrus.WarnLevel:
		return journal.PriWarning
	case logrus.InfoLevel:
		return journal.PriInfo
	default:
		return journal.PriDebug
	}
}

// journalField turns a logrus field name into a valid journal variable name
func journalField(key string) string {
	var b strings.Builder
	for _, r := range strings.ToUpper(key) {
		switch {
		case r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}
	name := strings.TrimLeft(b.String(), "_")
	if name == "" {
		return "FIELD"
	}
	return name
}
