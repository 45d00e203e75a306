package ui

import (
	"strings"
	"time"
)

const toastTTL = 5 * time.Second

type toastLevel int

const (
	toastInfo toastLevel = iota
	toastError
)

// toast is a transient status line message.
type toast struct {
	text  string
	level toastLevel
	at    time.Time
}

func (t *toast) expire(now time.Time) {
	if t.text != "" && now.Sub(t.at) >= toastTTL {
		*t = toast{}
	}
}

func (m *Model) notify(text string) {
	m.toast = toast{text: text, level: toastInfo, at: time.Now()}
}

// notifyError surfaces err to the user. The client has already logged it.
func (m *Model) notifyError(err error) {
	if err == nil {
		return
	}
	m.toast = toast{text: firstLine(err.Error()), level: toastError, at: time.Now()}
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}
