package ui

import (
	"strings"
	"testing"
	"time"

	"github.com/five82/scrivener/internal/credential"
)

func TestParseLoginInput(t *testing.T) {
	tests := []struct {
		in        string
		wantToken string
		wantLoc   string
		wantErr   bool
	}{
		{"abc", "abc", "", false},
		{"  abc  ", "abc", "", false},
		{"http://localhost:5173/?token=xyz", "", "xyz", false},
		{"/?token=", "", "", false},
		{"http://localhost:5173/home", "", "", true},
		{"   ", "", "", true},
	}
	for _, tt := range tests {
		got, err := parseLoginInput(tt.in)
		if (err != nil) != tt.wantErr {
			t.Fatalf("parseLoginInput(%q) err = %v, wantErr %v", tt.in, err, tt.wantErr)
		}
		if err != nil {
			continue
		}
		if got.token != tt.wantToken {
			t.Fatalf("parseLoginInput(%q) token = %q, want %q", tt.in, got.token, tt.wantToken)
		}
		if got.location != nil {
			if v := got.location.Query().Get(credential.QueryParam); v != tt.wantLoc {
				t.Fatalf("parseLoginInput(%q) location token = %q, want %q", tt.in, v, tt.wantLoc)
			}
		}
	}
}

func TestVisibleWindow(t *testing.T) {
	tests := []struct {
		selected, total, height int
		start, end              int
	}{
		{0, 5, 10, 0, 5},
		{0, 20, 10, 0, 10},
		{10, 20, 10, 5, 15},
		{19, 20, 10, 10, 20},
	}
	for _, tt := range tests {
		start, end := visibleWindow(tt.selected, tt.total, tt.height)
		if start != tt.start || end != tt.end {
			t.Errorf("visibleWindow(%d,%d,%d) = %d,%d want %d,%d", tt.selected, tt.total, tt.height, start, end, tt.start, tt.end)
		}
	}
}

func TestTruncateMiddle_KeepsExtension(t *testing.T) {
	got := truncateMiddle("a-very-long-recording-name.webm", 16)
	if !strings.HasSuffix(got, ".webm") || len([]rune(got)) != 16 {
		t.Fatalf("truncateMiddle = %q", got)
	}
	if got := truncateMiddle("short.webm", 16); got != "short.webm" {
		t.Fatalf("truncateMiddle = %q", got)
	}
}

func TestToastExpires(t *testing.T) {
	var m Model
	m.notify("Saved")
	m.toast.expire(m.toast.at.Add(time.Second))
	if m.toast.text == "" {
		t.Fatalf("toast expired too early")
	}
	m.toast.expire(m.toast.at.Add(toastTTL))
	if m.toast.text != "" {
		t.Fatalf("toast did not expire")
	}
}

func TestThemeLookups(t *testing.T) {
	if got := GetTheme("missing").Name; got != "Nightfox" {
		t.Fatalf("GetTheme fallback = %q", got)
	}
	names := ThemeNames()
	for i, name := range names {
		if next := NextTheme(name); next != names[(i+1)%len(names)] {
			t.Fatalf("NextTheme(%q) = %q", name, next)
		}
	}
	if NextTheme("missing") != names[0] {
		t.Fatalf("NextTheme(missing) should restart the cycle")
	}
}

func TestClassifyConnectionError(t *testing.T) {
	if got := classifyConnectionError(nil); got != "" {
		t.Fatalf("nil error = %q", got)
	}
	if got := classifyConnectionError(errString("dial tcp: connection refused")); got != "OFFLINE" {
		t.Fatalf("classify = %q", got)
	}
}

type errString string

func (e errString) Error() string { return string(e) }

func TestStatusColor(t *testing.T) {
	th := GetTheme("kanagawa")
	if th.Name != "Kanagawa" {
		t.Fatalf("GetTheme is case sensitive: %q", th.Name)
	}
	tests := map[string]string{
		"Completed":  th.Success,
		"processing": th.Accent,
		"failed":     th.Danger,
		"pending":    th.Faint,
		"whatever":   th.Muted,
	}
	for status, want := range tests {
		if got := th.statusColor(status); got != want {
			t.Errorf("statusColor(%q) = %q, want %q", status, got, want)
		}
	}
}
