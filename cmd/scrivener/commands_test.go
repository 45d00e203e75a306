package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"testing"

	"github.com/five82/scrivener/internal/config"
	"github.com/five82/scrivener/internal/guard"
)

type recordedRequest struct {
	path   string
	auth   string
	body   map[string]any
	upload string
}

// fakeBackend answers the summary endpoints and records what it saw.
type fakeBackend struct {
	mu       sync.Mutex
	requests []recordedRequest
	pending  int // summarizing_completed answers false this many times
}

func (b *fakeBackend) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	rec := recordedRequest{path: r.URL.Path, auth: r.Header.Get("Authorization")}
	if r.URL.Path == "/upload" {
		file, header, err := r.FormFile("file")
		if err != nil {
			http.Error(w, `{"message":"no file"}`, http.StatusBadRequest)
			return
		}
		_ = file.Close()
		rec.upload = header.Filename
	} else {
		raw, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(raw, &rec.body)
	}

	b.mu.Lock()
	b.requests = append(b.requests, rec)
	completed := b.pending <= 0
	if r.URL.Path == "/summarizing_completed" && b.pending > 0 {
		b.pending--
	}
	b.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	switch r.URL.Path {
	case "/get_summaries":
		fmt.Fprint(w, `[{"id":1,"audio_file_name":"weekly-sync.webm","recording_name":"Weekly sync","created_at":"2025-03-04T05:06:07Z","status":"completed"}]`)
	case "/get_summary":
		if rec.body["id"] != "1" {
			w.WriteHeader(http.StatusNotFound)
			fmt.Fprint(w, `{"message":"Summary not found"}`)
			return
		}
		fmt.Fprint(w, `{"id":1,"audio_file_name":"weekly-sync.webm","recording_name":"Weekly sync","summary":"Agreed to ship."}`)
	case "/summarizing_completed":
		fmt.Fprintf(w, `{"completed":%t,"message":"ok"}`, completed)
	default:
		fmt.Fprint(w, `{"message":"done"}`)
	}
}

func (b *fakeBackend) setPending(n int) {
	b.mu.Lock()
	b.pending = n
	b.mu.Unlock()
}

func (b *fakeBackend) paths() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]string, len(b.requests))
	for i, r := range b.requests {
		out[i] = r.path
	}
	return out
}

func (b *fakeBackend) last(path string) (recordedRequest, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for i := len(b.requests) - 1; i >= 0; i-- {
		if b.requests[i].path == path {
			return b.requests[i], true
		}
	}
	return recordedRequest{}, false
}

type cliEnv struct {
	t          *testing.T
	backend    *fakeBackend
	configPath string
	dir        string
}

func newCLIEnv(t *testing.T) *cliEnv {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("HOME", dir)
	t.Setenv(config.EnvAPIBase, "")

	backend := &fakeBackend{}
	srv := httptest.NewServer(backend)
	t.Cleanup(srv.Close)

	configPath := filepath.Join(dir, "config.toml")
	cfg := fmt.Sprintf("api_base = %q\ncredential_path = %q\npoll_interval = \"10ms\"\n",
		srv.URL, filepath.Join(dir, "state", "credentials.db"))
	if err := os.WriteFile(configPath, []byte(cfg), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	return &cliEnv{t: t, backend: backend, configPath: configPath, dir: dir}
}

func (e *cliEnv) run(stdin string, args ...string) (string, error) {
	e.t.Helper()
	cmd := NewRootCmd()
	var out, logs bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&logs)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(append([]string{"--config", e.configPath}, args...))
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func (e *cliEnv) mustRun(args ...string) string {
	e.t.Helper()
	out, err := e.run("", args...)
	if err != nil {
		e.t.Fatalf("scrivener %s: %v", strings.Join(args, " "), err)
	}
	return out
}

func TestLogin_FromURLPersistsToken(t *testing.T) {
	env := newCLIEnv(t)

	out := env.mustRun("login", "http://localhost:3000/?token=abc123secret")
	if !strings.Contains(out, "Logged in") {
		t.Fatalf("login output = %q", out)
	}

	out = env.mustRun("whoami")
	if !strings.Contains(out, "abc1...cret") || strings.Contains(out, "abc123secret") {
		t.Fatalf("whoami output = %q, want masked token", out)
	}

	env.mustRun("list")
	req, ok := env.backend.last("/get_summaries")
	if !ok {
		t.Fatalf("list made no request; saw %v", env.backend.paths())
	}
	if req.auth != "Bearer abc123secret" {
		t.Fatalf("Authorization = %q, want Bearer abc123secret", req.auth)
	}
}

func TestLogin_RawToken(t *testing.T) {
	env := newCLIEnv(t)
	env.mustRun("login", "rawtoken")
	env.mustRun("list")
	if req, _ := env.backend.last("/get_summaries"); req.auth != "Bearer rawtoken" {
		t.Fatalf("Authorization = %q, want Bearer rawtoken", req.auth)
	}
}

func TestLogin_URLWithoutTokenFails(t *testing.T) {
	env := newCLIEnv(t)
	if _, err := env.run("", "login", "http://localhost:3000/home"); err == nil {
		t.Fatalf("login without token parameter succeeded")
	}
}

func TestLogin_EmptyTokenStaysLoggedOut(t *testing.T) {
	env := newCLIEnv(t)
	if _, err := env.run("", "login", "http://localhost:3000/?token="); err == nil {
		t.Fatalf("login with empty token succeeded")
	}
	if _, err := env.run("", "list"); !errors.Is(err, guard.ErrNotLoggedIn) {
		t.Fatalf("list after empty login = %v, want ErrNotLoggedIn", err)
	}
	if got := env.backend.paths(); len(got) != 0 {
		t.Fatalf("backend saw requests with an empty token: %v", got)
	}
}

func TestProtectedCommandsRequireLogin(t *testing.T) {
	env := newCLIEnv(t)

	for _, args := range [][]string{{"list"}, {"whoami"}, {"get", "1"}, {"remove", "--yes", "a.webm"}} {
		_, err := env.run("", args...)
		if !errors.Is(err, guard.ErrNotLoggedIn) {
			t.Fatalf("scrivener %v error = %v, want ErrNotLoggedIn", args, err)
		}
		if !strings.Contains(err.Error(), "scrivener login") {
			t.Fatalf("error %q should point at login", err)
		}
	}
	if got := env.backend.paths(); len(got) != 0 {
		t.Fatalf("backend saw requests while logged out: %v", got)
	}
}

func TestLogout_ClearsCredential(t *testing.T) {
	env := newCLIEnv(t)
	env.mustRun("login", "abc")
	if out := env.mustRun("logout"); !strings.Contains(out, "Logged out") {
		t.Fatalf("logout output = %q", out)
	}
	if _, err := env.run("", "list"); !errors.Is(err, guard.ErrNotLoggedIn) {
		t.Fatalf("list after logout error = %v, want ErrNotLoggedIn", err)
	}
}

func TestList_Formats(t *testing.T) {
	env := newCLIEnv(t)
	env.mustRun("login", "abc")

	if out := env.mustRun("list"); !strings.Contains(out, "Weekly sync") {
		t.Fatalf("table output missing title:\n%s", out)
	}
	if out := env.mustRun("list", "-o", "json"); !strings.Contains(out, `"audio_file_name": "weekly-sync.webm"`) {
		t.Fatalf("json output:\n%s", out)
	}
	if out := env.mustRun("list", "-o", "yaml"); !strings.Contains(out, "audio_file_name: weekly-sync.webm") {
		t.Fatalf("yaml output:\n%s", out)
	}
	if _, err := env.run("", "list", "-o", "markdown"); err == nil {
		t.Fatalf("list -o markdown succeeded, want unsupported output error")
	}
}

func TestGet_RendersAndReportsNotFound(t *testing.T) {
	env := newCLIEnv(t)
	env.mustRun("login", "abc")

	out := env.mustRun("get", "1", "-o", "markdown")
	if !strings.Contains(out, "# Weekly sync") || !strings.Contains(out, "Agreed to ship.") {
		t.Fatalf("markdown output:\n%s", out)
	}

	_, err := env.run("", "get", "99")
	if err == nil || err.Error() != "Summary not found" {
		t.Fatalf("get 99 error = %v, want Summary not found", err)
	}
}

func TestRemove_PromptsUnlessYes(t *testing.T) {
	env := newCLIEnv(t)
	env.mustRun("login", "abc")

	out, err := env.run("n\n", "remove", "weekly-sync.webm")
	if err != nil {
		t.Fatalf("remove: %v", err)
	}
	if !strings.Contains(out, "Aborted") {
		t.Fatalf("remove output = %q, want Aborted", out)
	}
	if _, ok := env.backend.last("/remove_summary"); ok {
		t.Fatalf("declined remove still hit the backend")
	}

	if _, err := env.run("y\n", "remove", "weekly-sync.webm"); err != nil {
		t.Fatalf("remove: %v", err)
	}
	req, ok := env.backend.last("/remove_summary")
	if !ok || req.body["audio_file_name"] != "weekly-sync.webm" {
		t.Fatalf("remove request = %+v, %v", req, ok)
	}
}

func TestRename_SendsTitle(t *testing.T) {
	env := newCLIEnv(t)
	env.mustRun("login", "abc")

	env.mustRun("rename", "weekly-sync.webm", "Sprint review")
	req, ok := env.backend.last("/update_title")
	if !ok {
		t.Fatalf("rename made no request")
	}
	if req.body["audio_file_name"] != "weekly-sync.webm" || req.body["recording_name"] != "Sprint review" {
		t.Fatalf("rename body = %v", req.body)
	}
	if _, err := env.run("", "rename", "weekly-sync.webm", "  "); err == nil {
		t.Fatalf("rename with blank name succeeded")
	}
}

func TestStatus_WaitPollsUntilCompleted(t *testing.T) {
	env := newCLIEnv(t)
	env.mustRun("login", "abc")
	env.backend.setPending(2)

	out := env.mustRun("status", "weekly-sync.webm", "--wait")
	if !strings.Contains(out, "weekly-sync.webm: completed") {
		t.Fatalf("status output = %q", out)
	}
	var polls int
	for _, p := range env.backend.paths() {
		if p == "/summarizing_completed" {
			polls++
		}
	}
	if polls != 3 {
		t.Fatalf("status polls = %d, want 3", polls)
	}
}

func TestStatus_Query(t *testing.T) {
	env := newCLIEnv(t)
	env.mustRun("login", "abc")
	env.backend.setPending(1)

	out := env.mustRun("status", "--query", `{"audio_file_name":"x.webm","extra":1}`)
	if !strings.Contains(out, "in progress") {
		t.Fatalf("status output = %q", out)
	}
	req, _ := env.backend.last("/summarizing_completed")
	if req.body["extra"] != float64(1) {
		t.Fatalf("query body = %v, want raw payload", req.body)
	}

	if _, err := env.run("", "status", "--query", "{nope"); err == nil {
		t.Fatalf("invalid --query succeeded")
	}
	if _, err := env.run("", "status"); err == nil {
		t.Fatalf("status without arguments succeeded")
	}
}

func TestUpload_ConcurrentFiles(t *testing.T) {
	env := newCLIEnv(t)
	env.mustRun("login", "abc")

	var paths []string
	for _, name := range []string{"Team Sync.WEBM", "Réunion.wav"} {
		p := filepath.Join(env.dir, name)
		if err := os.WriteFile(p, []byte("audio"), 0o600); err != nil {
			t.Fatalf("WriteFile: %v", err)
		}
		paths = append(paths, p)
	}

	out := env.mustRun(append([]string{"upload", "--jobs", "2"}, paths...)...)
	if !strings.Contains(out, "team-sync.webm") || !strings.Contains(out, "reunion.wav") {
		t.Fatalf("upload output = %q", out)
	}

	env.backend.mu.Lock()
	var names []string
	for _, r := range env.backend.requests {
		if r.path == "/upload" {
			names = append(names, r.upload)
			if r.auth != "Bearer abc" {
				t.Errorf("upload Authorization = %q", r.auth)
			}
		}
	}
	env.backend.mu.Unlock()
	sort.Strings(names)
	if strings.Join(names, ",") != "reunion.wav,team-sync.webm" {
		t.Fatalf("uploaded names = %v", names)
	}
}

func TestUpload_ReportsMissingFileAndContinues(t *testing.T) {
	env := newCLIEnv(t)
	env.mustRun("login", "abc")

	good := filepath.Join(env.dir, "good.webm")
	if err := os.WriteFile(good, []byte("audio"), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	missing := filepath.Join(env.dir, "missing.webm")

	out, err := env.run("", "upload", missing, good)
	if err == nil || !strings.Contains(err.Error(), "missing.webm") {
		t.Fatalf("upload error = %v, want missing file reported", err)
	}
	if !strings.Contains(out, "good.webm") {
		t.Fatalf("upload output = %q, want good file uploaded", out)
	}
}

func TestUpload_NameNeedsSingleFile(t *testing.T) {
	env := newCLIEnv(t)
	env.mustRun("login", "abc")
	if _, err := env.run("", "upload", "--name", "x", "a.webm", "b.webm"); err == nil {
		t.Fatalf("upload --name with two files succeeded")
	}
}

func TestMaskToken(t *testing.T) {
	t.Parallel()
	tests := map[string]string{
		"":             "********",
		"short":        "********",
		"abcd12345678": "abcd...5678",
	}
	for in, want := range tests {
		if got := maskToken(in); got != want {
			t.Errorf("maskToken(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestConfirm(t *testing.T) {
	t.Parallel()
	tests := []struct {
		in   string
		want bool
	}{
		{"y\n", true},
		{"YES\n", true},
		{"n\n", false},
		{"\n", false},
		{"", false},
		{"y", true},
	}
	for _, tt := range tests {
		var out bytes.Buffer
		if got := confirm(strings.NewReader(tt.in), &out, "? "); got != tt.want {
			t.Errorf("confirm(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestLogs_TailsAndFilters(t *testing.T) {
	env := newCLIEnv(t)

	out := env.mustRun("logs")
	if out != "" {
		t.Fatalf("logs without a file printed %q", out)
	}

	logPath := filepath.Join(env.dir, "state", "scrivener.log")
	if err := os.MkdirAll(filepath.Dir(logPath), 0o700); err != nil {
		t.Fatalf("MkdirAll: %v", err)
	}
	content := strings.Join([]string{
		`time=2025-03-04T05:06:07Z level=DEBUG msg="request ok"`,
		`time=2025-03-04T05:06:08Z level=WARN msg="refresh failed"`,
		`time=2025-03-04T05:06:09Z level=ERROR msg="request failed"`,
	}, "\n") + "\n"
	if err := os.WriteFile(logPath, []byte(content), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	out = env.mustRun("logs", "--level", "warn", "--no-color")
	if strings.Contains(out, "request ok") {
		t.Fatalf("logs --level warn kept debug line:\n%s", out)
	}
	if !strings.Contains(out, "refresh failed") || !strings.Contains(out, "request failed") {
		t.Fatalf("logs output:\n%s", out)
	}

	out = env.mustRun("logs", "-n", "1", "--no-color")
	if strings.TrimSpace(out) != `time=2025-03-04T05:06:09Z level=ERROR msg="request failed"` {
		t.Fatalf("logs -n 1 = %q", out)
	}

	if _, err := env.run("", "logs", "--level", "loud"); err == nil {
		t.Fatalf("logs --level loud succeeded")
	}
}
