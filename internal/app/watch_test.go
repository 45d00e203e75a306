package app

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/five82/scrivener/internal/summaries"
)

type scriptedChecker struct {
	responses []string
	err       error
	queries   []any
}

func (s *scriptedChecker) CheckSummarizationStatus(_ context.Context, query any) (json.RawMessage, error) {
	s.queries = append(s.queries, query)
	if s.err != nil {
		return nil, s.err
	}
	idx := len(s.queries) - 1
	if idx >= len(s.responses) {
		idx = len(s.responses) - 1
	}
	return json.RawMessage(s.responses[idx]), nil
}

func TestWaitForSummary_PollsUntilCompleted(t *testing.T) {
	checker := &scriptedChecker{responses: []string{
		`{"completed":false}`,
		`{"completed":false}`,
		`{"completed":true,"message":"done"}`,
	}}
	query := summaries.StatusQuery{AudioFileName: "a.webm"}

	status, err := WaitForSummary(context.Background(), checker, query, time.Millisecond)
	if err != nil {
		t.Fatalf("WaitForSummary returned error: %v", err)
	}
	if !status.Completed || status.Message != "done" {
		t.Fatalf("status = %+v, want completed/done", status)
	}
	if len(checker.queries) != 3 {
		t.Fatalf("checks = %d, want 3", len(checker.queries))
	}
	if checker.queries[0] != any(query) {
		t.Fatalf("query = %#v, want %#v", checker.queries[0], query)
	}
}

func TestWaitForSummary_StopsOnError(t *testing.T) {
	checker := &scriptedChecker{err: errors.New("Request failed")}

	_, err := WaitForSummary(context.Background(), checker, nil, time.Millisecond)
	if err == nil || err.Error() != "Request failed" {
		t.Fatalf("err = %v, want Request failed", err)
	}
	if len(checker.queries) != 1 {
		t.Fatalf("checks = %d, want 1 (no retry)", len(checker.queries))
	}
}

func TestWaitForSummary_HonorsContext(t *testing.T) {
	checker := &scriptedChecker{responses: []string{`{"completed":false}`}}
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := WaitForSummary(ctx, checker, nil, 10*time.Millisecond)
	if err == nil {
		t.Fatalf("WaitForSummary returned nil error after context ended")
	}
}
