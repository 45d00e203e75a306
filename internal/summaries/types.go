package summaries

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// Summary is the subset of a backend summary record scrivener renders. The
// client never validates against it; callers decode with DecodeSummaries or
// DecodeSummary when they want typed access.
type Summary struct {
	ID            string `json:"id" yaml:"id"`
	AudioFileName string `json:"audio_file_name" yaml:"audio_file_name"`
	RecordingName string `json:"recording_name" yaml:"recording_name"`
	Summary       string `json:"summary" yaml:"summary"`
	Transcript    string `json:"transcript" yaml:"transcript"`
	CreatedAt     string `json:"created_at" yaml:"created_at"`
	Status        string `json:"status" yaml:"status"`
}

// Title returns the recording name, falling back to the audio file name.
func (s Summary) Title() string {
	if name := strings.TrimSpace(s.RecordingName); name != "" {
		return name
	}
	if name := strings.TrimSpace(s.AudioFileName); name != "" {
		return name
	}
	return s.ID
}

// ParsedCreatedAt returns CreatedAt as time.Time when it can be parsed.
func (s Summary) ParsedCreatedAt() time.Time {
	return parseTime(s.CreatedAt)
}

// UnmarshalJSON accepts ids sent as numbers or strings.
func (s *Summary) UnmarshalJSON(data []byte) error {
	type plain Summary
	var aux struct {
		plain
		ID json.RawMessage `json:"id"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	*s = Summary(aux.plain)
	s.ID = rawScalar(aux.ID)
	return nil
}

// StatusQuery is the usual payload for CheckSummarizationStatus.
type StatusQuery struct {
	AudioFileName string `json:"audio_file_name"`
}

// Status is the decoded summarizing_completed response.
type Status struct {
	Completed bool   `json:"completed"`
	Message   string `json:"message"`
}

// DecodeStatus decodes a summarizing_completed response.
func DecodeStatus(raw json.RawMessage) (Status, error) {
	var status Status
	if err := json.Unmarshal(raw, &status); err != nil {
		return Status{}, fmt.Errorf("decode status: %w", err)
	}
	return status, nil
}

// DecodeSummaries decodes a get_summaries response. The list may be a bare
// array or wrapped in an object under "summaries", "items" or "data".
func DecodeSummaries(raw json.RawMessage) ([]Summary, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil, nil
	}
	if trimmed[0] == '[' {
		var list []Summary
		if err := json.Unmarshal(trimmed, &list); err != nil {
			return nil, fmt.Errorf("decode summaries: %w", err)
		}
		return list, nil
	}

	var wrapper map[string]json.RawMessage
	if err := json.Unmarshal(trimmed, &wrapper); err != nil {
		return nil, fmt.Errorf("decode summaries: %w", err)
	}
	for _, key := range []string{"summaries", "items", "data"} {
		inner, ok := wrapper[key]
		if !ok {
			continue
		}
		inner = bytes.TrimSpace(inner)
		if len(inner) > 0 && inner[0] == '[' {
			return DecodeSummaries(inner)
		}
	}
	return nil, fmt.Errorf("decode summaries: no list in response")
}

// DecodeSummary decodes a get_summary response, unwrapping "summary" or
// "data" when present.
func DecodeSummary(raw json.RawMessage) (Summary, error) {
	var wrapper map[string]json.RawMessage
	if err := json.Unmarshal(raw, &wrapper); err != nil {
		return Summary{}, fmt.Errorf("decode summary: %w", err)
	}
	for _, key := range []string{"summary", "data"} {
		inner, ok := wrapper[key]
		if !ok {
			continue
		}
		inner = bytes.TrimSpace(inner)
		if len(inner) > 0 && inner[0] == '{' {
			return DecodeSummary(inner)
		}
	}
	var s Summary
	if err := json.Unmarshal(raw, &s); err != nil {
		return Summary{}, fmt.Errorf("decode summary: %w", err)
	}
	return s, nil
}

func rawScalar(raw json.RawMessage) string {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	return string(raw)
}

func parseTime(value string) time.Time {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}
	}
	for _, layout := range []string{time.RFC3339Nano, time.RFC3339, "2006-01-02 15:04:05", recordingTitleLayout} {
		if t, err := time.ParseInLocation(layout, value, time.Local); err == nil {
			return t
		}
	}
	return time.Time{}
}
