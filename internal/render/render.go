package render

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/five82/scrivener/internal/summaries"
)

// Format names an output encoding.
type Format string

const (
	FormatTable    Format = "table"
	FormatJSON     Format = "json"
	FormatYAML     Format = "yaml"
	FormatMarkdown Format = "markdown"
)

// ParseFormat validates value against allowed. An empty value yields fallback.
func ParseFormat(value string, fallback Format, allowed ...Format) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(value)))
	if f == "" {
		f = fallback
	}
	if f == "md" {
		f = FormatMarkdown
	}
	for _, a := range allowed {
		if f == a {
			return f, nil
		}
	}
	names := make([]string, len(allowed))
	for i, a := range allowed {
		names[i] = string(a)
	}
	return "", fmt.Errorf("unsupported output %q: want one of %s", value, strings.Join(names, ", "))
}

// JSON pretty-prints a raw response body. The body is not re-encoded, so
// fields scrivener does not model survive.
func JSON(w io.Writer, raw json.RawMessage) error {
	var buf bytes.Buffer
	if err := json.Indent(&buf, raw, "", "  "); err != nil {
		return fmt.Errorf("format json: %w", err)
	}
	buf.WriteByte('\n')
	_, err := w.Write(buf.Bytes())
	return err
}

// YAML encodes v as YAML.
func YAML(w io.Writer, v any) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("format yaml: %w", err)
	}
	return enc.Close()
}

// List writes items in the requested format.
func List(w io.Writer, format Format, raw json.RawMessage, items []summaries.Summary) error {
	switch format {
	case FormatJSON:
		return JSON(w, raw)
	case FormatYAML:
		if items == nil {
			items = []summaries.Summary{}
		}
		return YAML(w, items)
	default:
		_, err := io.WriteString(w, Table(items)+"\n")
		return err
	}
}

// Summary writes one summary in the requested format.
func Summary(w io.Writer, format Format, raw json.RawMessage, s summaries.Summary) error {
	switch format {
	case FormatJSON:
		return JSON(w, raw)
	case FormatYAML:
		return YAML(w, s)
	case FormatMarkdown:
		return Markdown(w, s)
	default:
		_, err := io.WriteString(w, Detail(s))
		return err
	}
}

// Detail is a plain-text rendering of a summary for terminals.
func Detail(s summaries.Summary) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s\n", s.Title())
	fmt.Fprintf(&b, "id: %s\n", s.ID)
	if s.AudioFileName != "" {
		fmt.Fprintf(&b, "audio: %s\n", s.AudioFileName)
	}
	if created := formatCreated(s); created != "" {
		fmt.Fprintf(&b, "created: %s\n", created)
	}
	if s.Status != "" {
		fmt.Fprintf(&b, "status: %s\n", s.Status)
	}
	if text := strings.TrimSpace(s.Summary); text != "" {
		fmt.Fprintf(&b, "\n%s\n", text)
	}
	return b.String()
}

func formatCreated(s summaries.Summary) string {
	if t := s.ParsedCreatedAt(); !t.IsZero() {
		return t.Local().Format("2006-01-02 15:04")
	}
	return s.CreatedAt
}
