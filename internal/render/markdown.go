package render

import (
	"io"
	"strings"

	"github.com/nao1215/markdown"

	"github.com/five82/scrivener/internal/summaries"
)

// Markdown exports a summary as a Markdown document with a metadata table,
// the summary text and, when present, the transcript in a collapsible block.
func Markdown(w io.Writer, s summaries.Summary) error {
	md := markdown.NewMarkdown(w)

	md.H1(s.Title())
	md.PlainText("")

	rows := [][]string{{"ID", "`" + s.ID + "`"}}
	if s.AudioFileName != "" {
		rows = append(rows, []string{"Audio file", "`" + s.AudioFileName + "`"})
	}
	if created := formatCreated(s); created != "" {
		rows = append(rows, []string{"Created", created})
	}
	if s.Status != "" {
		rows = append(rows, []string{"Status", s.Status})
	}
	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows:   rows,
	})
	md.PlainText("")

	md.H2("Summary")
	md.PlainText("")
	if text := strings.TrimSpace(s.Summary); text != "" {
		md.PlainText(text)
	} else {
		md.PlainText("No summary yet.")
	}
	md.PlainText("")

	if transcript := strings.TrimSpace(s.Transcript); transcript != "" {
		md.H2("Transcript")
		md.PlainText("")
		md.Details("Show transcript", transcript)
		md.PlainText("")
	}

	return md.Build()
}
