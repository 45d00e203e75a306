// Package render formats summaries for the CLI: a lipgloss table for lists,
// indented JSON straight from the response body, YAML via yaml.v3, and a
// Markdown export built with nao1215/markdown.
package render
