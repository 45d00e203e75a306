package summaries

import (
	"path/filepath"
	"regexp"
	"strings"
	"time"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// recordingTitleLayout renders "dd:mm:yyyy hh:mm:ss", the default title the
// recorder gives a new recording.
const recordingTitleLayout = "02:01:2006 15:04:05"

var (
	slugSpaces  = regexp.MustCompile(`\s+`)
	slugNonWord = regexp.MustCompile(`[^\w-]+`)
	slugDashes  = regexp.MustCompile(`--+`)
)

// RecordingTitle returns the default display title for a recording made at t.
func RecordingTitle(t time.Time) string {
	return t.Format(recordingTitleLayout)
}

// Slugify lowercases text, folds accents, and reduces it to word characters
// separated by single dashes.
func Slugify(text string) string {
	// Transformers carry state, so each call builds its own chain.
	fold := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(fold, text)
	if err != nil {
		folded = text
	}
	s := strings.ToLower(folded)
	s = slugSpaces.ReplaceAllString(s, "-")
	s = slugNonWord.ReplaceAllString(s, "")
	s = slugDashes.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}

// RecordingFileName builds the audio file name an upload is stored under.
// An empty title falls back to RecordingTitle(t). ext should include the dot.
func RecordingFileName(title string, t time.Time, ext string) string {
	if strings.TrimSpace(title) == "" {
		title = RecordingTitle(t)
	}
	slug := Slugify(title)
	if slug == "" {
		slug = Slugify(RecordingTitle(t))
	}
	return slug + ext
}

// UploadFileName names an upload of the local file at path. The slug comes
// from title, or from the file's base name when title is empty; the
// extension is kept lowercased.
func UploadFileName(path, title string, t time.Time) string {
	ext := filepath.Ext(path)
	if strings.TrimSpace(title) == "" {
		title = strings.TrimSuffix(filepath.Base(path), ext)
	}
	return RecordingFileName(title, t, strings.ToLower(ext))
}
