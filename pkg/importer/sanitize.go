// Package importer implements the legacy-system import pipeline: sanitizing
// exported records, remapping legacy identifiers to local ones, and writing
// the result through six dependency-ordered stages while pacing the entity
// store.
package importer

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

// The legacy export writes literal "null"/"None" strings for missing values,
// and lossy address exports produce the "None None None None" artifact.
const emptyAddressSentinel = "None None None None"

var markupTagPattern = regexp.MustCompile(`<[^>]*>`)

// CleanString trims a field value and collapses the legacy export's
// null-ish placeholders to an empty string.
func CleanString(value string) string {
	trimmed := strings.TrimSpace(value)
	if trimmed == "null" || trimmed == "None" {
		return ""
	}
	return trimmed
}

// CleanAddress is CleanString plus the lossy-export address sentinel.
func CleanAddress(value string) string {
	cleaned := CleanString(value)
	if cleaned == emptyAddressSentinel {
		return ""
	}
	return cleaned
}

// ParseDate extracts the calendar-date portion (YYYY-MM-DD) of an ISO-8601
// timestamp. Returns empty string on empty input.
func ParseDate(isoTimestamp string) string {
	ts := strings.TrimSpace(isoTimestamp)
	if ts == "" {
		return ""
	}
	if idx := strings.IndexAny(ts, "T "); idx >= 0 {
		return ts[:idx]
	}
	return ts
}

// ParseTime extracts the HH:MM portion of an ISO-8601 timestamp.
// Returns empty string when the input is empty or carries no time part.
func ParseTime(isoTimestamp string) string {
	ts := strings.TrimSpace(isoTimestamp)
	if ts == "" {
		return ""
	}
	idx := strings.IndexAny(ts, "T ")
	if idx < 0 {
		return ""
	}
	timePart := ts[idx+1:]
	if len(timePart) < 5 {
		return ""
	}
	return timePart[:5]
}

// timestampLayouts are the shapes the legacy export uses for full
// timestamps, most specific first.
var timestampLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// ParseTimestamp parses a legacy timestamp into a time.Time. The second
// return is false when the input is empty, a null placeholder, or in none
// of the known layouts.
func ParseTimestamp(isoTimestamp string) (time.Time, bool) {
	ts := CleanString(isoTimestamp)
	if ts == "" {
		return time.Time{}, false
	}
	for _, layout := range timestampLayouts {
		if parsed, err := time.Parse(layout, ts); err == nil {
			return parsed, true
		}
	}
	return time.Time{}, false
}

// NotesDocument is the legacy system's structured rich-text treatment note:
// named sections containing named question/answer pairs.
type NotesDocument struct {
	Sections []NotesSection `json:"sections"`
}

// NotesSection is one named group of questions in a NotesDocument.
type NotesSection struct {
	Name      string          `json:"name"`
	Questions []NotesQuestion `json:"questions"`
}

// NotesQuestion is a single question/answer pair. Answers may carry HTML
// markup from the legacy editor.
type NotesQuestion struct {
	Name   string `json:"name"`
	Answer string `json:"answer"`
}

// FlattenRichNotes renders a structured notes document as a single
// markdown-like string: a "## <section>" heading per named section, then a
// "**<question>:** <answer>" line per answered question, markup stripped.
// Sections and questions without content are skipped. Returns empty string
// if the document has no section list.
func FlattenRichNotes(doc NotesDocument) string {
	if len(doc.Sections) == 0 {
		return ""
	}

	var blocks []string
	for _, section := range doc.Sections {
		var b strings.Builder
		for _, q := range section.Questions {
			name := CleanString(q.Name)
			answer := StripMarkup(q.Answer)
			if name == "" || answer == "" {
				continue
			}
			b.WriteString(fmt.Sprintf("**%s:** %s\n", name, answer))
		}
		if b.Len() == 0 {
			continue
		}

		block := b.String()
		if name := CleanString(section.Name); name != "" {
			block = fmt.Sprintf("## %s\n\n%s", name, block)
		}
		blocks = append(blocks, block)
	}

	return strings.Join(blocks, "\n")
}

// StripMarkup removes markup tags from a rich-text answer and trims the
// surrounding whitespace.
func StripMarkup(value string) string {
	return strings.TrimSpace(markupTagPattern.ReplaceAllString(value, ""))
}
