package columns

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"
)

// ErrMarkerNotFound is returned when the start marker is absent from the header row
var ErrMarkerNotFound = errors.New("column marker not found")

// Span is a half-open rune range [Start, End) located on a header row.
// Offsets count characters, not bytes, because tabwriter pads columns by
// rune count. End is -1 when the span runs to the end of each line.
type Span struct {
	Start int
	End   int
}

// Locate finds the column that begins at startMarker and ends where endMarker
// begins. endMarker is searched for after startMarker; if it is missing the
// span is open-ended.
func Locate(header, startMarker, endMarker string) (Span, error) {
	start := strings.Index(header, startMarker)
	if start == -1 {
		return Span{}, fmt.Errorf("%w: %q in header %q", ErrMarkerNotFound, startMarker, header)
	}

	span := Span{Start: utf8.RuneCountInString(header[:start]), End: -1}
	if endMarker == "" {
		return span, nil
	}

	from := start + len(startMarker)
	if idx := strings.Index(header[from:], endMarker); idx != -1 {
		span.End = utf8.RuneCountInString(header[:from+idx])
	}

	return span, nil
}

// Slice returns the part of line covered by the span, clamped to the line length.
// Lines shorter than Start yield an empty string.
func (s Span) Slice(line string) string {
	runes := []rune(line)
	if s.Start >= len(runes) {
		return ""
	}
	end := len(runes)
	if s.End >= 0 && s.End < end {
		end = s.End
	}
	if end <= s.Start {
		return ""
	}
	return string(runes[s.Start:end])
}

// Field returns the trimmed slice of line covered by the span
func (s Span) Field(line string) string {
	return strings.TrimSpace(s.Slice(line))
}
