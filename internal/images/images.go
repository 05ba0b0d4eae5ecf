package images

import (
	"fmt"
	"io"
	"strings"

	"dockerconvert/internal/columns"

	"github.com/distribution/reference"
	"github.com/samber/lo"
)

// Listing is the parsed output of `docker images`
type Listing struct {
	header string
	rows   []string
	name   columns.Span
}

// ParseListing reads the header and image rows. The image name of each row is
// the text between the IMAGE and CREATED columns of the header.
func ParseListing(text string) (*Listing, error) {
	lines := strings.Split(strings.TrimRight(text, "\n"), "\n")

	span, err := columns.Locate(lines[0], "IMAGE", "CREATED")
	if err != nil {
		return nil, fmt.Errorf("failed to parse image listing: %w", err)
	}

	return &Listing{
		header: lines[0],
		rows: lo.Filter(lines[1:], func(line string, _ int) bool {
			return strings.TrimSpace(line) != ""
		}),
		name: span,
	}, nil
}

// Len returns the number of image rows
func (l *Listing) Len() int {
	return len(l.rows)
}

// Name returns the image name of the 1-based row n
func (l *Listing) Name(n int) (string, error) {
	if n < 1 || n > len(l.rows) {
		return "", fmt.Errorf("image %d out of range 1-%d", n, len(l.rows))
	}
	name := l.name.Field(l.rows[n-1])
	if name == "" {
		return "", fmt.Errorf("image %d has no name in column %q", n, "IMAGE")
	}
	return name, nil
}

// Print writes the listing with each image row prefixed by its number
func (l *Listing) Print(w io.Writer) {
	width := len(fmt.Sprint(len(l.rows)))
	fmt.Fprintf(w, "%*s  %s\n", width, "", l.header)
	for i, row := range l.rows {
		fmt.Fprintf(w, "%*d. %s\n", width, i+1, row)
	}
}

// ValidateReference checks that s is a usable image name, tag, digest or ID
func ValidateReference(s string) error {
	if _, err := reference.ParseAnyReference(s); err != nil {
		return fmt.Errorf("invalid image reference %q: %w", s, err)
	}
	return nil
}
