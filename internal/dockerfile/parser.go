package dockerfile

import (
	"errors"
	"fmt"
	"strings"

	"dockerconvert/internal/columns"

	"github.com/samber/lo"
	"github.com/samber/lo/mutable"
)

const (
	createdByMarker = "CREATED BY"
	sizeMarker      = "SIZE"
)

// ErrMalformedHeader is returned when the history header has no CREATED BY column
var ErrMalformedHeader = errors.New("malformed history header")

// DefaultKeywords are the Dockerfile instructions recognized in layer history
var DefaultKeywords = []string{
	"FROM",
	"MAINTAINER",
	"RUN",
	"CMD",
	"LABEL",
	"EXPOSE",
	"ENV",
	"ADD",
	"COPY",
	"ENTRYPOINT",
	"VOLUME",
	"USER",
	"WORKDIR",
	"ARG",
	"ONBUILD",
	"STOPSIGNAL",
	"HEALTHCHECK",
	"SHELL",
}

// Parser turns `docker history --no-trunc` output into Dockerfile instructions
type Parser struct {
	keywords []string
}

// NewParser creates a parser recognizing the given keywords.
// An empty list selects DefaultKeywords.
func NewParser(keywords []string) *Parser {
	if len(keywords) == 0 {
		keywords = DefaultKeywords
	}
	return &Parser{
		keywords: append([]string(nil), keywords...),
	}
}

// Keywords returns a copy of the recognized keywords
func (p *Parser) Keywords() []string {
	return append([]string(nil), p.keywords...)
}

// Parse extracts the CREATED BY column of every history row and keeps the ones
// that start with a recognized keyword. History is newest layer first, so the
// result is reversed to put the oldest layer first. Each instruction carries
// its trailing newline.
func (p *Parser) Parse(history string) ([]string, error) {
	lines := strings.Split(history, "\n")

	span, err := columns.Locate(lines[0], createdByMarker, sizeMarker)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedHeader, err)
	}

	instructions := []string{}
	for _, line := range lines {
		instruction := span.Field(line) + "\n"
		if p.IsInstruction(instruction) {
			instructions = append(instructions, instruction)
		}
	}

	mutable.Reverse(instructions)

	return instructions, nil
}

// IsInstruction reports whether line begins with a recognized keyword.
// This is a literal prefix match: "FROMX" matches "FROM".
func (p *Parser) IsInstruction(line string) bool {
	return lo.SomeBy(p.keywords, func(keyword string) bool {
		return strings.HasPrefix(line, keyword)
	})
}
