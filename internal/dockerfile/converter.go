package dockerfile

import (
	"strings"
)

// Generate builds Dockerfile content from instructions that are already in
// output order. A non-empty baseImage is emitted first as a FROM line.
func Generate(instructions []string, baseImage string) string {
	var b strings.Builder

	if baseImage != "" {
		b.WriteString("FROM " + baseImage + "\n")
	}

	for _, instruction := range instructions {
		b.WriteString(instruction)
	}

	return b.String()
}
