package secrets

import (
	"fmt"
	"regexp"
	"strings"

	"dockerconvert/internal/types"
)

// Scanner detects credentials that leaked into image history
type Scanner struct {
	patterns []SecretPattern
}

// SecretPattern defines a pattern to detect secrets
type SecretPattern struct {
	Name     string
	Pattern  *regexp.Regexp
	Severity string
}

// NewScanner creates a new secret scanner
func NewScanner() *Scanner {
	scanner := &Scanner{
		patterns: []SecretPattern{},
	}

	scanner.registerPatterns()

	return scanner
}

// Scan checks every instruction against the registered patterns
func (s *Scanner) Scan(instructions []string) []types.Finding {
	var findings []types.Finding

	for i, inst := range instructions {
		inst = strings.TrimSpace(inst)
		for _, pattern := range s.patterns {
			if pattern.Pattern.MatchString(inst) {
				findings = append(findings, types.Finding{
					Severity:    pattern.Severity,
					Kind:        "SECRET",
					Message:     fmt.Sprintf("Potential %s in layer history", pattern.Name),
					Instruction: i + 1,
					Context:     inst,
				})
			}
		}
	}

	return findings
}

func (s *Scanner) registerPatterns() {
	// AWS Access Key
	s.patterns = append(s.patterns, SecretPattern{
		Name:     "AWS Access Key",
		Pattern:  regexp.MustCompile(`AKIA[0-9A-Z]{16}`),
		Severity: "critical",
	})

	s.patterns = append(s.patterns, SecretPattern{
		Name:     "API Key",
		Pattern:  regexp.MustCompile(`(?i)(api[_-]?key|apikey)\s*[=:]\s*['"]?[a-zA-Z0-9]{20,}['"]?`),
		Severity: "critical",
	})

	s.patterns = append(s.patterns, SecretPattern{
		Name:     "Private Key",
		Pattern:  regexp.MustCompile(`-----BEGIN\s+(RSA|DSA|EC|OPENSSH)\s+PRIVATE KEY-----`),
		Severity: "critical",
	})

	// build args and env values end up verbatim in history
	s.patterns = append(s.patterns, SecretPattern{
		Name:     "Password",
		Pattern:  regexp.MustCompile(`(?i)(password|pwd|passwd)\s*[=:]\s*['"]?[^'\s"]+['"]?`),
		Severity: "high",
	})

	// RUN layers record the build args in scope as "|<n> NAME=value ..."
	s.patterns = append(s.patterns, SecretPattern{
		Name:     "Build Argument",
		Pattern:  regexp.MustCompile(`^RUN \|\d+ (?:\S+=\S* )*?[A-Za-z0-9_]*(?i:secret|token|pass|key|credential)[A-Za-z0-9_]*=[^\s'"]+`),
		Severity: "high",
	})

	s.patterns = append(s.patterns, SecretPattern{
		Name:     "Token",
		Pattern:  regexp.MustCompile(`(?i)(token|secret)\s*[=:]\s*['"]?[a-zA-Z0-9_\-]{16,}['"]?`),
		Severity: "high",
	})
}
