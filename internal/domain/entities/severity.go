package entities

import (
	"fmt"
	"strings"
)

// Severity is the fixed priority bucket of an artifact check
type Severity string

// Severity buckets, highest first
const (
	SeverityCritical Severity = "critical"
	SeverityHigh     Severity = "high"
	SeverityMedium   Severity = "medium"
	SeverityLow      Severity = "low"
)

// Severities returns all buckets ordered from highest to lowest rank
func Severities() []Severity {
	return []Severity{SeverityCritical, SeverityHigh, SeverityMedium, SeverityLow}
}

// Rank orders severities: critical=4, high=3, medium=2, low=1, unknown=0
func (s Severity) Rank() int {
	switch s {
	case SeverityCritical:
		return 4
	case SeverityHigh:
		return 3
	case SeverityMedium:
		return 2
	case SeverityLow:
		return 1
	default:
		return 0
	}
}

// Valid reports whether s is one of the four known buckets
func (s Severity) Valid() bool {
	return s.Rank() > 0
}

// ParseSeverity converts a case-insensitive string into a Severity
func ParseSeverity(raw string) (Severity, error) {
	s := Severity(strings.ToLower(strings.TrimSpace(raw)))
	if !s.Valid() {
		return "", fmt.Errorf("unknown severity %q (want critical, high, medium or low)", raw)
	}
	return s, nil
}
