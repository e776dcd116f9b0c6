// Package yaml provides YAML-based policy parsing.
package yaml

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/ochairo/openssf-assess/internal/domain/entities"
	"gopkg.in/yaml.v3"
)

// yamlPolicy represents the raw YAML structure
type yamlPolicy struct {
	Limits          yamlLimits        `yaml:"limits"`
	IgnoreDirs      []string          `yaml:"ignore_dirs"`
	ExtraIgnoreDirs []string          `yaml:"extra_ignore_dirs"`
	Severities      map[string]string `yaml:"severities"`
	Weights         map[string]int    `yaml:"weights"`
	Disable         []string          `yaml:"disable"`
	References      map[string]string `yaml:"references"`
	Checks          []yamlCheck       `yaml:"checks"`
	Languages       []yamlLanguage    `yaml:"languages"`
}

type yamlLimits struct {
	MaxDepth int `yaml:"max_depth"`
	MaxFiles int `yaml:"max_files"`
}

type yamlCheck struct {
	Name      string   `yaml:"name"`
	Category  string   `yaml:"category"`
	Severity  string   `yaml:"severity"`
	Paths     []string `yaml:"paths"`
	Rationale string   `yaml:"rationale"`
	Reference string   `yaml:"reference"`
}

type yamlLanguage struct {
	Name           string   `yaml:"name"`
	Markers        []string `yaml:"markers"`
	PackageManager string   `yaml:"package_manager"`
	AuditTool      string   `yaml:"audit_tool"`
	AuditRationale string   `yaml:"audit_rationale"`
}

// PolicyParser parses YAML policy files
type PolicyParser struct{}

// NewPolicyParser creates a new YAML parser
func NewPolicyParser() *PolicyParser {
	return &PolicyParser{}
}

// ParseFile parses a YAML policy file into a Policy entity
func (p *PolicyParser) ParseFile(filePath string) (*entities.Policy, error) {
	//nolint:gosec // G304: filePath is the policy path given on the command line
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filePath, err)
	}

	return p.Parse(data)
}

// Parse parses YAML bytes into a Policy entity.
// Unknown keys are rejected so typos do not silently fall back to defaults.
func (p *PolicyParser) Parse(data []byte) (*entities.Policy, error) {
	var raw yamlPolicy
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&raw); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: failed to parse YAML: %w", entities.ErrInvalidPolicy, err)
	}

	if raw.Limits.MaxDepth < 0 || raw.Limits.MaxFiles < 0 {
		return nil, fmt.Errorf("%w: limits must not be negative", entities.ErrInvalidPolicy)
	}

	severities, err := convertSeverities(raw.Severities)
	if err != nil {
		return nil, err
	}
	weights, err := convertWeights(raw.Weights)
	if err != nil {
		return nil, err
	}
	checks, err := convertChecks(raw.Checks)
	if err != nil {
		return nil, err
	}

	// Convert to domain entity
	return &entities.Policy{
		Limits: entities.Limits{
			MaxDepth: raw.Limits.MaxDepth,
			MaxFiles: raw.Limits.MaxFiles,
		},
		IgnoreDirs:      raw.IgnoreDirs,
		ExtraIgnoreDirs: raw.ExtraIgnoreDirs,
		Severities:      severities,
		Weights:         weights,
		Disable:         raw.Disable,
		References:      raw.References,
		Checks:          checks,
		Languages:       convertLanguages(raw.Languages),
	}, nil
}

func convertSeverities(raw map[string]string) (map[string]entities.Severity, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	out := make(map[string]entities.Severity, len(raw))
	for name, value := range raw {
		sev, err := entities.ParseSeverity(value)
		if err != nil {
			return nil, fmt.Errorf("%w: severities.%s: %w", entities.ErrInvalidPolicy, name, err)
		}
		out[name] = sev
	}
	return out, nil
}

func convertWeights(raw map[string]int) (map[entities.Severity]int, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	out := make(map[entities.Severity]int, len(raw))
	for key, weight := range raw {
		sev, err := entities.ParseSeverity(key)
		if err != nil {
			return nil, fmt.Errorf("%w: weights: %w", entities.ErrInvalidPolicy, err)
		}
		out[sev] = weight
	}
	return out, nil
}

func convertChecks(raw []yamlCheck) ([]entities.ArtifactCheck, error) {
	checks := make([]entities.ArtifactCheck, 0, len(raw))
	for i, yc := range raw {
		if yc.Name == "" {
			return nil, fmt.Errorf("%w: checks[%d]: name is required", entities.ErrInvalidPolicy, i)
		}
		sev, err := entities.ParseSeverity(yc.Severity)
		if err != nil {
			return nil, fmt.Errorf("%w: checks[%d] %s: %w", entities.ErrInvalidPolicy, i, yc.Name, err)
		}
		category := yc.Category
		if category == "" {
			category = "custom"
		}
		checks = append(checks, entities.ArtifactCheck{
			Name:      yc.Name,
			Category:  category,
			Paths:     yc.Paths,
			Severity:  sev,
			Rationale: yc.Rationale,
			Reference: yc.Reference,
		})
	}
	return checks, nil
}

func convertLanguages(raw []yamlLanguage) []entities.LanguageMarker {
	langs := make([]entities.LanguageMarker, 0, len(raw))
	for _, yl := range raw {
		langs = append(langs, entities.LanguageMarker{
			Name:           yl.Name,
			Markers:        yl.Markers,
			PackageManager: yl.PackageManager,
			AuditTool:      yl.AuditTool,
			AuditRationale: yl.AuditRationale,
		})
	}
	return langs
}
