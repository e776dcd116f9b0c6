package services

import (
	"errors"
	"fmt"
	"path"
	"sort"
	"strings"

	"github.com/ochairo/openssf-assess/internal/domain/entities"
)

// ApplyPolicy overlays a policy on a base catalog and validates the result.
// The base catalog is never modified. A nil policy returns a validated copy.
func ApplyPolicy(base entities.Catalog, policy *entities.Policy) (entities.Catalog, error) {
	out := base.Clone()
	if policy == nil {
		return out, ValidateCatalog(out)
	}

	var problems []error

	if policy.Limits.MaxDepth != 0 {
		out.Limits.MaxDepth = policy.Limits.MaxDepth
	}
	if policy.Limits.MaxFiles != 0 {
		out.Limits.MaxFiles = policy.Limits.MaxFiles
	}

	if policy.IgnoreDirs != nil {
		out.IgnoreDirs = append([]string(nil), policy.IgnoreDirs...)
	}
	out.IgnoreDirs = dedupe(append(out.IgnoreDirs, policy.ExtraIgnoreDirs...))

	for sev := range policy.Weights {
		if !sev.Valid() {
			problems = append(problems, fmt.Errorf("weights: unknown severity %q", sev))
		}
	}
	for _, sev := range entities.Severities() {
		weight, ok := policy.Weights[sev]
		if !ok {
			continue
		}
		if weight < 0 {
			problems = append(problems, fmt.Errorf("weights: %s weight must not be negative", sev))
			continue
		}
		out.Weights[sev] = weight
	}

	// Policy checks are appended before overrides so they can be targeted too
	out.Checks = append(out.Checks, policy.Checks...)

	for _, name := range sortedKeys(policy.Severities) {
		idx := checkIndex(out.Checks, name)
		if idx < 0 {
			problems = append(problems, fmt.Errorf("severities: unknown check %q", name))
			continue
		}
		out.Checks[idx].Severity = policy.Severities[name]
	}

	for _, name := range sortedKeys(policy.References) {
		idx := checkIndex(out.Checks, name)
		if idx < 0 {
			problems = append(problems, fmt.Errorf("references: unknown check %q", name))
			continue
		}
		out.Checks[idx].Reference = policy.References[name]
	}

	for _, name := range policy.Disable {
		idx := checkIndex(out.Checks, name)
		if idx < 0 {
			problems = append(problems, fmt.Errorf("disable: unknown check %q", name))
			continue
		}
		out.Checks = append(out.Checks[:idx], out.Checks[idx+1:]...)
	}

	for _, lang := range policy.Languages {
		replaced := false
		for i := range out.Languages {
			if out.Languages[i].Name == lang.Name {
				out.Languages[i] = lang
				replaced = true
				break
			}
		}
		if !replaced {
			out.Languages = append(out.Languages, lang)
		}
	}

	if len(problems) > 0 {
		return entities.Catalog{}, fmt.Errorf("%w: %w", entities.ErrInvalidPolicy, errors.Join(problems...))
	}
	return out, ValidateCatalog(out)
}

// ValidateCatalog checks names, severities and candidate patterns of a catalog
func ValidateCatalog(c entities.Catalog) error {
	var problems []error

	if c.Limits.MaxDepth < 0 {
		problems = append(problems, errors.New("limits: max_depth must not be negative"))
	}
	if c.Limits.MaxFiles < 0 {
		problems = append(problems, errors.New("limits: max_files must not be negative"))
	}

	seen := make(map[string]bool, len(c.Checks))
	for i, check := range c.Checks {
		if check.Name == "" {
			problems = append(problems, fmt.Errorf("check %d: name is required", i))
			continue
		}
		if seen[check.Name] {
			problems = append(problems, fmt.Errorf("check %q: duplicate name", check.Name))
		}
		seen[check.Name] = true
		if !check.Severity.Valid() {
			problems = append(problems, fmt.Errorf("check %q: invalid severity %q", check.Name, check.Severity))
		}
		if len(check.Paths) == 0 {
			problems = append(problems, fmt.Errorf("check %q: at least one path is required", check.Name))
		}
		for _, p := range check.Paths {
			if err := validateCandidate(p); err != nil {
				problems = append(problems, fmt.Errorf("check %q: %w", check.Name, err))
			}
		}
	}

	langs := make(map[string]bool, len(c.Languages))
	for i, lang := range c.Languages {
		if lang.Name == "" {
			problems = append(problems, fmt.Errorf("language %d: name is required", i))
			continue
		}
		if langs[lang.Name] {
			problems = append(problems, fmt.Errorf("language %q: duplicate name", lang.Name))
		}
		langs[lang.Name] = true
		if len(lang.Markers) == 0 {
			problems = append(problems, fmt.Errorf("language %q: at least one marker is required", lang.Name))
		}
		for _, m := range lang.Markers {
			if strings.Contains(m, "/") {
				problems = append(problems, fmt.Errorf("language %q: marker %q must be a file name", lang.Name, m))
				continue
			}
			if _, err := path.Match(m, ""); err != nil {
				problems = append(problems, fmt.Errorf("language %q: marker %q: %w", lang.Name, m, err))
			}
		}
	}

	for _, ci := range c.CISystems {
		for _, p := range ci.Paths {
			if err := validateCandidate(p); err != nil {
				problems = append(problems, fmt.Errorf("ci system %q: %w", ci.Name, err))
			}
		}
	}

	if len(problems) > 0 {
		return fmt.Errorf("%w: %w", entities.ErrInvalidPolicy, errors.Join(problems...))
	}
	return nil
}

// validateCandidate rejects paths that could escape the scan root
func validateCandidate(p string) error {
	if p == "" {
		return errors.New("empty path")
	}
	if strings.HasPrefix(p, "/") || strings.Contains(p, `\`) {
		return fmt.Errorf("path %q must be relative and use forward slashes", p)
	}
	for _, part := range strings.Split(p, "/") {
		if part == ".." {
			return fmt.Errorf("path %q must not leave the scan root", p)
		}
	}
	if _, err := path.Match(p, ""); err != nil {
		return fmt.Errorf("path %q: %w", p, err)
	}
	return nil
}

func checkIndex(checks []entities.ArtifactCheck, name string) int {
	for i, c := range checks {
		if c.Name == name {
			return i
		}
	}
	return -1
}

func dedupe(in []string) []string {
	seen := make(map[string]bool, len(in))
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s == "" || seen[s] {
			continue
		}
		seen[s] = true
		out = append(out, s)
	}
	return out
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
