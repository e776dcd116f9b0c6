// Package services implements domain business logic and use cases.
package services

import (
	"context"
	"math"
	"path"
	"sort"

	"github.com/ochairo/openssf-assess/internal/domain/entities"
	"github.com/ochairo/openssf-assess/internal/domain/interfaces/gateways"
	"github.com/ochairo/openssf-assess/internal/domain/interfaces/services"
)

// assessmentService implements AssessmentService over a fixed catalog
type assessmentService struct {
	gateway       gateways.FileSystemGateway
	catalog       entities.Catalog
	referencesDir string
}

// NewAssessmentService creates a new assessment service with dependency injection.
// referencesDir may be empty, in which case references are reported unchecked.
func NewAssessmentService(gateway gateways.FileSystemGateway, catalog entities.Catalog, referencesDir string) services.AssessmentService {
	return &assessmentService{
		gateway:       gateway,
		catalog:       catalog,
		referencesDir: referencesDir,
	}
}

// CheckArtifacts resolves every artifact check against the root
func (s *assessmentService) CheckArtifacts(ctx context.Context, root string) ([]entities.ArtifactResult, []entities.Warning) {
	results := make([]entities.ArtifactResult, 0, len(s.catalog.Checks))
	var warnings []entities.Warning

	for _, check := range s.catalog.Checks {
		found, ok, err := s.gateway.FindFirst(ctx, root, check.Paths)
		if err != nil {
			warnings = append(warnings, entities.Warning{Path: check.Name, Message: err.Error()})
		}
		results = append(results, entities.ArtifactResult{
			Name:     check.Name,
			Category: check.Category,
			Present:  ok,
			Severity: check.Severity,
			Path:     found,
		})
	}

	return results, warnings
}

// DetectCI reports which CI providers are configured and counts workflow files
func (s *assessmentService) DetectCI(ctx context.Context, root string) (entities.CIReport, []entities.Warning) {
	report := entities.CIReport{Systems: make(map[string]bool, len(s.catalog.CISystems))}
	var warnings []entities.Warning

	for _, ci := range s.catalog.CISystems {
		_, ok, err := s.gateway.FindFirst(ctx, root, ci.Paths)
		if err != nil {
			warnings = append(warnings, entities.Warning{Path: ci.Name, Message: err.Error()})
		}
		report.Systems[ci.Name] = ok
	}

	count, err := s.gateway.CountMatches(ctx, root, s.catalog.WorkflowGlobs)
	if err != nil {
		warnings = append(warnings, entities.Warning{Path: "workflows", Message: err.Error()})
	}
	report.Workflows = count

	return report, warnings
}

// DetectLanguages marks a language true iff any of its markers matched a visited file
// Pure business logic - no I/O
func (s *assessmentService) DetectLanguages(index *entities.TreeIndex) map[string]bool {
	detected := make(map[string]bool, len(s.catalog.Languages))
	names := index.Names()

	for _, lang := range s.catalog.Languages {
		detected[lang.Name] = matchesAny(lang.Markers, index, names)
	}

	return detected
}

func matchesAny(markers []string, index *entities.TreeIndex, names []string) bool {
	for _, marker := range markers {
		if !hasMeta(marker) {
			if index.HasName(marker) {
				return true
			}
			continue
		}
		for _, name := range names {
			if ok, _ := path.Match(marker, name); ok {
				return true
			}
		}
	}
	return false
}

func hasMeta(pattern string) bool {
	for i := 0; i < len(pattern); i++ {
		switch pattern[i] {
		case '*', '?', '[', '\\':
			return true
		}
	}
	return false
}

// ListEcosystems returns tooling hints for detected languages, in catalog order
// Pure business logic - no I/O
func (s *assessmentService) ListEcosystems(languages map[string]bool) []entities.Ecosystem {
	ecosystems := make([]entities.Ecosystem, 0)
	for _, lang := range s.catalog.Languages {
		if !languages[lang.Name] {
			continue
		}
		ecosystems = append(ecosystems, entities.Ecosystem{
			Language:       lang.Name,
			PackageManager: lang.PackageManager,
			AuditTool:      lang.AuditTool,
			Rationale:      lang.AuditRationale,
		})
	}
	return ecosystems
}

// DeriveRecommendations emits exactly one recommendation per absent check,
// ordered by severity with catalog order as the tie-break
func (s *assessmentService) DeriveRecommendations(ctx context.Context, results []entities.ArtifactResult) []entities.Recommendation {
	recommendations := make([]entities.Recommendation, 0)

	for _, result := range results {
		if result.Present {
			continue
		}
		check, _ := s.catalog.Check(result.Name)
		recommendations = append(recommendations, entities.Recommendation{
			Name:      result.Name,
			Category:  result.Category,
			Severity:  result.Severity,
			Rationale: check.Rationale,
			Reference: s.resolveReference(ctx, check.Reference),
		})
	}

	sort.SliceStable(recommendations, func(i, j int) bool {
		return recommendations[i].Severity.Rank() > recommendations[j].Severity.Rank()
	})

	return recommendations
}

func (s *assessmentService) resolveReference(ctx context.Context, ref string) *string {
	if ref == "" {
		return nil
	}
	if s.referencesDir != "" && !s.gateway.ReferenceExists(ctx, s.referencesDir, ref) {
		return nil
	}
	return &ref
}

// Summarize counts recommendations per severity
// Pure business logic - no I/O
func (s *assessmentService) Summarize(recommendations []entities.Recommendation) entities.Summary {
	var summary entities.Summary
	for _, rec := range recommendations {
		summary.Add(rec.Severity)
	}
	return summary
}

// CalculateScore weighs each check by its severity and grades the result
// Pure business logic - no I/O
func (s *assessmentService) CalculateScore(results []entities.ArtifactResult) entities.Score {
	total, passed := 0, 0
	for _, result := range results {
		weight := s.catalog.Weight(result.Severity)
		total += weight
		if result.Present {
			passed += weight
		}
	}

	score := entities.Score{ChecksPassed: passed, TotalChecks: total}
	if total > 0 {
		score.Value = int(math.Round(float64(passed) / float64(total) * 100))
	}

	switch {
	case score.Value >= 80:
		score.Grade, score.Assessment = "A", "Strong security posture"
	case score.Value >= 60:
		score.Grade, score.Assessment = "B", "Good foundation, room for improvement"
	case score.Value >= 40:
		score.Grade, score.Assessment = "C", "Basic security, significant gaps"
	case score.Value >= 20:
		score.Grade, score.Assessment = "D", "Minimal security controls"
	default:
		score.Grade, score.Assessment = "F", "Critical security gaps"
	}

	return score
}
