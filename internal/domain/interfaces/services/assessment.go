// Package services defines interfaces for domain service contracts.
package services

import (
	"context"

	"github.com/ochairo/openssf-assess/internal/domain/entities"
)

// AssessmentService defines the security posture assessment operations
// Contains business logic for gap analysis and ranking
type AssessmentService interface {
	// Filesystem-backed detection
	CheckArtifacts(ctx context.Context, root string) ([]entities.ArtifactResult, []entities.Warning)
	DetectCI(ctx context.Context, root string) (entities.CIReport, []entities.Warning)

	// Business logic
	DetectLanguages(index *entities.TreeIndex) map[string]bool
	ListEcosystems(languages map[string]bool) []entities.Ecosystem
	DeriveRecommendations(ctx context.Context, results []entities.ArtifactResult) []entities.Recommendation
	Summarize(recommendations []entities.Recommendation) entities.Summary
	CalculateScore(results []entities.ArtifactResult) entities.Score
}
