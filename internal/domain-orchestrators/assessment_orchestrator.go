// Package orchestrators coordinates domain services into complete use cases.
package orchestrators

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/ochairo/openssf-assess/internal/domain/entities"
	"github.com/ochairo/openssf-assess/internal/domain/interfaces"
	"github.com/ochairo/openssf-assess/internal/domain/interfaces/gateways"
	"github.com/ochairo/openssf-assess/internal/domain/interfaces/services"
)

// AssessmentOrchestrator coordinates the complete assessment workflow
type AssessmentOrchestrator struct {
	fs      gateways.FileSystemGateway
	service services.AssessmentService
	catalog entities.Catalog
	logger  interfaces.Logger
}

// NewAssessmentOrchestrator creates a new assessment orchestrator.
// A nil logger is replaced by a no-op logger.
func NewAssessmentOrchestrator(
	fs gateways.FileSystemGateway,
	service services.AssessmentService,
	catalog entities.Catalog,
	logger interfaces.Logger,
) *AssessmentOrchestrator {
	if logger == nil {
		logger = &interfaces.NoOpLogger{}
	}
	return &AssessmentOrchestrator{
		fs:      fs,
		service: service,
		catalog: catalog,
		logger:  logger,
	}
}

// Assess builds a fresh report for root. Only an invalid or unreadable root
// (or cancellation) returns an error; everything else degrades into the report.
func (o *AssessmentOrchestrator) Assess(ctx context.Context, root string) (*entities.AssessmentReport, error) {
	startTime := time.Now()

	absRoot, err := o.fs.InspectRoot(ctx, root)
	if err != nil {
		return nil, err
	}
	log := o.logger.With(interfaces.F("root", absRoot))

	// Step 1: Walk the tree
	index, err := o.fs.Walk(ctx, absRoot, entities.WalkOptions{
		IgnoreDirs: o.catalog.IgnoreDirs,
		MaxDepth:   o.catalog.Limits.MaxDepth,
		MaxFiles:   o.catalog.Limits.MaxFiles,
	})
	if err != nil {
		return nil, fmt.Errorf("traversal failed: %w", err)
	}
	log.Debug("tree walked",
		interfaces.F("files", index.Files),
		interfaces.F("dirs", index.Dirs),
		interfaces.F("partial", index.Partial))
	if index.Partial {
		log.Info("traversal limit reached, report is partial",
			interfaces.F("max_depth", o.catalog.Limits.MaxDepth),
			interfaces.F("max_files", o.catalog.Limits.MaxFiles))
	}

	report := &entities.AssessmentReport{
		Root:    absRoot,
		Partial: index.Partial,
	}
	warnings := append([]entities.Warning(nil), index.Warnings...)

	// Step 2: Languages
	report.Languages = o.service.DetectLanguages(index)
	report.Ecosystems = o.service.ListEcosystems(report.Languages)

	// Step 3: Artifacts (best-effort, read failures become warnings)
	artifacts, artifactWarnings := o.service.CheckArtifacts(ctx, absRoot)
	report.Artifacts = artifacts
	warnings = append(warnings, artifactWarnings...)

	// Step 4: CI
	ci, ciWarnings := o.service.DetectCI(ctx, absRoot)
	report.CI = ci
	warnings = append(warnings, ciWarnings...)

	// Step 5: Gap analysis
	report.Recommendations = o.service.DeriveRecommendations(ctx, artifacts)
	report.Summary = o.service.Summarize(report.Recommendations)
	report.Score = o.service.CalculateScore(artifacts)

	// Cancellation during best-effort steps must not yield a silently incomplete report
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	report.Warnings = normalizeWarnings(warnings)
	for _, w := range report.Warnings {
		log.Warn("soft read failure", interfaces.F("path", w.Path), interfaces.F("error", w.Message))
	}

	log.Info("assessment complete",
		interfaces.F("recommendations", len(report.Recommendations)),
		interfaces.F("score", report.Score.Value),
		interfaces.F("duration", time.Since(startTime).String()))

	return report, nil
}

// normalizeWarnings sorts warnings and drops exact duplicates so output is stable
func normalizeWarnings(in []entities.Warning) []entities.Warning {
	out := make([]entities.Warning, 0, len(in))
	sort.SliceStable(in, func(i, j int) bool {
		if in[i].Path != in[j].Path {
			return in[i].Path < in[j].Path
		}
		return in[i].Message < in[j].Message
	})
	for i, w := range in {
		if i > 0 && w == in[i-1] {
			continue
		}
		out = append(out, w)
	}
	return out
}
