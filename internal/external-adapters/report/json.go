// Package report renders assessment reports for output.
package report

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/ochairo/openssf-assess/internal/domain/entities"
)

type jsonReport struct {
	Root            string               `json:"root"`
	Partial         bool                 `json:"partial"`
	Languages       map[string]bool      `json:"languages"`
	Ecosystems      []jsonEcosystem      `json:"ecosystems"`
	CI              jsonCI               `json:"ci"`
	Artifacts       []jsonArtifact       `json:"artifacts"`
	Recommendations []jsonRecommendation `json:"recommendations"`
	Summary         jsonSummary          `json:"summary"`
	Score           jsonScore            `json:"score"`
	Warnings        []jsonWarning        `json:"warnings"`
}

type jsonEcosystem struct {
	Language       string `json:"language"`
	PackageManager string `json:"package_manager"`
	AuditTool      string `json:"audit_tool"`
	Rationale      string `json:"rationale"`
}

type jsonCI struct {
	Systems   map[string]bool `json:"systems"`
	Workflows int             `json:"workflows"`
}

type jsonArtifact struct {
	Name     string `json:"name"`
	Category string `json:"category"`
	Present  bool   `json:"present"`
	Severity string `json:"severity"`
	Path     string `json:"path,omitempty"`
}

type jsonRecommendation struct {
	Name      string  `json:"name"`
	Category  string  `json:"category"`
	Severity  string  `json:"severity"`
	Rationale string  `json:"rationale"`
	Reference *string `json:"reference"`
}

type jsonSummary struct {
	Critical int `json:"critical"`
	High     int `json:"high"`
	Medium   int `json:"medium"`
	Low      int `json:"low"`
}

type jsonScore struct {
	Score        int    `json:"score"`
	Grade        string `json:"grade"`
	Assessment   string `json:"assessment"`
	ChecksPassed int    `json:"checks_passed"`
	TotalChecks  int    `json:"total_checks"`
}

type jsonWarning struct {
	Path    string `json:"path"`
	Message string `json:"message"`
}

// WriteJSON writes the report as indented JSON. Collections are never null
// and map keys are sorted, so equal reports produce identical bytes.
func WriteJSON(w io.Writer, r *entities.AssessmentReport) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(convertReport(r)); err != nil {
		return fmt.Errorf("failed to encode report: %w", err)
	}
	return nil
}

func convertReport(r *entities.AssessmentReport) jsonReport {
	out := jsonReport{
		Root:            r.Root,
		Partial:         r.Partial,
		Languages:       copyFlags(r.Languages),
		Ecosystems:      make([]jsonEcosystem, 0, len(r.Ecosystems)),
		CI:              jsonCI{Systems: copyFlags(r.CI.Systems), Workflows: r.CI.Workflows},
		Artifacts:       make([]jsonArtifact, 0, len(r.Artifacts)),
		Recommendations: make([]jsonRecommendation, 0, len(r.Recommendations)),
		Summary: jsonSummary{
			Critical: r.Summary.Critical,
			High:     r.Summary.High,
			Medium:   r.Summary.Medium,
			Low:      r.Summary.Low,
		},
		Score: jsonScore{
			Score:        r.Score.Value,
			Grade:        r.Score.Grade,
			Assessment:   r.Score.Assessment,
			ChecksPassed: r.Score.ChecksPassed,
			TotalChecks:  r.Score.TotalChecks,
		},
		Warnings: make([]jsonWarning, 0, len(r.Warnings)),
	}

	for _, e := range r.Ecosystems {
		out.Ecosystems = append(out.Ecosystems, jsonEcosystem{
			Language:       e.Language,
			PackageManager: e.PackageManager,
			AuditTool:      e.AuditTool,
			Rationale:      e.Rationale,
		})
	}
	for _, a := range r.Artifacts {
		out.Artifacts = append(out.Artifacts, jsonArtifact{
			Name:     a.Name,
			Category: a.Category,
			Present:  a.Present,
			Severity: string(a.Severity),
			Path:     a.Path,
		})
	}
	for _, rec := range r.Recommendations {
		out.Recommendations = append(out.Recommendations, jsonRecommendation{
			Name:      rec.Name,
			Category:  rec.Category,
			Severity:  string(rec.Severity),
			Rationale: rec.Rationale,
			Reference: rec.Reference,
		})
	}
	for _, w := range r.Warnings {
		out.Warnings = append(out.Warnings, jsonWarning{Path: w.Path, Message: w.Message})
	}

	return out
}

func copyFlags(in map[string]bool) map[string]bool {
	out := make(map[string]bool, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}
