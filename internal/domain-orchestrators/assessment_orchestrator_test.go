package orchestrators

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/ochairo/openssf-assess/internal/domain-adapters/gateways"
	"github.com/ochairo/openssf-assess/internal/domain/entities"
	"github.com/ochairo/openssf-assess/internal/domain/services"
)

func newTestOrchestrator(catalog entities.Catalog) *AssessmentOrchestrator {
	fs := gateways.NewFileSystemGateway()
	return NewAssessmentOrchestrator(fs, services.NewAssessmentService(fs, catalog, ""), catalog, nil)
}

func writeFiles(t *testing.T, root string, files ...string) {
	t.Helper()
	for _, rel := range files {
		path := filepath.Join(root, filepath.FromSlash(rel))
		if err := os.MkdirAll(filepath.Dir(path), 0750); err != nil {
			t.Fatalf("Failed to create dir: %v", err)
		}
		if err := os.WriteFile(path, []byte("x"), 0600); err != nil {
			t.Fatalf("Failed to create file: %v", err)
		}
	}
}

func TestAssessmentOrchestrator_EmptyDirectory(t *testing.T) {
	orch := newTestOrchestrator(services.DefaultCatalog())

	report, err := orch.Assess(context.Background(), t.TempDir())
	if err != nil {
		t.Fatalf("Assess failed: %v", err)
	}

	if report.Partial {
		t.Error("Empty directory should not be partial")
	}
	for lang, on := range report.Languages {
		if on {
			t.Errorf("No language should be detected, got %s", lang)
		}
	}
	for _, a := range report.Artifacts {
		if a.Present {
			t.Errorf("No artifact should be present, got %s", a.Name)
		}
	}
	want := entities.Summary{Critical: 1, High: 2, Medium: 11, Low: 4}
	if report.Summary != want {
		t.Errorf("Summary = %+v, want %+v", report.Summary, want)
	}
	if report.Recommendations[0].Name != "security-policy" {
		t.Errorf("First recommendation = %s, want security-policy", report.Recommendations[0].Name)
	}
	if report.Score.Grade != "F" {
		t.Errorf("Grade = %s, want F", report.Score.Grade)
	}
}

func TestAssessmentOrchestrator_DetectsProject(t *testing.T) {
	root := t.TempDir()
	writeFiles(t, root,
		"go.mod",
		"web/package.json",
		"SECURITY.md",
		"LICENSE",
		".github/dependabot.yml",
		".github/workflows/ci.yml",
		".github/workflows/codeql.yml",
		"vendor/github.com/x/Cargo.toml",
	)

	report, err := newTestOrchestrator(services.DefaultCatalog()).Assess(context.Background(), root)
	if err != nil {
		t.Fatalf("Assess failed: %v", err)
	}

	if !report.Languages["go"] || !report.Languages["node"] {
		t.Errorf("Expected go and node, got: %v", report.Languages)
	}
	if report.Languages["rust"] {
		t.Error("Files under ignored directories should not drive detection")
	}
	if report.Summary.Critical != 0 || report.Summary.High != 0 {
		t.Errorf("Summary = %+v, want no critical or high gaps", report.Summary)
	}
	if !report.CI.Systems["github_actions"] || report.CI.Workflows != 2 {
		t.Errorf("CI = %+v", report.CI)
	}
	if len(report.Ecosystems) != 2 {
		t.Errorf("Ecosystems = %+v", report.Ecosystems)
	}
}

func TestAssessmentOrchestrator_Monotonic(t *testing.T) {
	root := t.TempDir()
	orch := newTestOrchestrator(services.DefaultCatalog())

	before, err := orch.Assess(context.Background(), root)
	if err != nil {
		t.Fatalf("Assess failed: %v", err)
	}

	writeFiles(t, root, "CONTRIBUTING.md", ".pre-commit-config.yaml")
	after, err := orch.Assess(context.Background(), root)
	if err != nil {
		t.Fatalf("Assess failed: %v", err)
	}

	if len(after.Recommendations) != len(before.Recommendations)-2 {
		t.Errorf("Recommendations = %d, want %d", len(after.Recommendations), len(before.Recommendations)-2)
	}
	if after.Summary.Low != before.Summary.Low-2 {
		t.Errorf("Low = %d, want %d", after.Summary.Low, before.Summary.Low-2)
	}
}

func TestAssessmentOrchestrator_Idempotent(t *testing.T) {
	root := t.TempDir()
	writeFiles(t, root, "pyproject.toml", "tests/test_app.py", "CODEOWNERS")
	orch := newTestOrchestrator(services.DefaultCatalog())

	first, err := orch.Assess(context.Background(), root)
	if err != nil {
		t.Fatalf("Assess failed: %v", err)
	}
	second, err := orch.Assess(context.Background(), root)
	if err != nil {
		t.Fatalf("Assess failed: %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Error("Repeated assessments of an unchanged tree should be equal")
	}
}

func TestAssessmentOrchestrator_Partial(t *testing.T) {
	root := t.TempDir()
	writeFiles(t, root, "a/b/c/d/go.mod", "SECURITY.md")

	catalog := services.DefaultCatalog()
	catalog.Limits.MaxDepth = 2

	report, err := newTestOrchestrator(catalog).Assess(context.Background(), root)
	if err != nil {
		t.Fatalf("Assess failed: %v", err)
	}
	if !report.Partial {
		t.Error("Depth bound should mark the report partial")
	}
	if report.Languages["go"] {
		t.Error("go.mod below the depth bound should not be seen")
	}
	// Artifact checks are independent of the walk bounds
	if report.Summary.Critical != 0 {
		t.Error("SECURITY.md should still be found")
	}
}

func TestAssessmentOrchestrator_InvalidRoot(t *testing.T) {
	orch := newTestOrchestrator(services.DefaultCatalog())
	dir := t.TempDir()
	writeFiles(t, dir, "file.txt")

	for _, root := range []string{filepath.Join(dir, "missing"), filepath.Join(dir, "file.txt")} {
		report, err := orch.Assess(context.Background(), root)
		if !errors.Is(err, entities.ErrInvalidRoot) {
			t.Errorf("Assess(%s) error = %v, want ErrInvalidRoot", root, err)
		}
		if report != nil {
			t.Errorf("Assess(%s) should not return a report on failure", root)
		}
	}
}

func TestAssessmentOrchestrator_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := newTestOrchestrator(services.DefaultCatalog()).Assess(ctx, t.TempDir())
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Expected context.Canceled, got: %v", err)
	}
}

func TestNormalizeWarnings(t *testing.T) {
	in := []entities.Warning{
		{Path: "b", Message: "x"},
		{Path: "a", Message: "y"},
		{Path: "b", Message: "x"},
		{Path: "a", Message: "b"},
	}
	got := normalizeWarnings(in)
	want := []entities.Warning{
		{Path: "a", Message: "b"},
		{Path: "a", Message: "y"},
		{Path: "b", Message: "x"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("normalizeWarnings() = %+v, want %+v", got, want)
	}
	if empty := normalizeWarnings(nil); empty == nil || len(empty) != 0 {
		t.Errorf("normalizeWarnings(nil) = %v, want empty non-nil", empty)
	}
}
