package report

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/ochairo/openssf-assess/internal/domain/entities"
)

func sampleReport() *entities.AssessmentReport {
	ref := "templates/SECURITY.md"
	return &entities.AssessmentReport{
		Root:      "/src/app",
		Languages: map[string]bool{"python": false, "go": true},
		Ecosystems: []entities.Ecosystem{
			{Language: "go", PackageManager: "go modules", AuditTool: "govulncheck", Rationale: "official scanner"},
		},
		CI: entities.CIReport{Systems: map[string]bool{"github_actions": true}, Workflows: 2},
		Artifacts: []entities.ArtifactResult{
			{Name: "security-policy", Category: "policy", Severity: entities.SeverityCritical},
			{Name: "license", Category: "legal", Present: true, Severity: entities.SeverityHigh, Path: "LICENSE"},
		},
		Recommendations: []entities.Recommendation{
			{Name: "security-policy", Category: "policy", Severity: entities.SeverityCritical, Rationale: "disclose", Reference: &ref},
			{Name: "threat-model", Category: "design", Severity: entities.SeverityMedium, Rationale: "model threats"},
		},
		Summary: entities.Summary{Critical: 1, Medium: 1},
		Score:   entities.Score{Value: 40, Grade: "C", Assessment: "Basic security, significant gaps", ChecksPassed: 2, TotalChecks: 5},
	}
}

func TestWriteJSON_Contract(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteJSON(&buf, sampleReport()); err != nil {
		t.Fatalf("WriteJSON() error = %v", err)
	}

	var doc map[string]json.RawMessage
	if err := json.Unmarshal(buf.Bytes(), &doc); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	for _, key := range []string{"root", "partial", "languages", "artifacts", "recommendations", "summary", "ecosystems", "ci", "score", "warnings"} {
		if _, ok := doc[key]; !ok {
			t.Errorf("missing key %q", key)
		}
	}

	if string(doc["warnings"]) != "[]" {
		t.Errorf("warnings = %s, want []", doc["warnings"])
	}

	var recs []map[string]interface{}
	if err := json.Unmarshal(doc["recommendations"], &recs); err != nil {
		t.Fatal(err)
	}
	if recs[0]["reference"] != "templates/SECURITY.md" {
		t.Errorf("reference = %v", recs[0]["reference"])
	}
	if v, ok := recs[1]["reference"]; !ok || v != nil {
		t.Errorf("missing reference should be null, got %v (present=%v)", v, ok)
	}

	var summary map[string]int
	if err := json.Unmarshal(doc["summary"], &summary); err != nil {
		t.Fatal(err)
	}
	if len(summary) != 4 || summary["critical"] != 1 || summary["high"] != 0 {
		t.Errorf("summary = %v", summary)
	}
}

func TestWriteJSON_AbsentPathOmitted(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteJSON(&buf, sampleReport()); err != nil {
		t.Fatalf("WriteJSON() error = %v", err)
	}

	var doc struct {
		Artifacts []map[string]interface{} `json:"artifacts"`
	}
	if err := json.Unmarshal(buf.Bytes(), &doc); err != nil {
		t.Fatal(err)
	}
	if _, ok := doc.Artifacts[0]["path"]; ok {
		t.Error("absent artifact should not carry a path")
	}
	if doc.Artifacts[1]["path"] != "LICENSE" {
		t.Errorf("path = %v, want LICENSE", doc.Artifacts[1]["path"])
	}
}

func TestWriteJSON_Deterministic(t *testing.T) {
	var first, second bytes.Buffer
	if err := WriteJSON(&first, sampleReport()); err != nil {
		t.Fatal(err)
	}
	if err := WriteJSON(&second, sampleReport()); err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(first.Bytes(), second.Bytes()) {
		t.Error("identical reports should encode to identical bytes")
	}
	// Sorted map keys
	if strings.Index(first.String(), `"go"`) > strings.Index(first.String(), `"python"`) {
		t.Error("language keys should be sorted")
	}
}

func TestWriteJSON_EmptyCollections(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteJSON(&buf, &entities.AssessmentReport{Root: "/empty"}); err != nil {
		t.Fatalf("WriteJSON() error = %v", err)
	}
	out := buf.String()
	for _, want := range []string{`"languages": {}`, `"artifacts": []`, `"recommendations": []`, `"ecosystems": []`, `"systems": {}`} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %s:\n%s", want, out)
		}
	}
}
