package yaml

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/ochairo/openssf-assess/internal/domain/entities"
)

func TestPolicyParser_Parse_Valid(t *testing.T) {
	parser := NewPolicyParser()
	yamlData := []byte(`limits:
  max_depth: 4
  max_files: 1000
extra_ignore_dirs:
  - third_party
severities:
  license: Critical
weights:
  medium: 2
disable:
  - threat-model
references:
  security-policy: docs/security-policy.md
checks:
  - name: fuzzing
    category: testing
    severity: low
    paths:
      - fuzz
      - .clusterfuzzlite/project.yaml
    rationale: Fuzz targets catch memory and parsing bugs early
languages:
  - name: zig
    markers:
      - build.zig
    package_manager: zig
`)

	policy, err := parser.Parse(yamlData)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	if policy.Limits.MaxDepth != 4 || policy.Limits.MaxFiles != 1000 {
		t.Errorf("Limits = %+v, want {4 1000}", policy.Limits)
	}
	if policy.IgnoreDirs != nil {
		t.Errorf("IgnoreDirs = %v, want nil when not set", policy.IgnoreDirs)
	}
	if len(policy.ExtraIgnoreDirs) != 1 || policy.ExtraIgnoreDirs[0] != "third_party" {
		t.Errorf("ExtraIgnoreDirs = %v, want [third_party]", policy.ExtraIgnoreDirs)
	}
	if policy.Severities["license"] != entities.SeverityCritical {
		t.Errorf("Severities[license] = %v, want critical", policy.Severities["license"])
	}
	if policy.Weights[entities.SeverityMedium] != 2 {
		t.Errorf("Weights[medium] = %d, want 2", policy.Weights[entities.SeverityMedium])
	}
	if len(policy.Disable) != 1 || policy.Disable[0] != "threat-model" {
		t.Errorf("Disable = %v, want [threat-model]", policy.Disable)
	}
	if policy.References["security-policy"] != "docs/security-policy.md" {
		t.Errorf("References = %v", policy.References)
	}
	if len(policy.Checks) != 1 {
		t.Fatalf("Checks count = %d, want 1", len(policy.Checks))
	}
	check := policy.Checks[0]
	if check.Name != "fuzzing" || check.Category != "testing" || check.Severity != entities.SeverityLow {
		t.Errorf("Checks[0] = %+v", check)
	}
	if len(check.Paths) != 2 {
		t.Errorf("Checks[0].Paths count = %d, want 2", len(check.Paths))
	}
	if len(policy.Languages) != 1 || policy.Languages[0].Name != "zig" {
		t.Errorf("Languages = %+v", policy.Languages)
	}
}

func TestPolicyParser_Parse_Empty(t *testing.T) {
	parser := NewPolicyParser()

	for _, data := range [][]byte{nil, []byte(""), []byte("# comments only\n")} {
		policy, err := parser.Parse(data)
		if err != nil {
			t.Fatalf("Parse(%q) error = %v", data, err)
		}
		if len(policy.Checks) != 0 || policy.Limits != (entities.Limits{}) {
			t.Errorf("Parse(%q) = %+v, want empty policy", data, policy)
		}
	}
}

func TestPolicyParser_Parse_Invalid(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{
			name: "broken yaml",
			data: "limits:\n  max_depth: [broken\n",
		},
		{
			name: "unknown key",
			data: "max_depht: 3\n",
		},
		{
			name: "negative limit",
			data: "limits:\n  max_files: -1\n",
		},
		{
			name: "unknown severity override",
			data: "severities:\n  license: urgent\n",
		},
		{
			name: "unknown weight severity",
			data: "weights:\n  blocker: 5\n",
		},
		{
			name: "check without name",
			data: "checks:\n  - severity: low\n    paths: [x]\n",
		},
		{
			name: "check without severity",
			data: "checks:\n  - name: x\n    paths: [x]\n",
		},
	}

	parser := NewPolicyParser()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parser.Parse([]byte(tt.data))
			if err == nil {
				t.Fatal("Parse() should return error")
			}
			if !errors.Is(err, entities.ErrInvalidPolicy) {
				t.Errorf("Parse() error = %v, want ErrInvalidPolicy", err)
			}
		})
	}
}

func TestPolicyParser_Parse_DefaultCategory(t *testing.T) {
	parser := NewPolicyParser()
	policy, err := parser.Parse([]byte("checks:\n  - name: notice\n    severity: low\n    paths: [NOTICE]\n"))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if policy.Checks[0].Category != "custom" {
		t.Errorf("Category = %q, want custom", policy.Checks[0].Category)
	}
}

func TestPolicyParser_ParseFile(t *testing.T) {
	parser := NewPolicyParser()
	dir := t.TempDir()
	path := filepath.Join(dir, "policy.yaml")
	if err := os.WriteFile(path, []byte("limits:\n  max_depth: 2\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	policy, err := parser.ParseFile(path)
	if err != nil {
		t.Fatalf("ParseFile() error = %v", err)
	}
	if policy.Limits.MaxDepth != 2 {
		t.Errorf("MaxDepth = %d, want 2", policy.Limits.MaxDepth)
	}

	if _, err := parser.ParseFile(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("ParseFile() should return error for missing file")
	}
}
