package entities

// AssessmentReport is the result of assessing one scan root
type AssessmentReport struct {
	Root            string
	Partial         bool // traversal stopped at a depth or file-count bound
	Languages       map[string]bool
	Ecosystems      []Ecosystem
	CI              CIReport
	Artifacts       []ArtifactResult
	Recommendations []Recommendation
	Summary         Summary
	Score           Score
	Warnings        []Warning
}

// Ecosystem describes tooling for a detected language
type Ecosystem struct {
	Language       string
	PackageManager string
	AuditTool      string
	Rationale      string
}

// CIReport lists the CI providers found at the root
type CIReport struct {
	Systems   map[string]bool
	Workflows int // number of GitHub Actions workflow files
}

// ArtifactResult is the outcome of one ArtifactCheck
type ArtifactResult struct {
	Name     string
	Category string
	Present  bool
	Severity Severity
	Path     string // first matching candidate, empty when absent
}

// Recommendation is emitted for every absent artifact
type Recommendation struct {
	Name      string
	Category  string
	Severity  Severity
	Rationale string
	Reference *string // nil when no usable reference exists
}

// Summary counts recommendations per severity
type Summary struct {
	Critical int
	High     int
	Medium   int
	Low      int
}

// Add increments the bucket for s
func (s *Summary) Add(sev Severity) {
	switch sev {
	case SeverityCritical:
		s.Critical++
	case SeverityHigh:
		s.High++
	case SeverityMedium:
		s.Medium++
	case SeverityLow:
		s.Low++
	}
}

// Total returns the sum of all buckets
func (s Summary) Total() int {
	return s.Critical + s.High + s.Medium + s.Low
}

// Score is a weighted posture score over the artifact checks
type Score struct {
	Value        int // 0-100
	Grade        string
	Assessment   string
	ChecksPassed int
	TotalChecks  int
}

// Warning is a non-fatal problem hit while reading the tree
type Warning struct {
	Path    string
	Message string
}
