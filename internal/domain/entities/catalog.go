// Package entities defines core domain models and data structures.
package entities

// LanguageMarker declares how a language or ecosystem is recognized
type LanguageMarker struct {
	Name           string
	Markers        []string // basenames or basename globs, e.g. "go.mod", "*.csproj"
	PackageManager string
	AuditTool      string // optional dependency audit tool
	AuditRationale string
}

// ArtifactCheck is a named existence test for a security-relevant file
type ArtifactCheck struct {
	Name      string
	Category  string
	Paths     []string // candidate paths relative to the scan root, globs allowed
	Severity  Severity
	Rationale string
	Reference string // path into the reference corpus, empty when none
}

// CISystem declares the files that indicate a CI provider
type CISystem struct {
	Name  string
	Paths []string
}

// Limits bounds the tree walk
type Limits struct {
	MaxDepth int
	MaxFiles int
}

// Catalog is the immutable check configuration for one assessment run
type Catalog struct {
	Languages     []LanguageMarker
	Checks        []ArtifactCheck
	CISystems     []CISystem
	WorkflowGlobs []string
	IgnoreDirs    []string
	Limits        Limits
	Weights       map[Severity]int
}

// Check looks up an artifact check by name
func (c Catalog) Check(name string) (ArtifactCheck, bool) {
	for _, check := range c.Checks {
		if check.Name == name {
			return check, true
		}
	}
	return ArtifactCheck{}, false
}

// Weight returns the score weight of a severity (1 when unset)
func (c Catalog) Weight(s Severity) int {
	if w, ok := c.Weights[s]; ok {
		return w
	}
	return 1
}

// Clone returns a deep copy so overlays never mutate the source catalog
func (c Catalog) Clone() Catalog {
	out := Catalog{
		Languages:     make([]LanguageMarker, len(c.Languages)),
		Checks:        make([]ArtifactCheck, len(c.Checks)),
		CISystems:     make([]CISystem, len(c.CISystems)),
		WorkflowGlobs: append([]string(nil), c.WorkflowGlobs...),
		IgnoreDirs:    append([]string(nil), c.IgnoreDirs...),
		Limits:        c.Limits,
		Weights:       make(map[Severity]int, len(c.Weights)),
	}
	for i, lang := range c.Languages {
		lang.Markers = append([]string(nil), lang.Markers...)
		out.Languages[i] = lang
	}
	for i, check := range c.Checks {
		check.Paths = append([]string(nil), check.Paths...)
		out.Checks[i] = check
	}
	for i, ci := range c.CISystems {
		ci.Paths = append([]string(nil), ci.Paths...)
		out.CISystems[i] = ci
	}
	for k, v := range c.Weights {
		out.Weights[k] = v
	}
	return out
}
