package entities

// Policy is a user-supplied overlay on the default catalog.
// Zero values mean "keep the default".
type Policy struct {
	Limits          Limits
	IgnoreDirs      []string // replaces the defaults when non-nil
	ExtraIgnoreDirs []string
	Severities      map[string]Severity
	Weights         map[Severity]int
	Disable         []string
	References      map[string]string
	Checks          []ArtifactCheck
	Languages       []LanguageMarker
}
