package report

import (
	"bufio"
	"fmt"
	"io"
	"sort"

	"github.com/ochairo/openssf-assess/internal/domain/entities"
)

// WriteMarkdown writes a human-readable summary of the report
func WriteMarkdown(w io.Writer, r *entities.AssessmentReport) error {
	bw := bufio.NewWriter(w)

	fmt.Fprintf(bw, "# OpenSSF Assessment Report\n\n")
	fmt.Fprintf(bw, "Root: `%s`\n\n", r.Root)
	if r.Partial {
		fmt.Fprintf(bw, "> Traversal stopped at a depth or file limit; language detection may be incomplete.\n\n")
	}

	fmt.Fprintf(bw, "## Score: %d / 100 (%s)\n\n", r.Score.Value, r.Score.Grade)
	fmt.Fprintf(bw, "%s (%d of %d weighted points).\n\n", r.Score.Assessment, r.Score.ChecksPassed, r.Score.TotalChecks)

	fmt.Fprintf(bw, "### Summary\n")
	fmt.Fprintf(bw, "- Critical: %d\n", r.Summary.Critical)
	fmt.Fprintf(bw, "- High:     %d\n", r.Summary.High)
	fmt.Fprintf(bw, "- Medium:   %d\n", r.Summary.Medium)
	fmt.Fprintf(bw, "- Low:      %d\n\n", r.Summary.Low)

	fmt.Fprintf(bw, "## Languages\n\n")
	langs := enabled(r.Languages)
	if len(langs) == 0 {
		fmt.Fprintf(bw, "No languages detected.\n\n")
	} else {
		for _, e := range r.Ecosystems {
			fmt.Fprintf(bw, "- %s: %s, audit with `%s`\n", e.Language, e.PackageManager, e.AuditTool)
		}
		fmt.Fprintf(bw, "\n")
	}

	fmt.Fprintf(bw, "## CI\n\n")
	systems := enabled(r.CI.Systems)
	if len(systems) == 0 {
		fmt.Fprintf(bw, "No CI configuration detected.\n\n")
	} else {
		for _, s := range systems {
			fmt.Fprintf(bw, "- %s\n", s)
		}
		fmt.Fprintf(bw, "- GitHub workflows: %d\n\n", r.CI.Workflows)
	}

	fmt.Fprintf(bw, "## Recommendations\n\n")
	if len(r.Recommendations) == 0 {
		fmt.Fprintf(bw, "No gaps detected.\n")
	}
	for _, rec := range r.Recommendations {
		fmt.Fprintf(bw, "### [%s] %s\n", rec.Severity, rec.Name)
		fmt.Fprintf(bw, "- Category: %s\n", rec.Category)
		fmt.Fprintf(bw, "- Why: %s\n", rec.Rationale)
		if rec.Reference != nil {
			fmt.Fprintf(bw, "- Reference: %s\n", *rec.Reference)
		}
		fmt.Fprintf(bw, "\n")
	}

	if len(r.Warnings) > 0 {
		fmt.Fprintf(bw, "## Warnings\n\n")
		for _, warn := range r.Warnings {
			fmt.Fprintf(bw, "- `%s`: %s\n", warn.Path, warn.Message)
		}
	}

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("failed to write markdown report: %w", err)
	}
	return nil
}

func enabled(flags map[string]bool) []string {
	var out []string
	for name, on := range flags {
		if on {
			out = append(out, name)
		}
	}
	sort.Strings(out)
	return out
}
