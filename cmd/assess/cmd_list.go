package main

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/ochairo/openssf-assess/internal/domain/entities"
)

// printChecks lists the effective catalog in declaration order
func printChecks(w io.Writer, catalog entities.Catalog) error {
	bw := bufio.NewWriter(w)

	fmt.Fprintf(bw, "Artifact checks (%d total):\n\n", len(catalog.Checks))
	for _, check := range catalog.Checks {
		fmt.Fprintf(bw, "  %-24s [%s] %s\n", check.Name, check.Severity, check.Category)
		fmt.Fprintf(bw, "  %-24s Paths: %s\n", "", strings.Join(check.Paths, ", "))
		if check.Reference != "" {
			fmt.Fprintf(bw, "  %-24s Reference: %s\n", "", check.Reference)
		}
		fmt.Fprintln(bw)
	}

	fmt.Fprintf(bw, "Languages (%d total):\n\n", len(catalog.Languages))
	for _, lang := range catalog.Languages {
		fmt.Fprintf(bw, "  %-24s %s\n", lang.Name, strings.Join(lang.Markers, ", "))
	}
	fmt.Fprintln(bw)

	fmt.Fprintf(bw, "Limits: max depth %d, max files %d\n", catalog.Limits.MaxDepth, catalog.Limits.MaxFiles)
	fmt.Fprintf(bw, "Ignored directories: %s\n", strings.Join(catalog.IgnoreDirs, ", "))

	return bw.Flush()
}
