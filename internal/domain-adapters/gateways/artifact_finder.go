package gateways

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// ArtifactFinder provides utilities for locating security artifacts under a root
type ArtifactFinder struct{}

// NewArtifactFinder creates a new artifact finder
func NewArtifactFinder() *ArtifactFinder {
	return &ArtifactFinder{}
}

// FindFirst returns the first candidate that exists, trying candidates in order.
// Glob candidates (e.g. ".github/workflows/*.yml") resolve to their lexically first match.
// Errors other than "does not exist" are joined and returned alongside the result.
func (f *ArtifactFinder) FindFirst(ctx context.Context, root string, candidates []string) (string, bool, error) {
	var errs []error

	for _, candidate := range candidates {
		if err := ctx.Err(); err != nil {
			return "", false, err
		}

		matches, err := f.resolve(root, candidate)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		if len(matches) > 0 {
			return matches[0], true, errors.Join(errs...)
		}
	}

	return "", false, errors.Join(errs...)
}

// CountMatches counts distinct existing paths matching any of the patterns
func (f *ArtifactFinder) CountMatches(ctx context.Context, root string, patterns []string) (int, error) {
	seen := make(map[string]struct{})
	var errs []error

	for _, pattern := range patterns {
		if err := ctx.Err(); err != nil {
			return 0, err
		}

		matches, err := f.resolve(root, pattern)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		for _, m := range matches {
			seen[m] = struct{}{}
		}
	}

	return len(seen), errors.Join(errs...)
}

// resolve expands one candidate into existing slash-separated paths relative to root
func (f *ArtifactFinder) resolve(root, candidate string) ([]string, error) {
	full := filepath.Join(root, filepath.FromSlash(candidate))

	if !strings.ContainsAny(candidate, `*?[\`) {
		if _, err := os.Stat(full); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return nil, nil
			}
			return nil, fmt.Errorf("failed to check %s: %w", candidate, err)
		}
		return []string{candidate}, nil
	}

	// filepath.Glob returns matches in lexical order and only fails on bad patterns
	matches, err := filepath.Glob(full)
	if err != nil {
		return nil, fmt.Errorf("failed to glob pattern %s: %w", candidate, err)
	}

	var out []string
	for _, m := range matches {
		// Glob uses Lstat; drop dangling symlinks
		if _, err := os.Stat(m); err != nil {
			continue
		}
		rel, err := filepath.Rel(root, m)
		if err != nil {
			continue
		}
		out = append(out, filepath.ToSlash(rel))
	}

	return out, nil
}
