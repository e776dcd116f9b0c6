package gateways

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/ochairo/openssf-assess/internal/domain/entities"
)

// TreeWalker walks a project tree within depth and file-count bounds
type TreeWalker struct{}

// NewTreeWalker creates a new tree walker
func NewTreeWalker() *TreeWalker {
	return &TreeWalker{}
}

// InspectRoot resolves root and verifies it is a listable directory
func (w *TreeWalker) InspectRoot(_ context.Context, root string) (string, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return "", fmt.Errorf("%w: %s: %w", entities.ErrInvalidRoot, root, err)
	}

	resolved, err := filepath.EvalSymlinks(abs)
	if err != nil {
		return "", classifyRootError(err)
	}

	info, err := os.Stat(resolved)
	if err != nil {
		return "", classifyRootError(err)
	}
	if !info.IsDir() {
		return "", fmt.Errorf("%w: %s is not a directory", entities.ErrInvalidRoot, resolved)
	}

	//nolint:gosec // G304: root is the user-selected scan directory
	dir, err := os.Open(resolved)
	if err != nil {
		return "", classifyRootError(err)
	}
	//nolint:errcheck // Defer close
	defer dir.Close()

	if _, err := dir.ReadDir(1); err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("%w: %w", entities.ErrRootAccess, err)
	}

	return resolved, nil
}

func classifyRootError(err error) error {
	if errors.Is(err, fs.ErrPermission) {
		return fmt.Errorf("%w: %w", entities.ErrRootAccess, err)
	}
	return fmt.Errorf("%w: %w", entities.ErrInvalidRoot, err)
}

// Walk visits every file under root, skipping ignored directories by name.
// Exceeding MaxDepth or MaxFiles marks the index partial instead of failing.
// Unreadable entries are recorded as warnings and the walk continues.
func (w *TreeWalker) Walk(ctx context.Context, root string, opts entities.WalkOptions) (*entities.TreeIndex, error) {
	index := entities.NewTreeIndex()

	ignored := make(map[string]struct{}, len(opts.IgnoreDirs))
	for _, name := range opts.IgnoreDirs {
		ignored[name] = struct{}{}
	}

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}

		rel, relErr := filepath.Rel(root, path)
		if relErr != nil {
			return relErr
		}
		rel = filepath.ToSlash(rel)

		if err != nil {
			if path == root {
				return err
			}
			// Directory listing failed; its contents are skipped
			index.AddWarning(rel, err.Error())
			return nil
		}

		if d.IsDir() {
			if path == root {
				return nil
			}
			if _, skip := ignored[d.Name()]; skip {
				return fs.SkipDir
			}
			if opts.MaxDepth > 0 && strings.Count(rel, "/")+1 > opts.MaxDepth {
				index.Partial = true
				return fs.SkipDir
			}
			index.Dirs++
			return nil
		}

		if opts.MaxFiles > 0 && index.Files >= opts.MaxFiles {
			index.Partial = true
			return fs.SkipAll
		}

		switch {
		case d.Type()&fs.ModeSymlink != 0:
			if _, statErr := os.Stat(path); statErr != nil {
				index.AddWarning(rel, fmt.Sprintf("broken symlink: %v", statErr))
				return nil
			}
		case d.Type().IsRegular():
			if probeErr := probe(path); probeErr != nil {
				index.AddWarning(rel, probeErr.Error())
			}
		}

		index.AddFile(d.Name())
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk %s: %w", root, err)
	}

	return index, nil
}

// probe opens and closes a regular file to surface permission problems
func probe(path string) error {
	//nolint:gosec // G304: path comes from walking the scan root
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	return f.Close()
}
