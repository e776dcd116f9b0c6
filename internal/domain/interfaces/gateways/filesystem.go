// Package gateways defines interfaces for infrastructure access.
package gateways

import (
	"context"

	"github.com/ochairo/openssf-assess/internal/domain/entities"
)

// FileSystemGateway defines the read-only filesystem operations of an assessment
type FileSystemGateway interface {
	// InspectRoot resolves root to an absolute directory path that can be listed.
	// Fails with entities.ErrInvalidRoot or entities.ErrRootAccess.
	InspectRoot(ctx context.Context, root string) (string, error)

	// Walk visits the tree under root within the given bounds
	Walk(ctx context.Context, root string, opts entities.WalkOptions) (*entities.TreeIndex, error)

	// FindFirst returns the first candidate (in order) that exists under root.
	// A non-nil error reports soft failures on individual candidates.
	FindFirst(ctx context.Context, root string, candidates []string) (string, bool, error)

	// CountMatches counts distinct existing paths under root matching any pattern
	CountMatches(ctx context.Context, root string, patterns []string) (int, error)

	// ReferenceExists reports whether ref exists under the reference corpus directory
	ReferenceExists(ctx context.Context, referencesDir, ref string) bool
}
