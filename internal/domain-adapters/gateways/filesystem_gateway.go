// Package gateways implements the domain gateway interfaces against the local filesystem.
package gateways

import (
	"context"
	"os"
	"path/filepath"

	"github.com/ochairo/openssf-assess/internal/domain/entities"
	"github.com/ochairo/openssf-assess/internal/domain/interfaces/gateways"
)

// fileSystemGateway implements the FileSystemGateway interface by composing
// the tree walker and the artifact finder
type fileSystemGateway struct {
	walker *TreeWalker
	finder *ArtifactFinder
}

// NewFileSystemGateway creates a new filesystem gateway with all dependencies
func NewFileSystemGateway() gateways.FileSystemGateway {
	return &fileSystemGateway{
		walker: NewTreeWalker(),
		finder: NewArtifactFinder(),
	}
}

// NewFileSystemGatewayWithDeps creates a filesystem gateway with custom dependencies
func NewFileSystemGatewayWithDeps(walker *TreeWalker, finder *ArtifactFinder) gateways.FileSystemGateway {
	return &fileSystemGateway{
		walker: walker,
		finder: finder,
	}
}

// InspectRoot resolves and validates the scan root
func (g *fileSystemGateway) InspectRoot(ctx context.Context, root string) (string, error) {
	return g.walker.InspectRoot(ctx, root)
}

// Walk performs the bounded tree walk
func (g *fileSystemGateway) Walk(ctx context.Context, root string, opts entities.WalkOptions) (*entities.TreeIndex, error) {
	return g.walker.Walk(ctx, root, opts)
}

// FindFirst locates the first existing candidate path
func (g *fileSystemGateway) FindFirst(ctx context.Context, root string, candidates []string) (string, bool, error) {
	return g.finder.FindFirst(ctx, root, candidates)
}

// CountMatches counts existing paths matching the patterns
func (g *fileSystemGateway) CountMatches(ctx context.Context, root string, patterns []string) (int, error) {
	return g.finder.CountMatches(ctx, root, patterns)
}

// ReferenceExists is a best-effort existence check inside the reference corpus
func (g *fileSystemGateway) ReferenceExists(_ context.Context, referencesDir, ref string) bool {
	_, err := os.Stat(filepath.Join(referencesDir, filepath.FromSlash(ref)))
	return err == nil
}
