package ingestion

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/hirestack/recruit-agent/internal/client"
)

// maxConcurrentReads bounds parallel file reads during resume loading.
const maxConcurrentReads = 8

// LoadResumes reads resume files into memory concurrently. Any unreadable
// file fails the whole load; a partial candidate set would silently skew
// the analysis. The returned parts are ordered by filename for a stable
// multipart encoding.
func LoadResumes(ctx context.Context, paths []string) ([]client.FilePart, error) {
	parts := make([]client.FilePart, len(paths))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentReads)
	for i, path := range paths {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			content, err := os.ReadFile(path)
			if err != nil {
				return fmt.Errorf("failed to read resume %s: %w", path, err)
			}
			if len(content) == 0 {
				return fmt.Errorf("resume %s is empty", path)
			}
			parts[i] = client.FilePart{Name: filepath.Base(path), Content: content}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	sort.Slice(parts, func(i, j int) bool { return parts[i].Name < parts[j].Name })
	return parts, nil
}
