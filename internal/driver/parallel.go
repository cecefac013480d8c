package driver

import (
	"context"
	"io/fs"
	"path/filepath"
	"runtime"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"
)

// Event reports per-file progress to an optional sink (the progress UI).
type Event struct {
	Path  string
	Diags int
	Err   error
}

// ListSourceFiles returns the sorted list of all source files under dir.
func ListSourceFiles(dir string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			name := d.Name()
			if name != "." && strings.HasPrefix(name, ".") {
				return filepath.SkipDir
			}
			return nil
		}
		if strings.HasSuffix(path, ".jl") {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(files)
	return files, nil
}

// AnalyzeDir analyzes every source file under dir in parallel. Each file's
// call stack and bag are private to its own run, so files are safe to fan
// out across workers; results come back in path order.
func AnalyzeDir(ctx context.Context, dir string, opts *Options, events chan<- Event) ([]Result, error) {
	files, err := ListSourceFiles(dir)
	if err != nil {
		return nil, err
	}
	return AnalyzeFiles(ctx, files, opts, events)
}

// AnalyzeFiles analyzes a fixed file list in parallel, capped at NumCPU
// workers.
func AnalyzeFiles(ctx context.Context, files []string, opts *Options, events chan<- Event) ([]Result, error) {
	results := make([]Result, len(files))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())
	for i, path := range files {
		i, path := i, path
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			res := AnalyzeFile(path, opts)
			results[i] = res
			if events != nil {
				count := 0
				if res.Bag != nil {
					count = res.Bag.Len()
				}
				events <- Event{Path: path, Diags: count, Err: res.Err}
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
