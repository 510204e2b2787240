package driver

import (
	"context"
	"io/fs"
	"path/filepath"
	"runtime"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"

	"mview/internal/source"
)

// ExpandDirResult is one file's outcome from a directory expansion. LoadErr
// is set when the file could not be read; the other fields are then zero.
type ExpandDirResult struct {
	Path    string
	LoadErr error
	Result  *ExpandResult
}

// listViewFiles returns all *.mv files under dir, sorted for deterministic
// output order.
func listViewFiles(dir string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.HasSuffix(path, ".mv") {
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

// ExpandDir expands every *.mv file under dir in parallel. Each file gets its
// own bag; the caller aggregates. Files are preloaded serially so the FileSet
// is never written concurrently.
func ExpandDir(ctx context.Context, dir string, opts ExpandOptions, jobs int) (*source.FileSet, []ExpandDirResult, error) {
	files, err := listViewFiles(dir)
	if err != nil {
		return nil, nil, err
	}

	fileSet := source.NewFileSet()
	fileSet.SetBaseDir(dir)
	if len(files) == 0 {
		return fileSet, nil, nil
	}

	fileIDs := make(map[string]source.FileID, len(files))
	loadErrors := make(map[string]error, len(files))
	for _, path := range files {
		fileID, err := fileSet.Load(path)
		if err != nil {
			loadErrors[path] = err
			continue
		}
		fileIDs[path] = fileID
	}

	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	results := make([]ExpandDirResult, len(files))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(files)))
	for i, path := range files {
		i, path := i, path
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}

			if loadErr, hadError := loadErrors[path]; hadError {
				results[i] = ExpandDirResult{Path: path, LoadErr: loadErr}
				return nil
			}

			res, err := ExpandFile(fileSet, fileSet.Get(fileIDs[path]), opts)
			if err != nil {
				return err
			}
			results[i] = ExpandDirResult{Path: path, Result: res}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return fileSet, results, err
	}
	return fileSet, results, nil
}
