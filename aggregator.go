package main

import (
	"context"
	"path/filepath"
	"runtime"
	"slices"
	"strings"
	"sync"
)

// Aggregator turns a selected file set into line-count views. Each view
// counts its files afresh.
type Aggregator struct {
	root      string
	workers   int
	progress  ProgressFunc
	countFile func(path string) (int, error)
}

// AggregatorOption configures an Aggregator.
type AggregatorOption func(*Aggregator)

// WithWorkers sets the number of concurrent counters. Zero or less means
// runtime.NumCPU().
func WithWorkers(n int) AggregatorOption {
	return func(a *Aggregator) { a.workers = n }
}

// WithProgress installs a progress observer, called once per counted file
// from a single goroutine.
func WithProgress(fn ProgressFunc) AggregatorOption {
	return func(a *Aggregator) { a.progress = fn }
}

// WithLineCounter replaces the per-file counting function.
func WithLineCounter(fn func(path string) (int, error)) AggregatorOption {
	return func(a *Aggregator) { a.countFile = fn }
}

// NewAggregator creates an Aggregator whose directory labels are relative to
// root.
func NewAggregator(root string, opts ...AggregatorOption) *Aggregator {
	a := &Aggregator{
		root:      filepath.Clean(root),
		workers:   1,
		countFile: countLinesInFile,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// CountAll returns the total number of lines across files.
func (a *Aggregator) CountAll(ctx context.Context, files []string) (int, error) {
	files = uniquePaths(files)
	counts, err := a.countEach(ctx, files)
	if err != nil {
		return 0, err
	}

	total := 0
	for _, lines := range counts {
		total += lines
	}
	return total, nil
}

// CountByFile groups files by parent directory. Directories and the files
// within each directory are in comparePaths order.
func (a *Aggregator) CountByFile(ctx context.Context, files []string) ([]DirectoryFiles, error) {
	files = uniquePaths(files)
	counts, err := a.countEach(ctx, files)
	if err != nil {
		return nil, err
	}

	dirs, groups := groupByDirectory(files)
	result := make([]DirectoryFiles, 0, len(dirs))
	for _, dir := range dirs {
		paths := groups[dir]
		entries := make([]FileCount, 0, len(paths))
		for _, path := range paths {
			entries = append(entries, FileCount{
				Name:     filepath.Base(path),
				Path:     path,
				Language: languageForFile(path),
				Lines:    counts[path],
			})
		}
		result = append(result, DirectoryFiles{
			Dir:     dir,
			Display: a.displayDir(dir),
			Files:   entries,
		})
	}
	return result, nil
}

// CountByDirectory sums files and lines per parent directory and across all
// directories.
func (a *Aggregator) CountByDirectory(ctx context.Context, files []string) (*DirectoryReport, error) {
	files = uniquePaths(files)
	counts, err := a.countEach(ctx, files)
	if err != nil {
		return nil, err
	}

	dirs, groups := groupByDirectory(files)
	report := &DirectoryReport{
		Directories: make([]DirectoryTotal, 0, len(dirs)),
		Total:       DirectoryTotal{Display: "Total"},
	}
	for _, dir := range dirs {
		row := DirectoryTotal{Dir: dir, Display: a.displayDir(dir)}
		for _, path := range groups[dir] {
			row.Files++
			row.Lines += counts[path]
		}
		report.Total.Files += row.Files
		report.Total.Lines += row.Lines
		report.Directories = append(report.Directories, row)
	}
	return report, nil
}

// displayDir shows dir relative to the root when it lies under it.
func (a *Aggregator) displayDir(dir string) string {
	rel, err := filepath.Rel(a.root, dir)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return dir
	}
	return rel
}

type countResult struct {
	path  string
	lines int
	err   error
}

// countEach counts every file on a worker pool. The first error cancels the
// remaining work and is returned; progress is reported from this goroutine
// only.
func (a *Aggregator) countEach(ctx context.Context, files []string) (map[string]int, error) {
	counts := make(map[string]int, len(files))
	if len(files) == 0 {
		return counts, nil
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	// Determine number of workers
	numWorkers := a.workers
	if numWorkers <= 0 {
		numWorkers = runtime.NumCPU()
	}
	if numWorkers > len(files) {
		numWorkers = len(files)
	}

	jobs := make(chan string, len(files))
	results := make(chan countResult, len(files))
	var wg sync.WaitGroup

	// Start workers
	for w := 0; w < numWorkers; w++ {
		wg.Add(1)
		go a.countWorker(ctx, jobs, results, &wg)
	}

	// Send jobs
	for _, path := range files {
		jobs <- path
	}
	close(jobs)

	// Close results once every worker has returned
	go func() {
		wg.Wait()
		close(results)
	}()

	var firstErr error
	processed := 0
	// Collect results; keep draining after the first error so workers exit
	for res := range results {
		if firstErr != nil {
			continue
		}
		if res.err != nil {
			firstErr = res.err
			cancel()
			continue
		}
		counts[res.path] = res.lines
		processed++
		if a.progress != nil {
			a.progress(Progress{Processed: processed, Total: len(files)})
		}
	}

	if firstErr != nil {
		return nil, firstErr
	}
	return counts, nil
}

func (a *Aggregator) countWorker(ctx context.Context, jobs <-chan string, results chan<- countResult, wg *sync.WaitGroup) {
	defer wg.Done()
	for path := range jobs {
		// Bail out quickly once the run is cancelled
		if err := ctx.Err(); err != nil {
			results <- countResult{path: path, err: err}
			continue
		}
		lines, err := a.countFile(path)
		results <- countResult{path: path, lines: lines, err: err}
	}
}

// groupByDirectory returns the parent directories of files in comparePaths
// order and the sorted files of each.
func groupByDirectory(files []string) ([]string, map[string][]string) {
	groups := make(map[string][]string)
	for _, path := range files {
		dir := filepath.Dir(path)
		groups[dir] = append(groups[dir], path)
	}

	dirs := make([]string, 0, len(groups))
	for dir, paths := range groups {
		sortPaths(paths)
		dirs = append(dirs, dir)
	}
	sortPaths(dirs)
	return dirs, groups
}

// uniquePaths returns files without duplicates, in comparePaths order.
func uniquePaths(files []string) []string {
	unique := slices.Clone(files)
	sortPaths(unique)
	return slices.Compact(unique)
}

// comparePaths orders paths component by component, so a directory sorts
// before its children and "a/b" before "a-b".
func comparePaths(a, b string) int {
	sep := string(filepath.Separator)
	return slices.Compare(strings.Split(a, sep), strings.Split(b, sep))
}

func sortPaths(paths []string) {
	slices.SortFunc(paths, comparePaths)
}
