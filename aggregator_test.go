package main

import (
	"context"
	"errors"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func selectSample(t *testing.T, root string) []string {
	t.Helper()
	files, err := selectFiles(root, []string{"py", "txt"}, nil, SelectOptions{})
	require.NoError(t, err)
	require.Len(t, files, 5)
	return files
}

func TestAggregator_CountAll(t *testing.T) {
	root := sampleTree(t)
	files := selectSample(t, root)

	total, err := NewAggregator(root).CountAll(context.Background(), files)
	require.NoError(t, err)
	assert.Equal(t, 7, total)
}

func TestAggregator_CountAllEmpty(t *testing.T) {
	total, err := NewAggregator(t.TempDir()).CountAll(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, 0, total)
}

func TestAggregator_CountByFile(t *testing.T) {
	root := sampleTree(t)
	files := selectSample(t, root)

	groups, err := NewAggregator(root).CountByFile(context.Background(), files)
	require.NoError(t, err)
	require.Len(t, groups, 3)

	assert.Equal(t, ".", groups[0].Display)
	assert.Equal(t, root, groups[0].Dir)
	assert.Equal(t, []string{"file1.py", "file4.txt"}, fileNames(groups[0]))
	assert.Equal(t, []int{2, 1}, fileLines(groups[0]))

	assert.Equal(t, "dir1", groups[1].Display)
	assert.Equal(t, []string{"file2.py", "ignore_me.py"}, fileNames(groups[1]))
	assert.Equal(t, []int{1, 3}, fileLines(groups[1]))

	assert.Equal(t, "dir2", groups[2].Display)
	assert.Equal(t, []string{"file3.py"}, fileNames(groups[2]))
	assert.Equal(t, []int{0}, fileLines(groups[2]))

	assert.Contains(t, groups[0].Files[0].Language, "Python")
}

func TestAggregator_CountByDirectory(t *testing.T) {
	root := sampleTree(t)
	files := selectSample(t, root)

	report, err := NewAggregator(root).CountByDirectory(context.Background(), files)
	require.NoError(t, err)

	assert.Equal(t, []DirectoryTotal{
		{Dir: root, Display: ".", Files: 2, Lines: 3},
		{Dir: filepath.Join(root, "dir1"), Display: "dir1", Files: 2, Lines: 4},
		{Dir: filepath.Join(root, "dir2"), Display: "dir2", Files: 1, Lines: 0},
	}, report.Directories)
	assert.Equal(t, DirectoryTotal{Display: "Total", Files: 5, Lines: 7}, report.Total)
}

func TestAggregator_NestedDisplay(t *testing.T) {
	root := resolvedTempDir(t)
	writeTree(t, root, map[string]string{
		"a/b/c.go": "package c\n",
		"a-b/d.go": "package d\n",
		"a/e.go":   "package e\n",
	})
	files, err := selectFiles(root, []string{"go"}, nil, SelectOptions{})
	require.NoError(t, err)

	report, err := NewAggregator(root).CountByDirectory(context.Background(), files)
	require.NoError(t, err)

	var displays []string
	for _, row := range report.Directories {
		displays = append(displays, row.Display)
	}
	assert.Equal(t, []string{"a", filepath.Join("a", "b"), "a-b"}, displays)
}

func TestAggregator_DirectoryOutsideRoot(t *testing.T) {
	root := sampleTree(t)
	files := selectSample(t, root)
	sub := filepath.Join(root, "dir1")

	groups, err := NewAggregator(sub).CountByFile(context.Background(), files)
	require.NoError(t, err)

	assert.Equal(t, root, groups[0].Display)
	assert.Equal(t, ".", groups[1].Display)
	assert.Equal(t, filepath.Join(root, "dir2"), groups[2].Display)
}

func TestAggregator_DuplicateInput(t *testing.T) {
	root := sampleTree(t)
	files := selectSample(t, root)
	doubled := append(append([]string{}, files...), files...)

	total, err := NewAggregator(root).CountAll(context.Background(), doubled)
	require.NoError(t, err)
	assert.Equal(t, 7, total)

	report, err := NewAggregator(root).CountByDirectory(context.Background(), doubled)
	require.NoError(t, err)
	assert.Equal(t, 5, report.Total.Files)
}

func TestAggregator_ErrorIsFatal(t *testing.T) {
	root := sampleTree(t)
	files := selectSample(t, root)
	errBoom := errors.New("boom")
	failing := filepath.Join(root, "dir1", "file2.py")

	counter := func(path string) (int, error) {
		if path == failing {
			return 0, &IOError{Path: path, Err: errBoom}
		}
		return countLinesInFile(path)
	}

	for _, workers := range []int{1, 4} {
		agg := NewAggregator(root, WithWorkers(workers), WithLineCounter(counter))

		total, err := agg.CountAll(context.Background(), files)
		assert.ErrorIs(t, err, errBoom)
		assert.Zero(t, total)

		groups, err := agg.CountByFile(context.Background(), files)
		assert.ErrorIs(t, err, errBoom)
		assert.Nil(t, groups)

		report, err := agg.CountByDirectory(context.Background(), files)
		assert.ErrorIs(t, err, errBoom)
		assert.Nil(t, report)
	}
}

func TestAggregator_DecodeErrorSurfaces(t *testing.T) {
	root := sampleTree(t)
	writeTree(t, root, map[string]string{"dir2/bad.py": "\xff\n"})
	files, err := selectFiles(root, []string{"py"}, nil, SelectOptions{})
	require.NoError(t, err)

	_, err = NewAggregator(root).CountAll(context.Background(), files)

	var decodeErr *DecodeError
	assert.True(t, errors.As(err, &decodeErr), "expected DecodeError, got %T", err)
}

func TestAggregator_CancelledContext(t *testing.T) {
	root := sampleTree(t)
	files := selectSample(t, root)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewAggregator(root, WithWorkers(2)).CountAll(ctx, files)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestAggregator_ParallelMatchesSequential(t *testing.T) {
	root := sampleTree(t)
	files := selectSample(t, root)
	ctx := context.Background()

	seqGroups, err := NewAggregator(root, WithWorkers(1)).CountByFile(ctx, files)
	require.NoError(t, err)
	seqReport, err := NewAggregator(root, WithWorkers(1)).CountByDirectory(ctx, files)
	require.NoError(t, err)

	for i := 0; i < 10; i++ {
		groups, err := NewAggregator(root, WithWorkers(0)).CountByFile(ctx, files)
		require.NoError(t, err)
		assert.Equal(t, seqGroups, groups)

		report, err := NewAggregator(root, WithWorkers(8)).CountByDirectory(ctx, files)
		require.NoError(t, err)
		assert.Equal(t, seqReport, report)
	}
}

func TestAggregator_ProgressIsMonotonic(t *testing.T) {
	root := sampleTree(t)
	files := selectSample(t, root)

	var (
		mu      sync.Mutex
		updates []Progress
	)
	progress := func(p Progress) {
		mu.Lock()
		defer mu.Unlock()
		updates = append(updates, p)
	}

	total, err := NewAggregator(root, WithWorkers(4), WithProgress(progress)).CountAll(context.Background(), files)
	require.NoError(t, err)
	assert.Equal(t, 7, total)

	require.Len(t, updates, len(files))
	for i, p := range updates {
		assert.Equal(t, i+1, p.Processed)
		assert.Equal(t, len(files), p.Total)
	}
}

func TestComparePaths(t *testing.T) {
	a := filepath.Join("root", "a")
	ab := filepath.Join("root", "a", "b")
	aDash := filepath.Join("root", "a-b")

	assert.Equal(t, 0, comparePaths(a, a))
	assert.Negative(t, comparePaths(a, ab))
	assert.Negative(t, comparePaths(ab, aDash))
	assert.Positive(t, comparePaths(aDash, a))
}

func fileNames(group DirectoryFiles) []string {
	names := make([]string, 0, len(group.Files))
	for _, f := range group.Files {
		names = append(names, f.Name)
	}
	return names
}

func fileLines(group DirectoryFiles) []int {
	lines := make([]int, 0, len(group.Files))
	for _, f := range group.Files {
		lines = append(lines, f.Lines)
	}
	return lines
}
