package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/gobwas/glob"
	gitignore "github.com/monochromegane/go-gitignore"
)

var errNotDirectory = errors.New("not a directory")

// SelectOptions tunes file selection beyond extensions and ignore globs.
type SelectOptions struct {
	// UseGitignore additionally drops anything matched by <root>/.gitignore.
	UseGitignore bool
	Log          *logger
}

// resolveRoot turns root into an absolute, symlink-free directory path.
func resolveRoot(root string) (string, error) {
	if root == "" {
		root = "."
	}
	abs, err := filepath.Abs(root)
	if err != nil {
		return "", &NotFoundError{Path: root, Err: err}
	}
	resolved, err := filepath.EvalSymlinks(abs)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", &NotFoundError{Path: root}
		}
		return "", &IOError{Path: root, Err: err}
	}
	info, err := os.Stat(resolved)
	if err != nil {
		return "", &IOError{Path: root, Err: err}
	}
	if !info.IsDir() {
		return "", &NotFoundError{Path: root, Err: errNotDirectory}
	}
	return resolved, nil
}

// selectFiles walks root and returns the resolved paths of every file whose
// name ends in one of extensions and whose path matches none of ignores.
// The result has no duplicates and is sorted with comparePaths.
func selectFiles(root string, extensions, ignores []string, opts SelectOptions) ([]string, error) {
	resolvedRoot, err := resolveRoot(root)
	if err != nil {
		return nil, err
	}

	// Compile ignore globs up front so a bad pattern fails before the walk
	matchers, err := compilePatterns(ignores)
	if err != nil {
		return nil, err
	}

	if len(extensions) == 0 {
		opts.Log.Infof("no extensions requested, nothing to select under %s", resolvedRoot)
		return []string{}, nil
	}

	// Load .gitignore only when asked
	var ignoreMatcher gitignore.IgnoreMatcher
	if opts.UseGitignore {
		ignoreMatcher, err = loadGitignore(resolvedRoot, opts.Log)
		if err != nil {
			return nil, err
		}
	}

	selected := make(map[string]struct{})
	err = filepath.WalkDir(resolvedRoot, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return &IOError{Path: path, Err: err}
		}

		// Skip root directory itself
		if path == resolvedRoot {
			return nil
		}

		// Directories are only pruned by .gitignore; globs apply to files
		if d.IsDir() {
			if ignoreMatcher != nil && ignoreMatcher.Match(path, true) {
				opts.Log.Infof("skipping %s (.gitignore)", path)
				return fs.SkipDir
			}
			return nil
		}

		// --- Filtering Logic ---
		if !hasExtension(d.Name(), extensions) {
			return nil
		}

		// Follow file symlinks; the target is what gets counted
		resolved, ok, err := resolveFile(path, d)
		if err != nil {
			return err
		}
		if !ok {
			return nil
		}

		if ignoreMatcher != nil && ignoreMatcher.Match(path, false) {
			opts.Log.Infof("skipping %s (.gitignore)", path)
			return nil
		}
		if pattern, ok := matchesAnyPattern(resolved, matchers); ok {
			opts.Log.Infof("skipping %s (matches %s)", resolved, pattern)
			return nil
		}

		// Add file to set
		selected[resolved] = struct{}{}
		return nil
	})
	if err != nil {
		return nil, err
	}

	// Convert set to sorted slice
	files := make([]string, 0, len(selected))
	for path := range selected {
		files = append(files, path)
	}
	sortPaths(files)
	return files, nil
}

// hasExtension reports whether name ends with ".<ext>" for any ext.
// Comparison is case-sensitive.
func hasExtension(name string, extensions []string) bool {
	for _, ext := range extensions {
		if strings.HasSuffix(name, "."+ext) {
			return true
		}
	}
	return false
}

// resolveFile returns the resolved path of a walked entry and whether it is a
// regular file. Symlinks are followed; other special files are skipped.
func resolveFile(path string, d fs.DirEntry) (string, bool, error) {
	if d.Type().IsRegular() {
		return path, true, nil
	}
	if d.Type()&fs.ModeSymlink == 0 {
		return "", false, nil
	}

	resolved, err := filepath.EvalSymlinks(path)
	if err != nil {
		return "", false, &IOError{Path: path, Err: err}
	}
	info, err := os.Stat(resolved)
	if err != nil {
		return "", false, &IOError{Path: path, Err: err}
	}
	if !info.Mode().IsRegular() {
		return "", false, nil
	}
	return resolved, true, nil
}

type compiledPattern struct {
	source string
	glob   glob.Glob
}

// compilePatterns compiles ignore globs without path separators, so '*' and
// '**' both match across '/'.
func compilePatterns(patterns []string) ([]compiledPattern, error) {
	compiled := make([]compiledPattern, 0, len(patterns))
	for _, pattern := range patterns {
		g, err := glob.Compile(pattern)
		if err != nil {
			return nil, &PatternError{Pattern: pattern, Err: err}
		}
		compiled = append(compiled, compiledPattern{source: pattern, glob: g})
	}
	return compiled, nil
}

// matchesAnyPattern returns the first pattern matching path.
func matchesAnyPattern(path string, patterns []compiledPattern) (string, bool) {
	for _, p := range patterns {
		if p.glob.Match(path) {
			return p.source, true
		}
	}
	return "", false
}

// loadGitignore parses <root>/.gitignore. A missing file yields a nil matcher.
func loadGitignore(root string, log *logger) (gitignore.IgnoreMatcher, error) {
	gitIgnorePath := filepath.Join(root, ".gitignore")
	if _, err := os.Stat(gitIgnorePath); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			log.Infof("no .gitignore found in %s", root)
			return nil, nil
		}
		return nil, &IOError{Path: gitIgnorePath, Err: err}
	}

	matcher, err := gitignore.NewGitIgnore(gitIgnorePath, root)
	if err != nil {
		return nil, fmt.Errorf("could not parse .gitignore file %s: %w", gitIgnorePath, err)
	}
	log.Infof("using %s", gitIgnorePath)
	return matcher, nil
}
