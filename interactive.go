package main

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"

	fuzzyfinder "github.com/ktr0731/go-fuzzyfinder"
)

// extensionStat is one candidate offered by the extension picker.
type extensionStat struct {
	Ext   string
	Files int
}

// discoverExtensions lists the extensions of files under root, most common
// first. Hidden directories are not entered.
func discoverExtensions(root string) ([]extensionStat, error) {
	counts := make(map[string]int)
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return &IOError{Path: path, Err: err}
		}
		if path == root {
			return nil
		}
		if d.IsDir() {
			if isHidden(d.Name()) {
				return fs.SkipDir
			}
			return nil
		}
		ext := strings.TrimPrefix(filepath.Ext(d.Name()), ".")
		if ext != "" {
			counts[ext]++
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	stats := make([]extensionStat, 0, len(counts))
	for ext, n := range counts {
		stats = append(stats, extensionStat{Ext: ext, Files: n})
	}
	sort.Slice(stats, func(i, j int) bool {
		if stats[i].Files != stats[j].Files {
			return stats[i].Files > stats[j].Files
		}
		return stats[i].Ext < stats[j].Ext
	})
	return stats, nil
}

// runExtensionPicker lets the user choose extensions with a fuzzy finder.
// A nil slice and nil error mean the user aborted.
func runExtensionPicker(root string) ([]string, error) {
	candidates, err := discoverExtensions(root)
	if err != nil {
		return nil, err
	}
	if len(candidates) == 0 {
		return nil, fmt.Errorf("no file extensions found under %s", root)
	}

	idx, err := fuzzyfinder.FindMulti(
		candidates,
		func(i int) string {
			return candidates[i].Ext
		},
		fuzzyfinder.WithPreviewWindow(func(i, w, h int) string {
			if i == -1 {
				return "Select extensions to count. Press Tab to multi-select, Enter to confirm."
			}
			return fmt.Sprintf("Extension: .%s\nFiles: %d", candidates[i].Ext, candidates[i].Files)
		}),
	)
	if err != nil {
		if errors.Is(err, fuzzyfinder.ErrAbort) {
			return nil, nil
		}
		return nil, fmt.Errorf("fuzzy finder error: %w", err)
	}

	selected := make([]string, len(idx))
	for i, index := range idx {
		selected[i] = candidates[index].Ext
	}
	return selected, nil
}

// isHidden reports whether a base name starts with '.'.
func isHidden(name string) bool {
	if name == "." || name == ".." {
		return false
	}
	return len(name) > 0 && name[0] == '.'
}
