package main

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/atotto/clipboard"
	"github.com/jedib0t/go-pretty/v6/text"
)

// runLineCount selects, counts and renders according to opts. Errors are
// returned untouched for the caller to render.
func runLineCount(ctx context.Context, opts Options, stdout, stderr io.Writer) error {
	log := newLogger(stderr, opts.Verbose)

	format, err := validateFormat(opts.Format)
	if err != nil {
		return err
	}

	root, err := resolveRoot(opts.RootDir)
	if err != nil {
		return err
	}

	// Let the user pick extensions when none were given
	extensions := opts.Extensions
	if opts.Interactive && len(extensions) == 0 {
		extensions, err = runExtensionPicker(root)
		if err != nil {
			return err
		}
		if extensions == nil {
			fmt.Fprintln(stdout, "Interactive selection aborted.")
			return nil
		}
	}

	// Show the banner before any slow work
	if format == formatTable {
		renderBanner(stdout)
	}

	files, err := selectFiles(root, extensions, opts.Ignore, SelectOptions{
		UseGitignore: opts.Gitignore,
		Log:          log,
	})
	if err != nil {
		return err
	}
	log.Infof("selected %d file(s) under %s", len(files), root)
	if len(extensions) == 0 {
		log.Warnf("no extensions given, nothing was counted (use -e to select files)")
	}

	report := Report{Root: root, TotalFiles: len(files)}

	// The total is only shown when no table was requested
	if !opts.FileWise && !opts.DirectoryWise {
		total, err := countTotal(ctx, root, files, opts, format, stderr)
		if err != nil {
			return err
		}
		report.TotalLines = &total
	}

	agg := NewAggregator(root, WithWorkers(opts.Threads))
	if opts.FileWise {
		groups, err := agg.CountByFile(ctx, files)
		if err != nil {
			return err
		}
		report.Files = &groups
	}
	if opts.DirectoryWise {
		report.Directories, err = agg.CountByDirectory(ctx, files)
		if err != nil {
			return err
		}
	}

	// Render once, then dispatch to stdout, clipboard and PDF
	var out bytes.Buffer
	if err := renderReport(&out, report, format); err != nil {
		return err
	}
	if _, err := stdout.Write(out.Bytes()); err != nil {
		return fmt.Errorf("error writing output: %w", err)
	}

	// Copy to clipboard if requested
	if opts.Clipboard {
		if err := clipboard.WriteAll(text.StripEscape(out.String())); err != nil {
			log.Warnf("could not copy output to clipboard: %v", err)
		} else {
			log.Infof("output copied to clipboard")
		}
	}

	if opts.PDFFile != "" {
		if err := generatePDF(report, opts.PDFFile); err != nil {
			return err
		}
		log.Infof("saved PDF report to %s", opts.PDFFile)
	}

	return nil
}

// countTotal counts the grand total, with a progress bar when stderr is a
// terminal and table output was requested.
func countTotal(ctx context.Context, root string, files []string, opts Options, format string, stderr io.Writer) (int, error) {
	aggOpts := []AggregatorOption{WithWorkers(opts.Threads)}

	var bar *progressBar
	if format == formatTable && !opts.NoProgress && isTerminalWriter(stderr) {
		bar = newProgressBar(stderr, "Counting lines...")
		aggOpts = append(aggOpts, WithProgress(bar.Update))
	}

	total, err := NewAggregator(root, aggOpts...).CountAll(ctx, files)
	if bar != nil {
		bar.Stop(err)
	}
	return total, err
}
