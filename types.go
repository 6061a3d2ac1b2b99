package main

// FileCount holds the line count of a single selected file.
type FileCount struct {
	Name     string `json:"name" yaml:"name"`
	Path     string `json:"path" yaml:"path"`
	Language string `json:"language,omitempty" yaml:"language,omitempty"`
	Lines    int    `json:"lines" yaml:"lines"`
}

// DirectoryFiles is one group of the per-file view: a directory and its files
// in path order.
type DirectoryFiles struct {
	Dir     string      `json:"dir" yaml:"dir"`
	Display string      `json:"display" yaml:"display"`
	Files   []FileCount `json:"files" yaml:"files"`
}

// DirectoryTotal is one row of the per-directory view.
type DirectoryTotal struct {
	Dir     string `json:"dir,omitempty" yaml:"dir,omitempty"`
	Display string `json:"display" yaml:"display"`
	Files   int    `json:"files" yaml:"files"`
	Lines   int    `json:"lines" yaml:"lines"`
}

// DirectoryReport is the per-directory view. Total is kept apart from the
// sorted rows.
type DirectoryReport struct {
	Directories []DirectoryTotal `json:"directories" yaml:"directories"`
	Total       DirectoryTotal   `json:"total" yaml:"total"`
}

// Progress is reported once per counted file.
type Progress struct {
	Processed int
	Total     int
}

// ProgressFunc observes counting progress. It must not block for long.
type ProgressFunc func(Progress)

// Report collects the views produced by one run for machine-readable output.
type Report struct {
	Root        string            `json:"root" yaml:"root"`
	TotalFiles  int               `json:"total_files" yaml:"total_files"`
	TotalLines  *int              `json:"total_lines,omitempty" yaml:"total_lines,omitempty"`
	// Files and Directories are nil when their view was not requested.
	Files       *[]DirectoryFiles `json:"files,omitempty" yaml:"files,omitempty"`
	Directories *DirectoryReport  `json:"directories,omitempty" yaml:"directories,omitempty"`
}
