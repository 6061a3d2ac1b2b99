package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateFormat(t *testing.T) {
	for input, want := range map[string]string{
		"":      formatTable,
		"table": formatTable,
		"JSON":  formatJSON,
		"yaml":  formatYAML,
	} {
		got, err := validateFormat(input)
		require.NoError(t, err, input)
		assert.Equal(t, want, got, input)
	}

	_, err := validateFormat("csv")
	assert.Error(t, err)
}

func TestRenderReport_TableTotalOnly(t *testing.T) {
	total := 42
	var buf bytes.Buffer

	require.NoError(t, renderReport(&buf, Report{TotalLines: &total}, formatTable))
	assert.Equal(t, "Total lines: 42\n", buf.String())
}

func TestRenderReport_JSONOmitsMissingViews(t *testing.T) {
	report := Report{
		Root:       "/src",
		TotalFiles: 1,
		Files: &[]DirectoryFiles{{
			Dir:     "/src",
			Display: ".",
			Files:   []FileCount{{Name: "a.go", Path: "/src/a.go", Language: "Go", Lines: 3}},
		}},
	}
	var buf bytes.Buffer

	require.NoError(t, renderReport(&buf, report, formatJSON))

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.NotContains(t, decoded, "total_lines")
	assert.NotContains(t, decoded, "directories")
	assert.Contains(t, decoded, "files")
}

func TestGeneratePDF(t *testing.T) {
	total := 7
	report := Report{
		Root:       "/src",
		TotalFiles: 2,
		TotalLines: &total,
		Files: &[]DirectoryFiles{{
			Display: ".",
			Files:   []FileCount{{Name: "a.go", Lines: 3}, {Name: "b.go", Lines: 4}},
		}},
		Directories: &DirectoryReport{
			Directories: []DirectoryTotal{{Display: ".", Files: 2, Lines: 7}},
			Total:       DirectoryTotal{Display: "Total", Files: 2, Lines: 7},
		},
	}
	path := filepath.Join(t.TempDir(), "out.pdf")

	require.NoError(t, generatePDF(report, path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF")))
}

func TestGeneratePDF_BadPath(t *testing.T) {
	err := generatePDF(Report{}, filepath.Join(t.TempDir(), "missing", "out.pdf"))
	assert.Error(t, err)
}

func TestNewReportPDF_EncodesNonASCIIPaths(t *testing.T) {
	report := Report{
		Root: "/src/café",
		Files: &[]DirectoryFiles{{
			Display: "café",
			Files:   []FileCount{{Name: "naïve.py", Language: "Python", Lines: 1}},
		}},
	}
	pdf := newReportPDF(report)
	pdf.SetCompression(false)

	var buf bytes.Buffer
	require.NoError(t, pdf.Output(&buf))

	assert.Contains(t, buf.String(), "caf\xe9")
	assert.Contains(t, buf.String(), "na\xefve.py")
	assert.NotContains(t, buf.String(), "caf\xc3\xa9")
}
