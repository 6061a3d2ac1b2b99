package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

// panel draws body inside a rounded box, optionally titled.
func panel(title, body string, border text.Color) string {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	tw.Style().Box.PaddingLeft = "  "
	tw.Style().Box.PaddingRight = "  "
	tw.Style().Title.Align = text.AlignCenter
	if title != "" {
		tw.SetTitle(title)
	}
	if colorEnabled() {
		tw.Style().Color.Border = text.Colors{border}
		tw.Style().Color.Separator = text.Colors{border}
		tw.Style().Title.Colors = text.Colors{border, text.Bold}
	}
	tw.AppendRow(table.Row{body})
	return tw.Render()
}

// renderBanner prints the panel shown before analysis starts.
func renderBanner(w io.Writer) {
	fmt.Fprintln(w, panel("", color.New(color.FgBlue, color.Bold).Sprint("Starting analysis..."), text.FgBlue))
}

// renderTotal prints the grand total line.
func renderTotal(w io.Writer, total int) {
	fmt.Fprintf(w, "Total lines: %s\n", color.New(color.FgGreen, color.Bold).Sprint(humanize.Comma(int64(total))))
}

// renderFileTable prints the per-file view, one section per directory.
func renderFileTable(w io.Writer, groups []DirectoryFiles) {
	tw := newCountTable("Directory-wise Line Count")
	tw.AppendHeader(table.Row{"Directory", "File", "Language", "Lines"})
	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, Colors: columnColors(text.FgCyan)},
		{Number: 2, Colors: columnColors(text.FgGreen)},
		{Number: 3, Colors: columnColors(text.Faint)},
		{Number: 4, Align: text.AlignRight, Colors: columnColors(text.Bold)},
	})

	for i, group := range groups {
		for j, file := range group.Files {
			dir := ""
			if j == 0 {
				dir = group.Display
			}
			tw.AppendRow(table.Row{dir, file.Name, file.Language, humanize.Comma(int64(file.Lines))})
		}
		if i < len(groups)-1 {
			tw.AppendSeparator()
		}
	}

	fmt.Fprintln(w, tw.Render())
}

// renderDirectoryTable prints the per-directory summary with its total row.
func renderDirectoryTable(w io.Writer, report *DirectoryReport) {
	tw := newCountTable("Directory-wise Summary")
	tw.AppendHeader(table.Row{"Directory", "Files", "Lines"})
	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, Colors: columnColors(text.FgCyan)},
		{Number: 2, Align: text.AlignRight, Colors: columnColors(text.FgGreen)},
		{Number: 3, Align: text.AlignRight, Colors: columnColors(text.Bold)},
	})

	for _, row := range report.Directories {
		tw.AppendRow(table.Row{row.Display, humanize.Comma(int64(row.Files)), humanize.Comma(int64(row.Lines))})
	}
	tw.AppendFooter(table.Row{report.Total.Display, humanize.Comma(int64(report.Total.Files)), humanize.Comma(int64(report.Total.Lines))})

	fmt.Fprintln(w, tw.Render())
}

func newCountTable(title string) table.Writer {
	tw := table.NewWriter()
	tw.SetTitle(title)
	tw.SetStyle(table.StyleRounded)
	tw.Style().Box.PaddingLeft = "  "
	tw.Style().Box.PaddingRight = "  "
	tw.Style().Format.Header = text.FormatDefault
	tw.Style().Format.Footer = text.FormatDefault
	if colorEnabled() {
		tw.Style().Title.Colors = text.Colors{text.Bold}
		tw.Style().Color.Footer = text.Colors{text.Bold}
	}
	return tw
}

func columnColors(c text.Color) text.Colors {
	if !colorEnabled() {
		return nil
	}
	return text.Colors{c}
}

// renderError prints err inside a red "Error" panel.
func renderError(w io.Writer, err error) {
	body := fmt.Sprintf("%s\n\nException Details:\n%v", errorHeadline(err), err)
	fmt.Fprintln(w, panel("Error", body, text.FgRed))
}

func errorHeadline(err error) string {
	var (
		notFound *NotFoundError
		ioErr    *IOError
		decode   *DecodeError
		pattern  *PatternError
	)
	switch {
	case errors.As(err, &notFound):
		return "Root directory not found"
	case errors.As(err, &decode):
		return "Could not decode file"
	case errors.As(err, &ioErr):
		return "Could not read file"
	case errors.As(err, &pattern):
		return "Invalid ignore pattern"
	default:
		return "Line count failed"
	}
}
