package main

import (
	"fmt"
	"strconv"

	"github.com/jung-kurt/gofpdf"
)

const (
	pdfPageWidth  = 210 // A4 width in mm
	pdfMargin     = 10
	pdfLineHeight = 6
	pdfFontSize   = 10
)

// generatePDF writes the views held by report to outputPath as an A4 document.
func generatePDF(report Report, outputPath string) error {
	pdf := newReportPDF(report)
	if err := pdf.OutputFileAndClose(outputPath); err != nil {
		return fmt.Errorf("failed to save PDF to %s: %w", outputPath, err)
	}
	return nil
}

// newReportPDF lays out the report without writing it anywhere.
func newReportPDF(report Report) *gofpdf.Fpdf {
	pdf := gofpdf.New("P", "mm", "A4", "")
	// Core fonts are cp1252; paths are UTF-8
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetMargins(pdfMargin, pdfMargin, pdfMargin)
	pdf.SetAutoPageBreak(true, pdfMargin)
	pdf.AddPage()

	contentWidth := float64(pdfPageWidth - 2*pdfMargin)

	pdf.SetFont("Helvetica", "B", pdfFontSize+4)
	pdf.MultiCell(contentWidth, pdfLineHeight+2, "Line Count Report", "", "L", false)
	pdf.SetFont("Helvetica", "", pdfFontSize)
	pdf.MultiCell(contentWidth, pdfLineHeight, tr(fmt.Sprintf("Root: %s", report.Root)), "", "L", false)
	pdf.MultiCell(contentWidth, pdfLineHeight, fmt.Sprintf("Files selected: %d", report.TotalFiles), "", "L", false)
	pdf.Ln(pdfLineHeight / 2)

	if report.TotalLines != nil {
		pdf.SetFont("Helvetica", "B", pdfFontSize)
		pdf.MultiCell(contentWidth, pdfLineHeight, fmt.Sprintf("Total lines: %d", *report.TotalLines), "", "L", false)
		pdf.Ln(pdfLineHeight / 2)
	}

	if report.Files != nil {
		widths := []float64{contentWidth * 0.4, contentWidth * 0.3, contentWidth * 0.15, contentWidth * 0.15}
		pdfSection(pdf, contentWidth, "Directory-wise Line Count")
		pdfRow(pdf, tr, widths, []string{"Directory", "File", "Language", "Lines"}, true)
		for _, group := range *report.Files {
			for j, file := range group.Files {
				dir := ""
				if j == 0 {
					dir = group.Display
				}
				pdfRow(pdf, tr, widths, []string{dir, file.Name, file.Language, strconv.Itoa(file.Lines)}, false)
			}
		}
		pdf.Ln(pdfLineHeight)
	}

	if report.Directories != nil {
		widths := []float64{contentWidth * 0.6, contentWidth * 0.2, contentWidth * 0.2}
		pdfSection(pdf, contentWidth, "Directory-wise Summary")
		pdfRow(pdf, tr, widths, []string{"Directory", "Files", "Lines"}, true)
		for _, row := range report.Directories.Directories {
			pdfRow(pdf, tr, widths, []string{row.Display, strconv.Itoa(row.Files), strconv.Itoa(row.Lines)}, false)
		}
		total := report.Directories.Total
		pdfRow(pdf, tr, widths, []string{total.Display, strconv.Itoa(total.Files), strconv.Itoa(total.Lines)}, true)
	}

	return pdf
}

func pdfSection(pdf *gofpdf.Fpdf, width float64, title string) {
	pdf.SetFont("Helvetica", "B", pdfFontSize+1)
	pdf.MultiCell(width, pdfLineHeight, title, "", "L", false)
	pdf.Ln(pdfLineHeight / 3)
}

// pdfRow draws one table row with the count columns right aligned.
func pdfRow(pdf *gofpdf.Fpdf, tr func(string) string, widths []float64, cells []string, bold bool) {
	style := ""
	if bold {
		style = "B"
	}
	pdf.SetFont("Courier", style, pdfFontSize-1)
	for i, cell := range cells {
		align := "R"
		if i == 0 || (len(cells) == 4 && i < 3) {
			align = "L"
		}
		pdf.CellFormat(widths[i], pdfLineHeight, tr(cell), "B", 0, align, false, 0, "")
	}
	pdf.Ln(-1)
}
