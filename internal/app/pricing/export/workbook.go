// Package export renders comparison reports as spreadsheet and document files.
package export

import (
	"fmt"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/xuri/excelize/v2"

	"github.com/light-bringer/pricetracker/internal/app/pricing/comparison"
	"github.com/light-bringer/pricetracker/internal/app/pricing/domain"
)

const (
	// SheetName is the worksheet holding the exported table.
	SheetName = "Price Data"

	// XLSXContentType is the media type of RenderWorkbook output.
	XLSXContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

	// Missing is rendered in place of an absent value.
	Missing = "—"

	minColumnWidth   = 10
	maxColumnWidth   = 30
	uploadedAtLayout = "January 2, 2006, 03:04 PM"
)

// Report is the input of every renderer.
type Report struct {
	Document   *domain.PriceDocument
	Comparison *comparison.Comparison
	Rows       []comparison.Row
	Summary    *comparison.Summary
}

// WorkbookName is the download name of a sheet's workbook:
// <commodity>_<month>[_Week_n]_<unix millis>.xlsx.
func WorkbookName(doc *domain.PriceDocument, now time.Time) string {
	var b strings.Builder
	b.WriteString(doc.CommodityDisplay())
	b.WriteString("_")
	b.WriteString(doc.Period().Month.String())
	if w := doc.Period().Week; w != domain.NoWeek {
		b.WriteString("_")
		b.WriteString(strings.ReplaceAll(w.String(), " ", "_"))
	}
	fmt.Fprintf(&b, "_%d.xlsx", now.UnixMilli())
	return b.String()
}

// RenderWorkbook writes the file information block followed by the price
// table, one category row before each category's products.
func RenderWorkbook(r *Report) ([]byte, error) {
	rows, header := workbookRows(r)

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		return nil, fmt.Errorf("failed to name sheet: %w", err)
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, fmt.Errorf("failed to create style: %w", err)
	}

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return nil, err
		}
		if len(row.values) > 0 {
			values := row.values
			if err := f.SetSheetRow(SheetName, cell, &values); err != nil {
				return nil, fmt.Errorf("failed to write row %d: %w", i+1, err)
			}
		}
		if row.bold {
			last, err := excelize.CoordinatesToCellName(max(len(row.values), 1), i+1)
			if err != nil {
				return nil, err
			}
			if err := f.SetCellStyle(SheetName, cell, last, bold); err != nil {
				return nil, fmt.Errorf("failed to style row %d: %w", i+1, err)
			}
		}
	}

	for col, width := range columnWidths(rows, len(header)) {
		name, err := excelize.ColumnNumberToName(col + 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetColWidth(SheetName, name, name, width); err != nil {
			return nil, fmt.Errorf("failed to size column %s: %w", name, err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

type sheetRow struct {
	values []any
	bold   bool
}

func workbookRows(r *Report) ([]sheetRow, []string) {
	doc := r.Document
	rows := []sheetRow{
		{values: []any{"FILE INFORMATION"}, bold: true},
		{values: []any{"File Name", doc.FileName()}},
		{values: []any{"Commodity", doc.CommodityDisplay()}},
		{values: []any{"Month", doc.Period().Month.String()}},
		{values: []any{"Week", doc.Period().Week.String()}},
		{values: []any{"Uploaded By", doc.UploadedByEmail()}},
		{values: []any{"Uploaded At", formatUploadedAt(doc.UploadedAt())}},
		{},
		{values: []any{"PRICE DATA"}, bold: true},
	}

	horizons := availableHorizons(r.Comparison)
	header := []string{"Product Name", "Unit"}
	header = append(header, doc.Stores()...)
	header = append(header, "Prevailing Price")
	for _, h := range horizons {
		header = append(header, "Prevailing Price "+h.Label()+" Ago", "Price Diff (₱)", "Price Diff (%)")
	}
	rows = append(rows, sheetRow{values: toAny(header), bold: true})

	lastCategory := ""
	for i, row := range r.Rows {
		if i == 0 || row.CategoryID != lastCategory {
			rows = append(rows, sheetRow{values: []any{row.CategoryName}, bold: true})
			lastCategory = row.CategoryID
		}

		values := []any{row.ProductName, row.Unit}
		for _, p := range row.StorePrices {
			values = append(values, priceValue(p))
		}
		values = append(values, priceValue(row.PrevailingPrice))
		for _, h := range horizons {
			cell := row.Cell(h)
			values = append(values, priceValue(cell.Price))
			if cell.Delta == nil {
				values = append(values, Missing, Missing)
				continue
			}
			values = append(values, signedPeso(cell.Delta), signedPercent(cell.Delta))
		}
		rows = append(rows, sheetRow{values: values})
	}

	return rows, header
}

// availableHorizons lists the horizons that resolved to a target.
func availableHorizons(cmp *comparison.Comparison) []comparison.Horizon {
	var out []comparison.Horizon
	for _, h := range comparison.Horizons {
		if cmp.Target(h) != nil {
			out = append(out, h)
		}
	}
	return out
}

func priceValue(m *domain.Money) any {
	if m == nil {
		return Missing
	}
	return m.Float64()
}

func signedPeso(d *domain.Delta) string {
	s := d.Absolute.String()
	if !d.Absolute.IsNegative() {
		s = "+" + s
	}
	return s
}

func signedPercent(d *domain.Delta) string {
	s := d.Percent.StringFixed(2) + "%"
	if !d.Percent.IsNegative() {
		s = "+" + s
	}
	return s
}

func formatUploadedAt(t time.Time) string {
	if t.IsZero() {
		return "N/A"
	}
	return t.Format(uploadedAtLayout)
}

// columnWidths sizes each header column to its longest value plus padding,
// between minColumnWidth and maxColumnWidth.
func columnWidths(rows []sheetRow, columns int) []float64 {
	widths := make([]float64, columns)
	for col := range widths {
		longest := minColumnWidth
		for _, row := range rows {
			if col >= len(row.values) {
				continue
			}
			if n := utf8.RuneCountInString(fmt.Sprint(row.values[col])); n > longest {
				longest = n
			}
		}
		widths[col] = float64(min(longest+2, maxColumnWidth))
	}
	return widths
}

func toAny(values []string) []any {
	out := make([]any, len(values))
	for i, v := range values {
		out[i] = v
	}
	return out
}

var extension = regexp.MustCompile(`\.[^/.]+$`)

// baseName strips a trailing file extension.
func baseName(fileName string) string {
	return extension.ReplaceAllString(fileName, "")
}
