package export

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/gomutex/godocx"
	"github.com/gomutex/godocx/wml/stypes"

	"github.com/light-bringer/pricetracker/internal/app/pricing/comparison"
	"github.com/light-bringer/pricetracker/internal/app/pricing/domain"
)

// DOCXContentType is the media type of RenderSummary output.
const DOCXContentType = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"

const noData = "No data"

// SummaryName is the download name of a sheet's summary document:
// <file name without extension>_<commodity>_<month>[_<week>]_Summary.docx.
func SummaryName(doc *domain.PriceDocument) string {
	name := baseName(doc.FileName())
	if name == "" {
		name = "Summary_Report"
	}

	var b strings.Builder
	b.WriteString(name)
	b.WriteString("_")
	b.WriteString(doc.CommodityDisplay())
	b.WriteString("_")
	b.WriteString(doc.Period().Month.String())
	if w := doc.Period().Week; w != domain.NoWeek {
		b.WriteString("_")
		b.WriteString(w.String())
	}
	b.WriteString("_Summary.docx")
	return b.String()
}

// SummaryLines returns the paragraphs of the summary document in order.
func SummaryLines(r *Report) []Paragraph {
	doc := r.Document
	province := domain.LookupProvince(doc.Province()).DisplayName

	month := doc.Period().Month.String()
	if w := doc.Period().Week; w != domain.NoWeek {
		month += " - " + w.String()
	}

	lines := []Paragraph{
		{Text: "CPD PRICE TRACKER", Bold: true, Size: 18, Center: true},
		{Text: strings.ToUpper(province) + " - " + doc.CommodityDisplay(), Bold: true, Size: 14, Center: true},
		{Text: "File: " + doc.FileName(), Center: true},
		{Text: "Month: " + month, Center: true},
	}

	summary := r.Summary
	if summary == nil {
		summary = &comparison.Summary{}
	}
	lines = append(lines, horizonLines("1 MONTH COMPARISON SUMMARY", summary.Month1)...)
	lines = append(lines, horizonLines("3 MONTHS COMPARISON SUMMARY", summary.Month3)...)
	return lines
}

func horizonLines(title string, s comparison.HorizonSummary) []Paragraph {
	lines := []Paragraph{
		{Text: title, Bold: true, Underline: true},
		{Text: "A. Increase", Bold: true, Size: 12},
		{Text: fmt.Sprintf("Total Increase: %d", s.IncreaseCount)},
		{Text: "Highest Increase:"},
	}
	lines = append(lines, itemLines(s.HighestIncrease)...)
	lines = append(lines, Paragraph{Text: "Lowest Increase:"})
	lines = append(lines, itemLines(s.LowestIncrease)...)

	lines = append(lines,
		Paragraph{Text: "B. Decrease", Bold: true, Size: 12},
		Paragraph{Text: fmt.Sprintf("Total Decrease: %d", s.DecreaseCount)},
		Paragraph{Text: "Highest Decrease:"},
	)
	lines = append(lines, itemLines(s.HighestDecrease)...)
	lines = append(lines, Paragraph{Text: "Lowest Decrease:"})
	lines = append(lines, itemLines(s.LowestDecrease)...)

	lines = append(lines, Paragraph{Text: fmt.Sprintf("Total Number of Products: %d", s.TotalProducts), Bold: true, Size: 12})
	return lines
}

func itemLines(items []comparison.RankedItem) []Paragraph {
	if len(items) == 0 {
		return []Paragraph{{Text: "  • " + noData}}
	}
	out := make([]Paragraph, 0, len(items))
	for _, item := range items {
		out = append(out, Paragraph{Text: "  • " + item.String()})
	}
	return out
}

// Paragraph is one line of the summary document. Size is in points;
// zero keeps the default.
type Paragraph struct {
	Text      string
	Bold      bool
	Underline bool
	Center    bool
	Size      uint64
}

// RenderSummary writes the summary paragraphs as a Word document.
func RenderSummary(r *Report) ([]byte, error) {
	doc, err := godocx.NewDocument()
	if err != nil {
		return nil, fmt.Errorf("failed to create document: %w", err)
	}

	for _, line := range SummaryLines(r) {
		p := doc.AddEmptyParagraph()
		if line.Center {
			p.Justification(stypes.JustificationCenter)
		}
		run := p.AddText(line.Text)
		if line.Bold {
			run.Bold(true)
		}
		if line.Underline {
			run.Underline(stypes.UnderlineSingle)
		}
		if line.Size > 0 {
			run.Size(line.Size)
		}
	}

	var buf bytes.Buffer
	if err := doc.Write(&buf); err != nil {
		return nil, fmt.Errorf("failed to write document: %w", err)
	}
	return buf.Bytes(), nil
}
