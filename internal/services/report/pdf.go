package report

import (
	"bytes"
	"fmt"
	"time"

	"github.com/go-pdf/fpdf"

	"github.com/bobmcallan/sift/internal/common"
	"github.com/bobmcallan/sift/internal/models"
)

const disclaimerNote = "Educational tool. Not investment advice. Figures are derived from provider data and may be incomplete."

// Service builds the one-page analysis PDF for a ticker
type Service struct {
	logger *common.Logger
}

// NewService creates the report service
func NewService(logger *common.Logger) *Service {
	if logger == nil {
		logger = common.NewSilentLogger()
	}
	return &Service{logger: logger}
}

// BuildPDF renders fundamentals, ratios and the checklist verdict as a PDF.
// Sections appear in a fixed order so reports stay comparable across tickers.
func (s *Service) BuildPDF(f *models.CanonicalFundamentals, r *models.RatioSet, result *models.ChecklistResult) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(10, 10, 10)
	pdf.SetAutoPageBreak(true, 10)
	pdf.AddPage()
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	title := fmt.Sprintf("Fundamentals Report — %s", f.Ticker)
	if f.Name != "" {
		title = fmt.Sprintf("Fundamentals Report — %s (%s)", f.Name, f.Ticker)
	}
	pdf.SetFont("Arial", "B", 16)
	pdf.CellFormat(0, 10, tr(title), "", 1, "L", false, 0, "")

	pdf.SetFont("Arial", "", 9)
	pdf.SetTextColor(110, 110, 110)
	subtitle := fmt.Sprintf("Generated %s", time.Now().UTC().Format("2006-01-02 15:04 UTC"))
	if f.Sector != "" {
		subtitle = fmt.Sprintf("%s / %s · %s", f.Sector, f.Industry, subtitle)
	}
	pdf.CellFormat(0, 5, tr(subtitle), "", 1, "L", false, 0, "")
	pdf.SetTextColor(0, 0, 0)
	pdf.Ln(4)

	s.writeSection(pdf, tr, "Core Metrics", CoreMetricsRows(f))
	s.writeSection(pdf, tr, "Valuation Multiples & Yields", MultiplesRows(r))
	s.writeSection(pdf, tr, "Returns on Capital", ReturnsRows(r))
	s.writeVerdict(pdf, tr, result)

	pdf.Ln(6)
	pdf.SetFont("Arial", "I", 8)
	pdf.SetTextColor(130, 130, 130)
	pdf.MultiCell(0, 4, tr(disclaimerNote), "", "L", false)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render PDF: %w", err)
	}

	s.logger.Debug().Str("ticker", f.Ticker).Int("bytes", buf.Len()).Msg("Report PDF rendered")
	return buf.Bytes(), nil
}

func (s *Service) writeSection(pdf *fpdf.Fpdf, tr func(string) string, heading string, rows []Row) {
	pdf.SetFont("Arial", "B", 12)
	pdf.CellFormat(0, 8, tr(heading), "", 1, "L", false, 0, "")
	pdf.SetFont("Arial", "", 10)

	for i, row := range rows {
		if i%2 == 0 {
			pdf.SetFillColor(245, 245, 245)
		} else {
			pdf.SetFillColor(255, 255, 255)
		}
		pdf.CellFormat(95, 6, tr(row.Label), "", 0, "L", true, 0, "")
		pdf.CellFormat(95, 6, tr(row.Value), "", 1, "R", true, 0, "")
	}
	pdf.Ln(3)
}

func (s *Service) writeVerdict(pdf *fpdf.Fpdf, tr func(string) string, result *models.ChecklistResult) {
	if result == nil {
		return
	}

	pdf.SetFont("Arial", "B", 12)
	pdf.CellFormat(0, 8, tr(fmt.Sprintf("Checklist Verdict — %s", result.Profile)), "", 1, "L", false, 0, "")

	pdf.SetFont("Arial", "B", 10)
	pdf.CellFormat(0, 6, tr(result.Summary.Headline), "", 1, "L", false, 0, "")

	pdf.SetFont("Arial", "", 9)
	counts := fmt.Sprintf("Passes: %d   Warns: %d   Fails: %d   N/A: %d",
		result.Summary.Passes, result.Summary.Warns, result.Summary.Fails, result.Summary.NA)
	pdf.CellFormat(0, 5, tr(counts), "", 1, "L", false, 0, "")
	pdf.Ln(2)

	pdf.SetFont("Arial", "", 9)
	for _, rule := range result.Rules {
		line := fmt.Sprintf("[%s] %s (%s): %s", rule.Status, rule.Name, rule.Value, rule.Comment)
		pdf.MultiCell(0, 5, tr(line), "", "L", false)
	}
}
