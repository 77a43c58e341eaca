package reporting

import (
	"bytes"
	"fmt"
	"time"

	"github.com/jung-kurt/gofpdf"
	"github.com/lcalzada-xor/wpacrack/internal/core/ports"
)

// CrackReportExporter renders a one-page PDF summary of a completed
// dictionary-attack run, following the section-method layout of the
// teacher's executive-summary exporter.
type CrackReportExporter struct{}

// NewCrackReportExporter returns a ready-to-use exporter.
func NewCrackReportExporter() *CrackReportExporter {
	return &CrackReportExporter{}
}

// Export renders rec as a single-page PDF.
func (e *CrackReportExporter) Export(rec ports.SessionRecord) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	e.addHeader(pdf, rec)
	e.addResultBox(pdf, rec)
	e.addDetails(pdf, rec)
	e.addFooter(pdf, rec)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("generate crack report PDF: %w", err)
	}
	return buf.Bytes(), nil
}

func (e *CrackReportExporter) addHeader(pdf *gofpdf.Fpdf, rec ports.SessionRecord) {
	pdf.SetFont("Arial", "B", 24)
	pdf.SetTextColor(0, 51, 102)
	pdf.CellFormat(0, 15, "WPA2 Handshake Recovery Report", "", 1, "L", false, 0, "")
	pdf.Ln(2)

	pdf.SetFont("Arial", "", 12)
	pdf.SetTextColor(60, 60, 60)
	pdf.CellFormat(0, 7, fmt.Sprintf("Network: %s", rec.ESSID), "", 1, "L", false, 0, "")
	if rec.BSSID != "" {
		pdf.CellFormat(0, 7, fmt.Sprintf("BSSID: %s", rec.BSSID), "", 1, "L", false, 0, "")
	}

	pdf.SetFont("Arial", "", 10)
	pdf.SetTextColor(120, 120, 120)
	pdf.CellFormat(0, 6, fmt.Sprintf("Generated: %s", time.Now().Format("2006-01-02 15:04")), "", 1, "L", false, 0, "")
	pdf.Ln(8)
}

func (e *CrackReportExporter) addResultBox(pdf *gofpdf.Fpdf, rec ports.SessionRecord) {
	r, g, b := 52, 199, 89
	label := "PASSPHRASE RECOVERED"
	if !rec.Found {
		r, g, b = 220, 53, 69
		label = "NOT RECOVERED"
	}

	y := pdf.GetY()
	pdf.SetFillColor(r, g, b)
	pdf.Rect(20, y, 170, 25, "F")

	pdf.SetFont("Arial", "B", 16)
	pdf.SetTextColor(255, 255, 255)
	pdf.SetXY(25, y+4)
	pdf.CellFormat(160, 8, label, "", 1, "L", false, 0, "")

	pdf.SetFont("Arial", "B", 14)
	pdf.SetXY(25, y+13)
	value := rec.Passphrase
	if !rec.Found {
		value = "(wordlist exhausted)"
	}
	pdf.CellFormat(160, 8, value, "", 0, "L", false, 0, "")

	pdf.SetY(y + 30)
	pdf.Ln(5)
}

func (e *CrackReportExporter) addDetails(pdf *gofpdf.Fpdf, rec ports.SessionRecord) {
	pdf.SetFont("Arial", "B", 14)
	pdf.SetTextColor(0, 51, 102)
	pdf.CellFormat(0, 10, "Run Details", "", 1, "L", false, 0, "")
	pdf.Ln(2)

	duration := rec.FinishedAt.Sub(rec.StartedAt)
	rows := []struct{ label, value string }{
		{"Candidates Tried", fmt.Sprintf("%d", rec.Candidates)},
		{"Workers", fmt.Sprintf("%d", rec.Workers)},
		{"Duration", duration.Round(time.Millisecond).String()},
	}

	pdf.SetFont("Arial", "", 11)
	for _, row := range rows {
		pdf.SetTextColor(100, 100, 100)
		pdf.CellFormat(60, 7, row.label+":", "", 0, "L", false, 0, "")
		pdf.SetTextColor(60, 60, 60)
		pdf.CellFormat(0, 7, row.value, "", 1, "L", false, 0, "")
	}
	pdf.Ln(8)
}

func (e *CrackReportExporter) addFooter(pdf *gofpdf.Fpdf, rec ports.SessionRecord) {
	pdf.SetY(-20)
	pdf.SetDrawColor(200, 200, 200)
	pdf.Line(20, pdf.GetY(), 190, pdf.GetY())
	pdf.Ln(3)

	pdf.SetFont("Arial", "I", 8)
	pdf.SetTextColor(120, 120, 120)
	pdf.CellFormat(0, 5, fmt.Sprintf("Generated by wpacrack | Job ID: %s", rec.ID), "", 1, "C", false, 0, "")
}
