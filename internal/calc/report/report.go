package report

import (
	"fmt"
	"io"
	"time"

	"github.com/phpdave11/gofpdf"

	"Airflow/internal/calc/fan"
	"Airflow/internal/calc/summary"
)

const DefaultTitle = "Airflow Report"

type Document struct {
	Project string        `json:"project"`
	Author  string        `json:"author"`
	Title   string        `json:"title"`
	Notes   string        `json:"notes"`
	Input   summary.Input `json:"input"`
}

var colWidths = []float64{52, 24, 18, 20, 20, 18, 18}

// Write renders the document and its computed summary as a PDF.
func Write(w io.Writer, doc Document, now time.Time) error {
	if doc.Title == "" {
		doc.Title = DefaultTitle
	}
	s := summary.Calculate(doc.Input)

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(0, 10, doc.Title)
	pdf.Ln(12)
	pdf.SetFont("Helvetica", "", 11)
	pdf.Cell(0, 6, fmt.Sprintf("Project: %s", doc.Project))
	pdf.Ln(6)
	pdf.Cell(0, 6, fmt.Sprintf("Author: %s", doc.Author))
	pdf.Ln(6)
	pdf.Cell(0, 6, fmt.Sprintf("Date: %s", now.Format("2006-01-02")))
	pdf.Ln(10)

	heading(pdf, "Cooling Performance Summary")
	line(pdf, "Intake CFM", fmt.Sprintf("%.2f", s.Intake.TotalCFM))
	line(pdf, "Avg Intake Noise", fmt.Sprintf("%.1f dB", s.Intake.AvgDB))
	line(pdf, "Exhaust CFM", fmt.Sprintf("%.2f", s.Exhaust.TotalCFM))
	line(pdf, "Avg Exhaust Noise", fmt.Sprintf("%.1f dB", s.Exhaust.AvgDB))
	line(pdf, "Hardware Cooling CFM", fmt.Sprintf("%.2f", s.Hardware.TotalCFM))
	line(pdf, "Power Draw", fmt.Sprintf("%.0f-%.0f W", s.Intake.TotalWattsLow+s.Exhaust.TotalWattsLow+s.Hardware.TotalWattsLow,
		s.Intake.TotalWattsHigh+s.Exhaust.TotalWattsHigh+s.Hardware.TotalWattsHigh))
	pdf.Ln(4)

	heading(pdf, "Analysis")
	line(pdf, "Detected Pressure Type", fmt.Sprintf("%s Pressure (%+.2f CFM)", s.Pressure.Category, s.Pressure.DifferentialCFM))
	line(pdf, "Surplus vs Hardware CFM", fmt.Sprintf("%.2f CFM", s.Target.SurplusCFM))
	line(pdf, "Optimal Target (125% of Hardware CFM)", fmt.Sprintf("%.2f CFM", s.Target.OptimalCFM))
	line(pdf, "Volume", fmt.Sprintf("%.3f m3 / %.1f L", s.Volume.CubicMeters(), s.Volume.Liters()))
	if s.Cycles.Computable {
		line(pdf, "Air Cycles", fmt.Sprintf("%.2f /min, %.1f /h", s.Cycles.PerMinute, s.Cycles.PerHour))
	} else {
		line(pdf, "Air Cycles", "not computable")
	}
	pdf.Ln(2)
	pdf.MultiCell(0, 6, s.StatusMessage, "", "L", false)
	for _, v := range s.Validation {
		pdf.MultiCell(0, 6, "- "+v, "", "L", false)
	}
	pdf.Ln(4)

	for _, role := range fan.Roles {
		table(pdf, role, doc.Input.Layout.Group(role))
	}

	if doc.Notes != "" {
		heading(pdf, "Notes")
		pdf.MultiCell(0, 6, doc.Notes, "", "L", false)
	}
	return pdf.Output(w)
}

func heading(pdf *gofpdf.Fpdf, text string) {
	pdf.SetFont("Helvetica", "B", 13)
	pdf.Cell(0, 8, text)
	pdf.Ln(9)
	pdf.SetFont("Helvetica", "", 11)
}

func line(pdf *gofpdf.Fpdf, label, value string) {
	pdf.CellFormat(80, 6, label, "", 0, "L", false, 0, "")
	pdf.CellFormat(0, 6, value, "", 1, "L", false, 0, "")
}

var groupTitles = map[fan.Role]string{
	fan.RoleIntake:   "Intake Fans",
	fan.RoleExhaust:  "Exhaust Fans",
	fan.RoleHardware: "Hardware/Server Cooling Units",
}

func table(pdf *gofpdf.Fpdf, role fan.Role, rows []fan.Record) {
	heading(pdf, groupTitles[role])
	if len(rows) == 0 {
		pdf.Cell(0, 6, "(none)")
		pdf.Ln(8)
		return
	}
	pdf.SetFont("Helvetica", "B", 8)
	headers := []string{"Fan Name", "SP (mmH2O)", "CFM", "Watts Low", "Watts High", "dB Low", "dB High"}
	for i, h := range headers {
		pdf.CellFormat(colWidths[i], 6, h, "1", 0, "C", false, 0, "")
	}
	pdf.Ln(-1)
	pdf.SetFont("Helvetica", "", 8)
	for _, r := range rows {
		cells := []string{
			r.Name,
			fmt.Sprintf("%.1f", r.StaticPressure),
			fmt.Sprintf("%.0f", r.CFM),
			fmt.Sprintf("%.0f", r.WattsLow),
			fmt.Sprintf("%.0f", r.WattsHigh),
			fmt.Sprintf("%.0f", r.DBLow),
			fmt.Sprintf("%.0f", r.DBHigh),
		}
		for i, c := range cells {
			align := "R"
			if i == 0 {
				align = "L"
			}
			pdf.CellFormat(colWidths[i], 6, c, "1", 0, align, false, 0, "")
		}
		pdf.Ln(-1)
	}
	pdf.Ln(4)
	pdf.SetFont("Helvetica", "", 11)
}
