package report

import (
	"fmt"
	"io"

	"github.com/go-pdf/fpdf"
)

const (
	reportTitle = "AI Diet Recommendation Report"
	// PDFFilename is the download name offered to clients.
	PDFFilename = "My_Diet_Plan.pdf"
)

// WritePDF renders r as an A4 document: title, diet type, BMI, a meal table
// with a green header row, and the grocery list.
func WritePDF(w io.Writer, r *Report) error {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(reportTitle, false)
	pdf.SetCreationDate(r.GeneratedAt)
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 20)
	pdf.CellFormat(0, 12, reportTitle, "", 1, "C", false, 0, "")
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "", 12)
	pdf.CellFormat(0, 7, tr("Diet Type: "+string(r.Category)), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 7, fmt.Sprintf("BMI: %.2f (%s)", r.BMI.Value, r.BMI.Band), "", 1, "L", false, 0, "")
	pdf.Ln(4)

	const slotW, recW, calW, rowH = 35.0, 115.0, 30.0, 8.0

	pdf.SetFont("Helvetica", "B", 12)
	pdf.SetFillColor(0, 128, 0)
	pdf.SetTextColor(245, 245, 245)
	pdf.CellFormat(slotW, rowH, "Meal", "1", 0, "L", true, 0, "")
	pdf.CellFormat(recW, rowH, "Recommendation", "1", 0, "L", true, 0, "")
	pdf.CellFormat(calW, rowH, "kcal", "1", 1, "R", true, 0, "")

	pdf.SetFont("Helvetica", "", 12)
	pdf.SetTextColor(0, 0, 0)
	for _, m := range r.Meals {
		pdf.CellFormat(slotW, rowH, string(m.Slot), "1", 0, "L", false, 0, "")
		pdf.CellFormat(recW, rowH, tr(m.Recommendation), "1", 0, "L", false, 0, "")
		pdf.CellFormat(calW, rowH, fmt.Sprintf("%d", m.Calories), "1", 1, "R", false, 0, "")
	}
	pdf.CellFormat(slotW+recW, rowH, "Total", "1", 0, "L", false, 0, "")
	pdf.CellFormat(calW, rowH, fmt.Sprintf("%d", r.TotalCalories), "1", 1, "R", false, 0, "")

	if len(r.Grocery) > 0 {
		pdf.Ln(6)
		pdf.SetFont("Helvetica", "B", 14)
		pdf.CellFormat(0, 8, "Suggested Grocery List", "", 1, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 12)
		for _, item := range r.Grocery {
			pdf.CellFormat(0, 6, tr("- "+item), "", 1, "L", false, 0, "")
		}
	}

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("render pdf: %w", err)
	}
	return nil
}
