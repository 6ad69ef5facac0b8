package service

import (
	"io"

	"github.com/go-pdf/fpdf"

	"github.com/dupliscan/dupliscan/domain"
)

const pdfReportTitle = "Code Clone Detection Report"

// WritePDFReport writes the clone report as a PDF: a centered title line,
// then one line per record of the form
// "<Type>: <File> - Lines <a> and <b> (Similarity: <pct>)".
func WritePDFReport(writer io.Writer, records []domain.CloneRecord) error {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Arial", "", 12)
	pdf.CellFormat(200, 10, pdfReportTitle, "", 1, "C", false, 0, "")
	pdf.Ln(10)

	pdf.SetFont("Arial", "", 10)
	for i := range records {
		pdf.CellFormat(200, 10, records[i].String(), "", 1, "L", false, 0, "")
	}

	if err := pdf.Output(writer); err != nil {
		return domain.NewOutputError("failed to write PDF report", err)
	}
	return nil
}
