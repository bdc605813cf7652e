package reports

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"time"

	"github.com/jung-kurt/gofpdf"
	"github.com/xuri/excelize/v2"
)

// RosterExporter renders a participant roster as CSV, XLSX or PDF
type RosterExporter interface {
	Export(format string, data RosterData) ([]byte, string, string, error)
}

type rosterExporter struct{}

func NewRosterExporter() RosterExporter {
	return &rosterExporter{}
}

// Export returns the file bytes, a filename and the matching content type
func (e *rosterExporter) Export(format string, data RosterData) ([]byte, string, string, error) {
	timestamp := time.Now().Format("20060102_150405")

	switch format {
	case FormatCSV:
		out, err := e.exportCSV(data)
		if err != nil {
			return nil, "", "", err
		}
		filename := fmt.Sprintf("participants_%s.csv", timestamp)
		return out, filename, "text/csv", nil

	case FormatExcel:
		out, err := e.exportExcel(data)
		if err != nil {
			return nil, "", "", err
		}
		filename := fmt.Sprintf("participants_%s.xlsx", timestamp)
		return out, filename, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", nil

	case FormatPDF:
		out, err := e.exportPDF(data)
		if err != nil {
			return nil, "", "", err
		}
		filename := fmt.Sprintf("participants_%s.pdf", timestamp)
		return out, filename, "application/pdf", nil

	default:
		return nil, "", "", fmt.Errorf("unsupported format: %s", format)
	}
}

func (e *rosterExporter) headers(data RosterData) []string {
	headers := []string{"Name", "Email", "Ref Code", "Registered At"}
	return append(headers, data.FieldNames...)
}

func (e *rosterExporter) row(data RosterData, i int) []string {
	p := data.Participants[i]

	answers := make(map[string]string, len(p.Fields))
	for _, f := range p.Fields {
		answers[f.FieldName] = f.ResponseValue
	}

	row := []string{p.Name, p.Email, p.RefCode, p.RegisteredAt.Format("2006-01-02 15:04:05")}
	for _, name := range data.FieldNames {
		row = append(row, answers[name])
	}
	return row
}

func (e *rosterExporter) exportCSV(data RosterData) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(e.headers(data)); err != nil {
		return nil, err
	}
	for i := range data.Participants {
		if err := w.Write(e.row(data, i)); err != nil {
			return nil, err
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (e *rosterExporter) exportExcel(data RosterData) ([]byte, error) {
	f := excelize.NewFile()
	sheetName := "Participants"
	f.SetSheetName("Sheet1", sheetName)

	for i, header := range e.headers(data) {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheetName, cell, header)
	}

	for i := range data.Participants {
		for j, value := range e.row(data, i) {
			cell, _ := excelize.CoordinatesToCellName(j+1, i+2)
			f.SetCellValue(sheetName, cell, value)
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (e *rosterExporter) exportPDF(data RosterData) ([]byte, error) {
	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Arial", "B", 16)
	pdf.Cell(0, 10, fmt.Sprintf("Participants - %s", data.EventTitle))
	pdf.Ln(20)

	headers := e.headers(data)
	pageWidth, _ := pdf.GetPageSize()
	usable := pageWidth - 20
	colWidth := usable / float64(len(headers))

	pdf.SetFont("Arial", "B", 9)
	for _, h := range headers {
		pdf.CellFormat(colWidth, 7, h, "1", 0, "C", false, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Arial", "", 8)
	for i := range data.Participants {
		for _, v := range e.row(data, i) {
			pdf.CellFormat(colWidth, 6, v, "1", 0, "L", false, 0, "")
		}
		pdf.Ln(-1)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
