package application

import (
	"bytes"
	"encoding/csv"
	"fmt"

	"github.com/jung-kurt/gofpdf"

	"github.com/fintrackapp/fintrack/internal/finance/domain"
	financeErrors "github.com/fintrackapp/fintrack/internal/finance/errors"
	"github.com/fintrackapp/fintrack/internal/moneyfmt"
)

const (
	FormatCSV   = "csv"
	FormatExcel = "excel"
	FormatPDF   = "pdf"
)

// pdfRowsPerPage is the fixed number of transaction lines per PDF page.
const pdfRowsPerPage = 40

var exportHeader = []string{"Date", "Description", "Type", "Category", "Account", "Amount"}

// ExportFile is a rendered export ready to be written to the response.
type ExportFile struct {
	Content     []byte
	ContentType string
	Filename    string
}

type ExportService struct {
	repo domain.TransactionRepository
}

func NewExportService(repo domain.TransactionRepository) *ExportService {
	return &ExportService{repo: repo}
}

// Export renders one month of transactions in the requested format. The
// excel format reuses the CSV bytes under a spreadsheet content type, which
// every spreadsheet application opens directly.
func (s *ExportService) Export(userID, monthTag, format string) (*ExportFile, error) {
	window := MonthWindowFromTag(monthTag)

	rows, err := s.repo.FindExportRowsInRange(userID, window.Start, window.Next)
	if err != nil {
		return nil, err
	}

	switch format {
	case FormatCSV, "":
		content, err := renderCSV(rows)
		if err != nil {
			return nil, err
		}
		return &ExportFile{
			Content:     content,
			ContentType: "text/csv; charset=utf-8",
			Filename:    fmt.Sprintf("transactions_%s.csv", window.Tag),
		}, nil
	case FormatExcel:
		content, err := renderCSV(rows)
		if err != nil {
			return nil, err
		}
		return &ExportFile{
			Content:     content,
			ContentType: "application/vnd.ms-excel",
			Filename:    fmt.Sprintf("transactions_%s.xls", window.Tag),
		}, nil
	case FormatPDF:
		content, err := renderPDF(window.Tag, rows)
		if err != nil {
			return nil, err
		}
		return &ExportFile{
			Content:     content,
			ContentType: "application/pdf",
			Filename:    fmt.Sprintf("transactions_%s.pdf", window.Tag),
		}, nil
	default:
		return nil, financeErrors.NewValidationError(fmt.Sprintf("Unsupported export format: %s", format))
	}
}

// renderCSV writes semicolon-separated rows that the importer can read back
// unchanged.
func renderCSV(rows []domain.ExportRow) ([]byte, error) {
	var buffer bytes.Buffer
	writer := csv.NewWriter(&buffer)
	writer.Comma = ';'

	if err := writer.Write(exportHeader); err != nil {
		return nil, err
	}
	for _, row := range rows {
		record := []string{
			row.Date.UTC().Format("2006-01-02"),
			row.Description,
			row.Type,
			row.Category,
			row.Account,
			moneyfmt.Format(row.Amount),
		}
		if err := writer.Write(record); err != nil {
			return nil, err
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, err
	}
	return buffer.Bytes(), nil
}

func renderPDF(monthTag string, rows []domain.ExportRow) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(fmt.Sprintf("Transactions %s", monthTag), false)

	widths := []float64{24, 62, 18, 32, 28, 26}
	writeHeader := func() {
		pdf.AddPage()
		pdf.SetFont("Arial", "B", 14)
		pdf.CellFormat(0, 10, fmt.Sprintf("Transactions %s", monthTag), "", 1, "L", false, 0, "")
		pdf.SetFont("Arial", "B", 9)
		for i, title := range exportHeader {
			pdf.CellFormat(widths[i], 7, title, "1", 0, "L", false, 0, "")
		}
		pdf.Ln(-1)
		pdf.SetFont("Arial", "", 9)
	}

	writeHeader()
	for i, row := range rows {
		if i > 0 && i%pdfRowsPerPage == 0 {
			writeHeader()
		}
		cells := []string{
			row.Date.UTC().Format("2006-01-02"),
			row.Description,
			row.Type,
			row.Category,
			row.Account,
			moneyfmt.Format(row.Amount),
		}
		for j, cell := range cells {
			align := "L"
			if j == len(cells)-1 {
				align = "R"
			}
			pdf.CellFormat(widths[j], 6, cell, "1", 0, align, false, 0, "")
		}
		pdf.Ln(-1)
	}

	var buffer bytes.Buffer
	if err := pdf.Output(&buffer); err != nil {
		return nil, err
	}
	return buffer.Bytes(), nil
}
