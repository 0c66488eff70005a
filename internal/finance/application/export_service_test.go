package application

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fintrackapp/fintrack/internal/finance/domain"
	financeErrors "github.com/fintrackapp/fintrack/internal/finance/errors"
	"github.com/fintrackapp/fintrack/internal/finance/infrastructure"
)

func newExportFixture() (*ExportService, *infrastructure.MockTransactionRepository) {
	groceriesID, cardID := 1, 1
	repo := &infrastructure.MockTransactionRepository{
		CategoryNames: map[int]string{groceriesID: "Groceries"},
		AccountNames:  map[int]string{cardID: "Card"},
		Transactions: []domain.Transaction{
			{
				ID: "a", UserID: testUserID, Description: "Weekly shop", Type: domain.TypeDebit,
				Amount: 52.5, Date: time.Date(2026, time.March, 10, 0, 0, 0, 0, time.UTC),
				CategoryID: &groceriesID, AccountID: &cardID,
			},
			{
				ID: "b", UserID: testUserID, Description: "Salary", Type: domain.TypeCredit,
				Amount: 3000, Date: time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC),
			},
			{
				ID: "c", UserID: testUserID, Description: "Outside month", Type: domain.TypeDebit,
				Amount: 10, Date: time.Date(2026, time.April, 1, 0, 0, 0, 0, time.UTC),
			},
		},
	}
	return NewExportService(repo), repo
}

func TestExportCSV(t *testing.T) {
	service, _ := newExportFixture()

	file, err := service.Export(testUserID, "2026-03", FormatCSV)
	require.NoError(t, err)

	assert.Equal(t, "text/csv; charset=utf-8", file.ContentType)
	assert.Equal(t, "transactions_2026-03.csv", file.Filename)

	expected := "Date;Description;Type;Category;Account;Amount\n" +
		"2026-03-10;Weekly shop;debit;Groceries;Card;52.50\n" +
		"2026-03-01;Salary;credit;;;3000.00\n"
	assert.Equal(t, expected, string(file.Content))
}

func TestExportCSV_RoundTripsThroughImport(t *testing.T) {
	service, _ := newExportFixture()

	file, err := service.Export(testUserID, "2026-03", FormatCSV)
	require.NoError(t, err)

	rows, result, err := parseImportFile(file.Content)
	require.NoError(t, err)
	assert.Equal(t, 0, result.Skipped)
	require.Len(t, rows, 2)
	assert.Equal(t, "Weekly shop", rows[0].Description)
	assert.InDelta(t, 52.50, rows[0].Amount, 0.001)
	assert.Equal(t, "Groceries", rows[0].Category)
}

func TestExportExcel_SameBytesAsCSV(t *testing.T) {
	service, _ := newExportFixture()

	csvFile, err := service.Export(testUserID, "2026-03", FormatCSV)
	require.NoError(t, err)
	excelFile, err := service.Export(testUserID, "2026-03", FormatExcel)
	require.NoError(t, err)

	assert.Equal(t, csvFile.Content, excelFile.Content)
	assert.Equal(t, "application/vnd.ms-excel", excelFile.ContentType)
	assert.Equal(t, "transactions_2026-03.xls", excelFile.Filename)
}

func TestExportPDF(t *testing.T) {
	service, _ := newExportFixture()

	file, err := service.Export(testUserID, "2026-03", FormatPDF)
	require.NoError(t, err)

	assert.Equal(t, "application/pdf", file.ContentType)
	assert.Equal(t, "transactions_2026-03.pdf", file.Filename)
	require.Greater(t, len(file.Content), 4)
	assert.Equal(t, "%PDF", string(file.Content[:4]))
}

func TestExport_UnsupportedFormat(t *testing.T) {
	service, _ := newExportFixture()

	_, err := service.Export(testUserID, "2026-03", "xml")
	require.Error(t, err)
	assert.True(t, financeErrors.IsValidationError(err))
}

func TestExport_DefaultsToCSV(t *testing.T) {
	service, _ := newExportFixture()

	file, err := service.Export(testUserID, "2026-03", "")
	require.NoError(t, err)
	assert.Equal(t, "text/csv; charset=utf-8", file.ContentType)
}
