package application

import (
	"bytes"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fintrackapp/fintrack/internal/finance/domain"
	financeErrors "github.com/fintrackapp/fintrack/internal/finance/errors"
	"github.com/fintrackapp/fintrack/internal/finance/infrastructure"
)

func TestParseImportFile_CommaDelimited(t *testing.T) {
	data := []byte("date,description,type,amount,category,account\n" +
		"2026-03-10,Weekly shop,debit,52.50,Groceries,Card\n" +
		"2026-03-11,Salary,credit,3000,,Bank\n")

	rows, result, err := parseImportFile(data)
	require.NoError(t, err)
	assert.Equal(t, 0, result.Skipped)
	assert.Empty(t, result.Errors)
	require.Len(t, rows, 2)

	assert.Equal(t, "Weekly shop", rows[0].Description)
	assert.Equal(t, domain.TypeDebit, rows[0].Type)
	assert.InDelta(t, 52.50, rows[0].Amount, 0.001)
	assert.Equal(t, "Groceries", rows[0].Category)
	assert.Equal(t, "Card", rows[0].Account)
	assert.Equal(t, "2026-03-10", rows[0].Date.Format("2006-01-02"))

	assert.Equal(t, domain.TypeCredit, rows[1].Type)
	assert.Empty(t, rows[1].Category)
}

func TestParseImportFile_SemicolonAndPortugueseHeaders(t *testing.T) {
	data := []byte("Data;Descricao;Tipo;Valor;Categoria;Conta\n" +
		"10/03/2026;Mercado;saida;1.234,56;Mercado;Carteira\n" +
		"11/03/2026;Salario;entrada;3000,00;;\n")

	rows, result, err := parseImportFile(data)
	require.NoError(t, err)
	assert.Equal(t, 0, result.Skipped)
	require.Len(t, rows, 2)

	assert.Equal(t, domain.TypeDebit, rows[0].Type)
	assert.InDelta(t, 1234.56, rows[0].Amount, 0.001)
	assert.Equal(t, "2026-03-10", rows[0].Date.Format("2006-01-02"))
	assert.Equal(t, domain.TypeCredit, rows[1].Type)
}

func TestParseImportFile_SkipsBadRows(t *testing.T) {
	data := []byte("date,description,type,amount\n" +
		"2026-03-10,Good row,debit,10.00\n" +
		"not-a-date,Bad date,debit,10.00\n" +
		"2026-03-12,,debit,10.00\n" +
		"2026-03-13,Bad type,transfer,10.00\n" +
		"2026-03-14,Bad amount,debit,ten\n" +
		"2026-03-15,Negative,debit,-5\n")

	rows, result, err := parseImportFile(data)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, 5, result.Skipped)
	require.Len(t, result.Errors, 5)
	assert.Contains(t, result.Errors[0], "row 3")
	assert.Contains(t, result.Errors[0], "invalid date")
}

func TestParseImportFile_ErrorListCapped(t *testing.T) {
	var builder strings.Builder
	builder.WriteString("date,description,type,amount\n")
	for i := 0; i < 30; i++ {
		builder.WriteString(fmt.Sprintf("bad-date-%d,entry,debit,10\n", i))
	}

	rows, result, err := parseImportFile([]byte(builder.String()))
	require.NoError(t, err)
	assert.Empty(t, rows)
	assert.Equal(t, 30, result.Skipped)
	assert.Len(t, result.Errors, maxReportedRowErrors)
}

func TestParseImportFile_MissingRequiredColumn(t *testing.T) {
	data := []byte("date,description,amount\n2026-03-10,No type column,10.00\n")

	_, _, err := parseImportFile(data)
	require.Error(t, err)
	assert.True(t, financeErrors.IsValidationError(err))
	assert.Contains(t, err.Error(), "type")
}

func TestParseImportFile_Latin1Fallback(t *testing.T) {
	// "Cartão" with a Latin-1 encoded a-tilde (0xE3), invalid as UTF-8.
	data := []byte("date,description,type,amount\n2026-03-10,Cart\xe3o,debit,10.00\n")

	rows, result, err := parseImportFile(data)
	require.NoError(t, err)
	assert.Equal(t, 0, result.Skipped)
	require.Len(t, rows, 1)
	assert.Equal(t, "Cartão", rows[0].Description)
}

func TestParseImportFile_ByteOrderMark(t *testing.T) {
	data := []byte("\uFEFFdate,description,type,amount\n2026-03-10,BOM header,debit,10.00\n")

	rows, _, err := parseImportFile(data)
	require.NoError(t, err)
	require.Len(t, rows, 1)
}

func TestImportCSV_AllRowsInvalid(t *testing.T) {
	transactionRepo := &infrastructure.MockTransactionRepository{}
	categoryService := NewCategoryService(&infrastructure.MockCategoryRepository{}, transactionRepo)
	accountService := NewAccountService(&infrastructure.MockAccountRepository{}, transactionRepo)
	service := NewImportService(transactionRepo, categoryService, accountService)

	file := bytes.NewReader([]byte("date,description,type,amount\nbad,entry,debit,10\n"))
	result, err := service.ImportCSV(testUserID, file)
	require.NoError(t, err)
	assert.Equal(t, 0, result.Imported)
	assert.Equal(t, 1, result.Skipped)
	assert.Empty(t, transactionRepo.Transactions)
}
