package application

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"time"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"

	"github.com/fintrackapp/fintrack/internal/finance/domain"
	financeErrors "github.com/fintrackapp/fintrack/internal/finance/errors"
	"github.com/fintrackapp/fintrack/internal/moneyfmt"
	"github.com/google/uuid"
)

// maxReportedRowErrors caps the error list in the import summary so a broken
// thousand-row file does not produce a thousand-line response.
const maxReportedRowErrors = 10

var importDateLayouts = []string{"2006-01-02", "02/01/2006"}

// columnAliases maps accepted header names, Portuguese exports included, to
// canonical column keys.
var columnAliases = map[string]string{
	"date":        "date",
	"data":        "date",
	"description": "description",
	"descricao":   "description",
	"type":        "type",
	"tipo":        "type",
	"amount":      "amount",
	"valor":       "amount",
	"category":    "category",
	"categoria":   "category",
	"account":     "account",
	"conta":       "account",
}

var typeAliases = map[string]string{
	"credit":  domain.TypeCredit,
	"entrada": domain.TypeCredit,
	"debit":   domain.TypeDebit,
	"saida":   domain.TypeDebit,
}

// importRow is one successfully parsed CSV line, names still unresolved.
type importRow struct {
	Date        time.Time
	Description string
	Type        string
	Amount      float64
	Category    string
	Account     string
}

type ImportResult struct {
	Imported int      `json:"imported"`
	Skipped  int      `json:"skipped"`
	Errors   []string `json:"errors"`
}

type ImportService struct {
	repo            domain.TransactionRepository
	categoryService CategoryServiceInterface
	accountService  AccountServiceInterface
}

func NewImportService(repo domain.TransactionRepository, categoryService CategoryServiceInterface, accountService AccountServiceInterface) *ImportService {
	return &ImportService{repo: repo, categoryService: categoryService, accountService: accountService}
}

// ImportCSV parses the uploaded file, skips rows that fail validation and
// inserts every valid row inside a single database transaction. A database
// failure rolls the whole batch back; parse failures only skip their row.
func (s *ImportService) ImportCSV(userID string, file io.Reader) (*ImportResult, error) {
	data, err := io.ReadAll(file)
	if err != nil {
		return nil, err
	}

	rows, result, err := parseImportFile(data)
	if err != nil {
		return nil, err
	}

	transactions := make([]domain.Transaction, 0, len(rows))
	for _, row := range rows {
		transaction := domain.Transaction{
			ID:          uuid.NewString(),
			UserID:      userID,
			Description: row.Description,
			Amount:      row.Amount,
			Type:        row.Type,
			Date:        row.Date,
		}
		if row.Category != "" {
			category, err := s.categoryService.FindOrCreateByName(userID, row.Category)
			if err != nil {
				return nil, err
			}
			transaction.CategoryID = &category.ID
		}
		if row.Account != "" {
			account, err := s.accountService.FindOrCreateByName(userID, row.Account)
			if err != nil {
				return nil, err
			}
			transaction.AccountID = &account.ID
		}
		transactions = append(transactions, transaction)
	}

	if len(transactions) > 0 {
		tx, err := s.repo.BeginTransaction()
		if err != nil {
			return nil, err
		}
		for _, transaction := range transactions {
			if err := s.repo.SaveWithTransaction(transaction, tx); err != nil {
				tx.Rollback()
				return nil, err
			}
		}
		if err := tx.Commit(); err != nil {
			return nil, err
		}
	}

	result.Imported = len(transactions)
	return result, nil
}

// parseImportFile decodes, sniffs the delimiter and parses every data row.
// It returns the valid rows plus a result carrying the skip count and the
// first few row errors.
func parseImportFile(data []byte) ([]importRow, *ImportResult, error) {
	if !utf8.Valid(data) {
		decoded, err := charmap.ISO8859_1.NewDecoder().Bytes(data)
		if err != nil {
			return nil, nil, financeErrors.NewValidationError("File is not valid UTF-8 or Latin-1")
		}
		data = decoded
	}

	reader := csv.NewReader(bytes.NewReader(data))
	reader.Comma = sniffDelimiter(data)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, nil, financeErrors.NewValidationError("File is empty or has no header row")
	}

	columns, err := mapColumns(header)
	if err != nil {
		return nil, nil, err
	}

	result := &ImportResult{Errors: []string{}}
	var rows []importRow
	for line := 2; ; line++ {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			result.Skipped++
			reportRowError(result, line, "malformed CSV line")
			continue
		}

		row, err := parseRecord(record, columns)
		if err != nil {
			result.Skipped++
			reportRowError(result, line, err.Error())
			continue
		}
		rows = append(rows, row)
	}
	return rows, result, nil
}

// sniffDelimiter picks the separator with more occurrences in the header
// line. Comma wins ties.
func sniffDelimiter(data []byte) rune {
	line := data
	if i := bytes.IndexByte(data, '\n'); i >= 0 {
		line = data[:i]
	}
	if bytes.Count(line, []byte{';'}) > bytes.Count(line, []byte{','}) {
		return ';'
	}
	return ','
}

// mapColumns resolves header names to field positions and rejects files
// missing any of the required columns.
func mapColumns(header []string) (map[string]int, error) {
	columns := make(map[string]int, len(header))
	for i, name := range header {
		key := strings.ToLower(strings.TrimSpace(strings.TrimPrefix(name, "\uFEFF")))
		if canonical, ok := columnAliases[key]; ok {
			columns[canonical] = i
		}
	}
	for _, required := range []string{"date", "description", "type", "amount"} {
		if _, ok := columns[required]; !ok {
			return nil, financeErrors.NewValidationError(fmt.Sprintf("Missing required column: %s", required))
		}
	}
	return columns, nil
}

func parseRecord(record []string, columns map[string]int) (importRow, error) {
	field := func(key string) string {
		i, ok := columns[key]
		if !ok || i >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[i])
	}

	date, err := parseImportDate(field("date"))
	if err != nil {
		return importRow{}, err
	}

	description := field("description")
	if description == "" {
		return importRow{}, fmt.Errorf("description is empty")
	}

	transactionType, ok := typeAliases[strings.ToLower(field("type"))]
	if !ok {
		return importRow{}, fmt.Errorf("unknown type %q", field("type"))
	}

	amount, err := moneyfmt.Parse(field("amount"))
	if err != nil {
		return importRow{}, fmt.Errorf("invalid amount %q", field("amount"))
	}
	if amount <= 0 {
		return importRow{}, fmt.Errorf("amount must be greater than zero")
	}

	return importRow{
		Date:        date,
		Description: description,
		Type:        transactionType,
		Amount:      amount,
		Category:    field("category"),
		Account:     field("account"),
	}, nil
}

func parseImportDate(value string) (time.Time, error) {
	for _, layout := range importDateLayouts {
		if date, err := time.Parse(layout, value); err == nil {
			return date.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid date %q", value)
}

func reportRowError(result *ImportResult, line int, message string) {
	if len(result.Errors) >= maxReportedRowErrors {
		return
	}
	result.Errors = append(result.Errors, financeErrors.NewRowError(line, message).Error())
}
