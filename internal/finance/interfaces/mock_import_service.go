package interfaces

import (
	"io"

	"github.com/fintrackapp/fintrack/internal/finance/application"
)

// MockImportService records the upload instead of touching the database.
type MockImportService struct {
	Result   *application.ImportResult
	Err      error
	GotUser  string
	GotBytes []byte
}

func (m *MockImportService) ImportCSV(userID string, file io.Reader) (*application.ImportResult, error) {
	m.GotUser = userID
	m.GotBytes, _ = io.ReadAll(file)
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Result, nil
}
