package interfaces

import (
	"fmt"
	"io"
	"net/http"

	"github.com/fintrackapp/fintrack/internal/finance/application"
)

// maxImportSize caps uploaded CSV files at 5 MB.
const maxImportSize = 5 << 20

type ExportServiceInterface interface {
	Export(userID, monthTag, format string) (*application.ExportFile, error)
}

type ImportServiceInterface interface {
	ImportCSV(userID string, file io.Reader) (*application.ImportResult, error)
}

type ExportHandler struct {
	exportService ExportServiceInterface
	importService ImportServiceInterface
	respondJSON   func(w http.ResponseWriter, status int, payload interface{})
	respondError  func(w http.ResponseWriter, status int, message string, errors ...[]string)
}

func NewExportHandler(
	exportService ExportServiceInterface,
	importService ImportServiceInterface,
	respondJSON func(w http.ResponseWriter, status int, payload interface{}),
	respondError func(w http.ResponseWriter, status int, message string, errors ...[]string),
) *ExportHandler {
	return &ExportHandler{
		exportService: exportService,
		importService: importService,
		respondJSON:   respondJSON,
		respondError:  respondError,
	}
}

// ExportTransactions streams one month of transactions as a download in the
// requested format: csv, excel or pdf.
func (h *ExportHandler) ExportTransactions(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value("userID").(string)
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	file, err := h.exportService.Export(userID, r.URL.Query().Get("month"), r.URL.Query().Get("format"))
	if err != nil {
		respondServiceError(h.respondError, w, err, "Failed to export transactions")
		return
	}

	w.Header().Set("Content-Type", file.ContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", file.Filename))
	w.WriteHeader(http.StatusOK)
	w.Write(file.Content)
}

// ImportTransactions accepts a multipart upload under the "file" field and
// imports its rows.
func (h *ExportHandler) ImportTransactions(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value("userID").(string)
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	if err := r.ParseMultipartForm(maxImportSize); err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid multipart request")
		return
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "Missing file field")
		return
	}
	defer file.Close()

	result, err := h.importService.ImportCSV(userID, file)
	if err != nil {
		respondServiceError(h.respondError, w, err, "Failed to import transactions")
		return
	}

	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"status": "success",
		"data":   result,
	})
}
