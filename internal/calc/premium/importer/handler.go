// Package importer loads seed supplier catalogs from XLSX workbooks.
package importer

import (
	"context"
	"encoding/json"
	"io"
	"net/http"

	"github.com/cockroachdb/errors"
	"github.com/xuri/excelize/v2"

	"Estimator/internal/calc/microgreens"
	"Estimator/internal/logger"
)

// ErrEmptySheet is returned for a workbook without data rows.
var ErrEmptySheet = errors.New("empty sheet")

// Store persists imported entries and reports how many were written.
type Store interface {
	Import(ctx context.Context, entries []microgreens.Entry) (int, error)
}

type Handler struct {
	Store Store
}

type CatalogImportResult struct {
	Count   int                 `json:"count"`
	Skipped []int               `json:"skipped,omitempty"`
	Entries []microgreens.Entry `json:"entries"`
}

// ParseCatalog reads the first sheet. The first row is a header; rows that
// do not parse are skipped and reported by their 1-based row number.
func ParseCatalog(r io.Reader) ([]microgreens.Entry, []int, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, nil, errors.Wrap(err, "opening workbook")
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, nil, errors.Wrapf(err, "reading sheet %q", sheet)
	}
	if len(rows) < 2 {
		return nil, nil, ErrEmptySheet
	}

	var entries []microgreens.Entry
	var skipped []int
	for i := 1; i < len(rows); i++ {
		e, err := microgreens.ParseEntry(rows[i])
		if err != nil || e.Name == "" {
			skipped = append(skipped, i+1)
			continue
		}
		entries = append(entries, e)
	}
	return entries, skipped, nil
}

// Catalog stores an uploaded workbook. Without a store there is nowhere to
// keep the rows and the upload is refused with 501.
func (h *Handler) Catalog(w http.ResponseWriter, r *http.Request) {
	if h.Store == nil {
		http.Error(w, "Catalog import needs a database", http.StatusNotImplemented)
		return
	}
	file, _, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "File required", http.StatusBadRequest)
		return
	}
	defer file.Close()

	entries, skipped, err := ParseCatalog(file)
	if err != nil {
		http.Error(w, "Invalid file", http.StatusBadRequest)
		return
	}
	count := len(entries)
	if count > 0 {
		if count, err = h.Store.Import(r.Context(), entries); err != nil {
			logger.Logger.Errorw("catalog import failed", "entries", len(entries), "error", err)
			http.Error(w, "Import failed", http.StatusInternalServerError)
			return
		}
	}
	logger.Logger.Infow("catalog imported", "count", count, "skipped", len(skipped))

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(CatalogImportResult{Count: count, Skipped: skipped, Entries: entries})
}
