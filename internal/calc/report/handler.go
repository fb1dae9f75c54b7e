package report

import (
	"encoding/json"
	"net/http"
	"sort"
	"time"

	"Estimator/internal/calc"
	"Estimator/internal/logger"
)

// Source builds a calculator's report from its raw JSON input. Empty input
// means the calculator's defaults.
type Source func(input json.RawMessage) (Document, error)

type Input struct {
	Project string          `json:"project"`
	Author  string          `json:"author"`
	Title   string          `json:"title"`
	Tool    string          `json:"tool"`
	Input   json.RawMessage `json:"input"`
}

type Handler struct {
	Sources map[string]Source
}

// Tools lists the registered tool names.
func (h *Handler) Tools() []string {
	names := make([]string, 0, len(h.Sources))
	for name := range h.Sources {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (h *Handler) Generate(w http.ResponseWriter, r *http.Request) {
	var input Input
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	src, ok := h.Sources[input.Tool]
	if !ok {
		http.Error(w, "Unknown tool", http.StatusBadRequest)
		return
	}
	doc, err := src(input.Input)
	if err != nil {
		sourceError(w, input.Tool, err)
		return
	}
	if input.Title != "" {
		doc.Title = input.Title
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", "attachment; filename=\"report.pdf\"")
	meta := Meta{Project: input.Project, Author: input.Author, Date: time.Now()}
	if err := WritePDF(w, doc, meta); err != nil {
		http.Error(w, "Report generation error", http.StatusInternalServerError)
		return
	}
}

// Text serves the plain-text rendering, used by the bot and curl users.
func (h *Handler) Text(w http.ResponseWriter, r *http.Request) {
	var input Input
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	src, ok := h.Sources[input.Tool]
	if !ok {
		http.Error(w, "Unknown tool", http.StatusBadRequest)
		return
	}
	doc, err := src(input.Input)
	if err != nil {
		sourceError(w, input.Tool, err)
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	WriteText(w, doc)
}

// sourceError reports a failed source. Input errors are echoed back; other
// failures are logged and answered with a bare 500.
func sourceError(w http.ResponseWriter, tool string, err error) {
	status := calc.HTTPStatus(err)
	if status == http.StatusInternalServerError {
		logger.Logger.Errorw("report source failed", "tool", tool, "error", err)
		http.Error(w, "Report unavailable", status)
		return
	}
	http.Error(w, "Calculation error: "+err.Error(), status)
}
