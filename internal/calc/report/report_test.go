package report

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"Estimator/internal/calc"
)

func sample() Document {
	s := Section{Heading: "Solar panel"}
	s.Add("Width", "%.3f cm", 500.0)
	s.Add("Efficiency", "%d %%", 18)
	return Document{Title: "Solar", Sections: []Section{s}}
}

func TestWriteText(t *testing.T) {
	want := "Solar panel:\n" +
		"------------\n" +
		"Width:      500.000 cm\n" +
		"Efficiency: 18 %\n" +
		"\n"
	assert.Equal(t, want, Text(sample()))
}

func TestMerge(t *testing.T) {
	d := Merge("All", sample(), sample())
	assert.Equal(t, "All", d.Title)
	assert.Len(t, d.Sections, 2)
}

func TestWritePDF(t *testing.T) {
	var buf bytes.Buffer
	s := Section{Heading: "Hydrogen"}
	s.Add("Density", "0.090 kg/m³")
	doc := Document{Title: "Report", Sections: []Section{s}}
	require.NoError(t, WritePDF(&buf, doc, Meta{Project: "p", Author: "a", Date: time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)}))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")))
}

func TestHandler(t *testing.T) {
	h := &Handler{Sources: map[string]Source{
		"solar": func(json.RawMessage) (Document, error) { return sample(), nil },
		"broken": func(json.RawMessage) (Document, error) {
			return Document{}, errors.New("boom")
		},
		"invalid": func(json.RawMessage) (Document, error) {
			return Document{}, calc.Invalid("area_m2", "must be positive, got %v", -1)
		},
	}}
	assert.Equal(t, []string{"broken", "invalid", "solar"}, h.Tools())

	tests := []struct {
		name   string
		body   string
		status int
		ctype  string
	}{
		{"pdf", `{"tool":"solar","title":"Roof"}`, http.StatusOK, "application/pdf"},
		{"unknown tool", `{"tool":"nope"}`, http.StatusBadRequest, ""},
		{"source failure", `{"tool":"broken"}`, http.StatusInternalServerError, ""},
		{"invalid input", `{"tool":"invalid"}`, http.StatusBadRequest, ""},
		{"bad json", `{`, http.StatusBadRequest, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/api/tools/report/pdf", strings.NewReader(tt.body))
			h.Generate(rec, req)
			assert.Equal(t, tt.status, rec.Code)
			if tt.ctype != "" {
				assert.Equal(t, tt.ctype, rec.Header().Get("Content-Type"))
			}
		})
	}

	rec := httptest.NewRecorder()
	h.Text(rec, httptest.NewRequest(http.MethodPost, "/api/tools/report/text", strings.NewReader(`{"tool":"solar"}`)))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Width:      500.000 cm")

	rec = httptest.NewRecorder()
	h.Text(rec, httptest.NewRequest(http.MethodPost, "/api/tools/report/text", strings.NewReader(`{"tool":"invalid"}`)))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "area_m2: must be positive")

	rec = httptest.NewRecorder()
	h.Text(rec, httptest.NewRequest(http.MethodPost, "/api/tools/report/text", strings.NewReader(`{"tool":"broken"}`)))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), "boom")
}
