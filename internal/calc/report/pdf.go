package report

import (
	"fmt"
	"io"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/phpdave11/gofpdf"
)

// Meta is the cover information printed above the sections.
type Meta struct {
	Project string
	Author  string
	Date    time.Time
}

// WritePDF renders d as an A4 PDF.
func WritePDF(w io.Writer, d Document, meta Meta) error {
	if d.Title == "" {
		d.Title = "Engineering Report"
	}
	if meta.Date.IsZero() {
		meta.Date = time.Now()
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	// Core fonts are cp1252: unit symbols such as ³, ° and · survive the
	// translation, characters outside it do not.
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetTitle(d.Title, true)
	pdf.SetAuthor(meta.Author, true)
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(0, 10, tr(d.Title))
	pdf.Ln(12)
	pdf.SetFont("Helvetica", "", 11)
	if meta.Project != "" {
		pdf.Cell(0, 6, tr(fmt.Sprintf("Project: %s", meta.Project)))
		pdf.Ln(6)
	}
	if meta.Author != "" {
		pdf.Cell(0, 6, tr(fmt.Sprintf("Author: %s", meta.Author)))
		pdf.Ln(6)
	}
	pdf.Cell(0, 6, fmt.Sprintf("Date: %s", meta.Date.Format("2006-01-02")))
	pdf.Ln(10)

	for _, s := range d.Sections {
		pdf.SetFont("Helvetica", "B", 12)
		pdf.Cell(0, 8, tr(s.Heading))
		pdf.Ln(8)
		pdf.SetFont("Helvetica", "", 11)
		for _, l := range s.Lines {
			pdf.Cell(60, 6, tr(l.Label))
			pdf.Cell(0, 6, tr(l.Value))
			pdf.Ln(6)
		}
		pdf.Ln(4)
	}

	if err := pdf.Output(w); err != nil {
		return errors.Wrap(err, "render pdf")
	}
	return nil
}
