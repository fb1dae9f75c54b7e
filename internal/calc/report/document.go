package report

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"
)

// Line is one labelled value of a report.
type Line struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// Section is a headed block of lines.
type Section struct {
	Heading string `json:"heading"`
	Lines   []Line `json:"lines"`
}

// Add appends a line whose value is formatted with fmt, so quantities accept
// verbs such as %.3f.
func (s *Section) Add(label, format string, args ...any) {
	s.Lines = append(s.Lines, Line{Label: label, Value: fmt.Sprintf(format, args...)})
}

// Document is the rendered form every calculator produces.
type Document struct {
	Title    string    `json:"title"`
	Sections []Section `json:"sections"`
}

// Append adds sections to the document.
func (d *Document) Append(s ...Section) {
	d.Sections = append(d.Sections, s...)
}

// Merge concatenates documents under one title.
func Merge(title string, docs ...Document) Document {
	out := Document{Title: title}
	for _, d := range docs {
		out.Append(d.Sections...)
	}
	return out
}

// WriteText renders the document as aligned console text:
//
//	Heading:
//	--------
//	Label:  value
func WriteText(w io.Writer, d Document) error {
	var b strings.Builder
	for _, s := range d.Sections {
		b.WriteString(s.Heading + ":\n")
		b.WriteString(strings.Repeat("-", utf8.RuneCountInString(s.Heading)+1) + "\n")
		width := 0
		for _, l := range s.Lines {
			if n := utf8.RuneCountInString(l.Label); n > width {
				width = n
			}
		}
		for _, l := range s.Lines {
			pad := width - utf8.RuneCountInString(l.Label)
			b.WriteString(l.Label + ":" + strings.Repeat(" ", pad+1) + l.Value + "\n")
		}
		b.WriteString("\n")
	}
	_, err := io.WriteString(w, b.String())
	return err
}

// Text returns WriteText output as a string.
func Text(d Document) string {
	var b strings.Builder
	_ = WriteText(&b, d)
	return b.String()
}
