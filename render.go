package cellsheet

import (
	"io"
	"strings"
)

// PrintValues writes the printable rectangle's evaluated values to w:
// tab-separated within a row, each row terminated by "\n". Absent cells
// render as the empty string.
func (s *Sheet) PrintValues(w io.Writer) error {
	return s.render(w, func(c *Cell) string {
		if c == nil {
			return ""
		}
		return c.GetValue().String()
	})
}

// PrintTexts writes the printable rectangle's stored text to w, in the
// same tab-separated, newline-terminated layout as PrintValues.
func (s *Sheet) PrintTexts(w io.Writer) error {
	return s.render(w, func(c *Cell) string {
		if c == nil {
			return ""
		}
		return c.GetText()
	})
}

func (s *Sheet) render(w io.Writer, cellText func(*Cell) string) error {
	rows, cols := s.PrintableSize()

	var buf strings.Builder
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			if c > 0 {
				buf.WriteByte('\t')
			}
			buf.WriteString(cellText(s.cells[Position{Row: r, Col: c}]))
		}
		buf.WriteByte('\n')
	}

	_, err := io.WriteString(w, buf.String())
	return err
}
