package records

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/miku/collabnet/profile"
	"github.com/xuri/excelize/v2"
)

// ErrEmptySheet is returned for a spreadsheet without any sheet or rows.
var ErrEmptySheet = errors.New("empty spreadsheet")

// RowFunc is called for each data row, with cells addressed by header name.
type RowFunc func(row Row) error

// Row is a single data row of a table.
type Row struct {
	header map[string]int
	cells  []string
}

// Get returns the value of a column, or the empty string if the row is
// shorter than the header.
func (r Row) Get(column string) string {
	i, ok := r.header[column]
	if !ok || i >= len(r.cells) {
		return ""
	}
	return r.cells[i]
}

// ReadTable reads a table with a header row in the given format and calls
// fn for every data row.
func ReadTable(r io.Reader, format profile.Format, fn RowFunc) error {
	switch format {
	case profile.FormatCSV:
		return readDelimited(r, ',', fn)
	case profile.FormatTSV:
		return readTabbed(r, fn)
	case profile.FormatXLSX:
		return readSpreadsheet(r, fn)
	default:
		return fmt.Errorf("unsupported format: %q", format)
	}
}

// maxLineSize limits a single line of a tab delimited export.
const maxLineSize = 64 * 1024 * 1024

func readDelimited(r io.Reader, comma rune, fn RowFunc) error {
	cr := csv.NewReader(r)
	cr.Comma = comma
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true
	var header map[string]int
	for {
		cells, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return err
		}
		if header == nil {
			header = headerIndex(cells)
			continue
		}
		if isBlank(cells) {
			continue
		}
		if err := fn(Row{header: header, cells: cells}); err != nil {
			return err
		}
	}
	if header == nil {
		return io.ErrUnexpectedEOF
	}
	return nil
}

// readTabbed reads a tab delimited export line by line. These exports are
// never quoted, so a quote is an ordinary character, even at the start of a
// field.
func readTabbed(r io.Reader, fn RowFunc) error {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	var header map[string]int
	for sc.Scan() {
		line := strings.TrimSuffix(sc.Text(), "\r")
		cells := strings.Split(line, "\t")
		if header == nil {
			header = headerIndex(cells)
			continue
		}
		if isBlank(cells) {
			continue
		}
		if err := fn(Row{header: header, cells: cells}); err != nil {
			return err
		}
	}
	if err := sc.Err(); err != nil {
		return err
	}
	if header == nil {
		return io.ErrUnexpectedEOF
	}
	return nil
}

// readSpreadsheet reads the first sheet of an xlsx workbook.
func readSpreadsheet(r io.Reader, fn RowFunc) error {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return err
	}
	defer f.Close()
	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return ErrEmptySheet
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return err
	}
	if len(rows) == 0 {
		return ErrEmptySheet
	}
	header := headerIndex(rows[0])
	for _, cells := range rows[1:] {
		if isBlank(cells) {
			continue
		}
		if err := fn(Row{header: header, cells: cells}); err != nil {
			return err
		}
	}
	return nil
}

// headerIndex maps trimmed column names to positions, dropping a byte order
// mark from the first column. On duplicate names the first column wins.
func headerIndex(cells []string) map[string]int {
	header := make(map[string]int, len(cells))
	for i, c := range cells {
		if i == 0 {
			c = strings.TrimPrefix(c, "\ufeff")
		}
		c = strings.TrimSpace(c)
		if _, ok := header[c]; ok {
			continue
		}
		header[c] = i
	}
	return header
}

func isBlank(cells []string) bool {
	for _, c := range cells {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
