package adapter

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
)

// Delimiters of text tables
const (
	DelimTab        = "tab"
	DelimComma      = "comma"
	DelimWhitespace = "whitespace"
)

// SheetRef points at one table: a workbook sheet or a text file.
type SheetRef struct {
	Path       string `yaml:"path"`
	Sheet      string `yaml:"sheet"`       // xlsx sheet name
	SheetIndex int    `yaml:"sheet_index"` // used when Sheet is empty
	Delimiter  string `yaml:"delimiter"`   // text files only, guessed from the extension when empty
}

func (r SheetRef) isWorkbook() bool {
	switch strings.ToLower(filepath.Ext(r.Path)) {
	case ".xlsx", ".xlsm":
		return true
	}
	return false
}

func (r SheetRef) delimiter() string {
	if r.Delimiter != "" {
		return r.Delimiter
	}
	switch strings.ToLower(filepath.Ext(r.Path)) {
	case ".csv":
		return DelimComma
	case ".txt", ".tsv":
		return DelimTab
	}
	return DelimWhitespace
}

// readRows returns every row of the table as raw cells.
func readRows(ref SheetRef) ([][]string, error) {
	if ref.isWorkbook() {
		return readSheet(ref)
	}
	return readText(ref.Path, ref.delimiter())
}

func readSheet(ref SheetRef) ([][]string, error) {
	f, err := excelize.OpenFile(ref.Path)
	if err != nil {
		return nil, fmt.Errorf("open workbook %s: %w", ref.Path, err)
	}
	defer f.Close()

	sheet := ref.Sheet
	if sheet == "" {
		sheets := f.GetSheetList()
		if ref.SheetIndex < 0 || ref.SheetIndex >= len(sheets) {
			return nil, fmt.Errorf("workbook %s has %d sheets, no index %d", ref.Path, len(sheets), ref.SheetIndex)
		}
		sheet = sheets[ref.SheetIndex]
	}
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("read sheet %s of %s: %w", sheet, ref.Path, err)
	}
	return rows, nil
}

func readText(path, delim string) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	if delim == DelimComma {
		r := csv.NewReader(f)
		r.FieldsPerRecord = -1
		r.TrimLeadingSpace = true
		rows, err := r.ReadAll()
		if err != nil {
			return nil, fmt.Errorf("read csv %s: %w", path, err)
		}
		return rows, nil
	}

	var rows [][]string
	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 64*1024), 4*1024*1024)
	for sc.Scan() {
		line := strings.TrimRight(sc.Text(), "\r\n")
		switch delim {
		case DelimTab:
			rows = append(rows, strings.Split(line, "\t"))
		case DelimWhitespace:
			rows = append(rows, strings.Fields(line))
		default:
			return nil, fmt.Errorf("unknown delimiter %q", delim)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return rows, nil
}

// column converts "B", "b" or "2" to a zero based index. Empty means def.
func column(name string, def int) (int, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return def, nil
	}
	if n, err := strconv.Atoi(name); err == nil {
		if n < 1 {
			return 0, fmt.Errorf("column %q: numbers start at 1", name)
		}
		return n - 1, nil
	}
	n, err := excelize.ColumnNameToNumber(strings.ToUpper(name))
	if err != nil {
		return 0, fmt.Errorf("column %q: %w", name, err)
	}
	return n - 1, nil
}

// cell returns row[i] as a number; missing or non-numeric cells are NaN.
func cell(row []string, i int) float64 {
	if i < 0 || i >= len(row) {
		return math.NaN()
	}
	s := strings.TrimSpace(row[i])
	if s == "" {
		return math.NaN()
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		// decimal comma from localized sheets
		v, err = strconv.ParseFloat(strings.Replace(s, ",", ".", 1), 64)
		if err != nil {
			return math.NaN()
		}
	}
	return v
}

// dataRows drops the first n rows (1-based first data row is n+1).
func dataRows(rows [][]string, firstRow int) [][]string {
	skip := firstRow - 1
	if skip < 0 {
		skip = 0
	}
	if skip >= len(rows) {
		return nil
	}
	return rows[skip:]
}
