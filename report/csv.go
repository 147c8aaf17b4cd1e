package report

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"os"
	"strconv"

	"windtunnel/model"
)

func ftoa(v float64, prec int) string {
	return strconv.FormatFloat(v, 'f', prec, 64)
}

// CSVRowWriter is satisfied by every exported table row.
type CSVRowWriter interface {
	CSVHeader() []string
	CSVRow() []string
}

// CSVWriter is a buffered CSV file with a header row.
type CSVWriter struct {
	file *os.File
	buf  *bufio.Writer
	csv  *csv.Writer
	rows int
}

func NewCSVWriter(path string, header []string) (*CSVWriter, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("csv create %s: %w", path, err)
	}
	bw := bufio.NewWriter(f)
	w := &CSVWriter{file: f, buf: bw, csv: csv.NewWriter(bw)}
	if len(header) > 0 {
		if err := w.csv.Write(header); err != nil {
			f.Close()
			return nil, fmt.Errorf("csv write header: %w", err)
		}
	}
	return w, nil
}

func (w *CSVWriter) WriteRow(row []string) error {
	w.rows++
	return w.csv.Write(row)
}

// Rows excludes the header.
func (w *CSVWriter) Rows() int {
	return w.rows
}

func (w *CSVWriter) Close() error {
	w.csv.Flush()
	if err := w.csv.Error(); err != nil {
		w.file.Close()
		return err
	}
	if err := w.buf.Flush(); err != nil {
		w.file.Close()
		return err
	}
	return w.file.Close()
}

// CoefficientRow is one line of coefficients.csv.
type CoefficientRow struct {
	model.CoefficientResult
	Precision int
}

func (CoefficientRow) CSVHeader() []string {
	return []string{"alpha", "c_m", "c_t", "drag", "error"}
}

func (r CoefficientRow) CSVRow() []string {
	if r.Failed() && r.Cp == nil {
		return []string{ftoa(r.Angle, 2), "", "", "", r.Err}
	}
	return []string{
		ftoa(r.Angle, 2),
		ftoa(r.CM, r.Precision),
		ftoa(r.CT, r.Precision),
		ftoa(r.Drag, r.Precision),
		r.Err,
	}
}

func writeRows(path string, rows []CSVRowWriter) error {
	if len(rows) == 0 {
		return fmt.Errorf("csv %s: nothing to write", path)
	}
	w, err := NewCSVWriter(path, rows[0].CSVHeader())
	if err != nil {
		return err
	}
	for _, r := range rows {
		if err := w.WriteRow(r.CSVRow()); err != nil {
			w.Close()
			return fmt.Errorf("csv write %s: %w", path, err)
		}
	}
	return w.Close()
}

// WriteCoefficients writes one row per angle, failed angles included.
func WriteCoefficients(path string, results []model.CoefficientResult, prec int) error {
	rows := make([]CSVRowWriter, len(results))
	for i, r := range results {
		rows[i] = CoefficientRow{CoefficientResult: r, Precision: prec}
	}
	return writeRows(path, rows)
}

// WriteCpTable writes the tap positions followed by one Cp column per angle.
// Angles without a Cp series are left out.
func WriteCpTable(path string, sensors model.SensorArray, results []model.CoefficientResult, prec int) error {
	header := []string{"sensor", "x", "y"}
	var series []model.CoefficientResult
	for _, r := range results {
		if len(r.Cp) != sensors.Len() {
			continue
		}
		series = append(series, r)
		header = append(header, fmt.Sprintf("cp_%s", ftoa(r.Angle, 2)))
	}
	w, err := NewCSVWriter(path, header)
	if err != nil {
		return err
	}
	for i := 0; i < sensors.Len(); i++ {
		row := []string{
			fmt.Sprintf("P%03d", i+1),
			ftoa(sensors.X[i], prec),
			ftoa(sensors.Y[i], prec),
		}
		for _, r := range series {
			row = append(row, ftoa(r.Cp[i], prec))
		}
		if err := w.WriteRow(row); err != nil {
			w.Close()
			return fmt.Errorf("csv write %s: %w", path, err)
		}
	}
	return w.Close()
}
