package export

import (
	"bytes"
	"fmt"
	"strings"
)

// Dataset defines tabular export content.
type Dataset struct {
	Headers []string
	Rows    []map[string]string
	// Quoted lists headers whose values are always wrapped in double quotes.
	Quoted map[string]bool
}

// CSVExporter renders Dataset records into CSV bytes.
type CSVExporter struct{}

// NewCSVExporter builds a CSV exporter.
func NewCSVExporter() *CSVExporter {
	return &CSVExporter{}
}

// Render produces CSV encoded bytes for the dataset. Quoted columns are always
// enclosed in quotes; other columns are quoted only when they contain a comma,
// quote or line break. Embedded quotes are doubled.
func (e *CSVExporter) Render(data Dataset) ([]byte, error) {
	if len(data.Headers) == 0 {
		return nil, fmt.Errorf("csv requires at least one header")
	}
	buf := &bytes.Buffer{}
	writeRecord(buf, data.Headers, func(i int, value string) bool { return needsQuotes(value) })
	for _, row := range data.Rows {
		record := make([]string, len(data.Headers))
		for i, header := range data.Headers {
			record[i] = row[header]
		}
		writeRecord(buf, record, func(i int, value string) bool {
			return data.Quoted[data.Headers[i]] || needsQuotes(value)
		})
	}
	return buf.Bytes(), nil
}

func writeRecord(buf *bytes.Buffer, record []string, quote func(int, string) bool) {
	for i, value := range record {
		if i > 0 {
			buf.WriteByte(',')
		}
		if quote(i, value) {
			buf.WriteByte('"')
			buf.WriteString(strings.ReplaceAll(value, `"`, `""`))
			buf.WriteByte('"')
			continue
		}
		buf.WriteString(value)
	}
	buf.WriteByte('\n')
}

func needsQuotes(value string) bool {
	return strings.ContainsAny(value, ",\"\r\n")
}
