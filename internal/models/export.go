package models

import "strings"

// ExportFormat enumerates supported bulk export formats.
type ExportFormat string

const (
	ExportFormatJSON ExportFormat = "json"
	ExportFormatCSV  ExportFormat = "csv"
	ExportFormatPDF  ExportFormat = "pdf"
)

// ParseExportFormat maps a query value to a format; anything unknown exports JSON.
func ParseExportFormat(raw string) ExportFormat {
	switch ExportFormat(strings.ToLower(strings.TrimSpace(raw))) {
	case ExportFormatCSV:
		return ExportFormatCSV
	case ExportFormatPDF:
		return ExportFormatPDF
	default:
		return ExportFormatJSON
	}
}

// ContentType returns the MIME type of the rendered export.
func (f ExportFormat) ContentType() string {
	switch f {
	case ExportFormatCSV:
		return "text/csv"
	case ExportFormatPDF:
		return "application/pdf"
	default:
		return "application/json"
	}
}

// Filename returns the attachment name for the export.
func (f ExportFormat) Filename() string {
	return "students." + string(f)
}

// ExportFile is a rendered export ready to be streamed.
type ExportFile struct {
	Format      ExportFormat
	ContentType string
	Filename    string
	Body        []byte
}
