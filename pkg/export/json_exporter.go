package export

import (
	"encoding/json"
	"fmt"
)

// JSONExporter renders values as indented JSON documents.
type JSONExporter struct {
	Indent string
}

// NewJSONExporter builds a JSON exporter using two-space indentation.
func NewJSONExporter() *JSONExporter {
	return &JSONExporter{Indent: "  "}
}

// Render marshals v with the configured indentation.
func (e *JSONExporter) Render(v interface{}) ([]byte, error) {
	body, err := json.MarshalIndent(v, "", e.Indent)
	if err != nil {
		return nil, fmt.Errorf("render json: %w", err)
	}
	return body, nil
}
