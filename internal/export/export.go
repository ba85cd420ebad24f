package export

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/lehigh-university-libraries/dexsearch/internal/models"
	"github.com/lehigh-university-libraries/dexsearch/internal/search"
	"gopkg.in/yaml.v3"
)

// Format is an output encoding for result sets
type Format string

const (
	FormatText    Format = "text"
	FormatJSON    Format = "json"
	FormatYAML    Format = "yaml"
	FormatParquet Format = "parquet"
)

// ParseFormat validates a format name
func ParseFormat(name string) (Format, error) {
	switch f := Format(strings.ToLower(name)); f {
	case FormatText, FormatJSON, FormatYAML, FormatParquet:
		return f, nil
	case "yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("unsupported format: %s", name)
	}
}

// FormatForPath picks the format from a file extension
func FormatForPath(path string) (Format, error) {
	ext := strings.TrimPrefix(filepath.Ext(path), ".")
	if ext == "" || ext == "txt" {
		return "", fmt.Errorf("cannot infer export format from %q", path)
	}
	return ParseFormat(ext)
}

// SearchInfo describes the search an export came from
type SearchInfo struct {
	SearchID  string `json:"search_id" yaml:"search_id"`
	Query     string `json:"query" yaml:"query"`
	Status    string `json:"status" yaml:"status"`
	Count     int    `json:"count" yaml:"count"`
	Timestamp string `json:"timestamp" yaml:"timestamp"`
	Error     string `json:"error,omitempty" yaml:"error,omitempty"`
}

// Document is the JSON/YAML export of one search
type Document struct {
	Search  SearchInfo       `json:"search" yaml:"search"`
	Results []models.Pokemon `json:"results" yaml:"results"`
}

// NewDocument wraps an outcome for export
func NewDocument(out search.Outcome, now time.Time) Document {
	results := out.Results
	if results == nil {
		results = []models.Pokemon{}
	}
	return Document{
		Search: SearchInfo{
			SearchID:  out.ID,
			Query:     out.Query,
			Status:    out.Status.String(),
			Count:     len(out.Results),
			Timestamp: now.UTC().Format(time.RFC3339),
			Error:     out.ErrorText(),
		},
		Results: results,
	}
}

// WriteJSON writes v as indented JSON
func WriteJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}
	return nil
}

// WriteYAML writes v as YAML
func WriteYAML(w io.Writer, v any) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("failed to marshal YAML: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("failed to marshal YAML: %w", err)
	}
	return nil
}

// SaveFile writes the outcome to path in the format implied by its extension
func SaveFile(path string, out search.Outcome) error {
	format, err := FormatForPath(path)
	if err != nil {
		return err
	}
	if format == FormatParquet {
		return WriteParquetFile(path, out.Results)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create export file: %w", err)
	}
	defer f.Close()

	doc := NewDocument(out, time.Now())
	switch format {
	case FormatJSON:
		err = WriteJSON(f, doc)
	case FormatYAML:
		err = WriteYAML(f, doc)
	default:
		err = fmt.Errorf("unsupported export format: %s", format)
	}
	if err != nil {
		return err
	}
	return f.Close()
}
