package output

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/apismoke/apismoke/internal/models"
)

// Format represents the output format type
type Format string

const (
	FormatJSON Format = "json"
	FormatCSV  Format = "csv"
)

// ExportCheckSummary exports smoke-test results to the specified format
func ExportCheckSummary(summary models.CheckSummary, format Format, filePath string) error {
	w, closer, err := getWriter(filePath)
	if err != nil {
		return err
	}
	if closer != nil {
		defer closer.Close()
	}

	switch format {
	case FormatJSON:
		return exportJSON(w, summary)
	case FormatCSV:
		return exportCSV(w, summary)
	default:
		return fmt.Errorf("unsupported format: %s", format)
	}
}

// getWriter returns an io.Writer for output (stdout or file)
func getWriter(filePath string) (io.Writer, io.Closer, error) {
	if filePath == "" {
		return os.Stdout, nil, nil
	}

	f, err := os.Create(filePath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create output file: %w", err)
	}
	return f, f, nil
}

// exportJSON exports check results as JSON
func exportJSON(w io.Writer, summary models.CheckSummary) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(summary)
}

// exportCSV exports check results as CSV
func exportCSV(w io.Writer, summary models.CheckSummary) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	header := []string{
		"method", "path", "url", "operation_id", "passed", "skipped",
		"status_code", "elapsed_ms", "error",
	}
	if err := cw.Write(header); err != nil {
		return err
	}

	for _, r := range summary.Results {
		row := []string{
			r.Method,
			r.Path,
			r.URL,
			r.OperationID,
			strconv.FormatBool(r.Passed),
			strconv.FormatBool(r.Skipped),
			strconv.Itoa(r.StatusCode),
			fmt.Sprintf("%.2f", r.ElapsedMillis()),
			r.Error,
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	return cw.Error()
}

// ParseFormat parses a string into a Format, returning error if invalid
func ParseFormat(s string) (Format, error) {
	switch s {
	case "json":
		return FormatJSON, nil
	case "csv":
		return FormatCSV, nil
	default:
		return "", fmt.Errorf("invalid format '%s': must be 'json' or 'csv'", s)
	}
}
