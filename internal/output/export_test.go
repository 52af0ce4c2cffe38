package output

import (
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/apismoke/apismoke/internal/models"
)

func sampleSummary() models.CheckSummary {
	var summary models.CheckSummary
	summary.AddResult(models.CheckResult{
		URL:        "http://x/items/42",
		Path:       "/items/{id}",
		Method:     "GET",
		Passed:     true,
		StatusCode: 200,
		Elapsed:    12 * time.Millisecond,
	})
	summary.AddResult(models.CheckResult{
		Path:    "/items",
		Method:  "POST",
		Skipped: true,
		Error:   "method POST not supported yet",
	})
	summary.AddResult(models.CheckResult{
		URL:    "http://x/broken",
		Path:   "/broken",
		Method: "GET",
		Error:  "request failed: connection refused",
	})
	return summary
}

func TestExportCheckSummaryJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "results.json")

	if err := ExportCheckSummary(sampleSummary(), FormatJSON, path); err != nil {
		t.Fatalf("Export failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read exported file: %v", err)
	}

	var decoded models.CheckSummary
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Exported JSON is invalid: %v", err)
	}

	if decoded.TotalChecks != 3 || decoded.Passed != 1 || decoded.Failed != 1 || decoded.Skipped != 1 {
		t.Errorf("Unexpected summary counts: %+v", decoded)
	}

	if decoded.Results[0].URL != "http://x/items/42" {
		t.Errorf("Unexpected first result: %+v", decoded.Results[0])
	}
}

func TestExportCheckSummaryCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "results.csv")

	if err := ExportCheckSummary(sampleSummary(), FormatCSV, path); err != nil {
		t.Fatalf("Export failed: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("Failed to open exported file: %v", err)
	}
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatalf("Exported CSV is invalid: %v", err)
	}

	// Header plus one row per result
	if len(rows) != 4 {
		t.Fatalf("Expected 4 rows, got %d", len(rows))
	}

	if rows[0][0] != "method" {
		t.Errorf("Unexpected header: %v", rows[0])
	}

	if rows[1][0] != "GET" || rows[1][2] != "http://x/items/42" {
		t.Errorf("Unexpected first data row: %v", rows[1])
	}
}

func TestExportCheckSummaryUnknownFormat(t *testing.T) {
	if err := ExportCheckSummary(sampleSummary(), Format("xml"), ""); err == nil {
		t.Error("Expected error for unsupported format")
	}
}

func TestParseFormat(t *testing.T) {
	if f, err := ParseFormat("json"); err != nil || f != FormatJSON {
		t.Errorf("Expected json format, got %v (%v)", f, err)
	}

	if f, err := ParseFormat("csv"); err != nil || f != FormatCSV {
		t.Errorf("Expected csv format, got %v (%v)", f, err)
	}

	if _, err := ParseFormat("xml"); err == nil {
		t.Error("Expected error for invalid format")
	}
}
