package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"observatory/internal/cache"
	"observatory/internal/models"
)

// reportFile is the stable name downstream consumers read.
const reportFile = "report.json"

// ReportWriter persists run reports. Writes go to a temp file first and are
// renamed into place, so a crashed run never corrupts the last good report.
type ReportWriter struct {
	dir string
}

// NewReportWriter creates a writer rooted at dir.
func NewReportWriter(dir string) *ReportWriter {
	return &ReportWriter{dir: dir}
}

// Write persists the report atomically and keeps a per-run copy.
func (w *ReportWriter) Write(report *models.RunReport) error {
	if err := os.MkdirAll(w.dir, 0o755); err != nil {
		return fmt.Errorf("create report dir: %w", err)
	}

	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("encode report: %w", err)
	}

	tmp := filepath.Join(w.dir, reportFile+".tmp")
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	if err := os.Rename(tmp, filepath.Join(w.dir, reportFile)); err != nil {
		return fmt.Errorf("swap report: %w", err)
	}

	runCopy := filepath.Join(w.dir, "report-"+report.RunID+".json")
	if err := os.WriteFile(runCopy, data, 0o644); err != nil {
		return fmt.Errorf("write run copy: %w", err)
	}
	return nil
}

// Latest reads the current report, if any run has completed.
func (w *ReportWriter) Latest() (*models.RunReport, error) {
	data, err := os.ReadFile(filepath.Join(w.dir, reportFile))
	if err != nil {
		return nil, err
	}
	var report models.RunReport
	if err := json.Unmarshal(data, &report); err != nil {
		return nil, fmt.Errorf("decode report: %w", err)
	}
	return &report, nil
}

// Mirror pushes the report into Redis for the API layer. Cache loss is not a
// run failure.
func (w *ReportWriter) Mirror(ctx context.Context, report *models.RunReport) {
	client := cache.GetClient()
	if client == nil {
		return
	}
	data, err := json.Marshal(report)
	if err != nil {
		return
	}
	if err := client.Set(ctx, cache.LatestReportKey, data, 0).Err(); err != nil {
		slog.WarnContext(ctx, "report cache mirror failed", "error", err)
	}
}
