package postgres

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/aiesanjusto/resumen/extractor"
)

// ImportResult tracks the outcome of an import operation
type ImportResult struct {
	Processed int
	Skipped   int
	Failed    int
	Errors    []string
}

// ImportOptions configures the import behavior
type ImportOptions struct {
	Force   bool // Force reprocessing of existing statements
	Verbose bool // Enable verbose logging
}

// ImportFile extracts a single PDF and stores the summary in the database.
// Returns: processed count, skipped count, failed count, error messages
func (db *DB) ImportFile(ctx context.Context, filePath string, opts ImportOptions) (processed int, skipped int, failed int, errors []string) {
	fileName := filepath.Base(filePath)

	summary := extractor.ProcessFile(filePath)
	if summary.Source == "" {
		return 0, 0, 1, []string{fmt.Sprintf("%s: no text extracted", fileName)}
	}
	if len(summary.Transactions) == 0 && summary.ClosingBalance == nil {
		return 0, 0, 1, []string{fmt.Sprintf("%s: no movements or balance markers detected", fileName)}
	}

	exists, existingID, err := db.SummaryExists(ctx, summary.Source)
	if err != nil {
		return 0, 0, 1, []string{fmt.Sprintf("%s: check error: %v", fileName, err)}
	}

	if exists && !opts.Force {
		if opts.Verbose {
			log.Printf("SKIP %s (already exists)", fileName)
		}
		return 0, 1, 0, nil
	}

	if exists && opts.Force {
		if err := db.DeleteSummary(ctx, existingID); err != nil {
			return 0, 0, 1, []string{fmt.Sprintf("%s: delete error: %v", fileName, err)}
		}
	}

	summaryID, err := db.CreateSummary(ctx, summary)
	if err != nil {
		return 0, 0, 1, []string{fmt.Sprintf("%s: summary error: %v", fileName, err)}
	}

	if err := db.CreateMovements(ctx, summaryID, summary.Transactions); err != nil {
		// Rollback by deleting the summary
		_ = db.DeleteSummary(ctx, summaryID)
		return 0, 0, 1, []string{fmt.Sprintf("%s: movements error: %v", fileName, err)}
	}

	if err := db.CreateTotals(ctx, summaryID, summary); err != nil {
		_ = db.DeleteSummary(ctx, summaryID)
		return 0, 0, 1, []string{fmt.Sprintf("%s: totals error: %v", fileName, err)}
	}

	if opts.Verbose {
		log.Printf("OK   %s (%d movements)", fileName, len(summary.Transactions))
	}
	return 1, 0, 0, nil
}

// ImportDirectory processes all PDF files in a directory
func (db *DB) ImportDirectory(ctx context.Context, dirPath string, opts ImportOptions) (*ImportResult, error) {
	result := &ImportResult{}

	entries, err := os.ReadDir(dirPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory: %w", err)
	}

	var dataFiles []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if strings.HasSuffix(strings.ToLower(e.Name()), ".pdf") {
			dataFiles = append(dataFiles, filepath.Join(dirPath, e.Name()))
		}
	}

	log.Printf("Scanning: %s", dirPath)
	log.Printf("Found %d PDF files\n", len(dataFiles))

	for _, filePath := range dataFiles {
		processed, skipped, failed, errors := db.ImportFile(ctx, filePath, opts)

		result.Processed += processed
		result.Skipped += skipped
		result.Failed += failed
		result.Errors = append(result.Errors, errors...)

		if opts.Verbose && failed > 0 {
			for _, errMsg := range errors {
				log.Printf("FAIL %s", errMsg)
			}
		}
	}

	return result, nil
}

// Import handles both file and directory imports
func (db *DB) Import(ctx context.Context, path string, opts ImportOptions) (*ImportResult, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to stat path: %w", err)
	}

	if info.IsDir() {
		return db.ImportDirectory(ctx, path, opts)
	}

	result := &ImportResult{}
	processed, skipped, failed, errors := db.ImportFile(ctx, path, opts)

	result.Processed = processed
	result.Skipped = skipped
	result.Failed = failed
	result.Errors = errors

	return result, nil
}
