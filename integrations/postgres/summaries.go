package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/aiesanjusto/resumen/extractor/common"
	"github.com/jackc/pgx/v5"
)

// SummaryExists checks whether a summary for the source is already stored.
func (db *DB) SummaryExists(ctx context.Context, source string) (bool, string, error) {
	var id string
	err := db.Pool.QueryRow(ctx, `
		SELECT id FROM summaries WHERE source = $1
	`, source).Scan(&id)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, "", nil
		}
		return false, "", fmt.Errorf("failed to check summary: %w", err)
	}

	return true, id, nil
}

// CreateSummary inserts a new summary row
func (db *DB) CreateSummary(ctx context.Context, summary common.Summary) (string, error) {
	var id string

	warnings := summary.Issues.Warnings
	if warnings == nil {
		warnings = []string{}
	}

	err := db.Pool.QueryRow(ctx, `
		INSERT INTO summaries (
			source, sign_convention,
			opening_balance, opening_date, closing_balance, closing_date,
			reconciliation_delta, unclassified_lines, malformed_lines, warnings
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id
	`,
		summary.Source, string(summary.Convention),
		summary.OpeningBalance, summary.OpeningDate,
		summary.ClosingBalance, summary.ClosingDate,
		summary.Delta, summary.Issues.UnclassifiedLines,
		summary.Issues.MalformedLines, warnings,
	).Scan(&id)

	if err != nil {
		return "", fmt.Errorf("failed to create summary: %w", err)
	}

	return id, nil
}

// DeleteSummary removes a summary and its movements and totals (cascade)
func (db *DB) DeleteSummary(ctx context.Context, summaryID string) error {
	_, err := db.Pool.Exec(ctx, `DELETE FROM summaries WHERE id = $1`, summaryID)
	if err != nil {
		return fmt.Errorf("failed to delete summary: %w", err)
	}
	return nil
}
