package postgres

import (
	"context"
	"fmt"

	"github.com/aiesanjusto/resumen/extractor/common"
	"github.com/jackc/pgx/v5"
)

// CreateMovements bulk inserts the transactions of a summary
func (db *DB) CreateMovements(ctx context.Context, summaryID string, transactions []common.Transaction) error {
	if len(transactions) == 0 {
		return nil
	}

	batch := &pgx.Batch{}
	for _, tx := range transactions {
		batch.Queue(`
			INSERT INTO movements (
				summary_id, sequence, date, description, debit, credit,
				amount, balance, category, tax_id, page, line
			) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		`,
			summaryID, tx.Sequence, tx.Date, tx.Description, tx.Debit, tx.Credit,
			tx.Amount, tx.Balance, string(tx.Category), tx.TaxID, tx.Page, tx.Line,
		)
	}

	br := db.Pool.SendBatch(ctx, batch)
	defer br.Close()

	for range transactions {
		if _, err := br.Exec(); err != nil {
			return fmt.Errorf("failed to insert movement: %w", err)
		}
	}

	return nil
}

// CreateTotals stores the per-category and per-counterparty aggregates
func (db *DB) CreateTotals(ctx context.Context, summaryID string, summary common.Summary) error {
	batch := &pgx.Batch{}
	for _, category := range common.MovementCategories() {
		batch.Queue(`
			INSERT INTO category_totals (summary_id, category, total)
			VALUES ($1, $2, $3)
		`, summaryID, string(category), summary.TotalsByCategory[category])
	}
	for taxID, total := range summary.TotalsByTaxID {
		batch.Queue(`
			INSERT INTO counterparty_totals (summary_id, tax_id, total)
			VALUES ($1, $2, $3)
		`, summaryID, taxID, total)
	}

	queued := batch.Len()
	br := db.Pool.SendBatch(ctx, batch)
	defer br.Close()

	for i := 0; i < queued; i++ {
		if _, err := br.Exec(); err != nil {
			return fmt.Errorf("failed to insert total: %w", err)
		}
	}

	return nil
}
