package postgres

import (
	"context"
	"fmt"
)

const ddl = `
-- Statement summaries, one per processed document. Source name is the
-- natural key for deduplication.
CREATE TABLE IF NOT EXISTS summaries (
    id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
    source VARCHAR(255) NOT NULL,
    sign_convention VARCHAR(20) NOT NULL,
    opening_balance NUMERIC(18,2),
    opening_date DATE,
    closing_balance NUMERIC(18,2),
    closing_date DATE,
    reconciliation_delta NUMERIC(18,2),
    unclassified_lines INTEGER NOT NULL DEFAULT 0,
    malformed_lines INTEGER NOT NULL DEFAULT 0,
    warnings TEXT[] DEFAULT '{}',
    created_at TIMESTAMPTZ DEFAULT NOW(),

    UNIQUE(source)
);

-- Detected movements
CREATE TABLE IF NOT EXISTS movements (
    id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
    summary_id UUID NOT NULL REFERENCES summaries(id) ON DELETE CASCADE,
    sequence INTEGER NOT NULL,
    date DATE,
    description TEXT NOT NULL,
    debit NUMERIC(18,2),
    credit NUMERIC(18,2),
    amount NUMERIC(18,2) NOT NULL,
    balance NUMERIC(18,2),
    category VARCHAR(30) NOT NULL,
    tax_id VARCHAR(11) DEFAULT '',
    page INTEGER NOT NULL,
    line INTEGER NOT NULL,
    created_at TIMESTAMPTZ DEFAULT NOW(),

    UNIQUE(summary_id, sequence)
);

-- Per-category totals, zero-filled for the full category set
CREATE TABLE IF NOT EXISTS category_totals (
    summary_id UUID NOT NULL REFERENCES summaries(id) ON DELETE CASCADE,
    category VARCHAR(30) NOT NULL,
    total NUMERIC(18,2) NOT NULL,

    PRIMARY KEY(summary_id, category)
);

-- Per-counterparty transfer totals ('unidentified' bucket included)
CREATE TABLE IF NOT EXISTS counterparty_totals (
    summary_id UUID NOT NULL REFERENCES summaries(id) ON DELETE CASCADE,
    tax_id VARCHAR(20) NOT NULL,
    total NUMERIC(18,2) NOT NULL,

    PRIMARY KEY(summary_id, tax_id)
);

-- Indexes for common queries
CREATE INDEX IF NOT EXISTS idx_movements_summary_id ON movements(summary_id);
CREATE INDEX IF NOT EXISTS idx_movements_date ON movements(date);
CREATE INDEX IF NOT EXISTS idx_movements_category ON movements(category);
CREATE INDEX IF NOT EXISTS idx_movements_tax_id ON movements(tax_id) WHERE tax_id != '';
`

// EnsureSchema creates tables if they don't exist
func (db *DB) EnsureSchema(ctx context.Context) error {
	_, err := db.Pool.Exec(ctx, ddl)
	if err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	return nil
}
