package resumen_ar

import (
	"github.com/aiesanjusto/resumen/extractor/common"
	"github.com/shopspring/decimal"
)

// totalsByCategory sums signed amounts per category. Every movement category
// appears as a key, zero-valued when nothing matched, so downstream display
// never has to guess at missing keys.
func totalsByCategory(transactions []common.Transaction) map[common.Category]decimal.Decimal {
	totals := make(map[common.Category]decimal.Decimal, len(common.MovementCategories()))
	for _, category := range common.MovementCategories() {
		totals[category] = decimal.Zero
	}
	for _, tx := range transactions {
		totals[tx.Category] = totals[tx.Category].Add(tx.Amount)
	}
	return totals
}

// totalsByTaxID sums signed amounts of transfer movements per counterparty
// CUIT. Transfers without a CUIT land in the explicit "unidentified" bucket.
func totalsByTaxID(transactions []common.Transaction) map[string]decimal.Decimal {
	transfer := make(map[common.Category]bool, 3)
	for _, category := range common.TransferCategories() {
		transfer[category] = true
	}

	totals := map[string]decimal.Decimal{}
	for _, tx := range transactions {
		if !transfer[tx.Category] {
			continue
		}
		key := tx.TaxID
		if key == "" {
			key = common.UnidentifiedTaxID
		}
		totals[key] = totals[key].Add(tx.Amount)
	}
	return totals
}
