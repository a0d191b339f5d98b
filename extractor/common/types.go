package common

import (
	"time"

	"github.com/shopspring/decimal"
)

// Line is one row of text as delivered by the text extraction step.
// Page numbering starts at 1, Index is zero-based within the page.
type Line struct {
	Page  int    `json:"page"`
	Index int    `json:"line"`
	Text  string `json:"text"`
}

// Category tags a classified movement. Lines matching no rule are dropped
// before a Transaction is built, so there is no "unknown" category.
type Category string

const (
	CategoryTransferReceived Category = "transfer_received"
	CategoryTransferSent     Category = "transfer_sent"
	CategoryTransferOwn      Category = "transfer_own_account"
	CategoryDebitAPI         Category = "debit_auto_api"
	CategoryDebitARCA        Category = "debit_auto_arca"
	CategoryDebitAuto        Category = "debit_auto"
	CategorySircreb          Category = "sircreb"
	CategoryDyC              Category = "dyc"
	CategoryCommission       Category = "commission"
	CategoryVAT21            Category = "vat_21"
	CategoryVAT105           Category = "vat_10_5"
	CategoryVATOther         Category = "vat_other"
	CategoryVATPerception    Category = "vat_perception"

	// CategoryBalanceMarker marks "Saldo al dd/mm/yyyy" lines. Markers feed
	// reconciliation and never become transactions.
	CategoryBalanceMarker Category = "balance_marker"
)

// MovementCategories returns the closed set of categories a Transaction can
// carry, in a fixed order. Aggregation zero-fills every one of them.
func MovementCategories() []Category {
	return []Category{
		CategoryTransferReceived,
		CategoryTransferSent,
		CategoryTransferOwn,
		CategoryDebitAPI,
		CategoryDebitARCA,
		CategoryDebitAuto,
		CategorySircreb,
		CategoryDyC,
		CategoryCommission,
		CategoryVAT21,
		CategoryVAT105,
		CategoryVATOther,
		CategoryVATPerception,
	}
}

// TransferCategories returns the categories whose transactions are grouped
// by counterparty CUIT.
func TransferCategories() []Category {
	return []Category{
		CategoryTransferReceived,
		CategoryTransferSent,
		CategoryTransferOwn,
	}
}

// UnidentifiedTaxID keys per-CUIT totals for transfer lines that carry no
// CUIT. Those movements are grouped, never dropped.
const UnidentifiedTaxID = "unidentified"

// SignConvention decides how debit and credit combine into a signed amount.
type SignConvention string

const (
	// CreditSubtracts: amount = debit - credit. Default, matches the
	// accounting view the tool was built for.
	CreditSubtracts SignConvention = "credit_subtracts"
	// CreditAdds: amount = credit - debit.
	CreditAdds SignConvention = "credit_adds"
)

// Amount combines a debit and a credit magnitude into a signed amount under
// the convention.
func (c SignConvention) Amount(debit, credit decimal.Decimal) decimal.Decimal {
	if c == CreditAdds {
		return credit.Sub(debit)
	}
	return debit.Sub(credit)
}

// Transaction is one detected movement. Exactly one of Debit and Credit is
// set; Amount is derived from it under the active sign convention.
type Transaction struct {
	Sequence    int              `json:"sequence"`
	Date        *time.Time       `json:"date,omitempty"`
	Description string           `json:"description"`
	Debit       *decimal.Decimal `json:"debit,omitempty"`
	Credit      *decimal.Decimal `json:"credit,omitempty"`
	Amount      decimal.Decimal  `json:"amount"`
	// Balance is the running balance printed alongside the line, kept only
	// for cross-checking, never summed.
	Balance  *decimal.Decimal `json:"balance,omitempty"`
	Category Category         `json:"category"`
	TaxID    string           `json:"tax_id,omitempty"`
	Page     int              `json:"page"`
	Line     int              `json:"line"`
}

// BalanceMarker is one "Saldo al dd/mm/yyyy" occurrence.
type BalanceMarker struct {
	Date   *time.Time       `json:"date,omitempty"`
	Amount *decimal.Decimal `json:"amount,omitempty"`
	Page   int              `json:"page"`
	Line   int              `json:"line"`
}

// Issues collects the non-fatal problems of one run for display.
type Issues struct {
	UnclassifiedLines int      `json:"unclassified_lines"`
	MalformedLines    int      `json:"malformed_lines"`
	Warnings          []string `json:"warnings,omitempty"`
}

// Summary is the aggregate result of one statement. Immutable once built;
// a new upload produces a fresh Summary.
type Summary struct {
	Source           string                       `json:"source"`
	Convention       SignConvention               `json:"sign_convention"`
	OpeningBalance   *decimal.Decimal             `json:"opening_balance,omitempty"`
	OpeningDate      *time.Time                   `json:"opening_date,omitempty"`
	ClosingBalance   *decimal.Decimal             `json:"closing_balance,omitempty"`
	ClosingDate      *time.Time                   `json:"closing_date,omitempty"`
	Transactions     []Transaction                `json:"transactions"`
	TotalsByCategory map[Category]decimal.Decimal `json:"totals_by_category"`
	TotalsByTaxID    map[string]decimal.Decimal   `json:"totals_by_tax_id"`
	// Delta = closing - (opening + sum of signed amounts). Nil when either
	// balance marker is missing.
	Delta  *decimal.Decimal `json:"reconciliation_delta,omitempty"`
	Issues Issues           `json:"issues"`
}
