package resumen_ar

import (
	"fmt"
	"log"

	"github.com/aiesanjusto/resumen/extractor/common"
	"github.com/shopspring/decimal"
)

// parseMarker reads the date and amount off a "Saldo al dd/mm/yyyy" line.
// Either field may come out absent; an absent amount surfaces later as a
// reconciliation warning instead of a fabricated value.
func parseMarker(line common.Line) common.BalanceMarker {
	marker := common.BalanceMarker{Page: line.Page, Line: line.Index}

	if m := common.DateRegex.FindString(line.Text); m != "" {
		if dt, err := common.ParseDate(m); err == nil {
			marker.Date = &dt
		}
	}
	if m := common.MoneyRegex.FindString(line.Text); m != "" {
		if amount, err := common.ParseMoney(m); err == nil {
			marker.Amount = &amount
		}
	}
	return marker
}

// reconcile fills the opening/closing balances from the collected markers
// and computes the delta against the signed sum of transactions. The first
// marker is the opening balance and the last the closing one; with a single
// marker only the closing balance is known. Intermediate markers (multi-page
// statements repeating the running balance) are informational. A delta
// beyond tolerance is reported, never corrected.
func reconcile(summary *common.Summary, markers []common.BalanceMarker, tolerance decimal.Decimal) {
	switch len(markers) {
	case 0:
		summary.Issues.Warnings = append(summary.Issues.Warnings,
			"no balance markers found; opening and closing balances unknown")
	case 1:
		summary.ClosingBalance = markers[0].Amount
		summary.ClosingDate = markers[0].Date
		summary.Issues.Warnings = append(summary.Issues.Warnings,
			"single balance marker found; treated as closing balance, opening balance unknown")
	default:
		summary.OpeningBalance = markers[0].Amount
		summary.OpeningDate = markers[0].Date
		summary.ClosingBalance = markers[len(markers)-1].Amount
		summary.ClosingDate = markers[len(markers)-1].Date
		for _, m := range markers[1 : len(markers)-1] {
			log.Printf("informational balance marker at page %d line %d", m.Page, m.Line)
		}
	}

	if summary.OpeningBalance == nil && len(markers) > 1 {
		summary.Issues.Warnings = append(summary.Issues.Warnings,
			"opening balance marker carries no amount")
	}
	if summary.ClosingBalance == nil && len(markers) > 0 {
		summary.Issues.Warnings = append(summary.Issues.Warnings,
			"closing balance marker carries no amount")
	}

	if summary.OpeningBalance == nil || summary.ClosingBalance == nil {
		return
	}

	sum := decimal.Zero
	for _, tx := range summary.Transactions {
		sum = sum.Add(tx.Amount)
	}

	delta := summary.ClosingBalance.Sub(summary.OpeningBalance.Add(sum))
	summary.Delta = &delta

	if delta.Abs().GreaterThan(tolerance) {
		summary.Issues.Warnings = append(summary.Issues.Warnings,
			fmt.Sprintf("reconciliation delta %s exceeds tolerance %s", delta, tolerance))
	}
}
