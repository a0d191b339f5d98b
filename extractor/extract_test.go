package extractor

import (
	"testing"

	"github.com/aiesanjusto/resumen/extractor/common"
	"github.com/shopspring/decimal"
)

func sampleSummary() common.Summary {
	opening := decimal.NewFromInt(100)
	closing := decimal.NewFromInt(130)
	delta := decimal.Zero
	credit := decimal.NewFromInt(50)
	debit := decimal.NewFromInt(20)

	return common.Summary{
		Source:         "test_statement",
		Convention:     common.CreditAdds,
		OpeningBalance: &opening,
		ClosingBalance: &closing,
		Delta:          &delta,
		Transactions: []common.Transaction{
			{Sequence: 1, Category: common.CategoryTransferReceived, Credit: &credit, Amount: credit},
			{Sequence: 2, Category: common.CategoryCommission, Debit: &debit, Amount: debit.Neg()},
		},
		TotalsByCategory: map[common.Category]decimal.Decimal{
			common.CategoryTransferReceived: credit,
			common.CategoryCommission:       debit.Neg(),
		},
		TotalsByTaxID: map[string]decimal.Decimal{
			common.UnidentifiedTaxID: credit,
		},
	}
}

func TestCreateFinalOutput_TransactionOnly(t *testing.T) {
	result := CreateFinalOutput(sampleSummary(), true, false)

	transactions, ok := result.([]common.Transaction)
	if !ok {
		t.Fatal("Expected result to be []common.Transaction")
	}
	if len(transactions) != 2 {
		t.Errorf("Expected 2 transactions, got %d", len(transactions))
	}
}

func TestCreateFinalOutput_SummaryOnly(t *testing.T) {
	result := CreateFinalOutput(sampleSummary(), false, true)

	outputMap, ok := result.(map[string]interface{})
	if !ok {
		t.Fatal("Expected result to be map[string]interface{}")
	}

	if outputMap["source"] != "test_statement" {
		t.Errorf("Expected source 'test_statement', got '%v'", outputMap["source"])
	}
	if _, exists := outputMap["transactions"]; exists {
		t.Error("Expected no transactions in summary-only output")
	}
	if _, exists := outputMap["totals_by_category"]; !exists {
		t.Error("Expected totals_by_category in summary-only output")
	}
}

func TestCreateFinalOutput_IncludesBalanceFields(t *testing.T) {
	result := CreateFinalOutput(sampleSummary(), false, false)

	outputMap, ok := result.(map[string]interface{})
	if !ok {
		t.Fatal("Expected result to be map[string]interface{}")
	}

	requiredFields := []string{"opening_balance", "closing_balance", "reconciliation_delta", "totals_by_category", "totals_by_tax_id", "issues"}
	for _, field := range requiredFields {
		if _, exists := outputMap[field]; !exists {
			t.Errorf("Expected field '%s' in output", field)
		}
	}
}

func TestCreateFinalOutput_AbsentBalancesOmitted(t *testing.T) {
	summary := sampleSummary()
	summary.OpeningBalance = nil
	summary.Delta = nil

	result := CreateFinalOutput(summary, false, false)

	outputMap, ok := result.(map[string]interface{})
	if !ok {
		t.Fatal("Expected result to be map[string]interface{}")
	}

	// An absent balance is omitted, never rendered as zero
	if _, exists := outputMap["opening_balance"]; exists {
		t.Error("Expected no opening_balance for absent value")
	}
	if _, exists := outputMap["reconciliation_delta"]; exists {
		t.Error("Expected no reconciliation_delta for absent value")
	}
	if _, exists := outputMap["closing_balance"]; !exists {
		t.Error("Expected closing_balance to remain")
	}
}

func TestSplitMovements(t *testing.T) {
	debits, credits := SplitMovements(sampleSummary().Transactions)

	if len(debits) != 1 || len(credits) != 1 {
		t.Fatalf("Expected 1 debit and 1 credit, got %d and %d", len(debits), len(credits))
	}
	if debits[0].Category != common.CategoryCommission {
		t.Errorf("Expected commission in debits, got %s", debits[0].Category)
	}
	if credits[0].Category != common.CategoryTransferReceived {
		t.Errorf("Expected transfer_received in credits, got %s", credits[0].Category)
	}
}

func TestCreateFinalOutput_FullIncludesListings(t *testing.T) {
	result := CreateFinalOutput(sampleSummary(), false, false)

	outputMap, ok := result.(map[string]interface{})
	if !ok {
		t.Fatal("Expected result to be map[string]interface{}")
	}

	for _, field := range []string{"transactions", "debits", "credits"} {
		if _, exists := outputMap[field]; !exists {
			t.Errorf("Expected field '%s' in full output", field)
		}
	}
}
