package resumen_ar

import (
	"testing"

	"github.com/aiesanjusto/resumen/extractor/common"
)

func TestParseMarker_DateAndAmount(t *testing.T) {
	marker := parseMarker(common.Line{Page: 3, Index: 12, Text: "Saldo al 31/01/2025 1.234,56"})

	if marker.Date == nil || marker.Date.Day() != 31 || marker.Date.Month() != 1 || marker.Date.Year() != 2025 {
		t.Errorf("Expected 31/01/2025, got %v", marker.Date)
	}
	if marker.Amount == nil || marker.Amount.String() != "1234.56" {
		t.Errorf("Expected 1234.56, got %v", marker.Amount)
	}
	if marker.Page != 3 || marker.Line != 12 {
		t.Errorf("Provenance lost: page=%d line=%d", marker.Page, marker.Line)
	}
}

func TestParseMarker_MissingAmountStaysAbsent(t *testing.T) {
	// An amount that is not printed is never rendered as zero
	marker := parseMarker(common.Line{Page: 1, Index: 0, Text: "Saldo al 31/01/2025"})

	if marker.Amount != nil {
		t.Errorf("Expected absent amount, got %v", marker.Amount)
	}
	if marker.Date == nil {
		t.Error("Expected date to parse")
	}
}

func TestReconcile_MarkerWithoutAmountWarns(t *testing.T) {
	lines := makeLines([]string{
		"Saldo al 01/01/2025",
		"02/01/2025 COMISION 20,00-",
		"Saldo al 31/01/2025 80,00",
	})
	summary := Extract("test", lines, creditAddsOptions())

	if summary.OpeningBalance != nil {
		t.Errorf("Expected absent opening balance, got %v", summary.OpeningBalance)
	}
	if summary.Delta != nil {
		t.Errorf("Expected no delta, got %v", summary.Delta)
	}
	if len(summary.Issues.Warnings) == 0 {
		t.Error("Expected a warning for the amountless marker")
	}
}

func TestReconcile_NoMarkersWarns(t *testing.T) {
	lines := makeLines([]string{"02/01/2025 COMISION 20,00-"})
	summary := Extract("test", lines, creditAddsOptions())

	if summary.OpeningBalance != nil || summary.ClosingBalance != nil {
		t.Error("Expected both balances absent")
	}
	if summary.Delta != nil {
		t.Errorf("Expected no delta, got %v", summary.Delta)
	}
	if len(summary.Issues.Warnings) != 1 {
		t.Errorf("Expected one warning, got %v", summary.Issues.Warnings)
	}
}
