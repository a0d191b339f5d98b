package extractor

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/aiesanjusto/resumen/extractor/common"
	"github.com/aiesanjusto/resumen/extractor/resumen_ar"
)

// ExecuteAgainstPath extracts a single statement file or every PDF in a
// directory and prints the result as JSON.
func ExecuteAgainstPath(path string) {
	if info, err := os.Stat(path); err == nil && info.IsDir() {
		result := []common.Summary{}

		log.Println("📂 Scanning ", path)
		entries, err := os.ReadDir(path)
		if err != nil {
			log.Fatal(err)
		}
		for _, e := range entries {
			if e.IsDir() || !strings.HasSuffix(strings.ToLower(e.Name()), ".pdf") {
				continue
			}
			summary := ProcessFile(filepath.Join(path, e.Name()))
			if len(summary.Transactions) > 0 {
				result = append(result, summary)
			}
		}

		asJSON, _ := json.Marshal(result)
		fmt.Println(string(asJSON))
		return
	}

	log.Println("📄 Scanning ", path)
	result := ProcessFile(path)

	if len(result.Transactions) < 1 {
		asJSON, _ := json.Marshal(struct{}{})
		fmt.Println(string(asJSON))
		return
	}

	asJSON, _ := json.Marshal(result)
	fmt.Println(string(asJSON))
}

// ProcessFile runs the pipeline over one PDF on disk.
func ProcessFile(filePath string) common.Summary {
	lines, err := common.ExtractLinesFromPDF(filePath)
	if err != nil || len(lines) < 1 {
		log.Printf("no text extracted from %s: %v", filePath, err)
		return common.Summary{}
	}

	source := strings.TrimSuffix(filepath.Base(filePath), filepath.Ext(filePath))
	return resumen_ar.Extract(source, lines, resumen_ar.OptionsFromConfig())
}

// ProcessReader runs the pipeline over an uploaded PDF. An empty convention
// keeps the configured one.
func ProcessReader(reader io.Reader, name string, convention common.SignConvention) common.Summary {
	lines, err := common.ExtractLinesFromPDFReader(reader)
	if err != nil || len(lines) < 1 {
		log.Printf("no text extracted from %s: %v", name, err)
		return common.Summary{}
	}

	opts := resumen_ar.OptionsFromConfig()
	if convention != "" {
		opts.Convention = convention
	}

	source := strings.TrimSuffix(filepath.Base(name), filepath.Ext(name))
	return resumen_ar.Extract(source, lines, opts)
}

// CreateFinalOutput shapes a Summary for output. transactionOnly returns just
// the movement list; summaryOnly drops the movements and keeps the totals.
// The full shape also carries the debit/credit detail listings.
func CreateFinalOutput(summary common.Summary, transactionOnly bool, summaryOnly bool) interface{} {
	if transactionOnly {
		return summary.Transactions
	}

	output := map[string]interface{}{
		"source":             summary.Source,
		"sign_convention":    summary.Convention,
		"totals_by_category": summary.TotalsByCategory,
		"totals_by_tax_id":   summary.TotalsByTaxID,
		"issues":             summary.Issues,
	}
	if summary.OpeningBalance != nil {
		output["opening_balance"] = summary.OpeningBalance
	}
	if summary.OpeningDate != nil {
		output["opening_date"] = summary.OpeningDate
	}
	if summary.ClosingBalance != nil {
		output["closing_balance"] = summary.ClosingBalance
	}
	if summary.ClosingDate != nil {
		output["closing_date"] = summary.ClosingDate
	}
	if summary.Delta != nil {
		output["reconciliation_delta"] = summary.Delta
	}

	if !summaryOnly {
		debits, credits := SplitMovements(summary.Transactions)
		output["transactions"] = summary.Transactions
		output["debits"] = debits
		output["credits"] = credits
	}

	return output
}

// SplitMovements partitions transactions into the debit and credit listings
// shown in the report.
func SplitMovements(transactions []common.Transaction) (debits, credits []common.Transaction) {
	debits = []common.Transaction{}
	credits = []common.Transaction{}
	for _, tx := range transactions {
		if tx.Debit != nil {
			debits = append(debits, tx)
		} else {
			credits = append(credits, tx)
		}
	}
	return debits, credits
}
