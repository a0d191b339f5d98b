package resumen_ar

import (
	"errors"
	"log"
	"time"

	"github.com/aiesanjusto/resumen/extractor/common"
	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

// Options configure one pipeline run. The zero value is not usable; start
// from DefaultOptions or OptionsFromConfig.
type Options struct {
	Convention  common.SignConvention
	Tolerance   decimal.Decimal
	DebitSuffix string
	Rules       []Rule
}

func DefaultOptions() Options {
	return Options{
		Convention:  common.CreditSubtracts,
		Tolerance:   decimal.New(1, -2),
		DebitSuffix: "-",
		Rules:       DefaultRules(),
	}
}

// OptionsFromConfig reads the pipeline settings from viper, falling back to
// the defaults field by field.
func OptionsFromConfig() Options {
	opts := DefaultOptions()

	switch common.SignConvention(viper.GetString("sign_convention")) {
	case common.CreditAdds:
		opts.Convention = common.CreditAdds
	case common.CreditSubtracts, "":
	default:
		log.Printf("Warning: unknown sign_convention %q, using %s",
			viper.GetString("sign_convention"), opts.Convention)
	}

	if raw := viper.GetString("tolerance"); raw != "" {
		if tol, err := decimal.NewFromString(raw); err == nil {
			opts.Tolerance = tol.Abs()
		} else {
			log.Printf("Warning: bad tolerance %q: %v", raw, err)
		}
	}
	if suffix := viper.GetString("debit_suffix"); suffix != "" {
		opts.DebitSuffix = suffix
	}
	opts.Rules = RulesFromConfig()

	return opts
}

// Extract runs the whole pipeline over the extracted lines of one statement:
// classify each line, build transactions, reconcile against the declared
// balances and aggregate. One forward pass; a line's classification is final
// for every later stage. The result is a pure function of lines + options,
// so callers may fan out over documents freely.
func Extract(source string, lines []common.Line, opts Options) common.Summary {
	startTime := time.Now()
	log.Printf("Starting extraction for %s (%d lines)", source, len(lines))

	summary := common.Summary{
		Source:       source,
		Convention:   opts.Convention,
		Transactions: []common.Transaction{},
	}

	b := newBuilder(opts.Convention, opts.DebitSuffix)
	var markers []common.BalanceMarker

	for _, line := range lines {
		cls := Classify(opts.Rules, line.Text)
		if !cls.Matched {
			summary.Issues.UnclassifiedLines++
			continue
		}

		if cls.Category == common.CategoryBalanceMarker {
			markers = append(markers, parseMarker(line))
			continue
		}

		tx, err := b.build(line, cls)
		switch {
		case errors.Is(err, errNoAmounts):
			continue
		case err != nil:
			summary.Issues.MalformedLines++
			log.Printf("skipping malformed line at page %d line %d: %v", line.Page, line.Index, err)
			continue
		}
		summary.Transactions = append(summary.Transactions, tx)
	}

	reconcile(&summary, markers, opts.Tolerance)
	summary.TotalsByCategory = totalsByCategory(summary.Transactions)
	summary.TotalsByTaxID = totalsByTaxID(summary.Transactions)

	if summary.Delta != nil && summary.Delta.Abs().LessThanOrEqual(opts.Tolerance) {
		log.Printf("✓ Balances reconcile")
	} else if summary.Delta != nil {
		log.Printf("✗ Balance mismatch: delta=%s", summary.Delta)
	}

	log.Printf("Total %s processing time: %v", source, time.Since(startTime))
	return summary
}
