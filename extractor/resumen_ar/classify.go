package resumen_ar

import (
	"log"
	"regexp"
	"strings"

	"github.com/aiesanjusto/resumen/extractor/common"
	"github.com/spf13/viper"
)

// Rule is one entry of the ordered classification table. A rule matches a
// line when Match hits and, if set, Require hits too. Capture, when set,
// pulls the counterparty CUIT out of the line.
type Rule struct {
	Name     string
	Category common.Category
	Match    *regexp.Regexp
	Require  *regexp.Regexp
	Capture  *regexp.Regexp
}

// Classification is the outcome of running one line through the rule table.
type Classification struct {
	Category common.Category
	TaxID    string
	Matched  bool
}

// Classify evaluates the rules in order against the folded (uppercase,
// diacritic-free) line and returns the first match. Money tokens are blanked
// out first: rules describe the narration columns, and digits in the amount
// columns must never satisfy a rate requirement like "21". Rule order encodes
// priority: SIRCREB must win over the generic automatic debit cues, and the
// rated IVA rules over the bare IVA one. A line matching nothing stays
// unclassified and never becomes a transaction.
func Classify(rules []Rule, text string) Classification {
	folded := common.MoneyRegex.ReplaceAllString(common.Fold(text), " ")
	for _, rule := range rules {
		if !rule.Match.MatchString(folded) {
			continue
		}
		if rule.Require != nil && !rule.Require.MatchString(folded) {
			continue
		}

		cls := Classification{Category: rule.Category, Matched: true}
		if rule.Capture != nil {
			if m := rule.Capture.FindString(folded); m != "" {
				cls.TaxID = strings.ReplaceAll(m, "-", "")
			}
		}
		return cls
	}
	return Classification{}
}

// DefaultRules returns the built-in rule table. The same table ships as the
// embedded YAML config, so deployments can reorder, drop or extend rules
// without rebuilding.
func DefaultRules() []Rule {
	cuit := common.CUITRegex
	return []Rule{
		{Name: "balance_marker", Category: common.CategoryBalanceMarker,
			Match: regexp.MustCompile(`SALDO AL \d{1,2}[/-]\d{1,2}[/-]\d{2,4}`)},
		{Name: "sircreb", Category: common.CategorySircreb,
			Match: regexp.MustCompile(`\bSIRCREB\b`)},
		{Name: "dyc", Category: common.CategoryDyC,
			Match: regexp.MustCompile(`\bDY[ /]?C\b|DEUDA Y CREDITO|\bDGC\b`)},
		{Name: "debit_auto_api", Category: common.CategoryDebitAPI,
			Match: regexp.MustCompile(`\bAPI\b`)},
		{Name: "debit_auto_arca", Category: common.CategoryDebitARCA,
			Match: regexp.MustCompile(`\bARCA\b`)},
		{Name: "vat_perception", Category: common.CategoryVATPerception,
			Match: regexp.MustCompile(`PERCEPCION\s+IVA|PERCEP\.?\s*IVA`)},
		{Name: "vat_10_5", Category: common.CategoryVAT105,
			Match:   regexp.MustCompile(`\bIVA\b`),
			Require: regexp.MustCompile(`10[,.]5`)},
		{Name: "vat_21", Category: common.CategoryVAT21,
			Match:   regexp.MustCompile(`\bIVA\b`),
			Require: regexp.MustCompile(`\b21\b`)},
		{Name: "vat_other", Category: common.CategoryVATOther,
			Match: regexp.MustCompile(`\bIVA\b`)},
		{Name: "transfer_own_account", Category: common.CategoryTransferOwn,
			Match:   regexp.MustCompile(`PROPIA|MISMA TITULARIDAD|ENTRE CUENTAS`),
			Capture: cuit},
		{Name: "transfer_received", Category: common.CategoryTransferReceived,
			Match:   regexp.MustCompile(`\bTRANSFEREN`),
			Require: regexp.MustCompile(`RECIBID`),
			Capture: cuit},
		{Name: "transfer_sent", Category: common.CategoryTransferSent,
			Match:   regexp.MustCompile(`\bTRANSFEREN`),
			Require: regexp.MustCompile(`REALIZAD`),
			Capture: cuit},
		{Name: "commission", Category: common.CategoryCommission,
			Match: regexp.MustCompile(`COMISION|GASTOS? BANCARIOS?`)},
		{Name: "debit_auto", Category: common.CategoryDebitAuto,
			Match: regexp.MustCompile(`SEGURO|PRIMA|DEBITO AUTOM`)},
	}
}

// RulesFromConfig builds the rule table from the viper "rules" list, falling
// back to DefaultRules when the key is absent. Entries that fail to compile
// are logged and skipped rather than aborting the run.
func RulesFromConfig() []Rule {
	raw, ok := viper.Get("rules").([]interface{})
	if !ok || len(raw) == 0 {
		return DefaultRules()
	}

	rules := make([]Rule, 0, len(raw))
	for _, entry := range raw {
		m, ok := entry.(map[string]interface{})
		if !ok {
			continue
		}

		rule := Rule{
			Name:     getString(m, "name"),
			Category: common.Category(getString(m, "category")),
		}

		match, err := regexp.Compile(getString(m, "match"))
		if err != nil || rule.Category == "" {
			log.Printf("Warning: skipping rule %q: %v", rule.Name, err)
			continue
		}
		rule.Match = match

		if pat := getString(m, "require"); pat != "" {
			if re, err := regexp.Compile(pat); err == nil {
				rule.Require = re
			} else {
				log.Printf("Warning: rule %q: bad require pattern: %v", rule.Name, err)
			}
		}
		if pat := getString(m, "capture"); pat != "" {
			if re, err := regexp.Compile(pat); err == nil {
				rule.Capture = re
			} else {
				log.Printf("Warning: rule %q: bad capture pattern: %v", rule.Name, err)
			}
		}

		rules = append(rules, rule)
	}

	if len(rules) == 0 {
		return DefaultRules()
	}
	return rules
}

func getString(m map[string]interface{}, key string) string {
	if v, ok := m[key].(string); ok {
		return v
	}
	return ""
}
