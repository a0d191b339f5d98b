package resumen_ar

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/aiesanjusto/resumen/extractor/common"
	"github.com/shopspring/decimal"
)

// ErrMalformedLine reports a movement line whose numeric tokens cannot be
// unambiguously assigned to debit/credit/balance. Such lines are skipped and
// tallied, never guessed at.
var ErrMalformedLine = errors.New("cannot assign numeric columns")

// errNoAmounts marks an informational line: classified, but carrying no
// money token. It is discarded without counting as malformed.
var errNoAmounts = errors.New("no amounts on line")

// builder turns classified lines into transactions. It carries the most
// recent movement date because statements omit repeated dates on consecutive
// rows of the same day.
type builder struct {
	convention  common.SignConvention
	debitSuffix string
	lastDate    *time.Time
	sequence    int
}

func newBuilder(convention common.SignConvention, debitSuffix string) *builder {
	if debitSuffix == "" {
		debitSuffix = "-"
	}
	return &builder{convention: convention, debitSuffix: debitSuffix}
}

// build extracts one Transaction from a classified movement line. Column
// convention: the rightmost money token is the running balance when two are
// printed, the one before it (or the only one) is the movement; a movement
// token ending in the debit suffix is a debit, otherwise a credit.
func (b *builder) build(line common.Line, cls Classification) (common.Transaction, error) {
	text := line.Text

	// Leading date, inherited from the previous row when absent. A token
	// that fails to parse stays in the description instead of vanishing.
	date := b.lastDate
	if loc := common.DateRegex.FindStringIndex(text); loc != nil && strings.TrimSpace(text[:loc[0]]) == "" {
		if dt, err := common.ParseDate(text[loc[0]:loc[1]]); err == nil {
			date = &dt
			b.lastDate = &dt
			text = text[:loc[0]] + text[loc[1]:]
		}
	}

	tokens := common.MoneyRegex.FindAllString(text, -1)
	switch {
	case len(tokens) == 0:
		return common.Transaction{}, errNoAmounts
	case len(tokens) > 2:
		return common.Transaction{}, fmt.Errorf("%w: %d money tokens", ErrMalformedLine, len(tokens))
	}

	amountToken := tokens[0]
	var balance *decimal.Decimal
	if len(tokens) == 2 {
		if bal, err := common.ParseMoney(tokens[1]); err == nil {
			balance = &bal
		}
		// A balance that fails to parse stays absent; it is only ever used
		// for cross-checking.
	}

	amount, err := common.ParseMoney(amountToken)
	if err != nil {
		return common.Transaction{}, fmt.Errorf("%w: %v", ErrMalformedLine, err)
	}
	amount = amount.Abs()

	var debit, credit decimal.Decimal
	tx := common.Transaction{
		Date:        date,
		Description: common.NormalizeSpace(stripTokens(text, tokens)),
		Balance:     balance,
		Category:    cls.Category,
		TaxID:       cls.TaxID,
		Page:        line.Page,
		Line:        line.Index,
	}
	if strings.HasSuffix(amountToken, b.debitSuffix) {
		debit = amount
		tx.Debit = &debit
	} else {
		credit = amount
		tx.Credit = &credit
	}
	tx.Amount = b.convention.Amount(debit, credit)

	b.sequence++
	tx.Sequence = b.sequence
	return tx, nil
}

// stripTokens removes the money tokens from the line, leaving the free-text
// description.
func stripTokens(text string, tokens []string) string {
	for _, token := range tokens {
		text = strings.Replace(text, token, " ", 1)
	}
	return text
}
