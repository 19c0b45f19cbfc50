package currency

import (
	"math"

	"github.com/shopspring/decimal"
)

// Request is a parsed conversion request.
type Request struct {
	Amount decimal.Decimal
	From   Code
	To     Code
	Rate   decimal.Decimal
}

// Result is the outcome of a successful conversion.
type Result struct {
	Amount decimal.Decimal
	Symbol string
}

// ParseRequest builds a Request from raw path segments. Numeric segments that
// are not valid decimals parse as zero so they fail amount/rate validation.
func ParseRequest(amount, from, to, rate string) Request {
	return Request{
		Amount: parseDecimal(amount),
		From:   Code(from),
		To:     Code(to),
		Rate:   parseDecimal(rate),
	}
}

func parseDecimal(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}

// ValidateAmountAndRate fails unless both values are strictly positive.
func ValidateAmountAndRate(amount, rate decimal.Decimal) error {
	if !amount.IsPositive() || !rate.IsPositive() {
		return ErrInvalidParameters
	}
	return nil
}

// ValidateCurrencies checks the source currency and that the pair is not
// degenerate. The destination is checked by Convert.
func ValidateCurrencies(from, to Code) error {
	if !IsSupported(from) || from == to {
		return ErrInvalidCurrencyPair
	}
	return nil
}

// Validate runs amount/rate validation before currency validation.
func (r Request) Validate() error {
	if err := ValidateAmountAndRate(r.Amount, r.Rate); err != nil {
		return err
	}
	return ValidateCurrencies(r.From, r.To)
}

// Convert applies the pair rule and rounds half away from zero to two places.
// A result too large for a JSON number fails as invalid parameters.
func Convert(amount decimal.Decimal, from, to Code, rate decimal.Decimal) (Result, error) {
	rule, ok := RuleFor(from, to)
	if !ok {
		return Result{}, ErrInvalidDestinationCurrency
	}
	converted := rule.Apply(amount, rate).Round(2)
	if math.IsInf(converted.InexactFloat64(), 0) {
		return Result{}, ErrInvalidParameters
	}
	return Result{
		Amount: converted,
		Symbol: Symbol(to),
	}, nil
}
