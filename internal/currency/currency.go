// Package currency holds the fixed currency tables and the conversion rules
// applied by the exchange endpoint.
package currency

import "github.com/shopspring/decimal"

// Code is a three letter ISO currency code.
type Code string

const (
	BRL Code = "BRL"
	USD Code = "USD"
	EUR Code = "EUR"
)

var symbols = map[Code]string{
	BRL: "R$",
	USD: "$",
	EUR: "€",
}

// Supported lists the currencies accepted as conversion source.
var Supported = []Code{BRL, USD, EUR}

// Symbol returns the display symbol for code, or an empty string if unknown.
func Symbol(code Code) string {
	return symbols[code]
}

// IsSupported reports whether code belongs to the supported set.
func IsSupported(code Code) bool {
	for _, c := range Supported {
		if c == code {
			return true
		}
	}
	return false
}

// Rule is the arithmetic applied to amount and rate for a pair.
type Rule int

const (
	Multiply Rule = iota
	Divide
)

func (r Rule) String() string {
	switch r {
	case Multiply:
		return "multiply"
	case Divide:
		return "divide"
	default:
		return "unknown"
	}
}

// Apply computes the unrounded converted amount.
func (r Rule) Apply(amount, rate decimal.Decimal) decimal.Decimal {
	if r == Divide {
		return amount.Div(rate)
	}
	return amount.Mul(rate)
}

// Pair is an ordered conversion direction.
type Pair struct {
	From Code
	To   Code
}

// Every pair multiplies by the caller supplied rate, including conversions
// into BRL. Divide is available should a pair need the reciprocal.
var pairRules = map[Pair]Rule{
	{BRL, USD}: Multiply,
	{BRL, EUR}: Multiply,
	{USD, BRL}: Multiply,
	{EUR, BRL}: Multiply,
	{EUR, USD}: Multiply,
}

// RuleFor returns the rule registered for from→to.
func RuleFor(from, to Code) (Rule, bool) {
	r, ok := pairRules[Pair{From: from, To: to}]
	return r, ok
}
