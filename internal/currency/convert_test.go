package currency

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestConvert_SupportedPairs(t *testing.T) {
	testCases := []struct {
		name   string
		amount string
		from   Code
		to     Code
		rate   string
		want   string
		symbol string
	}{
		{"BRL to USD", "100", BRL, USD, "0.2", "20", "$"},
		{"BRL to EUR", "100", BRL, EUR, "0.17", "17", "€"},
		{"USD to BRL", "50", USD, BRL, "5", "250", "R$"},
		{"EUR to BRL", "10", EUR, BRL, "6.123", "61.23", "R$"},
		{"EUR to USD", "10", EUR, USD, "1.1", "11", "$"},
		{"rounds half away from zero", "1.005", BRL, USD, "1", "1.01", "$"},
		{"rounds down below half", "3.333", BRL, USD, "1", "3.33", "$"},
		{"small amount", "0.01", USD, BRL, "0.3", "0", "R$"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			result, err := Convert(d(tc.amount), tc.from, tc.to, d(tc.rate))
			require.NoError(t, err)
			assert.True(t, d(tc.want).Equal(result.Amount), "want %s, got %s", tc.want, result.Amount)
			assert.Equal(t, tc.symbol, result.Symbol)
		})
	}
}

func TestConvert_UnsupportedPair(t *testing.T) {
	testCases := []struct {
		from Code
		to   Code
	}{
		{USD, EUR},
		{USD, "XYZ"},
		{BRL, "GBP"},
		{"XYZ", USD},
	}

	for _, tc := range testCases {
		t.Run(string(tc.from)+"_"+string(tc.to), func(t *testing.T) {
			_, err := Convert(d("10"), tc.from, tc.to, d("1.1"))
			assert.ErrorIs(t, err, ErrInvalidDestinationCurrency)
		})
	}
}

func TestConvert_ResultTooLarge(t *testing.T) {
	huge := d("1" + strings.Repeat("0", 400))

	_, err := Convert(huge, BRL, USD, d("1"))
	assert.ErrorIs(t, err, ErrInvalidParameters)

	_, err = Convert(d("1"), EUR, BRL, huge)
	assert.ErrorIs(t, err, ErrInvalidParameters)

	result, err := Convert(d("1e300"), BRL, USD, d("1"))
	require.NoError(t, err)
	assert.Equal(t, 1e300, result.Amount.InexactFloat64())
}

func TestValidateAmountAndRate(t *testing.T) {
	assert.NoError(t, ValidateAmountAndRate(d("0.01"), d("1")))
	assert.ErrorIs(t, ValidateAmountAndRate(d("0"), d("1")), ErrInvalidParameters)
	assert.ErrorIs(t, ValidateAmountAndRate(d("-5"), d("2")), ErrInvalidParameters)
	assert.ErrorIs(t, ValidateAmountAndRate(d("10"), d("0")), ErrInvalidParameters)
	assert.ErrorIs(t, ValidateAmountAndRate(d("10"), d("-0.5")), ErrInvalidParameters)
}

func TestValidateCurrencies(t *testing.T) {
	assert.NoError(t, ValidateCurrencies(BRL, USD))
	// destination is left for Convert to reject
	assert.NoError(t, ValidateCurrencies(USD, "XYZ"))

	for _, c := range Supported {
		assert.ErrorIs(t, ValidateCurrencies(c, c), ErrInvalidCurrencyPair)
	}
	assert.ErrorIs(t, ValidateCurrencies("XYZ", USD), ErrInvalidCurrencyPair)
	assert.ErrorIs(t, ValidateCurrencies("brl", USD), ErrInvalidCurrencyPair)
}

func TestRequest_ValidateOrder(t *testing.T) {
	// amount/rate are checked before the currency pair
	req := ParseRequest("-5", "BRL", "BRL", "2")
	assert.ErrorIs(t, req.Validate(), ErrInvalidParameters)

	req = ParseRequest("10", "BRL", "BRL", "1")
	assert.ErrorIs(t, req.Validate(), ErrInvalidCurrencyPair)

	req = ParseRequest("10", "USD", "EUR", "1.1")
	assert.NoError(t, req.Validate())
}

func TestParseRequest_MalformedNumbers(t *testing.T) {
	for _, raw := range []string{"1.2.3", ".", "", "abc"} {
		req := ParseRequest(raw, "BRL", "USD", raw)
		assert.True(t, req.Amount.IsZero(), raw)
		assert.ErrorIs(t, req.Validate(), ErrInvalidParameters, raw)
	}
}

func TestSymbolAndSupport(t *testing.T) {
	assert.Equal(t, "R$", Symbol(BRL))
	assert.Equal(t, "$", Symbol(USD))
	assert.Equal(t, "€", Symbol(EUR))
	assert.Equal(t, "", Symbol("XYZ"))

	assert.True(t, IsSupported(EUR))
	assert.False(t, IsSupported("GBP"))
}

func TestRule(t *testing.T) {
	rule, ok := RuleFor(USD, BRL)
	require.True(t, ok)
	assert.Equal(t, Multiply, rule)
	assert.Equal(t, "multiply", rule.String())

	_, ok = RuleFor(USD, EUR)
	assert.False(t, ok)

	assert.True(t, d("5").Equal(Divide.Apply(d("10"), d("2"))))
	assert.True(t, d("20").Equal(Multiply.Apply(d("10"), d("2"))))
}
