package currency

import "net/http"

// Kind classifies an exchange failure.
type Kind string

const (
	KindRouteMismatch              Kind = "ROUTE_MISMATCH"
	KindInvalidParameters          Kind = "INVALID_PARAMETERS"
	KindInvalidCurrencyPair        Kind = "INVALID_CURRENCY_PAIR"
	KindInvalidDestinationCurrency Kind = "INVALID_DESTINATION_CURRENCY"
)

// ExchangeError is a terminal, client-facing failure. Message is returned to
// callers verbatim and must not change.
type ExchangeError struct {
	Kind    Kind
	Status  int
	Message string
}

func (e *ExchangeError) Error() string {
	return e.Message
}

var (
	ErrRouteMismatch = &ExchangeError{
		Kind:    KindRouteMismatch,
		Status:  http.StatusNotFound,
		Message: "Parâmetros insuficientes.",
	}
	ErrInvalidParameters = &ExchangeError{
		Kind:    KindInvalidParameters,
		Status:  http.StatusBadRequest,
		Message: "Parâmetros inválidos.",
	}
	ErrInvalidCurrencyPair = &ExchangeError{
		Kind:    KindInvalidCurrencyPair,
		Status:  http.StatusBadRequest,
		Message: "Moeda de origem ou destino inválida.",
	}
	ErrInvalidDestinationCurrency = &ExchangeError{
		Kind:    KindInvalidDestinationCurrency,
		Status:  http.StatusBadRequest,
		Message: "Moeda de destino inválida.",
	}
)
