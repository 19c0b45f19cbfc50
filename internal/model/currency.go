package model

// ExchangeResponse is the body of a successful conversion.
type ExchangeResponse struct {
	ConvertedAmount float64 `json:"valorConvertido"`
	CurrencySymbol  string  `json:"simboloMoeda"`
}

const (
	// InternalErrorMessage is returned for failures that are not the caller's fault.
	InternalErrorMessage   = "Erro interno do servidor."
	TooManyRequestsMessage = "Muitas requisições. Tente novamente mais tarde."
)

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Error string `json:"error"`
}

type HealthResponse struct {
	Status  string `json:"status"`
	Service string `json:"service"`
	Version string `json:"version"`
	Redis   string `json:"redis"`
}
