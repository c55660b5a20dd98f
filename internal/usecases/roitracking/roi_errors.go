package roitracking

import "errors"

// Erros do ledger de ROI. Todos são recuperáveis: o estado armazenado nunca é
// alterado quando um deles ocorre.
var (
	ErrInvalidExpense  = errors.New("valor de investimento inválido")
	ErrInvalidReturn   = errors.New("valor de retorno inválido")
	ErrInvalidDate     = errors.New("data inválida")
	ErrLoadingSnapshot = errors.New("erro ao carregar dados salvos")
	ErrSavingSnapshot  = errors.New("erro ao salvar dados")
)
