package financialplanning

import "errors"

// Erros do planejamento financeiro. Validações rejeitam a operação antes de
// qualquer mutação: nada é persistido e nenhum histórico é gravado.
var (
	ErrInvalidAmount   = errors.New("valor inválido")
	ErrMissingName     = errors.New("nome da dívida é obrigatório")
	ErrInvalidCategory = errors.New("categoria inválida")
	ErrInvalidDueDay   = errors.New("dia de vencimento deve estar entre 1 e 31")
	ErrInvalidDueDate  = errors.New("data de vencimento inválida")
	ErrInvalidKind     = errors.New("tipo de dívida inválido")
	ErrLoadingSnapshot = errors.New("erro ao carregar dados financeiros")
	ErrSavingSnapshot  = errors.New("erro ao salvar dados financeiros")
)
