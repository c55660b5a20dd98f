package domain

// DebtKind distingue as duas coleções de dívidas do planejamento financeiro.
type DebtKind string

const (
	DebtKindFixed    DebtKind = "fixed"
	DebtKindVariable DebtKind = "variable"
)

// Categorias válidas para dívidas. A lista é fixa e validada na entrada.
var DebtCategories = []string{
	"Alimentação",
	"Transporte",
	"Moradia",
	"Saúde",
	"Educação",
	"Lazer",
	"Vestuário",
	"Serviços",
	"Outros",
}

// IsValidDebtCategory verifica se a categoria informada pertence à lista fixa.
func IsValidDebtCategory(category string) bool {
	for _, c := range DebtCategories {
		if c == category {
			return true
		}
	}
	return false
}

// FixedDebt é uma obrigação mensal recorrente, identificada pelo dia do mês (1-31).
type FixedDebt struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Amount      float64 `json:"amount"`
	DueDate     int     `json:"dueDate"` // dia do mês (1-31)
	Category    string  `json:"category"`
	IsPaid      bool    `json:"isPaid"`
	Description string  `json:"description,omitempty"`
}

// VariableDebt é uma obrigação pontual com data de vencimento específica.
type VariableDebt struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Amount      float64 `json:"amount"`
	DueDate     string  `json:"dueDate"` // data específica (2006-01-02)
	Category    string  `json:"category"`
	IsPaid      bool    `json:"isPaid"`
	Description string  `json:"description,omitempty"`
}

// HistoryType identifica o tipo de mutação registrada no histórico financeiro.
type HistoryType string

const (
	HistoryCashUpdate  HistoryType = "cash_update"
	HistoryDebtAdded   HistoryType = "debt_added"
	HistoryDebtPaid    HistoryType = "debt_paid"
	HistoryDebtRemoved HistoryType = "debt_removed"
)

// HistoryEntry é o registro de auditoria de uma mutação monetária.
// Remoções entram com amount 0: são apenas anotações, sem delta monetário.
type HistoryEntry struct {
	ID          string      `json:"id"`
	Date        string      `json:"date"` // timestamp RFC3339
	Type        HistoryType `json:"type"`
	Description string      `json:"description"`
	Amount      float64     `json:"amount"`
	Category    string      `json:"category,omitempty"`
}

// MaxHistoryEntries limita o histórico financeiro; excedentes mais antigos são descartados.
const MaxHistoryEntries = 100

// FinancialSnapshot é o estado completo do planejamento financeiro de um usuário.
// availableBalance é sempre recalculado a partir de cashBalance e das dívidas não
// pagas, nunca confiado do valor armazenado.
type FinancialSnapshot struct {
	CashBalance        float64        `json:"cashBalance"`
	FixedDebts         []FixedDebt    `json:"fixedDebts"`
	VariableDebts      []VariableDebt `json:"variableDebts"`
	TotalFixedDebts    float64        `json:"totalFixedDebts"`
	TotalVariableDebts float64        `json:"totalVariableDebts"`
	AvailableBalance   float64        `json:"availableBalance"`
	History            []HistoryEntry `json:"history"`
}
