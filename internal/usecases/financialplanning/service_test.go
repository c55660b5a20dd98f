package financialplanning

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nexumapp/nexum-api/infrastructure/storage"
	"github.com/nexumapp/nexum-api/internal/domain"
)

func newTestService() *Service {
	service := NewService(storage.NewMemoryStore())
	service.now = func() time.Time { return time.Date(2025, 1, 15, 12, 0, 0, 0, time.UTC) }
	return service
}

func fixedDebt(name string, amount float64, dueDay int) domain.FixedDebt {
	return domain.FixedDebt{
		Name:     name,
		Amount:   amount,
		DueDate:  dueDay,
		Category: "Moradia",
	}
}

func variableDebt(name string, amount float64, dueDate string) domain.VariableDebt {
	return domain.VariableDebt{
		Name:     name,
		Amount:   amount,
		DueDate:  dueDate,
		Category: "Outros",
	}
}

func TestPlanningScenario_BalancesAndTotals(t *testing.T) {
	service := newTestService()

	snapshot, err := service.UpdateCashBalance("admin", 5000)
	require.NoError(t, err)
	assert.Equal(t, 5000.0, snapshot.AvailableBalance)

	snapshot, err = service.AddFixedDebt("admin", fixedDebt("Aluguel", 1200, 10))
	require.NoError(t, err)

	snapshot, err = service.AddVariableDebt("admin", variableDebt("Conserto", 300, "2025-01-20"))
	require.NoError(t, err)

	assert.Equal(t, 1200.0, snapshot.TotalFixedDebts)
	assert.Equal(t, 300.0, snapshot.TotalVariableDebts)
	assert.Equal(t, 3500.0, snapshot.AvailableBalance)

	// Marcar a dívida fixa como paga tira o valor dos totais em aberto.
	snapshot, err = service.ToggleDebtPayment("admin", snapshot.FixedDebts[0].ID, domain.DebtKindFixed)
	require.NoError(t, err)

	assert.Equal(t, 0.0, snapshot.TotalFixedDebts)
	assert.Equal(t, 4700.0, snapshot.AvailableBalance)
}

func TestAvailableBalance_InvariantAfterEveryOperation(t *testing.T) {
	service := newTestService()

	checkInvariant := func(snapshot *domain.FinancialSnapshot) {
		t.Helper()
		var unpaid float64
		for _, d := range snapshot.FixedDebts {
			if !d.IsPaid {
				unpaid += d.Amount
			}
		}
		for _, d := range snapshot.VariableDebts {
			if !d.IsPaid {
				unpaid += d.Amount
			}
		}
		assert.Equal(t, snapshot.CashBalance-unpaid, snapshot.AvailableBalance)
	}

	snapshot, err := service.UpdateCashBalance("admin", 2000)
	require.NoError(t, err)
	checkInvariant(snapshot)

	snapshot, err = service.AddFixedDebt("admin", fixedDebt("Internet", 150, 5))
	require.NoError(t, err)
	checkInvariant(snapshot)

	snapshot, err = service.AddVariableDebt("admin", variableDebt("Multa", 90, "2025-02-01"))
	require.NoError(t, err)
	checkInvariant(snapshot)

	snapshot, err = service.ToggleDebtPayment("admin", snapshot.VariableDebts[0].ID, domain.DebtKindVariable)
	require.NoError(t, err)
	checkInvariant(snapshot)

	snapshot, err = service.RemoveDebt("admin", snapshot.FixedDebts[0].ID, domain.DebtKindFixed)
	require.NoError(t, err)
	checkInvariant(snapshot)
}

func TestToggleDebtPayment_TwiceRestoresBalance(t *testing.T) {
	service := newTestService()

	_, err := service.UpdateCashBalance("admin", 1000)
	require.NoError(t, err)

	snapshot, err := service.AddFixedDebt("admin", fixedDebt("Luz", 200, 15))
	require.NoError(t, err)

	original := snapshot.AvailableBalance
	debtID := snapshot.FixedDebts[0].ID

	snapshot, err = service.ToggleDebtPayment("admin", debtID, domain.DebtKindFixed)
	require.NoError(t, err)
	assert.Equal(t, original+200, snapshot.AvailableBalance)

	snapshot, err = service.ToggleDebtPayment("admin", debtID, domain.DebtKindFixed)
	require.NoError(t, err)
	assert.Equal(t, original, snapshot.AvailableBalance)
}

func TestHistory_OneEntryPerMutationWithSignedAmounts(t *testing.T) {
	service := newTestService()

	snapshot, err := service.UpdateCashBalance("admin", 800)
	require.NoError(t, err)
	require.Len(t, snapshot.History, 1)
	assert.Equal(t, domain.HistoryCashUpdate, snapshot.History[0].Type)
	// O histórico de saldo registra o novo valor, não o delta.
	assert.Equal(t, 800.0, snapshot.History[0].Amount)

	snapshot, err = service.AddFixedDebt("admin", fixedDebt("Aluguel", 500, 10))
	require.NoError(t, err)
	require.Len(t, snapshot.History, 2)
	assert.Equal(t, domain.HistoryDebtAdded, snapshot.History[0].Type)
	assert.Equal(t, -500.0, snapshot.History[0].Amount)

	debtID := snapshot.FixedDebts[0].ID

	snapshot, err = service.ToggleDebtPayment("admin", debtID, domain.DebtKindFixed)
	require.NoError(t, err)
	require.Len(t, snapshot.History, 3)
	assert.Equal(t, domain.HistoryDebtPaid, snapshot.History[0].Type)
	assert.Equal(t, 500.0, snapshot.History[0].Amount)

	snapshot, err = service.ToggleDebtPayment("admin", debtID, domain.DebtKindFixed)
	require.NoError(t, err)
	require.Len(t, snapshot.History, 4)
	assert.Equal(t, -500.0, snapshot.History[0].Amount)

	snapshot, err = service.RemoveDebt("admin", debtID, domain.DebtKindFixed)
	require.NoError(t, err)
	require.Len(t, snapshot.History, 5)
	assert.Equal(t, domain.HistoryDebtRemoved, snapshot.History[0].Type)
	assert.Equal(t, 0.0, snapshot.History[0].Amount)
}

func TestHistory_CappedAtMaxEntries(t *testing.T) {
	service := newTestService()

	var snapshot *domain.FinancialSnapshot
	var err error
	for i := 0; i < domain.MaxHistoryEntries+10; i++ {
		snapshot, err = service.UpdateCashBalance("admin", float64(i))
		require.NoError(t, err)
	}

	require.Len(t, snapshot.History, domain.MaxHistoryEntries)
	// A entrada mais recente fica no topo; as mais antigas foram descartadas.
	assert.Equal(t, float64(domain.MaxHistoryEntries+9), snapshot.History[0].Amount)
	assert.Equal(t, float64(10), snapshot.History[domain.MaxHistoryEntries-1].Amount)
}

func TestRemoveDebt_RemovesExactlyOneFromCorrectCollection(t *testing.T) {
	service := newTestService()

	_, err := service.AddFixedDebt("admin", fixedDebt("Aluguel", 500, 10))
	require.NoError(t, err)

	snapshot, err := service.AddVariableDebt("admin", variableDebt("Conserto", 300, "2025-01-20"))
	require.NoError(t, err)

	fixedID := snapshot.FixedDebts[0].ID

	snapshot, err = service.RemoveDebt("admin", fixedID, domain.DebtKindFixed)
	require.NoError(t, err)

	assert.Empty(t, snapshot.FixedDebts)
	assert.Len(t, snapshot.VariableDebts, 1, "a outra coleção permanece intocada")
}

func TestToggleAndRemove_UnknownIDIsNoOp(t *testing.T) {
	service := newTestService()

	snapshot, err := service.AddFixedDebt("admin", fixedDebt("Aluguel", 500, 10))
	require.NoError(t, err)
	historyLen := len(snapshot.History)

	snapshot, err = service.ToggleDebtPayment("admin", "inexistente", domain.DebtKindFixed)
	require.NoError(t, err)
	assert.Len(t, snapshot.History, historyLen, "no-op não gera histórico")
	assert.False(t, snapshot.FixedDebts[0].IsPaid)

	snapshot, err = service.RemoveDebt("admin", "inexistente", domain.DebtKindVariable)
	require.NoError(t, err)
	assert.Len(t, snapshot.History, historyLen)
	assert.Len(t, snapshot.FixedDebts, 1)
}

func TestValidation_RejectedBeforeAnyMutation(t *testing.T) {
	service := newTestService()

	tests := []struct {
		name    string
		run     func() error
		wantErr error
	}{
		{
			name: "dívida fixa sem nome",
			run: func() error {
				_, err := service.AddFixedDebt("admin", fixedDebt("", 100, 10))
				return err
			},
			wantErr: ErrMissingName,
		},
		{
			name: "valor não positivo",
			run: func() error {
				_, err := service.AddFixedDebt("admin", fixedDebt("Luz", 0, 10))
				return err
			},
			wantErr: ErrInvalidAmount,
		},
		{
			name: "dia de vencimento fora de 1-31",
			run: func() error {
				_, err := service.AddFixedDebt("admin", fixedDebt("Luz", 100, 32))
				return err
			},
			wantErr: ErrInvalidDueDay,
		},
		{
			name: "categoria desconhecida",
			run: func() error {
				debt := fixedDebt("Luz", 100, 10)
				debt.Category = "Apostas"
				_, err := service.AddFixedDebt("admin", debt)
				return err
			},
			wantErr: ErrInvalidCategory,
		},
		{
			name: "data de vencimento inválida",
			run: func() error {
				_, err := service.AddVariableDebt("admin", variableDebt("Multa", 90, "20/01/2025"))
				return err
			},
			wantErr: ErrInvalidDueDate,
		},
		{
			name: "tipo de dívida inválido",
			run: func() error {
				_, err := service.ToggleDebtPayment("admin", "qualquer", domain.DebtKind("outro"))
				return err
			},
			wantErr: ErrInvalidKind,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.run()
			assert.ErrorIs(t, err, tt.wantErr)

			snapshot, loadErr := service.Load("admin")
			require.NoError(t, loadErr)
			assert.Empty(t, snapshot.FixedDebts)
			assert.Empty(t, snapshot.VariableDebts)
			assert.Empty(t, snapshot.History, "validação rejeitada não gera histórico")
		})
	}
}

func TestLoad_RecomputesAvailableBalanceFromStoredDebts(t *testing.T) {
	store := storage.NewMemoryStore()
	service := NewService(store)

	// Snapshot gravado com availableBalance divergente dos componentes.
	stored := fmt.Sprintf(`{"cashBalance":1000,"fixedDebts":[{"id":"a","name":"Luz","amount":100,"dueDate":5,"category":"Moradia","isPaid":false}],"variableDebts":[],"totalFixedDebts":0,"totalVariableDebts":0,"availableBalance":%v,"history":[]}`, 9999)
	require.NoError(t, store.Set(storage.FinancialDataKey("admin"), stored))

	snapshot, err := service.Load("admin")
	require.NoError(t, err)

	assert.Equal(t, 100.0, snapshot.TotalFixedDebts)
	assert.Equal(t, 900.0, snapshot.AvailableBalance)
}
