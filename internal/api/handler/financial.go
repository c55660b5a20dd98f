package handler

import (
	"encoding/json"
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/nexumapp/nexum-api/internal/domain"
	"github.com/nexumapp/nexum-api/internal/usecases/financialplanning"
	"github.com/nexumapp/nexum-api/pkg/apiErrors"
)

type UpdateCashBalanceRequest struct {
	Amount float64 `json:"amount"`
}

// GetFinancialData retorna o snapshot do planejamento financeiro do usuário logado
func GetFinancialData(service financialplanning.FinancialPlanner) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		scope, ok := scopeFromRequest(w, r)
		if !ok {
			return
		}

		snapshot, err := service.Load(scope)
		if err != nil {
			logrus.WithError(err).WithField("scope", scope).Error("Erro ao carregar planejamento financeiro")
			apiErrors.WriteError(w, apiErrors.ErrStorageFailure, "Erro ao carregar planejamento financeiro", nil)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(snapshot)
	}
}

// UpdateCashBalance define o saldo em caixa e registra a alteração no histórico
func UpdateCashBalance(service financialplanning.FinancialPlanner) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		scope, ok := scopeFromRequest(w, r)
		if !ok {
			return
		}

		var req UpdateCashBalanceRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Formato de requisição inválido", nil)
			return
		}

		snapshot, err := service.UpdateCashBalance(scope, req.Amount)
		if err != nil {
			handleFinancialError(w, snapshot, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(snapshot)
	}
}

// AddFixedDebt cadastra uma dívida fixa mensal (vencimento por dia do mês)
func AddFixedDebt(service financialplanning.FinancialPlanner) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		scope, ok := scopeFromRequest(w, r)
		if !ok {
			return
		}

		var debt domain.FixedDebt
		if err := json.NewDecoder(r.Body).Decode(&debt); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Formato de requisição inválido", nil)
			return
		}

		snapshot, err := service.AddFixedDebt(scope, debt)
		if err != nil {
			handleFinancialError(w, snapshot, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(snapshot)
	}
}

// AddVariableDebt cadastra uma dívida variável (vencimento por data completa)
func AddVariableDebt(service financialplanning.FinancialPlanner) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		scope, ok := scopeFromRequest(w, r)
		if !ok {
			return
		}

		var debt domain.VariableDebt
		if err := json.NewDecoder(r.Body).Decode(&debt); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Formato de requisição inválido", nil)
			return
		}

		snapshot, err := service.AddVariableDebt(scope, debt)
		if err != nil {
			handleFinancialError(w, snapshot, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(snapshot)
	}
}

// ToggleDebtPayment alterna o estado de pagamento de uma dívida
func ToggleDebtPayment(service financialplanning.FinancialPlanner) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		scope, ok := scopeFromRequest(w, r)
		if !ok {
			return
		}

		debtID := httprouter.ParamsFromContext(r.Context()).ByName("id")
		kind, ok := debtKindFromQuery(w, r)
		if !ok {
			return
		}

		snapshot, err := service.ToggleDebtPayment(scope, debtID, kind)
		if err != nil {
			handleFinancialError(w, snapshot, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(snapshot)
	}
}

// RemoveDebt exclui uma dívida do planejamento
func RemoveDebt(service financialplanning.FinancialPlanner) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		scope, ok := scopeFromRequest(w, r)
		if !ok {
			return
		}

		debtID := httprouter.ParamsFromContext(r.Context()).ByName("id")
		kind, ok := debtKindFromQuery(w, r)
		if !ok {
			return
		}

		snapshot, err := service.RemoveDebt(scope, debtID, kind)
		if err != nil {
			handleFinancialError(w, snapshot, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(snapshot)
	}
}

func debtKindFromQuery(w http.ResponseWriter, r *http.Request) (domain.DebtKind, bool) {
	kind := domain.DebtKind(r.URL.Query().Get("kind"))
	if kind != domain.DebtKindFixed && kind != domain.DebtKindVariable {
		apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "Parâmetro kind deve ser fixed ou variable", nil)
		return "", false
	}

	return kind, true
}

func handleFinancialError(w http.ResponseWriter, snapshot *domain.FinancialSnapshot, err error) {
	switch {
	case errors.Is(err, financialplanning.ErrInvalidAmount),
		errors.Is(err, financialplanning.ErrMissingName),
		errors.Is(err, financialplanning.ErrInvalidCategory),
		errors.Is(err, financialplanning.ErrInvalidDueDay),
		errors.Is(err, financialplanning.ErrInvalidDueDate),
		errors.Is(err, financialplanning.ErrInvalidKind):
		apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, err.Error(), nil)

	case errors.Is(err, financialplanning.ErrSavingSnapshot):
		// A mutação foi aplicada em memória, devolver o snapshot com aviso de persistência
		logrus.WithError(err).Warn("Falha ao persistir planejamento financeiro")
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusAccepted)
		json.NewEncoder(w).Encode(snapshot)

	default:
		logrus.WithError(err).Error("Erro ao atualizar planejamento financeiro")
		apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao atualizar planejamento financeiro", nil)
	}
}
