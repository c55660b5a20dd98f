package handler

import (
	"encoding/json"
	"net/http"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/nexumapp/nexum-api/internal/domain"
	"github.com/nexumapp/nexum-api/internal/usecases/roitracking"
	"github.com/nexumapp/nexum-api/pkg/apiErrors"
	"github.com/nexumapp/nexum-api/pkg/middleware"
)

type AddROIEntryRequest struct {
	Expense float64 `json:"expense"`
	Return  float64 `json:"return"`
}

// GetROIData retorna o snapshot de ROI do usuário logado
func GetROIData(service roitracking.ROITracker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		scope, ok := scopeFromRequest(w, r)
		if !ok {
			return
		}

		snapshot, err := service.Load(scope)
		if err != nil {
			logrus.WithError(err).WithField("scope", scope).Error("Erro ao carregar dados de ROI")
			apiErrors.WriteError(w, apiErrors.ErrStorageFailure, "Erro ao carregar dados de ROI", nil)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(snapshot)
	}
}

// AddROIEntry registra o investimento e o retorno do dia atual
func AddROIEntry(service roitracking.ROITracker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		scope, ok := scopeFromRequest(w, r)
		if !ok {
			return
		}

		var req AddROIEntryRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Formato de requisição inválido", nil)
			return
		}

		snapshot, err := service.AddEntry(scope, req.Expense, req.Return)
		if err != nil {
			handleROIError(w, snapshot, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(snapshot)
	}
}

// FilterROIEntries retorna as entradas de uma data específica (yyyy-mm-dd)
func FilterROIEntries(service roitracking.ROITracker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		scope, ok := scopeFromRequest(w, r)
		if !ok {
			return
		}

		date := r.URL.Query().Get("date")
		if date == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "Parâmetro date é obrigatório", nil)
			return
		}

		entries, err := service.FilterByDate(scope, date)
		if err != nil {
			if errors.Is(err, roitracking.ErrInvalidDate) {
				apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "Data inválida, use o formato yyyy-mm-dd", nil)
				return
			}
			logrus.WithError(err).Error("Erro ao filtrar entradas de ROI")
			apiErrors.WriteError(w, apiErrors.ErrStorageFailure, "Erro ao filtrar entradas de ROI", nil)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(entries)
	}
}

func handleROIError(w http.ResponseWriter, snapshot *domain.ROISnapshot, err error) {
	switch {
	case errors.Is(err, roitracking.ErrInvalidExpense):
		apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "Investimento inválido", nil)

	case errors.Is(err, roitracking.ErrInvalidReturn):
		apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "Retorno inválido", nil)

	case errors.Is(err, roitracking.ErrSavingSnapshot):
		// A mutação foi aplicada em memória, devolver o snapshot com aviso de persistência
		logrus.WithError(err).Warn("Falha ao persistir snapshot de ROI")
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusAccepted)
		json.NewEncoder(w).Encode(snapshot)

	default:
		logrus.WithError(err).Error("Erro ao registrar entrada de ROI")
		apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao registrar entrada de ROI", nil)
	}
}

// scopeFromRequest extrai o username das claims, usado como escopo dos snapshots
func scopeFromRequest(w http.ResponseWriter, r *http.Request) (string, bool) {
	userClaims, ok := r.Context().Value(middleware.ContextKeyUser).(*domain.Claims)
	if !ok {
		apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "Usuário não autenticado", nil)
		return "", false
	}

	return userClaims.Username, true
}
