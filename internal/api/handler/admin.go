package handler

import (
	"encoding/json"
	"net/http"

	"github.com/sirupsen/logrus"

	"github.com/nexumapp/nexum-api/internal/usecases/administrating"
	"github.com/nexumapp/nexum-api/pkg/apiErrors"
)

// GetAdminOverview retorna o snapshot agregado do painel administrativo
func GetAdminOverview(service administrating.AdminViewer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		snapshot, err := service.Snapshot()
		if err != nil {
			logrus.WithError(err).Error("Erro ao obter painel administrativo")
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao obter painel administrativo", nil)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(snapshot)
	}
}

// RefreshAdminOverview força o recálculo imediato das estatísticas
func RefreshAdminOverview(service administrating.AdminViewer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		snapshot, err := service.Refresh()
		if err != nil {
			logrus.WithError(err).Error("Erro ao recalcular painel administrativo")
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao recalcular painel administrativo", nil)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(snapshot)
	}
}
