package handler

import (
	"encoding/json"
	"net/http"

	"github.com/sirupsen/logrus"

	"github.com/nexumapp/nexum-api/internal/scheduler"
	"github.com/nexumapp/nexum-api/pkg/apiErrors"
)

// CronJobServices contém os agendadores expostos para execução manual
type CronJobServices struct {
	AdminRefreshService *scheduler.AdminRefreshService
}

// RunCronJob dispara manualmente a atualização do painel administrativo
func RunCronJob(services CronJobServices) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logrus.Info("INIT - RunCronJob")

		if services.AdminRefreshService == nil {
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Serviço de atualização administrativa não disponível", nil)
			return
		}

		services.AdminRefreshService.TriggerManualSync()

		response := map[string]any{
			"message": "Atualização administrativa iniciada com sucesso",
		}
		json.NewEncoder(w).Encode(response)
	}
}

// GetCronStatus retorna o status dos agendadores
func GetCronStatus(services CronJobServices) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logrus.Info("INIT - GetCronStatus")

		status := map[string]any{
			"admin-refresh": services.AdminRefreshService.GetStatus(),
		}

		json.NewEncoder(w).Encode(status)
	}
}
