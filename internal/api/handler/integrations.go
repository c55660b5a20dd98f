package handler

import (
	"encoding/json"
	"net/http"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/nexumapp/nexum-api/internal/integrations"
	"github.com/nexumapp/nexum-api/pkg/apiErrors"
)

type WebhookTestRequest struct {
	URL     string                      `json:"url"`
	Payload integrations.WebhookPayload `json:"payload"`
}

// TestWebhook envia um payload de exemplo para o webhook configurado pelo usuário
func TestWebhook(service integrations.Integrator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req WebhookTestRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Formato de requisição inválido", nil)
			return
		}

		result, err := service.TestWebhook(req.URL, req.Payload)
		if err != nil {
			handleIntegrationError(w, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(result)
	}
}

// TestAPI executa uma chamada de teste contra uma API externa
func TestAPI(service integrations.Integrator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req integrations.APITestRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Formato de requisição inválido", nil)
			return
		}

		result, err := service.TestAPI(req)
		if err != nil {
			handleIntegrationError(w, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(result)
	}
}

func handleIntegrationError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, integrations.ErrMissingURL), errors.Is(err, integrations.ErrInvalidURL):
		apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, err.Error(), nil)

	default:
		logrus.WithError(err).Error("Erro ao testar integração externa")
		apiErrors.WriteError(w, apiErrors.ErrExternalService, "Erro ao comunicar com o serviço externo", nil)
	}
}
