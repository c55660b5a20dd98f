// Package integrations dispara requisições de teste para webhooks e APIs
// externas configuradas pelo usuário. As chamadas são demonstrativas, sem
// garantia de entrega: o resultado reportado é apenas o status da tentativa.
package integrations

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/sirupsen/logrus"

	"github.com/nexumapp/nexum-api/internal/config"
	"github.com/nexumapp/nexum-api/pkg/utils"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

var (
	ErrMissingURL = errors.New("URL é obrigatória")
	ErrInvalidURL = errors.New("URL inválida")
)

// WebhookPayload é o corpo de exemplo enviado no teste de webhook, com a
// mesma forma das entradas do ledger de ROI.
type WebhookPayload struct {
	Expense float64 `json:"expense"`
	Return  float64 `json:"return"`
	Date    string  `json:"date"`
	Source  string  `json:"source"`
}

// APITestRequest descreve uma chamada de teste configurável contra uma API externa.
type APITestRequest struct {
	URL    string `json:"url"`
	Method string `json:"method"`
	Token  string `json:"token,omitempty"`
	Body   string `json:"body,omitempty"`
}

// TestResult resume a tentativa: status HTTP e um trecho do corpo devolvido.
type TestResult struct {
	StatusCode int    `json:"statusCode"`
	Success    bool   `json:"success"`
	Body       string `json:"body,omitempty"`
}

type Integrator interface {
	TestWebhook(webhookURL string, payload WebhookPayload) (*TestResult, error)
	TestAPI(request APITestRequest) (*TestResult, error)
}

type Service struct {
	httpClient *http.Client
}

func NewService(cfg *config.Config) *Service {
	return &Service{
		httpClient: &http.Client{
			Timeout: time.Duration(cfg.Integrations.RequestTimeoutSeconds) * time.Second,
		},
	}
}

// TestWebhook envia o payload de exemplo por POST para a URL informada.
func (s *Service) TestWebhook(webhookURL string, payload WebhookPayload) (*TestResult, error) {
	if err := validateURL(webhookURL); err != nil {
		return nil, err
	}

	if payload.Source == "" {
		payload.Source = "nexum-roi-dashboard"
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	logrus.Debugf("Payload de teste do webhook: %s", utils.PrettyJson(body))

	request, err := http.NewRequest(http.MethodPost, webhookURL, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	request.Header.Set("Content-Type", "application/json")

	return s.execute(request)
}

// TestAPI executa a chamada configurada pelo usuário (GET ou POST).
func (s *Service) TestAPI(testRequest APITestRequest) (*TestResult, error) {
	if err := validateURL(testRequest.URL); err != nil {
		return nil, err
	}

	method := testRequest.Method
	if method == "" {
		method = http.MethodGet
	}

	if method != http.MethodGet && method != http.MethodPost {
		return nil, fmt.Errorf("método não suportado: %s", method)
	}

	var body io.Reader
	if testRequest.Body != "" {
		body = bytes.NewReader([]byte(testRequest.Body))
	}

	request, err := http.NewRequest(method, testRequest.URL, body)
	if err != nil {
		return nil, err
	}

	request.Header.Set("Content-Type", "application/json")
	if testRequest.Token != "" {
		request.Header.Set("Authorization", "Bearer "+testRequest.Token)
	}

	return s.execute(request)
}

func (s *Service) execute(request *http.Request) (*TestResult, error) {
	logrus.WithFields(logrus.Fields{
		"method": request.Method,
		"url":    request.URL.String(),
	}).Info("Testando integração externa")

	response, err := s.httpClient.Do(request)
	if err != nil {
		return nil, err
	}
	defer response.Body.Close()

	// Só um trecho do corpo interessa para o diagnóstico.
	snippet, err := io.ReadAll(io.LimitReader(response.Body, 1024))
	if err != nil {
		snippet = nil
	}

	return &TestResult{
		StatusCode: response.StatusCode,
		Success:    response.StatusCode >= 200 && response.StatusCode < 300,
		Body:       string(snippet),
	}, nil
}

func validateURL(rawURL string) error {
	if rawURL == "" {
		return ErrMissingURL
	}

	parsed, err := url.Parse(rawURL)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return ErrInvalidURL
	}

	return nil
}
