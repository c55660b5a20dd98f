package handler

import (
	"encoding/json"
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/nexumapp/nexum-api/internal/domain"
	"github.com/nexumapp/nexum-api/internal/usecases/tasking"
	"github.com/nexumapp/nexum-api/pkg/apiErrors"
)

type TaskRequest struct {
	Title       string              `json:"title"`
	Description string              `json:"description"`
	Priority    domain.TaskPriority `json:"priority"`
}

// ListTasks retorna todas as tarefas do quadro compartilhado
func ListTasks(service tasking.Tasker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tasks, err := service.List()
		if err != nil {
			logrus.WithError(err).Error("Erro ao listar tarefas")
			apiErrors.WriteError(w, apiErrors.ErrStorageFailure, "Erro ao listar tarefas", nil)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(tasks)
	}
}

// CreateTask cria uma nova tarefa
func CreateTask(service tasking.Tasker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req TaskRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Formato de requisição inválido", nil)
			return
		}

		task, err := service.Add(req.Title, req.Description, req.Priority)
		if err != nil {
			switch {
			case errors.Is(err, tasking.ErrMissingTitle), errors.Is(err, tasking.ErrInvalidPriority):
				apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, err.Error(), nil)
			default:
				logrus.WithError(err).Error("Erro ao criar tarefa")
				apiErrors.WriteError(w, apiErrors.ErrStorageFailure, "Erro ao criar tarefa", nil)
			}
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(task)
	}
}

// ToggleTask alterna o estado de conclusão de uma tarefa
func ToggleTask(service tasking.Tasker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := httprouter.ParamsFromContext(r.Context()).ByName("id")

		task, err := service.ToggleCompletion(id)
		if err != nil {
			if errors.Is(err, tasking.ErrTaskNotFound) {
				apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Tarefa não encontrada", nil)
				return
			}
			logrus.WithError(err).Error("Erro ao atualizar tarefa")
			apiErrors.WriteError(w, apiErrors.ErrStorageFailure, "Erro ao atualizar tarefa", nil)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(task)
	}
}

// DeleteTask remove uma tarefa. IDs desconhecidos são ignorados.
func DeleteTask(service tasking.Tasker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := httprouter.ParamsFromContext(r.Context()).ByName("id")

		if err := service.Remove(id); err != nil {
			logrus.WithError(err).Error("Erro ao remover tarefa")
			apiErrors.WriteError(w, apiErrors.ErrStorageFailure, "Erro ao remover tarefa", nil)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}
