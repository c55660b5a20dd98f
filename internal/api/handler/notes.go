package handler

import (
	"encoding/json"
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/nexumapp/nexum-api/internal/usecases/noting"
	"github.com/nexumapp/nexum-api/pkg/apiErrors"
)

type NoteRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

// ListNotes retorna todas as anotações do quadro compartilhado
func ListNotes(service noting.Noter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		notes, err := service.List()
		if err != nil {
			logrus.WithError(err).Error("Erro ao listar anotações")
			apiErrors.WriteError(w, apiErrors.ErrStorageFailure, "Erro ao listar anotações", nil)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(notes)
	}
}

// CreateNote cria uma nova anotação
func CreateNote(service noting.Noter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req NoteRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Formato de requisição inválido", nil)
			return
		}

		note, err := service.Add(req.Title, req.Content)
		if err != nil {
			logrus.WithError(err).Error("Erro ao criar anotação")
			apiErrors.WriteError(w, apiErrors.ErrStorageFailure, "Erro ao criar anotação", nil)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(note)
	}
}

// UpdateNote altera o título e o conteúdo de uma anotação existente
func UpdateNote(service noting.Noter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := httprouter.ParamsFromContext(r.Context()).ByName("id")

		var req NoteRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Formato de requisição inválido", nil)
			return
		}

		note, err := service.Update(id, req.Title, req.Content)
		if err != nil {
			if errors.Is(err, noting.ErrNoteNotFound) {
				apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Anotação não encontrada", nil)
				return
			}
			logrus.WithError(err).Error("Erro ao atualizar anotação")
			apiErrors.WriteError(w, apiErrors.ErrStorageFailure, "Erro ao atualizar anotação", nil)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(note)
	}
}

// DeleteNote remove uma anotação. IDs desconhecidos são ignorados.
func DeleteNote(service noting.Noter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := httprouter.ParamsFromContext(r.Context()).ByName("id")

		if err := service.Remove(id); err != nil {
			logrus.WithError(err).Error("Erro ao remover anotação")
			apiErrors.WriteError(w, apiErrors.ErrStorageFailure, "Erro ao remover anotação", nil)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}
