// Package tasking mantém a lista de tarefas com prioridade e estado de
// conclusão, persistida por inteiro como um único blob no armazém.
package tasking

import (
	"errors"
	"sync"
	"time"

	jsoniter "github.com/json-iterator/go"
	pkgerrors "github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/nexumapp/nexum-api/infrastructure/storage"
	"github.com/nexumapp/nexum-api/internal/domain"
	"github.com/nexumapp/nexum-api/pkg/utils"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

var (
	ErrTaskNotFound    = errors.New("tarefa não encontrada")
	ErrMissingTitle    = errors.New("título da tarefa é obrigatório")
	ErrInvalidPriority = errors.New("prioridade inválida")
	ErrLoadingTasks    = errors.New("erro ao carregar tarefas")
	ErrSavingTasks     = errors.New("erro ao salvar tarefas")
)

type Tasker interface {
	List() ([]domain.Task, error)
	Add(title, description string, priority domain.TaskPriority) (*domain.Task, error)
	ToggleCompletion(id string) (*domain.Task, error)
	Remove(id string) error
}

type Service struct {
	store storage.Store
	mu    sync.Mutex
	now   func() time.Time
}

func NewService(store storage.Store) *Service {
	return &Service{
		store: store,
		now:   time.Now,
	}
}

func (s *Service) List() ([]domain.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load()
}

func (s *Service) Add(title, description string, priority domain.TaskPriority) (*domain.Task, error) {
	if title == "" {
		return nil, ErrMissingTitle
	}

	if !domain.IsValidTaskPriority(priority) {
		return nil, ErrInvalidPriority
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	tasks, err := s.load()
	if err != nil {
		return nil, err
	}

	id, err := utils.GenerateID()
	if err != nil {
		return nil, pkgerrors.Wrap(err, "erro ao gerar id da tarefa")
	}

	task := domain.Task{
		ID:          id,
		Title:       title,
		Description: description,
		Priority:    priority,
		CreatedAt:   s.now(),
	}

	tasks = append(tasks, task)
	if err := s.save(tasks); err != nil {
		return nil, err
	}

	return &task, nil
}

// ToggleCompletion inverte o estado de conclusão, carimbando completedAt ao
// concluir e limpando ao reabrir.
func (s *Service) ToggleCompletion(id string) (*domain.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	tasks, err := s.load()
	if err != nil {
		return nil, err
	}

	for i := range tasks {
		if tasks[i].ID == id {
			tasks[i].Completed = !tasks[i].Completed
			if tasks[i].Completed {
				now := s.now()
				tasks[i].CompletedAt = &now
			} else {
				tasks[i].CompletedAt = nil
			}

			if err := s.save(tasks); err != nil {
				return nil, err
			}

			return &tasks[i], nil
		}
	}

	return nil, ErrTaskNotFound
}

func (s *Service) Remove(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tasks, err := s.load()
	if err != nil {
		return err
	}

	for i := range tasks {
		if tasks[i].ID == id {
			tasks = append(tasks[:i], tasks[i+1:]...)
			return s.save(tasks)
		}
	}

	// Remover tarefa inexistente é um no-op.
	return nil
}

func (s *Service) load() ([]domain.Task, error) {
	raw, ok, err := s.store.Get(storage.TasksKey)
	if err != nil {
		return nil, pkgerrors.Wrap(ErrLoadingTasks, err.Error())
	}

	if !ok {
		return []domain.Task{}, nil
	}

	var tasks []domain.Task
	if err := json.UnmarshalFromString(raw, &tasks); err != nil {
		logrus.WithError(err).Error("Blob de tarefas corrompido")
		return nil, pkgerrors.Wrap(ErrLoadingTasks, err.Error())
	}

	return tasks, nil
}

func (s *Service) save(tasks []domain.Task) error {
	raw, err := json.MarshalToString(tasks)
	if err != nil {
		return pkgerrors.Wrap(ErrSavingTasks, err.Error())
	}

	if err := s.store.Set(storage.TasksKey, raw); err != nil {
		return pkgerrors.Wrap(ErrSavingTasks, err.Error())
	}

	return nil
}
