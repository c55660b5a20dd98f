// Package noting mantém a lista de anotações, persistida por inteiro como um
// único blob no armazém, no mesmo padrão dos ledgers.
package noting

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
	ErrNoteNotFound = errors.New("anotação não encontrada")
	ErrLoadingNotes = errors.New("erro ao carregar anotações")
	ErrSavingNotes  = errors.New("erro ao salvar anotações")
)

// defaultTitle é usado quando a anotação chega sem título.
const defaultTitle = "Nova Anotação"

type Noter interface {
	List() ([]domain.Note, error)
	Add(title, content string) (*domain.Note, error)
	Update(id, title, content string) (*domain.Note, error)
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

func (s *Service) List() ([]domain.Note, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load()
}

func (s *Service) Add(title, content string) (*domain.Note, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	notes, err := s.load()
	if err != nil {
		return nil, err
	}

	id, err := utils.GenerateID()
	if err != nil {
		return nil, pkgerrors.Wrap(err, "erro ao gerar id da anotação")
	}

	if title == "" {
		title = defaultTitle
	}

	now := s.now()
	note := domain.Note{
		ID:        id,
		Title:     title,
		Content:   content,
		CreatedAt: now,
		UpdatedAt: now,
	}

	notes = append(notes, note)
	if err := s.save(notes); err != nil {
		return nil, err
	}

	return &note, nil
}

func (s *Service) Update(id, title, content string) (*domain.Note, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	notes, err := s.load()
	if err != nil {
		return nil, err
	}

	for i := range notes {
		if notes[i].ID == id {
			notes[i].Title = title
			notes[i].Content = content
			notes[i].UpdatedAt = s.now()

			if err := s.save(notes); err != nil {
				return nil, err
			}

			return &notes[i], nil
		}
	}

	return nil, ErrNoteNotFound
}

func (s *Service) Remove(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	notes, err := s.load()
	if err != nil {
		return err
	}

	for i := range notes {
		if notes[i].ID == id {
			notes = append(notes[:i], notes[i+1:]...)
			return s.save(notes)
		}
	}

	// Remover anotação inexistente é um no-op.
	return nil
}

func (s *Service) load() ([]domain.Note, error) {
	raw, ok, err := s.store.Get(storage.NotesKey)
	if err != nil {
		return nil, pkgerrors.Wrap(ErrLoadingNotes, err.Error())
	}

	if !ok {
		return []domain.Note{}, nil
	}

	var notes []domain.Note
	if err := json.UnmarshalFromString(raw, &notes); err != nil {
		logrus.WithError(err).Error("Blob de anotações corrompido")
		return nil, pkgerrors.Wrap(ErrLoadingNotes, err.Error())
	}

	return notes, nil
}

func (s *Service) save(notes []domain.Note) error {
	raw, err := json.MarshalToString(notes)
	if err != nil {
		return pkgerrors.Wrap(ErrSavingNotes, err.Error())
	}

	if err := s.store.Set(storage.NotesKey, raw); err != nil {
		return pkgerrors.Wrap(ErrSavingNotes, err.Error())
	}

	return nil
}
