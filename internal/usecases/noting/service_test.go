package noting

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/nexumapp/nexum-api/infrastructure/storage"
	"github.com/nexumapp/nexum-api/infrastructure/storage/mocks"
)

func TestService_AddAndList(t *testing.T) {
	service := NewService(storage.NewMemoryStore())

	note, err := service.Add("Fornecedores", "ligar para o fornecedor de lentes")
	require.NoError(t, err)
	assert.NotEmpty(t, note.ID)
	assert.Equal(t, "Fornecedores", note.Title)
	assert.False(t, note.CreatedAt.IsZero())
	assert.Equal(t, note.CreatedAt, note.UpdatedAt)

	notes, err := service.List()
	require.NoError(t, err)
	require.Len(t, notes, 1)
	assert.Equal(t, note.ID, notes[0].ID)
}

func TestService_AddWithoutTitleUsesDefault(t *testing.T) {
	service := NewService(storage.NewMemoryStore())

	note, err := service.Add("", "conteúdo sem título")
	require.NoError(t, err)
	assert.Equal(t, defaultTitle, note.Title)
}

func TestService_Update(t *testing.T) {
	service := NewService(storage.NewMemoryStore())

	note, err := service.Add("Rascunho", "primeira versão")
	require.NoError(t, err)

	updated, err := service.Update(note.ID, "Definitivo", "versão revisada")
	require.NoError(t, err)
	assert.Equal(t, note.ID, updated.ID)
	assert.Equal(t, "Definitivo", updated.Title)
	assert.Equal(t, "versão revisada", updated.Content)

	_, err = service.Update("nao-existe", "x", "y")
	assert.ErrorIs(t, err, ErrNoteNotFound)
}

func TestService_Remove(t *testing.T) {
	service := NewService(storage.NewMemoryStore())

	first, err := service.Add("Primeira", "a")
	require.NoError(t, err)
	second, err := service.Add("Segunda", "b")
	require.NoError(t, err)

	require.NoError(t, service.Remove(first.ID))

	notes, err := service.List()
	require.NoError(t, err)
	require.Len(t, notes, 1)
	assert.Equal(t, second.ID, notes[0].ID)

	// Remover id desconhecido não altera nada nem retorna erro
	require.NoError(t, service.Remove("nao-existe"))

	notes, err = service.List()
	require.NoError(t, err)
	assert.Len(t, notes, 1)
}

func TestService_ListStorageFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockStore := mocks.NewMockStore(ctrl)
	mockStore.EXPECT().Get(storage.NotesKey).Return("", false, assert.AnError)

	service := NewService(mockStore)

	_, err := service.List()
	assert.ErrorIs(t, err, ErrLoadingNotes)
}

func TestService_ListCorruptBlob(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockStore := mocks.NewMockStore(ctrl)
	mockStore.EXPECT().Get(storage.NotesKey).Return("{nao é json", true, nil)

	service := NewService(mockStore)

	_, err := service.List()
	assert.ErrorIs(t, err, ErrLoadingNotes)
}
