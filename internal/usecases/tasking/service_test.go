package tasking

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nexumapp/nexum-api/infrastructure/storage"
	"github.com/nexumapp/nexum-api/internal/domain"
)

func TestService_AddAndList(t *testing.T) {
	service := NewService(storage.NewMemoryStore())

	task, err := service.Add("Conferir estoque", "contar armações da vitrine", domain.TaskPriorityUrgent)
	require.NoError(t, err)
	assert.NotEmpty(t, task.ID)
	assert.Equal(t, domain.TaskPriorityUrgent, task.Priority)
	assert.False(t, task.Completed)
	assert.Nil(t, task.CompletedAt)

	tasks, err := service.List()
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	assert.Equal(t, task.ID, tasks[0].ID)
}

func TestService_AddValidation(t *testing.T) {
	service := NewService(storage.NewMemoryStore())

	_, err := service.Add("", "sem título", domain.TaskPriorityLow)
	assert.ErrorIs(t, err, ErrMissingTitle)

	_, err = service.Add("Título", "prioridade desconhecida", domain.TaskPriority("altissima"))
	assert.ErrorIs(t, err, ErrInvalidPriority)

	tasks, err := service.List()
	require.NoError(t, err)
	assert.Empty(t, tasks)
}

func TestService_ToggleCompletion(t *testing.T) {
	service := NewService(storage.NewMemoryStore())

	completedAt := time.Date(2025, 5, 10, 9, 0, 0, 0, time.UTC)
	service.now = func() time.Time { return completedAt }

	task, err := service.Add("Pagar boleto", "", domain.TaskPriorityMedium)
	require.NoError(t, err)

	done, err := service.ToggleCompletion(task.ID)
	require.NoError(t, err)
	assert.True(t, done.Completed)
	require.NotNil(t, done.CompletedAt)
	assert.Equal(t, completedAt, *done.CompletedAt)

	// Reabrir limpa o carimbo de conclusão
	reopened, err := service.ToggleCompletion(task.ID)
	require.NoError(t, err)
	assert.False(t, reopened.Completed)
	assert.Nil(t, reopened.CompletedAt)

	_, err = service.ToggleCompletion("nao-existe")
	assert.ErrorIs(t, err, ErrTaskNotFound)
}

func TestService_Remove(t *testing.T) {
	service := NewService(storage.NewMemoryStore())

	task, err := service.Add("Descartável", "", domain.TaskPriorityLow)
	require.NoError(t, err)

	require.NoError(t, service.Remove(task.ID))

	tasks, err := service.List()
	require.NoError(t, err)
	assert.Empty(t, tasks)

	// Remover id desconhecido é um no-op
	require.NoError(t, service.Remove(task.ID))
}
