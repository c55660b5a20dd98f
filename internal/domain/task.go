package domain

import "time"

// TaskPriority define a urgência de uma tarefa.
type TaskPriority string

const (
	TaskPriorityLow    TaskPriority = "baixa"
	TaskPriorityMedium TaskPriority = "media"
	TaskPriorityUrgent TaskPriority = "urgente"
)

// IsValidTaskPriority verifica se a prioridade informada é conhecida.
func IsValidTaskPriority(p TaskPriority) bool {
	return p == TaskPriorityLow || p == TaskPriorityMedium || p == TaskPriorityUrgent
}

// Task é uma tarefa do usuário com estado de conclusão.
type Task struct {
	ID          string       `json:"id"`
	Title       string       `json:"title"`
	Description string       `json:"description"`
	Priority    TaskPriority `json:"priority"`
	Completed   bool         `json:"completed"`
	CreatedAt   time.Time    `json:"createdAt"`
	CompletedAt *time.Time   `json:"completedAt,omitempty"`
}
