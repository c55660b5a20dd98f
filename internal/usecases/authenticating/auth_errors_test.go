package authenticating

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/nexumapp/nexum-api/pkg/apiErrors"
)

func TestIsCredentialsError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{name: "credenciais inválidas", err: ErrInvalidCredentials, want: true},
		{name: "usuário bloqueado", err: ErrUserBlocked, want: true},
		{name: "trial expirado", err: ErrTrialExpired, want: true},
		{name: "usuário não encontrado", err: ErrUserNotFound, want: false},
		{name: "erro de armazém", err: ErrStorageOperation, want: false},
		{name: "nil", err: nil, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsCredentialsError(tt.err))
		})
	}
}

func TestIsCredentialsError_UnwrapsAuthError(t *testing.T) {
	wrapped := NewUserAuthError(ErrTrialExpired, apiErrors.ErrTrialExpired, "novata", "")

	assert.True(t, IsCredentialsError(wrapped))
}
