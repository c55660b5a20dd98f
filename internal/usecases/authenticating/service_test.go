package authenticating

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/nexumapp/nexum-api/infrastructure/storage"
	"github.com/nexumapp/nexum-api/internal/config"
	"github.com/nexumapp/nexum-api/internal/domain"
)

func testConfig() *config.Config {
	return &config.Config{
		Auth: config.Auth{
			Secret:               "segredo-de-teste",
			TestAccountPassword:  "teste123",
			AdminAccountPassword: "Admin123",
		},
	}
}

func newTestService(t *testing.T) (*Service, storage.Store) {
	t.Helper()
	store := storage.NewMemoryStore()
	service, err := NewService(store, testConfig())
	require.NoError(t, err)
	return service, store
}

func TestRegister_CreatesTrialAccount(t *testing.T) {
	service, store := newTestService(t)

	user, err := service.Register("maria", "senha-forte", "Maria@Exemplo.com ")
	require.NoError(t, err)

	assert.Equal(t, "maria", user.Username)
	assert.Equal(t, "maria@exemplo.com", user.Email, "email é normalizado")
	assert.Equal(t, domain.UserTypeTrial, user.UserType)
	require.NotNil(t, user.TrialStartDate)
	assert.Empty(t, user.PasswordHash, "hash nunca sai do serviço")

	// O blob persistido guarda o hash bcrypt, nunca a senha em claro.
	raw, ok, err := store.Get(storage.RegisteredUsersKey)
	require.NoError(t, err)
	require.True(t, ok)
	assert.NotContains(t, raw, "senha-forte")
	assert.Contains(t, raw, "maria")
}

func TestRegister_RejectsDuplicatesAndMissingData(t *testing.T) {
	service, _ := newTestService(t)

	_, err := service.Register("maria", "senha", "maria@exemplo.com")
	require.NoError(t, err)

	_, err = service.Register("maria", "outra", "outra@exemplo.com")
	assert.ErrorIs(t, err, ErrUserAlreadyExists)

	_, err = service.Register("outra", "outra", "maria@exemplo.com")
	assert.ErrorIs(t, err, ErrUserAlreadyExists)

	// Contas padrão também bloqueiam o nome.
	_, err = service.Register("Admin", "qualquer", "novo@exemplo.com")
	assert.ErrorIs(t, err, ErrUserAlreadyExists)

	_, err = service.Register("", "senha", "x@exemplo.com")
	assert.ErrorIs(t, err, ErrMissingRequiredData)
}

func TestLogin_DefaultAccounts(t *testing.T) {
	service, _ := newTestService(t)

	token, user, err := service.Login("Teste", "teste123")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, domain.UserTypeTest, user.UserType)

	token, user, err = service.Login("Admin", "Admin123")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, domain.UserTypeAdmin, user.UserType)

	_, _, err = service.Login("Admin", "senha-errada")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, _, err = service.Login("ninguem", "senha")
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestLogin_RegisteredUserByUsernameOrEmail(t *testing.T) {
	service, _ := newTestService(t)

	_, err := service.Register("joao", "minha-senha", "joao@exemplo.com")
	require.NoError(t, err)

	_, user, err := service.Login("joao", "minha-senha")
	require.NoError(t, err)
	assert.NotNil(t, user.LastLogin)

	_, _, err = service.Login("joao@exemplo.com", "minha-senha")
	require.NoError(t, err)
}

func TestLogin_ExpiredTrialIsRejected(t *testing.T) {
	service, store := newTestService(t)

	hash, err := bcrypt.GenerateFromPassword([]byte("senha"), bcrypt.DefaultCost)
	require.NoError(t, err)

	oldStart := time.Now().AddDate(0, 0, -(TrialDays + 1))
	users := []*domain.User{{
		Username:       "expirada",
		Email:          "expirada@exemplo.com",
		PasswordHash:   string(hash),
		UserType:       domain.UserTypeTrial,
		RegisteredAt:   oldStart,
		TrialStartDate: &oldStart,
	}}

	raw, err := json.MarshalToString(users)
	require.NoError(t, err)
	require.NoError(t, store.Set(storage.RegisteredUsersKey, raw))

	_, _, err = service.Login("expirada", "senha")
	assert.ErrorIs(t, err, ErrTrialExpired)
}

func TestLogin_BlockedUserIsRejected(t *testing.T) {
	service, store := newTestService(t)

	hash, err := bcrypt.GenerateFromPassword([]byte("senha"), bcrypt.DefaultCost)
	require.NoError(t, err)

	users := []*domain.User{{
		Username:     "bloqueada",
		Email:        "bloqueada@exemplo.com",
		PasswordHash: string(hash),
		UserType:     domain.UserTypeBlocked,
		RegisteredAt: time.Now(),
	}}

	raw, err := json.MarshalToString(users)
	require.NoError(t, err)
	require.NoError(t, store.Set(storage.RegisteredUsersKey, raw))

	_, _, err = service.Login("bloqueada", "senha")
	assert.ErrorIs(t, err, ErrUserBlocked)
}

func TestValidateToken_RoundTrip(t *testing.T) {
	service, _ := newTestService(t)

	token, _, err := service.Login("Admin", "Admin123")
	require.NoError(t, err)

	claims, err := service.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "Admin", claims.Username)
	assert.Equal(t, domain.UserTypeAdmin, claims.UserType)

	_, err = service.ValidateToken("token-invalido")
	assert.Error(t, err)
}

func TestSubscribe_PromotesTrialToSubscriber(t *testing.T) {
	service, _ := newTestService(t)

	_, err := service.Register("ana", "senha", "ana@exemplo.com")
	require.NoError(t, err)

	user, err := service.Subscribe("ana")
	require.NoError(t, err)
	assert.Equal(t, domain.UserTypeSubscriber, user.UserType)
	require.NotNil(t, user.SubscriptionStartDate)

	_, err = service.Subscribe("Teste")
	assert.ErrorIs(t, err, ErrDefaultAccount)

	_, err = service.Subscribe("inexistente")
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestListUsers_DefaultsFirstAndSanitized(t *testing.T) {
	service, _ := newTestService(t)

	_, err := service.Register("bia", "senha", "bia@exemplo.com")
	require.NoError(t, err)

	users, err := service.ListUsers()
	require.NoError(t, err)

	require.Len(t, users, 3)
	assert.Equal(t, "Teste", users[0].Username)
	assert.Equal(t, "Admin", users[1].Username)
	assert.Equal(t, "bia", users[2].Username)

	for _, user := range users {
		assert.Empty(t, user.PasswordHash)
	}
}
