// Package authenticating gerencia as contas do Nexum: registro, login com
// token JWT e status de plano. Os usuários registrados vivem como um único
// blob JSON no armazém; as senhas são guardadas apenas como hash bcrypt.
package authenticating

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	jsoniter "github.com/json-iterator/go"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	"github.com/nexumapp/nexum-api/infrastructure/storage"
	"github.com/nexumapp/nexum-api/internal/config"
	"github.com/nexumapp/nexum-api/internal/domain"
	"github.com/nexumapp/nexum-api/pkg/apiErrors"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Janelas de acesso por plano, em dias.
const (
	TrialDays        = 14
	SubscriptionDays = 30
)

type Authenticator interface {
	Register(username, password, email string) (*domain.User, error)
	Login(usernameOrEmail, password string) (string, *domain.User, error)
	Subscribe(username string) (*domain.User, error)
	GetUser(username string) (*domain.User, error)
	ListUsers() ([]*domain.User, error)
	ValidateToken(tokenString string) (*domain.Claims, error)
}

type Service struct {
	store    storage.Store
	cfg      *config.Config
	mu       sync.Mutex
	now      func() time.Time
	defaults []*domain.User
}

// NewService cria o autenticador e semeia as duas contas padrão ("Teste" e
// "Admin"), que sempre existem e nunca podem ser removidas.
func NewService(store storage.Store, cfg *config.Config) (*Service, error) {
	service := &Service{
		store: store,
		cfg:   cfg,
		now:   time.Now,
	}

	defaults := []struct {
		username string
		email    string
		password string
		userType domain.UserType
	}{
		{"Teste", "teste@nexum.com", cfg.Auth.TestAccountPassword, domain.UserTypeTest},
		{"Admin", "admin@nexum.com", cfg.Auth.AdminAccountPassword, domain.UserTypeAdmin},
	}

	for _, account := range defaults {
		hash, err := bcrypt.GenerateFromPassword([]byte(account.password), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("erro ao semear conta padrão %s: %w", account.username, err)
		}

		service.defaults = append(service.defaults, &domain.User{
			Username:     account.username,
			Email:        account.email,
			PasswordHash: string(hash),
			UserType:     account.userType,
			RegisteredAt: service.now(),
		})
	}

	return service, nil
}

// Register cria uma conta trial. Username e email precisam ser inéditos,
// inclusive em relação às contas padrão.
func (s *Service) Register(username, password, email string) (*domain.User, error) {
	if username == "" || password == "" || email == "" {
		return nil, NewAuthError(ErrMissingRequiredData, apiErrors.ErrMissingRequiredData, "Usuário, senha e email são obrigatórios")
	}

	email = handleEmail(email)

	s.mu.Lock()
	defer s.mu.Unlock()

	users, err := s.loadRegisteredUsers()
	if err != nil {
		return nil, err
	}

	for _, existing := range append(s.defaults, users...) {
		if existing.Username == username || existing.Email == email {
			return nil, NewAuthError(ErrUserAlreadyExists, apiErrors.ErrUserAlreadyExists, "Usuário ou email já cadastrado")
		}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, NewAuthError(err, apiErrors.ErrInternalServer, "Erro ao gerar hash de senha")
	}

	now := s.now()
	user := &domain.User{
		Username:       username,
		Email:          email,
		PasswordHash:   string(hash),
		UserType:       domain.UserTypeTrial,
		RegisteredAt:   now,
		TrialStartDate: &now,
	}

	users = append(users, user)
	if err := s.saveRegisteredUsers(users); err != nil {
		return nil, err
	}

	logrus.WithField("username", username).Info("Novo usuário registrado")

	return sanitize(user), nil
}

// Login autentica por username ou email e emite um token JWT. Trial expirado
// e contas bloqueadas são rejeitados com erro tipado.
func (s *Service) Login(usernameOrEmail, password string) (string, *domain.User, error) {
	if usernameOrEmail == "" || password == "" {
		return "", nil, NewAuthError(ErrMissingRequiredData, apiErrors.ErrMissingRequiredData, "Usuário e senha são obrigatórios")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	users, err := s.loadRegisteredUsers()
	if err != nil {
		return "", nil, err
	}

	user := findUser(append(s.defaults, users...), usernameOrEmail)
	if user == nil {
		return "", nil, NewAuthError(ErrUserNotFound, apiErrors.ErrUserNotFound, "Usuário não encontrado")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", nil, NewUserAuthError(ErrInvalidCredentials, apiErrors.ErrInvalidCredentials, user.Username, "Senha incorreta")
	}

	if user.UserType == domain.UserTypeBlocked {
		return "", nil, NewUserAuthError(ErrUserBlocked, apiErrors.ErrUserBlocked, user.Username, "Conta bloqueada")
	}

	if user.UserType == domain.UserTypeTrial && s.trialExpired(user) {
		return "", nil, NewUserAuthError(ErrTrialExpired, apiErrors.ErrTrialExpired, user.Username, "Período de teste expirado")
	}

	now := s.now()
	user.LastLogin = &now
	if !s.isDefault(user.Username) {
		// Falha ao registrar o último login não impede o acesso.
		if err := s.saveRegisteredUsers(users); err != nil {
			logrus.WithError(err).Warn("Erro ao registrar último login")
		}
	}

	token, err := s.generateJWT(user)
	if err != nil {
		return "", nil, NewAuthError(err, apiErrors.ErrInternalServer, "Erro ao gerar token de autenticação")
	}

	return token, sanitize(user), nil
}

// Subscribe promove uma conta trial a assinante, ancorando a janela de 30 dias.
func (s *Service) Subscribe(username string) (*domain.User, error) {
	if s.isDefault(username) {
		return nil, NewAuthError(ErrDefaultAccount, apiErrors.ErrInvalidRequest, "Contas padrão não assinam plano")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	users, err := s.loadRegisteredUsers()
	if err != nil {
		return nil, err
	}

	for _, user := range users {
		if user.Username == username {
			now := s.now()
			user.UserType = domain.UserTypeSubscriber
			user.SubscriptionStartDate = &now

			if err := s.saveRegisteredUsers(users); err != nil {
				return nil, err
			}

			logrus.WithField("username", username).Info("Usuário assinou o plano")
			return sanitize(user), nil
		}
	}

	return nil, NewAuthError(ErrUserNotFound, apiErrors.ErrUserNotFound, "Usuário não encontrado")
}

// GetUser devolve a conta pelo username, sem o hash de senha.
func (s *Service) GetUser(username string) (*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	users, err := s.loadRegisteredUsers()
	if err != nil {
		return nil, err
	}

	user := findUser(append(s.defaults, users...), username)
	if user == nil {
		return nil, NewAuthError(ErrUserNotFound, apiErrors.ErrUserNotFound, "Usuário não encontrado")
	}

	return sanitize(user), nil
}

// ListUsers enumera as contas padrão seguidas das registradas.
func (s *Service) ListUsers() ([]*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	users, err := s.loadRegisteredUsers()
	if err != nil {
		return nil, err
	}

	all := make([]*domain.User, 0, len(s.defaults)+len(users))
	for _, user := range append(s.defaults, users...) {
		all = append(all, sanitize(user))
	}

	return all, nil
}

func (s *Service) ValidateToken(tokenString string) (*domain.Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &domain.Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.cfg.Auth.Secret), nil
	})
	if err != nil {
		return nil, err
	}

	if claims, ok := token.Claims.(*domain.Claims); ok && token.Valid {
		return claims, nil
	}

	return nil, ErrInvalidToken
}

func (s *Service) generateJWT(user *domain.User) (string, error) {
	claims := domain.Claims{
		Username: user.Username,
		Email:    user.Email,
		UserType: user.UserType,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(s.now().Add(24 * time.Hour)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.cfg.Auth.Secret))
}

func (s *Service) trialExpired(user *domain.User) bool {
	if user.TrialStartDate == nil {
		return false
	}

	days := int(s.now().Sub(*user.TrialStartDate).Hours() / 24)
	return days >= TrialDays
}

func (s *Service) isDefault(username string) bool {
	for _, user := range s.defaults {
		if user.Username == username {
			return true
		}
	}
	return false
}

func (s *Service) loadRegisteredUsers() ([]*domain.User, error) {
	raw, ok, err := s.store.Get(storage.RegisteredUsersKey)
	if err != nil {
		return nil, NewAuthError(err, apiErrors.ErrStorageFailure, "Erro ao ler usuários registrados")
	}

	if !ok {
		return []*domain.User{}, nil
	}

	var users []*domain.User
	if err := json.UnmarshalFromString(raw, &users); err != nil {
		logrus.WithError(err).Error("Blob de usuários registrados corrompido")
		return nil, NewAuthError(ErrStorageOperation, apiErrors.ErrStorageFailure, "Usuários registrados corrompidos")
	}

	return users, nil
}

func (s *Service) saveRegisteredUsers(users []*domain.User) error {
	raw, err := json.MarshalToString(users)
	if err != nil {
		return NewAuthError(err, apiErrors.ErrStorageFailure, "Erro ao serializar usuários")
	}

	if err := s.store.Set(storage.RegisteredUsersKey, raw); err != nil {
		return NewAuthError(err, apiErrors.ErrStorageFailure, "Erro ao gravar usuários registrados")
	}

	return nil
}

func findUser(users []*domain.User, usernameOrEmail string) *domain.User {
	for _, user := range users {
		if user.Username == usernameOrEmail || user.Email == handleEmail(usernameOrEmail) {
			return user
		}
	}
	return nil
}

func sanitize(user *domain.User) *domain.User {
	clean := *user
	clean.PasswordHash = ""
	return &clean
}

func handleEmail(s string) string {
	email := strings.ToLower(s)
	email = strings.TrimSpace(email)
	email = strings.ReplaceAll(email, " ", "")
	return email
}
