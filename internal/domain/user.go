package domain

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// UserType define o plano de acesso de um usuário.
type UserType string

const (
	UserTypeAdmin      UserType = "admin"
	UserTypeTest       UserType = "test"
	UserTypeTrial      UserType = "trial"
	UserTypeSubscriber UserType = "subscriber"
	UserTypeBlocked    UserType = "blocked"
)

// User é o registro de uma conta. A senha é armazenada apenas como hash bcrypt.
// O username também serve de escopo para as chaves dos snapshots do usuário.
type User struct {
	Username              string     `json:"username"`
	Email                 string     `json:"email"`
	PasswordHash          string     `json:"passwordHash"`
	UserType              UserType   `json:"userType"`
	RegisteredAt          time.Time  `json:"registeredAt"`
	TrialStartDate        *time.Time `json:"trialStartDate,omitempty"`
	SubscriptionStartDate *time.Time `json:"subscriptionStartDate,omitempty"`
	LastLogin             *time.Time `json:"lastLogin,omitempty"`
}

// Claims são os dados embutidos no token JWT de sessão.
type Claims struct {
	Username string   `json:"username"`
	Email    string   `json:"email"`
	UserType UserType `json:"userType"`
	jwt.RegisteredClaims
}
