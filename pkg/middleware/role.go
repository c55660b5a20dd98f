package middleware

import (
	"net/http"

	"github.com/sirupsen/logrus"

	"github.com/nexumapp/nexum-api/internal/domain"
	"github.com/nexumapp/nexum-api/pkg/apiErrors"
)

// RoleMiddleware cria um middleware que restringe o acesso com base no tipo de usuário
// allowedTypes é a lista de tipos de usuário com permissão para acessar a rota
func RoleMiddleware(allowedTypes []domain.UserType) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// Obter claims do usuário do contexto
			userClaims, ok := r.Context().Value(ContextKeyUser).(*domain.Claims)

			if !ok {
				logrus.Warning("Tentativa de acesso sem autenticação")
				apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "Usuário não autenticado", nil)
				return
			}

			// Verificar se o tipo do usuário está na lista de tipos permitidos
			isAllowed := false
			for _, userType := range allowedTypes {
				if userClaims.UserType == userType {
					isAllowed = true
					break
				}
			}

			if !isAllowed {
				logrus.Warningf("Acesso negado para usuário %s, tipo %s", userClaims.Username, userClaims.UserType)
				apiErrors.WriteError(w, apiErrors.ErrInsufficientPrivilege, "Você não tem permissão para acessar este recurso", nil)
				return
			}

			// Se tiver permissão, continua para o próximo handler
			next.ServeHTTP(w, r)
		})
	}
}

// AdminOnly é um middleware que permite acesso apenas para administradores
func AdminOnly() func(http.Handler) http.Handler {
	return RoleMiddleware([]domain.UserType{domain.UserTypeAdmin})
}

// AllUsers é um middleware que permite acesso para qualquer usuário com acesso ativo
func AllUsers() func(http.Handler) http.Handler {
	return RoleMiddleware([]domain.UserType{
		domain.UserTypeAdmin,
		domain.UserTypeTest,
		domain.UserTypeTrial,
		domain.UserTypeSubscriber,
	})
}
