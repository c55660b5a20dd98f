// Package administrating monta a visão administrativa da frota: todas as
// contas, a janela de acesso restante de cada uma e os totais de ROI puxados
// dos snapshots individuais. O componente é somente leitura sobre os ledgers;
// a única escrita é o cache do último agregado calculado.
package administrating

import (
	"sync"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/nexumapp/nexum-api/infrastructure/storage"
	"github.com/nexumapp/nexum-api/internal/domain"
	"github.com/nexumapp/nexum-api/internal/usecases/authenticating"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Janelas de acesso por plano, em dias. Contas admin nunca expiram; contas de
// teste carregam uma janela fixa sem data de início, na prática sem expirar.
const (
	unlimitedAccess  = -1
	testWindowDays   = 14
	trialWindowDays  = 14
	subscriptionDays = 30
)

type AdminViewer interface {
	Refresh() (*domain.AdminSnapshot, error)
	Snapshot() (*domain.AdminSnapshot, error)
}

type Service struct {
	store         storage.Store
	authenticator authenticating.Authenticator
	mu            sync.Mutex
	now           func() time.Time
	last          *domain.AdminSnapshot
}

func NewService(store storage.Store, authenticator authenticating.Authenticator) *Service {
	return &Service{
		store:         store,
		authenticator: authenticator,
		now:           time.Now,
	}
}

// Refresh recalcula o agregado varrendo todas as contas e os snapshots de ROI
// individuais, e grava o resultado como cache. Falha ao gravar o cache não
// invalida o agregado recém-calculado.
func (s *Service) Refresh() (*domain.AdminSnapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	users, err := s.authenticator.ListUsers()
	if err != nil {
		return nil, errors.Wrap(err, "erro ao enumerar contas")
	}

	snapshot := &domain.AdminSnapshot{
		Users:       make([]domain.UserStats, 0, len(users)),
		RefreshedAt: s.now(),
	}

	for _, user := range users {
		daysRemaining := s.calculateDaysRemaining(user)
		isExpired := user.UserType == domain.UserTypeTrial && daysRemaining == 0

		stats := domain.UserStats{
			Username:              user.Username,
			Email:                 user.Email,
			UserType:              user.UserType,
			RegisteredAt:          user.RegisteredAt,
			TrialStartDate:        user.TrialStartDate,
			SubscriptionStartDate: user.SubscriptionStartDate,
			LastLogin:             user.LastLogin,
			DaysRemaining:         daysRemaining,
			IsExpired:             isExpired,
			ROI:                   s.userROITotals(user.Username),
		}

		snapshot.Users = append(snapshot.Users, stats)
		snapshot.TotalUsers++

		switch user.UserType {
		case domain.UserTypeTest:
			snapshot.TestUsers++
		case domain.UserTypeTrial:
			snapshot.TrialUsers++
		case domain.UserTypeSubscriber:
			snapshot.SubscriberUsers++
		}

		if isExpired {
			snapshot.ExpiredUsers++
		}
	}

	s.cacheSnapshot(snapshot)
	s.last = snapshot

	logrus.WithFields(logrus.Fields{
		"total_users":   snapshot.TotalUsers,
		"expired_users": snapshot.ExpiredUsers,
	}).Debug("Agregado administrativo recalculado")

	return snapshot, nil
}

// Snapshot devolve o último agregado calculado, recalculando apenas na
// primeira leitura.
func (s *Service) Snapshot() (*domain.AdminSnapshot, error) {
	s.mu.Lock()
	last := s.last
	s.mu.Unlock()

	if last != nil {
		return last, nil
	}

	return s.Refresh()
}

func (s *Service) calculateDaysRemaining(user *domain.User) int {
	switch user.UserType {
	case domain.UserTypeAdmin:
		return unlimitedAccess
	case domain.UserTypeTest:
		return testWindowDays
	case domain.UserTypeTrial:
		if user.TrialStartDate == nil {
			return 0
		}
		elapsed := int(s.now().Sub(*user.TrialStartDate).Hours() / 24)
		return max(0, trialWindowDays-elapsed)
	case domain.UserTypeSubscriber:
		if user.SubscriptionStartDate == nil {
			return 0
		}
		elapsed := int(s.now().Sub(*user.SubscriptionStartDate).Hours() / 24)
		return max(0, subscriptionDays-elapsed)
	}

	return 0
}

// userROITotals lê os totais do snapshot de ROI do usuário. Usuário sem
// snapshot (ou com snapshot corrompido) contribui com zeros.
func (s *Service) userROITotals(username string) domain.ROITotals {
	var zero domain.ROITotals

	raw, ok, err := s.store.Get(storage.ROIDataKey(username))
	if err != nil || !ok {
		if err != nil {
			logrus.WithError(err).WithField("username", username).Warn("Erro ao ler ROI do usuário")
		}
		return zero
	}

	var roiSnapshot domain.ROISnapshot
	if err := json.UnmarshalFromString(raw, &roiSnapshot); err != nil {
		logrus.WithError(err).WithField("username", username).Warn("Snapshot de ROI corrompido ao agregar")
		return zero
	}

	return domain.ROITotals{
		TotalExpense: roiSnapshot.TotalExpense,
		TotalReturn:  roiSnapshot.TotalReturn,
		TotalProfit:  roiSnapshot.TotalProfit,
		IsProfit:     roiSnapshot.TotalProfit > 0,
	}
}

func (s *Service) cacheSnapshot(snapshot *domain.AdminSnapshot) {
	raw, err := json.MarshalToString(snapshot)
	if err != nil {
		logrus.WithError(err).Warn("Erro ao serializar cache administrativo")
		return
	}

	if err := s.store.Set(storage.AdminDataKey, raw); err != nil {
		logrus.WithError(err).Warn("Erro ao gravar cache administrativo")
	}
}
