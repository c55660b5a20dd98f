// Package scheduler contém os serviços de agendamento para sincronização de dados
package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/sirupsen/logrus"

	"github.com/nexumapp/nexum-api/internal/config"
	"github.com/nexumapp/nexum-api/internal/usecases/administrating"
)

type AdminRefreshConfig struct {
	IntervalSeconds int
	Enabled         bool
}

// AdminRefreshService mantém o painel administrativo atualizado em segundo
// plano, recalculando as estatísticas de usuários em intervalo fixo.
type AdminRefreshService struct {
	scheduler           *gocron.Scheduler
	adminService        administrating.AdminViewer
	config              AdminRefreshConfig
	syncRunning         bool
	syncMutex           sync.Mutex
	lastSyncStartedAt   time.Time
	lastSyncCompletedAt time.Time
}

func NewAdminRefreshService(adminService administrating.AdminViewer, cfg *config.Config) *AdminRefreshService {
	refreshConfig := AdminRefreshConfig{
		IntervalSeconds: cfg.AdminRefresh.IntervalSeconds, // Default: 30 segundos
		Enabled:         cfg.AdminRefresh.Enabled,
	}

	scheduler := gocron.NewScheduler(time.Local)

	logrus.WithFields(logrus.Fields{
		"interval_seconds": refreshConfig.IntervalSeconds,
	}).Info("Configuração do agendador de atualização administrativa carregada")

	return &AdminRefreshService{
		scheduler:    scheduler,
		adminService: adminService,
		config:       refreshConfig,
	}
}

func (s *AdminRefreshService) Start(ctx context.Context) error {
	if !s.config.Enabled {
		logrus.Info("Atualização periódica do painel administrativo desabilitada por configuração")
		return nil
	}

	logrus.WithField("interval_seconds", s.config.IntervalSeconds).Info("Iniciando atualização periódica do painel administrativo")

	_, err := s.scheduler.Every(s.config.IntervalSeconds).Seconds().Do(func() {
		if err := s.RefreshAdminData(); err != nil {
			logrus.WithError(err).Error("Erro na atualização do painel administrativo")
		}
	})
	if err != nil {
		return fmt.Errorf("erro ao agendar atualização do painel administrativo: %w", err)
	}

	// Executar o agendador em uma goroutine separada
	s.scheduler.StartAsync()

	// Configurar o cancelamento quando o contexto for cancelado
	go func() {
		<-ctx.Done()
		logrus.Info("Parando atualização periódica do painel administrativo")
		s.scheduler.Stop()
	}()

	return nil
}

func (s *AdminRefreshService) RefreshAdminData() error {
	s.syncMutex.Lock()
	defer s.syncMutex.Unlock()

	if s.syncRunning {
		logrus.Warn("Atualização do painel administrativo já está em execução")
		return nil
	}

	s.syncRunning = true
	s.lastSyncStartedAt = time.Now()
	defer func() {
		s.syncRunning = false
		s.lastSyncCompletedAt = time.Now()
	}()

	if _, err := s.adminService.Refresh(); err != nil {
		logrus.WithError(err).Error("Erro ao recalcular estatísticas administrativas")
		return err
	}

	return nil
}

// TriggerManualSync inicia manualmente uma atualização do painel administrativo
func (s *AdminRefreshService) TriggerManualSync() {
	s.syncMutex.Lock()
	if s.syncRunning {
		s.syncMutex.Unlock()
		logrus.Info("Atualização do painel administrativo já em andamento, ignorando solicitação manual")
		return
	}
	s.syncMutex.Unlock()

	logrus.Info("Iniciando atualização manual do painel administrativo")
	go s.RefreshAdminData()
}

// GetStatus retorna o status atual do agendador
func (s *AdminRefreshService) GetStatus() map[string]any {
	return map[string]any{
		"enabled":                s.config.Enabled,
		"interval_seconds":       s.config.IntervalSeconds,
		"last_sync_started_at":   s.lastSyncStartedAt,
		"last_sync_completed_at": s.lastSyncCompletedAt,
	}
}
