// Package roitracking mantém o ledger de entradas diárias de ROI por usuário.
// Cada mutação recalcula os agregados derivados e persiste o snapshot inteiro
// no armazém de blobs sob a chave do escopo.
package roitracking

import (
	"math"
	"sync"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/nexumapp/nexum-api/infrastructure/storage"
	"github.com/nexumapp/nexum-api/internal/domain"
	"github.com/nexumapp/nexum-api/pkg/utils"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// DateLayout é o formato das datas das entradas do ledger.
const DateLayout = "2006-01-02"

// brazilOffset fixa o fuso de Brasília (UTC-3). "Hoje" é sempre calculado em
// relação a esse deslocamento, independente do fuso do servidor.
var brazilLocation = time.FixedZone("UTC-3", -3*60*60)

type ROITracker interface {
	Load(scope string) (*domain.ROISnapshot, error)
	AddEntry(scope string, expense, returnValue float64) (*domain.ROISnapshot, error)
	FilterByDate(scope, date string) ([]domain.ROIEntry, error)
}

type Service struct {
	store storage.Store
	mu    sync.Mutex
	now   func() time.Time
}

func NewService(store storage.Store) *Service {
	return &Service{
		store: store,
		now:   time.Now,
	}
}

// today devolve a data corrente no fuso de Brasília.
func (s *Service) today() string {
	return s.now().In(brazilLocation).Format(DateLayout)
}

// Load lê o snapshot do escopo. Escopo sem snapshot inicializa o estado vazio;
// snapshot corrompido é tratado como erro recuperável, devolvendo o estado
// vazio sem tocar no valor armazenado.
func (s *Service) Load(scope string) (*domain.ROISnapshot, error) {
	snapshot := s.emptySnapshot()

	raw, ok, err := s.store.Get(storage.ROIDataKey(scope))
	if err != nil {
		logrus.WithError(err).WithField("scope", scope).Error("Erro ao ler snapshot de ROI")
		return snapshot, errors.Wrap(ErrLoadingSnapshot, err.Error())
	}

	if !ok {
		return snapshot, nil
	}

	if err := json.UnmarshalFromString(raw, snapshot); err != nil {
		logrus.WithError(err).WithField("scope", scope).Error("Snapshot de ROI corrompido")
		return s.emptySnapshot(), errors.Wrap(ErrLoadingSnapshot, err.Error())
	}

	return snapshot, nil
}

// AddEntry registra o investimento e retorno de hoje. Já existindo entrada para
// a data corrente, ela é substituída no lugar, preservando o id: a operação é
// um upsert idempotente por dia.
func (s *Service) AddEntry(scope string, expense, returnValue float64) (*domain.ROISnapshot, error) {
	if math.IsNaN(expense) || math.IsInf(expense, 0) || expense < 0 {
		return nil, ErrInvalidExpense
	}

	if math.IsNaN(returnValue) || math.IsInf(returnValue, 0) {
		return nil, ErrInvalidReturn
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	snapshot, err := s.Load(scope)
	if err != nil {
		return nil, err
	}

	currentDate := s.today()
	roi, profit, isProfit := calculateROI(expense, returnValue)

	entry := domain.ROIEntry{
		Date:     currentDate,
		Expense:  expense,
		Return:   returnValue,
		DailyROI: roi,
		Profit:   profit,
		IsProfit: isProfit,
	}

	replaced := false
	for i := range snapshot.Entries {
		if snapshot.Entries[i].Date == currentDate {
			entry.ID = snapshot.Entries[i].ID
			snapshot.Entries[i] = entry
			replaced = true
			break
		}
	}

	if !replaced {
		id, err := utils.GenerateID()
		if err != nil {
			return nil, errors.Wrap(err, "erro ao gerar id da entrada")
		}
		entry.ID = id
		snapshot.Entries = append(snapshot.Entries, entry)
	}

	snapshot.DailyROI = roi
	snapshot.CurrentDate = currentDate
	recomputeTotals(snapshot, s.now().In(brazilLocation))

	if err := s.save(scope, snapshot); err != nil {
		// O snapshot recém-calculado continua sendo a fonte de verdade; a
		// gravação não é repetida automaticamente.
		return snapshot, err
	}

	logrus.WithFields(logrus.Fields{
		"scope":    scope,
		"date":     currentDate,
		"replaced": replaced,
	}).Debug("Entrada de ROI registrada")

	return snapshot, nil
}

// FilterByDate devolve as entradas com a data exata informada. Não muta estado.
func (s *Service) FilterByDate(scope, date string) ([]domain.ROIEntry, error) {
	if _, err := time.Parse(DateLayout, date); err != nil {
		return nil, ErrInvalidDate
	}

	snapshot, err := s.Load(scope)
	if err != nil {
		return nil, err
	}

	matched := make([]domain.ROIEntry, 0)
	for _, entry := range snapshot.Entries {
		if entry.Date == date {
			matched = append(matched, entry)
		}
	}

	return matched, nil
}

func (s *Service) emptySnapshot() *domain.ROISnapshot {
	return &domain.ROISnapshot{
		Entries:     []domain.ROIEntry{},
		CurrentDate: s.today(),
	}
}

func (s *Service) save(scope string, snapshot *domain.ROISnapshot) error {
	raw, err := json.MarshalToString(snapshot)
	if err != nil {
		return errors.Wrap(ErrSavingSnapshot, err.Error())
	}

	if err := s.store.Set(storage.ROIDataKey(scope), raw); err != nil {
		logrus.WithError(err).WithField("scope", scope).Error("Erro ao gravar snapshot de ROI")
		return errors.Wrap(ErrSavingSnapshot, err.Error())
	}

	return nil
}

// calculateROI deriva os campos de uma entrada. ROI é um múltiplo do
// investimento (5.0 = retornou 5x); investimento zero rende ROI zero.
func calculateROI(expense, returnValue float64) (roi, profit float64, isProfit bool) {
	profit = utils.RoundWithTwoDecimalPlace(returnValue - expense)

	if expense != 0 {
		roi = utils.RoundWithTwoDecimalPlace(returnValue / expense)
	}

	return roi, profit, profit > 0
}

// recomputeTotals recalcula os agregados derivados a partir da lista completa
// de entradas. O ROI mensal é a soma simples dos múltiplos diários do mês
// corrente, não uma média ponderada.
func recomputeTotals(snapshot *domain.ROISnapshot, now time.Time) {
	currentMonth := now.Month()
	currentYear := now.Year()

	var monthlyROI, totalExpense, totalReturn, totalProfit float64
	for _, entry := range snapshot.Entries {
		totalExpense += entry.Expense
		totalReturn += entry.Return
		totalProfit += entry.Profit

		entryDate, err := time.Parse(DateLayout, entry.Date)
		if err != nil {
			continue
		}

		if entryDate.Month() == currentMonth && entryDate.Year() == currentYear {
			monthlyROI += entry.DailyROI
		}
	}

	snapshot.MonthlyROI = monthlyROI
	snapshot.TotalExpense = totalExpense
	snapshot.TotalReturn = totalReturn
	snapshot.TotalProfit = totalProfit
}
