// Package financialplanning mantém o ledger de planejamento financeiro por
// usuário: saldo em caixa, dívidas fixas e variáveis, totais derivados e o
// histórico de auditoria. Toda operação segue o padrão mutar → recalcular
// totais → anexar histórico → persistir o snapshot inteiro.
package financialplanning

import (
	"fmt"
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

type FinancialPlanner interface {
	Load(scope string) (*domain.FinancialSnapshot, error)
	UpdateCashBalance(scope string, amount float64) (*domain.FinancialSnapshot, error)
	AddFixedDebt(scope string, debt domain.FixedDebt) (*domain.FinancialSnapshot, error)
	AddVariableDebt(scope string, debt domain.VariableDebt) (*domain.FinancialSnapshot, error)
	ToggleDebtPayment(scope, debtID string, kind domain.DebtKind) (*domain.FinancialSnapshot, error)
	RemoveDebt(scope, debtID string, kind domain.DebtKind) (*domain.FinancialSnapshot, error)
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

// Load lê o snapshot do escopo; ausência inicializa o estado vazio e snapshot
// corrompido degrada para o vazio com erro recuperável.
func (s *Service) Load(scope string) (*domain.FinancialSnapshot, error) {
	snapshot := emptySnapshot()

	raw, ok, err := s.store.Get(storage.FinancialDataKey(scope))
	if err != nil {
		logrus.WithError(err).WithField("scope", scope).Error("Erro ao ler snapshot financeiro")
		return snapshot, errors.Wrap(ErrLoadingSnapshot, err.Error())
	}

	if !ok {
		return snapshot, nil
	}

	if err := json.UnmarshalFromString(raw, snapshot); err != nil {
		logrus.WithError(err).WithField("scope", scope).Error("Snapshot financeiro corrompido")
		return emptySnapshot(), errors.Wrap(ErrLoadingSnapshot, err.Error())
	}

	// availableBalance nunca é confiado do valor armazenado.
	recomputeTotals(snapshot)

	return snapshot, nil
}

// UpdateCashBalance sobrescreve o saldo em caixa (a última escrita vence, sem
// semântica de delta) e registra no histórico o novo saldo, não a diferença.
func (s *Service) UpdateCashBalance(scope string, amount float64) (*domain.FinancialSnapshot, error) {
	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		return nil, ErrInvalidAmount
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	snapshot, err := s.Load(scope)
	if err != nil {
		return nil, err
	}

	snapshot.CashBalance = amount
	recomputeTotals(snapshot)

	if err := s.appendHistory(snapshot, domain.HistoryCashUpdate, "Saldo em caixa atualizado", amount, ""); err != nil {
		return nil, err
	}

	return snapshot, s.save(scope, snapshot)
}

// AddFixedDebt adiciona uma obrigação mensal recorrente. O histórico registra
// o valor negativo, sinalizando uma saída contra o saldo disponível.
func (s *Service) AddFixedDebt(scope string, debt domain.FixedDebt) (*domain.FinancialSnapshot, error) {
	if err := validateDebtFields(debt.Name, debt.Amount, debt.Category); err != nil {
		return nil, err
	}

	if debt.DueDate < 1 || debt.DueDate > 31 {
		return nil, ErrInvalidDueDay
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	snapshot, err := s.Load(scope)
	if err != nil {
		return nil, err
	}

	id, err := utils.GenerateID()
	if err != nil {
		return nil, errors.Wrap(err, "erro ao gerar id da dívida")
	}

	debt.ID = id
	snapshot.FixedDebts = append(snapshot.FixedDebts, debt)
	recomputeTotals(snapshot)

	description := fmt.Sprintf("Dívida fixa adicionada: %s", debt.Name)
	if err := s.appendHistory(snapshot, domain.HistoryDebtAdded, description, -debt.Amount, debt.Category); err != nil {
		return nil, err
	}

	return snapshot, s.save(scope, snapshot)
}

// AddVariableDebt adiciona uma obrigação pontual com data específica.
func (s *Service) AddVariableDebt(scope string, debt domain.VariableDebt) (*domain.FinancialSnapshot, error) {
	if err := validateDebtFields(debt.Name, debt.Amount, debt.Category); err != nil {
		return nil, err
	}

	if debt.DueDate == "" {
		return nil, ErrInvalidDueDate
	}

	if _, err := utils.ParseDate(debt.DueDate); err != nil {
		return nil, ErrInvalidDueDate
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	snapshot, err := s.Load(scope)
	if err != nil {
		return nil, err
	}

	id, err := utils.GenerateID()
	if err != nil {
		return nil, errors.Wrap(err, "erro ao gerar id da dívida")
	}

	debt.ID = id
	snapshot.VariableDebts = append(snapshot.VariableDebts, debt)
	recomputeTotals(snapshot)

	description := fmt.Sprintf("Dívida adicionada: %s", debt.Name)
	if err := s.appendHistory(snapshot, domain.HistoryDebtAdded, description, -debt.Amount, debt.Category); err != nil {
		return nil, err
	}

	return snapshot, s.save(scope, snapshot)
}

// ToggleDebtPayment inverte o estado de pagamento da dívida. Dívidas pagas
// saem dos totais em aberto, então marcar como paga aumenta o saldo
// disponível. Id desconhecido é um no-op: nada muda, nada é gravado.
func (s *Service) ToggleDebtPayment(scope, debtID string, kind domain.DebtKind) (*domain.FinancialSnapshot, error) {
	if kind != domain.DebtKindFixed && kind != domain.DebtKindVariable {
		return nil, ErrInvalidKind
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	snapshot, err := s.Load(scope)
	if err != nil {
		return nil, err
	}

	var name, category string
	var amount float64
	var nowPaid, found bool

	if kind == domain.DebtKindFixed {
		for i := range snapshot.FixedDebts {
			if snapshot.FixedDebts[i].ID == debtID {
				snapshot.FixedDebts[i].IsPaid = !snapshot.FixedDebts[i].IsPaid
				name = snapshot.FixedDebts[i].Name
				category = snapshot.FixedDebts[i].Category
				amount = snapshot.FixedDebts[i].Amount
				nowPaid = snapshot.FixedDebts[i].IsPaid
				found = true
				break
			}
		}
	} else {
		for i := range snapshot.VariableDebts {
			if snapshot.VariableDebts[i].ID == debtID {
				snapshot.VariableDebts[i].IsPaid = !snapshot.VariableDebts[i].IsPaid
				name = snapshot.VariableDebts[i].Name
				category = snapshot.VariableDebts[i].Category
				amount = snapshot.VariableDebts[i].Amount
				nowPaid = snapshot.VariableDebts[i].IsPaid
				found = true
				break
			}
		}
	}

	if !found {
		logrus.WithFields(logrus.Fields{
			"scope":   scope,
			"debt_id": debtID,
			"kind":    kind,
		}).Warn("Dívida não encontrada para alternar pagamento")
		return snapshot, nil
	}

	recomputeTotals(snapshot)

	description := fmt.Sprintf("Dívida paga: %s", name)
	historyAmount := amount
	if !nowPaid {
		description = fmt.Sprintf("Pagamento desfeito: %s", name)
		historyAmount = -amount
	}

	if err := s.appendHistory(snapshot, domain.HistoryDebtPaid, description, historyAmount, category); err != nil {
		return nil, err
	}

	return snapshot, s.save(scope, snapshot)
}

// RemoveDebt apaga a dívida da coleção incondicionalmente. A remoção entra no
// histórico com amount 0: é anotação, sem delta monetário.
func (s *Service) RemoveDebt(scope, debtID string, kind domain.DebtKind) (*domain.FinancialSnapshot, error) {
	if kind != domain.DebtKindFixed && kind != domain.DebtKindVariable {
		return nil, ErrInvalidKind
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	snapshot, err := s.Load(scope)
	if err != nil {
		return nil, err
	}

	var name, category string
	var found bool

	if kind == domain.DebtKindFixed {
		for i := range snapshot.FixedDebts {
			if snapshot.FixedDebts[i].ID == debtID {
				name = snapshot.FixedDebts[i].Name
				category = snapshot.FixedDebts[i].Category
				snapshot.FixedDebts = append(snapshot.FixedDebts[:i], snapshot.FixedDebts[i+1:]...)
				found = true
				break
			}
		}
	} else {
		for i := range snapshot.VariableDebts {
			if snapshot.VariableDebts[i].ID == debtID {
				name = snapshot.VariableDebts[i].Name
				category = snapshot.VariableDebts[i].Category
				snapshot.VariableDebts = append(snapshot.VariableDebts[:i], snapshot.VariableDebts[i+1:]...)
				found = true
				break
			}
		}
	}

	if !found {
		return snapshot, nil
	}

	recomputeTotals(snapshot)

	description := fmt.Sprintf("Dívida removida: %s", name)
	if err := s.appendHistory(snapshot, domain.HistoryDebtRemoved, description, 0, category); err != nil {
		return nil, err
	}

	return snapshot, s.save(scope, snapshot)
}

// appendHistory anexa uma entrada no topo do histórico (ordem cronológica
// inversa) e descarta a mais antiga acima do limite.
func (s *Service) appendHistory(snapshot *domain.FinancialSnapshot, historyType domain.HistoryType, description string, amount float64, category string) error {
	id, err := utils.GenerateID()
	if err != nil {
		return errors.Wrap(err, "erro ao gerar id do histórico")
	}

	entry := domain.HistoryEntry{
		ID:          id,
		Date:        s.now().Format(time.RFC3339),
		Type:        historyType,
		Description: description,
		Amount:      amount,
		Category:    category,
	}

	snapshot.History = append([]domain.HistoryEntry{entry}, snapshot.History...)
	if len(snapshot.History) > domain.MaxHistoryEntries {
		snapshot.History = snapshot.History[:domain.MaxHistoryEntries]
	}

	return nil
}

func (s *Service) save(scope string, snapshot *domain.FinancialSnapshot) error {
	raw, err := json.MarshalToString(snapshot)
	if err != nil {
		return errors.Wrap(ErrSavingSnapshot, err.Error())
	}

	if err := s.store.Set(storage.FinancialDataKey(scope), raw); err != nil {
		logrus.WithError(err).WithField("scope", scope).Error("Erro ao gravar snapshot financeiro")
		return errors.Wrap(ErrSavingSnapshot, err.Error())
	}

	return nil
}

func emptySnapshot() *domain.FinancialSnapshot {
	return &domain.FinancialSnapshot{
		FixedDebts:    []domain.FixedDebt{},
		VariableDebts: []domain.VariableDebt{},
		History:       []domain.HistoryEntry{},
	}
}

func validateDebtFields(name string, amount float64, category string) error {
	if name == "" {
		return ErrMissingName
	}

	if math.IsNaN(amount) || math.IsInf(amount, 0) || amount <= 0 {
		return ErrInvalidAmount
	}

	if !domain.IsValidDebtCategory(category) {
		return ErrInvalidCategory
	}

	return nil
}

// recomputeTotals recalcula os totais em aberto e o saldo disponível como
// função pura de (saldo, dívidas não pagas). Dívidas pagas ficam de fora.
func recomputeTotals(snapshot *domain.FinancialSnapshot) {
	var totalFixed, totalVariable float64

	for _, debt := range snapshot.FixedDebts {
		if !debt.IsPaid {
			totalFixed += debt.Amount
		}
	}

	for _, debt := range snapshot.VariableDebts {
		if !debt.IsPaid {
			totalVariable += debt.Amount
		}
	}

	snapshot.TotalFixedDebts = totalFixed
	snapshot.TotalVariableDebts = totalVariable
	snapshot.AvailableBalance = snapshot.CashBalance - totalFixed - totalVariable
}
