package roitracking

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/nexumapp/nexum-api/infrastructure/storage"
	"github.com/nexumapp/nexum-api/infrastructure/storage/mocks"
)

func newTestService(now time.Time) (*Service, storage.Store) {
	store := storage.NewMemoryStore()
	service := NewService(store)
	service.now = func() time.Time { return now }
	return service, store
}

func TestAddEntry_ComputesDerivedFields(t *testing.T) {
	service, _ := newTestService(time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC))

	snapshot, err := service.AddEntry("admin", 1000, 1500)
	require.NoError(t, err)

	require.Len(t, snapshot.Entries, 1)
	entry := snapshot.Entries[0]
	assert.Equal(t, "2025-01-01", entry.Date)
	assert.Equal(t, 1.5, entry.DailyROI)
	assert.Equal(t, 500.0, entry.Profit)
	assert.True(t, entry.IsProfit)

	assert.Equal(t, 1.5, snapshot.DailyROI)
	assert.Equal(t, 1000.0, snapshot.TotalExpense)
	assert.Equal(t, 1500.0, snapshot.TotalReturn)
	assert.Equal(t, 500.0, snapshot.TotalProfit)
}

func TestAddEntry_SameDayOverwritesInsteadOfDuplicating(t *testing.T) {
	service, _ := newTestService(time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC))

	first, err := service.AddEntry("admin", 200, 100)
	require.NoError(t, err)
	require.Len(t, first.Entries, 1)
	originalID := first.Entries[0].ID

	second, err := service.AddEntry("admin", 300, 900)
	require.NoError(t, err)

	require.Len(t, second.Entries, 1)
	entry := second.Entries[0]
	assert.Equal(t, originalID, entry.ID, "o upsert do dia deve preservar o id")
	assert.Equal(t, 300.0, entry.Expense)
	assert.Equal(t, 900.0, entry.Return)
	assert.Equal(t, 3.0, entry.DailyROI)
}

func TestAddEntry_TotalsAreSumsOverAllEntries(t *testing.T) {
	store := storage.NewMemoryStore()
	service := NewService(store)

	days := []struct {
		now     time.Time
		expense float64
		ret     float64
	}{
		{time.Date(2025, 5, 1, 10, 0, 0, 0, time.UTC), 100, 180},
		{time.Date(2025, 5, 2, 10, 0, 0, 0, time.UTC), 250, 200},
		{time.Date(2025, 5, 3, 10, 0, 0, 0, time.UTC), 50, 400},
	}

	var snapshotTotalsCheck struct {
		expense, ret, profit float64
	}

	for _, day := range days {
		now := day.now
		service.now = func() time.Time { return now }

		snapshot, err := service.AddEntry("admin", day.expense, day.ret)
		require.NoError(t, err)

		snapshotTotalsCheck.expense += day.expense
		snapshotTotalsCheck.ret += day.ret
		snapshotTotalsCheck.profit += day.ret - day.expense

		assert.Equal(t, snapshotTotalsCheck.expense, snapshot.TotalExpense)
		assert.Equal(t, snapshotTotalsCheck.ret, snapshot.TotalReturn)
		assert.Equal(t, snapshotTotalsCheck.profit, snapshot.TotalProfit)
		assert.Equal(t, snapshot.TotalReturn-snapshot.TotalExpense, snapshot.TotalProfit)
	}
}

func TestAddEntry_ZeroExpenseYieldsZeroROI(t *testing.T) {
	service, _ := newTestService(time.Date(2025, 2, 5, 8, 0, 0, 0, time.UTC))

	snapshot, err := service.AddEntry("admin", 0, 350)
	require.NoError(t, err)

	entry := snapshot.Entries[0]
	assert.Equal(t, 0.0, entry.DailyROI)
	assert.Equal(t, 350.0, entry.Profit)
	assert.True(t, entry.IsProfit)
}

func TestAddEntry_RejectsInvalidValues(t *testing.T) {
	service, store := newTestService(time.Date(2025, 2, 5, 8, 0, 0, 0, time.UTC))

	_, err := service.AddEntry("admin", -10, 100)
	assert.ErrorIs(t, err, ErrInvalidExpense)

	_, ok, storeErr := store.Get(storage.ROIDataKey("admin"))
	require.NoError(t, storeErr)
	assert.False(t, ok, "entrada inválida não deve persistir nada")
}

func TestMonthlyROI_SumOfDailyMultiplesOfCurrentMonth(t *testing.T) {
	store := storage.NewMemoryStore()
	service := NewService(store)

	// Entrada de abril: fora do mês corrente na hora da última escrita.
	aprilNow := time.Date(2025, 4, 30, 10, 0, 0, 0, time.UTC)
	service.now = func() time.Time { return aprilNow }
	_, err := service.AddEntry("admin", 100, 500) // ROI 5.0
	require.NoError(t, err)

	mayFirst := time.Date(2025, 5, 1, 10, 0, 0, 0, time.UTC)
	service.now = func() time.Time { return mayFirst }
	_, err = service.AddEntry("admin", 100, 150) // ROI 1.5
	require.NoError(t, err)

	maySecond := time.Date(2025, 5, 2, 10, 0, 0, 0, time.UTC)
	service.now = func() time.Time { return maySecond }
	snapshot, err := service.AddEntry("admin", 200, 500) // ROI 2.5
	require.NoError(t, err)

	// Soma simples dos múltiplos diários de maio: 1.5 + 2.5.
	assert.Equal(t, 4.0, snapshot.MonthlyROI)
	assert.Equal(t, 400.0, snapshot.TotalExpense)
}

func TestAddEntry_UsesBrazilOffsetForToday(t *testing.T) {
	// 01:30 UTC do dia 2 ainda é dia 1 em UTC-3.
	service, _ := newTestService(time.Date(2025, 6, 2, 1, 30, 0, 0, time.UTC))

	snapshot, err := service.AddEntry("admin", 10, 20)
	require.NoError(t, err)

	assert.Equal(t, "2025-06-01", snapshot.Entries[0].Date)
	assert.Equal(t, "2025-06-01", snapshot.CurrentDate)
}

func TestFilterByDate_ReturnsOnlyMatchingEntries(t *testing.T) {
	store := storage.NewMemoryStore()
	service := NewService(store)

	dayOne := time.Date(2025, 7, 1, 10, 0, 0, 0, time.UTC)
	service.now = func() time.Time { return dayOne }
	_, err := service.AddEntry("admin", 100, 120)
	require.NoError(t, err)

	dayTwo := time.Date(2025, 7, 2, 10, 0, 0, 0, time.UTC)
	service.now = func() time.Time { return dayTwo }
	_, err = service.AddEntry("admin", 100, 90)
	require.NoError(t, err)

	matched, err := service.FilterByDate("admin", "2025-07-01")
	require.NoError(t, err)
	require.Len(t, matched, 1)
	assert.Equal(t, 120.0, matched[0].Return)

	empty, err := service.FilterByDate("admin", "2025-07-03")
	require.NoError(t, err)
	assert.Empty(t, empty)

	_, err = service.FilterByDate("admin", "01/07/2025")
	assert.ErrorIs(t, err, ErrInvalidDate)
}

func TestLoad_MissingAndCorruptSnapshot(t *testing.T) {
	now := time.Date(2025, 8, 1, 10, 0, 0, 0, time.UTC)
	service, store := newTestService(now)

	snapshot, err := service.Load("admin")
	require.NoError(t, err)
	assert.Empty(t, snapshot.Entries)
	assert.Equal(t, "2025-08-01", snapshot.CurrentDate)

	require.NoError(t, store.Set(storage.ROIDataKey("admin"), "{nao-e-json"))

	snapshot, err = service.Load("admin")
	assert.ErrorIs(t, err, ErrLoadingSnapshot)
	assert.Empty(t, snapshot.Entries, "snapshot corrompido degrada para o estado vazio")
}

func TestAddEntry_PersistFailureKeepsComputedSnapshot(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockStore := mocks.NewMockStore(ctrl)
	mockStore.EXPECT().Get(gomock.Any()).Return("", false, nil)
	mockStore.EXPECT().Set(gomock.Any(), gomock.Any()).Return(assert.AnError)

	service := NewService(mockStore)
	service.now = func() time.Time { return time.Date(2025, 9, 1, 10, 0, 0, 0, time.UTC) }

	snapshot, err := service.AddEntry("admin", 100, 300)
	assert.ErrorIs(t, err, ErrSavingSnapshot)

	// A mutação em memória permanece como fonte de verdade mesmo com a falha
	// de gravação.
	require.NotNil(t, snapshot)
	require.Len(t, snapshot.Entries, 1)
	assert.Equal(t, 3.0, snapshot.Entries[0].DailyROI)
}
