package scheduler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"github.com/nexumapp/nexum-api/internal/domain"
	adminmocks "github.com/nexumapp/nexum-api/internal/usecases/administrating/mocks"
)

func TestAdminRefreshService_RefreshAdminData(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockAdmin := adminmocks.NewMockAdminViewer(ctrl)
	mockAdmin.EXPECT().Refresh().Return(&domain.AdminSnapshot{TotalUsers: 2}, nil)

	service := &AdminRefreshService{
		adminService: mockAdmin,
		config:       AdminRefreshConfig{IntervalSeconds: 30, Enabled: true},
	}

	err := service.RefreshAdminData()
	assert.NoError(t, err)
	assert.False(t, service.lastSyncStartedAt.IsZero())
	assert.False(t, service.lastSyncCompletedAt.IsZero())
	assert.False(t, service.syncRunning)
}

func TestAdminRefreshService_RefreshAdminData_Error(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockAdmin := adminmocks.NewMockAdminViewer(ctrl)
	mockAdmin.EXPECT().Refresh().Return(nil, assert.AnError)

	service := &AdminRefreshService{
		adminService: mockAdmin,
		config:       AdminRefreshConfig{IntervalSeconds: 30, Enabled: true},
	}

	err := service.RefreshAdminData()
	assert.Error(t, err)
	assert.False(t, service.syncRunning)
}

func TestAdminRefreshService_RefreshAdminData_AlreadyRunning(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	// Nenhuma chamada a Refresh é esperada quando a sincronização já está em execução
	mockAdmin := adminmocks.NewMockAdminViewer(ctrl)

	service := &AdminRefreshService{
		adminService: mockAdmin,
		config:       AdminRefreshConfig{IntervalSeconds: 30, Enabled: true},
		syncRunning:  true,
	}

	err := service.RefreshAdminData()
	assert.NoError(t, err)
}

func TestAdminRefreshService_GetStatus(t *testing.T) {
	service := &AdminRefreshService{
		config: AdminRefreshConfig{IntervalSeconds: 45, Enabled: true},
	}

	status := service.GetStatus()
	assert.Equal(t, true, status["enabled"])
	assert.Equal(t, 45, status["interval_seconds"])
}
