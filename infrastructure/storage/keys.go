package storage

import "fmt"

// Chaves do armazém. Os snapshots por usuário são fragmentados pelo escopo
// (username); os demais registros são globais.
const (
	roiDataKeyPrefix       = "roi-dashboard-data"
	financialDataKeyPrefix = "financial-planning-data"

	RegisteredUsersKey = "nexum-registered-users"
	AdminDataKey       = "nexum-admin-data"
	NotesKey           = "nexum-notes"
	TasksKey           = "nexum-tasks"
)

// ROIDataKey devolve a chave do snapshot de ROI do escopo informado.
func ROIDataKey(scope string) string {
	return fmt.Sprintf("%s-%s", roiDataKeyPrefix, scope)
}

// FinancialDataKey devolve a chave do snapshot de planejamento financeiro do escopo.
func FinancialDataKey(scope string) string {
	return fmt.Sprintf("%s-%s", financialDataKeyPrefix, scope)
}
