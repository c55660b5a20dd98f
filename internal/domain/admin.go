package domain

import "time"

// UserStats é a visão administrativa de um único usuário: dados da conta,
// janela de acesso restante e totais de ROI do snapshot individual.
type UserStats struct {
	Username              string     `json:"username"`
	Email                 string     `json:"email"`
	UserType              UserType   `json:"userType"`
	RegisteredAt          time.Time  `json:"registeredAt"`
	TrialStartDate        *time.Time `json:"trialStartDate,omitempty"`
	SubscriptionStartDate *time.Time `json:"subscriptionStartDate,omitempty"`
	LastLogin             *time.Time `json:"lastLogin,omitempty"`
	DaysRemaining         int        `json:"daysRemaining"` // -1 significa acesso ilimitado
	IsExpired             bool       `json:"isExpired"`
	ROI                   ROITotals  `json:"roi"`
}

// AdminSnapshot é o agregado da frota calculado pelo painel administrativo.
// É apenas cache: o valor persistido nunca é fonte de verdade.
type AdminSnapshot struct {
	TotalUsers      int         `json:"totalUsers"`
	TestUsers       int         `json:"testUsers"`
	TrialUsers      int         `json:"trialUsers"`
	SubscriberUsers int         `json:"subscriberUsers"`
	ExpiredUsers    int         `json:"expiredUsers"`
	Users           []UserStats `json:"users"`
	RefreshedAt     time.Time   `json:"refreshedAt"`
}
