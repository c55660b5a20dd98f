package domain

// ROIEntry é o registro diário de investimento e retorno de um usuário.
// Existe no máximo uma entrada por data em cada ledger.
type ROIEntry struct {
	ID       string  `json:"id"`
	Date     string  `json:"date"` // formato 2006-01-02
	Expense  float64 `json:"expense"`
	Return   float64 `json:"return"`
	DailyROI float64 `json:"dailyROI"`
	Profit   float64 `json:"profit"`
	IsProfit bool    `json:"isProfit"`
}

// ROISnapshot é o estado completo do ledger de ROI de um usuário,
// serializado por inteiro a cada mutação.
type ROISnapshot struct {
	Entries      []ROIEntry `json:"entries"`
	DailyROI     float64    `json:"dailyROI"`
	MonthlyROI   float64    `json:"monthlyROI"`
	TotalExpense float64    `json:"totalExpense"`
	TotalReturn  float64    `json:"totalReturn"`
	TotalProfit  float64    `json:"totalProfit"`
	CurrentDate  string     `json:"currentDate"`
}

// ROITotals é a visão agregada do ROI de um usuário usada pelo painel administrativo.
type ROITotals struct {
	TotalExpense float64 `json:"totalExpense"`
	TotalReturn  float64 `json:"totalReturn"`
	TotalProfit  float64 `json:"totalProfit"`
	IsProfit     bool    `json:"isProfit"`
}
