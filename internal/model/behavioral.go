package model

// BehavioralData is the record of documented financial behavior submitted to
// the scoring service. Field names mirror the POST /score wire contract.
type BehavioralData struct {
	UtilityPaymentMonths      int     `json:"utility_payment_months"`
	UtilityPaymentConsistency float64 `json:"utility_payment_consistency"`
	MonthlyTransactionCount   int     `json:"monthly_transaction_count"`
	TransactionRegularity     float64 `json:"transaction_regularity_score"`
	SpendingVolatility        float64 `json:"spending_volatility"`
	AvgMonthEndBalance        float64 `json:"avg_month_end_balance"`
	SavingsGrowthRate         float64 `json:"savings_growth_rate"`
	WithdrawalDiscipline      float64 `json:"withdrawal_discipline_score"`
	IncomeRegularity          float64 `json:"income_regularity_score"`
	IncomeStabilityMonths     int     `json:"income_stability_months"`
	AccountTenureMonths       int     `json:"account_tenure_months"`
	AddressStabilityYears     float64 `json:"address_stability_years"`
	DiscretionaryIncomeRatio  float64 `json:"discretionary_income_ratio"`
}
