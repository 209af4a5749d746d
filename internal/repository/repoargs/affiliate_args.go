package repoargs

import "github.com/shopspring/decimal"

// BalanceUpdate новые значения трех балансовых полей аффилиата. Значения
// вычисляются в сервисном слое (read-modify-write под блокировкой строки).
type BalanceUpdate struct {
	AffiliateID       int64
	PendingCommission decimal.Decimal
	PaidCommission    decimal.Decimal
	TotalPaidOut      decimal.Decimal
}
