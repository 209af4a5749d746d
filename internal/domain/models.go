package domain

import (
	"github.com/shopspring/decimal"

	"time"
)

type Affiliate struct {
	ID              int64
	CreatedAt       time.Time
	UpdatedAt       time.Time
	Code            string
	PayoutAccountID string
	PayoutsEnabled  bool

	// Кэшированная проекция сумм по записям комиссий. Источником истины являются
	// сами записи CommissionRecord, поля ниже обновляются в одной транзакции с
	// каждым переходом статуса.
	PendingCommission decimal.Decimal
	PaidCommission    decimal.Decimal
	TotalPaidOut      decimal.Decimal
}

type CommissionRecord struct {
	ID          int64
	CreatedAt   time.Time
	UpdatedAt   time.Time
	AffiliateID int64
	OrderID     int64
	Amount      decimal.Decimal
	Currency    string
	Status      CommissionStatusType

	// TransferID не пустой только если трансфер реально создан у процессора.
	// При реверсе очищается, чтобы разрешить новую попытку.
	TransferID          string
	TransferStatus      TransferStatusType
	TransferError       string
	TransferAttempts    int32
	LastTransferAttempt *time.Time
	ApprovedAt          *time.Time
	PaidAt              *time.Time
}

// BalanceAggregation производный (пересчитанный по записям комиссий) баланс
// аффилиата. Используется для сверки с кэшированной проекцией.
type BalanceAggregation struct {
	PendingAmount  decimal.Decimal
	ApprovedAmount decimal.Decimal
	PaidAmount     decimal.Decimal
}
