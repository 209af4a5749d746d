package repoargs

import (
	"time"

	"github.com/fsdevblog/groph-affiliate/internal/domain"
	"github.com/shopspring/decimal"
)

type CommissionCreate struct {
	AffiliateID int64
	OrderID     int64
	Amount      decimal.Decimal
	Currency    string
}

// CommissionStatusUpdate смена статуса записи (approve/cancel). ApprovedAt
// проставляется только на переходе pending -> approved.
type CommissionStatusUpdate struct {
	ID         int64
	Status     domain.CommissionStatusType
	ApprovedAt *time.Time
}

// TransferMarkPaid фиксация успешно созданного трансфера: approved -> paid.
type TransferMarkPaid struct {
	CommissionID int64
	TransferID   string
	PaidAt       time.Time
}

// TransferFailure метаданные неудачной попытки трансфера. Статус записи не
// меняется, комиссия остается approved.
type TransferFailure struct {
	CommissionID int64
	Message      string
	AttemptAt    time.Time
}

// TransferReversal обратный переход paid -> approved по событию процессора.
type TransferReversal struct {
	CommissionID int64
	Message      string
}
