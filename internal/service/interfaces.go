package service

import (
	"context"

	"github.com/fsdevblog/groph-affiliate/internal/domain"
	"github.com/fsdevblog/groph-affiliate/internal/repository/repoargs"
	"github.com/shopspring/decimal"
)

//go:generate mockgen -source=interfaces.go -destination=mocks/mocks.go -package=mocks

type AffiliateRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Affiliate, error)
	GetByIDForUpdate(ctx context.Context, id int64) (*domain.Affiliate, error)
	FindByCode(ctx context.Context, code string) (*domain.Affiliate, error)
	UpdateBalances(ctx context.Context, update repoargs.BalanceUpdate) (*domain.Affiliate, error)
}

type CommissionRepository interface {
	Create(ctx context.Context, args repoargs.CommissionCreate) (*domain.CommissionRecord, error)
	GetByID(ctx context.Context, id int64) (*domain.CommissionRecord, error)
	GetByIDForUpdate(ctx context.Context, id int64) (*domain.CommissionRecord, error)
	FindByTransferID(ctx context.Context, transferID string) (*domain.CommissionRecord, error)
	FindByTransferIDForUpdate(ctx context.Context, transferID string) (*domain.CommissionRecord, error)
	GetByAffiliateID(ctx context.Context, affiliateID int64) ([]domain.CommissionRecord, error)
	GetApproved(ctx context.Context, affiliateID int64, ids []int64) ([]domain.CommissionRecord, error)
	UpdateStatus(ctx context.Context, args repoargs.CommissionStatusUpdate) (*domain.CommissionRecord, error)
	MarkPaid(ctx context.Context, args repoargs.TransferMarkPaid) (*domain.CommissionRecord, error)
	RecordTransferFailure(ctx context.Context, args repoargs.TransferFailure) error
	ResetTransferState(ctx context.Context, id int64) error
	ApplyReversal(ctx context.Context, args repoargs.TransferReversal) (*domain.CommissionRecord, error)
	MarkTransferCompleted(ctx context.Context, id int64) error
	SumByStatus(ctx context.Context, affiliateID int64) (*domain.BalanceAggregation, error)
	AffiliateIDsWithApproved(ctx context.Context, limit uint) ([]int64, error)
}

// CreateTransferArgs аргументы вызова шлюза процессора выплат. Ключ
// идемпотентности шлюз выводит сам из CommissionID.
type CreateTransferArgs struct {
	CommissionID    int64
	PayoutAccountID string
	Amount          decimal.Decimal
	Currency        string
}

// PayoutGateway обертка над внешним процессором выплат. Возвращает id
// созданного трансфера. Суммы меньше одной минорной единицы дают
// domain.ErrTransferAmountTooSmall без обращения к процессору.
type PayoutGateway interface {
	CreateTransfer(ctx context.Context, args CreateTransferArgs) (string, error)
}
