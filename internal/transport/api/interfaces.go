package api

//go:generate mockgen -source=interfaces.go -destination=mocks/mocks.go -package=mocks

import (
	"context"

	"github.com/fsdevblog/groph-affiliate/internal/domain"
	"github.com/fsdevblog/groph-affiliate/internal/service"
)

type CommissionServicer interface {
	Create(ctx context.Context, args service.CreateCommissionArgs) (*domain.CommissionRecord, error)
	Approve(ctx context.Context, commissionID int64) (*domain.CommissionRecord, error)
	Cancel(ctx context.Context, commissionID int64) (*domain.CommissionRecord, error)
	GetByAffiliate(ctx context.Context, affiliateID int64) ([]domain.CommissionRecord, error)
}

type PayoutServicer interface {
	PayCommissions(
		ctx context.Context,
		affiliateID int64,
		commissionIDs []int64,
		initiatedBy domain.InitiatorType,
	) (*service.PayoutRunResult, error)
	RetryPayout(ctx context.Context, commissionID int64) (*service.CommissionPayout, error)
}

type AffiliateServicer interface {
	GetBalance(ctx context.Context, id int64) (*service.AffiliateBalance, error)
}

type ReconcileServicer interface {
	ApplyTransferEvent(ctx context.Context, event domain.TransferEvent) error
}
