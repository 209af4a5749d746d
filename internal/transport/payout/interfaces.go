package payout

//go:generate mockgen -source=interfaces.go -destination=mocks/mocks.go -package=mocks

import (
	"context"

	"github.com/fsdevblog/groph-affiliate/internal/domain"
	"github.com/fsdevblog/groph-affiliate/internal/service"
	"github.com/fsdevblog/groph-affiliate/internal/transport/payout/client"
)

type Client interface {
	CreateTransfer(ctx context.Context, request client.TransferRequest) (*client.Transfer, error)
}

type Servicer interface {
	AffiliatesDueForPayout(ctx context.Context, limit uint) ([]int64, error)
	PayCommissions(
		ctx context.Context,
		affiliateID int64,
		commissionIDs []int64,
		initiatedBy domain.InitiatorType,
	) (*service.PayoutRunResult, error)
}
