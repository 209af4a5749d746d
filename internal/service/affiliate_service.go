package service

import (
	"context"

	"github.com/fsdevblog/groph-affiliate/internal/domain"
	"github.com/fsdevblog/groph-affiliate/internal/repository/repoargs"
	"github.com/fsdevblog/groph-affiliate/pkg/uow"
)

type AffiliateService struct {
	uow            uow.UOW
	affiliateRepo  AffiliateRepository
	commissionRepo CommissionRepository
}

func NewAffiliateService(u uow.UOW) (*AffiliateService, error) {
	affiliateRepo, aErr := uow.GetRepositoryAs[AffiliateRepository](
		u, uow.RepositoryName(repoargs.AffiliateRepoName))
	if aErr != nil {
		return nil, aErr
	}
	commissionRepo, cErr := uow.GetRepositoryAs[CommissionRepository](
		u, uow.RepositoryName(repoargs.CommissionRepoName))
	if cErr != nil {
		return nil, cErr
	}
	return &AffiliateService{
		uow:            u,
		affiliateRepo:  affiliateRepo,
		commissionRepo: commissionRepo,
	}, nil
}

// AffiliateBalance кэшированные балансовые поля вместе с производными суммами
// по записям комиссий. Расхождение между ними - повод для ручного разбора.
type AffiliateBalance struct {
	Affiliate *domain.Affiliate
	Derived   *domain.BalanceAggregation
}

func (a *AffiliateService) GetByID(ctx context.Context, id int64) (*domain.Affiliate, error) {
	affiliate, err := a.affiliateRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err //nolint:wrapcheck
	}
	return affiliate, nil
}

// GetBalance возвращает оба представления баланса: быстрое кэшированное и
// строгое пересчитанное по записям комиссий.
func (a *AffiliateService) GetBalance(ctx context.Context, id int64) (*AffiliateBalance, error) {
	affiliate, affErr := a.affiliateRepo.GetByID(ctx, id)
	if affErr != nil {
		return nil, affErr //nolint:wrapcheck
	}
	derived, sumErr := a.commissionRepo.SumByStatus(ctx, id)
	if sumErr != nil {
		return nil, sumErr //nolint:wrapcheck
	}
	return &AffiliateBalance{
		Affiliate: affiliate,
		Derived:   derived,
	}, nil
}
