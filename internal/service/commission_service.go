package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/fsdevblog/groph-affiliate/internal/domain"
	"github.com/fsdevblog/groph-affiliate/internal/repository/repoargs"
	"github.com/fsdevblog/groph-affiliate/pkg/uow"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

type CommissionService struct {
	uow            uow.UOW
	commissionRepo CommissionRepository
	affiliateRepo  AffiliateRepository
	l              *logrus.Entry
}

func NewCommissionService(u uow.UOW, l *logrus.Logger) (*CommissionService, error) {
	commissionRepo, cErr := uow.GetRepositoryAs[CommissionRepository](
		u, uow.RepositoryName(repoargs.CommissionRepoName))
	if cErr != nil {
		return nil, cErr
	}
	affiliateRepo, aErr := uow.GetRepositoryAs[AffiliateRepository](
		u, uow.RepositoryName(repoargs.AffiliateRepoName))
	if aErr != nil {
		return nil, aErr
	}
	return &CommissionService{
		uow:            u,
		commissionRepo: commissionRepo,
		affiliateRepo:  affiliateRepo,
		l: l.WithFields(logrus.Fields{
			"component": "service",
			"module":    "commission",
		}),
	}, nil
}

type CreateCommissionArgs struct {
	AffiliateCode string
	OrderID       int64
	Amount        decimal.Decimal
	Currency      string
}

// Create регистрирует новую комиссию в статусе pending и увеличивает
// pending_commission аффилиата в той же транзакции. Повторная комиссия на ту же
// пару (аффилиат, заказ) возвращает *domain.DuplicateCommissionError.
func (c *CommissionService) Create(
	ctx context.Context,
	args CreateCommissionArgs,
) (*domain.CommissionRecord, error) {
	var created *domain.CommissionRecord

	txErr := c.uow.Do(ctx, func(ctx context.Context, tx uow.TX) error {
		affiliateRepo, commissionRepo, reposErr := c.txRepos(tx)
		if reposErr != nil {
			return reposErr
		}

		affiliate, affErr := affiliateRepo.FindByCode(ctx, args.AffiliateCode)
		if affErr != nil {
			return affErr //nolint:wrapcheck
		}

		// Блокируем строку аффилиата, чтобы параллельные создания не потеряли
		// инкремент pending_commission.
		affiliate, lockErr := affiliateRepo.GetByIDForUpdate(ctx, affiliate.ID)
		if lockErr != nil {
			return lockErr //nolint:wrapcheck
		}

		commission, createErr := commissionRepo.Create(ctx, repoargs.CommissionCreate{
			AffiliateID: affiliate.ID,
			OrderID:     args.OrderID,
			Amount:      args.Amount,
			Currency:    args.Currency,
		})
		if createErr != nil {
			if errors.Is(createErr, domain.ErrDuplicateKey) {
				return domain.NewDuplicateCommissionError(&domain.CommissionRecord{
					AffiliateID: affiliate.ID,
					OrderID:     args.OrderID,
				})
			}
			return createErr //nolint:wrapcheck
		}

		if _, balErr := affiliateRepo.UpdateBalances(ctx, repoargs.BalanceUpdate{
			AffiliateID:       affiliate.ID,
			PendingCommission: affiliate.PendingCommission.Add(args.Amount),
			PaidCommission:    affiliate.PaidCommission,
			TotalPaidOut:      affiliate.TotalPaidOut,
		}); balErr != nil {
			return balErr //nolint:wrapcheck
		}

		created = commission
		return nil
	})

	if txErr != nil {
		var duplicateErr *domain.DuplicateCommissionError
		if errors.As(txErr, &duplicateErr) {
			return nil, txErr
		}
		return nil, fmt.Errorf("creating commission: %w", txErr)
	}
	return created, nil
}

// Approve переводит комиссию pending -> approved и списывает сумму с
// pending_commission. До выплаты approved комиссии не отражаются ни в одном
// балансовом поле.
func (c *CommissionService) Approve(ctx context.Context, commissionID int64) (*domain.CommissionRecord, error) {
	var approved *domain.CommissionRecord

	txErr := c.uow.Do(ctx, func(ctx context.Context, tx uow.TX) error {
		affiliateRepo, commissionRepo, reposErr := c.txRepos(tx)
		if reposErr != nil {
			return reposErr
		}

		commission, lockErr := commissionRepo.GetByIDForUpdate(ctx, commissionID)
		if lockErr != nil {
			return lockErr //nolint:wrapcheck
		}
		// Админский approve работает только с pending: ребро paid -> approved
		// зарезервировано за сверкой трансферов (transfer.reversed).
		if commission.Status != domain.CommissionStatusPending {
			return &domain.InvalidTransitionError{From: commission.Status, To: domain.CommissionStatusApproved}
		}

		affiliate, affErr := affiliateRepo.GetByIDForUpdate(ctx, commission.AffiliateID)
		if affErr != nil {
			return affErr //nolint:wrapcheck
		}

		now := time.Now()
		updated, updErr := commissionRepo.UpdateStatus(ctx, repoargs.CommissionStatusUpdate{
			ID:         commission.ID,
			Status:     domain.CommissionStatusApproved,
			ApprovedAt: &now,
		})
		if updErr != nil {
			return updErr //nolint:wrapcheck
		}

		newPending, clamped := floorSub(affiliate.PendingCommission, commission.Amount)
		if clamped {
			c.logClamp(affiliate.ID, commission.ID, "pending_commission")
		}

		if _, balErr := affiliateRepo.UpdateBalances(ctx, repoargs.BalanceUpdate{
			AffiliateID:       affiliate.ID,
			PendingCommission: newPending,
			PaidCommission:    affiliate.PaidCommission,
			TotalPaidOut:      affiliate.TotalPaidOut,
		}); balErr != nil {
			return balErr //nolint:wrapcheck
		}

		approved = updated
		return nil
	})

	if txErr != nil {
		var transitionErr *domain.InvalidTransitionError
		if errors.As(txErr, &transitionErr) || errors.Is(txErr, domain.ErrRecordNotFound) {
			return nil, txErr
		}
		return nil, fmt.Errorf("approving commission %d: %w", commissionID, txErr)
	}
	return approved, nil
}

// Cancel терминальный выход pending/approved -> cancelled. Для pending
// комиссии сумма списывается с pending_commission; approved комиссия ни в одном
// балансовом поле не учтена, балансы не меняются.
func (c *CommissionService) Cancel(ctx context.Context, commissionID int64) (*domain.CommissionRecord, error) {
	var cancelled *domain.CommissionRecord

	txErr := c.uow.Do(ctx, func(ctx context.Context, tx uow.TX) error {
		affiliateRepo, commissionRepo, reposErr := c.txRepos(tx)
		if reposErr != nil {
			return reposErr
		}

		commission, lockErr := commissionRepo.GetByIDForUpdate(ctx, commissionID)
		if lockErr != nil {
			return lockErr //nolint:wrapcheck
		}
		if transitErr := domain.EnsureTransit(commission.Status, domain.CommissionStatusCancelled); transitErr != nil {
			return transitErr
		}
		wasPending := commission.Status == domain.CommissionStatusPending

		updated, updErr := commissionRepo.UpdateStatus(ctx, repoargs.CommissionStatusUpdate{
			ID:     commission.ID,
			Status: domain.CommissionStatusCancelled,
		})
		if updErr != nil {
			return updErr //nolint:wrapcheck
		}

		if wasPending {
			affiliate, affErr := affiliateRepo.GetByIDForUpdate(ctx, commission.AffiliateID)
			if affErr != nil {
				return affErr //nolint:wrapcheck
			}
			newPending, clamped := floorSub(affiliate.PendingCommission, commission.Amount)
			if clamped {
				c.logClamp(affiliate.ID, commission.ID, "pending_commission")
			}
			if _, balErr := affiliateRepo.UpdateBalances(ctx, repoargs.BalanceUpdate{
				AffiliateID:       affiliate.ID,
				PendingCommission: newPending,
				PaidCommission:    affiliate.PaidCommission,
				TotalPaidOut:      affiliate.TotalPaidOut,
			}); balErr != nil {
				return balErr //nolint:wrapcheck
			}
		}

		cancelled = updated
		return nil
	})

	if txErr != nil {
		var transitionErr *domain.InvalidTransitionError
		if errors.As(txErr, &transitionErr) || errors.Is(txErr, domain.ErrRecordNotFound) {
			return nil, txErr
		}
		return nil, fmt.Errorf("cancelling commission %d: %w", commissionID, txErr)
	}
	return cancelled, nil
}

// GetByAffiliate возвращает записи комиссий аффилиата, отсортированные по дате
// создания по убыванию.
func (c *CommissionService) GetByAffiliate(
	ctx context.Context,
	affiliateID int64,
) ([]domain.CommissionRecord, error) {
	commissions, err := c.commissionRepo.GetByAffiliateID(ctx, affiliateID)
	if err != nil {
		return nil, err //nolint:wrapcheck
	}
	return commissions, nil
}

// txRepos достает оба репозитория из транзакции.
func (c *CommissionService) txRepos(tx uow.TX) (AffiliateRepository, CommissionRepository, error) {
	affiliateRepo, aErr := uow.GetAs[AffiliateRepository](tx, uow.RepositoryName(repoargs.AffiliateRepoName))
	if aErr != nil {
		return nil, nil, aErr //nolint:wrapcheck
	}
	commissionRepo, cErr := uow.GetAs[CommissionRepository](tx, uow.RepositoryName(repoargs.CommissionRepoName))
	if cErr != nil {
		return nil, nil, cErr //nolint:wrapcheck
	}
	return affiliateRepo, commissionRepo, nil
}

func (c *CommissionService) logClamp(affiliateID, commissionID int64, field string) {
	c.l.WithFields(logrus.Fields{
		"affiliateID":  affiliateID,
		"commissionID": commissionID,
		"field":        field,
	}).Warn("balance clamp triggered")
}
