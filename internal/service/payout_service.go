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

// PayoutService оркестратор выплат: двигает деньги по approved комиссиям через
// шлюз процессора. Используется и плановым обработчиком, и ручным запуском из
// админки - защита от двойной выплаты держится на блокировке строки комиссии,
// повторной проверке статуса внутри транзакции и ключе идемпотентности шлюза.
type PayoutService struct {
	uow            uow.UOW
	gateway        PayoutGateway
	affiliateRepo  AffiliateRepository
	commissionRepo CommissionRepository
	l              *logrus.Entry
}

func NewPayoutService(u uow.UOW, gateway PayoutGateway, l *logrus.Logger) (*PayoutService, error) {
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
	return &PayoutService{
		uow:            u,
		gateway:        gateway,
		affiliateRepo:  affiliateRepo,
		commissionRepo: commissionRepo,
		l: l.WithFields(logrus.Fields{
			"component": "service",
			"module":    "payout",
		}),
	}, nil
}

// CommissionPayout результат обработки одной комиссии в рамках выплаты.
type CommissionPayout struct {
	CommissionID int64
	Amount       decimal.Decimal
	TransferID   string
	AlreadyPaid  bool
	Skipped      bool
	Error        string
}

// PayoutRunResult итог запуска выплаты по аффилиату. TotalPaid всегда равен
// сумме Amount записей из Succeeded.
type PayoutRunResult struct {
	Succeeded []CommissionPayout
	Failed    []CommissionPayout
	Skipped   []CommissionPayout
	TotalPaid decimal.Decimal
}

// PayCommissions выплачивает approved комиссии аффилиата. Если commissionIDs не
// пуст, кандидаты пересекаются с переданным списком. Комиссии обрабатываются
// строго последовательно; ошибка по одной не прерывает остальные, итог содержит
// частичный успех. Валидация аффилиата выполняется до любых изменений.
func (p *PayoutService) PayCommissions(
	ctx context.Context,
	affiliateID int64,
	commissionIDs []int64,
	initiatedBy domain.InitiatorType,
) (*PayoutRunResult, error) {
	affiliate, affErr := p.affiliateRepo.GetByID(ctx, affiliateID)
	if affErr != nil {
		return nil, affErr //nolint:wrapcheck
	}
	if !affiliate.PayoutsEnabled {
		return nil, domain.ErrPayoutsDisabled
	}
	if affiliate.PayoutAccountID == "" {
		return nil, domain.ErrNoPayoutAccount
	}

	candidates, candidatesErr := p.commissionRepo.GetApproved(ctx, affiliateID, commissionIDs)
	if candidatesErr != nil {
		return nil, candidatesErr //nolint:wrapcheck
	}
	if len(candidates) == 0 {
		return nil, domain.ErrNoApprovedCommissions
	}

	result := &PayoutRunResult{TotalPaid: decimal.Zero}
	for _, candidate := range candidates {
		payout := p.payOne(ctx, affiliate.PayoutAccountID, candidate.ID)
		switch {
		case payout.Error != "":
			result.Failed = append(result.Failed, payout)
		case payout.AlreadyPaid || payout.Skipped:
			result.Skipped = append(result.Skipped, payout)
		default:
			result.Succeeded = append(result.Succeeded, payout)
			result.TotalPaid = result.TotalPaid.Add(payout.Amount)
		}
	}

	p.l.WithFields(logrus.Fields{
		"affiliateID": affiliateID,
		"initiatedBy": initiatedBy,
		"succeeded":   len(result.Succeeded),
		"failed":      len(result.Failed),
		"skipped":     len(result.Skipped),
		"totalPaid":   result.TotalPaid,
	}).Info("payout run finished")

	return result, nil
}

// RetryPayout повторная попытка выплаты по одной комиссии. Сначала очищает
// ошибку и счетчик попыток, затем уходит в тот же единичный путь, что и
// PayCommissions. Уже выплаченная комиссия дает no-op результат, не ошибку.
func (p *PayoutService) RetryPayout(ctx context.Context, commissionID int64) (*CommissionPayout, error) {
	commission, getErr := p.commissionRepo.GetByID(ctx, commissionID)
	if getErr != nil {
		return nil, getErr //nolint:wrapcheck
	}

	if commission.Status == domain.CommissionStatusPaid {
		return &CommissionPayout{
			CommissionID: commission.ID,
			Amount:       commission.Amount,
			TransferID:   commission.TransferID,
			AlreadyPaid:  true,
		}, nil
	}
	if commission.Status != domain.CommissionStatusApproved {
		return nil, &domain.InvalidTransitionError{
			From: commission.Status,
			To:   domain.CommissionStatusPaid,
		}
	}

	affiliate, affErr := p.affiliateRepo.GetByID(ctx, commission.AffiliateID)
	if affErr != nil {
		return nil, affErr //nolint:wrapcheck
	}
	if !affiliate.PayoutsEnabled {
		return nil, domain.ErrPayoutsDisabled
	}
	if affiliate.PayoutAccountID == "" {
		return nil, domain.ErrNoPayoutAccount
	}

	if resetErr := p.commissionRepo.ResetTransferState(ctx, commissionID); resetErr != nil {
		return nil, resetErr //nolint:wrapcheck
	}

	payout := p.payOne(ctx, affiliate.PayoutAccountID, commissionID)
	return &payout, nil
}

// AffiliatesDueForPayout возвращает id аффилиатов с approved комиссиями и
// включенными выплатами. Источник работы для планового обработчика.
func (p *PayoutService) AffiliatesDueForPayout(ctx context.Context, limit uint) ([]int64, error) {
	ids, err := p.commissionRepo.AffiliateIDsWithApproved(ctx, limit)
	if err != nil {
		return nil, err //nolint:wrapcheck
	}
	return ids, nil
}

// payOne обрабатывает одну комиссию в отдельной транзакции.
//
// Алгоритм:
//  1. Блокирует строку комиссии (SELECT ... FOR UPDATE) и повторно проверяет
//     статус - параллельный запуск к этому моменту мог уже выплатить её.
//  2. Вызывает шлюз. Ключ идемпотентности выводится из id комиссии, поэтому
//     повтор того же логического запроса дедуплицируется самим процессором.
//  3. Успех: approved -> paid и перенос суммы в paid_commission/total_paid_out
//     той же транзакцией. Ошибка процессора: комиссия остается approved,
//     коммитятся только метаданные попытки.
//
// Если транзакция упала после успешного ответа шлюза, трансфер у процессора
// существует, а запись осталась approved - повторная попытка безопасна из-за
// того же ключа идемпотентности.
func (p *PayoutService) payOne(ctx context.Context, payoutAccountID string, commissionID int64) CommissionPayout {
	result := CommissionPayout{CommissionID: commissionID}

	txErr := p.uow.Do(ctx, func(ctx context.Context, tx uow.TX) error {
		affiliateRepo, aErr := uow.GetAs[AffiliateRepository](tx, uow.RepositoryName(repoargs.AffiliateRepoName))
		if aErr != nil {
			return aErr //nolint:wrapcheck
		}
		commissionRepo, cErr := uow.GetAs[CommissionRepository](tx, uow.RepositoryName(repoargs.CommissionRepoName))
		if cErr != nil {
			return cErr //nolint:wrapcheck
		}

		commission, lockErr := commissionRepo.GetByIDForUpdate(ctx, commissionID)
		if lockErr != nil {
			return lockErr //nolint:wrapcheck
		}
		result.Amount = commission.Amount

		// Повторная проверка статуса под блокировкой. Пойманный дубль выплаты -
		// no-op успех, ни в коем случае не второй трансфер.
		if commission.Status == domain.CommissionStatusPaid {
			result.AlreadyPaid = true
			result.TransferID = commission.TransferID
			return nil
		}
		if commission.Status != domain.CommissionStatusApproved {
			result.Skipped = true
			return nil
		}

		transferID, gwErr := p.gateway.CreateTransfer(ctx, CreateTransferArgs{
			CommissionID:    commission.ID,
			PayoutAccountID: payoutAccountID,
			Amount:          commission.Amount,
			Currency:        commission.Currency,
		})
		if gwErr != nil {
			if errors.Is(gwErr, domain.ErrTransferAmountTooSmall) {
				result.Skipped = true
				return nil
			}
			// Фиксируем метаданные неудачной попытки и коммитим только их.
			result.Error = gwErr.Error()
			return commissionRepo.RecordTransferFailure(ctx, repoargs.TransferFailure{ //nolint:wrapcheck
				CommissionID: commission.ID,
				Message:      gwErr.Error(),
				AttemptAt:    time.Now(),
			})
		}

		if transitErr := domain.EnsureTransit(commission.Status, domain.CommissionStatusPaid); transitErr != nil {
			return transitErr
		}

		if _, paidErr := commissionRepo.MarkPaid(ctx, repoargs.TransferMarkPaid{
			CommissionID: commission.ID,
			TransferID:   transferID,
			PaidAt:       time.Now(),
		}); paidErr != nil {
			return paidErr //nolint:wrapcheck
		}

		affiliate, affErr := affiliateRepo.GetByIDForUpdate(ctx, commission.AffiliateID)
		if affErr != nil {
			return affErr //nolint:wrapcheck
		}
		if _, balErr := affiliateRepo.UpdateBalances(ctx, repoargs.BalanceUpdate{
			AffiliateID:       affiliate.ID,
			PendingCommission: affiliate.PendingCommission,
			PaidCommission:    affiliate.PaidCommission.Add(commission.Amount),
			TotalPaidOut:      affiliate.TotalPaidOut.Add(commission.Amount),
		}); balErr != nil {
			return balErr //nolint:wrapcheck
		}

		result.TransferID = transferID
		return nil
	})

	if txErr != nil && result.Error == "" {
		result.Error = fmt.Sprintf("paying commission %d: %s", commissionID, txErr.Error())
	}
	return result
}
