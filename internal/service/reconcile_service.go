package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/fsdevblog/groph-affiliate/internal/domain"
	"github.com/fsdevblog/groph-affiliate/internal/repository/repoargs"
	"github.com/fsdevblog/groph-affiliate/pkg/uow"
	"github.com/sirupsen/logrus"
)

// ReconcileService применяет асинхронные события процессора выплат к леджеру.
// События доставляются как минимум один раз, возможно не по порядку и с
// дублями, поэтому каждая ветка здесь обязана быть идемпотентной.
type ReconcileService struct {
	uow uow.UOW
	l   *logrus.Entry
}

func NewReconcileService(u uow.UOW, l *logrus.Logger) *ReconcileService {
	return &ReconcileService{
		uow: u,
		l: l.WithFields(logrus.Fields{
			"component": "service",
			"module":    "reconcile",
		}),
	}
}

// ApplyTransferEvent диспетчеризация по закрытому объединению событий.
// Возвращает domain.ErrRecordNotFound если комиссия не нашлась ни по id из
// метаданных, ни по id трансфера; любая другая ошибка означает, что событие
// не применено durably и процессор должен доставить его повторно.
func (r *ReconcileService) ApplyTransferEvent(ctx context.Context, event domain.TransferEvent) error {
	switch ev := event.(type) {
	case domain.TransferCreatedEvent:
		return r.confirmTransfer(ctx, ev)
	case domain.TransferReversedEvent:
		return r.reverseTransfer(ctx, ev)
	default:
		return fmt.Errorf("unsupported transfer event type %T", event)
	}
}

// confirmTransfer обрабатывает transfer.created: processing -> completed.
// Повторная доставка для уже подтвержденной записи - no-op.
func (r *ReconcileService) confirmTransfer(ctx context.Context, ev domain.TransferCreatedEvent) error {
	txErr := r.uow.Do(ctx, func(ctx context.Context, tx uow.TX) error {
		commissionRepo, repoErr := uow.GetAs[CommissionRepository](
			tx, uow.RepositoryName(repoargs.CommissionRepoName))
		if repoErr != nil {
			return repoErr //nolint:wrapcheck
		}

		commission, findErr := r.lockCommission(ctx, commissionRepo, ev)
		if findErr != nil {
			return findErr
		}

		switch commission.TransferStatus {
		case domain.TransferStatusProcessing:
			return commissionRepo.MarkTransferCompleted(ctx, commission.ID) //nolint:wrapcheck
		case domain.TransferStatusCompleted:
			// дубль события, подтверждать нечего.
			return nil
		case domain.TransferStatusNone, domain.TransferStatusFailed:
			r.l.WithFields(logrus.Fields{
				"commissionID":   commission.ID,
				"transferID":     ev.TransferID,
				"transferStatus": commission.TransferStatus,
			}).Warn("transfer.created for commission without processing transfer")
			return nil
		}
		return nil
	})

	if txErr != nil {
		if errors.Is(txErr, domain.ErrRecordNotFound) {
			return txErr
		}
		return fmt.Errorf("confirming transfer `%s`: %w", ev.TransferID, txErr)
	}
	return nil
}

// reverseTransfer обрабатывает transfer.reversed: единственное обратное ребро
// paid -> approved. Сумма уходит из paid_commission/total_paid_out (с полом в
// ноль) и возвращается в pending_commission как сигнал, что выплату нужно
// повторить. Событие для записи уже не в paid - no-op.
func (r *ReconcileService) reverseTransfer(ctx context.Context, ev domain.TransferReversedEvent) error {
	txErr := r.uow.Do(ctx, func(ctx context.Context, tx uow.TX) error {
		affiliateRepo, aErr := uow.GetAs[AffiliateRepository](tx, uow.RepositoryName(repoargs.AffiliateRepoName))
		if aErr != nil {
			return aErr //nolint:wrapcheck
		}
		commissionRepo, cErr := uow.GetAs[CommissionRepository](tx, uow.RepositoryName(repoargs.CommissionRepoName))
		if cErr != nil {
			return cErr //nolint:wrapcheck
		}

		commission, findErr := r.lockCommission(ctx, commissionRepo, ev)
		if findErr != nil {
			return findErr
		}

		if commission.Status != domain.CommissionStatusPaid {
			// дубль реверса либо событие пришло не по порядку.
			r.l.WithFields(logrus.Fields{
				"commissionID": commission.ID,
				"transferID":   ev.TransferID,
				"status":       commission.Status,
			}).Info("transfer.reversed for non-paid commission, skipping")
			return nil
		}

		if transitErr := domain.EnsureTransit(commission.Status, domain.CommissionStatusApproved); transitErr != nil {
			return transitErr
		}

		reason := ev.Reason
		if reason == "" {
			reason = fmt.Sprintf("transfer %s reversed by processor", ev.TransferID)
		}
		if _, revErr := commissionRepo.ApplyReversal(ctx, repoargs.TransferReversal{
			CommissionID: commission.ID,
			Message:      reason,
		}); revErr != nil {
			return revErr //nolint:wrapcheck
		}

		affiliate, affErr := affiliateRepo.GetByIDForUpdate(ctx, commission.AffiliateID)
		if affErr != nil {
			return affErr //nolint:wrapcheck
		}

		newPaid, paidClamped := floorSub(affiliate.PaidCommission, commission.Amount)
		newTotal, totalClamped := floorSub(affiliate.TotalPaidOut, commission.Amount)
		if paidClamped || totalClamped {
			// Пол замаскировал бы двойной реверс, поэтому факт срабатывания
			// фиксируем отдельным предупреждением.
			r.l.WithFields(logrus.Fields{
				"affiliateID":  affiliate.ID,
				"commissionID": commission.ID,
				"transferID":   ev.TransferID,
			}).Warn("balance clamp triggered")
		}

		if _, balErr := affiliateRepo.UpdateBalances(ctx, repoargs.BalanceUpdate{
			AffiliateID:       affiliate.ID,
			PendingCommission: affiliate.PendingCommission.Add(commission.Amount),
			PaidCommission:    newPaid,
			TotalPaidOut:      newTotal,
		}); balErr != nil {
			return balErr //nolint:wrapcheck
		}
		return nil
	})

	if txErr != nil {
		if errors.Is(txErr, domain.ErrRecordNotFound) {
			return txErr
		}
		return fmt.Errorf("reversing transfer `%s`: %w", ev.TransferID, txErr)
	}
	return nil
}

// lockCommission ищет запись комиссии по событию под блокировкой строки.
// Предпочитает id комиссии из метаданных, для батчевых трансферов без
// метаданных откатывается к поиску по id трансфера.
func (r *ReconcileService) lockCommission(
	ctx context.Context,
	repo CommissionRepository,
	event domain.TransferEvent,
) (*domain.CommissionRecord, error) {
	if commissionID := event.CommissionRef(); commissionID > 0 {
		commission, err := repo.GetByIDForUpdate(ctx, commissionID)
		if err == nil {
			return commission, nil
		}
		if !errors.Is(err, domain.ErrRecordNotFound) {
			return nil, err //nolint:wrapcheck
		}
	}
	commission, err := repo.FindByTransferIDForUpdate(ctx, event.TransferRef())
	if err != nil {
		return nil, err //nolint:wrapcheck
	}
	return commission, nil
}
