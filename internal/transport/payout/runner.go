package payout

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/fsdevblog/groph-affiliate/internal/domain"
	"github.com/sirupsen/logrus"
)

const (
	defaultServiceTimeout         = 3 * time.Second
	defaultRunInterval            = time.Minute
	defaultLimitPerIteration uint = 100
	defaultPayoutRunTimeout       = 2 * time.Minute
)

// Runner плановый обработчик выплат. По интервалу собирает аффилиатов с
// approved комиссиями и гоняет для каждого тот же PayCommissions, что и ручной
// запуск из админки - гонка между ними разрешается блокировками строк и ключом
// идемпотентности, а не кооперацией процессов.
type Runner struct {
	svs               Servicer
	l                 *logrus.Entry
	interval          time.Duration
	limitPerIteration uint
}

func NewRunner(svs Servicer, l *logrus.Logger) *Runner {
	return &Runner{
		svs: svs,
		l: l.WithFields(logrus.Fields{
			"component": "payout",
			"module":    "runner",
		}),
		interval:          defaultRunInterval,
		limitPerIteration: defaultLimitPerIteration,
	}
}

// SetInterval устанавливает период между итерациями обработчика.
func (r *Runner) SetInterval(interval time.Duration) *Runner {
	r.interval = interval
	return r
}

// SetLimitPerIteration устанавливает кол-во аффилиатов, обрабатываемых в одной
// итерации.
func (r *Runner) SetLimitPerIteration(limit uint) *Runner {
	r.limitPerIteration = limit
	return r
}

// Run запускает обработку выплат в цикле до отмены контекста.
func (r *Runner) Run(ctx context.Context) {
	r.l.WithFields(logrus.Fields{
		"interval":          r.interval.String(),
		"limitPerIteration": r.limitPerIteration,
	}).Info("Starting")

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			r.l.Info("Got stop signal, exiting...")
			return
		case <-ticker.C:
			if err := r.process(ctx); err != nil {
				if !errors.Is(err, ErrNoAffiliates) {
					r.l.WithError(err).Error("process error")
				}
			}
		}
	}
}

// process одна итерация: получение списка аффилиатов и последовательная
// выплата по каждому. Ошибка по одному аффилиату не прерывает остальных.
func (r *Runner) process(ctx context.Context) error {
	affiliateIDs, produceErr := r.produce(ctx)
	if produceErr != nil {
		return fmt.Errorf("process: %w", produceErr)
	}

	for _, affiliateID := range affiliateIDs {
		runCtx, cancel := context.WithTimeout(ctx, defaultPayoutRunTimeout)
		result, payErr := r.svs.PayCommissions(runCtx, affiliateID, nil, domain.InitiatorCron)
		cancel()

		if payErr != nil {
			// ErrNoApprovedCommissions означает что комиссии успели выплатить
			// или отменить между выборкой и запуском - не ошибка.
			if !errors.Is(payErr, domain.ErrNoApprovedCommissions) {
				r.l.WithError(payErr).
					WithField("affiliateID", affiliateID).
					Error("pay commissions")
			}
			continue
		}

		r.l.WithFields(logrus.Fields{
			"affiliateID": affiliateID,
			"succeeded":   len(result.Succeeded),
			"failed":      len(result.Failed),
			"skipped":     len(result.Skipped),
			"totalPaid":   result.TotalPaid,
		}).Info("affiliate payout processed")
	}
	return nil
}

// produce получает список аффилиатов для выплат. Возвращает ErrNoAffiliates,
// если работы нет.
func (r *Runner) produce(ctx context.Context) ([]int64, error) {
	produceCtx, cancel := context.WithTimeout(ctx, defaultServiceTimeout)
	defer cancel()

	affiliateIDs, err := r.svs.AffiliatesDueForPayout(produceCtx, r.limitPerIteration)
	if err != nil {
		return nil, fmt.Errorf("produce: %w", err)
	}
	if len(affiliateIDs) == 0 {
		return nil, ErrNoAffiliates
	}
	return affiliateIDs, nil
}
