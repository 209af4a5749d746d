// Package payout связывает леджер комиссий с внешним процессором выплат.
package payout

import (
	"context"
	"fmt"

	"github.com/fsdevblog/groph-affiliate/internal/domain"
	"github.com/fsdevblog/groph-affiliate/internal/service"
	"github.com/fsdevblog/groph-affiliate/internal/transport/payout/client"
	"github.com/shopspring/decimal"
)

const idempotencyKeyPrefix = "commission_payout_"

// minorUnitFactor две десятичные минорные единицы (центы) на валюту.
const minorUnitFactor = 2

// IdempotencyKey детерминированно выводит ключ идемпотентности из id комиссии.
// Никакой случайности: повтор того же логического запроса после ретрая или
// рестарта процесса обязан дать тот же ключ.
func IdempotencyKey(commissionID int64) string {
	return fmt.Sprintf("%s%d", idempotencyKeyPrefix, commissionID)
}

// Gateway реализация service.PayoutGateway поверх HTTP клиента процессора.
type Gateway struct {
	client Client
}

func NewGateway(c Client) *Gateway {
	return &Gateway{client: c}
}

// CreateTransfer создает трансфер для одной комиссии. Суммы меньше одной
// минорной единицы возвращают domain.ErrTransferAmountTooSmall без обращения к
// процессору - нулевой или отрицательный трансфер он все равно отклонит.
func (g *Gateway) CreateTransfer(ctx context.Context, args service.CreateTransferArgs) (string, error) {
	amountMinor := args.Amount.Shift(minorUnitFactor)
	if amountMinor.LessThan(decimal.NewFromInt(1)) {
		return "", domain.ErrTransferAmountTooSmall
	}

	transfer, err := g.client.CreateTransfer(ctx, client.TransferRequest{
		DestinationAccountID: args.PayoutAccountID,
		AmountMinorUnits:     amountMinor.IntPart(),
		Currency:             args.Currency,
		CommissionID:         args.CommissionID,
		IdempotencyKey:       IdempotencyKey(args.CommissionID),
	})
	if err != nil {
		return "", err //nolint:wrapcheck
	}
	return transfer.ID, nil
}
