package payout

import (
	"testing"

	"github.com/fsdevblog/groph-affiliate/internal/domain"
	"github.com/fsdevblog/groph-affiliate/internal/service"
	"github.com/fsdevblog/groph-affiliate/internal/transport/payout/client"
	"github.com/fsdevblog/groph-affiliate/internal/transport/payout/mocks"
	"github.com/golang/mock/gomock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIdempotencyKey(t *testing.T) {
	// ключ детерминированный: одна комиссия - всегда один и тот же ключ
	assert.Equal(t, "commission_payout_7", IdempotencyKey(7))
	assert.Equal(t, IdempotencyKey(42), IdempotencyKey(42))
	assert.NotEqual(t, IdempotencyKey(1), IdempotencyKey(2))
}

func TestGatewayCreateTransfer(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockClient := mocks.NewMockClient(ctrl)
	gateway := NewGateway(mockClient)

	mockClient.EXPECT().
		CreateTransfer(gomock.Any(), client.TransferRequest{
			DestinationAccountID: "acct_123",
			AmountMinorUnits:     2550,
			Currency:             "USD",
			CommissionID:         7,
			IdempotencyKey:       "commission_payout_7",
		}).
		Return(&client.Transfer{ID: "tr_123"}, nil)

	transferID, err := gateway.CreateTransfer(t.Context(), service.CreateTransferArgs{
		CommissionID:    7,
		PayoutAccountID: "acct_123",
		Amount:          decimal.NewFromFloat(25.50),
		Currency:        "USD",
	})
	require.NoError(t, err)
	assert.Equal(t, "tr_123", transferID)
}

func TestGatewayCreateTransfer_AmountTooSmall(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	// меньше одной минорной единицы, клиент не должен быть вызван
	mockClient := mocks.NewMockClient(ctrl)
	gateway := NewGateway(mockClient)

	for _, amount := range []decimal.Decimal{
		decimal.Zero,
		decimal.NewFromFloat(0.001),
		decimal.NewFromInt(-5),
	} {
		_, err := gateway.CreateTransfer(t.Context(), service.CreateTransferArgs{
			CommissionID:    7,
			PayoutAccountID: "acct_123",
			Amount:          amount,
			Currency:        "USD",
		})
		require.ErrorIs(t, err, domain.ErrTransferAmountTooSmall)
	}
}
