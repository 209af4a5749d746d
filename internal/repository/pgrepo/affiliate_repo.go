package pgrepo

import (
	"context"

	"github.com/fsdevblog/groph-affiliate/internal/domain"
	"github.com/fsdevblog/groph-affiliate/internal/repository/repoargs"
	"github.com/fsdevblog/groph-affiliate/pkg/uow"
)

const affiliateColumns = `id, created_at, updated_at, code, COALESCE(payout_account_id, ''),
	payouts_enabled, pending_commission, paid_commission, total_paid_out`

type AffiliateRepository struct {
	db uow.DBTX
}

func NewAffiliateRepository(conn uow.DBTX) *AffiliateRepository {
	return &AffiliateRepository{db: conn}
}

func (a *AffiliateRepository) GetByID(ctx context.Context, id int64) (*domain.Affiliate, error) {
	row := a.db.QueryRow(ctx,
		`SELECT `+affiliateColumns+` FROM affiliates WHERE id = $1`, id)
	affiliate, err := scanAffiliate(row)
	if err != nil {
		return nil, convertErr(err, "getting affiliate by id %d", id)
	}
	return affiliate, nil
}

// GetByIDForUpdate читает аффилиата под блокировкой строки. Вызывать только
// внутри транзакции uow.
func (a *AffiliateRepository) GetByIDForUpdate(ctx context.Context, id int64) (*domain.Affiliate, error) {
	row := a.db.QueryRow(ctx,
		`SELECT `+affiliateColumns+` FROM affiliates WHERE id = $1 FOR UPDATE`, id)
	affiliate, err := scanAffiliate(row)
	if err != nil {
		return nil, convertErr(err, "locking affiliate with id %d", id)
	}
	return affiliate, nil
}

func (a *AffiliateRepository) FindByCode(ctx context.Context, code string) (*domain.Affiliate, error) {
	row := a.db.QueryRow(ctx,
		`SELECT `+affiliateColumns+` FROM affiliates WHERE code = $1`, code)
	affiliate, err := scanAffiliate(row)
	if err != nil {
		return nil, convertErr(err, "finding affiliate by code `%s`", code)
	}
	return affiliate, nil
}

// UpdateBalances записывает три балансовых поля целиком. Новые значения
// вычисляет сервисный слой, прочитав строку через GetByIDForUpdate.
func (a *AffiliateRepository) UpdateBalances(
	ctx context.Context,
	update repoargs.BalanceUpdate,
) (*domain.Affiliate, error) {
	row := a.db.QueryRow(ctx,
		`UPDATE affiliates
		SET pending_commission = $2, paid_commission = $3, total_paid_out = $4, updated_at = now()
		WHERE id = $1
		RETURNING `+affiliateColumns,
		update.AffiliateID, update.PendingCommission, update.PaidCommission, update.TotalPaidOut)
	affiliate, err := scanAffiliate(row)
	if err != nil {
		return nil, convertErr(err, "updating balances for affiliate %d", update.AffiliateID)
	}
	return affiliate, nil
}
