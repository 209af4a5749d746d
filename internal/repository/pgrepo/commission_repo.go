package pgrepo

import (
	"context"

	"github.com/fsdevblog/groph-affiliate/internal/domain"
	"github.com/fsdevblog/groph-affiliate/internal/repository/repoargs"
	"github.com/fsdevblog/groph-affiliate/pkg/uow"
	"github.com/shopspring/decimal"
)

const commissionColumns = `id, created_at, updated_at, affiliate_id, order_id, amount, currency,
	status, COALESCE(transfer_id, ''), COALESCE(transfer_status::text, ''), COALESCE(transfer_error, ''),
	transfer_attempts, last_transfer_attempt, approved_at, paid_at`

type CommissionRepository struct {
	db uow.DBTX
}

func NewCommissionRepository(conn uow.DBTX) *CommissionRepository {
	return &CommissionRepository{db: conn}
}

func (c *CommissionRepository) Create(
	ctx context.Context,
	args repoargs.CommissionCreate,
) (*domain.CommissionRecord, error) {
	row := c.db.QueryRow(ctx,
		`INSERT INTO commission_records (affiliate_id, order_id, amount, currency, status)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING `+commissionColumns,
		args.AffiliateID, args.OrderID, args.Amount, args.Currency, domain.CommissionStatusPending)
	commission, err := scanCommission(row)
	if err != nil {
		return nil, convertErr(err, "creating commission for order %d", args.OrderID)
	}
	return commission, nil
}

func (c *CommissionRepository) GetByID(ctx context.Context, id int64) (*domain.CommissionRecord, error) {
	row := c.db.QueryRow(ctx,
		`SELECT `+commissionColumns+` FROM commission_records WHERE id = $1`, id)
	commission, err := scanCommission(row)
	if err != nil {
		return nil, convertErr(err, "getting commission by id %d", id)
	}
	return commission, nil
}

// GetByIDForUpdate читает запись комиссии под блокировкой строки. Именно эта
// блокировка сериализует оркестратор выплат и обработчик вебхуков, когда они
// одновременно трогают одну запись. Вызывать только внутри транзакции uow.
func (c *CommissionRepository) GetByIDForUpdate(ctx context.Context, id int64) (*domain.CommissionRecord, error) {
	row := c.db.QueryRow(ctx,
		`SELECT `+commissionColumns+` FROM commission_records WHERE id = $1 FOR UPDATE`, id)
	commission, err := scanCommission(row)
	if err != nil {
		return nil, convertErr(err, "locking commission with id %d", id)
	}
	return commission, nil
}

func (c *CommissionRepository) FindByTransferID(
	ctx context.Context,
	transferID string,
) (*domain.CommissionRecord, error) {
	row := c.db.QueryRow(ctx,
		`SELECT `+commissionColumns+` FROM commission_records WHERE transfer_id = $1`, transferID)
	commission, err := scanCommission(row)
	if err != nil {
		return nil, convertErr(err, "finding commission by transfer id `%s`", transferID)
	}
	return commission, nil
}

// FindByTransferIDForUpdate как FindByTransferID, но под блокировкой строки.
func (c *CommissionRepository) FindByTransferIDForUpdate(
	ctx context.Context,
	transferID string,
) (*domain.CommissionRecord, error) {
	row := c.db.QueryRow(ctx,
		`SELECT `+commissionColumns+` FROM commission_records WHERE transfer_id = $1 FOR UPDATE`, transferID)
	commission, err := scanCommission(row)
	if err != nil {
		return nil, convertErr(err, "locking commission by transfer id `%s`", transferID)
	}
	return commission, nil
}

// GetByAffiliateID возвращает записи комиссий аффилиата, отсортированные по
// дате создания по убыванию.
func (c *CommissionRepository) GetByAffiliateID(
	ctx context.Context,
	affiliateID int64,
) ([]domain.CommissionRecord, error) {
	rows, err := c.db.Query(ctx,
		`SELECT `+commissionColumns+` FROM commission_records
		WHERE affiliate_id = $1 ORDER BY created_at DESC`, affiliateID)
	if err != nil {
		return nil, convertErr(err, "getting commissions by affiliate %d", affiliateID)
	}
	defer rows.Close()

	return collectCommissions(rows, "getting commissions by affiliate %d", affiliateID)
}

// GetApproved возвращает approved записи аффилиата. Если ids не пуст, выборка
// дополнительно пересекается с переданным списком.
func (c *CommissionRepository) GetApproved(
	ctx context.Context,
	affiliateID int64,
	ids []int64,
) ([]domain.CommissionRecord, error) {
	query := `SELECT ` + commissionColumns + ` FROM commission_records
		WHERE affiliate_id = $1 AND status = $2`
	args := []any{affiliateID, domain.CommissionStatusApproved}
	if len(ids) > 0 {
		query += ` AND id = ANY($3)`
		args = append(args, ids)
	}
	query += ` ORDER BY id`

	rows, err := c.db.Query(ctx, query, args...)
	if err != nil {
		return nil, convertErr(err, "getting approved commissions for affiliate %d", affiliateID)
	}
	defer rows.Close()

	return collectCommissions(rows, "getting approved commissions for affiliate %d", affiliateID)
}

func (c *CommissionRepository) UpdateStatus(
	ctx context.Context,
	args repoargs.CommissionStatusUpdate,
) (*domain.CommissionRecord, error) {
	row := c.db.QueryRow(ctx,
		`UPDATE commission_records
		SET status = $2, approved_at = COALESCE($3, approved_at), updated_at = now()
		WHERE id = $1
		RETURNING `+commissionColumns,
		args.ID, args.Status, args.ApprovedAt)
	commission, err := scanCommission(row)
	if err != nil {
		return nil, convertErr(err, "updating status for commission %d", args.ID)
	}
	return commission, nil
}

// MarkPaid фиксирует успешно созданный трансфер: approved -> paid, запоминает
// transfer_id и выставляет transfer_status=processing до подтверждения вебхуком.
func (c *CommissionRepository) MarkPaid(
	ctx context.Context,
	args repoargs.TransferMarkPaid,
) (*domain.CommissionRecord, error) {
	row := c.db.QueryRow(ctx,
		`UPDATE commission_records
		SET status = $2, transfer_id = $3, transfer_status = $4, transfer_error = NULL,
			paid_at = $5, updated_at = now()
		WHERE id = $1
		RETURNING `+commissionColumns,
		args.CommissionID, domain.CommissionStatusPaid, args.TransferID,
		domain.TransferStatusProcessing, args.PaidAt)
	commission, err := scanCommission(row)
	if err != nil {
		return nil, convertErr(err, "marking commission %d as paid", args.CommissionID)
	}
	return commission, nil
}

// RecordTransferFailure пишет метаданные неудачной попытки. Статус записи не
// трогаем, комиссия остается approved для повторной попытки.
func (c *CommissionRepository) RecordTransferFailure(ctx context.Context, args repoargs.TransferFailure) error {
	_, err := c.db.Exec(ctx,
		`UPDATE commission_records
		SET transfer_error = $2, transfer_attempts = transfer_attempts + 1,
			last_transfer_attempt = $3, updated_at = now()
		WHERE id = $1`,
		args.CommissionID, args.Message, args.AttemptAt)
	if err != nil {
		return convertErr(err, "recording transfer failure for commission %d", args.CommissionID)
	}
	return nil
}

// ResetTransferState очищает ошибку и счетчик попыток перед ручным повтором.
func (c *CommissionRepository) ResetTransferState(ctx context.Context, id int64) error {
	_, err := c.db.Exec(ctx,
		`UPDATE commission_records
		SET transfer_error = NULL, transfer_attempts = 0, updated_at = now()
		WHERE id = $1`, id)
	if err != nil {
		return convertErr(err, "resetting transfer state for commission %d", id)
	}
	return nil
}

// ApplyReversal обратный переход paid -> approved. Трансфер очищается, чтобы
// разрешить новую попытку выплаты.
func (c *CommissionRepository) ApplyReversal(
	ctx context.Context,
	args repoargs.TransferReversal,
) (*domain.CommissionRecord, error) {
	row := c.db.QueryRow(ctx,
		`UPDATE commission_records
		SET status = $2, transfer_id = NULL, transfer_status = $3, transfer_error = $4,
			paid_at = NULL, updated_at = now()
		WHERE id = $1
		RETURNING `+commissionColumns,
		args.CommissionID, domain.CommissionStatusApproved, domain.TransferStatusFailed, args.Message)
	commission, err := scanCommission(row)
	if err != nil {
		return nil, convertErr(err, "applying reversal for commission %d", args.CommissionID)
	}
	return commission, nil
}

// MarkTransferCompleted подтверждение transfer.created: processing -> completed.
func (c *CommissionRepository) MarkTransferCompleted(ctx context.Context, id int64) error {
	_, err := c.db.Exec(ctx,
		`UPDATE commission_records
		SET transfer_status = $2, updated_at = now()
		WHERE id = $1 AND transfer_status = $3`,
		id, domain.TransferStatusCompleted, domain.TransferStatusProcessing)
	if err != nil {
		return convertErr(err, "marking transfer completed for commission %d", id)
	}
	return nil
}

// SumByStatus пересчитывает суммы комиссий аффилиата по статусам. Производное
// значение для сверки с кэшированными балансами.
func (c *CommissionRepository) SumByStatus(
	ctx context.Context,
	affiliateID int64,
) (*domain.BalanceAggregation, error) {
	rows, err := c.db.Query(ctx,
		`SELECT status, COALESCE(SUM(amount), 0) FROM commission_records
		WHERE affiliate_id = $1 GROUP BY status`, affiliateID)
	if err != nil {
		return nil, convertErr(err, "summing commissions for affiliate %d", affiliateID)
	}
	defer rows.Close()

	var agg = new(domain.BalanceAggregation)
	for rows.Next() {
		var status domain.CommissionStatusType
		var sum decimal.Decimal
		if scanErr := rows.Scan(&status, &sum); scanErr != nil {
			return nil, convertErr(scanErr, "summing commissions for affiliate %d", affiliateID)
		}
		switch status {
		case domain.CommissionStatusPending:
			agg.PendingAmount = sum
		case domain.CommissionStatusApproved:
			agg.ApprovedAmount = sum
		case domain.CommissionStatusPaid:
			agg.PaidAmount = sum
		case domain.CommissionStatusCancelled:
			// отмененные записи в балансах не участвуют.
		}
	}
	if rowsErr := rows.Err(); rowsErr != nil {
		return nil, convertErr(rowsErr, "summing commissions for affiliate %d", affiliateID)
	}
	return agg, nil
}

// AffiliateIDsWithApproved возвращает id аффилиатов, у которых есть approved
// комиссии и включены выплаты. Используется плановым обработчиком выплат.
func (c *CommissionRepository) AffiliateIDsWithApproved(ctx context.Context, limit uint) ([]int64, error) {
	rows, err := c.db.Query(ctx,
		`SELECT DISTINCT cr.affiliate_id FROM commission_records cr
		JOIN affiliates a ON a.id = cr.affiliate_id
		WHERE cr.status = $1 AND a.payouts_enabled AND a.payout_account_id IS NOT NULL
		ORDER BY cr.affiliate_id
		LIMIT $2`,
		domain.CommissionStatusApproved, int64(limit))
	if err != nil {
		return nil, convertErr(err, "getting affiliates with approved commissions")
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if scanErr := rows.Scan(&id); scanErr != nil {
			return nil, convertErr(scanErr, "getting affiliates with approved commissions")
		}
		ids = append(ids, id)
	}
	if rowsErr := rows.Err(); rowsErr != nil {
		return nil, convertErr(rowsErr, "getting affiliates with approved commissions")
	}
	return ids, nil
}
