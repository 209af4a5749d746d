package pgrepo

import (
	"github.com/fsdevblog/groph-affiliate/internal/domain"
	"github.com/jackc/pgx/v5"
)

func scanAffiliate(row pgx.Row) (*domain.Affiliate, error) {
	var a domain.Affiliate
	err := row.Scan(
		&a.ID, &a.CreatedAt, &a.UpdatedAt, &a.Code, &a.PayoutAccountID,
		&a.PayoutsEnabled, &a.PendingCommission, &a.PaidCommission, &a.TotalPaidOut,
	)
	if err != nil {
		return nil, err //nolint:wrapcheck
	}
	return &a, nil
}

func scanCommission(row pgx.Row) (*domain.CommissionRecord, error) {
	var c domain.CommissionRecord
	err := row.Scan(
		&c.ID, &c.CreatedAt, &c.UpdatedAt, &c.AffiliateID, &c.OrderID, &c.Amount, &c.Currency,
		&c.Status, &c.TransferID, &c.TransferStatus, &c.TransferError,
		&c.TransferAttempts, &c.LastTransferAttempt, &c.ApprovedAt, &c.PaidAt,
	)
	if err != nil {
		return nil, err //nolint:wrapcheck
	}
	return &c, nil
}

// collectCommissions вычитывает все строки курсора в срез доменных моделей.
func collectCommissions(rows pgx.Rows, format string, args ...any) ([]domain.CommissionRecord, error) {
	var commissions []domain.CommissionRecord
	for rows.Next() {
		commission, scanErr := scanCommission(rows)
		if scanErr != nil {
			return nil, convertErr(scanErr, format, args...)
		}
		commissions = append(commissions, *commission)
	}
	if rowsErr := rows.Err(); rowsErr != nil {
		return nil, convertErr(rowsErr, format, args...)
	}
	return commissions, nil
}
