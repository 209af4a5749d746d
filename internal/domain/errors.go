package domain

import (
	"errors"
	"fmt"
)

var (
	ErrRecordNotFound = errors.New("record not found")
	ErrDuplicateKey   = errors.New("duplicate key")
	ErrUnknown        = errors.New("unknown error")

	ErrPayoutsDisabled        = errors.New("payouts disabled for affiliate")
	ErrNoPayoutAccount        = errors.New("affiliate has no payout account")
	ErrNoApprovedCommissions  = errors.New("no approved commissions")
	ErrTransferAmountTooSmall = errors.New("transfer amount below one minor unit")
)

type InvalidTransitionError struct {
	From CommissionStatusType
	To   CommissionStatusType
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("commission status transition %s -> %s is not allowed", e.From, e.To)
}

// DuplicateCommissionError возвращается при попытке создать вторую запись
// комиссии на ту же пару (аффилиат, заказ).
type DuplicateCommissionError struct {
	Commission *CommissionRecord
}

func NewDuplicateCommissionError(commission *CommissionRecord) error {
	return &DuplicateCommissionError{Commission: commission}
}

func (e *DuplicateCommissionError) Error() string {
	return fmt.Sprintf(
		"commission for order %d already exists for affiliate with id %d",
		e.Commission.OrderID,
		e.Commission.AffiliateID,
	)
}
