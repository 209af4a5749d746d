package domain

type CommissionStatusType string

const (
	CommissionStatusPending   CommissionStatusType = "pending"
	CommissionStatusApproved  CommissionStatusType = "approved"
	CommissionStatusPaid      CommissionStatusType = "paid"
	CommissionStatusCancelled CommissionStatusType = "cancelled"
)

type TransferStatusType string

const (
	// TransferStatusNone пустое значение, трансфер ещё не создавался.
	TransferStatusNone       TransferStatusType = ""
	TransferStatusProcessing TransferStatusType = "processing"
	TransferStatusCompleted  TransferStatusType = "completed"
	TransferStatusFailed     TransferStatusType = "failed"
)

// InitiatorType кто запустил выплату.
type InitiatorType string

const (
	InitiatorAdmin InitiatorType = "admin"
	InitiatorCron  InitiatorType = "cron"
)
