package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/fsdevblog/groph-affiliate/internal/domain"
	"github.com/gin-gonic/gin"
)

// parseIDParam разбирает числовой path-параметр. При ошибке пишет 400 и
// возвращает false.
func parseIDParam(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		c.AbortWithStatus(http.StatusBadRequest)
		return 0, false
	}
	return id, true
}

// CommissionResponse полное состояние записи комиссии для админки. По полям
// transfer_* различимы "approved, попыток не было", "approved, попытка упала с
// ошибкой X" и "paid, трансфер подтвержден".
type CommissionResponse struct {
	ID                  int64   `json:"id"`
	AffiliateID         int64   `json:"affiliate_id"`
	OrderID             int64   `json:"order_id"`
	Amount              float64 `json:"amount"`
	Currency            string  `json:"currency"`
	Status              string  `json:"status"`
	TransferID          string  `json:"transfer_id,omitempty"`
	TransferStatus      string  `json:"transfer_status,omitempty"`
	TransferError       string  `json:"transfer_error,omitempty"`
	TransferAttempts    int32   `json:"transfer_attempts"`
	LastTransferAttempt string  `json:"last_transfer_attempt,omitempty"`
	ApprovedAt          string  `json:"approved_at,omitempty"`
	PaidAt              string  `json:"paid_at,omitempty"`
	CreatedAt           string  `json:"created_at"`
}

func newCommissionResponse(commission *domain.CommissionRecord) CommissionResponse {
	return CommissionResponse{
		ID:                  commission.ID,
		AffiliateID:         commission.AffiliateID,
		OrderID:             commission.OrderID,
		Amount:              commission.Amount.InexactFloat64(),
		Currency:            commission.Currency,
		Status:              string(commission.Status),
		TransferID:          commission.TransferID,
		TransferStatus:      string(commission.TransferStatus),
		TransferError:       commission.TransferError,
		TransferAttempts:    commission.TransferAttempts,
		LastTransferAttempt: formatTimePtr(commission.LastTransferAttempt),
		ApprovedAt:          formatTimePtr(commission.ApprovedAt),
		PaidAt:              formatTimePtr(commission.PaidAt),
		CreatedAt:           commission.CreatedAt.Format(time.RFC3339),
	}
}

func formatTimePtr(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(time.RFC3339)
}
