package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/fsdevblog/groph-affiliate/internal/domain"
	"github.com/fsdevblog/groph-affiliate/internal/service"
	"github.com/gin-gonic/gin"
)

// PayoutTimeout отдельный, более щедрый таймаут для операций, которые ходят во
// внешний процессор.
const PayoutTimeout = 60 * time.Second

type PayoutsHandler struct {
	payoutSvs PayoutServicer
}

func NewPayoutsHandler(payoutSvs PayoutServicer) *PayoutsHandler {
	return &PayoutsHandler{
		payoutSvs: payoutSvs,
	}
}

type PayParams struct {
	CommissionIDs []int64 `json:"commission_ids"`
}

type CommissionPayoutResponse struct {
	CommissionID int64   `json:"commission_id"`
	Amount       float64 `json:"amount"`
	TransferID   string  `json:"transfer_id,omitempty"`
	AlreadyPaid  bool    `json:"already_paid,omitempty"`
	Skipped      bool    `json:"skipped,omitempty"`
	Error        string  `json:"error,omitempty"`
}

type PayoutRunResponse struct {
	Succeeded []CommissionPayoutResponse `json:"succeeded"`
	Failed    []CommissionPayoutResponse `json:"failed"`
	Skipped   []CommissionPayoutResponse `json:"skipped"`
	TotalPaid float64                    `json:"total_paid"`
}

// Pay POST RouteGroup + AffiliatePayoutsRoute.
// Ручной запуск выплат по аффилиату. Тело опционально: без него выплачиваются
// все approved комиссии, с commission_ids - пересечение с переданным списком.
func (h *PayoutsHandler) Pay(c *gin.Context) {
	affiliateID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var params PayParams
	if c.Request.ContentLength > 0 {
		if bindErr := c.ShouldBindJSON(&params); bindErr != nil {
			_ = c.AbortWithError(http.StatusBadRequest, bindErr).SetType(gin.ErrorTypeBind)
			return
		}
	}

	reqCtx, cancel := context.WithTimeout(c, PayoutTimeout)
	defer cancel()

	result, payErr := h.payoutSvs.PayCommissions(reqCtx, affiliateID, params.CommissionIDs, domain.InitiatorAdmin)
	if payErr != nil {
		h.abortWithPayoutError(c, payErr)
		return
	}

	c.JSON(http.StatusOK, newPayoutRunResponse(result))
}

// Retry POST RouteGroup + CommissionRetryRoute.
// Повторная попытка выплаты одной комиссии после ошибки трансфера.
func (h *PayoutsHandler) Retry(c *gin.Context) {
	commissionID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	reqCtx, cancel := context.WithTimeout(c, PayoutTimeout)
	defer cancel()

	payout, retryErr := h.payoutSvs.RetryPayout(reqCtx, commissionID)
	if retryErr != nil {
		h.abortWithPayoutError(c, retryErr)
		return
	}

	c.JSON(http.StatusOK, newCommissionPayoutResponse(*payout))
}

func (h *PayoutsHandler) abortWithPayoutError(c *gin.Context, err error) {
	var transitionErr *domain.InvalidTransitionError
	switch {
	case errors.Is(err, domain.ErrRecordNotFound):
		c.AbortWithStatus(http.StatusNotFound)
	case errors.Is(err, domain.ErrPayoutsDisabled),
		errors.Is(err, domain.ErrNoPayoutAccount),
		errors.Is(err, domain.ErrNoApprovedCommissions):
		_ = c.AbortWithError(http.StatusUnprocessableEntity, err).SetType(gin.ErrorTypePublic)
	case errors.As(err, &transitionErr):
		_ = c.AbortWithError(http.StatusConflict, err).SetType(gin.ErrorTypePublic)
	default:
		_ = c.AbortWithError(http.StatusInternalServerError, err).SetType(gin.ErrorTypePrivate)
	}
}

func newPayoutRunResponse(result *service.PayoutRunResult) PayoutRunResponse {
	response := PayoutRunResponse{
		Succeeded: make([]CommissionPayoutResponse, 0, len(result.Succeeded)),
		Failed:    make([]CommissionPayoutResponse, 0, len(result.Failed)),
		Skipped:   make([]CommissionPayoutResponse, 0, len(result.Skipped)),
		TotalPaid: result.TotalPaid.InexactFloat64(),
	}
	for _, payout := range result.Succeeded {
		response.Succeeded = append(response.Succeeded, newCommissionPayoutResponse(payout))
	}
	for _, payout := range result.Failed {
		response.Failed = append(response.Failed, newCommissionPayoutResponse(payout))
	}
	for _, payout := range result.Skipped {
		response.Skipped = append(response.Skipped, newCommissionPayoutResponse(payout))
	}
	return response
}

func newCommissionPayoutResponse(payout service.CommissionPayout) CommissionPayoutResponse {
	return CommissionPayoutResponse{
		CommissionID: payout.CommissionID,
		Amount:       payout.Amount.InexactFloat64(),
		TransferID:   payout.TransferID,
		AlreadyPaid:  payout.AlreadyPaid,
		Skipped:      payout.Skipped,
		Error:        payout.Error,
	}
}
