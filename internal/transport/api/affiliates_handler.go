package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/fsdevblog/groph-affiliate/internal/domain"
	"github.com/fsdevblog/groph-affiliate/internal/service"
	"github.com/gin-gonic/gin"
)

type AffiliatesHandler struct {
	affiliateSvs  AffiliateServicer
	commissionSvs CommissionServicer
}

func NewAffiliatesHandler(affiliateSvs AffiliateServicer, commissionSvs CommissionServicer) *AffiliatesHandler {
	return &AffiliatesHandler{
		affiliateSvs:  affiliateSvs,
		commissionSvs: commissionSvs,
	}
}

type BalanceResponse struct {
	AffiliateID    int64  `json:"affiliate_id"`
	Code           string `json:"code"`
	PayoutsEnabled bool   `json:"payouts_enabled"`

	PendingCommission float64 `json:"pending_commission"`
	PaidCommission    float64 `json:"paid_commission"`
	TotalPaidOut      float64 `json:"total_paid_out"`

	DerivedPending  float64 `json:"derived_pending"`
	DerivedApproved float64 `json:"derived_approved"`
	DerivedPaid     float64 `json:"derived_paid"`
}

// Balance GET RouteGroup + AffiliateBalanceRoute.
// Отдает кэшированные балансы и пересчитанные по записям комиссий суммы рядом,
// чтобы расхождение было видно в одном ответе.
func (h *AffiliatesHandler) Balance(c *gin.Context) {
	affiliateID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	reqCtx, cancel := context.WithTimeout(c, DefaultServiceTimeout)
	defer cancel()

	balance, err := h.affiliateSvs.GetBalance(reqCtx, affiliateID)
	if err != nil {
		if errors.Is(err, domain.ErrRecordNotFound) {
			c.AbortWithStatus(http.StatusNotFound)
			return
		}
		_ = c.AbortWithError(http.StatusInternalServerError, err).SetType(gin.ErrorTypePrivate)
		return
	}

	c.JSON(http.StatusOK, newBalanceResponse(balance))
}

// Commissions GET RouteGroup + AffiliateCommissionsRoute.
func (h *AffiliatesHandler) Commissions(c *gin.Context) {
	affiliateID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	reqCtx, cancel := context.WithTimeout(c, DefaultServiceTimeout)
	defer cancel()

	commissions, err := h.commissionSvs.GetByAffiliate(reqCtx, affiliateID)
	if err != nil {
		if errors.Is(err, domain.ErrRecordNotFound) {
			c.AbortWithStatus(http.StatusNotFound)
			return
		}
		_ = c.AbortWithError(http.StatusInternalServerError, err).SetType(gin.ErrorTypePrivate)
		return
	}

	response := make([]CommissionResponse, 0, len(commissions))
	for i := range commissions {
		response = append(response, newCommissionResponse(&commissions[i]))
	}
	c.JSON(http.StatusOK, response)
}

func newBalanceResponse(balance *service.AffiliateBalance) BalanceResponse {
	return BalanceResponse{
		AffiliateID:       balance.Affiliate.ID,
		Code:              balance.Affiliate.Code,
		PayoutsEnabled:    balance.Affiliate.PayoutsEnabled,
		PendingCommission: balance.Affiliate.PendingCommission.InexactFloat64(),
		PaidCommission:    balance.Affiliate.PaidCommission.InexactFloat64(),
		TotalPaidOut:      balance.Affiliate.TotalPaidOut.InexactFloat64(),
		DerivedPending:    balance.Derived.PendingAmount.InexactFloat64(),
		DerivedApproved:   balance.Derived.ApprovedAmount.InexactFloat64(),
		DerivedPaid:       balance.Derived.PaidAmount.InexactFloat64(),
	}
}
