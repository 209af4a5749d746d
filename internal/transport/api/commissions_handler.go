package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/fsdevblog/groph-affiliate/internal/domain"
	"github.com/fsdevblog/groph-affiliate/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

type CommissionsHandler struct {
	commissionSvs CommissionServicer
}

func NewCommissionsHandler(commissionSvs CommissionServicer) *CommissionsHandler {
	return &CommissionsHandler{
		commissionSvs: commissionSvs,
	}
}

type CreateCommissionParams struct {
	AffiliateCode string          `json:"affiliate_code" binding:"required,max=32"`
	OrderID       int64           `json:"order_id" binding:"required,gt=0"`
	Amount        decimal.Decimal `json:"amount" binding:"required,decimal_positive"`
	Currency      string          `json:"currency" binding:"required,iso4217"`
}

// Create POST RouteGroup + CommissionsRoute.
// Вызывается подсистемой заказов при подтверждении заказа: регистрирует
// комиссию в pending. Сумму этот сервис не считает, она приходит готовой.
func (h *CommissionsHandler) Create(c *gin.Context) {
	var params CreateCommissionParams
	if bindErr := c.ShouldBindJSON(&params); bindErr != nil {
		_ = c.AbortWithError(http.StatusBadRequest, bindErr).SetType(gin.ErrorTypeBind)
		return
	}

	reqCtx, cancel := context.WithTimeout(c, DefaultServiceTimeout)
	defer cancel()

	commission, createErr := h.commissionSvs.Create(reqCtx, service.CreateCommissionArgs{
		AffiliateCode: params.AffiliateCode,
		OrderID:       params.OrderID,
		Amount:        params.Amount,
		Currency:      params.Currency,
	})
	if createErr != nil {
		var duplicateErr *domain.DuplicateCommissionError
		switch {
		case errors.As(createErr, &duplicateErr):
			c.AbortWithStatus(http.StatusConflict)
		case errors.Is(createErr, domain.ErrRecordNotFound):
			c.AbortWithStatus(http.StatusNotFound)
		default:
			_ = c.AbortWithError(http.StatusInternalServerError, createErr).SetType(gin.ErrorTypePrivate)
		}
		return
	}

	c.JSON(http.StatusCreated, newCommissionResponse(commission))
}

// Approve POST RouteGroup + CommissionApproveRoute.
func (h *CommissionsHandler) Approve(c *gin.Context) {
	h.transit(c, h.commissionSvs.Approve)
}

// Cancel POST RouteGroup + CommissionCancelRoute.
func (h *CommissionsHandler) Cancel(c *gin.Context) {
	h.transit(c, h.commissionSvs.Cancel)
}

// transit общий путь админских переходов статуса по id комиссии.
func (h *CommissionsHandler) transit(
	c *gin.Context,
	fn func(ctx context.Context, commissionID int64) (*domain.CommissionRecord, error),
) {
	commissionID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	reqCtx, cancel := context.WithTimeout(c, DefaultServiceTimeout)
	defer cancel()

	commission, err := fn(reqCtx, commissionID)
	if err != nil {
		var transitionErr *domain.InvalidTransitionError
		switch {
		case errors.Is(err, domain.ErrRecordNotFound):
			c.AbortWithStatus(http.StatusNotFound)
		case errors.As(err, &transitionErr):
			_ = c.AbortWithError(http.StatusConflict, err).SetType(gin.ErrorTypePublic)
		default:
			_ = c.AbortWithError(http.StatusInternalServerError, err).SetType(gin.ErrorTypePrivate)
		}
		return
	}

	c.JSON(http.StatusOK, newCommissionResponse(commission))
}
