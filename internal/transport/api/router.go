package api

import (
	"time"

	"github.com/fsdevblog/groph-affiliate/internal/transport/api/middlewares"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

const (
	DefaultServiceTimeout = 3 * time.Second
)

const (
	RouteGroup = "/api"

	CommissionsRoute = "/commissions"

	CommissionApproveRoute = "/admin/commissions/:id/approve"
	CommissionCancelRoute  = "/admin/commissions/:id/cancel"
	CommissionRetryRoute   = "/admin/commissions/:id/retry"

	AffiliatePayoutsRoute     = "/admin/affiliates/:id/payouts"
	AffiliateBalanceRoute     = "/admin/affiliates/:id/balance"
	AffiliateCommissionsRoute = "/admin/affiliates/:id/commissions"

	PayoutWebhookRoute = "/webhooks/payout"
)

type RouterArgs struct {
	Logger            *logrus.Logger
	CommissionService CommissionServicer
	PayoutService     PayoutServicer
	AffiliateService  AffiliateServicer
	ReconcileService  ReconcileServicer
	JWTSecretKey      []byte
	WebhookSecret     []byte
}

func New(args RouterArgs) (*gin.Engine, error) {
	if err := registerValidators(); err != nil {
		return nil, err
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middlewares.RequestID())
	if args.Logger != nil {
		r.Use(middlewares.Logger(args.Logger))
	}
	r.Use(middlewares.Errors())

	commissionsHandler := NewCommissionsHandler(args.CommissionService)
	payoutsHandler := NewPayoutsHandler(args.PayoutService)
	affiliatesHandler := NewAffiliatesHandler(args.AffiliateService, args.CommissionService)
	webhookHandler := NewWebhookHandler(args.ReconcileService, args.WebhookSecret, args.Logger)

	api := r.Group(RouteGroup)

	// Вебхук процессора аутентифицируется подписью тела, не JWT.
	api.POST(PayoutWebhookRoute, webhookHandler.Handle)

	api.Use(middlewares.AuthRequired(args.JWTSecretKey))
	// ниже все роуты группы требуют валидного админского токена.
	api.POST(CommissionsRoute, commissionsHandler.Create)
	api.POST(CommissionApproveRoute, commissionsHandler.Approve)
	api.POST(CommissionCancelRoute, commissionsHandler.Cancel)
	api.POST(CommissionRetryRoute, payoutsHandler.Retry)

	api.POST(AffiliatePayoutsRoute, payoutsHandler.Pay)
	api.GET(AffiliateBalanceRoute, affiliatesHandler.Balance)
	api.GET(AffiliateCommissionsRoute, affiliatesHandler.Commissions)

	return r, nil
}
