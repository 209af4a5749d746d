package service

import (
	"fmt"

	"github.com/fsdevblog/groph-affiliate/pkg/uow"
	"github.com/sirupsen/logrus"
)

type AppServices struct {
	CommissionService *CommissionService
	PayoutService     *PayoutService
	ReconcileService  *ReconcileService
	AffiliateService  *AffiliateService
}

func Factory(unitOfWork uow.UOW, gateway PayoutGateway, l *logrus.Logger) (*AppServices, error) {
	commissionService, commissionErr := NewCommissionService(unitOfWork, l)
	if commissionErr != nil {
		return nil, fmt.Errorf("service factory: %s", commissionErr.Error())
	}

	payoutService, payoutErr := NewPayoutService(unitOfWork, gateway, l)
	if payoutErr != nil {
		return nil, fmt.Errorf("service factory: %s", payoutErr.Error())
	}

	affiliateService, affiliateErr := NewAffiliateService(unitOfWork)
	if affiliateErr != nil {
		return nil, fmt.Errorf("service factory: %s", affiliateErr.Error())
	}

	return &AppServices{
		CommissionService: commissionService,
		PayoutService:     payoutService,
		ReconcileService:  NewReconcileService(unitOfWork, l),
		AffiliateService:  affiliateService,
	}, nil
}
