package service_test

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/fsdevblog/groph-affiliate/internal/domain"
	"github.com/fsdevblog/groph-affiliate/internal/repository/repoargs"
	"github.com/fsdevblog/groph-affiliate/internal/service"
	"github.com/fsdevblog/groph-affiliate/internal/service/mocks"
	"github.com/fsdevblog/groph-affiliate/pkg/uow"
	uowmocks "github.com/fsdevblog/groph-affiliate/pkg/uow/mocks"
	"github.com/golang/mock/gomock"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/suite"
)

type CommissionServiceTestSuite struct {
	suite.Suite
	mockCtrl           *gomock.Controller
	mockUOW            *uowmocks.MockUOW
	mockTX             *uowmocks.MockTX
	mockAffiliateRepo  *mocks.MockAffiliateRepository
	mockCommissionRepo *mocks.MockCommissionRepository
	service            *service.CommissionService
}

func TestCommissionServiceSuite(t *testing.T) {
	suite.Run(t, new(CommissionServiceTestSuite))
}

func (s *CommissionServiceTestSuite) SetupTest() {
	s.mockCtrl = gomock.NewController(s.T())
	s.mockUOW = uowmocks.NewMockUOW(s.mockCtrl)
	s.mockTX = uowmocks.NewMockTX(s.mockCtrl)
	s.mockAffiliateRepo = mocks.NewMockAffiliateRepository(s.mockCtrl)
	s.mockCommissionRepo = mocks.NewMockCommissionRepository(s.mockCtrl)

	// Репозитории, которые сервис запрашивает при инициализации.
	s.mockUOW.EXPECT().
		GetRepository(uow.RepositoryName(repoargs.CommissionRepoName)).
		Return(s.mockCommissionRepo, nil).AnyTimes()
	s.mockUOW.EXPECT().
		GetRepository(uow.RepositoryName(repoargs.AffiliateRepoName)).
		Return(s.mockAffiliateRepo, nil).AnyTimes()

	// Do прогоняет замыкание через мок транзакции.
	s.mockUOW.EXPECT().
		Do(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, fn func(context.Context, uow.TX) error) error {
			return fn(ctx, s.mockTX)
		}).AnyTimes()
	s.mockTX.EXPECT().
		Get(uow.RepositoryName(repoargs.AffiliateRepoName)).
		Return(s.mockAffiliateRepo, nil).AnyTimes()
	s.mockTX.EXPECT().
		Get(uow.RepositoryName(repoargs.CommissionRepoName)).
		Return(s.mockCommissionRepo, nil).AnyTimes()

	l := logrus.New()
	l.SetOutput(io.Discard)

	var err error
	s.service, err = service.NewCommissionService(s.mockUOW, l)
	s.Require().NoError(err)
}

func (s *CommissionServiceTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func (s *CommissionServiceTestSuite) TestCreate() {
	affiliate := &domain.Affiliate{
		ID:                42,
		Code:              "partner-1",
		PendingCommission: decimal.NewFromInt(100),
	}
	args := service.CreateCommissionArgs{
		AffiliateCode: affiliate.Code,
		OrderID:       1001,
		Amount:        decimal.NewFromInt(50),
		Currency:      "USD",
	}
	created := &domain.CommissionRecord{
		ID:          7,
		AffiliateID: affiliate.ID,
		OrderID:     args.OrderID,
		Amount:      args.Amount,
		Currency:    args.Currency,
		Status:      domain.CommissionStatusPending,
	}

	s.mockAffiliateRepo.EXPECT().FindByCode(gomock.Any(), affiliate.Code).Return(affiliate, nil)
	s.mockAffiliateRepo.EXPECT().GetByIDForUpdate(gomock.Any(), affiliate.ID).Return(affiliate, nil)
	s.mockCommissionRepo.EXPECT().Create(gomock.Any(), repoargs.CommissionCreate{
		AffiliateID: affiliate.ID,
		OrderID:     args.OrderID,
		Amount:      args.Amount,
		Currency:    args.Currency,
	}).Return(created, nil)

	// pending_commission растет на сумму комиссии в той же транзакции.
	s.mockAffiliateRepo.EXPECT().
		UpdateBalances(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, update repoargs.BalanceUpdate) (*domain.Affiliate, error) {
			s.True(update.PendingCommission.Equal(decimal.NewFromInt(150)))
			s.True(update.PaidCommission.Equal(decimal.Zero))
			return affiliate, nil
		})

	commission, err := s.service.Create(s.T().Context(), args)
	s.Require().NoError(err)
	s.Equal(created.ID, commission.ID)
	s.Equal(domain.CommissionStatusPending, commission.Status)
}

func (s *CommissionServiceTestSuite) TestCreate_Duplicate() {
	affiliate := &domain.Affiliate{ID: 42, Code: "partner-1"}

	s.mockAffiliateRepo.EXPECT().FindByCode(gomock.Any(), affiliate.Code).Return(affiliate, nil)
	s.mockAffiliateRepo.EXPECT().GetByIDForUpdate(gomock.Any(), affiliate.ID).Return(affiliate, nil)
	s.mockCommissionRepo.EXPECT().Create(gomock.Any(), gomock.Any()).
		Return(nil, domain.ErrDuplicateKey)

	_, err := s.service.Create(s.T().Context(), service.CreateCommissionArgs{
		AffiliateCode: affiliate.Code,
		OrderID:       1001,
		Amount:        decimal.NewFromInt(50),
		Currency:      "USD",
	})
	s.Require().Error(err)

	var duplicateErr *domain.DuplicateCommissionError
	s.Require().ErrorAs(err, &duplicateErr)
	s.Equal(affiliate.ID, duplicateErr.Commission.AffiliateID)
	s.Equal(int64(1001), duplicateErr.Commission.OrderID)
}

func (s *CommissionServiceTestSuite) TestCreate_UnknownCode() {
	s.mockAffiliateRepo.EXPECT().FindByCode(gomock.Any(), "missing").
		Return(nil, domain.ErrRecordNotFound)

	_, err := s.service.Create(s.T().Context(), service.CreateCommissionArgs{
		AffiliateCode: "missing",
		OrderID:       1,
		Amount:        decimal.NewFromInt(10),
		Currency:      "USD",
	})
	s.Require().ErrorIs(err, domain.ErrRecordNotFound)
}

func (s *CommissionServiceTestSuite) TestApprove() {
	amount := decimal.NewFromInt(30)
	commission := &domain.CommissionRecord{
		ID:          7,
		AffiliateID: 42,
		Amount:      amount,
		Status:      domain.CommissionStatusPending,
	}
	affiliate := &domain.Affiliate{
		ID:                42,
		PendingCommission: decimal.NewFromInt(100),
	}
	now := time.Now()
	approved := &domain.CommissionRecord{
		ID:          commission.ID,
		AffiliateID: commission.AffiliateID,
		Amount:      amount,
		Status:      domain.CommissionStatusApproved,
		ApprovedAt:  &now,
	}

	s.mockCommissionRepo.EXPECT().GetByIDForUpdate(gomock.Any(), commission.ID).Return(commission, nil)
	s.mockAffiliateRepo.EXPECT().GetByIDForUpdate(gomock.Any(), affiliate.ID).Return(affiliate, nil)
	s.mockCommissionRepo.EXPECT().
		UpdateStatus(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, args repoargs.CommissionStatusUpdate) (*domain.CommissionRecord, error) {
			s.Equal(commission.ID, args.ID)
			s.Equal(domain.CommissionStatusApproved, args.Status)
			s.NotNil(args.ApprovedAt)
			return approved, nil
		})
	s.mockAffiliateRepo.EXPECT().
		UpdateBalances(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, update repoargs.BalanceUpdate) (*domain.Affiliate, error) {
			s.True(update.PendingCommission.Equal(decimal.NewFromInt(70)))
			return affiliate, nil
		})

	result, err := s.service.Approve(s.T().Context(), commission.ID)
	s.Require().NoError(err)
	s.Equal(domain.CommissionStatusApproved, result.Status)
}

func (s *CommissionServiceTestSuite) TestApprove_ClampsAtZero() {
	// Сумма комиссии больше накопленного pending_commission: вычитание
	// упирается в пол, баланс становится нулем, а не отрицательным.
	commission := &domain.CommissionRecord{
		ID:          7,
		AffiliateID: 42,
		Amount:      decimal.NewFromInt(500),
		Status:      domain.CommissionStatusPending,
	}
	affiliate := &domain.Affiliate{
		ID:                42,
		PendingCommission: decimal.NewFromInt(100),
	}

	s.mockCommissionRepo.EXPECT().GetByIDForUpdate(gomock.Any(), commission.ID).Return(commission, nil)
	s.mockAffiliateRepo.EXPECT().GetByIDForUpdate(gomock.Any(), affiliate.ID).Return(affiliate, nil)
	s.mockCommissionRepo.EXPECT().UpdateStatus(gomock.Any(), gomock.Any()).Return(commission, nil)
	s.mockAffiliateRepo.EXPECT().
		UpdateBalances(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, update repoargs.BalanceUpdate) (*domain.Affiliate, error) {
			s.True(update.PendingCommission.IsZero())
			return affiliate, nil
		})

	_, err := s.service.Approve(s.T().Context(), commission.ID)
	s.Require().NoError(err)
}

func (s *CommissionServiceTestSuite) TestApprove_InvalidTransition() {
	commission := &domain.CommissionRecord{
		ID:     7,
		Status: domain.CommissionStatusPaid,
	}

	s.mockCommissionRepo.EXPECT().GetByIDForUpdate(gomock.Any(), commission.ID).Return(commission, nil)

	_, err := s.service.Approve(s.T().Context(), commission.ID)
	s.Require().Error(err)

	var transitionErr *domain.InvalidTransitionError
	s.Require().ErrorAs(err, &transitionErr)
	s.Equal(domain.CommissionStatusPaid, transitionErr.From)
	s.Equal(domain.CommissionStatusApproved, transitionErr.To)
}

func (s *CommissionServiceTestSuite) TestCancel_Pending() {
	commission := &domain.CommissionRecord{
		ID:          7,
		AffiliateID: 42,
		Amount:      decimal.NewFromInt(30),
		Status:      domain.CommissionStatusPending,
	}
	affiliate := &domain.Affiliate{
		ID:                42,
		PendingCommission: decimal.NewFromInt(100),
	}

	s.mockCommissionRepo.EXPECT().GetByIDForUpdate(gomock.Any(), commission.ID).Return(commission, nil)
	s.mockCommissionRepo.EXPECT().UpdateStatus(gomock.Any(), repoargs.CommissionStatusUpdate{
		ID:     commission.ID,
		Status: domain.CommissionStatusCancelled,
	}).Return(commission, nil)
	s.mockAffiliateRepo.EXPECT().GetByIDForUpdate(gomock.Any(), affiliate.ID).Return(affiliate, nil)
	s.mockAffiliateRepo.EXPECT().
		UpdateBalances(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, update repoargs.BalanceUpdate) (*domain.Affiliate, error) {
			s.True(update.PendingCommission.Equal(decimal.NewFromInt(70)))
			return affiliate, nil
		})

	_, err := s.service.Cancel(s.T().Context(), commission.ID)
	s.Require().NoError(err)
}

func (s *CommissionServiceTestSuite) TestCancel_Approved_NoBalanceChange() {
	// approved комиссия не учтена ни в одном балансовом поле, отмена статуса
	// балансы не трогает.
	commission := &domain.CommissionRecord{
		ID:          7,
		AffiliateID: 42,
		Amount:      decimal.NewFromInt(30),
		Status:      domain.CommissionStatusApproved,
	}

	s.mockCommissionRepo.EXPECT().GetByIDForUpdate(gomock.Any(), commission.ID).Return(commission, nil)
	s.mockCommissionRepo.EXPECT().UpdateStatus(gomock.Any(), repoargs.CommissionStatusUpdate{
		ID:     commission.ID,
		Status: domain.CommissionStatusCancelled,
	}).Return(commission, nil)

	_, err := s.service.Cancel(s.T().Context(), commission.ID)
	s.Require().NoError(err)
}
