package api

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"testing"
	"time"

	"github.com/fsdevblog/groph-affiliate/internal/domain"
	"github.com/fsdevblog/groph-affiliate/internal/logger"
	"github.com/fsdevblog/groph-affiliate/internal/service"
	"github.com/fsdevblog/groph-affiliate/internal/service/tokens"
	"github.com/fsdevblog/groph-affiliate/internal/transport/api/mocks"
	"github.com/fsdevblog/groph-affiliate/internal/transport/api/testutils"
	"github.com/gin-gonic/gin"
	"github.com/golang/mock/gomock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

type PayoutsHandlerTestSuite struct {
	suite.Suite
	router            *gin.Engine
	mockPayoutService *mocks.MockPayoutServicer
	adminToken        string
}

func TestPayoutsHandlerSuite(t *testing.T) {
	suite.Run(t, new(PayoutsHandlerTestSuite))
}

func (s *PayoutsHandlerTestSuite) SetupTest() {
	mockCtrl := gomock.NewController(s.T())
	defer mockCtrl.Finish()

	s.mockPayoutService = mocks.NewMockPayoutServicer(mockCtrl)
	jwtSecret := []byte("super secret key")

	token, tokenErr := tokens.GenerateAdminJWT("admin", time.Hour, jwtSecret)
	s.Require().NoError(tokenErr)
	s.adminToken = token

	var err error
	s.router, err = New(RouterArgs{
		Logger:        logger.New(io.Discard),
		PayoutService: s.mockPayoutService,
		JWTSecretKey:  jwtSecret,
		WebhookSecret: []byte("webhook secret"),
	})
	s.Require().NoError(err)
}

func (s *PayoutsHandlerTestSuite) makeRequest(url string, body []byte) *http.Response {
	args := testutils.RequestArgs{
		Router: s.router,
		Method: http.MethodPost,
		URL:    url,
		Body:   bytes.NewReader(body),
	}
	res, err := testutils.MakeRequest(args,
		testutils.WithHeader("Content-Type", "application/json"),
		testutils.WithHeader("Authorization", "Bearer "+s.adminToken),
	)
	s.Require().NoError(err)
	return res
}

func (s *PayoutsHandlerTestSuite) TestPay() {
	runResult := &service.PayoutRunResult{
		Succeeded: []service.CommissionPayout{
			{CommissionID: 1, Amount: decimal.NewFromInt(10), TransferID: "tr_1"},
			{CommissionID: 2, Amount: decimal.NewFromInt(20), TransferID: "tr_2"},
		},
		Failed: []service.CommissionPayout{
			{CommissionID: 3, Amount: decimal.NewFromInt(30), Error: "processor unavailable"},
		},
		TotalPaid: decimal.NewFromInt(30),
	}

	s.mockPayoutService.EXPECT().
		PayCommissions(gomock.Any(), int64(42), gomock.Nil(), domain.InitiatorAdmin).
		Return(runResult, nil)

	res := s.makeRequest(RouteGroup+"/admin/affiliates/42/payouts", nil)
	defer func() { s.Require().NoError(res.Body.Close()) }()

	s.Equal(http.StatusOK, res.StatusCode)

	var response PayoutRunResponse
	s.Require().NoError(json.NewDecoder(res.Body).Decode(&response))
	s.Len(response.Succeeded, 2)
	s.Require().Len(response.Failed, 1)
	s.Equal("processor unavailable", response.Failed[0].Error)
	s.InDelta(30, response.TotalPaid, 0.001)
}

// Ручной запуск с выборочным списком комиссий.
func (s *PayoutsHandlerTestSuite) TestPay_SelectedCommissions() {
	s.mockPayoutService.EXPECT().
		PayCommissions(gomock.Any(), int64(42), []int64{7, 8}, domain.InitiatorAdmin).
		Return(&service.PayoutRunResult{TotalPaid: decimal.Zero}, nil)

	res := s.makeRequest(RouteGroup+"/admin/affiliates/42/payouts", []byte(`{"commission_ids":[7,8]}`))
	defer func() { s.Require().NoError(res.Body.Close()) }()

	s.Equal(http.StatusOK, res.StatusCode)
}

func (s *PayoutsHandlerTestSuite) TestPay_Errors() {
	s.mockPayoutService.EXPECT().
		PayCommissions(gomock.Any(), int64(1), gomock.Nil(), domain.InitiatorAdmin).
		Return(nil, domain.ErrPayoutsDisabled)
	s.mockPayoutService.EXPECT().
		PayCommissions(gomock.Any(), int64(2), gomock.Nil(), domain.InitiatorAdmin).
		Return(nil, domain.ErrNoPayoutAccount)
	s.mockPayoutService.EXPECT().
		PayCommissions(gomock.Any(), int64(3), gomock.Nil(), domain.InitiatorAdmin).
		Return(nil, domain.ErrNoApprovedCommissions)
	s.mockPayoutService.EXPECT().
		PayCommissions(gomock.Any(), int64(4), gomock.Nil(), domain.InitiatorAdmin).
		Return(nil, domain.ErrRecordNotFound)

	cases := []struct {
		name       string
		url        string
		wantStatus int
	}{
		{name: "payouts disabled", url: "/admin/affiliates/1/payouts", wantStatus: http.StatusUnprocessableEntity},
		{name: "no payout account", url: "/admin/affiliates/2/payouts", wantStatus: http.StatusUnprocessableEntity},
		{name: "nothing to pay", url: "/admin/affiliates/3/payouts", wantStatus: http.StatusUnprocessableEntity},
		{name: "unknown affiliate", url: "/admin/affiliates/4/payouts", wantStatus: http.StatusNotFound},
		{name: "bad id", url: "/admin/affiliates/abc/payouts", wantStatus: http.StatusBadRequest},
	}
	for _, t := range cases {
		s.Run(t.name, func() {
			res := s.makeRequest(RouteGroup+t.url, nil)
			defer func() { s.Require().NoError(res.Body.Close()) }()
			s.Equal(t.wantStatus, res.StatusCode)
		})
	}
}

func (s *PayoutsHandlerTestSuite) TestRetry() {
	payout := &service.CommissionPayout{
		CommissionID: 7,
		Amount:       decimal.NewFromInt(25),
		TransferID:   "tr_retry",
	}

	s.mockPayoutService.EXPECT().RetryPayout(gomock.Any(), int64(7)).Return(payout, nil)

	res := s.makeRequest(RouteGroup+"/admin/commissions/7/retry", nil)
	defer func() { s.Require().NoError(res.Body.Close()) }()

	s.Equal(http.StatusOK, res.StatusCode)

	var response CommissionPayoutResponse
	s.Require().NoError(json.NewDecoder(res.Body).Decode(&response))
	s.Equal("tr_retry", response.TransferID)
	s.False(response.AlreadyPaid)
}

// Повтор по выплаченной комиссии возвращает already_paid, не ошибку.
func (s *PayoutsHandlerTestSuite) TestRetry_AlreadyPaid() {
	payout := &service.CommissionPayout{
		CommissionID: 7,
		Amount:       decimal.NewFromInt(25),
		TransferID:   "tr_done",
		AlreadyPaid:  true,
	}

	s.mockPayoutService.EXPECT().RetryPayout(gomock.Any(), int64(7)).Return(payout, nil)

	res := s.makeRequest(RouteGroup+"/admin/commissions/7/retry", nil)
	defer func() { s.Require().NoError(res.Body.Close()) }()

	s.Equal(http.StatusOK, res.StatusCode)

	var response CommissionPayoutResponse
	s.Require().NoError(json.NewDecoder(res.Body).Decode(&response))
	s.True(response.AlreadyPaid)
}

func (s *PayoutsHandlerTestSuite) TestRetry_InvalidTransition() {
	s.mockPayoutService.EXPECT().RetryPayout(gomock.Any(), int64(9)).
		Return(nil, &domain.InvalidTransitionError{
			From: domain.CommissionStatusPending,
			To:   domain.CommissionStatusPaid,
		})

	res := s.makeRequest(RouteGroup+"/admin/commissions/9/retry", nil)
	defer func() { s.Require().NoError(res.Body.Close()) }()

	s.Equal(http.StatusConflict, res.StatusCode)
}
