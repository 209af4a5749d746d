package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"testing"
	"time"

	"github.com/brianvoe/gofakeit/v7"
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

type CommissionsHandlerTestSuite struct {
	suite.Suite
	router                *gin.Engine
	mockCommissionService *mocks.MockCommissionServicer
	jwtSecret             []byte
	adminToken            string
}

func TestCommissionsHandlerSuite(t *testing.T) {
	suite.Run(t, new(CommissionsHandlerTestSuite))
}

func (s *CommissionsHandlerTestSuite) SetupTest() {
	mockCtrl := gomock.NewController(s.T())
	defer mockCtrl.Finish()

	s.mockCommissionService = mocks.NewMockCommissionServicer(mockCtrl)
	s.jwtSecret = []byte("super secret key")

	token, tokenErr := tokens.GenerateAdminJWT("admin", time.Hour, s.jwtSecret)
	s.Require().NoError(tokenErr)
	s.adminToken = token

	var err error
	s.router, err = New(RouterArgs{
		Logger:            logger.New(io.Discard),
		CommissionService: s.mockCommissionService,
		JWTSecretKey:      s.jwtSecret,
		WebhookSecret:     []byte("webhook secret"),
	})
	s.Require().NoError(err)
}

func (s *CommissionsHandlerTestSuite) makeRequest(method, url string, body []byte, withAuth bool) *http.Response {
	args := testutils.RequestArgs{
		Router: s.router,
		Method: method,
		URL:    url,
		Body:   bytes.NewReader(body),
	}
	reqOpts := []func(*testutils.RequestOptions){
		testutils.WithHeader("Content-Type", "application/json"),
	}
	if withAuth {
		reqOpts = append(reqOpts, testutils.WithHeader("Authorization", "Bearer "+s.adminToken))
	}
	res, err := testutils.MakeRequest(args, reqOpts...)
	s.Require().NoError(err)
	return res
}

func (s *CommissionsHandlerTestSuite) TestCreate() {
	affiliateCode := gofakeit.Username()
	orderID := int64(gofakeit.Number(1, 1_000_000))
	// Сумма из JSON парсится decimal.NewFromString, ожидание должно иметь ту
	// же внутреннюю экспоненту, иначе DeepEqual в gomock не совпадет.
	amount := decimal.RequireFromString("25.50")

	created := &domain.CommissionRecord{
		ID:          7,
		AffiliateID: 42,
		OrderID:     orderID,
		Amount:      amount,
		Currency:    "USD",
		Status:      domain.CommissionStatusPending,
		CreatedAt:   time.Now(),
	}

	s.mockCommissionService.EXPECT().
		Create(gomock.Any(), service.CreateCommissionArgs{
			AffiliateCode: affiliateCode,
			OrderID:       orderID,
			Amount:        amount,
			Currency:      "USD",
		}).
		Return(created, nil)

	payload := fmt.Sprintf(
		`{"affiliate_code":%q,"order_id":%d,"amount":25.50,"currency":"USD"}`,
		affiliateCode, orderID)

	res := s.makeRequest(http.MethodPost, RouteGroup+CommissionsRoute, []byte(payload), true)
	defer func() { s.Require().NoError(res.Body.Close()) }()

	s.Equal(http.StatusCreated, res.StatusCode)

	var response CommissionResponse
	s.Require().NoError(json.NewDecoder(res.Body).Decode(&response))
	s.Equal(created.ID, response.ID)
	s.Equal(string(domain.CommissionStatusPending), response.Status)
	s.InDelta(25.50, response.Amount, 0.001)
}

func (s *CommissionsHandlerTestSuite) TestCreate_Errors() {
	duplicatePayload := []byte(`{"affiliate_code":"partner-1","order_id":1,"amount":10,"currency":"USD"}`)
	unknownPayload := []byte(`{"affiliate_code":"ghost","order_id":2,"amount":10,"currency":"USD"}`)

	s.mockCommissionService.EXPECT().
		Create(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, args service.CreateCommissionArgs) (*domain.CommissionRecord, error) {
			if args.AffiliateCode == "ghost" {
				return nil, domain.ErrRecordNotFound
			}
			return nil, domain.NewDuplicateCommissionError(&domain.CommissionRecord{OrderID: args.OrderID})
		}).Times(2)

	cases := []struct {
		name       string
		payload    []byte
		withAuth   bool
		wantStatus int
	}{
		{name: "duplicate order", payload: duplicatePayload, withAuth: true, wantStatus: http.StatusConflict},
		{name: "unknown affiliate code", payload: unknownPayload, withAuth: true, wantStatus: http.StatusNotFound},
		{
			name:       "negative amount",
			payload:    []byte(`{"affiliate_code":"partner-1","order_id":1,"amount":-5,"currency":"USD"}`),
			withAuth:   true,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "bad currency",
			payload:    []byte(`{"affiliate_code":"partner-1","order_id":1,"amount":10,"currency":"DOLLARS"}`),
			withAuth:   true,
			wantStatus: http.StatusBadRequest,
		},
		{name: "not authorized", payload: duplicatePayload, withAuth: false, wantStatus: http.StatusUnauthorized},
	}
	for _, t := range cases {
		s.Run(t.name, func() {
			res := s.makeRequest(http.MethodPost, RouteGroup+CommissionsRoute, t.payload, t.withAuth)
			defer func() { s.Require().NoError(res.Body.Close()) }()
			s.Equal(t.wantStatus, res.StatusCode)
		})
	}
}

func (s *CommissionsHandlerTestSuite) TestApprove() {
	approved := &domain.CommissionRecord{
		ID:        7,
		Status:    domain.CommissionStatusApproved,
		Amount:    decimal.NewFromInt(10),
		CreatedAt: time.Now(),
	}

	s.mockCommissionService.EXPECT().Approve(gomock.Any(), int64(7)).Return(approved, nil)
	s.mockCommissionService.EXPECT().Approve(gomock.Any(), int64(404)).
		Return(nil, domain.ErrRecordNotFound)
	s.mockCommissionService.EXPECT().Approve(gomock.Any(), int64(9)).
		Return(nil, &domain.InvalidTransitionError{
			From: domain.CommissionStatusPaid,
			To:   domain.CommissionStatusApproved,
		})

	cases := []struct {
		name       string
		id         string
		wantStatus int
	}{
		{name: "all ok", id: "7", wantStatus: http.StatusOK},
		{name: "not found", id: "404", wantStatus: http.StatusNotFound},
		{name: "invalid transition", id: "9", wantStatus: http.StatusConflict},
		{name: "bad id", id: "abc", wantStatus: http.StatusBadRequest},
	}
	for _, t := range cases {
		s.Run(t.name, func() {
			url := RouteGroup + "/admin/commissions/" + t.id + "/approve"
			res := s.makeRequest(http.MethodPost, url, nil, true)
			defer func() { s.Require().NoError(res.Body.Close()) }()
			s.Equal(t.wantStatus, res.StatusCode)
		})
	}
}

func (s *CommissionsHandlerTestSuite) TestCancel() {
	cancelled := &domain.CommissionRecord{
		ID:        7,
		Status:    domain.CommissionStatusCancelled,
		Amount:    decimal.NewFromInt(10),
		CreatedAt: time.Now(),
	}

	s.mockCommissionService.EXPECT().Cancel(gomock.Any(), int64(7)).Return(cancelled, nil)

	res := s.makeRequest(http.MethodPost, RouteGroup+"/admin/commissions/7/cancel", nil, true)
	defer func() { s.Require().NoError(res.Body.Close()) }()

	s.Equal(http.StatusOK, res.StatusCode)

	var response CommissionResponse
	s.Require().NoError(json.NewDecoder(res.Body).Decode(&response))
	s.Equal(string(domain.CommissionStatusCancelled), response.Status)
}
