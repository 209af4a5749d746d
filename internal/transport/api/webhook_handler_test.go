package api

import (
	"bytes"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"io"
	"net/http"
	"testing"

	"github.com/fsdevblog/groph-affiliate/internal/domain"
	"github.com/fsdevblog/groph-affiliate/internal/logger"
	"github.com/fsdevblog/groph-affiliate/internal/transport/api/mocks"
	"github.com/fsdevblog/groph-affiliate/internal/transport/api/testutils"
	"github.com/gin-gonic/gin"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/suite"
)

type WebhookHandlerTestSuite struct {
	suite.Suite
	router               *gin.Engine
	mockReconcileService *mocks.MockReconcileServicer
	webhookSecret        []byte
}

func TestWebhookHandlerSuite(t *testing.T) {
	suite.Run(t, new(WebhookHandlerTestSuite))
}

func (s *WebhookHandlerTestSuite) SetupTest() {
	mockCtrl := gomock.NewController(s.T())
	defer mockCtrl.Finish()

	s.mockReconcileService = mocks.NewMockReconcileServicer(mockCtrl)
	s.webhookSecret = []byte("webhook secret")

	var err error
	s.router, err = New(RouterArgs{
		Logger:           logger.New(io.Discard),
		ReconcileService: s.mockReconcileService,
		JWTSecretKey:     []byte("jwt secret"),
		WebhookSecret:    s.webhookSecret,
	})
	s.Require().NoError(err)
}

func (s *WebhookHandlerTestSuite) sign(body []byte) string {
	mac := hmac.New(sha256.New, s.webhookSecret)
	mac.Write(body)
	return hex.EncodeToString(mac.Sum(nil))
}

func (s *WebhookHandlerTestSuite) deliver(body []byte, signature string) *http.Response {
	args := testutils.RequestArgs{
		Router: s.router,
		Method: http.MethodPost,
		URL:    RouteGroup + PayoutWebhookRoute,
		Body:   bytes.NewReader(body),
	}
	reqOpts := []func(*testutils.RequestOptions){
		testutils.WithHeader("Content-Type", "application/json"),
	}
	if signature != "" {
		reqOpts = append(reqOpts, testutils.WithHeader(SignatureHeader, signature))
	}
	res, err := testutils.MakeRequest(args, reqOpts...)
	s.Require().NoError(err)
	return res
}

func (s *WebhookHandlerTestSuite) TestTransferCreated() {
	body := []byte(`{"type":"transfer.created","data":{"transfer_id":"tr_123","metadata":{"commission_id":7}}}`)

	s.mockReconcileService.EXPECT().
		ApplyTransferEvent(gomock.Any(), domain.TransferCreatedEvent{
			TransferID:   "tr_123",
			CommissionID: 7,
		}).
		Return(nil)

	res := s.deliver(body, s.sign(body))
	defer func() { s.Require().NoError(res.Body.Close()) }()

	s.Equal(http.StatusOK, res.StatusCode)
}

func (s *WebhookHandlerTestSuite) TestTransferReversed() {
	body := []byte(`{"type":"transfer.reversed","data":{"transfer_id":"tr_123","reason":"chargeback","metadata":{"commission_id":7}}}`)

	s.mockReconcileService.EXPECT().
		ApplyTransferEvent(gomock.Any(), domain.TransferReversedEvent{
			TransferID:   "tr_123",
			CommissionID: 7,
			Reason:       "chargeback",
		}).
		Return(nil)

	res := s.deliver(body, s.sign(body))
	defer func() { s.Require().NoError(res.Body.Close()) }()

	s.Equal(http.StatusOK, res.StatusCode)
}

// Неверная или отсутствующая подпись отклоняется до разбора тела; сервис не
// вызывается вовсе.
func (s *WebhookHandlerTestSuite) TestRejectsBadSignature() {
	body := []byte(`{"type":"transfer.created","data":{"transfer_id":"tr_123"}}`)

	cases := []struct {
		name      string
		signature string
	}{
		{name: "no signature", signature: ""},
		{name: "wrong signature", signature: s.sign([]byte("other body"))},
		{name: "not hex", signature: "zzzz"},
	}
	for _, t := range cases {
		s.Run(t.name, func() {
			res := s.deliver(body, t.signature)
			defer func() { s.Require().NoError(res.Body.Close()) }()
			s.Equal(http.StatusBadRequest, res.StatusCode)
		})
	}
}

func (s *WebhookHandlerTestSuite) TestRejectsMalformedEvents() {
	cases := []struct {
		name string
		body []byte
	}{
		{name: "unknown event type", body: []byte(`{"type":"transfer.updated","data":{"transfer_id":"tr_1"}}`)},
		{name: "missing transfer id", body: []byte(`{"type":"transfer.created","data":{}}`)},
		{name: "not json", body: []byte(`not json at all`)},
	}
	for _, t := range cases {
		s.Run(t.name, func() {
			res := s.deliver(t.body, s.sign(t.body))
			defer func() { s.Require().NoError(res.Body.Close()) }()
			s.Equal(http.StatusBadRequest, res.StatusCode)
		})
	}
}

// Неизвестная комиссия подтверждается 200: повторная доставка того же события
// ситуацию не исправит.
func (s *WebhookHandlerTestSuite) TestUnknownCommissionAcknowledged() {
	body := []byte(`{"type":"transfer.created","data":{"transfer_id":"tr_ghost"}}`)

	s.mockReconcileService.EXPECT().
		ApplyTransferEvent(gomock.Any(), gomock.Any()).
		Return(domain.ErrRecordNotFound)

	res := s.deliver(body, s.sign(body))
	defer func() { s.Require().NoError(res.Body.Close()) }()

	s.Equal(http.StatusOK, res.StatusCode)
}

// Любая другая ошибка применения - 500, процессор обязан доставить событие
// повторно.
func (s *WebhookHandlerTestSuite) TestRetriableFailure() {
	body := []byte(`{"type":"transfer.reversed","data":{"transfer_id":"tr_123","metadata":{"commission_id":7}}}`)

	s.mockReconcileService.EXPECT().
		ApplyTransferEvent(gomock.Any(), gomock.Any()).
		Return(errors.New("database unavailable"))

	res := s.deliver(body, s.sign(body))
	defer func() { s.Require().NoError(res.Body.Close()) }()

	s.Equal(http.StatusInternalServerError, res.StatusCode)
}
