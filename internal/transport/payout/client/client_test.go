package client

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
)

type ClientTestSuite struct {
	suite.Suite
	server *httptest.Server
}

func TestClientSuite(t *testing.T) {
	suite.Run(t, new(ClientTestSuite))
}

func (s *ClientTestSuite) TearDownTest() {
	if s.server != nil {
		s.server.Close()
	}
}

func (s *ClientTestSuite) TestCreateTransfer() {
	request := TransferRequest{
		DestinationAccountID: "acct_123",
		AmountMinorUnits:     2500,
		Currency:             "USD",
		CommissionID:         7,
		IdempotencyKey:       "commission_payout_7",
	}

	s.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.Equal(http.MethodPost, r.Method)
		s.Equal(RouteTransfers, r.URL.Path)
		// ключ идемпотентности обязан уходить в заголовке каждого запроса
		s.Equal(request.IdempotencyKey, r.Header.Get(IdempotencyKeyHeader))
		s.Equal("application/json", r.Header.Get("Content-Type"))

		var body transferRequestBody
		s.Require().NoError(json.NewDecoder(r.Body).Decode(&body))
		s.Equal(request.DestinationAccountID, body.Destination)
		s.Equal(request.AmountMinorUnits, body.Amount)
		s.Equal(request.Currency, body.Currency)
		s.Equal(request.CommissionID, body.Metadata.CommissionID)

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		s.Require().NoError(json.NewEncoder(w).Encode(Transfer{ID: "tr_123", Status: "processing"}))
	}))

	c := New(s.server.URL)
	transfer, err := c.CreateTransfer(s.T().Context(), request)
	s.Require().NoError(err)
	s.Equal("tr_123", transfer.ID)
	s.Equal("processing", transfer.Status)
}

func (s *ClientTestSuite) TestCreateTransfer_TooManyRequests() {
	s.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Retry-After", "30")
		w.WriteHeader(http.StatusTooManyRequests)
	}))

	c := New(s.server.URL)
	_, err := c.CreateTransfer(s.T().Context(), TransferRequest{CommissionID: 1})

	var tooManyErr *TooManyRequestError
	s.Require().ErrorAs(err, &tooManyErr)
	s.Equal(30*time.Second, tooManyErr.RetryAfter)
}

func (s *ClientTestSuite) TestCreateTransfer_UnexpectedStatus() {
	s.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "destination account frozen", http.StatusUnprocessableEntity)
	}))

	c := New(s.server.URL)
	_, err := c.CreateTransfer(s.T().Context(), TransferRequest{CommissionID: 1})

	var statusErr *StatusCodeError
	s.Require().ErrorAs(err, &statusErr)
	s.Equal(http.StatusUnprocessableEntity, statusErr.Code)
	s.Contains(statusErr.Body, "destination account frozen")
}

func (s *ClientTestSuite) TestParseRetryAfter() {
	tests := []struct {
		header string
		want   time.Duration
	}{
		{header: "5", want: 5 * time.Second},
		{header: "120", want: 120 * time.Second},
		// вне диапазона и мусор падают в значение по умолчанию
		{header: "0", want: 60 * time.Second},
		{header: "500", want: 60 * time.Second},
		{header: "", want: 60 * time.Second},
		{header: "not-a-number", want: 60 * time.Second},
	}
	for _, tt := range tests {
		s.Equal(tt.want, parseRetryAfter(tt.header), "header %q", tt.header)
	}
}
