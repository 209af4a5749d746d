package client

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
)

const RouteTransfers = "/api/transfers"

const IdempotencyKeyHeader = "Idempotency-Key"

// Константы минимального и максимального значения в заголовке Retry-After.
const (
	minRetryAfter = 1
	maxRetryAfter = 120
)

// TransferRequest запрос на создание трансфера у процессора выплат. Сумма
// передается в минорных единицах валюты.
type TransferRequest struct {
	DestinationAccountID string
	AmountMinorUnits     int64
	Currency             string
	CommissionID         int64
	IdempotencyKey       string
}

type transferRequestBody struct {
	Destination string           `json:"destination"`
	Amount      int64            `json:"amount"`
	Currency    string           `json:"currency"`
	Metadata    transferMetadata `json:"metadata"`
}

type transferMetadata struct {
	CommissionID int64 `json:"commission_id"`
}

// Transfer объект трансфера на стороне процессора.
type Transfer struct {
	ID     string `json:"id"`
	Status string `json:"status,omitempty"`
}

// HTTPClient является реализацией интерфейса payout.Client для HTTP запросов к
// процессору выплат.
type HTTPClient struct {
	baseURL    string
	httpClient *http.Client
}

func New(baseURL string) HTTPClient {
	return HTTPClient{
		baseURL:    baseURL,
		httpClient: http.DefaultClient,
	}
}

// CreateTransfer создает трансфер. Ключ идемпотентности уходит процессору в
// заголовке, поэтому сетевой повтор того же логического запроса (в том числе
// после рестарта процесса) дедуплицируется на его стороне.
// При ответе со статусом отличным от 2xx возвращает ошибку *StatusCodeError,
// или *TooManyRequestError в случае http.StatusTooManyRequests.
//
//nolint:nonamedreturns
func (c HTTPClient) CreateTransfer(
	ctx context.Context,
	request TransferRequest,
) (transfer *Transfer, err error) {
	body, marshalErr := json.Marshal(transferRequestBody{
		Destination: request.DestinationAccountID,
		Amount:      request.AmountMinorUnits,
		Currency:    request.Currency,
		Metadata:    transferMetadata{CommissionID: request.CommissionID},
	})
	if marshalErr != nil {
		return nil, errors.Wrap(marshalErr, "marshal request")
	}

	req, reqErr := http.NewRequestWithContext(
		ctx, http.MethodPost, c.baseURL+RouteTransfers, bytes.NewReader(body))
	if reqErr != nil {
		return nil, errors.Wrap(reqErr, "create request")
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(IdempotencyKeyHeader, request.IdempotencyKey)

	resp, doErr := c.httpClient.Do(req)
	if doErr != nil {
		return nil, errors.Wrap(doErr, "do request")
	}

	defer func() {
		if closeErr := resp.Body.Close(); closeErr != nil {
			err = errors.Wrap(closeErr, "close response body")
		}
	}()

	if resp.StatusCode == http.StatusTooManyRequests {
		return nil, NewTooManyRequestError(parseRetryAfter(resp.Header.Get("Retry-After")))
	}

	respBody, readErr := io.ReadAll(resp.Body)
	if readErr != nil {
		return nil, errors.Wrap(readErr, "read response")
	}

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return nil, NewStatusCodeError(resp.StatusCode, string(respBody))
	}

	if jsonErr := json.Unmarshal(respBody, &transfer); jsonErr != nil {
		return nil, errors.Wrap(jsonErr, "parse response")
	}

	return transfer, nil
}

// parseRetryAfter разбирает заголовок Retry-After с зажимом в допустимый
// диапазон. В случае ошибки или неверных данных возвращает 60 секунд.
func parseRetryAfter(header string) time.Duration {
	minValue := decimal.NewFromInt(minRetryAfter)
	maxValue := decimal.NewFromInt(maxRetryAfter)

	retryAfter, parseErr := decimal.NewFromString(header)
	if parseErr != nil || retryAfter.LessThan(minValue) || retryAfter.GreaterThan(maxValue) {
		retryAfter = decimal.NewFromInt(60) //nolint:mnd
	}
	return time.Duration(retryAfter.IntPart()) * time.Second
}
