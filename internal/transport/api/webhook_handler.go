package api

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/fsdevblog/groph-affiliate/internal/domain"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

const (
	// SignatureHeader подпись тела вебхука: hex(HMAC-SHA256(secret, body)).
	SignatureHeader = "X-Payout-Signature"

	EventTransferCreated  = "transfer.created"
	EventTransferReversed = "transfer.reversed"

	maxWebhookBodyBytes = 1 << 20
)

type WebhookHandler struct {
	reconcileSvs ReconcileServicer
	secret       []byte
	l            *logrus.Entry
}

func NewWebhookHandler(reconcileSvs ReconcileServicer, secret []byte, l *logrus.Logger) *WebhookHandler {
	return &WebhookHandler{
		reconcileSvs: reconcileSvs,
		secret:       secret,
		l:            l.WithField("component", "payout_webhook"),
	}
}

// transferEventEnvelope сырой конверт события процессора выплат.
type transferEventEnvelope struct {
	Type string `json:"type"`
	Data struct {
		TransferID string `json:"transfer_id"`
		Reason     string `json:"reason"`
		Metadata   struct {
			CommissionID int64 `json:"commission_id"`
		} `json:"metadata"`
	} `json:"data"`
}

// Handle POST RouteGroup + PayoutWebhookRoute.
// Процессор доставляет события at-least-once и без гарантии порядка, поэтому
// 200 означает "событие учтено либо заведомо неприменимо", а 500 - "повтори
// доставку позже".
func (h *WebhookHandler) Handle(c *gin.Context) {
	body, readErr := io.ReadAll(io.LimitReader(c.Request.Body, maxWebhookBodyBytes))
	if readErr != nil {
		c.AbortWithStatus(http.StatusBadRequest)
		return
	}

	if !h.verifySignature(body, c.GetHeader(SignatureHeader)) {
		h.l.WithField("remoteAddr", c.ClientIP()).Warn("webhook signature mismatch")
		c.AbortWithStatus(http.StatusBadRequest)
		return
	}

	event, parseErr := parseTransferEvent(body)
	if parseErr != nil {
		h.l.WithError(parseErr).Warn("unparsable webhook payload")
		c.AbortWithStatus(http.StatusBadRequest)
		return
	}

	reqCtx, cancel := context.WithTimeout(c, DefaultServiceTimeout)
	defer cancel()

	if applyErr := h.reconcileSvs.ApplyTransferEvent(reqCtx, event); applyErr != nil {
		// Неизвестный трансфер не станет известным при повторной доставке.
		// Подтверждаем получение, оставляя след для разбора.
		if errors.Is(applyErr, domain.ErrRecordNotFound) {
			h.l.WithFields(logrus.Fields{
				"transferID":   event.TransferRef(),
				"commissionID": event.CommissionRef(),
			}).Warn("transfer event for unknown commission")
			c.Status(http.StatusOK)
			return
		}
		_ = c.AbortWithError(http.StatusInternalServerError, applyErr).SetType(gin.ErrorTypePrivate)
		return
	}

	c.Status(http.StatusOK)
}

func (h *WebhookHandler) verifySignature(body []byte, gotHex string) bool {
	if gotHex == "" {
		return false
	}
	got, err := hex.DecodeString(gotHex)
	if err != nil {
		return false
	}
	mac := hmac.New(sha256.New, h.secret)
	mac.Write(body)
	return hmac.Equal(got, mac.Sum(nil))
}

func parseTransferEvent(body []byte) (domain.TransferEvent, error) {
	var envelope transferEventEnvelope
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, err //nolint:wrapcheck
	}
	if envelope.Data.TransferID == "" {
		return nil, errors.New("event without transfer_id")
	}

	switch envelope.Type {
	case EventTransferCreated:
		return domain.TransferCreatedEvent{
			TransferID:   envelope.Data.TransferID,
			CommissionID: envelope.Data.Metadata.CommissionID,
		}, nil
	case EventTransferReversed:
		return domain.TransferReversedEvent{
			TransferID:   envelope.Data.TransferID,
			CommissionID: envelope.Data.Metadata.CommissionID,
			Reason:       envelope.Data.Reason,
		}, nil
	default:
		return nil, errors.New("unsupported event type " + envelope.Type)
	}
}
