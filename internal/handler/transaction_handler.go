package handler

import (
	"fmt"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/switchpay/switchpay-go/internal/backend"
	"github.com/switchpay/switchpay-go/internal/domain"
	"github.com/switchpay/switchpay-go/internal/eventbus"
	"github.com/switchpay/switchpay-go/pkg/logger"
)

// Errors use the {"detail": ...} shape the client surfaces to users.
func detail(msg string) map[string]string {
	return map[string]string{"detail": msg}
}

type TransactionHandler struct {
	store       *backend.Store
	idempotency *backend.IdempotencyStore
	bus         eventbus.EventBus
	validate    *validator.Validate
	logger      *logger.Logger
}

func NewTransactionHandler(
	store *backend.Store,
	idem *backend.IdempotencyStore,
	bus eventbus.EventBus,
	log *logger.Logger,
) *TransactionHandler {
	return &TransactionHandler{
		store:       store,
		idempotency: idem,
		bus:         bus,
		validate:    validator.New(),
		logger:      log,
	}
}

func (h *TransactionHandler) Create(c echo.Context) error {
	ctx := c.Request().Context()

	apiKey := c.Request().Header.Get("x-api-key")
	if apiKey == "" {
		return c.JSON(http.StatusUnauthorized, detail("missing API key"))
	}

	var draft domain.Draft
	if err := c.Bind(&draft); err != nil {
		return c.JSON(http.StatusBadRequest, detail("invalid request body"))
	}
	if err := h.validate.Struct(&draft); err != nil {
		return c.JSON(http.StatusBadRequest, detail(fmt.Sprintf("invalid draft: %v", err)))
	}

	idemKey := c.Request().Header.Get("Idempotency-Key")
	if idemKey != "" {
		stored, found, err := h.idempotency.Replay(idemKey)
		if err != nil {
			h.logger.Error(ctx, "Idempotency lookup failed",
				"error", err,
			)
			return c.JSON(http.StatusInternalServerError, detail("idempotency lookup failed"))
		}
		if found {
			h.logger.Info(ctx, "Idempotency key replayed",
				"tx_id", stored.ID,
			)
			return c.JSON(http.StatusOK, stored)
		}
	}

	tx, err := h.store.Create(ctx, draft)
	if err != nil {
		h.logger.Error(ctx, "Failed to create transaction",
			"error", err,
		)
		return c.JSON(http.StatusInternalServerError, detail("failed to create transaction"))
	}

	if idemKey != "" {
		if err := h.idempotency.Record(idemKey, tx); err != nil {
			h.logger.Error(ctx, "Failed to record idempotency key",
				"tx_id", tx.ID,
				"error", err,
			)
		}
	}

	h.logger.Info(ctx, "Transaction created",
		"tx_id", tx.ID,
		"psp", tx.PSP,
	)

	return c.JSON(http.StatusCreated, tx)
}

func (h *TransactionHandler) List(c echo.Context) error {
	ctx := c.Request().Context()

	transactions, err := h.store.List(ctx)
	if err != nil {
		h.logger.Error(ctx, "Failed to list transactions",
			"error", err,
		)
		return c.JSON(http.StatusInternalServerError, detail("failed to list transactions"))
	}

	return c.JSON(http.StatusOK, transactions)
}

func (h *TransactionHandler) Metrics(c echo.Context) error {
	ctx := c.Request().Context()

	metrics, err := h.store.Metrics(ctx)
	if err != nil {
		h.logger.Error(ctx, "Failed to compute metrics",
			"error", err,
		)
		return c.JSON(http.StatusInternalServerError, detail("failed to compute metrics"))
	}

	return c.JSON(http.StatusOK, metrics)
}

func (h *TransactionHandler) Webhook(c echo.Context) error {
	ctx := c.Request().Context()

	var update domain.StatusUpdate
	if err := c.Bind(&update); err != nil {
		return c.JSON(http.StatusBadRequest, detail("invalid request body"))
	}

	if update.TxID == "" {
		return c.JSON(http.StatusBadRequest, detail("tx_id is required"))
	}
	if !update.Status.Terminal() {
		return c.JSON(http.StatusBadRequest, detail("status must be success or failed"))
	}
	if !h.store.Has(ctx, update.TxID) {
		return c.JSON(http.StatusNotFound, detail("transaction not found"))
	}

	// Ack immediately; the settlement consumer applies the transition
	// asynchronously. Readers catch up on their next refresh.
	event := eventbus.Event{
		ID:   uuid.New().String(),
		Type: eventbus.EventTypeStatusUpdate,
		Payload: eventbus.StatusUpdateEvent{
			TxID:   update.TxID,
			Status: update.Status,
		},
		Timestamp: time.Now(),
	}

	if err := h.bus.Publish(ctx, event); err != nil {
		h.logger.Error(ctx, "Failed to publish status update",
			"tx_id", update.TxID,
			"error", err,
		)
		return c.JSON(http.StatusInternalServerError, detail("failed to queue status update"))
	}

	h.logger.Info(ctx, "Webhook accepted",
		"tx_id", update.TxID,
		"status", update.Status,
	)

	return c.JSON(http.StatusOK, domain.WebhookAck{
		TxID:   update.TxID,
		Status: update.Status,
	})
}
