package service

import (
	"context"
	"fmt"
	"math"

	"github.com/go-playground/validator/v10"

	"github.com/switchpay/switchpay-go/internal/credentials"
	"github.com/switchpay/switchpay-go/internal/domain"
	"github.com/switchpay/switchpay-go/pkg/idempotency"
	"github.com/switchpay/switchpay-go/pkg/logger"
)

// Submitter builds and sends creation requests. Every call generates a fresh
// idempotency key: a user-initiated resubmission after a failure is a new
// logical transaction, not a replay of the failed attempt.
type Submitter struct {
	gateway     domain.Gateway
	credentials *credentials.Store
	validate    *validator.Validate
	onSuccess   func(ctx context.Context)
	logger      *logger.Logger
}

// NewSubmitter wires the submission client. onSuccess is invoked exactly once
// per successful submit, typically to refresh the snapshot store.
func NewSubmitter(
	gateway domain.Gateway,
	creds *credentials.Store,
	onSuccess func(ctx context.Context),
	log *logger.Logger,
) *Submitter {
	return &Submitter{
		gateway:     gateway,
		credentials: creds,
		validate:    validator.New(),
		onSuccess:   onSuccess,
		logger:      log,
	}
}

// SetAPIKey persists the API key value, independent of any submission
// outcome.
func (s *Submitter) SetAPIKey(ctx context.Context, key string) error {
	if err := s.credentials.Save(key); err != nil {
		s.logger.Error(ctx, "Failed to persist API key",
			"error", err,
		)
		return err
	}

	s.logger.Debug(ctx, "API key persisted")
	return nil
}

// APIKey returns the persisted key, empty when none was saved.
func (s *Submitter) APIKey(ctx context.Context) (string, error) {
	return s.credentials.Load()
}

// Submit validates the draft, issues exactly one create request, and on
// success invokes the refresh callback and clears the draft. On failure the
// draft is left untouched so the caller can resubmit.
func (s *Submitter) Submit(ctx context.Context, draft *domain.Draft, apiKey string) error {
	if err := s.validateDraft(draft); err != nil {
		s.logger.Warn(ctx, "Draft rejected before submission",
			"error", err,
		)
		return err
	}

	key := idempotency.NewKey()

	tx, err := s.gateway.CreateTransaction(ctx, *draft, apiKey, key)
	if err != nil {
		s.logger.Error(ctx, "Transaction submission failed",
			"error", err,
		)
		return err
	}

	ctx = logger.WithTxID(ctx, tx.ID)
	s.logger.Info(ctx, "Transaction submitted",
		"psp", tx.PSP,
		"status", tx.Status,
	)

	if s.onSuccess != nil {
		s.onSuccess(ctx)
	}

	*draft = domain.Draft{}

	return nil
}

func (s *Submitter) validateDraft(draft *domain.Draft) error {
	if math.IsNaN(draft.Amount) || math.IsInf(draft.Amount, 0) {
		return fmt.Errorf("%w: amount must be a finite number", domain.ErrInvalidDraft)
	}
	if err := s.validate.Struct(draft); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrInvalidDraft, err)
	}
	return nil
}
