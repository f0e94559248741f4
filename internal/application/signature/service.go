// Package signature orchestrates the OTP-gated order signing flow:
// request a code, verify it, apply the signed state, persist.
package signature

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-po-api/internal/domain"
)

// Field names used in partial update maps.
const (
	fieldStatus         = "status"
	fieldSignedByUserID = "signed_by_user_id"
	fieldSignedAt       = "signed_at"
	fieldUpdatedAt      = "updated_at"
)

type orderStore interface {
	Get(ctx context.Context, orderID string) (*domain.PurchaseOrder, error)
	Update(ctx context.Context, orderID string, updates map[string]interface{}) error
}

type otpService interface {
	Request(ctx context.Context, orderID string) (string, error)
	Verify(orderID, submittedCode string) bool
	Cancel(orderID string)
}

type Service interface {
	// Begin checks the order can be signed and issues a verification code.
	// It does not change order status.
	Begin(ctx context.Context, orderID string) (string, error)
	// Complete verifies the submitted code and, on success, marks the order
	// signed and persists it. The returned order reflects the signed state.
	Complete(ctx context.Context, orderID, submittedCode, signerID string) (*domain.PurchaseOrder, error)
	// Cancel drops any in-flight signature attempt for the order.
	Cancel(ctx context.Context, orderID string) error
}

type service struct {
	repo orderStore
	otp  otpService
}

func NewService(repo orderStore, otp otpService) Service {
	return &service{repo: repo, otp: otp}
}

func (s *service) Begin(ctx context.Context, orderID string) (string, error) {
	o, err := s.repo.Get(ctx, orderID)
	if err != nil {
		return "", err
	}
	if o.Status == domain.StatusSigned {
		return "", fmt.Errorf("order %s: %w", orderID, domain.ErrAlreadySigned)
	}
	return s.otp.Request(ctx, orderID)
}

func (s *service) Complete(ctx context.Context, orderID, submittedCode, signerID string) (*domain.PurchaseOrder, error) {
	o, err := s.repo.Get(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if o.Status == domain.StatusSigned {
		return nil, fmt.Errorf("order %s: %w", orderID, domain.ErrAlreadySigned)
	}

	// The code is consumed here; everything after this point must not be
	// retryable with the same code.
	if !s.otp.Verify(orderID, submittedCode) {
		return nil, fmt.Errorf("order %s: %w", orderID, domain.ErrInvalidCode)
	}

	now := time.Now().UTC()
	if err := s.repo.Update(ctx, orderID, map[string]interface{}{
		fieldStatus:         domain.StatusSigned,
		fieldSignedByUserID: signerID,
		fieldSignedAt:       now,
		fieldUpdatedAt:      now,
	}); err != nil {
		slog.Error("order verified but signature not persisted", "order_id", orderID, "err", err)
		return nil, fmt.Errorf("order %s: %v: %w", orderID, err, domain.ErrSignedNotSaved)
	}

	o.Status = domain.StatusSigned
	o.SignedByUserID = &signerID
	o.SignedAt = &now
	o.UpdatedAt = now
	slog.Info("order signed", "order_id", orderID, "signed_by", signerID)
	return o, nil
}

func (s *service) Cancel(ctx context.Context, orderID string) error {
	if _, err := s.repo.Get(ctx, orderID); err != nil {
		return err
	}
	s.otp.Cancel(orderID)
	return nil
}
