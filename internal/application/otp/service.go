package otp

import (
	"context"
	"fmt"
	"log/slog"
	"time"
)

// Gateway delivers a message to all connected listeners. Best effort: the
// signature flow never waits on it and never fails because of it.
type Gateway interface {
	Publish(ctx context.Context, message string) error
}

// CredentialStore holds one pending code per order with atomic
// check-and-consume semantics.
type CredentialStore interface {
	Issue(subjectID string) (string, error)
	Check(subjectID, submittedCode string) bool
	Clear(subjectID string)
}

type Service interface {
	// Request issues a fresh code for the order, pushes it to listeners in
	// the background, and returns it to the caller.
	Request(ctx context.Context, orderID string) (string, error)
	// Verify checks and consumes a submitted code.
	Verify(orderID, submittedCode string) bool
	// Cancel drops any pending code for the order.
	Cancel(orderID string)
}

type service struct {
	store           CredentialStore
	gateway         Gateway
	deliveryTimeout time.Duration
}

// NewService builds the issuer/verifier. gateway may be nil when no push
// channel is configured; codes are then only returned to the caller.
func NewService(store CredentialStore, gateway Gateway, deliveryTimeout time.Duration) Service {
	return &service{store: store, gateway: gateway, deliveryTimeout: deliveryTimeout}
}

func (s *service) Request(_ context.Context, orderID string) (string, error) {
	code, err := s.store.Issue(orderID)
	if err != nil {
		return "", err
	}

	if s.gateway != nil {
		msg := fmt.Sprintf("Your verification code for order %s is: %s", orderID, code)
		// Detached from the request: delivery failure must never fail or
		// roll back the issuance — the code stays valid for retry.
		go func() {
			ctx, cancel := context.WithTimeout(context.Background(), s.deliveryTimeout)
			defer cancel()
			if err := s.gateway.Publish(ctx, msg); err != nil {
				slog.Warn("verification code delivery failed", "order_id", orderID, "err", err)
			}
		}()
	}

	slog.Info("verification code issued", "order_id", orderID)
	return code, nil
}

func (s *service) Verify(orderID, submittedCode string) bool {
	return s.store.Check(orderID, submittedCode)
}

func (s *service) Cancel(orderID string) {
	s.store.Clear(orderID)
}
