package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/relaypost/backend/internal/config"
	"github.com/relaypost/backend/internal/model"
	"github.com/relaypost/backend/pkg/captcha"
	"github.com/relaypost/backend/pkg/mailer"
)

// outboundTimeout bounds each of the two outbound calls so a stalled
// provider cannot hold the response open indefinitely.
const outboundTimeout = 10 * time.Second

// relayServiceImpl is the production implementation of RelayService.
type relayServiceImpl struct {
	verifier captcha.Client
	mailer   mailer.Mailer

	minScore       float64
	expectedAction string
}

// NewRelayService creates a RelayService using the given verifier and mailer.
// Verification policy (score threshold, expected action) comes from cfg.
func NewRelayService(verifier captcha.Client, m mailer.Mailer, cfg config.CaptchaConfig) RelayService {
	return &relayServiceImpl{
		verifier:       verifier,
		mailer:         m,
		minScore:       cfg.MinScore,
		expectedAction: cfg.ExpectedAction,
	}
}

// Relay verifies the token and, on success, dispatches exactly one email.
// Operational causes are logged here; callers only see taxonomy errors.
func (s *relayServiceImpl) Relay(ctx context.Context, sub *model.Submission) error {
	vctx, cancel := context.WithTimeout(ctx, outboundTimeout)
	defer cancel()

	raw, err := s.verifier.Verify(vctx, sub.Token, sub.RemoteIP)
	if err != nil {
		slog.Error("verification service error", "error", err)
		return fmt.Errorf("%w: %v", ErrVerifierUnavailable, err)
	}

	result := model.VerificationResult{
		Verified: raw.Success,
		Score:    raw.Score,
		Action:   raw.Action,
	}
	if err := s.evaluate(result); err != nil {
		slog.Info("submission rejected", "reason", err, "error_codes", raw.ErrorCodes)
		return err
	}

	mctx, cancel := context.WithTimeout(ctx, outboundTimeout)
	defer cancel()

	err = s.mailer.Send(mctx, mailer.Contact{
		Name:    sub.Name,
		Email:   sub.Email,
		Message: sub.Message,
	})
	if err != nil {
		slog.Error("mail delivery failed", "error", err)
		return fmt.Errorf("%w: %v", ErrMailDelivery, err)
	}

	slog.Info("submission relayed", "reply_to", sub.Email)
	return nil
}

// evaluate applies the verification policy: reject on an explicit failure or
// a low score; an unscored result passes. The action label is checked only
// when an expected action is configured and the provider returned one.
func (s *relayServiceImpl) evaluate(r model.VerificationResult) error {
	if !r.Verified {
		return ErrVerificationFailed
	}
	if r.Score != nil && *r.Score < s.minScore {
		return ErrVerificationFailed
	}
	if s.expectedAction != "" && r.Action != "" && r.Action != s.expectedAction {
		return ErrActionMismatch
	}
	return nil
}
