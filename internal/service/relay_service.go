package service

import (
	"context"

	"github.com/relaypost/backend/internal/model"
)

// RelayService defines the submission pipeline: verify the anti-abuse token,
// then forward the message to the operator mailbox.
type RelayService interface {
	// Relay runs the pipeline for one admissible submission. Stages
	// short-circuit on first failure; mail is sent at most once. The
	// returned error is one of the taxonomy errors in this package.
	Relay(ctx context.Context, sub *model.Submission) error
}
