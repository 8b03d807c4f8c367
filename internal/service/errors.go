package service

import "errors"

// Relay pipeline failure taxonomy. Handlers map these onto HTTP statuses;
// anything else escaping the pipeline is a plain server error.
var (
	// ErrVerificationFailed means the provider explicitly rejected the
	// token (success=false or score below threshold). Expected, recoverable,
	// not an operational incident.
	ErrVerificationFailed = errors.New("verification failed")

	// ErrActionMismatch means the token verified but was issued for a
	// different widget action than this endpoint expects.
	ErrActionMismatch = errors.New("verification action mismatch")

	// ErrVerifierUnavailable means the verification provider could not be
	// consulted (network, timeout, malformed response). Distinct from a
	// failed verification; surfaces as a server error.
	ErrVerifierUnavailable = errors.New("verification service unavailable")

	// ErrMailDelivery means the outbound provider rejected or never
	// received the message after a successful verification.
	ErrMailDelivery = errors.New("mail delivery failed")
)
