package model

// Submission represents one contact-form payload. It lives for the duration
// of a single request and is never persisted.
type Submission struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Message string `json:"message"`
	Token   string `json:"token"`
	// RemoteIP is the originating client address, forwarded to the
	// verification provider as a hint. Not part of the request body.
	RemoteIP string `json:"-"`
}

// Complete reports whether all four required fields are present and non-empty.
func (s *Submission) Complete() bool {
	return s.Name != "" && s.Email != "" && s.Message != "" && s.Token != ""
}

// VerificationResult is the interpreted outcome of one token verification.
// Score is a pointer so that an unscored response (v2-style tokens) is
// distinguishable from an explicit score of 0.
type VerificationResult struct {
	Verified bool     `json:"verified"`
	Score    *float64 `json:"score,omitempty"`
	Action   string   `json:"action,omitempty"`
}
