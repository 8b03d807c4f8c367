package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/relaypost/backend/internal/model"
	"github.com/relaypost/backend/internal/service"
	"github.com/tomasen/realip"
)

// SubmitHandler handles contact form submission.
type SubmitHandler struct {
	relay service.RelayService
}

// NewSubmitHandler creates a SubmitHandler with the given pipeline.
func NewSubmitHandler(relay service.RelayService) *SubmitHandler {
	return &SubmitHandler{relay: relay}
}

// submitRequest is the expected JSON body for POST /send-email.
type submitRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Message string `json:"message"`
	Token   string `json:"token"`
}

// Submit handles POST /send-email. All four fields are required; the token
// is verified before any mail is composed. Failure payloads carry a generic
// message only; causes stay in the server log.
func (h *SubmitHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var req submitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, apiResponse{Success: false, Msg: "Invalid request body"})
		return
	}

	sub := &model.Submission{
		Name:    req.Name,
		Email:   req.Email,
		Message: req.Message,
		Token:   req.Token,
	}
	if !sub.Complete() {
		writeJSON(w, http.StatusBadRequest, apiResponse{Success: false, Msg: "All fields required"})
		return
	}
	sub.RemoteIP = realip.FromRequest(r)

	err := h.relay.Relay(r.Context(), sub)
	switch {
	case err == nil:
		writeJSON(w, http.StatusOK, apiResponse{Success: true, Msg: "Email sent successfully!"})
	case errors.Is(err, service.ErrVerificationFailed):
		writeJSON(w, http.StatusBadRequest, apiResponse{Success: false, Msg: "Verification failed"})
	case errors.Is(err, service.ErrActionMismatch):
		writeJSON(w, http.StatusBadRequest, apiResponse{Success: false, Msg: "Verification action mismatch"})
	case errors.Is(err, service.ErrMailDelivery):
		writeJSON(w, http.StatusInternalServerError, apiResponse{Success: false, Msg: "Email failed"})
	default:
		writeJSON(w, http.StatusInternalServerError, apiResponse{Success: false, Msg: "Server error"})
	}
}
