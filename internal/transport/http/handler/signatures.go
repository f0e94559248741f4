package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-po-api/internal/application/signature"
	"github.com/go-po-api/internal/domain"
	"github.com/go-po-api/internal/pkg/validate"
	"github.com/go-po-api/internal/transport/http/middleware"
)

// VerifyRequest is the body of the verify endpoint.
type VerifyRequest struct {
	Code string `json:"code" validate:"required"`
}

// SignatureHandler drives the OTP signature flow over HTTP. Every outcome is
// a structured success/failure message; invalid codes and already-signed
// orders are normal rejections, not server errors.
type SignatureHandler struct {
	svc             signature.Service
	defaultSignerID string
	exposeCode      bool
}

// NewSignatureHandler builds the handler. exposeCode should be false in
// production: it echoes the issued code in the response body for demo and
// test visibility.
func NewSignatureHandler(svc signature.Service, defaultSignerID string, exposeCode bool) *SignatureHandler {
	return &SignatureHandler{svc: svc, defaultSignerID: defaultSignerID, exposeCode: exposeCode}
}

func (h *SignatureHandler) Request(w http.ResponseWriter, r *http.Request) {
	orderID := chi.URLParam(r, "id")

	code, err := h.svc.Begin(r.Context(), orderID)
	if err != nil {
		h.flowError(w, err)
		return
	}

	resp := SignatureEnvelope{Success: true, Message: "verification code sent via notification"}
	if h.exposeCode {
		resp.Code = code
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *SignatureHandler) Verify(w http.ResponseWriter, r *http.Request) {
	orderID := chi.URLParam(r, "id")

	var req VerifyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validate.Struct(&req); err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	signed, err := h.svc.Complete(r.Context(), orderID, req.Code, h.signerID(r))
	if err != nil {
		h.flowError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, SignatureEnvelope{
		Success:  true,
		Message:  "code verified, order signed",
		PrintURL: fmt.Sprintf("/v1/purchase-orders/%s/document", signed.OrderID),
	})
}

func (h *SignatureHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Cancel(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.flowError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, SignatureEnvelope{Success: true, Message: "pending signature cleared"})
}

// signerID resolves the signing user: the authenticated user when a token
// is present, otherwise the configured default.
func (h *SignatureHandler) signerID(r *http.Request) string {
	if claims, ok := middleware.ClaimsFromContext(r.Context()); ok {
		return claims.UserID
	}
	return h.defaultSignerID
}

// flowError maps signature-flow failures onto the success envelope. The
// consumed-but-not-saved case must stay distinguishable from a bad code.
func (h *SignatureHandler) flowError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		writeJSON(w, http.StatusNotFound, SignatureEnvelope{Success: false, Message: "order not found"})
	case errors.Is(err, domain.ErrAlreadySigned):
		writeJSON(w, http.StatusBadRequest, SignatureEnvelope{Success: false, Message: "order already signed"})
	case errors.Is(err, domain.ErrInvalidCode):
		writeJSON(w, http.StatusBadRequest, SignatureEnvelope{Success: false, Message: "invalid or expired code"})
	case errors.Is(err, domain.ErrSignedNotSaved):
		writeJSON(w, http.StatusInternalServerError, SignatureEnvelope{
			Success: false,
			Message: "code accepted but the order could not be saved; request a new code",
		})
	default:
		writeJSON(w, http.StatusInternalServerError, SignatureEnvelope{Success: false, Message: "internal server error"})
	}
}
