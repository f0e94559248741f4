package handler

import (
	"net/http"

	"github.com/go-po-api/internal/application/supplier"
)

// SupplierHandler serves the supplier dropdown catalog.
type SupplierHandler struct {
	svc supplier.Service
}

func NewSupplierHandler(svc supplier.Service) *SupplierHandler {
	return &SupplierHandler{svc: svc}
}

func (h *SupplierHandler) List(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, h.svc.List())
}
