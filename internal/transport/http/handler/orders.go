package handler

import (
	"encoding/json"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-po-api/internal/application/document"
	"github.com/go-po-api/internal/application/order"
	"github.com/go-po-api/internal/domain"
	"github.com/go-po-api/internal/pkg/validate"
)

// listQuery carries the parsed listing parameters for validation.
type listQuery struct {
	Page     int `validate:"gte=0"`
	PageSize int `validate:"gte=0,lte=100"`
	DateFrom *time.Time
	DateTo   *time.Time
}

// OrderHandler handles purchase-order CRUD and document endpoints.
type OrderHandler struct {
	svc  order.Service
	docs document.Service
}

func NewOrderHandler(svc order.Service, docs document.Service) *OrderHandler {
	return &OrderHandler{svc: svc, docs: docs}
}

func (h *OrderHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	lq := listQuery{
		Page:     intParam(q.Get("page")),
		PageSize: intParam(q.Get("page_size")),
	}
	var err error
	if lq.DateFrom, err = timeParam(q.Get("date_from")); err != nil {
		writeError(w, http.StatusBadRequest, "invalid date_from")
		return
	}
	if lq.DateTo, err = timeParam(q.Get("date_to")); err != nil {
		writeError(w, http.StatusBadRequest, "invalid date_to")
		return
	}
	if lq.DateFrom != nil && lq.DateTo != nil && lq.DateTo.Before(*lq.DateFrom) {
		writeError(w, http.StatusUnprocessableEntity, "date_to must not precede date_from")
		return
	}
	if err := validate.Struct(&lq); err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	filter := domain.OrderFilter{
		DateFrom:   lq.DateFrom,
		DateTo:     lq.DateTo,
		SupplierID: q.Get("supplier_id"),
	}
	page := domain.PageParams{Page: lq.Page, PageSize: lq.PageSize}

	result, err := h.svc.List(r.Context(), filter, page)
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (h *OrderHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req order.SaveOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validate.Struct(&req); err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	created, err := h.svc.Create(r.Context(), req)
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (h *OrderHandler) Get(w http.ResponseWriter, r *http.Request) {
	o, err := h.svc.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, o)
}

func (h *OrderHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req order.SaveOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validate.Struct(&req); err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	updated, err := h.svc.Update(r.Context(), chi.URLParam(r, "id"), req)
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

func (h *OrderHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, MessageEnvelope{Message: "order deleted"})
}

// Document streams the printable sheet of a signed order.
func (h *OrderHandler) Document(w http.ResponseWriter, r *http.Request) {
	body, err := h.docs.Fetch(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		httpError(w, err)
		return
	}
	defer body.Close()
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = io.Copy(w, body)
}

func intParam(s string) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return n
}

func timeParam(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	// accept a bare date or a full RFC 3339 timestamp
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return &t, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
