package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/Dan9191/installment-service/internal/repository"
	"github.com/Dan9191/installment-service/internal/service"
	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

type Handler struct {
	svc *service.Service
	log *logrus.Logger
}

func NewHandler(svc *service.Service, log *logrus.Logger) *Handler {
	return &Handler{svc: svc, log: log}
}

// Register mounts the API routes on r
func (h *Handler) Register(r *mux.Router) {
	r.HandleFunc("/sales/{id:[0-9]+}/installments", h.GetSchedule).Methods(http.MethodGet)
	r.HandleFunc("/sales/{id:[0-9]+}/payments", h.GetPayments).Methods(http.MethodGet)
	r.HandleFunc("/installments/{id:[0-9]+}/pay", h.Pay).Methods(http.MethodPost)
	r.HandleFunc("/installments/{id:[0-9]+}/payments/{paymentID:[0-9]+}/revert", h.RevertPayment).Methods(http.MethodPost)
	r.HandleFunc("/customers/{id:[0-9]+}/owed", h.CustomerOwed).Methods(http.MethodGet)
	r.HandleFunc("/notifications", h.ListNotifications).Methods(http.MethodGet)
	r.HandleFunc("/notifications/archived", h.PurgeArchived).Methods(http.MethodDelete)
	r.HandleFunc("/notifications/{id:[0-9]+}/read", h.MarkRead).Methods(http.MethodPost)
	r.HandleFunc("/notifications/{id:[0-9]+}/archive", h.Archive).Methods(http.MethodPost)
	r.HandleFunc("/scan", h.Scan).Methods(http.MethodPost)
}

// Health reports liveness
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// GetSchedule returns a sale's installments
func (h *Handler) GetSchedule(w http.ResponseWriter, r *http.Request) {
	saleID, ok := h.pathID(w, r, "id")
	if !ok {
		return
	}
	sched, err := h.svc.GetSchedule(r.Context(), saleID)
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, sched)
}

// GetPayments returns a sale's payments
func (h *Handler) GetPayments(w http.ResponseWriter, r *http.Request) {
	saleID, ok := h.pathID(w, r, "id")
	if !ok {
		return
	}
	payments, err := h.svc.GetPayments(r.Context(), saleID)
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, payments)
}

type payRequest struct {
	PaidDate string           `json:"paid_date"`
	Amount   *decimal.Decimal `json:"amount"`
}

// Pay records a full or partial payment of an installment
func (h *Handler) Pay(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r, "id")
	if !ok {
		return
	}
	var req payRequest
	if r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeJSON(w, http.StatusBadRequest, errorBody{Error: "invalid request body"})
			return
		}
	}

	res, err := h.svc.RecordPayment(r.Context(), service.PaymentRequest{
		InstallmentID: id,
		PaidDate:      req.PaidDate,
		Amount:        req.Amount,
	})
	if err != nil {
		h.writeError(w, err)
		return
	}
	if res.Status == service.PaymentOutOfSequence {
		writeJSON(w, http.StatusConflict, res)
		return
	}
	writeJSON(w, http.StatusCreated, res)
}

// RevertPayment undoes a payment of an installment
func (h *Handler) RevertPayment(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r, "id")
	if !ok {
		return
	}
	paymentID, ok := h.pathID(w, r, "paymentID")
	if !ok {
		return
	}
	if err := h.svc.RevertPayment(r.Context(), id, paymentID); err != nil {
		h.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// CustomerOwed returns the total a customer still owes
func (h *Handler) CustomerOwed(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r, "id")
	if !ok {
		return
	}
	balance, err := h.svc.CustomerTotalOwed(r.Context(), id)
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, balance)
}

// ListNotifications returns the newest notifications; ?limit=N sets the page size
func (h *Handler) ListNotifications(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, errorBody{Error: "limit must be an integer"})
			return
		}
		limit = n
	}
	notifications, err := h.svc.ListNotifications(r.Context(), limit)
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, notifications)
}

// MarkRead flags a notification as read
func (h *Handler) MarkRead(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r, "id")
	if !ok {
		return
	}
	if err := h.svc.MarkRead(r.Context(), id); err != nil {
		h.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Archive hides a notification
func (h *Handler) Archive(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r, "id")
	if !ok {
		return
	}
	if err := h.svc.Archive(r.Context(), id); err != nil {
		h.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// PurgeArchived deletes archived notifications
func (h *Handler) PurgeArchived(w http.ResponseWriter, r *http.Request) {
	n, err := h.svc.PurgeArchived(r.Context())
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int64{"deleted": n})
}

// Scan schedules a notification scan and waits for its report. Concurrent requests share one scan.
func (h *Handler) Scan(w http.ResponseWriter, r *http.Request) {
	report, err := h.svc.TriggerScan().Wait(r.Context())
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, report)
}

type errorBody struct {
	Error string `json:"error"`
}

func (h *Handler) pathID(w http.ResponseWriter, r *http.Request, name string) (int64, bool) {
	id, err := strconv.ParseInt(mux.Vars(r)[name], 10, 64)
	if err != nil || id <= 0 {
		writeJSON(w, http.StatusBadRequest, errorBody{Error: "invalid " + name})
		return 0, false
	}
	return id, true
}

func (h *Handler) writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, repository.ErrNotFound), errors.Is(err, service.ErrSaleNotFound):
		status = http.StatusNotFound
	case errors.Is(err, service.ErrInvalidRequest), errors.Is(err, repository.ErrOverpayment):
		status = http.StatusBadRequest
	case errors.Is(err, repository.ErrAlreadyPaid), errors.Is(err, repository.ErrCancelled),
		errors.Is(err, service.ErrRevertOutOfSequence):
		status = http.StatusConflict
	}

	if status == http.StatusInternalServerError {
		h.log.Errorf("Request failed: %v", err)
		writeJSON(w, status, errorBody{Error: "internal error"})
		return
	}
	writeJSON(w, status, errorBody{Error: err.Error()})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
