package invoice

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"github.com/arindamg/taskledger/internal/auth"
	"github.com/arindamg/taskledger/internal/client"
	"github.com/arindamg/taskledger/internal/invoice"
	"github.com/arindamg/taskledger/internal/task"
)

type Handler struct {
	svc      *invoice.Service
	validate *validator.Validate
}

func NewHandler(svc *invoice.Service) *Handler {
	return &Handler{
		svc:      svc,
		validate: validator.New(validator.WithRequiredStructEnabled()),
	}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.create)
	r.Post("/from-tasks", h.createFromTasks)
	r.Get("/", h.list)
	r.Get("/{id}", h.get)
	r.Post("/{id}/items", h.addItem)
	r.Post("/{id}/send", h.send)
	r.Post("/{id}/recalculate", h.recalculate)
	r.Patch("/{id}/status", h.updateStatus)
}

type itemRequest struct {
	Title       string          `json:"title" validate:"required"`
	Description *string         `json:"description,omitempty"`
	HSNSAC      *string         `json:"hsn_sac,omitempty"`
	TaskID      *int64          `json:"task_id,omitempty"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
}

func (r itemRequest) params() invoice.ItemParams {
	return invoice.ItemParams{
		Title:       r.Title,
		Description: r.Description,
		HSNSAC:      r.HSNSAC,
		TaskID:      r.TaskID,
		Quantity:    r.Quantity,
		UnitPrice:   r.UnitPrice,
	}
}

type manualTotalsRequest struct {
	Subtotal decimal.Decimal `json:"subtotal"`
	CGST     decimal.Decimal `json:"cgst"`
	SGST     decimal.Decimal `json:"sgst"`
	IGST     decimal.Decimal `json:"igst"`
	Total    decimal.Decimal `json:"total"`
}

type taxConfigRequest struct {
	PricingMode   invoice.PricingMode  `json:"pricing_mode,omitempty"`
	GSTPercent    *decimal.Decimal     `json:"gst_percent,omitempty"`
	Discount      decimal.Decimal      `json:"discount"`
	PlaceOfSupply *string              `json:"place_of_supply,omitempty"`
	ManualTotals  *manualTotalsRequest `json:"manual_totals,omitempty"`
	Notes         *string              `json:"notes,omitempty"`
}

func (r taxConfigRequest) config() invoice.TaxConfig {
	cfg := invoice.TaxConfig{
		PricingMode:   r.PricingMode,
		GSTPercent:    r.GSTPercent,
		Discount:      r.Discount,
		PlaceOfSupply: r.PlaceOfSupply,
		Notes:         r.Notes,
	}

	if r.ManualTotals != nil {
		cfg.Manual = &invoice.ManualTotals{
			Subtotal: r.ManualTotals.Subtotal,
			CGST:     r.ManualTotals.CGST,
			SGST:     r.ManualTotals.SGST,
			IGST:     r.ManualTotals.IGST,
			Total:    r.ManualTotals.Total,
		}
	}

	return cfg
}

type createRequest struct {
	CompanyID int64         `json:"company_id" validate:"required"`
	ClientID  int64         `json:"client_id" validate:"required"`
	Items     []itemRequest `json:"items" validate:"required,min=1,dive"`
	taxConfigRequest
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req createRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := h.validate.Struct(req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	items := make([]invoice.ItemParams, 0, len(req.Items))
	for _, item := range req.Items {
		items = append(items, item.params())
	}

	inv, err := h.svc.Create(r.Context(), auth.UserID(r.Context()), req.CompanyID, req.ClientID, items, req.config())
	if err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)

	if err := json.NewEncoder(w).Encode(toResponse(inv)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

type fromTasksRequest struct {
	CompanyID    int64                      `json:"company_id" validate:"required"`
	ClientID     int64                      `json:"client_id" validate:"required"`
	TaskIDs      []int64                    `json:"task_ids" validate:"required,min=1"`
	TaskPriceMap map[string]decimal.Decimal `json:"task_price_map,omitempty"`
	taxConfigRequest
}

func (h *Handler) createFromTasks(w http.ResponseWriter, r *http.Request) {
	var req fromTasksRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := h.validate.Struct(req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	priceMap := make(map[int64]decimal.Decimal, len(req.TaskPriceMap))

	for key, price := range req.TaskPriceMap {
		taskID, err := strconv.ParseInt(key, 10, 64)
		if err != nil {
			http.Error(w, "invalid task id in price map: "+key, http.StatusBadRequest)
			return
		}

		priceMap[taskID] = price
	}

	inv, err := h.svc.CreateFromTasks(r.Context(), auth.UserID(r.Context()), invoice.FromTasksParams{
		CompanyID:    req.CompanyID,
		ClientID:     req.ClientID,
		TaskIDs:      req.TaskIDs,
		TaskPriceMap: priceMap,
		TaxConfig:    req.config(),
	})
	if err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)

	if err := json.NewEncoder(w).Encode(toResponse(inv)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	invoices, err := h.svc.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toResponseList(invoices)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	inv, err := h.svc.Get(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toResponse(inv)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) addItem(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	var req itemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := h.validate.Struct(req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	item, err := h.svc.AddItem(r.Context(), id, req.params())
	if err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)

	if err := json.NewEncoder(w).Encode(toItemResponse(*item)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

type sendRequest struct {
	ToEmail string `json:"to_email" validate:"required,email"`
	Subject string `json:"subject"`
	Message string `json:"message"`
}

func (h *Handler) send(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	var req sendRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := h.validate.Struct(req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := h.svc.Send(r.Context(), id, invoice.SendParams{
		ToEmail: req.ToEmail,
		Subject: req.Subject,
		Message: req.Message,
	}); err != nil {
		writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

type updateStatusRequest struct {
	Status invoice.Status `json:"status" validate:"required"`
}

func (h *Handler) updateStatus(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	var req updateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	inv, err := h.svc.UpdateStatus(r.Context(), id, req.Status)
	if err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toResponse(inv)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) recalculate(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	inv, err := h.svc.Recalculate(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toResponse(inv)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func parseID(r *http.Request) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
}

func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, invoice.ErrInvalid), errors.Is(err, task.ErrInvalid):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, invoice.ErrNotFound):
		http.Error(w, "invoice not found", http.StatusNotFound)
	case errors.Is(err, task.ErrNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, client.ErrNotFound), errors.Is(err, client.ErrCompanyNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, invoice.ErrLocked):
		http.Error(w, err.Error(), http.StatusLocked)
	case errors.Is(err, invoice.ErrConflict):
		http.Error(w, err.Error(), http.StatusConflict)
	default:
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}
