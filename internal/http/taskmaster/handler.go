package taskmaster

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"github.com/arindamg/taskledger/internal/calendar"
	"github.com/arindamg/taskledger/internal/taskmaster"
)

type Handler struct {
	svc      *taskmaster.Service
	validate *validator.Validate
}

func NewHandler(svc *taskmaster.Service) *Handler {
	return &Handler{
		svc:      svc,
		validate: validator.New(validator.WithRequiredStructEnabled()),
	}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.create)
	r.Get("/", h.list)
	r.Get("/{id}", h.get)
	r.Patch("/{id}", h.update)
	r.Delete("/{id}", h.disable)

	r.Post("/{id}/clients", h.assignClients)
	r.Delete("/{id}/clients/{clientID}", h.unassignClient)

	r.Post("/{id}/generate", h.generate)
}

type createRequest struct {
	Title         string           `json:"title" validate:"required"`
	Description   string           `json:"description"`
	CategoryID    *int64           `json:"category_id,omitempty"`
	Cadence       calendar.Cadence `json:"cadence" validate:"required"`
	Interval      *int             `json:"interval,omitempty"`
	FinancialYear *string          `json:"financial_year,omitempty"`
	DefaultDueDay *int             `json:"default_due_day,omitempty"`
	StartDate     time.Time        `json:"start_date" validate:"required"`
	EndDate       *time.Time       `json:"end_date,omitempty"`

	Billable  bool             `json:"billable"`
	HSNSAC    *string          `json:"hsn_sac,omitempty"`
	GSTRate   *decimal.Decimal `json:"gst_rate,omitempty"`
	UnitLabel *string          `json:"unit_label,omitempty"`

	Active *bool `json:"active,omitempty"`
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

	m, err := h.svc.Create(r.Context(), taskmaster.CreateParams{
		Title:         req.Title,
		Description:   req.Description,
		CategoryID:    req.CategoryID,
		Cadence:       req.Cadence,
		Interval:      req.Interval,
		FinancialYear: req.FinancialYear,
		DefaultDueDay: req.DefaultDueDay,
		StartDate:     req.StartDate,
		EndDate:       req.EndDate,
		Billable:      req.Billable,
		HSNSAC:        req.HSNSAC,
		GSTRate:       req.GSTRate,
		UnitLabel:     req.UnitLabel,
		Active:        req.Active,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)

	if err := json.NewEncoder(w).Encode(toResponse(m)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	filter := taskmaster.ListFilter{}

	if s := r.URL.Query().Get("active"); s != "" {
		if active, err := strconv.ParseBool(s); err == nil {
			filter.Active = &active
		}
	}

	if s := r.URL.Query().Get("category_id"); s != "" {
		if id, err := strconv.ParseInt(s, 10, 64); err == nil {
			filter.CategoryID = &id
		}
	}

	masters, err := h.svc.List(r.Context(), filter)
	if err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toResponseList(masters)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r, "id")
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	m, err := h.svc.Get(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toResponse(m)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

type updateRequest struct {
	Title         *string           `json:"title,omitempty"`
	Description   *string           `json:"description,omitempty"`
	CategoryID    *int64            `json:"category_id,omitempty"`
	Cadence       *calendar.Cadence `json:"cadence,omitempty"`
	Interval      *int              `json:"interval,omitempty"`
	FinancialYear *string           `json:"financial_year,omitempty"`
	DefaultDueDay *int              `json:"default_due_day,omitempty"`
	StartDate     *time.Time        `json:"start_date,omitempty"`
	EndDate       *time.Time        `json:"end_date,omitempty"`

	Billable  *bool            `json:"billable,omitempty"`
	HSNSAC    *string          `json:"hsn_sac,omitempty"`
	GSTRate   *decimal.Decimal `json:"gst_rate,omitempty"`
	UnitLabel *string          `json:"unit_label,omitempty"`

	Active *bool `json:"active,omitempty"`
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r, "id")
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	var req updateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	m, err := h.svc.Update(r.Context(), id, taskmaster.UpdateParams{
		Title:         req.Title,
		Description:   req.Description,
		CategoryID:    req.CategoryID,
		Cadence:       req.Cadence,
		Interval:      req.Interval,
		FinancialYear: req.FinancialYear,
		DefaultDueDay: req.DefaultDueDay,
		StartDate:     req.StartDate,
		EndDate:       req.EndDate,
		Billable:      req.Billable,
		HSNSAC:        req.HSNSAC,
		GSTRate:       req.GSTRate,
		UnitLabel:     req.UnitLabel,
		Active:        req.Active,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toResponse(m)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) disable(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r, "id")
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	if err := h.svc.Disable(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

type assignClientsRequest struct {
	ClientIDs    []int64    `json:"client_ids" validate:"required,min=1"`
	CustomDueDay *int       `json:"custom_due_day,omitempty"`
	StartDate    *time.Time `json:"start_date,omitempty"`
	EndDate      *time.Time `json:"end_date,omitempty"`
	Active       *bool      `json:"active,omitempty"`
}

func (h *Handler) assignClients(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r, "id")
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	var req assignClientsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := h.validate.Struct(req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	m, err := h.svc.AssignClients(r.Context(), id, taskmaster.AssignClientsParams{
		ClientIDs:    req.ClientIDs,
		CustomDueDay: req.CustomDueDay,
		StartDate:    req.StartDate,
		EndDate:      req.EndDate,
		Active:       req.Active,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toResponse(m)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) unassignClient(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r, "id")
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	clientID, err := parseID(r, "clientID")
	if err != nil {
		http.Error(w, "invalid client id", http.StatusBadRequest)
		return
	}

	if err := h.svc.UnassignClient(r.Context(), id, clientID); err != nil {
		writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

type generateRequest struct {
	FinancialYear string `json:"financial_year"`
	Month         *int   `json:"month,omitempty"`
	Quarter       *int   `json:"quarter,omitempty"`
	Year          *int   `json:"year,omitempty"`

	Billable   *bool            `json:"billable,omitempty"`
	HSNSAC     *string          `json:"hsn_sac,omitempty"`
	GSTRate    *decimal.Decimal `json:"gst_rate,omitempty"`
	UnitLabel  *string          `json:"unit_label,omitempty"`
	AssigneeID *int64           `json:"assignee_id,omitempty"`
}

type generateResponse struct {
	TaskMasterID    int64      `json:"task_master_id"`
	PeriodKey       string     `json:"period_key,omitempty"`
	PeriodStart     *time.Time `json:"period_start,omitempty"`
	PeriodEnd       *time.Time `json:"period_end,omitempty"`
	Created         int        `json:"created"`
	SkippedExisting int        `json:"skipped_existing"`
}

func (h *Handler) generate(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r, "id")
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	var req generateRequest
	if r.ContentLength > 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
	}

	sel := taskmaster.PeriodSelector{
		FinancialYear: req.FinancialYear,
		Quarter:       req.Quarter,
		Year:          req.Year,
	}

	if req.Month != nil {
		sel.Month = new(time.Month(*req.Month))
	}

	res, err := h.svc.GenerateForPeriod(r.Context(), id, sel, taskmaster.Overrides{
		Billable:   req.Billable,
		HSNSAC:     req.HSNSAC,
		GSTRate:    req.GSTRate,
		UnitLabel:  req.UnitLabel,
		AssigneeID: req.AssigneeID,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(generateResponse{
		TaskMasterID:    res.TaskMasterID,
		PeriodKey:       res.PeriodKey,
		PeriodStart:     res.PeriodStart,
		PeriodEnd:       res.PeriodEnd,
		Created:         res.Created,
		SkippedExisting: res.SkippedExisting,
	}); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func parseID(r *http.Request, name string) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, name), 10, 64)
}

func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, taskmaster.ErrInvalid), errors.Is(err, calendar.ErrInvalidPeriod):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, taskmaster.ErrNotFound):
		http.Error(w, "task master not found", http.StatusNotFound)
	case errors.Is(err, taskmaster.ErrInactive), errors.Is(err, taskmaster.ErrNoClients):
		http.Error(w, err.Error(), http.StatusConflict)
	default:
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}
