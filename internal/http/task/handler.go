package task

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/arindamg/taskledger/internal/calendar"
	"github.com/arindamg/taskledger/internal/task"
)

type Handler struct {
	svc      *task.Service
	validate *validator.Validate
}

func NewHandler(svc *task.Service) *Handler {
	return &Handler{
		svc:      svc,
		validate: validator.New(validator.WithRequiredStructEnabled()),
	}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.create)
	r.Get("/", h.list)

	r.Post("/templates", h.createTemplate)
	r.Get("/templates/{id}", h.getTemplate)
	r.Patch("/templates/{id}", h.updateTemplate)
	r.Delete("/templates/{id}", h.deleteTemplate)
	r.Post("/templates/{id}/generate", h.generate)

	r.Get("/{id}", h.get)
	r.Patch("/{id}", h.update)
	r.Delete("/{id}", h.delete)
}

type createTaskRequest struct {
	Title       string     `json:"title" validate:"required"`
	Description string     `json:"description"`
	ClientID    int64      `json:"client_id" validate:"required"`
	DueDate     *time.Time `json:"due_date,omitempty"`
	AssigneeIDs []int64    `json:"assignee_ids,omitempty"`
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req createTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := h.validate.Struct(req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	t, err := h.svc.CreateTask(r.Context(), task.CreateTaskParams{
		Title:       req.Title,
		Description: req.Description,
		ClientID:    req.ClientID,
		DueDate:     req.DueDate,
		AssigneeIDs: req.AssigneeIDs,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)

	if err := json.NewEncoder(w).Encode(toTaskResponse(t)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	filter := task.ListFilter{}

	if s := r.URL.Query().Get("status"); s != "" {
		filter.Status = new(task.Status(s))
	}

	if s := r.URL.Query().Get("client_id"); s != "" {
		if id, err := strconv.ParseInt(s, 10, 64); err == nil {
			filter.ClientID = &id
		}
	}

	if s := r.URL.Query().Get("start_date"); s != "" {
		if t, err := time.Parse(time.DateOnly, s); err == nil {
			filter.StartDate = new(t)
		}
	}

	if s := r.URL.Query().Get("end_date"); s != "" {
		if t, err := time.Parse(time.DateOnly, s); err == nil {
			filter.EndDate = new(t)
		}
	}

	tasks, err := h.svc.List(r.Context(), filter)
	if err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toTaskResponseList(tasks)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	t, err := h.svc.Get(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toTaskResponse(t)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

type updateTaskRequest struct {
	Title       *string      `json:"title,omitempty"`
	Description *string      `json:"description,omitempty"`
	DueDate     *time.Time   `json:"due_date,omitempty"`
	Status      *task.Status `json:"status,omitempty"`
	AssigneeIDs []int64      `json:"assignee_ids,omitempty"`
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	var req updateTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	t, err := h.svc.UpdateTask(r.Context(), id, task.UpdateTaskParams{
		Title:       req.Title,
		Description: req.Description,
		DueDate:     req.DueDate,
		Status:      req.Status,
		AssigneeIDs: req.AssigneeIDs,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toTaskResponse(t)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	if err := h.svc.Delete(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

type createTemplateRequest struct {
	Title        string           `json:"title" validate:"required"`
	Description  string           `json:"description"`
	ClientID     int64            `json:"client_id" validate:"required"`
	Cadence      calendar.Cadence `json:"cadence" validate:"required"`
	Interval     int              `json:"interval"`
	StartDate    time.Time        `json:"start_date" validate:"required"`
	EndDate      *time.Time       `json:"end_date,omitempty"`
	SkipWeekends bool             `json:"skip_weekends"`
	Paused       bool             `json:"paused"`
	AssigneeIDs  []int64          `json:"assignee_ids,omitempty"`
}

func (h *Handler) createTemplate(w http.ResponseWriter, r *http.Request) {
	var req createTemplateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := h.validate.Struct(req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	interval := req.Interval
	if interval == 0 {
		interval = 1
	}

	tpl, err := h.svc.CreateTemplate(r.Context(), task.CreateTemplateParams{
		Title:        req.Title,
		Description:  req.Description,
		ClientID:     req.ClientID,
		Cadence:      req.Cadence,
		Interval:     interval,
		StartDate:    req.StartDate,
		EndDate:      req.EndDate,
		SkipWeekends: req.SkipWeekends,
		Paused:       req.Paused,
		AssigneeIDs:  req.AssigneeIDs,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)

	if err := json.NewEncoder(w).Encode(toTemplateResponse(tpl)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) getTemplate(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	tpl, err := h.svc.GetTemplate(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toTemplateResponse(tpl)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

type updateTemplateRequest struct {
	Title        *string           `json:"title,omitempty"`
	Description  *string           `json:"description,omitempty"`
	Cadence      *calendar.Cadence `json:"cadence,omitempty"`
	Interval     *int              `json:"interval,omitempty"`
	StartDate    *time.Time        `json:"start_date,omitempty"`
	EndDate      *time.Time        `json:"end_date,omitempty"`
	SkipWeekends *bool             `json:"skip_weekends,omitempty"`
	Paused       *bool             `json:"paused,omitempty"`
	AssigneeIDs  []int64           `json:"assignee_ids,omitempty"`
}

func (h *Handler) updateTemplate(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	var req updateTemplateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	tpl, err := h.svc.UpdateTemplate(r.Context(), id, task.UpdateTemplateParams{
		Title:        req.Title,
		Description:  req.Description,
		Cadence:      req.Cadence,
		Interval:     req.Interval,
		StartDate:    req.StartDate,
		EndDate:      req.EndDate,
		SkipWeekends: req.SkipWeekends,
		Paused:       req.Paused,
		AssigneeIDs:  req.AssigneeIDs,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toTemplateResponse(tpl)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) deleteTemplate(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	if err := h.svc.DeleteTemplate(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

type generateRequest struct {
	Mode task.GenerateMode `json:"mode"`
}

type generateResponse struct {
	Created         int `json:"created"`
	SkippedExisting int `json:"skipped_existing"`
}

func (h *Handler) generate(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	req := generateRequest{Mode: task.ModeFillGaps}
	if r.ContentLength > 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
	}

	res, err := h.svc.GenerateInstances(r.Context(), id, req.Mode)
	if err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(generateResponse{
		Created:         res.Created,
		SkippedExisting: res.SkippedExisting,
	}); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func parseID(r *http.Request) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
}

func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, task.ErrInvalid), errors.Is(err, calendar.ErrInvalidPeriod):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, task.ErrNotFound):
		http.Error(w, "task not found", http.StatusNotFound)
	case errors.Is(err, task.ErrDuplicate):
		http.Error(w, err.Error(), http.StatusConflict)
	default:
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}
