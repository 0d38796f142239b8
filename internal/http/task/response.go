package task

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/arindamg/taskledger/internal/calendar"
	"github.com/arindamg/taskledger/internal/task"
)

type taskResponse struct {
	ID           int64       `json:"id"`
	Title        string      `json:"title"`
	Description  string      `json:"description,omitempty"`
	ClientID     int64       `json:"client_id"`
	TemplateID   *int64      `json:"template_id,omitempty"`
	TaskMasterID *int64      `json:"task_master_id,omitempty"`
	CategoryID   *int64      `json:"category_id,omitempty"`
	DueDate      *time.Time  `json:"due_date,omitempty"`
	Status       task.Status `json:"status"`
	CompletedAt  *time.Time  `json:"completed_at,omitempty"`
	AssigneeIDs  []int64     `json:"assignee_ids,omitempty"`

	Billable  bool             `json:"billable"`
	HSNSAC    *string          `json:"hsn_sac,omitempty"`
	GSTRate   *decimal.Decimal `json:"gst_rate,omitempty"`
	UnitLabel *string          `json:"unit_label,omitempty"`

	PeriodStart *time.Time `json:"period_start,omitempty"`
	PeriodEnd   *time.Time `json:"period_end,omitempty"`

	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt *time.Time `json:"updated_at,omitempty"`
}

func toTaskResponse(t *task.Task) taskResponse {
	return taskResponse{
		ID:           t.ID,
		Title:        t.Title,
		Description:  t.Description,
		ClientID:     t.ClientID,
		TemplateID:   t.TemplateID,
		TaskMasterID: t.TaskMasterID,
		CategoryID:   t.CategoryID,
		DueDate:      t.DueDate,
		Status:       t.Status,
		CompletedAt:  t.CompletedAt,
		AssigneeIDs:  t.AssigneeIDs,
		Billable:     t.Billable,
		HSNSAC:       t.HSNSAC,
		GSTRate:      t.GSTRate,
		UnitLabel:    t.UnitLabel,
		PeriodStart:  t.PeriodStart,
		PeriodEnd:    t.PeriodEnd,
		CreatedAt:    t.CreatedAt,
		UpdatedAt:    t.UpdatedAt,
	}
}

func toTaskResponseList(tasks []*task.Task) []taskResponse {
	resp := make([]taskResponse, len(tasks))
	for i, t := range tasks {
		resp[i] = toTaskResponse(t)
	}

	return resp
}

type templateResponse struct {
	ID           int64            `json:"id"`
	Title        string           `json:"title"`
	Description  string           `json:"description,omitempty"`
	ClientID     int64            `json:"client_id"`
	Cadence      calendar.Cadence `json:"cadence"`
	Interval     int              `json:"interval"`
	StartDate    time.Time        `json:"start_date"`
	EndDate      *time.Time       `json:"end_date,omitempty"`
	SkipWeekends bool             `json:"skip_weekends"`
	Paused       bool             `json:"paused"`
	PausedAt     *time.Time       `json:"paused_at,omitempty"`
	AssigneeIDs  []int64          `json:"assignee_ids,omitempty"`
	CreatedAt    time.Time        `json:"created_at"`
	UpdatedAt    *time.Time       `json:"updated_at,omitempty"`
}

func toTemplateResponse(tpl *task.Template) templateResponse {
	return templateResponse{
		ID:           tpl.ID,
		Title:        tpl.Title,
		Description:  tpl.Description,
		ClientID:     tpl.ClientID,
		Cadence:      tpl.Cadence,
		Interval:     tpl.Interval,
		StartDate:    tpl.StartDate,
		EndDate:      tpl.EndDate,
		SkipWeekends: tpl.SkipWeekends,
		Paused:       tpl.Paused,
		PausedAt:     tpl.PausedAt,
		AssigneeIDs:  tpl.AssigneeIDs,
		CreatedAt:    tpl.CreatedAt,
		UpdatedAt:    tpl.UpdatedAt,
	}
}
