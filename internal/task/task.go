package task

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"

	"github.com/arindamg/taskledger/internal/calendar"
)

var (
	ErrNotFound  = errors.New("task not found")
	ErrInvalid   = errors.New("invalid task input")
	ErrDuplicate = errors.New("duplicate task instance")
)

// Status is the lifecycle state of a work item.
type Status string

const (
	StatusPending   Status = "PENDING"
	StatusCompleted Status = "COMPLETED"
	StatusInvoiced  Status = "INVOICED"
)

// Template is a recurring work definition. It never appears in visible task
// listings itself; it only spawns dated instances that point back to it.
type Template struct {
	ID           int64
	Title        string
	Description  string
	ClientID     int64
	Cadence      calendar.Cadence
	Interval     int
	StartDate    time.Time
	EndDate      *time.Time
	SkipWeekends bool
	Paused       bool
	PausedAt     *time.Time
	AssigneeIDs  []int64 // ordered by assignment time
	CreatedAt    time.Time
	UpdatedAt    *time.Time
	DeletedAt    *time.Time
}

// Task is a concrete work item: either a one-off task or an instance
// generated from a Template or a task master. Billing fields are a snapshot
// taken at generation time and are populated only when Billable is true.
type Task struct {
	ID           int64
	Title        string
	Description  string
	ClientID     int64
	TemplateID   *int64
	TaskMasterID *int64
	CategoryID   *int64
	DueDate      *time.Time
	Status       Status
	CompletedAt  *time.Time
	AssigneeIDs  []int64

	Billable  bool
	HSNSAC    *string
	GSTRate   *decimal.Decimal
	UnitLabel *string

	PeriodStart *time.Time
	PeriodEnd   *time.Time

	CreatedAt time.Time
	UpdatedAt *time.Time
}

// Generated reports whether the task was spawned from a recurrence template.
func (t *Task) Generated() bool {
	return t.TemplateID != nil
}
