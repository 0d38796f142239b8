package task

import (
	"context"
	"fmt"
	"time"

	"github.com/arindamg/taskledger/internal/calendar"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=task
type Repository interface {
	CreateTemplate(ctx context.Context, tpl *Template) error
	GetTemplate(ctx context.Context, id int64) (*Template, error)
	UpdateTemplate(ctx context.Context, tpl *Template) error
	SoftDeleteTemplate(ctx context.Context, id int64, at time.Time) error
	ListActiveTemplates(ctx context.Context) ([]*Template, error)
	ReplaceTemplateAssignments(ctx context.Context, templateID int64, userIDs []int64) error

	CreateTask(ctx context.Context, t *Task) error
	GetTask(ctx context.Context, id int64) (*Task, error)
	UpdateTask(ctx context.Context, t *Task) error
	ListTasks(ctx context.Context, filter ListFilter) ([]*Task, error)
	DeleteTask(ctx context.Context, id int64) error
	ReplaceTaskAssignments(ctx context.Context, taskID int64, userIDs []int64) error

	// CreateInstance persists a generated instance together with its cloned
	// assignment set as one atomic unit.
	CreateInstance(ctx context.Context, t *Task, assigneeIDs []int64) error
	InstanceExists(ctx context.Context, templateID int64, dueDate time.Time) (bool, error)
	// DeleteFutureInstances removes non-completed generated instances of the
	// template due on or after the given instant. Completed instances survive.
	DeleteFutureInstances(ctx context.Context, templateID int64, from time.Time) (int64, error)
}

type Service struct {
	repo Repository
	now  func() time.Time
}

type Option func(*Service)

// WithClock overrides the time source, mainly for tests.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

func NewService(repo Repository, opts ...Option) *Service {
	s := &Service{repo: repo, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}

	return s
}

type ListFilter struct {
	Status    *Status
	ClientID  *int64
	StartDate *time.Time
	EndDate   *time.Time
}

type CreateTaskParams struct {
	Title       string
	Description string
	ClientID    int64
	DueDate     *time.Time
	AssigneeIDs []int64
}

// CreateTask creates a one-off work item.
func (s *Service) CreateTask(ctx context.Context, params CreateTaskParams) (*Task, error) {
	if params.Title == "" {
		return nil, fmt.Errorf("%w: title is required", ErrInvalid)
	}

	if params.ClientID == 0 {
		return nil, fmt.Errorf("%w: clientId is required", ErrInvalid)
	}

	t := &Task{
		Title:       params.Title,
		Description: params.Description,
		ClientID:    params.ClientID,
		DueDate:     params.DueDate,
		Status:      StatusPending,
	}

	if err := s.repo.CreateInstance(ctx, t, params.AssigneeIDs); err != nil {
		return nil, fmt.Errorf("creating task: %w", err)
	}

	return s.repo.GetTask(ctx, t.ID)
}

type CreateTemplateParams struct {
	Title        string
	Description  string
	ClientID     int64
	Cadence      calendar.Cadence
	Interval     int
	StartDate    time.Time
	EndDate      *time.Time
	SkipWeekends bool
	Paused       bool
	AssigneeIDs  []int64
}

// CreateTemplate creates a recurrence template and, unless it starts out
// paused, immediately generates its instances from the start date.
func (s *Service) CreateTemplate(ctx context.Context, params CreateTemplateParams) (*Template, error) {
	if params.Title == "" {
		return nil, fmt.Errorf("%w: title is required", ErrInvalid)
	}

	switch params.Cadence {
	case calendar.Daily, calendar.Weekly, calendar.Monthly, calendar.Yearly:
	default:
		return nil, fmt.Errorf("%w: cadence %q not allowed for templates", ErrInvalid, params.Cadence)
	}

	if params.Interval < 1 {
		return nil, fmt.Errorf("%w: interval must be >= 1", ErrInvalid)
	}

	if params.StartDate.IsZero() {
		return nil, fmt.Errorf("%w: startDate is required", ErrInvalid)
	}

	endDate := params.EndDate
	if endDate == nil {
		d := params.StartDate.AddDate(1, 0, 0)
		endDate = &d
	}

	if endDate.Before(params.StartDate) {
		return nil, fmt.Errorf("%w: endDate cannot be before startDate", ErrInvalid)
	}

	tpl := &Template{
		Title:        params.Title,
		Description:  params.Description,
		ClientID:     params.ClientID,
		Cadence:      params.Cadence,
		Interval:     params.Interval,
		StartDate:    calendar.Midnight(params.StartDate),
		EndDate:      endDate,
		SkipWeekends: params.SkipWeekends,
		Paused:       params.Paused,
	}

	if params.Paused {
		now := s.now()
		tpl.PausedAt = &now
	}

	if err := s.repo.CreateTemplate(ctx, tpl); err != nil {
		return nil, fmt.Errorf("creating template: %w", err)
	}

	if len(params.AssigneeIDs) > 0 {
		if err := s.repo.ReplaceTemplateAssignments(ctx, tpl.ID, params.AssigneeIDs); err != nil {
			return nil, fmt.Errorf("assigning template: %w", err)
		}

		tpl.AssigneeIDs = params.AssigneeIDs
	}

	if !tpl.Paused {
		if _, err := s.GenerateInstances(ctx, tpl.ID, ModeInitial); err != nil {
			return nil, fmt.Errorf("generating initial instances: %w", err)
		}
	}

	return s.repo.GetTemplate(ctx, tpl.ID)
}

// UpdateTemplateParams carries field-level updates; nil means "leave as is".
type UpdateTemplateParams struct {
	Title        *string
	Description  *string
	Cadence      *calendar.Cadence
	Interval     *int
	StartDate    *time.Time
	EndDate      *time.Time
	SkipWeekends *bool
	Paused       *bool
	AssigneeIDs  []int64 // non-nil replaces the whole set
}

// UpdateTemplate applies a partial edit. Any change to the recurrence shape
// (cadence, interval, dates, weekend policy) or the assignment set deletes
// future non-completed instances and regenerates from the next occurrence.
// Resuming a paused template only fills gaps.
func (s *Service) UpdateTemplate(ctx context.Context, id int64, params UpdateTemplateParams) (*Template, error) {
	tpl, err := s.repo.GetTemplate(ctx, id)
	if err != nil {
		return nil, err
	}

	if params.Interval != nil && *params.Interval < 1 {
		return nil, fmt.Errorf("%w: interval must be >= 1", ErrInvalid)
	}

	nextStart := tpl.StartDate
	if params.StartDate != nil {
		nextStart = calendar.Midnight(*params.StartDate)
	}

	nextEnd := tpl.EndDate
	if params.EndDate != nil {
		nextEnd = params.EndDate
	}

	if nextEnd != nil && nextEnd.Before(nextStart) {
		return nil, fmt.Errorf("%w: endDate cannot be before startDate", ErrInvalid)
	}

	regenerate := (params.Cadence != nil && *params.Cadence != tpl.Cadence) ||
		(params.Interval != nil && *params.Interval != tpl.Interval) ||
		(params.StartDate != nil && !nextStart.Equal(tpl.StartDate)) ||
		(params.EndDate != nil && !equalTimePtr(nextEnd, tpl.EndDate)) ||
		(params.SkipWeekends != nil && *params.SkipWeekends != tpl.SkipWeekends)

	pauseChanged := params.Paused != nil && *params.Paused != tpl.Paused

	if params.Title != nil {
		tpl.Title = *params.Title
	}

	if params.Description != nil {
		tpl.Description = *params.Description
	}

	if params.Cadence != nil {
		tpl.Cadence = *params.Cadence
	}

	if params.Interval != nil {
		tpl.Interval = *params.Interval
	}

	tpl.StartDate = nextStart
	tpl.EndDate = nextEnd

	if params.SkipWeekends != nil {
		tpl.SkipWeekends = *params.SkipWeekends
	}

	if pauseChanged {
		tpl.Paused = *params.Paused
		if tpl.Paused {
			now := s.now()
			tpl.PausedAt = &now
		} else {
			tpl.PausedAt = nil
		}
	}

	if err := s.repo.UpdateTemplate(ctx, tpl); err != nil {
		return nil, fmt.Errorf("updating template: %w", err)
	}

	if params.AssigneeIDs != nil {
		if err := s.repo.ReplaceTemplateAssignments(ctx, id, params.AssigneeIDs); err != nil {
			return nil, fmt.Errorf("replacing assignments: %w", err)
		}

		// Future instances must pick up the new assignment set.
		regenerate = true
	}

	switch {
	case regenerate:
		if err := s.regenerateFutureInstances(ctx, id); err != nil {
			return nil, err
		}
	case pauseChanged && !tpl.Paused:
		if _, err := s.GenerateInstances(ctx, id, ModeFillGaps); err != nil {
			return nil, err
		}
	}

	return s.repo.GetTemplate(ctx, id)
}

// DeleteTemplate soft-deletes a template and pauses it. Existing instances
// are kept.
func (s *Service) DeleteTemplate(ctx context.Context, id int64) error {
	if _, err := s.repo.GetTemplate(ctx, id); err != nil {
		return err
	}

	return s.repo.SoftDeleteTemplate(ctx, id, s.now())
}

func (s *Service) GetTemplate(ctx context.Context, id int64) (*Template, error) {
	return s.repo.GetTemplate(ctx, id)
}

type UpdateTaskParams struct {
	Title       *string
	Description *string
	DueDate     *time.Time
	Status      *Status
	AssigneeIDs []int64
}

// UpdateTask edits a one-off task or a generated instance. Completing a task
// stamps CompletedAt.
func (s *Service) UpdateTask(ctx context.Context, id int64, params UpdateTaskParams) (*Task, error) {
	t, err := s.repo.GetTask(ctx, id)
	if err != nil {
		return nil, err
	}

	if params.Title != nil {
		t.Title = *params.Title
	}

	if params.Description != nil {
		t.Description = *params.Description
	}

	if params.DueDate != nil {
		t.DueDate = params.DueDate
	}

	if params.Status != nil {
		t.Status = *params.Status
		if t.Status == StatusCompleted && t.CompletedAt == nil {
			now := s.now()
			t.CompletedAt = &now
		}
	}

	if err := s.repo.UpdateTask(ctx, t); err != nil {
		return nil, fmt.Errorf("updating task: %w", err)
	}

	if params.AssigneeIDs != nil {
		if err := s.repo.ReplaceTaskAssignments(ctx, id, params.AssigneeIDs); err != nil {
			return nil, fmt.Errorf("replacing assignments: %w", err)
		}
	}

	return s.repo.GetTask(ctx, id)
}

func (s *Service) Get(ctx context.Context, id int64) (*Task, error) {
	return s.repo.GetTask(ctx, id)
}

// List returns visible work items: one-off tasks and generated instances,
// never templates, never soft-deleted rows.
func (s *Service) List(ctx context.Context, filter ListFilter) ([]*Task, error) {
	return s.repo.ListTasks(ctx, filter)
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.repo.DeleteTask(ctx, id)
}

func equalTimePtr(a, b *time.Time) bool {
	if a == nil || b == nil {
		return a == b
	}

	return a.Equal(*b)
}
