package taskmaster

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/arindamg/taskledger/internal/calendar"
	"github.com/arindamg/taskledger/internal/task"
)

// DueKey identifies one (client, due date) slot inside a generation window.
type DueKey struct {
	ClientID int64
	DueDate  string // time.DateOnly form
}

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=taskmaster
type Repository interface {
	Create(ctx context.Context, m *TaskMaster) error
	Get(ctx context.Context, id int64) (*TaskMaster, error)
	Update(ctx context.Context, m *TaskMaster) error
	List(ctx context.Context, filter ListFilter) ([]*TaskMaster, error)
	Disable(ctx context.Context, id int64) error
	ExistsByTitleCadence(ctx context.Context, title string, cadence calendar.Cadence) (bool, error)
	// EnsureCategory finds or creates a category by name.
	EnsureCategory(ctx context.Context, name string) (int64, error)

	UpsertClientLinks(ctx context.Context, taskMasterID int64, links []ClientLink) error
	RemoveClientLink(ctx context.Context, taskMasterID, clientID int64) error

	// Generation lookups, each loaded once per call so the fan-out loop dedups
	// in memory.
	ExistingClientIDs(ctx context.Context, taskMasterID int64, clientIDs []int64) (map[int64]bool, error)
	ExistingDueKeys(ctx context.Context, taskMasterID int64, window calendar.Range, clientIDs []int64) (map[DueKey]bool, error)
	ExistingPeriodClientIDs(ctx context.Context, taskMasterID int64, periodStart time.Time, clientIDs []int64) (map[int64]bool, error)

	// CreateGeneratedTask persists one instance plus its optional default
	// assignment as a single atomic unit.
	CreateGeneratedTask(ctx context.Context, t *task.Task, assigneeID *int64) error
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

type ListFilter struct {
	Active     *bool
	CategoryID *int64
}

type CreateParams struct {
	Title         string
	Description   string
	CategoryID    *int64
	Cadence       calendar.Cadence
	Interval      *int
	FinancialYear *string
	DefaultDueDay *int
	StartDate     time.Time
	EndDate       *time.Time
	Billable      bool
	HSNSAC        *string
	GSTRate       *decimal.Decimal
	UnitLabel     *string
	Active        *bool
}

func (s *Service) Create(ctx context.Context, params CreateParams) (*TaskMaster, error) {
	if params.Title == "" {
		return nil, fmt.Errorf("%w: title is required", ErrInvalid)
	}

	if !params.Cadence.Valid() {
		return nil, fmt.Errorf("%w: unknown cadence %q", ErrInvalid, params.Cadence)
	}

	if params.Interval != nil && *params.Interval < 1 {
		return nil, fmt.Errorf("%w: interval must be >= 1", ErrInvalid)
	}

	if params.EndDate != nil && params.EndDate.Before(params.StartDate) {
		return nil, fmt.Errorf("%w: endDate cannot be before startDate", ErrInvalid)
	}

	m := &TaskMaster{
		Title:         params.Title,
		Description:   params.Description,
		CategoryID:    params.CategoryID,
		Cadence:       params.Cadence,
		Interval:      params.Interval,
		FinancialYear: params.FinancialYear,
		DefaultDueDay: params.DefaultDueDay,
		StartDate:     calendar.Midnight(params.StartDate),
		EndDate:       params.EndDate,
		Billable:      params.Billable,
		HSNSAC:        params.HSNSAC,
		GSTRate:       params.GSTRate,
		UnitLabel:     params.UnitLabel,
		Active:        true,
	}

	if params.Active != nil {
		m.Active = *params.Active
	}

	if !m.Billable {
		m.HSNSAC = nil
		m.GSTRate = nil
		m.UnitLabel = nil
	}

	if err := s.repo.Create(ctx, m); err != nil {
		return nil, fmt.Errorf("creating task master: %w", err)
	}

	return m, nil
}

// UpdateParams carries field-level updates; nil leaves a field untouched.
type UpdateParams struct {
	Title         *string
	Description   *string
	CategoryID    *int64
	Cadence       *calendar.Cadence
	Interval      *int
	FinancialYear *string
	DefaultDueDay *int
	StartDate     *time.Time
	EndDate       *time.Time
	Billable      *bool
	HSNSAC        *string
	GSTRate       *decimal.Decimal
	UnitLabel     *string
	Active        *bool
}

func (s *Service) Update(ctx context.Context, id int64, params UpdateParams) (*TaskMaster, error) {
	m, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if params.Interval != nil && *params.Interval < 1 {
		return nil, fmt.Errorf("%w: interval must be >= 1", ErrInvalid)
	}

	if params.Cadence != nil && !params.Cadence.Valid() {
		return nil, fmt.Errorf("%w: unknown cadence %q", ErrInvalid, *params.Cadence)
	}

	if params.Title != nil {
		m.Title = *params.Title
	}

	if params.Description != nil {
		m.Description = *params.Description
	}

	if params.CategoryID != nil {
		m.CategoryID = params.CategoryID
	}

	if params.Cadence != nil {
		m.Cadence = *params.Cadence
	}

	if params.Interval != nil {
		m.Interval = params.Interval
	}

	if params.FinancialYear != nil {
		m.FinancialYear = params.FinancialYear
	}

	if params.DefaultDueDay != nil {
		m.DefaultDueDay = params.DefaultDueDay
	}

	if params.StartDate != nil {
		m.StartDate = calendar.Midnight(*params.StartDate)
	}

	if params.EndDate != nil {
		m.EndDate = params.EndDate
	}

	if m.EndDate != nil && m.EndDate.Before(m.StartDate) {
		return nil, fmt.Errorf("%w: endDate cannot be before startDate", ErrInvalid)
	}

	if params.Billable != nil {
		m.Billable = *params.Billable
	}

	if params.HSNSAC != nil {
		m.HSNSAC = params.HSNSAC
	}

	if params.GSTRate != nil {
		m.GSTRate = params.GSTRate
	}

	if params.UnitLabel != nil {
		m.UnitLabel = params.UnitLabel
	}

	if params.Active != nil {
		m.Active = *params.Active
	}

	if err := s.repo.Update(ctx, m); err != nil {
		return nil, fmt.Errorf("updating task master: %w", err)
	}

	return s.repo.Get(ctx, id)
}

// Disable flips the active flag off. Task masters are never hard-deleted so
// generated tasks keep their provenance.
func (s *Service) Disable(ctx context.Context, id int64) error {
	if _, err := s.repo.Get(ctx, id); err != nil {
		return err
	}

	return s.repo.Disable(ctx, id)
}

func (s *Service) Get(ctx context.Context, id int64) (*TaskMaster, error) {
	return s.repo.Get(ctx, id)
}

func (s *Service) List(ctx context.Context, filter ListFilter) ([]*TaskMaster, error) {
	return s.repo.List(ctx, filter)
}

// AssignClientsParams applies one override window to every client in the
// batch, mirroring the upsert semantics of assignment: re-assigning an
// existing link updates its overrides instead of duplicating it.
type AssignClientsParams struct {
	ClientIDs    []int64
	CustomDueDay *int
	StartDate    *time.Time
	EndDate      *time.Time
	Active       *bool
}

func (s *Service) AssignClients(ctx context.Context, taskMasterID int64, params AssignClientsParams) (*TaskMaster, error) {
	if _, err := s.repo.Get(ctx, taskMasterID); err != nil {
		return nil, err
	}

	if len(params.ClientIDs) == 0 {
		return nil, fmt.Errorf("%w: clientIds is required", ErrInvalid)
	}

	links := make([]ClientLink, 0, len(params.ClientIDs))

	for _, clientID := range params.ClientIDs {
		link := ClientLink{
			TaskMasterID: taskMasterID,
			ClientID:     clientID,
			CustomDueDay: params.CustomDueDay,
			StartDate:    params.StartDate,
			EndDate:      params.EndDate,
			Active:       true,
		}

		if params.Active != nil {
			link.Active = *params.Active
		}

		links = append(links, link)
	}

	if err := s.repo.UpsertClientLinks(ctx, taskMasterID, links); err != nil {
		return nil, fmt.Errorf("assigning clients: %w", err)
	}

	return s.repo.Get(ctx, taskMasterID)
}

func (s *Service) UnassignClient(ctx context.Context, taskMasterID, clientID int64) error {
	return s.repo.RemoveClientLink(ctx, taskMasterID, clientID)
}

// ExistsByTitleCadence reports whether a master with the same title and
// cadence already exists. Task masters are FY-agnostic for this check.
func (s *Service) ExistsByTitleCadence(ctx context.Context, title string, cadence calendar.Cadence) (bool, error) {
	return s.repo.ExistsByTitleCadence(ctx, title, cadence)
}

func (s *Service) EnsureCategory(ctx context.Context, name string) (int64, error) {
	if name == "" {
		return 0, fmt.Errorf("%w: category name is required", ErrInvalid)
	}

	return s.repo.EnsureCategory(ctx, name)
}
