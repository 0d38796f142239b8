package taskmaster

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	"github.com/arindamg/taskledger/internal/calendar"
	"github.com/arindamg/taskledger/internal/task"
)

// PeriodSelector is the caller's choice of generation window. Which fields
// are required depends on the task master's cadence.
type PeriodSelector struct {
	FinancialYear string
	Month         *time.Month
	Quarter       *int
	Year          *int
}

// Period is a resolved generation window. EVENT_BASED obligations have no
// window at all.
type Period struct {
	Key       string
	Window    calendar.Range
	HasWindow bool
}

// Overrides optionally replace the task master's billing defaults for one
// generation call, field by field. AssigneeID assigns every created instance
// to one user.
type Overrides struct {
	Billable   *bool
	HSNSAC     *string
	GSTRate    *decimal.Decimal
	UnitLabel  *string
	AssigneeID *int64
}

// GenerateResult reports what one fan-out call did. Conflicts surface here
// as skips, never as a global failure.
type GenerateResult struct {
	TaskMasterID    int64
	PeriodKey       string
	PeriodStart     *time.Time
	PeriodEnd       *time.Time
	Created         int
	SkippedExisting int
}

// CadenceRule is the per-cadence generation strategy: it resolves the
// caller's selector into a period and enumerates candidate due dates within
// a clamped client window. A nil candidate means one period-keyed instance
// with no due date.
type CadenceRule interface {
	ResolvePeriod(sel PeriodSelector) (Period, error)
	Candidates(window calendar.Range) []*time.Time
	// ClampsLinks reports whether per-client override windows narrow the
	// period before candidates are enumerated.
	ClampsLinks() bool
	// PerDueDate reports whether dedup runs per (client, due date) rather
	// than per (client, period start).
	PerDueDate() bool
}

// RuleFor selects the generation strategy for a cadence tag.
func RuleFor(c calendar.Cadence) (CadenceRule, error) {
	switch c {
	case calendar.EventBased:
		return eventBasedRule{}, nil
	case calendar.Daily:
		return dailyRule{}, nil
	case calendar.Weekly:
		return weeklyRule{}, nil
	case calendar.Monthly:
		return monthlyRule{}, nil
	case calendar.Quarterly:
		return quarterlyRule{}, nil
	case calendar.Yearly:
		return yearlyRule{}, nil
	}

	return nil, fmt.Errorf("%w: cadence %q not supported", ErrInvalid, c)
}

type eventBasedRule struct{}

func (eventBasedRule) ResolvePeriod(PeriodSelector) (Period, error) { return Period{}, nil }
func (eventBasedRule) Candidates(calendar.Range) []*time.Time      { return []*time.Time{nil} }
func (eventBasedRule) ClampsLinks() bool                           { return false }
func (eventBasedRule) PerDueDate() bool                            { return false }

// fyPeriod resolves a financial year optionally narrowed to one calendar
// month, shared by the DAILY and WEEKLY rules.
func fyPeriod(cadence calendar.Cadence, sel PeriodSelector) (Period, error) {
	if sel.FinancialYear == "" {
		return Period{}, fmt.Errorf("%w: financialYear is required for %s generation", ErrInvalid, cadence)
	}

	fy, err := calendar.ParseFinancialYear(sel.FinancialYear)
	if err != nil {
		return Period{}, err
	}

	period := Period{Key: fy.Label(), Window: fy.Range(), HasWindow: true}

	if sel.Month != nil {
		mr, err := fy.MonthRange(*sel.Month)
		if err != nil {
			return Period{}, err
		}

		period.Window = mr
		period.Key = fmt.Sprintf("%s-%02d", fy.Label(), *sel.Month)
	}

	return period, nil
}

type dailyRule struct{}

func (dailyRule) ResolvePeriod(sel PeriodSelector) (Period, error) {
	return fyPeriod(calendar.Daily, sel)
}

func (dailyRule) Candidates(window calendar.Range) []*time.Time {
	var due []*time.Time

	for d := range calendar.Days(window) {
		due = append(due, &d)
	}

	return due
}

func (dailyRule) ClampsLinks() bool { return true }
func (dailyRule) PerDueDate() bool  { return true }

type weeklyRule struct{}

func (weeklyRule) ResolvePeriod(sel PeriodSelector) (Period, error) {
	return fyPeriod(calendar.Weekly, sel)
}

// Candidates anchors weekly obligations on every Monday inside the window.
func (weeklyRule) Candidates(window calendar.Range) []*time.Time {
	var due []*time.Time

	for d := range calendar.Days(window) {
		if d.Weekday() == time.Monday {
			due = append(due, &d)
		}
	}

	return due
}

func (weeklyRule) ClampsLinks() bool { return true }
func (weeklyRule) PerDueDate() bool  { return true }

type monthlyRule struct{}

func (monthlyRule) ResolvePeriod(sel PeriodSelector) (Period, error) {
	if sel.Month == nil {
		return Period{}, fmt.Errorf("%w: month is required for MONTHLY generation", ErrInvalid)
	}

	var year int

	switch {
	case sel.FinancialYear != "":
		fy, err := calendar.ParseFinancialYear(sel.FinancialYear)
		if err != nil {
			return Period{}, err
		}

		year = fy.StartYear
		if *sel.Month < time.April {
			year = fy.EndYear
		}
	case sel.Year != nil:
		year = *sel.Year
	default:
		return Period{}, fmt.Errorf("%w: financialYear or year is required for MONTHLY generation", ErrInvalid)
	}

	if *sel.Month < time.January || *sel.Month > time.December {
		return Period{}, fmt.Errorf("%w: month %d", calendar.ErrInvalidPeriod, *sel.Month)
	}

	return Period{
		Key:       fmt.Sprintf("%d-%02d", year, *sel.Month),
		Window:    calendar.MonthRange(year, *sel.Month),
		HasWindow: true,
	}, nil
}

func (monthlyRule) Candidates(calendar.Range) []*time.Time { return []*time.Time{nil} }
func (monthlyRule) ClampsLinks() bool                      { return false }
func (monthlyRule) PerDueDate() bool                       { return false }

type quarterlyRule struct{}

func (quarterlyRule) ResolvePeriod(sel PeriodSelector) (Period, error) {
	if sel.FinancialYear == "" {
		return Period{}, fmt.Errorf("%w: financialYear is required for QUARTERLY generation", ErrInvalid)
	}

	if sel.Quarter == nil {
		return Period{}, fmt.Errorf("%w: quarter is required for QUARTERLY generation (1..4)", ErrInvalid)
	}

	fy, err := calendar.ParseFinancialYear(sel.FinancialYear)
	if err != nil {
		return Period{}, err
	}

	window, err := fy.QuarterRange(*sel.Quarter)
	if err != nil {
		return Period{}, err
	}

	return Period{
		Key:       fmt.Sprintf("%s-Q%d", fy.Label(), *sel.Quarter),
		Window:    window,
		HasWindow: true,
	}, nil
}

func (quarterlyRule) Candidates(calendar.Range) []*time.Time { return []*time.Time{nil} }
func (quarterlyRule) ClampsLinks() bool                      { return true }
func (quarterlyRule) PerDueDate() bool                       { return false }

type yearlyRule struct{}

func (yearlyRule) ResolvePeriod(sel PeriodSelector) (Period, error) {
	if sel.FinancialYear == "" {
		return Period{}, fmt.Errorf("%w: financialYear is required for YEARLY generation", ErrInvalid)
	}

	fy, err := calendar.ParseFinancialYear(sel.FinancialYear)
	if err != nil {
		return Period{}, err
	}

	return Period{Key: fy.Label(), Window: fy.Range(), HasWindow: true}, nil
}

func (yearlyRule) Candidates(calendar.Range) []*time.Time { return []*time.Time{nil} }
func (yearlyRule) ClampsLinks() bool                      { return true }
func (yearlyRule) PerDueDate() bool                       { return false }

// resolvedBilling is the per-call billing snapshot: caller override wins,
// else the task master default, independently per field. Classification
// fields are only carried when the resolved billable flag is true.
type resolvedBilling struct {
	billable  bool
	hsnSac    *string
	gstRate   *decimal.Decimal
	unitLabel *string
}

func resolveBilling(m *TaskMaster, ov Overrides) resolvedBilling {
	b := resolvedBilling{
		billable:  m.Billable,
		hsnSac:    m.HSNSAC,
		gstRate:   m.GSTRate,
		unitLabel: m.UnitLabel,
	}

	if ov.Billable != nil {
		b.billable = *ov.Billable
	}

	if ov.HSNSAC != nil {
		b.hsnSac = ov.HSNSAC
	}

	if ov.GSTRate != nil {
		b.gstRate = ov.GSTRate
	}

	if ov.UnitLabel != nil {
		b.unitLabel = ov.UnitLabel
	}

	if !b.billable {
		b.hsnSac = nil
		b.gstRate = nil
		b.unitLabel = nil
	}

	return b
}

// GenerateForPeriod fans one task master out across its active client links
// for one period. Repeated calls for the same (task master, period) are
// idempotent: already-generated slots are counted as skipped, never
// re-created. Each instance is one atomic unit, so a failure partway leaves
// earlier instances intact.
func (s *Service) GenerateForPeriod(ctx context.Context, taskMasterID int64, sel PeriodSelector, ov Overrides) (GenerateResult, error) {
	m, err := s.repo.Get(ctx, taskMasterID)
	if err != nil {
		return GenerateResult{}, err
	}

	if !m.Active {
		return GenerateResult{}, ErrInactive
	}

	if len(m.Clients) == 0 {
		return GenerateResult{}, ErrNoClients
	}

	res := GenerateResult{TaskMasterID: m.ID}

	links := m.ActiveLinks()
	if len(links) == 0 {
		return res, nil
	}

	rule, err := RuleFor(m.Cadence)
	if err != nil {
		return GenerateResult{}, err
	}

	period, err := rule.ResolvePeriod(sel)
	if err != nil {
		return GenerateResult{}, err
	}

	res.PeriodKey = period.Key

	if period.HasWindow {
		res.PeriodStart = &period.Window.Start
		res.PeriodEnd = &period.Window.End
	}

	billing := resolveBilling(m, ov)

	if m.Cadence == calendar.EventBased {
		return s.generateEventBased(ctx, m, links, billing, ov.AssigneeID, res)
	}

	if rule.PerDueDate() {
		return s.generatePerDueDate(ctx, m, rule, period, links, billing, ov.AssigneeID, res)
	}

	return s.generatePerPeriod(ctx, m, rule, period, links, billing, ov.AssigneeID, res)
}

// generateEventBased creates one instance per client link that has never had
// a task for this master. No date arithmetic is involved.
func (s *Service) generateEventBased(ctx context.Context, m *TaskMaster, links []ClientLink, billing resolvedBilling, assigneeID *int64, res GenerateResult) (GenerateResult, error) {
	existing, err := s.repo.ExistingClientIDs(ctx, m.ID, linkClientIDs(links))
	if err != nil {
		return res, fmt.Errorf("loading existing clients: %w", err)
	}

	for _, link := range links {
		if existing[link.ClientID] {
			res.SkippedExisting++
			continue
		}

		t := s.newGeneratedTask(m, link.ClientID, m.Title, billing, nil, nil)

		if err := s.createOne(ctx, t, assigneeID, &res); err != nil {
			return res, err
		}
	}

	return res, nil
}

// generatePerDueDate handles DAILY and WEEKLY: enumerate dated candidates
// inside each link's clamped window, deduped on (client, due date).
func (s *Service) generatePerDueDate(ctx context.Context, m *TaskMaster, rule CadenceRule, period Period, links []ClientLink, billing resolvedBilling, assigneeID *int64, res GenerateResult) (GenerateResult, error) {
	existing, err := s.repo.ExistingDueKeys(ctx, m.ID, period.Window, linkClientIDs(links))
	if err != nil {
		return res, fmt.Errorf("loading existing due keys: %w", err)
	}

	title := fmt.Sprintf("%s - %s", m.Title, period.Key)

	for _, link := range links {
		clamped, ok := calendar.Clamp(period.Window, m.StartDate, m.EndDate, link.StartDate, link.EndDate)
		if !ok {
			continue
		}

		for _, due := range rule.Candidates(clamped) {
			key := DueKey{ClientID: link.ClientID, DueDate: due.Format(time.DateOnly)}
			if existing[key] {
				res.SkippedExisting++
				continue
			}

			t := s.newGeneratedTask(m, link.ClientID, title, billing, due, &period.Window)

			if err := s.createOne(ctx, t, assigneeID, &res); err != nil {
				return res, err
			}

			existing[key] = true
		}
	}

	return res, nil
}

// generatePerPeriod handles MONTHLY, QUARTERLY and YEARLY: one instance per
// client link, deduped on (client, period start).
func (s *Service) generatePerPeriod(ctx context.Context, m *TaskMaster, rule CadenceRule, period Period, links []ClientLink, billing resolvedBilling, assigneeID *int64, res GenerateResult) (GenerateResult, error) {
	if rule.ClampsLinks() {
		eligible := links[:0:0]

		for _, link := range links {
			if _, ok := calendar.Clamp(period.Window, m.StartDate, m.EndDate, link.StartDate, link.EndDate); ok {
				eligible = append(eligible, link)
			}
		}

		links = eligible
	}

	existing, err := s.repo.ExistingPeriodClientIDs(ctx, m.ID, period.Window.Start, linkClientIDs(links))
	if err != nil {
		return res, fmt.Errorf("loading existing period clients: %w", err)
	}

	title := fmt.Sprintf("%s - %s", m.Title, period.Key)

	for _, link := range links {
		if existing[link.ClientID] {
			res.SkippedExisting++
			continue
		}

		t := s.newGeneratedTask(m, link.ClientID, title, billing, nil, &period.Window)

		if err := s.createOne(ctx, t, assigneeID, &res); err != nil {
			return res, err
		}
	}

	return res, nil
}

func (s *Service) newGeneratedTask(m *TaskMaster, clientID int64, title string, billing resolvedBilling, dueDate *time.Time, window *calendar.Range) *task.Task {
	t := &task.Task{
		Title:        title,
		Description:  m.Description,
		ClientID:     clientID,
		TaskMasterID: &m.ID,
		CategoryID:   m.CategoryID,
		DueDate:      dueDate,
		Status:       task.StatusPending,
		Billable:     billing.billable,
		HSNSAC:       billing.hsnSac,
		GSTRate:      billing.gstRate,
		UnitLabel:    billing.unitLabel,
	}

	if window != nil {
		t.PeriodStart = &window.Start
		t.PeriodEnd = &window.End
	}

	return t
}

// createOne persists a single instance. A duplicate that slipped past the
// pre-check is logged and counted as skipped; any other failure aborts the
// call with the partial counts intact.
func (s *Service) createOne(ctx context.Context, t *task.Task, assigneeID *int64, res *GenerateResult) error {
	if err := s.repo.CreateGeneratedTask(ctx, t, assigneeID); err != nil {
		if errors.Is(err, task.ErrDuplicate) {
			slog.Warn("duplicate generated task at write time",
				"task_master_id", *t.TaskMasterID, "client_id", t.ClientID)

			res.SkippedExisting++

			return nil
		}

		return fmt.Errorf("creating generated task: %w", err)
	}

	res.Created++

	return nil
}

func linkClientIDs(links []ClientLink) []int64 {
	ids := make([]int64, 0, len(links))
	for _, l := range links {
		ids = append(ids, l.ClientID)
	}

	return ids
}
