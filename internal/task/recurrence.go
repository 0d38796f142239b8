package task

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/arindamg/taskledger/internal/calendar"
)

// GenerateMode selects where the generation horizon starts.
type GenerateMode string

const (
	// ModeInitial generates from the template's start date.
	ModeInitial GenerateMode = "INITIAL"
	// ModeFillGaps generates from the first occurrence after now, so past
	// occurrences are never re-created.
	ModeFillGaps GenerateMode = "FILL_GAPS"
)

// batchLookAheadMonths bounds how far the daily batch generates ahead.
const batchLookAheadMonths = 2

type GenerateResult struct {
	Created         int
	SkippedExisting int
}

// GenerateInstances expands one template into dated PENDING instances.
// Paused or soft-deleted templates generate nothing. Each instance is one
// atomic unit; a duplicate detected at write time is counted as skipped and
// never retried.
func (s *Service) GenerateInstances(ctx context.Context, templateID int64, mode GenerateMode) (GenerateResult, error) {
	tpl, err := s.repo.GetTemplate(ctx, templateID)
	if err != nil {
		return GenerateResult{}, err
	}

	if tpl.DeletedAt != nil || tpl.Paused {
		return GenerateResult{}, nil
	}

	if tpl.Interval < 1 {
		return GenerateResult{}, fmt.Errorf("%w: interval must be >= 1", ErrInvalid)
	}

	end := tpl.StartDate.AddDate(1, 0, 0)
	if tpl.EndDate != nil {
		end = *tpl.EndDate
	}

	if end.Before(tpl.StartDate) {
		return GenerateResult{}, nil
	}

	cursor := tpl.StartDate
	if mode == ModeFillGaps {
		cursor = calendar.NextAfter(tpl.StartDate, tpl.Cadence, tpl.Interval, s.now())
	}

	return s.generateRange(ctx, tpl, cursor, end)
}

func (s *Service) generateRange(ctx context.Context, tpl *Template, from, to time.Time) (GenerateResult, error) {
	var res GenerateResult

	for cursor := from; !cursor.After(to); cursor = calendar.Step(cursor, tpl.Cadence, tpl.Interval) {
		dueDate := cursor
		if tpl.SkipWeekends {
			dueDate = calendar.ShiftWeekend(dueDate)
		}

		exists, err := s.repo.InstanceExists(ctx, tpl.ID, dueDate)
		if err != nil {
			return res, fmt.Errorf("checking existing instance: %w", err)
		}

		if exists {
			res.SkippedExisting++
			continue
		}

		instance := &Task{
			Title:       tpl.Title,
			Description: tpl.Description,
			ClientID:    tpl.ClientID,
			TemplateID:  &tpl.ID,
			DueDate:     &dueDate,
			Status:      StatusPending,
		}

		if err := s.repo.CreateInstance(ctx, instance, tpl.AssigneeIDs); err != nil {
			if errors.Is(err, ErrDuplicate) {
				// Lost a race against a concurrent generation run. The unique
				// index kept the invariant; count and move on.
				slog.Warn("duplicate instance at write time",
					"template_id", tpl.ID, "due_date", dueDate.Format(time.DateOnly))

				res.SkippedExisting++

				continue
			}

			return res, fmt.Errorf("creating instance: %w", err)
		}

		res.Created++
	}

	return res, nil
}

// regenerateFutureInstances deletes future non-completed instances and
// re-runs generation in fill-gaps mode. Completed instances are never
// touched.
func (s *Service) regenerateFutureInstances(ctx context.Context, templateID int64) error {
	tpl, err := s.repo.GetTemplate(ctx, templateID)
	if err != nil {
		return err
	}

	if tpl.DeletedAt != nil || tpl.Paused {
		return nil
	}

	deleted, err := s.repo.DeleteFutureInstances(ctx, templateID, s.now())
	if err != nil {
		return fmt.Errorf("deleting future instances: %w", err)
	}

	slog.Info("regenerating template instances", "template_id", templateID, "deleted", deleted)

	if _, err := s.GenerateInstances(ctx, templateID, ModeFillGaps); err != nil {
		return err
	}

	return nil
}

// TemplateRunSummary is the per-template outcome of one daily batch run.
type TemplateRunSummary struct {
	TemplateID      int64
	Created         int
	SkippedExisting int
	Err             error
}

// RunDailyBatch generates upcoming instances for every active template with
// a bounded look-ahead. A template that fails does not stop the batch;
// re-running is safe because dedup keys make generation idempotent.
func (s *Service) RunDailyBatch(ctx context.Context) ([]TemplateRunSummary, error) {
	templates, err := s.repo.ListActiveTemplates(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing active templates: %w", err)
	}

	now := s.now()
	lookAhead := now.AddDate(0, batchLookAheadMonths, 0)

	summaries := make([]TemplateRunSummary, 0, len(templates))

	for _, tpl := range templates {
		summary := TemplateRunSummary{TemplateID: tpl.ID}

		end := lookAhead
		if tpl.EndDate != nil && tpl.EndDate.Before(end) {
			end = *tpl.EndDate
		}

		if end.Before(now) || tpl.Interval < 1 {
			summaries = append(summaries, summary)
			continue
		}

		from := calendar.NextAfter(tpl.StartDate, tpl.Cadence, tpl.Interval, now)

		res, err := s.generateRange(ctx, tpl, from, end)
		summary.Created = res.Created
		summary.SkippedExisting = res.SkippedExisting
		summary.Err = err

		if err != nil {
			slog.Error("daily recurrence batch failed for template", "template_id", tpl.ID, "error", err)
		}

		summaries = append(summaries, summary)
	}

	return summaries, nil
}
