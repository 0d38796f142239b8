package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"

	"github.com/arindamg/taskledger/internal/calendar"
	"github.com/arindamg/taskledger/internal/task"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// scanner is satisfied by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

const selectTaskColumns = `
	t.id, t.title, t.description, t.client_id, t.template_id, t.task_master_id, t.category_id,
	t.due_date, t.status, t.completed_at,
	t.billable, t.hsn_sac, t.gst_rate, t.unit_label,
	t.period_start, t.period_end, t.created_at, t.updated_at
`

func scanTask(s scanner) (*task.Task, error) {
	var t task.Task

	var (
		statusStr string
		desc      sql.NullString
		hsnSac    sql.NullString
		unitLabel sql.NullString
		gstRate   decimal.NullDecimal
	)

	if err := s.Scan(
		&t.ID, &t.Title, &desc, &t.ClientID, &t.TemplateID, &t.TaskMasterID, &t.CategoryID,
		&t.DueDate, &statusStr, &t.CompletedAt,
		&t.Billable, &hsnSac, &gstRate, &unitLabel,
		&t.PeriodStart, &t.PeriodEnd, &t.CreatedAt, &t.UpdatedAt,
	); err != nil {
		return nil, err
	}

	t.Status = task.Status(statusStr)
	t.Description = desc.String

	if hsnSac.Valid {
		t.HSNSAC = &hsnSac.String
	}

	if unitLabel.Valid {
		t.UnitLabel = &unitLabel.String
	}

	if gstRate.Valid {
		t.GSTRate = &gstRate.Decimal
	}

	return &t, nil
}

func scanTemplate(s scanner) (*task.Template, error) {
	var tpl task.Template

	var cadenceStr string

	var desc sql.NullString

	if err := s.Scan(
		&tpl.ID, &tpl.Title, &desc, &tpl.ClientID,
		&cadenceStr, &tpl.Interval, &tpl.StartDate, &tpl.EndDate,
		&tpl.SkipWeekends, &tpl.Paused, &tpl.PausedAt,
		&tpl.CreatedAt, &tpl.UpdatedAt, &tpl.DeletedAt,
	); err != nil {
		return nil, err
	}

	tpl.Cadence = calendar.Cadence(cadenceStr)
	tpl.Description = desc.String

	return &tpl, nil
}

const selectTemplateColumns = `
	id, title, description, client_id,
	cadence, repeat_interval, start_date, end_date,
	skip_weekends, paused, paused_at,
	created_at, updated_at, deleted_at
`

func (s *Store) CreateTemplate(ctx context.Context, tpl *task.Template) error {
	query := `
		INSERT INTO recurrence_templates
			(title, description, client_id, cadence, repeat_interval, start_date, end_date,
			 skip_weekends, paused, paused_at, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, NOW())
		RETURNING id, created_at
	`

	err := s.db.QueryRowContext(ctx, query,
		tpl.Title, nullString(tpl.Description), tpl.ClientID,
		tpl.Cadence, tpl.Interval, tpl.StartDate, tpl.EndDate,
		tpl.SkipWeekends, tpl.Paused, tpl.PausedAt,
	).Scan(&tpl.ID, &tpl.CreatedAt)
	if err != nil {
		return fmt.Errorf("creating template: %w", err)
	}

	return nil
}

func (s *Store) GetTemplate(ctx context.Context, id int64) (*task.Template, error) {
	query := `SELECT ` + selectTemplateColumns + ` FROM recurrence_templates WHERE id = $1 AND deleted_at IS NULL`

	tpl, err := scanTemplate(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, task.ErrNotFound
		}

		return nil, fmt.Errorf("getting template: %w", err)
	}

	assignees, err := s.templateAssignees(ctx, id)
	if err != nil {
		return nil, err
	}

	tpl.AssigneeIDs = assignees

	return tpl, nil
}

func (s *Store) UpdateTemplate(ctx context.Context, tpl *task.Template) error {
	query := `
		UPDATE recurrence_templates
		SET title = $1, description = $2, cadence = $3, repeat_interval = $4,
			start_date = $5, end_date = $6, skip_weekends = $7,
			paused = $8, paused_at = $9, updated_at = NOW()
		WHERE id = $10 AND deleted_at IS NULL
	`

	_, err := s.db.ExecContext(ctx, query,
		tpl.Title, nullString(tpl.Description), tpl.Cadence, tpl.Interval,
		tpl.StartDate, tpl.EndDate, tpl.SkipWeekends,
		tpl.Paused, tpl.PausedAt, tpl.ID,
	)
	if err != nil {
		return fmt.Errorf("updating template: %w", err)
	}

	return nil
}

func (s *Store) SoftDeleteTemplate(ctx context.Context, id int64, at time.Time) error {
	query := `
		UPDATE recurrence_templates
		SET deleted_at = $1, paused = TRUE, paused_at = $1
		WHERE id = $2 AND deleted_at IS NULL
	`

	if _, err := s.db.ExecContext(ctx, query, at, id); err != nil {
		return fmt.Errorf("soft-deleting template: %w", err)
	}

	return nil
}

func (s *Store) ListActiveTemplates(ctx context.Context) ([]*task.Template, error) {
	query := `SELECT ` + selectTemplateColumns + `
		FROM recurrence_templates
		WHERE deleted_at IS NULL AND paused = FALSE
		ORDER BY id`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing templates: %w", err)
	}
	defer rows.Close()

	var templates []*task.Template

	for rows.Next() {
		tpl, err := scanTemplate(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning template: %w", err)
		}

		templates = append(templates, tpl)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	for _, tpl := range templates {
		assignees, err := s.templateAssignees(ctx, tpl.ID)
		if err != nil {
			return nil, err
		}

		tpl.AssigneeIDs = assignees
	}

	return templates, nil
}

func (s *Store) ReplaceTemplateAssignments(ctx context.Context, templateID int64, userIDs []int64) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM template_assignments WHERE template_id = $1`, templateID); err != nil {
		return fmt.Errorf("clearing template assignments: %w", err)
	}

	for _, userID := range userIDs {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO template_assignments (template_id, user_id, assigned_at)
			VALUES ($1, $2, NOW())
			ON CONFLICT DO NOTHING
		`, templateID, userID)
		if err != nil {
			return fmt.Errorf("assigning template: %w", err)
		}
	}

	return tx.Commit()
}

func (s *Store) CreateTask(ctx context.Context, t *task.Task) error {
	return s.insertTask(ctx, s.db, t)
}

type execQuerier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func (s *Store) insertTask(ctx context.Context, q execQuerier, t *task.Task) error {
	query := `
		INSERT INTO tasks
			(title, description, client_id, template_id, task_master_id, category_id,
			 due_date, status, billable, hsn_sac, gst_rate, unit_label,
			 period_start, period_end, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, NOW())
		RETURNING id, created_at
	`

	var gstRate decimal.NullDecimal
	if t.GSTRate != nil {
		gstRate = decimal.NullDecimal{Decimal: *t.GSTRate, Valid: true}
	}

	err := q.QueryRowContext(ctx, query,
		t.Title, nullString(t.Description), t.ClientID, t.TemplateID, t.TaskMasterID, t.CategoryID,
		t.DueDate, t.Status, t.Billable, t.HSNSAC, gstRate, t.UnitLabel,
		t.PeriodStart, t.PeriodEnd,
	).Scan(&t.ID, &t.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return task.ErrDuplicate
		}

		return fmt.Errorf("inserting task: %w", err)
	}

	return nil
}

// CreateInstance inserts the task and its assignment set in one transaction,
// so a generated instance never exists half-assigned.
func (s *Store) CreateInstance(ctx context.Context, t *task.Task, assigneeIDs []int64) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if err := s.insertTask(ctx, tx, t); err != nil {
		return err
	}

	for _, userID := range assigneeIDs {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO task_assignments (task_id, user_id, assigned_at)
			VALUES ($1, $2, NOW())
			ON CONFLICT DO NOTHING
		`, t.ID, userID)
		if err != nil {
			return fmt.Errorf("assigning task: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing instance: %w", err)
	}

	t.AssigneeIDs = assigneeIDs

	return nil
}

func (s *Store) GetTask(ctx context.Context, id int64) (*task.Task, error) {
	query := `SELECT ` + selectTaskColumns + ` FROM tasks t WHERE t.id = $1`

	t, err := scanTask(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, task.ErrNotFound
		}

		return nil, fmt.Errorf("getting task: %w", err)
	}

	assignees, err := s.taskAssignees(ctx, id)
	if err != nil {
		return nil, err
	}

	t.AssigneeIDs = assignees

	return t, nil
}

func (s *Store) UpdateTask(ctx context.Context, t *task.Task) error {
	query := `
		UPDATE tasks
		SET title = $1, description = $2, due_date = $3, status = $4, completed_at = $5, updated_at = NOW()
		WHERE id = $6
	`

	_, err := s.db.ExecContext(ctx, query,
		t.Title, nullString(t.Description), t.DueDate, t.Status, t.CompletedAt, t.ID,
	)
	if err != nil {
		return fmt.Errorf("updating task: %w", err)
	}

	return nil
}

func (s *Store) ListTasks(ctx context.Context, filter task.ListFilter) ([]*task.Task, error) {
	query := `SELECT ` + selectTaskColumns + ` FROM tasks t WHERE TRUE`

	var args []any

	argIdx := 1

	if filter.Status != nil {
		query += fmt.Sprintf(" AND t.status = $%d", argIdx)

		args = append(args, *filter.Status)
		argIdx++
	}

	if filter.ClientID != nil {
		query += fmt.Sprintf(" AND t.client_id = $%d", argIdx)

		args = append(args, *filter.ClientID)
		argIdx++
	}

	if filter.StartDate != nil {
		query += fmt.Sprintf(" AND t.due_date >= $%d", argIdx)

		args = append(args, *filter.StartDate)
		argIdx++
	}

	if filter.EndDate != nil {
		query += fmt.Sprintf(" AND t.due_date <= $%d", argIdx)

		args = append(args, *filter.EndDate)
		argIdx++
	}

	query += " ORDER BY t.due_date ASC NULLS LAST, t.created_at DESC"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing tasks: %w", err)
	}
	defer rows.Close()

	var tasks []*task.Task

	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning task: %w", err)
		}

		tasks = append(tasks, t)
	}

	return tasks, rows.Err()
}

func (s *Store) DeleteTask(ctx context.Context, id int64) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM task_assignments WHERE task_id = $1`, id); err != nil {
		return fmt.Errorf("deleting assignments: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM tasks WHERE id = $1`, id); err != nil {
		return fmt.Errorf("deleting task: %w", err)
	}

	return tx.Commit()
}

func (s *Store) ReplaceTaskAssignments(ctx context.Context, taskID int64, userIDs []int64) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM task_assignments WHERE task_id = $1`, taskID); err != nil {
		return fmt.Errorf("clearing assignments: %w", err)
	}

	for _, userID := range userIDs {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO task_assignments (task_id, user_id, assigned_at)
			VALUES ($1, $2, NOW())
			ON CONFLICT DO NOTHING
		`, taskID, userID)
		if err != nil {
			return fmt.Errorf("assigning task: %w", err)
		}
	}

	return tx.Commit()
}

func (s *Store) InstanceExists(ctx context.Context, templateID int64, dueDate time.Time) (bool, error) {
	var exists bool

	err := s.db.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM tasks WHERE template_id = $1 AND due_date = $2)`,
		templateID, dueDate,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("checking instance: %w", err)
	}

	return exists, nil
}

// DeleteFutureInstances removes assignment rows before their tasks, since
// task_assignments references tasks without a cascade.
func (s *Store) DeleteFutureInstances(ctx context.Context, templateID int64, from time.Time) (int64, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		DELETE FROM task_assignments
		WHERE task_id IN (
			SELECT id FROM tasks
			WHERE template_id = $1 AND due_date >= $2 AND status <> $3
		)
	`, templateID, from, task.StatusCompleted)
	if err != nil {
		return 0, fmt.Errorf("deleting instance assignments: %w", err)
	}

	res, err := tx.ExecContext(ctx, `
		DELETE FROM tasks
		WHERE template_id = $1 AND due_date >= $2 AND status <> $3
	`, templateID, from, task.StatusCompleted)
	if err != nil {
		return 0, fmt.Errorf("deleting future instances: %w", err)
	}

	deleted, err := res.RowsAffected()
	if err != nil {
		return 0, err
	}

	return deleted, tx.Commit()
}

func (s *Store) templateAssignees(ctx context.Context, templateID int64) ([]int64, error) {
	return s.assignees(ctx, `SELECT user_id FROM template_assignments WHERE template_id = $1 ORDER BY assigned_at, user_id`, templateID)
}

func (s *Store) taskAssignees(ctx context.Context, taskID int64) ([]int64, error) {
	return s.assignees(ctx, `SELECT user_id FROM task_assignments WHERE task_id = $1 ORDER BY assigned_at, user_id`, taskID)
}

func (s *Store) assignees(ctx context.Context, query string, id int64) ([]int64, error) {
	rows, err := s.db.QueryContext(ctx, query, id)
	if err != nil {
		return nil, fmt.Errorf("listing assignees: %w", err)
	}
	defer rows.Close()

	var ids []int64

	for rows.Next() {
		var userID int64
		if err := rows.Scan(&userID); err != nil {
			return nil, err
		}

		ids = append(ids, userID)
	}

	return ids, rows.Err()
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError

	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
