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
	"github.com/arindamg/taskledger/internal/taskmaster"
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

const selectMasterColumns = `
	id, title, description, category_id, cadence, repeat_interval,
	financial_year, default_due_day, start_date, end_date,
	billable, hsn_sac, gst_rate, unit_label,
	active, created_at, updated_at
`

func scanMaster(s scanner) (*taskmaster.TaskMaster, error) {
	var m taskmaster.TaskMaster

	var (
		cadenceStr string
		desc       sql.NullString
		fy         sql.NullString
		hsnSac     sql.NullString
		unitLabel  sql.NullString
		gstRate    decimal.NullDecimal
	)

	if err := s.Scan(
		&m.ID, &m.Title, &desc, &m.CategoryID, &cadenceStr, &m.Interval,
		&fy, &m.DefaultDueDay, &m.StartDate, &m.EndDate,
		&m.Billable, &hsnSac, &gstRate, &unitLabel,
		&m.Active, &m.CreatedAt, &m.UpdatedAt,
	); err != nil {
		return nil, err
	}

	m.Cadence = calendar.Cadence(cadenceStr)
	m.Description = desc.String

	if fy.Valid {
		m.FinancialYear = &fy.String
	}

	if hsnSac.Valid {
		m.HSNSAC = &hsnSac.String
	}

	if unitLabel.Valid {
		m.UnitLabel = &unitLabel.String
	}

	if gstRate.Valid {
		m.GSTRate = &gstRate.Decimal
	}

	return &m, nil
}

func (s *Store) Create(ctx context.Context, m *taskmaster.TaskMaster) error {
	query := `
		INSERT INTO task_masters
			(title, description, category_id, cadence, repeat_interval,
			 financial_year, default_due_day, start_date, end_date,
			 billable, hsn_sac, gst_rate, unit_label, active, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, NOW())
		RETURNING id, created_at
	`

	err := s.db.QueryRowContext(ctx, query,
		m.Title, nullString(m.Description), m.CategoryID, m.Cadence, m.Interval,
		m.FinancialYear, m.DefaultDueDay, m.StartDate, m.EndDate,
		m.Billable, m.HSNSAC, nullDecimal(m.GSTRate), m.UnitLabel, m.Active,
	).Scan(&m.ID, &m.CreatedAt)
	if err != nil {
		return fmt.Errorf("creating task master: %w", err)
	}

	return nil
}

func (s *Store) Get(ctx context.Context, id int64) (*taskmaster.TaskMaster, error) {
	query := `SELECT ` + selectMasterColumns + ` FROM task_masters WHERE id = $1`

	m, err := scanMaster(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, taskmaster.ErrNotFound
		}

		return nil, fmt.Errorf("getting task master: %w", err)
	}

	links, err := s.clientLinks(ctx, id)
	if err != nil {
		return nil, err
	}

	m.Clients = links

	return m, nil
}

func (s *Store) Update(ctx context.Context, m *taskmaster.TaskMaster) error {
	query := `
		UPDATE task_masters
		SET title = $1, description = $2, category_id = $3, cadence = $4, repeat_interval = $5,
			financial_year = $6, default_due_day = $7, start_date = $8, end_date = $9,
			billable = $10, hsn_sac = $11, gst_rate = $12, unit_label = $13, active = $14,
			updated_at = NOW()
		WHERE id = $15
	`

	_, err := s.db.ExecContext(ctx, query,
		m.Title, nullString(m.Description), m.CategoryID, m.Cadence, m.Interval,
		m.FinancialYear, m.DefaultDueDay, m.StartDate, m.EndDate,
		m.Billable, m.HSNSAC, nullDecimal(m.GSTRate), m.UnitLabel, m.Active, m.ID,
	)
	if err != nil {
		return fmt.Errorf("updating task master: %w", err)
	}

	return nil
}

func (s *Store) List(ctx context.Context, filter taskmaster.ListFilter) ([]*taskmaster.TaskMaster, error) {
	query := `SELECT ` + selectMasterColumns + ` FROM task_masters WHERE TRUE`

	var args []any

	argIdx := 1

	if filter.Active != nil {
		query += fmt.Sprintf(" AND active = $%d", argIdx)

		args = append(args, *filter.Active)
		argIdx++
	}

	if filter.CategoryID != nil {
		query += fmt.Sprintf(" AND category_id = $%d", argIdx)

		args = append(args, *filter.CategoryID)
		argIdx++
	}

	query += " ORDER BY title, id"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing task masters: %w", err)
	}
	defer rows.Close()

	var masters []*taskmaster.TaskMaster

	for rows.Next() {
		m, err := scanMaster(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning task master: %w", err)
		}

		masters = append(masters, m)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	for _, m := range masters {
		links, err := s.clientLinks(ctx, m.ID)
		if err != nil {
			return nil, err
		}

		m.Clients = links
	}

	return masters, nil
}

func (s *Store) Disable(ctx context.Context, id int64) error {
	_, err := s.db.ExecContext(ctx,
		`UPDATE task_masters SET active = FALSE, updated_at = NOW() WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("disabling task master: %w", err)
	}

	return nil
}

func (s *Store) ExistsByTitleCadence(ctx context.Context, title string, cadence calendar.Cadence) (bool, error) {
	var exists bool

	err := s.db.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM task_masters WHERE LOWER(title) = LOWER($1) AND cadence = $2)`,
		title, cadence,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("checking task master: %w", err)
	}

	return exists, nil
}

// EnsureCategory finds or creates the named category. The upsert keeps the
// find-or-create race-free under concurrent imports.
func (s *Store) EnsureCategory(ctx context.Context, name string) (int64, error) {
	var id int64

	err := s.db.QueryRowContext(ctx, `
		INSERT INTO task_categories (name, created_at)
		VALUES ($1, NOW())
		ON CONFLICT (name) DO UPDATE SET name = EXCLUDED.name
		RETURNING id
	`, name).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("ensuring category: %w", err)
	}

	return id, nil
}

// UpsertClientLinks re-assigning an existing (master, client) pair updates its
// override window in place instead of duplicating the link.
func (s *Store) UpsertClientLinks(ctx context.Context, taskMasterID int64, links []taskmaster.ClientLink) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	for _, link := range links {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO task_master_clients
				(task_master_id, client_id, custom_due_day, start_date, end_date, active, created_at)
			VALUES ($1, $2, $3, $4, $5, $6, NOW())
			ON CONFLICT (task_master_id, client_id) DO UPDATE
			SET custom_due_day = EXCLUDED.custom_due_day,
				start_date = EXCLUDED.start_date,
				end_date = EXCLUDED.end_date,
				active = EXCLUDED.active
		`, taskMasterID, link.ClientID, link.CustomDueDay, link.StartDate, link.EndDate, link.Active)
		if err != nil {
			return fmt.Errorf("upserting client link: %w", err)
		}
	}

	return tx.Commit()
}

func (s *Store) RemoveClientLink(ctx context.Context, taskMasterID, clientID int64) error {
	_, err := s.db.ExecContext(ctx,
		`DELETE FROM task_master_clients WHERE task_master_id = $1 AND client_id = $2`,
		taskMasterID, clientID)
	if err != nil {
		return fmt.Errorf("removing client link: %w", err)
	}

	return nil
}

func (s *Store) ExistingClientIDs(ctx context.Context, taskMasterID int64, clientIDs []int64) (map[int64]bool, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT DISTINCT client_id FROM tasks
		WHERE task_master_id = $1 AND client_id = ANY($2)
	`, taskMasterID, clientIDs)
	if err != nil {
		return nil, fmt.Errorf("loading generated clients: %w", err)
	}
	defer rows.Close()

	existing := make(map[int64]bool)

	for rows.Next() {
		var clientID int64
		if err := rows.Scan(&clientID); err != nil {
			return nil, err
		}

		existing[clientID] = true
	}

	return existing, rows.Err()
}

func (s *Store) ExistingDueKeys(ctx context.Context, taskMasterID int64, window calendar.Range, clientIDs []int64) (map[taskmaster.DueKey]bool, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT client_id, due_date FROM tasks
		WHERE task_master_id = $1 AND client_id = ANY($2)
		  AND due_date >= $3 AND due_date <= $4
	`, taskMasterID, clientIDs, window.Start, window.End)
	if err != nil {
		return nil, fmt.Errorf("loading generated due keys: %w", err)
	}
	defer rows.Close()

	existing := make(map[taskmaster.DueKey]bool)

	for rows.Next() {
		var (
			clientID int64
			dueDate  time.Time
		)

		if err := rows.Scan(&clientID, &dueDate); err != nil {
			return nil, err
		}

		existing[taskmaster.DueKey{ClientID: clientID, DueDate: dueDate.UTC().Format(time.DateOnly)}] = true
	}

	return existing, rows.Err()
}

func (s *Store) ExistingPeriodClientIDs(ctx context.Context, taskMasterID int64, periodStart time.Time, clientIDs []int64) (map[int64]bool, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT DISTINCT client_id FROM tasks
		WHERE task_master_id = $1 AND client_id = ANY($2) AND period_start = $3
	`, taskMasterID, clientIDs, periodStart)
	if err != nil {
		return nil, fmt.Errorf("loading generated period clients: %w", err)
	}
	defer rows.Close()

	existing := make(map[int64]bool)

	for rows.Next() {
		var clientID int64
		if err := rows.Scan(&clientID); err != nil {
			return nil, err
		}

		existing[clientID] = true
	}

	return existing, rows.Err()
}

// CreateGeneratedTask inserts the instance and its optional default
// assignment in one transaction. Unique-index conflicts surface as
// task.ErrDuplicate so the fan-out loop can count them as skips.
func (s *Store) CreateGeneratedTask(ctx context.Context, t *task.Task, assigneeID *int64) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	query := `
		INSERT INTO tasks
			(title, description, client_id, task_master_id, category_id,
			 due_date, status, billable, hsn_sac, gst_rate, unit_label,
			 period_start, period_end, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, NOW())
		RETURNING id, created_at
	`

	err = tx.QueryRowContext(ctx, query,
		t.Title, nullString(t.Description), t.ClientID, t.TaskMasterID, t.CategoryID,
		t.DueDate, t.Status, t.Billable, t.HSNSAC, nullDecimal(t.GSTRate), t.UnitLabel,
		t.PeriodStart, t.PeriodEnd,
	).Scan(&t.ID, &t.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return task.ErrDuplicate
		}

		return fmt.Errorf("inserting generated task: %w", err)
	}

	if assigneeID != nil {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO task_assignments (task_id, user_id, assigned_at)
			VALUES ($1, $2, NOW())
			ON CONFLICT DO NOTHING
		`, t.ID, *assigneeID)
		if err != nil {
			return fmt.Errorf("assigning generated task: %w", err)
		}

		t.AssigneeIDs = []int64{*assigneeID}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing generated task: %w", err)
	}

	return nil
}

func (s *Store) clientLinks(ctx context.Context, taskMasterID int64) ([]taskmaster.ClientLink, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT task_master_id, client_id, custom_due_day, start_date, end_date, active
		FROM task_master_clients
		WHERE task_master_id = $1
		ORDER BY client_id
	`, taskMasterID)
	if err != nil {
		return nil, fmt.Errorf("listing client links: %w", err)
	}
	defer rows.Close()

	var links []taskmaster.ClientLink

	for rows.Next() {
		var link taskmaster.ClientLink
		if err := rows.Scan(
			&link.TaskMasterID, &link.ClientID, &link.CustomDueDay,
			&link.StartDate, &link.EndDate, &link.Active,
		); err != nil {
			return nil, err
		}

		links = append(links, link)
	}

	return links, rows.Err()
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func nullDecimal(d *decimal.Decimal) decimal.NullDecimal {
	if d == nil {
		return decimal.NullDecimal{}
	}

	return decimal.NullDecimal{Decimal: *d, Valid: true}
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError

	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
