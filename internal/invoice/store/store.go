package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/arindamg/taskledger/internal/client"
	clientstore "github.com/arindamg/taskledger/internal/client/store"
	"github.com/arindamg/taskledger/internal/invoice"
	"github.com/arindamg/taskledger/internal/task"
)

// Store persists invoices and delegates issuer and client reads to the
// client store over the same database handle.
type Store struct {
	db      *sql.DB
	clients *clientstore.Store
}

func New(db *sql.DB) *Store {
	return &Store{
		db:      db,
		clients: clientstore.New(db),
	}
}

// scanner is satisfied by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

const selectInvoiceColumns = `
	id, invoice_number, status, client_id, company_id, created_by_id,
	company_name, company_address, company_gstin, company_city, company_state,
	company_phone, company_email,
	bank_name, bank_account, bank_ifsc, bank_branch, seal_url, signature_url,
	client_name, client_gstin, client_address, client_city, client_state,
	client_state_code, client_pincode, client_phone, client_email,
	gst_percent, pricing_mode, intra_state, place_of_supply,
	discount, subtotal, cgst_amount, sgst_amount, igst_amount, total,
	is_manual_total, notes, created_at, updated_at
`

func scanInvoice(s scanner) (*invoice.Invoice, error) {
	var inv invoice.Invoice

	var (
		statusStr string
		modeStr   string
	)

	if err := s.Scan(
		&inv.ID, &inv.Number, &statusStr, &inv.ClientID, &inv.CompanyID, &inv.CreatedByID,
		&inv.CompanyName, &inv.CompanyAddress, &inv.CompanyGSTIN, &inv.CompanyCity, &inv.CompanyState,
		&inv.CompanyPhone, &inv.CompanyEmail,
		&inv.BankName, &inv.BankAccount, &inv.BankIFSC, &inv.BankBranch, &inv.SealURL, &inv.SignatureURL,
		&inv.ClientName, &inv.ClientGSTIN, &inv.ClientAddress, &inv.ClientCity, &inv.ClientState,
		&inv.ClientStateCode, &inv.ClientPincode, &inv.ClientPhone, &inv.ClientEmail,
		&inv.GSTPercent, &modeStr, &inv.IntraState, &inv.PlaceOfSupply,
		&inv.Discount, &inv.Subtotal, &inv.CGST, &inv.SGST, &inv.IGST, &inv.Total,
		&inv.ManualTotal, &inv.Notes, &inv.CreatedAt, &inv.UpdatedAt,
	); err != nil {
		return nil, err
	}

	inv.Status = invoice.Status(statusStr)
	inv.PricingMode = invoice.PricingMode(modeStr)

	return &inv, nil
}

// Create allocates the sequence counter and persists the invoice plus its
// items in one transaction. The counter row is upserted with a single
// conditional-increment statement so concurrent creations for the same
// (issuer, FY, month) serialize on the row and never observe the same value.
func (s *Store) Create(ctx context.Context, inv *invoice.Invoice, key invoice.SequenceKey) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	var counter int

	err = tx.QueryRowContext(ctx, `
		INSERT INTO invoice_sequences (company_id, fy, month, counter)
		VALUES ($1, $2, $3, 1)
		ON CONFLICT (company_id, fy, month)
		DO UPDATE SET counter = invoice_sequences.counter + 1
		RETURNING counter
	`, key.CompanyID, key.FY, key.Month).Scan(&counter)
	if err != nil {
		return fmt.Errorf("allocating invoice number: %w", err)
	}

	inv.Number = key.Number(counter)

	query := `
		INSERT INTO invoices
			(invoice_number, status, client_id, company_id, created_by_id,
			 company_name, company_address, company_gstin, company_city, company_state,
			 company_phone, company_email,
			 bank_name, bank_account, bank_ifsc, bank_branch, seal_url, signature_url,
			 client_name, client_gstin, client_address, client_city, client_state,
			 client_state_code, client_pincode, client_phone, client_email,
			 gst_percent, pricing_mode, intra_state, place_of_supply,
			 discount, subtotal, cgst_amount, sgst_amount, igst_amount, total,
			 is_manual_total, notes, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16,
			$17, $18, $19, $20, $21, $22, $23, $24, $25, $26, $27, $28, $29, $30,
			$31, $32, $33, $34, $35, $36, $37, $38, $39, NOW())
		RETURNING id, created_at
	`

	err = tx.QueryRowContext(ctx, query,
		inv.Number, inv.Status, inv.ClientID, inv.CompanyID, inv.CreatedByID,
		inv.CompanyName, inv.CompanyAddress, inv.CompanyGSTIN, inv.CompanyCity, inv.CompanyState,
		inv.CompanyPhone, inv.CompanyEmail,
		inv.BankName, inv.BankAccount, inv.BankIFSC, inv.BankBranch, inv.SealURL, inv.SignatureURL,
		inv.ClientName, inv.ClientGSTIN, inv.ClientAddress, inv.ClientCity, inv.ClientState,
		inv.ClientStateCode, inv.ClientPincode, inv.ClientPhone, inv.ClientEmail,
		inv.GSTPercent, inv.PricingMode, inv.IntraState, inv.PlaceOfSupply,
		inv.Discount, inv.Subtotal, inv.CGST, inv.SGST, inv.IGST, inv.Total,
		inv.ManualTotal, inv.Notes,
	).Scan(&inv.ID, &inv.CreatedAt)
	if err != nil {
		return fmt.Errorf("inserting invoice: %w", err)
	}

	for i := range inv.Items {
		if err := insertItem(ctx, tx, inv.ID, &inv.Items[i]); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing invoice: %w", err)
	}

	return nil
}

type execQuerier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func insertItem(ctx context.Context, q execQuerier, invoiceID int64, item *invoice.Item) error {
	item.InvoiceID = invoiceID

	err := q.QueryRowContext(ctx, `
		INSERT INTO invoice_items
			(invoice_id, task_id, title, description, hsn_sac, quantity, unit_price, amount)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id
	`, invoiceID, item.TaskID, item.Title, item.Description, item.HSNSAC,
		item.Quantity, item.UnitPrice, item.Amount,
	).Scan(&item.ID)
	if err != nil {
		return fmt.Errorf("inserting invoice item: %w", err)
	}

	return nil
}

func (s *Store) Get(ctx context.Context, id int64) (*invoice.Invoice, error) {
	query := `SELECT ` + selectInvoiceColumns + ` FROM invoices WHERE id = $1`

	inv, err := scanInvoice(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, invoice.ErrNotFound
		}

		return nil, fmt.Errorf("getting invoice: %w", err)
	}

	items, err := s.items(ctx, id)
	if err != nil {
		return nil, err
	}

	inv.Items = items

	return inv, nil
}

func (s *Store) List(ctx context.Context) ([]*invoice.Invoice, error) {
	query := `SELECT ` + selectInvoiceColumns + ` FROM invoices ORDER BY id DESC`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing invoices: %w", err)
	}
	defer rows.Close()

	var invoices []*invoice.Invoice

	for rows.Next() {
		inv, err := scanInvoice(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning invoice: %w", err)
		}

		invoices = append(invoices, inv)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	for _, inv := range invoices {
		items, err := s.items(ctx, inv.ID)
		if err != nil {
			return nil, err
		}

		inv.Items = items
	}

	return invoices, nil
}

func (s *Store) UpdateStatus(ctx context.Context, id int64, status invoice.Status) error {
	_, err := s.db.ExecContext(ctx,
		`UPDATE invoices SET status = $1, updated_at = NOW() WHERE id = $2`, status, id)
	if err != nil {
		return fmt.Errorf("updating invoice status: %w", err)
	}

	return nil
}

func (s *Store) UpdateTotals(ctx context.Context, id int64, totals invoice.Totals) error {
	_, err := s.db.ExecContext(ctx, `
		UPDATE invoices
		SET subtotal = $1, cgst_amount = $2, sgst_amount = $3, igst_amount = $4, total = $5,
			updated_at = NOW()
		WHERE id = $6
	`, totals.Subtotal, totals.CGST, totals.SGST, totals.IGST, totals.Total, id)
	if err != nil {
		return fmt.Errorf("updating invoice totals: %w", err)
	}

	return nil
}

func (s *Store) AddItem(ctx context.Context, item *invoice.Item) error {
	return insertItem(ctx, s.db, item.InvoiceID, item)
}

func (s *Store) Send(ctx context.Context, id int64, taskIDs []int64, log *invoice.EmailLog) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		`UPDATE invoices SET status = $1, updated_at = NOW() WHERE id = $2`,
		invoice.StatusSent, id,
	); err != nil {
		return fmt.Errorf("marking invoice sent: %w", err)
	}

	if len(taskIDs) > 0 {
		if _, err := tx.ExecContext(ctx,
			`UPDATE tasks SET status = $1, updated_at = NOW() WHERE id = ANY($2)`,
			task.StatusInvoiced, taskIDs,
		); err != nil {
			return fmt.Errorf("marking tasks invoiced: %w", err)
		}
	}

	err = tx.QueryRowContext(ctx, `
		INSERT INTO invoice_email_logs (invoice_id, to_email, subject, message, status, created_at)
		VALUES ($1, $2, $3, $4, $5, NOW())
		RETURNING id, created_at
	`, log.InvoiceID, log.ToEmail, log.Subject, log.Message, log.Status,
	).Scan(&log.ID, &log.CreatedAt)
	if err != nil {
		return fmt.Errorf("logging invoice email: %w", err)
	}

	return tx.Commit()
}

func (s *Store) GetCompany(ctx context.Context, ownerID, id int64) (*client.Company, error) {
	return s.clients.GetCompany(ctx, ownerID, id)
}

func (s *Store) GetClient(ctx context.Context, id int64) (*client.Client, error) {
	return s.clients.Get(ctx, id)
}

func (s *Store) TasksByIDs(ctx context.Context, ids []int64) ([]*task.Task, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, title, client_id, status, billable, hsn_sac, gst_rate, unit_label
		FROM tasks WHERE id = ANY($1) ORDER BY id
	`, ids)
	if err != nil {
		return nil, fmt.Errorf("loading tasks: %w", err)
	}
	defer rows.Close()

	var tasks []*task.Task

	for rows.Next() {
		var t task.Task

		var (
			statusStr string
			gstRate   decimal.NullDecimal
		)

		if err := rows.Scan(
			&t.ID, &t.Title, &t.ClientID, &statusStr,
			&t.Billable, &t.HSNSAC, &gstRate, &t.UnitLabel,
		); err != nil {
			return nil, err
		}

		t.Status = task.Status(statusStr)

		if gstRate.Valid {
			t.GSTRate = &gstRate.Decimal
		}

		tasks = append(tasks, &t)
	}

	return tasks, rows.Err()
}

func (s *Store) InvoicedTaskIDs(ctx context.Context, ids []int64) ([]int64, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT DISTINCT task_id FROM invoice_items
		WHERE task_id = ANY($1)
	`, ids)
	if err != nil {
		return nil, fmt.Errorf("checking invoiced tasks: %w", err)
	}
	defer rows.Close()

	var invoiced []int64

	for rows.Next() {
		var taskID int64
		if err := rows.Scan(&taskID); err != nil {
			return nil, err
		}

		invoiced = append(invoiced, taskID)
	}

	return invoiced, rows.Err()
}

func (s *Store) items(ctx context.Context, invoiceID int64) ([]invoice.Item, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, invoice_id, task_id, title, description, hsn_sac, quantity, unit_price, amount
		FROM invoice_items WHERE invoice_id = $1 ORDER BY id
	`, invoiceID)
	if err != nil {
		return nil, fmt.Errorf("listing invoice items: %w", err)
	}
	defer rows.Close()

	var items []invoice.Item

	for rows.Next() {
		var item invoice.Item

		if err := rows.Scan(
			&item.ID, &item.InvoiceID, &item.TaskID, &item.Title, &item.Description,
			&item.HSNSAC, &item.Quantity, &item.UnitPrice, &item.Amount,
		); err != nil {
			return nil, err
		}

		items = append(items, item)
	}

	return items, rows.Err()
}
