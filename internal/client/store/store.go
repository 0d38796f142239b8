package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/arindamg/taskledger/internal/client"
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

const selectClientColumns = `
	id, code, name, email, phone,
	address_line1, address_line2, city, state, pincode,
	gst_number, state_code, created_at, updated_at
`

func scanClient(s scanner) (*client.Client, error) {
	var c client.Client

	if err := s.Scan(
		&c.ID, &c.Code, &c.Name, &c.Email, &c.Phone,
		&c.AddressLine1, &c.AddressLine2, &c.City, &c.State, &c.Pincode,
		&c.GSTNumber, &c.StateCode, &c.CreatedAt, &c.UpdatedAt,
	); err != nil {
		return nil, err
	}

	return &c, nil
}

func (s *Store) Create(ctx context.Context, c *client.Client) error {
	query := `
		INSERT INTO clients
			(code, name, email, phone,
			 address_line1, address_line2, city, state, pincode,
			 gst_number, state_code, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, NOW())
		RETURNING id, created_at
	`

	err := s.db.QueryRowContext(ctx, query,
		c.Code, c.Name, c.Email, c.Phone,
		c.AddressLine1, c.AddressLine2, c.City, c.State, c.Pincode,
		c.GSTNumber, c.StateCode,
	).Scan(&c.ID, &c.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return client.ErrDuplicate
		}

		return fmt.Errorf("creating client: %w", err)
	}

	return nil
}

func (s *Store) Get(ctx context.Context, id int64) (*client.Client, error) {
	query := `SELECT ` + selectClientColumns + ` FROM clients WHERE id = $1`

	c, err := scanClient(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, client.ErrNotFound
		}

		return nil, fmt.Errorf("getting client: %w", err)
	}

	return c, nil
}

func (s *Store) Update(ctx context.Context, c *client.Client) error {
	query := `
		UPDATE clients
		SET name = $1, email = $2, phone = $3,
			address_line1 = $4, address_line2 = $5, city = $6, state = $7, pincode = $8,
			gst_number = $9, state_code = $10, updated_at = NOW()
		WHERE id = $11
	`

	_, err := s.db.ExecContext(ctx, query,
		c.Name, c.Email, c.Phone,
		c.AddressLine1, c.AddressLine2, c.City, c.State, c.Pincode,
		c.GSTNumber, c.StateCode, c.ID,
	)
	if err != nil {
		return fmt.Errorf("updating client: %w", err)
	}

	return nil
}

func (s *Store) Delete(ctx context.Context, id int64) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM clients WHERE id = $1`, id); err != nil {
		return fmt.Errorf("deleting client: %w", err)
	}

	return nil
}

func (s *Store) List(ctx context.Context) ([]*client.Client, error) {
	query := `SELECT ` + selectClientColumns + ` FROM clients ORDER BY created_at DESC`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing clients: %w", err)
	}
	defer rows.Close()

	var clients []*client.Client

	for rows.Next() {
		c, err := scanClient(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning client: %w", err)
		}

		clients = append(clients, c)
	}

	return clients, rows.Err()
}

func (s *Store) ExistsByCodeOrEmail(ctx context.Context, code string, email *string) (bool, error) {
	var exists bool

	err := s.db.QueryRowContext(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM clients
			WHERE code = $1 OR ($2::text IS NOT NULL AND email = $2)
		)
	`, code, email).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("checking client: %w", err)
	}

	return exists, nil
}

const selectCompanyColumns = `
	id, owner_id, name, code, email, phone,
	address_line1, address_line2, city, state, pincode, gstin,
	bank_name, bank_account, bank_ifsc, bank_branch,
	seal_url, signature_url, created_at, updated_at
`

func scanCompany(s scanner) (*client.Company, error) {
	var c client.Company

	if err := s.Scan(
		&c.ID, &c.OwnerID, &c.Name, &c.Code, &c.Email, &c.Phone,
		&c.AddressLine1, &c.AddressLine2, &c.City, &c.State, &c.Pincode, &c.GSTIN,
		&c.BankName, &c.BankAccount, &c.BankIFSC, &c.BankBranch,
		&c.SealURL, &c.SignatureURL, &c.CreatedAt, &c.UpdatedAt,
	); err != nil {
		return nil, err
	}

	return &c, nil
}

func (s *Store) CreateCompany(ctx context.Context, c *client.Company) error {
	query := `
		INSERT INTO companies
			(owner_id, name, code, email, phone,
			 address_line1, address_line2, city, state, pincode, gstin,
			 bank_name, bank_account, bank_ifsc, bank_branch, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, NOW())
		RETURNING id, created_at
	`

	err := s.db.QueryRowContext(ctx, query,
		c.OwnerID, c.Name, c.Code, c.Email, c.Phone,
		c.AddressLine1, c.AddressLine2, c.City, c.State, c.Pincode, c.GSTIN,
		c.BankName, c.BankAccount, c.BankIFSC, c.BankBranch,
	).Scan(&c.ID, &c.CreatedAt)
	if err != nil {
		return fmt.Errorf("creating company: %w", err)
	}

	return nil
}

func (s *Store) GetCompany(ctx context.Context, ownerID, id int64) (*client.Company, error) {
	query := `SELECT ` + selectCompanyColumns + ` FROM companies WHERE id = $1 AND owner_id = $2`

	c, err := scanCompany(s.db.QueryRowContext(ctx, query, id, ownerID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, client.ErrCompanyNotFound
		}

		return nil, fmt.Errorf("getting company: %w", err)
	}

	return c, nil
}

func (s *Store) UpdateCompany(ctx context.Context, c *client.Company) error {
	query := `
		UPDATE companies
		SET name = $1, code = $2, email = $3, phone = $4,
			address_line1 = $5, address_line2 = $6, city = $7, state = $8, pincode = $9,
			gstin = $10, bank_name = $11, bank_account = $12, bank_ifsc = $13, bank_branch = $14,
			seal_url = $15, signature_url = $16, updated_at = NOW()
		WHERE id = $17 AND owner_id = $18
	`

	_, err := s.db.ExecContext(ctx, query,
		c.Name, c.Code, c.Email, c.Phone,
		c.AddressLine1, c.AddressLine2, c.City, c.State, c.Pincode,
		c.GSTIN, c.BankName, c.BankAccount, c.BankIFSC, c.BankBranch,
		c.SealURL, c.SignatureURL, c.ID, c.OwnerID,
	)
	if err != nil {
		return fmt.Errorf("updating company: %w", err)
	}

	return nil
}

func (s *Store) DeleteCompany(ctx context.Context, ownerID, id int64) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM companies WHERE id = $1 AND owner_id = $2`, id, ownerID)
	if err != nil {
		return fmt.Errorf("deleting company: %w", err)
	}

	return nil
}

func (s *Store) ListCompanies(ctx context.Context, ownerID int64) ([]*client.Company, error) {
	query := `SELECT ` + selectCompanyColumns + ` FROM companies WHERE owner_id = $1 ORDER BY id DESC`

	rows, err := s.db.QueryContext(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("listing companies: %w", err)
	}
	defer rows.Close()

	var companies []*client.Company

	for rows.Next() {
		c, err := scanCompany(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning company: %w", err)
		}

		companies = append(companies, c)
	}

	return companies, rows.Err()
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError

	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
