package client

import (
	"errors"
	"strings"
	"time"
)

var (
	ErrNotFound  = errors.New("client not found")
	ErrInvalid   = errors.New("invalid client input")
	ErrDuplicate = errors.New("client with same code or email already exists")

	ErrCompanyNotFound = errors.New("company not found")
)

// Client is a billed party. Code is the short unique handle used in listings
// and imports; the address and GST fields feed invoice snapshots.
type Client struct {
	ID    int64
	Code  string
	Name  string
	Email *string
	Phone *string

	AddressLine1 *string
	AddressLine2 *string
	City         *string
	State        *string
	Pincode      *string

	GSTNumber *string
	StateCode *string

	CreatedAt time.Time
	UpdatedAt *time.Time
}

// Company is an invoice issuer owned by one user. Code appears inside every
// invoice number issued by it.
type Company struct {
	ID      int64
	OwnerID int64
	Name    string
	Code    string
	Email   *string
	Phone   *string

	AddressLine1 *string
	AddressLine2 *string
	City         *string
	State        *string
	Pincode      *string

	GSTIN *string

	BankName    *string
	BankAccount *string
	BankIFSC    *string
	BankBranch  *string

	SealURL      *string
	SignatureURL *string

	CreatedAt time.Time
	UpdatedAt *time.Time
}

// Address joins the populated address parts into the single-line form stored
// on invoice snapshots.
func (c *Client) Address() string {
	return joinAddress(c.AddressLine1, c.AddressLine2, c.City, c.State, c.Pincode)
}

func (c *Company) Address() string {
	return joinAddress(c.AddressLine1, c.AddressLine2, c.City, c.State, c.Pincode)
}

func joinAddress(parts ...*string) string {
	var out []string

	for _, p := range parts {
		if p != nil && *p != "" {
			out = append(out, *p)
		}
	}

	return strings.Join(out, ", ")
}
