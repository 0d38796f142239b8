package invoice

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/arindamg/taskledger/internal/calendar"
	"github.com/arindamg/taskledger/internal/client"
)

var (
	ErrNotFound = errors.New("invoice not found")
	ErrInvalid  = errors.New("invalid invoice input")
	// ErrLocked guards the PAID terminal state: no status or content
	// mutation is allowed once an invoice is paid.
	ErrLocked   = errors.New("paid invoice cannot be modified")
	ErrConflict = errors.New("invoice conflict")
)

type Status string

const (
	StatusDraft Status = "DRAFT"
	StatusSent  Status = "SENT"
	StatusPaid  Status = "PAID"
)

func (s Status) Valid() bool {
	switch s {
	case StatusDraft, StatusSent, StatusPaid:
		return true
	}

	return false
}

// PricingMode states whether line-item prices already include GST.
type PricingMode string

const (
	PricingExclusive PricingMode = "EXCLUSIVE"
	PricingInclusive PricingMode = "INCLUSIVE"
)

// Invoice is immutable after send in content and immutable entirely once
// PAID. Issuer and client identity fields are point-in-time snapshots, so
// later edits to the live records never alter a historical invoice.
type Invoice struct {
	ID          int64
	Number      string
	Status      Status
	ClientID    int64
	CompanyID   int64
	CreatedByID int64

	CompanyName    string
	CompanyAddress string
	CompanyGSTIN   *string
	CompanyCity    *string
	CompanyState   *string
	CompanyPhone   *string
	CompanyEmail   *string

	BankName    *string
	BankAccount *string
	BankIFSC    *string
	BankBranch  *string

	SealURL      *string
	SignatureURL *string

	ClientName      string
	ClientGSTIN     *string
	ClientAddress   string
	ClientCity      *string
	ClientState     *string
	ClientStateCode *string
	ClientPincode   *string
	ClientPhone     *string
	ClientEmail     *string

	GSTPercent    decimal.Decimal
	PricingMode   PricingMode
	IntraState    bool
	PlaceOfSupply *string

	Discount decimal.Decimal
	Subtotal decimal.Decimal
	CGST     decimal.Decimal
	SGST     decimal.Decimal
	IGST     decimal.Decimal
	Total    decimal.Decimal

	// ManualTotal marks caller-supplied totals; recalculation is a no-op
	// while it is set.
	ManualTotal bool

	Notes *string
	Items []Item

	CreatedAt time.Time
	UpdatedAt *time.Time
}

// Item is one invoice line. TaskID links back to the work item the line was
// billed from, when there is one.
type Item struct {
	ID          int64
	InvoiceID   int64
	TaskID      *int64
	Title       string
	Description *string
	HSNSAC      *string
	Quantity    int
	UnitPrice   decimal.Decimal
	Amount      decimal.Decimal
}

// EmailLog is an immutable record of one send attempt.
type EmailLog struct {
	ID        int64
	InvoiceID int64
	ToEmail   string
	Subject   string
	Message   string
	Status    string
	CreatedAt time.Time
}

// SequenceKey identifies one invoice-number counter: a month of one
// financial year for one issuer.
type SequenceKey struct {
	CompanyID  int64
	IssuerCode string
	FY         string // compact form, e.g. "2526"
	Month      string // 3-letter upper-case month code
}

// SequenceKeyFor derives the counter key for an invoice issued at the given
// instant.
func SequenceKeyFor(company *client.Company, at time.Time) SequenceKey {
	return SequenceKey{
		CompanyID:  company.ID,
		IssuerCode: company.Code,
		FY:         calendar.FinancialYearOf(at).ShortLabel(),
		Month:      strings.ToUpper(at.Format("Jan")),
	}
}

// Number renders the invoice number for an allocated counter value, e.g.
// O/ACME/JUL02/2526.
func (k SequenceKey) Number(counter int) string {
	return fmt.Sprintf("O/%s/%s%02d/%s", k.IssuerCode, k.Month, counter, k.FY)
}
