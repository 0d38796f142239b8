package taskmaster

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"

	"github.com/arindamg/taskledger/internal/calendar"
)

var (
	ErrNotFound = errors.New("task master not found")
	ErrInvalid  = errors.New("invalid task master input")
	ErrInactive = errors.New("task master is not active")
	ErrNoClients = errors.New("no clients assigned to task master")
)

// TaskMaster is a compliance-obligation definition independent of any one
// client. It is never hard-deleted; Active=false disables it while keeping
// generation history intact.
type TaskMaster struct {
	ID            int64
	Title         string
	Description   string
	CategoryID    *int64
	Cadence       calendar.Cadence
	Interval      *int
	FinancialYear *string
	DefaultDueDay *int
	StartDate     time.Time
	EndDate       *time.Time

	// Billing defaults copied onto generated tasks unless overridden.
	Billable  bool
	HSNSAC    *string
	GSTRate   *decimal.Decimal
	UnitLabel *string

	Active    bool
	Clients   []ClientLink
	CreatedAt time.Time
	UpdatedAt *time.Time
}

// ClientLink attaches one client to a task master, optionally narrowing the
// obligation window or due day for that client alone.
type ClientLink struct {
	TaskMasterID int64
	ClientID     int64
	CustomDueDay *int
	StartDate    *time.Time
	EndDate      *time.Time
	Active       bool
}

// ActiveLinks returns the links that participate in generation.
func (m *TaskMaster) ActiveLinks() []ClientLink {
	links := make([]ClientLink, 0, len(m.Clients))

	for _, l := range m.Clients {
		if l.Active {
			links = append(links, l)
		}
	}

	return links
}
