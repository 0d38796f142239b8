package invoice

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/arindamg/taskledger/internal/client"
	"github.com/arindamg/taskledger/internal/task"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=invoice
type Repository interface {
	// Create persists the invoice, its items, and the sequence-counter
	// increment that produces its number in one transaction. A crash in
	// between may leave a visible numbering gap but never a duplicate.
	Create(ctx context.Context, inv *Invoice, key SequenceKey) error
	Get(ctx context.Context, id int64) (*Invoice, error)
	List(ctx context.Context) ([]*Invoice, error)
	UpdateStatus(ctx context.Context, id int64, status Status) error
	UpdateTotals(ctx context.Context, id int64, totals Totals) error
	AddItem(ctx context.Context, item *Item) error
	// Send flips the status, marks the referenced tasks INVOICED, and
	// appends the email log row atomically.
	Send(ctx context.Context, id int64, taskIDs []int64, log *EmailLog) error

	GetCompany(ctx context.Context, ownerID, id int64) (*client.Company, error)
	GetClient(ctx context.Context, id int64) (*client.Client, error)
	TasksByIDs(ctx context.Context, ids []int64) ([]*task.Task, error)
	// InvoicedTaskIDs returns the subset of ids already referenced by any
	// invoice line item.
	InvoicedTaskIDs(ctx context.Context, ids []int64) ([]int64, error)
}

type Service struct {
	repo Repository
	now  func() time.Time
}

type Option func(*Service)

// WithClock fixes the clock used for invoice numbering.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

func NewService(repo Repository, opts ...Option) *Service {
	s := &Service{repo: repo, now: time.Now}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

var defaultGSTPercent = decimal.NewFromInt(18)

type ItemParams struct {
	Title       string
	Description *string
	HSNSAC      *string
	TaskID      *int64
	Quantity    int
	UnitPrice   decimal.Decimal
}

// ManualTotals replaces every computed monetary field at once. Totals are
// either fully computed or fully manual, never mixed per field.
type ManualTotals struct {
	Subtotal decimal.Decimal
	CGST     decimal.Decimal
	SGST     decimal.Decimal
	IGST     decimal.Decimal
	Total    decimal.Decimal
}

type TaxConfig struct {
	PricingMode   PricingMode
	GSTPercent    *decimal.Decimal
	Discount      decimal.Decimal
	PlaceOfSupply *string
	Manual        *ManualTotals
	Notes         *string
}

func (s *Service) Create(ctx context.Context, userID, companyID, clientID int64, items []ItemParams, cfg TaxConfig) (*Invoice, error) {
	if len(items) == 0 {
		return nil, fmt.Errorf("%w: at least one line item is required", ErrInvalid)
	}

	lines := make([]Item, 0, len(items))

	for _, p := range items {
		if p.Title == "" {
			return nil, fmt.Errorf("%w: item title is required", ErrInvalid)
		}

		qty := p.Quantity
		if qty == 0 {
			qty = 1
		}

		if qty < 0 {
			return nil, fmt.Errorf("%w: item quantity must be positive", ErrInvalid)
		}

		lines = append(lines, Item{
			TaskID:      p.TaskID,
			Title:       p.Title,
			Description: p.Description,
			HSNSAC:      p.HSNSAC,
			Quantity:    qty,
			UnitPrice:   p.UnitPrice,
			Amount:      p.UnitPrice.Mul(decimal.NewFromInt(int64(qty))),
		})
	}

	return s.create(ctx, userID, companyID, clientID, lines, cfg)
}

type FromTasksParams struct {
	CompanyID    int64
	ClientID     int64
	TaskIDs      []int64
	TaskPriceMap map[int64]decimal.Decimal
	TaxConfig
}

// CreateFromTasks bills completed work. Every referenced task must belong to
// the one target client, be billable, be COMPLETED, and not sit on any other
// invoice; the first violation aborts the whole call.
func (s *Service) CreateFromTasks(ctx context.Context, userID int64, params FromTasksParams) (*Invoice, error) {
	if len(params.TaskIDs) == 0 {
		return nil, fmt.Errorf("%w: taskIds is required", ErrInvalid)
	}

	tasks, err := s.repo.TasksByIDs(ctx, params.TaskIDs)
	if err != nil {
		return nil, fmt.Errorf("loading tasks: %w", err)
	}

	if len(tasks) != len(params.TaskIDs) {
		return nil, fmt.Errorf("%w: one or more tasks", task.ErrNotFound)
	}

	for _, t := range tasks {
		if t.ClientID != params.ClientID {
			return nil, fmt.Errorf("%w: task %d belongs to a different client", ErrInvalid, t.ID)
		}

		if !t.Billable {
			return nil, fmt.Errorf("%w: task %d is not billable", ErrConflict, t.ID)
		}

		if t.Status != task.StatusCompleted {
			return nil, fmt.Errorf("%w: task %d is not completed", ErrConflict, t.ID)
		}
	}

	invoiced, err := s.repo.InvoicedTaskIDs(ctx, params.TaskIDs)
	if err != nil {
		return nil, fmt.Errorf("checking invoiced tasks: %w", err)
	}

	if len(invoiced) > 0 {
		return nil, fmt.Errorf("%w: task %d is already invoiced", ErrConflict, invoiced[0])
	}

	lines := make([]Item, 0, len(tasks))

	for _, t := range tasks {
		price := params.TaskPriceMap[t.ID]

		lines = append(lines, Item{
			TaskID:    &t.ID,
			Title:     t.Title,
			HSNSAC:    t.HSNSAC,
			Quantity:  1,
			UnitPrice: price,
			Amount:    price,
		})
	}

	return s.create(ctx, userID, params.CompanyID, params.ClientID, lines, params.TaxConfig)
}

func (s *Service) create(ctx context.Context, userID, companyID, clientID int64, lines []Item, cfg TaxConfig) (*Invoice, error) {
	company, err := s.repo.GetCompany(ctx, userID, companyID)
	if err != nil {
		return nil, err
	}

	cl, err := s.repo.GetClient(ctx, clientID)
	if err != nil {
		return nil, err
	}

	gstPercent := defaultGSTPercent
	if cfg.GSTPercent != nil {
		gstPercent = *cfg.GSTPercent
	}

	mode := cfg.PricingMode
	if mode == "" {
		mode = PricingExclusive
	}

	intraState := derefState(company.State) == derefState(cl.State)

	inv := &Invoice{
		Status:      StatusDraft,
		ClientID:    cl.ID,
		CompanyID:   company.ID,
		CreatedByID: userID,

		CompanyName:    company.Name,
		CompanyAddress: company.Address(),
		CompanyGSTIN:   company.GSTIN,
		CompanyCity:    company.City,
		CompanyState:   company.State,
		CompanyPhone:   company.Phone,
		CompanyEmail:   company.Email,

		BankName:    company.BankName,
		BankAccount: company.BankAccount,
		BankIFSC:    company.BankIFSC,
		BankBranch:  company.BankBranch,

		SealURL:      company.SealURL,
		SignatureURL: company.SignatureURL,

		ClientName:      cl.Name,
		ClientGSTIN:     cl.GSTNumber,
		ClientAddress:   cl.Address(),
		ClientCity:      cl.City,
		ClientState:     cl.State,
		ClientStateCode: cl.StateCode,
		ClientPincode:   cl.Pincode,
		ClientPhone:     cl.Phone,
		ClientEmail:     cl.Email,

		GSTPercent:    gstPercent,
		PricingMode:   mode,
		IntraState:    intraState,
		PlaceOfSupply: cfg.PlaceOfSupply,
		Discount:      cfg.Discount,
		Notes:         cfg.Notes,
		Items:         lines,
	}

	if cfg.Manual != nil {
		inv.ManualTotal = true
		inv.Subtotal = cfg.Manual.Subtotal
		inv.CGST = cfg.Manual.CGST
		inv.SGST = cfg.Manual.SGST
		inv.IGST = cfg.Manual.IGST
		inv.Total = cfg.Manual.Total
	} else {
		totals := ComputeTotals(lines, gstPercent, mode, intraState, cfg.Discount)
		inv.Subtotal = totals.Subtotal
		inv.CGST = totals.CGST
		inv.SGST = totals.SGST
		inv.IGST = totals.IGST
		inv.Total = totals.Total
	}

	key := SequenceKeyFor(company, s.now())

	if err := s.repo.Create(ctx, inv, key); err != nil {
		return nil, fmt.Errorf("creating invoice: %w", err)
	}

	return inv, nil
}

func (s *Service) Get(ctx context.Context, id int64) (*Invoice, error) {
	return s.repo.Get(ctx, id)
}

func (s *Service) List(ctx context.Context) ([]*Invoice, error) {
	return s.repo.List(ctx)
}

// AddItem appends a line to a DRAFT invoice. The item lands with its amount
// precomputed; totals stay as they are until a recalculate call.
func (s *Service) AddItem(ctx context.Context, invoiceID int64, params ItemParams) (*Item, error) {
	inv, err := s.repo.Get(ctx, invoiceID)
	if err != nil {
		return nil, err
	}

	if inv.Status == StatusPaid {
		return nil, ErrLocked
	}

	if inv.Status != StatusDraft {
		return nil, fmt.Errorf("%w: invoice already sent", ErrConflict)
	}

	if params.Title == "" {
		return nil, fmt.Errorf("%w: item title is required", ErrInvalid)
	}

	qty := params.Quantity
	if qty == 0 {
		qty = 1
	}

	item := &Item{
		InvoiceID:   invoiceID,
		TaskID:      params.TaskID,
		Title:       params.Title,
		Description: params.Description,
		HSNSAC:      params.HSNSAC,
		Quantity:    qty,
		UnitPrice:   params.UnitPrice,
		Amount:      params.UnitPrice.Mul(decimal.NewFromInt(int64(qty))),
	}

	if err := s.repo.AddItem(ctx, item); err != nil {
		return nil, fmt.Errorf("adding item: %w", err)
	}

	return item, nil
}

type SendParams struct {
	ToEmail string
	Subject string
	Message string
}

// Send transitions the invoice to SENT, marks every line-referenced task as
// INVOICED, and records the email attempt, all in one transaction.
func (s *Service) Send(ctx context.Context, id int64, params SendParams) error {
	if params.ToEmail == "" {
		return fmt.Errorf("%w: toEmail is required", ErrInvalid)
	}

	inv, err := s.repo.Get(ctx, id)
	if err != nil {
		return err
	}

	if inv.Status == StatusPaid {
		return ErrLocked
	}

	subject := params.Subject
	if subject == "" {
		subject = fmt.Sprintf("Invoice %s", inv.Number)
	}

	var taskIDs []int64

	for _, item := range inv.Items {
		if item.TaskID != nil {
			taskIDs = append(taskIDs, *item.TaskID)
		}
	}

	log := &EmailLog{
		InvoiceID: id,
		ToEmail:   params.ToEmail,
		Subject:   subject,
		Message:   params.Message,
		Status:    "SUCCESS",
	}

	if err := s.repo.Send(ctx, id, taskIDs, log); err != nil {
		return fmt.Errorf("sending invoice: %w", err)
	}

	return nil
}

func (s *Service) UpdateStatus(ctx context.Context, id int64, next Status) (*Invoice, error) {
	if !next.Valid() {
		return nil, fmt.Errorf("%w: unknown status %q", ErrInvalid, next)
	}

	inv, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if inv.Status == StatusPaid {
		return nil, ErrLocked
	}

	if err := s.repo.UpdateStatus(ctx, id, next); err != nil {
		return nil, fmt.Errorf("updating status: %w", err)
	}

	inv.Status = next

	return inv, nil
}

// Recalculate recomputes totals from the current line items. Manual-total
// invoices are returned unchanged.
func (s *Service) Recalculate(ctx context.Context, id int64) (*Invoice, error) {
	inv, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if inv.ManualTotal {
		return inv, nil
	}

	totals := ComputeTotals(inv.Items, inv.GSTPercent, inv.PricingMode, inv.IntraState, inv.Discount)

	if err := s.repo.UpdateTotals(ctx, id, totals); err != nil {
		return nil, fmt.Errorf("recalculating invoice: %w", err)
	}

	inv.Subtotal = totals.Subtotal
	inv.CGST = totals.CGST
	inv.SGST = totals.SGST
	inv.IGST = totals.IGST
	inv.Total = totals.Total

	return inv, nil
}

func derefState(s *string) string {
	if s == nil {
		return ""
	}

	return *s
}
