package client

import (
	"context"
	"fmt"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=client
type Repository interface {
	Create(ctx context.Context, c *Client) error
	Get(ctx context.Context, id int64) (*Client, error)
	Update(ctx context.Context, c *Client) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context) ([]*Client, error)
	ExistsByCodeOrEmail(ctx context.Context, code string, email *string) (bool, error)

	CreateCompany(ctx context.Context, c *Company) error
	GetCompany(ctx context.Context, ownerID, id int64) (*Company, error)
	UpdateCompany(ctx context.Context, c *Company) error
	DeleteCompany(ctx context.Context, ownerID, id int64) error
	ListCompanies(ctx context.Context, ownerID int64) ([]*Company, error)
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

type CreateParams struct {
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
}

func (s *Service) Create(ctx context.Context, params CreateParams) (*Client, error) {
	if params.Code == "" {
		return nil, fmt.Errorf("%w: code is required", ErrInvalid)
	}

	if params.Name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrInvalid)
	}

	exists, err := s.repo.ExistsByCodeOrEmail(ctx, params.Code, params.Email)
	if err != nil {
		return nil, fmt.Errorf("checking client: %w", err)
	}

	if exists {
		return nil, ErrDuplicate
	}

	c := &Client{
		Code:         params.Code,
		Name:         params.Name,
		Email:        params.Email,
		Phone:        params.Phone,
		AddressLine1: params.AddressLine1,
		AddressLine2: params.AddressLine2,
		City:         params.City,
		State:        params.State,
		Pincode:      params.Pincode,
		GSTNumber:    params.GSTNumber,
		StateCode:    params.StateCode,
	}

	if err := s.repo.Create(ctx, c); err != nil {
		return nil, fmt.Errorf("creating client: %w", err)
	}

	return c, nil
}

// UpdateParams carries field-level updates; nil leaves a field untouched.
// Code is deliberately immutable once assigned.
type UpdateParams struct {
	Name  *string
	Email *string
	Phone *string

	AddressLine1 *string
	AddressLine2 *string
	City         *string
	State        *string
	Pincode      *string

	GSTNumber *string
	StateCode *string
}

func (s *Service) Update(ctx context.Context, id int64, params UpdateParams) (*Client, error) {
	c, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if params.Name != nil {
		if *params.Name == "" {
			return nil, fmt.Errorf("%w: name cannot be empty", ErrInvalid)
		}

		c.Name = *params.Name
	}

	if params.Email != nil {
		c.Email = params.Email
	}

	if params.Phone != nil {
		c.Phone = params.Phone
	}

	if params.AddressLine1 != nil {
		c.AddressLine1 = params.AddressLine1
	}

	if params.AddressLine2 != nil {
		c.AddressLine2 = params.AddressLine2
	}

	if params.City != nil {
		c.City = params.City
	}

	if params.State != nil {
		c.State = params.State
	}

	if params.Pincode != nil {
		c.Pincode = params.Pincode
	}

	if params.GSTNumber != nil {
		c.GSTNumber = params.GSTNumber
	}

	if params.StateCode != nil {
		c.StateCode = params.StateCode
	}

	if err := s.repo.Update(ctx, c); err != nil {
		return nil, fmt.Errorf("updating client: %w", err)
	}

	return c, nil
}

func (s *Service) Get(ctx context.Context, id int64) (*Client, error) {
	return s.repo.Get(ctx, id)
}

func (s *Service) List(ctx context.Context) ([]*Client, error) {
	return s.repo.List(ctx)
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	if _, err := s.repo.Get(ctx, id); err != nil {
		return err
	}

	return s.repo.Delete(ctx, id)
}

type CompanyParams struct {
	Name  string
	Code  string
	Email *string
	Phone *string

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
}

func (s *Service) CreateCompany(ctx context.Context, ownerID int64, params CompanyParams) (*Company, error) {
	if params.Name == "" {
		return nil, fmt.Errorf("%w: company name is required", ErrInvalid)
	}

	if params.Code == "" {
		return nil, fmt.Errorf("%w: company code is required", ErrInvalid)
	}

	c := &Company{
		OwnerID:      ownerID,
		Name:         params.Name,
		Code:         params.Code,
		Email:        params.Email,
		Phone:        params.Phone,
		AddressLine1: params.AddressLine1,
		AddressLine2: params.AddressLine2,
		City:         params.City,
		State:        params.State,
		Pincode:      params.Pincode,
		GSTIN:        params.GSTIN,
		BankName:     params.BankName,
		BankAccount:  params.BankAccount,
		BankIFSC:     params.BankIFSC,
		BankBranch:   params.BankBranch,
	}

	if err := s.repo.CreateCompany(ctx, c); err != nil {
		return nil, fmt.Errorf("creating company: %w", err)
	}

	return c, nil
}

func (s *Service) GetCompany(ctx context.Context, ownerID, id int64) (*Company, error) {
	return s.repo.GetCompany(ctx, ownerID, id)
}

func (s *Service) ListCompanies(ctx context.Context, ownerID int64) ([]*Company, error) {
	return s.repo.ListCompanies(ctx, ownerID)
}

// UpdateCompanyBranding stores uploaded seal or signature asset URLs. File
// payloads land on disk through the upload handler; only the URL is kept
// here.
func (s *Service) UpdateCompanyBranding(ctx context.Context, ownerID, id int64, sealURL, signatureURL *string) (*Company, error) {
	c, err := s.repo.GetCompany(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}

	if sealURL != nil {
		c.SealURL = sealURL
	}

	if signatureURL != nil {
		c.SignatureURL = signatureURL
	}

	if err := s.repo.UpdateCompany(ctx, c); err != nil {
		return nil, fmt.Errorf("updating company: %w", err)
	}

	return c, nil
}

func (s *Service) UpdateCompany(ctx context.Context, ownerID, id int64, params CompanyParams) (*Company, error) {
	c, err := s.repo.GetCompany(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}

	if params.Name != "" {
		c.Name = params.Name
	}

	if params.Code != "" {
		c.Code = params.Code
	}

	if params.Email != nil {
		c.Email = params.Email
	}

	if params.Phone != nil {
		c.Phone = params.Phone
	}

	if params.AddressLine1 != nil {
		c.AddressLine1 = params.AddressLine1
	}

	if params.AddressLine2 != nil {
		c.AddressLine2 = params.AddressLine2
	}

	if params.City != nil {
		c.City = params.City
	}

	if params.State != nil {
		c.State = params.State
	}

	if params.Pincode != nil {
		c.Pincode = params.Pincode
	}

	if params.GSTIN != nil {
		c.GSTIN = params.GSTIN
	}

	if params.BankName != nil {
		c.BankName = params.BankName
	}

	if params.BankAccount != nil {
		c.BankAccount = params.BankAccount
	}

	if params.BankIFSC != nil {
		c.BankIFSC = params.BankIFSC
	}

	if params.BankBranch != nil {
		c.BankBranch = params.BankBranch
	}

	if err := s.repo.UpdateCompany(ctx, c); err != nil {
		return nil, fmt.Errorf("updating company: %w", err)
	}

	return c, nil
}

func (s *Service) DeleteCompany(ctx context.Context, ownerID, id int64) error {
	return s.repo.DeleteCompany(ctx, ownerID, id)
}
