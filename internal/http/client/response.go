package client

import (
	"time"

	"github.com/arindamg/taskledger/internal/client"
)

type clientResponse struct {
	ID    int64   `json:"id"`
	Code  string  `json:"code"`
	Name  string  `json:"name"`
	Email *string `json:"email,omitempty"`
	Phone *string `json:"phone,omitempty"`

	AddressLine1 *string `json:"address_line1,omitempty"`
	AddressLine2 *string `json:"address_line2,omitempty"`
	City         *string `json:"city,omitempty"`
	State        *string `json:"state,omitempty"`
	Pincode      *string `json:"pincode,omitempty"`

	GSTNumber *string `json:"gst_number,omitempty"`
	StateCode *string `json:"state_code,omitempty"`

	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt *time.Time `json:"updated_at,omitempty"`
}

func toClientResponse(c *client.Client) clientResponse {
	return clientResponse{
		ID:           c.ID,
		Code:         c.Code,
		Name:         c.Name,
		Email:        c.Email,
		Phone:        c.Phone,
		AddressLine1: c.AddressLine1,
		AddressLine2: c.AddressLine2,
		City:         c.City,
		State:        c.State,
		Pincode:      c.Pincode,
		GSTNumber:    c.GSTNumber,
		StateCode:    c.StateCode,
		CreatedAt:    c.CreatedAt,
		UpdatedAt:    c.UpdatedAt,
	}
}

func toClientResponseList(clients []*client.Client) []clientResponse {
	resp := make([]clientResponse, len(clients))
	for i, c := range clients {
		resp[i] = toClientResponse(c)
	}

	return resp
}

type companyResponse struct {
	ID    int64   `json:"id"`
	Name  string  `json:"name"`
	Code  string  `json:"code"`
	Email *string `json:"email,omitempty"`
	Phone *string `json:"phone,omitempty"`

	AddressLine1 *string `json:"address_line1,omitempty"`
	AddressLine2 *string `json:"address_line2,omitempty"`
	City         *string `json:"city,omitempty"`
	State        *string `json:"state,omitempty"`
	Pincode      *string `json:"pincode,omitempty"`

	GSTIN *string `json:"gstin,omitempty"`

	BankName    *string `json:"bank_name,omitempty"`
	BankAccount *string `json:"bank_account,omitempty"`
	BankIFSC    *string `json:"bank_ifsc,omitempty"`
	BankBranch  *string `json:"bank_branch,omitempty"`

	SealURL      *string `json:"seal_url,omitempty"`
	SignatureURL *string `json:"signature_url,omitempty"`

	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt *time.Time `json:"updated_at,omitempty"`
}

func toCompanyResponse(c *client.Company) companyResponse {
	return companyResponse{
		ID:           c.ID,
		Name:         c.Name,
		Code:         c.Code,
		Email:        c.Email,
		Phone:        c.Phone,
		AddressLine1: c.AddressLine1,
		AddressLine2: c.AddressLine2,
		City:         c.City,
		State:        c.State,
		Pincode:      c.Pincode,
		GSTIN:        c.GSTIN,
		BankName:     c.BankName,
		BankAccount:  c.BankAccount,
		BankIFSC:     c.BankIFSC,
		BankBranch:   c.BankBranch,
		SealURL:      c.SealURL,
		SignatureURL: c.SignatureURL,
		CreatedAt:    c.CreatedAt,
		UpdatedAt:    c.UpdatedAt,
	}
}

func toCompanyResponseList(companies []*client.Company) []companyResponse {
	resp := make([]companyResponse, len(companies))
	for i, c := range companies {
		resp[i] = toCompanyResponse(c)
	}

	return resp
}
