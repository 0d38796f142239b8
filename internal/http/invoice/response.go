package invoice

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/arindamg/taskledger/internal/invoice"
)

type itemResponse struct {
	ID          int64           `json:"id"`
	TaskID      *int64          `json:"task_id,omitempty"`
	Title       string          `json:"title"`
	Description *string         `json:"description,omitempty"`
	HSNSAC      *string         `json:"hsn_sac,omitempty"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Amount      decimal.Decimal `json:"amount"`
}

func toItemResponse(item invoice.Item) itemResponse {
	return itemResponse{
		ID:          item.ID,
		TaskID:      item.TaskID,
		Title:       item.Title,
		Description: item.Description,
		HSNSAC:      item.HSNSAC,
		Quantity:    item.Quantity,
		UnitPrice:   item.UnitPrice,
		Amount:      item.Amount,
	}
}

type invoiceResponse struct {
	ID          int64          `json:"id"`
	Number      string         `json:"number"`
	Status      invoice.Status `json:"status"`
	ClientID    int64          `json:"client_id"`
	CompanyID   int64          `json:"company_id"`
	CreatedByID int64          `json:"created_by_id"`

	CompanyName    string  `json:"company_name"`
	CompanyAddress string  `json:"company_address,omitempty"`
	CompanyGSTIN   *string `json:"company_gstin,omitempty"`
	CompanyCity    *string `json:"company_city,omitempty"`
	CompanyState   *string `json:"company_state,omitempty"`
	CompanyPhone   *string `json:"company_phone,omitempty"`
	CompanyEmail   *string `json:"company_email,omitempty"`

	BankName    *string `json:"bank_name,omitempty"`
	BankAccount *string `json:"bank_account,omitempty"`
	BankIFSC    *string `json:"bank_ifsc,omitempty"`
	BankBranch  *string `json:"bank_branch,omitempty"`

	SealURL      *string `json:"seal_url,omitempty"`
	SignatureURL *string `json:"signature_url,omitempty"`

	ClientName      string  `json:"client_name"`
	ClientGSTIN     *string `json:"client_gstin,omitempty"`
	ClientAddress   string  `json:"client_address,omitempty"`
	ClientCity      *string `json:"client_city,omitempty"`
	ClientState     *string `json:"client_state,omitempty"`
	ClientStateCode *string `json:"client_state_code,omitempty"`
	ClientPincode   *string `json:"client_pincode,omitempty"`
	ClientPhone     *string `json:"client_phone,omitempty"`
	ClientEmail     *string `json:"client_email,omitempty"`

	GSTPercent    decimal.Decimal     `json:"gst_percent"`
	PricingMode   invoice.PricingMode `json:"pricing_mode"`
	IntraState    bool                `json:"intra_state"`
	PlaceOfSupply *string             `json:"place_of_supply,omitempty"`

	Discount decimal.Decimal `json:"discount"`
	Subtotal decimal.Decimal `json:"subtotal"`
	CGST     decimal.Decimal `json:"cgst"`
	SGST     decimal.Decimal `json:"sgst"`
	IGST     decimal.Decimal `json:"igst"`
	Total    decimal.Decimal `json:"total"`

	ManualTotal bool `json:"manual_total"`

	Notes *string        `json:"notes,omitempty"`
	Items []itemResponse `json:"items"`

	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt *time.Time `json:"updated_at,omitempty"`
}

func toResponse(inv *invoice.Invoice) invoiceResponse {
	items := make([]itemResponse, 0, len(inv.Items))
	for _, item := range inv.Items {
		items = append(items, toItemResponse(item))
	}

	return invoiceResponse{
		ID:          inv.ID,
		Number:      inv.Number,
		Status:      inv.Status,
		ClientID:    inv.ClientID,
		CompanyID:   inv.CompanyID,
		CreatedByID: inv.CreatedByID,

		CompanyName:    inv.CompanyName,
		CompanyAddress: inv.CompanyAddress,
		CompanyGSTIN:   inv.CompanyGSTIN,
		CompanyCity:    inv.CompanyCity,
		CompanyState:   inv.CompanyState,
		CompanyPhone:   inv.CompanyPhone,
		CompanyEmail:   inv.CompanyEmail,

		BankName:    inv.BankName,
		BankAccount: inv.BankAccount,
		BankIFSC:    inv.BankIFSC,
		BankBranch:  inv.BankBranch,

		SealURL:      inv.SealURL,
		SignatureURL: inv.SignatureURL,

		ClientName:      inv.ClientName,
		ClientGSTIN:     inv.ClientGSTIN,
		ClientAddress:   inv.ClientAddress,
		ClientCity:      inv.ClientCity,
		ClientState:     inv.ClientState,
		ClientStateCode: inv.ClientStateCode,
		ClientPincode:   inv.ClientPincode,
		ClientPhone:     inv.ClientPhone,
		ClientEmail:     inv.ClientEmail,

		GSTPercent:    inv.GSTPercent,
		PricingMode:   inv.PricingMode,
		IntraState:    inv.IntraState,
		PlaceOfSupply: inv.PlaceOfSupply,

		Discount: inv.Discount,
		Subtotal: inv.Subtotal,
		CGST:     inv.CGST,
		SGST:     inv.SGST,
		IGST:     inv.IGST,
		Total:    inv.Total,

		ManualTotal: inv.ManualTotal,

		Notes: inv.Notes,
		Items: items,

		CreatedAt: inv.CreatedAt,
		UpdatedAt: inv.UpdatedAt,
	}
}

func toResponseList(invoices []*invoice.Invoice) []invoiceResponse {
	resp := make([]invoiceResponse, len(invoices))
	for i, inv := range invoices {
		resp[i] = toResponse(inv)
	}

	return resp
}
