package taskmaster

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/arindamg/taskledger/internal/calendar"
	"github.com/arindamg/taskledger/internal/taskmaster"
)

type clientLinkResponse struct {
	ClientID     int64      `json:"client_id"`
	CustomDueDay *int       `json:"custom_due_day,omitempty"`
	StartDate    *time.Time `json:"start_date,omitempty"`
	EndDate      *time.Time `json:"end_date,omitempty"`
	Active       bool       `json:"active"`
}

type taskMasterResponse struct {
	ID            int64            `json:"id"`
	Title         string           `json:"title"`
	Description   string           `json:"description,omitempty"`
	CategoryID    *int64           `json:"category_id,omitempty"`
	Cadence       calendar.Cadence `json:"cadence"`
	Interval      *int             `json:"interval,omitempty"`
	FinancialYear *string          `json:"financial_year,omitempty"`
	DefaultDueDay *int             `json:"default_due_day,omitempty"`
	StartDate     time.Time        `json:"start_date"`
	EndDate       *time.Time       `json:"end_date,omitempty"`

	Billable  bool             `json:"billable"`
	HSNSAC    *string          `json:"hsn_sac,omitempty"`
	GSTRate   *decimal.Decimal `json:"gst_rate,omitempty"`
	UnitLabel *string          `json:"unit_label,omitempty"`

	Active    bool                 `json:"active"`
	Clients   []clientLinkResponse `json:"clients,omitempty"`
	CreatedAt time.Time            `json:"created_at"`
	UpdatedAt *time.Time           `json:"updated_at,omitempty"`
}

func toResponse(m *taskmaster.TaskMaster) taskMasterResponse {
	resp := taskMasterResponse{
		ID:            m.ID,
		Title:         m.Title,
		Description:   m.Description,
		CategoryID:    m.CategoryID,
		Cadence:       m.Cadence,
		Interval:      m.Interval,
		FinancialYear: m.FinancialYear,
		DefaultDueDay: m.DefaultDueDay,
		StartDate:     m.StartDate,
		EndDate:       m.EndDate,
		Billable:      m.Billable,
		HSNSAC:        m.HSNSAC,
		GSTRate:       m.GSTRate,
		UnitLabel:     m.UnitLabel,
		Active:        m.Active,
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}

	for _, link := range m.Clients {
		resp.Clients = append(resp.Clients, clientLinkResponse{
			ClientID:     link.ClientID,
			CustomDueDay: link.CustomDueDay,
			StartDate:    link.StartDate,
			EndDate:      link.EndDate,
			Active:       link.Active,
		})
	}

	return resp
}

func toResponseList(masters []*taskmaster.TaskMaster) []taskMasterResponse {
	resp := make([]taskMasterResponse, len(masters))
	for i, m := range masters {
		resp[i] = toResponse(m)
	}

	return resp
}
