package importer

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/arindamg/taskledger/internal/calendar"
	enc "github.com/arindamg/taskledger/internal/encoding"
	"github.com/arindamg/taskledger/internal/taskmaster"
)

// Expected column headers. The header row may appear anywhere before the
// data; extra columns are ignored.
const (
	colTitle         = "Task Title"
	colFrequency     = "Frequency"
	colCategory      = "Category"
	colDescription   = "Description"
	colInterval      = "Interval"
	colFinancialYear = "Financial Year"
	colDefaultDueDay = "Default Due Day"
	colStartDate     = "Start Date"
	colEndDate       = "End Date"
	colIsActive      = "Is Active"
	colIsBillable    = "Is Billable"
	colHSNSAC        = "HSN / SAC"
	colGSTRate       = "GST Rate"
	colUnit          = "Unit"
)

// Masters is the slice of the task-master service the importer needs.
//
//go:generate mockgen -source=service.go -destination=masters_mock.go -package=importer
type Masters interface {
	EnsureCategory(ctx context.Context, name string) (int64, error)
	ExistsByTitleCadence(ctx context.Context, title string, cadence calendar.Cadence) (bool, error)
	Create(ctx context.Context, params taskmaster.CreateParams) (*taskmaster.TaskMaster, error)
}

type Service struct {
	masters Masters
	now     func() time.Time
}

type Option func(*Service)

func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

func NewService(masters Masters, opts ...Option) *Service {
	s := &Service{masters: masters, now: time.Now}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// RowError records why one row was rejected. Row is the 1-based line number
// in the uploaded file.
type RowError struct {
	Row int    `json:"row"`
	Err string `json:"error"`
}

type Result struct {
	TotalRows int        `json:"totalRows"`
	Created   int        `json:"created"`
	Skipped   int        `json:"skipped"`
	Errors    []RowError `json:"errors"`
}

// ImportTaskMasters loads task masters from a CSV export. Rows missing the
// mandatory title or frequency are skipped quietly; a row that names an
// existing (title, frequency) pair is skipped as a duplicate; any other
// defect is reported per row and the import continues.
func (s *Service) ImportTaskMasters(ctx context.Context, r io.Reader) (*Result, error) {
	utf8r, err := enc.NewUTF8Reader(r)
	if err != nil {
		return nil, fmt.Errorf("detect encoding: %w", err)
	}

	data, err := io.ReadAll(utf8r)
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}

	reader := csv.NewReader(bytes.NewReader(data))
	reader.Comma = enc.DetectDelimiter(data)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}

	cols, headerIdx := detectHeader(rows)
	if cols == nil {
		return nil, fmt.Errorf("no header row found: expected %q and %q columns", colTitle, colFrequency)
	}

	records := rows[headerIdx+1:]
	res := &Result{TotalRows: len(records)}

	for i, row := range records {
		rowNum := headerIdx + i + 2 // 1-based, after the header

		switch err := s.importRow(ctx, cols, row); {
		case err == nil:
			res.Created++
		case errors.Is(err, errSkipRow):
			res.Skipped++
		default:
			res.Errors = append(res.Errors, RowError{Row: rowNum, Err: err.Error()})
		}
	}

	return res, nil
}

// errSkipRow marks rows left out without being counted as failures.
var errSkipRow = errors.New("row skipped")

func (s *Service) importRow(ctx context.Context, cols colIndex, row []string) error {
	title := cellValue(row, cols, colTitle)
	frequencyRaw := strings.ToUpper(cellValue(row, cols, colFrequency))

	if title == "" || frequencyRaw == "" {
		return fmt.Errorf("%w: missing title or frequency", errSkipRow)
	}

	cadence := calendar.Cadence(frequencyRaw)
	if !cadence.Valid() {
		return fmt.Errorf("invalid frequency %q", frequencyRaw)
	}

	categoryName := cellValue(row, cols, colCategory)
	if categoryName == "" {
		return fmt.Errorf("category is required")
	}

	exists, err := s.masters.ExistsByTitleCadence(ctx, title, cadence)
	if err != nil {
		return fmt.Errorf("checking duplicate: %w", err)
	}

	if exists {
		return fmt.Errorf("%w: duplicate title and frequency", errSkipRow)
	}

	categoryID, err := s.masters.EnsureCategory(ctx, categoryName)
	if err != nil {
		return fmt.Errorf("resolving category: %w", err)
	}

	params := taskmaster.CreateParams{
		Title:      title,
		Cadence:    cadence,
		CategoryID: &categoryID,
		StartDate:  s.now(),
		Billable:   cellValue(row, cols, colIsBillable) == "TRUE",
	}

	if v := cellValue(row, cols, colDescription); v != "" {
		params.Description = v
	}

	if v := cellValue(row, cols, colInterval); v != "" {
		interval, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid interval %q", v)
		}

		params.Interval = &interval
	}

	if v := cellValue(row, cols, colFinancialYear); v != "" {
		params.FinancialYear = &v
	}

	if v := cellValue(row, cols, colDefaultDueDay); v != "" {
		day, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid default due day %q", v)
		}

		params.DefaultDueDay = &day
	}

	if v := cellValue(row, cols, colStartDate); v != "" {
		start, err := parseDate(v)
		if err != nil {
			return fmt.Errorf("invalid start date %q", v)
		}

		params.StartDate = start
	}

	if v := cellValue(row, cols, colEndDate); v != "" {
		end, err := parseDate(v)
		if err != nil {
			return fmt.Errorf("invalid end date %q", v)
		}

		params.EndDate = &end
	}

	if v := cellValue(row, cols, colIsActive); v != "" {
		params.Active = new(v != "FALSE")
	}

	if params.Billable {
		if v := cellValue(row, cols, colHSNSAC); v != "" {
			params.HSNSAC = &v
		}

		if v := cellValue(row, cols, colGSTRate); v != "" {
			rate, err := decimal.NewFromString(v)
			if err != nil {
				return fmt.Errorf("invalid gst rate %q", v)
			}

			params.GSTRate = &rate
		}

		if v := cellValue(row, cols, colUnit); v != "" {
			params.UnitLabel = &v
		}
	}

	if _, err := s.masters.Create(ctx, params); err != nil {
		return fmt.Errorf("creating task master: %w", err)
	}

	return nil
}

// colIndex maps column names to their index in the row.
type colIndex map[string]int

// detectHeader scans rows for the one carrying the mandatory columns.
func detectHeader(rows [][]string) (colIndex, int) {
	for rowIdx, row := range rows {
		cols := make(colIndex)

		for i, cell := range row {
			name := strings.TrimSpace(cell)
			if name != "" {
				cols[name] = i
			}
		}

		if _, ok := cols[colTitle]; !ok {
			continue
		}

		if _, ok := cols[colFrequency]; !ok {
			continue
		}

		return cols, rowIdx
	}

	return nil, 0
}

func cellValue(row []string, cols colIndex, name string) string {
	idx, ok := cols[name]
	if !ok || idx >= len(row) {
		return ""
	}

	return strings.TrimSpace(row[idx])
}

var dateLayouts = []string{time.DateOnly, "02/01/2006", "02-01-2006"}

func parseDate(v string) (time.Time, error) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, v); err == nil {
			return t, nil
		}
	}

	return time.Time{}, fmt.Errorf("unrecognized date %q", v)
}
