package taskmaster_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/arindamg/taskledger/internal/calendar"
	"github.com/arindamg/taskledger/internal/task"
	"github.com/arindamg/taskledger/internal/taskmaster"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func gstMaster(cadence calendar.Cadence) *taskmaster.TaskMaster {
	rate := decimal.NewFromInt(18)
	hsn := "998231"

	return &taskmaster.TaskMaster{
		ID:        7,
		Title:     "GST Filing",
		Cadence:   cadence,
		StartDate: date(2024, time.April, 1),
		Billable:  true,
		HSNSAC:    &hsn,
		GSTRate:   &rate,
		UnitLabel: new("filing"),
		Active:    true,
		Clients: []taskmaster.ClientLink{
			{TaskMasterID: 7, ClientID: 101, Active: true},
			{TaskMasterID: 7, ClientID: 102, Active: true},
		},
	}
}

func TestGenerateForPeriod_MonthlyFansOutPerClient(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := taskmaster.NewMockRepository(ctrl)
	svc := taskmaster.NewService(repo)

	master := gstMaster(calendar.Monthly)

	repo.EXPECT().Get(gomock.Any(), int64(7)).Return(master, nil)
	repo.EXPECT().
		ExistingPeriodClientIDs(gomock.Any(), int64(7), date(2025, time.July, 1), []int64{101, 102}).
		Return(map[int64]bool{}, nil)

	var created []*task.Task

	repo.EXPECT().
		CreateGeneratedTask(gomock.Any(), gomock.Any(), nil).
		DoAndReturn(func(_ context.Context, tk *task.Task, _ *int64) error {
			created = append(created, tk)
			return nil
		}).
		Times(2)

	month := time.July
	res, err := svc.GenerateForPeriod(context.Background(), 7, taskmaster.PeriodSelector{
		FinancialYear: "2025-26",
		Month:         &month,
	}, taskmaster.Overrides{})
	require.NoError(t, err)

	assert.Equal(t, 2, res.Created)
	assert.Equal(t, 0, res.SkippedExisting)
	assert.Equal(t, "2025-07", res.PeriodKey)
	require.NotNil(t, res.PeriodStart)
	assert.Equal(t, date(2025, time.July, 1), *res.PeriodStart)

	require.Len(t, created, 2)
	assert.Equal(t, "GST Filing - 2025-07", created[0].Title)
	assert.Nil(t, created[0].DueDate)
	assert.Equal(t, task.StatusPending, created[0].Status)
	require.NotNil(t, created[0].TaskMasterID)
	assert.Equal(t, int64(7), *created[0].TaskMasterID)
	require.NotNil(t, created[0].PeriodStart)
	assert.Equal(t, date(2025, time.July, 1), *created[0].PeriodStart)
	assert.True(t, created[0].Billable)
	require.NotNil(t, created[0].GSTRate)
	assert.True(t, created[0].GSTRate.Equal(decimal.NewFromInt(18)))
	assert.ElementsMatch(t, []int64{101, 102}, []int64{created[0].ClientID, created[1].ClientID})
}

func TestGenerateForPeriod_MonthlyResolvesJanuaryIntoEndYear(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := taskmaster.NewMockRepository(ctrl)
	svc := taskmaster.NewService(repo)

	master := gstMaster(calendar.Monthly)
	master.Clients = master.Clients[:1]

	repo.EXPECT().Get(gomock.Any(), int64(7)).Return(master, nil)
	repo.EXPECT().
		ExistingPeriodClientIDs(gomock.Any(), int64(7), date(2026, time.January, 1), []int64{101}).
		Return(map[int64]bool{}, nil)
	repo.EXPECT().CreateGeneratedTask(gomock.Any(), gomock.Any(), nil).Return(nil)

	month := time.January
	res, err := svc.GenerateForPeriod(context.Background(), 7, taskmaster.PeriodSelector{
		FinancialYear: "2025-26",
		Month:         &month,
	}, taskmaster.Overrides{})
	require.NoError(t, err)
	assert.Equal(t, "2026-01", res.PeriodKey)
}

func TestGenerateForPeriod_IsIdempotent(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := taskmaster.NewMockRepository(ctrl)
	svc := taskmaster.NewService(repo)

	master := gstMaster(calendar.Monthly)
	generated := map[int64]bool{}

	repo.EXPECT().Get(gomock.Any(), int64(7)).Return(master, nil).Times(2)
	repo.EXPECT().
		ExistingPeriodClientIDs(gomock.Any(), int64(7), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ int64, _ time.Time, _ []int64) (map[int64]bool, error) {
			seen := make(map[int64]bool, len(generated))
			for id := range generated {
				seen[id] = true
			}
			return seen, nil
		}).
		Times(2)
	repo.EXPECT().
		CreateGeneratedTask(gomock.Any(), gomock.Any(), nil).
		DoAndReturn(func(_ context.Context, tk *task.Task, _ *int64) error {
			generated[tk.ClientID] = true
			return nil
		}).
		Times(2)

	month := time.July
	sel := taskmaster.PeriodSelector{FinancialYear: "2025-26", Month: &month}

	first, err := svc.GenerateForPeriod(context.Background(), 7, sel, taskmaster.Overrides{})
	require.NoError(t, err)
	require.Equal(t, 2, first.Created)

	second, err := svc.GenerateForPeriod(context.Background(), 7, sel, taskmaster.Overrides{})
	require.NoError(t, err)
	assert.Equal(t, 0, second.Created)
	assert.Equal(t, first.Created, second.SkippedExisting)
}

func TestGenerateForPeriod_EventBasedIgnoresPeriodAndDates(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := taskmaster.NewMockRepository(ctrl)
	svc := taskmaster.NewService(repo)

	master := gstMaster(calendar.EventBased)
	master.Title = "Company Incorporation"

	repo.EXPECT().Get(gomock.Any(), int64(7)).Return(master, nil)
	repo.EXPECT().
		ExistingClientIDs(gomock.Any(), int64(7), []int64{101, 102}).
		Return(map[int64]bool{101: true}, nil)

	var created *task.Task

	repo.EXPECT().
		CreateGeneratedTask(gomock.Any(), gomock.Any(), nil).
		DoAndReturn(func(_ context.Context, tk *task.Task, _ *int64) error {
			created = tk
			return nil
		})

	res, err := svc.GenerateForPeriod(context.Background(), 7, taskmaster.PeriodSelector{}, taskmaster.Overrides{})
	require.NoError(t, err)

	assert.Equal(t, 1, res.Created)
	assert.Equal(t, 1, res.SkippedExisting)
	assert.Empty(t, res.PeriodKey)
	assert.Nil(t, res.PeriodStart)

	require.NotNil(t, created)
	assert.Equal(t, "Company Incorporation", created.Title)
	assert.Equal(t, int64(102), created.ClientID)
	assert.Nil(t, created.DueDate)
	assert.Nil(t, created.PeriodStart)
}

func TestGenerateForPeriod_WeeklyEnumeratesMondays(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := taskmaster.NewMockRepository(ctrl)
	svc := taskmaster.NewService(repo)

	master := gstMaster(calendar.Weekly)
	master.Clients = master.Clients[:1]

	repo.EXPECT().Get(gomock.Any(), int64(7)).Return(master, nil)
	repo.EXPECT().
		ExistingDueKeys(gomock.Any(), int64(7), gomock.Any(), []int64{101}).
		Return(map[taskmaster.DueKey]bool{
			{ClientID: 101, DueDate: "2025-07-07"}: true,
		}, nil)

	var dueDates []string

	repo.EXPECT().
		CreateGeneratedTask(gomock.Any(), gomock.Any(), nil).
		DoAndReturn(func(_ context.Context, tk *task.Task, _ *int64) error {
			require.NotNil(t, tk.DueDate)
			assert.Equal(t, time.Monday, tk.DueDate.Weekday())
			assert.Equal(t, "GST Filing - 2025-26-07", tk.Title)
			dueDates = append(dueDates, tk.DueDate.Format(time.DateOnly))
			return nil
		}).
		AnyTimes()

	month := time.July
	res, err := svc.GenerateForPeriod(context.Background(), 7, taskmaster.PeriodSelector{
		FinancialYear: "2025-26",
		Month:         &month,
	}, taskmaster.Overrides{})
	require.NoError(t, err)

	// July 2025 has Mondays on the 7th, 14th, 21st and 28th; the 7th already
	// exists.
	assert.Equal(t, "2025-26-07", res.PeriodKey)
	assert.Equal(t, 3, res.Created)
	assert.Equal(t, 1, res.SkippedExisting)
	assert.Equal(t, []string{"2025-07-14", "2025-07-21", "2025-07-28"}, dueDates)
}

func TestGenerateForPeriod_DailyClampsToLinkWindow(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := taskmaster.NewMockRepository(ctrl)
	svc := taskmaster.NewService(repo)

	master := gstMaster(calendar.Daily)
	linkEnd := date(2025, time.July, 3)
	master.Clients = []taskmaster.ClientLink{
		{TaskMasterID: 7, ClientID: 101, EndDate: &linkEnd, Active: true},
	}

	repo.EXPECT().Get(gomock.Any(), int64(7)).Return(master, nil)
	repo.EXPECT().
		ExistingDueKeys(gomock.Any(), int64(7), gomock.Any(), []int64{101}).
		Return(map[taskmaster.DueKey]bool{}, nil)
	repo.EXPECT().CreateGeneratedTask(gomock.Any(), gomock.Any(), nil).Return(nil).Times(3)

	month := time.July
	res, err := svc.GenerateForPeriod(context.Background(), 7, taskmaster.PeriodSelector{
		FinancialYear: "2025-26",
		Month:         &month,
	}, taskmaster.Overrides{})
	require.NoError(t, err)
	assert.Equal(t, 3, res.Created)
}

func TestGenerateForPeriod_QuarterlySkipsLinkOutsideWindow(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := taskmaster.NewMockRepository(ctrl)
	svc := taskmaster.NewService(repo)

	master := gstMaster(calendar.Quarterly)
	ended := date(2025, time.May, 31)
	master.Clients[1].EndDate = &ended // outside Q2 (Jul-Sep)

	repo.EXPECT().Get(gomock.Any(), int64(7)).Return(master, nil)
	repo.EXPECT().
		ExistingPeriodClientIDs(gomock.Any(), int64(7), date(2025, time.July, 1), []int64{101}).
		Return(map[int64]bool{}, nil)
	repo.EXPECT().CreateGeneratedTask(gomock.Any(), gomock.Any(), nil).Return(nil)

	quarter := 2
	res, err := svc.GenerateForPeriod(context.Background(), 7, taskmaster.PeriodSelector{
		FinancialYear: "2025-26",
		Quarter:       &quarter,
	}, taskmaster.Overrides{})
	require.NoError(t, err)

	// The expired link vanishes silently rather than counting as skipped.
	assert.Equal(t, "2025-26-Q2", res.PeriodKey)
	assert.Equal(t, 1, res.Created)
	assert.Equal(t, 0, res.SkippedExisting)
}

func TestGenerateForPeriod_OverridesReplaceBillingDefaults(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := taskmaster.NewMockRepository(ctrl)
	svc := taskmaster.NewService(repo)

	master := gstMaster(calendar.Yearly)
	master.Clients = master.Clients[:1]

	repo.EXPECT().Get(gomock.Any(), int64(7)).Return(master, nil)
	repo.EXPECT().
		ExistingPeriodClientIDs(gomock.Any(), int64(7), date(2025, time.April, 1), []int64{101}).
		Return(map[int64]bool{}, nil)

	assignee := int64(55)

	var created *task.Task

	repo.EXPECT().
		CreateGeneratedTask(gomock.Any(), gomock.Any(), &assignee).
		DoAndReturn(func(_ context.Context, tk *task.Task, _ *int64) error {
			created = tk
			return nil
		})

	res, err := svc.GenerateForPeriod(context.Background(), 7, taskmaster.PeriodSelector{
		FinancialYear: "2025-26",
	}, taskmaster.Overrides{
		Billable:   new(false),
		AssigneeID: &assignee,
	})
	require.NoError(t, err)
	assert.Equal(t, 1, res.Created)

	require.NotNil(t, created)
	assert.False(t, created.Billable)
	assert.Nil(t, created.HSNSAC)
	assert.Nil(t, created.GSTRate)
	assert.Nil(t, created.UnitLabel)
}

func TestGenerateForPeriod_DuplicateAtWriteCountsAsSkipped(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := taskmaster.NewMockRepository(ctrl)
	svc := taskmaster.NewService(repo)

	master := gstMaster(calendar.Monthly)

	repo.EXPECT().Get(gomock.Any(), int64(7)).Return(master, nil)
	repo.EXPECT().
		ExistingPeriodClientIDs(gomock.Any(), int64(7), gomock.Any(), gomock.Any()).
		Return(map[int64]bool{}, nil)

	gomock.InOrder(
		repo.EXPECT().CreateGeneratedTask(gomock.Any(), gomock.Any(), nil).
			Return(fmt.Errorf("inserting task: %w", task.ErrDuplicate)),
		repo.EXPECT().CreateGeneratedTask(gomock.Any(), gomock.Any(), nil).Return(nil),
	)

	month := time.July
	res, err := svc.GenerateForPeriod(context.Background(), 7, taskmaster.PeriodSelector{
		FinancialYear: "2025-26",
		Month:         &month,
	}, taskmaster.Overrides{})
	require.NoError(t, err)
	assert.Equal(t, 1, res.Created)
	assert.Equal(t, 1, res.SkippedExisting)
}

func TestGenerateForPeriod_Guards(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(m *taskmaster.TaskMaster)
		sel     taskmaster.PeriodSelector
		wantErr error
	}{
		{
			name:    "InactiveMaster",
			mutate:  func(m *taskmaster.TaskMaster) { m.Active = false },
			sel:     taskmaster.PeriodSelector{FinancialYear: "2025-26"},
			wantErr: taskmaster.ErrInactive,
		},
		{
			name:    "NoClients",
			mutate:  func(m *taskmaster.TaskMaster) { m.Clients = nil },
			sel:     taskmaster.PeriodSelector{FinancialYear: "2025-26"},
			wantErr: taskmaster.ErrNoClients,
		},
		{
			name:    "MissingFinancialYear",
			mutate:  func(m *taskmaster.TaskMaster) {},
			sel:     taskmaster.PeriodSelector{},
			wantErr: taskmaster.ErrInvalid,
		},
		{
			name:    "MalformedFinancialYear",
			mutate:  func(m *taskmaster.TaskMaster) {},
			sel:     taskmaster.PeriodSelector{FinancialYear: "20xx"},
			wantErr: calendar.ErrInvalidPeriod,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			repo := taskmaster.NewMockRepository(ctrl)
			svc := taskmaster.NewService(repo)

			master := gstMaster(calendar.Yearly)
			tc.mutate(master)

			repo.EXPECT().Get(gomock.Any(), int64(7)).Return(master, nil)

			_, err := svc.GenerateForPeriod(context.Background(), 7, tc.sel, taskmaster.Overrides{})
			require.ErrorIs(t, err, tc.wantErr)
		})
	}
}

func TestGenerateForPeriod_NoActiveLinksIsANoOp(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := taskmaster.NewMockRepository(ctrl)
	svc := taskmaster.NewService(repo)

	master := gstMaster(calendar.Monthly)
	master.Clients[0].Active = false
	master.Clients[1].Active = false

	repo.EXPECT().Get(gomock.Any(), int64(7)).Return(master, nil)

	res, err := svc.GenerateForPeriod(context.Background(), 7, taskmaster.PeriodSelector{}, taskmaster.Overrides{})
	require.NoError(t, err)
	assert.Zero(t, res.Created)
	assert.Zero(t, res.SkippedExisting)
}
