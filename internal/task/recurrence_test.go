package task_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/arindamg/taskledger/internal/calendar"
	"github.com/arindamg/taskledger/internal/task"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func weeklyTemplate(id int64) *task.Template {
	end := date(2025, time.June, 23)

	return &task.Template{
		ID:        id,
		Title:     "GST filing prep",
		ClientID:  7,
		Cadence:   calendar.Weekly,
		Interval:  1,
		StartDate: date(2025, time.June, 2),
		EndDate:   &end,
	}
}

func TestGenerateInstances_Initial(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := task.NewMockRepository(ctrl)
	tpl := weeklyTemplate(1)

	repo.EXPECT().GetTemplate(gomock.Any(), int64(1)).Return(tpl, nil)
	repo.EXPECT().InstanceExists(gomock.Any(), int64(1), gomock.Any()).Return(false, nil).Times(4)

	var dueDates []time.Time

	repo.EXPECT().
		CreateInstance(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, inst *task.Task, _ []int64) error {
			inst.ID = int64(len(dueDates) + 100)
			dueDates = append(dueDates, *inst.DueDate)
			return nil
		}).
		Times(4)

	svc := task.NewService(repo, task.WithClock(fixedClock(date(2025, time.May, 1))))

	res, err := svc.GenerateInstances(context.Background(), 1, task.ModeInitial)

	require.NoError(t, err)
	assert.Equal(t, 4, res.Created)
	assert.Equal(t, 0, res.SkippedExisting)
	assert.Equal(t, []time.Time{
		date(2025, time.June, 2),
		date(2025, time.June, 9),
		date(2025, time.June, 16),
		date(2025, time.June, 23),
	}, dueDates)
}

func TestGenerateInstances_SkipsExisting(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := task.NewMockRepository(ctrl)
	tpl := weeklyTemplate(1)

	repo.EXPECT().GetTemplate(gomock.Any(), int64(1)).Return(tpl, nil)

	// The first two occurrences already exist.
	repo.EXPECT().InstanceExists(gomock.Any(), int64(1), date(2025, time.June, 2)).Return(true, nil)
	repo.EXPECT().InstanceExists(gomock.Any(), int64(1), date(2025, time.June, 9)).Return(true, nil)
	repo.EXPECT().InstanceExists(gomock.Any(), int64(1), date(2025, time.June, 16)).Return(false, nil)
	repo.EXPECT().InstanceExists(gomock.Any(), int64(1), date(2025, time.June, 23)).Return(false, nil)
	repo.EXPECT().CreateInstance(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).Times(2)

	svc := task.NewService(repo, task.WithClock(fixedClock(date(2025, time.May, 1))))

	res, err := svc.GenerateInstances(context.Background(), 1, task.ModeInitial)

	require.NoError(t, err)
	assert.Equal(t, 2, res.Created)
	assert.Equal(t, 2, res.SkippedExisting)
}

func TestGenerateInstances_PausedTemplateGeneratesNothing(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := task.NewMockRepository(ctrl)
	tpl := weeklyTemplate(1)
	tpl.Paused = true

	repo.EXPECT().GetTemplate(gomock.Any(), int64(1)).Return(tpl, nil)

	svc := task.NewService(repo)

	res, err := svc.GenerateInstances(context.Background(), 1, task.ModeInitial)

	require.NoError(t, err)
	assert.Zero(t, res.Created)
}

func TestGenerateInstances_SoftDeletedTemplateGeneratesNothing(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := task.NewMockRepository(ctrl)
	tpl := weeklyTemplate(1)
	deletedAt := date(2025, time.May, 1)
	tpl.DeletedAt = &deletedAt

	repo.EXPECT().GetTemplate(gomock.Any(), int64(1)).Return(tpl, nil)

	svc := task.NewService(repo)

	res, err := svc.GenerateInstances(context.Background(), 1, task.ModeFillGaps)

	require.NoError(t, err)
	assert.Zero(t, res.Created)
}

func TestGenerateInstances_WeekendShiftCollapsesOntoMonday(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := task.NewMockRepository(ctrl)

	end := date(2025, time.June, 8) // Sunday
	tpl := &task.Template{
		ID:           2,
		Title:        "Payroll run",
		ClientID:     3,
		Cadence:      calendar.Daily,
		Interval:     1,
		StartDate:    date(2025, time.June, 6), // Friday
		EndDate:      &end,
		SkipWeekends: true,
	}

	repo.EXPECT().GetTemplate(gomock.Any(), int64(2)).Return(tpl, nil)

	// Friday stays put; Saturday and Sunday both shift to Monday Jun 9, so
	// the second shifted candidate dedups against the first.
	repo.EXPECT().InstanceExists(gomock.Any(), int64(2), date(2025, time.June, 6)).Return(false, nil)
	repo.EXPECT().InstanceExists(gomock.Any(), int64(2), date(2025, time.June, 9)).Return(false, nil)
	repo.EXPECT().InstanceExists(gomock.Any(), int64(2), date(2025, time.June, 9)).Return(true, nil)
	repo.EXPECT().CreateInstance(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).Times(2)

	svc := task.NewService(repo, task.WithClock(fixedClock(date(2025, time.May, 1))))

	res, err := svc.GenerateInstances(context.Background(), 2, task.ModeInitial)

	require.NoError(t, err)
	assert.Equal(t, 2, res.Created)
	assert.Equal(t, 1, res.SkippedExisting)
}

func TestGenerateInstances_FillGapsStartsAfterNow(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := task.NewMockRepository(ctrl)

	end := date(2025, time.June, 2)
	tpl := &task.Template{
		ID:        3,
		Title:     "Weekly reconciliation",
		ClientID:  4,
		Cadence:   calendar.Weekly,
		Interval:  1,
		StartDate: date(2025, time.April, 7),
		EndDate:   &end,
	}

	repo.EXPECT().GetTemplate(gomock.Any(), int64(3)).Return(tpl, nil)

	var dueDates []time.Time

	repo.EXPECT().InstanceExists(gomock.Any(), int64(3), gomock.Any()).Return(false, nil).Times(3)
	repo.EXPECT().
		CreateInstance(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, inst *task.Task, _ []int64) error {
			dueDates = append(dueDates, *inst.DueDate)
			return nil
		}).
		Times(3)

	svc := task.NewService(repo, task.WithClock(fixedClock(date(2025, time.May, 15))))

	res, err := svc.GenerateInstances(context.Background(), 3, task.ModeFillGaps)

	require.NoError(t, err)
	assert.Equal(t, 3, res.Created)
	assert.Equal(t, []time.Time{
		date(2025, time.May, 19),
		date(2025, time.May, 26),
		date(2025, time.June, 2),
	}, dueDates)
}

func TestGenerateInstances_ClonesTemplateAssignments(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := task.NewMockRepository(ctrl)

	end := date(2025, time.June, 2)
	tpl := &task.Template{
		ID:          4,
		Title:       "TDS return",
		ClientID:    9,
		Cadence:     calendar.Monthly,
		Interval:    1,
		StartDate:   date(2025, time.June, 2),
		EndDate:     &end,
		AssigneeIDs: []int64{11, 12},
	}

	repo.EXPECT().GetTemplate(gomock.Any(), int64(4)).Return(tpl, nil)
	repo.EXPECT().InstanceExists(gomock.Any(), int64(4), gomock.Any()).Return(false, nil)
	repo.EXPECT().
		CreateInstance(gomock.Any(), gomock.Any(), []int64{11, 12}).
		DoAndReturn(func(_ context.Context, inst *task.Task, _ []int64) error {
			assert.Equal(t, "TDS return", inst.Title)
			assert.Equal(t, int64(9), inst.ClientID)
			assert.Equal(t, task.StatusPending, inst.Status)
			require.NotNil(t, inst.TemplateID)
			assert.Equal(t, int64(4), *inst.TemplateID)
			return nil
		})

	svc := task.NewService(repo, task.WithClock(fixedClock(date(2025, time.May, 1))))

	res, err := svc.GenerateInstances(context.Background(), 4, task.ModeInitial)

	require.NoError(t, err)
	assert.Equal(t, 1, res.Created)
}

func TestGenerateInstances_DuplicateAtWriteCountsAsSkipped(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := task.NewMockRepository(ctrl)

	end := date(2025, time.June, 2)
	tpl := &task.Template{
		ID:        5,
		Title:     "Advance tax reminder",
		ClientID:  2,
		Cadence:   calendar.Yearly,
		Interval:  1,
		StartDate: date(2025, time.June, 2),
		EndDate:   &end,
	}

	repo.EXPECT().GetTemplate(gomock.Any(), int64(5)).Return(tpl, nil)
	repo.EXPECT().InstanceExists(gomock.Any(), int64(5), gomock.Any()).Return(false, nil)
	repo.EXPECT().CreateInstance(gomock.Any(), gomock.Any(), gomock.Any()).Return(task.ErrDuplicate)

	svc := task.NewService(repo, task.WithClock(fixedClock(date(2025, time.May, 1))))

	res, err := svc.GenerateInstances(context.Background(), 5, task.ModeInitial)

	require.NoError(t, err)
	assert.Zero(t, res.Created)
	assert.Equal(t, 1, res.SkippedExisting)
}

func TestRunDailyBatch(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := task.NewMockRepository(ctrl)

	healthy := &task.Template{
		ID:        1,
		Title:     "Monthly books close",
		ClientID:  1,
		Cadence:   calendar.Monthly,
		Interval:  1,
		StartDate: date(2025, time.January, 1),
	}

	broken := &task.Template{
		ID:        2,
		Title:     "Weekly sync",
		ClientID:  1,
		Cadence:   calendar.Weekly,
		Interval:  1,
		StartDate: date(2025, time.January, 6),
	}

	repo.EXPECT().ListActiveTemplates(gomock.Any()).Return([]*task.Template{healthy, broken}, nil)

	// healthy: occurrences after 2025-05-15 within the two-month look-ahead
	// are Jun 1 and Jul 1.
	repo.EXPECT().InstanceExists(gomock.Any(), int64(1), gomock.Any()).Return(false, nil).Times(2)
	repo.EXPECT().CreateInstance(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).Times(2)

	repo.EXPECT().InstanceExists(gomock.Any(), int64(2), gomock.Any()).Return(false, errors.New("db down"))

	svc := task.NewService(repo, task.WithClock(fixedClock(date(2025, time.May, 15))))

	summaries, err := svc.RunDailyBatch(context.Background())

	require.NoError(t, err)
	require.Len(t, summaries, 2)

	assert.Equal(t, 2, summaries[0].Created)
	assert.NoError(t, summaries[0].Err)

	assert.Zero(t, summaries[1].Created)
	assert.Error(t, summaries[1].Err)
}
