package task_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/arindamg/taskledger/internal/calendar"
	"github.com/arindamg/taskledger/internal/task"
)

func TestService_CreateTask(t *testing.T) {
	type testCase struct {
		name      string
		params    task.CreateTaskParams
		setupMock func(m *task.MockRepository)
		wantErr   error
	}

	due := date(2025, time.July, 10)

	tests := []testCase{
		{
			name: "Success",
			params: task.CreateTaskParams{
				Title:       "Prepare ITR",
				ClientID:    5,
				DueDate:     &due,
				AssigneeIDs: []int64{2},
			},
			setupMock: func(m *task.MockRepository) {
				m.EXPECT().
					CreateInstance(gomock.Any(), gomock.Any(), []int64{2}).
					DoAndReturn(func(_ context.Context, tk *task.Task, _ []int64) error {
						tk.ID = 42
						return nil
					})
				m.EXPECT().
					GetTask(gomock.Any(), int64(42)).
					Return(&task.Task{ID: 42, Title: "Prepare ITR", Status: task.StatusPending}, nil)
			},
		},
		{
			name:    "MissingTitle",
			params:  task.CreateTaskParams{ClientID: 5},
			wantErr: task.ErrInvalid,
		},
		{
			name:    "MissingClient",
			params:  task.CreateTaskParams{Title: "Prepare ITR"},
			wantErr: task.ErrInvalid,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := task.NewMockRepository(ctrl)
			if tt.setupMock != nil {
				tt.setupMock(repo)
			}

			svc := task.NewService(repo)
			got, err := svc.CreateTask(context.Background(), tt.params)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, got)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, task.StatusPending, got.Status)
		})
	}
}

func TestService_CreateTemplate_Validation(t *testing.T) {
	start := date(2025, time.June, 1)
	before := date(2025, time.May, 1)

	tests := []struct {
		name   string
		params task.CreateTemplateParams
	}{
		{
			name:   "MissingTitle",
			params: task.CreateTemplateParams{Cadence: calendar.Weekly, Interval: 1, StartDate: start},
		},
		{
			name:   "ZeroInterval",
			params: task.CreateTemplateParams{Title: "x", Cadence: calendar.Weekly, Interval: 0, StartDate: start},
		},
		{
			name:   "EndBeforeStart",
			params: task.CreateTemplateParams{Title: "x", Cadence: calendar.Weekly, Interval: 1, StartDate: start, EndDate: &before},
		},
		{
			name:   "QuarterlyNotAllowed",
			params: task.CreateTemplateParams{Title: "x", Cadence: calendar.Quarterly, Interval: 1, StartDate: start},
		},
		{
			name:   "MissingStartDate",
			params: task.CreateTemplateParams{Title: "x", Cadence: calendar.Daily, Interval: 1},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			svc := task.NewService(task.NewMockRepository(ctrl))

			_, err := svc.CreateTemplate(context.Background(), tt.params)
			assert.ErrorIs(t, err, task.ErrInvalid)
		})
	}
}

func TestService_CreateTemplate_GeneratesInitialInstances(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := task.NewMockRepository(ctrl)

	end := date(2025, time.June, 16)
	params := task.CreateTemplateParams{
		Title:       "Weekly compliance check",
		ClientID:    7,
		Cadence:     calendar.Weekly,
		Interval:    1,
		StartDate:   date(2025, time.June, 2),
		EndDate:     &end,
		AssigneeIDs: []int64{3},
	}

	stored := &task.Template{
		ID:          10,
		Title:       params.Title,
		ClientID:    params.ClientID,
		Cadence:     params.Cadence,
		Interval:    params.Interval,
		StartDate:   params.StartDate,
		EndDate:     params.EndDate,
		AssigneeIDs: []int64{3},
	}

	repo.EXPECT().
		CreateTemplate(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, tpl *task.Template) error {
			tpl.ID = 10
			return nil
		})
	repo.EXPECT().ReplaceTemplateAssignments(gomock.Any(), int64(10), []int64{3}).Return(nil)
	repo.EXPECT().GetTemplate(gomock.Any(), int64(10)).Return(stored, nil).Times(2)

	// Jun 2, 9, 16.
	repo.EXPECT().InstanceExists(gomock.Any(), int64(10), gomock.Any()).Return(false, nil).Times(3)
	repo.EXPECT().CreateInstance(gomock.Any(), gomock.Any(), []int64{3}).Return(nil).Times(3)

	svc := task.NewService(repo, task.WithClock(fixedClock(date(2025, time.May, 1))))

	got, err := svc.CreateTemplate(context.Background(), params)

	require.NoError(t, err)
	assert.Equal(t, int64(10), got.ID)
}

func TestService_CreateTemplate_PausedSkipsGeneration(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := task.NewMockRepository(ctrl)

	stored := &task.Template{ID: 11, Paused: true}

	repo.EXPECT().
		CreateTemplate(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, tpl *task.Template) error {
			assert.True(t, tpl.Paused)
			assert.NotNil(t, tpl.PausedAt)
			tpl.ID = 11
			return nil
		})
	repo.EXPECT().GetTemplate(gomock.Any(), int64(11)).Return(stored, nil)

	svc := task.NewService(repo)

	_, err := svc.CreateTemplate(context.Background(), task.CreateTemplateParams{
		Title:     "Paused from birth",
		ClientID:  1,
		Cadence:   calendar.Daily,
		Interval:  1,
		StartDate: date(2025, time.June, 1),
		Paused:    true,
	})

	require.NoError(t, err)
}

func TestService_CreateTemplate_DefaultsEndDateToOneYear(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := task.NewMockRepository(ctrl)

	repo.EXPECT().
		CreateTemplate(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, tpl *task.Template) error {
			require.NotNil(t, tpl.EndDate)
			assert.Equal(t, date(2026, time.June, 1), *tpl.EndDate)
			tpl.ID = 12
			tpl.Paused = true // short-circuit generation for this test
			return nil
		})
	repo.EXPECT().GetTemplate(gomock.Any(), int64(12)).Return(&task.Template{ID: 12, Paused: true}, nil).AnyTimes()

	svc := task.NewService(repo)

	_, err := svc.CreateTemplate(context.Background(), task.CreateTemplateParams{
		Title:     "Yearly audit",
		ClientID:  1,
		Cadence:   calendar.Yearly,
		Interval:  1,
		StartDate: date(2025, time.June, 1),
	})

	require.NoError(t, err)
}

func TestService_UpdateTemplate_IntervalChangeRegenerates(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := task.NewMockRepository(ctrl)
	now := date(2025, time.May, 15)

	end := date(2025, time.June, 30)
	tpl := &task.Template{
		ID:        1,
		Title:     "Weekly compliance check",
		ClientID:  7,
		Cadence:   calendar.Weekly,
		Interval:  1,
		StartDate: date(2025, time.April, 7),
		EndDate:   &end,
	}

	repo.EXPECT().GetTemplate(gomock.Any(), int64(1)).Return(tpl, nil).AnyTimes()
	repo.EXPECT().
		UpdateTemplate(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, updated *task.Template) error {
			assert.Equal(t, 2, updated.Interval)
			return nil
		})

	// Future non-completed instances are wiped, then gaps refilled. With
	// interval=2 from Apr 7, the first occurrence after May 15 is May 19;
	// then Jun 2, Jun 16, Jun 30.
	repo.EXPECT().DeleteFutureInstances(gomock.Any(), int64(1), now).Return(int64(6), nil)
	repo.EXPECT().InstanceExists(gomock.Any(), int64(1), gomock.Any()).Return(false, nil).Times(4)
	repo.EXPECT().CreateInstance(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).Times(4)

	svc := task.NewService(repo, task.WithClock(fixedClock(now)))

	interval := 2
	_, err := svc.UpdateTemplate(context.Background(), 1, task.UpdateTemplateParams{Interval: &interval})

	require.NoError(t, err)
}

func TestService_UpdateTemplate_RegeneratesAssignedInstances(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := task.NewMockRepository(ctrl)
	now := date(2025, time.May, 15)

	end := date(2025, time.June, 30)
	tpl := &task.Template{
		ID:          1,
		Title:       "Weekly compliance check",
		ClientID:    7,
		Cadence:     calendar.Weekly,
		Interval:    1,
		StartDate:   date(2025, time.April, 7),
		EndDate:     &end,
		AssigneeIDs: []int64{11},
	}

	repo.EXPECT().GetTemplate(gomock.Any(), int64(1)).Return(tpl, nil).AnyTimes()
	repo.EXPECT().UpdateTemplate(gomock.Any(), gomock.Any()).Return(nil)

	// The wipe must take the old instances' assignment rows with it, and
	// every refilled instance carries the template's assignment set again.
	repo.EXPECT().DeleteFutureInstances(gomock.Any(), int64(1), now).Return(int64(6), nil)
	repo.EXPECT().InstanceExists(gomock.Any(), int64(1), gomock.Any()).Return(false, nil).Times(4)
	repo.EXPECT().CreateInstance(gomock.Any(), gomock.Any(), []int64{11}).Return(nil).Times(4)

	svc := task.NewService(repo, task.WithClock(fixedClock(now)))

	interval := 2
	_, err := svc.UpdateTemplate(context.Background(), 1, task.UpdateTemplateParams{Interval: &interval})

	require.NoError(t, err)
}

func TestService_UpdateTemplate_ResumeOnlyFillsGaps(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := task.NewMockRepository(ctrl)
	now := date(2025, time.May, 15)

	end := date(2025, time.May, 31)
	pausedAt := date(2025, time.April, 1)
	tpl := &task.Template{
		ID:        1,
		Title:     "Daily entries",
		ClientID:  2,
		Cadence:   calendar.Daily,
		Interval:  7,
		StartDate: date(2025, time.May, 1),
		EndDate:   &end,
		Paused:    true,
		PausedAt:  &pausedAt,
	}

	repo.EXPECT().GetTemplate(gomock.Any(), int64(1)).
		DoAndReturn(func(_ context.Context, _ int64) (*task.Template, error) {
			cp := *tpl
			return &cp, nil
		}).
		AnyTimes()

	repo.EXPECT().
		UpdateTemplate(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, updated *task.Template) error {
			assert.False(t, updated.Paused)
			assert.Nil(t, updated.PausedAt)
			tpl.Paused = false
			tpl.PausedAt = nil
			return nil
		})

	// No DeleteFutureInstances: resume without other edits only fills gaps.
	// Occurrences after May 15 with interval 7 from May 1: May 22, May 29.
	repo.EXPECT().InstanceExists(gomock.Any(), int64(1), gomock.Any()).Return(false, nil).Times(2)
	repo.EXPECT().CreateInstance(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).Times(2)

	svc := task.NewService(repo, task.WithClock(fixedClock(now)))

	paused := false
	_, err := svc.UpdateTemplate(context.Background(), 1, task.UpdateTemplateParams{Paused: &paused})

	require.NoError(t, err)
}

func TestService_UpdateTemplate_AssignmentChangeRegenerates(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := task.NewMockRepository(ctrl)
	now := date(2025, time.June, 20)

	end := date(2025, time.June, 1)
	tpl := &task.Template{
		ID:        1,
		Title:     "Closed-out template",
		ClientID:  2,
		Cadence:   calendar.Weekly,
		Interval:  1,
		StartDate: date(2025, time.May, 1),
		EndDate:   &end,
	}

	repo.EXPECT().GetTemplate(gomock.Any(), int64(1)).Return(tpl, nil).AnyTimes()
	repo.EXPECT().UpdateTemplate(gomock.Any(), gomock.Any()).Return(nil)
	repo.EXPECT().ReplaceTemplateAssignments(gomock.Any(), int64(1), []int64{5, 6}).Return(nil)
	repo.EXPECT().DeleteFutureInstances(gomock.Any(), int64(1), now).Return(int64(0), nil)
	// End date already passed, so the fill-gaps pass creates nothing.

	svc := task.NewService(repo, task.WithClock(fixedClock(now)))

	_, err := svc.UpdateTemplate(context.Background(), 1, task.UpdateTemplateParams{AssigneeIDs: []int64{5, 6}})

	require.NoError(t, err)
}

func TestService_UpdateTemplate_InvalidInterval(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := task.NewMockRepository(ctrl)
	repo.EXPECT().GetTemplate(gomock.Any(), int64(1)).Return(weeklyTemplate(1), nil)

	svc := task.NewService(repo)

	zero := 0
	_, err := svc.UpdateTemplate(context.Background(), 1, task.UpdateTemplateParams{Interval: &zero})

	assert.ErrorIs(t, err, task.ErrInvalid)
}

func TestService_UpdateTask_CompletingStampsCompletedAt(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := task.NewMockRepository(ctrl)
	now := date(2025, time.May, 20)

	due := date(2025, time.May, 19)
	stored := &task.Task{ID: 9, Title: "File GSTR-3B", ClientID: 1, DueDate: &due, Status: task.StatusPending}

	repo.EXPECT().GetTask(gomock.Any(), int64(9)).Return(stored, nil)
	repo.EXPECT().
		UpdateTask(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, tk *task.Task) error {
			assert.Equal(t, task.StatusCompleted, tk.Status)
			require.NotNil(t, tk.CompletedAt)
			assert.Equal(t, now, *tk.CompletedAt)
			return nil
		})
	repo.EXPECT().GetTask(gomock.Any(), int64(9)).Return(stored, nil)

	svc := task.NewService(repo, task.WithClock(fixedClock(now)))

	completed := task.StatusCompleted
	_, err := svc.UpdateTask(context.Background(), 9, task.UpdateTaskParams{Status: &completed})

	require.NoError(t, err)
}

func TestService_DeleteTemplate_SoftDeletes(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := task.NewMockRepository(ctrl)
	now := date(2025, time.May, 20)

	repo.EXPECT().GetTemplate(gomock.Any(), int64(3)).Return(weeklyTemplate(3), nil)
	repo.EXPECT().SoftDeleteTemplate(gomock.Any(), int64(3), now).Return(nil)

	svc := task.NewService(repo, task.WithClock(fixedClock(now)))

	require.NoError(t, svc.DeleteTemplate(context.Background(), 3))
}

func TestService_DeleteTemplate_NotFound(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := task.NewMockRepository(ctrl)
	repo.EXPECT().GetTemplate(gomock.Any(), int64(99)).Return(nil, task.ErrNotFound)

	svc := task.NewService(repo)

	assert.ErrorIs(t, svc.DeleteTemplate(context.Background(), 99), task.ErrNotFound)
}
