package importer_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/arindamg/taskledger/internal/calendar"
	"github.com/arindamg/taskledger/internal/importer"
	"github.com/arindamg/taskledger/internal/taskmaster"
)

const sampleCSV = `Task Title,Frequency,Category,Start Date,Is Billable,HSN / SAC,GST Rate,Unit
GSTR-3B Filing,MONTHLY,GST,2025-04-01,TRUE,998231,18,filing
Tax Audit,YEARLY,Audit,2025-04-01,FALSE,,,
`

func TestImportTaskMasters_CreatesRows(t *testing.T) {
	ctrl := gomock.NewController(t)
	masters := importer.NewMockMasters(ctrl)
	svc := importer.NewService(masters)

	masters.EXPECT().ExistsByTitleCadence(gomock.Any(), "GSTR-3B Filing", calendar.Monthly).Return(false, nil)
	masters.EXPECT().ExistsByTitleCadence(gomock.Any(), "Tax Audit", calendar.Yearly).Return(false, nil)
	masters.EXPECT().EnsureCategory(gomock.Any(), "GST").Return(int64(1), nil)
	masters.EXPECT().EnsureCategory(gomock.Any(), "Audit").Return(int64(2), nil)

	var created []taskmaster.CreateParams

	masters.EXPECT().
		Create(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, params taskmaster.CreateParams) (*taskmaster.TaskMaster, error) {
			created = append(created, params)
			return &taskmaster.TaskMaster{}, nil
		}).
		Times(2)

	res, err := svc.ImportTaskMasters(context.Background(), strings.NewReader(sampleCSV))
	require.NoError(t, err)

	assert.Equal(t, 2, res.TotalRows)
	assert.Equal(t, 2, res.Created)
	assert.Equal(t, 0, res.Skipped)
	assert.Empty(t, res.Errors)

	require.Len(t, created, 2)
	gst := created[0]
	assert.Equal(t, "GSTR-3B Filing", gst.Title)
	assert.Equal(t, calendar.Monthly, gst.Cadence)
	assert.Equal(t, time.Date(2025, time.April, 1, 0, 0, 0, 0, time.UTC), gst.StartDate)
	assert.True(t, gst.Billable)
	require.NotNil(t, gst.HSNSAC)
	assert.Equal(t, "998231", *gst.HSNSAC)
	require.NotNil(t, gst.GSTRate)
	assert.Equal(t, "18", gst.GSTRate.String())

	audit := created[1]
	assert.False(t, audit.Billable)
	assert.Nil(t, audit.HSNSAC)
}

func TestImportTaskMasters_SkipsAndReportsPerRow(t *testing.T) {
	ctrl := gomock.NewController(t)
	masters := importer.NewMockMasters(ctrl)
	svc := importer.NewService(masters)

	csv := strings.Join([]string{
		"Task Title,Frequency,Category",
		",MONTHLY,GST",              // missing title: quiet skip
		"GSTR-1 Filing,MONTHLY,GST", // duplicate: quiet skip
		"ROC Filing,FORTNIGHTLY,MCA", // bad frequency: row error
		"ITR Filing,YEARLY,",        // missing category: row error
		"Advance Tax,QUARTERLY,Income Tax",
	}, "\n")

	masters.EXPECT().ExistsByTitleCadence(gomock.Any(), "GSTR-1 Filing", calendar.Monthly).Return(true, nil)
	masters.EXPECT().ExistsByTitleCadence(gomock.Any(), "Advance Tax", calendar.Quarterly).Return(false, nil)
	masters.EXPECT().EnsureCategory(gomock.Any(), "Income Tax").Return(int64(4), nil)
	masters.EXPECT().Create(gomock.Any(), gomock.Any()).Return(&taskmaster.TaskMaster{}, nil)

	res, err := svc.ImportTaskMasters(context.Background(), strings.NewReader(csv))
	require.NoError(t, err)

	assert.Equal(t, 5, res.TotalRows)
	assert.Equal(t, 1, res.Created)
	assert.Equal(t, 2, res.Skipped)
	require.Len(t, res.Errors, 2)
	assert.Equal(t, 4, res.Errors[0].Row)
	assert.Contains(t, res.Errors[0].Err, "invalid frequency")
	assert.Equal(t, 5, res.Errors[1].Row)
	assert.Contains(t, res.Errors[1].Err, "category is required")
}

func TestImportTaskMasters_FindsHeaderPastPreamble(t *testing.T) {
	ctrl := gomock.NewController(t)
	masters := importer.NewMockMasters(ctrl)
	svc := importer.NewService(masters)

	csv := strings.Join([]string{
		"Exported 2025-08-01,,",
		"Task Title,Frequency,Category",
		"GSTR-3B Filing,MONTHLY,GST",
	}, "\n")

	masters.EXPECT().ExistsByTitleCadence(gomock.Any(), "GSTR-3B Filing", calendar.Monthly).Return(false, nil)
	masters.EXPECT().EnsureCategory(gomock.Any(), "GST").Return(int64(1), nil)
	masters.EXPECT().Create(gomock.Any(), gomock.Any()).Return(&taskmaster.TaskMaster{}, nil)

	res, err := svc.ImportTaskMasters(context.Background(), strings.NewReader(csv))
	require.NoError(t, err)
	assert.Equal(t, 1, res.Created)
}

func TestImportTaskMasters_SemicolonDelimited(t *testing.T) {
	ctrl := gomock.NewController(t)
	masters := importer.NewMockMasters(ctrl)
	svc := importer.NewService(masters)

	csv := strings.Join([]string{
		"Task Title;Frequency;Category",
		"GSTR-3B Filing;MONTHLY;GST",
	}, "\n")

	masters.EXPECT().ExistsByTitleCadence(gomock.Any(), "GSTR-3B Filing", calendar.Monthly).Return(false, nil)
	masters.EXPECT().EnsureCategory(gomock.Any(), "GST").Return(int64(1), nil)
	masters.EXPECT().Create(gomock.Any(), gomock.Any()).Return(&taskmaster.TaskMaster{}, nil)

	res, err := svc.ImportTaskMasters(context.Background(), strings.NewReader(csv))
	require.NoError(t, err)
	assert.Equal(t, 1, res.Created)
}

func TestImportTaskMasters_NoHeader(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := importer.NewService(importer.NewMockMasters(ctrl))

	_, err := svc.ImportTaskMasters(context.Background(), strings.NewReader("a,b,c\n1,2,3\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no header row")
}
