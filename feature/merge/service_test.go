package merge

import (
	"context"
	"testing"

	coremerge "workbook-merger/core/merge"
	"workbook-merger/core/storage/mocks"
	"workbook-merger/feature/history"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

// setupMockDB creates a mock GORM DB for testing.
func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	db, sqlMock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("Failed to open mock sql db: %v", err)
	}

	dialector := mysql.New(mysql.Config{
		Conn:                      db,
		SkipInitializeWithVersion: true,
	})

	gormDB, err := gorm.Open(dialector, &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to open gorm db: %v", err)
	}

	return gormDB, sqlMock
}

func TestServiceMergeWithoutHistory(t *testing.T) {
	svc := NewService(zap.NewNop(), coremerge.DefaultOptions(), nil)

	a := buildXLSX(t, []interface{}{"ID"}, []interface{}{1})
	result, jobID, err := svc.Merge(context.Background(),
		[]coremerge.Source{{Name: "a.xlsx", Data: a}}, svc.Defaults())

	require.NoError(t, err)
	assert.Empty(t, jobID)
	assert.NotEmpty(t, result.Output)
}

func TestServiceMergeRecordsHistory(t *testing.T) {
	gormDB, sqlMock := setupMockDB(t)
	mockClient := new(mocks.Client)
	hist := history.NewService(gormDB, mockClient, "merges", zap.NewNop())
	svc := NewService(zap.NewNop(), coremerge.DefaultOptions(), hist)

	mockClient.On("PutObject", mock.Anything, "merges", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(minio.UploadInfo{}, nil)
	sqlMock.ExpectBegin()
	sqlMock.ExpectExec("INSERT INTO `merge_jobs`").
		WillReturnResult(sqlmock.NewResult(1, 1))
	sqlMock.ExpectCommit()

	a := buildXLSX(t, []interface{}{"ID", "V"}, []interface{}{1, "x"})
	opts := svc.Defaults()
	opts.KeyColumns = []string{"ID"}

	_, jobID, err := svc.Merge(context.Background(),
		[]coremerge.Source{{Name: "a.xlsx", Data: a}}, opts)

	require.NoError(t, err)
	assert.NotEmpty(t, jobID)
	assert.NoError(t, sqlMock.ExpectationsWereMet())
	mockClient.AssertExpectations(t)
}

func TestServiceMergeSurvivesRecordFailure(t *testing.T) {
	gormDB, sqlMock := setupMockDB(t)
	hist := history.NewService(gormDB, nil, "merges", zap.NewNop())
	svc := NewService(zap.NewNop(), coremerge.DefaultOptions(), hist)

	sqlMock.ExpectBegin()
	sqlMock.ExpectExec("INSERT INTO `merge_jobs`").WillReturnError(assert.AnError)
	sqlMock.ExpectRollback()

	a := buildXLSX(t, []interface{}{"ID"}, []interface{}{1})
	result, jobID, err := svc.Merge(context.Background(),
		[]coremerge.Source{{Name: "a.xlsx", Data: a}}, svc.Defaults())

	// The merge output survives a failed history write.
	require.NoError(t, err)
	assert.Empty(t, jobID)
	assert.NotEmpty(t, result.Output)
}
