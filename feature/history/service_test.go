package history

import (
	"bytes"
	"context"
	"io"
	"testing"

	"workbook-merger/core/storage/mocks"

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
	db, mock, err := sqlmock.New()
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

	return gormDB, mock
}

func TestRecordStoresJobAndArchive(t *testing.T) {
	gormDB, sqlMock := setupMockDB(t)
	mockClient := new(mocks.Client)
	svc := NewService(gormDB, mockClient, "merges", zap.NewNop())

	mockClient.On("PutObject", mock.Anything, "merges", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(minio.UploadInfo{}, nil)
	sqlMock.ExpectBegin()
	sqlMock.ExpectExec("INSERT INTO `merge_jobs`").
		WillReturnResult(sqlmock.NewResult(1, 1))
	sqlMock.ExpectCommit()

	job := &MergeJob{Sources: "a.xlsx,b.xlsx", Policy: "first_wins", RowsIn: 3, RowsOut: 2}
	err := svc.Record(context.Background(), job, []byte("workbook bytes"))

	require.NoError(t, err)
	assert.NotEmpty(t, job.ID)
	assert.Equal(t, "merges/"+job.ID+".xlsx", job.ArchiveKey)
	assert.NoError(t, sqlMock.ExpectationsWereMet())
	mockClient.AssertExpectations(t)
}

func TestRecordSurvivesArchiveFailure(t *testing.T) {
	gormDB, sqlMock := setupMockDB(t)
	mockClient := new(mocks.Client)
	svc := NewService(gormDB, mockClient, "merges", zap.NewNop())

	mockClient.On("PutObject", mock.Anything, "merges", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(minio.UploadInfo{}, assert.AnError)
	sqlMock.ExpectBegin()
	sqlMock.ExpectExec("INSERT INTO `merge_jobs`").
		WillReturnResult(sqlmock.NewResult(1, 1))
	sqlMock.ExpectCommit()

	job := &MergeJob{Sources: "a.xlsx"}
	err := svc.Record(context.Background(), job, []byte("workbook bytes"))

	// The job row is still written, just without an archive key.
	require.NoError(t, err)
	assert.Empty(t, job.ArchiveKey)
	assert.NoError(t, sqlMock.ExpectationsWereMet())
}

func TestRecordWithoutDatabase(t *testing.T) {
	svc := NewService(nil, nil, "merges", zap.NewNop())
	err := svc.Record(context.Background(), &MergeJob{}, nil)
	assert.NoError(t, err)
	assert.False(t, svc.Enabled())
}

func TestRecent(t *testing.T) {
	gormDB, sqlMock := setupMockDB(t)
	svc := NewService(gormDB, nil, "merges", zap.NewNop())

	rows := sqlmock.NewRows([]string{"id", "sources", "policy", "rows_in", "rows_out"}).
		AddRow("job-2", "b.xlsx", "last_wins", 5, 4).
		AddRow("job-1", "a.xlsx", "first_wins", 3, 3)
	sqlMock.ExpectQuery("SELECT \\* FROM `merge_jobs`").WillReturnRows(rows)

	jobs, err := svc.Recent(context.Background(), 0)
	require.NoError(t, err)
	require.Len(t, jobs, 2)
	assert.Equal(t, "job-2", jobs[0].ID)
	assert.NoError(t, sqlMock.ExpectationsWereMet())
}

func TestRecentDisabled(t *testing.T) {
	svc := NewService(nil, nil, "merges", zap.NewNop())
	_, err := svc.Recent(context.Background(), 10)
	assert.ErrorIs(t, err, ErrDisabled)
}

func TestDownload(t *testing.T) {
	gormDB, sqlMock := setupMockDB(t)
	mockClient := new(mocks.Client)
	svc := NewService(gormDB, mockClient, "merges", zap.NewNop())

	rows := sqlmock.NewRows([]string{"id", "archive_key"}).
		AddRow("job-1", "merges/job-1.xlsx")
	sqlMock.ExpectQuery("SELECT \\* FROM `merge_jobs`").
		WillReturnRows(rows)
	mockClient.On("GetObject", mock.Anything, "merges", "merges/job-1.xlsx", mock.Anything).
		Return(io.NopCloser(bytes.NewReader([]byte("archived"))), nil)

	obj, err := svc.Download(context.Background(), "job-1")
	require.NoError(t, err)
	data, err := io.ReadAll(obj)
	require.NoError(t, err)
	assert.Equal(t, "archived", string(data))
}

func TestDownloadUnknownJob(t *testing.T) {
	gormDB, sqlMock := setupMockDB(t)
	svc := NewService(gormDB, new(mocks.Client), "merges", zap.NewNop())

	sqlMock.ExpectQuery("SELECT \\* FROM `merge_jobs`").
		WillReturnError(gorm.ErrRecordNotFound)

	_, err := svc.Download(context.Background(), "nope")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDownloadWithoutArchiveStore(t *testing.T) {
	gormDB, _ := setupMockDB(t)
	svc := NewService(gormDB, nil, "merges", zap.NewNop())

	_, err := svc.Download(context.Background(), "job-1")
	assert.ErrorIs(t, err, ErrNotFound)
}
