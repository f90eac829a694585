package history

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"

	"workbook-merger/core/storage"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ErrDisabled is returned when no history database is configured.
var ErrDisabled = errors.New("merge history is disabled")

// ErrNotFound is returned when a job id is unknown or has no archive.
var ErrNotFound = errors.New("merge job not found")

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// Service records merge runs and serves archived outputs. Both the
// database and the archive store are optional; the service degrades to
// whatever is available.
type Service struct {
	db     *gorm.DB
	client storage.Client
	bucket string
	logger *zap.Logger
}

// NewService creates a history service. db and client may be nil.
func NewService(db *gorm.DB, client storage.Client, bucket string, logger *zap.Logger) *Service {
	return &Service{db: db, client: client, bucket: bucket, logger: logger}
}

// Enabled reports whether job records can be stored.
func (s *Service) Enabled() bool {
	return s.db != nil
}

// Migrate creates the merge_jobs table when a database is present.
func (s *Service) Migrate() error {
	if s.db == nil {
		return nil
	}
	return s.db.AutoMigrate(&MergeJob{})
}

// Record stores the job and, when an archive store is configured,
// uploads the merged workbook under merges/<id>.xlsx. Archive upload
// failures are logged and leave ArchiveKey empty; they do not fail the
// merge that produced the job.
func (s *Service) Record(ctx context.Context, job *MergeJob, output []byte) error {
	if job.ID == "" {
		job.ID = uuid.NewString()
	}

	if s.client != nil && len(output) > 0 {
		key := fmt.Sprintf("merges/%s.xlsx", job.ID)
		_, err := s.client.PutObject(ctx, s.bucket, key,
			bytes.NewReader(output), int64(len(output)),
			minio.PutObjectOptions{ContentType: xlsxContentType})
		if err != nil {
			s.logger.Warn("failed to archive merged workbook",
				zap.String("job", job.ID), zap.Error(err))
		} else {
			job.ArchiveKey = key
		}
	}

	if s.db == nil {
		return nil
	}
	if err := s.db.WithContext(ctx).Create(job).Error; err != nil {
		return fmt.Errorf("record merge job: %w", err)
	}
	return nil
}

// Recent returns the latest jobs, newest first.
func (s *Service) Recent(ctx context.Context, limit int) ([]MergeJob, error) {
	if s.db == nil {
		return nil, ErrDisabled
	}
	if limit <= 0 || limit > 500 {
		limit = 50
	}
	var jobs []MergeJob
	err := s.db.WithContext(ctx).
		Order("created_at DESC").
		Limit(limit).
		Find(&jobs).Error
	if err != nil {
		return nil, fmt.Errorf("list merge jobs: %w", err)
	}
	return jobs, nil
}

// Download streams the archived output workbook of a past job.
func (s *Service) Download(ctx context.Context, id string) (io.ReadCloser, error) {
	if s.db == nil {
		return nil, ErrDisabled
	}
	if s.client == nil {
		return nil, ErrNotFound
	}

	var job MergeJob
	err := s.db.WithContext(ctx).First(&job, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load merge job: %w", err)
	}
	if job.ArchiveKey == "" {
		return nil, ErrNotFound
	}

	obj, err := s.client.GetObject(ctx, s.bucket, job.ArchiveKey, minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("fetch archived workbook: %w", err)
	}
	return obj, nil
}
