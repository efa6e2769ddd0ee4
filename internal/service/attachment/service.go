package attachment

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"

	"hunian-marketplace/internal/config"
	"hunian-marketplace/internal/domain"
	"hunian-marketplace/internal/repository"
)

// Service stores message attachments in object storage. The returned URL
// is embedded by clients into message bodies; no database row is kept.
type Service interface {
	Upload(ctx context.Context, userID, threadID uuid.UUID, fileName string, fileSize int64, mimeType string, reader io.Reader) (*domain.Attachment, error)
}

type service struct {
	threadRepo  repository.ThreadRepository
	minioClient *minio.Client
	cfg         *config.Config
}

func NewService(threadRepo repository.ThreadRepository, minioClient *minio.Client, cfg *config.Config) Service {
	return &service{
		threadRepo:  threadRepo,
		minioClient: minioClient,
		cfg:         cfg,
	}
}

func (s *service) Upload(ctx context.Context, userID, threadID uuid.UUID, fileName string, fileSize int64, mimeType string, reader io.Reader) (*domain.Attachment, error) {
	if s.minioClient == nil {
		return nil, fmt.Errorf("attachment storage is not configured")
	}

	ok, err := s.threadRepo.CanAccess(ctx, threadID, userID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, domain.ErrThreadNotFound
	}

	attachmentID := uuid.New()
	storagePath := fmt.Sprintf("attachments/%s/%s/%s", time.Now().Format("2006/01"), threadID, attachmentID)

	_, err = s.minioClient.PutObject(ctx, s.cfg.MinIOBucket, storagePath, reader, fileSize, minio.PutObjectOptions{
		ContentType: mimeType,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to upload attachment: %w", err)
	}

	return &domain.Attachment{
		ID:          attachmentID,
		ThreadID:    threadID,
		UploadedBy:  userID,
		FileName:    fileName,
		FileSize:    fileSize,
		MimeType:    mimeType,
		StoragePath: storagePath,
		URL:         s.publicURL(storagePath),
		CreatedAt:   time.Now(),
	}, nil
}

func (s *service) publicURL(storagePath string) string {
	scheme := "http"
	if s.cfg.MinIOPublicUseSSL {
		scheme = "https"
	}
	return fmt.Sprintf("%s://%s/%s/%s", scheme, s.cfg.MinIOPublicEndpoint, s.cfg.MinIOBucket, storagePath)
}
