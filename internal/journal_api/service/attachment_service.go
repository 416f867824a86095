package service

import (
	"context"
	"io"
	"log/slog"

	"github.com/google/uuid"
	"github.com/trading-journal-backend/internal/domain/entry"
)

// AttachmentServiceImpl implements the AttachmentService interface
type AttachmentServiceImpl struct {
	entryRepo      entry.Repository
	attachmentRepo entry.AttachmentRepository
	files          FileStore
	logger         *slog.Logger
}

// NewAttachmentService creates a new attachment service
func NewAttachmentService(logger *slog.Logger, entryRepo entry.Repository, attachmentRepo entry.AttachmentRepository, files FileStore) AttachmentService {
	return &AttachmentServiceImpl{
		entryRepo:      entryRepo,
		attachmentRepo: attachmentRepo,
		files:          files,
		logger:         logger,
	}
}

// UploadImage stores the file first and removes it again if the metadata row cannot be written
func (s *AttachmentServiceImpl) UploadImage(ctx context.Context, entryID uuid.UUID, filename string, content io.Reader, category entry.Category) (*entry.Attachment, error) {
	logger := requestLogger(ctx, s.logger)

	if !entry.IsAllowedImage(filename) {
		return nil, entry.ErrUnsupportedImageType
	}
	if _, err := s.entryRepo.GetByID(ctx, entryID); err != nil {
		return nil, err
	}

	stored, err := s.files.Save(content, filename)
	if err != nil {
		logger.Error("Failed to store uploaded image", "entry_id", entryID.String(), "file", filename, "error", err)
		return nil, err
	}

	attachment := entry.NewImageAttachment(entryID, stored, category)
	if err := s.attachmentRepo.Create(ctx, attachment); err != nil {
		if removeErr := s.files.Remove(stored); removeErr != nil {
			logger.Warn("Failed to remove orphaned upload", "file", stored, "error", removeErr)
		}
		return nil, err
	}

	logger.Info("Image attached", "entry_id", entryID.String(), "attachment_id", attachment.ID.String(), "category", string(category))
	return attachment, nil
}

func (s *AttachmentServiceImpl) AddLink(ctx context.Context, entryID uuid.UUID, link string, category entry.Category) (*entry.Attachment, error) {
	attachment, err := entry.NewLinkAttachment(entryID, link, category)
	if err != nil {
		return nil, err
	}
	if _, err := s.entryRepo.GetByID(ctx, entryID); err != nil {
		return nil, err
	}
	if err := s.attachmentRepo.Create(ctx, attachment); err != nil {
		return nil, err
	}

	requestLogger(ctx, s.logger).Info("Link attached", "entry_id", entryID.String(), "attachment_id", attachment.ID.String())
	return attachment, nil
}

func (s *AttachmentServiceImpl) DeleteAttachment(ctx context.Context, id uuid.UUID) error {
	logger := requestLogger(ctx, s.logger)

	attachment, err := s.attachmentRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.attachmentRepo.Delete(ctx, id); err != nil {
		return err
	}

	if attachment.Kind == entry.AttachmentKindImage && attachment.FilePath != "" {
		if err := s.files.Remove(attachment.FilePath); err != nil {
			logger.Warn("Failed to remove attachment file", "attachment_id", id.String(), "file", attachment.FilePath, "error", err)
		}
	}

	logger.Info("Attachment deleted", "attachment_id", id.String())
	return nil
}
