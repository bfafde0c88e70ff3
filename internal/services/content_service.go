package services

import (
	"context"
	"encoding/json"
	"log/slog"
	"mime/multipart"
	"os"
	"path/filepath"

	"github.com/batchbinder/content-service/internal/events"
	"github.com/batchbinder/content-service/internal/models"
	"github.com/batchbinder/content-service/internal/repositories"
	"github.com/batchbinder/content-service/internal/storage"
	"github.com/batchbinder/content-service/internal/validator"
)

type contentService struct {
	repo      repositories.Repository
	files     *storage.FileStore
	publisher events.EventPublisher
	logger    *slog.Logger
	validator *validator.Validator
}

func NewContentService(
	repo repositories.Repository,
	files *storage.FileStore,
	publisher events.EventPublisher,
	logger *slog.Logger,
	validator *validator.Validator,
) ContentService {
	return &contentService{
		repo:      repo,
		files:     files,
		publisher: publisher,
		logger:    logger,
		validator: validator,
	}
}

func (s *contentService) List(ctx context.Context, filter repositories.ContentFilter) ([]models.Content, error) {
	return s.repo.Content().List(ctx, filter)
}

func (s *contentService) GetByID(ctx context.Context, id string) (*models.Content, error) {
	content, err := s.repo.Content().GetByID(ctx, id)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrContentNotFound
		}
		return nil, err
	}
	return content, nil
}

func (s *contentService) Create(ctx context.Context, req *validator.ContentRequest, file *multipart.FileHeader) (*models.Content, error) {
	if errs := s.validator.Struct(req); errs != nil {
		return nil, errs
	}

	content := buildContent(req)

	if file != nil {
		meta, err := s.files.Save(file)
		if err != nil {
			return nil, err
		}
		content.FilePath = meta.Filepath
		content.FileMeta, _ = json.Marshal(meta)
	}

	if err := s.repo.Content().Create(ctx, content); err != nil {
		return nil, err
	}

	s.logger.Info("content created", "id", content.ID, "content_type", content.ContentType)
	s.publish(ctx, events.EventContentCreated, content)
	return content, nil
}

func (s *contentService) Update(ctx context.Context, id string, req *validator.ContentRequest) (*models.Content, error) {
	if errs := s.validator.Struct(req); errs != nil {
		return nil, errs
	}

	content, err := s.repo.Content().Update(ctx, id, editableFields(req))
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrContentNotFound
		}
		return nil, err
	}

	s.logger.Info("content updated", "id", id)
	s.publish(ctx, events.EventContentUpdated, content)
	return content, nil
}

func (s *contentService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Content().Delete(ctx, id); err != nil {
		if repositories.IsNotFoundError(err) {
			return ErrContentNotFound
		}
		return err
	}

	s.logger.Info("content deleted", "id", id)
	s.publish(ctx, events.EventContentDeleted, map[string]string{"id": id})
	return nil
}

func (s *contentService) Download(ctx context.Context, id string) (*DownloadInfo, error) {
	content, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if content.FilePath == "" {
		return nil, ErrFileNotFound
	}

	info, err := os.Stat(content.FilePath)
	if err != nil {
		return nil, ErrFileNotFound
	}

	// Counter bumps before the bytes go out; a failed stream after a
	// successful increment is accepted.
	if err := s.repo.Content().IncrementDownloads(ctx, id); err != nil {
		return nil, err
	}
	content.Downloads++

	s.publish(ctx, events.EventContentDownloaded, map[string]interface{}{
		"id":        content.ID,
		"downloads": content.Downloads,
	})

	ext := filepath.Ext(content.FilePath)
	return &DownloadInfo{
		Content:  content,
		Path:     content.FilePath,
		Filename: filepath.Base(content.FilePath),
		MimeType: storage.MimeTypeForExtension(ext),
		Size:     info.Size(),
	}, nil
}

// publish is best effort: a broker outage must never fail the request that
// already committed its write.
func (s *contentService) publish(ctx context.Context, eventType string, data interface{}) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(ctx, events.NewEvent(eventType, data)); err != nil {
		s.logger.Warn("failed to publish event", "event_type", eventType, "error", err)
	}
}

// buildContent maps a validated request onto a fresh record, keeping only
// the field set that belongs to the content type.
func buildContent(req *validator.ContentRequest) *models.Content {
	content := &models.Content{
		ContentType: models.ContentType(req.ContentType),
		Description: req.Description,
	}

	if content.ContentType.IsExclusive() {
		content.Title = req.Title
		content.Price = req.Price
		content.Quote = req.Quote
		content.ImageURL = req.ImageURL
	} else {
		content.Department = req.Department
		content.Semester = req.Semester
		content.Subject = req.Subject
		content.Topic = req.Topic
		content.Professor = req.Professor
	}

	return content
}

// editableFields is the full-field replace set for updates: every editable
// column is written, so fields from the other content type's set are
// cleared rather than left stale.
func editableFields(req *validator.ContentRequest) map[string]interface{} {
	fields := map[string]interface{}{
		"content_type": req.ContentType,
		"description":  req.Description,
		"department":   "",
		"semester":     "",
		"subject":      "",
		"topic":        "",
		"professor":    "",
		"title":        "",
		"price":        "",
		"quote":        "",
		"image_url":    "",
	}

	if models.ContentType(req.ContentType).IsExclusive() {
		fields["title"] = req.Title
		fields["price"] = req.Price
		fields["quote"] = req.Quote
		fields["image_url"] = req.ImageURL
	} else {
		fields["department"] = req.Department
		fields["semester"] = req.Semester
		fields["subject"] = req.Subject
		fields["topic"] = req.Topic
		fields["professor"] = req.Professor
	}

	return fields
}
