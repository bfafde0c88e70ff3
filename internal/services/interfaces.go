package services

import (
	"context"
	"io"
	"mime/multipart"

	"github.com/batchbinder/content-service/internal/models"
	"github.com/batchbinder/content-service/internal/repositories"
	"github.com/batchbinder/content-service/internal/validator"
)

// AuthService handles admin credential checks and token issuance.
type AuthService interface {
	// Login validates credentials and returns a session token. Unknown
	// emails and wrong passwords both report ErrInvalidCredentials so the
	// response never reveals which admin accounts exist.
	Login(ctx context.Context, req *validator.LoginRequest) (string, error)
}

// ContentService implements the content collection operations.
type ContentService interface {
	List(ctx context.Context, filter repositories.ContentFilter) ([]models.Content, error)
	GetByID(ctx context.Context, id string) (*models.Content, error)

	// Create validates the per-type required fields, stores the optional
	// upload, and inserts the record.
	Create(ctx context.Context, req *validator.ContentRequest, file *multipart.FileHeader) (*models.Content, error)

	// Update replaces the editable attributes wholesale after re-running
	// the same required-field check as Create.
	Update(ctx context.Context, id string, req *validator.ContentRequest) (*models.Content, error)

	Delete(ctx context.Context, id string) error

	// Download resolves the record's backing file and bumps the download
	// counter before the caller streams the bytes.
	Download(ctx context.Context, id string) (*DownloadInfo, error)
}

// DownloadInfo is everything the handler needs to stream a stored file.
type DownloadInfo struct {
	Content  *models.Content
	Path     string
	Filename string
	MimeType string
	Size     int64
}

// ContentStats is the admin console overview.
type ContentStats struct {
	TotalContent   int64            `json:"totalContent"`
	TotalDownloads int64            `json:"totalDownloads"`
	ByType         map[string]int64 `json:"byType"`
	ByDepartment   map[string]int64 `json:"byDepartment"`
	RecentUploads  []models.Content `json:"recentUploads"`
}

// StatsService aggregates collection-wide numbers for the admin console.
type StatsService interface {
	GetContentStats(ctx context.Context) (*ContentStats, error)
}

// ExportService renders the content inventory as a spreadsheet.
type ExportService interface {
	ExportContent(ctx context.Context, w io.Writer) error
}

// ServiceManager wires and owns all service instances.
type ServiceManager interface {
	Auth() AuthService
	Content() ContentService
	Stats() StatsService
	Export() ExportService

	Initialize(ctx context.Context) error
	Shutdown(ctx context.Context) error
}
