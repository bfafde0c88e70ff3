package repositories

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/batchbinder/content-service/internal/models"
)

// ErrNotFound reports a missing or unresolvable record. Malformed ids map
// to it as well, so callers never distinguish "bad id" from "no such row".
var ErrNotFound = errors.New("record not found")

// IsNotFoundError reports whether err means the record is absent.
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound) || errors.Is(err, gorm.ErrRecordNotFound)
}

// ContentFilter is a partial match over the filterable content columns.
// Zero-valued fields are unconstrained.
type ContentFilter struct {
	ContentType string
	Department  string
	Semester    string
	Subject     string
}

// ContentRepository hides the storage engine behind structured operations on
// content records.
type ContentRepository interface {
	// List returns matching records, newest created first.
	List(ctx context.Context, filter ContentFilter) ([]models.Content, error)

	// GetByID returns ErrNotFound for malformed or unknown ids.
	GetByID(ctx context.Context, id string) (*models.Content, error)

	// Create stamps CreatedAt/UpdatedAt and zeroes the download counter
	// regardless of caller-supplied values.
	Create(ctx context.Context, content *models.Content) error

	// Update replaces only the supplied columns and re-stamps updated_at.
	// ErrNotFound when the id is malformed, unknown, or the write touched
	// zero rows.
	Update(ctx context.Context, id string, fields map[string]interface{}) (*models.Content, error)

	// Delete removes the row and then the backing file, in that order.
	Delete(ctx context.Context, id string) error

	// IncrementDownloads atomically adds 1 to the download counter.
	IncrementDownloads(ctx context.Context, id string) error
}

// AdminRepository manages admin accounts. Accounts are only ever created by
// the seeding CLI and only LastLogin mutates afterwards.
type AdminRepository interface {
	GetByEmail(ctx context.Context, email string) (*models.Admin, error)
	Create(ctx context.Context, admin *models.Admin) error
	UpdateLastLogin(ctx context.Context, email string) error
}

// Repository is the top-level accessor handed to services.
type Repository interface {
	Content() ContentRepository
	Admin() AdminRepository

	Ping(ctx context.Context) error
	Close() error
}
