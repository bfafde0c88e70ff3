package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type ContentType string

const (
	ContentTypeNotes       ContentType = "notes"
	ContentTypeExclusive   ContentType = "exclusive"
	ContentTypeAssignments ContentType = "assignments"
	ContentTypeTests       ContentType = "tests"
)

// IsValid reports whether the content type is one of the known values.
func (t ContentType) IsValid() bool {
	switch t {
	case ContentTypeNotes, ContentTypeExclusive, ContentTypeAssignments, ContentTypeTests:
		return true
	}
	return false
}

// IsExclusive selects which field set is mandatory for a record: exclusive
// items carry title/price/quote, every other type carries the academic
// fields (department, semester, subject, topic, professor).
func (t ContentType) IsExclusive() bool {
	return t == ContentTypeExclusive
}

// Content is one unit of shareable material. The content type is fixed at
// creation and discriminates between the academic field set and the
// exclusive-item field set.
type Content struct {
	ID          string      `json:"id" gorm:"primaryKey;size:36"`
	ContentType ContentType `json:"contentType" gorm:"index;not null;size:20"`

	// Academic material fields (notes, assignments, tests)
	Department string `json:"department,omitempty" gorm:"index;size:100"`
	Semester   string `json:"semester,omitempty" gorm:"index;size:20"`
	Subject    string `json:"subject,omitempty" gorm:"index;size:100"`
	Topic      string `json:"topic,omitempty" gorm:"size:200"`
	Professor  string `json:"professor,omitempty" gorm:"size:100"`

	// Exclusive item fields
	Title    string `json:"title,omitempty" gorm:"size:200"`
	Price    string `json:"price,omitempty" gorm:"size:50"`
	Quote    string `json:"quote,omitempty" gorm:"size:500"`
	ImageURL string `json:"imageUrl,omitempty" gorm:"size:500"`

	Description string `json:"description,omitempty"`

	// Backing file, when one was uploaded
	FilePath string         `json:"filePath,omitempty" gorm:"size:500"`
	FileMeta datatypes.JSON `json:"fileMeta,omitempty"`

	Downloads int64 `json:"downloads" gorm:"not null;default:0"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (Content) TableName() string {
	return "contents"
}

// BeforeCreate assigns an opaque identifier so callers never see the
// storage engine's key type.
func (c *Content) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	return nil
}

// FileMeta describes a stored upload; it is embedded in the content record
// as a JSON blob.
type FileMeta struct {
	Filename     string `json:"filename"`
	Filepath     string `json:"filepath"`
	OriginalName string `json:"originalname"`
	Size         int64  `json:"size"`
	Extension    string `json:"extension"`
}
