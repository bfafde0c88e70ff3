package services

import (
	"context"
	"os"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/batchbinder/content-service/internal/models"
	"github.com/batchbinder/content-service/internal/repositories"
)

// mockRepository is an in-memory Repository that mirrors the semantics of
// the Postgres implementation closely enough for service tests.
type mockRepository struct {
	content *mockContentRepo
	admin   *mockAdminRepo
}

func newMockRepository() *mockRepository {
	return &mockRepository{
		content: &mockContentRepo{records: map[string]*models.Content{}},
		admin:   &mockAdminRepo{admins: map[string]*models.Admin{}},
	}
}

func (m *mockRepository) Content() repositories.ContentRepository { return m.content }
func (m *mockRepository) Admin() repositories.AdminRepository     { return m.admin }
func (m *mockRepository) Ping(ctx context.Context) error          { return nil }
func (m *mockRepository) Close() error                            { return nil }

type mockContentRepo struct {
	mu      sync.Mutex
	records map[string]*models.Content
	seq     map[string]int
	nextSeq int
}

func (m *mockContentRepo) List(_ context.Context, filter repositories.ContentFilter) ([]models.Content, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var out []models.Content
	for _, rec := range m.records {
		if filter.ContentType != "" && string(rec.ContentType) != filter.ContentType {
			continue
		}
		if filter.Department != "" && rec.Department != filter.Department {
			continue
		}
		if filter.Semester != "" && rec.Semester != filter.Semester {
			continue
		}
		if filter.Subject != "" && rec.Subject != filter.Subject {
			continue
		}
		out = append(out, *rec)
	}

	// Newest created first, insertion order breaking ties
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return m.seq[out[i].ID] > m.seq[out[j].ID]
	})
	return out, nil
}

func (m *mockContentRepo) GetByID(_ context.Context, id string) (*models.Content, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, repositories.ErrNotFound
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	rec, ok := m.records[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	copied := *rec
	return &copied, nil
}

func (m *mockContentRepo) Create(_ context.Context, content *models.Content) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if content.ID == "" {
		content.ID = uuid.NewString()
	}
	now := time.Now()
	content.CreatedAt = now
	content.UpdatedAt = now
	content.Downloads = 0

	copied := *content
	m.records[content.ID] = &copied
	if m.seq == nil {
		m.seq = map[string]int{}
	}
	m.nextSeq++
	m.seq[content.ID] = m.nextSeq
	return nil
}

func (m *mockContentRepo) Update(ctx context.Context, id string, fields map[string]interface{}) (*models.Content, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, repositories.ErrNotFound
	}

	m.mu.Lock()
	rec, ok := m.records[id]
	if !ok {
		m.mu.Unlock()
		return nil, repositories.ErrNotFound
	}
	applyFields(rec, fields)
	rec.UpdatedAt = time.Now()
	m.mu.Unlock()

	return m.GetByID(ctx, id)
}

func (m *mockContentRepo) Delete(_ context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return repositories.ErrNotFound
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	rec, ok := m.records[id]
	if !ok {
		return repositories.ErrNotFound
	}
	delete(m.records, id)

	if rec.FilePath != "" {
		os.Remove(rec.FilePath)
	}
	return nil
}

func (m *mockContentRepo) IncrementDownloads(_ context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return repositories.ErrNotFound
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	rec, ok := m.records[id]
	if !ok {
		return repositories.ErrNotFound
	}
	rec.Downloads++
	return nil
}

func applyFields(rec *models.Content, fields map[string]interface{}) {
	for column, value := range fields {
		s, _ := value.(string)
		switch column {
		case "content_type":
			rec.ContentType = models.ContentType(s)
		case "department":
			rec.Department = s
		case "semester":
			rec.Semester = s
		case "subject":
			rec.Subject = s
		case "topic":
			rec.Topic = s
		case "professor":
			rec.Professor = s
		case "title":
			rec.Title = s
		case "price":
			rec.Price = s
		case "quote":
			rec.Quote = s
		case "image_url":
			rec.ImageURL = s
		case "description":
			rec.Description = s
		}
	}
}

type mockAdminRepo struct {
	mu     sync.Mutex
	admins map[string]*models.Admin
}

func (m *mockAdminRepo) GetByEmail(_ context.Context, email string) (*models.Admin, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	admin, ok := m.admins[email]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	copied := *admin
	return &copied, nil
}

func (m *mockAdminRepo) Create(_ context.Context, admin *models.Admin) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	admin.CreatedAt = time.Now()
	copied := *admin
	m.admins[admin.Email] = &copied
	return nil
}

func (m *mockAdminRepo) UpdateLastLogin(_ context.Context, email string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	admin, ok := m.admins[email]
	if !ok {
		return repositories.ErrNotFound
	}
	now := time.Now()
	admin.LastLogin = &now
	return nil
}
