package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/devfolio/portfolio-backend/internal/projects/domain"
)

// MemoryStore is an in-memory Store used for tests and cache-less local runs.
// It mirrors the persistent adapter's semantics: generated ids, server-side
// timestamps, createdAt-descending listing.
type MemoryStore struct {
	mu       sync.RWMutex
	projects map[string]domain.Project

	// now is swappable so tests can control timestamps.
	now func() time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		projects: make(map[string]domain.Project),
		now:      time.Now,
	}
}

func (m *MemoryStore) Insert(ctx context.Context, data domain.ProjectData) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	id := uuid.New().String()
	now := m.now()
	m.projects[id] = domain.Project{
		ID:            id,
		Title:         data.Title,
		Description:   data.Description,
		Tags:          append([]string(nil), data.Tags...),
		ImageURLs:     append([]string(nil), data.ImageURLs...),
		LiveDemoURL:   data.LiveDemoURL,
		SourceCodeURL: data.SourceCodeURL,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	return id, nil
}

func (m *MemoryStore) Update(ctx context.Context, id string, data domain.ProjectData) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	p, ok := m.projects[id]
	if !ok {
		return domain.ErrNotFound
	}

	p.Title = data.Title
	p.Description = data.Description
	p.Tags = append([]string(nil), data.Tags...)
	p.ImageURLs = append([]string(nil), data.ImageURLs...)
	p.LiveDemoURL = data.LiveDemoURL
	p.SourceCodeURL = data.SourceCodeURL
	p.UpdatedAt = m.now()
	m.projects[id] = p
	return nil
}

func (m *MemoryStore) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.projects[id]; !ok {
		return domain.ErrNotFound
	}
	delete(m.projects, id)
	return nil
}

func (m *MemoryStore) ListAll(ctx context.Context) ([]domain.Project, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]domain.Project, 0, len(m.projects))
	for _, p := range m.projects {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID > out[j].ID
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (m *MemoryStore) Ping(ctx context.Context) error {
	return nil
}

// Len reports the number of stored projects. Test helper.
func (m *MemoryStore) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.projects)
}

// SetClock swaps the timestamp source. Test helper.
func (m *MemoryStore) SetClock(now func() time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.now = now
}
