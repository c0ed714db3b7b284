package repository

import (
	"context"
	"fmt"
	"strings"

	"cloud.google.com/go/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/devfolio/portfolio-backend/internal/projects/domain"
)

// FirestoreStore persists projects in a Firestore collection. Timestamps are
// assigned server-side at write time; reads normalize whatever timestamp
// shape the document carries.
type FirestoreStore struct {
	client     *firestore.Client
	collection string
}

func NewFirestoreStore(client *firestore.Client, collection string) *FirestoreStore {
	if collection == "" {
		collection = "projects"
	}
	return &FirestoreStore{client: client, collection: collection}
}

func (s *FirestoreStore) Insert(ctx context.Context, data domain.ProjectData) (string, error) {
	doc := writeFields(data)
	doc["createdAt"] = firestore.ServerTimestamp
	doc["updatedAt"] = firestore.ServerTimestamp

	ref, _, err := s.client.Collection(s.collection).Add(ctx, doc)
	if err != nil {
		return "", fmt.Errorf("insert project: %w", err)
	}
	return ref.ID, nil
}

func (s *FirestoreStore) Update(ctx context.Context, id string, data domain.ProjectData) error {
	updates := make([]firestore.Update, 0, 7)
	for field, value := range writeFields(data) {
		updates = append(updates, firestore.Update{Path: field, Value: value})
	}
	updates = append(updates, firestore.Update{Path: "updatedAt", Value: firestore.ServerTimestamp})

	_, err := s.client.Collection(s.collection).Doc(id).Update(ctx, updates)
	if status.Code(err) == codes.NotFound {
		return domain.ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("update project %s: %w", id, err)
	}
	return nil
}

func (s *FirestoreStore) Delete(ctx context.Context, id string) error {
	ref := s.client.Collection(s.collection).Doc(id)

	// Firestore deletes are idempotent; check existence first so callers get
	// NotFound semantics.
	if _, err := ref.Get(ctx); err != nil {
		if status.Code(err) == codes.NotFound {
			return domain.ErrNotFound
		}
		return fmt.Errorf("load project %s: %w", id, err)
	}

	if _, err := ref.Delete(ctx); err != nil {
		return fmt.Errorf("delete project %s: %w", id, err)
	}
	return nil
}

func (s *FirestoreStore) ListAll(ctx context.Context) ([]domain.Project, error) {
	snaps, err := s.client.Collection(s.collection).
		OrderBy("createdAt", firestore.Desc).
		Documents(ctx).
		GetAll()
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}

	out := make([]domain.Project, 0, len(snaps))
	for _, snap := range snaps {
		out = append(out, decodeProject(snap.Ref.ID, snap.Data()))
	}
	return out, nil
}

func (s *FirestoreStore) Ping(ctx context.Context) error {
	_, err := s.client.Collection(s.collection).Limit(1).Documents(ctx).GetAll()
	return err
}

func writeFields(data domain.ProjectData) map[string]any {
	tags := data.Tags
	if tags == nil {
		tags = []string{}
	}
	images := data.ImageURLs
	if images == nil {
		images = []string{}
	}
	return map[string]any{
		"title":         data.Title,
		"description":   data.Description,
		"tags":          tags,
		"imageUrls":     images,
		"liveDemoUrl":   data.LiveDemoURL,
		"sourceCodeUrl": data.SourceCodeURL,
	}
}

// decodeProject tolerates legacy document shapes: tags persisted as a
// comma-separated string by very old writers, missing imageUrls, and the
// assorted timestamp encodings handled by domain.NormalizeTimestamp.
func decodeProject(id string, data map[string]any) domain.Project {
	return domain.Project{
		ID:            id,
		Title:         stringField(data, "title"),
		Description:   stringField(data, "description"),
		Tags:          stringSlice(data["tags"]),
		ImageURLs:     stringSlice(data["imageUrls"]),
		LiveDemoURL:   stringField(data, "liveDemoUrl"),
		SourceCodeURL: stringField(data, "sourceCodeUrl"),
		CreatedAt:     domain.NormalizeTimestamp(data["createdAt"]),
		UpdatedAt:     domain.NormalizeTimestamp(data["updatedAt"]),
	}
}

func stringField(data map[string]any, key string) string {
	s, _ := data[key].(string)
	return s
}

func stringSlice(v any) []string {
	switch t := v.(type) {
	case []string:
		return t
	case []any:
		out := make([]string, 0, len(t))
		for _, item := range t {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	case string:
		out := []string{}
		for _, part := range strings.Split(t, ",") {
			if trimmed := strings.TrimSpace(part); trimmed != "" {
				out = append(out, trimmed)
			}
		}
		return out
	default:
		return []string{}
	}
}
