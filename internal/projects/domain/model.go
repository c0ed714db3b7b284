package domain

import (
	"errors"
	"time"
)

// ErrNotFound is returned when a mutation targets a project id that does not
// exist in the store.
var ErrNotFound = errors.New("project not found")

// Project is the sole domain entity: one portfolio entry.
// It is storage-agnostic and shared across repository, service and HTTP layers.
type Project struct {
	ID            string    `json:"id"`
	Title         string    `json:"title"`
	Description   string    `json:"description"`
	Tags          []string  `json:"tags"`
	ImageURLs     []string  `json:"imageUrls"`
	LiveDemoURL   string    `json:"liveDemoUrl,omitempty"`
	SourceCodeURL string    `json:"sourceCodeUrl,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// ProjectData is the validated, shaped payload written to the store.
// Tags and ImageURLs are always slices here, never raw comma-separated
// strings; the validation boundary enforces that before any write.
type ProjectData struct {
	Title         string   `json:"title"`
	Description   string   `json:"description"`
	Tags          []string `json:"tags"`
	ImageURLs     []string `json:"imageUrls"`
	LiveDemoURL   string   `json:"liveDemoUrl"`
	SourceCodeURL string   `json:"sourceCodeUrl"`
}
