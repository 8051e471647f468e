// Package tracker keeps the locally cached application collection and
// applies optimistic mutations: local state changes first, the remote call
// follows, and the outcome decides between merge and rollback.
package tracker

import (
	"context"
	"sync"

	"github.com/ghostlake/jobtrack/internal/dtos"
	"github.com/ghostlake/jobtrack/internal/models"
	"github.com/google/uuid"
)

// API is the remote side of each mutation.
type API interface {
	ListApplications(ctx context.Context) ([]models.Application, error)
	CreateApplication(ctx context.Context, req dtos.CreateApplicationRequest) (*models.Application, error)
	UpdateApplicationStatus(ctx context.Context, id uuid.UUID, status string) (*models.Application, error)
	DeleteApplication(ctx context.Context, id uuid.UUID) error
}

// Tracker owns the cached collection. Every mutation replaces the whole
// slice rather than editing in place, so a pre-mutation snapshot stays valid
// and rollback is a single reference swap.
//
// Known limitation, accepted: rollback reinstalls the snapshot verbatim, so
// an unrelated optimistic change made while this call was in flight is
// discarded too. Callers are expected not to issue concurrent mutations on
// the same item.
type Tracker struct {
	mu   sync.Mutex
	apps []models.Application
	api  API
}

// New creates a Tracker over the given API client.
func New(api API) *Tracker {
	return &Tracker{api: api}
}

// Load replaces the cache with the server's collection.
func (t *Tracker) Load(ctx context.Context) error {
	apps, err := t.api.ListApplications(ctx)
	if err != nil {
		return err
	}
	t.mu.Lock()
	t.apps = apps
	t.mu.Unlock()
	return nil
}

// Applications returns the current collection. The returned slice is never
// mutated afterwards; callers must treat it as read-only.
func (t *Tracker) Applications() []models.Application {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.apps
}

// UpdateStatus optimistically sets the item's status, issues the remote
// call, then merges the server's authoritative record into the collection as
// it stands at merge time. On failure the pre-call snapshot is reinstalled
// verbatim and the error is returned for the caller to display.
func (t *Tracker) UpdateStatus(ctx context.Context, id uuid.UUID, status string) error {
	t.mu.Lock()
	snapshot := t.apps
	next := make([]models.Application, len(snapshot))
	copy(next, snapshot)
	for i := range next {
		if next[i].ID == id {
			next[i].Status = status
		}
	}
	t.apps = next
	t.mu.Unlock()

	updated, err := t.api.UpdateApplicationStatus(ctx, id, status)

	t.mu.Lock()
	defer t.mu.Unlock()
	if err != nil {
		t.apps = snapshot
		return err
	}

	// Merge into the collection as it is now, not the snapshot, so
	// unrelated local changes made meanwhile are preserved.
	merged := make([]models.Application, len(t.apps))
	copy(merged, t.apps)
	for i := range merged {
		if merged[i].ID == id {
			merged[i] = *updated
		}
	}
	t.apps = merged
	return nil
}

// Delete removes the item from the displayed collection immediately, issues
// the remote delete, and reinstalls the snapshot on failure.
func (t *Tracker) Delete(ctx context.Context, id uuid.UUID) error {
	t.mu.Lock()
	snapshot := t.apps
	next := make([]models.Application, 0, len(snapshot))
	for _, app := range snapshot {
		if app.ID != id {
			next = append(next, app)
		}
	}
	t.apps = next
	t.mu.Unlock()

	err := t.api.DeleteApplication(ctx, id)

	t.mu.Lock()
	defer t.mu.Unlock()
	if err != nil {
		t.apps = snapshot
		return err
	}
	return nil
}

// Create is not optimistic: the item's identity is server-assigned, so it
// waits for the created record and prepends it. Nothing was guessed, so
// there is nothing to roll back.
func (t *Tracker) Create(ctx context.Context, req dtos.CreateApplicationRequest) (*models.Application, error) {
	app, err := t.api.CreateApplication(ctx, req)
	if err != nil {
		return nil, err
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	next := make([]models.Application, 0, len(t.apps)+1)
	next = append(next, *app)
	next = append(next, t.apps...)
	t.apps = next
	return app, nil
}
