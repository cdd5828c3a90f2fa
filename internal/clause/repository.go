package clause

import (
	"context"
	"errors"
	"sort"
	"sync"
)

// Sentinel errors surfaced on lookups.
var (
	// ErrLibraryNotFound is returned for unknown library IDs.
	ErrLibraryNotFound = errors.New("library not found")
	// ErrTemplateNotFound is returned for unknown template IDs.
	ErrTemplateNotFound = errors.New("template not found")
)

// Repository abstracts clause library storage. The engine only depends on
// this interface; durable implementations belong to the caller.
type Repository interface {
	// GetLibrary returns a library by ID.
	GetLibrary(ctx context.Context, libraryID string) (*Library, error)

	// PutLibrary creates or replaces a library.
	PutLibrary(ctx context.Context, lib *Library) error

	// ListLibraries returns all libraries.
	ListLibraries(ctx context.Context) ([]*Library, error)

	// GetTemplate returns a template by library and template ID.
	GetTemplate(ctx context.Context, libraryID, templateID string) (*Template, error)

	// PutTemplate creates or replaces a template within a library and keeps
	// the library's derived category set current.
	PutTemplate(ctx context.Context, libraryID string, tmpl *Template) error

	// ListTemplates returns all templates in a library.
	ListTemplates(ctx context.Context, libraryID string) ([]*Template, error)

	// IncrementUsage atomically bumps a template's usage counter and returns
	// the new count.
	IncrementUsage(ctx context.Context, libraryID, templateID string) (int64, error)

	// AppendUsage appends a usage record.
	AppendUsage(ctx context.Context, usage *Usage) error

	// ListUsage returns usage records for a template, newest first.
	ListUsage(ctx context.Context, templateID string) ([]*Usage, error)
}

// MemoryRepository is an in-memory Repository guarded by a read-write mutex.
// Reads may run concurrently; writes are serialized. Structs are copied on
// the way in and out, so callers always hold private snapshots and counter
// updates go through IncrementUsage under the write lock.
type MemoryRepository struct {
	mu        sync.RWMutex
	libraries map[string]*Library
	templates map[string]map[string]*Template
	usage     []*Usage
}

// NewMemoryRepository creates an empty in-memory repository.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		libraries: make(map[string]*Library),
		templates: make(map[string]map[string]*Template),
	}
}

// GetLibrary returns a library by ID.
func (r *MemoryRepository) GetLibrary(ctx context.Context, libraryID string) (*Library, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	lib, ok := r.libraries[libraryID]
	if !ok {
		return nil, ErrLibraryNotFound
	}
	cp := *lib
	return &cp, nil
}

// PutLibrary creates or replaces a library.
func (r *MemoryRepository) PutLibrary(ctx context.Context, lib *Library) error {
	if lib == nil || lib.ID == "" {
		return errors.New("library with id is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	cp := *lib
	r.libraries[lib.ID] = &cp
	if r.templates[lib.ID] == nil {
		r.templates[lib.ID] = make(map[string]*Template)
	}
	return nil
}

// ListLibraries returns all libraries sorted by ID.
func (r *MemoryRepository) ListLibraries(ctx context.Context) ([]*Library, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*Library, 0, len(r.libraries))
	for _, lib := range r.libraries {
		cp := *lib
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// GetTemplate returns a template by library and template ID.
func (r *MemoryRepository) GetTemplate(ctx context.Context, libraryID, templateID string) (*Template, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	lib, ok := r.templates[libraryID]
	if !ok {
		return nil, ErrLibraryNotFound
	}
	tmpl, ok := lib[templateID]
	if !ok {
		return nil, ErrTemplateNotFound
	}
	cp := *tmpl
	return &cp, nil
}

// PutTemplate creates or replaces a template within a library.
func (r *MemoryRepository) PutTemplate(ctx context.Context, libraryID string, tmpl *Template) error {
	if tmpl == nil || tmpl.ID == "" {
		return errors.New("template with id is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	lib, ok := r.libraries[libraryID]
	if !ok {
		return ErrLibraryNotFound
	}

	cp := *tmpl
	r.templates[libraryID][tmpl.ID] = &cp
	addCategory(lib, tmpl.Category)
	return nil
}

// ListTemplates returns all templates in a library sorted by ID.
func (r *MemoryRepository) ListTemplates(ctx context.Context, libraryID string) ([]*Template, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	lib, ok := r.templates[libraryID]
	if !ok {
		return nil, ErrLibraryNotFound
	}

	out := make([]*Template, 0, len(lib))
	for _, tmpl := range lib {
		cp := *tmpl
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// IncrementUsage bumps a template's usage counter under the write lock and
// returns the new count.
func (r *MemoryRepository) IncrementUsage(ctx context.Context, libraryID, templateID string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	lib, ok := r.templates[libraryID]
	if !ok {
		return 0, ErrLibraryNotFound
	}
	tmpl, ok := lib[templateID]
	if !ok {
		return 0, ErrTemplateNotFound
	}
	tmpl.UsageCount++
	return tmpl.UsageCount, nil
}

// AppendUsage appends a usage record.
func (r *MemoryRepository) AppendUsage(ctx context.Context, usage *Usage) error {
	if usage == nil || usage.ID == "" {
		return errors.New("usage with id is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.usage = append(r.usage, usage)
	return nil
}

// ListUsage returns usage records for a template, newest first.
func (r *MemoryRepository) ListUsage(ctx context.Context, templateID string) ([]*Usage, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []*Usage
	for _, u := range r.usage {
		if u.ClauseID == templateID {
			out = append(out, u)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].UsedAt.After(out[j].UsedAt) })
	return out, nil
}

// addCategory grows the library's derived category set. The set is rebuilt
// rather than appended in place so snapshots handed out earlier keep their
// backing array untouched.
func addCategory(lib *Library, category string) {
	if category == "" {
		return
	}
	for _, c := range lib.Categories {
		if c == category {
			return
		}
	}
	cats := make([]string, 0, len(lib.Categories)+1)
	cats = append(cats, lib.Categories...)
	cats = append(cats, category)
	sort.Strings(cats)
	lib.Categories = cats
}

// Ensure MemoryRepository implements Repository.
var _ Repository = (*MemoryRepository)(nil)
