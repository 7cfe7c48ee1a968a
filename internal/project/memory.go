package project

import (
	"context"
	"fmt"
	"sync"
)

// InMemoryRegistry implements ProjectRegistry and PropertyLookup using in-memory storage.
type InMemoryRegistry struct {
	projects  map[int]*Project
	props     map[PropertyKey]Props
	overrides map[PropertyKey]Props

	mu sync.RWMutex
}

// NewInMemoryRegistry creates an empty registry.
func NewInMemoryRegistry() *InMemoryRegistry {
	return &InMemoryRegistry{
		projects:  make(map[int]*Project),
		props:     make(map[PropertyKey]Props),
		overrides: make(map[PropertyKey]Props),
	}
}

// AddProject stores a project, replacing any project with the same id.
func (r *InMemoryRegistry) AddProject(p *Project) error {
	if p == nil {
		return fmt.Errorf("project cannot be nil")
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.projects[p.ID] = p
	return nil
}

// SetProperties stores the properties of a source.
func (r *InMemoryRegistry) SetProperties(key PropertyKey, props Props) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.props[key] = props
}

// SetJobOverride stores the UI override properties of a job.
func (r *InMemoryRegistry) SetJobOverride(key PropertyKey, props Props) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.overrides[key] = props
}

// Project returns the project with the given id.
func (r *InMemoryRegistry) Project(ctx context.Context, id int) (*Project, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.projects[id]
	if !ok {
		return nil, fmt.Errorf("project not found: %d", id)
	}
	return p, nil
}

// Properties returns the stored properties for key, or nil.
func (r *InMemoryRegistry) Properties(ctx context.Context, key PropertyKey) (Props, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.props[key], nil
}

// JobOverrideProperties returns the stored override properties for key, or nil.
func (r *InMemoryRegistry) JobOverrideProperties(ctx context.Context, key PropertyKey) (Props, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.overrides[key], nil
}
